// SPDX-License-Identifier: MIT

package ssn

import (
	"fmt"
	"math"
	"strings"
)

// Shape is the functional form of one covariance component.
type Shape int

const (
	// None contributes zero covariance.
	None Shape = iota
	// Exponential decays as e^{−x}.
	Exponential
	// Linear decays as (1−x)₊ (linear with sill).
	Linear
	// Gaussian decays as e^{−x²}.
	Gaussian
)

// Shapes lists every shape, None first.
var Shapes = []Shape{None, Exponential, Linear, Gaussian}

// String returns the lower-case shape name.
func (s Shape) String() string {
	switch s {
	case Exponential:
		return "exponential"
	case Linear:
		return "linear"
	case Gaussian:
		return "gaussian"
	default:
		return "none"
	}
}

// ParseShape accepts full names and the short forms exp, lin, gau.
func ParseShape(s string) (Shape, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return None, nil
	case "exponential", "exp":
		return Exponential, nil
	case "linear", "lin", "linear-with-sill":
		return Linear, nil
	case "gaussian", "gau":
		return Gaussian, nil
	}

	return None, fmt.Errorf("%w: unknown shape %q", ErrInvalidConfig, s)
}

// corr evaluates the correlation at scaled distance x = d/α.
func (s Shape) corr(x float64) float64 {
	switch s {
	case Exponential:
		return math.Exp(-x)
	case Linear:
		return math.Max(0, 1-x)
	case Gaussian:
		return math.Exp(-x * x)
	default:
		return 0
	}
}

// Form names a covariance component.
type Form int

const (
	// TailUp acts on flow-connected pairs.
	TailUp Form = iota
	// TailDown acts on pairs sharing a network.
	TailDown
	// Euclid acts on every pair by straight-line distance.
	Euclid
)

// String returns "tailup", "taildown" or "euclid".
func (f Form) String() string {
	switch f {
	case TailUp:
		return "tailup"
	case TailDown:
		return "taildown"
	default:
		return "euclid"
	}
}

// Config is one candidate autocovariance structure.
type Config struct {
	TailUp   Shape
	TailDown Shape
	Euclid   Shape
	Nugget   bool
}

// Label identifies the candidate in tables, e.g.
// "exponential.tailup+none.taildown+gaussian.euclid+nugget".
func (c Config) Label() string {
	l := fmt.Sprintf("%s.tailup+%s.taildown+%s.euclid", c.TailUp, c.TailDown, c.Euclid)
	if c.Nugget {
		l += "+nugget"
	}

	return l
}

// Spatial reports whether any spatial form is active.
func (c Config) Spatial() bool {
	return c.TailUp != None || c.TailDown != None || c.Euclid != None
}

// NeedsNetwork reports whether a tail-up or tail-down form is active.
func (c Config) NeedsNetwork() bool {
	return c.TailUp != None || c.TailDown != None
}

// Validate rejects unknown shapes and a structure with no covariance at all.
// All forms "none" with a nugget is the non-spatial baseline and is valid.
func (c Config) Validate() error {
	for _, s := range []Shape{c.TailUp, c.TailDown, c.Euclid} {
		if s < None || s > Gaussian {
			return fmt.Errorf("%w: shape %d", ErrInvalidConfig, int(s))
		}
	}
	if !c.Spatial() && !c.Nugget {
		return fmt.Errorf("%w: %s has no covariance component", ErrInvalidConfig, c.Label())
	}

	return nil
}

// components returns the active forms in parameter order.
func (c Config) components() []Component {
	var out []Component
	if c.TailUp != None {
		out = append(out, Component{Form: TailUp, Shape: c.TailUp})
	}
	if c.TailDown != None {
		out = append(out, Component{Form: TailDown, Shape: c.TailDown})
	}
	if c.Euclid != None {
		out = append(out, Component{Form: Euclid, Shape: c.Euclid})
	}

	return out
}

// NumCovParams returns 2 per active component plus 1 for the nugget.
func (c Config) NumCovParams() int {
	k := 2 * len(c.components())
	if c.Nugget {
		k++
	}

	return k
}

// Enumerate returns every combination of tail-up, tail-down and Euclidean
// shapes drawn from shapes, each with the given nugget setting, skipping
// invalid ones. Order is tail-up major, Euclidean minor, following shapes.
func Enumerate(shapes []Shape, nugget bool) []Config {
	var out []Config
	for _, tu := range shapes {
		for _, td := range shapes {
			for _, eu := range shapes {
				c := Config{TailUp: tu, TailDown: td, Euclid: eu, Nugget: nugget}
				if c.Validate() == nil {
					out = append(out, c)
				}
			}
		}
	}

	return out
}

// Component is one fitted (or requested) covariance component.
type Component struct {
	Form        Form    `json:"form"`
	Shape       Shape   `json:"shape"`
	PartialSill float64 `json:"partial_sill"`
	Range       float64 `json:"range"`
}

// Params are covariance parameters on their natural scale.
type Params struct {
	Components []Component `json:"components"`
	Nugget     float64     `json:"nugget"`
}
