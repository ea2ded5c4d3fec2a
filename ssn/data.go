// SPDX-License-Identifier: MIT

package ssn

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/ssnstat/distance"
	"github.com/katalvlaran/ssnstat/network"
	"github.com/katalvlaran/ssnstat/observation"
)

// Data bundles an observation set with its distance structures.
type Data struct {
	set     *observation.Set
	euclid  *mat.SymDense
	network *network.Distances
}

// NewData computes Euclidean distances for set and attaches nd, which may be
// nil for Euclidean-only models. nd must follow set's site order.
func NewData(set *observation.Set, nd *network.Distances) (*Data, error) {
	if set == nil {
		return nil, ErrNilInput
	}
	if nd != nil {
		ids, nids := set.IDs(), nd.IDs()
		if len(ids) != len(nids) {
			return nil, fmt.Errorf("%w: %d sites vs %d", ErrMisaligned, len(ids), len(nids))
		}
		for i := range ids {
			if ids[i] != nids[i] {
				return nil, fmt.Errorf("%w: position %d is %q vs %q", ErrMisaligned, i, ids[i], nids[i])
			}
		}
	}
	d, err := distance.Euclidean(set)
	if err != nil {
		return nil, err
	}
	sym, err := d.SymDense()
	if err != nil {
		return nil, err
	}

	return &Data{set: set, euclid: sym, network: nd}, nil
}

// Set returns the observations.
func (d *Data) Set() *observation.Set { return d.set }

// Network returns the network distances, or nil.
func (d *Data) Network() *network.Distances { return d.network }

// Len returns the number of sites.
func (d *Data) Len() int { return d.set.Len() }

// check verifies that cfg can be evaluated on d.
func (d *Data) check(cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	if cfg.NeedsNetwork() && d.network == nil {
		return fmt.Errorf("%w: %s", ErrNetworkRequired, cfg.Label())
	}

	return nil
}

// maxDistance returns the largest finite distance a form sees, or 1 when
// there is none.
func (d *Data) maxDistance(f Form) float64 {
	n := d.Len()
	best := 0.0
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			var v float64
			switch f {
			case Euclid:
				v = d.euclid.At(i, j)
			case TailUp:
				if d.network.Relation(i, j) != network.FlowConnected {
					continue
				}
				v = d.network.Hydrologic(i, j)
			default:
				v = d.network.Hydrologic(i, j)
			}
			if !math.IsInf(v, 0) && v > best {
				best = v
			}
		}
	}
	if best == 0 {
		return 1
	}

	return best
}

// Covariance builds Σ for p on d. Components whose Form is not active in
// the configuration that produced p are still evaluated; callers pass
// consistent parameters.
func Covariance(d *Data, p Params) (*mat.SymDense, error) {
	if d == nil {
		return nil, ErrNilInput
	}
	n := d.Len()
	sigma := mat.NewSymDense(n, nil)
	for _, c := range p.Components {
		if c.Form != Euclid && d.network == nil {
			return nil, fmt.Errorf("%w: %s", ErrNetworkRequired, c.Form)
		}
		if !(c.Range > 0) || c.PartialSill < 0 {
			return nil, fmt.Errorf("%w: %s range=%g sill=%g", ErrInvalidConfig, c.Form, c.Range, c.PartialSill)
		}
	}
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			var v float64
			for _, c := range p.Components {
				v += c.PartialSill * d.corr(c, i, j)
			}
			if i == j {
				v += p.Nugget
			}
			sigma.SetSym(i, j, v)
		}
	}

	return sigma, nil
}

// corr returns the correlation of component c between sites i and j.
func (d *Data) corr(c Component, i, j int) float64 {
	if i == j {
		return 1
	}
	switch c.Form {
	case Euclid:
		return c.Shape.corr(d.euclid.At(i, j) / c.Range)
	case TailUp:
		if d.network.Relation(i, j) != network.FlowConnected {
			return 0
		}

		return d.network.Weight(i, j) * c.Shape.corr(d.network.Hydrologic(i, j)/c.Range)
	default:
		switch d.network.Relation(i, j) {
		case network.FlowConnected:
			return c.Shape.corr(d.network.Hydrologic(i, j) / c.Range)
		case network.FlowUnconnected:
			a, b := d.network.Split(i, j)
			if c.Shape == Linear {
				return math.Max(0, 1-b/c.Range)
			}

			return c.Shape.corr((a + b) / c.Range)
		}

		return 0
	}
}
