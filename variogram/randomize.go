// SPDX-License-Identifier: MIT

package variogram

import (
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/katalvlaran/ssnstat/matrix"
	"github.com/katalvlaran/ssnstat/observation"
)

// Envelope is the result of a permutation test: the observed curve and one
// curve per trial, all binned identically.
type Envelope struct {
	Observed *Semivariogram
	Trials   []*Semivariogram
}

// Band is the per-bin spread of trial semivariances around the observed one.
type Band struct {
	Index        int
	MeanDistance float64
	Observed     float64
	Lower        float64
	Upper        float64
	Trials       int // trials that populated this bin
}

// Curve is one (distance, gamma) series. Trial 0 is the observed curve.
type Curve struct {
	Trial     int
	Distances []float64
	Gammas    []float64
}

// Randomize runs R permutation trials. Each trial shuffles the responses
// over the fixed locations (every value used exactly once), rebuilds the
// cloud over dist and bins it with observed's cutoff, width, estimator and
// threshold.
//
// Errors: ErrNilInput, ErrInvalidTrials and NewCloud/Empirical errors.
// Complexity: O(R·N²).
func Randomize(set *observation.Set, dist matrix.Matrix, observed *Semivariogram, opts ...RandomizeOption) (*Envelope, error) {
	ro := randomizeOptions{trials: DefaultTrials}
	for _, opt := range opts {
		opt(&ro)
	}
	if set == nil || observed == nil {
		return nil, ErrNilInput
	}
	if ro.trials < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidTrials, ro.trials)
	}
	if ro.source == nil {
		WithSeed(DefaultSeed)(&ro)
	}
	rng := rand.New(ro.source)

	z := set.Responses()
	values := make([]float64, len(z))
	binOpts := observed.Options()
	env := &Envelope{Observed: observed, Trials: make([]*Semivariogram, 0, ro.trials)}
	for r := 0; r < ro.trials; r++ {
		for k, p := range rng.Perm(len(z)) {
			values[k] = z[p]
		}
		shuffled, err := set.WithResponses(values)
		if err != nil {
			return nil, err
		}
		c, err := NewCloud(shuffled, dist, ro.cloud...)
		if err != nil {
			return nil, fmt.Errorf("variogram: trial %d: %w", r+1, err)
		}
		sv, err := Empirical(c, binOpts...)
		if err != nil {
			return nil, fmt.Errorf("variogram: trial %d: %w", r+1, err)
		}
		env.Trials = append(env.Trials, sv)
	}

	return env, nil
}

// Bounds returns, for every observed bin, the minimum and maximum trial
// semivariance in the bin with the same index.
func (e *Envelope) Bounds() []Band {
	out := make([]Band, 0, len(e.Observed.Bins))
	for _, ob := range e.Observed.Bins {
		band := Band{
			Index:        ob.Index,
			MeanDistance: ob.MeanDistance,
			Observed:     ob.Gamma,
			Lower:        math.Inf(1),
			Upper:        math.Inf(-1),
		}
		for _, tr := range e.Trials {
			if g, ok := gammaAt(tr, ob.Index); ok {
				band.Lower = math.Min(band.Lower, g)
				band.Upper = math.Max(band.Upper, g)
				band.Trials++
			}
		}
		if band.Trials == 0 {
			band.Lower, band.Upper = math.NaN(), math.NaN()
		}
		out = append(out, band)
	}

	return out
}

// PValues returns one lower-tail Monte Carlo p-value per observed bin:
// (1 + #{trial γ ≤ observed γ}) / (1 + trials populating the bin).
// Small values indicate more similarity at that lag than chance allows.
func (e *Envelope) PValues() []float64 {
	out := make([]float64, len(e.Observed.Bins))
	for k, ob := range e.Observed.Bins {
		below, total := 0, 0
		for _, tr := range e.Trials {
			if g, ok := gammaAt(tr, ob.Index); ok {
				total++
				if g <= ob.Gamma {
					below++
				}
			}
		}
		out[k] = float64(1+below) / float64(1+total)
	}

	return out
}

// Curves returns the observed curve (trial 0) followed by every trial.
func (e *Envelope) Curves() []Curve {
	out := make([]Curve, 0, 1+len(e.Trials))
	out = append(out, curveOf(0, e.Observed))
	for r, tr := range e.Trials {
		out = append(out, curveOf(r+1, tr))
	}

	return out
}

func curveOf(trial int, sv *Semivariogram) Curve {
	c := Curve{Trial: trial, Distances: make([]float64, len(sv.Bins)), Gammas: make([]float64, len(sv.Bins))}
	for k, b := range sv.Bins {
		c.Distances[k], c.Gammas[k] = b.MeanDistance, b.Gamma
	}

	return c
}

func gammaAt(sv *Semivariogram, index int) (float64, bool) {
	for _, b := range sv.Bins {
		if b.Index == index {
			return b.Gamma, true
		}
	}

	return 0, false
}
