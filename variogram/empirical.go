// SPDX-License-Identifier: MIT

package variogram

import (
	"math"

	"github.com/katalvlaran/ssnstat/matrix"
	"github.com/katalvlaran/ssnstat/observation"
)

// Empirical bins the cloud into lag classes.
//
// Steps:
//  1. Resolve options against the cloud's bounding-box diagonal.
//  2. Assign each pair with 0 < d < cutoff to bin ⌊d/width⌋.
//  3. Aggregate non-empty bins with the selected estimator.
//
// No pair in range yields an empty Bins slice and no error.
// Complexity: O(P + B) for P pairs and B bins.
func Empirical(c *Cloud, opts ...Option) (*Semivariogram, error) {
	if c == nil {
		return nil, ErrNilInput
	}
	// 1) Options
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	nbins, err := o.resolve(c.diagonal)
	if err != nil {
		return nil, err
	}

	// 2) Accumulate
	type acc struct {
		pairs   int
		sumDist float64
		sumG    float64
		sumRoot float64
	}
	accs := make([]acc, nbins)
	var k int
	for _, p := range c.points {
		if !(p.Distance > 0) || p.Distance >= o.Cutoff {
			continue
		}
		k = int(p.Distance / o.Width)
		if k >= nbins {
			k = nbins - 1
		}
		accs[k].pairs++
		accs[k].sumDist += p.Distance
		accs[k].sumG += p.Semivariance
		accs[k].sumRoot += math.Sqrt(p.AbsDiff)
	}

	// 3) Aggregate
	sv := &Semivariogram{
		Cutoff:           o.Cutoff,
		Width:            o.Width,
		Estimator:        o.Estimator,
		LowPairThreshold: o.LowPairThreshold,
		Bins:             make([]Bin, 0, nbins),
	}
	for k = range accs {
		a := accs[k]
		if a.pairs == 0 {
			continue
		}
		np := float64(a.pairs)
		b := Bin{
			Index:         k,
			Lower:         float64(k) * o.Width,
			Upper:         math.Min(float64(k+1)*o.Width, o.Cutoff),
			Pairs:         a.pairs,
			MeanDistance:  a.sumDist / np,
			LowConfidence: a.pairs < o.LowPairThreshold,
		}
		switch o.Estimator {
		case CressieHawkins:
			m := a.sumRoot / np
			b.Gamma = 0.5 * m * m * m * m / (0.457 + 0.494/np)
		default:
			b.Gamma = a.sumG / np
		}
		sv.Bins = append(sv.Bins, b)
	}

	return sv, nil
}

// Compute builds the cloud of set over dist and bins it.
func Compute(set *observation.Set, dist matrix.Matrix, opts ...Option) (*Semivariogram, error) {
	c, err := NewCloud(set, dist)
	if err != nil {
		return nil, err
	}

	return Empirical(c, opts...)
}
