// SPDX-License-Identifier: MIT

package distance

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/katalvlaran/ssnstat/matrix"
	"github.com/katalvlaran/ssnstat/observation"
)

// ErrTooFewPoints indicates a matrix with fewer than two points.
var ErrTooFewPoints = errors.New("distance: at least two points are required")

// FiveNumber is the distance summary reported before binning.
type FiveNumber struct {
	Min    float64 `json:"min"`
	Q1     float64 `json:"q1"`
	Median float64 `json:"median"`
	Mean   float64 `json:"mean"`
	Q3     float64 `json:"q3"`
	Max    float64 `json:"max"`
	Pairs  int     `json:"pairs"`
}

// Euclidean returns the N×N matrix of planar distances between sites.
func Euclidean(set *observation.Set) (*matrix.Dense, error) {
	if set == nil || set.Len() < 2 {
		return nil, ErrTooFewPoints
	}
	xs, ys := set.Coords()
	n := len(xs)
	m, err := matrix.NewSquare(n)
	if err != nil {
		return nil, err
	}
	var i, j int
	for i = 0; i < n; i++ {
		for j = i + 1; j < n; j++ {
			if err = m.SetSym(i, j, math.Hypot(xs[i]-xs[j], ys[i]-ys[j])); err != nil {
				return nil, fmt.Errorf("distance: pair (%d,%d): %w", i, j, err)
			}
		}
	}

	return m, nil
}

// Summary returns min, quartiles, mean and max over the strict upper
// triangle of m.
//
// Errors: matrix.ErrNilMatrix, matrix.ErrNonSquare, ErrTooFewPoints,
// and distance-matrix validation errors.
func Summary(m *matrix.Dense) (FiveNumber, error) {
	if err := matrix.ValidateSquare(m); err != nil {
		return FiveNumber{}, err
	}
	if m.Rows() < 2 {
		return FiveNumber{}, ErrTooFewPoints
	}
	if err := matrix.ValidateDistance(m, -1); err != nil {
		return FiveNumber{}, err
	}
	vals, err := m.UpperTriangle()
	if err != nil {
		return FiveNumber{}, err
	}
	sort.Float64s(vals)

	return FiveNumber{
		Min:    vals[0],
		Q1:     Quantile(vals, 0.25),
		Median: Quantile(vals, 0.5),
		Mean:   stat.Mean(vals, nil),
		Q3:     Quantile(vals, 0.75),
		Max:    vals[len(vals)-1],
		Pairs:  len(vals),
	}, nil
}

// Quantile returns the p-quantile of ascending-sorted values by linear
// interpolation at h = (n−1)·p. p is clamped to [0, 1]. Returns NaN for
// empty input or NaN p.
func Quantile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 || math.IsNaN(p) {
		return math.NaN()
	}
	p = math.Max(0, math.Min(1, p))
	h := float64(n-1) * p
	lo := int(math.Floor(h))
	if lo >= n-1 {
		return sorted[n-1]
	}

	return sorted[lo] + (h-float64(lo))*(sorted[lo+1]-sorted[lo])
}

// BoundingBoxDiagonal returns the diagonal of the sites' bounding box, the
// base of the default variogram cutoff.
func BoundingBoxDiagonal(set *observation.Set) float64 {
	if set == nil {
		return 0
	}

	return set.Diagonal()
}
