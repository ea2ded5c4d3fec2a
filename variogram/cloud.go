// SPDX-License-Identifier: MIT

package variogram

import (
	"fmt"
	"math"

	"github.com/katalvlaran/ssnstat/distance"
	"github.com/katalvlaran/ssnstat/matrix"
	"github.com/katalvlaran/ssnstat/observation"
)

// Cloud is the exhaustive table of pairwise semivariances. It is immutable
// and can be queried by pair index, by site or by distance range.
type Cloud struct {
	sites    int
	diagonal float64
	points   []CloudPoint
}

// NewCloud builds the cloud for set using dist (N×N) or, with
// WithDistanceFunc, a distance function. Pairs are emitted in (i, j)
// row-major order, i < j.
//
// Errors: ErrNilInput, ErrDimensionMismatch, ErrDegenerateLocations,
// ErrConstantResponse.
func NewCloud(set *observation.Set, dist matrix.Matrix, opts ...CloudOption) (*Cloud, error) {
	// 1) Options and inputs
	var co cloudOptions
	for _, opt := range opts {
		opt(&co)
	}
	if set == nil {
		return nil, ErrNilInput
	}
	n := set.Len()
	if co.distance == nil {
		if err := matrix.ValidateNotNil(dist); err != nil {
			return nil, fmt.Errorf("%w: distance matrix", ErrNilInput)
		}
		if dist.Rows() != n || dist.Cols() != n {
			return nil, fmt.Errorf("%w: %dx%d for %d sites", ErrDimensionMismatch, dist.Rows(), dist.Cols(), n)
		}
		co.distance = func(i, j int) float64 {
			v, _ := dist.At(i, j)
			return v
		}
	}

	// 2) Degenerate data
	xs, ys := set.Coords()
	z := set.Responses()
	if allEqual(xs) && allEqual(ys) {
		return nil, fmt.Errorf("%w: %d sites at (%g, %g)", ErrDegenerateLocations, n, xs[0], ys[0])
	}
	if allEqual(z) {
		return nil, fmt.Errorf("%w: all %d values = %g", ErrConstantResponse, n, z[0])
	}

	// 3) Pairs
	c := &Cloud{sites: n, diagonal: distance.BoundingBoxDiagonal(set), points: make([]CloudPoint, 0, n*(n-1)/2)}
	var i, j int
	var diff float64
	for i = 0; i < n; i++ {
		for j = i + 1; j < n; j++ {
			if co.keep != nil && !co.keep(i, j) {
				continue
			}
			diff = z[i] - z[j]
			c.points = append(c.points, CloudPoint{
				I:            i,
				J:            j,
				Distance:     co.distance(i, j),
				Semivariance: 0.5 * diff * diff,
				AbsDiff:      math.Abs(diff),
			})
		}
	}

	return c, nil
}

func allEqual(v []float64) bool {
	for _, x := range v[1:] {
		if x != v[0] {
			return false
		}
	}

	return true
}

// Len returns the number of pairs.
func (c *Cloud) Len() int { return len(c.points) }

// Sites returns the number of sites the cloud was built from.
func (c *Cloud) Sites() int { return c.sites }

// Diagonal returns the bounding-box diagonal of the sites.
func (c *Cloud) Diagonal() float64 { return c.diagonal }

// At returns pair k.
func (c *Cloud) At(k int) (CloudPoint, error) {
	if k < 0 || k >= len(c.points) {
		return CloudPoint{}, fmt.Errorf("%w: %d", ErrIndexOutOfRange, k)
	}

	return c.points[k], nil
}

// Points returns a copy of all pairs.
func (c *Cloud) Points() []CloudPoint {
	return append([]CloudPoint(nil), c.points...)
}

// PairsOf returns every pair involving site i.
func (c *Cloud) PairsOf(i int) []CloudPoint {
	var out []CloudPoint
	for _, p := range c.points {
		if p.I == i || p.J == i {
			out = append(out, p)
		}
	}

	return out
}

// Within returns pairs with dmin ≤ distance < dmax.
func (c *Cloud) Within(dmin, dmax float64) []CloudPoint {
	var out []CloudPoint
	for _, p := range c.points {
		if p.Distance >= dmin && p.Distance < dmax {
			out = append(out, p)
		}
	}

	return out
}
