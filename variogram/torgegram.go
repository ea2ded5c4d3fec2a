// SPDX-License-Identifier: MIT

package variogram

import (
	"fmt"

	"github.com/katalvlaran/ssnstat/distance"
	"github.com/katalvlaran/ssnstat/network"
	"github.com/katalvlaran/ssnstat/observation"
)

// TorgegramResult holds the three distance-class semivariograms.
type TorgegramResult struct {
	Euclidean       *Semivariogram
	FlowConnected   *Semivariogram
	FlowUnconnected *Semivariogram
}

// Torgegram bins the set three ways: all pairs by Euclidean distance,
// flow-connected pairs by hydrologic distance and flow-unconnected pairs by
// a + b. The same options, including the default cutoff derived from the
// sites' bounding box, apply to all three. nd must list the set's site IDs
// in the same order.
//
// Errors: ErrNilInput, ErrMisaligned and NewCloud/Empirical errors.
func Torgegram(set *observation.Set, nd *network.Distances, opts ...Option) (*TorgegramResult, error) {
	if set == nil || nd == nil {
		return nil, ErrNilInput
	}
	ids, nids := set.IDs(), nd.IDs()
	if len(ids) != len(nids) {
		return nil, fmt.Errorf("%w: %d sites vs %d", ErrMisaligned, len(ids), len(nids))
	}
	for i := range ids {
		if ids[i] != nids[i] {
			return nil, fmt.Errorf("%w: position %d is %q vs %q", ErrMisaligned, i, ids[i], nids[i])
		}
	}

	euclid, err := distance.Euclidean(set)
	if err != nil {
		return nil, err
	}
	res := &TorgegramResult{}
	if res.Euclidean, err = Compute(set, euclid, opts...); err != nil {
		return nil, err
	}
	if res.FlowConnected, err = classVariogram(set, nd, network.FlowConnected, opts); err != nil {
		return nil, err
	}
	if res.FlowUnconnected, err = classVariogram(set, nd, network.FlowUnconnected, opts); err != nil {
		return nil, err
	}

	return res, nil
}

// NetworkClass returns cloud options restricting pairs to one relation and
// measuring them along the network.
func NetworkClass(nd *network.Distances, rel network.Relation) []CloudOption {
	return []CloudOption{
		WithPairFilter(func(i, j int) bool { return nd.Relation(i, j) == rel }),
		WithDistanceFunc(nd.Hydrologic),
	}
}

func classVariogram(set *observation.Set, nd *network.Distances, rel network.Relation, opts []Option) (*Semivariogram, error) {
	c, err := NewCloud(set, nil, NetworkClass(nd, rel)...)
	if err != nil {
		return nil, fmt.Errorf("variogram: %s: %w", rel, err)
	}

	return Empirical(c, opts...)
}
