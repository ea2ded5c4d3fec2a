// SPDX-License-Identifier: MIT

package network

import (
	"fmt"
	"math"
	"sort"

	"github.com/katalvlaran/ssnstat/core"
	"github.com/katalvlaran/ssnstat/dfs"
)

// AddReach inserts a reach from → to. Weight must be positive; a zero weight
// is not allowed because proportional influence divides by it.
//
// Errors: ErrInvalidReach, ErrDuplicateReach, core errors for bad endpoints.
func (n *Graph) AddReach(r Reach) error {
	if r.ID == "" || r.Weight <= 0 || math.IsNaN(r.Weight) || math.IsInf(r.Weight, 0) {
		return fmt.Errorf("%w: %q weight=%g", ErrInvalidReach, r.ID, r.Weight)
	}
	if r.AFV < 0 || math.IsNaN(r.AFV) || math.IsInf(r.AFV, 0) {
		return fmt.Errorf("%w: %q afv=%g", ErrInvalidReach, r.ID, r.AFV)
	}
	if _, dup := n.reaches[r.ID]; dup {
		return fmt.Errorf("%w: %q", ErrDuplicateReach, r.ID)
	}
	if _, err := n.g.AddEdge(r.From, r.To, r.Length, core.WithEdgeID(r.ID)); err != nil {
		return fmt.Errorf("%w: %q: %v", ErrInvalidReach, r.ID, err)
	}
	rc := r
	n.reaches[r.ID] = &rc
	n.afv = nil

	return nil
}

// AddSite places a site on an existing reach.
//
// Errors: ErrDuplicateSite, ErrUnknownReach, ErrOffsetOutOfRange.
func (n *Graph) AddSite(s Site) error {
	if s.ID == "" {
		return fmt.Errorf("%w: empty ID", ErrDuplicateSite)
	}
	if _, dup := n.sites[s.ID]; dup {
		return fmt.Errorf("%w: %q", ErrDuplicateSite, s.ID)
	}
	r, ok := n.reaches[s.Reach]
	if !ok {
		return fmt.Errorf("%w: site %q on %q", ErrUnknownReach, s.ID, s.Reach)
	}
	if s.Offset < 0 || s.Offset > r.Length || math.IsNaN(s.Offset) {
		return fmt.Errorf("%w: site %q offset=%g length=%g", ErrOffsetOutOfRange, s.ID, s.Offset, r.Length)
	}
	n.sites[s.ID] = s

	return nil
}

// Reach returns a copy of the reach with the given ID.
func (n *Graph) Reach(id string) (Reach, bool) {
	r, ok := n.reaches[id]
	if !ok {
		return Reach{}, false
	}

	return *r, true
}

// Site returns the placement of a site.
func (n *Graph) Site(id string) (Site, bool) {
	s, ok := n.sites[id]

	return s, ok
}

// SiteIDs returns all site IDs sorted ascending.
func (n *Graph) SiteIDs() []string {
	ids := make([]string, 0, len(n.sites))
	for id := range n.sites {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	return ids
}

// ReachCount returns the number of reaches.
func (n *Graph) ReachCount() int { return len(n.reaches) }

// Validate checks that the network is a dendritic DAG: no directed cycles
// and at most one downstream reach per node. Site placement is checked on
// insertion.
func (n *Graph) Validate() error {
	if _, err := dfs.TopologicalSort(n.g); err != nil {
		return fmt.Errorf("network: %w", err)
	}
	for _, v := range n.g.Vertices() {
		_, out, err := n.g.Degree(v)
		if err != nil {
			return err
		}
		if out > 1 {
			return fmt.Errorf("%w: node %q has %d downstream reaches", ErrNotDendritic, v, out)
		}
	}

	return nil
}

// ComputeAFV fills the additive function value of every reach and returns a
// copy of the result keyed by reach ID.
//
// Steps:
//  1. Validate the network.
//  2. If every reach carries a precomputed AFV, use those.
//  3. Otherwise walk nodes from the outlet upstream (reverse topological
//     order); a reach entering node v gets PI = w / Σw(entering v) times the
//     AFV of v's downstream reach, or 1 at an outlet.
//
// Complexity: O(V + E).
func (n *Graph) ComputeAFV() (map[string]float64, error) {
	if err := n.Validate(); err != nil {
		return nil, err
	}

	given := 0
	for _, r := range n.reaches {
		if r.AFV > 0 {
			given++
		}
	}
	afv := make(map[string]float64, len(n.reaches))
	switch {
	case given == len(n.reaches):
		for id, r := range n.reaches {
			afv[id] = r.AFV
		}
	case given > 0:
		return nil, fmt.Errorf("%w: %d of %d", ErrMixedAFV, given, len(n.reaches))
	default:
		order, err := dfs.TopologicalSort(n.g)
		if err != nil {
			return nil, fmt.Errorf("network: %w", err)
		}
		for i := len(order) - 1; i >= 0; i-- {
			v := order[i]
			down := 1.0
			outs, err := n.g.Neighbors(v)
			if err != nil {
				return nil, err
			}
			if len(outs) == 1 {
				down = afv[outs[0].ID]
			}
			ins, err := n.g.Incoming(v)
			if err != nil {
				return nil, err
			}
			var total float64
			for _, e := range ins {
				total += n.reaches[e.ID].Weight
			}
			for _, e := range ins {
				afv[e.ID] = down * n.reaches[e.ID].Weight / total
			}
		}
	}
	n.afv = afv

	out := make(map[string]float64, len(afv))
	for k, v := range afv {
		out[k] = v
	}

	return out, nil
}
