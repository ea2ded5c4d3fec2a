// SPDX-License-Identifier: MIT

package network

import (
	"fmt"
	"math"

	"github.com/katalvlaran/ssnstat/dijkstra"
	"github.com/katalvlaran/ssnstat/matrix"
)

// Distances holds pairwise network relations for an ordered list of sites.
// Indices follow the siteIDs order passed to Graph.Distances. Methods expect
// indices in [0, Len()).
type Distances struct {
	ids  []string
	rel  [][]Relation
	down *matrix.Dense // down[i][j]: distance from i downstream to its junction with j
	afv  []float64
}

// Distances classifies every pair of the given sites and records downstream
// distances. AFVs are computed on demand.
//
// Steps:
//  1. Resolve sites (ErrSiteNotFound) and AFVs.
//  2. One Dijkstra per distinct downstream node of a site reach.
//  3. For each pair: same reach, one reach downstream of the other, common
//     confluence, or unrelated.
func (n *Graph) Distances(siteIDs []string) (*Distances, error) {
	// 1) Resolve
	if n.afv == nil {
		if _, err := n.ComputeAFV(); err != nil {
			return nil, err
		}
	}
	count := len(siteIDs)
	sites := make([]Site, count)
	d := &Distances{
		ids: append([]string(nil), siteIDs...),
		rel: make([][]Relation, count),
		afv: make([]float64, count),
	}
	for i, id := range siteIDs {
		s, ok := n.sites[id]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrSiteNotFound, id)
		}
		sites[i] = s
		d.afv[i] = n.afv[s.Reach]
		d.rel[i] = make([]Relation, count)
	}
	if count == 0 {
		return d, nil
	}
	down, err := matrix.NewSquare(count)
	if err != nil {
		return nil, err
	}
	d.down = down

	// 2) Downstream path lengths from every site node
	paths := make(map[string]map[string]float64)
	for _, s := range sites {
		node := n.reaches[s.Reach].To
		if _, done := paths[node]; done {
			continue
		}
		dist, _, err := dijkstra.Dijkstra(n.g, dijkstra.Source(node))
		if err != nil {
			return nil, fmt.Errorf("network: paths from %q: %w", node, err)
		}
		paths[node] = dist
	}
	nodes := n.g.Vertices()

	// 3) Classify pairs
	for i := 0; i < count; i++ {
		for j := i + 1; j < count; j++ {
			rel, dij, dji := n.pair(sites[i], sites[j], paths, nodes)
			d.rel[i][j], d.rel[j][i] = rel, rel
			if err = d.down.Set(i, j, dij); err != nil {
				return nil, err
			}
			if err = d.down.Set(j, i, dji); err != nil {
				return nil, err
			}
		}
	}

	return d, nil
}

// pair returns the relation of si and sj and the downstream distances from
// each to their junction (0 for the downstream member of a flow-connected
// pair, 0 for both when unrelated).
func (n *Graph) pair(si, sj Site, paths map[string]map[string]float64, nodes []string) (Relation, float64, float64) {
	ri, rj := n.reaches[si.Reach], n.reaches[sj.Reach]
	pi, pj := paths[ri.To], paths[rj.To]

	if ri.ID == rj.ID {
		if si.Offset >= sj.Offset {
			return FlowConnected, si.Offset - sj.Offset, 0
		}

		return FlowConnected, 0, sj.Offset - si.Offset
	}
	// j's reach lies below i's downstream node
	if dd := pi[rj.From]; !math.IsInf(dd, 1) {
		return FlowConnected, si.Offset + dd + (rj.Length - sj.Offset), 0
	}
	if dd := pj[ri.From]; !math.IsInf(dd, 1) {
		return FlowConnected, 0, sj.Offset + dd + (ri.Length - si.Offset)
	}

	// first shared downstream node
	best, found := math.Inf(1), ""
	for _, v := range nodes {
		a, b := pi[v], pj[v]
		if math.IsInf(a, 1) || math.IsInf(b, 1) {
			continue
		}
		if a < best {
			best, found = a, v
		}
	}
	if found == "" {
		return Unrelated, 0, 0
	}

	return FlowUnconnected, si.Offset + pi[found], sj.Offset + pj[found]
}

// Len returns the number of sites.
func (d *Distances) Len() int { return len(d.ids) }

// IDs returns the site order.
func (d *Distances) IDs() []string { return append([]string(nil), d.ids...) }

// Relation returns the relation between sites i and j; a site is
// flow-connected to itself.
func (d *Distances) Relation(i, j int) Relation {
	if i == j {
		return FlowConnected
	}

	return d.rel[i][j]
}

// Split returns the downstream distances of i and j to their junction
// ordered so that a ≤ b. For flow-connected pairs a is 0 and b is the
// hydrologic distance. Unrelated pairs return +Inf twice.
func (d *Distances) Split(i, j int) (a, b float64) {
	if i == j {
		return 0, 0
	}
	if d.rel[i][j] == Unrelated {
		return math.Inf(1), math.Inf(1)
	}
	x, _ := d.down.At(i, j)
	y, _ := d.down.At(j, i)
	if x > y {
		x, y = y, x
	}

	return x, y
}

// Hydrologic returns the along-network distance: h for flow-connected pairs,
// a+b for flow-unconnected pairs and +Inf for unrelated ones.
func (d *Distances) Hydrologic(i, j int) float64 {
	a, b := d.Split(i, j)

	return a + b
}

// Weight returns √(AFV_up / AFV_down) for flow-connected pairs and 0
// otherwise. The upstream site never has the larger AFV.
func (d *Distances) Weight(i, j int) float64 {
	if i == j {
		return 1
	}
	if d.rel[i][j] != FlowConnected {
		return 0
	}
	lo, hi := math.Min(d.afv[i], d.afv[j]), math.Max(d.afv[i], d.afv[j])
	if hi == 0 {
		return 0
	}

	return math.Sqrt(lo / hi)
}

// AFV returns the additive function value at site i.
func (d *Distances) AFV(i int) float64 { return d.afv[i] }

// DownstreamMatrix returns a copy of D where D[i][j] is the distance from
// site i downstream to its junction with j. Unrelated entries are 0; mask
// them with Relation.
func (d *Distances) DownstreamMatrix() *matrix.Dense {
	if d.down == nil {
		return nil
	}

	return d.down.Clone().(*matrix.Dense)
}
