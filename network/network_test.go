// SPDX-License-Identifier: MIT

package network_test

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/ssnstat/dfs"
	"github.com/katalvlaran/ssnstat/network"
)

// fork builds two tributaries joining at j above a single outlet reach,
// plus a detached one-reach network:
//
//	n1 --r1(100, w3)--> j --r3(200, w4)--> out
//	n2 --r2(50,  w1)--^
//	x  --r9(10)--> y
func fork(t *testing.T) *network.Graph {
	t.Helper()
	doc := network.File{
		Reaches: []network.Reach{
			{ID: "r1", From: "n1", To: "j", Length: 100, Weight: 3},
			{ID: "r2", From: "n2", To: "j", Length: 50, Weight: 1},
			{ID: "r3", From: "j", To: "out", Length: 200, Weight: 4},
			{ID: "r9", From: "x", To: "y", Length: 10},
		},
		Sites: []network.Site{
			{ID: "a", Reach: "r1", Offset: 40},
			{ID: "b", Reach: "r2", Offset: 10},
			{ID: "c", Reach: "r3", Offset: 150},
			{ID: "d", Reach: "r1", Offset: 90},
			{ID: "e", Reach: "r9", Offset: 5},
		},
	}
	g, err := network.Build(doc)
	require.NoError(t, err)

	return g
}

func TestAddReachAndSite_Validation(t *testing.T) {
	g := network.NewGraph()
	require.ErrorIs(t, g.AddReach(network.Reach{ID: "", From: "a", To: "b", Length: 1, Weight: 1}), network.ErrInvalidReach)
	require.ErrorIs(t, g.AddReach(network.Reach{ID: "r", From: "a", To: "b", Length: 1, Weight: 0}), network.ErrInvalidReach)
	require.ErrorIs(t, g.AddReach(network.Reach{ID: "r", From: "a", To: "b", Length: -1, Weight: 1}), network.ErrInvalidReach)
	require.NoError(t, g.AddReach(network.Reach{ID: "r", From: "a", To: "b", Length: 10, Weight: 1}))
	require.ErrorIs(t, g.AddReach(network.Reach{ID: "r", From: "b", To: "c", Length: 10, Weight: 1}), network.ErrDuplicateReach)

	require.ErrorIs(t, g.AddSite(network.Site{ID: "s", Reach: "zz"}), network.ErrUnknownReach)
	require.ErrorIs(t, g.AddSite(network.Site{ID: "s", Reach: "r", Offset: 11}), network.ErrOffsetOutOfRange)
	require.NoError(t, g.AddSite(network.Site{ID: "s", Reach: "r", Offset: 10}))
	require.ErrorIs(t, g.AddSite(network.Site{ID: "s", Reach: "r"}), network.ErrDuplicateSite)
	require.Equal(t, []string{"s"}, g.SiteIDs())
}

func TestValidate_CycleAndBraid(t *testing.T) {
	g := network.NewGraph()
	require.NoError(t, g.AddReach(network.Reach{ID: "r1", From: "a", To: "b", Length: 1, Weight: 1}))
	require.NoError(t, g.AddReach(network.Reach{ID: "r2", From: "b", To: "a", Length: 1, Weight: 1}))
	require.ErrorIs(t, g.Validate(), dfs.ErrCycleDetected)

	g = network.NewGraph()
	require.NoError(t, g.AddReach(network.Reach{ID: "r1", From: "a", To: "b", Length: 1, Weight: 1}))
	require.NoError(t, g.AddReach(network.Reach{ID: "r2", From: "a", To: "c", Length: 1, Weight: 1}))
	require.ErrorIs(t, g.Validate(), network.ErrNotDendritic)
}

func TestComputeAFV(t *testing.T) {
	g := fork(t)
	afv, err := g.ComputeAFV()
	require.NoError(t, err)

	require.InDelta(t, 1.0, afv["r3"], 1e-12, "outlet reach")
	require.InDelta(t, 1.0, afv["r9"], 1e-12, "outlet of detached network")
	require.InDelta(t, 0.75, afv["r1"], 1e-12)
	require.InDelta(t, 0.25, afv["r2"], 1e-12)
	require.InDelta(t, afv["r3"], afv["r1"]+afv["r2"], 1e-12, "PIs at a confluence sum to 1")
}

func TestComputeAFV_Precomputed(t *testing.T) {
	g, err := network.Build(network.File{Reaches: []network.Reach{
		{ID: "r1", From: "a", To: "b", Length: 1, AFV: 0.5},
		{ID: "r2", From: "b", To: "c", Length: 1},
	}})
	require.NoError(t, err)
	_, err = g.ComputeAFV()
	require.ErrorIs(t, err, network.ErrMixedAFV)

	g, err = network.Build(network.File{Reaches: []network.Reach{
		{ID: "r1", From: "a", To: "b", Length: 1, AFV: 0.5},
		{ID: "r2", From: "b", To: "c", Length: 1, AFV: 2},
	}})
	require.NoError(t, err)
	afv, err := g.ComputeAFV()
	require.NoError(t, err)
	require.Equal(t, 0.5, afv["r1"])
	require.Equal(t, 2.0, afv["r2"])
}

func TestDistances_Relations(t *testing.T) {
	g := fork(t)
	d, err := g.Distances([]string{"a", "b", "c", "d", "e"})
	require.NoError(t, err)
	require.Equal(t, 5, d.Len())

	const a, b, c, dd, e = 0, 1, 2, 3, 4

	// tributary siblings meet at j
	require.Equal(t, network.FlowUnconnected, d.Relation(a, b))
	lo, hi := d.Split(a, b)
	require.Equal(t, 10.0, lo)
	require.Equal(t, 40.0, hi)
	require.Equal(t, 50.0, d.Hydrologic(b, a))
	require.Equal(t, 0.0, d.Weight(a, b))

	// a drains into c
	require.Equal(t, network.FlowConnected, d.Relation(a, c))
	require.Equal(t, 90.0, d.Hydrologic(a, c))
	require.Equal(t, 90.0, d.Hydrologic(c, a))
	require.InDelta(t, math.Sqrt(0.75), d.Weight(c, a), 1e-12)

	// c is listed before b but b is upstream
	require.Equal(t, network.FlowConnected, d.Relation(c, b))
	require.Equal(t, 60.0, d.Hydrologic(c, b))
	require.InDelta(t, 0.5, d.Weight(b, c), 1e-12)

	// same reach
	require.Equal(t, network.FlowConnected, d.Relation(a, dd))
	require.Equal(t, 50.0, d.Hydrologic(a, dd))
	require.Equal(t, 1.0, d.Weight(a, dd))

	// separate network
	require.Equal(t, network.Unrelated, d.Relation(a, e))
	require.True(t, math.IsInf(d.Hydrologic(a, e), 1))

	dm := d.DownstreamMatrix()
	v, err := dm.At(a, b)
	require.NoError(t, err)
	require.Equal(t, 40.0, v)
	v, err = dm.At(c, a)
	require.NoError(t, err)
	require.Equal(t, 0.0, v, "downstream member of a flow-connected pair")
}

func TestDistances_UnknownSite(t *testing.T) {
	g := fork(t)
	_, err := g.Distances([]string{"a", "nope"})
	require.ErrorIs(t, err, network.ErrSiteNotFound)
}

func TestLoad_JSONAndYAML(t *testing.T) {
	dir := t.TempDir()
	yamlPath := filepath.Join(dir, "net.yaml")
	require.NoError(t, os.WriteFile(yamlPath, []byte(`reaches:
  - {id: r1, from: n1, to: j, length: 100, weight: 3}
  - {id: r2, from: n2, to: j, length: 50}
  - {id: r3, from: j, to: out, length: 200}
sites:
  - {id: a, reach: r1, offset: 40}
  - {id: b, reach: r2, offset: 10}
`), 0o600))
	jsonPath := filepath.Join(dir, "net.json")
	require.NoError(t, os.WriteFile(jsonPath, []byte(`{
  "reaches": [
    {"id": "r1", "from": "n1", "to": "j", "length": 100, "weight": 3},
    {"id": "r2", "from": "n2", "to": "j", "length": 50},
    {"id": "r3", "from": "j", "to": "out", "length": 200}
  ],
  "sites": [
    {"id": "a", "reach": "r1", "offset": 40},
    {"id": "b", "reach": "r2", "offset": 10}
  ]
}`), 0o600))

	for _, path := range []string{yamlPath, jsonPath} {
		g, err := network.Load(path)
		require.NoError(t, err, path)
		require.Equal(t, 3, g.ReachCount())
		r, ok := g.Reach("r2")
		require.True(t, ok)
		require.Equal(t, 1.0, r.Weight, "omitted weight defaults to 1")

		d, err := g.Distances([]string{"a", "b"})
		require.NoError(t, err)
		require.Equal(t, 50.0, d.Hydrologic(0, 1))
	}

	_, err := network.Load(filepath.Join(dir, "net.shp"))
	require.ErrorIs(t, err, network.ErrUnsupportedFormat)
}
