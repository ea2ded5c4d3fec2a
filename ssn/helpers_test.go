// SPDX-License-Identifier: MIT

package ssn_test

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/ssnstat/network"
	"github.com/katalvlaran/ssnstat/observation"
	"github.com/katalvlaran/ssnstat/ssn"
)

var gridSchema = observation.Schema{ID: "id", X: "x", Y: "y", Response: "z", Covariates: []string{"elev", "slope"}}

// gridSet is 30 sites on a 100 m grid with a smooth spatial field, a linear
// elevation trend and small independent noise.
func gridSet(t *testing.T) *observation.Set {
	t.Helper()
	rng := rand.New(rand.NewPCG(17, 29))
	sites := make([]observation.Site, 0, 30)
	for i := 0; i < 6; i++ {
		for j := 0; j < 5; j++ {
			x, y := float64(i)*100, float64(j)*100
			elev := 10*float64(i) + float64(j)
			field := math.Sin(x/200) + math.Cos(y/150)
			sites = append(sites, observation.Site{
				X:          x,
				Y:          y,
				Response:   2 + 0.1*elev + field + 0.2*rng.NormFloat64(),
				Covariates: map[string]float64{"elev": elev, "slope": rng.Float64()},
			})
		}
	}
	set, err := observation.New(gridSchema, sites)
	require.NoError(t, err)

	return set
}

func gridData(t *testing.T) *ssn.Data {
	t.Helper()
	d, err := ssn.NewData(gridSet(t), nil)
	require.NoError(t, err)

	return d
}

// forkData places four sites on a two-tributary network.
func forkData(t *testing.T) *ssn.Data {
	t.Helper()
	g, err := network.Build(network.File{
		Reaches: []network.Reach{
			{ID: "r1", From: "n1", To: "j", Length: 100, Weight: 3},
			{ID: "r2", From: "n2", To: "j", Length: 50, Weight: 1},
			{ID: "r3", From: "j", To: "out", Length: 200, Weight: 4},
		},
		Sites: []network.Site{
			{ID: "a", Reach: "r1", Offset: 40},
			{ID: "b", Reach: "r2", Offset: 10},
			{ID: "c", Reach: "r3", Offset: 150},
			{ID: "d", Reach: "r1", Offset: 90},
		},
	})
	require.NoError(t, err)
	set, err := observation.New(observation.Schema{ID: "id", X: "x", Y: "y", Response: "z"}, []observation.Site{
		{ID: "a", X: 0, Y: 60, Response: 1},
		{ID: "b", X: 30, Y: 40, Response: 4},
		{ID: "c", X: 20, Y: -80, Response: 2},
		{ID: "d", X: -10, Y: 100, Response: 7},
	})
	require.NoError(t, err)
	nd, err := g.Distances(set.IDs())
	require.NoError(t, err)
	data, err := ssn.NewData(set, nd)
	require.NoError(t, err)

	return data
}
