// SPDX-License-Identifier: MIT

package variogram_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/ssnstat/network"
	"github.com/katalvlaran/ssnstat/observation"
	"github.com/katalvlaran/ssnstat/variogram"
)

func streamFixture(t *testing.T) (*observation.Set, *network.Distances) {
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

	return set, nd
}

func TestTorgegram_Classes(t *testing.T) {
	set, nd := streamFixture(t)
	tg, err := variogram.Torgegram(set, nd, variogram.WithCutoff(1000), variogram.WithWidth(1000))
	require.NoError(t, err)

	require.Equal(t, 6, tg.Euclidean.TotalPairs())
	// FC: a-c 90, a-d 50, b-c 60, c-d 140; FU: a-b 50, b-d 100
	require.Equal(t, 4, tg.FlowConnected.TotalPairs())
	require.Equal(t, 2, tg.FlowUnconnected.TotalPairs())
	require.InDelta(t, 85.0, tg.FlowConnected.Bins[0].MeanDistance, 1e-12)
	require.InDelta(t, 75.0, tg.FlowUnconnected.Bins[0].MeanDistance, 1e-12)
	require.True(t, tg.FlowConnected.Bins[0].LowConfidence)

	// a-c: ½·1², a-d: ½·6², b-c: ½·2², c-d: ½·5²
	require.InDelta(t, (0.5+18+2+12.5)/4, tg.FlowConnected.Bins[0].Gamma, 1e-12)
}

func TestTorgegram_DefaultCutoffShared(t *testing.T) {
	set, nd := streamFixture(t)
	tg, err := variogram.Torgegram(set, nd)
	require.NoError(t, err)
	require.Equal(t, tg.Euclidean.Cutoff, tg.FlowConnected.Cutoff)
	require.Equal(t, tg.Euclidean.Cutoff, tg.FlowUnconnected.Cutoff)
	require.InDelta(t, set.Diagonal()/3, tg.Euclidean.Cutoff, 1e-12)
}

func TestTorgegram_Misaligned(t *testing.T) {
	set, nd := streamFixture(t)
	sub, err := set.Subset([]int{1, 0, 2, 3})
	require.NoError(t, err)
	_, err = variogram.Torgegram(sub, nd)
	require.ErrorIs(t, err, variogram.ErrMisaligned)
}

func TestRandomize_NetworkClass(t *testing.T) {
	set, nd := streamFixture(t)
	tg, err := variogram.Torgegram(set, nd, variogram.WithCutoff(1000), variogram.WithWidth(1000))
	require.NoError(t, err)

	env, err := variogram.Randomize(set, nil, tg.FlowConnected, variogram.WithTrials(5),
		variogram.WithCloudOptions(variogram.NetworkClass(nd, network.FlowConnected)...))
	require.NoError(t, err)
	for _, tr := range env.Trials {
		require.Equal(t, 4, tr.TotalPairs())
	}
}
