// SPDX-License-Identifier: MIT

package core_test

import (
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/ssnstat/core"
)

func TestAddEdge_Validation(t *testing.T) {
	g := core.NewGraph()

	_, err := g.AddEdge("", "B", 1)
	require.ErrorIs(t, err, core.ErrEmptyVertexID)

	_, err = g.AddEdge("A", "A", 1)
	require.ErrorIs(t, err, core.ErrLoopNotAllowed)

	for _, w := range []float64{-1, math.NaN(), math.Inf(1)} {
		_, err = g.AddEdge("A", "B", w)
		require.ErrorIs(t, err, core.ErrBadWeight)
	}

	_, err = g.AddEdge("A", "B", 10, core.WithEdgeID("r1"))
	require.NoError(t, err)
	_, err = g.AddEdge("B", "C", 10, core.WithEdgeID("r1"))
	require.ErrorIs(t, err, core.ErrDuplicateEdgeID)
}

func TestAddEdge_AutoIDsAndAdjacency(t *testing.T) {
	g := core.NewGraph()
	e1, err := g.AddEdge("A", "C", 5)
	require.NoError(t, err)
	e2, err := g.AddEdge("B", "C", 7)
	require.NoError(t, err)
	require.Equal(t, "e1", e1)
	require.Equal(t, "e2", e2)

	require.Equal(t, []string{"A", "B", "C"}, g.Vertices())
	require.True(t, g.HasEdge("A", "C"))
	require.False(t, g.HasEdge("C", "A"), "edges are directed downstream")

	in, out, err := g.Degree("C")
	require.NoError(t, err)
	require.Equal(t, 2, in)
	require.Equal(t, 0, out)

	up, err := g.Incoming("C")
	require.NoError(t, err)
	require.Len(t, up, 2)
	require.Equal(t, "e1", up[0].ID)

	down, err := g.Neighbors("A")
	require.NoError(t, err)
	require.Len(t, down, 1)
	require.Equal(t, 5.0, down[0].Weight)

	_, err = g.Neighbors("Z")
	require.ErrorIs(t, err, core.ErrVertexNotFound)
}

func TestGeneratedIDSkipsExplicit(t *testing.T) {
	g := core.NewGraph()
	_, err := g.AddEdge("A", "B", 1, core.WithEdgeID("e1"))
	require.NoError(t, err)
	id, err := g.AddEdge("B", "C", 1)
	require.NoError(t, err)
	require.Equal(t, "e2", id)
}

func TestRemoveEdgeAndClone(t *testing.T) {
	g := core.NewGraph()
	id, err := g.AddEdge("A", "B", 3)
	require.NoError(t, err)

	c := g.Clone()
	require.NoError(t, g.RemoveEdge(id))
	require.ErrorIs(t, g.RemoveEdge(id), core.ErrEdgeNotFound)
	require.Equal(t, 0, g.EdgeCount())

	require.Equal(t, 1, c.EdgeCount(), "clone keeps its own edges")
	e, err := c.GetEdge(id)
	require.NoError(t, err)
	require.Equal(t, 3.0, e.Weight)
}

func TestConcurrentReads(t *testing.T) {
	g := core.NewGraph()
	for _, pair := range [][2]string{{"A", "C"}, {"B", "C"}, {"C", "D"}} {
		_, err := g.AddEdge(pair[0], pair[1], 1)
		require.NoError(t, err)
	}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				_ = g.Vertices()
				_, _ = g.Neighbors("C")
				_, _ = g.Incoming("C")
			}
		}()
	}
	wg.Wait()
	require.Equal(t, 4, g.VertexCount())
}
