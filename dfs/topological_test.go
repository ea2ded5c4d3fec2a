// SPDX-License-Identifier: MIT

package dfs_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/ssnstat/core"
	"github.com/katalvlaran/ssnstat/dfs"
)

func addEdges(t *testing.T, g *core.Graph, pairs ...[2]string) {
	t.Helper()
	for _, p := range pairs {
		_, err := g.AddEdge(p[0], p[1], 1)
		require.NoError(t, err)
	}
}

func TestTopologicalSort_NilGraph(t *testing.T) {
	_, err := dfs.TopologicalSort(nil)
	require.ErrorIs(t, err, dfs.ErrGraphNil)
}

func TestTopologicalSort_StreamOrder(t *testing.T) {
	g := core.NewGraph()
	addEdges(t, g, [2]string{"h1", "j"}, [2]string{"h2", "j"}, [2]string{"j", "out"})

	order, err := dfs.TopologicalSort(g)
	require.NoError(t, err)
	require.Len(t, order, 4)

	pos := make(map[string]int, len(order))
	for i, v := range order {
		pos[v] = i
	}
	require.Less(t, pos["h1"], pos["j"])
	require.Less(t, pos["h2"], pos["j"])
	require.Less(t, pos["j"], pos["out"])
	require.Equal(t, "out", order[len(order)-1])
}

func TestTopologicalSort_Deterministic(t *testing.T) {
	g := core.NewGraph()
	addEdges(t, g, [2]string{"b", "c"}, [2]string{"a", "c"})

	first, err := dfs.TopologicalSort(g)
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		again, err := dfs.TopologicalSort(g)
		require.NoError(t, err)
		require.Equal(t, first, again)
	}
}

func TestTopologicalSort_Cycle(t *testing.T) {
	g := core.NewGraph()
	addEdges(t, g, [2]string{"a", "b"}, [2]string{"b", "c"}, [2]string{"c", "a"})

	_, err := dfs.TopologicalSort(g)
	require.ErrorIs(t, err, dfs.ErrCycleDetected)
}

func TestTopologicalSort_Cancelled(t *testing.T) {
	g := core.NewGraph()
	addEdges(t, g, [2]string{"a", "b"})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := dfs.TopologicalSort(g, dfs.WithCancelContext(ctx))
	require.ErrorIs(t, err, context.Canceled)
}
