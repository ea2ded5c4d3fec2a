// SPDX-License-Identifier: MIT

// Package dfs provides depth-first algorithms on directed core.Graph values.
//
// TopologicalSort orders vertices so that for every edge u→v, u precedes v.
// On a stream network the result runs from headwaters to the outlet, which is
// the order in which additive function values are propagated.
//
// Error handling:
//
//   - ErrGraphNil:       nil *core.Graph.
//   - ErrCycleDetected:  a back-edge was found; the wrapped message names the
//     vertex that closed the cycle.
//   - ErrNeighborFetch:  adjacency lookup failed.
//   - ctx.Err():         cancellation via WithCancelContext.
//
// Complexity:
//
//   - Time:   O(V + E)
//   - Memory: O(V)
package dfs
