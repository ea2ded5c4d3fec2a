// SPDX-License-Identifier: MIT

// Package dijkstra computes single-source shortest paths on a core.Graph with
// non-negative float64 edge lengths.
//
// Overview:
//
//   - In a stream network every reach is directed downstream, so the distances
//     returned from a vertex are flow-path lengths to every vertex below it;
//     vertices that are not downstream are reported as +Inf.
//   - A min-heap with lazy decrease-key always expands the next-closest vertex.
//   - Optional predecessor map (WithReturnPath) and distance cap (WithMaxDistance).
//
// Performance and complexity:
//
//   - Time:  O((V + E) log V)
//   - Space: O(V + E)
//
// Error handling (sentinel errors):
//
//   - ErrEmptySource:     Source option missing.
//   - ErrNilGraph:        nil *core.Graph.
//   - ErrVertexNotFound:  Source not in the graph.
//   - ErrNegativeWeight:  an edge length is negative or NaN (pre-scan, O(E)).
//   - ErrBadMaxDistance:  WithMaxDistance received a negative or NaN value.
//
// API reference:
//
//	func Dijkstra(g *core.Graph, opts ...Option) (dist map[string]float64, prev map[string]string, err error)
//
// Thread safety:
//
//   - Dijkstra only reads g; concurrent calls on an unchanging graph are safe.
package dijkstra
