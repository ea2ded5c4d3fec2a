// SPDX-License-Identifier: MIT

// Package core provides the thread-safe, in-memory directed graph that backs a
// stream network: vertices are confluences, sources and outlets; edges are
// reaches oriented downstream and weighted by their length in metres.
//
// The Graph G = (V,E) is intentionally narrow:
//
//   - Every edge is directed (From = upstream end, To = downstream end).
//   - Weights are finite, non-negative float64 lengths.
//   - Self-loops are rejected; parallel edges between the same vertices are
//     allowed (braided channels) and distinguished by Edge.ID.
//   - Edge IDs are caller-supplied (WithEdgeID, usually the reach ID) or
//     generated atomically ("e1", "e2", …).
//   - A single sync.RWMutex guards vertices, edges and adjacency, so a built
//     topology can be shared read-only across goroutines.
//
// Deterministic iteration:
//
//   - Vertices() is sorted by ID; Edges(), Neighbors() and Incoming() are sorted
//     by Edge.ID. Downstream algorithms (dijkstra, dfs) therefore produce
//     reproducible results.
//
// Core Methods:
//
//	AddVertex(id string) error                                               // O(1)
//	HasVertex(id string) bool                                                // O(1)
//	AddEdge(from, to string, length float64, opts ...EdgeOption) (string, error) // O(1)
//	RemoveEdge(edgeID string) error                                          // O(1)
//	GetEdge(edgeID string) (*Edge, error)                                    // O(1)
//	Neighbors(id string) ([]*Edge, error)   // outgoing (downstream) edges  // O(d log d)
//	Incoming(id string) ([]*Edge, error)    // incoming (upstream) edges    // O(d log d)
//	Degree(id string) (in, out int, err error)
//	Vertices() []string, Edges() []*Edge, VertexCount(), EdgeCount(), Clone()
//
// Errors:
//
//	ErrEmptyVertexID, ErrVertexNotFound, ErrEdgeNotFound, ErrBadWeight,
//	ErrLoopNotAllowed, ErrDuplicateEdgeID.
package core
