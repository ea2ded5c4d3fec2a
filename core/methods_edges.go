// SPDX-License-Identifier: MIT
// File: methods_edges.go
// Role: Edge lifecycle & queries: AddEdge/RemoveEdge/HasEdge/GetEdge/Edges/EdgeCount,
//       Neighbors (downstream) and Incoming (upstream). Also: nextEdgeID().
// Determinism:
//   - Edges(), Neighbors(), Incoming() return edges sorted by Edge.ID asc.
//   - nextEdgeID() is monotonic and stable ("e" + decimal).
// Concurrency:
//   - Mutations under mu write lock; queries under mu read lock.

package core

import (
	"math"
	"sort"
	"strconv"
	"sync/atomic"
)

// edgeIDPrefix is the textual prefix for generated edge identifiers.
const edgeIDPrefix = 'e'

// AddEdge creates a new directed edge from → to with the given length.
// Missing endpoints are created.
//
// Steps:
//  1. Validate IDs, weight, loops.
//  2. Build Edge, apply opts (WithEdgeID).
//  3. Lock mu; reject duplicate IDs; ensure endpoints.
//  4. Store and index in out[from] / in[to].
//
// Errors: ErrEmptyVertexID, ErrBadWeight, ErrLoopNotAllowed, ErrDuplicateEdgeID.
// Complexity: O(1) amortized.
func (g *Graph) AddEdge(from, to string, length float64, opts ...EdgeOption) (string, error) {
	// 1) Input validation
	if from == "" || to == "" {
		return "", ErrEmptyVertexID
	}
	if length < 0 || math.IsNaN(length) || math.IsInf(length, 0) {
		return "", ErrBadWeight
	}
	if from == to {
		return "", ErrLoopNotAllowed
	}

	// 2) Build the edge; an explicit ID wins over the generator.
	e := &Edge{From: from, To: to, Weight: length}
	for _, opt := range opts {
		opt(e)
	}

	// 3) Insert under lock
	g.mu.Lock()
	defer g.mu.Unlock()
	if e.ID == "" {
		e.ID = nextEdgeID(g)
	} else if _, dup := g.edges[e.ID]; dup {
		return "", ErrDuplicateEdgeID
	}
	g.addVertexLocked(from)
	g.addVertexLocked(to)

	// 4) Store and link adjacency
	g.edges[e.ID] = e
	linkLocked(g.out, from, e.ID)
	linkLocked(g.in, to, e.ID)

	return e.ID, nil
}

// RemoveEdge deletes one edge by ID.
// Errors: ErrEdgeNotFound.
func (g *Graph) RemoveEdge(eid string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	e, ok := g.edges[eid]
	if !ok {
		return ErrEdgeNotFound
	}
	delete(g.edges, eid)
	delete(g.out[e.From], eid)
	delete(g.in[e.To], eid)

	return nil
}

// HasEdge reports whether at least one edge from → to exists.
func (g *Graph) HasEdge(from, to string) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	for eid := range g.out[from] {
		if g.edges[eid].To == to {
			return true
		}
	}

	return false
}

// GetEdge returns the edge with the given ID; treat it as read-only.
func (g *Graph) GetEdge(eid string) (*Edge, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	e, ok := g.edges[eid]
	if !ok {
		return nil, ErrEdgeNotFound
	}

	return e, nil
}

// Edges returns all edges sorted by ID.
// Complexity: O(E log E).
func (g *Graph) Edges() []*Edge {
	g.mu.RLock()
	defer g.mu.RUnlock()
	out := make([]*Edge, 0, len(g.edges))
	for _, e := range g.edges {
		out = append(out, e)
	}
	sortEdges(out)

	return out
}

// EdgeCount returns |E|.
func (g *Graph) EdgeCount() int {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return len(g.edges)
}

// Neighbors returns the outgoing (downstream) edges of id sorted by Edge.ID.
//
// Errors: ErrEmptyVertexID, ErrVertexNotFound.
// Complexity: O(d log d).
func (g *Graph) Neighbors(id string) ([]*Edge, error) {
	return g.incident(id, g.out)
}

// Incoming returns the incoming (upstream) edges of id sorted by Edge.ID.
//
// Errors: ErrEmptyVertexID, ErrVertexNotFound.
func (g *Graph) Incoming(id string) ([]*Edge, error) {
	return g.incident(id, g.in)
}

func (g *Graph) incident(id string, index map[string]map[string]struct{}) ([]*Edge, error) {
	if id == "" {
		return nil, ErrEmptyVertexID
	}
	g.mu.RLock()
	defer g.mu.RUnlock()
	if _, ok := g.vertices[id]; !ok {
		return nil, ErrVertexNotFound
	}
	out := make([]*Edge, 0, len(index[id]))
	for eid := range index[id] {
		out = append(out, g.edges[eid])
	}
	sortEdges(out)

	return out, nil
}

// linkLocked records eid under key in an adjacency index; mu must be held.
func linkLocked(index map[string]map[string]struct{}, key, eid string) {
	bucket, ok := index[key]
	if !ok {
		bucket = make(map[string]struct{})
		index[key] = bucket
	}
	bucket[eid] = struct{}{}
}

func sortEdges(es []*Edge) {
	sort.Slice(es, func(i, j int) bool { return es[i].ID < es[j].ID })
}

// nextEdgeID returns the next generated ID, skipping IDs already taken by
// WithEdgeID. mu must be held for writing.
func nextEdgeID(g *Graph) string {
	for {
		n := atomic.AddUint64(&g.nextEdgeID, 1)
		buf := make([]byte, 0, 21)
		buf = append(buf, edgeIDPrefix)
		buf = strconv.AppendUint(buf, n, 10)
		id := string(buf)
		if _, taken := g.edges[id]; !taken {
			return id
		}
	}
}
