// SPDX-License-Identifier: MIT

// Package core defines the central Graph, Vertex, and Edge types of a stream
// network and the NewGraph constructor.
package core

import (
	"errors"
	"sync"
)

// Sentinel errors for core graph operations.
var (
	// ErrEmptyVertexID indicates that the provided vertex ID is empty.
	ErrEmptyVertexID = errors.New("core: vertex ID is empty")

	// ErrVertexNotFound indicates an operation referenced a non-existent vertex.
	ErrVertexNotFound = errors.New("core: vertex not found")

	// ErrEdgeNotFound indicates an operation referenced a non-existent edge.
	ErrEdgeNotFound = errors.New("core: edge not found")

	// ErrBadWeight indicates a negative, NaN or infinite edge length.
	ErrBadWeight = errors.New("core: edge weight must be finite and non-negative")

	// ErrLoopNotAllowed indicates a self-loop was attempted.
	ErrLoopNotAllowed = errors.New("core: self-loop not allowed")

	// ErrDuplicateEdgeID indicates WithEdgeID reused an existing edge ID.
	ErrDuplicateEdgeID = errors.New("core: duplicate edge ID")
)

// Vertex represents a node of the network (source, confluence or outlet).
//
// Metadata stores arbitrary key-value data and is shared on Clone.
type Vertex struct {
	// ID is the unique identifier for this Vertex.
	ID string

	// Metadata stores arbitrary user data. It is not deep-copied by Clone.
	Metadata map[string]interface{}
}

// Edge represents a directed connection From→To.
//
// In a stream network, From is the upstream end of a reach and To its
// downstream end; Weight is the reach length.
type Edge struct {
	// ID uniquely identifies this edge in the Graph.
	ID string

	// From is the source (upstream) vertex ID.
	From string

	// To is the destination (downstream) vertex ID.
	To string

	// Weight is the edge length; finite and non-negative.
	Weight float64
}

// GraphOption configures behavior of a Graph before creation.
type GraphOption func(g *Graph)

// WithVertexCapacity pre-sizes the vertex and adjacency maps.
func WithVertexCapacity(n int) GraphOption {
	return func(g *Graph) {
		if n > 0 {
			g.vertices = make(map[string]*Vertex, n)
			g.out = make(map[string]map[string]struct{}, n)
			g.in = make(map[string]map[string]struct{}, n)
		}
	}
}

// EdgeOption configures properties of individual edges when added.
type EdgeOption func(*Edge)

// WithEdgeID sets a caller-chosen edge ID (e.g. a reach identifier) instead
// of an auto-generated one.
func WithEdgeID(id string) EdgeOption {
	return func(e *Edge) {
		if id != "" {
			e.ID = id
		}
	}
}

// Graph is the core in-memory directed graph.
//
// mu protects vertices, edges and both adjacency indexes.
// nextEdgeID is an atomic counter for unique Edge.ID generation.
type Graph struct {
	mu sync.RWMutex

	nextEdgeID uint64             // atomic edge ID generator
	vertices   map[string]*Vertex // vertex ID → Vertex
	edges      map[string]*Edge   // edge ID → Edge

	// out[from][edgeID] and in[to][edgeID] index edges by endpoint.
	out map[string]map[string]struct{}
	in  map[string]map[string]struct{}
}

// NewGraph creates an empty directed Graph.
// Complexity: O(1)
func NewGraph(opts ...GraphOption) *Graph {
	g := &Graph{
		vertices: make(map[string]*Vertex),
		edges:    make(map[string]*Edge),
		out:      make(map[string]map[string]struct{}),
		in:       make(map[string]map[string]struct{}),
	}
	for _, opt := range opts {
		opt(g)
	}

	return g
}
