// SPDX-License-Identifier: MIT

package network

import "github.com/katalvlaran/ssnstat/core"

// Reach is one directed stream segment.
type Reach struct {
	ID     string  `json:"id" yaml:"id"`
	From   string  `json:"from" yaml:"from"` // upstream node
	To     string  `json:"to" yaml:"to"`     // downstream node
	Length float64 `json:"length" yaml:"length"`
	Weight float64 `json:"weight" yaml:"weight"`

	// AFV, when positive on every reach, replaces the computed value.
	AFV float64 `json:"afv,omitempty" yaml:"afv,omitempty"`
}

// Site places an observation on a reach. Offset is measured upstream from
// the reach's downstream node.
type Site struct {
	ID     string  `json:"id" yaml:"id"`
	Reach  string  `json:"reach" yaml:"reach"`
	Offset float64 `json:"offset" yaml:"offset"`
}

// Relation classifies a pair of sites.
type Relation int

const (
	// Unrelated pairs lie on different networks.
	Unrelated Relation = iota
	// FlowConnected pairs share a flow path.
	FlowConnected
	// FlowUnconnected pairs share a downstream confluence only.
	FlowUnconnected
)

// String returns a short label used in reports.
func (r Relation) String() string {
	switch r {
	case FlowConnected:
		return "flow-connected"
	case FlowUnconnected:
		return "flow-unconnected"
	default:
		return "unrelated"
	}
}

// Graph is a stream network: a core.Graph of reaches plus sites.
type Graph struct {
	g       *core.Graph
	reaches map[string]*Reach
	sites   map[string]Site
	afv     map[string]float64 // reach ID → AFV, filled by ComputeAFV
}

// NewGraph returns an empty network.
func NewGraph() *Graph {
	return &Graph{
		g:       core.NewGraph(),
		reaches: make(map[string]*Reach),
		sites:   make(map[string]Site),
	}
}

// File is the on-disk topology document read by Load.
type File struct {
	Reaches []Reach `json:"reaches" yaml:"reaches"`
	Sites   []Site  `json:"sites" yaml:"sites"`
}
