// SPDX-License-Identifier: MIT

// Package network models a dendritic stream network and derives the distance
// structures that flow-based spatial models need.
//
// A network is a set of reaches. Each reach is a directed edge of a core.Graph
// pointing downstream, from an upstream node to a downstream node, with a
// length and an additive-function weight (for example watershed area). Sites
// sit on reaches at an offset measured upstream from the reach's downstream
// node.
//
// Pair relations:
//
//   - FlowConnected: water flows from one site to the other. The hydrologic
//     distance h is the length of the downstream path between them.
//   - FlowUnconnected: both sites drain to a common confluence but neither is
//     downstream of the other. Split returns the two downstream distances
//     a ≤ b to that confluence; the hydrologic distance is a + b.
//   - Unrelated: the sites lie on different networks.
//
// Additive function values (AFV) follow the usual segment-PI construction:
// the proportional influence of a reach is its weight divided by the sum of
// weights entering the same confluence, and the AFV of a reach is the product
// of proportional influences down to the outlet. ComputeAFV walks nodes in
// reverse topological order (dfs.TopologicalSort). Reaches loaded with
// precomputed AFVs keep them unchanged.
//
// Distances runs one float64 Dijkstra per distinct site node and then
// classifies every pair in O(N²·V) worst case.
//
// Topology files (Load) are JSON or YAML documents:
//
//	reaches:
//	  - {id: r1, from: n1, to: n3, length: 1200, weight: 4.2}
//	sites:
//	  - {id: s1, reach: r1, offset: 150}
//
// A Graph is not safe for concurrent mutation; build it, then share it
// read-only.
package network
