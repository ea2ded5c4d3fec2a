// SPDX-License-Identifier: MIT

// Package distance builds pairwise Euclidean distance matrices for an
// observation set and summarises them.
//
// The matrix is N×N, symmetric and has a zero diagonal. Only the strict upper
// triangle carries independent information, so Summary reads N·(N−1)/2
// values and never double counts a pair.
//
// Quantiles use linear interpolation between order statistics
// (h = (n−1)·p, the "type 7" rule), which is the default of most statistical
// environments and what analysts compare these numbers against.
//
// Coincident points are legal: every distance is then zero and the summary
// degenerates to zeros without an error.
//
// Complexity: Euclidean O(N²) time and memory; Summary O(N² log N).
package distance
