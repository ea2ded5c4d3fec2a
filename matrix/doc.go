// SPDX-License-Identifier: MIT

// Package matrix provides the dense, row-major float64 storage used for
// pairwise site matrices (Euclidean distances, downstream network distances,
// flow-connection weights) and the validators that guard them.
//
// What & Why:
//
//   - Dense keeps a flat buffer with the explicit offset formula i*cols + j,
//     so O(N²) pairwise tables stay cache friendly.
//   - Public accessors (At/Set) return errors instead of panicking.
//   - Validators (ValidateSquare, ValidateSymmetric, ValidateZeroDiagonal) are
//     the single source of truth for the distance-matrix invariants:
//     square, symmetric, zero diagonal, finite.
//   - SymDense bridges a symmetric Dense into gonum's mat.SymDense for
//     factorizations (Cholesky, log-determinants) done elsewhere.
//
// Complexity:
//
//   - NewDense: O(r*c); At/Set: O(1); Clone: O(r*c); UpperTriangle: O(n²).
//
// Errors (sentinel):
//
//   - ErrInvalidDimensions, ErrOutOfRange, ErrDimensionMismatch, ErrNonSquare,
//     ErrAsymmetry, ErrNonZeroDiagonal, ErrNaNInf, ErrNilMatrix.
package matrix
