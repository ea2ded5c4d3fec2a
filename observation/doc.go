// SPDX-License-Identifier: MIT

// Package observation holds the input of every analysis: an ordered, immutable
// set of point observations with projected coordinates, a scalar response and
// optional named covariates.
//
// Columns are declared up front in a Schema rather than discovered by name at
// use sites; a missing column is reported once, at load time, with its name.
//
// Invariants enforced by New:
//
//   - at least two sites (ErrTooFewSites);
//   - finite coordinates, response and covariates (ErrNonFinite);
//   - unique site IDs (ErrDuplicateSite).
//
// Sets are never modified in place. WithResponses, Subset, Filter and Join
// return new sets that share nothing mutable with the receiver, which is what
// the permutation test relies on.
//
// Coincident coordinates are allowed here; pairs at distance zero are
// dropped later, when semivariances are binned.
package observation
