// SPDX-License-Identifier: MIT

// Package report writes analysis results as flat comma-delimited tables
// with a header row, plus a JSON writer for run summaries.
//
// Tables:
//
//   - WriteCloud:       site_i, site_j, distance, semivariance, abs_diff
//   - WriteBins:        one row per populated lag class, low_confidence flag
//   - WriteTorgegram:   WriteBins columns prefixed with the distance class
//   - WriteTrials:      long format, trial 0 is the observed curve
//   - WriteEnvelope:    per-bin permutation band and p-value
//   - WriteComparison:  ranked candidates, failed ones appended with status=failed
//   - WriteCoefficients fixed effects of every ranked candidate
//   - WriteSummary:     five-number summary of pairwise distances
//
// Floats are written in the shortest form that round-trips; undefined
// values (for example a failed candidate's AIC) are empty cells.
package report
