// SPDX-License-Identifier: MIT

// Package variogram estimates empirical semivariograms: the unbinned cloud,
// lag-binned classical and Cressie–Hawkins estimates, a permutation envelope
// for testing spatial independence, and the stream-network Torgegram.
//
// Cloud:
//
//   - One CloudPoint per unordered pair i<j with
//     Semivariance = ½·(z_i − z_j)² exactly.
//   - O(N²) time and memory. Fine for hundreds of sites; N in the tens of
//     thousands needs a tiled or streaming variant, which this package does
//     not provide.
//
// Binning (Empirical):
//
//   - Bin k covers [k·width, (k+1)·width) and the bins partition [0, cutoff).
//   - A pair with distance d, 0 < d < cutoff, falls in bin ⌊d/width⌋. Pairs at
//     or beyond the cutoff are dropped; pairs at distance zero (coincident
//     sites) are excluded. Empty bins are omitted.
//   - Defaults: cutoff = bounding-box diagonal / 3, width = cutoff / 15.
//     WithBins changes the divisor; WithWidth overrides it.
//   - Classical: arithmetic mean of the bin's semivariances.
//   - Cressie–Hawkins: ½·(mean |z_i − z_j|^½)⁴ / (0.457 + 0.494/N_bin), on the
//     same bin assignment.
//   - Bins with fewer pairs than the low-pair threshold (default 30) carry
//     LowConfidence = true.
//
// Randomize permutes the responses over fixed locations R times (default
// 100) and re-bins each trial with the observed cutoff, width, estimator and
// threshold. The same seed reproduces the same trials. Every curve is kept.
//
// Torgegram bins Euclidean, flow-connected and flow-unconnected pairs
// separately, with the network distances supplied by network.Distances.
//
// Errors:
//
//   - configuration: ErrInvalidCutoff, ErrInvalidWidth, ErrInvalidBins,
//     ErrInvalidThreshold, ErrInvalidTrials.
//   - data: ErrDegenerateLocations, ErrConstantResponse, ErrDimensionMismatch,
//     ErrMisaligned.
package variogram
