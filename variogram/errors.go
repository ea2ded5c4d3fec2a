// SPDX-License-Identifier: MIT

package variogram

import "errors"

// Sentinel errors for variogram estimation.
var (
	// ErrNilInput indicates a nil set, matrix, cloud or semivariogram.
	ErrNilInput = errors.New("variogram: nil input")

	// ErrInvalidCutoff indicates a non-positive or non-finite cutoff.
	ErrInvalidCutoff = errors.New("variogram: cutoff must be positive and finite")

	// ErrInvalidWidth indicates a non-positive or non-finite bin width.
	ErrInvalidWidth = errors.New("variogram: width must be positive and finite")

	// ErrInvalidBins indicates a bin count below one.
	ErrInvalidBins = errors.New("variogram: bin count must be at least 1")

	// ErrInvalidThreshold indicates a negative low-pair threshold.
	ErrInvalidThreshold = errors.New("variogram: low-pair threshold must be non-negative")

	// ErrInvalidTrials indicates a permutation trial count below one.
	ErrInvalidTrials = errors.New("variogram: trials must be at least 1")

	// ErrDegenerateLocations indicates that all sites share one location.
	ErrDegenerateLocations = errors.New("variogram: all sites coincide")

	// ErrConstantResponse indicates that all responses are equal.
	ErrConstantResponse = errors.New("variogram: response is constant")

	// ErrDimensionMismatch indicates a distance matrix that is not N×N.
	ErrDimensionMismatch = errors.New("variogram: distance matrix does not match observation count")

	// ErrMisaligned indicates network distances whose site order differs
	// from the observation set.
	ErrMisaligned = errors.New("variogram: network distances not aligned with observations")

	// ErrIndexOutOfRange indicates a cloud index outside [0, Len).
	ErrIndexOutOfRange = errors.New("variogram: index out of range")
)
