// SPDX-License-Identifier: MIT

package observation

import "errors"

// Sentinel errors for observation sets.
var (
	// ErrInvalidSchema indicates a schema with empty or duplicated columns.
	ErrInvalidSchema = errors.New("observation: invalid schema")

	// ErrMissingColumn indicates that a schema column is absent from the input.
	ErrMissingColumn = errors.New("observation: missing column")

	// ErrTooFewSites indicates fewer than two sites.
	ErrTooFewSites = errors.New("observation: at least two sites are required")

	// ErrNonFinite indicates a NaN, infinite or unparsable numeric value.
	ErrNonFinite = errors.New("observation: non-finite value")

	// ErrDuplicateSite indicates two sites with the same ID.
	ErrDuplicateSite = errors.New("observation: duplicate site ID")

	// ErrLengthMismatch indicates a value slice whose length differs from Len.
	ErrLengthMismatch = errors.New("observation: length mismatch")

	// ErrIndexOutOfRange indicates a site index outside [0, Len).
	ErrIndexOutOfRange = errors.New("observation: index out of range")
)
