// SPDX-License-Identifier: MIT

package ssn

import "errors"

// Sentinel errors for model fitting and comparison.
var (
	// ErrNilInput indicates a nil data set.
	ErrNilInput = errors.New("ssn: nil input")

	// ErrInvalidConfig indicates a covariance configuration that cannot be
	// fitted, such as every form "none" without a nugget.
	ErrInvalidConfig = errors.New("ssn: invalid covariance configuration")

	// ErrBadFormula indicates a formula that cannot be parsed.
	ErrBadFormula = errors.New("ssn: malformed formula")

	// ErrUnknownColumn indicates a formula term with no matching column.
	ErrUnknownColumn = errors.New("ssn: unknown column")

	// ErrNetworkRequired indicates a tail-up or tail-down form without
	// network distances.
	ErrNetworkRequired = errors.New("ssn: network distances required")

	// ErrMisaligned indicates network distances not in observation order.
	ErrMisaligned = errors.New("ssn: network distances not aligned with observations")

	// ErrTooFewObservations indicates n ≤ p.
	ErrTooFewObservations = errors.New("ssn: more observations than coefficients required")

	// ErrSingularDesign indicates linearly dependent design columns.
	ErrSingularDesign = errors.New("ssn: design matrix is rank deficient")

	// ErrNotPositiveDefinite indicates a covariance matrix that failed to
	// factorise at the optimum.
	ErrNotPositiveDefinite = errors.New("ssn: covariance matrix not positive definite")

	// ErrNotConverged indicates that the optimiser stopped on a limit or
	// failure.
	ErrNotConverged = errors.New("ssn: likelihood optimisation did not converge")

	// ErrNoResult indicates a Fitter that returned neither a result nor an
	// error.
	ErrNoResult = errors.New("ssn: fitter returned no result")
)
