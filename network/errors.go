// SPDX-License-Identifier: MIT

package network

import "errors"

// Sentinel errors for network construction and queries.
var (
	// ErrInvalidReach indicates an empty ID, non-positive weight or bad length.
	ErrInvalidReach = errors.New("network: invalid reach")

	// ErrDuplicateReach indicates AddReach reused a reach ID.
	ErrDuplicateReach = errors.New("network: duplicate reach ID")

	// ErrUnknownReach indicates a site references a reach that does not exist.
	ErrUnknownReach = errors.New("network: unknown reach")

	// ErrDuplicateSite indicates AddSite reused a site ID.
	ErrDuplicateSite = errors.New("network: duplicate site ID")

	// ErrSiteNotFound indicates Distances was asked for an unknown site.
	ErrSiteNotFound = errors.New("network: site not found")

	// ErrOffsetOutOfRange indicates a site offset outside [0, reach length].
	ErrOffsetOutOfRange = errors.New("network: site offset outside reach")

	// ErrNotDendritic indicates a node with more than one downstream reach.
	ErrNotDendritic = errors.New("network: network is not dendritic")

	// ErrMixedAFV indicates that only some reaches carry precomputed AFVs.
	ErrMixedAFV = errors.New("network: precomputed AFV missing on some reaches")

	// ErrUnsupportedFormat indicates a topology file extension Load cannot read.
	ErrUnsupportedFormat = errors.New("network: unsupported topology format")
)
