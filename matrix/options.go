// SPDX-License-Identifier: MIT

// Package matrix: documented defaults (single source of truth).
package matrix

// Numeric policy.
const (
	// DefaultValidateNaNInf toggles strict finite-value validation on Set and Apply.
	DefaultValidateNaNInf = true
)
