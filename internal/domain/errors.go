package domain

import "errors"

// Domain errors represent error conditions in the photocat domain.
// These errors are returned by the public API and can be checked with errors.Is.
var (
	// ErrInvalidInterval is returned when a scan mode requires an interval
	// and the supplied value is missing or below 1.
	ErrInvalidInterval = errors.New("photocat: interval must be at least 1")

	// ErrUnknownScanMode is returned when a scan mode value is not one of
	// the defined modes.
	ErrUnknownScanMode = errors.New("photocat: unknown scan mode")

	// ErrEntryNotFound is returned when an operation references a filename
	// that is not in the catalog.
	ErrEntryNotFound = errors.New("photocat: entry not found")

	// ErrDuplicateValue is returned when assigning a category value an
	// entry already carries, or adding a value a category group already has.
	ErrDuplicateValue = errors.New("photocat: value already present")

	// ErrGroupNotFound is returned when a category group name is unknown.
	ErrGroupNotFound = errors.New("photocat: category group not found")

	// ErrUnknownValue is returned when a value is not part of the
	// category schema for the named group.
	ErrUnknownValue = errors.New("photocat: value not in category schema")

	// ErrInvalidConfig is returned when configuration validation fails.
	ErrInvalidConfig = errors.New("photocat: invalid configuration")
)
