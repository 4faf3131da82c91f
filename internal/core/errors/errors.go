// Package errors provides centralized error definitions for the application.
// Errors are organized by domain to avoid duplication and provide consistent naming.
//
// Naming conventions:
//   - Exported errors (Err*): Use for errors that callers need to check with errors.Is
//   - Unexported errors (err*): Use for internal package errors
//   - All sentinel errors should be defined as variables, not inline errors.New calls
//   - Use fmt.Errorf with %w to wrap sentinel errors with context
package errors

import "errors"

// Dataset errors.
var (
	// ErrDatasetNotFound indicates the dataset source does not exist.
	ErrDatasetNotFound = errors.New("dataset not found")

	// ErrMalformedDataset indicates the dataset could not be parsed.
	ErrMalformedDataset = errors.New("malformed dataset")

	// ErrDatasetEmpty indicates the dataset has no records.
	ErrDatasetEmpty = errors.New("dataset is empty")
)

// Request validation errors.
var (
	// ErrUnknownSite indicates a site selector value outside the option set.
	ErrUnknownSite = errors.New("unknown launch site")

	// ErrInvalidRange indicates a payload range that is not numeric or is inverted.
	ErrInvalidRange = errors.New("invalid payload range")

	// ErrUnsupportedFormat indicates an unknown chart image format.
	ErrUnsupportedFormat = errors.New("unsupported chart format")
)

// Configuration errors.
var (
	// ErrInvalidConfig indicates an invalid configuration value.
	ErrInvalidConfig = errors.New("invalid config")
)

// Is is a convenience wrapper around errors.Is.
func Is(err, target error) bool {
	return errors.Is(err, target)
}
