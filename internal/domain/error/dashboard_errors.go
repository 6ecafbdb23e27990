// Package error defines domain-specific errors for the application.
package error

import "errors"

// Dashboard domain errors.
var (
	// ErrInvalidDateRange is returned when end_date precedes start_date.
	ErrInvalidDateRange = errors.New("end_date must not be before start_date")
)
