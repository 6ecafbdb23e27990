// Package error defines domain-specific errors for the application.
package error

import "errors"

// Category domain errors.
var (
	ErrCategoryNotFound     = errors.New("category not found")
	ErrCategoryNameRequired = errors.New("category name is required")
	ErrCategoryNameTaken    = errors.New("category name already in use")
	ErrInvalidCategoryType  = errors.New("invalid category type")
)
