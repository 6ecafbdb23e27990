// Package error defines domain-specific errors for the application.
package error

import "errors"

// Goal domain errors.
var (
	ErrGoalNotFound            = errors.New("goal not found")
	ErrGoalTitleRequired       = errors.New("goal title is required")
	ErrGoalNotOwnedByUser      = errors.New("goal does not belong to user")
	ErrInvalidGoalTargetAmount = errors.New("goal target amount must be positive")
	ErrInvalidContribution     = errors.New("contribution amount must be positive")
	ErrGoalNotActive           = errors.New("goal is not active")
)
