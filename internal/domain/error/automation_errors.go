// Package error defines domain-specific errors for the application.
package error

import "errors"

// Automation engine errors.
var (
	// ErrScheduleListFetchFailed is returned when the schedule set for a batch
	// cannot be loaded. This aborts the whole batch.
	ErrScheduleListFetchFailed = errors.New("failed to fetch schedules for processing")

	// ErrAlreadyMaterialized is returned by the transaction store when an
	// insert hits the uniqueness guard for a generated entry. The engine
	// treats this as "already processed", not as a failure.
	ErrAlreadyMaterialized = errors.New("transaction already materialized for this due item")

	// ErrScheduleInvariantViolated is returned when a schedule's stored state
	// is internally inconsistent and the item is skipped for the run.
	ErrScheduleInvariantViolated = errors.New("schedule state violates invariant")
)

// AutomationErrorCode defines error codes for the automation engine.
// Format: AUT-XXYYYY where XX is category and YYYY is specific error.
type AutomationErrorCode string

const (
	// Batch-level errors (01XXXX)
	ErrCodeScheduleFetchFailed AutomationErrorCode = "AUT-010001"

	// Item-level errors (02XXXX)
	ErrCodeMaterializeFailed  AutomationErrorCode = "AUT-020001"
	ErrCodeAdvanceFailed      AutomationErrorCode = "AUT-020002"
	ErrCodeInvariantViolation AutomationErrorCode = "AUT-020003"
	ErrCodeDuplicateCheck     AutomationErrorCode = "AUT-020004"
)

// AutomationError represents an automation error with code and message.
type AutomationError struct {
	Code    AutomationErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *AutomationError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *AutomationError) Unwrap() error {
	return e.Err
}

// NewAutomationError creates a new AutomationError with the given code and message.
func NewAutomationError(code AutomationErrorCode, message string, err error) *AutomationError {
	return &AutomationError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
