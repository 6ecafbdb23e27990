// Package error defines domain-specific errors for the application.
package error

import "errors"

// Schedule domain errors.
var (
	// ErrScheduleNotFound is returned when a recurring schedule is not found.
	ErrScheduleNotFound = errors.New("recurring schedule not found")

	// ErrInstallmentPlanNotFound is returned when an installment plan is not found.
	ErrInstallmentPlanNotFound = errors.New("installment plan not found")

	// ErrInvalidCadence is returned when the cadence is not weekly, monthly or yearly.
	ErrInvalidCadence = errors.New("invalid cadence")

	// ErrInvalidScheduleAmount is returned when the schedule amount is not positive.
	ErrInvalidScheduleAmount = errors.New("schedule amount must be positive")

	// ErrInvalidInstallmentCount is returned when the installment count is below the minimum.
	ErrInvalidInstallmentCount = errors.New("installment count must be at least 2")

	// ErrEndDateBeforeStartDate is returned when a schedule's end date precedes its start date.
	ErrEndDateBeforeStartDate = errors.New("end date must not be before start date")

	// ErrScheduleNotOwnedByUser is returned when a schedule does not belong to the user.
	ErrScheduleNotOwnedByUser = errors.New("schedule does not belong to user")
)
