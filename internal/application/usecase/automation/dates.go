// Package automation contains the automatic transaction generation engine.
package automation

import (
	"time"

	"github.com/fintrack/backend/internal/domain/entity"
)

// DateOnly normalizes a timestamp to midnight UTC. All schedule arithmetic
// operates on calendar dates, never on clock times.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// addMonthsClamped advances t by the given number of months, clamping the day
// to the length of the target month. Unlike time.AddDate, Jan 31 + 1 month is
// Feb 28 (or 29), not Mar 3.
func addMonthsClamped(t time.Time, months int) time.Time {
	year := t.Year()
	month := int(t.Month()) + months
	// Normalize month into 1..12, carrying into the year.
	year += (month - 1) / 12
	month = (month-1)%12 + 1
	if month <= 0 {
		month += 12
		year--
	}

	day := t.Day()
	if last := lastDayOfMonth(year, time.Month(month)); day > last {
		day = last
	}

	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
}

// lastDayOfMonth returns the number of days in the given month.
func lastDayOfMonth(year int, month time.Month) int {
	// Day 0 of the next month is the last day of this month.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// NextDueDate advances a due date by one cadence period.
func NextDueDate(current time.Time, cadence entity.Cadence) time.Time {
	current = DateOnly(current)

	switch cadence {
	case entity.CadenceWeekly:
		return current.AddDate(0, 0, 7)
	case entity.CadenceMonthly:
		return addMonthsClamped(current, 1)
	case entity.CadenceYearly:
		return addMonthsClamped(current, 12)
	}

	// Unknown cadences are rejected by the selector before arithmetic runs.
	return current
}

// InstallmentDueDate computes the due date of the n-th installment (1-based):
// the plan's start date advanced by n-1 months, clamped.
func InstallmentDueDate(startDate time.Time, installmentNumber int) time.Time {
	return addMonthsClamped(DateOnly(startDate), installmentNumber-1)
}
