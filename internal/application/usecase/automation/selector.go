// Package automation contains the automatic transaction generation engine.
package automation

import (
	"fmt"
	"sort"
	"time"

	"github.com/fintrack/backend/internal/domain/entity"
	domainerror "github.com/fintrack/backend/internal/domain/error"
)

// DueRecurringItem is one due period of a recurring schedule. A schedule that
// is several periods behind produces one item per missed period, each dated at
// the period's own due date.
type DueRecurringItem struct {
	Schedule *entity.RecurringSchedule
	DueDate  time.Time
}

// DueInstallmentItem is one due installment of a plan.
type DueInstallmentItem struct {
	Plan              *entity.InstallmentPlan
	InstallmentNumber int
	DueDate           time.Time
}

// InvalidItem flags a schedule whose stored state violates an invariant. The
// item is skipped for the run and reported as an item-level error.
type InvalidItem struct {
	Ref    string
	Reason error
}

// Selection is the full output of the due-item selector.
type Selection struct {
	Recurring    []DueRecurringItem
	Installments []DueInstallmentItem

	// ExpiredSchedules are active schedules past their end date with nothing
	// left to materialize; they only need deactivation.
	ExpiredSchedules []*entity.RecurringSchedule

	// CompletedPlans are plans still flagged active although every installment
	// is already completed; they only need deactivation.
	CompletedPlans []*entity.InstallmentPlan

	Invalid []InvalidItem
}

// SelectDueItems computes which due items exist for the given reference date.
// It is a pure function: no clock reads, no side effects. Items are ordered by
// due date ascending within each kind so that schedule advancement stays
// monotonic across multiple due periods.
func SelectDueItems(
	today time.Time,
	schedules []*entity.RecurringSchedule,
	plans []*entity.InstallmentPlan,
) Selection {
	today = DateOnly(today)
	var sel Selection

	for _, schedule := range schedules {
		if !schedule.Active {
			continue
		}
		if !entity.IsValidCadence(schedule.Cadence) {
			sel.Invalid = append(sel.Invalid, InvalidItem{
				Ref:    fmt.Sprintf("recurring:%s", schedule.ID),
				Reason: fmt.Errorf("%w: unknown cadence %q", domainerror.ErrScheduleInvariantViolated, schedule.Cadence),
			})
			continue
		}
		if DateOnly(schedule.NextDueDate).Before(DateOnly(schedule.StartDate)) {
			sel.Invalid = append(sel.Invalid, InvalidItem{
				Ref:    fmt.Sprintf("recurring:%s", schedule.ID),
				Reason: fmt.Errorf("%w: next due date precedes start date", domainerror.ErrScheduleInvariantViolated),
			})
			continue
		}

		end := endDateOf(schedule)
		due := DateOnly(schedule.NextDueDate)

		if end != nil && due.After(*end) {
			sel.ExpiredSchedules = append(sel.ExpiredSchedules, schedule)
			continue
		}

		for !due.After(today) && (end == nil || !due.After(*end)) {
			sel.Recurring = append(sel.Recurring, DueRecurringItem{
				Schedule: schedule,
				DueDate:  due,
			})
			due = NextDueDate(due, schedule.Cadence)
		}
	}

	for _, plan := range plans {
		if !plan.Active {
			continue
		}
		if plan.CompletedInstallments > plan.InstallmentCount {
			sel.Invalid = append(sel.Invalid, InvalidItem{
				Ref: fmt.Sprintf("installment:%s", plan.ID),
				Reason: fmt.Errorf("%w: %d installments completed out of %d",
					domainerror.ErrScheduleInvariantViolated, plan.CompletedInstallments, plan.InstallmentCount),
			})
			continue
		}
		if plan.CompletedInstallments == plan.InstallmentCount {
			sel.CompletedPlans = append(sel.CompletedPlans, plan)
			continue
		}

		for n := plan.CompletedInstallments + 1; n <= plan.InstallmentCount; n++ {
			due := InstallmentDueDate(plan.StartDate, n)
			if due.After(today) {
				break
			}
			sel.Installments = append(sel.Installments, DueInstallmentItem{
				Plan:              plan,
				InstallmentNumber: n,
				DueDate:           due,
			})
		}
	}

	sort.SliceStable(sel.Recurring, func(i, j int) bool {
		return sel.Recurring[i].DueDate.Before(sel.Recurring[j].DueDate)
	})
	sort.SliceStable(sel.Installments, func(i, j int) bool {
		return sel.Installments[i].DueDate.Before(sel.Installments[j].DueDate)
	})

	return sel
}

func endDateOf(schedule *entity.RecurringSchedule) *time.Time {
	if schedule.EndDate == nil {
		return nil
	}
	end := DateOnly(*schedule.EndDate)
	return &end
}
