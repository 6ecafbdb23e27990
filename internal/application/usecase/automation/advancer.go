// Package automation contains the automatic transaction generation engine.
package automation

import (
	"context"
	"time"

	"github.com/fintrack/backend/internal/application/adapter"
	"github.com/fintrack/backend/internal/domain/entity"
	domainerror "github.com/fintrack/backend/internal/domain/error"
)

// Advancer moves schedule state forward after a due item has been
// materialized (or found already materialized, in which case advancing is the
// repair step for a run that died between insert and update). Each call
// persists exactly one record write. Deactivation is terminal: nothing in the
// engine reactivates a schedule.
type Advancer struct {
	scheduleRepo adapter.RecurringScheduleRepository
	planRepo     adapter.InstallmentPlanRepository
}

// NewAdvancer creates a new Advancer instance.
func NewAdvancer(scheduleRepo adapter.RecurringScheduleRepository, planRepo adapter.InstallmentPlanRepository) *Advancer {
	return &Advancer{
		scheduleRepo: scheduleRepo,
		planRepo:     planRepo,
	}
}

// AdvanceRecurring advances a schedule one period past the materialized due
// date. When the advanced date falls beyond the end date the schedule is
// deactivated. Returns whether the schedule was deactivated.
func (a *Advancer) AdvanceRecurring(ctx context.Context, schedule *entity.RecurringSchedule, materializedDue time.Time) (bool, error) {
	next := NextDueDate(materializedDue, schedule.Cadence)

	active := true
	if schedule.EndDate != nil && next.After(DateOnly(*schedule.EndDate)) {
		active = false
	}

	patch := adapter.RecurringSchedulePatch{
		NextDueDate: next,
		Active:      active,
	}
	if err := a.scheduleRepo.ApplyAdvance(ctx, schedule.ID, patch); err != nil {
		return false, domainerror.NewAutomationError(
			domainerror.ErrCodeAdvanceFailed,
			"failed to advance recurring schedule",
			err,
		)
	}

	// Keep the in-memory entity in step so later due items of the same
	// schedule in this batch observe the advanced state.
	schedule.NextDueDate = next
	schedule.Active = active

	return !active, nil
}

// AdvanceInstallment records the completion of an installment. The completed
// count is set to the installment number rather than incremented so that a
// repair re-run cannot double-count. Returns whether the plan was deactivated.
func (a *Advancer) AdvanceInstallment(ctx context.Context, plan *entity.InstallmentPlan, installmentNumber int) (bool, error) {
	if plan.CompletedInstallments >= installmentNumber {
		// State already reflects this installment; nothing to write.
		return !plan.Active, nil
	}

	active := installmentNumber < plan.InstallmentCount

	patch := adapter.InstallmentPlanPatch{
		CompletedInstallments: installmentNumber,
		Active:                active,
	}
	if err := a.planRepo.ApplyAdvance(ctx, plan.ID, patch); err != nil {
		return false, domainerror.NewAutomationError(
			domainerror.ErrCodeAdvanceFailed,
			"failed to advance installment plan",
			err,
		)
	}

	plan.CompletedInstallments = installmentNumber
	plan.Active = active

	return !active, nil
}

// DeactivateSchedule retires a schedule that expired with nothing left to
// materialize.
func (a *Advancer) DeactivateSchedule(ctx context.Context, schedule *entity.RecurringSchedule) error {
	if err := a.scheduleRepo.Deactivate(ctx, schedule.ID); err != nil {
		return domainerror.NewAutomationError(
			domainerror.ErrCodeAdvanceFailed,
			"failed to deactivate expired schedule",
			err,
		)
	}
	schedule.Active = false
	return nil
}

// DeactivatePlan retires a plan whose installments are all completed but whose
// active flag was left set.
func (a *Advancer) DeactivatePlan(ctx context.Context, plan *entity.InstallmentPlan) error {
	if err := a.planRepo.Deactivate(ctx, plan.ID); err != nil {
		return domainerror.NewAutomationError(
			domainerror.ErrCodeAdvanceFailed,
			"failed to deactivate completed plan",
			err,
		)
	}
	plan.Active = false
	return nil
}
