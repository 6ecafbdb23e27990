// Package schedule contains recurring schedule and installment plan use cases.
package schedule

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/fintrack/backend/internal/application/adapter"
	domainerror "github.com/fintrack/backend/internal/domain/error"
)

// DeactivateRecurringScheduleUseCase handles manual deactivation of a schedule.
type DeactivateRecurringScheduleUseCase struct {
	scheduleRepo adapter.RecurringScheduleRepository
}

// NewDeactivateRecurringScheduleUseCase creates a new use case instance.
func NewDeactivateRecurringScheduleUseCase(scheduleRepo adapter.RecurringScheduleRepository) *DeactivateRecurringScheduleUseCase {
	return &DeactivateRecurringScheduleUseCase{scheduleRepo: scheduleRepo}
}

// Execute deactivates the schedule after an ownership check.
func (uc *DeactivateRecurringScheduleUseCase) Execute(ctx context.Context, userID, scheduleID uuid.UUID) error {
	schedule, err := uc.scheduleRepo.FindByID(ctx, scheduleID)
	if err != nil {
		return err
	}
	if schedule.UserID != userID {
		return domainerror.ErrScheduleNotOwnedByUser
	}

	if err := uc.scheduleRepo.Deactivate(ctx, scheduleID); err != nil {
		return fmt.Errorf("failed to deactivate recurring schedule: %w", err)
	}
	return nil
}

// DeactivateInstallmentPlanUseCase handles manual deactivation of a plan.
type DeactivateInstallmentPlanUseCase struct {
	planRepo adapter.InstallmentPlanRepository
}

// NewDeactivateInstallmentPlanUseCase creates a new use case instance.
func NewDeactivateInstallmentPlanUseCase(planRepo adapter.InstallmentPlanRepository) *DeactivateInstallmentPlanUseCase {
	return &DeactivateInstallmentPlanUseCase{planRepo: planRepo}
}

// Execute deactivates the plan after an ownership check.
func (uc *DeactivateInstallmentPlanUseCase) Execute(ctx context.Context, userID, planID uuid.UUID) error {
	plan, err := uc.planRepo.FindByID(ctx, planID)
	if err != nil {
		return err
	}
	if plan.UserID != userID {
		return domainerror.ErrScheduleNotOwnedByUser
	}

	if err := uc.planRepo.Deactivate(ctx, planID); err != nil {
		return fmt.Errorf("failed to deactivate installment plan: %w", err)
	}
	return nil
}
