// Package schedule contains recurring schedule and installment plan use cases.
package schedule

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/fintrack/backend/internal/application/adapter"
	"github.com/fintrack/backend/internal/domain/entity"
)

// ListRecurringSchedulesUseCase lists a user's recurring schedules.
type ListRecurringSchedulesUseCase struct {
	scheduleRepo adapter.RecurringScheduleRepository
}

// NewListRecurringSchedulesUseCase creates a new use case instance.
func NewListRecurringSchedulesUseCase(scheduleRepo adapter.RecurringScheduleRepository) *ListRecurringSchedulesUseCase {
	return &ListRecurringSchedulesUseCase{scheduleRepo: scheduleRepo}
}

// Execute retrieves all schedules for the user.
func (uc *ListRecurringSchedulesUseCase) Execute(ctx context.Context, userID uuid.UUID) ([]*entity.RecurringSchedule, error) {
	schedules, err := uc.scheduleRepo.FindByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list recurring schedules: %w", err)
	}
	return schedules, nil
}

// ListInstallmentPlansUseCase lists a user's installment plans.
type ListInstallmentPlansUseCase struct {
	planRepo adapter.InstallmentPlanRepository
}

// NewListInstallmentPlansUseCase creates a new use case instance.
func NewListInstallmentPlansUseCase(planRepo adapter.InstallmentPlanRepository) *ListInstallmentPlansUseCase {
	return &ListInstallmentPlansUseCase{planRepo: planRepo}
}

// Execute retrieves all plans for the user.
func (uc *ListInstallmentPlansUseCase) Execute(ctx context.Context, userID uuid.UUID) ([]*entity.InstallmentPlan, error) {
	plans, err := uc.planRepo.FindByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list installment plans: %w", err)
	}
	return plans, nil
}
