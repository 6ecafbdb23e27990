// Package schedule contains recurring schedule and installment plan use cases.
package schedule

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fintrack/backend/internal/application/adapter"
	"github.com/fintrack/backend/internal/domain/entity"
	domainerror "github.com/fintrack/backend/internal/domain/error"
)

// UpdateRecurringScheduleInput represents a partial schedule update. Nil
// fields are left unchanged. NextDueDate and Active are owned by the
// automation engine and cannot be edited here, with one exception:
// reactivation of a deactivated schedule is an explicit user action.
type UpdateRecurringScheduleInput struct {
	UserID        uuid.UUID
	ScheduleID    uuid.UUID
	Amount        *decimal.Decimal
	Description   *string
	CategoryID    *uuid.UUID
	PaymentMethod *entity.PaymentMethod
	Notes         *string
	EndDate       *time.Time
	ClearEndDate  bool
	Reactivate    bool
}

// UpdateRecurringScheduleOutput represents the output of a schedule update.
type UpdateRecurringScheduleOutput struct {
	Schedule *entity.RecurringSchedule
}

// UpdateRecurringScheduleUseCase handles user edits to a schedule.
type UpdateRecurringScheduleUseCase struct {
	scheduleRepo adapter.RecurringScheduleRepository
	categoryRepo adapter.CategoryRepository
}

// NewUpdateRecurringScheduleUseCase creates a new use case instance.
func NewUpdateRecurringScheduleUseCase(
	scheduleRepo adapter.RecurringScheduleRepository,
	categoryRepo adapter.CategoryRepository,
) *UpdateRecurringScheduleUseCase {
	return &UpdateRecurringScheduleUseCase{
		scheduleRepo: scheduleRepo,
		categoryRepo: categoryRepo,
	}
}

// Execute performs the schedule update.
func (uc *UpdateRecurringScheduleUseCase) Execute(ctx context.Context, input UpdateRecurringScheduleInput) (*UpdateRecurringScheduleOutput, error) {
	schedule, err := uc.scheduleRepo.FindByID(ctx, input.ScheduleID)
	if err != nil {
		return nil, err
	}
	if schedule.UserID != input.UserID {
		return nil, domainerror.ErrScheduleNotOwnedByUser
	}

	if input.Amount != nil {
		if !input.Amount.IsPositive() {
			return nil, domainerror.ErrInvalidScheduleAmount
		}
		schedule.Amount = *input.Amount
	}
	if input.Description != nil {
		schedule.Description = *input.Description
	}
	if input.CategoryID != nil {
		if err := validateCategoryOwnership(ctx, uc.categoryRepo, *input.CategoryID, input.UserID); err != nil {
			return nil, err
		}
		schedule.CategoryID = input.CategoryID
	}
	if input.PaymentMethod != nil {
		if !entity.IsValidPaymentMethod(*input.PaymentMethod) {
			return nil, domainerror.ErrInvalidPaymentMethod
		}
		schedule.PaymentMethod = *input.PaymentMethod
	}
	if input.Notes != nil {
		schedule.Notes = *input.Notes
	}
	if input.ClearEndDate {
		schedule.EndDate = nil
	} else if input.EndDate != nil {
		if input.EndDate.Before(schedule.StartDate) {
			return nil, domainerror.ErrEndDateBeforeStartDate
		}
		schedule.EndDate = input.EndDate
	}
	if input.Reactivate {
		schedule.Active = true
	}

	schedule.UpdatedAt = time.Now().UTC()

	if err := uc.scheduleRepo.Update(ctx, schedule); err != nil {
		return nil, fmt.Errorf("failed to update recurring schedule: %w", err)
	}

	return &UpdateRecurringScheduleOutput{Schedule: schedule}, nil
}
