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

// CreateRecurringScheduleInput represents the input for schedule creation.
type CreateRecurringScheduleInput struct {
	UserID        uuid.UUID
	Type          entity.TransactionType
	Amount        decimal.Decimal
	Description   string
	CategoryID    *uuid.UUID
	PaymentMethod entity.PaymentMethod
	Notes         string
	Cadence       entity.Cadence
	StartDate     time.Time
	EndDate       *time.Time
}

// CreateRecurringScheduleOutput represents the output of schedule creation.
type CreateRecurringScheduleOutput struct {
	Schedule *entity.RecurringSchedule
}

// CreateRecurringScheduleUseCase handles recurring schedule creation.
type CreateRecurringScheduleUseCase struct {
	scheduleRepo adapter.RecurringScheduleRepository
	categoryRepo adapter.CategoryRepository
}

// NewCreateRecurringScheduleUseCase creates a new use case instance.
func NewCreateRecurringScheduleUseCase(
	scheduleRepo adapter.RecurringScheduleRepository,
	categoryRepo adapter.CategoryRepository,
) *CreateRecurringScheduleUseCase {
	return &CreateRecurringScheduleUseCase{
		scheduleRepo: scheduleRepo,
		categoryRepo: categoryRepo,
	}
}

// Execute performs the schedule creation.
func (uc *CreateRecurringScheduleUseCase) Execute(ctx context.Context, input CreateRecurringScheduleInput) (*CreateRecurringScheduleOutput, error) {
	if !entity.IsValidTransactionType(input.Type) {
		return nil, domainerror.ErrInvalidTransactionType
	}
	if !entity.IsValidCadence(input.Cadence) {
		return nil, domainerror.ErrInvalidCadence
	}
	if !entity.IsValidPaymentMethod(input.PaymentMethod) {
		return nil, domainerror.ErrInvalidPaymentMethod
	}
	if !input.Amount.IsPositive() {
		return nil, domainerror.ErrInvalidScheduleAmount
	}
	if input.EndDate != nil && input.EndDate.Before(input.StartDate) {
		return nil, domainerror.ErrEndDateBeforeStartDate
	}

	if input.CategoryID != nil {
		if err := validateCategoryOwnership(ctx, uc.categoryRepo, *input.CategoryID, input.UserID); err != nil {
			return nil, err
		}
	}

	schedule := entity.NewRecurringSchedule(
		input.UserID,
		input.Type,
		input.Amount,
		input.Description,
		input.CategoryID,
		input.PaymentMethod,
		input.Notes,
		input.Cadence,
		input.StartDate,
		input.EndDate,
	)

	if err := uc.scheduleRepo.Create(ctx, schedule); err != nil {
		return nil, fmt.Errorf("failed to create recurring schedule: %w", err)
	}

	return &CreateRecurringScheduleOutput{Schedule: schedule}, nil
}

// validateCategoryOwnership checks that the category exists and belongs to the user.
func validateCategoryOwnership(ctx context.Context, repo adapter.CategoryRepository, categoryID, userID uuid.UUID) error {
	category, err := repo.FindByID(ctx, categoryID)
	if err != nil {
		return domainerror.ErrCategoryNotFoundForTransaction
	}
	if category.UserID != userID {
		return domainerror.ErrCategoryNotOwnedByUser
	}
	return nil
}
