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

// CreateInstallmentPlanInput represents the input for plan creation.
type CreateInstallmentPlanInput struct {
	UserID           uuid.UUID
	Type             entity.TransactionType
	TotalAmount      decimal.Decimal
	Description      string
	CategoryID       *uuid.UUID
	PaymentMethod    entity.PaymentMethod
	Notes            string
	InstallmentCount int
	StartDate        time.Time
}

// CreateInstallmentPlanOutput represents the output of plan creation.
type CreateInstallmentPlanOutput struct {
	Plan *entity.InstallmentPlan
}

// CreateInstallmentPlanUseCase handles installment plan creation. The
// per-installment amount is derived here, once; later edits to total or count
// do not recompute it.
type CreateInstallmentPlanUseCase struct {
	planRepo     adapter.InstallmentPlanRepository
	categoryRepo adapter.CategoryRepository
}

// NewCreateInstallmentPlanUseCase creates a new use case instance.
func NewCreateInstallmentPlanUseCase(
	planRepo adapter.InstallmentPlanRepository,
	categoryRepo adapter.CategoryRepository,
) *CreateInstallmentPlanUseCase {
	return &CreateInstallmentPlanUseCase{
		planRepo:     planRepo,
		categoryRepo: categoryRepo,
	}
}

// Execute performs the plan creation.
func (uc *CreateInstallmentPlanUseCase) Execute(ctx context.Context, input CreateInstallmentPlanInput) (*CreateInstallmentPlanOutput, error) {
	if !entity.IsValidTransactionType(input.Type) {
		return nil, domainerror.ErrInvalidTransactionType
	}
	if !entity.IsValidPaymentMethod(input.PaymentMethod) {
		return nil, domainerror.ErrInvalidPaymentMethod
	}
	if !input.TotalAmount.IsPositive() {
		return nil, domainerror.ErrInvalidScheduleAmount
	}
	if input.InstallmentCount < entity.MinInstallmentCount {
		return nil, domainerror.ErrInvalidInstallmentCount
	}

	if input.CategoryID != nil {
		if err := validateCategoryOwnership(ctx, uc.categoryRepo, *input.CategoryID, input.UserID); err != nil {
			return nil, err
		}
	}

	plan := entity.NewInstallmentPlan(
		input.UserID,
		input.Type,
		input.TotalAmount,
		input.Description,
		input.CategoryID,
		input.PaymentMethod,
		input.Notes,
		input.InstallmentCount,
		input.StartDate,
	)

	if err := uc.planRepo.Create(ctx, plan); err != nil {
		return nil, fmt.Errorf("failed to create installment plan: %w", err)
	}

	return &CreateInstallmentPlanOutput{Plan: plan}, nil
}
