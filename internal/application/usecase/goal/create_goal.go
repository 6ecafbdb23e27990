// Package goal contains savings goal use cases.
package goal

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

// CreateGoalInput represents the input for goal creation.
type CreateGoalInput struct {
	UserID       uuid.UUID
	Title        string
	Description  string
	TargetAmount decimal.Decimal
	TargetDate   time.Time
	Category     entity.GoalCategory
	Priority     entity.GoalPriority
}

// CreateGoalOutput represents the output of goal creation.
type CreateGoalOutput struct {
	Goal *entity.Goal
}

// CreateGoalUseCase handles goal creation.
type CreateGoalUseCase struct {
	goalRepo adapter.GoalRepository
}

// NewCreateGoalUseCase creates a new use case instance.
func NewCreateGoalUseCase(goalRepo adapter.GoalRepository) *CreateGoalUseCase {
	return &CreateGoalUseCase{goalRepo: goalRepo}
}

// Execute performs the goal creation.
func (uc *CreateGoalUseCase) Execute(ctx context.Context, input CreateGoalInput) (*CreateGoalOutput, error) {
	if input.Title == "" {
		return nil, domainerror.ErrGoalTitleRequired
	}
	if !input.TargetAmount.IsPositive() {
		return nil, domainerror.ErrInvalidGoalTargetAmount
	}

	goal := entity.NewGoal(
		input.UserID,
		input.Title,
		input.Description,
		input.TargetAmount,
		input.TargetDate,
		input.Category,
		input.Priority,
	)

	if err := uc.goalRepo.Create(ctx, goal); err != nil {
		return nil, fmt.Errorf("failed to create goal: %w", err)
	}

	return &CreateGoalOutput{Goal: goal}, nil
}
