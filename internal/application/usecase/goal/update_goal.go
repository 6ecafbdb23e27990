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

// UpdateGoalInput represents the input for goal update.
// Nil fields are left unchanged.
type UpdateGoalInput struct {
	UserID       uuid.UUID
	GoalID       uuid.UUID
	Title        *string
	Description  *string
	TargetAmount *decimal.Decimal
	TargetDate   *time.Time
	Category     *entity.GoalCategory
	Priority     *entity.GoalPriority
	Status       *entity.GoalStatus
}

// UpdateGoalOutput represents the output of goal update.
type UpdateGoalOutput struct {
	Goal *entity.Goal
}

// UpdateGoalUseCase handles goal updates. CurrentAmount is rollup-owned and
// cannot be set here.
type UpdateGoalUseCase struct {
	goalRepo adapter.GoalRepository
}

// NewUpdateGoalUseCase creates a new use case instance.
func NewUpdateGoalUseCase(goalRepo adapter.GoalRepository) *UpdateGoalUseCase {
	return &UpdateGoalUseCase{goalRepo: goalRepo}
}

// Execute performs the goal update.
func (uc *UpdateGoalUseCase) Execute(ctx context.Context, input UpdateGoalInput) (*UpdateGoalOutput, error) {
	goal, err := uc.goalRepo.FindByID(ctx, input.GoalID)
	if err != nil {
		return nil, domainerror.ErrGoalNotFound
	}
	if goal.UserID != input.UserID {
		return nil, domainerror.ErrGoalNotOwnedByUser
	}

	if input.Title != nil {
		if *input.Title == "" {
			return nil, domainerror.ErrGoalTitleRequired
		}
		goal.Title = *input.Title
	}
	if input.Description != nil {
		goal.Description = *input.Description
	}
	if input.TargetAmount != nil {
		if !input.TargetAmount.IsPositive() {
			return nil, domainerror.ErrInvalidGoalTargetAmount
		}
		goal.TargetAmount = *input.TargetAmount
	}
	if input.TargetDate != nil {
		goal.TargetDate = *input.TargetDate
	}
	if input.Category != nil {
		goal.Category = *input.Category
	}
	if input.Priority != nil {
		goal.Priority = *input.Priority
	}
	if input.Status != nil {
		goal.Status = *input.Status
		if *input.Status == entity.GoalStatusCompleted && goal.CompletedAt == nil {
			now := time.Now().UTC()
			goal.CompletedAt = &now
		}
	}
	goal.UpdatedAt = time.Now().UTC()

	if err := uc.goalRepo.Update(ctx, goal); err != nil {
		return nil, fmt.Errorf("failed to update goal: %w", err)
	}

	return &UpdateGoalOutput{Goal: goal}, nil
}
