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

// ContributeToGoalInput represents the input for recording a contribution.
type ContributeToGoalInput struct {
	UserID      uuid.UUID
	GoalID      uuid.UUID
	Amount      decimal.Decimal
	Description string
	Date        time.Time
}

// ContributeToGoalOutput represents the output of recording a contribution.
type ContributeToGoalOutput struct {
	Contribution *entity.GoalContribution
	Goal         *entity.Goal
}

// ContributeToGoalUseCase records a contribution. The repository rolls the
// amount up into the goal's current amount; a goal whose rollup reaches the
// target is marked completed.
type ContributeToGoalUseCase struct {
	goalRepo adapter.GoalRepository
}

// NewContributeToGoalUseCase creates a new use case instance.
func NewContributeToGoalUseCase(goalRepo adapter.GoalRepository) *ContributeToGoalUseCase {
	return &ContributeToGoalUseCase{goalRepo: goalRepo}
}

// Execute records the contribution.
func (uc *ContributeToGoalUseCase) Execute(ctx context.Context, input ContributeToGoalInput) (*ContributeToGoalOutput, error) {
	if !input.Amount.IsPositive() {
		return nil, domainerror.ErrInvalidContribution
	}

	goal, err := uc.goalRepo.FindByID(ctx, input.GoalID)
	if err != nil {
		return nil, domainerror.ErrGoalNotFound
	}
	if goal.UserID != input.UserID {
		return nil, domainerror.ErrGoalNotOwnedByUser
	}
	if goal.Status != entity.GoalStatusActive {
		return nil, domainerror.ErrGoalNotActive
	}

	contribution := entity.NewGoalContribution(input.UserID, input.GoalID, input.Amount, input.Description, input.Date)

	// The repository owns the rollup; it returns the post-update amount so the
	// entity loaded above never adds on top of already-rolled-up state.
	currentAmount, err := uc.goalRepo.AddContribution(ctx, contribution)
	if err != nil {
		return nil, fmt.Errorf("failed to record contribution: %w", err)
	}
	goal.CurrentAmount = currentAmount

	if goal.CurrentAmount.GreaterThanOrEqual(goal.TargetAmount) {
		now := time.Now().UTC()
		goal.Status = entity.GoalStatusCompleted
		goal.CompletedAt = &now
		goal.UpdatedAt = now
		if err := uc.goalRepo.Complete(ctx, goal.ID, now); err != nil {
			return nil, fmt.Errorf("failed to complete goal: %w", err)
		}
	}

	return &ContributeToGoalOutput{Contribution: contribution, Goal: goal}, nil
}
