package goal

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/fintrack/backend/internal/application/adapter"
	"github.com/fintrack/backend/internal/domain/entity"
	domainerror "github.com/fintrack/backend/internal/domain/error"
)

// ListGoalsInput represents the input for listing goals.
type ListGoalsInput struct {
	UserID uuid.UUID
}

// ListGoalsOutput represents the output of listing goals.
type ListGoalsOutput struct {
	Goals []*entity.Goal
}

// ListGoalsUseCase handles goal listing.
type ListGoalsUseCase struct {
	goalRepo adapter.GoalRepository
}

// NewListGoalsUseCase creates a new use case instance.
func NewListGoalsUseCase(goalRepo adapter.GoalRepository) *ListGoalsUseCase {
	return &ListGoalsUseCase{goalRepo: goalRepo}
}

// Execute performs the goal listing.
func (uc *ListGoalsUseCase) Execute(ctx context.Context, input ListGoalsInput) (*ListGoalsOutput, error) {
	goals, err := uc.goalRepo.FindByUser(ctx, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to list goals: %w", err)
	}
	return &ListGoalsOutput{Goals: goals}, nil
}

// ListContributionsInput represents the input for listing goal contributions.
type ListContributionsInput struct {
	UserID uuid.UUID
	GoalID uuid.UUID
}

// ListContributionsOutput represents the output of listing goal contributions.
type ListContributionsOutput struct {
	Contributions []*entity.GoalContribution
}

// ListContributionsUseCase handles contribution listing for a goal.
type ListContributionsUseCase struct {
	goalRepo adapter.GoalRepository
}

// NewListContributionsUseCase creates a new use case instance.
func NewListContributionsUseCase(goalRepo adapter.GoalRepository) *ListContributionsUseCase {
	return &ListContributionsUseCase{goalRepo: goalRepo}
}

// Execute performs the contribution listing.
func (uc *ListContributionsUseCase) Execute(ctx context.Context, input ListContributionsInput) (*ListContributionsOutput, error) {
	goal, err := uc.goalRepo.FindByID(ctx, input.GoalID)
	if err != nil {
		return nil, domainerror.ErrGoalNotFound
	}
	if goal.UserID != input.UserID {
		return nil, domainerror.ErrGoalNotOwnedByUser
	}

	contributions, err := uc.goalRepo.ListContributions(ctx, input.GoalID)
	if err != nil {
		return nil, fmt.Errorf("failed to list contributions: %w", err)
	}
	return &ListContributionsOutput{Contributions: contributions}, nil
}
