// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// GoalCategory classifies what a savings goal is for.
type GoalCategory string

const (
	GoalCategorySavings   GoalCategory = "savings"
	GoalCategoryPurchase  GoalCategory = "purchase"
	GoalCategoryTravel    GoalCategory = "travel"
	GoalCategoryEducation GoalCategory = "education"
	GoalCategoryEmergency GoalCategory = "emergency"
	GoalCategoryOther     GoalCategory = "other"
)

// GoalPriority represents the priority of a goal.
type GoalPriority string

const (
	GoalPriorityLow    GoalPriority = "low"
	GoalPriorityMedium GoalPriority = "medium"
	GoalPriorityHigh   GoalPriority = "high"
)

// GoalStatus represents the lifecycle state of a goal.
type GoalStatus string

const (
	GoalStatusActive    GoalStatus = "active"
	GoalStatusCompleted GoalStatus = "completed"
	GoalStatusPaused    GoalStatus = "paused"
)

// Goal represents a savings goal. CurrentAmount is the rolled-up sum of the
// goal's contributions; the rollup is maintained explicitly by the goal
// repository when contributions are recorded, not by a database trigger.
type Goal struct {
	ID            uuid.UUID
	UserID        uuid.UUID
	Title         string
	Description   string
	TargetAmount  decimal.Decimal
	CurrentAmount decimal.Decimal
	TargetDate    time.Time
	Category      GoalCategory
	Priority      GoalPriority
	Status        GoalStatus
	CreatedAt     time.Time
	UpdatedAt     time.Time
	CompletedAt   *time.Time
	DeletedAt     *time.Time // Soft-delete support
}

// NewGoal creates a new Goal entity.
func NewGoal(
	userID uuid.UUID,
	title, description string,
	targetAmount decimal.Decimal,
	targetDate time.Time,
	category GoalCategory,
	priority GoalPriority,
) *Goal {
	now := time.Now().UTC()

	return &Goal{
		ID:            uuid.New(),
		UserID:        userID,
		Title:         title,
		Description:   description,
		TargetAmount:  targetAmount,
		CurrentAmount: decimal.Zero,
		TargetDate:    targetDate,
		Category:      category,
		Priority:      priority,
		Status:        GoalStatusActive,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// GoalContribution represents a single contribution towards a goal.
type GoalContribution struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	GoalID      uuid.UUID
	Amount      decimal.Decimal
	Description string
	Date        time.Time
	CreatedAt   time.Time
}

// NewGoalContribution creates a new GoalContribution entity.
func NewGoalContribution(userID, goalID uuid.UUID, amount decimal.Decimal, description string, date time.Time) *GoalContribution {
	return &GoalContribution{
		ID:          uuid.New(),
		UserID:      userID,
		GoalID:      goalID,
		Amount:      amount,
		Description: description,
		Date:        date,
		CreatedAt:   time.Now().UTC(),
	}
}
