// Package adapter defines interfaces that are implemented in the integration layer.
package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fintrack/backend/internal/domain/entity"
)

// GoalRepository defines the interface for goal persistence.
type GoalRepository interface {
	// Create creates a new goal.
	Create(ctx context.Context, goal *entity.Goal) error

	// FindByID retrieves a goal by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Goal, error)

	// FindByUser retrieves all goals for a user, newest first.
	FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Goal, error)

	// Update updates an existing goal.
	Update(ctx context.Context, goal *entity.Goal) error

	// Delete soft-deletes a goal.
	Delete(ctx context.Context, id uuid.UUID) error

	// AddContribution records a contribution and rolls its amount up into the
	// goal's current amount in the same database transaction. The store owns
	// the rollup; it returns the current amount after the update so callers
	// never recompute it from a stale read.
	AddContribution(ctx context.Context, contribution *entity.GoalContribution) (decimal.Decimal, error)

	// Complete marks a goal completed. It touches only the status and
	// completion timestamp columns so it cannot overwrite a rollup written by
	// a concurrent contribution.
	Complete(ctx context.Context, id uuid.UUID, completedAt time.Time) error

	// ListContributions retrieves all contributions for a goal, newest first.
	ListContributions(ctx context.Context, goalID uuid.UUID) ([]*entity.GoalContribution, error)
}
