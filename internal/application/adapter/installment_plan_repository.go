// Package adapter defines interfaces that are implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/fintrack/backend/internal/domain/entity"
)

// InstallmentPlanPatch carries the fields the schedule advancer persists for a plan.
type InstallmentPlanPatch struct {
	CompletedInstallments int
	Active                bool
}

// InstallmentPlanRepository defines the interface for installment plan persistence.
type InstallmentPlanRepository interface {
	// Create creates a new installment plan.
	Create(ctx context.Context, plan *entity.InstallmentPlan) error

	// FindByID retrieves an installment plan by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.InstallmentPlan, error)

	// FindByUser retrieves all plans for a user, newest first.
	FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.InstallmentPlan, error)

	// FindActiveByUser retrieves all active plans for a user.
	FindActiveByUser(ctx context.Context, userID uuid.UUID) ([]*entity.InstallmentPlan, error)

	// ApplyAdvance persists the advancer's completed-count/active patch.
	ApplyAdvance(ctx context.Context, id uuid.UUID, patch InstallmentPlanPatch) error

	// Deactivate marks a plan inactive.
	Deactivate(ctx context.Context, id uuid.UUID) error

	// ListUserIDsWithActive returns the IDs of users that have at least one
	// active plan. Used by the automation worker to fan out.
	ListUserIDsWithActive(ctx context.Context) ([]uuid.UUID, error)
}
