// Package adapter defines interfaces that are implemented in the integration layer.
package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/fintrack/backend/internal/domain/entity"
)

// RecurringSchedulePatch carries the fields the schedule advancer persists.
// Exactly one update is written per advanced due item.
type RecurringSchedulePatch struct {
	NextDueDate time.Time
	Active      bool
}

// RecurringScheduleRepository defines the interface for recurring schedule persistence.
type RecurringScheduleRepository interface {
	// Create creates a new recurring schedule.
	Create(ctx context.Context, schedule *entity.RecurringSchedule) error

	// FindByID retrieves a recurring schedule by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.RecurringSchedule, error)

	// FindByUser retrieves all schedules for a user, newest first.
	FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.RecurringSchedule, error)

	// FindActiveByUser retrieves all active schedules for a user.
	FindActiveByUser(ctx context.Context, userID uuid.UUID) ([]*entity.RecurringSchedule, error)

	// Update updates a user-editable schedule.
	Update(ctx context.Context, schedule *entity.RecurringSchedule) error

	// ApplyAdvance persists the advancer's next-due-date/active patch.
	ApplyAdvance(ctx context.Context, id uuid.UUID, patch RecurringSchedulePatch) error

	// Deactivate marks a schedule inactive.
	Deactivate(ctx context.Context, id uuid.UUID) error

	// ListUserIDsWithActive returns the IDs of users that have at least one
	// active schedule. Used by the automation worker to fan out.
	ListUserIDsWithActive(ctx context.Context) ([]uuid.UUID, error)
}
