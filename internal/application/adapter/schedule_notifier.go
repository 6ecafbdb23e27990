// Package adapter defines interfaces that are implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/fintrack/backend/internal/domain/entity"
)

// ScheduleNotifier informs the user when the automation engine retires a
// schedule. Notification failures must never affect batch processing; callers
// log and continue.
type ScheduleNotifier interface {
	// NotifyScheduleExpired is called when a recurring schedule passes its end
	// date and is deactivated.
	NotifyScheduleExpired(ctx context.Context, user *entity.User, schedule *entity.RecurringSchedule) error

	// NotifyPlanCompleted is called when an installment plan generates its
	// final installment and is deactivated.
	NotifyPlanCompleted(ctx context.Context, user *entity.User, plan *entity.InstallmentPlan) error
}

// ProcessingLock serializes automation runs per user. Implementations are
// best-effort: the store-level uniqueness guard remains the correctness
// backstop for concurrent runs.
type ProcessingLock interface {
	// Acquire attempts to take the lock for a user. It returns false without
	// error when another run holds it.
	Acquire(ctx context.Context, userID string) (bool, error)

	// Release releases the lock for a user.
	Release(ctx context.Context, userID string) error
}
