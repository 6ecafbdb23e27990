package automation

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/fintrack/backend/internal/application/adapter"
	usecase "github.com/fintrack/backend/internal/application/usecase/automation"
	"github.com/fintrack/backend/internal/domain/entity"
)

// Stubs embed the repository interfaces and override only what the worker
// fan-out touches.
type stubScheduleRepo struct {
	adapter.RecurringScheduleRepository
	userIDs []uuid.UUID
}

func (s *stubScheduleRepo) ListUserIDsWithActive(_ context.Context) ([]uuid.UUID, error) {
	return s.userIDs, nil
}

func (s *stubScheduleRepo) FindActiveByUser(_ context.Context, _ uuid.UUID) ([]*entity.RecurringSchedule, error) {
	return nil, nil
}

type stubPlanRepo struct {
	adapter.InstallmentPlanRepository
}

func (s *stubPlanRepo) ListUserIDsWithActive(_ context.Context) ([]uuid.UUID, error) {
	return nil, nil
}

func (s *stubPlanRepo) FindActiveByUser(_ context.Context, _ uuid.UUID) ([]*entity.InstallmentPlan, error) {
	return nil, nil
}

// recordingLock captures the context each Release call arrives with.
type recordingLock struct {
	released   int
	releaseErr error
}

func (l *recordingLock) Acquire(_ context.Context, _ string) (bool, error) {
	return true, nil
}

func (l *recordingLock) Release(ctx context.Context, _ string) error {
	l.released++
	l.releaseErr = ctx.Err()
	return nil
}

func TestWorkerReleasesLockAfterShutdown(t *testing.T) {
	scheduleRepo := &stubScheduleRepo{userIDs: []uuid.UUID{uuid.New()}}
	planRepo := &stubPlanRepo{}
	lock := &recordingLock{}

	processUseCase := usecase.NewProcessAutomaticTransactionsUseCase(
		scheduleRepo, planRepo, nil, nil, nil,
	)
	worker := NewWorker(processUseCase, scheduleRepo, planRepo, lock, WorkerConfig{
		Interval:    time.Hour,
		Concurrency: 2,
	})

	// Cancelled before the run starts, as happens when shutdown lands while
	// a tick is in flight.
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	worker.RunOnce(ctx)

	if lock.released != 1 {
		t.Fatalf("Release called %d times, want 1", lock.released)
	}
	if lock.releaseErr != nil {
		t.Errorf("Release received a dead context (%v); the lock would idle until its TTL", lock.releaseErr)
	}
}
