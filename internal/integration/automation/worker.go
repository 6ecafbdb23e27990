package automation

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/fintrack/backend/internal/application/adapter"
	usecase "github.com/fintrack/backend/internal/application/usecase/automation"
)

// Worker runs the transaction generation engine on a fixed interval for
// every user that has active schedules or plans.
type Worker struct {
	processUseCase *usecase.ProcessAutomaticTransactionsUseCase
	scheduleRepo   adapter.RecurringScheduleRepository
	planRepo       adapter.InstallmentPlanRepository
	lock           adapter.ProcessingLock
	interval       time.Duration
	concurrency    int
}

// WorkerConfig holds configuration for the automation worker.
type WorkerConfig struct {
	Interval    time.Duration
	Concurrency int
}

// DefaultWorkerConfig returns the default worker configuration.
func DefaultWorkerConfig() WorkerConfig {
	return WorkerConfig{
		Interval:    time.Hour,
		Concurrency: 4,
	}
}

// NewWorker creates a new automation worker.
func NewWorker(
	processUseCase *usecase.ProcessAutomaticTransactionsUseCase,
	scheduleRepo adapter.RecurringScheduleRepository,
	planRepo adapter.InstallmentPlanRepository,
	lock adapter.ProcessingLock,
	config WorkerConfig,
) *Worker {
	return &Worker{
		processUseCase: processUseCase,
		scheduleRepo:   scheduleRepo,
		planRepo:       planRepo,
		lock:           lock,
		interval:       config.Interval,
		concurrency:    config.Concurrency,
	}
}

// Start begins the worker loop. It blocks until the context is cancelled.
func (w *Worker) Start(ctx context.Context) {
	slog.Info("Automation worker started",
		"interval", w.interval,
		"concurrency", w.concurrency,
	)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	// Process immediately on start, then on ticker
	w.RunOnce(ctx)

	for {
		select {
		case <-ctx.Done():
			slog.Info("Automation worker shutting down")
			return
		case <-ticker.C:
			w.RunOnce(ctx)
		}
	}
}

// RunOnce processes all users with active schedules or plans.
func (w *Worker) RunOnce(ctx context.Context) {
	userIDs, err := w.collectUserIDs(ctx)
	if err != nil {
		slog.Error("Failed to list users for automation run", "error", err)
		return
	}
	if len(userIDs) == 0 {
		return
	}

	today := time.Now().UTC()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(w.concurrency)
	for _, userID := range userIDs {
		userID := userID
		g.Go(func() error {
			w.processUser(gctx, userID, today)
			return nil
		})
	}
	_ = g.Wait()
}

// collectUserIDs returns the union of users with active schedules and users
// with active plans.
func (w *Worker) collectUserIDs(ctx context.Context) ([]uuid.UUID, error) {
	fromSchedules, err := w.scheduleRepo.ListUserIDsWithActive(ctx)
	if err != nil {
		return nil, err
	}
	fromPlans, err := w.planRepo.ListUserIDsWithActive(ctx)
	if err != nil {
		return nil, err
	}

	seen := make(map[uuid.UUID]bool, len(fromSchedules)+len(fromPlans))
	userIDs := make([]uuid.UUID, 0, len(fromSchedules)+len(fromPlans))
	for _, id := range fromSchedules {
		if !seen[id] {
			seen[id] = true
			userIDs = append(userIDs, id)
		}
	}
	for _, id := range fromPlans {
		if !seen[id] {
			seen[id] = true
			userIDs = append(userIDs, id)
		}
	}
	return userIDs, nil
}

// processUser runs one user's batch under the per-user lock. A held lock
// means another run is already covering this user, so the batch is skipped.
func (w *Worker) processUser(ctx context.Context, userID uuid.UUID, today time.Time) {
	logger := slog.With("user_id", userID)

	acquired, err := w.lock.Acquire(ctx, userID.String())
	if err != nil {
		logger.Error("Failed to acquire processing lock", "error", err)
		return
	}
	if !acquired {
		logger.Debug("Processing lock held, skipping user")
		return
	}
	defer func() {
		// ctx may already be cancelled on shutdown; a fresh context keeps the
		// release from failing and leaving the lock to wait out its TTL.
		releaseCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := w.lock.Release(releaseCtx, userID.String()); err != nil {
			logger.Error("Failed to release processing lock", "error", err)
		}
	}()

	output, err := w.processUseCase.Execute(ctx, usecase.ProcessAutomaticTransactionsInput{
		UserID: userID,
		Today:  today,
	})
	if err != nil {
		logger.Error("Automation batch failed", "error", err)
		return
	}

	if output.GeneratedCount > 0 || len(output.Errors) > 0 {
		logger.Info("Automation batch finished",
			"generated", output.GeneratedCount,
			"item_errors", len(output.Errors),
		)
	}
}
