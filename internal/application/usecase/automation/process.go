// Package automation contains the automatic transaction generation engine.
package automation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/fintrack/backend/internal/application/adapter"
	"github.com/fintrack/backend/internal/domain/entity"
	domainerror "github.com/fintrack/backend/internal/domain/error"
)

// ProcessAutomaticTransactionsInput represents the input for one batch run.
// Today is an explicit reference date so runs are deterministic and testable.
type ProcessAutomaticTransactionsInput struct {
	UserID uuid.UUID
	Today  time.Time
}

// ItemError records a per-item failure. Item failures never abort the batch.
// Code carries the AUT error code when the failure came out of the engine.
type ItemError struct {
	ItemRef string
	Code    string
	Message string
}

// ProcessAutomaticTransactionsOutput summarizes one batch run. A run with
// nothing due returns a valid summary with GeneratedCount zero.
type ProcessAutomaticTransactionsOutput struct {
	GeneratedCount int
	Transactions   []*entity.Transaction
	Errors         []ItemError
}

// ProcessAutomaticTransactionsUseCase runs the selector, materializer and
// advancer pipeline for one user. It is safely re-invokable: a second run with
// the same reference date and no intervening state change generates nothing.
// It also doubles as the repair pass — an item found already materialized
// still has its schedule advanced, converging state left behind by a run that
// died between insert and advance.
type ProcessAutomaticTransactionsUseCase struct {
	scheduleRepo adapter.RecurringScheduleRepository
	planRepo     adapter.InstallmentPlanRepository
	userRepo     adapter.UserRepository
	materializer *Materializer
	advancer     *Advancer
	notifier     adapter.ScheduleNotifier // optional
}

// NewProcessAutomaticTransactionsUseCase creates a new use case instance.
// notifier may be nil, in which case retirement notifications are skipped.
func NewProcessAutomaticTransactionsUseCase(
	scheduleRepo adapter.RecurringScheduleRepository,
	planRepo adapter.InstallmentPlanRepository,
	userRepo adapter.UserRepository,
	transactionRepo adapter.TransactionRepository,
	notifier adapter.ScheduleNotifier,
) *ProcessAutomaticTransactionsUseCase {
	return &ProcessAutomaticTransactionsUseCase{
		scheduleRepo: scheduleRepo,
		planRepo:     planRepo,
		userRepo:     userRepo,
		materializer: NewMaterializer(transactionRepo),
		advancer:     NewAdvancer(scheduleRepo, planRepo),
		notifier:     notifier,
	}
}

// Execute runs one batch for one user.
func (uc *ProcessAutomaticTransactionsUseCase) Execute(
	ctx context.Context,
	input ProcessAutomaticTransactionsInput,
) (*ProcessAutomaticTransactionsOutput, error) {
	schedules, err := uc.scheduleRepo.FindActiveByUser(ctx, input.UserID)
	if err != nil {
		return nil, domainerror.NewAutomationError(
			domainerror.ErrCodeScheduleFetchFailed,
			"failed to fetch recurring schedules",
			fmt.Errorf("%w: %w", domainerror.ErrScheduleListFetchFailed, err),
		)
	}

	plans, err := uc.planRepo.FindActiveByUser(ctx, input.UserID)
	if err != nil {
		return nil, domainerror.NewAutomationError(
			domainerror.ErrCodeScheduleFetchFailed,
			"failed to fetch installment plans",
			fmt.Errorf("%w: %w", domainerror.ErrScheduleListFetchFailed, err),
		)
	}

	today := DateOnly(input.Today)
	sel := SelectDueItems(today, schedules, plans)

	slog.Debug("Selected due items",
		"user_id", input.UserID,
		"today", today.Format("2006-01-02"),
		"recurring_due", len(sel.Recurring),
		"installments_due", len(sel.Installments),
		"expired", len(sel.ExpiredSchedules),
		"completed", len(sel.CompletedPlans),
		"invalid", len(sel.Invalid),
	)

	output := &ProcessAutomaticTransactionsOutput{}

	for _, invalid := range sel.Invalid {
		output.Errors = append(output.Errors, ItemError{
			ItemRef: invalid.Ref,
			Code:    string(domainerror.ErrCodeInvariantViolation),
			Message: invalid.Reason.Error(),
		})
	}

	for _, schedule := range sel.ExpiredSchedules {
		if err := uc.advancer.DeactivateSchedule(ctx, schedule); err != nil {
			output.Errors = append(output.Errors, uc.itemError("recurring", schedule.ID, err))
			continue
		}
		uc.notifyScheduleExpired(ctx, schedule)
	}

	for _, plan := range sel.CompletedPlans {
		if err := uc.advancer.DeactivatePlan(ctx, plan); err != nil {
			output.Errors = append(output.Errors, uc.itemError("installment", plan.ID, err))
		}
	}

	uc.processRecurring(ctx, sel.Recurring, output)
	uc.processInstallments(ctx, sel.Installments, output)

	output.GeneratedCount = len(output.Transactions)

	slog.Info("Automatic transaction batch finished",
		"user_id", input.UserID,
		"generated", output.GeneratedCount,
		"errors", len(output.Errors),
	)

	return output, nil
}

// processRecurring handles due recurring items in due-date order. When an item
// of a schedule fails, the schedule's later items are skipped so state
// transitions are never leapfrogged; other schedules keep processing.
func (uc *ProcessAutomaticTransactionsUseCase) processRecurring(
	ctx context.Context,
	items []DueRecurringItem,
	output *ProcessAutomaticTransactionsOutput,
) {
	failed := make(map[uuid.UUID]bool)

	for _, item := range items {
		if failed[item.Schedule.ID] {
			continue
		}

		result, err := uc.materializer.MaterializeRecurring(ctx, item)
		if err != nil {
			failed[item.Schedule.ID] = true
			output.Errors = append(output.Errors, uc.itemError("recurring", item.Schedule.ID, err))
			continue
		}

		if !result.AlreadyProcessed && result.Transaction != nil {
			output.Transactions = append(output.Transactions, result.Transaction)
		}

		deactivated, err := uc.advancer.AdvanceRecurring(ctx, item.Schedule, item.DueDate)
		if err != nil {
			failed[item.Schedule.ID] = true
			output.Errors = append(output.Errors, uc.itemError("recurring", item.Schedule.ID, err))
			continue
		}

		if deactivated {
			uc.notifyScheduleExpired(ctx, item.Schedule)
		}
	}
}

func (uc *ProcessAutomaticTransactionsUseCase) processInstallments(
	ctx context.Context,
	items []DueInstallmentItem,
	output *ProcessAutomaticTransactionsOutput,
) {
	failed := make(map[uuid.UUID]bool)

	for _, item := range items {
		if failed[item.Plan.ID] {
			continue
		}

		result, err := uc.materializer.MaterializeInstallment(ctx, item)
		if err != nil {
			failed[item.Plan.ID] = true
			output.Errors = append(output.Errors, uc.itemError("installment", item.Plan.ID, err))
			continue
		}

		if !result.AlreadyProcessed && result.Transaction != nil {
			output.Transactions = append(output.Transactions, result.Transaction)
		}

		deactivated, err := uc.advancer.AdvanceInstallment(ctx, item.Plan, item.InstallmentNumber)
		if err != nil {
			failed[item.Plan.ID] = true
			output.Errors = append(output.Errors, uc.itemError("installment", item.Plan.ID, err))
			continue
		}

		if deactivated {
			uc.notifyPlanCompleted(ctx, item.Plan)
		}
	}
}

func (uc *ProcessAutomaticTransactionsUseCase) itemError(kind string, id uuid.UUID, err error) ItemError {
	var code string
	var automationErr *domainerror.AutomationError
	if errors.As(err, &automationErr) {
		code = string(automationErr.Code)
	}
	return ItemError{
		ItemRef: fmt.Sprintf("%s:%s", kind, id),
		Code:    code,
		Message: err.Error(),
	}
}

// notifyScheduleExpired sends a retirement notification. Failures are logged
// and never affect the batch.
func (uc *ProcessAutomaticTransactionsUseCase) notifyScheduleExpired(ctx context.Context, schedule *entity.RecurringSchedule) {
	if uc.notifier == nil {
		return
	}

	user, err := uc.userRepo.FindByID(ctx, schedule.UserID)
	if err != nil {
		slog.Warn("Failed to load user for expiry notification", "user_id", schedule.UserID, "error", err)
		return
	}

	if err := uc.notifier.NotifyScheduleExpired(ctx, user, schedule); err != nil {
		slog.Warn("Failed to send schedule expiry notification",
			"schedule_id", schedule.ID,
			"error", err,
		)
	}
}

func (uc *ProcessAutomaticTransactionsUseCase) notifyPlanCompleted(ctx context.Context, plan *entity.InstallmentPlan) {
	if uc.notifier == nil {
		return
	}

	user, err := uc.userRepo.FindByID(ctx, plan.UserID)
	if err != nil {
		slog.Warn("Failed to load user for completion notification", "user_id", plan.UserID, "error", err)
		return
	}

	if err := uc.notifier.NotifyPlanCompleted(ctx, user, plan); err != nil {
		slog.Warn("Failed to send plan completion notification",
			"plan_id", plan.ID,
			"error", err,
		)
	}
}
