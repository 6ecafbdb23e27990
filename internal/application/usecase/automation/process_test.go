// Package automation contains the automatic transaction generation engine.
package automation

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fintrack/backend/internal/domain/entity"
	domainerror "github.com/fintrack/backend/internal/domain/error"
)

func newProcessUseCase(
	scheduleRepo *fakeScheduleRepo,
	planRepo *fakePlanRepo,
	txnRepo *fakeTransactionRepo,
	userRepo *fakeUserRepo,
	notifier *recordingNotifier,
) *ProcessAutomaticTransactionsUseCase {
	if notifier == nil {
		return NewProcessAutomaticTransactionsUseCase(scheduleRepo, planRepo, userRepo, txnRepo, nil)
	}
	return NewProcessAutomaticTransactionsUseCase(scheduleRepo, planRepo, userRepo, txnRepo, notifier)
}

func TestProcessAutomaticTransactions_MonotonicAdvancement(t *testing.T) {
	userID := uuid.New()
	d := date(2024, time.March, 1)
	schedule := buildSchedule(userID, entity.CadenceWeekly, d, d, nil)

	scheduleRepo := newFakeScheduleRepo(schedule)
	planRepo := newFakePlanRepo()
	txnRepo := newFakeTransactionRepo()
	uc := newProcessUseCase(scheduleRepo, planRepo, txnRepo, newFakeUserRepo(), nil)

	out, err := uc.Execute(context.Background(), ProcessAutomaticTransactionsInput{
		UserID: userID,
		Today:  d.AddDate(0, 0, 20),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Due dates D, D+7, D+14 are all <= D+20; each advances one period.
	if out.GeneratedCount != 3 {
		t.Errorf("generated count = %d, want 3", out.GeneratedCount)
	}
	if len(out.Errors) != 0 {
		t.Errorf("unexpected item errors: %v", out.Errors)
	}

	wantNext := d.AddDate(0, 0, 21)
	if !schedule.NextDueDate.Equal(wantNext) {
		t.Errorf("next due date = %s, want %s",
			schedule.NextDueDate.Format("2006-01-02"), wantNext.Format("2006-01-02"))
	}
	if !schedule.Active {
		t.Error("schedule should remain active")
	}

	// Each generated entry is dated at its own due date.
	generated := txnRepo.generatedFor(schedule.ID)
	if len(generated) != 3 {
		t.Fatalf("stored %d generated transactions, want 3", len(generated))
	}
	for i, wantDate := range []time.Time{d, d.AddDate(0, 0, 7), d.AddDate(0, 0, 14)} {
		if !generated[i].Date.Equal(wantDate) {
			t.Errorf("transaction %d dated %s, want %s", i,
				generated[i].Date.Format("2006-01-02"), wantDate.Format("2006-01-02"))
		}
		if !generated[i].IsRecurring {
			t.Errorf("transaction %d missing recurring flag", i)
		}
	}
}

func TestProcessAutomaticTransactions_Idempotence(t *testing.T) {
	userID := uuid.New()
	d := date(2024, time.March, 1)
	schedule := buildSchedule(userID, entity.CadenceMonthly, d, d, nil)
	plan := buildPlan(userID, 4, 1, date(2024, time.January, 15))

	scheduleRepo := newFakeScheduleRepo(schedule)
	planRepo := newFakePlanRepo(plan)
	txnRepo := newFakeTransactionRepo()
	uc := newProcessUseCase(scheduleRepo, planRepo, txnRepo, newFakeUserRepo(), nil)

	today := date(2024, time.March, 20)

	first, err := uc.Execute(context.Background(), ProcessAutomaticTransactionsInput{UserID: userID, Today: today})
	if err != nil {
		t.Fatalf("first run: %v", err)
	}
	if first.GeneratedCount == 0 {
		t.Fatal("first run should generate transactions")
	}

	nextDueAfterFirst := schedule.NextDueDate
	completedAfterFirst := plan.CompletedInstallments

	second, err := uc.Execute(context.Background(), ProcessAutomaticTransactionsInput{UserID: userID, Today: today})
	if err != nil {
		t.Fatalf("second run: %v", err)
	}

	if second.GeneratedCount != 0 {
		t.Errorf("second run generated %d transactions, want 0", second.GeneratedCount)
	}
	if !schedule.NextDueDate.Equal(nextDueAfterFirst) {
		t.Error("second run changed schedule state")
	}
	if plan.CompletedInstallments != completedAfterFirst {
		t.Error("second run changed plan state")
	}
}

func TestProcessAutomaticTransactions_InstallmentCompletion(t *testing.T) {
	userID := uuid.New()
	user := entity.NewUser("ana@example.com", "Ana", "")
	user.ID = userID

	plan := buildPlan(userID, 3, 2, date(2024, time.January, 10))

	scheduleRepo := newFakeScheduleRepo()
	planRepo := newFakePlanRepo(plan)
	txnRepo := newFakeTransactionRepo()
	notifier := &recordingNotifier{}
	uc := newProcessUseCase(scheduleRepo, planRepo, txnRepo, newFakeUserRepo(user), notifier)

	out, err := uc.Execute(context.Background(), ProcessAutomaticTransactionsInput{
		UserID: userID,
		Today:  date(2024, time.March, 10),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if out.GeneratedCount != 1 {
		t.Fatalf("generated count = %d, want 1", out.GeneratedCount)
	}

	txn := out.Transactions[0]
	if txn.InstallmentNumber == nil || *txn.InstallmentNumber != 3 {
		t.Errorf("installment number = %v, want 3", txn.InstallmentNumber)
	}
	if txn.Description != "New laptop (3/3)" {
		t.Errorf("description = %q, want %q", txn.Description, "New laptop (3/3)")
	}
	if !txn.Amount.Equal(plan.InstallmentAmount) {
		t.Errorf("amount = %s, want %s", txn.Amount, plan.InstallmentAmount)
	}

	if plan.CompletedInstallments != 3 {
		t.Errorf("completed installments = %d, want 3", plan.CompletedInstallments)
	}
	if plan.Active {
		t.Error("plan should be deactivated after the final installment")
	}
	if len(notifier.completed) != 1 {
		t.Errorf("expected 1 completion notification, got %d", len(notifier.completed))
	}
}

func TestProcessAutomaticTransactions_EndDateExpiry(t *testing.T) {
	userID := uuid.New()
	user := entity.NewUser("ana@example.com", "Ana", "")
	user.ID = userID

	d := date(2024, time.January, 1)
	end := date(2024, time.January, 8)
	schedule := buildSchedule(userID, entity.CadenceWeekly, d, d, &end)

	scheduleRepo := newFakeScheduleRepo(schedule)
	txnRepo := newFakeTransactionRepo()
	notifier := &recordingNotifier{}
	uc := newProcessUseCase(scheduleRepo, newFakePlanRepo(), txnRepo, newFakeUserRepo(user), notifier)

	out, err := uc.Execute(context.Background(), ProcessAutomaticTransactionsInput{
		UserID: userID,
		Today:  date(2024, time.February, 1),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Due dates Jan 1 and Jan 8 are within the end date; Jan 15 is not.
	if out.GeneratedCount != 2 {
		t.Errorf("generated count = %d, want 2", out.GeneratedCount)
	}
	for _, txn := range out.Transactions {
		if txn.Date.After(end) {
			t.Errorf("generated transaction dated past end date: %s", txn.Date.Format("2006-01-02"))
		}
	}
	if schedule.Active {
		t.Error("schedule should be deactivated after its last due date")
	}
	if len(notifier.expired) != 1 {
		t.Errorf("expected 1 expiry notification, got %d", len(notifier.expired))
	}
}

func TestProcessAutomaticTransactions_PerItemIsolation(t *testing.T) {
	userID := uuid.New()
	d := date(2024, time.March, 1)
	failing := buildSchedule(userID, entity.CadenceWeekly, d, d, nil)
	healthy := buildSchedule(userID, entity.CadenceWeekly, d.AddDate(0, 0, 1), d.AddDate(0, 0, 1), nil)

	scheduleRepo := newFakeScheduleRepo(failing, healthy)
	txnRepo := newFakeTransactionRepo()
	txnRepo.failInsertFor[failing.ID] = true
	uc := newProcessUseCase(scheduleRepo, newFakePlanRepo(), txnRepo, newFakeUserRepo(), nil)

	out, err := uc.Execute(context.Background(), ProcessAutomaticTransactionsInput{
		UserID: userID,
		Today:  d.AddDate(0, 0, 3),
	})
	if err != nil {
		t.Fatalf("batch should not fail on item errors: %v", err)
	}

	if out.GeneratedCount != 1 {
		t.Errorf("generated count = %d, want 1 (healthy schedule)", out.GeneratedCount)
	}
	if len(out.Errors) != 1 {
		t.Fatalf("expected 1 item error, got %d", len(out.Errors))
	}
	if got := out.Errors[0].ItemRef; got != "recurring:"+failing.ID.String() {
		t.Errorf("error item ref = %q", got)
	}

	// The failing schedule must not have advanced.
	if !failing.NextDueDate.Equal(d) {
		t.Error("failed schedule advanced despite materialization failure")
	}
	if !healthy.NextDueDate.Equal(d.AddDate(0, 0, 8)) {
		t.Errorf("healthy schedule next due = %s, want %s",
			healthy.NextDueDate.Format("2006-01-02"), d.AddDate(0, 0, 8).Format("2006-01-02"))
	}
}

func TestProcessAutomaticTransactions_RepairAfterPartialRun(t *testing.T) {
	// Simulates a previous run that materialized an entry but died before
	// advancing the schedule: re-running must advance without duplicating.
	userID := uuid.New()
	d := date(2024, time.March, 4)
	schedule := buildSchedule(userID, entity.CadenceWeekly, d, d, nil)

	scheduleRepo := newFakeScheduleRepo(schedule)
	txnRepo := newFakeTransactionRepo()

	orphan := entity.NewTransaction(
		userID, d, "Gym membership (recurring)",
		decimal.NewFromFloat(50), entity.TransactionTypeExpense,
		nil, entity.PaymentMethodCard, "",
	)
	orphan.IsRecurring = true
	orphan.ParentTransactionID = &schedule.ID
	if err := txnRepo.Insert(context.Background(), orphan); err != nil {
		t.Fatalf("seeding orphan transaction: %v", err)
	}

	uc := newProcessUseCase(scheduleRepo, newFakePlanRepo(), txnRepo, newFakeUserRepo(), nil)

	out, err := uc.Execute(context.Background(), ProcessAutomaticTransactionsInput{UserID: userID, Today: d})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if out.GeneratedCount != 0 {
		t.Errorf("generated count = %d, want 0 (entry already existed)", out.GeneratedCount)
	}
	if len(txnRepo.generatedFor(schedule.ID)) != 1 {
		t.Error("repair run duplicated the generated transaction")
	}
	if !schedule.NextDueDate.Equal(d.AddDate(0, 0, 7)) {
		t.Errorf("schedule not repaired: next due = %s, want %s",
			schedule.NextDueDate.Format("2006-01-02"), d.AddDate(0, 0, 7).Format("2006-01-02"))
	}
}

func TestProcessAutomaticTransactions_FatalOnScheduleFetchFailure(t *testing.T) {
	scheduleRepo := newFakeScheduleRepo()
	scheduleRepo.failList = true
	uc := newProcessUseCase(scheduleRepo, newFakePlanRepo(), newFakeTransactionRepo(), newFakeUserRepo(), nil)

	_, err := uc.Execute(context.Background(), ProcessAutomaticTransactionsInput{
		UserID: uuid.New(),
		Today:  date(2024, time.March, 1),
	})
	if err == nil {
		t.Fatal("expected a batch-level error when schedule fetch fails")
	}
	if !errors.Is(err, domainerror.ErrScheduleListFetchFailed) {
		t.Errorf("error = %v, want ErrScheduleListFetchFailed in the chain", err)
	}
	var automationErr *domainerror.AutomationError
	if !errors.As(err, &automationErr) || automationErr.Code != domainerror.ErrCodeScheduleFetchFailed {
		t.Errorf("error = %v, want AutomationError with code %s", err, domainerror.ErrCodeScheduleFetchFailed)
	}
}

func TestProcessAutomaticTransactions_InvariantViolationIsItemError(t *testing.T) {
	userID := uuid.New()
	plan := buildPlan(userID, 3, 5, date(2024, time.January, 1))
	healthy := buildPlan(userID, 2, 1, date(2024, time.January, 1))

	uc := newProcessUseCase(
		newFakeScheduleRepo(),
		newFakePlanRepo(plan, healthy),
		newFakeTransactionRepo(),
		newFakeUserRepo(),
		nil,
	)

	out, err := uc.Execute(context.Background(), ProcessAutomaticTransactionsInput{
		UserID: userID,
		Today:  date(2024, time.March, 1),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(out.Errors) != 1 {
		t.Fatalf("expected 1 item error, got %d", len(out.Errors))
	}
	if out.Errors[0].Code != string(domainerror.ErrCodeInvariantViolation) {
		t.Errorf("item error code = %q, want %s", out.Errors[0].Code, domainerror.ErrCodeInvariantViolation)
	}
	if out.GeneratedCount != 1 {
		t.Errorf("generated count = %d, want 1 (healthy plan)", out.GeneratedCount)
	}
	// The offending plan is skipped, not mutated.
	if plan.CompletedInstallments != 5 || !plan.Active {
		t.Error("invalid plan should be left untouched for manual correction")
	}
}

func TestProcessAutomaticTransactions_ZeroDueIsNormal(t *testing.T) {
	uc := newProcessUseCase(
		newFakeScheduleRepo(),
		newFakePlanRepo(),
		newFakeTransactionRepo(),
		newFakeUserRepo(),
		nil,
	)

	out, err := uc.Execute(context.Background(), ProcessAutomaticTransactionsInput{
		UserID: uuid.New(),
		Today:  date(2024, time.March, 1),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.GeneratedCount != 0 || len(out.Errors) != 0 {
		t.Errorf("empty batch should return a clean zero summary, got %+v", out)
	}
}
