// Package automation contains the automatic transaction generation engine.
package automation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/fintrack/backend/internal/application/adapter"
	"github.com/fintrack/backend/internal/domain/entity"
	domainerror "github.com/fintrack/backend/internal/domain/error"
)

// Materializer creates exactly one ledger transaction per due item. It checks
// for an existing entry before inserting; the store-level uniqueness
// constraints on (parent_transaction_id, date) and
// (parent_transaction_id, installment_number) close the race window between
// check and insert when two runs process the same user concurrently.
//
// The materializer never touches schedule state. Creation and bookkeeping are
// separately retryable: the advancer runs afterwards, and an "already
// processed" result signals it to catch schedule state up.
type Materializer struct {
	transactionRepo adapter.TransactionRepository
}

// NewMaterializer creates a new Materializer instance.
func NewMaterializer(transactionRepo adapter.TransactionRepository) *Materializer {
	return &Materializer{transactionRepo: transactionRepo}
}

// MaterializeResult is the outcome for a single due item.
type MaterializeResult struct {
	// Transaction is the generated entry. It is the pre-existing entry when
	// AlreadyProcessed is true and it could be loaded.
	Transaction *entity.Transaction

	// AlreadyProcessed reports that the entry existed before this call.
	AlreadyProcessed bool
}

// MaterializeRecurring creates the ledger entry for one due period of a
// recurring schedule, dated at the period's due date.
func (m *Materializer) MaterializeRecurring(ctx context.Context, item DueRecurringItem) (*MaterializeResult, error) {
	schedule := item.Schedule

	existing, err := m.transactionRepo.FindGeneratedByParentAndDate(ctx, schedule.ID, item.DueDate)
	if err != nil {
		return nil, domainerror.NewAutomationError(
			domainerror.ErrCodeDuplicateCheck,
			fmt.Sprintf("duplicate check failed for schedule %s on %s", schedule.ID, item.DueDate.Format("2006-01-02")),
			err,
		)
	}
	if existing != nil {
		return &MaterializeResult{Transaction: existing, AlreadyProcessed: true}, nil
	}

	transaction := entity.NewTransaction(
		schedule.UserID,
		item.DueDate,
		fmt.Sprintf("%s (recurring)", schedule.Description),
		schedule.Amount,
		schedule.Type,
		schedule.CategoryID,
		schedule.PaymentMethod,
		schedule.Notes,
	)
	transaction.IsRecurring = true
	transaction.ParentTransactionID = &schedule.ID

	return m.insert(ctx, transaction)
}

// MaterializeInstallment creates the ledger entry for one installment of a
// plan, using the amount derived at plan creation.
func (m *Materializer) MaterializeInstallment(ctx context.Context, item DueInstallmentItem) (*MaterializeResult, error) {
	plan := item.Plan

	existing, err := m.transactionRepo.FindGeneratedByParentAndNumber(ctx, plan.ID, item.InstallmentNumber)
	if err != nil {
		return nil, domainerror.NewAutomationError(
			domainerror.ErrCodeDuplicateCheck,
			fmt.Sprintf("duplicate check failed for plan %s installment %d", plan.ID, item.InstallmentNumber),
			err,
		)
	}
	if existing != nil {
		return &MaterializeResult{Transaction: existing, AlreadyProcessed: true}, nil
	}

	transaction := entity.NewTransaction(
		plan.UserID,
		item.DueDate,
		fmt.Sprintf("%s (%d/%d)", plan.Description, item.InstallmentNumber, plan.InstallmentCount),
		plan.InstallmentAmount,
		plan.Type,
		plan.CategoryID,
		plan.PaymentMethod,
		plan.Notes,
	)
	transaction.IsInstallment = true
	number := item.InstallmentNumber
	count := plan.InstallmentCount
	transaction.InstallmentNumber = &number
	transaction.InstallmentCount = &count
	transaction.ParentTransactionID = &plan.ID

	return m.insert(ctx, transaction)
}

func (m *Materializer) insert(ctx context.Context, transaction *entity.Transaction) (*MaterializeResult, error) {
	if err := m.transactionRepo.Insert(ctx, transaction); err != nil {
		if errors.Is(err, domainerror.ErrAlreadyMaterialized) {
			// A concurrent run won the insert between our check and now.
			slog.Debug("Generated transaction already exists, skipping",
				"parent_id", transaction.ParentTransactionID,
				"date", transaction.Date.Format("2006-01-02"),
			)
			return &MaterializeResult{AlreadyProcessed: true}, nil
		}
		return nil, domainerror.NewAutomationError(
			domainerror.ErrCodeMaterializeFailed,
			"failed to insert generated transaction",
			err,
		)
	}

	return &MaterializeResult{Transaction: transaction}, nil
}
