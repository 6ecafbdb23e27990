// Package adapter defines interfaces that are implemented in the integration layer.
package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/fintrack/backend/internal/domain/entity"
)

// TransactionFilter defines filter options for listing transactions.
type TransactionFilter struct {
	UserID      uuid.UUID
	StartDate   *time.Time
	EndDate     *time.Time
	CategoryIDs []uuid.UUID
	Type        *entity.TransactionType
	Search      string // Case-insensitive description match
}

// TransactionPagination defines pagination options.
type TransactionPagination struct {
	Page  int
	Limit int
}

// TransactionListResult represents the result of listing transactions.
type TransactionListResult struct {
	Transactions []*entity.TransactionWithCategory
	Total        int64
	Page         int
	Limit        int
	TotalPages   int
}

// TransactionRepository defines the interface for transaction persistence.
//
// Insert is the write path used by the automation engine: the backing store
// enforces uniqueness on (parent_transaction_id, date) and
// (parent_transaction_id, installment_number), and Insert returns
// domainerror.ErrAlreadyMaterialized when a concurrent run has already
// created the entry.
type TransactionRepository interface {
	// Create creates a new user-entered transaction.
	Create(ctx context.Context, transaction *entity.Transaction) error

	// Insert creates a generated transaction, surfacing uniqueness conflicts
	// as domainerror.ErrAlreadyMaterialized.
	Insert(ctx context.Context, transaction *entity.Transaction) error

	// FindByID retrieves a transaction by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Transaction, error)

	// FindByFilter retrieves transactions based on filter criteria with pagination.
	FindByFilter(ctx context.Context, filter TransactionFilter, pagination TransactionPagination) (*TransactionListResult, error)

	// FindGeneratedByParentAndDate finds the generated entry for a recurring
	// schedule and due date, or nil if none exists.
	FindGeneratedByParentAndDate(ctx context.Context, parentID uuid.UUID, date time.Time) (*entity.Transaction, error)

	// FindGeneratedByParentAndNumber finds the generated entry for an
	// installment plan and installment number, or nil if none exists.
	FindGeneratedByParentAndNumber(ctx context.Context, parentID uuid.UUID, installmentNumber int) (*entity.Transaction, error)

	// Update updates an existing transaction.
	Update(ctx context.Context, transaction *entity.Transaction) error

	// Delete soft-deletes a transaction.
	Delete(ctx context.Context, id uuid.UUID) error
}
