// Package transaction contains transaction-related use cases.
package transaction

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fintrack/backend/internal/application/adapter"
	"github.com/fintrack/backend/internal/domain/entity"
	domainerror "github.com/fintrack/backend/internal/domain/error"
)

const (
	// MaxDescriptionLength is the maximum allowed length for transaction descriptions.
	MaxDescriptionLength = 255
	// MaxNotesLength is the maximum allowed length for transaction notes.
	MaxNotesLength = 1000
)

// CreateTransactionInput represents the input for transaction creation.
type CreateTransactionInput struct {
	UserID        uuid.UUID
	Date          time.Time
	Description   string
	Amount        decimal.Decimal
	Type          entity.TransactionType
	CategoryID    *uuid.UUID
	PaymentMethod entity.PaymentMethod
	Notes         string
}

// CreateTransactionOutput represents the output of transaction creation.
type CreateTransactionOutput struct {
	Transaction *entity.Transaction
	Category    *entity.Category
}

// CreateTransactionUseCase handles manual ledger entry creation. Entries
// produced by the automation engine go through its materializer instead.
type CreateTransactionUseCase struct {
	transactionRepo adapter.TransactionRepository
	categoryRepo    adapter.CategoryRepository
}

// NewCreateTransactionUseCase creates a new use case instance.
func NewCreateTransactionUseCase(
	transactionRepo adapter.TransactionRepository,
	categoryRepo adapter.CategoryRepository,
) *CreateTransactionUseCase {
	return &CreateTransactionUseCase{
		transactionRepo: transactionRepo,
		categoryRepo:    categoryRepo,
	}
}

// Execute performs the transaction creation.
func (uc *CreateTransactionUseCase) Execute(ctx context.Context, input CreateTransactionInput) (*CreateTransactionOutput, error) {
	if len(input.Description) > MaxDescriptionLength {
		return nil, domainerror.ErrDescriptionTooLong
	}
	if len(input.Notes) > MaxNotesLength {
		return nil, domainerror.ErrNotesTooLong
	}
	if !entity.IsValidTransactionType(input.Type) {
		return nil, domainerror.ErrInvalidTransactionType
	}
	if !entity.IsValidPaymentMethod(input.PaymentMethod) {
		return nil, domainerror.ErrInvalidPaymentMethod
	}

	var category *entity.Category
	if input.CategoryID != nil {
		cat, err := uc.categoryRepo.FindByID(ctx, *input.CategoryID)
		if err != nil {
			return nil, domainerror.ErrCategoryNotFoundForTransaction
		}
		if cat.UserID != input.UserID {
			return nil, domainerror.ErrCategoryNotOwnedByUser
		}
		category = cat
	}

	transaction := entity.NewTransaction(
		input.UserID,
		input.Date,
		input.Description,
		input.Amount,
		input.Type,
		input.CategoryID,
		input.PaymentMethod,
		input.Notes,
	)

	if err := uc.transactionRepo.Create(ctx, transaction); err != nil {
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}

	return &CreateTransactionOutput{
		Transaction: transaction,
		Category:    category,
	}, nil
}
