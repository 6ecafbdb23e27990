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

// UpdateTransactionInput represents the input for transaction update.
// Nil fields are left unchanged.
type UpdateTransactionInput struct {
	UserID        uuid.UUID
	TransactionID uuid.UUID
	Date          *time.Time
	Description   *string
	Amount        *decimal.Decimal
	Type          *entity.TransactionType
	CategoryID    *uuid.UUID
	ClearCategory bool
	PaymentMethod *entity.PaymentMethod
	Notes         *string
}

// UpdateTransactionOutput represents the output of transaction update.
type UpdateTransactionOutput struct {
	Transaction *entity.Transaction
}

// UpdateTransactionUseCase handles transaction updates.
type UpdateTransactionUseCase struct {
	transactionRepo adapter.TransactionRepository
	categoryRepo    adapter.CategoryRepository
}

// NewUpdateTransactionUseCase creates a new use case instance.
func NewUpdateTransactionUseCase(
	transactionRepo adapter.TransactionRepository,
	categoryRepo adapter.CategoryRepository,
) *UpdateTransactionUseCase {
	return &UpdateTransactionUseCase{
		transactionRepo: transactionRepo,
		categoryRepo:    categoryRepo,
	}
}

// Execute performs the transaction update.
func (uc *UpdateTransactionUseCase) Execute(ctx context.Context, input UpdateTransactionInput) (*UpdateTransactionOutput, error) {
	transaction, err := uc.transactionRepo.FindByID(ctx, input.TransactionID)
	if err != nil {
		return nil, domainerror.ErrTransactionNotFound
	}
	if transaction.UserID != input.UserID {
		return nil, domainerror.ErrNotAuthorizedToModifyTransaction
	}

	if input.Date != nil {
		transaction.Date = *input.Date
	}
	if input.Description != nil {
		if len(*input.Description) > MaxDescriptionLength {
			return nil, domainerror.ErrDescriptionTooLong
		}
		transaction.Description = *input.Description
	}
	if input.Amount != nil {
		transaction.Amount = *input.Amount
	}
	if input.Type != nil {
		if !entity.IsValidTransactionType(*input.Type) {
			return nil, domainerror.ErrInvalidTransactionType
		}
		transaction.Type = *input.Type
	}
	if input.ClearCategory {
		transaction.CategoryID = nil
	} else if input.CategoryID != nil {
		cat, err := uc.categoryRepo.FindByID(ctx, *input.CategoryID)
		if err != nil {
			return nil, domainerror.ErrCategoryNotFoundForTransaction
		}
		if cat.UserID != input.UserID {
			return nil, domainerror.ErrCategoryNotOwnedByUser
		}
		transaction.CategoryID = input.CategoryID
	}
	if input.PaymentMethod != nil {
		if !entity.IsValidPaymentMethod(*input.PaymentMethod) {
			return nil, domainerror.ErrInvalidPaymentMethod
		}
		transaction.PaymentMethod = *input.PaymentMethod
	}
	if input.Notes != nil {
		if len(*input.Notes) > MaxNotesLength {
			return nil, domainerror.ErrNotesTooLong
		}
		transaction.Notes = *input.Notes
	}
	transaction.UpdatedAt = time.Now()

	if err := uc.transactionRepo.Update(ctx, transaction); err != nil {
		return nil, fmt.Errorf("failed to update transaction: %w", err)
	}

	return &UpdateTransactionOutput{Transaction: transaction}, nil
}
