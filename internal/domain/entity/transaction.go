// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionType represents the type of transaction (expense or income).
type TransactionType string

const (
	TransactionTypeExpense TransactionType = "expense"
	TransactionTypeIncome  TransactionType = "income"
)

// PaymentMethod represents how a transaction was paid.
type PaymentMethod string

const (
	PaymentMethodCard         PaymentMethod = "card"
	PaymentMethodPix          PaymentMethod = "pix"
	PaymentMethodBankTransfer PaymentMethod = "bank_transfer"
	PaymentMethodCash         PaymentMethod = "cash"
	PaymentMethodOther        PaymentMethod = "other"
)

// Transaction represents a ledger entry. Entries created by the automation
// engine carry a reference to the schedule that produced them via
// ParentTransactionID, plus the IsRecurring/IsInstallment flags and, for
// installments, the installment position within the plan.
type Transaction struct {
	ID                  uuid.UUID
	UserID              uuid.UUID
	Date                time.Time
	Description         string
	Amount              decimal.Decimal
	Type                TransactionType
	CategoryID          *uuid.UUID // Optional, can be uncategorized
	PaymentMethod       PaymentMethod
	Notes               string
	IsRecurring         bool
	IsInstallment       bool
	InstallmentNumber   *int
	InstallmentCount    *int
	ParentTransactionID *uuid.UUID // Originating schedule or plan
	CreatedAt           time.Time
	UpdatedAt           time.Time
	DeletedAt           *time.Time // Soft-delete support
}

// NewTransaction creates a new Transaction entity.
func NewTransaction(
	userID uuid.UUID,
	date time.Time,
	description string,
	amount decimal.Decimal,
	transactionType TransactionType,
	categoryID *uuid.UUID,
	paymentMethod PaymentMethod,
	notes string,
) *Transaction {
	now := time.Now().UTC()

	return &Transaction{
		ID:            uuid.New(),
		UserID:        userID,
		Date:          date,
		Description:   description,
		Amount:        amount,
		Type:          transactionType,
		CategoryID:    categoryID,
		PaymentMethod: paymentMethod,
		Notes:         notes,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// IsValidTransactionType reports whether t is a known transaction type.
func IsValidTransactionType(t TransactionType) bool {
	return t == TransactionTypeExpense || t == TransactionTypeIncome
}

// IsValidPaymentMethod reports whether m is a known payment method.
// The empty value is allowed: payment method is optional metadata.
func IsValidPaymentMethod(m PaymentMethod) bool {
	switch m {
	case "", PaymentMethodCard, PaymentMethodPix, PaymentMethodBankTransfer,
		PaymentMethodCash, PaymentMethodOther:
		return true
	}
	return false
}

// TransactionWithCategory represents a transaction with its associated category.
type TransactionWithCategory struct {
	Transaction *Transaction
	Category    *Category
}
