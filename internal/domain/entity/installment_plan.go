// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MinInstallmentCount is the smallest allowed number of installments.
// A single-installment purchase is just an ordinary transaction.
const MinInstallmentCount = 2

// InstallmentPlan describes a purchase split into a fixed number of monthly
// installments. The per-installment amount is derived once at creation time
// (total / count, rounded to two decimal places) and is never recomputed, so
// the sum of all installments may drift from the total by a rounding epsilon.
// CompletedInstallments and Active are mutated only by the schedule advancer.
type InstallmentPlan struct {
	ID                    uuid.UUID
	UserID                uuid.UUID
	Type                  TransactionType
	TotalAmount           decimal.Decimal
	InstallmentAmount     decimal.Decimal
	Description           string
	CategoryID            *uuid.UUID
	PaymentMethod         PaymentMethod
	Notes                 string
	InstallmentCount      int
	CompletedInstallments int
	StartDate             time.Time
	Active                bool
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

// NewInstallmentPlan creates a new InstallmentPlan entity with the derived
// per-installment amount.
func NewInstallmentPlan(
	userID uuid.UUID,
	transactionType TransactionType,
	totalAmount decimal.Decimal,
	description string,
	categoryID *uuid.UUID,
	paymentMethod PaymentMethod,
	notes string,
	installmentCount int,
	startDate time.Time,
) *InstallmentPlan {
	now := time.Now().UTC()

	return &InstallmentPlan{
		ID:                    uuid.New(),
		UserID:                userID,
		Type:                  transactionType,
		TotalAmount:           totalAmount,
		InstallmentAmount:     DeriveInstallmentAmount(totalAmount, installmentCount),
		Description:           description,
		CategoryID:            categoryID,
		PaymentMethod:         paymentMethod,
		Notes:                 notes,
		InstallmentCount:      installmentCount,
		CompletedInstallments: 0,
		StartDate:             startDate,
		Active:                true,
		CreatedAt:             now,
		UpdatedAt:             now,
	}
}

// DeriveInstallmentAmount computes the per-installment amount: total divided
// by count, rounded half-up to two decimal places. The final installment does
// not absorb rounding drift.
func DeriveInstallmentAmount(total decimal.Decimal, count int) decimal.Decimal {
	return total.Div(decimal.NewFromInt(int64(count))).Round(2)
}
