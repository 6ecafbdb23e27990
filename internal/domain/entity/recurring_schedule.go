// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Cadence represents how often a recurring schedule fires.
type Cadence string

const (
	CadenceWeekly  Cadence = "weekly"
	CadenceMonthly Cadence = "monthly"
	CadenceYearly  Cadence = "yearly"
)

// IsValidCadence reports whether c is a known cadence.
func IsValidCadence(c Cadence) bool {
	return c == CadenceWeekly || c == CadenceMonthly || c == CadenceYearly
}

// RecurringSchedule describes a transaction that should be materialized
// periodically by the automation engine. NextDueDate and Active are mutated
// only by the schedule advancer; a schedule is never deleted by the engine,
// only deactivated.
type RecurringSchedule struct {
	ID            uuid.UUID
	UserID        uuid.UUID
	Type          TransactionType
	Amount        decimal.Decimal
	Description   string
	CategoryID    *uuid.UUID
	PaymentMethod PaymentMethod
	Notes         string
	Cadence       Cadence
	StartDate     time.Time
	EndDate       *time.Time
	NextDueDate   time.Time
	Active        bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// NewRecurringSchedule creates a new RecurringSchedule entity. The first due
// date is the start date itself.
func NewRecurringSchedule(
	userID uuid.UUID,
	transactionType TransactionType,
	amount decimal.Decimal,
	description string,
	categoryID *uuid.UUID,
	paymentMethod PaymentMethod,
	notes string,
	cadence Cadence,
	startDate time.Time,
	endDate *time.Time,
) *RecurringSchedule {
	now := time.Now().UTC()

	return &RecurringSchedule{
		ID:            uuid.New(),
		UserID:        userID,
		Type:          transactionType,
		Amount:        amount,
		Description:   description,
		CategoryID:    categoryID,
		PaymentMethod: paymentMethod,
		Notes:         notes,
		Cadence:       cadence,
		StartDate:     startDate,
		EndDate:       endDate,
		NextDueDate:   startDate,
		Active:        true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}
