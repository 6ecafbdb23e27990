// Package adapter defines interfaces that are implemented in the integration layer.
package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PeriodTotals holds aggregate income/expense figures for a date range.
type PeriodTotals struct {
	TotalIncome      decimal.Decimal
	TotalExpenses    decimal.Decimal
	TransactionCount int
}

// CategoryExpenseRow is one category's expense aggregate as read from the
// store. Category fields are nil for uncategorized transactions.
type CategoryExpenseRow struct {
	CategoryID       *uuid.UUID
	CategoryName     *string
	CategoryColor    *string
	CategoryIcon     *string
	Amount           decimal.Decimal
	TransactionCount int
}

// DashboardRepository defines the aggregate reporting queries behind the
// dashboard endpoints. Soft-deleted transactions are excluded everywhere.
type DashboardRepository interface {
	// GetPeriodTotals returns income and expense totals for a period.
	GetPeriodTotals(ctx context.Context, userID uuid.UUID, startDate, endDate time.Time) (*PeriodTotals, error)

	// GetCategoryExpenses returns expense totals grouped by category for a
	// period, largest first.
	GetCategoryExpenses(ctx context.Context, userID uuid.UUID, startDate, endDate time.Time) ([]CategoryExpenseRow, error)
}
