// Package dashboard contains the aggregate reporting use cases.
package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fintrack/backend/internal/application/adapter"
	domainerror "github.com/fintrack/backend/internal/domain/error"
)

// Fallback presentation for transactions without a category.
const (
	UncategorizedID    = "uncategorized"
	UncategorizedName  = "Uncategorized"
	UncategorizedColor = "#6B7280"
	UncategorizedIcon  = "question-mark"
)

// GetSummaryInput represents the input for the period summary.
type GetSummaryInput struct {
	UserID    uuid.UUID
	StartDate time.Time
	EndDate   time.Time
}

// CategoryBreakdownItem is one category's share of the period's expenses.
type CategoryBreakdownItem struct {
	CategoryID       string
	CategoryName     string
	CategoryColor    string
	CategoryIcon     string
	Amount           decimal.Decimal
	Percentage       float64
	TransactionCount int
}

// GetSummaryOutput represents the period summary: income/expense totals plus
// the per-category expense breakdown, largest category first.
type GetSummaryOutput struct {
	StartDate        time.Time
	EndDate          time.Time
	TotalIncome      decimal.Decimal
	TotalExpenses    decimal.Decimal
	Balance          decimal.Decimal
	TransactionCount int
	Categories       []CategoryBreakdownItem
}

// GetSummaryUseCase handles the dashboard period summary.
type GetSummaryUseCase struct {
	dashboardRepo adapter.DashboardRepository
}

// NewGetSummaryUseCase creates a new use case instance.
func NewGetSummaryUseCase(dashboardRepo adapter.DashboardRepository) *GetSummaryUseCase {
	return &GetSummaryUseCase{dashboardRepo: dashboardRepo}
}

// Execute computes the summary for the given period.
func (uc *GetSummaryUseCase) Execute(ctx context.Context, input GetSummaryInput) (*GetSummaryOutput, error) {
	if input.EndDate.Before(input.StartDate) {
		return nil, domainerror.ErrInvalidDateRange
	}

	totals, err := uc.dashboardRepo.GetPeriodTotals(ctx, input.UserID, input.StartDate, input.EndDate)
	if err != nil {
		return nil, fmt.Errorf("failed to get period totals: %w", err)
	}

	rows, err := uc.dashboardRepo.GetCategoryExpenses(ctx, input.UserID, input.StartDate, input.EndDate)
	if err != nil {
		return nil, fmt.Errorf("failed to get category breakdown: %w", err)
	}

	categories := make([]CategoryBreakdownItem, 0, len(rows))
	for _, row := range rows {
		var percentage float64
		if !totals.TotalExpenses.IsZero() {
			pct := row.Amount.Mul(decimal.NewFromInt(100)).Div(totals.TotalExpenses)
			percentage, _ = pct.Round(2).Float64()
		}

		item := CategoryBreakdownItem{
			Amount:           row.Amount,
			Percentage:       percentage,
			TransactionCount: row.TransactionCount,
		}
		if row.CategoryID == nil {
			item.CategoryID = UncategorizedID
			item.CategoryName = UncategorizedName
			item.CategoryColor = UncategorizedColor
			item.CategoryIcon = UncategorizedIcon
		} else {
			item.CategoryID = row.CategoryID.String()
			if row.CategoryName != nil {
				item.CategoryName = *row.CategoryName
			}
			if row.CategoryColor != nil {
				item.CategoryColor = *row.CategoryColor
			}
			if row.CategoryIcon != nil {
				item.CategoryIcon = *row.CategoryIcon
			}
		}
		categories = append(categories, item)
	}

	return &GetSummaryOutput{
		StartDate:        input.StartDate,
		EndDate:          input.EndDate,
		TotalIncome:      totals.TotalIncome,
		TotalExpenses:    totals.TotalExpenses,
		Balance:          totals.TotalIncome.Sub(totals.TotalExpenses),
		TransactionCount: totals.TransactionCount,
		Categories:       categories,
	}, nil
}
