package dashboard

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fintrack/backend/internal/application/adapter"
	domainerror "github.com/fintrack/backend/internal/domain/error"
)

type stubDashboardRepo struct {
	totals *adapter.PeriodTotals
	rows   []adapter.CategoryExpenseRow
}

func (r *stubDashboardRepo) GetPeriodTotals(_ context.Context, _ uuid.UUID, _, _ time.Time) (*adapter.PeriodTotals, error) {
	return r.totals, nil
}

func (r *stubDashboardRepo) GetCategoryExpenses(_ context.Context, _ uuid.UUID, _, _ time.Time) ([]adapter.CategoryExpenseRow, error) {
	return r.rows, nil
}

func TestGetSummary(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	start := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC)

	strPtr := func(s string) *string { return &s }

	t.Run("computes balance and category percentages", func(t *testing.T) {
		groceriesID := uuid.New()
		repo := &stubDashboardRepo{
			totals: &adapter.PeriodTotals{
				TotalIncome:      decimal.RequireFromString("3000.00"),
				TotalExpenses:    decimal.RequireFromString("400.00"),
				TransactionCount: 5,
			},
			rows: []adapter.CategoryExpenseRow{
				{
					CategoryID:       &groceriesID,
					CategoryName:     strPtr("Groceries"),
					CategoryColor:    strPtr("#22C55E"),
					CategoryIcon:     strPtr("shopping-cart"),
					Amount:           decimal.RequireFromString("300.00"),
					TransactionCount: 3,
				},
				{
					Amount:           decimal.RequireFromString("100.00"),
					TransactionCount: 1,
				},
			},
		}

		out, err := NewGetSummaryUseCase(repo).Execute(ctx, GetSummaryInput{
			UserID:    userID,
			StartDate: start,
			EndDate:   end,
		})
		if err != nil {
			t.Fatalf("Execute() error = %v", err)
		}

		if !out.Balance.Equal(decimal.RequireFromString("2600.00")) {
			t.Errorf("Balance = %s, want 2600.00", out.Balance)
		}
		if len(out.Categories) != 2 {
			t.Fatalf("categories = %d, want 2", len(out.Categories))
		}
		if out.Categories[0].CategoryName != "Groceries" || out.Categories[0].Percentage != 75 {
			t.Errorf("top category = %s at %.2f%%, want Groceries at 75%%",
				out.Categories[0].CategoryName, out.Categories[0].Percentage)
		}
		if out.Categories[1].CategoryID != UncategorizedID || out.Categories[1].CategoryName != UncategorizedName {
			t.Errorf("nil category rendered as %q/%q, want uncategorized fallback",
				out.Categories[1].CategoryID, out.Categories[1].CategoryName)
		}
		if out.Categories[1].Percentage != 25 {
			t.Errorf("uncategorized percentage = %.2f, want 25", out.Categories[1].Percentage)
		}
	})

	t.Run("zero expenses yields zero percentages", func(t *testing.T) {
		repo := &stubDashboardRepo{
			totals: &adapter.PeriodTotals{
				TotalIncome:   decimal.RequireFromString("1000.00"),
				TotalExpenses: decimal.Zero,
			},
		}

		out, err := NewGetSummaryUseCase(repo).Execute(ctx, GetSummaryInput{
			UserID:    userID,
			StartDate: start,
			EndDate:   end,
		})
		if err != nil {
			t.Fatalf("Execute() error = %v", err)
		}
		if !out.Balance.Equal(decimal.RequireFromString("1000.00")) {
			t.Errorf("Balance = %s, want 1000.00", out.Balance)
		}
		if len(out.Categories) != 0 {
			t.Errorf("categories = %d, want 0", len(out.Categories))
		}
	})

	t.Run("rejects an inverted period", func(t *testing.T) {
		repo := &stubDashboardRepo{totals: &adapter.PeriodTotals{}}

		_, err := NewGetSummaryUseCase(repo).Execute(ctx, GetSummaryInput{
			UserID:    userID,
			StartDate: end,
			EndDate:   start,
		})
		if !errors.Is(err, domainerror.ErrInvalidDateRange) {
			t.Errorf("Execute() error = %v, want ErrInvalidDateRange", err)
		}
	})
}
