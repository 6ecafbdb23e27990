package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fintrack/backend/internal/domain/entity"
)

func TestDashboardRepository(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	dashboards := NewDashboardRepository(db)
	transactions := NewTransactionRepository(db)
	categories := NewCategoryRepository(db)

	userID := uuid.New()
	otherUserID := uuid.New()
	start := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC)

	groceries := entity.NewCategory(userID, "Groceries", "#22C55E", "shopping-cart", entity.CategoryTypeExpense)
	if err := categories.Create(ctx, groceries); err != nil {
		t.Fatalf("Create() category error = %v", err)
	}

	seed := func(userID uuid.UUID, day int, description, amount string, txnType entity.TransactionType, categoryID *uuid.UUID) {
		t.Helper()
		txn := entity.NewTransaction(
			userID,
			time.Date(2024, 6, day, 0, 0, 0, 0, time.UTC),
			description,
			decimal.RequireFromString(amount),
			txnType,
			categoryID,
			entity.PaymentMethodCard,
			"",
		)
		if err := transactions.Create(ctx, txn); err != nil {
			t.Fatalf("Create() transaction error = %v", err)
		}
	}

	seed(userID, 1, "Salary", "3000.00", entity.TransactionTypeIncome, nil)
	seed(userID, 5, "Market run", "200.00", entity.TransactionTypeExpense, &groceries.ID)
	seed(userID, 12, "Market run", "100.00", entity.TransactionTypeExpense, &groceries.ID)
	seed(userID, 20, "Street food", "100.00", entity.TransactionTypeExpense, nil)
	seed(otherUserID, 8, "Not mine", "999.00", entity.TransactionTypeExpense, nil)

	t.Run("period totals split income from expenses", func(t *testing.T) {
		totals, err := dashboards.GetPeriodTotals(ctx, userID, start, end)
		if err != nil {
			t.Fatalf("GetPeriodTotals() error = %v", err)
		}
		if !totals.TotalIncome.Equal(decimal.RequireFromString("3000.00")) {
			t.Errorf("TotalIncome = %s, want 3000.00", totals.TotalIncome)
		}
		if !totals.TotalExpenses.Equal(decimal.RequireFromString("400.00")) {
			t.Errorf("TotalExpenses = %s, want 400.00", totals.TotalExpenses)
		}
		if totals.TransactionCount != 4 {
			t.Errorf("TransactionCount = %d, want 4", totals.TransactionCount)
		}
	})

	t.Run("totals are scoped to the period", func(t *testing.T) {
		totals, err := dashboards.GetPeriodTotals(ctx, userID, start, start.AddDate(0, 0, 6))
		if err != nil {
			t.Fatalf("GetPeriodTotals() error = %v", err)
		}
		if !totals.TotalExpenses.Equal(decimal.RequireFromString("200.00")) {
			t.Errorf("TotalExpenses = %s, want 200.00", totals.TotalExpenses)
		}
	})

	t.Run("category expenses come back largest first with an uncategorized row", func(t *testing.T) {
		rows, err := dashboards.GetCategoryExpenses(ctx, userID, start, end)
		if err != nil {
			t.Fatalf("GetCategoryExpenses() error = %v", err)
		}
		if len(rows) != 2 {
			t.Fatalf("rows = %d, want 2", len(rows))
		}
		if rows[0].CategoryID == nil || *rows[0].CategoryID != groceries.ID {
			t.Errorf("top row category = %v, want %s", rows[0].CategoryID, groceries.ID)
		}
		if !rows[0].Amount.Equal(decimal.RequireFromString("300.00")) {
			t.Errorf("top row amount = %s, want 300.00", rows[0].Amount)
		}
		if rows[0].TransactionCount != 2 {
			t.Errorf("top row count = %d, want 2", rows[0].TransactionCount)
		}
		if rows[1].CategoryID != nil {
			t.Errorf("second row category = %v, want nil (uncategorized)", rows[1].CategoryID)
		}
	})

	t.Run("deleted transactions are excluded", func(t *testing.T) {
		victim := entity.NewTransaction(
			userID,
			time.Date(2024, 6, 25, 0, 0, 0, 0, time.UTC),
			"Refunded purchase",
			decimal.RequireFromString("50.00"),
			entity.TransactionTypeExpense,
			nil,
			entity.PaymentMethodCard,
			"",
		)
		if err := transactions.Create(ctx, victim); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
		if err := transactions.Delete(ctx, victim.ID); err != nil {
			t.Fatalf("Delete() error = %v", err)
		}

		totals, err := dashboards.GetPeriodTotals(ctx, userID, start, end)
		if err != nil {
			t.Fatalf("GetPeriodTotals() error = %v", err)
		}
		if !totals.TotalExpenses.Equal(decimal.RequireFromString("400.00")) {
			t.Errorf("TotalExpenses = %s, want 400.00 after soft delete", totals.TotalExpenses)
		}
	})
}
