package persistence

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/fintrack/backend/internal/application/adapter"
	"github.com/fintrack/backend/internal/domain/entity"
)

// dashboardRepository implements the adapter.DashboardRepository interface.
type dashboardRepository struct {
	db *gorm.DB
}

// NewDashboardRepository creates a new dashboard repository instance.
func NewDashboardRepository(db *gorm.DB) adapter.DashboardRepository {
	return &dashboardRepository{
		db: db,
	}
}

// GetPeriodTotals returns income and expense totals for a period.
func (r *dashboardRepository) GetPeriodTotals(
	ctx context.Context,
	userID uuid.UUID,
	startDate, endDate time.Time,
) (*adapter.PeriodTotals, error) {
	var result struct {
		TotalIncome      decimal.Decimal `gorm:"column:total_income"`
		TotalExpenses    decimal.Decimal `gorm:"column:total_expenses"`
		TransactionCount int             `gorm:"column:transaction_count"`
	}

	query := `
		SELECT
			COALESCE(SUM(CASE WHEN type = ? THEN amount ELSE 0 END), 0) as total_income,
			COALESCE(SUM(CASE WHEN type = ? THEN amount ELSE 0 END), 0) as total_expenses,
			COUNT(*) as transaction_count
		FROM transactions
		WHERE user_id = ?
			AND date >= ?
			AND date <= ?
			AND deleted_at IS NULL
	`

	err := r.db.WithContext(ctx).
		Raw(query,
			string(entity.TransactionTypeIncome),
			string(entity.TransactionTypeExpense),
			userID, startDate, endDate,
		).
		Scan(&result).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get period totals: %w", err)
	}

	return &adapter.PeriodTotals{
		TotalIncome:      result.TotalIncome,
		TotalExpenses:    result.TotalExpenses,
		TransactionCount: result.TransactionCount,
	}, nil
}

// GetCategoryExpenses returns expense totals grouped by category for a
// period, largest first. Uncategorized expenses come back as a row with nil
// category fields.
func (r *dashboardRepository) GetCategoryExpenses(
	ctx context.Context,
	userID uuid.UUID,
	startDate, endDate time.Time,
) ([]adapter.CategoryExpenseRow, error) {
	var results []struct {
		CategoryID       *uuid.UUID      `gorm:"column:category_id"`
		CategoryName     *string         `gorm:"column:category_name"`
		CategoryColor    *string         `gorm:"column:category_color"`
		CategoryIcon     *string         `gorm:"column:category_icon"`
		Amount           decimal.Decimal `gorm:"column:amount"`
		TransactionCount int             `gorm:"column:transaction_count"`
	}

	query := `
		SELECT
			t.category_id,
			c.name as category_name,
			c.color as category_color,
			c.icon as category_icon,
			SUM(t.amount) as amount,
			COUNT(*) as transaction_count
		FROM transactions t
		LEFT JOIN categories c ON t.category_id = c.id AND c.deleted_at IS NULL
		WHERE t.user_id = ?
			AND t.date >= ?
			AND t.date <= ?
			AND t.type = ?
			AND t.deleted_at IS NULL
		GROUP BY t.category_id, c.name, c.color, c.icon
		ORDER BY amount DESC
	`

	err := r.db.WithContext(ctx).
		Raw(query, userID, startDate, endDate, string(entity.TransactionTypeExpense)).
		Scan(&results).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get category expenses: %w", err)
	}

	rows := make([]adapter.CategoryExpenseRow, len(results))
	for i, res := range results {
		rows[i] = adapter.CategoryExpenseRow{
			CategoryID:       res.CategoryID,
			CategoryName:     res.CategoryName,
			CategoryColor:    res.CategoryColor,
			CategoryIcon:     res.CategoryIcon,
			Amount:           res.Amount,
			TransactionCount: res.TransactionCount,
		}
	}
	return rows, nil
}
