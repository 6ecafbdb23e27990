package dto

import (
	"github.com/fintrack/backend/internal/application/usecase/dashboard"
)

// SummaryCategory represents one category in the expense breakdown.
type SummaryCategory struct {
	CategoryID       string  `json:"category_id"`
	CategoryName     string  `json:"category_name"`
	CategoryColor    string  `json:"category_color"`
	CategoryIcon     string  `json:"category_icon"`
	Amount           string  `json:"amount"`
	Percentage       float64 `json:"percentage"`
	TransactionCount int     `json:"transaction_count"`
}

// SummaryResponse represents the dashboard period summary.
type SummaryResponse struct {
	StartDate        string            `json:"start_date"`
	EndDate          string            `json:"end_date"`
	TotalIncome      string            `json:"total_income"`
	TotalExpenses    string            `json:"total_expenses"`
	Balance          string            `json:"balance"`
	TransactionCount int               `json:"transaction_count"`
	Categories       []SummaryCategory `json:"categories"`
}

// ToSummaryResponse converts the use case output to a SummaryResponse DTO.
func ToSummaryResponse(output *dashboard.GetSummaryOutput) SummaryResponse {
	categories := make([]SummaryCategory, len(output.Categories))
	for i, c := range output.Categories {
		categories[i] = SummaryCategory{
			CategoryID:       c.CategoryID,
			CategoryName:     c.CategoryName,
			CategoryColor:    c.CategoryColor,
			CategoryIcon:     c.CategoryIcon,
			Amount:           c.Amount.StringFixed(2),
			Percentage:       c.Percentage,
			TransactionCount: c.TransactionCount,
		}
	}

	return SummaryResponse{
		StartDate:        output.StartDate.Format("2006-01-02"),
		EndDate:          output.EndDate.Format("2006-01-02"),
		TotalIncome:      output.TotalIncome.StringFixed(2),
		TotalExpenses:    output.TotalExpenses.StringFixed(2),
		Balance:          output.Balance.StringFixed(2),
		TransactionCount: output.TransactionCount,
		Categories:       categories,
	}
}
