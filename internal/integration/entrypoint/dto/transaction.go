package dto

import (
	"time"

	"github.com/fintrack/backend/internal/domain/entity"
)

// CreateTransactionRequest represents the request body for transaction creation.
type CreateTransactionRequest struct {
	Date          string  `json:"date" binding:"required"`
	Description   string  `json:"description" binding:"required,min=1,max=255"`
	Amount        string  `json:"amount" binding:"required"`
	Type          string  `json:"type" binding:"required,oneof=expense income"`
	CategoryID    *string `json:"category_id,omitempty"`
	PaymentMethod string  `json:"payment_method,omitempty" binding:"omitempty,oneof=card pix bank_transfer cash other"`
	Notes         string  `json:"notes,omitempty" binding:"omitempty,max=1000"`
}

// UpdateTransactionRequest represents the request body for transaction update.
type UpdateTransactionRequest struct {
	Date          *string `json:"date,omitempty"`
	Description   *string `json:"description,omitempty" binding:"omitempty,min=1,max=255"`
	Amount        *string `json:"amount,omitempty"`
	Type          *string `json:"type,omitempty" binding:"omitempty,oneof=expense income"`
	CategoryID    *string `json:"category_id,omitempty"`
	ClearCategory bool    `json:"clear_category,omitempty"`
	PaymentMethod *string `json:"payment_method,omitempty" binding:"omitempty,oneof=card pix bank_transfer cash other"`
	Notes         *string `json:"notes,omitempty" binding:"omitempty,max=1000"`
}

// TransactionResponse represents a single transaction in API responses.
type TransactionResponse struct {
	ID                  string            `json:"id"`
	Date                string            `json:"date"`
	Description         string            `json:"description"`
	Amount              string            `json:"amount"`
	Type                string            `json:"type"`
	CategoryID          *string           `json:"category_id,omitempty"`
	Category            *CategoryResponse `json:"category,omitempty"`
	PaymentMethod       string            `json:"payment_method,omitempty"`
	Notes               string            `json:"notes,omitempty"`
	IsRecurring         bool              `json:"is_recurring"`
	IsInstallment       bool              `json:"is_installment"`
	InstallmentNumber   *int              `json:"installment_number,omitempty"`
	InstallmentCount    *int              `json:"installment_count,omitempty"`
	ParentTransactionID *string           `json:"parent_transaction_id,omitempty"`
	CreatedAt           time.Time         `json:"created_at"`
	UpdatedAt           time.Time         `json:"updated_at"`
}

// TransactionListResponse represents the response for listing transactions.
type TransactionListResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	Total        int64                 `json:"total"`
	Page         int                   `json:"page"`
	Limit        int                   `json:"limit"`
	TotalPages   int                   `json:"total_pages"`
}

// ToTransactionResponse converts a domain Transaction entity to a TransactionResponse DTO.
func ToTransactionResponse(txn *entity.Transaction) TransactionResponse {
	response := TransactionResponse{
		ID:                txn.ID.String(),
		Date:              txn.Date.Format("2006-01-02"),
		Description:       txn.Description,
		Amount:            txn.Amount.StringFixed(2),
		Type:              string(txn.Type),
		PaymentMethod:     string(txn.PaymentMethod),
		Notes:             txn.Notes,
		IsRecurring:       txn.IsRecurring,
		IsInstallment:     txn.IsInstallment,
		InstallmentNumber: txn.InstallmentNumber,
		InstallmentCount:  txn.InstallmentCount,
		CreatedAt:         txn.CreatedAt,
		UpdatedAt:         txn.UpdatedAt,
	}
	if txn.CategoryID != nil {
		id := txn.CategoryID.String()
		response.CategoryID = &id
	}
	if txn.ParentTransactionID != nil {
		id := txn.ParentTransactionID.String()
		response.ParentTransactionID = &id
	}
	return response
}

// ToTransactionResponseWithCategory converts a TransactionWithCategory to a response DTO.
func ToTransactionResponseWithCategory(twc *entity.TransactionWithCategory) TransactionResponse {
	response := ToTransactionResponse(twc.Transaction)
	if twc.Category != nil {
		cat := ToCategoryResponse(twc.Category)
		response.Category = &cat
	}
	return response
}
