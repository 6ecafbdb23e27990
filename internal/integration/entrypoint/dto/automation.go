package dto

import (
	"github.com/fintrack/backend/internal/application/usecase/automation"
)

// ProcessItemError represents a single failed due item in the automation response.
type ProcessItemError struct {
	ItemRef string `json:"item_ref"`
	Code    string `json:"code,omitempty"`
	Message string `json:"message"`
}

// ProcessResponse represents the response of an automation run.
type ProcessResponse struct {
	GeneratedCount int                   `json:"generated_count"`
	Transactions   []TransactionResponse `json:"transactions"`
	Errors         []ProcessItemError    `json:"errors,omitempty"`
}

// ToProcessResponse converts the automation output to a ProcessResponse DTO.
func ToProcessResponse(output *automation.ProcessAutomaticTransactionsOutput) ProcessResponse {
	transactions := make([]TransactionResponse, len(output.Transactions))
	for i, txn := range output.Transactions {
		transactions[i] = ToTransactionResponse(txn)
	}

	var itemErrors []ProcessItemError
	for _, e := range output.Errors {
		itemErrors = append(itemErrors, ProcessItemError{
			ItemRef: e.ItemRef,
			Code:    e.Code,
			Message: e.Message,
		})
	}

	return ProcessResponse{
		GeneratedCount: output.GeneratedCount,
		Transactions:   transactions,
		Errors:         itemErrors,
	}
}
