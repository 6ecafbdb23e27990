package dto

import (
	"time"

	"github.com/fintrack/backend/internal/domain/entity"
)

// CreateRecurringScheduleRequest represents the request body for schedule creation.
type CreateRecurringScheduleRequest struct {
	Type          string  `json:"type" binding:"required,oneof=expense income"`
	Amount        string  `json:"amount" binding:"required"`
	Description   string  `json:"description" binding:"required,min=1,max=255"`
	CategoryID    *string `json:"category_id,omitempty"`
	PaymentMethod string  `json:"payment_method,omitempty" binding:"omitempty,oneof=card pix bank_transfer cash other"`
	Notes         string  `json:"notes,omitempty" binding:"omitempty,max=1000"`
	Cadence       string  `json:"cadence" binding:"required,oneof=weekly monthly yearly"`
	StartDate     string  `json:"start_date" binding:"required"`
	EndDate       *string `json:"end_date,omitempty"`
}

// UpdateRecurringScheduleRequest represents the request body for schedule update.
type UpdateRecurringScheduleRequest struct {
	Amount        *string `json:"amount,omitempty"`
	Description   *string `json:"description,omitempty" binding:"omitempty,min=1,max=255"`
	CategoryID    *string `json:"category_id,omitempty"`
	PaymentMethod *string `json:"payment_method,omitempty" binding:"omitempty,oneof=card pix bank_transfer cash other"`
	Notes         *string `json:"notes,omitempty" binding:"omitempty,max=1000"`
	EndDate       *string `json:"end_date,omitempty"`
	ClearEndDate  bool    `json:"clear_end_date,omitempty"`
	Reactivate    bool    `json:"reactivate,omitempty"`
}

// CreateInstallmentPlanRequest represents the request body for plan creation.
type CreateInstallmentPlanRequest struct {
	Type             string  `json:"type" binding:"required,oneof=expense income"`
	TotalAmount      string  `json:"total_amount" binding:"required"`
	Description      string  `json:"description" binding:"required,min=1,max=255"`
	CategoryID       *string `json:"category_id,omitempty"`
	PaymentMethod    string  `json:"payment_method,omitempty" binding:"omitempty,oneof=card pix bank_transfer cash other"`
	Notes            string  `json:"notes,omitempty" binding:"omitempty,max=1000"`
	InstallmentCount int     `json:"installment_count" binding:"required,min=2"`
	StartDate        string  `json:"start_date" binding:"required"`
}

// RecurringScheduleResponse represents a recurring schedule in API responses.
type RecurringScheduleResponse struct {
	ID            string    `json:"id"`
	Type          string    `json:"type"`
	Amount        string    `json:"amount"`
	Description   string    `json:"description"`
	CategoryID    *string   `json:"category_id,omitempty"`
	PaymentMethod string    `json:"payment_method,omitempty"`
	Notes         string    `json:"notes,omitempty"`
	Cadence       string    `json:"cadence"`
	StartDate     string    `json:"start_date"`
	EndDate       *string   `json:"end_date,omitempty"`
	NextDueDate   string    `json:"next_due_date"`
	Active        bool      `json:"active"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// InstallmentPlanResponse represents an installment plan in API responses.
type InstallmentPlanResponse struct {
	ID                    string    `json:"id"`
	Type                  string    `json:"type"`
	TotalAmount           string    `json:"total_amount"`
	InstallmentAmount     string    `json:"installment_amount"`
	Description           string    `json:"description"`
	CategoryID            *string   `json:"category_id,omitempty"`
	PaymentMethod         string    `json:"payment_method,omitempty"`
	Notes                 string    `json:"notes,omitempty"`
	InstallmentCount      int       `json:"installment_count"`
	CompletedInstallments int       `json:"completed_installments"`
	StartDate             string    `json:"start_date"`
	Active                bool      `json:"active"`
	CreatedAt             time.Time `json:"created_at"`
	UpdatedAt             time.Time `json:"updated_at"`
}

// RecurringScheduleListResponse represents the response for listing schedules.
type RecurringScheduleListResponse struct {
	Schedules []RecurringScheduleResponse `json:"schedules"`
}

// InstallmentPlanListResponse represents the response for listing plans.
type InstallmentPlanListResponse struct {
	Plans []InstallmentPlanResponse `json:"plans"`
}

// ToRecurringScheduleResponse converts a domain RecurringSchedule to a response DTO.
func ToRecurringScheduleResponse(schedule *entity.RecurringSchedule) RecurringScheduleResponse {
	response := RecurringScheduleResponse{
		ID:            schedule.ID.String(),
		Type:          string(schedule.Type),
		Amount:        schedule.Amount.StringFixed(2),
		Description:   schedule.Description,
		PaymentMethod: string(schedule.PaymentMethod),
		Notes:         schedule.Notes,
		Cadence:       string(schedule.Cadence),
		StartDate:     schedule.StartDate.Format("2006-01-02"),
		NextDueDate:   schedule.NextDueDate.Format("2006-01-02"),
		Active:        schedule.Active,
		CreatedAt:     schedule.CreatedAt,
		UpdatedAt:     schedule.UpdatedAt,
	}
	if schedule.CategoryID != nil {
		id := schedule.CategoryID.String()
		response.CategoryID = &id
	}
	if schedule.EndDate != nil {
		end := schedule.EndDate.Format("2006-01-02")
		response.EndDate = &end
	}
	return response
}

// ToInstallmentPlanResponse converts a domain InstallmentPlan to a response DTO.
func ToInstallmentPlanResponse(plan *entity.InstallmentPlan) InstallmentPlanResponse {
	response := InstallmentPlanResponse{
		ID:                    plan.ID.String(),
		Type:                  string(plan.Type),
		TotalAmount:           plan.TotalAmount.StringFixed(2),
		InstallmentAmount:     plan.InstallmentAmount.StringFixed(2),
		Description:           plan.Description,
		PaymentMethod:         string(plan.PaymentMethod),
		Notes:                 plan.Notes,
		InstallmentCount:      plan.InstallmentCount,
		CompletedInstallments: plan.CompletedInstallments,
		StartDate:             plan.StartDate.Format("2006-01-02"),
		Active:                plan.Active,
		CreatedAt:             plan.CreatedAt,
		UpdatedAt:             plan.UpdatedAt,
	}
	if plan.CategoryID != nil {
		id := plan.CategoryID.String()
		response.CategoryID = &id
	}
	return response
}

// ToRecurringScheduleListResponse converts schedules to a list response.
func ToRecurringScheduleListResponse(schedules []*entity.RecurringSchedule) RecurringScheduleListResponse {
	out := make([]RecurringScheduleResponse, len(schedules))
	for i, s := range schedules {
		out[i] = ToRecurringScheduleResponse(s)
	}
	return RecurringScheduleListResponse{Schedules: out}
}

// ToInstallmentPlanListResponse converts plans to a list response.
func ToInstallmentPlanListResponse(plans []*entity.InstallmentPlan) InstallmentPlanListResponse {
	out := make([]InstallmentPlanResponse, len(plans))
	for i, p := range plans {
		out[i] = ToInstallmentPlanResponse(p)
	}
	return InstallmentPlanListResponse{Plans: out}
}
