package controller

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fintrack/backend/internal/application/usecase/schedule"
	"github.com/fintrack/backend/internal/domain/entity"
	domainerror "github.com/fintrack/backend/internal/domain/error"
	"github.com/fintrack/backend/internal/integration/entrypoint/dto"
	"github.com/fintrack/backend/internal/integration/entrypoint/middleware"
)

// ScheduleController handles recurring schedule and installment plan endpoints.
type ScheduleController struct {
	createScheduleUseCase     *schedule.CreateRecurringScheduleUseCase
	listSchedulesUseCase      *schedule.ListRecurringSchedulesUseCase
	updateScheduleUseCase     *schedule.UpdateRecurringScheduleUseCase
	deactivateScheduleUseCase *schedule.DeactivateRecurringScheduleUseCase
	createPlanUseCase         *schedule.CreateInstallmentPlanUseCase
	listPlansUseCase          *schedule.ListInstallmentPlansUseCase
	deactivatePlanUseCase     *schedule.DeactivateInstallmentPlanUseCase
}

// NewScheduleController creates a new schedule controller instance.
func NewScheduleController(
	createScheduleUseCase *schedule.CreateRecurringScheduleUseCase,
	listSchedulesUseCase *schedule.ListRecurringSchedulesUseCase,
	updateScheduleUseCase *schedule.UpdateRecurringScheduleUseCase,
	deactivateScheduleUseCase *schedule.DeactivateRecurringScheduleUseCase,
	createPlanUseCase *schedule.CreateInstallmentPlanUseCase,
	listPlansUseCase *schedule.ListInstallmentPlansUseCase,
	deactivatePlanUseCase *schedule.DeactivateInstallmentPlanUseCase,
) *ScheduleController {
	return &ScheduleController{
		createScheduleUseCase:     createScheduleUseCase,
		listSchedulesUseCase:      listSchedulesUseCase,
		updateScheduleUseCase:     updateScheduleUseCase,
		deactivateScheduleUseCase: deactivateScheduleUseCase,
		createPlanUseCase:         createPlanUseCase,
		listPlansUseCase:          listPlansUseCase,
		deactivatePlanUseCase:     deactivatePlanUseCase,
	}
}

// CreateSchedule handles POST /recurring-schedules requests.
func (c *ScheduleController) CreateSchedule(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	var req dto.CreateRecurringScheduleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
		})
		return
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid amount format",
		})
		return
	}

	startDate, err := time.Parse(dateLayout, req.StartDate)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid start_date format, expected YYYY-MM-DD",
		})
		return
	}

	var endDate *time.Time
	if req.EndDate != nil {
		end, err := time.Parse(dateLayout, *req.EndDate)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid end_date format, expected YYYY-MM-DD",
			})
			return
		}
		endDate = &end
	}

	categoryID, err := parseOptionalUUID(req.CategoryID)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid category ID format",
		})
		return
	}

	output, err := c.createScheduleUseCase.Execute(ctx.Request.Context(), schedule.CreateRecurringScheduleInput{
		UserID:        userID,
		Type:          entity.TransactionType(req.Type),
		Amount:        amount,
		Description:   req.Description,
		CategoryID:    categoryID,
		PaymentMethod: entity.PaymentMethod(req.PaymentMethod),
		Notes:         req.Notes,
		Cadence:       entity.Cadence(req.Cadence),
		StartDate:     startDate,
		EndDate:       endDate,
	})
	if err != nil {
		c.handleScheduleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToRecurringScheduleResponse(output.Schedule))
}

// ListSchedules handles GET /recurring-schedules requests.
func (c *ScheduleController) ListSchedules(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	schedules, err := c.listSchedulesUseCase.Execute(ctx.Request.Context(), userID)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error: "Failed to retrieve recurring schedules",
		})
		return
	}

	ctx.JSON(http.StatusOK, dto.ToRecurringScheduleListResponse(schedules))
}

// UpdateSchedule handles PATCH /recurring-schedules/:id requests.
func (c *ScheduleController) UpdateSchedule(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	scheduleID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid schedule ID format",
		})
		return
	}

	var req dto.UpdateRecurringScheduleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
		})
		return
	}

	input := schedule.UpdateRecurringScheduleInput{
		UserID:       userID,
		ScheduleID:   scheduleID,
		Description:  req.Description,
		Notes:        req.Notes,
		ClearEndDate: req.ClearEndDate,
		Reactivate:   req.Reactivate,
	}
	if req.Amount != nil {
		amount, err := decimal.NewFromString(*req.Amount)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid amount format",
			})
			return
		}
		input.Amount = &amount
	}
	if req.PaymentMethod != nil {
		method := entity.PaymentMethod(*req.PaymentMethod)
		input.PaymentMethod = &method
	}
	if req.EndDate != nil {
		end, err := time.Parse(dateLayout, *req.EndDate)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid end_date format, expected YYYY-MM-DD",
			})
			return
		}
		input.EndDate = &end
	}
	input.CategoryID, err = parseOptionalUUID(req.CategoryID)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid category ID format",
		})
		return
	}

	output, err := c.updateScheduleUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleScheduleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToRecurringScheduleResponse(output.Schedule))
}

// DeactivateSchedule handles DELETE /recurring-schedules/:id requests.
// Deactivation stops future generation; already generated entries stay.
func (c *ScheduleController) DeactivateSchedule(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	scheduleID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid schedule ID format",
		})
		return
	}

	if err := c.deactivateScheduleUseCase.Execute(ctx.Request.Context(), userID, scheduleID); err != nil {
		c.handleScheduleError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// CreatePlan handles POST /installment-plans requests.
func (c *ScheduleController) CreatePlan(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	var req dto.CreateInstallmentPlanRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
		})
		return
	}

	totalAmount, err := decimal.NewFromString(req.TotalAmount)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid total_amount format",
		})
		return
	}

	startDate, err := time.Parse(dateLayout, req.StartDate)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid start_date format, expected YYYY-MM-DD",
		})
		return
	}

	categoryID, err := parseOptionalUUID(req.CategoryID)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid category ID format",
		})
		return
	}

	output, err := c.createPlanUseCase.Execute(ctx.Request.Context(), schedule.CreateInstallmentPlanInput{
		UserID:           userID,
		Type:             entity.TransactionType(req.Type),
		TotalAmount:      totalAmount,
		Description:      req.Description,
		CategoryID:       categoryID,
		PaymentMethod:    entity.PaymentMethod(req.PaymentMethod),
		Notes:            req.Notes,
		InstallmentCount: req.InstallmentCount,
		StartDate:        startDate,
	})
	if err != nil {
		c.handleScheduleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToInstallmentPlanResponse(output.Plan))
}

// ListPlans handles GET /installment-plans requests.
func (c *ScheduleController) ListPlans(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	plans, err := c.listPlansUseCase.Execute(ctx.Request.Context(), userID)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error: "Failed to retrieve installment plans",
		})
		return
	}

	ctx.JSON(http.StatusOK, dto.ToInstallmentPlanListResponse(plans))
}

// DeactivatePlan handles DELETE /installment-plans/:id requests.
func (c *ScheduleController) DeactivatePlan(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	planID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid plan ID format",
		})
		return
	}

	if err := c.deactivatePlanUseCase.Execute(ctx.Request.Context(), userID, planID); err != nil {
		c.handleScheduleError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// handleScheduleError maps schedule and plan errors to HTTP responses.
func (c *ScheduleController) handleScheduleError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, domainerror.ErrScheduleNotFound),
		errors.Is(err, domainerror.ErrInstallmentPlanNotFound):
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Error: err.Error()})
	case errors.Is(err, domainerror.ErrScheduleNotOwnedByUser),
		errors.Is(err, domainerror.ErrCategoryNotOwnedByUser):
		ctx.JSON(http.StatusForbidden, dto.ErrorResponse{Error: err.Error()})
	case errors.Is(err, domainerror.ErrInvalidTransactionType),
		errors.Is(err, domainerror.ErrInvalidPaymentMethod),
		errors.Is(err, domainerror.ErrInvalidCadence),
		errors.Is(err, domainerror.ErrInvalidScheduleAmount),
		errors.Is(err, domainerror.ErrInvalidInstallmentCount),
		errors.Is(err, domainerror.ErrEndDateBeforeStartDate),
		errors.Is(err, domainerror.ErrCategoryNotFoundForTransaction):
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
	default:
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error: "An internal error occurred",
		})
	}
}
