package controller

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fintrack/backend/internal/application/usecase/goal"
	"github.com/fintrack/backend/internal/domain/entity"
	domainerror "github.com/fintrack/backend/internal/domain/error"
	"github.com/fintrack/backend/internal/integration/entrypoint/dto"
	"github.com/fintrack/backend/internal/integration/entrypoint/middleware"
)

// GoalController handles savings goal endpoints.
type GoalController struct {
	createUseCase            *goal.CreateGoalUseCase
	listUseCase              *goal.ListGoalsUseCase
	updateUseCase            *goal.UpdateGoalUseCase
	deleteUseCase            *goal.DeleteGoalUseCase
	contributeUseCase        *goal.ContributeToGoalUseCase
	listContributionsUseCase *goal.ListContributionsUseCase
}

// NewGoalController creates a new goal controller instance.
func NewGoalController(
	createUseCase *goal.CreateGoalUseCase,
	listUseCase *goal.ListGoalsUseCase,
	updateUseCase *goal.UpdateGoalUseCase,
	deleteUseCase *goal.DeleteGoalUseCase,
	contributeUseCase *goal.ContributeToGoalUseCase,
	listContributionsUseCase *goal.ListContributionsUseCase,
) *GoalController {
	return &GoalController{
		createUseCase:            createUseCase,
		listUseCase:              listUseCase,
		updateUseCase:            updateUseCase,
		deleteUseCase:            deleteUseCase,
		contributeUseCase:        contributeUseCase,
		listContributionsUseCase: listContributionsUseCase,
	}
}

// Create handles POST /goals requests.
func (c *GoalController) Create(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	var req dto.CreateGoalRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
		})
		return
	}

	targetAmount, err := decimal.NewFromString(req.TargetAmount)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid target_amount format",
		})
		return
	}

	targetDate, err := time.Parse(dateLayout, req.TargetDate)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid target_date format, expected YYYY-MM-DD",
		})
		return
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), goal.CreateGoalInput{
		UserID:       userID,
		Title:        req.Title,
		Description:  req.Description,
		TargetAmount: targetAmount,
		TargetDate:   targetDate,
		Category:     entity.GoalCategory(req.Category),
		Priority:     entity.GoalPriority(req.Priority),
	})
	if err != nil {
		c.handleGoalError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToGoalResponse(output.Goal))
}

// List handles GET /goals requests.
func (c *GoalController) List(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), goal.ListGoalsInput{UserID: userID})
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error: "Failed to retrieve goals",
		})
		return
	}

	ctx.JSON(http.StatusOK, dto.ToGoalListResponse(output.Goals))
}

// Update handles PATCH /goals/:id requests.
func (c *GoalController) Update(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	goalID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid goal ID format",
		})
		return
	}

	var req dto.UpdateGoalRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
		})
		return
	}

	input := goal.UpdateGoalInput{
		UserID:      userID,
		GoalID:      goalID,
		Title:       req.Title,
		Description: req.Description,
	}
	if req.TargetAmount != nil {
		targetAmount, err := decimal.NewFromString(*req.TargetAmount)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid target_amount format",
			})
			return
		}
		input.TargetAmount = &targetAmount
	}
	if req.TargetDate != nil {
		targetDate, err := time.Parse(dateLayout, *req.TargetDate)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid target_date format, expected YYYY-MM-DD",
			})
			return
		}
		input.TargetDate = &targetDate
	}
	if req.Category != nil {
		category := entity.GoalCategory(*req.Category)
		input.Category = &category
	}
	if req.Priority != nil {
		priority := entity.GoalPriority(*req.Priority)
		input.Priority = &priority
	}
	if req.Status != nil {
		status := entity.GoalStatus(*req.Status)
		input.Status = &status
	}

	output, err := c.updateUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleGoalError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToGoalResponse(output.Goal))
}

// Delete handles DELETE /goals/:id requests.
func (c *GoalController) Delete(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	goalID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid goal ID format",
		})
		return
	}

	if err := c.deleteUseCase.Execute(ctx.Request.Context(), goal.DeleteGoalInput{
		UserID: userID,
		GoalID: goalID,
	}); err != nil {
		c.handleGoalError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// Contribute handles POST /goals/:id/contributions requests.
func (c *GoalController) Contribute(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	goalID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid goal ID format",
		})
		return
	}

	var req dto.ContributeRequest
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

	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid date format, expected YYYY-MM-DD",
		})
		return
	}

	output, err := c.contributeUseCase.Execute(ctx.Request.Context(), goal.ContributeToGoalInput{
		UserID:      userID,
		GoalID:      goalID,
		Amount:      amount,
		Description: req.Description,
		Date:        date,
	})
	if err != nil {
		c.handleGoalError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ContributeResponse{
		Contribution: dto.ToContributionResponse(output.Contribution),
		Goal:         dto.ToGoalResponse(output.Goal),
	})
}

// ListContributions handles GET /goals/:id/contributions requests.
func (c *GoalController) ListContributions(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	goalID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid goal ID format",
		})
		return
	}

	output, err := c.listContributionsUseCase.Execute(ctx.Request.Context(), goal.ListContributionsInput{
		UserID: userID,
		GoalID: goalID,
	})
	if err != nil {
		c.handleGoalError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToContributionListResponse(output.Contributions))
}

// handleGoalError maps goal errors to HTTP responses.
func (c *GoalController) handleGoalError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, domainerror.ErrGoalNotFound):
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Error: err.Error()})
	case errors.Is(err, domainerror.ErrGoalNotOwnedByUser):
		ctx.JSON(http.StatusForbidden, dto.ErrorResponse{Error: err.Error()})
	case errors.Is(err, domainerror.ErrGoalTitleRequired),
		errors.Is(err, domainerror.ErrInvalidGoalTargetAmount),
		errors.Is(err, domainerror.ErrInvalidContribution),
		errors.Is(err, domainerror.ErrGoalNotActive):
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
	default:
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error: "An internal error occurred",
		})
	}
}
