package controller

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/fintrack/backend/internal/application/usecase/dashboard"
	domainerror "github.com/fintrack/backend/internal/domain/error"
	"github.com/fintrack/backend/internal/integration/entrypoint/dto"
	"github.com/fintrack/backend/internal/integration/entrypoint/middleware"
)

// DashboardController handles aggregate reporting endpoints.
type DashboardController struct {
	getSummaryUseCase *dashboard.GetSummaryUseCase
}

// NewDashboardController creates a new dashboard controller instance.
func NewDashboardController(getSummaryUseCase *dashboard.GetSummaryUseCase) *DashboardController {
	return &DashboardController{getSummaryUseCase: getSummaryUseCase}
}

// GetSummary handles GET /dashboard/summary requests. The period defaults to
// the current calendar month in UTC when start_date and end_date are absent.
func (c *DashboardController) GetSummary(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	now := time.Now().UTC()
	startDate := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	endDate := startDate.AddDate(0, 1, -1)

	if raw := ctx.Query("start_date"); raw != "" {
		parsed, err := time.Parse(dateLayout, raw)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid start_date format, expected YYYY-MM-DD",
			})
			return
		}
		startDate = parsed
	}
	if raw := ctx.Query("end_date"); raw != "" {
		parsed, err := time.Parse(dateLayout, raw)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid end_date format, expected YYYY-MM-DD",
			})
			return
		}
		endDate = parsed
	}

	output, err := c.getSummaryUseCase.Execute(ctx.Request.Context(), dashboard.GetSummaryInput{
		UserID:    userID,
		StartDate: startDate,
		EndDate:   endDate,
	})
	if err != nil {
		if errors.Is(err, domainerror.ErrInvalidDateRange) {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "end_date must not be before start_date",
			})
			return
		}
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error: "Failed to compute summary",
		})
		return
	}

	ctx.JSON(http.StatusOK, dto.ToSummaryResponse(output))
}
