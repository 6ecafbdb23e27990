package controller

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/fintrack/backend/internal/application/usecase/automation"
	domainerror "github.com/fintrack/backend/internal/domain/error"
	"github.com/fintrack/backend/internal/integration/entrypoint/dto"
	"github.com/fintrack/backend/internal/integration/entrypoint/middleware"
)

// AutomationController exposes on-demand automatic transaction generation.
// The background worker calls the same use case on its own schedule; this
// endpoint exists so a client can force a run, typically right after login.
type AutomationController struct {
	processUseCase *automation.ProcessAutomaticTransactionsUseCase
}

// NewAutomationController creates a new automation controller instance.
func NewAutomationController(processUseCase *automation.ProcessAutomaticTransactionsUseCase) *AutomationController {
	return &AutomationController{processUseCase: processUseCase}
}

// Process handles POST /automation/process requests. An optional "date" query
// parameter overrides the reference date, which defaults to today in UTC.
func (c *AutomationController) Process(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	today := time.Now().UTC()
	if raw := ctx.Query("date"); raw != "" {
		parsed, err := time.Parse(dateLayout, raw)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid date format, expected YYYY-MM-DD",
			})
			return
		}
		today = parsed
	}

	output, err := c.processUseCase.Execute(ctx.Request.Context(), automation.ProcessAutomaticTransactionsInput{
		UserID: userID,
		Today:  today,
	})
	if err != nil {
		c.handleAutomationError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToProcessResponse(output))
}

// handleAutomationError maps automation errors to HTTP responses. Per-item
// failures are reported in the response body, not here; this path is for
// failures that aborted the run before any item was attempted.
func (c *AutomationController) handleAutomationError(ctx *gin.Context, err error) {
	var automationErr *domainerror.AutomationError
	if errors.As(err, &automationErr) {
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error: automationErr.Message,
			Code:  string(automationErr.Code),
		})
		return
	}
	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
	})
}
