// Package router sets up the HTTP routing for the application.
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/fintrack/backend/internal/integration/entrypoint/controller"
	"github.com/fintrack/backend/internal/integration/entrypoint/middleware"
)

// Router holds the Gin engine and controller dependencies.
type Router struct {
	engine                *gin.Engine
	healthController      *controller.HealthController
	authController        *controller.AuthController
	categoryController    *controller.CategoryController
	transactionController *controller.TransactionController
	scheduleController    *controller.ScheduleController
	goalController        *controller.GoalController
	dashboardController   *controller.DashboardController
	automationController  *controller.AutomationController
	loginRateLimiter      *middleware.RateLimiter
	authMiddleware        *middleware.AuthMiddleware
}

// NewRouter creates a new router instance with all dependencies.
func NewRouter(
	healthController *controller.HealthController,
	authController *controller.AuthController,
	categoryController *controller.CategoryController,
	transactionController *controller.TransactionController,
	scheduleController *controller.ScheduleController,
	goalController *controller.GoalController,
	dashboardController *controller.DashboardController,
	automationController *controller.AutomationController,
	loginRateLimiter *middleware.RateLimiter,
	authMiddleware *middleware.AuthMiddleware,
) *Router {
	return &Router{
		healthController:      healthController,
		authController:        authController,
		categoryController:    categoryController,
		transactionController: transactionController,
		scheduleController:    scheduleController,
		goalController:        goalController,
		dashboardController:   dashboardController,
		automationController:  automationController,
		loginRateLimiter:      loginRateLimiter,
		authMiddleware:        authMiddleware,
	}
}

// Setup configures and returns the Gin engine with all routes.
func (r *Router) Setup(environment string) *gin.Engine {
	if environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else if environment == "test" {
		gin.SetMode(gin.TestMode)
	}

	// Default engine carries the logger and recovery middleware
	r.engine = gin.Default()

	r.setupHealthRoutes()
	r.setupAPIRoutes()

	return r.engine
}

// setupHealthRoutes configures health check endpoints.
func (r *Router) setupHealthRoutes() {
	r.engine.GET("/health", r.healthController.Check)
}

// setupAPIRoutes configures the main API routes.
func (r *Router) setupAPIRoutes() {
	v1 := r.engine.Group("/api/v1")
	{
		if r.authController != nil && r.loginRateLimiter != nil {
			auth := v1.Group("/auth")
			{
				auth.POST("/register", r.authController.Register)
				auth.POST("/login", r.loginRateLimiter.Middleware(), r.authController.Login)
				auth.POST("/refresh", r.authController.Refresh)
				auth.POST("/logout", r.authController.Logout)
			}
		}

		if r.categoryController != nil && r.authMiddleware != nil {
			categories := v1.Group("/categories")
			categories.Use(r.authMiddleware.Authenticate())
			{
				categories.GET("", r.categoryController.List)
				categories.POST("", r.categoryController.Create)
				categories.PATCH("/:id", r.categoryController.Update)
				categories.DELETE("/:id", r.categoryController.Delete)
			}
		}

		if r.transactionController != nil && r.authMiddleware != nil {
			transactions := v1.Group("/transactions")
			transactions.Use(r.authMiddleware.Authenticate())
			{
				transactions.GET("", r.transactionController.List)
				transactions.POST("", r.transactionController.Create)
				transactions.PATCH("/:id", r.transactionController.Update)
				transactions.DELETE("/:id", r.transactionController.Delete)
			}
		}

		if r.scheduleController != nil && r.authMiddleware != nil {
			schedules := v1.Group("/recurring-schedules")
			schedules.Use(r.authMiddleware.Authenticate())
			{
				schedules.GET("", r.scheduleController.ListSchedules)
				schedules.POST("", r.scheduleController.CreateSchedule)
				schedules.PATCH("/:id", r.scheduleController.UpdateSchedule)
				schedules.DELETE("/:id", r.scheduleController.DeactivateSchedule)
			}

			plans := v1.Group("/installment-plans")
			plans.Use(r.authMiddleware.Authenticate())
			{
				plans.GET("", r.scheduleController.ListPlans)
				plans.POST("", r.scheduleController.CreatePlan)
				plans.DELETE("/:id", r.scheduleController.DeactivatePlan)
			}
		}

		if r.goalController != nil && r.authMiddleware != nil {
			goals := v1.Group("/goals")
			goals.Use(r.authMiddleware.Authenticate())
			{
				goals.GET("", r.goalController.List)
				goals.POST("", r.goalController.Create)
				goals.PATCH("/:id", r.goalController.Update)
				goals.DELETE("/:id", r.goalController.Delete)
				goals.POST("/:id/contributions", r.goalController.Contribute)
				goals.GET("/:id/contributions", r.goalController.ListContributions)
			}
		}

		if r.dashboardController != nil && r.authMiddleware != nil {
			dashboard := v1.Group("/dashboard")
			dashboard.Use(r.authMiddleware.Authenticate())
			{
				dashboard.GET("/summary", r.dashboardController.GetSummary)
			}
		}

		if r.automationController != nil && r.authMiddleware != nil {
			automation := v1.Group("/automation")
			automation.Use(r.authMiddleware.Authenticate())
			{
				automation.POST("/process", r.automationController.Process)
			}
		}
	}
}

// Engine returns the underlying Gin engine.
func (r *Router) Engine() *gin.Engine {
	return r.engine
}
