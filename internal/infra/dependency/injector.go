// Package dependency provides dependency injection for the application.
package dependency

import (
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/fintrack/backend/config"
	"github.com/fintrack/backend/internal/application/adapter"
	usecaseautomation "github.com/fintrack/backend/internal/application/usecase/automation"
	"github.com/fintrack/backend/internal/application/usecase/auth"
	"github.com/fintrack/backend/internal/application/usecase/category"
	"github.com/fintrack/backend/internal/application/usecase/dashboard"
	"github.com/fintrack/backend/internal/application/usecase/goal"
	"github.com/fintrack/backend/internal/application/usecase/schedule"
	"github.com/fintrack/backend/internal/application/usecase/transaction"
	"github.com/fintrack/backend/internal/infra/server/router"
	"github.com/fintrack/backend/internal/integration/adapters"
	"github.com/fintrack/backend/internal/integration/automation"
	"github.com/fintrack/backend/internal/integration/entrypoint/controller"
	"github.com/fintrack/backend/internal/integration/entrypoint/middleware"
	"github.com/fintrack/backend/internal/integration/persistence"
)

// Injector holds all application dependencies.
type Injector struct {
	Config *config.Config
	DB     *gorm.DB
	Router *router.Router
	Worker *automation.Worker
}

// NewInjector creates a new dependency injector with all dependencies wired.
// redisClient may be nil, in which case the generation worker is not built
// and on-demand processing runs without the advisory lock.
func NewInjector(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) *Injector {
	// Repositories
	userRepo := persistence.NewUserRepository(db)
	tokenRepo := persistence.NewTokenRepository(db)
	categoryRepo := persistence.NewCategoryRepository(db)
	transactionRepo := persistence.NewTransactionRepository(db)
	scheduleRepo := persistence.NewRecurringScheduleRepository(db)
	planRepo := persistence.NewInstallmentPlanRepository(db)
	goalRepo := persistence.NewGoalRepository(db)
	dashboardRepo := persistence.NewDashboardRepository(db)

	// Adapters
	passwordService := adapters.NewPasswordService()
	tokenService := adapters.NewTokenService(cfg.JWT.Secret, userRepo, tokenRepo)

	var notifier adapter.ScheduleNotifier
	if cfg.Email.ResendAPIKey != "" {
		notifier = automation.NewEmailNotifier(cfg.Email.ResendAPIKey, cfg.Email.FromName, cfg.Email.FromEmail)
	}

	// Auth use cases
	registerUseCase := auth.NewRegisterUserUseCase(userRepo, passwordService, tokenService)
	loginUseCase := auth.NewLoginUserUseCase(userRepo, passwordService, tokenService)
	refreshTokenUseCase := auth.NewRefreshTokenUseCase(tokenService)
	logoutUseCase := auth.NewLogoutUserUseCase(tokenService)

	// Category use cases
	listCategoriesUseCase := category.NewListCategoriesUseCase(categoryRepo)
	createCategoryUseCase := category.NewCreateCategoryUseCase(categoryRepo)
	updateCategoryUseCase := category.NewUpdateCategoryUseCase(categoryRepo)
	deleteCategoryUseCase := category.NewDeleteCategoryUseCase(categoryRepo)

	// Transaction use cases
	createTransactionUseCase := transaction.NewCreateTransactionUseCase(transactionRepo, categoryRepo)
	listTransactionsUseCase := transaction.NewListTransactionsUseCase(transactionRepo)
	updateTransactionUseCase := transaction.NewUpdateTransactionUseCase(transactionRepo, categoryRepo)
	deleteTransactionUseCase := transaction.NewDeleteTransactionUseCase(transactionRepo)

	// Schedule and installment plan use cases
	createScheduleUseCase := schedule.NewCreateRecurringScheduleUseCase(scheduleRepo, categoryRepo)
	listSchedulesUseCase := schedule.NewListRecurringSchedulesUseCase(scheduleRepo)
	updateScheduleUseCase := schedule.NewUpdateRecurringScheduleUseCase(scheduleRepo, categoryRepo)
	deactivateScheduleUseCase := schedule.NewDeactivateRecurringScheduleUseCase(scheduleRepo)
	createPlanUseCase := schedule.NewCreateInstallmentPlanUseCase(planRepo, categoryRepo)
	listPlansUseCase := schedule.NewListInstallmentPlansUseCase(planRepo)
	deactivatePlanUseCase := schedule.NewDeactivateInstallmentPlanUseCase(planRepo)

	// Goal use cases
	createGoalUseCase := goal.NewCreateGoalUseCase(goalRepo)
	listGoalsUseCase := goal.NewListGoalsUseCase(goalRepo)
	updateGoalUseCase := goal.NewUpdateGoalUseCase(goalRepo)
	deleteGoalUseCase := goal.NewDeleteGoalUseCase(goalRepo)
	contributeUseCase := goal.NewContributeToGoalUseCase(goalRepo)
	listContributionsUseCase := goal.NewListContributionsUseCase(goalRepo)

	// Dashboard use cases
	getSummaryUseCase := dashboard.NewGetSummaryUseCase(dashboardRepo)

	// Automation pipeline
	processUseCase := usecaseautomation.NewProcessAutomaticTransactionsUseCase(
		scheduleRepo,
		planRepo,
		userRepo,
		transactionRepo,
		notifier,
	)

	// Controllers
	healthController := controller.NewHealthController(func() bool {
		sqlDB, err := db.DB()
		if err != nil {
			return false
		}
		return sqlDB.Ping() == nil
	})

	authController := controller.NewAuthController(
		registerUseCase,
		loginUseCase,
		refreshTokenUseCase,
		logoutUseCase,
	)

	categoryController := controller.NewCategoryController(
		listCategoriesUseCase,
		createCategoryUseCase,
		updateCategoryUseCase,
		deleteCategoryUseCase,
	)

	transactionController := controller.NewTransactionController(
		createTransactionUseCase,
		listTransactionsUseCase,
		updateTransactionUseCase,
		deleteTransactionUseCase,
	)

	scheduleController := controller.NewScheduleController(
		createScheduleUseCase,
		listSchedulesUseCase,
		updateScheduleUseCase,
		deactivateScheduleUseCase,
		createPlanUseCase,
		listPlansUseCase,
		deactivatePlanUseCase,
	)

	goalController := controller.NewGoalController(
		createGoalUseCase,
		listGoalsUseCase,
		updateGoalUseCase,
		deleteGoalUseCase,
		contributeUseCase,
		listContributionsUseCase,
	)

	dashboardController := controller.NewDashboardController(getSummaryUseCase)

	automationController := controller.NewAutomationController(processUseCase)

	// Middleware
	// Use higher rate limits for E2E/test environments to prevent flaky tests
	var loginRateLimiter *middleware.RateLimiter
	if cfg.Server.Environment == "e2e" || cfg.Server.Environment == "test" {
		loginRateLimiter = middleware.NewRateLimiterWithConfig(1000, 1*time.Minute)
	} else {
		loginRateLimiter = middleware.NewRateLimiter()
	}
	authMiddleware := middleware.NewAuthMiddleware(tokenService)

	r := router.NewRouter(
		healthController,
		authController,
		categoryController,
		transactionController,
		scheduleController,
		goalController,
		dashboardController,
		automationController,
		loginRateLimiter,
		authMiddleware,
	)

	var worker *automation.Worker
	if redisClient != nil && cfg.Automation.WorkerEnabled {
		lock := automation.NewRedisProcessingLock(redisClient)
		worker = automation.NewWorker(processUseCase, scheduleRepo, planRepo, lock, automation.WorkerConfig{
			Interval:    cfg.Automation.Interval,
			Concurrency: cfg.Automation.Concurrency,
		})
	}

	return &Injector{
		Config: cfg,
		DB:     db,
		Router: r,
		Worker: worker,
	}
}
