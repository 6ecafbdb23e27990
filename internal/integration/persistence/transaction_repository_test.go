package persistence

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/fintrack/backend/internal/application/adapter"
	"github.com/fintrack/backend/internal/domain/entity"
	domainerror "github.com/fintrack/backend/internal/domain/error"
	"github.com/fintrack/backend/internal/integration/persistence/model"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	err = db.AutoMigrate(
		&model.UserModel{},
		&model.RefreshTokenModel{},
		&model.CategoryModel{},
		&model.TransactionModel{},
		&model.RecurringScheduleModel{},
		&model.InstallmentPlanModel{},
		&model.GoalModel{},
		&model.GoalContributionModel{},
	)
	if err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return db
}

func generatedTransaction(userID, parentID uuid.UUID, date time.Time) *entity.Transaction {
	txn := entity.NewTransaction(
		userID,
		date,
		"Gym membership (recurring)",
		decimal.RequireFromString("50.00"),
		entity.TransactionTypeExpense,
		nil,
		entity.PaymentMethodCard,
		"",
	)
	txn.IsRecurring = true
	txn.ParentTransactionID = &parentID
	return txn
}

func TestTransactionRepositoryInsert(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	parentID := uuid.New()
	due := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	t.Run("rejects a second generated entry for the same schedule and date", func(t *testing.T) {
		repo := NewTransactionRepository(newTestDB(t))

		if err := repo.Insert(ctx, generatedTransaction(userID, parentID, due)); err != nil {
			t.Fatalf("first Insert() error = %v", err)
		}
		err := repo.Insert(ctx, generatedTransaction(userID, parentID, due))
		if !errors.Is(err, domainerror.ErrAlreadyMaterialized) {
			t.Errorf("second Insert() error = %v, want ErrAlreadyMaterialized", err)
		}
	})

	t.Run("allows the same schedule on different dates", func(t *testing.T) {
		repo := NewTransactionRepository(newTestDB(t))

		if err := repo.Insert(ctx, generatedTransaction(userID, parentID, due)); err != nil {
			t.Fatalf("Insert() error = %v", err)
		}
		if err := repo.Insert(ctx, generatedTransaction(userID, parentID, due.AddDate(0, 1, 0))); err != nil {
			t.Errorf("Insert() on later date error = %v", err)
		}
	})

	t.Run("rejects a second entry for the same installment number", func(t *testing.T) {
		repo := NewTransactionRepository(newTestDB(t))

		build := func(date time.Time) *entity.Transaction {
			txn := entity.NewTransaction(
				userID,
				date,
				"New laptop (1/3)",
				decimal.RequireFromString("100.00"),
				entity.TransactionTypeExpense,
				nil,
				entity.PaymentMethodPix,
				"",
			)
			n, count := 1, 3
			txn.IsInstallment = true
			txn.InstallmentNumber = &n
			txn.InstallmentCount = &count
			txn.ParentTransactionID = &parentID
			return txn
		}

		if err := repo.Insert(ctx, build(due)); err != nil {
			t.Fatalf("first Insert() error = %v", err)
		}
		err := repo.Insert(ctx, build(due.AddDate(0, 0, 1)))
		if !errors.Is(err, domainerror.ErrAlreadyMaterialized) {
			t.Errorf("duplicate installment Insert() error = %v, want ErrAlreadyMaterialized", err)
		}
	})

	t.Run("does not constrain manual entries", func(t *testing.T) {
		repo := NewTransactionRepository(newTestDB(t))

		manual := func() *entity.Transaction {
			return entity.NewTransaction(
				userID,
				due,
				"Coffee",
				decimal.RequireFromString("4.50"),
				entity.TransactionTypeExpense,
				nil,
				entity.PaymentMethodCash,
				"",
			)
		}
		if err := repo.Create(ctx, manual()); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
		if err := repo.Create(ctx, manual()); err != nil {
			t.Errorf("second manual Create() on same date error = %v", err)
		}
	})
}

func TestTransactionRepositoryFindGenerated(t *testing.T) {
	ctx := context.Background()
	repo := NewTransactionRepository(newTestDB(t))
	userID := uuid.New()
	parentID := uuid.New()
	due := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	if err := repo.Insert(ctx, generatedTransaction(userID, parentID, due)); err != nil {
		t.Fatalf("Insert() error = %v", err)
	}

	t.Run("finds the entry for its schedule and date", func(t *testing.T) {
		found, err := repo.FindGeneratedByParentAndDate(ctx, parentID, due)
		if err != nil {
			t.Fatalf("FindGeneratedByParentAndDate() error = %v", err)
		}
		if found == nil {
			t.Fatal("FindGeneratedByParentAndDate() = nil, want transaction")
		}
		if found.ParentTransactionID == nil || *found.ParentTransactionID != parentID {
			t.Errorf("ParentTransactionID = %v, want %s", found.ParentTransactionID, parentID)
		}
	})

	t.Run("returns nil for a date with no entry", func(t *testing.T) {
		found, err := repo.FindGeneratedByParentAndDate(ctx, parentID, due.AddDate(0, 0, 7))
		if err != nil {
			t.Fatalf("FindGeneratedByParentAndDate() error = %v", err)
		}
		if found != nil {
			t.Errorf("FindGeneratedByParentAndDate() = %v, want nil", found)
		}
	})
}

func TestRecurringScheduleRepositoryApplyAdvance(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := NewRecurringScheduleRepository(db)
	userID := uuid.New()
	start := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	schedule := entity.NewRecurringSchedule(
		userID,
		entity.TransactionTypeExpense,
		decimal.RequireFromString("50.00"),
		"Gym membership",
		nil,
		entity.PaymentMethodCard,
		"",
		entity.CadenceWeekly,
		start,
		nil,
	)
	if err := repo.Create(ctx, schedule); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	next := start.AddDate(0, 0, 7)
	err := repo.ApplyAdvance(ctx, schedule.ID, adapter.RecurringSchedulePatch{NextDueDate: next, Active: true})
	if err != nil {
		t.Fatalf("ApplyAdvance() error = %v", err)
	}

	stored, err := repo.FindByID(ctx, schedule.ID)
	if err != nil {
		t.Fatalf("FindByID() error = %v", err)
	}
	if !stored.NextDueDate.Equal(next) {
		t.Errorf("NextDueDate = %v, want %v", stored.NextDueDate, next)
	}
	if !stored.Active {
		t.Error("schedule deactivated by advance, want active")
	}

	t.Run("users with active schedules are listed once", func(t *testing.T) {
		ids, err := repo.ListUserIDsWithActive(ctx)
		if err != nil {
			t.Fatalf("ListUserIDsWithActive() error = %v", err)
		}
		if len(ids) != 1 || ids[0] != userID {
			t.Errorf("ListUserIDsWithActive() = %v, want [%s]", ids, userID)
		}
	})
}
