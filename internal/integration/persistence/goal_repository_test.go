package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fintrack/backend/internal/application/adapter"
	"github.com/fintrack/backend/internal/domain/entity"
)

func newStoredGoal(t *testing.T, repo *goalTestHarness, target string) *entity.Goal {
	t.Helper()

	goal := entity.NewGoal(
		repo.userID,
		"Emergency fund",
		"",
		decimal.RequireFromString(target),
		time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		entity.GoalCategoryEmergency,
		entity.GoalPriorityHigh,
	)
	if err := repo.goals.Create(context.Background(), goal); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	return goal
}

type goalTestHarness struct {
	goals  adapter.GoalRepository
	userID uuid.UUID
}

func newGoalTestHarness(t *testing.T) *goalTestHarness {
	t.Helper()
	return &goalTestHarness{
		goals:  NewGoalRepository(newTestDB(t)),
		userID: uuid.New(),
	}
}

func TestGoalRepositoryAddContribution(t *testing.T) {
	ctx := context.Background()
	date := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	t.Run("rolls the amount up and returns the stored total", func(t *testing.T) {
		h := newGoalTestHarness(t)
		goal := newStoredGoal(t, h, "1000.00")

		first := entity.NewGoalContribution(h.userID, goal.ID, decimal.RequireFromString("250.00"), "", date)
		got, err := h.goals.AddContribution(ctx, first)
		if err != nil {
			t.Fatalf("AddContribution() error = %v", err)
		}
		if !got.Equal(decimal.RequireFromString("250.00")) {
			t.Errorf("AddContribution() = %s, want 250.00", got)
		}

		second := entity.NewGoalContribution(h.userID, goal.ID, decimal.RequireFromString("100.00"), "", date)
		got, err = h.goals.AddContribution(ctx, second)
		if err != nil {
			t.Fatalf("AddContribution() error = %v", err)
		}
		if !got.Equal(decimal.RequireFromString("350.00")) {
			t.Errorf("AddContribution() after second contribution = %s, want 350.00", got)
		}

		stored, err := h.goals.FindByID(ctx, goal.ID)
		if err != nil {
			t.Fatalf("FindByID() error = %v", err)
		}
		if !stored.CurrentAmount.Equal(got) {
			t.Errorf("stored CurrentAmount = %s, want %s", stored.CurrentAmount, got)
		}
	})

	t.Run("reports a missing goal without recording the contribution", func(t *testing.T) {
		h := newGoalTestHarness(t)

		contribution := entity.NewGoalContribution(h.userID, uuid.New(), decimal.RequireFromString("10.00"), "", date)
		if _, err := h.goals.AddContribution(ctx, contribution); err == nil {
			t.Fatal("AddContribution() for unknown goal succeeded, want error")
		}

		listed, err := h.goals.ListContributions(ctx, contribution.GoalID)
		if err != nil {
			t.Fatalf("ListContributions() error = %v", err)
		}
		if len(listed) != 0 {
			t.Errorf("contribution persisted despite rollback, got %d rows", len(listed))
		}
	})
}

func TestGoalRepositoryComplete(t *testing.T) {
	ctx := context.Background()
	date := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	h := newGoalTestHarness(t)
	goal := newStoredGoal(t, h, "500.00")

	contribution := entity.NewGoalContribution(h.userID, goal.ID, decimal.RequireFromString("500.00"), "", date)
	if _, err := h.goals.AddContribution(ctx, contribution); err != nil {
		t.Fatalf("AddContribution() error = %v", err)
	}

	completedAt := time.Date(2024, 6, 2, 12, 0, 0, 0, time.UTC)
	if err := h.goals.Complete(ctx, goal.ID, completedAt); err != nil {
		t.Fatalf("Complete() error = %v", err)
	}

	stored, err := h.goals.FindByID(ctx, goal.ID)
	if err != nil {
		t.Fatalf("FindByID() error = %v", err)
	}
	if stored.Status != entity.GoalStatusCompleted {
		t.Errorf("Status = %s, want completed", stored.Status)
	}
	if stored.CompletedAt == nil {
		t.Error("CompletedAt not persisted")
	}
	// The status patch must leave the rollup untouched.
	if !stored.CurrentAmount.Equal(decimal.RequireFromString("500.00")) {
		t.Errorf("CurrentAmount = %s, want 500.00", stored.CurrentAmount)
	}
}
