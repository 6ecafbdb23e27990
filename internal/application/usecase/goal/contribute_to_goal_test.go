package goal

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fintrack/backend/internal/domain/entity"
	domainerror "github.com/fintrack/backend/internal/domain/error"
)

type stubGoalRepo struct {
	goals         map[uuid.UUID]*entity.Goal
	contributions []*entity.GoalContribution
	updateCalls   int
}

func newStubGoalRepo() *stubGoalRepo {
	return &stubGoalRepo{goals: make(map[uuid.UUID]*entity.Goal)}
}

func (r *stubGoalRepo) Create(_ context.Context, g *entity.Goal) error {
	r.goals[g.ID] = g
	return nil
}

func (r *stubGoalRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Goal, error) {
	g, ok := r.goals[id]
	if !ok {
		return nil, errors.New("record not found")
	}
	return g, nil
}

func (r *stubGoalRepo) FindByUser(_ context.Context, userID uuid.UUID) ([]*entity.Goal, error) {
	var out []*entity.Goal
	for _, g := range r.goals {
		if g.UserID == userID {
			out = append(out, g)
		}
	}
	return out, nil
}

func (r *stubGoalRepo) Update(_ context.Context, g *entity.Goal) error {
	r.updateCalls++
	r.goals[g.ID] = g
	return nil
}

func (r *stubGoalRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.goals, id)
	return nil
}

// AddContribution mirrors the store contract: it applies the rollup to the
// shared goal state and returns the resulting amount. FindByID hands out the
// same pointer, so any caller that also adds on top of it would double count.
func (r *stubGoalRepo) AddContribution(_ context.Context, c *entity.GoalContribution) (decimal.Decimal, error) {
	g, ok := r.goals[c.GoalID]
	if !ok {
		return decimal.Zero, errors.New("record not found")
	}
	r.contributions = append(r.contributions, c)
	g.CurrentAmount = g.CurrentAmount.Add(c.Amount)
	return g.CurrentAmount, nil
}

func (r *stubGoalRepo) Complete(_ context.Context, id uuid.UUID, completedAt time.Time) error {
	g, ok := r.goals[id]
	if !ok {
		return errors.New("record not found")
	}
	g.Status = entity.GoalStatusCompleted
	g.CompletedAt = &completedAt
	g.UpdatedAt = completedAt
	return nil
}

func (r *stubGoalRepo) ListContributions(_ context.Context, goalID uuid.UUID) ([]*entity.GoalContribution, error) {
	var out []*entity.GoalContribution
	for _, c := range r.contributions {
		if c.GoalID == goalID {
			out = append(out, c)
		}
	}
	return out, nil
}

func TestContributeToGoal(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	today := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	newGoal := func(target string) *entity.Goal {
		return entity.NewGoal(
			userID,
			"Emergency fund",
			"",
			decimal.RequireFromString(target),
			today.AddDate(1, 0, 0),
			entity.GoalCategoryEmergency,
			entity.GoalPriorityHigh,
		)
	}

	t.Run("rolls contribution up into current amount", func(t *testing.T) {
		repo := newStubGoalRepo()
		g := newGoal("1000.00")
		repo.goals[g.ID] = g

		uc := NewContributeToGoalUseCase(repo)
		out, err := uc.Execute(ctx, ContributeToGoalInput{
			UserID: userID,
			GoalID: g.ID,
			Amount: decimal.RequireFromString("250.00"),
			Date:   today,
		})
		if err != nil {
			t.Fatalf("Execute() error = %v", err)
		}
		if !out.Goal.CurrentAmount.Equal(decimal.RequireFromString("250.00")) {
			t.Errorf("CurrentAmount = %s, want 250.00", out.Goal.CurrentAmount)
		}
		if !g.CurrentAmount.Equal(out.Goal.CurrentAmount) {
			t.Errorf("stored amount %s diverges from returned amount %s", g.CurrentAmount, out.Goal.CurrentAmount)
		}
		if out.Goal.Status != entity.GoalStatusActive {
			t.Errorf("Status = %s, want active", out.Goal.Status)
		}
		if len(repo.contributions) != 1 {
			t.Fatalf("contributions = %d, want 1", len(repo.contributions))
		}
	})

	t.Run("completes goal when target is reached", func(t *testing.T) {
		repo := newStubGoalRepo()
		g := newGoal("500.00")
		g.CurrentAmount = decimal.RequireFromString("400.00")
		repo.goals[g.ID] = g

		uc := NewContributeToGoalUseCase(repo)
		out, err := uc.Execute(ctx, ContributeToGoalInput{
			UserID: userID,
			GoalID: g.ID,
			Amount: decimal.RequireFromString("100.00"),
			Date:   today,
		})
		if err != nil {
			t.Fatalf("Execute() error = %v", err)
		}
		if out.Goal.Status != entity.GoalStatusCompleted {
			t.Errorf("Status = %s, want completed", out.Goal.Status)
		}
		if out.Goal.CompletedAt == nil {
			t.Error("CompletedAt not set on completion")
		}
		if !out.Goal.CurrentAmount.Equal(decimal.RequireFromString("500.00")) {
			t.Errorf("CurrentAmount = %s, want 500.00", out.Goal.CurrentAmount)
		}
		// Completion must go through the status patch, not a full save that
		// would rewrite current_amount.
		if repo.updateCalls != 0 {
			t.Errorf("Update called %d times, want 0", repo.updateCalls)
		}
	})

	t.Run("rejects non-positive amounts", func(t *testing.T) {
		repo := newStubGoalRepo()
		g := newGoal("500.00")
		repo.goals[g.ID] = g

		uc := NewContributeToGoalUseCase(repo)
		_, err := uc.Execute(ctx, ContributeToGoalInput{
			UserID: userID,
			GoalID: g.ID,
			Amount: decimal.Zero,
			Date:   today,
		})
		if !errors.Is(err, domainerror.ErrInvalidContribution) {
			t.Errorf("Execute() error = %v, want ErrInvalidContribution", err)
		}
	})

	t.Run("rejects contributions to another user's goal", func(t *testing.T) {
		repo := newStubGoalRepo()
		g := newGoal("500.00")
		repo.goals[g.ID] = g

		uc := NewContributeToGoalUseCase(repo)
		_, err := uc.Execute(ctx, ContributeToGoalInput{
			UserID: uuid.New(),
			GoalID: g.ID,
			Amount: decimal.RequireFromString("10.00"),
			Date:   today,
		})
		if !errors.Is(err, domainerror.ErrGoalNotOwnedByUser) {
			t.Errorf("Execute() error = %v, want ErrGoalNotOwnedByUser", err)
		}
	})

	t.Run("rejects contributions to paused goals", func(t *testing.T) {
		repo := newStubGoalRepo()
		g := newGoal("500.00")
		g.Status = entity.GoalStatusPaused
		repo.goals[g.ID] = g

		uc := NewContributeToGoalUseCase(repo)
		_, err := uc.Execute(ctx, ContributeToGoalInput{
			UserID: userID,
			GoalID: g.ID,
			Amount: decimal.RequireFromString("10.00"),
			Date:   today,
		})
		if !errors.Is(err, domainerror.ErrGoalNotActive) {
			t.Errorf("Execute() error = %v, want ErrGoalNotActive", err)
		}
	})
}
