// Package automation contains the automatic transaction generation engine.
package automation

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/fintrack/backend/internal/domain/entity"
)

func TestAdvancer_AdvanceRecurring(t *testing.T) {
	userID := uuid.New()

	t.Run("advances one period and stays active without end date", func(t *testing.T) {
		d := date(2024, time.March, 1)
		schedule := buildSchedule(userID, entity.CadenceMonthly, d, d, nil)
		repo := newFakeScheduleRepo(schedule)
		advancer := NewAdvancer(repo, newFakePlanRepo())

		deactivated, err := advancer.AdvanceRecurring(context.Background(), schedule, d)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if deactivated {
			t.Error("schedule should stay active")
		}
		if !schedule.NextDueDate.Equal(date(2024, time.April, 1)) {
			t.Errorf("next due = %s, want 2024-04-01", schedule.NextDueDate.Format("2006-01-02"))
		}
	})

	t.Run("deactivates when the advanced date passes the end date", func(t *testing.T) {
		d := date(2024, time.March, 1)
		end := date(2024, time.March, 15)
		schedule := buildSchedule(userID, entity.CadenceMonthly, d, d, &end)
		repo := newFakeScheduleRepo(schedule)
		advancer := NewAdvancer(repo, newFakePlanRepo())

		deactivated, err := advancer.AdvanceRecurring(context.Background(), schedule, d)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !deactivated {
			t.Error("schedule should be deactivated")
		}
		if schedule.Active {
			t.Error("in-memory schedule still active")
		}
	})

	t.Run("advanced date equal to end date stays active", func(t *testing.T) {
		d := date(2024, time.March, 1)
		end := date(2024, time.April, 1)
		schedule := buildSchedule(userID, entity.CadenceMonthly, d, d, &end)
		advancer := NewAdvancer(newFakeScheduleRepo(schedule), newFakePlanRepo())

		deactivated, err := advancer.AdvanceRecurring(context.Background(), schedule, d)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if deactivated {
			t.Error("next due equal to end date is still materializable")
		}
	})
}

func TestAdvancer_AdvanceInstallment(t *testing.T) {
	userID := uuid.New()

	t.Run("sets completed count to the installment number", func(t *testing.T) {
		plan := buildPlan(userID, 4, 1, date(2024, time.January, 1))
		advancer := NewAdvancer(newFakeScheduleRepo(), newFakePlanRepo(plan))

		deactivated, err := advancer.AdvanceInstallment(context.Background(), plan, 2)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if deactivated {
			t.Error("plan should stay active with installments remaining")
		}
		if plan.CompletedInstallments != 2 {
			t.Errorf("completed = %d, want 2", plan.CompletedInstallments)
		}
	})

	t.Run("final installment deactivates the plan", func(t *testing.T) {
		plan := buildPlan(userID, 2, 1, date(2024, time.January, 1))
		advancer := NewAdvancer(newFakeScheduleRepo(), newFakePlanRepo(plan))

		deactivated, err := advancer.AdvanceInstallment(context.Background(), plan, 2)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !deactivated {
			t.Error("plan should be deactivated")
		}
		if plan.Active {
			t.Error("in-memory plan still active")
		}
	})

	t.Run("replaying an already-counted installment writes nothing", func(t *testing.T) {
		plan := buildPlan(userID, 4, 3, date(2024, time.January, 1))
		repo := newFakePlanRepo(plan)
		advancer := NewAdvancer(newFakeScheduleRepo(), repo)

		if _, err := advancer.AdvanceInstallment(context.Background(), plan, 2); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if plan.CompletedInstallments != 3 {
			t.Errorf("completed = %d, want 3 (unchanged)", plan.CompletedInstallments)
		}
	})
}
