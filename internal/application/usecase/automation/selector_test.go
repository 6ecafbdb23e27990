// Package automation contains the automatic transaction generation engine.
package automation

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fintrack/backend/internal/domain/entity"
)

func buildSchedule(userID uuid.UUID, cadence entity.Cadence, start, nextDue time.Time, end *time.Time) *entity.RecurringSchedule {
	s := entity.NewRecurringSchedule(
		userID,
		entity.TransactionTypeExpense,
		decimal.NewFromFloat(50),
		"Gym membership",
		nil,
		entity.PaymentMethodCard,
		"",
		cadence,
		start,
		end,
	)
	s.NextDueDate = nextDue
	return s
}

func buildPlan(userID uuid.UUID, count, completed int, start time.Time) *entity.InstallmentPlan {
	p := entity.NewInstallmentPlan(
		userID,
		entity.TransactionTypeExpense,
		decimal.NewFromFloat(300),
		"New laptop",
		nil,
		entity.PaymentMethodPix,
		"",
		count,
		start,
	)
	p.CompletedInstallments = completed
	return p
}

func TestSelectDueItems_Recurring(t *testing.T) {
	userID := uuid.New()

	t.Run("nothing due when next due date is in the future", func(t *testing.T) {
		s := buildSchedule(userID, entity.CadenceWeekly, date(2024, time.March, 1), date(2024, time.March, 8), nil)

		sel := SelectDueItems(date(2024, time.March, 7), []*entity.RecurringSchedule{s}, nil)

		if len(sel.Recurring) != 0 {
			t.Errorf("expected no due items, got %d", len(sel.Recurring))
		}
	})

	t.Run("schedule due today produces one item", func(t *testing.T) {
		s := buildSchedule(userID, entity.CadenceWeekly, date(2024, time.March, 1), date(2024, time.March, 8), nil)

		sel := SelectDueItems(date(2024, time.March, 8), []*entity.RecurringSchedule{s}, nil)

		if len(sel.Recurring) != 1 {
			t.Fatalf("expected 1 due item, got %d", len(sel.Recurring))
		}
		if !sel.Recurring[0].DueDate.Equal(date(2024, time.March, 8)) {
			t.Errorf("unexpected due date %s", sel.Recurring[0].DueDate)
		}
	})

	t.Run("schedule multiple periods behind expands to one item per period", func(t *testing.T) {
		d := date(2024, time.March, 1)
		s := buildSchedule(userID, entity.CadenceWeekly, d, d, nil)

		sel := SelectDueItems(d.AddDate(0, 0, 20), []*entity.RecurringSchedule{s}, nil)

		if len(sel.Recurring) != 3 {
			t.Fatalf("expected 3 due items, got %d", len(sel.Recurring))
		}
		for i, wantDue := range []time.Time{d, d.AddDate(0, 0, 7), d.AddDate(0, 0, 14)} {
			if !sel.Recurring[i].DueDate.Equal(wantDue) {
				t.Errorf("item %d: due date %s, want %s", i,
					sel.Recurring[i].DueDate.Format("2006-01-02"), wantDue.Format("2006-01-02"))
			}
		}
	})

	t.Run("due items are capped at the end date", func(t *testing.T) {
		d := date(2024, time.March, 1)
		end := d.AddDate(0, 0, 7)
		s := buildSchedule(userID, entity.CadenceWeekly, d, d, &end)

		sel := SelectDueItems(d.AddDate(0, 0, 30), []*entity.RecurringSchedule{s}, nil)

		if len(sel.Recurring) != 2 {
			t.Fatalf("expected 2 due items up to end date, got %d", len(sel.Recurring))
		}
		last := sel.Recurring[len(sel.Recurring)-1].DueDate
		if last.After(end) {
			t.Errorf("item past end date: %s", last.Format("2006-01-02"))
		}
	})

	t.Run("expired schedule with nothing due is flagged for deactivation", func(t *testing.T) {
		d := date(2024, time.January, 1)
		end := date(2024, time.January, 10)
		s := buildSchedule(userID, entity.CadenceWeekly, d, date(2024, time.January, 15), &end)

		sel := SelectDueItems(date(2024, time.February, 1), []*entity.RecurringSchedule{s}, nil)

		if len(sel.Recurring) != 0 {
			t.Errorf("expected no due items, got %d", len(sel.Recurring))
		}
		if len(sel.ExpiredSchedules) != 1 {
			t.Errorf("expected 1 expired schedule, got %d", len(sel.ExpiredSchedules))
		}
	})

	t.Run("inactive schedules are ignored", func(t *testing.T) {
		d := date(2024, time.March, 1)
		s := buildSchedule(userID, entity.CadenceWeekly, d, d, nil)
		s.Active = false

		sel := SelectDueItems(d.AddDate(0, 0, 10), []*entity.RecurringSchedule{s}, nil)

		if len(sel.Recurring) != 0 || len(sel.ExpiredSchedules) != 0 {
			t.Error("inactive schedule should produce nothing")
		}
	})

	t.Run("next due date before start date is an invariant violation", func(t *testing.T) {
		s := buildSchedule(userID, entity.CadenceMonthly, date(2024, time.March, 1), date(2024, time.February, 1), nil)

		sel := SelectDueItems(date(2024, time.April, 1), []*entity.RecurringSchedule{s}, nil)

		if len(sel.Recurring) != 0 {
			t.Errorf("expected no due items, got %d", len(sel.Recurring))
		}
		if len(sel.Invalid) != 1 {
			t.Fatalf("expected 1 invalid item, got %d", len(sel.Invalid))
		}
	})

	t.Run("items from multiple schedules are ordered by due date", func(t *testing.T) {
		s1 := buildSchedule(userID, entity.CadenceWeekly, date(2024, time.March, 5), date(2024, time.March, 5), nil)
		s2 := buildSchedule(userID, entity.CadenceWeekly, date(2024, time.March, 1), date(2024, time.March, 1), nil)

		sel := SelectDueItems(date(2024, time.March, 10), []*entity.RecurringSchedule{s1, s2}, nil)

		for i := 1; i < len(sel.Recurring); i++ {
			if sel.Recurring[i].DueDate.Before(sel.Recurring[i-1].DueDate) {
				t.Fatalf("due items not ordered ascending at index %d", i)
			}
		}
	})
}

func TestSelectDueItems_Installments(t *testing.T) {
	userID := uuid.New()

	t.Run("next installment due produces one item with the right number", func(t *testing.T) {
		p := buildPlan(userID, 3, 2, date(2024, time.January, 10))

		sel := SelectDueItems(date(2024, time.March, 10), nil, []*entity.InstallmentPlan{p})

		if len(sel.Installments) != 1 {
			t.Fatalf("expected 1 due installment, got %d", len(sel.Installments))
		}
		item := sel.Installments[0]
		if item.InstallmentNumber != 3 {
			t.Errorf("installment number = %d, want 3", item.InstallmentNumber)
		}
		if !item.DueDate.Equal(date(2024, time.March, 10)) {
			t.Errorf("due date = %s, want 2024-03-10", item.DueDate.Format("2006-01-02"))
		}
	})

	t.Run("plan several installments behind catches up one number at a time", func(t *testing.T) {
		p := buildPlan(userID, 6, 0, date(2024, time.January, 1))

		sel := SelectDueItems(date(2024, time.March, 15), nil, []*entity.InstallmentPlan{p})

		if len(sel.Installments) != 3 {
			t.Fatalf("expected 3 due installments, got %d", len(sel.Installments))
		}
		for i, item := range sel.Installments {
			if item.InstallmentNumber != i+1 {
				t.Errorf("item %d: number = %d, want %d", i, item.InstallmentNumber, i+1)
			}
		}
	})

	t.Run("never selects past the installment count", func(t *testing.T) {
		p := buildPlan(userID, 2, 0, date(2023, time.January, 1))

		sel := SelectDueItems(date(2024, time.June, 1), nil, []*entity.InstallmentPlan{p})

		if len(sel.Installments) != 2 {
			t.Fatalf("expected 2 due installments, got %d", len(sel.Installments))
		}
	})

	t.Run("completed plan still active is flagged for deactivation", func(t *testing.T) {
		p := buildPlan(userID, 3, 3, date(2024, time.January, 1))

		sel := SelectDueItems(date(2024, time.June, 1), nil, []*entity.InstallmentPlan{p})

		if len(sel.Installments) != 0 {
			t.Errorf("expected no due installments, got %d", len(sel.Installments))
		}
		if len(sel.CompletedPlans) != 1 {
			t.Errorf("expected 1 completed plan, got %d", len(sel.CompletedPlans))
		}
	})

	t.Run("completed count above installment count is an invariant violation", func(t *testing.T) {
		p := buildPlan(userID, 3, 4, date(2024, time.January, 1))

		sel := SelectDueItems(date(2024, time.June, 1), nil, []*entity.InstallmentPlan{p})

		if len(sel.Invalid) != 1 {
			t.Fatalf("expected 1 invalid item, got %d", len(sel.Invalid))
		}
		if len(sel.Installments) != 0 || len(sel.CompletedPlans) != 0 {
			t.Error("invalid plan should produce nothing else")
		}
	})
}
