// Package automation contains the automatic transaction generation engine.
package automation

import (
	"testing"
	"time"

	"github.com/fintrack/backend/internal/domain/entity"
)

func TestNextDueDate(t *testing.T) {
	tests := []struct {
		name    string
		current time.Time
		cadence entity.Cadence
		want    time.Time
	}{
		{
			name:    "weekly adds seven days",
			current: date(2024, time.March, 4),
			cadence: entity.CadenceWeekly,
			want:    date(2024, time.March, 11),
		},
		{
			name:    "weekly crosses month boundary",
			current: date(2024, time.January, 29),
			cadence: entity.CadenceWeekly,
			want:    date(2024, time.February, 5),
		},
		{
			name:    "monthly same day next month",
			current: date(2024, time.April, 15),
			cadence: entity.CadenceMonthly,
			want:    date(2024, time.May, 15),
		},
		{
			name:    "monthly clamps jan 31 to feb 29 in leap year",
			current: date(2024, time.January, 31),
			cadence: entity.CadenceMonthly,
			want:    date(2024, time.February, 29),
		},
		{
			name:    "monthly clamps jan 31 to feb 28 outside leap year",
			current: date(2023, time.January, 31),
			cadence: entity.CadenceMonthly,
			want:    date(2023, time.February, 28),
		},
		{
			name:    "monthly clamps aug 31 to sep 30",
			current: date(2024, time.August, 31),
			cadence: entity.CadenceMonthly,
			want:    date(2024, time.September, 30),
		},
		{
			name:    "monthly crosses year boundary",
			current: date(2024, time.December, 10),
			cadence: entity.CadenceMonthly,
			want:    date(2025, time.January, 10),
		},
		{
			name:    "yearly adds one year",
			current: date(2024, time.June, 1),
			cadence: entity.CadenceYearly,
			want:    date(2025, time.June, 1),
		},
		{
			name:    "yearly clamps feb 29 to feb 28",
			current: date(2024, time.February, 29),
			cadence: entity.CadenceYearly,
			want:    date(2025, time.February, 28),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NextDueDate(tt.current, tt.cadence)
			if !got.Equal(tt.want) {
				t.Errorf("NextDueDate(%s, %s) = %s, want %s",
					tt.current.Format("2006-01-02"), tt.cadence,
					got.Format("2006-01-02"), tt.want.Format("2006-01-02"))
			}
		})
	}
}

func TestInstallmentDueDate(t *testing.T) {
	start := date(2024, time.January, 31)

	tests := []struct {
		name   string
		number int
		want   time.Time
	}{
		{"first installment is the start date", 1, date(2024, time.January, 31)},
		{"second installment clamps into february", 2, date(2024, time.February, 29)},
		{"third installment clamps from start not from february", 3, date(2024, time.March, 31)},
		{"fourth installment clamps april", 4, date(2024, time.April, 30)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := InstallmentDueDate(start, tt.number)
			if !got.Equal(tt.want) {
				t.Errorf("InstallmentDueDate(%s, %d) = %s, want %s",
					start.Format("2006-01-02"), tt.number,
					got.Format("2006-01-02"), tt.want.Format("2006-01-02"))
			}
		})
	}
}

func TestDateOnly(t *testing.T) {
	in := time.Date(2024, time.May, 7, 23, 59, 58, 123, time.UTC)
	want := date(2024, time.May, 7)

	if got := DateOnly(in); !got.Equal(want) {
		t.Errorf("DateOnly(%v) = %v, want %v", in, got, want)
	}
}
