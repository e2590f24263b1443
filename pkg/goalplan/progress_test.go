package goalplan

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func thirtyDayGoal() Goal {
	return Goal{
		ID:                "g",
		Amount:            300,
		CreatedAt:         NewDate(2026, 1, 1),
		Deadline:          NewDate(2026, 1, 31),
		SavingsPercentage: 50,
	}
}

func TestTimeProgress(t *testing.T) {
	goal := thirtyDayGoal()

	tests := []struct {
		name string
		now  time.Time
		want float64
	}{
		{"before creation", time.Date(2025, 12, 20, 0, 0, 0, 0, time.UTC), 0},
		{"on creation day", time.Date(2026, 1, 1, 8, 0, 0, 0, time.UTC), 0},
		{"halfway", time.Date(2026, 1, 16, 0, 0, 0, 0, time.UTC), 50},
		{"day before deadline", time.Date(2026, 1, 30, 0, 0, 0, 0, time.UTC), 29 * 100.0 / 30},
		{"deadline day", time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC), 100},
		{"after deadline", time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, TimeProgress(goal, tt.now), 1e-9)
		})
	}
}

func TestTimeProgress_NeverFullBeforeDeadline(t *testing.T) {
	goal := Goal{
		Amount:    100,
		CreatedAt: NewDate(2026, 1, 1),
		Deadline:  NewDate(2026, 1, 2),
	}
	// Deadline tomorrow but a one-day goal: capped below 100.
	assert.Equal(t, 0.0, TimeProgress(goal, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)))

	goal.Deadline = NewDate(2026, 12, 31)
	goal.CreatedAt = NewDate(2026, 1, 1)
	p := TimeProgress(goal, time.Date(2026, 12, 30, 23, 0, 0, 0, time.UTC))
	assert.Less(t, p, 100.0)
	assert.LessOrEqual(t, p, 99.99)
}

func TestFinancialProgress(t *testing.T) {
	goal := thirtyDayGoal()

	tests := []struct {
		name      string
		available float64
		now       time.Time
		want      float64
	}{
		{"halfway at full rate", 600, time.Date(2026, 1, 16, 0, 0, 0, 0, time.UTC), 50},
		{"before creation", 600, time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC), 0},
		{"clamped at 100", 6000, time.Date(2026, 1, 16, 0, 0, 0, 0, time.UTC), 100},
		{"negative available clamps to 0", -600, time.Date(2026, 1, 16, 0, 0, 0, 0, time.UTC), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, FinancialProgress(goal, tt.available, tt.now), 1e-9)
		})
	}
}

func TestComputeProgress(t *testing.T) {
	p := ComputeProgress(thirtyDayGoal(), 600, time.Date(2026, 1, 16, 0, 0, 0, 0, time.UTC))

	assert.Equal(t, "g", p.GoalID)
	assert.Equal(t, 15, p.DaysPassed)
	assert.Equal(t, 15, p.DaysRemaining)
	assert.InDelta(t, 50, p.TimeProgress, 1e-9)
	assert.InDelta(t, 50, p.FinancialProgress, 1e-9)
}
