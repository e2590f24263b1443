package goalplan

import (
	"math"
	"time"
)

// maxOpenProgress caps time progress until the deadline day is reached
const maxOpenProgress = 99.99

// TimeProgress returns the share of the goal's lifetime that has elapsed, in percent.
func TimeProgress(goal Goal, now time.Time) float64 {
	if DaysBetween(now, goal.Deadline.Time) <= 0 {
		return 100
	}

	daysPassed := DaysBetween(goal.CreatedAt.Time, now)
	if daysPassed < 0 {
		return 0
	}

	totalDays := DaysBetween(goal.CreatedAt.Time, goal.Deadline.Time)
	if totalDays < 1 {
		totalDays = 1
	}

	return math.Min(float64(daysPassed)*(100/float64(totalDays)), maxOpenProgress)
}

// FinancialProgress estimates how much of the target has been saved so far,
// assuming the goal's percentage of availableMoney was set aside every day
// since the goal was created. The result is clamped to [0, 100].
func FinancialProgress(goal Goal, availableMoney float64, now time.Time) float64 {
	if goal.Amount <= 0 {
		return 0
	}

	monthly := goal.SavingsPercentage / 100 * availableMoney
	daily := monthly / DaysPerMonth

	daysPassed := DaysBetween(goal.CreatedAt.Time, now)
	if daysPassed < 0 {
		daysPassed = 0
	}

	pct := daily * float64(daysPassed) / goal.Amount * 100
	return math.Max(0, math.Min(pct, 100))
}

// ComputeProgress returns both progress measures for a goal
func ComputeProgress(goal Goal, availableMoney float64, now time.Time) GoalProgress {
	passed := DaysBetween(goal.CreatedAt.Time, now)
	if passed < 0 {
		passed = 0
	}
	remaining := DaysBetween(now, goal.Deadline.Time)
	if remaining < 0 {
		remaining = 0
	}

	return GoalProgress{
		GoalID:            goal.ID,
		TimeProgress:      TimeProgress(goal, now),
		FinancialProgress: FinancialProgress(goal, availableMoney, now),
		DaysPassed:        passed,
		DaysRemaining:     remaining,
	}
}
