package goalplan

import (
	"math"
	"time"
)

// BaseEvaluation is the outcome of checking a goal at its current settings
type BaseEvaluation struct {
	DaysToDeadline   int
	MonthsToDeadline float64
	DueToday         bool
	Expired          bool
	// Remaining is the projected total minus the target; negative when short.
	Remaining float64
	Scenario  Current
}

// EvaluateBase projects the goal's current savings percentage to its deadline.
// Goals due today or already expired get a zero projection.
func EvaluateBase(goal Goal, snap FinancialSnapshot, now time.Time) BaseEvaluation {
	days := DaysBetween(now, goal.Deadline.Time)
	saving := monthlySaving(goal.SavingsPercentage, snap.AvailableMoney)

	eval := BaseEvaluation{
		DaysToDeadline: days,
		DueToday:       days == 0,
		Expired:        days < 0,
		Scenario: Current{
			Percentage: goal.SavingsPercentage,
			Outcome: Outcome{
				ResultingAvailableMoney: snap.AvailableMoney,
				ResultingMonthlySaving:  saving,
			},
		},
	}

	if days <= 0 {
		eval.Remaining = -goal.Amount
		return eval
	}

	eval.MonthsToDeadline = float64(days) / DaysPerMonth
	total := saving * eval.MonthsToDeadline
	eval.Scenario.ResultingTotalSavedByDeadline = total
	eval.Scenario.Feasible = total >= goal.Amount
	eval.Remaining = total - goal.Amount
	return eval
}

// ExtendDeadlineScenario proposes the deadline at which the current monthly
// saving would reach the target. It is infeasible when nothing is being saved.
func ExtendDeadlineScenario(goal Goal, snap FinancialSnapshot, now time.Time) ExtendDeadline {
	saving := monthlySaving(goal.SavingsPercentage, snap.AvailableMoney)
	s := ExtendDeadline{
		Outcome: Outcome{
			ResultingAvailableMoney: snap.AvailableMoney,
			ResultingMonthlySaving:  saving,
		},
	}
	if saving <= 0 {
		return s
	}

	s.MonthsNeeded = goal.Amount / saving
	days := int(math.Ceil(s.MonthsNeeded * DaysPerMonth))
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	s.NewDeadline = today.AddDate(0, 0, days)
	s.ResultingTotalSavedByDeadline = saving * float64(days) / DaysPerMonth
	s.Feasible = true
	return s
}

func monthlySaving(percentage, available float64) float64 {
	return percentage / 100 * available
}
