package goalplan

import "sort"

// ScenarioSet holds every alternative generated for one goal
type ScenarioSet struct {
	Percentage PercentageAdjustment
	Removals   []ExpenseRemoval
	MultiTier  []MultiTierRemoval
	Combined   []Combined
}

// All returns the generated scenarios in generation order
func (s ScenarioSet) All() []Scenario {
	out := make([]Scenario, 0, 1+len(s.Removals)+len(s.MultiTier)+len(s.Combined))
	out = append(out, s.Percentage)
	for _, r := range s.Removals {
		out = append(out, r)
	}
	for _, m := range s.MultiTier {
		out = append(out, m)
	}
	for _, c := range s.Combined {
		out = append(out, c)
	}
	return out
}

// Removal returns the single-tier removal for tier, if one was generated
func (s ScenarioSet) Removal(tier Tier) (ExpenseRemoval, bool) {
	for _, r := range s.Removals {
		if r.Tier == tier {
			return r, true
		}
	}
	return ExpenseRemoval{}, false
}

// GenerateScenarios builds the alternative scenarios for a goal that has
// monthsToDeadline left. monthsToDeadline must be positive. Inputs are not modified.
func GenerateScenarios(goal Goal, snap FinancialSnapshot, expenses []ExpenseRecord, monthsToDeadline float64) ScenarioSet {
	set := ScenarioSet{
		Percentage: percentageAdjustment(goal, snap.AvailableMoney, monthsToDeadline),
	}

	byTier := expensesByTier(expenses)
	var populated []Tier
	for _, tier := range AllTiers {
		if len(byTier[tier]) > 0 {
			populated = append(populated, tier)
		}
	}

	for _, tier := range populated {
		affected, freed := removeTiers(byTier, []Tier{tier})
		if freed <= 0 {
			continue
		}
		set.Removals = append(set.Removals, ExpenseRemoval{
			Tier:    tier,
			Outcome: removalOutcome(goal, snap.AvailableMoney, freed, affected, monthsToDeadline),
		})
	}

	for _, tiers := range tierSubsets(populated) {
		affected, freed := removeTiers(byTier, tiers)
		if freed <= 0 {
			continue
		}
		set.MultiTier = append(set.MultiTier, MultiTierRemoval{
			Tiers:   tiers,
			Outcome: removalOutcome(goal, snap.AvailableMoney, freed, affected, monthsToDeadline),
		})
	}

	for _, r := range set.Removals {
		if r.ResultingAvailableMoney <= 0 {
			continue
		}
		adj := percentageAdjustment(goal, r.ResultingAvailableMoney, monthsToDeadline)
		out := adj.Outcome
		out.MonthlySavingsFreed = r.MonthlySavingsFreed
		out.AffectedExpenses = r.AffectedExpenses
		set.Combined = append(set.Combined, Combined{
			Tier:          r.Tier,
			NewPercentage: adj.NewPercentage,
			Outcome:       out,
		})
	}

	return set
}

// percentageAdjustment computes the percentage of available that reaches the
// target by the deadline. Non-positive available money has no solution.
func percentageAdjustment(goal Goal, available, months float64) PercentageAdjustment {
	adj := PercentageAdjustment{
		Outcome: Outcome{ResultingAvailableMoney: available},
	}
	if available <= 0 || months <= 0 {
		return adj
	}

	neededMonthly := goal.Amount / months
	adj.NewPercentage = neededMonthly / available * 100
	adj.ResultingMonthlySaving = neededMonthly
	adj.ResultingTotalSavedByDeadline = neededMonthly * months
	adj.Feasible = adj.NewPercentage > 0 && adj.NewPercentage <= 100
	return adj
}

func removalOutcome(goal Goal, available, freed float64, affected []AffectedExpense, months float64) Outcome {
	newAvailable := available + freed
	saving := monthlySaving(goal.SavingsPercentage, newAvailable)
	total := saving * months
	return Outcome{
		Feasible:                      total >= goal.Amount,
		MonthlySavingsFreed:           freed,
		ResultingAvailableMoney:       newAvailable,
		ResultingMonthlySaving:        saving,
		ResultingTotalSavedByDeadline: total,
		AffectedExpenses:              affected,
	}
}

func removeTiers(byTier map[Tier][]ExpenseRecord, tiers []Tier) ([]AffectedExpense, float64) {
	var (
		affected []AffectedExpense
		freed    float64
	)
	for _, tier := range tiers {
		for _, ex := range byTier[tier] {
			monthly := ex.Monthly()
			freed += monthly
			affected = append(affected, AffectedExpense{Name: ex.Name, Amount: monthly, Tier: tier})
		}
	}
	return affected, freed
}

// tierSubsets returns every subset of tiers with at least two elements,
// ordered by size and then by tier sum.
func tierSubsets(tiers []Tier) [][]Tier {
	var subsets [][]Tier
	n := uint(len(tiers))
	for mask := 1; mask < 1<<n; mask++ {
		var subset []Tier
		for i := uint(0); i < n; i++ {
			if mask&(1<<i) != 0 {
				subset = append(subset, tiers[i])
			}
		}
		if len(subset) >= 2 {
			subsets = append(subsets, subset)
		}
	}

	sort.SliceStable(subsets, func(i, j int) bool {
		if len(subsets[i]) != len(subsets[j]) {
			return len(subsets[i]) < len(subsets[j])
		}
		return tierSum(subsets[i]) < tierSum(subsets[j])
	})
	return subsets
}
