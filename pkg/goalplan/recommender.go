package goalplan

import (
	"fmt"
	"sort"
)

// DefaultMaxAlternatives is the number of display alternatives kept per report
const DefaultMaxAlternatives = 3

// recommendationRule picks a scenario from the generated set, if its condition holds
type recommendationRule struct {
	name string
	pick func(base Current, set ScenarioSet) (Scenario, bool)
}

// recommendationRules is evaluated in order; the first match wins.
var recommendationRules = []recommendationRule{
	{
		name: "percentage_adjustment",
		pick: func(_ Current, set ScenarioSet) (Scenario, bool) {
			return set.Percentage, set.Percentage.Feasible
		},
	},
	{name: "remove_tier_1", pick: pickRemoval(TierOne)},
	{name: "remove_tier_2", pick: pickRemoval(TierTwo)},
	{name: "remove_tier_3", pick: pickRemoval(TierThree)},
	{
		name: "multi_tier_removal",
		pick: func(_ Current, set ScenarioSet) (Scenario, bool) {
			var best *MultiTierRemoval
			for i := range set.MultiTier {
				m := &set.MultiTier[i]
				if !m.Feasible {
					continue
				}
				if best == nil || tierSum(m.Tiers) < tierSum(best.Tiers) {
					best = m
				}
			}
			if best == nil {
				return nil, false
			}
			return *best, true
		},
	},
	{
		name: "combined",
		pick: func(_ Current, set ScenarioSet) (Scenario, bool) {
			var best *Combined
			for i := range set.Combined {
				c := &set.Combined[i]
				if !c.Feasible {
					continue
				}
				if best == nil || c.Tier < best.Tier ||
					(c.Tier == best.Tier && c.NewPercentage < best.NewPercentage) {
					best = c
				}
			}
			if best == nil {
				return nil, false
			}
			return *best, true
		},
	},
	{
		name: "current",
		pick: func(base Current, _ ScenarioSet) (Scenario, bool) {
			return base, base.Feasible
		},
	},
}

func pickRemoval(tier Tier) func(Current, ScenarioSet) (Scenario, bool) {
	return func(_ Current, set ScenarioSet) (Scenario, bool) {
		r, ok := set.Removal(tier)
		if !ok || !r.Feasible {
			return nil, false
		}
		return r, true
	}
}

// Recommend returns the least disruptive feasible scenario and the name of the
// rule that selected it. It returns nil when nothing reaches the target.
func Recommend(base Current, set ScenarioSet) (Scenario, string) {
	for _, rule := range recommendationRules {
		if s, ok := rule.pick(base, set); ok {
			return s, rule.name
		}
	}
	return nil, ""
}

// Alternatives orders scenarios feasible-first, then by ascending sort key, and
// returns up to limit of them, skipping Current and the recommended scenario.
func Alternatives(scenarios []Scenario, recommended Scenario, limit int) []Scenario {
	if limit <= 0 {
		return nil
	}

	sorted := make([]Scenario, len(scenarios))
	copy(sorted, scenarios)
	sort.SliceStable(sorted, func(i, j int) bool {
		fi, fj := sorted[i].IsFeasible(), sorted[j].IsFeasible()
		if fi != fj {
			return fi
		}
		return sorted[i].SortKey() < sorted[j].SortKey()
	})

	skip := map[string]bool{KindCurrent.String(): true}
	if recommended != nil {
		skip[recommended.Key()] = true
	}

	out := make([]Scenario, 0, limit)
	for _, s := range sorted {
		if len(out) == limit {
			break
		}
		if s.Kind() == KindCurrent || skip[s.Key()] {
			continue
		}
		skip[s.Key()] = true
		out = append(out, s)
	}
	return out
}

// Summarize renders the verdict of a report as one sentence
func Summarize(status Status, recommended Scenario, base BaseEvaluation) string {
	switch status {
	case StatusDueToday:
		return "The goal is due today. Check your balance to confirm it has been reached."
	case StatusAchievable:
		return fmt.Sprintf("The goal is achievable: saving %.2f per month reaches %.2f by the deadline.",
			base.Scenario.ResultingMonthlySaving, base.Scenario.ResultingTotalSavedByDeadline)
	case StatusNotAchievable:
		if base.Expired {
			return fmt.Sprintf("The deadline passed %d days ago. Extend the deadline to keep saving towards this goal.", -base.DaysToDeadline)
		}
		if recommended == nil {
			return "The goal is not achievable by its deadline with the available money, even after removing expenses."
		}
	}

	return "The goal is achievable with changes: " + describeChange(recommended) + "."
}

func describeChange(s Scenario) string {
	switch v := s.(type) {
	case PercentageAdjustment:
		return fmt.Sprintf("raise the savings percentage to %.2f%%", v.NewPercentage)
	case ExpenseRemoval:
		return fmt.Sprintf("remove tier %d expenses, freeing %.2f per month", v.Tier, v.MonthlySavingsFreed)
	case MultiTierRemoval:
		return fmt.Sprintf("remove tier %s expenses, freeing %.2f per month", joinTiers(v.Tiers, ", "), v.MonthlySavingsFreed)
	case Combined:
		return fmt.Sprintf("remove tier %d expenses and save %.2f%% of the new available money", v.Tier, v.NewPercentage)
	case ExtendDeadline:
		return fmt.Sprintf("move the deadline to %s", v.NewDeadline.Format(dateLayout))
	case Current:
		return "keep the current savings percentage"
	default:
		return "no change found"
	}
}
