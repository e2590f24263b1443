package goalplan

import (
	"fmt"
	"strings"
	"time"
)

// ScenarioKind identifies a Scenario variant
type ScenarioKind int

const (
	KindCurrent ScenarioKind = iota
	KindPercentageAdjustment
	KindExpenseRemoval
	KindMultiTierRemoval
	KindCombined
	KindExtendDeadline
)

func (k ScenarioKind) String() string {
	switch k {
	case KindCurrent:
		return "current"
	case KindPercentageAdjustment:
		return "percentage_adjustment"
	case KindExpenseRemoval:
		return "expense_removal"
	case KindMultiTierRemoval:
		return "multi_tier_removal"
	case KindCombined:
		return "combined"
	case KindExtendDeadline:
		return "extend_deadline"
	default:
		return "unknown"
	}
}

// Outcome holds the projected figures shared by every scenario
type Outcome struct {
	Feasible                      bool              `json:"feasible"`
	MonthlySavingsFreed           float64           `json:"monthlySavingsFreed"`
	ResultingAvailableMoney       float64           `json:"resultingAvailableMoney"`
	ResultingMonthlySaving        float64           `json:"resultingMonthlySaving"`
	ResultingTotalSavedByDeadline float64           `json:"resultingTotalSavedByDeadline"`
	AffectedExpenses              []AffectedExpense `json:"affectedExpenses,omitempty"`
}

// Result returns the outcome itself; it is promoted onto every variant.
func (o Outcome) Result() Outcome {
	return o
}

// IsFeasible reports whether the scenario reaches the target by the deadline
func (o Outcome) IsFeasible() bool {
	return o.Feasible
}

// Scenario is one way of reaching (or failing to reach) a goal. The set of
// implementations is closed: Current, PercentageAdjustment, ExpenseRemoval,
// MultiTierRemoval, Combined and ExtendDeadline.
type Scenario interface {
	Kind() ScenarioKind
	Result() Outcome
	IsFeasible() bool
	// SortKey orders scenarios of equal feasibility for display, lowest first.
	SortKey() float64
	// Key identifies the scenario within one evaluation.
	Key() string

	scenario()
}

// Current keeps the goal's existing savings percentage
type Current struct {
	Percentage float64
	Outcome
}

// PercentageAdjustment changes only the savings percentage
type PercentageAdjustment struct {
	NewPercentage float64
	Outcome
}

// ExpenseRemoval drops every expense of one tier
type ExpenseRemoval struct {
	Tier Tier
	Outcome
}

// MultiTierRemoval drops every expense across two or more tiers
type MultiTierRemoval struct {
	Tiers []Tier
	Outcome
}

// Combined drops one tier and sets the percentage needed against the freed money
type Combined struct {
	Tier          Tier
	NewPercentage float64
	Outcome
}

// ExtendDeadline proposes a later deadline for an expired goal at the current saving rate
type ExtendDeadline struct {
	NewDeadline  time.Time
	MonthsNeeded float64
	Outcome
}

func (Current) Kind() ScenarioKind              { return KindCurrent }
func (PercentageAdjustment) Kind() ScenarioKind { return KindPercentageAdjustment }
func (ExpenseRemoval) Kind() ScenarioKind       { return KindExpenseRemoval }
func (MultiTierRemoval) Kind() ScenarioKind     { return KindMultiTierRemoval }
func (Combined) Kind() ScenarioKind             { return KindCombined }
func (ExtendDeadline) Kind() ScenarioKind       { return KindExtendDeadline }

func (s Current) SortKey() float64              { return s.Percentage }
func (s PercentageAdjustment) SortKey() float64 { return s.NewPercentage }
func (s ExpenseRemoval) SortKey() float64       { return float64(s.Tier) }
func (s MultiTierRemoval) SortKey() float64     { return float64(tierSum(s.Tiers)) }
func (s Combined) SortKey() float64             { return float64(s.Tier) + s.NewPercentage/100 }
func (s ExtendDeadline) SortKey() float64       { return s.MonthsNeeded }

func (Current) Key() string              { return "current" }
func (PercentageAdjustment) Key() string { return "percentage" }
func (s ExpenseRemoval) Key() string     { return fmt.Sprintf("removal:%d", s.Tier) }
func (s MultiTierRemoval) Key() string   { return "multi:" + joinTiers(s.Tiers, "+") }
func (s Combined) Key() string           { return fmt.Sprintf("combined:%d", s.Tier) }
func (ExtendDeadline) Key() string       { return "extend_deadline" }

func (Current) scenario()              {}
func (PercentageAdjustment) scenario() {}
func (ExpenseRemoval) scenario()       {}
func (MultiTierRemoval) scenario()     {}
func (Combined) scenario()             {}
func (ExtendDeadline) scenario()       {}

// ScenarioRecord is the flat, tagged form of a Scenario used for serialization
type ScenarioRecord struct {
	Kind          string  `json:"kind"`
	Tier          Tier    `json:"tier,omitempty"`
	Tiers         []Tier  `json:"tiers,omitempty"`
	Percentage    float64 `json:"percentage,omitempty"`
	NewPercentage float64 `json:"newPercentage,omitempty"`
	NewDeadline   *Date   `json:"newDeadline,omitempty"`
	MonthsNeeded  float64 `json:"monthsNeeded,omitempty"`
	Outcome
}

// Describe flattens a scenario into a ScenarioRecord. A nil scenario yields nil.
func Describe(s Scenario) *ScenarioRecord {
	if s == nil {
		return nil
	}

	rec := &ScenarioRecord{Kind: s.Kind().String(), Outcome: s.Result()}
	switch v := s.(type) {
	case Current:
		rec.Percentage = v.Percentage
	case PercentageAdjustment:
		rec.NewPercentage = v.NewPercentage
	case ExpenseRemoval:
		rec.Tier = v.Tier
	case MultiTierRemoval:
		rec.Tiers = append([]Tier(nil), v.Tiers...)
	case Combined:
		rec.Tier = v.Tier
		rec.NewPercentage = v.NewPercentage
	case ExtendDeadline:
		d := Date{Time: v.NewDeadline}
		rec.NewDeadline = &d
		rec.MonthsNeeded = v.MonthsNeeded
	}
	return rec
}

// DescribeAll flattens a list of scenarios
func DescribeAll(list []Scenario) []ScenarioRecord {
	out := make([]ScenarioRecord, 0, len(list))
	for _, s := range list {
		out = append(out, *Describe(s))
	}
	return out
}

func tierSum(tiers []Tier) int {
	sum := 0
	for _, t := range tiers {
		sum += int(t)
	}
	return sum
}

func joinTiers(tiers []Tier, sep string) string {
	parts := make([]string, len(tiers))
	for i, t := range tiers {
		parts[i] = fmt.Sprintf("%d", t)
	}
	return strings.Join(parts, sep)
}
