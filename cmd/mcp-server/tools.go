package main

import (
	"context"
	"fmt"
	"time"

	"github.com/eshaffer321/goalplan-go/internal/source"
	"github.com/eshaffer321/goalplan-go/pkg/goalplan"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// goalTools holds the engine and record source and implements all tool handlers
type goalTools struct {
	engine *goalplan.Engine
	src    source.Source
}

// EvaluateGoal tool - decides whether a goal is reachable and what to change
type EvaluateGoalInput struct {
	GoalID              string `json:"goalId" jsonschema:"ID of the goal to evaluate"`
	AsOf                string `json:"asOf,omitempty" jsonschema:"Evaluate as of this date in YYYY-MM-DD format (optional, default today)"`
	IncludeAllScenarios bool   `json:"includeAllScenarios,omitempty" jsonschema:"Generate alternatives even when the goal is already achievable"`
}

type ScenarioEntry struct {
	Kind                   string   `json:"kind" jsonschema:"Scenario kind (current, percentage_adjustment, expense_removal, multi_tier_removal, combined, extend_deadline)"`
	Description            string   `json:"description" jsonschema:"Short description of the change"`
	Feasible               bool     `json:"feasible" jsonschema:"Whether the goal is reached under this scenario"`
	NewPercentage          float64  `json:"newPercentage,omitempty" jsonschema:"Savings percentage the scenario uses"`
	Tiers                  []int    `json:"tiers,omitempty" jsonschema:"Expense priority tiers removed"`
	NewDeadline            string   `json:"newDeadline,omitempty" jsonschema:"Proposed deadline in YYYY-MM-DD format"`
	MonthlySavingsFreed    float64  `json:"monthlySavingsFreed" jsonschema:"Monthly money freed by removing expenses"`
	ResultingMonthlySaving float64  `json:"resultingMonthlySaving" jsonschema:"Monthly saving under this scenario"`
	ResultingTotalSaved    float64  `json:"resultingTotalSaved" jsonschema:"Total saved by the deadline under this scenario"`
	AffectedExpenses       []string `json:"affectedExpenses,omitempty" jsonschema:"Names of the expenses removed"`
}

type EvaluateGoalOutput struct {
	GoalID         string          `json:"goalId" jsonschema:"Goal ID"`
	GoalName       string          `json:"goalName" jsonschema:"Goal name"`
	Status         string          `json:"status" jsonschema:"Feasibility status (achievable, adjustable_with_changes, not_achievable, due_today)"`
	Message        string          `json:"message" jsonschema:"Human readable summary"`
	DaysToDeadline int             `json:"daysToDeadline" jsonschema:"Days until the deadline (negative when passed)"`
	AvailableMoney float64         `json:"availableMoney" jsonschema:"Monthly income minus monthly expenses"`
	Remaining      float64         `json:"remaining" jsonschema:"Amount still missing by the deadline at the current savings percentage"`
	Recommended    *ScenarioEntry  `json:"recommended,omitempty" jsonschema:"Recommended scenario"`
	Alternatives   []ScenarioEntry `json:"alternatives,omitempty" jsonschema:"Other scenarios worth considering"`
}

func (t *goalTools) EvaluateGoal(ctx context.Context, req *mcp.CallToolRequest, input EvaluateGoalInput) (*mcp.CallToolResult, EvaluateGoalOutput, error) {
	now, err := parseAsOf(input.AsOf)
	if err != nil {
		return nil, EvaluateGoalOutput{}, err
	}

	in, err := source.LoadEvaluation(ctx, t.src, input.GoalID)
	if err != nil {
		return nil, EvaluateGoalOutput{}, fmt.Errorf("failed to load goal: %w", err)
	}
	in.Now = now
	in.IncludeAllScenarios = input.IncludeAllScenarios

	report, err := t.engine.Evaluate(ctx, in)
	if err != nil {
		return nil, EvaluateGoalOutput{}, fmt.Errorf("failed to evaluate goal: %w", err)
	}

	out := EvaluateGoalOutput{
		GoalID:         report.GoalID,
		GoalName:       report.GoalName,
		Status:         report.Status.String(),
		Message:        report.Message,
		DaysToDeadline: report.DaysToDeadline,
		AvailableMoney: report.Snapshot.AvailableMoney,
		Remaining:      report.Remaining,
	}
	if report.RecommendedScenario != nil {
		entry := scenarioEntry(report.RecommendedScenario)
		out.Recommended = &entry
	}
	for _, s := range report.Alternatives {
		out.Alternatives = append(out.Alternatives, scenarioEntry(s))
	}

	return nil, out, nil
}

// CheckAllocation tool - validates a proposed savings percentage
type CheckAllocationInput struct {
	OwnerID            string   `json:"ownerId,omitempty" jsonschema:"Owner whose goals are counted (optional)"`
	ProposedPercentage float64  `json:"proposedPercentage" jsonschema:"Proposed savings percentage between 0 and 100"`
	ExcludeGoalID      string   `json:"excludeGoalId,omitempty" jsonschema:"Goal left out of the existing total, usually the goal being edited"`
	AvailableMoney     *float64 `json:"availableMoney,omitempty" jsonschema:"Monthly available money (optional, default from the owner's records)"`
}

type CheckAllocationOutput struct {
	ExistingPercentageTotal    float64 `json:"existingPercentageTotal" jsonschema:"Sum of the savings percentages of the other goals"`
	ExistingFixedValueTotal    float64 `json:"existingFixedValueTotal" jsonschema:"Monthly money those percentages represent"`
	ProposedNewTotalPercentage float64 `json:"proposedNewTotalPercentage" jsonschema:"Total percentage including the proposal"`
	IsValid                    bool    `json:"isValid" jsonschema:"Whether the total stays within 100 percent"`
	RemainingPercentage        float64 `json:"remainingPercentage" jsonschema:"Percentage still unallocated before the proposal"`
	RemainingFixedValue        float64 `json:"remainingFixedValue" jsonschema:"Monthly money still unallocated before the proposal"`
}

func (t *goalTools) CheckAllocation(ctx context.Context, req *mcp.CallToolRequest, input CheckAllocationInput) (*mcp.CallToolResult, CheckAllocationOutput, error) {
	allocs, err := source.Allocations(ctx, t.src, input.OwnerID)
	if err != nil {
		return nil, CheckAllocationOutput{}, fmt.Errorf("failed to load goals: %w", err)
	}

	var available float64
	if input.AvailableMoney != nil {
		available = *input.AvailableMoney
	} else {
		available, err = source.AvailableMoney(ctx, t.src, input.OwnerID)
		if err != nil {
			return nil, CheckAllocationOutput{}, err
		}
	}

	summary, err := t.engine.ValidateAllocation(goalplan.AllocationRequest{
		Allocations:        allocs,
		AvailableMoney:     available,
		ExcludeGoalID:      input.ExcludeGoalID,
		ProposedPercentage: input.ProposedPercentage,
	})
	if err != nil {
		return nil, CheckAllocationOutput{}, err
	}

	return nil, CheckAllocationOutput(*summary), nil
}

// GoalProgress tool - reports elapsed time and accumulated savings
type GoalProgressInput struct {
	GoalID string `json:"goalId" jsonschema:"ID of the goal"`
	AsOf   string `json:"asOf,omitempty" jsonschema:"Measure progress as of this date in YYYY-MM-DD format (optional, default today)"`
}

type GoalProgressOutput struct {
	GoalID            string  `json:"goalId" jsonschema:"Goal ID"`
	TimeProgress      float64 `json:"timeProgress" jsonschema:"Share of the goal period that has passed, 0 to 100"`
	FinancialProgress float64 `json:"financialProgress" jsonschema:"Share of the target saved so far, 0 to 100"`
	DaysPassed        int     `json:"daysPassed" jsonschema:"Days since the goal was created"`
	DaysRemaining     int     `json:"daysRemaining" jsonschema:"Days until the deadline"`
}

func (t *goalTools) GoalProgress(ctx context.Context, req *mcp.CallToolRequest, input GoalProgressInput) (*mcp.CallToolResult, GoalProgressOutput, error) {
	now, err := parseAsOf(input.AsOf)
	if err != nil {
		return nil, GoalProgressOutput{}, err
	}

	in, err := source.LoadEvaluation(ctx, t.src, input.GoalID)
	if err != nil {
		return nil, GoalProgressOutput{}, fmt.Errorf("failed to load goal: %w", err)
	}

	p, err := t.engine.Progress(in.Goal, in.Incomes, in.Expenses, now)
	if err != nil {
		return nil, GoalProgressOutput{}, fmt.Errorf("failed to compute progress: %w", err)
	}

	return nil, GoalProgressOutput(p), nil
}

func parseAsOf(asOf string) (time.Time, error) {
	if asOf == "" {
		return time.Time{}, nil
	}
	d, err := goalplan.ParseDate(asOf)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid asOf format (expected YYYY-MM-DD): %w", err)
	}
	return d.Time, nil
}

func scenarioEntry(s goalplan.Scenario) ScenarioEntry {
	rec := goalplan.Describe(s)
	entry := ScenarioEntry{
		Kind:                   rec.Kind,
		Description:            describe(s),
		Feasible:               rec.Feasible,
		NewPercentage:          rec.NewPercentage,
		MonthlySavingsFreed:    rec.MonthlySavingsFreed,
		ResultingMonthlySaving: rec.ResultingMonthlySaving,
		ResultingTotalSaved:    rec.ResultingTotalSavedByDeadline,
	}

	if rec.Tier != 0 {
		entry.Tiers = []int{int(rec.Tier)}
	}
	for _, tier := range rec.Tiers {
		entry.Tiers = append(entry.Tiers, int(tier))
	}
	if rec.NewDeadline != nil {
		entry.NewDeadline = rec.NewDeadline.String()
	}
	for _, a := range rec.AffectedExpenses {
		entry.AffectedExpenses = append(entry.AffectedExpenses, a.Name)
	}
	return entry
}

func describe(s goalplan.Scenario) string {
	switch v := s.(type) {
	case goalplan.Current:
		return fmt.Sprintf("Keep saving %.2f%%", v.Percentage)
	case goalplan.PercentageAdjustment:
		return fmt.Sprintf("Save %.2f%% of available money", v.NewPercentage)
	case goalplan.ExpenseRemoval:
		return fmt.Sprintf("Remove tier %d expenses", v.Tier)
	case goalplan.MultiTierRemoval:
		return fmt.Sprintf("Remove expenses of %d tiers", len(v.Tiers))
	case goalplan.Combined:
		return fmt.Sprintf("Remove tier %d expenses and save %.2f%%", v.Tier, v.NewPercentage)
	case goalplan.ExtendDeadline:
		return fmt.Sprintf("Move the deadline to %s", v.NewDeadline.Format("2006-01-02"))
	default:
		return s.Kind().String()
	}
}
