package cli

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/eshaffer321/goalplan-go/pkg/goalplan"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0.00"},
		{12.5, "12.50"},
		{1234.567, "1,234.57"},
		{1234567.891, "1,234,567.89"},
		{-20, "-20.00"},
		{-0.001, "0.00"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatMoney(tt.in), "%v", tt.in)
	}
}

func TestFormatPercentAndDays(t *testing.T) {
	assert.Equal(t, "58.82%", FormatPercent(58.8235294))
	assert.Equal(t, "20%", FormatPercent(20))

	assert.Equal(t, "today", FormatDays(0))
	assert.Equal(t, "in 1 day", FormatDays(1))
	assert.Equal(t, "in 180 days", FormatDays(180))
	assert.Equal(t, "1 day ago", FormatDays(-1))
	assert.Equal(t, "12 days ago", FormatDays(-12))
}

func TestStatusLabelAndColor(t *testing.T) {
	tests := []struct {
		status goalplan.Status
		label  string
		color  lipgloss.Color
	}{
		{goalplan.StatusAchievable, "Achievable", ColorGreen},
		{goalplan.StatusAdjustableWithChanges, "Achievable with changes", ColorYellow},
		{goalplan.StatusNotAchievable, "Not achievable", ColorRed},
		{goalplan.StatusDueToday, "Due today", ColorBlue},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			assert.Equal(t, tt.label, StatusLabel(tt.status))
			assert.Equal(t, tt.color, StatusColor(tt.status))
		})
	}
}

func TestScenarioLabel(t *testing.T) {
	assert.Equal(t, "Save 58.82%", ScenarioLabel(goalplan.PercentageAdjustment{NewPercentage: 58.8235}))
	assert.Equal(t, "Remove tier 1 expenses", ScenarioLabel(goalplan.ExpenseRemoval{Tier: goalplan.TierOne}))
	assert.Equal(t, "Remove tiers 1 + 3", ScenarioLabel(goalplan.MultiTierRemoval{Tiers: []goalplan.Tier{1, 3}}))
	assert.Equal(t, "Remove tier 2, save 40%", ScenarioLabel(goalplan.Combined{Tier: 2, NewPercentage: 40}))
	assert.Equal(t, "Move deadline to 2027-03-01",
		ScenarioLabel(goalplan.ExtendDeadline{NewDeadline: time.Date(2027, 3, 1, 0, 0, 0, 0, time.UTC)}))
	assert.Equal(t, "None", ScenarioLabel(nil))
}

func TestRenderTable(t *testing.T) {
	out := RenderTable(Table{
		Title:   "Goals",
		Headers: []string{"Name", "Amount"},
		Rows: [][]string{
			{"Emergency fund", "6,000.00"},
			{"---"},
			{"Bike", "800.00"},
		},
	})

	assert.Contains(t, out, "Goals")
	assert.Contains(t, out, "Emergency fund")
	assert.Contains(t, out, "800.00")
	assert.Equal(t, 8, strings.Count(out, "\n"))

	assert.Empty(t, RenderTable(Table{}))
}

func TestRenderReport(t *testing.T) {
	engine, err := goalplan.NewEngine(nil)
	require.NoError(t, err)

	now := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)
	report, err := engine.Evaluate(t.Context(), goalplan.EvaluateInput{
		Goal: goalplan.Goal{
			ID:                "g1",
			Name:              "Emergency fund",
			Amount:            6000,
			Deadline:          goalplan.Date{Time: now.AddDate(0, 0, 180)},
			CreatedAt:         goalplan.NewDate(2025, 7, 1),
			SavingsPercentage: 20,
		},
		Incomes: []goalplan.IncomeRecord{{Name: "Salary", Amount: 1700}},
		Now:     now,
	})
	require.NoError(t, err)

	out := RenderReport(report)
	assert.Contains(t, out, "EMERGENCY FUND")
	assert.Contains(t, out, "Achievable with changes")
	assert.Contains(t, out, "Save 58.82%")
	assert.Contains(t, out, "1,700.00")
	assert.Contains(t, out, "in 180 days")
}

func TestRenderAllocation(t *testing.T) {
	summary, err := goalplan.ValidateAllocation(goalplan.AllocationRequest{
		Allocations:        []goalplan.GoalAllocation{{GoalID: "g1", Percentage: 70}},
		AvailableMoney:     1000,
		ProposedPercentage: 40,
	})
	require.NoError(t, err)

	out := RenderAllocation(40, summary)
	assert.Contains(t, out, "110%")
	assert.Contains(t, out, "exceeds 100%")
}

func TestRenderProgress(t *testing.T) {
	out := RenderProgress("Bike", goalplan.GoalProgress{TimeProgress: 50, FinancialProgress: 120, DaysPassed: 10, DaysRemaining: 10})
	assert.Contains(t, out, "Bike")
	assert.Contains(t, out, "50%")
	assert.Contains(t, out, "100%")
	assert.Contains(t, out, "10 days passed, 10 days remaining")
}

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, false)

	logger.Debug("hidden message", "goal", "g1")
	assert.NotContains(t, buf.String(), "hidden message")

	logger.Info("Evaluated goal", "goal", "g1")
	assert.Contains(t, buf.String(), "Evaluated goal")
	assert.Contains(t, buf.String(), "g1")

	buf.Reset()
	verbose := NewJSONLogger(&buf, true)
	verbose.Debug("Recommendation", "rule", "percentage_adjustment")
	assert.Contains(t, buf.String(), "Recommendation")
	assert.Contains(t, buf.String(), "percentage_adjustment")
}
