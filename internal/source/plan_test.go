package source

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/eshaffer321/goalplan-go/pkg/goalplan"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const yamlPlan = `owner: u1
goals:
  - id: g1
    name: Emergency fund
    amount: 6000
    deadline: 2027-04-18
    created_at: "2026-10-18"
    savings_percentage: 20
  - id: g2
    name: Holiday
    amount: 1200
    deadline: "2027-01-31"
    savings_percentage: 10
incomes:
  - name: Salary
    amount: 2000
    frequency: monthly
expenses:
  - name: Streaming
    amount: 25
    frequency_days: 7
    priority_tier: 1
  - name: Rent
    amount: 300
`

const tomlPlan = `owner = "u1"

[[goals]]
id = "g1"
name = "Emergency fund"
amount = 6000.0
deadline = "2027-04-18"
created_at = "2026-10-18"
savings_percentage = 20.0

[[incomes]]
name = "Salary"
amount = 1000.0
frequency = "biweekly"

[[expenses]]
name = "Gym"
amount = 40.0
priority_tier = 2
`

const jsonPlan = `{
  "owner": "u1",
  "goals": [{"id": "g1", "name": "Car", "amount": 9000, "deadline": "2027-06-30", "created_at": "2026-06-30", "savings_percentage": 35}],
  "incomes": [{"name": "Salary", "amount": 3000, "frequency_days": 30}],
  "expenses": []
}`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadPlan_Formats(t *testing.T) {
	tests := []struct {
		name     string
		file     string
		content  string
		goalName string
		deadline string
	}{
		{"yaml", "plan.yaml", yamlPlan, "Emergency fund", "2027-04-18"},
		{"yml", "plan.yml", yamlPlan, "Emergency fund", "2027-04-18"},
		{"toml", "plan.toml", tomlPlan, "Emergency fund", "2027-04-18"},
		{"json", "plan.json", jsonPlan, "Car", "2027-06-30"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan, err := LoadPlan(writeFile(t, tt.file, tt.content))
			require.NoError(t, err)

			assert.Equal(t, "u1", plan.Owner)
			require.NotEmpty(t, plan.Goals)
			assert.Equal(t, tt.goalName, plan.Goals[0].Name)
			assert.Equal(t, tt.deadline, plan.Goals[0].Deadline.String())
			assert.False(t, plan.Goals[0].CreatedAt.IsZero())
		})
	}
}

func TestLoadPlan_MissingCreatedAtDefaultsToFileDate(t *testing.T) {
	plan, err := LoadPlan(writeFile(t, "plan.yaml", yamlPlan))
	require.NoError(t, err)

	require.Len(t, plan.Goals, 2)
	assert.Equal(t, "2026-10-18", plan.Goals[0].CreatedAt.String())
	assert.False(t, plan.Goals[1].CreatedAt.IsZero())
}

func TestLoadPlan_Errors(t *testing.T) {
	_, err := LoadPlan(writeFile(t, "plan.ini", "owner=u1"))
	assert.ErrorContains(t, err, "unsupported plan file format")

	_, err = LoadPlan(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = LoadPlan(t.TempDir())
	assert.ErrorContains(t, err, "is a directory")

	_, err = LoadPlan(writeFile(t, "bad.yaml", "goals:\n  - deadline: someday\n"))
	assert.ErrorContains(t, err, "YAML")
}

func TestFileSource_Records(t *testing.T) {
	src, err := NewFileSource(writeFile(t, "plan.yaml", yamlPlan))
	require.NoError(t, err)
	ctx := context.Background()

	incomes, err := src.Incomes(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, incomes, 1)
	assert.Equal(t, 30, incomes[0].FrequencyDays)

	expenses, err := src.Expenses(ctx, "")
	require.NoError(t, err)
	require.Len(t, expenses, 2)
	assert.Equal(t, 7, expenses[0].FrequencyDays)
	assert.Equal(t, goalplan.TierOne, expenses[0].Tier())
	assert.Equal(t, 0, expenses[1].FrequencyDays)
	assert.Equal(t, goalplan.TierThree, expenses[1].Tier())

	goals, err := src.Goals(ctx, "someone-else")
	require.NoError(t, err)
	assert.Empty(t, goals)
}

func TestFileSource_Goal(t *testing.T) {
	src, err := NewFileSource(writeFile(t, "plan.toml", tomlPlan))
	require.NoError(t, err)

	goal, err := src.Goal(context.Background(), "g1")
	require.NoError(t, err)
	assert.Equal(t, "u1", goal.OwnerID)
	assert.Equal(t, 6000.0, goal.Amount)
	assert.Equal(t, 20.0, goal.SavingsPercentage)

	_, err = src.Goal(context.Background(), "nope")
	assert.True(t, errors.Is(err, ErrGoalNotFound))
}

func TestFileSource_UnknownFrequency(t *testing.T) {
	src := NewPlanSource(&Plan{Incomes: []PlanIncome{{Name: "Bonus", Amount: 10, Frequency: "fortnightly-ish"}}})
	_, err := src.Incomes(context.Background(), "")
	assert.ErrorContains(t, err, "unknown frequency")
}

func TestFrequencyDays(t *testing.T) {
	tests := []struct {
		days  int
		named string
		want  int
	}{
		{0, "", 0},
		{10, "weekly", 10},
		{0, "Weekly", 7},
		{0, " yearly ", 365},
		{0, "quarterly", 90},
	}

	for _, tt := range tests {
		got, err := FrequencyDays(tt.days, tt.named)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "%d %q", tt.days, tt.named)
	}
}

func TestWritePlan_RoundTrip(t *testing.T) {
	plan := &Plan{
		Owner: "u1",
		Goals: []PlanGoal{{
			ID:                "g1",
			Name:              "Bike",
			Amount:            800,
			Deadline:          goalplan.NewDate(2027, 3, 1),
			CreatedAt:         goalplan.NewDate(2026, 9, 1),
			SavingsPercentage: 15,
		}},
		Expenses: []PlanExpense{{Name: "Coffee", Amount: 3, FrequencyDays: 1, PriorityTier: 1}},
	}

	for _, ext := range []string{".yaml", ".toml", ".json"} {
		t.Run(ext, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "out", "plan"+ext)
			require.NoError(t, WritePlan(path, plan))

			loaded, err := LoadPlan(path)
			require.NoError(t, err)
			assert.Equal(t, plan.Goals, loaded.Goals)
			assert.Equal(t, plan.Expenses, loaded.Expenses)
		})
	}
}

func TestLoadEvaluation(t *testing.T) {
	src, err := NewFileSource(writeFile(t, "plan.json", jsonPlan))
	require.NoError(t, err)

	in, err := LoadEvaluation(context.Background(), src, "g1")
	require.NoError(t, err)
	assert.Equal(t, "Car", in.Goal.Name)
	assert.Len(t, in.Incomes, 1)
	assert.Empty(t, in.Expenses)

	_, err = LoadEvaluation(context.Background(), src, "missing")
	assert.ErrorIs(t, err, ErrGoalNotFound)
}

func TestLoadOwnerEvaluationsAndAllocations(t *testing.T) {
	src, err := NewFileSource(writeFile(t, "plan.yaml", yamlPlan))
	require.NoError(t, err)
	ctx := context.Background()

	inputs, err := LoadOwnerEvaluations(ctx, src, "u1")
	require.NoError(t, err)
	require.Len(t, inputs, 2)
	assert.Equal(t, "g2", inputs[1].Goal.ID)
	assert.Len(t, inputs[1].Expenses, 2)

	allocs, err := Allocations(ctx, src, "u1")
	require.NoError(t, err)
	assert.Equal(t, []goalplan.GoalAllocation{
		{GoalID: "g1", Percentage: 20},
		{GoalID: "g2", Percentage: 10},
	}, allocs)
}
