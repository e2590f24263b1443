package source

import (
	"context"
	"errors"
	"math"
	"path/filepath"
	"testing"

	"github.com/eshaffer321/goalplan-go/pkg/goalplan"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockSource is a mock implementation of the Source interface
type MockSource struct {
	mock.Mock
}

func (m *MockSource) Goal(ctx context.Context, id string) (goalplan.Goal, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(goalplan.Goal), args.Error(1)
}

func (m *MockSource) Goals(ctx context.Context, ownerID string) ([]goalplan.Goal, error) {
	args := m.Called(ctx, ownerID)
	goals, _ := args.Get(0).([]goalplan.Goal)
	return goals, args.Error(1)
}

func (m *MockSource) Incomes(ctx context.Context, ownerID string) ([]goalplan.IncomeRecord, error) {
	args := m.Called(ctx, ownerID)
	incomes, _ := args.Get(0).([]goalplan.IncomeRecord)
	return incomes, args.Error(1)
}

func (m *MockSource) Expenses(ctx context.Context, ownerID string) ([]goalplan.ExpenseRecord, error) {
	args := m.Called(ctx, ownerID)
	expenses, _ := args.Get(0).([]goalplan.ExpenseRecord)
	return expenses, args.Error(1)
}

func TestLoadOwnerEvaluations_ReadsRecordsOncePerOwner(t *testing.T) {
	ctx := context.Background()
	src := new(MockSource)

	src.On("Goals", ctx, "").Return([]goalplan.Goal{
		{ID: "g1", OwnerID: "u1"},
		{ID: "g2", OwnerID: "u2"},
		{ID: "g3", OwnerID: "u1"},
	}, nil)
	src.On("Incomes", ctx, "u1").Return([]goalplan.IncomeRecord{{Name: "Salary", Amount: 2000}}, nil).Once()
	src.On("Expenses", ctx, "u1").Return([]goalplan.ExpenseRecord{{Name: "Rent", Amount: 800}}, nil).Once()
	src.On("Incomes", ctx, "u2").Return([]goalplan.IncomeRecord{{Name: "Wages", Amount: 1500}}, nil).Once()
	src.On("Expenses", ctx, "u2").Return(nil, nil).Once()

	inputs, err := LoadOwnerEvaluations(ctx, src, "")
	require.NoError(t, err)
	require.Len(t, inputs, 3)

	assert.Equal(t, "g1", inputs[0].Goal.ID)
	assert.Equal(t, "Salary", inputs[0].Incomes[0].Name)
	assert.Equal(t, "Wages", inputs[1].Incomes[0].Name)
	assert.Empty(t, inputs[1].Expenses)
	assert.Equal(t, "g3", inputs[2].Goal.ID)
	assert.Equal(t, "Rent", inputs[2].Expenses[0].Name)

	src.AssertExpectations(t)
}

func TestLoadEvaluation_WrapsErrors(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("connection reset")

	tests := []struct {
		name    string
		setup   func(m *MockSource)
		wantErr string
	}{
		{
			name: "goal",
			setup: func(m *MockSource) {
				m.On("Goal", ctx, "g1").Return(goalplan.Goal{}, boom)
			},
			wantErr: "failed to load goal g1",
		},
		{
			name: "incomes",
			setup: func(m *MockSource) {
				m.On("Goal", ctx, "g1").Return(goalplan.Goal{ID: "g1", OwnerID: "u1"}, nil)
				m.On("Incomes", ctx, "u1").Return(nil, boom)
			},
			wantErr: "failed to load incomes",
		},
		{
			name: "expenses",
			setup: func(m *MockSource) {
				m.On("Goal", ctx, "g1").Return(goalplan.Goal{ID: "g1", OwnerID: "u1"}, nil)
				m.On("Incomes", ctx, "u1").Return(nil, nil)
				m.On("Expenses", ctx, "u1").Return(nil, boom)
			},
			wantErr: "failed to load expenses",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := new(MockSource)
			tt.setup(src)

			_, err := LoadEvaluation(ctx, src, "g1")
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
			assert.ErrorIs(t, err, boom)
			src.AssertExpectations(t)
		})
	}
}

func TestAllocations_Error(t *testing.T) {
	ctx := context.Background()
	src := new(MockSource)
	src.On("Goals", ctx, "u1").Return(nil, errors.New("offline"))

	_, err := Allocations(ctx, src, "u1")
	assert.ErrorContains(t, err, "failed to load goals: offline")
}

func TestAvailableMoney(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name      string
		incomes   []goalplan.IncomeRecord
		expenses  []goalplan.ExpenseRecord
		want      float64
		wantErrIs error
	}{
		{
			name:     "income minus expenses",
			incomes:  []goalplan.IncomeRecord{{Name: "Salary", Amount: 2000}},
			expenses: []goalplan.ExpenseRecord{{Name: "Rent", Amount: 800}},
			want:     1200,
		},
		{
			name:     "negative available money",
			incomes:  []goalplan.IncomeRecord{{Name: "Salary", Amount: 500}},
			expenses: []goalplan.ExpenseRecord{{Name: "Rent", Amount: 800}},
			want:     -300,
		},
		{
			name:      "NaN income",
			incomes:   []goalplan.IncomeRecord{{Name: "Salary", Amount: math.NaN()}},
			wantErrIs: goalplan.ErrMalformedRecord,
		},
		{
			name:      "infinite expense",
			incomes:   []goalplan.IncomeRecord{{Name: "Salary", Amount: 2000}},
			expenses:  []goalplan.ExpenseRecord{{Name: "Rent", Amount: math.Inf(1)}},
			wantErrIs: goalplan.ErrMalformedRecord,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := new(MockSource)
			src.On("Incomes", ctx, "u1").Return(tt.incomes, nil)
			src.On("Expenses", ctx, "u1").Return(tt.expenses, nil)

			got, err := AvailableMoney(ctx, src, "u1")
			if tt.wantErrIs != nil {
				assert.ErrorIs(t, err, tt.wantErrIs)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBuildPlan(t *testing.T) {
	ctx := context.Background()
	src := new(MockSource)
	src.On("Goals", ctx, "").Return([]goalplan.Goal{{
		ID:                "g1",
		Name:              "Bike",
		Amount:            800,
		Deadline:          goalplan.NewDate(2027, 3, 1),
		CreatedAt:         goalplan.NewDate(2026, 9, 1),
		SavingsPercentage: 15,
		OwnerID:           "u1",
	}}, nil)
	src.On("Incomes", ctx, "u1").Return([]goalplan.IncomeRecord{{Name: "Salary", Amount: 1600, FrequencyDays: 14}}, nil)
	src.On("Expenses", ctx, "u1").Return([]goalplan.ExpenseRecord{{Name: "Coffee", Amount: 3, FrequencyDays: 1, PriorityTier: 1}}, nil)

	plan, err := BuildPlan(ctx, src, "")
	require.NoError(t, err)
	assert.Equal(t, "u1", plan.Owner)
	require.Len(t, plan.Goals, 1)
	assert.Equal(t, 15.0, plan.Goals[0].SavingsPercentage)

	path := filepath.Join(t.TempDir(), "plan.yaml")
	require.NoError(t, WritePlan(path, plan))

	loaded, err := NewFileSource(path)
	require.NoError(t, err)
	in, err := LoadEvaluation(ctx, loaded, "g1")
	require.NoError(t, err)
	assert.Equal(t, "u1", in.Goal.OwnerID)
	assert.True(t, in.Goal.CreatedAt.Equal(goalplan.NewDate(2026, 9, 1).Time))
	assert.Equal(t, 14, in.Incomes[0].FrequencyDays)
	assert.Equal(t, 1, in.Expenses[0].PriorityTier)
	src.AssertExpectations(t)
}

func TestBuildPlan_SeveralOwners(t *testing.T) {
	ctx := context.Background()
	src := new(MockSource)
	src.On("Goals", ctx, "").Return([]goalplan.Goal{
		{ID: "g1", OwnerID: "u1"},
		{ID: "g2", OwnerID: "u2"},
	}, nil)

	_, err := BuildPlan(ctx, src, "")
	assert.ErrorContains(t, err, "several owners")
	src.AssertNotCalled(t, "Incomes", ctx, "u1")
}
