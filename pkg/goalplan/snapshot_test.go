package goalplan

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildSnapshot(t *testing.T) {
	incomes := []IncomeRecord{
		{Name: "Salary", Amount: 1800, FrequencyDays: 30},
		{Name: "Side job", Amount: 70, FrequencyDays: 7},
		{Name: "Dividends", Amount: 100},
	}
	expenses := []ExpenseRecord{
		monthly("Rent", 900, 3),
		{Name: "Groceries", Amount: 35, FrequencyDays: 7, PriorityTier: 2},
		{Name: "Insurance", Amount: 730, FrequencyDays: 365},
	}

	snap := BuildSnapshot(incomes, expenses)

	assert.InDelta(t, 2200, snap.TotalMonthlyIncome, 1e-9)
	assert.InDelta(t, 1110, snap.TotalMonthlyExpenses, 1e-9)
	assert.InDelta(t, 1090, snap.AvailableMoney, 1e-9)
}

func TestBuildSnapshot_NegativeAvailable(t *testing.T) {
	snap := BuildSnapshot(
		[]IncomeRecord{{Name: "Salary", Amount: 500, FrequencyDays: 30}},
		[]ExpenseRecord{monthly("Rent", 900, 3)},
	)
	assert.InDelta(t, -400, snap.AvailableMoney, 1e-9)
}

func TestBuildSnapshot_Empty(t *testing.T) {
	assert.Equal(t, FinancialSnapshot{}, BuildSnapshot(nil, nil))
}

func TestValidateRecords(t *testing.T) {
	tests := []struct {
		name     string
		incomes  []IncomeRecord
		expenses []ExpenseRecord
		wantKind string
	}{
		{name: "valid", incomes: []IncomeRecord{{Amount: 10}}, expenses: []ExpenseRecord{{Amount: 0}}},
		{name: "nan income", incomes: []IncomeRecord{{Name: "x", Amount: math.NaN()}}, wantKind: "income"},
		{name: "infinite expense", expenses: []ExpenseRecord{{Amount: 1}, {Name: "y", Amount: math.Inf(1)}}, wantKind: "expense"},
		{name: "negative expense", expenses: []ExpenseRecord{{Name: "z", Amount: -5}}, wantKind: "expense"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRecords(tt.incomes, tt.expenses)
			if tt.wantKind == "" {
				assert.NoError(t, err)
				return
			}

			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrMalformedRecord))

			var recErr *RecordError
			require.True(t, errors.As(err, &recErr))
			assert.Equal(t, tt.wantKind, recErr.Kind)
		})
	}
}
