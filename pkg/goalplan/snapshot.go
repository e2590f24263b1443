package goalplan

import "math"

// BuildSnapshot sums the monthly equivalents of all incomes and expenses.
// AvailableMoney may be zero or negative.
func BuildSnapshot(incomes []IncomeRecord, expenses []ExpenseRecord) FinancialSnapshot {
	var snap FinancialSnapshot
	for _, in := range incomes {
		snap.TotalMonthlyIncome += in.Monthly()
	}
	for _, ex := range expenses {
		snap.TotalMonthlyExpenses += ex.Monthly()
	}
	snap.AvailableMoney = snap.TotalMonthlyIncome - snap.TotalMonthlyExpenses
	return snap
}

// ValidateRecords returns a *RecordError for the first income or expense whose
// amount is not a finite, non-negative number.
func ValidateRecords(incomes []IncomeRecord, expenses []ExpenseRecord) error {
	for i, in := range incomes {
		if reason := badAmount(in.Amount); reason != "" {
			return &RecordError{Kind: "income", Index: i, Name: in.Name, Reason: reason}
		}
	}
	for i, ex := range expenses {
		if reason := badAmount(ex.Amount); reason != "" {
			return &RecordError{Kind: "expense", Index: i, Name: ex.Name, Reason: reason}
		}
	}
	return nil
}

func badAmount(v float64) string {
	switch {
	case math.IsNaN(v), math.IsInf(v, 0):
		return "amount is not a finite number"
	case v < 0:
		return "amount is negative"
	}
	return ""
}

// expensesByTier groups expenses under their normalized tier
func expensesByTier(expenses []ExpenseRecord) map[Tier][]ExpenseRecord {
	grouped := make(map[Tier][]ExpenseRecord, len(AllTiers))
	for _, ex := range expenses {
		t := ex.Tier()
		grouped[t] = append(grouped[t], ex)
	}
	return grouped
}
