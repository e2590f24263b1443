package goalplan

// DaysPerMonth is the fixed month length every recurring amount is normalized to.
const DaysPerMonth = 30

// MonthlyEquivalent converts an amount recurring every frequencyDays into its
// 30-day equivalent. A missing or non-positive frequency is read as monthly.
func MonthlyEquivalent(amount float64, frequencyDays int) float64 {
	if frequencyDays <= 0 || frequencyDays == DaysPerMonth {
		return amount
	}
	return amount * DaysPerMonth / float64(frequencyDays)
}
