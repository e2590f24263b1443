// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/eshaffer321/goalplan-go/pkg/goalplan"
)

// FormatMoney formats an amount with comma separators and two decimals.
// e.g., 1234.5 -> "1,234.50", -20 -> "-20.00"
func FormatMoney(amount float64) string {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return "n/a"
	}
	cents := int64(math.Round(math.Abs(amount) * 100))
	s := FormatNumber(cents/100) + fmt.Sprintf(".%02d", cents%100)
	if amount < 0 && cents != 0 {
		return "-" + s
	}
	return s
}

// FormatNumber adds comma separators to an integer.
// e.g., 1234567 -> "1,234,567"
func FormatNumber(n int64) string {
	if n < 0 {
		return "-" + FormatNumber(-n)
	}

	s := strconv.FormatInt(n, 10)
	if len(s) <= 3 {
		return s
	}

	var result strings.Builder
	remainder := len(s) % 3
	if remainder > 0 {
		result.WriteString(s[:remainder])
	}
	for i := remainder; i < len(s); i += 3 {
		if result.Len() > 0 {
			result.WriteByte(',')
		}
		result.WriteString(s[i : i+3])
	}
	return result.String()
}

// FormatPercent formats a 0-100 value as a percentage string.
func FormatPercent(pct float64) string {
	return strconv.FormatFloat(math.Round(pct*100)/100, 'f', -1, 64) + "%"
}

// FormatMonths formats a fractional month count.
func FormatMonths(months float64) string {
	if months == 1 {
		return "1 month"
	}
	return fmt.Sprintf("%.1f months", months)
}

// FormatDays formats a signed day count relative to a deadline.
func FormatDays(days int) string {
	switch {
	case days == 0:
		return "today"
	case days == 1:
		return "in 1 day"
	case days > 0:
		return fmt.Sprintf("in %d days", days)
	case days == -1:
		return "1 day ago"
	default:
		return fmt.Sprintf("%d days ago", -days)
	}
}

// StatusLabel returns the human label of a feasibility status.
func StatusLabel(s goalplan.Status) string {
	switch s {
	case goalplan.StatusAchievable:
		return "Achievable"
	case goalplan.StatusAdjustableWithChanges:
		return "Achievable with changes"
	case goalplan.StatusNotAchievable:
		return "Not achievable"
	case goalplan.StatusDueToday:
		return "Due today"
	default:
		return "Unknown"
	}
}

// ScenarioLabel describes a scenario in a few words.
func ScenarioLabel(s goalplan.Scenario) string {
	switch v := s.(type) {
	case goalplan.Current:
		return fmt.Sprintf("Keep saving %s", FormatPercent(v.Percentage))
	case goalplan.PercentageAdjustment:
		return fmt.Sprintf("Save %s", FormatPercent(v.NewPercentage))
	case goalplan.ExpenseRemoval:
		return fmt.Sprintf("Remove tier %d expenses", v.Tier)
	case goalplan.MultiTierRemoval:
		parts := make([]string, len(v.Tiers))
		for i, t := range v.Tiers {
			parts[i] = strconv.Itoa(int(t))
		}
		return fmt.Sprintf("Remove tiers %s", strings.Join(parts, " + "))
	case goalplan.Combined:
		return fmt.Sprintf("Remove tier %d, save %s", v.Tier, FormatPercent(v.NewPercentage))
	case goalplan.ExtendDeadline:
		return fmt.Sprintf("Move deadline to %s", v.NewDeadline.Format("2006-01-02"))
	case nil:
		return "None"
	default:
		return s.Kind().String()
	}
}
