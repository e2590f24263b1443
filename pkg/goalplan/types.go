package goalplan

import (
	"math"
	"time"
)

// Tier is an expense priority tier. Tier 1 is the least essential spending and
// the first to be cut; tier 3 is essential.
type Tier int

const (
	TierOne   Tier = 1
	TierTwo   Tier = 2
	TierThree Tier = 3
)

// AllTiers lists the tiers in removal order.
var AllTiers = []Tier{TierOne, TierTwo, TierThree}

// NormalizeTier maps a stored priority onto a Tier. Absent (0) and
// out-of-range values are treated as essential.
func NormalizeTier(priority int) Tier {
	if priority < int(TierOne) || priority > int(TierThree) {
		return TierThree
	}
	return Tier(priority)
}

// Goal represents a savings goal
type Goal struct {
	ID                string  `json:"id"`
	Name              string  `json:"name"`
	Amount            float64 `json:"amount"`
	Deadline          Date    `json:"deadline"`
	CreatedAt         Date    `json:"createdAt"`
	SavingsPercentage float64 `json:"savingsPercentage"`
	OwnerID           string  `json:"ownerId,omitempty"`
}

// Validate checks the goal invariants
func (g Goal) Validate() error {
	var errs []*ValidationError

	if math.IsNaN(g.Amount) || math.IsInf(g.Amount, 0) || g.Amount <= 0 {
		errs = append(errs, &ValidationError{Field: "amount", Message: "must be greater than zero", Value: g.Amount})
	}
	if math.IsNaN(g.SavingsPercentage) || g.SavingsPercentage < 0 || g.SavingsPercentage > 100 {
		errs = append(errs, &ValidationError{Field: "savingsPercentage", Message: "must be between 0 and 100", Value: g.SavingsPercentage})
	}
	if g.Deadline.IsZero() {
		errs = append(errs, &ValidationError{Field: "deadline", Message: "is required"})
	} else if !g.CreatedAt.IsZero() && DaysBetween(g.CreatedAt.Time, g.Deadline.Time) < 0 {
		errs = append(errs, &ValidationError{Field: "deadline", Message: "must not be before createdAt", Value: g.Deadline.String()})
	}

	switch len(errs) {
	case 0:
		return nil
	case 1:
		return errs[0]
	default:
		return &ValidationErrors{Errors: errs}
	}
}

// ExpenseRecord is a recurring expense
type ExpenseRecord struct {
	ID            string  `json:"id,omitempty"`
	Name          string  `json:"name"`
	Amount        float64 `json:"amount"`
	FrequencyDays int     `json:"frequencyDays"`
	PriorityTier  int     `json:"priorityTier"`
}

// Monthly returns the 30-day equivalent of the expense
func (e ExpenseRecord) Monthly() float64 {
	return MonthlyEquivalent(e.Amount, e.FrequencyDays)
}

// Tier returns the normalized priority tier
func (e ExpenseRecord) Tier() Tier {
	return NormalizeTier(e.PriorityTier)
}

// IncomeRecord is a recurring income
type IncomeRecord struct {
	ID            string  `json:"id,omitempty"`
	Name          string  `json:"name"`
	Amount        float64 `json:"amount"`
	FrequencyDays int     `json:"frequencyDays"`
}

// Monthly returns the 30-day equivalent of the income
func (i IncomeRecord) Monthly() float64 {
	return MonthlyEquivalent(i.Amount, i.FrequencyDays)
}

// FinancialSnapshot is the monthly cash position derived from the records
type FinancialSnapshot struct {
	TotalMonthlyIncome   float64 `json:"totalMonthlyIncome"`
	TotalMonthlyExpenses float64 `json:"totalMonthlyExpenses"`
	AvailableMoney       float64 `json:"availableMoney"`
}

// Status is the feasibility verdict of a goal
type Status int

const (
	StatusAchievable            Status = 1
	StatusAdjustableWithChanges Status = 2
	StatusNotAchievable         Status = 3
	StatusDueToday              Status = 4
)

func (s Status) String() string {
	switch s {
	case StatusAchievable:
		return "achievable"
	case StatusAdjustableWithChanges:
		return "adjustable_with_changes"
	case StatusNotAchievable:
		return "not_achievable"
	case StatusDueToday:
		return "due_today"
	default:
		return "unknown"
	}
}

// AffectedExpense is an expense removed by a scenario, in monthly terms
type AffectedExpense struct {
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
	Tier   Tier    `json:"tier"`
}

// FeasibilityReport is the result of evaluating a goal
type FeasibilityReport struct {
	ID                  string            `json:"id"`
	GoalID              string            `json:"goalId"`
	GoalName            string            `json:"goalName,omitempty"`
	Status              Status            `json:"status"`
	Expired             bool              `json:"expired"`
	DaysToDeadline      int               `json:"daysToDeadline"`
	MonthsToDeadline    float64           `json:"monthsToDeadline"`
	Remaining           float64           `json:"remaining"`
	Snapshot            FinancialSnapshot `json:"snapshot"`
	BaseScenario        Scenario          `json:"-"`
	AllScenarios        []Scenario        `json:"-"`
	RecommendedScenario Scenario          `json:"-"`
	Alternatives        []Scenario        `json:"-"`
	Message             string            `json:"message"`
	EvaluatedAt         time.Time         `json:"evaluatedAt"`
}

// GoalProgress combines elapsed time and accumulated savings for a goal
type GoalProgress struct {
	GoalID            string  `json:"goalId"`
	TimeProgress      float64 `json:"timeProgress"`
	FinancialProgress float64 `json:"financialProgress"`
	DaysPassed        int     `json:"daysPassed"`
	DaysRemaining     int     `json:"daysRemaining"`
}

// AllocationSummary describes how a proposed percentage fits among a user's goals
type AllocationSummary struct {
	ExistingPercentageTotal    float64 `json:"existingPercentageTotal"`
	ExistingFixedValueTotal    float64 `json:"existingFixedValueTotal"`
	ProposedNewTotalPercentage float64 `json:"proposedNewTotalPercentage"`
	IsValid                    bool    `json:"isValid"`
	RemainingPercentage        float64 `json:"remainingPercentage"`
	RemainingFixedValue        float64 `json:"remainingFixedValue"`
}
