package goalplan

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// GoalAllocation is the savings percentage one goal claims
type GoalAllocation struct {
	GoalID     string  `json:"goalId"`
	Percentage float64 `json:"percentage"`
}

// AllocationRequest asks whether ProposedPercentage fits next to a user's other goals
type AllocationRequest struct {
	Allocations        []GoalAllocation `json:"allocations"`
	AvailableMoney     float64          `json:"availableMoney"`
	ExcludeGoalID      string           `json:"excludeGoalId,omitempty"`
	ProposedPercentage float64          `json:"proposedPercentage"`
}

// ValidateAllocation sums the other goals' allocations and checks that the
// proposed percentage keeps the total at or below 100%. The goal named by
// ExcludeGoalID (typically the one being edited) is left out of the sum.
func ValidateAllocation(req AllocationRequest) (*AllocationSummary, error) {
	if !isFinite(req.ProposedPercentage) {
		return nil, &ValidationError{Field: "proposedPercentage", Message: "must be a number", Value: req.ProposedPercentage}
	}
	if !isFinite(req.AvailableMoney) {
		return nil, &ValidationError{Field: "availableMoney", Message: "must be a number", Value: req.AvailableMoney}
	}
	for i, a := range req.Allocations {
		if !isFinite(a.Percentage) {
			return nil, &ValidationError{
				Field:   fmt.Sprintf("allocations[%d].percentage", i),
				Message: "must be a number",
				Value:   a.Percentage,
			}
		}
	}

	proposed := decimal.NewFromFloat(req.ProposedPercentage).Round(2)
	if proposed.IsNegative() || proposed.GreaterThan(hundred) {
		return nil, &ValidationError{
			Field:   "proposedPercentage",
			Message: "must be between 0 and 100",
			Value:   req.ProposedPercentage,
		}
	}

	available := decimal.NewFromFloat(req.AvailableMoney)
	existingPct := decimal.Zero
	existingFixed := decimal.Zero
	for _, a := range req.Allocations {
		if req.ExcludeGoalID != "" && a.GoalID == req.ExcludeGoalID {
			continue
		}
		pct := decimal.NewFromFloat(a.Percentage)
		existingPct = existingPct.Add(pct)
		existingFixed = existingFixed.Add(pct.Div(hundred).Mul(available))
	}

	newTotal := existingPct.Add(proposed)
	remaining := hundred.Sub(existingPct)
	if remaining.IsNegative() {
		remaining = decimal.Zero
	}

	return &AllocationSummary{
		ExistingPercentageTotal:    existingPct.InexactFloat64(),
		ExistingFixedValueTotal:    existingFixed.Round(2).InexactFloat64(),
		ProposedNewTotalPercentage: newTotal.InexactFloat64(),
		IsValid:                    newTotal.LessThanOrEqual(hundred),
		RemainingPercentage:        remaining.InexactFloat64(),
		RemainingFixedValue:        remaining.Div(hundred).Mul(available).Round(2).InexactFloat64(),
	}, nil
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
