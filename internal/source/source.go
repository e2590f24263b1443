// Package source loads goals and recurring records for evaluation.
package source

import (
	"context"

	"github.com/eshaffer321/goalplan-go/pkg/goalplan"
	"github.com/pkg/errors"
)

// ErrGoalNotFound is returned when a source has no goal with the requested ID
var ErrGoalNotFound = errors.New("goal not found")

// Source supplies goals and the owner's recurring records. The engine only
// reads from it.
type Source interface {
	Goal(ctx context.Context, id string) (goalplan.Goal, error)
	Goals(ctx context.Context, ownerID string) ([]goalplan.Goal, error)
	Incomes(ctx context.Context, ownerID string) ([]goalplan.IncomeRecord, error)
	Expenses(ctx context.Context, ownerID string) ([]goalplan.ExpenseRecord, error)
}

// LoadEvaluation gathers a goal and its owner's records into an evaluation input
func LoadEvaluation(ctx context.Context, src Source, goalID string) (goalplan.EvaluateInput, error) {
	goal, err := src.Goal(ctx, goalID)
	if err != nil {
		return goalplan.EvaluateInput{}, errors.Wrapf(err, "failed to load goal %s", goalID)
	}
	return loadRecords(ctx, src, goal)
}

// LoadOwnerEvaluations gathers every goal of an owner. Records are read once
// per owner, so an empty ownerID covering several owners still pairs each goal
// with its own owner's records.
func LoadOwnerEvaluations(ctx context.Context, src Source, ownerID string) ([]goalplan.EvaluateInput, error) {
	goals, err := src.Goals(ctx, ownerID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load goals")
	}
	if len(goals) == 0 {
		return nil, nil
	}

	byOwner := make(map[string]goalplan.EvaluateInput)
	inputs := make([]goalplan.EvaluateInput, 0, len(goals))
	for _, g := range goals {
		in, ok := byOwner[g.OwnerID]
		if !ok {
			in, err = loadRecords(ctx, src, g)
			if err != nil {
				return nil, err
			}
			byOwner[g.OwnerID] = in
		}
		in.Goal = g
		inputs = append(inputs, in)
	}
	return inputs, nil
}

// Allocations lists the savings percentage of every goal of an owner
func Allocations(ctx context.Context, src Source, ownerID string) ([]goalplan.GoalAllocation, error) {
	goals, err := src.Goals(ctx, ownerID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load goals")
	}

	out := make([]goalplan.GoalAllocation, 0, len(goals))
	for _, g := range goals {
		out = append(out, goalplan.GoalAllocation{GoalID: g.ID, Percentage: g.SavingsPercentage})
	}
	return out, nil
}

// AvailableMoney computes an owner's monthly available money. Malformed
// records are rejected before they reach the calculation.
func AvailableMoney(ctx context.Context, src Source, ownerID string) (float64, error) {
	incomes, err := src.Incomes(ctx, ownerID)
	if err != nil {
		return 0, errors.Wrap(err, "failed to load incomes")
	}
	expenses, err := src.Expenses(ctx, ownerID)
	if err != nil {
		return 0, errors.Wrap(err, "failed to load expenses")
	}
	if err := goalplan.ValidateRecords(incomes, expenses); err != nil {
		return 0, err
	}
	return goalplan.BuildSnapshot(incomes, expenses).AvailableMoney, nil
}

func loadRecords(ctx context.Context, src Source, goal goalplan.Goal) (goalplan.EvaluateInput, error) {
	incomes, err := src.Incomes(ctx, goal.OwnerID)
	if err != nil {
		return goalplan.EvaluateInput{}, errors.Wrap(err, "failed to load incomes")
	}

	expenses, err := src.Expenses(ctx, goal.OwnerID)
	if err != nil {
		return goalplan.EvaluateInput{}, errors.Wrap(err, "failed to load expenses")
	}

	return goalplan.EvaluateInput{
		Goal:     goal,
		Incomes:  incomes,
		Expenses: expenses,
	}, nil
}
