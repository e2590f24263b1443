package source

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/eshaffer321/goalplan-go/pkg/goalplan"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Plan is the on-disk form of one owner's goals and recurring records
type Plan struct {
	Owner    string        `json:"owner" yaml:"owner" toml:"owner"`
	Goals    []PlanGoal    `json:"goals" yaml:"goals" toml:"goals"`
	Incomes  []PlanIncome  `json:"incomes" yaml:"incomes" toml:"incomes"`
	Expenses []PlanExpense `json:"expenses" yaml:"expenses" toml:"expenses"`
}

// PlanGoal is a goal entry in a plan file
type PlanGoal struct {
	ID                string        `json:"id" yaml:"id" toml:"id"`
	Name              string        `json:"name" yaml:"name" toml:"name"`
	Amount            float64       `json:"amount" yaml:"amount" toml:"amount"`
	Deadline          goalplan.Date `json:"deadline" yaml:"deadline" toml:"deadline"`
	CreatedAt         goalplan.Date `json:"created_at" yaml:"created_at" toml:"created_at"`
	SavingsPercentage float64       `json:"savings_percentage" yaml:"savings_percentage" toml:"savings_percentage"`
}

// PlanIncome is an income entry in a plan file
type PlanIncome struct {
	ID            string  `json:"id,omitempty" yaml:"id,omitempty" toml:"id,omitempty"`
	Name          string  `json:"name" yaml:"name" toml:"name"`
	Amount        float64 `json:"amount" yaml:"amount" toml:"amount"`
	FrequencyDays int     `json:"frequency_days,omitempty" yaml:"frequency_days,omitempty" toml:"frequency_days,omitempty"`
	Frequency     string  `json:"frequency,omitempty" yaml:"frequency,omitempty" toml:"frequency,omitempty"`
}

// PlanExpense is an expense entry in a plan file
type PlanExpense struct {
	ID            string  `json:"id,omitempty" yaml:"id,omitempty" toml:"id,omitempty"`
	Name          string  `json:"name" yaml:"name" toml:"name"`
	Amount        float64 `json:"amount" yaml:"amount" toml:"amount"`
	FrequencyDays int     `json:"frequency_days,omitempty" yaml:"frequency_days,omitempty" toml:"frequency_days,omitempty"`
	Frequency     string  `json:"frequency,omitempty" yaml:"frequency,omitempty" toml:"frequency,omitempty"`
	PriorityTier  int     `json:"priority_tier,omitempty" yaml:"priority_tier,omitempty" toml:"priority_tier,omitempty"`
}

// namedFrequencies maps frequency names to their period in days
var namedFrequencies = map[string]int{
	"daily":     1,
	"weekly":    7,
	"biweekly":  14,
	"monthly":   30,
	"quarterly": 90,
	"yearly":    365,
	"annual":    365,
}

// FrequencyDays resolves an explicit day count or a named frequency.
// Zero days with no name is left as zero so the engine applies its default.
func FrequencyDays(days int, named string) (int, error) {
	if days != 0 || named == "" {
		return days, nil
	}
	d, ok := namedFrequencies[strings.ToLower(strings.TrimSpace(named))]
	if !ok {
		return 0, fmt.Errorf("unknown frequency %q", named)
	}
	return d, nil
}

// LoadPlan reads a TOML, YAML or JSON plan file, chosen by extension
func LoadPlan(path string) (*Plan, error) {
	ext := strings.ToLower(filepath.Ext(path))

	info, err := os.Stat(path)
	if err != nil {
		return nil, errors.Wrap(err, "error accessing plan file")
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s is a directory, not a file", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "error reading plan file")
	}

	var plan Plan
	switch ext {
	case ".toml":
		if _, err := toml.Decode(string(data), &plan); err != nil {
			return nil, errors.Wrap(err, "error parsing TOML plan")
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &plan); err != nil {
			return nil, errors.Wrap(err, "error parsing YAML plan")
		}
	case ".json":
		if err := json.Unmarshal(data, &plan); err != nil {
			return nil, errors.Wrap(err, "error parsing JSON plan")
		}
	default:
		return nil, fmt.Errorf("unsupported plan file format: %s", ext)
	}

	// Goals without a creation date count from when the plan was last written.
	created := goalplan.Date{Time: info.ModTime().UTC().Truncate(24 * time.Hour)}
	for i := range plan.Goals {
		if plan.Goals[i].CreatedAt.IsZero() {
			plan.Goals[i].CreatedAt = created
		}
	}

	return &plan, nil
}

// WritePlan writes a plan file in the format given by its extension
func WritePlan(path string, plan *Plan) error {
	var buf bytes.Buffer

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		if err := toml.NewEncoder(&buf).Encode(plan); err != nil {
			return errors.Wrap(err, "error encoding TOML plan")
		}
	case ".yaml", ".yml":
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(plan); err != nil {
			return errors.Wrap(err, "error encoding YAML plan")
		}
		if err := enc.Close(); err != nil {
			return errors.Wrap(err, "error encoding YAML plan")
		}
	case ".json":
		enc := json.NewEncoder(&buf)
		enc.SetIndent("", "  ")
		if err := enc.Encode(plan); err != nil {
			return errors.Wrap(err, "error encoding JSON plan")
		}
	default:
		return fmt.Errorf("unsupported plan file format: %s", ext)
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return errors.Wrap(err, "creating plan directory")
		}
	}
	return os.WriteFile(path, buf.Bytes(), 0o600)
}

// FileSource serves a plan file loaded into memory
type FileSource struct {
	plan *Plan
}

// NewFileSource loads the plan file at path
func NewFileSource(path string) (*FileSource, error) {
	plan, err := LoadPlan(path)
	if err != nil {
		return nil, err
	}
	return NewPlanSource(plan), nil
}

// NewPlanSource serves an already loaded plan
func NewPlanSource(plan *Plan) *FileSource {
	return &FileSource{plan: plan}
}

// Plan returns the underlying plan
func (s *FileSource) Plan() *Plan {
	return s.plan
}

// Goal returns the goal with the given ID
func (s *FileSource) Goal(_ context.Context, id string) (goalplan.Goal, error) {
	for _, g := range s.plan.Goals {
		if g.ID == id {
			return s.toGoal(g), nil
		}
	}
	return goalplan.Goal{}, errors.Wrap(ErrGoalNotFound, id)
}

// Goals returns every goal in the plan. A non-empty ownerID that does not
// match the plan owner yields no goals.
func (s *FileSource) Goals(_ context.Context, ownerID string) ([]goalplan.Goal, error) {
	if !s.owns(ownerID) {
		return nil, nil
	}
	out := make([]goalplan.Goal, 0, len(s.plan.Goals))
	for _, g := range s.plan.Goals {
		out = append(out, s.toGoal(g))
	}
	return out, nil
}

// Incomes returns the plan's incomes
func (s *FileSource) Incomes(_ context.Context, ownerID string) ([]goalplan.IncomeRecord, error) {
	if !s.owns(ownerID) {
		return nil, nil
	}
	out := make([]goalplan.IncomeRecord, 0, len(s.plan.Incomes))
	for _, in := range s.plan.Incomes {
		days, err := FrequencyDays(in.FrequencyDays, in.Frequency)
		if err != nil {
			return nil, errors.Wrapf(err, "income %q", in.Name)
		}
		out = append(out, goalplan.IncomeRecord{ID: in.ID, Name: in.Name, Amount: in.Amount, FrequencyDays: days})
	}
	return out, nil
}

// Expenses returns the plan's expenses
func (s *FileSource) Expenses(_ context.Context, ownerID string) ([]goalplan.ExpenseRecord, error) {
	if !s.owns(ownerID) {
		return nil, nil
	}
	out := make([]goalplan.ExpenseRecord, 0, len(s.plan.Expenses))
	for _, ex := range s.plan.Expenses {
		days, err := FrequencyDays(ex.FrequencyDays, ex.Frequency)
		if err != nil {
			return nil, errors.Wrapf(err, "expense %q", ex.Name)
		}
		out = append(out, goalplan.ExpenseRecord{
			ID:            ex.ID,
			Name:          ex.Name,
			Amount:        ex.Amount,
			FrequencyDays: days,
			PriorityTier:  ex.PriorityTier,
		})
	}
	return out, nil
}

func (s *FileSource) owns(ownerID string) bool {
	return ownerID == "" || ownerID == s.plan.Owner
}

func (s *FileSource) toGoal(g PlanGoal) goalplan.Goal {
	return goalplan.Goal{
		ID:                g.ID,
		Name:              g.Name,
		Amount:            g.Amount,
		Deadline:          g.Deadline,
		CreatedAt:         g.CreatedAt,
		SavingsPercentage: g.SavingsPercentage,
		OwnerID:           s.plan.Owner,
	}
}

// BuildPlan collects one owner's goals and records from src into a plan.
// An empty ownerID is accepted only when every goal has the same owner.
func BuildPlan(ctx context.Context, src Source, ownerID string) (*Plan, error) {
	goals, err := src.Goals(ctx, ownerID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load goals")
	}
	if ownerID == "" {
		for _, g := range goals {
			if ownerID != "" && g.OwnerID != ownerID {
				return nil, fmt.Errorf("goals belong to several owners (%s, %s), choose one", ownerID, g.OwnerID)
			}
			ownerID = g.OwnerID
		}
	}

	incomes, err := src.Incomes(ctx, ownerID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load incomes")
	}
	expenses, err := src.Expenses(ctx, ownerID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load expenses")
	}

	plan := &Plan{
		Owner:    ownerID,
		Goals:    make([]PlanGoal, 0, len(goals)),
		Incomes:  make([]PlanIncome, 0, len(incomes)),
		Expenses: make([]PlanExpense, 0, len(expenses)),
	}
	for _, g := range goals {
		plan.Goals = append(plan.Goals, PlanGoal{
			ID:                g.ID,
			Name:              g.Name,
			Amount:            g.Amount,
			Deadline:          g.Deadline,
			CreatedAt:         g.CreatedAt,
			SavingsPercentage: g.SavingsPercentage,
		})
	}
	for _, in := range incomes {
		plan.Incomes = append(plan.Incomes, PlanIncome{ID: in.ID, Name: in.Name, Amount: in.Amount, FrequencyDays: in.FrequencyDays})
	}
	for _, ex := range expenses {
		plan.Expenses = append(plan.Expenses, PlanExpense{
			ID:            ex.ID,
			Name:          ex.Name,
			Amount:        ex.Amount,
			FrequencyDays: ex.FrequencyDays,
			PriorityTier:  ex.PriorityTier,
		})
	}
	return plan, nil
}
