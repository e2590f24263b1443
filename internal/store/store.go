// Package store persists goals, recurring records and evaluation history in SQLite.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/eshaffer321/goalplan-go/internal/source"
	"github.com/eshaffer321/goalplan-go/pkg/goalplan"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	_ "modernc.org/sqlite" // register sqlite driver
)

const dateLayout = "2006-01-02"

// Store is a SQLite-backed record source
type Store struct {
	db *sql.DB
}

var _ source.Source = (*Store)(nil)

// Open opens or creates the database at the given path
func Open(dbPath string) (*Store, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, errors.Wrap(err, "creating database dir")
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=synchronous(normal)&_pragma=foreign_keys(on)")
	if err != nil {
		return nil, errors.Wrap(err, "opening database")
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "creating schema")
	}

	return &Store{db: db}, nil
}

// Close closes the database
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveGoal inserts or replaces a goal. A goal without an ID gets a new one.
func (s *Store) SaveGoal(ctx context.Context, goal goalplan.Goal) (goalplan.Goal, error) {
	if goal.ID == "" {
		goal.ID = uuid.NewString()
	}
	if goal.CreatedAt.IsZero() {
		goal.CreatedAt = goalplan.Date{Time: time.Now().UTC()}
	}

	_, err := s.db.ExecContext(ctx, `INSERT OR REPLACE INTO goals
		(id, owner_id, name, amount, deadline, created_at, savings_percentage)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		goal.ID, goal.OwnerID, goal.Name, goal.Amount,
		goal.Deadline.Format(dateLayout), goal.CreatedAt.Format(dateLayout), goal.SavingsPercentage,
	)
	if err != nil {
		return goalplan.Goal{}, errors.Wrap(err, "saving goal")
	}
	return goal, nil
}

// UpdateSavingsPercentage changes the allocation of one goal
func (s *Store) UpdateSavingsPercentage(ctx context.Context, goalID string, pct float64) error {
	res, err := s.db.ExecContext(ctx, "UPDATE goals SET savings_percentage = ? WHERE id = ?", pct, goalID)
	if err != nil {
		return errors.Wrap(err, "updating savings percentage")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return errors.Wrap(source.ErrGoalNotFound, goalID)
	}
	return nil
}

// DeleteGoal removes a goal and its evaluation history
func (s *Store) DeleteGoal(ctx context.Context, goalID string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, "DELETE FROM evaluations WHERE goal_id = ?", goalID); err != nil {
		return errors.Wrap(err, "deleting evaluations")
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM goals WHERE id = ?", goalID); err != nil {
		return errors.Wrap(err, "deleting goal")
	}
	return tx.Commit()
}

// SaveIncome inserts or replaces an income of an owner
func (s *Store) SaveIncome(ctx context.Context, ownerID string, in goalplan.IncomeRecord) (goalplan.IncomeRecord, error) {
	if in.ID == "" {
		in.ID = uuid.NewString()
	}
	_, err := s.db.ExecContext(ctx, `INSERT OR REPLACE INTO incomes
		(id, owner_id, name, amount, frequency_days) VALUES (?, ?, ?, ?, ?)`,
		in.ID, ownerID, in.Name, in.Amount, in.FrequencyDays,
	)
	if err != nil {
		return goalplan.IncomeRecord{}, errors.Wrap(err, "saving income")
	}
	return in, nil
}

// SaveExpense inserts or replaces an expense of an owner
func (s *Store) SaveExpense(ctx context.Context, ownerID string, ex goalplan.ExpenseRecord) (goalplan.ExpenseRecord, error) {
	if ex.ID == "" {
		ex.ID = uuid.NewString()
	}
	_, err := s.db.ExecContext(ctx, `INSERT OR REPLACE INTO expenses
		(id, owner_id, name, amount, frequency_days, priority_tier) VALUES (?, ?, ?, ?, ?, ?)`,
		ex.ID, ownerID, ex.Name, ex.Amount, ex.FrequencyDays, ex.PriorityTier,
	)
	if err != nil {
		return goalplan.ExpenseRecord{}, errors.Wrap(err, "saving expense")
	}
	return ex, nil
}

// ImportSummary counts what an import wrote
type ImportSummary struct {
	Goals    int
	Incomes  int
	Expenses int
}

// Import replaces an owner's goals, incomes and expenses in one transaction.
// Evaluation history of goals that are kept is preserved.
func (s *Store) Import(ctx context.Context, ownerID string, goals []goalplan.Goal, incomes []goalplan.IncomeRecord, expenses []goalplan.ExpenseRecord) (ImportSummary, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return ImportSummary{}, err
	}
	defer func() { _ = tx.Rollback() }()

	for _, table := range []string{"goals", "incomes", "expenses"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table+" WHERE owner_id = ?", ownerID); err != nil {
			return ImportSummary{}, errors.Wrapf(err, "clearing %s", table)
		}
	}

	for _, g := range goals {
		if g.ID == "" {
			g.ID = uuid.NewString()
		}
		_, err := tx.ExecContext(ctx, `INSERT OR REPLACE INTO goals
			(id, owner_id, name, amount, deadline, created_at, savings_percentage)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			g.ID, ownerID, g.Name, g.Amount,
			g.Deadline.Format(dateLayout), g.CreatedAt.Format(dateLayout), g.SavingsPercentage,
		)
		if err != nil {
			return ImportSummary{}, errors.Wrapf(err, "importing goal %q", g.Name)
		}
	}

	for _, in := range incomes {
		if in.ID == "" {
			in.ID = uuid.NewString()
		}
		_, err := tx.ExecContext(ctx, `INSERT OR REPLACE INTO incomes
			(id, owner_id, name, amount, frequency_days) VALUES (?, ?, ?, ?, ?)`,
			in.ID, ownerID, in.Name, in.Amount, in.FrequencyDays,
		)
		if err != nil {
			return ImportSummary{}, errors.Wrapf(err, "importing income %q", in.Name)
		}
	}

	for _, ex := range expenses {
		if ex.ID == "" {
			ex.ID = uuid.NewString()
		}
		_, err := tx.ExecContext(ctx, `INSERT OR REPLACE INTO expenses
			(id, owner_id, name, amount, frequency_days, priority_tier) VALUES (?, ?, ?, ?, ?, ?)`,
			ex.ID, ownerID, ex.Name, ex.Amount, ex.FrequencyDays, ex.PriorityTier,
		)
		if err != nil {
			return ImportSummary{}, errors.Wrapf(err, "importing expense %q", ex.Name)
		}
	}

	if err := tx.Commit(); err != nil {
		return ImportSummary{}, err
	}
	return ImportSummary{Goals: len(goals), Incomes: len(incomes), Expenses: len(expenses)}, nil
}

// Goal returns one goal
func (s *Store) Goal(ctx context.Context, id string) (goalplan.Goal, error) {
	row := s.db.QueryRowContext(ctx, `SELECT
		id, owner_id, name, amount, deadline, created_at, savings_percentage
		FROM goals WHERE id = ?`, id)

	goal, err := scanGoal(row)
	if errors.Is(err, sql.ErrNoRows) {
		return goalplan.Goal{}, errors.Wrap(source.ErrGoalNotFound, id)
	}
	return goal, err
}

// Goals returns the goals of an owner ordered by deadline. An empty owner returns every goal.
func (s *Store) Goals(ctx context.Context, ownerID string) ([]goalplan.Goal, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT
		id, owner_id, name, amount, deadline, created_at, savings_percentage
		FROM goals WHERE ? = '' OR owner_id = ? ORDER BY deadline, name`, ownerID, ownerID)
	if err != nil {
		return nil, errors.Wrap(err, "querying goals")
	}
	defer func() { _ = rows.Close() }()

	var goals []goalplan.Goal
	for rows.Next() {
		g, err := scanGoal(rows)
		if err != nil {
			return nil, err
		}
		goals = append(goals, g)
	}
	return goals, rows.Err()
}

// Incomes returns the incomes of an owner
func (s *Store) Incomes(ctx context.Context, ownerID string) ([]goalplan.IncomeRecord, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name, amount, frequency_days
		FROM incomes WHERE owner_id = ? ORDER BY rowid`, ownerID)
	if err != nil {
		return nil, errors.Wrap(err, "querying incomes")
	}
	defer func() { _ = rows.Close() }()

	var incomes []goalplan.IncomeRecord
	for rows.Next() {
		var in goalplan.IncomeRecord
		if err := rows.Scan(&in.ID, &in.Name, &in.Amount, &in.FrequencyDays); err != nil {
			return nil, err
		}
		incomes = append(incomes, in)
	}
	return incomes, rows.Err()
}

// Expenses returns the expenses of an owner
func (s *Store) Expenses(ctx context.Context, ownerID string) ([]goalplan.ExpenseRecord, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name, amount, frequency_days, priority_tier
		FROM expenses WHERE owner_id = ? ORDER BY rowid`, ownerID)
	if err != nil {
		return nil, errors.Wrap(err, "querying expenses")
	}
	defer func() { _ = rows.Close() }()

	var expenses []goalplan.ExpenseRecord
	for rows.Next() {
		var ex goalplan.ExpenseRecord
		if err := rows.Scan(&ex.ID, &ex.Name, &ex.Amount, &ex.FrequencyDays, &ex.PriorityTier); err != nil {
			return nil, err
		}
		expenses = append(expenses, ex)
	}
	return expenses, rows.Err()
}

// EvaluationRecord is one stored evaluation of a goal
type EvaluationRecord struct {
	ID          string
	GoalID      string
	Status      goalplan.Status
	Recommended string
	Message     string
	EvaluatedAt time.Time
	ReportJSON  string
}

// RecordEvaluation stores a report in the goal's history
func (s *Store) RecordEvaluation(ctx context.Context, report *goalplan.FeasibilityReport) error {
	payload, err := json.Marshal(report)
	if err != nil {
		return errors.Wrap(err, "encoding report")
	}

	recommended := ""
	if report.RecommendedScenario != nil {
		recommended = report.RecommendedScenario.Kind().String()
	}

	_, err = s.db.ExecContext(ctx, `INSERT OR REPLACE INTO evaluations
		(id, goal_id, status, recommended, message, evaluated_at, report_json)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		report.ID, report.GoalID, int(report.Status), recommended, report.Message,
		report.EvaluatedAt.UTC().Format(time.RFC3339), string(payload),
	)
	return errors.Wrap(err, "recording evaluation")
}

// Evaluations returns the most recent evaluations of a goal, newest first
func (s *Store) Evaluations(ctx context.Context, goalID string, limit int) ([]EvaluationRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.QueryContext(ctx, `SELECT
		id, goal_id, status, recommended, message, evaluated_at, report_json
		FROM evaluations WHERE goal_id = ?
		ORDER BY evaluated_at DESC, rowid DESC LIMIT ?`, goalID, limit)
	if err != nil {
		return nil, errors.Wrap(err, "querying evaluations")
	}
	defer func() { _ = rows.Close() }()

	var out []EvaluationRecord
	for rows.Next() {
		var rec EvaluationRecord
		var status int
		var recommended sql.NullString
		var evaluatedAt string
		if err := rows.Scan(&rec.ID, &rec.GoalID, &status, &recommended, &rec.Message, &evaluatedAt, &rec.ReportJSON); err != nil {
			return nil, err
		}
		rec.Status = goalplan.Status(status)
		rec.Recommended = recommended.String
		rec.EvaluatedAt, _ = time.Parse(time.RFC3339, evaluatedAt)
		out = append(out, rec)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanGoal(row scanner) (goalplan.Goal, error) {
	var g goalplan.Goal
	var deadline, created string
	if err := row.Scan(&g.ID, &g.OwnerID, &g.Name, &g.Amount, &deadline, &created, &g.SavingsPercentage); err != nil {
		return goalplan.Goal{}, err
	}

	var err error
	if g.Deadline, err = goalplan.ParseDate(deadline); err != nil {
		return goalplan.Goal{}, errors.Wrapf(err, "goal %s deadline", g.ID)
	}
	if g.CreatedAt, err = goalplan.ParseDate(created); err != nil {
		return goalplan.Goal{}, errors.Wrapf(err, "goal %s created_at", g.ID)
	}
	return g, nil
}
