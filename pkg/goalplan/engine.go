package goalplan

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/google/uuid"
)

// degradedMessage is reported when a goal could not be evaluated
const degradedMessage = "The goal could not be evaluated because of an unexpected error in the financial records."

// Engine evaluates goals. It holds only immutable options and is safe for
// concurrent use.
type Engine struct {
	options *Options
	now     func() time.Time
}

// Options configures the engine
type Options struct {
	// Logger for debug logging
	Logger Logger

	// Clock overrides time.Now for evaluations that do not pass a time
	Clock func() time.Time

	// AlwaysGenerateScenarios builds alternatives even for achievable goals
	AlwaysGenerateScenarios bool

	// MaxAlternatives caps the display alternatives; zero uses DefaultMaxAlternatives
	MaxAlternatives int

	// SentryDSN enables Sentry error tracking when set
	SentryDSN string

	// SentryOptions allows custom Sentry configuration
	SentryOptions *sentry.ClientOptions
}

// Logger interface for logging
type Logger interface {
	Debug(msg string, keysAndValues ...interface{})
	Info(msg string, keysAndValues ...interface{})
	Warn(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
}

// EvaluateInput is everything one evaluation reads
type EvaluateInput struct {
	Goal     Goal
	Incomes  []IncomeRecord
	Expenses []ExpenseRecord

	// Snapshot replaces the snapshot built from Incomes and Expenses.
	// Expenses are still needed for removal scenarios.
	Snapshot *FinancialSnapshot

	// Now overrides the engine clock
	Now time.Time

	// IncludeAllScenarios generates alternatives even when the goal is achievable
	IncludeAllScenarios bool
}

// NewEngine creates a new engine
func NewEngine(opts *Options) (*Engine, error) {
	if opts == nil {
		opts = &Options{}
	}

	// Sentry is process-wide, so it is only initialised on request
	if opts.SentryDSN != "" || opts.SentryOptions != nil {
		sentryOpts := sentry.ClientOptions{}
		if opts.SentryOptions != nil {
			sentryOpts = *opts.SentryOptions
		}
		if opts.SentryDSN != "" {
			sentryOpts.Dsn = opts.SentryDSN
		}
		if sentryOpts.Environment == "" {
			sentryOpts.Environment = "production"
		}

		if err := sentry.Init(sentryOpts); err != nil {
			if opts.Logger != nil {
				opts.Logger.Error("Failed to initialize Sentry", "error", err)
			}
		}
	}

	if opts.MaxAlternatives <= 0 {
		opts.MaxAlternatives = DefaultMaxAlternatives
	}

	now := opts.Clock
	if now == nil {
		now = time.Now
	}

	return &Engine{options: opts, now: now}, nil
}

// Evaluate decides whether the goal can be reached by its deadline and, when
// it cannot, which change is recommended. Invalid goals return a validation
// error. Malformed records and internal failures do not return an error: they
// produce a NotAchievable report with a generic message.
func (e *Engine) Evaluate(ctx context.Context, in EvaluateInput) (report *FeasibilityReport, err error) {
	if err := in.Goal.Validate(); err != nil {
		e.debug("Rejected goal", "goal", in.Goal.ID, "error", err)
		return nil, err
	}

	now := in.Now
	if now.IsZero() {
		now = e.now()
	}

	defer func() {
		if r := recover(); r != nil {
			cause := WrapError(fmt.Errorf("%w: %v", ErrInternal, r), "EVALUATION_PANIC", "evaluation panicked")
			report = e.degraded(ctx, in.Goal, now, cause)
			err = nil
		}
	}()

	if err := ValidateRecords(in.Incomes, in.Expenses); err != nil {
		return e.degraded(ctx, in.Goal, now, WrapError(err, "MALFORMED_RECORD", "record rejected")), nil
	}
	if in.Snapshot != nil && !finiteSnapshot(*in.Snapshot) {
		return e.degraded(ctx, in.Goal, now, WrapError(ErrMalformedRecord, "MALFORMED_SNAPSHOT", "snapshot is not finite")), nil
	}

	report = e.evaluate(in, now)
	e.debug("Evaluated goal", "goal", in.Goal.ID, "status", report.Status.String(), "days", report.DaysToDeadline)
	return report, nil
}

func (e *Engine) evaluate(in EvaluateInput, now time.Time) *FeasibilityReport {
	goal := in.Goal

	snap := BuildSnapshot(in.Incomes, in.Expenses)
	if in.Snapshot != nil {
		snap = *in.Snapshot
	}

	base := EvaluateBase(goal, snap, now)
	report := &FeasibilityReport{
		ID:               uuid.NewString(),
		GoalID:           goal.ID,
		GoalName:         goal.Name,
		Expired:          base.Expired,
		DaysToDeadline:   base.DaysToDeadline,
		MonthsToDeadline: base.MonthsToDeadline,
		Remaining:        base.Remaining,
		Snapshot:         snap,
		BaseScenario:     base.Scenario,
		EvaluatedAt:      now,
	}

	var recommended Scenario
	switch {
	case base.DueToday:
		report.Status = StatusDueToday

	case base.Expired:
		report.Status = StatusNotAchievable
		report.Alternatives = []Scenario{ExtendDeadlineScenario(goal, snap, now)}

	default:
		feasible := base.Scenario.Feasible
		if !feasible || e.options.AlwaysGenerateScenarios || in.IncludeAllScenarios {
			set := GenerateScenarios(goal, snap, in.Expenses, base.MonthsToDeadline)
			report.AllScenarios = set.All()
			if !feasible {
				var rule string
				recommended, rule = Recommend(base.Scenario, set)
				e.debug("Recommendation", "goal", goal.ID, "rule", rule)
			}
		}
		if feasible {
			recommended = base.Scenario
		}

		switch {
		case recommended == nil:
			report.Status = StatusNotAchievable
		case recommended.Kind() == KindCurrent:
			report.Status = StatusAchievable
		default:
			report.Status = StatusAdjustableWithChanges
		}
		report.Alternatives = Alternatives(report.AllScenarios, recommended, e.options.MaxAlternatives)
	}

	report.RecommendedScenario = recommended
	report.Message = Summarize(report.Status, recommended, base)
	return report
}

// degraded logs and captures the failure and returns a NotAchievable report
func (e *Engine) degraded(ctx context.Context, goal Goal, now time.Time, cause error) *FeasibilityReport {
	if e.options.Logger != nil {
		e.options.Logger.Error("Goal evaluation failed", "goal", goal.ID, "error", cause)
	}

	scoped := func(scope *sentry.Scope, captureException func(error) *sentry.EventID) {
		scope.SetTag("goalplan.stage", "evaluate")
		scope.SetTag("goalplan.goal", goal.ID)
		scope.SetContext("goal", map[string]interface{}{
			"deadline":          goal.Deadline.String(),
			"savingsPercentage": goal.SavingsPercentage,
		})
		captureException(cause)
	}
	if hub := sentry.GetHubFromContext(ctx); hub != nil {
		hub.WithScope(func(scope *sentry.Scope) { scoped(scope, hub.CaptureException) })
	} else {
		sentry.WithScope(func(scope *sentry.Scope) { scoped(scope, sentry.CaptureException) })
	}

	return &FeasibilityReport{
		ID:             uuid.NewString(),
		GoalID:         goal.ID,
		GoalName:       goal.Name,
		Status:         StatusNotAchievable,
		DaysToDeadline: DaysBetween(now, goal.Deadline.Time),
		Expired:        DaysBetween(now, goal.Deadline.Time) < 0,
		Message:        degradedMessage,
		EvaluatedAt:    now,
	}
}

// Progress reports time and financial progress for a goal
func (e *Engine) Progress(goal Goal, incomes []IncomeRecord, expenses []ExpenseRecord, now time.Time) (GoalProgress, error) {
	if err := goal.Validate(); err != nil {
		return GoalProgress{}, err
	}
	// Both measures count from the creation date
	if goal.CreatedAt.IsZero() {
		return GoalProgress{}, &ValidationError{Field: "createdAt", Message: "is required to measure progress"}
	}
	if err := ValidateRecords(incomes, expenses); err != nil {
		return GoalProgress{}, err
	}
	if now.IsZero() {
		now = e.now()
	}
	snap := BuildSnapshot(incomes, expenses)
	return ComputeProgress(goal, snap.AvailableMoney, now), nil
}

// ValidateAllocation checks a proposed savings percentage against the user's other goals
func (e *Engine) ValidateAllocation(req AllocationRequest) (*AllocationSummary, error) {
	summary, err := ValidateAllocation(req)
	if err != nil {
		e.debug("Rejected allocation", "proposed", req.ProposedPercentage, "error", err)
		return nil, err
	}
	e.debug("Allocation checked", "total", summary.ProposedNewTotalPercentage, "valid", summary.IsValid)
	return summary, nil
}

// Now returns the engine clock's current time
func (e *Engine) Now() time.Time {
	return e.now()
}

// Close flushes any pending Sentry events
func (e *Engine) Close() {
	sentry.Flush(2 * time.Second)
}

func (e *Engine) debug(msg string, keysAndValues ...interface{}) {
	if e.options.Logger != nil {
		e.options.Logger.Debug(msg, keysAndValues...)
	}
}

func finiteSnapshot(s FinancialSnapshot) bool {
	for _, v := range []float64{s.TotalMonthlyIncome, s.TotalMonthlyExpenses, s.AvailableMoney} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
