package goalplan

import (
	"fmt"
	"sync"
	"time"
)

var fixedNow = time.Date(2026, 1, 15, 10, 30, 0, 0, time.UTC)

// goalDueIn returns a goal due the given number of days after fixedNow
func goalDueIn(days int, amount, pct float64) Goal {
	return Goal{
		ID:                "goal-1",
		Name:              "Emergency fund",
		Amount:            amount,
		CreatedAt:         NewDate(2025, 7, 1),
		Deadline:          Date{Time: NewDate(2026, 1, 15).AddDate(0, 0, days)},
		SavingsPercentage: pct,
	}
}

func monthly(name string, amount float64, tier int) ExpenseRecord {
	return ExpenseRecord{Name: name, Amount: amount, FrequencyDays: 30, PriorityTier: tier}
}

type logEntry struct {
	level string
	msg   string
	kv    []interface{}
}

// recordingLogger captures log calls for assertions
type recordingLogger struct {
	mu      sync.Mutex
	entries []logEntry
}

func (l *recordingLogger) add(level, msg string, kv []interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, logEntry{level: level, msg: msg, kv: kv})
}

func (l *recordingLogger) Debug(msg string, kv ...interface{}) { l.add("debug", msg, kv) }
func (l *recordingLogger) Info(msg string, kv ...interface{})  { l.add("info", msg, kv) }
func (l *recordingLogger) Warn(msg string, kv ...interface{})  { l.add("warn", msg, kv) }
func (l *recordingLogger) Error(msg string, kv ...interface{}) { l.add("error", msg, kv) }

func (l *recordingLogger) messages(level string) []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	var out []string
	for _, e := range l.entries {
		if e.level == level {
			out = append(out, fmt.Sprintf("%s %v", e.msg, e.kv))
		}
	}
	return out
}
