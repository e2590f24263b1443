package store

const schemaSQL = `
CREATE TABLE IF NOT EXISTS goals (
    id                  TEXT PRIMARY KEY,
    owner_id            TEXT NOT NULL,
    name                TEXT NOT NULL,
    amount              REAL NOT NULL,
    deadline            TEXT NOT NULL,
    created_at          TEXT NOT NULL,
    savings_percentage  REAL NOT NULL DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_goals_owner ON goals(owner_id);

CREATE TABLE IF NOT EXISTS incomes (
    id              TEXT PRIMARY KEY,
    owner_id        TEXT NOT NULL,
    name            TEXT NOT NULL,
    amount          REAL NOT NULL,
    frequency_days  INTEGER NOT NULL DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_incomes_owner ON incomes(owner_id);

CREATE TABLE IF NOT EXISTS expenses (
    id              TEXT PRIMARY KEY,
    owner_id        TEXT NOT NULL,
    name            TEXT NOT NULL,
    amount          REAL NOT NULL,
    frequency_days  INTEGER NOT NULL DEFAULT 0,
    priority_tier   INTEGER NOT NULL DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_expenses_owner ON expenses(owner_id);

CREATE TABLE IF NOT EXISTS evaluations (
    id            TEXT PRIMARY KEY,
    goal_id       TEXT NOT NULL,
    status        INTEGER NOT NULL,
    recommended   TEXT,
    message       TEXT NOT NULL,
    evaluated_at  TEXT NOT NULL,
    report_json   TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_evaluations_goal ON evaluations(goal_id, evaluated_at);
`
