package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// Tolerate "duplicate column name" errors from ALTER TABLE
			// since the migration system re-runs all statements.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

// Tables lists the application tables in dependency order.
var Tables = []string{"agents", "holidays", "activity_logs", "call_feedback"}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS agents (
		id         TEXT PRIMARY KEY,
		name       TEXT NOT NULL,
		email      TEXT NOT NULL DEFAULT '',
		team       TEXT NOT NULL DEFAULT '',
		role       TEXT NOT NULL DEFAULT 'agent'
		           CHECK(role IN ('agent','supervisor','admin')),
		created_at TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_agents_team ON agents(team)`,

	`CREATE TABLE IF NOT EXISTS holidays (
		date       TEXT PRIMARY KEY,
		name       TEXT NOT NULL,
		start_time TEXT NOT NULL DEFAULT '',
		end_time   TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS activity_logs (
		id            TEXT PRIMARY KEY,
		user_id       TEXT NOT NULL REFERENCES agents(id) ON DELETE CASCADE,
		activity_type TEXT NOT NULL
		              CHECK(activity_type IN ('work','call','meeting','training','break','lunch','idle')),
		start_time    TEXT NOT NULL,
		end_time      TEXT,
		note          TEXT NOT NULL DEFAULT '',
		created_at    TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_activity_user_start ON activity_logs(user_id, start_time)`,
	`CREATE INDEX IF NOT EXISTS idx_activity_open ON activity_logs(user_id) WHERE end_time IS NULL`,

	`CREATE TABLE IF NOT EXISTS call_feedback (
		id         TEXT PRIMARY KEY,
		agent_id   TEXT NOT NULL REFERENCES agents(id) ON DELETE CASCADE,
		contact    TEXT NOT NULL DEFAULT '',
		outcome    TEXT NOT NULL
		           CHECK(outcome IN ('interested','not_interested','callback','no_answer','wrong_number','converted')),
		note       TEXT NOT NULL DEFAULT '',
		called_at  TEXT NOT NULL,
		created_at TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_call_feedback_agent ON call_feedback(agent_id, called_at)`,
}
