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

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS task_histories (
		task_name  TEXT PRIMARY KEY,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS history_segments (
		id          TEXT PRIMARY KEY,
		task_name   TEXT NOT NULL REFERENCES task_histories(task_name) ON DELETE CASCADE,
		seq         INTEGER NOT NULL CHECK(seq >= 0),
		start_date  TEXT NOT NULL,
		end_date    TEXT NOT NULL,
		description TEXT NOT NULL,
		created_at  TEXT NOT NULL,
		UNIQUE(task_name, seq)
	)`,

	`CREATE INDEX IF NOT EXISTS idx_history_segments_task ON history_segments(task_name)`,

	`CREATE TABLE IF NOT EXISTS daywise_descriptions (
		task_name   TEXT NOT NULL REFERENCES task_histories(task_name) ON DELETE CASCADE,
		day         TEXT NOT NULL,
		description TEXT NOT NULL,
		created_at  TEXT NOT NULL,
		PRIMARY KEY (task_name, day)
	)`,

	`CREATE TABLE IF NOT EXISTS report_runs (
		id           TEXT PRIMARY KEY,
		week_start   TEXT NOT NULL,
		output_path  TEXT NOT NULL,
		task_count   INTEGER NOT NULL DEFAULT 0,
		generated_at TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_report_runs_week ON report_runs(week_start)`,
}
