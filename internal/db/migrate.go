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
	`CREATE TABLE IF NOT EXISTS catalogs (
		id          TEXT PRIMARY KEY,
		name        TEXT NOT NULL UNIQUE,
		source      TEXT NOT NULL DEFAULT '',
		imported_at TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS courses (
		code          TEXT PRIMARY KEY,
		catalog_id    TEXT NOT NULL REFERENCES catalogs(id) ON DELETE CASCADE,
		title         TEXT NOT NULL DEFAULT '',
		duration      TEXT NOT NULL CHECK(duration IN ('short','long')),
		start_kinds   TEXT NOT NULL DEFAULT '',
		prerequisites TEXT,
		corequisites  TEXT,
		exclusions    TEXT,
		updated_at    TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_courses_catalog ON courses(catalog_id)`,

	`CREATE TABLE IF NOT EXISTS plan_runs (
		id           TEXT PRIMARY KEY,
		fingerprint  TEXT NOT NULL,
		targets      TEXT NOT NULL,
		completed    TEXT NOT NULL DEFAULT '[]',
		max_terms    INTEGER NOT NULL CHECK(max_terms > 0),
		max_per_term INTEGER NOT NULL CHECK(max_per_term > 0),
		status       TEXT NOT NULL,
		schedule     TEXT,
		finish_term  INTEGER NOT NULL DEFAULT -1,
		course_count INTEGER NOT NULL DEFAULT 0,
		created_at   TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_plan_runs_created ON plan_runs(created_at)`,

	`ALTER TABLE plan_runs ADD COLUMN duration_ms INTEGER NOT NULL DEFAULT 0`,
}
