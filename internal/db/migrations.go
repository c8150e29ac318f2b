package db

import "fmt"

// migrate runs database migrations.
func (s *SQLite) migrate() error {
	query := `
		PRAGMA foreign_keys = ON;

		CREATE TABLE IF NOT EXISTS plans (
			id            TEXT PRIMARY KEY,
			name          TEXT NOT NULL,
			boss_id       TEXT NOT NULL,
			party         TEXT NOT NULL DEFAULT '{}',
			last_modified TEXT NOT NULL
		);

		CREATE TABLE IF NOT EXISTS placements (
			id         TEXT NOT NULL,
			plan_id    TEXT NOT NULL REFERENCES plans(id) ON DELETE CASCADE,
			slot       TEXT NOT NULL,
			ability_id TEXT NOT NULL,
			job_id     TEXT NOT NULL DEFAULT '',
			start_time INTEGER NOT NULL CHECK(start_time >= 0),
			PRIMARY KEY (plan_id, id)
		);

		CREATE INDEX IF NOT EXISTS idx_plans_boss ON plans(boss_id);
		CREATE INDEX IF NOT EXISTS idx_placements_plan ON placements(plan_id);
	`

	if _, err := s.db.Exec(query); err != nil {
		return fmt.Errorf("creating plan tables: %w", err)
	}

	return nil
}
