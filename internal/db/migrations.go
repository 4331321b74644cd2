package db

import "fmt"

// migrate runs database migrations.
func (s *SQLite) migrate() error {
	query := `
		CREATE TABLE IF NOT EXISTS tasks (
			id           INTEGER PRIMARY KEY,
			date         TEXT NOT NULL,
			start_slot   INTEGER NOT NULL,
			end_slot     INTEGER NOT NULL,
			title        TEXT NOT NULL DEFAULT '',
			description  TEXT NOT NULL DEFAULT '',
			color_index  INTEGER NOT NULL DEFAULT 0,
			is_repeated  INTEGER NOT NULL DEFAULT 0,
			series_key   TEXT NOT NULL DEFAULT '',
			source       TEXT NOT NULL DEFAULT '',
			harvest_data TEXT NOT NULL DEFAULT '',
			CHECK(start_slot >= 0 AND end_slot > start_slot AND end_slot <= 68)
		);

		CREATE INDEX IF NOT EXISTS idx_tasks_date ON tasks(date);
		CREATE INDEX IF NOT EXISTS idx_tasks_series ON tasks(series_key);

		CREATE TABLE IF NOT EXISTS templates (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			title       TEXT NOT NULL DEFAULT '',
			description TEXT NOT NULL DEFAULT '',
			color_index INTEGER NOT NULL DEFAULT 0
		);
	`

	if _, err := s.db.Exec(query); err != nil {
		return fmt.Errorf("creating tables: %w", err)
	}

	return nil
}
