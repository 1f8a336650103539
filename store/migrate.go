package store

import (
	"fmt"
)

const schemaVersion = 1

func (s *SQLite) migrate() error {
	var version int

	err := s.db.QueryRow("PRAGMA user_version").Scan(&version)
	if err != nil {
		return fmt.Errorf("read user_version: %w", err)
	}

	if version >= schemaVersion {
		return nil
	}

	if version < 1 {
		if err := s.migrateV1(); err != nil {
			return err
		}
	}

	_, err = s.db.Exec(fmt.Sprintf("PRAGMA user_version = %d", schemaVersion))

	return err
}

func (s *SQLite) migrateV1() error {
	const ddl = `
	CREATE TABLE IF NOT EXISTS sessions (
		seq              INTEGER PRIMARY KEY AUTOINCREMENT,
		id               TEXT NOT NULL UNIQUE,
		date             TEXT NOT NULL,
		start_time       TEXT NOT NULL,
		end_time         TEXT NOT NULL,
		duration_minutes INTEGER NOT NULL DEFAULT 0,
		method           TEXT NOT NULL,
		completed        INTEGER NOT NULL DEFAULT 0,
		switch_attempts  INTEGER NOT NULL DEFAULT 0
	);

	CREATE INDEX IF NOT EXISTS idx_sessions_date ON sessions(date);

	CREATE TABLE IF NOT EXISTS streak (
		id              INTEGER PRIMARY KEY CHECK (id = 1),
		current_streak  INTEGER NOT NULL DEFAULT 0,
		longest_streak  INTEGER NOT NULL DEFAULT 0,
		last_study_date TEXT NOT NULL DEFAULT ''
	);
	`

	if _, err := s.db.Exec(ddl); err != nil {
		return fmt.Errorf("migrate v1: %w", err)
	}

	return nil
}
