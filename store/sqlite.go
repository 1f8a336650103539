package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/ayoisaiah/studyfocus/internal/models"
	"github.com/ayoisaiah/studyfocus/internal/osutil"
)

// SQLite stores the session log in a SQLite database.
type SQLite struct {
	db *sql.DB
}

// NewSQLite opens (or creates) the SQLite database at dbPath and runs
// migrations.
func NewSQLite(dbPath string) (*SQLite, error) {
	if dbPath != ":memory:" {
		err := os.MkdirAll(filepath.Dir(dbPath), osutil.DirPermission)
		if err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
	}

	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("exec pragma %q: %w", p, err)
		}
	}

	s := &SQLite{db: db}

	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return s, nil
}

// NewSQLiteMemory creates an in-memory SQLite store for testing.
func NewSQLiteMemory() (*SQLite, error) {
	return NewSQLite(":memory:")
}

func (s *SQLite) AppendSession(rec *models.SessionRecord) error {
	if rec.ID == "" {
		return errMissingID
	}

	_, err := s.db.Exec(
		`INSERT INTO sessions
		 (id, date, start_time, end_time, duration_minutes, method, completed, switch_attempts)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID,
		rec.Date,
		rec.StartTime.Format(time.RFC3339Nano),
		rec.EndTime.Format(time.RFC3339Nano),
		rec.DurationMinutes,
		rec.MethodKey,
		rec.Completed,
		rec.SwitchAttempts,
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE") {
			return errDuplicateID.Fmt(rec.ID)
		}

		return fmt.Errorf("append session: %w", err)
	}

	return nil
}

func (s *SQLite) Sessions() ([]models.SessionRecord, error) {
	rows, err := s.db.Query(
		`SELECT id, date, start_time, end_time, duration_minutes, method, completed, switch_attempts
		 FROM sessions ORDER BY seq`,
	)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()

	var out []models.SessionRecord

	for rows.Next() {
		var (
			rec        models.SessionRecord
			start, end string
		)

		err := rows.Scan(
			&rec.ID,
			&rec.Date,
			&start,
			&end,
			&rec.DurationMinutes,
			&rec.MethodKey,
			&rec.Completed,
			&rec.SwitchAttempts,
		)
		if err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}

		rec.StartTime, _ = time.Parse(time.RFC3339Nano, start)
		rec.EndTime, _ = time.Parse(time.RFC3339Nano, end)

		out = append(out, rec)
	}

	return out, rows.Err()
}

func (s *SQLite) Streak() (models.StreakState, error) {
	var state models.StreakState

	err := s.db.QueryRow(
		`SELECT current_streak, longest_streak, last_study_date FROM streak WHERE id = 1`,
	).Scan(&state.Current, &state.Longest, &state.LastStudyDate)
	if errors.Is(err, sql.ErrNoRows) {
		return models.StreakState{}, nil
	}

	if err != nil {
		return models.StreakState{}, fmt.Errorf("get streak: %w", err)
	}

	return state, nil
}

func (s *SQLite) UpdateStreak(state models.StreakState) error {
	_, err := s.db.Exec(
		`INSERT INTO streak (id, current_streak, longest_streak, last_study_date)
		 VALUES (1, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		   current_streak = excluded.current_streak,
		   longest_streak = excluded.longest_streak,
		   last_study_date = excluded.last_study_date`,
		state.Current, state.Longest, state.LastStudyDate,
	)
	if err != nil {
		return fmt.Errorf("update streak: %w", err)
	}

	return nil
}

func (s *SQLite) Clear() error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}

	for _, q := range []string{"DELETE FROM sessions", "DELETE FROM streak"} {
		if _, err := tx.Exec(q); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("clear: %w", err)
		}
	}

	return tx.Commit()
}

func (s *SQLite) Close() error {
	return s.db.Close()
}
