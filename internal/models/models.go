// Package models holds the persisted records shared by the store, stats and
// export packages.
package models

import "time"

// SessionRecord is one finished study session. Records are append-only and
// never edited after they are stored.
type SessionRecord struct {
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
	ID        string    `json:"id"`
	// Date is the local calendar date the session started on (YYYY-MM-DD).
	Date            string `json:"date"`
	MethodKey       string `json:"method"`
	DurationMinutes int    `json:"duration_minutes"`
	SwitchAttempts  int    `json:"switch_attempts"`
	Completed       bool   `json:"completed"`
}

// StreakState tracks consecutive study days. Current never exceeds
// Longest.
type StreakState struct {
	LastStudyDate string `json:"last_study_date"`
	Current       int    `json:"current_streak"`
	Longest       int    `json:"longest_streak"`
}
