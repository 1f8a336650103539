package store

import (
	"github.com/ayoisaiah/studyfocus/internal/models"
)

// DB is the database storage interface.
type DB interface {
	// AppendSession stores a record at the end of the session log. The
	// record must already carry an ID.
	AppendSession(rec *models.SessionRecord) error
	// Sessions returns every stored record in append order
	Sessions() ([]models.SessionRecord, error)
	// Streak returns the saved streak state, or the zero value if none has
	// been saved yet
	Streak() (models.StreakState, error)
	// UpdateStreak overwrites the saved streak state
	UpdateStreak(s models.StreakState) error
	// Clear removes all sessions and the streak state
	Clear() error
	// Close ends the database connection
	Close() error
}
