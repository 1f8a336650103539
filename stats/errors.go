package stats

import "github.com/ayoisaiah/studyfocus/internal/apperr"

var (
	errLoadSessions = &apperr.Error{
		Message: "unable to load study sessions",
	}

	errSaveSession = &apperr.Error{
		Message: "unable to save study session",
	}

	errLoadStreak = &apperr.Error{
		Message: "unable to load study streak",
	}

	errSaveStreak = &apperr.Error{
		Message: "unable to save study streak",
	}

	errClear = &apperr.Error{
		Message: "unable to clear study data",
	}
)

// Storage failures. Operations that hit one still return a usable
// empty or default value alongside the error.
var (
	ErrLoadSessions = errLoadSessions
	ErrSaveSession  = errSaveSession
	ErrLoadStreak   = errLoadStreak
	ErrSaveStreak   = errSaveStreak
)
