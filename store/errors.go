package store

import "github.com/ayoisaiah/studyfocus/internal/apperr"

var (
	errFocusRunning = &apperr.Error{
		Message: "is studyfocus already running? Only one instance can be active at a time",
	}

	errMissingID = &apperr.Error{
		Message: "session record has no id",
	}

	errDuplicateID = &apperr.Error{
		Message: "session %s already exists",
	}

	errUnknownDriver = &apperr.Error{
		Message: "unknown storage driver %q: expected bolt, sqlite or memory",
	}
)

// ErrDuplicateID is returned when appending a record whose ID is taken.
var ErrDuplicateID = errDuplicateID
