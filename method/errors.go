package method

import "github.com/ayoisaiah/studyfocus/internal/apperr"

var (
	errUnknownMethod = &apperr.Error{
		Message: "unknown study method: %s",
	}

	errInvalidDuration = &apperr.Error{
		Message: "study method %s must have a positive duration, got %v",
	}

	errEmptyKey = &apperr.Error{
		Message: "study method key cannot be empty",
	}

	errDuplicateKey = &apperr.Error{
		Message: "duplicate study method: %s",
	}
)

// ErrUnknownMethod is returned when a method key is not in the catalog.
var ErrUnknownMethod = errUnknownMethod
