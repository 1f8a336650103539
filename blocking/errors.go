package blocking

import "github.com/ayoisaiah/studyfocus/internal/apperr"

var (
	errInvalidLevel = &apperr.Error{
		Message: "invalid blocking level %q: expected one of standard, strict, screen-time",
	}

	errNotifyFailed = &apperr.Error{
		Message: "unable to deliver focus reminder",
	}

	errIndicatorFailed = &apperr.Error{
		Message: "unable to update the focus indicator",
	}
)

// ErrInvalidLevel is returned by ParseLevel for unknown level names.
var ErrInvalidLevel = errInvalidLevel
