package config

import "github.com/ayoisaiah/studyfocus/internal/apperr"

var (
	errConfigOption = &apperr.Error{
		Message: "config option error",
	}

	errConfigValidation = &apperr.Error{
		Message: "config validation error",
	}

	errReadConfig = &apperr.Error{
		Message: "reading config file failed",
	}

	errWriteConfig = &apperr.Error{
		Message: "writing default config failed",
	}

	errNoMethods = &apperr.Error{
		Message: "at least one study method must be configured",
	}

	errInvalidDuration = &apperr.Error{
		Message: "%s duration must be between %v and %v",
	}

	errUnknownDefaultMethod = &apperr.Error{
		Message: "default method %q is not a configured method",
	}

	errUnknownSuggestion = &apperr.Error{
		Message: "slot suggestion %q is not a configured method",
	}

	errInvalidTickInterval = &apperr.Error{
		Message: "tick interval must be between %v and %v, got %v",
	}

	errInvalidLevel = &apperr.Error{
		Message: "invalid blocking level",
	}

	errInvalidSlotWindow = &apperr.Error{
		Message: "slot window start (%s) must be before its end (%s)",
	}

	errInvalidClock = &apperr.Error{
		Message: "invalid slot window time",
	}

	errInvalidMinDuration = &apperr.Error{
		Message: "slot minimum duration must be at least 1 minute, got %d",
	}

	errNegativeMax = &apperr.Error{
		Message: "slot count cannot be negative, got %d",
	}

	errUnknownDriver = &apperr.Error{
		Message: "unknown storage driver %q (must be bolt, sqlite or memory)",
	}

	errInvalidLogLevel = &apperr.Error{
		Message: "invalid log level %q",
	}

	errInvalidLogRotation = &apperr.Error{
		Message: "log max_size and max_backups cannot be negative",
	}
)

// ErrConfigValidation wraps every validation failure returned by New.
var ErrConfigValidation = errConfigValidation
