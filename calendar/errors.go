package calendar

import "github.com/ayoisaiah/studyfocus/internal/apperr"

var (
	errReadCalendar = &apperr.Error{
		Message: "unable to read calendar file %s",
	}

	errParseICS = &apperr.Error{
		Message: "invalid iCalendar data in %s",
	}

	errParseYAML = &apperr.Error{
		Message: "invalid calendar YAML in %s",
	}

	errParseTime = &apperr.Error{
		Message: "event %q: unrecognised time %q",
	}

	errUnsupportedFormat = &apperr.Error{
		Message: "unsupported calendar format %q: use .ics, .yml or .yaml",
	}
)

// ErrUnsupportedFormat is returned by Open for unknown file extensions.
var ErrUnsupportedFormat = errUnsupportedFormat
