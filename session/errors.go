package session

import "github.com/ayoisaiah/studyfocus/internal/apperr"

var (
	errParseCmd = &apperr.Error{
		Message: "unable to parse the post-session command %q",
	}

	errRunCmd = &apperr.Error{
		Message: "post-session command failed",
	}
)
