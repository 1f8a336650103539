package export

import "github.com/ayoisaiah/studyfocus/internal/apperr"

var errUnsupportedVersion = &apperr.Error{
	Message: "unsupported archive version %q",
}

// ErrUnsupportedVersion is returned by Read for archives of an unknown
// format.
var ErrUnsupportedVersion = errUnsupportedVersion
