package app

import "github.com/ayoisaiah/studyfocus/internal/apperr"

var errInvalidDate = &apperr.Error{
	Message: "could not understand the date %q",
}
