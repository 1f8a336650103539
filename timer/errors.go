package timer

import "github.com/ayoisaiah/studyfocus/internal/apperr"

var errTickTooSlow = &apperr.Error{
	Message: "tick interval must be between 1ms and 1s, got %v",
}
