package blocking

import (
	"strings"
	"time"
)

// Level controls how insistently the user is reminded to return.
type Level int

const (
	Standard Level = iota
	Strict
	ScreenTime
)

func (l Level) String() string {
	switch l {
	case Standard:
		return "standard"
	case Strict:
		return "strict"
	case ScreenTime:
		return "screen-time"
	}

	return "unknown"
}

// ReminderInterval is the period of the recurring reminder sent while the
// user is away.
func (l Level) ReminderInterval() time.Duration {
	if l == Strict {
		return 15 * time.Second
	}

	return 30 * time.Second
}

func (l Level) awayMessage() (title, body string) {
	if l == Strict {
		return "Strict focus mode", "Strict mode active. Return to your study session immediately!"
	}

	return "Stay focused!", "Your study timer is running. Please return to your session."
}

func (l Level) reminderMessage() (title, body string) {
	if l == Strict {
		return "Return to study!", "Strict mode: return to your study session now!"
	}

	return "Still studying?", "Return to your session to keep your focus (blocking is active)."
}

// ParseLevel converts a configuration value into a Level.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "standard":
		return Standard, nil
	case "strict":
		return Strict, nil
	case "screen-time", "screentime", "screen_time":
		return ScreenTime, nil
	}

	return Standard, errInvalidLevel.Fmt(s)
}

// Lifecycle is an application foreground/background transition reported by
// the host environment.
type Lifecycle int

const (
	Foreground Lifecycle = iota
	Background
)

func (l Lifecycle) String() string {
	if l == Background {
		return "background"
	}

	return "foreground"
}
