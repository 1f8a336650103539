// Package timeutil provides utility functions and types for working with
// time-related operations.
package timeutil

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/markusmobius/go-dateparser"
)

const minutesInAnHour = 60

// DateLayout is the layout of calendar-date keys such as "2024-03-09".
const DateLayout = "2006-01-02"

// TimeOfDay is a coarse part of the day.
type TimeOfDay string

const (
	Morning   TimeOfDay = "morning"
	Afternoon TimeOfDay = "afternoon"
	Evening   TimeOfDay = "evening"
	Night     TimeOfDay = "night"
)

// TimeOfDayOf classifies t by its hour in t's own location.
func TimeOfDayOf(t time.Time) TimeOfDay {
	h := t.Hour()

	switch {
	case h >= 6 && h < 12:
		return Morning
	case h >= 12 && h < 17:
		return Afternoon
	case h >= 17 && h < 21:
		return Evening
	default:
		return Night
	}
}

// Round rounds a time value in seconds, minutes, or hours to the nearest integer.
func Round(t float64) int {
	return int(math.Round(t))
}

// DateKey returns the calendar date of t in loc.
func DateKey(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(DateLayout)
}

// AddDays moves t by n calendar days. Unlike t.Add(n*24h) the result stays
// on the same wall-clock time across DST transitions.
func AddDays(t time.Time, n int) time.Time {
	return time.Date(
		t.Year(),
		t.Month(),
		t.Day()+n,
		t.Hour(),
		t.Minute(),
		t.Second(),
		t.Nanosecond(),
		t.Location(),
	)
}

// ShiftDateKey returns the date key n days away from key.
func ShiftDateKey(key string, n int) (string, error) {
	d, err := time.Parse(DateLayout, key)
	if err != nil {
		return "", err
	}

	return AddDays(d, n).Format(DateLayout), nil
}

// ParseDate parses absolute or relative dates such as "tomorrow 9am"
// relative to now.
func ParseDate(s string, now time.Time) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}

	cfg := &dateparser.Configuration{
		CurrentTime: now,
	}

	dt, err := dateparser.Parse(cfg, s)
	if err != nil {
		return time.Time{}, err
	}

	return dt.Time, nil
}

// ParseClock parses an "HH:MM" string into minutes after midnight.
func ParseClock(s string) (int, error) {
	t, err := time.Parse("15:04", strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("invalid clock time %q: %w", s, err)
	}

	return t.Hour()*minutesInAnHour + t.Minute(), nil
}

// MinuteOfDay returns the number of minutes since midnight for t.
func MinuteOfDay(t time.Time) int {
	return t.Hour()*minutesInAnHour + t.Minute()
}
