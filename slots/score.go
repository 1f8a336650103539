package slots

import (
	"time"
)

const (
	baseScore     = 50
	defaultBuffer = 60 * time.Minute
)

// Score rates a slot from 0 to 100. It favours focus-friendly hours, longer
// slots, breathing room around neighbouring events and weekends, and
// penalises very early or late starts and meal times.
func Score(s FreeSlot, events []CalendarEvent) int {
	score := baseScore

	hour := s.Start.Hour()

	switch {
	case hour >= 9 && hour <= 11:
		score += 20
	case hour >= 14 && hour <= 16:
		score += 15
	case hour >= 19 && hour <= 21:
		score += 10
	case hour < 8 || hour > 22:
		score -= 20
	}

	switch {
	case s.DurationMinutes >= 90:
		score += 15
	case s.DurationMinutes >= 45:
		score += 10
	case s.DurationMinutes >= 25:
		score += 5
	}

	score += bufferScore(bufferBefore(s.Start, events))
	score += bufferScore(bufferAfter(s.End, events))

	if (hour >= 11 && hour <= 13) || (hour >= 17 && hour <= 19) {
		score -= 5
	}

	if wd := s.Start.Weekday(); wd == time.Saturday || wd == time.Sunday {
		score += 5
	}

	return min(max(score, 0), 100)
}

func bufferScore(d time.Duration) int {
	switch {
	case d >= 15*time.Minute:
		return 5
	case d < 5*time.Minute:
		return -10
	}

	return 0
}

// bufferBefore is the time between t and the latest event ending at or
// before it.
func bufferBefore(t time.Time, events []CalendarEvent) time.Duration {
	var (
		latest time.Time
		found  bool
	)

	for _, e := range events {
		if e.End.After(t) {
			continue
		}

		if !found || e.End.After(latest) {
			latest = e.End
			found = true
		}
	}

	if !found {
		return defaultBuffer
	}

	return t.Sub(latest)
}

// bufferAfter is the time between t and the earliest event starting at or
// after it.
func bufferAfter(t time.Time, events []CalendarEvent) time.Duration {
	var (
		earliest time.Time
		found    bool
	)

	for _, e := range events {
		if e.Start.Before(t) {
			continue
		}

		if !found || e.Start.Before(earliest) {
			earliest = e.Start
			found = true
		}
	}

	if !found {
		return defaultBuffer
	}

	return earliest.Sub(t)
}
