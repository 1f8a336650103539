// Package slots finds free study time between calendar events and ranks
// it.
package slots

import (
	"cmp"
	"slices"
	"time"

	"github.com/ayoisaiah/studyfocus/internal/timeutil"
	"github.com/ayoisaiah/studyfocus/method"
)

// DefaultMinDuration is the shortest slot worth reporting, in minutes.
const DefaultMinDuration = 25

// DefaultSuggestions are the method keys a slot may be matched to.
var DefaultSuggestions = []string{"pomodoro", "focus", "deepwork"}

// CalendarEvent is a busy interval supplied by a calendar provider.
type CalendarEvent struct {
	Start  time.Time `json:"start"  yaml:"start"`
	End    time.Time `json:"end"    yaml:"end"`
	Title  string    `json:"title"  yaml:"title"`
	AllDay bool      `json:"all_day" yaml:"all_day"`
}

func (e CalendarEvent) valid() bool {
	return !e.AllDay &&
		!e.Start.IsZero() &&
		!e.End.IsZero() &&
		!e.End.Before(e.Start)
}

// FreeSlot is a gap between events that can host a study session.
type FreeSlot struct {
	Start           time.Time          `json:"start"`
	End             time.Time          `json:"end"`
	SuggestedMethod *method.Method     `json:"suggested_method,omitempty"`
	TimeOfDay       timeutil.TimeOfDay `json:"time_of_day"`
	DurationMinutes int                `json:"duration_minutes"`
	QualityScore    int                `json:"quality_score"`
}

// Option configures a Finder.
type Option func(*Finder)

// WithSuggestions sets the methods a slot can be matched with. They are
// ordered by duration before use.
func WithSuggestions(methods []method.Method) Option {
	return func(f *Finder) {
		f.suggestions = slices.Clone(methods)
	}
}

// Finder computes free slots.
type Finder struct {
	suggestions []method.Method
}

// New returns a Finder. Without options it suggests from the built-in
// pomodoro, focus and deepwork methods.
func New(opts ...Option) *Finder {
	f := &Finder{}

	f.suggestions, _ = method.Default().Subset(DefaultSuggestions...)

	for _, opt := range opts {
		opt(f)
	}

	slices.SortStableFunc(f.suggestions, func(a, b method.Method) int {
		return cmp.Compare(a.Duration, b.Duration)
	})

	return f
}

// Find returns the gaps of at least minDurationMinutes between events inside
// [windowStart, windowEnd), best first. All-day and malformed events are
// skipped, as are events that lie entirely outside the window. A minimum of
// zero or less is treated as one minute.
func (f *Finder) Find(
	events []CalendarEvent,
	windowStart, windowEnd time.Time,
	minDurationMinutes int,
) []FreeSlot {
	if !windowEnd.After(windowStart) {
		return nil
	}

	if minDurationMinutes <= 0 {
		minDurationMinutes = 1
	}

	busy := inWindow(events, windowStart, windowEnd)
	minGap := time.Duration(minDurationMinutes) * time.Minute

	var result []FreeSlot

	add := func(start, end time.Time) {
		if end.Sub(start) < minGap {
			return
		}

		result = append(result, f.slot(start, end, busy))
	}

	cursor := windowStart

	for _, e := range busy {
		if e.Start.After(cursor) {
			add(cursor, e.Start)
		}

		if e.End.After(cursor) {
			cursor = e.End
		}
	}

	if cursor.Before(windowEnd) {
		add(cursor, windowEnd)
	}

	sortSlots(result)

	return result
}

// Suggest picks a method for a slot of the given length: the longest for
// 90 minutes or more, the middle one for 45, the shortest for 25. Shorter
// slots get nil.
func (f *Finder) Suggest(durationMinutes int) *method.Method {
	n := len(f.suggestions)
	if n == 0 {
		return nil
	}

	var m method.Method

	switch {
	case durationMinutes >= 90:
		m = f.suggestions[n-1]
	case durationMinutes >= 45:
		m = f.suggestions[n/2]
	case durationMinutes >= 25:
		m = f.suggestions[0]
	default:
		return nil
	}

	return &m
}

func (f *Finder) slot(start, end time.Time, busy []CalendarEvent) FreeSlot {
	s := FreeSlot{
		Start:           start,
		End:             end,
		DurationMinutes: int(end.Sub(start) / time.Minute),
		TimeOfDay:       timeutil.TimeOfDayOf(start),
	}

	s.QualityScore = Score(s, busy)
	s.SuggestedMethod = f.Suggest(s.DurationMinutes)

	return s
}

// inWindow returns the valid events overlapping the window, sorted by start.
func inWindow(events []CalendarEvent, windowStart, windowEnd time.Time) []CalendarEvent {
	busy := make([]CalendarEvent, 0, len(events))

	for _, e := range events {
		if !e.valid() {
			continue
		}

		if !e.End.After(windowStart) || !e.Start.Before(windowEnd) {
			continue
		}

		busy = append(busy, e)
	}

	slices.SortStableFunc(busy, func(a, b CalendarEvent) int {
		return a.Start.Compare(b.Start)
	})

	return busy
}

func sortSlots(s []FreeSlot) {
	slices.SortStableFunc(s, func(a, b FreeSlot) int {
		if a.QualityScore != b.QualityScore {
			return cmp.Compare(b.QualityScore, a.QualityScore)
		}

		return a.Start.Compare(b.Start)
	})
}
