package calendar

import (
	"context"
	"log/slog"
	"os"
	"slices"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/sosodev/duration"
	"github.com/teambition/rrule-go"

	"github.com/ayoisaiah/studyfocus/slots"
)

var (
	propDuration = ics.ComponentProperty(ics.PropertyDuration)
	propRrule    = ics.ComponentProperty(ics.PropertyRrule)
)

var exdateLayouts = []string{
	"20060102T150405",
	"20060102",
}

// ICSFile reads events from an iCalendar (.ics) export. An event's end
// comes from DTEND or, failing that, DTSTART plus DURATION. Recurring
// events (RRULE, minus any EXDATE) are expanded into one event per
// occurrence inside the requested range.
type ICSFile struct {
	Path string
}

func (f *ICSFile) Events(ctx context.Context, from, to time.Time) ([]slots.CalendarEvent, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r, err := os.Open(f.Path)
	if err != nil {
		return nil, errReadCalendar.Fmt(f.Path).Wrap(err)
	}
	defer r.Close()

	cal, err := ics.ParseCalendar(r)
	if err != nil {
		return nil, errParseICS.Fmt(f.Path).Wrap(err)
	}

	events := make([]slots.CalendarEvent, 0, len(cal.Events()))

	for _, ve := range cal.Events() {
		e := convertEvent(ve)

		p := ve.GetProperty(propRrule)
		if p == nil {
			events = append(events, e)
			continue
		}

		occurrences, err := expand(ve, e, p.Value, from, to)
		if err != nil {
			slog.Warn(
				"skipping recurrence rule",
				slog.String("event", e.Title),
				slog.String("rrule", p.Value),
				slog.Any("error", err),
			)

			events = append(events, e)

			continue
		}

		events = append(events, occurrences...)
	}

	return overlapping(events, from, to), nil
}

// convertEvent maps a VEVENT onto a CalendarEvent. Unparseable times are
// left zero so the event is dropped as malformed later on.
func convertEvent(ve *ics.VEvent) slots.CalendarEvent {
	var e slots.CalendarEvent

	if p := ve.GetProperty(ics.ComponentPropertySummary); p != nil {
		e.Title = p.Value
	}

	e.AllDay = isAllDay(ve)

	if e.AllDay {
		e.Start, _ = ve.GetAllDayStartAt()
		e.End, _ = ve.GetAllDayEndAt()

		return e
	}

	if start, err := ve.GetStartAt(); err == nil {
		e.Start = start.In(time.Local)
	}

	if end, err := ve.GetEndAt(); err == nil {
		e.End = end.In(time.Local)
	} else if d, ok := eventDuration(ve); ok && !e.Start.IsZero() {
		e.End = e.Start.Add(d)
	}

	return e
}

// eventDuration reads a positive DURATION property such as PT1H30M or P1W.
func eventDuration(ve *ics.VEvent) (time.Duration, bool) {
	p := ve.GetProperty(propDuration)
	if p == nil {
		return 0, false
	}

	d, err := duration.Parse(strings.TrimSpace(p.Value))
	if err != nil {
		return 0, false
	}

	td := d.ToTimeDuration()

	return td, td > 0
}

// expand returns one event per occurrence of rule that overlaps
// [from, to). Occurrences keep the length of the first instance.
func expand(
	ve *ics.VEvent,
	first slots.CalendarEvent,
	rule string,
	from, to time.Time,
) ([]slots.CalendarEvent, error) {
	if first.Start.IsZero() || first.End.Before(first.Start) {
		return []slots.CalendarEvent{first}, nil
	}

	r, err := rrule.StrToRRule(rule)
	if err != nil {
		return nil, err
	}

	// Weekdays and wall-clock times recur in the zone DTSTART was written in.
	dtstart, err := ve.GetStartAt()
	if err != nil {
		dtstart = first.Start
	}

	r.DTStart(dtstart)

	length := first.End.Sub(first.Start)
	excluded := exdates(ve, dtstart.Location())

	var out []slots.CalendarEvent

	for _, start := range r.Between(from.Add(-length), to, true) {
		if excluded[start.Unix()] {
			continue
		}

		e := first
		e.Start = start.In(first.Start.Location())
		e.End = e.Start.Add(length)
		out = append(out, e)
	}

	return out, nil
}

// exdates collects the EXDATE instants of ve, keyed by Unix time.
func exdates(ve *ics.VEvent, loc *time.Location) map[int64]bool {
	out := make(map[int64]bool)

	for _, p := range ve.Properties {
		if p.IANAToken != string(ics.PropertyExdate) {
			continue
		}

		pl := loc
		if tz := p.ICalParameters["TZID"]; len(tz) == 1 {
			if l, err := time.LoadLocation(tz[0]); err == nil {
				pl = l
			}
		}

		for _, v := range strings.Split(p.Value, ",") {
			if t, ok := parseExdate(strings.TrimSpace(v), pl); ok {
				out[t.Unix()] = true
			}
		}
	}

	return out
}

func parseExdate(v string, loc *time.Location) (time.Time, bool) {
	if strings.HasSuffix(v, "Z") {
		t, err := time.Parse("20060102T150405Z", v)
		return t, err == nil
	}

	for _, layout := range exdateLayouts {
		if t, err := time.ParseInLocation(layout, v, loc); err == nil {
			return t, true
		}
	}

	return time.Time{}, false
}

// isAllDay reports whether DTSTART is a date rather than a date-time.
func isAllDay(ve *ics.VEvent) bool {
	p := ve.GetProperty(ics.ComponentPropertyDtStart)
	if p == nil {
		return false
	}

	if slices.Contains(p.ICalParameters["VALUE"], "DATE") {
		return true
	}

	return len(p.Value) == len("20060102") && !strings.Contains(p.Value, "T")
}
