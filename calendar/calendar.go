// Package calendar loads busy intervals from local calendar files for the
// free slot finder.
package calendar

import (
	"context"
	"path/filepath"
	"strings"
	"time"

	"github.com/ayoisaiah/studyfocus/slots"
)

// Provider supplies the calendar events overlapping a date range.
type Provider interface {
	Events(ctx context.Context, from, to time.Time) ([]slots.CalendarEvent, error)
}

// Open returns the provider matching the file extension of path.
func Open(path string) (Provider, error) {
	ext := strings.ToLower(filepath.Ext(path))

	switch ext {
	case ".ics", ".ical", ".ifb":
		return &ICSFile{Path: path}, nil
	case ".yml", ".yaml":
		return &YAMLFile{Path: path}, nil
	}

	return nil, errUnsupportedFormat.Fmt(ext)
}

// overlapping keeps the events that intersect [from, to). Events without
// a usable end are kept so the slot finder can treat them as malformed.
func overlapping(events []slots.CalendarEvent, from, to time.Time) []slots.CalendarEvent {
	out := make([]slots.CalendarEvent, 0, len(events))

	for _, e := range events {
		if !e.End.IsZero() && !e.End.After(from) {
			continue
		}

		if !e.Start.IsZero() && !e.Start.Before(to) {
			continue
		}

		out = append(out, e)
	}

	return out
}
