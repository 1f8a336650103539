package calendar

import (
	"context"
	"log/slog"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/ayoisaiah/studyfocus/slots"
)

var localLayouts = []string{
	"2006-01-02 15:04",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// YAMLFile reads events from a hand-maintained YAML list:
//
//	- title: Lecture
//	  start: 2024-03-04 09:00
//	  end: 2024-03-04 10:30
//	- title: Holiday
//	  start: 2024-03-08
//	  all_day: true
//
// Times without an offset are interpreted in the local time zone. Events
// whose times cannot be read are logged and skipped.
type YAMLFile struct {
	Path string
}

type yamlEvent struct {
	Title  string `yaml:"title"`
	Start  string `yaml:"start"`
	End    string `yaml:"end"`
	AllDay bool   `yaml:"all_day"`
}

func (f *YAMLFile) Events(ctx context.Context, from, to time.Time) ([]slots.CalendarEvent, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	b, err := os.ReadFile(f.Path)
	if err != nil {
		return nil, errReadCalendar.Fmt(f.Path).Wrap(err)
	}

	var raw []yamlEvent

	if err := yaml.Unmarshal(b, &raw); err != nil {
		return nil, errParseYAML.Fmt(f.Path).Wrap(err)
	}

	events := make([]slots.CalendarEvent, 0, len(raw))

	for _, r := range raw {
		e := slots.CalendarEvent{
			Title:  r.Title,
			AllDay: r.AllDay,
		}

		e.Start, err = parseTime(r.Title, r.Start)
		if err == nil {
			e.End, err = parseTime(r.Title, r.End)
		}

		if err != nil {
			slog.Warn(
				"skipping calendar event",
				slog.String("file", f.Path),
				slog.Any("error", err),
			)

			continue
		}

		events = append(events, e)
	}

	return overlapping(events, from, to), nil
}

func parseTime(title, s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}

	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.In(time.Local), nil
	}

	for _, layout := range localLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, nil
		}
	}

	return time.Time{}, errParseTime.Fmt(title, s)
}
