package calendar_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ayoisaiah/studyfocus/calendar"
	"github.com/ayoisaiah/studyfocus/slots"
)

const icsFixture = `BEGIN:VCALENDAR
VERSION:2.0
PRODID:-//studyfocus//test//EN
BEGIN:VEVENT
UID:lecture@example.com
DTSTAMP:20240301T120000Z
SUMMARY:Lecture
DTSTART:20240304T090000Z
DTEND:20240304T103000Z
END:VEVENT
BEGIN:VEVENT
UID:holiday@example.com
DTSTAMP:20240301T120000Z
SUMMARY:Holiday
DTSTART;VALUE=DATE:20240305
DTEND;VALUE=DATE:20240306
END:VEVENT
BEGIN:VEVENT
UID:later@example.com
DTSTAMP:20240301T120000Z
SUMMARY:Next month
DTSTART:20240404T090000Z
DTEND:20240404T100000Z
END:VEVENT
END:VCALENDAR
`

const yamlFixture = `
- title: Lab
  start: 2024-03-04T13:00:00Z
  end: 2024-03-04T15:00:00Z
- title: Gym
  start: 2024-03-04 18:00
  end: 2024-03-04 19:00
- title: Trip
  start: 2024-03-05
  all_day: true
- title: Old
  start: 2024-02-01 09:00
  end: 2024-02-01 10:00
`

var (
	from = time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)
	to   = time.Date(2024, 3, 7, 0, 0, 0, 0, time.UTC)
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestICSFile(t *testing.T) {
	path := writeFile(t, "cal.ics", strings.ReplaceAll(icsFixture, "\n", "\r\n"))

	p, err := calendar.Open(path)
	require.NoError(t, err)
	require.IsType(t, &calendar.ICSFile{}, p)

	events, err := p.Events(context.Background(), from, to)
	require.NoError(t, err)
	require.Len(t, events, 2)

	lecture := events[0]
	assert.Equal(t, "Lecture", lecture.Title)
	assert.False(t, lecture.AllDay)
	assert.True(t, lecture.Start.Equal(time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC)))
	assert.True(t, lecture.End.Equal(time.Date(2024, 3, 4, 10, 30, 0, 0, time.UTC)))

	holiday := events[1]
	assert.Equal(t, "Holiday", holiday.Title)
	assert.True(t, holiday.AllDay)
}

func TestYAMLFile(t *testing.T) {
	path := writeFile(t, "cal.yaml", yamlFixture)

	p, err := calendar.Open(path)
	require.NoError(t, err)
	require.IsType(t, &calendar.YAMLFile{}, p)

	events, err := p.Events(context.Background(), from, to)
	require.NoError(t, err)
	require.Len(t, events, 3)

	assert.Equal(t, "Lab", events[0].Title)
	assert.True(t, events[0].Start.Equal(time.Date(2024, 3, 4, 13, 0, 0, 0, time.UTC)))

	gym := events[1]
	assert.Equal(t, time.Local, gym.Start.Location())
	assert.Equal(t, 18, gym.Start.Hour())
	assert.Equal(t, time.Hour, gym.End.Sub(gym.Start))

	assert.True(t, events[2].AllDay)
	assert.True(t, events[2].End.IsZero())
}

func TestYAMLFileSkipsUnreadableEvents(t *testing.T) {
	path := writeFile(t, "cal.yml", `
- title: Seminar
  start: 2024-03-04 09:00
  end: 2024-03-04 10:00
- title: Typo
  start: 2024-03-04 1x:00
  end: 2024-03-04 12:00
- title: Nope
  start: next tuesday-ish
`)

	p := &calendar.YAMLFile{Path: path}

	events, err := p.Events(context.Background(), from, to)
	require.NoError(t, err)
	require.Len(t, events, 1)

	assert.Equal(t, "Seminar", events[0].Title)
	assert.Equal(t, 9, events[0].Start.Hour())
	assert.Equal(t, time.Hour, events[0].End.Sub(events[0].Start))
}

func TestICSFileDuration(t *testing.T) {
	path := writeFile(t, "cal.ics", strings.ReplaceAll(`BEGIN:VCALENDAR
VERSION:2.0
PRODID:-//studyfocus//test//EN
BEGIN:VEVENT
UID:duration@example.com
DTSTAMP:20240301T120000Z
SUMMARY:Lecture
DTSTART:20240304T100000Z
DURATION:PT2H
END:VEVENT
END:VCALENDAR
`, "\n", "\r\n"))

	p := &calendar.ICSFile{Path: path}

	events, err := p.Events(context.Background(), from, to)
	require.NoError(t, err)
	require.Len(t, events, 1)

	lecture := events[0]
	assert.True(t, lecture.Start.Equal(time.Date(2024, 3, 4, 10, 0, 0, 0, time.UTC)))
	assert.True(t, lecture.End.Equal(time.Date(2024, 3, 4, 12, 0, 0, 0, time.UTC)))

	windowStart := time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC)
	windowEnd := time.Date(2024, 3, 4, 13, 0, 0, 0, time.UTC)

	free := slots.New().Find(events, windowStart, windowEnd, 30)
	require.Len(t, free, 2)

	for _, s := range free {
		assert.False(t, s.Start.Before(lecture.End) && s.End.After(lecture.Start),
			"slot %s-%s overlaps the lecture", s.Start, s.End)
	}
}

func TestICSFileRecurrence(t *testing.T) {
	path := writeFile(t, "cal.ics", strings.ReplaceAll(`BEGIN:VCALENDAR
VERSION:2.0
PRODID:-//studyfocus//test//EN
BEGIN:VEVENT
UID:weekly@example.com
DTSTAMP:20240201T120000Z
SUMMARY:Weekly lecture
DTSTART:20240205T090000Z
DTEND:20240205T100000Z
RRULE:FREQ=WEEKLY;BYDAY=MO
EXDATE:20240311T090000Z
END:VEVENT
END:VCALENDAR
`, "\n", "\r\n"))

	p := &calendar.ICSFile{Path: path}

	weeks := time.Date(2024, 3, 19, 0, 0, 0, 0, time.UTC)

	events, err := p.Events(context.Background(), from, weeks)
	require.NoError(t, err)
	require.Len(t, events, 2)

	assert.True(t, events[0].Start.Equal(time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC)))
	assert.True(t, events[1].Start.Equal(time.Date(2024, 3, 18, 9, 0, 0, 0, time.UTC)))
	assert.Equal(t, time.Hour, events[1].End.Sub(events[1].Start))
	assert.Equal(t, "Weekly lecture", events[1].Title)
}

func TestOpenUnsupported(t *testing.T) {
	_, err := calendar.Open("events.csv")
	assert.ErrorIs(t, err, calendar.ErrUnsupportedFormat)
}

func TestMissingFile(t *testing.T) {
	p := &calendar.ICSFile{Path: filepath.Join(t.TempDir(), "missing.ics")}

	_, err := p.Events(context.Background(), from, to)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := &calendar.YAMLFile{Path: "unused.yml"}

	_, err := p.Events(ctx, from, to)
	assert.ErrorIs(t, err, context.Canceled)
}
