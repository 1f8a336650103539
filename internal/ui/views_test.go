package ui

import (
	"bytes"
	"testing"
	"time"

	"github.com/pterm/pterm"
	"github.com/stretchr/testify/assert"

	"github.com/ayoisaiah/studyfocus/internal/models"
	"github.com/ayoisaiah/studyfocus/internal/notify"
	"github.com/ayoisaiah/studyfocus/method"
	"github.com/ayoisaiah/studyfocus/slots"
	"github.com/ayoisaiah/studyfocus/stats"
)

func plain(rows [][]string) [][]string {
	out := make([][]string, len(rows))

	for i, row := range rows {
		out[i] = make([]string, len(row))
		for j, cell := range row {
			out[i][j] = pterm.RemoveColorFromString(cell)
		}
	}

	return out
}

func TestFormatRemaining(t *testing.T) {
	testCases := []struct {
		want string
		secs int
	}{
		{"00:00", 0},
		{"00:00", -5},
		{"00:59", 59},
		{"25:00", 1500},
		{"59:59", 3599},
		{"1:00:00", 3600},
		{"2:00:01", 7201},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.want, FormatRemaining(tc.secs), "secs=%d", tc.secs)
	}
}

func TestProgressBar(t *testing.T) {
	assert.Equal(t, "["+pad("", 30)+"]", ProgressBar(0))
	assert.Equal(t, "["+fill(15)+pad("", 15)+"]", ProgressBar(0.5))
	assert.Equal(t, "["+fill(30)+"]", ProgressBar(1))
	assert.Equal(t, "["+fill(30)+"]", ProgressBar(1.7))
	assert.Equal(t, "["+pad("", 30)+"]", ProgressBar(-1))
}

func fill(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = '='
	}

	return string(b)
}

func pad(s string, n int) string {
	for len(s) < n {
		s += " "
	}

	return s
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "0 seconds", FormatDuration(0))
	assert.Equal(t, "45 seconds", FormatDuration(45*time.Second))
	assert.Equal(t, "25 minutes", FormatDuration(25*time.Minute))
	assert.Equal(t, "2 hours 5 minutes", FormatDuration(125*time.Minute+30*time.Second))
	assert.Equal(t, "0 minutes", formatMinutes(0))
}

func TestHistoryRows(t *testing.T) {
	start := time.Date(2024, 3, 9, 9, 0, 0, 0, time.UTC)

	rows := HistoryRows([]models.SessionRecord{
		{
			StartTime:       start,
			EndTime:         start.Add(25 * time.Minute),
			Date:            "2024-03-09",
			MethodKey:       "pomodoro",
			DurationMinutes: 25,
			SwitchAttempts:  3,
			Completed:       true,
		},
		{
			StartTime:       start.Add(time.Hour),
			EndTime:         start.Add(time.Hour + 10*time.Minute),
			Date:            "2024-03-09",
			MethodKey:       "focus",
			DurationMinutes: 10,
		},
	}, ClockLayout(true))

	assert.Equal(t, [][]string{
		{"1", "2024-03-09", "09:00", "09:25", "pomodoro", "25", "3", "completed"},
		{"2", "2024-03-09", "10:00", "10:10", "focus", "10", "0", "abandoned"},
	}, plain(rows))
}

func TestSlotRows(t *testing.T) {
	m := method.Defaults()[1]
	start := time.Date(2024, 3, 4, 14, 0, 0, 0, time.UTC)

	rows := SlotRows([]slots.FreeSlot{
		{
			Start:           start,
			End:             start.Add(40 * time.Minute),
			SuggestedMethod: &m,
			TimeOfDay:       "afternoon",
			DurationMinutes: 40,
			QualityScore:    55,
		},
		{
			Start:           start.Add(2 * time.Hour),
			End:             start.Add(2*time.Hour + 10*time.Minute),
			TimeOfDay:       "afternoon",
			DurationMinutes: 10,
			QualityScore:    30,
		},
	}, ClockLayout(false))

	assert.Equal(t, [][]string{
		{"1", "02:00 PM", "02:40 PM", "40", "afternoon", "55", "Pomodoro"},
		{"2", "04:00 PM", "04:10 PM", "10", "afternoon", "30", "-"},
	}, plain(rows))
}

func TestMethodRowsMarksDefault(t *testing.T) {
	rows := plain(MethodRows(method.Defaults()[:2], "pomodoro"))

	assert.Equal(t, "quick", rows[0][0])
	assert.Equal(t, "pomodoro *", rows[1][0])
	assert.Equal(t, "25", rows[1][2])
}

func TestRecommendationRows(t *testing.T) {
	start := time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC)

	rows := RecommendationRows([]slots.Recommendation{
		{
			Reason:     "High-quality time slot",
			Slot:       slots.FreeSlot{Start: start, DurationMinutes: 60},
			Priority:   1,
			Confidence: 90,
		},
	}, ClockLayout(true))

	assert.Equal(t, [][]string{
		{"1", "09:00", "60", "90%", "High-quality time slot"},
	}, rows)
}

func TestStatusLine(t *testing.T) {
	now := time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC)

	running := notify.Status{
		EndTime:        now.Add(90 * time.Second),
		Method:         "pomodoro",
		State:          "running",
		BlockingLevel:  "strict",
		Remaining:      1500,
		SwitchAttempts: 2,
		Blocking:       true,
	}

	assert.Equal(
		t,
		"pomodoro 01:30 (running) | guard: strict, 2 switches",
		StatusLine(running, now),
	)

	paused := notify.Status{
		Method:    "focus",
		State:     "paused",
		Remaining: 600,
		Indicator: "Focus mode active",
	}

	assert.Equal(t, "focus 10:00 (paused) | Focus mode active", StatusLine(paused, now))
}

func TestPrintStats(t *testing.T) {
	var buf bytes.Buffer

	PrintStats(&buf, stats.Summary{
		TodaysMinutes: 70,
		CurrentStreak: 1,
		LongestStreak: 4,
		SessionsToday: 2,
	}, stats.StudyStats{
		MethodBreakdown: map[string]int{"pomodoro": 3, "focus": 1},
		BestTimeOfDay:   "morning",
		TotalSessions:   4,
		TotalMinutes:    120,
		AverageSession:  30,
		Consistency:     43,
	}, 7)

	out := pterm.RemoveColorFromString(buf.String())

	for _, want := range []string{
		"Study time: 1 hour 10 minutes",
		"Average session: 30 minutes",
		"Current: 1 day",
		"Longest: 4 days",
		"Last 7 days",
		"Consistency: 43%",
		"Best time of day: morning",
		"pomodoro",
	} {
		assert.Contains(t, out, want)
	}
}
