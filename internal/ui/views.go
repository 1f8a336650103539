package ui

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/hako/durafmt"
	"github.com/maruel/natural"
	"github.com/pterm/pterm"

	"github.com/ayoisaiah/studyfocus/internal/models"
	"github.com/ayoisaiah/studyfocus/internal/notify"
	"github.com/ayoisaiah/studyfocus/method"
	"github.com/ayoisaiah/studyfocus/slots"
	"github.com/ayoisaiah/studyfocus/stats"
)

const progressWidth = 30

// ClockLayout returns the time-of-day layout for the user's clock
// preference.
func ClockLayout(twentyFourHour bool) string {
	if twentyFourHour {
		return "15:04"
	}

	return "03:04 PM"
}

// FormatRemaining renders seconds as MM:SS, or H:MM:SS from an hour up.
func FormatRemaining(secs int) string {
	if secs < 0 {
		secs = 0
	}

	h := secs / 3600
	m := (secs % 3600) / 60
	s := secs % 60

	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}

	return fmt.Sprintf("%02d:%02d", m, s)
}

// ProgressBar renders p (0 to 1) as a fixed-width bar.
func ProgressBar(p float64) string {
	p = min(max(p, 0), 1)

	filled := int(p * progressWidth)

	return "[" + strings.Repeat("=", filled) +
		strings.Repeat(" ", progressWidth-filled) + "]"
}

// Countdown is the single-line view of a running session.
func Countdown(name string, remaining int, progress float64, paused bool) string {
	state := ""
	if paused {
		state = " " + Yellow("[Paused]")
	}

	return fmt.Sprintf(
		"%s %s %s%s",
		Highlight(name),
		Green(FormatRemaining(remaining)),
		ProgressBar(progress),
		state,
	)
}

// HistoryHeader is the header row of HistoryRows.
var HistoryHeader = []string{"#", "DATE", "START", "END", "METHOD", "MINUTES", "SWITCHES", "STATUS"}

// HistoryRows renders session records as table rows.
func HistoryRows(records []models.SessionRecord, layout string) [][]string {
	rows := make([][]string, 0, len(records))

	for i := range records {
		r := records[i]

		status := Green("completed")
		if !r.Completed {
			status = Red("abandoned")
		}

		rows = append(rows, []string{
			fmt.Sprintf("%d", i+1),
			r.Date,
			r.StartTime.Format(layout),
			r.EndTime.Format(layout),
			r.MethodKey,
			fmt.Sprintf("%d", r.DurationMinutes),
			fmt.Sprintf("%d", r.SwitchAttempts),
			status,
		})
	}

	return rows
}

// SlotHeader is the header row of SlotRows.
var SlotHeader = []string{"#", "START", "END", "MINUTES", "TIME OF DAY", "QUALITY", "SUGGESTED"}

// SlotRows renders free slots as table rows.
func SlotRows(s []slots.FreeSlot, layout string) [][]string {
	rows := make([][]string, 0, len(s))

	for i := range s {
		slot := s[i]

		suggested := "-"
		if slot.SuggestedMethod != nil {
			suggested = slot.SuggestedMethod.Name
		}

		rows = append(rows, []string{
			fmt.Sprintf("%d", i+1),
			slot.Start.Format(layout),
			slot.End.Format(layout),
			fmt.Sprintf("%d", slot.DurationMinutes),
			string(slot.TimeOfDay),
			Quality(slot.QualityScore),
			suggested,
		})
	}

	return rows
}

// RecommendationHeader is the header row of RecommendationRows.
var RecommendationHeader = []string{"PRIORITY", "START", "MINUTES", "CONFIDENCE", "REASON"}

// RecommendationRows renders recommendations as table rows.
func RecommendationRows(recs []slots.Recommendation, layout string) [][]string {
	rows := make([][]string, 0, len(recs))

	for _, r := range recs {
		rows = append(rows, []string{
			fmt.Sprintf("%d", r.Priority),
			r.Slot.Start.Format(layout),
			fmt.Sprintf("%d", r.Slot.DurationMinutes),
			fmt.Sprintf("%d%%", r.Confidence),
			r.Reason,
		})
	}

	return rows
}

// MethodHeader is the header row of MethodRows.
var MethodHeader = []string{"KEY", "NAME", "MINUTES", "DESCRIPTION"}

// MethodRows renders catalog entries as table rows, marking the default.
func MethodRows(methods []method.Method, defaultKey string) [][]string {
	rows := make([][]string, 0, len(methods))

	for _, m := range methods {
		key := m.Key
		if key == defaultKey {
			key = Green(key + " *")
		}

		rows = append(rows, []string{
			key,
			m.Name,
			fmt.Sprintf("%d", m.DurationMinutes()),
			m.Description,
		})
	}

	return rows
}

// PrintStats writes the streak summary and period statistics.
func PrintStats(w io.Writer, sum stats.Summary, st stats.StudyStats, days int) {
	header := func(s string) {
		fmt.Fprintln(w, pterm.DefaultSection.Sprint(s))
	}

	line := func(label string, value any) {
		fmt.Fprintf(w, "%s: %s\n", label, Highlight(value))
	}

	header("Today")
	line("Sessions", sum.SessionsToday)
	line("Study time", formatMinutes(sum.TodaysMinutes))

	header("Streak")
	line("Current", pluralDays(sum.CurrentStreak))
	line("Longest", pluralDays(sum.LongestStreak))

	header(fmt.Sprintf("Last %d days", days))
	line("Sessions", st.TotalSessions)
	line("Study time", formatMinutes(st.TotalMinutes))
	line("Average session", formatMinutes(st.AverageSession))
	line("Consistency", fmt.Sprintf("%d%%", st.Consistency))

	if st.BestTimeOfDay != "" {
		line("Best time of day", st.BestTimeOfDay)
	}

	if len(st.MethodBreakdown) == 0 {
		return
	}

	keys := make([]string, 0, len(st.MethodBreakdown))
	for k := range st.MethodBreakdown {
		keys = append(keys, k)
	}

	sort.Slice(keys, func(i, j int) bool {
		return natural.Less(keys[i], keys[j])
	})

	rows := make([][]string, 0, len(keys))
	for _, k := range keys {
		rows = append(rows, []string{k, fmt.Sprintf("%d", st.MethodBreakdown[k])})
	}

	header("Methods")
	PrintTable([]string{"METHOD", "SESSIONS"}, rows, w)
}

// StatusLine describes the session recorded in the status file.
func StatusLine(s notify.Status, now time.Time) string {
	remaining := s.Remaining
	if s.State == "running" {
		remaining = int(s.EndTime.Sub(now).Round(time.Second) / time.Second)
	}

	out := fmt.Sprintf("%s %s (%s)", s.Method, FormatRemaining(remaining), s.State)

	if s.Blocking {
		out += fmt.Sprintf(" | guard: %s, %d switches", s.BlockingLevel, s.SwitchAttempts)
	}

	if s.Indicator != "" {
		out += " | " + s.Indicator
	}

	return out
}

// FormatDuration renders d in at most two units, e.g. "1 hour 10 minutes".
func FormatDuration(d time.Duration) string {
	if d < time.Second {
		return "0 seconds"
	}

	//nolint:gomnd // limit to first 2 units
	return durafmt.Parse(d).LimitToUnit("hours").LimitFirstN(2).String()
}

func formatMinutes(mins int) string {
	if mins <= 0 {
		return "0 minutes"
	}

	return FormatDuration(time.Duration(mins) * time.Minute)
}

func pluralDays(n int) string {
	if n == 1 {
		return "1 day"
	}

	return fmt.Sprintf("%d days", n)
}
