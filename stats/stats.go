package stats

import (
	"cmp"
	"errors"
	"math"
	"slices"
	"time"

	"github.com/ayoisaiah/studyfocus/internal/models"
	"github.com/ayoisaiah/studyfocus/internal/timeutil"
	"github.com/ayoisaiah/studyfocus/slots"
)

// Summary is the set of derived counters shown to the user.
type Summary struct {
	TodaysMinutes int `json:"todays_minutes"`
	WeeklyMinutes int `json:"weekly_minutes"`
	CurrentStreak int `json:"current_streak"`
	LongestStreak int `json:"longest_streak"`
	SessionsToday int `json:"sessions_today"`
	TotalSessions int `json:"total_sessions"`
}

// StudyStats describes the completed sessions of a recent period.
type StudyStats struct {
	MethodBreakdown map[string]int     `json:"method_breakdown"`
	BestTimeOfDay   timeutil.TimeOfDay `json:"best_time_of_day,omitempty"`
	TotalSessions   int                `json:"total_sessions"`
	TotalMinutes    int                `json:"total_minutes"`
	AverageSession  int                `json:"average_session"`
	// Consistency is the percentage of days in the period with at least one
	// completed session.
	Consistency int `json:"consistency"`
}

// History converts the stats into the input used for slot recommendations.
func (s StudyStats) History() slots.History {
	return slots.History{
		BestTimeOfDay: s.BestTimeOfDay,
		Consistency:   s.Consistency,
	}
}

// Aggregator derives streaks and totals from a SessionStore.
type Aggregator struct {
	sessions *SessionStore
	options
}

// NewAggregator returns an Aggregator over sessions.
func NewAggregator(sessions *SessionStore, opts ...Option) *Aggregator {
	return &Aggregator{
		sessions: sessions,
		options:  newOptions(opts),
	}
}

// UpdateStreak records that a counting session was completed at
// completedOn. Studying again on the same day changes nothing, studying on
// the day after the last study day extends the streak, and anything else
// starts a new streak of one. Completions dated before the last study day
// are ignored.
func (a *Aggregator) UpdateStreak(completedOn time.Time) (models.StreakState, error) {
	state, err := a.sessions.db.Streak()
	if err != nil {
		a.logger.Error("load streak failed", "error", err)
		return models.StreakState{}, errLoadStreak.Wrap(err)
	}

	day := timeutil.DateKey(completedOn, a.loc)

	if state.LastStudyDate != "" && day <= state.LastStudyDate {
		return state, nil
	}

	yesterday, err := timeutil.ShiftDateKey(day, -1)
	if err != nil {
		return state, err
	}

	if state.LastStudyDate == yesterday {
		state.Current++
	} else {
		state.Current = 1
	}

	state.Longest = max(state.Longest, state.Current)
	state.LastStudyDate = day

	if err := a.sessions.db.UpdateStreak(state); err != nil {
		a.logger.Error("save streak failed", "error", err)
		return state, errSaveStreak.Wrap(err)
	}

	a.logger.Debug(
		"streak updated",
		"current", state.Current,
		"longest", state.Longest,
		"date", day,
	)

	return state, nil
}

// Recompute derives the summary counters. The current streak is reported
// as zero once a full day has passed without study, without modifying the
// stored state. Storage failures are returned alongside whatever could
// still be computed.
func (a *Aggregator) Recompute() (Summary, error) {
	var (
		sum  Summary
		errs []error
	)

	all, err := a.sessions.All()
	if err != nil {
		errs = append(errs, err)
	}

	today := a.today()
	todays := filterDays(all, today, 1)

	sum.TotalSessions = len(all)
	sum.SessionsToday = len(todays)
	sum.TodaysMinutes = minutes(todays)
	sum.WeeklyMinutes = minutes(filterDays(all, today, WeekDays))

	state, err := a.sessions.db.Streak()
	if err != nil {
		errs = append(errs, errLoadStreak.Wrap(err))
	}

	sum.LongestStreak = state.Longest
	sum.CurrentStreak = state.Current

	yesterday, _ := timeutil.ShiftDateKey(today, -1)
	if state.LastStudyDate < yesterday {
		sum.CurrentStreak = 0
	}

	return sum, errors.Join(errs...)
}

// History returns the sessions of the last days calendar days, newest
// first.
func (a *Aggregator) History(days int) ([]models.SessionRecord, error) {
	recent, err := a.sessions.LastNDays(days)

	slices.SortStableFunc(recent, func(x, y models.SessionRecord) int {
		return y.StartTime.Compare(x.StartTime)
	})

	return recent, err
}

// MethodBreakdown counts completed sessions per study method.
func (a *Aggregator) MethodBreakdown() (map[string]int, error) {
	all, err := a.sessions.All()

	return breakdown(all), err
}

// StudyStats summarises the completed sessions started within the last
// days days.
func (a *Aggregator) StudyStats(days int) (StudyStats, error) {
	all, err := a.sessions.All()

	st := StudyStats{MethodBreakdown: map[string]int{}}
	if days <= 0 {
		return st, err
	}

	cutoff := timeutil.AddDays(a.clock.Now(), -days)

	var recent []models.SessionRecord

	for _, r := range all {
		if r.Completed && !r.StartTime.Before(cutoff) {
			recent = append(recent, r)
		}
	}

	if len(recent) == 0 {
		return st, err
	}

	st.TotalSessions = len(recent)
	st.TotalMinutes = minutes(recent)
	st.AverageSession = timeutil.Round(float64(st.TotalMinutes) / float64(st.TotalSessions))
	st.MethodBreakdown = breakdown(recent)
	st.BestTimeOfDay = bestTimeOfDay(recent, a.loc)

	uniqueDays := make(map[string]bool)
	for _, r := range recent {
		uniqueDays[timeutil.DateKey(r.StartTime, a.loc)] = true
	}

	st.Consistency = int(math.Round(float64(len(uniqueDays)) / float64(days) * 100))

	return st, err
}

// Streak returns the stored streak state.
func (a *Aggregator) Streak() (models.StreakState, error) {
	state, err := a.sessions.db.Streak()
	if err != nil {
		return models.StreakState{}, errLoadStreak.Wrap(err)
	}

	return state, nil
}

// MergeStreak adopts an imported streak when its last study day is more
// recent than the stored one. The longest streak keeps the larger value.
func (a *Aggregator) MergeStreak(in models.StreakState) (models.StreakState, error) {
	state, err := a.Streak()
	if err != nil {
		return state, err
	}

	merged := state
	if in.LastStudyDate > state.LastStudyDate {
		merged.LastStudyDate = in.LastStudyDate
		merged.Current = in.Current
	}

	merged.Longest = max(state.Longest, in.Longest, merged.Current)

	if merged == state {
		return state, nil
	}

	if err := a.sessions.db.UpdateStreak(merged); err != nil {
		a.logger.Error("save streak failed", "error", err)
		return state, errSaveStreak.Wrap(err)
	}

	return merged, nil
}

// Reset deletes all sessions and the streak.
func (a *Aggregator) Reset() error {
	return a.sessions.Clear()
}

func (a *Aggregator) today() string {
	return timeutil.DateKey(a.clock.Now(), a.loc)
}

func minutes(records []models.SessionRecord) int {
	var total int
	for _, r := range records {
		total += r.DurationMinutes
	}

	return total
}

func breakdown(records []models.SessionRecord) map[string]int {
	m := make(map[string]int)

	for _, r := range records {
		if r.Completed {
			m[r.MethodKey]++
		}
	}

	return m
}

// bestTimeOfDay returns the part of the day with the most sessions. Ties
// go to the earlier part of the day.
func bestTimeOfDay(records []models.SessionRecord, loc *time.Location) timeutil.TimeOfDay {
	order := []timeutil.TimeOfDay{
		timeutil.Morning,
		timeutil.Afternoon,
		timeutil.Evening,
		timeutil.Night,
	}

	counts := make(map[timeutil.TimeOfDay]int)
	for _, r := range records {
		counts[timeutil.TimeOfDayOf(r.StartTime.In(loc))]++
	}

	return slices.MaxFunc(order, func(x, y timeutil.TimeOfDay) int {
		return cmp.Compare(counts[x], counts[y])
	})
}
