// Package stats keeps the session log and derives totals and streaks from
// it.
package stats

import (
	"log/slog"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/ayoisaiah/studyfocus/internal/clock"
	"github.com/ayoisaiah/studyfocus/internal/models"
	"github.com/ayoisaiah/studyfocus/internal/timeutil"
	"github.com/ayoisaiah/studyfocus/store"
)

// WeekDays is the length of the weekly window.
const WeekDays = 7

type options struct {
	clock  clock.Clock
	loc    *time.Location
	logger *slog.Logger
}

// Option configures a SessionStore or Aggregator.
type Option func(*options)

// WithClock sets the time source used to find "today".
func WithClock(c clock.Clock) Option {
	return func(o *options) {
		o.clock = c
	}
}

// WithLocation sets the zone in which calendar dates are computed.
// Defaults to the local zone.
func WithLocation(loc *time.Location) Option {
	return func(o *options) {
		o.loc = loc
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

func newOptions(opts []Option) options {
	o := options{
		clock:  clock.System{},
		loc:    time.Local,
		logger: slog.Default(),
	}

	for _, opt := range opts {
		opt(&o)
	}

	return o
}

// SessionStore is the append-only session log.
type SessionStore struct {
	db store.DB
	options
}

// NewSessionStore returns a SessionStore backed by db.
func NewSessionStore(db store.DB, opts ...Option) *SessionStore {
	return &SessionStore{
		db:      db,
		options: newOptions(opts),
	}
}

// Append stores rec and returns it as saved. A missing ID is generated and
// a missing Date is derived from StartTime in the store's zone.
func (s *SessionStore) Append(rec models.SessionRecord) (models.SessionRecord, error) {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}

	if rec.StartTime.IsZero() {
		rec.StartTime = s.clock.Now()
	}

	if rec.EndTime.IsZero() {
		rec.EndTime = rec.StartTime.Add(time.Duration(rec.DurationMinutes) * time.Minute)
	}

	if rec.Date == "" {
		rec.Date = timeutil.DateKey(rec.StartTime, s.loc)
	}

	if err := s.db.AppendSession(&rec); err != nil {
		s.logger.Error("append session failed", "id", rec.ID, "error", err)
		return rec, errSaveSession.Wrap(err)
	}

	s.logger.Debug("session appended", "id", rec.ID, "method", rec.MethodKey)

	return rec, nil
}

// All returns every record in append order. On a storage failure it
// returns an empty log and the error.
func (s *SessionStore) All() ([]models.SessionRecord, error) {
	all, err := s.db.Sessions()
	if err != nil {
		s.logger.Error("load sessions failed", "error", err)
		return []models.SessionRecord{}, errLoadSessions.Wrap(err)
	}

	if all == nil {
		all = []models.SessionRecord{}
	}

	return all, nil
}

// Today returns the records dated today.
func (s *SessionStore) Today() ([]models.SessionRecord, error) {
	return s.LastNDays(1)
}

// Weekly returns the records of the last seven days, today included.
func (s *SessionStore) Weekly() ([]models.SessionRecord, error) {
	return s.LastNDays(WeekDays)
}

// LastNDays returns the records dated within the last n calendar days,
// today included.
func (s *SessionStore) LastNDays(n int) ([]models.SessionRecord, error) {
	all, err := s.All()
	if err != nil {
		return all, err
	}

	return filterDays(all, s.today(), n), nil
}

// Clear deletes every record and the streak.
func (s *SessionStore) Clear() error {
	if err := s.db.Clear(); err != nil {
		return errClear.Wrap(err)
	}

	s.logger.Info("study data cleared")

	return nil
}

// Import appends the records whose IDs are not already stored and returns
// how many were added.
func (s *SessionStore) Import(records []models.SessionRecord) (int, error) {
	existing, err := s.All()
	if err != nil {
		return 0, err
	}

	seen := make(map[string]bool, len(existing))
	for _, r := range existing {
		seen[r.ID] = true
	}

	var n int

	for _, r := range records {
		if r.ID != "" && seen[r.ID] {
			continue
		}

		saved, err := s.Append(r)
		if err != nil {
			return n, err
		}

		seen[saved.ID] = true
		n++
	}

	return n, nil
}

func (s *SessionStore) today() string {
	return timeutil.DateKey(s.clock.Now(), s.loc)
}

// filterDays keeps the records dated in the n days ending on today.
func filterDays(all []models.SessionRecord, today string, n int) []models.SessionRecord {
	if n <= 0 {
		return []models.SessionRecord{}
	}

	first, err := timeutil.ShiftDateKey(today, -(n - 1))
	if err != nil {
		return []models.SessionRecord{}
	}

	return slices.DeleteFunc(slices.Clone(all), func(r models.SessionRecord) bool {
		return r.Date < first || r.Date > today
	})
}
