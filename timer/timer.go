// Package timer implements the countdown state machine that drives a study
// session.
package timer

import (
	"log/slog"
	"sync"
	"time"

	"github.com/ayoisaiah/studyfocus/internal/clock"
	"github.com/ayoisaiah/studyfocus/internal/schedule"
	"github.com/ayoisaiah/studyfocus/method"
)

const defaultTickInterval = time.Second

// Status is the state of the countdown.
type Status int

const (
	Idle Status = iota
	Running
	Paused
	Completed
)

func (s Status) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Paused:
		return "paused"
	case Completed:
		return "completed"
	}

	return "unknown"
}

// State is a read-only snapshot of the timer.
type State struct {
	SessionStartedAt time.Time `json:"session_started_at"`
	MethodKey        string    `json:"method"`
	Status           Status    `json:"status"`
	Remaining        int       `json:"remaining"`
	ElapsedAtPause   int       `json:"elapsed_at_pause"`
	Progress         float64   `json:"progress"`
}

// Option configures a Timer.
type Option func(*Timer)

// WithClock sets the time source.
func WithClock(c clock.Clock) Option {
	return func(t *Timer) {
		t.clock = c
	}
}

// WithScheduler sets the scheduler that drives ticks.
func WithScheduler(s schedule.Scheduler) Option {
	return func(t *Timer) {
		t.sched = s
	}
}

// WithTickInterval sets how often the countdown is evaluated.
func WithTickInterval(d time.Duration) Option {
	return func(t *Timer) {
		t.tickInterval = d
	}
}

// WithLogger sets the logger used for transition logs.
func WithLogger(l *slog.Logger) Option {
	return func(t *Timer) {
		t.logger = l
	}
}

// Timer is a countdown over the duration of a study method. Elapsed time is
// always derived from the wall clock against a fixed anchor, so ticks that
// are skipped while the process is suspended are caught up on the next one.
type Timer struct {
	anchor           time.Time
	sessionStartedAt time.Time
	clock            clock.Clock
	sched            schedule.Scheduler
	catalog          *method.Catalog
	logger           *slog.Logger
	cancelTick       schedule.CancelFunc
	method           method.Method
	observers        observers
	tickInterval     time.Duration
	remaining        int
	elapsedAtPause   int
	gen              uint64
	status           Status
	mu               sync.Mutex
}

// New creates an idle timer for the given method.
func New(catalog *method.Catalog, methodKey string, opts ...Option) (*Timer, error) {
	m, err := catalog.Get(methodKey)
	if err != nil {
		return nil, err
	}

	t := &Timer{
		catalog:      catalog,
		method:       m,
		clock:        clock.System{},
		sched:        schedule.Ticker{},
		tickInterval: defaultTickInterval,
		logger:       slog.Default(),
	}

	for _, opt := range opts {
		opt(t)
	}

	if t.tickInterval <= 0 || t.tickInterval > time.Second {
		return nil, errTickTooSlow.Fmt(t.tickInterval)
	}

	t.remaining = m.DurationSeconds()

	return t, nil
}

// Subscribe registers fn for timer events. Events are delivered in
// transition order on the goroutine that caused the transition. The
// returned function removes the subscription.
func (t *Timer) Subscribe(fn func(Event)) func() {
	return t.observers.add(fn)
}

// Start begins a session from Idle or resumes one from Paused. It is a
// no-op in any other state.
func (t *Timer) Start() {
	t.mu.Lock()

	now := t.clock.Now()

	var ev Event

	switch t.status {
	case Idle:
		t.sessionStartedAt = now
		t.anchor = now
		t.elapsedAtPause = 0
		t.remaining = t.method.DurationSeconds()
		t.status = Running
		ev = t.eventLocked(EventStarted, now)
	case Paused:
		t.anchor = now.Add(-time.Duration(t.elapsedAtPause) * time.Second)
		t.status = Running
		ev = t.eventLocked(EventResumed, now)
	default:
		t.mu.Unlock()
		return
	}

	t.scheduleLocked()
	t.mu.Unlock()

	t.logger.Debug("timer running", "method", t.method.Key, "event", ev.Kind)

	t.observers.emit(ev)
}

// Pause freezes the countdown. Only valid while Running.
func (t *Timer) Pause() {
	t.mu.Lock()

	if t.status != Running {
		t.mu.Unlock()
		return
	}

	now := t.clock.Now()

	remaining := t.remainingLocked(now)
	if remaining <= 0 {
		events := t.completeLocked(now)
		t.mu.Unlock()
		t.observers.emit(events...)

		return
	}

	t.cancelLocked()
	t.remaining = remaining
	t.elapsedAtPause = t.method.DurationSeconds() - remaining
	t.status = Paused

	events := []Event{
		t.eventLocked(EventPaused, now),
		t.eventLocked(EventBlockingStop, now),
	}

	t.mu.Unlock()

	t.logger.Debug("timer paused", "method", t.method.Key, "remaining", remaining)

	t.observers.emit(events...)
}

// Stop abandons the current session and returns to Idle. Only valid while
// Running or Paused. A running session whose time has already run out is
// completed instead.
func (t *Timer) Stop() {
	t.mu.Lock()
	events := t.stopLocked(t.clock.Now())
	t.mu.Unlock()

	t.observers.emit(events...)
}

// Reset returns a completed timer to Idle. From Running or Paused it
// behaves like Stop.
func (t *Timer) Reset() {
	t.mu.Lock()

	now := t.clock.Now()

	var events []Event

	if t.status == Completed {
		t.resetLocked()
		events = append(events, t.eventLocked(EventReset, now))
	} else {
		events = t.stopLocked(now)
	}

	t.mu.Unlock()

	t.observers.emit(events...)
}

// ChangeMethod selects another study method and resets the countdown. It
// is ignored while the timer is running.
func (t *Timer) ChangeMethod(key string) error {
	m, err := t.catalog.Get(key)
	if err != nil {
		return err
	}

	t.mu.Lock()

	if t.status == Running {
		t.mu.Unlock()
		return nil
	}

	now := t.clock.Now()

	events := t.stopLocked(now)

	t.method = m
	t.resetLocked()

	events = append(events, t.eventLocked(EventMethodChanged, now))

	t.mu.Unlock()

	t.observers.emit(events...)

	return nil
}

// Tick evaluates the countdown against the clock. The scheduler calls it
// while the timer is running; calling it in any other state does nothing.
func (t *Timer) Tick() {
	t.mu.Lock()
	events := t.tickLocked(t.clock.Now())
	t.mu.Unlock()

	t.observers.emit(events...)
}

func (t *Timer) scheduledTick(gen uint64) {
	t.mu.Lock()

	if gen != t.gen {
		t.mu.Unlock()
		return
	}

	events := t.tickLocked(t.clock.Now())
	t.mu.Unlock()

	t.observers.emit(events...)
}

// Status returns the current status.
func (t *Timer) Status() Status {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.status
}

// Remaining returns the remaining seconds as of the last evaluation.
func (t *Timer) Remaining() int {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.remaining
}

// Progress returns the completed fraction of the session in [0, 1].
func (t *Timer) Progress() float64 {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.progressLocked()
}

// Method returns the selected study method.
func (t *Timer) Method() method.Method {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.method
}

// Snapshot returns the full timer state.
func (t *Timer) Snapshot() State {
	t.mu.Lock()
	defer t.mu.Unlock()

	return State{
		MethodKey:        t.method.Key,
		Status:           t.status,
		Remaining:        t.remaining,
		SessionStartedAt: t.sessionStartedAt,
		ElapsedAtPause:   t.elapsedAtPause,
		Progress:         t.progressLocked(),
	}
}

func (t *Timer) tickLocked(now time.Time) []Event {
	if t.status != Running {
		return nil
	}

	remaining := t.remainingLocked(now)
	if remaining <= 0 {
		return t.completeLocked(now)
	}

	t.remaining = remaining

	return []Event{t.eventLocked(EventTick, now)}
}

func (t *Timer) completeLocked(now time.Time) []Event {
	t.cancelLocked()
	t.remaining = 0
	t.status = Completed

	done := t.eventLocked(EventCompleted, now)
	done.DurationMinutes = t.method.DurationMinutes()

	t.logger.Debug("timer completed", "method", t.method.Key)

	return []Event{done, t.eventLocked(EventBlockingStop, now)}
}

func (t *Timer) stopLocked(now time.Time) []Event {
	switch t.status {
	case Running:
		if t.remainingLocked(now) <= 0 {
			return t.completeLocked(now)
		}

		t.remaining = t.remainingLocked(now)
	case Paused:
	default:
		return nil
	}

	stopped := t.eventLocked(EventStopped, now)
	blockingStop := t.eventLocked(EventBlockingStop, now)

	t.resetLocked()

	t.logger.Debug("timer stopped", "method", t.method.Key, "elapsed", stopped.Elapsed)

	return []Event{stopped, blockingStop}
}

func (t *Timer) resetLocked() {
	t.cancelLocked()
	t.remaining = t.method.DurationSeconds()
	t.anchor = time.Time{}
	t.sessionStartedAt = time.Time{}
	t.elapsedAtPause = 0
	t.status = Idle
}

// remainingLocked computes the remaining seconds from the wall clock. The
// result never exceeds the last observed value, so a clock that steps
// backwards cannot rewind progress.
func (t *Timer) remainingLocked(now time.Time) int {
	elapsed := now.Sub(t.anchor)
	if elapsed < 0 {
		elapsed = 0
	}

	remaining := t.method.DurationSeconds() - int(elapsed/time.Second)
	if remaining > t.remaining {
		remaining = t.remaining
	}

	return remaining
}

func (t *Timer) scheduleLocked() {
	t.cancelLocked()

	gen := t.gen

	t.cancelTick = t.sched.Every(t.tickInterval, func() {
		t.scheduledTick(gen)
	})
}

func (t *Timer) cancelLocked() {
	if t.cancelTick != nil {
		t.cancelTick()
		t.cancelTick = nil
	}

	t.gen++
}

func (t *Timer) progressLocked() float64 {
	total := t.method.DurationSeconds()

	return 1 - float64(t.remaining)/float64(total)
}

func (t *Timer) eventLocked(kind EventKind, now time.Time) Event {
	return Event{
		Kind:             kind,
		At:               now,
		MethodKey:        t.method.Key,
		SessionStartedAt: t.sessionStartedAt,
		Remaining:        t.remaining,
		Elapsed:          t.method.DurationSeconds() - t.remaining,
		Progress:         t.progressLocked(),
	}
}
