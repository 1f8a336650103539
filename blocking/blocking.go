// Package blocking discourages leaving a running study session. It reacts
// to foreground/background transitions with reminders and switch-attempt
// events; presenting those events is up to the caller.
package blocking

import (
	"errors"
	"log/slog"
	"sync"

	"github.com/ayoisaiah/studyfocus/internal/schedule"
	"github.com/ayoisaiah/studyfocus/timer"
)

// StatusSource reports whether a session is currently running.
type StatusSource interface {
	Status() timer.Status
}

// Notifier delivers a user-visible reminder.
type Notifier interface {
	Notify(title, message string) error
}

// Indicator displays a persistent "focus mode" marker.
type Indicator interface {
	ShowIndicator(message string) error
	ClearIndicator() error
}

// State is a snapshot of the controller.
type State struct {
	Level          Level `json:"level"`
	SwitchAttempts int   `json:"switch_attempts"`
	Enabled        bool  `json:"enabled"`
	Away           bool  `json:"away"`
}

// EventKind identifies a blocking event.
type EventKind int

const (
	EventStateChanged EventKind = iota + 1
	EventSwitchedAway
	EventAttemptObserved
	EventReminder
)

func (k EventKind) String() string {
	switch k {
	case EventStateChanged:
		return "state_changed"
	case EventSwitchedAway:
		return "switched_away"
	case EventAttemptObserved:
		return "attempt_observed"
	case EventReminder:
		return "reminder"
	}

	return "unknown"
}

// Event is published on every blocking transition.
type Event struct {
	Kind     EventKind
	Level    Level
	Attempts int
	Armed    bool
}

// Option configures a Controller.
type Option func(*Controller)

// WithIndicator sets the persistent indicator used by the screen-time level.
func WithIndicator(i Indicator) Option {
	return func(c *Controller) {
		c.indicator = i
	}
}

// WithLogger sets the controller's logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) {
		c.logger = l
	}
}

const indicatorMessage = "Focus mode active: return to your study session to continue"

// Controller tracks switch attempts while a session is running.
type Controller struct {
	status    StatusSource
	sched     schedule.Scheduler
	notifier  Notifier
	indicator Indicator
	logger    *slog.Logger
	cancel    schedule.CancelFunc
	subs      []func(Event)
	state     State
	gen       uint64
	mu        sync.Mutex
}

// New returns a disarmed controller.
func New(
	status StatusSource,
	sched schedule.Scheduler,
	notifier Notifier,
	opts ...Option,
) *Controller {
	c := &Controller{
		status:   status,
		sched:    sched,
		notifier: notifier,
		logger:   slog.Default(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Subscribe registers fn for blocking events. Events are delivered
// synchronously after the transition that caused them.
func (c *Controller) Subscribe(fn func(Event)) {
	c.mu.Lock()
	c.subs = append(c.subs, fn)
	c.mu.Unlock()
}

// Arm enables blocking at the given level. It does nothing if blocking is
// already enabled; changing the level requires Disarm first.
func (c *Controller) Arm(level Level) {
	c.mu.Lock()

	if c.state.Enabled {
		c.mu.Unlock()
		return
	}

	c.state.Enabled = true
	c.state.Level = level
	c.state.Away = false

	ev := c.eventLocked(EventStateChanged)
	c.mu.Unlock()

	c.logger.Debug("blocking armed", "level", level.String())

	c.emit(ev)
}

// Disarm disables blocking and cancels pending reminders. The attempt
// counter is kept so a paused session resumes with its count intact.
func (c *Controller) Disarm() error {
	c.mu.Lock()

	wasEnabled := c.state.Enabled

	c.cancelLocked()
	c.state.Enabled = false
	c.state.Away = false

	ev := c.eventLocked(EventStateChanged)
	c.mu.Unlock()

	if !wasEnabled {
		return nil
	}

	err := c.clearIndicator()

	c.logger.Debug("blocking disarmed")
	c.emit(ev)

	return c.logErr(err)
}

// Reset disarms and zeroes the attempt counter.
func (c *Controller) Reset() error {
	err := c.Disarm()

	c.mu.Lock()
	c.state.SwitchAttempts = 0
	c.mu.Unlock()

	return err
}

// HandleLifecycle reacts to the application leaving or returning to the
// foreground. Reminder delivery failures are logged and returned; the
// controller state is updated regardless.
func (c *Controller) HandleLifecycle(l Lifecycle) error {
	c.mu.Lock()

	if !c.armedLocked() {
		c.cancelLocked()
		c.state.Away = false
		c.mu.Unlock()

		return nil
	}

	switch l {
	case Background:
		return c.leaveLocked()
	case Foreground:
		return c.returnLocked()
	}

	c.mu.Unlock()

	return nil
}

// leaveLocked is called with c.mu held and releases it.
func (c *Controller) leaveLocked() error {
	if c.state.Away {
		c.mu.Unlock()
		return nil
	}

	c.state.Away = true
	c.state.SwitchAttempts++

	level := c.state.Level
	ev := c.eventLocked(EventSwitchedAway)

	c.scheduleLocked()
	c.mu.Unlock()

	c.logger.Info(
		"switched away during session",
		"level", level.String(),
		"attempts", ev.Attempts,
	)

	var errs []error

	title, body := level.awayMessage()

	if err := c.notifier.Notify(title, body); err != nil {
		errs = append(errs, errNotifyFailed.Wrap(err))
	}

	if level == ScreenTime && c.indicator != nil {
		if err := c.indicator.ShowIndicator(indicatorMessage); err != nil {
			errs = append(errs, errIndicatorFailed.Wrap(err))
		}
	}

	c.emit(ev)

	return c.logErr(errors.Join(errs...))
}

// returnLocked is called with c.mu held and releases it.
func (c *Controller) returnLocked() error {
	if !c.state.Away {
		c.mu.Unlock()
		return nil
	}

	c.state.Away = false
	c.cancelLocked()

	ev := c.eventLocked(EventAttemptObserved)
	c.mu.Unlock()

	err := c.clearIndicator()

	c.emit(ev)

	return c.logErr(err)
}

// Armed reports whether blocking is enabled and a session is running.
func (c *Controller) Armed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.armedLocked()
}

// SwitchAttempts returns the number of times the user left the session.
func (c *Controller) SwitchAttempts() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.state.SwitchAttempts
}

// Level returns the configured level.
func (c *Controller) Level() Level {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.state.Level
}

// State returns a snapshot of the controller.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.state
}

func (c *Controller) armedLocked() bool {
	return c.state.Enabled && c.status.Status() == timer.Running
}

func (c *Controller) scheduleLocked() {
	c.cancelLocked()

	gen := c.gen

	c.cancel = c.sched.Every(c.state.Level.ReminderInterval(), func() {
		c.remind(gen)
	})
}

func (c *Controller) cancelLocked() {
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}

	c.gen++
}

func (c *Controller) remind(gen uint64) {
	c.mu.Lock()

	if gen != c.gen || !c.state.Away || !c.armedLocked() {
		c.mu.Unlock()
		return
	}

	level := c.state.Level
	ev := c.eventLocked(EventReminder)
	c.mu.Unlock()

	title, body := level.reminderMessage()

	if err := c.notifier.Notify(title, body); err != nil {
		_ = c.logErr(errNotifyFailed.Wrap(err))
	}

	c.emit(ev)
}

func (c *Controller) clearIndicator() error {
	if c.indicator == nil {
		return nil
	}

	if err := c.indicator.ClearIndicator(); err != nil {
		return errIndicatorFailed.Wrap(err)
	}

	return nil
}

func (c *Controller) logErr(err error) error {
	if err != nil {
		c.logger.Warn("blocking degraded", "error", err)
	}

	return err
}

func (c *Controller) eventLocked(kind EventKind) Event {
	return Event{
		Kind:     kind,
		Level:    c.state.Level,
		Attempts: c.state.SwitchAttempts,
		Armed:    c.armedLocked(),
	}
}

func (c *Controller) emit(ev Event) {
	c.mu.Lock()
	subs := make([]func(Event), len(c.subs))
	copy(subs, c.subs)
	c.mu.Unlock()

	for _, fn := range subs {
		fn(ev)
	}
}
