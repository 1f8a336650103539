// Package session connects a running timer to blocking, the session log
// and the streak counter.
package session

import (
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"sync"
	"time"

	"github.com/kballard/go-shellquote"

	"github.com/ayoisaiah/studyfocus/blocking"
	"github.com/ayoisaiah/studyfocus/internal/models"
	"github.com/ayoisaiah/studyfocus/internal/notify"
	"github.com/ayoisaiah/studyfocus/timer"
)

// Recorder appends finished sessions to the log.
type Recorder interface {
	Append(rec models.SessionRecord) (models.SessionRecord, error)
}

// StreakUpdater advances the study streak.
type StreakUpdater interface {
	UpdateStreak(completedOn time.Time) (models.StreakState, error)
}

// Blocker is the part of the blocking controller the runner drives.
type Blocker interface {
	Arm(level blocking.Level)
	Disarm() error
	Reset() error
	SwitchAttempts() int
}

// StatusWriter mirrors the session state somewhere observable.
type StatusWriter interface {
	Update(fn func(*notify.Status)) error
	Remove() error
}

// Settings are the user preferences that shape a run.
type Settings struct {
	// Cmd is executed after every completed session.
	Cmd string
	// Level is the blocking level used when Blocking is set.
	Level    blocking.Level
	Blocking bool
	// LogAbandoned records stopped sessions that ran for at least a minute
	// as incomplete.
	LogAbandoned bool
}

// EventKind identifies a runner event.
type EventKind int

const (
	EventRecorded EventKind = iota + 1
	EventStreakUpdated
	EventFailed
)

// Event reports the outcome of handling a timer transition.
type Event struct {
	Err    error
	Record models.SessionRecord
	Streak models.StreakState
	Kind   EventKind
}

// Option configures a Runner.
type Option func(*Runner)

// WithNotifier sets where completion notices are sent.
func WithNotifier(n blocking.Notifier) Option {
	return func(r *Runner) {
		r.notifier = n
	}
}

// WithStatus sets the status mirror.
func WithStatus(s StatusWriter) Option {
	return func(r *Runner) {
		r.status = s
	}
}

// WithLogger sets the runner's logger.
func WithLogger(l *slog.Logger) Option {
	return func(r *Runner) {
		r.logger = l
	}
}

// WithCommandRunner replaces the function used to execute the post-session
// command.
func WithCommandRunner(fn func(name string, args ...string) error) Option {
	return func(r *Runner) {
		r.runCmd = fn
	}
}

// Runner reacts to timer events.
type Runner struct {
	sessions    Recorder
	streak      StreakUpdater
	blocker     Blocker
	notifier    blocking.Notifier
	status      StatusWriter
	logger      *slog.Logger
	runCmd      func(name string, args ...string) error
	unsubscribe func()
	subs        []func(Event)
	settings    Settings
	mu          sync.Mutex
}

// New subscribes a Runner to t. Call Close to detach it.
func New(
	t *timer.Timer,
	sessions Recorder,
	streak StreakUpdater,
	blocker Blocker,
	settings Settings,
	opts ...Option,
) *Runner {
	r := &Runner{
		sessions: sessions,
		streak:   streak,
		blocker:  blocker,
		settings: settings,
		logger:   slog.Default(),
		runCmd:   execCommand,
	}

	for _, opt := range opts {
		opt(r)
	}

	r.unsubscribe = t.Subscribe(r.handle)

	return r
}

// Subscribe registers fn for runner events.
func (r *Runner) Subscribe(fn func(Event)) {
	r.mu.Lock()
	r.subs = append(r.subs, fn)
	r.mu.Unlock()
}

// Close stops listening to the timer.
func (r *Runner) Close() {
	r.unsubscribe()
}

func (r *Runner) handle(e timer.Event) {
	switch e.Kind {
	case timer.EventStarted, timer.EventResumed:
		if r.settings.Blocking {
			r.blocker.Arm(r.settings.Level)
		}

		r.writeStatus(e, "running")
	case timer.EventPaused:
		r.writeStatus(e, "paused")
	case timer.EventBlockingStop:
		r.check(r.blocker.Disarm())
	case timer.EventCompleted:
		r.complete(e)
	case timer.EventStopped:
		r.abandon(e)
	}
}

func (r *Runner) complete(e timer.Event) {
	rec := models.SessionRecord{
		StartTime:       e.SessionStartedAt,
		EndTime:         e.At,
		DurationMinutes: e.DurationMinutes,
		MethodKey:       e.MethodKey,
		Completed:       true,
		SwitchAttempts:  r.blocker.SwitchAttempts(),
	}

	r.check(r.blocker.Reset())
	r.removeStatus()

	saved, err := r.sessions.Append(rec)
	if r.check(err) {
		r.emit(Event{Kind: EventRecorded, Record: saved})
	}

	state, err := r.streak.UpdateStreak(e.At)
	if r.check(err) {
		r.emit(Event{Kind: EventStreakUpdated, Streak: state})
	}

	if r.notifier != nil {
		r.check(r.notifier.Notify(
			"Session complete",
			fmt.Sprintf("%d minutes of %s logged. Nice work!", e.DurationMinutes, e.MethodKey),
		))
	}

	r.check(r.runSessionCmd())
}

func (r *Runner) abandon(e timer.Event) {
	attempts := r.blocker.SwitchAttempts()

	r.check(r.blocker.Reset())
	r.removeStatus()

	minutes := e.Elapsed / 60

	if !r.settings.LogAbandoned || minutes < 1 {
		r.logger.Info("session abandoned", "method", e.MethodKey, "elapsed", e.Elapsed)
		return
	}

	saved, err := r.sessions.Append(models.SessionRecord{
		StartTime:       e.SessionStartedAt,
		EndTime:         e.At,
		DurationMinutes: minutes,
		MethodKey:       e.MethodKey,
		Completed:       false,
		SwitchAttempts:  attempts,
	})
	if r.check(err) {
		r.emit(Event{Kind: EventRecorded, Record: saved})
	}
}

func (r *Runner) runSessionCmd() error {
	if r.settings.Cmd == "" {
		return nil
	}

	cmdSlice, err := shellquote.Split(r.settings.Cmd)
	if err != nil {
		return errParseCmd.Fmt(r.settings.Cmd).Wrap(err)
	}

	if len(cmdSlice) == 0 {
		return nil
	}

	if err := r.runCmd(cmdSlice[0], cmdSlice[1:]...); err != nil {
		return errRunCmd.Wrap(err)
	}

	return nil
}

func (r *Runner) writeStatus(e timer.Event, state string) {
	if r.status == nil {
		return
	}

	r.check(r.status.Update(func(s *notify.Status) {
		s.Method = e.MethodKey
		s.State = state
		s.Remaining = e.Remaining
		s.EndTime = e.At.Add(time.Duration(e.Remaining) * time.Second)
		s.Blocking = r.settings.Blocking
		s.SwitchAttempts = r.blocker.SwitchAttempts()

		if r.settings.Blocking {
			s.BlockingLevel = r.settings.Level.String()
		}
	}))
}

func (r *Runner) removeStatus() {
	if r.status != nil {
		r.check(r.status.Remove())
	}
}

// check logs and publishes err. It reports whether err was nil.
func (r *Runner) check(err error) bool {
	if err == nil {
		return true
	}

	r.logger.Error("session side effect failed", "error", err)
	r.emit(Event{Kind: EventFailed, Err: err})

	return false
}

func (r *Runner) emit(e Event) {
	r.mu.Lock()
	subs := make([]func(Event), len(r.subs))
	copy(subs, r.subs)
	r.mu.Unlock()

	for _, fn := range subs {
		fn(e)
	}
}

func execCommand(name string, args ...string) error {
	return sessionCommand(name, args...).Run()
}

// sessionCommand builds the post-session hook. Stdin stays unset because
// the console is still reading from the terminal.
func sessionCommand(name string, args ...string) *exec.Cmd {
	cmd := exec.Command(name, args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	return cmd
}
