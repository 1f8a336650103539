// Package testutil provides fakes and helpers shared by package tests.
package testutil

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"testing"
	"time"

	"github.com/sebdah/goldie/v2"

	"github.com/ayoisaiah/studyfocus/internal/osutil"
	"github.com/ayoisaiah/studyfocus/internal/schedule"
)

type GoldenTest interface {
	Output() ([]byte, string)
}

// CompareGoldenFile verifies that the output of an operation matches
// the expected output.
func CompareGoldenFile(t *testing.T, tc GoldenTest) {
	t.Helper()

	if runtime.GOOS == osutil.Windows {
		// TODO: need to sort out line endings
		t.Skip("skipping golden file test in Windows")
	}

	g := goldie.New(
		t,
		goldie.WithFixtureDir("testdata"),
	)

	snap, golden := tc.Output()

	if snap != nil {
		g.Assert(t, golden, snap)
		return
	}

	f := filepath.Join("testdata", golden+".golden")
	if _, err := os.Stat(f); err == nil || errors.Is(err, os.ErrExist) {
		t.Fatalf("expected no output, but golden file exists: %s", f)
	}
}

// FakeClock is a manually advanced clock.
type FakeClock struct {
	now time.Time
	mu  sync.Mutex
}

func NewFakeClock(now time.Time) *FakeClock {
	return &FakeClock{now: now}
}

func (c *FakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.now
}

func (c *FakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func (c *FakeClock) Set(t time.Time) {
	c.mu.Lock()
	c.now = t
	c.mu.Unlock()
}

type task struct {
	fn        func()
	interval  time.Duration
	cancelled bool
}

// ManualScheduler records scheduled tasks and runs them only when Fire is
// called.
type ManualScheduler struct {
	tasks []*task
	mu    sync.Mutex
}

func (s *ManualScheduler) Every(d time.Duration, fn func()) schedule.CancelFunc {
	s.mu.Lock()
	defer s.mu.Unlock()

	tk := &task{fn: fn, interval: d}
	s.tasks = append(s.tasks, tk)

	return func() {
		s.mu.Lock()
		tk.cancelled = true
		s.mu.Unlock()
	}
}

// Fire runs every active task once.
func (s *ManualScheduler) Fire() {
	s.mu.Lock()

	var fns []func()

	for _, tk := range s.tasks {
		if !tk.cancelled {
			fns = append(fns, tk.fn)
		}
	}

	s.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
}

// Active returns the number of tasks that have not been cancelled.
func (s *ManualScheduler) Active() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	var n int

	for _, tk := range s.tasks {
		if !tk.cancelled {
			n++
		}
	}

	return n
}

// Intervals returns the periods of the active tasks.
func (s *ManualScheduler) Intervals() []time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []time.Duration

	for _, tk := range s.tasks {
		if !tk.cancelled {
			out = append(out, tk.interval)
		}
	}

	return out
}

// Last returns the callback of the most recently scheduled task, cancelled
// or not.
func (s *ManualScheduler) Last() func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.tasks) == 0 {
		return func() {}
	}

	return s.tasks[len(s.tasks)-1].fn
}

// Note is a notification captured by Notifier.
type Note struct {
	Title   string
	Message string
}

// Notifier captures notifications and indicator changes.
type Notifier struct {
	Err       error
	Notes     []Note
	Indicator string
	mu        sync.Mutex
}

func (n *Notifier) Notify(title, message string) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.Err != nil {
		return n.Err
	}

	n.Notes = append(n.Notes, Note{Title: title, Message: message})

	return nil
}

func (n *Notifier) ShowIndicator(message string) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.Err != nil {
		return n.Err
	}

	n.Indicator = message

	return nil
}

func (n *Notifier) ClearIndicator() error {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.Indicator = ""

	return nil
}

// Count returns the number of captured notifications.
func (n *Notifier) Count() int {
	n.mu.Lock()
	defer n.mu.Unlock()

	return len(n.Notes)
}
