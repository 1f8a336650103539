package session_test

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ayoisaiah/studyfocus/blocking"
	"github.com/ayoisaiah/studyfocus/internal/models"
	"github.com/ayoisaiah/studyfocus/internal/notify"
	"github.com/ayoisaiah/studyfocus/internal/testutil"
	"github.com/ayoisaiah/studyfocus/method"
	"github.com/ayoisaiah/studyfocus/session"
	"github.com/ayoisaiah/studyfocus/stats"
	"github.com/ayoisaiah/studyfocus/store"
	"github.com/ayoisaiah/studyfocus/timer"
)

var epoch = time.Date(2024, 3, 4, 9, 0, 0, 0, time.Local)

type fixture struct {
	clock    *testutil.FakeClock
	sched    *testutil.ManualScheduler
	notifier *testutil.Notifier
	timer    *timer.Timer
	blocker  *blocking.Controller
	sessions *stats.SessionStore
	agg      *stats.Aggregator
	status   *notify.StatusFile
	statusAt string
	runner   *session.Runner
	commands [][]string
	events   []session.Event
}

func newFixture(t *testing.T, settings session.Settings, rec session.Recorder) *fixture {
	t.Helper()

	f := &fixture{
		clock:    testutil.NewFakeClock(epoch),
		sched:    &testutil.ManualScheduler{},
		notifier: &testutil.Notifier{},
		statusAt: filepath.Join(t.TempDir(), "status.json"),
	}

	f.status = notify.NewStatusFile(f.statusAt)

	tm, err := timer.New(
		method.Default(),
		"pomodoro",
		timer.WithClock(f.clock),
		timer.WithScheduler(f.sched),
	)
	require.NoError(t, err)

	f.timer = tm
	f.blocker = blocking.New(tm, f.sched, f.notifier, blocking.WithIndicator(f.status))

	opts := []stats.Option{stats.WithClock(f.clock)}
	f.sessions = stats.NewSessionStore(store.NewMemory(), opts...)
	f.agg = stats.NewAggregator(f.sessions, opts...)

	if rec == nil {
		rec = f.sessions
	}

	f.runner = session.New(
		tm,
		rec,
		f.agg,
		f.blocker,
		settings,
		session.WithNotifier(f.notifier),
		session.WithStatus(f.status),
		session.WithCommandRunner(func(name string, args ...string) error {
			f.commands = append(f.commands, append([]string{name}, args...))
			return nil
		}),
	)

	f.runner.Subscribe(func(e session.Event) {
		f.events = append(f.events, e)
	})

	t.Cleanup(f.runner.Close)

	return f
}

func (f *fixture) records(t *testing.T) []models.SessionRecord {
	t.Helper()

	all, err := f.sessions.All()
	require.NoError(t, err)

	return all
}

func TestCompletedSessionIsRecorded(t *testing.T) {
	f := newFixture(t, session.Settings{
		Blocking: true,
		Level:    blocking.Strict,
		Cmd:      `notify-send "Study done" --urgency=low`,
	}, nil)

	f.timer.Start()
	require.True(t, f.blocker.Armed())

	require.NoError(t, f.blocker.HandleLifecycle(blocking.Background))
	require.NoError(t, f.blocker.HandleLifecycle(blocking.Foreground))

	f.clock.Advance(25 * time.Minute)
	f.sched.Fire()

	require.Equal(t, timer.Completed, f.timer.Status())

	recs := f.records(t)
	require.Len(t, recs, 1)

	rec := recs[0]
	assert.True(t, rec.Completed)
	assert.Equal(t, "pomodoro", rec.MethodKey)
	assert.Equal(t, 25, rec.DurationMinutes)
	assert.Equal(t, 1, rec.SwitchAttempts)
	assert.Equal(t, epoch, rec.StartTime)
	assert.Equal(t, epoch.Add(25*time.Minute), rec.EndTime)
	assert.Equal(t, "2024-03-04", rec.Date)

	streak, err := f.agg.Recompute()
	require.NoError(t, err)
	assert.Equal(t, 1, streak.CurrentStreak)

	assert.False(t, f.blocker.State().Enabled)
	assert.Zero(t, f.blocker.SwitchAttempts())

	assert.Equal(t, [][]string{{"notify-send", "Study done", "--urgency=low"}}, f.commands)
	assert.Equal(t, "Session complete", f.notifier.Notes[len(f.notifier.Notes)-1].Title)

	kinds := make([]session.EventKind, 0, len(f.events))
	for _, e := range f.events {
		kinds = append(kinds, e.Kind)
	}

	assert.Equal(t, []session.EventKind{session.EventRecorded, session.EventStreakUpdated}, kinds)
}

func TestPauseDisarmsAndResumeRearms(t *testing.T) {
	f := newFixture(t, session.Settings{Blocking: true}, nil)

	f.timer.Start()
	require.NoError(t, f.blocker.HandleLifecycle(blocking.Background))
	require.NoError(t, f.blocker.HandleLifecycle(blocking.Foreground))

	f.timer.Pause()

	assert.False(t, f.blocker.Armed())
	assert.False(t, f.blocker.State().Enabled)

	status, err := notify.ReadStatus(f.statusAt)
	require.NoError(t, err)
	assert.Equal(t, "paused", status.State)

	f.timer.Start()

	assert.True(t, f.blocker.Armed())
	assert.Equal(t, 1, f.blocker.SwitchAttempts(), "attempts carry over a pause")
}

func TestBlockingDisabled(t *testing.T) {
	f := newFixture(t, session.Settings{}, nil)

	f.timer.Start()

	assert.False(t, f.blocker.Armed())
}

func TestStoppedSession(t *testing.T) {
	cases := []struct {
		name         string
		elapsed      time.Duration
		logAbandoned bool
		want         int
	}{
		{"not logged by default", 10 * time.Minute, false, 0},
		{"logged when enabled", 10 * time.Minute, true, 10},
		{"too short to log", 59 * time.Second, true, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t, session.Settings{
				Blocking:     true,
				LogAbandoned: tc.logAbandoned,
			}, nil)

			f.timer.Start()
			f.clock.Advance(tc.elapsed)
			f.timer.Stop()

			assert.False(t, f.blocker.State().Enabled)

			recs := f.records(t)

			if tc.want == 0 {
				assert.Empty(t, recs)
			} else {
				require.Len(t, recs, 1)
				assert.False(t, recs[0].Completed)
				assert.Equal(t, tc.want, recs[0].DurationMinutes)
			}

			sum, err := f.agg.Recompute()
			require.NoError(t, err)
			assert.Zero(t, sum.CurrentStreak, "stopping never counts toward the streak")
			assert.Empty(t, f.commands)
		})
	}
}

type failingRecorder struct{}

func (failingRecorder) Append(rec models.SessionRecord) (models.SessionRecord, error) {
	return rec, errors.New("read-only filesystem")
}

func TestFailuresDoNotStopTheRun(t *testing.T) {
	f := newFixture(t, session.Settings{}, failingRecorder{})

	f.timer.Start()
	f.clock.Advance(time.Hour)
	f.sched.Fire()

	assert.Equal(t, timer.Completed, f.timer.Status())

	require.NotEmpty(t, f.events)
	assert.Equal(t, session.EventFailed, f.events[0].Kind)
	assert.Error(t, f.events[0].Err)

	sum, err := f.agg.Recompute()
	require.NoError(t, err)
	assert.Equal(t, 1, sum.CurrentStreak)
}

func TestBadCommandIsReported(t *testing.T) {
	f := newFixture(t, session.Settings{Cmd: `echo "unterminated`}, nil)

	f.timer.Start()
	f.clock.Advance(time.Hour)
	f.sched.Fire()

	last := f.events[len(f.events)-1]
	assert.Equal(t, session.EventFailed, last.Kind)
	assert.Empty(t, f.commands)
}
