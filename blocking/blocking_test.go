package blocking_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ayoisaiah/studyfocus/blocking"
	"github.com/ayoisaiah/studyfocus/internal/testutil"
	"github.com/ayoisaiah/studyfocus/timer"
)

type fakeStatus struct {
	status timer.Status
}

func (f *fakeStatus) Status() timer.Status {
	return f.status
}

type fixture struct {
	status   *fakeStatus
	sched    *testutil.ManualScheduler
	notifier *testutil.Notifier
	ctrl     *blocking.Controller
	events   []blocking.Event
}

func newFixture() *fixture {
	f := &fixture{
		status:   &fakeStatus{status: timer.Running},
		sched:    &testutil.ManualScheduler{},
		notifier: &testutil.Notifier{},
	}

	f.ctrl = blocking.New(
		f.status,
		f.sched,
		f.notifier,
		blocking.WithIndicator(f.notifier),
	)

	f.ctrl.Subscribe(func(e blocking.Event) {
		f.events = append(f.events, e)
	})

	return f
}

func (f *fixture) kinds() []blocking.EventKind {
	out := make([]blocking.EventKind, len(f.events))
	for i, e := range f.events {
		out[i] = e.Kind
	}

	return out
}

func TestParseLevel(t *testing.T) {
	cases := []struct {
		in   string
		want blocking.Level
	}{
		{"", blocking.Standard},
		{"standard", blocking.Standard},
		{"Strict", blocking.Strict},
		{"screen-time", blocking.ScreenTime},
		{"screentime", blocking.ScreenTime},
	}

	for _, tc := range cases {
		got, err := blocking.ParseLevel(tc.in)
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.want, got, tc.in)
	}

	_, err := blocking.ParseLevel("nuclear")
	assert.ErrorIs(t, err, blocking.ErrInvalidLevel)
}

func TestReminderInterval(t *testing.T) {
	assert.Equal(t, 30*time.Second, blocking.Standard.ReminderInterval())
	assert.Equal(t, 15*time.Second, blocking.Strict.ReminderInterval())
	assert.Equal(t, 30*time.Second, blocking.ScreenTime.ReminderInterval())
}

func TestArmedRequiresRunningTimer(t *testing.T) {
	f := newFixture()

	assert.False(t, f.ctrl.Armed())

	f.ctrl.Arm(blocking.Standard)
	assert.True(t, f.ctrl.Armed())

	f.status.status = timer.Paused
	assert.False(t, f.ctrl.Armed())

	require.NoError(t, f.ctrl.HandleLifecycle(blocking.Background))
	assert.Zero(t, f.ctrl.SwitchAttempts())
	assert.Zero(t, f.sched.Active())
}

func TestArmIsNoOpWhenEnabled(t *testing.T) {
	f := newFixture()

	f.ctrl.Arm(blocking.Strict)
	f.ctrl.Arm(blocking.Standard)

	assert.Equal(t, blocking.Strict, f.ctrl.Level())
	assert.Equal(t, []blocking.EventKind{blocking.EventStateChanged}, f.kinds())
}

func TestBackgroundSchedulesReminders(t *testing.T) {
	cases := []struct {
		level     blocking.Level
		interval  time.Duration
		indicator bool
	}{
		{blocking.Standard, 30 * time.Second, false},
		{blocking.Strict, 15 * time.Second, false},
		{blocking.ScreenTime, 30 * time.Second, true},
	}

	for _, tc := range cases {
		t.Run(tc.level.String(), func(t *testing.T) {
			f := newFixture()
			f.ctrl.Arm(tc.level)

			require.NoError(t, f.ctrl.HandleLifecycle(blocking.Background))

			assert.Equal(t, 1, f.ctrl.SwitchAttempts())
			assert.Equal(t, []time.Duration{tc.interval}, f.sched.Intervals())
			assert.Equal(t, 1, f.notifier.Count())
			assert.Equal(t, tc.indicator, f.notifier.Indicator != "")

			f.sched.Fire()
			f.sched.Fire()

			assert.Equal(t, 3, f.notifier.Count())

			require.NoError(t, f.ctrl.HandleLifecycle(blocking.Foreground))

			assert.Zero(t, f.sched.Active())
			assert.Empty(t, f.notifier.Indicator)
			assert.Equal(t, []blocking.EventKind{
				blocking.EventStateChanged,
				blocking.EventSwitchedAway,
				blocking.EventReminder,
				blocking.EventReminder,
				blocking.EventAttemptObserved,
			}, f.kinds())
		})
	}
}

func TestDuplicateBackgroundCountsOnce(t *testing.T) {
	f := newFixture()
	f.ctrl.Arm(blocking.Standard)

	require.NoError(t, f.ctrl.HandleLifecycle(blocking.Background))
	require.NoError(t, f.ctrl.HandleLifecycle(blocking.Background))

	assert.Equal(t, 1, f.ctrl.SwitchAttempts())
	assert.Equal(t, 1, f.sched.Active())

	require.NoError(t, f.ctrl.HandleLifecycle(blocking.Foreground))
	require.NoError(t, f.ctrl.HandleLifecycle(blocking.Background))

	assert.Equal(t, 2, f.ctrl.SwitchAttempts())
}

func TestForegroundWithoutLeavingIsQuiet(t *testing.T) {
	f := newFixture()
	f.ctrl.Arm(blocking.Standard)

	require.NoError(t, f.ctrl.HandleLifecycle(blocking.Foreground))

	assert.NotContains(t, f.kinds(), blocking.EventAttemptObserved)
}

func TestDisarmCancelsRemindersIdempotently(t *testing.T) {
	f := newFixture()
	f.ctrl.Arm(blocking.ScreenTime)

	require.NoError(t, f.ctrl.HandleLifecycle(blocking.Background))

	stale := f.sched.Last()

	require.NoError(t, f.ctrl.Disarm())
	require.NoError(t, f.ctrl.Disarm())

	assert.False(t, f.ctrl.Armed())
	assert.Zero(t, f.sched.Active())
	assert.Empty(t, f.notifier.Indicator)
	assert.Equal(t, 1, f.ctrl.SwitchAttempts(), "attempts survive disarm")

	n := f.notifier.Count()
	stale()
	assert.Equal(t, n, f.notifier.Count())

	changes := 0

	for _, e := range f.events {
		if e.Kind == blocking.EventStateChanged {
			changes++
		}
	}

	assert.Equal(t, 2, changes)
}

func TestResetZeroesAttempts(t *testing.T) {
	f := newFixture()
	f.ctrl.Arm(blocking.Standard)

	require.NoError(t, f.ctrl.HandleLifecycle(blocking.Background))
	require.NoError(t, f.ctrl.Reset())

	assert.Zero(t, f.ctrl.SwitchAttempts())
	assert.False(t, f.ctrl.State().Enabled)
}

func TestLevelChangeNeedsRearm(t *testing.T) {
	f := newFixture()

	f.ctrl.Arm(blocking.Standard)
	require.NoError(t, f.ctrl.Disarm())
	f.ctrl.Arm(blocking.Strict)

	require.NoError(t, f.ctrl.HandleLifecycle(blocking.Background))

	assert.Equal(t, []time.Duration{15 * time.Second}, f.sched.Intervals())
}

func TestNotifierFailureIsReported(t *testing.T) {
	f := newFixture()
	f.notifier.Err = errors.New("dbus unavailable")

	f.ctrl.Arm(blocking.Standard)

	err := f.ctrl.HandleLifecycle(blocking.Background)

	require.Error(t, err)
	assert.ErrorIs(t, err, f.notifier.Err)
	assert.Equal(t, 1, f.ctrl.SwitchAttempts())
	assert.Equal(t, 1, f.sched.Active())
}

func TestRemindersStopWhenTimerPauses(t *testing.T) {
	f := newFixture()
	f.ctrl.Arm(blocking.Standard)

	require.NoError(t, f.ctrl.HandleLifecycle(blocking.Background))

	f.status.status = timer.Paused
	f.sched.Fire()

	assert.Equal(t, 1, f.notifier.Count())
}
