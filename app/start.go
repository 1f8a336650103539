package app

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"

	"github.com/ayoisaiah/studyfocus/blocking"
	"github.com/ayoisaiah/studyfocus/internal/config"
	"github.com/ayoisaiah/studyfocus/internal/lifecycle"
	"github.com/ayoisaiah/studyfocus/internal/notify"
	"github.com/ayoisaiah/studyfocus/internal/pathutil"
	"github.com/ayoisaiah/studyfocus/internal/schedule"
	"github.com/ayoisaiah/studyfocus/internal/ui"
	"github.com/ayoisaiah/studyfocus/session"
	"github.com/ayoisaiah/studyfocus/timer"
)

// Console commands, each followed by Enter.
const (
	cmdToggle = "p"
	cmdQuit   = "q"
)

// console draws a running session and feeds keyboard commands to the
// timer.
type console struct {
	t     *timer.Timer
	out   io.Writer
	name  string
	ticks chan struct{}
	done  chan timer.Event
	once  sync.Once
}

func newConsole(t *timer.Timer, out io.Writer) *console {
	c := &console{
		t:     t,
		out:   out,
		name:  t.Method().Name,
		ticks: make(chan struct{}, 1),
		done:  make(chan timer.Event, 1),
	}

	t.Subscribe(c.observe)

	return c
}

// observe runs on whichever goroutine drove the timer, so it never blocks.
func (c *console) observe(e timer.Event) {
	switch e.Kind {
	case timer.EventTick:
		select {
		case c.ticks <- struct{}{}:
		default:
		}
	case timer.EventCompleted, timer.EventStopped:
		c.once.Do(func() {
			c.done <- e
		})
	}
}

// run starts the session and returns its final event: Completed, or
// Stopped when the user quits or ctx is cancelled.
func (c *console) run(ctx context.Context, input <-chan string) timer.Event {
	cancelled := ctx.Done()

	c.t.Start()
	c.render()

	for {
		select {
		case <-cancelled:
			cancelled = nil
			c.t.Stop()
		case e := <-c.done:
			fmt.Fprintln(c.out)
			return e
		case <-c.ticks:
			c.render()
		case line, ok := <-input:
			if !ok {
				input = nil
				continue
			}

			c.command(line)
		}
	}
}

func (c *console) command(line string) {
	switch strings.ToLower(strings.TrimSpace(line)) {
	case cmdToggle:
		if c.t.Status() == timer.Running {
			c.t.Pause()
		} else {
			c.t.Start()
		}

		c.render()
	case cmdQuit:
		c.t.Stop()
	}
}

func (c *console) render() {
	s := c.t.Snapshot()

	fmt.Fprint(c.out, "\r"+ui.Countdown(
		c.name,
		s.Remaining,
		s.Progress,
		s.Status == timer.Paused,
	))
}

// readLines delivers r line by line until EOF.
func readLines(r io.Reader) <-chan string {
	lines := make(chan string)

	go func() {
		defer close(lines)

		scanner := bufio.NewScanner(r)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
	}()

	return lines
}

// startAction runs one study session in the foreground.
func startAction(ctx *cli.Context) error {
	e, err := setup(ctx)
	if err != nil {
		return err
	}
	defer e.Close()

	t, err := timer.New(
		e.catalog,
		e.cfg.MethodKey(),
		timer.WithTickInterval(e.cfg.Settings.TickInterval),
		timer.WithLogger(e.logger),
	)
	if err != nil {
		return err
	}

	desktop := notify.NewDesktop(pathutil.Dir(), e.cfg.Notifications.Enabled)
	status := notify.NewStatusFile(pathutil.StatusFilePath())

	guard := blocking.New(
		t,
		schedule.Ticker{},
		desktop,
		blocking.WithIndicator(status),
		blocking.WithLogger(e.logger),
	)

	runner := session.New(t, e.sessions, e.agg, guard, session.Settings{
		Cmd:          e.cfg.Settings.Cmd,
		Level:        e.cfg.BlockingLevel(),
		Blocking:     e.cfg.Blocking.Enabled,
		LogAbandoned: e.cfg.Settings.LogAbandoned,
	},
		session.WithNotifier(desktop),
		session.WithStatus(status),
		session.WithLogger(e.logger),
	)
	defer runner.Close()

	runner.Subscribe(func(ev session.Event) {
		if ev.Kind == session.EventFailed {
			pterm.Warning.Println(ev.Err)
		}
	})

	sigCtx, stop := signal.NotifyContext(ctx.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	lifecycle.Watch(sigCtx, func(l blocking.Lifecycle) {
		_ = guard.HandleLifecycle(l)
	})

	m := t.Method()

	pterm.Info.Printfln(
		"%s for %d minutes. Type %q and Enter to pause or resume, %q to stop.",
		m.Name,
		m.DurationMinutes(),
		cmdToggle,
		cmdQuit,
	)

	last := newConsole(t, config.Stdout).run(sigCtx, readLines(config.Stdin))

	summarize(e, last)

	return nil
}

func summarize(e *env, last timer.Event) {
	if last.Kind == timer.EventStopped {
		pterm.Info.Printfln(
			"Session stopped after %s",
			ui.FormatDuration(time.Duration(last.Elapsed)*time.Second),
		)

		return
	}

	pterm.Success.Printfln("Session complete: %d minutes", last.DurationMinutes)

	sum, err := e.agg.Recompute()
	if err != nil {
		e.logger.Warn("summary unavailable", "error", err)
		return
	}

	pterm.Info.Printfln(
		"Today: %d sessions, %d minutes. Current streak: %d, longest: %d",
		sum.SessionsToday,
		sum.TodaysMinutes,
		sum.CurrentStreak,
		sum.LongestStreak,
	)
}
