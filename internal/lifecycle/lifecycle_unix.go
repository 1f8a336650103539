//go:build linux || darwin

package lifecycle

import (
	"context"
	"os"
	"os/signal"

	"golang.org/x/sys/unix"
	"golang.org/x/term"

	"github.com/ayoisaiah/studyfocus/blocking"
)

// Watch reports terminal job control as lifecycle transitions until ctx is
// done. Suspending the process (Ctrl-Z) moves it to the background; being
// resumed moves it to the foreground if its process group owns the
// terminal again (`fg`) and leaves it in the background otherwise (`bg`).
func Watch(ctx context.Context, h Handler) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, unix.SIGTSTP, unix.SIGCONT)

	go func() {
		defer signal.Stop(sigs)

		watch(ctx, sigs, ownsTerminal, suspend, newCollapser(h))
	}()
}

func watch(
	ctx context.Context,
	sigs <-chan os.Signal,
	foreground func() bool,
	stop func(),
	c *collapser,
) {
	for {
		select {
		case <-ctx.Done():
			return
		case sig, ok := <-sigs:
			if !ok {
				return
			}

			switch sig {
			case unix.SIGTSTP:
				c.emit(blocking.Background)
				stop()
			case unix.SIGCONT:
				if foreground() {
					c.emit(blocking.Foreground)
				} else {
					c.emit(blocking.Background)
				}
			}
		}
	}
}

// ownsTerminal reports whether the process group is the terminal's
// foreground group. Without a terminal the process counts as foreground.
func ownsTerminal() bool {
	fd := int(os.Stdin.Fd())

	if !term.IsTerminal(fd) {
		return true
	}

	pgrp, err := unix.IoctlGetInt(fd, unix.TIOCGPGRP)
	if err != nil {
		return true
	}

	return pgrp == unix.Getpgrp()
}

// suspend stops the process the way the default SIGTSTP action would.
// SIGSTOP cannot be caught, and the matching SIGCONT is delivered to the
// watcher on resume.
func suspend() {
	_ = unix.Kill(unix.Getpid(), unix.SIGSTOP)
}
