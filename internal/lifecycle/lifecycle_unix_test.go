//go:build linux || darwin

package lifecycle

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/sys/unix"

	"github.com/ayoisaiah/studyfocus/blocking"
)

func TestWatchJobControl(t *testing.T) {
	testCases := []struct {
		name       string
		signals    []os.Signal
		foreground bool
		want       []blocking.Lifecycle
		stops      int
	}{
		{
			name:       "suspend then fg",
			signals:    []os.Signal{unix.SIGTSTP, unix.SIGCONT},
			foreground: true,
			want:       []blocking.Lifecycle{blocking.Background, blocking.Foreground},
			stops:      1,
		},
		{
			name:       "suspend then bg",
			signals:    []os.Signal{unix.SIGTSTP, unix.SIGCONT},
			foreground: false,
			want:       []blocking.Lifecycle{blocking.Background},
			stops:      1,
		},
		{
			name:       "stray continue in foreground",
			signals:    []os.Signal{unix.SIGCONT, unix.SIGCONT},
			foreground: true,
			want:       nil,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var got []blocking.Lifecycle

			c := newCollapser(func(l blocking.Lifecycle) {
				got = append(got, l)
			})

			sigs := make(chan os.Signal, len(tc.signals))
			for _, s := range tc.signals {
				sigs <- s
			}

			close(sigs)

			var stops int

			fg := func() bool { return tc.foreground }
			stop := func() { stops++ }

			watch(context.Background(), sigs, fg, stop, c)

			assert.Equal(t, tc.want, got)
			assert.Equal(t, tc.stops, stops)
		})
	}
}

func TestWatchStopsWithContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := newCollapser(func(blocking.Lifecycle) {
		t.Fatal("unexpected transition")
	})

	watch(ctx, make(chan os.Signal), func() bool { return true }, func() {}, c)
}
