// Package lifecycle reports foreground/background transitions of the
// running process to the blocking controller.
package lifecycle

import (
	"sync"

	"github.com/ayoisaiah/studyfocus/blocking"
)

// Handler receives lifecycle transitions.
type Handler func(blocking.Lifecycle)

// collapser forwards a state only when it differs from the previous one.
// The process starts in the foreground.
type collapser struct {
	h    Handler
	mu   sync.Mutex
	last blocking.Lifecycle
}

func newCollapser(h Handler) *collapser {
	return &collapser{h: h, last: blocking.Foreground}
}

func (c *collapser) emit(l blocking.Lifecycle) {
	c.mu.Lock()

	if c.last == l {
		c.mu.Unlock()
		return
	}

	c.last = l
	c.mu.Unlock()

	c.h(l)
}
