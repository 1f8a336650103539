package timer

import (
	"sync"
	"time"
)

// EventKind identifies a timer transition.
type EventKind int

const (
	EventStarted EventKind = iota + 1
	EventResumed
	EventTick
	EventPaused
	EventStopped
	EventReset
	EventCompleted
	EventMethodChanged
	// EventBlockingStop tells blocking consumers that the session is no
	// longer running.
	EventBlockingStop
)

func (k EventKind) String() string {
	switch k {
	case EventStarted:
		return "started"
	case EventResumed:
		return "resumed"
	case EventTick:
		return "tick"
	case EventPaused:
		return "paused"
	case EventStopped:
		return "stopped"
	case EventReset:
		return "reset"
	case EventCompleted:
		return "completed"
	case EventMethodChanged:
		return "method_changed"
	case EventBlockingStop:
		return "blocking_stop"
	}

	return "unknown"
}

// Event describes a timer transition. Elapsed and Remaining are in seconds.
type Event struct {
	At               time.Time
	SessionStartedAt time.Time
	MethodKey        string
	Kind             EventKind
	Remaining        int
	Elapsed          int
	DurationMinutes  int
	Progress         float64
}

type subscriber struct {
	fn func(Event)
}

// observers is a list of event subscribers. Handlers run synchronously in
// subscription order.
type observers struct {
	list []*subscriber
	mu   sync.Mutex
}

func (o *observers) add(fn func(Event)) func() {
	s := &subscriber{fn: fn}

	o.mu.Lock()
	o.list = append(o.list, s)
	o.mu.Unlock()

	return func() {
		o.mu.Lock()
		defer o.mu.Unlock()

		for i, v := range o.list {
			if v == s {
				o.list = append(o.list[:i], o.list[i+1:]...)
				return
			}
		}
	}
}

func (o *observers) emit(events ...Event) {
	if len(events) == 0 {
		return
	}

	o.mu.Lock()
	list := make([]*subscriber, len(o.list))
	copy(list, o.list)
	o.mu.Unlock()

	for _, e := range events {
		for _, s := range list {
			s.fn(e)
		}
	}
}
