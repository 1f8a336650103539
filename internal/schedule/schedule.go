// Package schedule runs periodic tasks through cancellable handles owned by
// the component that started them.
package schedule

import (
	"sync"
	"time"
)

// CancelFunc stops a scheduled task. Calling it more than once is safe.
type CancelFunc func()

// Scheduler runs fn every d until the returned CancelFunc is called.
type Scheduler interface {
	Every(d time.Duration, fn func()) CancelFunc
}

// Ticker is a Scheduler backed by time.Ticker. Each task runs on its own
// goroutine.
type Ticker struct{}

func (Ticker) Every(d time.Duration, fn func()) CancelFunc {
	ticker := time.NewTicker(d)
	done := make(chan struct{})

	go func() {
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				fn()
			}
		}
	}()

	var once sync.Once

	return func() {
		once.Do(func() {
			ticker.Stop()
			close(done)
		})
	}
}
