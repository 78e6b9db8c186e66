package skyscroll

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// Loop is a recurring task running on its own goroutine until stopped, the
// context ends, or the task returns an error. It drives scenes without a
// window, e.g. for scripted simulation.
type Loop struct {
	cancel context.CancelFunc
	done   chan struct{}

	mu  sync.Mutex
	err error
}

// StartLoop calls fn every interval. An interval <= 0 runs iterations back to
// back. Returning ebiten.Termination from fn ends the loop cleanly; any other
// error ends it and is reported by Err and Stop.
func StartLoop(ctx context.Context, interval time.Duration, fn func() error) *Loop {
	ctx, cancel := context.WithCancel(ctx)
	l := &Loop{cancel: cancel, done: make(chan struct{})}
	go l.run(ctx, interval, fn)
	return l
}

func (l *Loop) run(ctx context.Context, interval time.Duration, fn func() error) {
	defer close(l.done)

	var tick <-chan time.Time
	if interval > 0 {
		t := time.NewTicker(interval)
		defer t.Stop()
		tick = t.C
	}
	for {
		if tick != nil {
			select {
			case <-ctx.Done():
				return
			case <-tick:
			}
		} else if ctx.Err() != nil {
			return
		}
		if err := fn(); err != nil {
			if !errors.Is(err, ebiten.Termination) {
				l.mu.Lock()
				l.err = err
				l.mu.Unlock()
			}
			return
		}
	}
}

// Done is closed once the loop has exited.
func (l *Loop) Done() <-chan struct{} {
	return l.done
}

// Err returns the error that ended the loop, if any.
func (l *Loop) Err() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.err
}

// Stop cancels the loop, waits for the goroutine to exit, and returns Err.
// Safe to call more than once.
func (l *Loop) Stop() error {
	l.cancel()
	<-l.done
	return l.Err()
}
