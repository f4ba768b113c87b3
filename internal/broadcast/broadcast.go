// Package broadcast provides the in-process replay channel that feeds the
// streaming endpoints: every published item is retained for the lifetime of
// the process, and each subscriber receives the full history in publish order
// before any live items.
package broadcast

import (
	"context"
	"errors"
	"sync"
)

// ErrClosed is returned by Publish after Close.
var ErrClosed = errors.New("broadcast: channel closed")

// Broadcaster is an unbounded multicast channel with full replay. The replay
// log is append-only; subscribers consume it sequentially and never mutate it.
// One Broadcaster per entity kind per process, created at startup.
type Broadcaster[T any] struct {
	mu     sync.Mutex
	log    []T
	notify chan struct{}
	closed bool
}

func New[T any]() *Broadcaster[T] {
	return &Broadcaster[T]{notify: make(chan struct{})}
}

// Publish appends v to the replay log and wakes every waiting subscriber.
// It never blocks on slow subscribers; the only failure mode is publishing
// after Close.
func (b *Broadcaster[T]) Publish(v T) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return ErrClosed
	}
	b.log = append(b.log, v)
	close(b.notify)
	b.notify = make(chan struct{})
	return nil
}

// Len reports the number of items currently in the replay log.
func (b *Broadcaster[T]) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.log)
}

// Close wakes all subscribers and makes further publishes fail. Subscribers
// still drain whatever was published before the close.
func (b *Broadcaster[T]) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	b.closed = true
	close(b.notify)
}

func (b *Broadcaster[T]) snapshot() (n int, wake chan struct{}, closed bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.log), b.notify, b.closed
}

func (b *Broadcaster[T]) at(i int) T {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.log[i]
}

// Subscribe returns a channel that replays every previously published item in
// publish order and then delivers each subsequent item as it arrives. The
// returned channel is closed when ctx is cancelled or the Broadcaster is
// closed. Cancelling one subscription does not affect other subscribers or
// the replay log.
func (b *Broadcaster[T]) Subscribe(ctx context.Context) <-chan T {
	out := make(chan T)
	go func() {
		defer close(out)
		next := 0
		for {
			n, wake, closed := b.snapshot()
			for next < n {
				select {
				case out <- b.at(next):
					next++
				case <-ctx.Done():
					return
				}
			}
			if closed {
				return
			}
			select {
			case <-wake:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out
}
