// Package watch provides an observable value that replays its latest state
// to every subscriber.
package watch

import (
	"context"
	"sync"
)

// Value holds a value of type T and broadcasts every change to subscribers.
//
// A subscriber receives the current value as soon as it subscribes and
// afterwards always finds the most recent value in its channel. Delivery is
// conflated: a subscriber that falls behind skips intermediate values but
// never reads an older value after a newer one.
//
// Changes are published before Store or Update return, so a subscriber that
// drains its channel after a change returns has seen that change.
type Value[T any] struct {
	mu   sync.Mutex
	cur  T
	subs map[chan T]struct{}
}

// NewValue returns a Value holding initial.
func NewValue[T any](initial T) *Value[T] {
	return &Value[T]{
		cur:  initial,
		subs: make(map[chan T]struct{}),
	}
}

// Load returns the current value.
func (v *Value[T]) Load() T {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.cur
}

// Store replaces the current value and publishes it.
func (v *Value[T]) Store(x T) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.cur = x
	v.publish()
}

// Update replaces the current value with fn(current) and publishes the
// result, which it also returns. fn runs with the value locked, so
// concurrent Updates never lose each other's changes. fn must not call back
// into v.
func (v *Value[T]) Update(fn func(T) T) T {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.cur = fn(v.cur)
	v.publish()
	return v.cur
}

// Subscribe returns a channel that holds the current value immediately and
// the latest value after every change. The channel is closed once ctx is
// done.
func (v *Value[T]) Subscribe(ctx context.Context) <-chan T {
	ch := make(chan T, 1)

	v.mu.Lock()
	ch <- v.cur
	v.subs[ch] = struct{}{}
	v.mu.Unlock()

	go func() {
		<-ctx.Done()
		v.mu.Lock()
		delete(v.subs, ch)
		close(ch)
		v.mu.Unlock()
	}()

	return ch
}

// publish hands the current value to every subscriber, replacing any value
// the subscriber has not read yet. v.mu must be held.
func (v *Value[T]) publish() {
	for ch := range v.subs {
		select {
		case <-ch:
		default:
		}
		// Only publish sends, and it holds v.mu, so there is room now.
		ch <- v.cur
	}
}
