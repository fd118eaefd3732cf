package watch

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// drain returns the latest value waiting in ch, if any.
func drain[T any](ch <-chan T) (T, bool) {
	var last T
	got := false
	for {
		select {
		case v, ok := <-ch:
			if !ok {
				return last, got
			}
			last, got = v, true
		default:
			return last, got
		}
	}
}

func TestValueLoadStore(t *testing.T) {
	v := NewValue(1)
	assert.Equal(t, 1, v.Load())

	v.Store(2)
	assert.Equal(t, 2, v.Load())

	got := v.Update(func(x int) int { return x * 10 })
	assert.Equal(t, 20, got)
	assert.Equal(t, 20, v.Load())
}

func TestSubscribeReplaysCurrent(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	v := NewValue("first")
	v.Store("second")

	ch := v.Subscribe(ctx)
	got, ok := drain(ch)
	require.True(t, ok, "new subscriber must receive the current value immediately")
	assert.Equal(t, "second", got)

	// Nothing more until the next change
	_, ok = drain(ch)
	assert.False(t, ok)
}

func TestSubscribeSeesChangesBeforeReturn(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	v := NewValue(0)
	ch := v.Subscribe(ctx)
	<-ch

	v.Store(5)
	got, ok := drain(ch)
	require.True(t, ok)
	assert.Equal(t, 5, got)

	v.Update(func(x int) int { return x + 1 })
	got, ok = drain(ch)
	require.True(t, ok)
	assert.Equal(t, 6, got)
}

func TestSubscribeConflates(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	v := NewValue(0)
	ch := v.Subscribe(ctx)

	for i := 1; i <= 100; i++ {
		v.Store(i)
	}

	got, ok := drain(ch)
	require.True(t, ok)
	assert.Equal(t, 100, got, "a slow subscriber sees only the latest value")
}

func TestMultipleSubscribers(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	v := NewValue(1)
	a := v.Subscribe(ctx)
	b := v.Subscribe(ctx)

	v.Store(7)

	gotA, _ := drain(a)
	gotB, _ := drain(b)
	assert.Equal(t, 7, gotA)
	assert.Equal(t, 7, gotB)
}

func TestSubscriptionClosesOnCancel(t *testing.T) {
	v := NewValue(1)

	ctx, cancel := context.WithCancel(context.Background())
	ch := v.Subscribe(ctx)
	<-ch
	cancel()

	select {
	case _, ok := <-ch:
		assert.False(t, ok, "channel must be closed after cancel")
	case <-time.After(time.Second):
		t.Fatal("subscription was not closed")
	}

	// Publishing after the subscriber left must not panic or block
	v.Store(2)
	assert.Equal(t, 2, v.Load())
}

func TestConcurrentUpdatesAreNotLost(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	v := NewValue(0)
	ch := v.Subscribe(ctx)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			v.Update(func(x int) int { return x + 1 })
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, v.Load())
	got, ok := drain(ch)
	require.True(t, ok)
	assert.Equal(t, 50, got)
}
