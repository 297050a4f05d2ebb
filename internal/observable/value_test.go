package observable

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func receive[T any](t *testing.T, ch <-chan T) T {
	t.Helper()
	select {
	case v, ok := <-ch:
		require.True(t, ok, "channel closed")
		return v
	case <-time.After(2 * time.Second):
		t.Fatal("timeout waiting for value")
	}
	var zero T
	return zero
}

func TestValue_ReplaysCurrentToLateSubscriber(t *testing.T) {
	v := NewValue("a")
	v.Set("b")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch := v.Subscribe(ctx)
	assert.Equal(t, "b", receive(t, ch))
	assert.Equal(t, "b", v.Get())
}

func TestValue_DeliversEveryValueInOrder(t *testing.T) {
	v := NewValue(0)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch := v.Subscribe(ctx)

	// Nobody reads while these are set; none may be dropped.
	for i := 1; i <= 100; i++ {
		v.Set(i)
	}

	for i := 0; i <= 100; i++ {
		assert.Equal(t, i, receive(t, ch))
	}
}

func TestValue_MultipleSubscribersSeeSameSequence(t *testing.T) {
	v := NewValue("init")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	first := v.Subscribe(ctx)
	second := v.Subscribe(ctx)

	v.Set("x")
	v.Set("y")

	for _, ch := range []<-chan string{first, second} {
		assert.Equal(t, "init", receive(t, ch))
		assert.Equal(t, "x", receive(t, ch))
		assert.Equal(t, "y", receive(t, ch))
	}
}

func TestValue_CloseDrainsThenClosesChannel(t *testing.T) {
	v := NewValue(1)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch := v.Subscribe(ctx)
	v.Set(2)
	v.Close()
	v.Set(3)

	assert.Equal(t, 1, receive(t, ch))
	assert.Equal(t, 2, receive(t, ch))

	select {
	case _, ok := <-ch:
		assert.False(t, ok)
	case <-time.After(2 * time.Second):
		t.Fatal("channel not closed after Close")
	}
	assert.Equal(t, 2, v.Get())
}

func TestValue_SubscribeAfterCloseYieldsCurrentOnly(t *testing.T) {
	v := NewValue("last")
	v.Close()

	ch := v.Subscribe(context.Background())
	assert.Equal(t, "last", receive(t, ch))

	_, ok := <-ch
	assert.False(t, ok)
}

func TestValue_ContextCancelEndsSubscription(t *testing.T) {
	v := NewValue(0)

	ctx, cancel := context.WithCancel(context.Background())
	ch := v.Subscribe(ctx)
	assert.Equal(t, 0, receive(t, ch))

	cancel()

	require.Eventually(t, func() bool {
		select {
		case _, ok := <-ch:
			return !ok
		default:
			return false
		}
	}, 2*time.Second, 10*time.Millisecond)

	require.Eventually(t, func() bool {
		v.mu.Lock()
		defer v.mu.Unlock()
		return len(v.subs) == 0
	}, 2*time.Second, 10*time.Millisecond)
}
