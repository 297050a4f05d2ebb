package observable

import (
	"context"
	"sync"
)

// Value holds a current value and notifies subscribers of every change.
// New subscribers receive the current value first, then every later value
// in the order Set was called. Set never blocks on a slow subscriber.
type Value[T any] struct {
	mu      sync.Mutex
	current T
	subs    map[*subscriber[T]]struct{}
	closed  bool
}

func NewValue[T any](initial T) *Value[T] {
	return &Value[T]{
		current: initial,
		subs:    make(map[*subscriber[T]]struct{}),
	}
}

// Get returns the most recent value.
func (v *Value[T]) Get() T {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.current
}

// Set replaces the current value and queues it for every subscriber.
// Calls after Close are ignored.
func (v *Value[T]) Set(val T) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.closed {
		return
	}
	v.current = val
	for s := range v.subs {
		s.push(val)
	}
}

// Subscribe returns a channel that replays the current value and then
// delivers every subsequent one. The channel is closed when ctx is done
// or, after draining queued values, when the Value is closed.
func (v *Value[T]) Subscribe(ctx context.Context) <-chan T {
	s := &subscriber[T]{
		out:    make(chan T),
		wake:   make(chan struct{}, 1),
		cancel: ctx.Done(),
	}

	v.mu.Lock()
	s.queue = append(s.queue, v.current)
	if v.closed {
		s.closed = true
	} else {
		v.subs[s] = struct{}{}
	}
	v.mu.Unlock()

	go func() {
		s.run()
		v.mu.Lock()
		delete(v.subs, s)
		v.mu.Unlock()
	}()

	return s.out
}

// Close stops accepting new values and ends every subscription once its
// queued values have been delivered.
func (v *Value[T]) Close() {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.closed {
		return
	}
	v.closed = true
	for s := range v.subs {
		s.finish()
	}
}

type subscriber[T any] struct {
	mu     sync.Mutex
	queue  []T
	closed bool

	out    chan T
	wake   chan struct{}
	cancel <-chan struct{}
}

func (s *subscriber[T]) push(val T) {
	s.mu.Lock()
	s.queue = append(s.queue, val)
	s.mu.Unlock()
	s.signal()
}

func (s *subscriber[T]) finish() {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
	s.signal()
}

func (s *subscriber[T]) signal() {
	select {
	case s.wake <- struct{}{}:
	default:
	}
}

func (s *subscriber[T]) run() {
	defer close(s.out)

	for {
		s.mu.Lock()
		pending := s.queue
		s.queue = nil
		closed := s.closed
		s.mu.Unlock()

		for _, val := range pending {
			select {
			case s.out <- val:
			case <-s.cancel:
				return
			}
		}

		// Nothing can be queued after finish, so the drained batch was the last one.
		if closed {
			return
		}

		select {
		case <-s.wake:
		case <-s.cancel:
			return
		}
	}
}
