package state

import (
	"context"
	"sync"
)

type CancelFunc func()

// Value is a reactive cell. Set publishes the new value to every watcher.
// A watcher that falls behind is coalesced to the latest value: delivery
// order is preserved but intermediate values may be skipped, so the last
// settled value always wins.
type Value[T any] struct {
	mu   sync.Mutex
	cur  T
	subs map[int]chan T
	next int
}

func NewValue[T any](initial T) *Value[T] {
	return &Value[T]{cur: initial, subs: make(map[int]chan T)}
}

func (v *Value[T]) Get() T {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.cur
}

func (v *Value[T]) Set(val T) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.cur = val
	for _, ch := range v.subs {
		send(ch, val)
	}
}

// Update applies fn to the current value under the lock and publishes the
// returned value. Used for read-modify-write on shared container state.
func (v *Value[T]) Update(fn func(T) T) T {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.cur = fn(v.cur)
	for _, ch := range v.subs {
		send(ch, v.cur)
	}
	return v.cur
}

// send never blocks: channels have capacity 1, a full buffer is drained
// so the stale value is replaced by the latest one.
func send[T any](ch chan T, val T) {
	for {
		select {
		case ch <- val:
			return
		default:
			select {
			case <-ch:
			default:
			}
		}
	}
}

// Watch subscribes to the value. The current value is delivered first.
// Cancelling (explicitly or via ctx) stops delivery and closes the channel.
func (v *Value[T]) Watch(ctx context.Context) (<-chan T, CancelFunc) {
	ch := make(chan T, 1)

	v.mu.Lock()
	id := v.next
	v.next++
	v.subs[id] = ch
	ch <- v.cur
	v.mu.Unlock()

	done := make(chan struct{})
	var once sync.Once
	cancel := func() {
		once.Do(func() {
			v.mu.Lock()
			delete(v.subs, id)
			v.mu.Unlock()
			close(done)
			close(ch)
		})
	}

	if ctx != nil {
		go func() {
			select {
			case <-ctx.Done():
				cancel()
			case <-done:
			}
		}()
	}
	return ch, cancel
}
