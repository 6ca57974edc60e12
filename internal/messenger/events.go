package messenger

import "sync"

// feed is one subscribable event. Subscription changes are mutex-guarded;
// publish copies the current subscriber set and invokes callbacks outside
// the lock, so a callback may subscribe or unsubscribe without deadlocking
// and never runs while the registry is locked.
type feed[T any] struct {
	mu   sync.Mutex
	next int
	subs map[int]func(T)
}

// subscribe registers fn and returns its cancel function. Cancel is
// idempotent.
func (f *feed[T]) subscribe(fn func(T)) (cancel func()) {
	f.mu.Lock()
	if f.subs == nil {
		f.subs = make(map[int]func(T))
	}
	id := f.next
	f.next++
	f.subs[id] = fn
	f.mu.Unlock()

	return func() {
		f.mu.Lock()
		delete(f.subs, id)
		f.mu.Unlock()
	}
}

func (f *feed[T]) publish(v T) {
	f.mu.Lock()
	snapshot := make([]func(T), 0, len(f.subs))
	for _, fn := range f.subs {
		snapshot = append(snapshot, fn)
	}
	f.mu.Unlock()

	for _, fn := range snapshot {
		fn(v)
	}
}
