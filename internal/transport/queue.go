package transport

import "sync"

// fifo is the outgoing/incoming message queue. The owning side pushes,
// the network-facing side drains; both may be different goroutines.
type fifo struct {
	mu    sync.Mutex
	items [][]byte
}

func (q *fifo) push(b []byte) {
	q.mu.Lock()
	q.items = append(q.items, b)
	q.mu.Unlock()
}

func (q *fifo) pop() ([]byte, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.items) == 0 {
		return nil, false
	}
	b := q.items[0]
	q.items = q.items[1:]
	return b, true
}

func (q *fifo) depth() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

func (q *fifo) clear() {
	q.mu.Lock()
	q.items = nil
	q.mu.Unlock()
}
