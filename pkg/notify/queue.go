package notify

import (
	"sync"
	"time"
)

// Queue is a bounded in-memory Notifier for long-lived views such as the
// terminal console. The oldest notification is dropped when full.
type Queue struct {
	mu       sync.Mutex
	items    []Notification
	capacity int
	ttl      time.Duration
	signal   chan struct{}
}

// NewQueue creates a Queue holding at most capacity notifications, each
// visible for ttl.
func NewQueue(capacity int, ttl time.Duration) *Queue {
	if capacity < 1 {
		capacity = 1
	}
	return &Queue{
		items:    make([]Notification, 0, capacity),
		capacity: capacity,
		ttl:      ttl,
		signal:   make(chan struct{}, 1),
	}
}

// Enqueue appends a notification and wakes a waiting reader.
func (q *Queue) Enqueue(kind Kind, message string) {
	q.mu.Lock()
	if len(q.items) == q.capacity {
		q.items = q.items[1:]
	}
	q.items = append(q.items, New(kind, message))
	q.mu.Unlock()

	select {
	case q.signal <- struct{}{}:
	default:
	}
}

// Active returns the notifications still inside their display window.
func (q *Queue) Active(now time.Time) []Notification {
	q.mu.Lock()
	defer q.mu.Unlock()

	kept := q.items[:0]
	for _, n := range q.items {
		if q.ttl <= 0 || now.Sub(n.Time) < q.ttl {
			kept = append(kept, n)
		}
	}
	q.items = kept
	return append([]Notification(nil), kept...)
}

// Signal returns a channel that receives after each Enqueue.
func (q *Queue) Signal() <-chan struct{} {
	return q.signal
}
