// Package queue provides an unbounded, goroutine-safe FIFO with a blocking Take.
//
// The same type backs three roles in the search pipeline: the supply of free
// buffers, each worker's inbound work queue, and the shared match sink.
package queue

import "sync"

// Queue is an unbounded FIFO. Put never blocks; Take blocks until an item is
// available. The zero value is not usable, create queues with New.
type Queue[T any] struct {
	mu    sync.Mutex
	cond  *sync.Cond
	items []T
}

// New creates an empty queue.
func New[T any]() *Queue[T] {
	q := &Queue[T]{
		items: make([]T, 0, 64),
	}
	q.cond = sync.NewCond(&q.mu)
	return q
}

// Put appends item at the tail and wakes one waiting Take.
func (q *Queue[T]) Put(item T) {
	q.mu.Lock()
	q.items = append(q.items, item)
	q.mu.Unlock()
	q.cond.Signal()
}

// Take removes and returns the head of the queue, blocking while it is empty.
// There is no timeout: consumers that must be released at shutdown are woken
// by putting a sentinel value.
func (q *Queue[T]) Take() T {
	q.mu.Lock()
	defer q.mu.Unlock()

	for len(q.items) == 0 {
		q.cond.Wait()
	}
	return q.pop()
}

// TryTake removes and returns the head of the queue without blocking.
// ok is false when the queue is empty.
func (q *Queue[T]) TryTake() (item T, ok bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.items) == 0 {
		return item, false
	}
	return q.pop(), true
}

// Drain removes and returns every queued item in FIFO order.
// It returns nil when the queue is empty.
func (q *Queue[T]) Drain() []T {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = make([]T, 0, cap(out))
	return out
}

// Size returns the number of queued items. Under concurrent use the value is
// advisory only.
func (q *Queue[T]) Size() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

// pop must be called with mu held and a non-empty queue.
func (q *Queue[T]) pop() T {
	var zero T
	item := q.items[0]
	q.items[0] = zero // release the reference for the GC
	q.items = q.items[1:]
	return item
}
