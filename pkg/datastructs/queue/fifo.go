package queue

import "sync"

var _ Queue[int] = (*FIFO[int])(nil)

const defaultFIFOCap = 16

// FIFO is an unbounded first-in first-out queue backed by a growable ring.
// All methods are safe for concurrent use.
type FIFO[T any] struct {
	mu   sync.Mutex
	buf  []T
	head int // index of the oldest item
	size int
}

// NewFIFO creates an unbounded FIFO. initial preallocates storage and is
// rounded up to a power of two.
func NewFIFO[T any](initial int) *FIFO[T] {
	if initial < defaultFIFOCap {
		initial = defaultFIFOCap
	}
	return &FIFO[T]{buf: make([]T, ceilToPowerOfTwo(initial))}
}

// Enqueue appends item at the tail. It never fails.
func (q *FIFO[T]) Enqueue(item T) bool {
	q.mu.Lock()
	if q.size == len(q.buf) {
		q.grow()
	}
	q.buf[(q.head+q.size)&(len(q.buf)-1)] = item
	q.size++
	q.mu.Unlock()
	return true
}

// Dequeue removes the head item.
func (q *FIFO[T]) Dequeue() (T, bool) {
	var zero T
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.size == 0 {
		return zero, false
	}
	item := q.buf[q.head]
	q.buf[q.head] = zero
	q.head = (q.head + 1) & (len(q.buf) - 1)
	q.size--
	return item, true
}

// Len returns the number of queued items.
func (q *FIFO[T]) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.size
}

// ToSlice copies the items from head to tail.
func (q *FIFO[T]) ToSlice() []T {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := make([]T, q.size)
	for i := range out {
		out[i] = q.buf[(q.head+i)&(len(q.buf)-1)]
	}
	return out
}

// Capacity returns 0, FIFO is unbounded.
func (q *FIFO[T]) Capacity() uint64 { return 0 }

// grow doubles the ring and unwraps it so head lands at index 0.
// Caller must hold q.mu.
func (q *FIFO[T]) grow() {
	next := make([]T, len(q.buf)*2)
	n := copy(next, q.buf[q.head:])
	copy(next[n:], q.buf[:q.head])
	q.buf = next
	q.head = 0
}
