package queue

import (
	"math/bits"
	"sync/atomic"

	pkgRuntime "github.com/whitestrannik/Examples.BlockingCollection/pkg/runtime"
)

var _ Queue[int] = (*MPMC[int])(nil)

const cacheLineSize = 64

type slot[T any] struct {
	turn atomic.Uint64            // Turn number for producer/consumer
	data atomic.Pointer[T]        // Item stored in the slot, nil when free
	_    [cacheLineSize - 16]byte // Padding to prevent false sharing
}

// MPMC is a lock-free bounded multiple-producer multiple-consumer queue.
//
// Slots hold a pointer to the item so ToSlice can read a slot while a
// consumer clears it. This costs one heap allocation per Enqueue; the
// collection pays it for a race-free snapshot.
type MPMC[T any] struct {
	capacity     uint64    // Maximum capacity of the queue
	mask         uint64    // Mask for fast modulo
	capacityLog2 uint64    // Log2 of capacity for fast division
	slots        []slot[T] // Array of slots

	_ [cacheLineSize]byte // Padding to prevent false sharing

	head atomic.Uint64 // Head position

	_ [cacheLineSize]byte // Padding to prevent false sharing

	tail atomic.Uint64 // Tail position
}

// NewMPMC creates a queue with capacity rounded up to power of 2.
func NewMPMC[T any](capacity int) *MPMC[T] {
	capacity = ceilToPowerOfTwo(capacity)

	return &MPMC[T]{
		capacity:     uint64(capacity),
		mask:         uint64(capacity - 1),
		capacityLog2: uint64(bits.TrailingZeros64(uint64(capacity))),
		slots:        make([]slot[T], capacity),
	}
}

func (q *MPMC[T]) idx(pos uint64) uint64  { return pos & q.mask }
func (q *MPMC[T]) turn(pos uint64) uint64 { return pos >> q.capacityLog2 }

// Enqueue adds an item. Returns false if queue is full. A slot that is
// still being released by a consumer is waited for, not reported as full.
func (q *MPMC[T]) Enqueue(item T) bool {
	var spinner pkgRuntime.Spinner
	for {
		head := q.head.Load()
		s := &q.slots[q.idx(head)]
		expectedTurn := q.turn(head) * 2

		if s.turn.Load() == expectedTurn {
			if q.head.CompareAndSwap(head, head+1) {
				s.data.Store(&item)
				s.turn.Store(expectedTurn + 1)
				return true
			}
		} else if head == q.head.Load() && q.tail.Load()+q.capacity <= head {
			return false
		}

		spinner.SpinOnce()
	}
}

// Dequeue removes and returns an item. Returns false if queue is empty. A
// claimed but unpublished slot is waited for, not reported as empty.
func (q *MPMC[T]) Dequeue() (T, bool) {
	var zero T
	var spinner pkgRuntime.Spinner

	for {
		tail := q.tail.Load()
		s := &q.slots[q.idx(tail)]
		expectedTurn := q.turn(tail)*2 + 1

		if s.turn.Load() == expectedTurn {
			if q.tail.CompareAndSwap(tail, tail+1) {
				p := s.data.Swap(nil)
				s.turn.Store(expectedTurn + 1)
				return *p, true
			}
		} else if tail == q.tail.Load() && q.head.Load() <= tail {
			return zero, false
		}

		spinner.SpinOnce()
	}
}

// Len returns approximate item count, never negative.
func (q *MPMC[T]) Len() int {
	n := int64(q.head.Load()) - int64(q.tail.Load())
	if n < 0 {
		return 0
	}
	return int(n)
}

// ToSlice copies the items published between tail and head.
// Slots claimed but not yet published, or dequeued during the scan, are skipped.
func (q *MPMC[T]) ToSlice() []T {
	tail := q.tail.Load()
	head := q.head.Load()
	if head <= tail {
		return []T{}
	}

	out := make([]T, 0, head-tail)
	for pos := tail; pos < head; pos++ {
		s := &q.slots[q.idx(pos)]
		filled := q.turn(pos)*2 + 1
		if s.turn.Load() != filled {
			continue
		}
		p := s.data.Load()
		if p == nil || s.turn.Load() != filled {
			continue
		}
		out = append(out, *p)
	}
	return out
}

// IsEmpty returns true if queue appears empty.
func (q *MPMC[T]) IsEmpty() bool { return q.Len() == 0 }

// IsFull returns true if queue appears full.
func (q *MPMC[T]) IsFull() bool { return uint64(q.Len()) >= q.capacity }

// Capacity returns maximum queue size.
func (q *MPMC[T]) Capacity() uint64 { return q.capacity }
