package queue

import "sync"

var _ Queue[int] = (*Stack[int])(nil)

// Stack is an unbounded last-in first-out store.
// All methods are safe for concurrent use.
type Stack[T any] struct {
	mu    sync.Mutex
	items []T
}

// NewStack creates an empty stack with room for initial items.
func NewStack[T any](initial int) *Stack[T] {
	if initial < 0 {
		initial = 0
	}
	return &Stack[T]{items: make([]T, 0, initial)}
}

// Enqueue pushes item on top. It never fails.
func (s *Stack[T]) Enqueue(item T) bool {
	s.mu.Lock()
	s.items = append(s.items, item)
	s.mu.Unlock()
	return true
}

// Dequeue pops the top item.
func (s *Stack[T]) Dequeue() (T, bool) {
	var zero T
	s.mu.Lock()
	defer s.mu.Unlock()
	n := len(s.items)
	if n == 0 {
		return zero, false
	}
	item := s.items[n-1]
	s.items[n-1] = zero
	s.items = s.items[:n-1]
	return item, true
}

// Len returns the number of stacked items.
func (s *Stack[T]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// ToSlice copies the items top first, matching the order Dequeue returns them.
func (s *Stack[T]) ToSlice() []T {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]T, len(s.items))
	for i, item := range s.items {
		out[len(out)-1-i] = item
	}
	return out
}

// Capacity returns 0, Stack is unbounded.
func (s *Stack[T]) Capacity() uint64 { return 0 }
