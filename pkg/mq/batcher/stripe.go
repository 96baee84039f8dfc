package batcher

// stripe is a worker-local buffer. It is not safe for concurrent use.
type stripe[T any] struct {
	cons Consumer[T]
	data []T
	cap  int
}

func newStripe[T any](cons Consumer[T], capacity int) *stripe[T] {
	return &stripe[T]{
		cons: cons,
		data: make([]T, 0, capacity),
		cap:  capacity,
	}
}

// Push appends an item and flushes once the stripe is full.
func (s *stripe[T]) Push(item T) error {
	s.data = append(s.data, item)
	if len(s.data) < s.cap {
		return nil
	}
	return s.Flush()
}

// Flush hands the buffered items to the consumer. The consumer keeps the
// slice, so a fresh one is allocated for the next batch.
func (s *stripe[T]) Flush() error {
	if len(s.data) == 0 {
		return nil
	}
	batch := s.data
	s.data = make([]T, 0, s.cap)
	return s.cons.Consume(batch)
}
