package queue

// Queue is the item store behind a blocking collection.
// Implementations must be safe for concurrent use by multiple producers and
// multiple consumers.
type Queue[T any] interface {
	// Enqueue adds an item to the queue.
	// Returns true if successful, false if the queue is full.
	Enqueue(item T) bool

	// Dequeue removes and returns an item from the queue.
	// Returns (item, true) if successful, (zero, false) if the queue is empty.
	Dequeue() (T, bool)

	// Len returns the number of items currently held. The value is a
	// point-in-time snapshot under concurrent access.
	Len() int

	// ToSlice copies the current contents in removal order.
	ToSlice() []T

	// Capacity returns the total capacity of the queue, 0 if unbounded.
	Capacity() uint64
}
