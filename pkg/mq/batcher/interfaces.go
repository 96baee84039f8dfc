package batcher

import (
	"context"
	"iter"
)

// Consumer is the interface that must be implemented by users of the Batcher.
// It is responsible for processing a batch of items.
type Consumer[T any] interface {
	// Consume processes a batch of items. The batch is owned by the Consumer.
	// A non-nil error stops the run.
	Consume(batch []T) error
}

// ConsumerFunc adapts a function to Consumer.
type ConsumerFunc[T any] func(batch []T) error

// Consume calls f(batch).
func (f ConsumerFunc[T]) Consume(batch []T) error { return f(batch) }

// Source yields items until it is exhausted or ctx is done. Err reports a
// fault that ended a sequence early.
// *collection.Collection satisfies it.
type Source[T any] interface {
	ConsumeContext(ctx context.Context) iter.Seq[T]
	Err() error
}

// Config holds configuration for the Batcher.
type Config struct {
	// StripeSize is the capacity of a single stripe buffer.
	// When a stripe reaches this size, it will be flushed to the Consumer.
	StripeSize int
	// Workers is the number of goroutines draining the source. Defaults to 1.
	Workers int
}
