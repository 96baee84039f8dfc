package collection

import (
	"context"
	"iter"
)

// Consume returns a sequence that takes items until the collection is
// drained. Each step blocks like Take. The sequence ends without error once
// the collection drains, including when a waiting step is cancelled by the
// drain, so it may be shared by several goroutines. It also ends on
// ErrClosed or a store fault; Err reports the fault.
//
// Breaking out of the range leaves the collection consistent; ranging again
// resumes taking where the previous range stopped.
func (c *Collection[T]) Consume() iter.Seq[T] { return c.consume(context.Background()) }

// ConsumeContext is Consume that also ends when ctx is done.
func (c *Collection[T]) ConsumeContext(ctx context.Context) iter.Seq[T] { return c.consume(ctx) }

func (c *Collection[T]) consume(ctx context.Context) iter.Seq[T] {
	return func(yield func(T) bool) {
		for !c.IsCompleted() {
			item, err := c.take(ctx)
			if err != nil {
				return
			}
			if !yield(item) {
				return
			}
		}
	}
}
