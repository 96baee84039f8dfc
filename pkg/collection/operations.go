package collection

import (
	"context"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/whitestrannik/Examples.BlockingCollection/pkg/common/permit"
	pkgRuntime "github.com/whitestrannik/Examples.BlockingCollection/pkg/runtime"
)

// Add inserts item, blocking while a bounded collection is full.
//
// It returns ErrAddingCompleted if CompleteAdding was already called, and
// ErrCancelled if CompleteAdding happened while Add was waiting for room.
func (c *Collection[T]) Add(item T) error { return c.add(context.Background(), item) }

// AddContext is Add with a caller deadline. When ctx ends first the returned
// error wraps ctx.Err().
func (c *Collection[T]) AddContext(ctx context.Context, item T) error { return c.add(ctx, item) }

// TryAdd inserts item if there is room right now. It reports false with a nil
// error when a bounded collection is full.
func (c *Collection[T]) TryAdd(item T) (bool, error) {
	if err := c.checkAdd(); err != nil {
		return false, err
	}
	if c.admission != nil && !c.admission.TryAcquire() {
		if c.IsAddingCompleted() {
			return false, ErrCancelled
		}
		return false, nil
	}
	if err := c.insert(item); err != nil {
		return false, err
	}
	return true, nil
}

// Take removes and returns an item, blocking while the collection is empty.
//
// It returns ErrDrained if the collection was already drained, and
// ErrCancelled if it drained while Take was waiting.
func (c *Collection[T]) Take() (T, error) { return c.take(context.Background()) }

// TakeContext is Take with a caller deadline. When ctx ends first the
// returned error wraps ctx.Err().
func (c *Collection[T]) TakeContext(ctx context.Context) (T, error) { return c.take(ctx) }

// TryTake removes an item if one is available right now. It reports false
// with a nil error when the collection is empty but not drained.
func (c *Collection[T]) TryTake() (T, bool, error) {
	var zero T
	if err := c.checkTake(); err != nil {
		return zero, false, err
	}
	if !c.available.TryAcquire() {
		return zero, false, nil
	}
	item, err := c.remove()
	if err != nil {
		return zero, false, err
	}
	return item, true, nil
}

// CompleteAdding marks the collection as not accepting any more items.
//
// Producers blocked in Add fail with ErrCancelled. If nothing is left to take,
// consumers blocked in Take fail with ErrCancelled too; otherwise they keep
// draining and the last Take does it. CompleteAdding is idempotent.
func (c *Collection[T]) CompleteAdding() {
	var spinner pkgRuntime.Spinner
	for {
		s := c.state.Load()
		if s&completedBit != 0 {
			c.waitAdders()
			return
		}
		if c.state.CompareAndSwap(s, s|completedBit) {
			break
		}
		spinner.SpinOnce()
	}

	c.producers.Trip()
	c.waitAdders()

	count := c.store.Len()
	c.log.Debug("adding completed", zap.Int("count", count))
	if count == 0 {
		c.drain()
	}
}

func (c *Collection[T]) add(ctx context.Context, item T) error {
	if err := c.checkAdd(); err != nil {
		return err
	}
	if c.admission != nil {
		if err := c.admission.Acquire(ctx); err != nil {
			return c.waitError(err)
		}
	}
	return c.insert(item)
}

func (c *Collection[T]) take(ctx context.Context) (T, error) {
	var zero T
	if err := c.checkTake(); err != nil {
		return zero, err
	}
	if err := c.available.Acquire(ctx); err != nil {
		return zero, c.waitError(err)
	}
	return c.remove()
}

func (c *Collection[T]) checkAdd() error {
	if c.closed.Load() {
		return ErrClosed
	}
	if c.IsAddingCompleted() {
		return ErrAddingCompleted
	}
	return nil
}

func (c *Collection[T]) checkTake() error {
	if c.closed.Load() {
		return ErrClosed
	}
	if c.IsCompleted() {
		return ErrDrained
	}
	return nil
}

// insert stores item; the caller holds an admission permit.
func (c *Collection[T]) insert(item T) error {
	if !c.enterAdder() {
		// CompleteAdding won the race after admission.
		c.releaseAdmission()
		return ErrCancelled
	}
	defer c.state.Add(-1)

	if !c.store.Enqueue(item) {
		c.log.Error("store refused an admitted item", zap.Int("count", c.store.Len()))
		return c.storeFault(errors.Wrap(ErrInconsistent, "enqueue"))
	}
	c.available.Release()
	return nil
}

// remove takes an item; the caller holds an availability permit.
func (c *Collection[T]) remove() (T, error) {
	item, ok := c.store.Dequeue()
	if !ok {
		c.log.Error("store empty despite an availability permit")
		var zero T
		return zero, c.storeFault(errors.Wrap(ErrInconsistent, "dequeue"))
	}
	c.releaseAdmission()

	// Only the last item taken after completion, with no adder still in
	// flight, drains the collection.
	if c.state.Load() == completedBit && c.store.Len() == 0 {
		c.drain()
	}
	return item, nil
}

func (c *Collection[T]) enterAdder() bool {
	for {
		s := c.state.Load()
		if s&completedBit != 0 {
			return false
		}
		if c.state.CompareAndSwap(s, s+1) {
			return true
		}
	}
}

// waitAdders spins until every adder admitted before completion has inserted.
func (c *Collection[T]) waitAdders() {
	var spinner pkgRuntime.Spinner
	for c.state.Load() != completedBit {
		spinner.SpinOnce()
	}
}

func (c *Collection[T]) releaseAdmission() {
	if c.admission != nil {
		c.admission.Release()
	}
}

func (c *Collection[T]) drain() {
	if !c.drained.CompareAndSwap(false, true) {
		return
	}
	c.consumers.Trip()
	c.log.Debug("collection drained")
}

// storeFault keeps the first fault for Err and returns err.
func (c *Collection[T]) storeFault(err error) error {
	c.fault.CompareAndSwap(nil, &err)
	return err
}

// waitError maps a failed permit wait to the collection's errors.
func (c *Collection[T]) waitError(err error) error {
	if errors.Is(err, permit.ErrCancelled) {
		if c.closed.Load() {
			return ErrClosed
		}
		return ErrCancelled
	}
	return errors.Wrap(err, "collection: wait")
}
