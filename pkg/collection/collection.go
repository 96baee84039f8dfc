// Package collection provides a blocking collection: a queue that many
// producers and consumers share, with optional capacity backpressure and a
// one-way "complete adding" shutdown.
//
// Producers call Add, which blocks while a bounded collection is full.
// Consumers call Take, which blocks while the collection is empty. After
// CompleteAdding, Add fails with ErrAddingCompleted, consumers drain what is
// left, and once the last item is taken every Take fails with ErrDrained.
// Callers that were already blocked when that happened get ErrCancelled.
//
// Items live in a queue.Queue store; FIFO by default.
package collection

import (
	"iter"
	"sync"
	"sync/atomic"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/whitestrannik/Examples.BlockingCollection/pkg/common/permit"
	"github.com/whitestrannik/Examples.BlockingCollection/pkg/datastructs/queue"
	"github.com/whitestrannik/Examples.BlockingCollection/pkg/settings"
)

// completedBit marks adding as complete in Collection.state. The low bits
// count adders between their admission and their insert.
const completedBit = int64(1) << 62

// maxPrealloc caps the storage New reserves up front for bounded collections.
const maxPrealloc = 1024

// Collection is a blocking, concurrency-safe collection of T.
//
// All methods are safe for concurrent use. Close must be called once the
// collection is no longer used.
type Collection[T any] struct {
	store    queue.Queue[T]
	capacity int

	admission *permit.Pool // nil when unbounded
	available *permit.Pool

	producers *permit.Signal // trips with CompleteAdding
	consumers *permit.Signal // trips once completed and empty

	state     atomic.Int64
	drained   atomic.Bool
	closed    atomic.Bool
	closeOnce sync.Once

	fault atomic.Pointer[error] // first store fault

	log *zap.Logger
}

// New creates a collection backed by a FIFO store. capacity bounds the number
// of queued items; 0 means unbounded.
func New[T any](capacity int, opts ...Option) (*Collection[T], error) {
	if capacity < 0 {
		return nil, errors.Wrapf(ErrInvalidArgument, "negative capacity %d", capacity)
	}
	return NewWithStore[T](queue.NewFIFO[T](min(capacity, maxPrealloc)), capacity, opts...)
}

// NewWithStore creates a collection over store. Items already in the store
// are takeable immediately and count against capacity.
//
// A bounded store requires a capacity between 1 and the store's capacity so
// that an admitted item always fits.
func NewWithStore[T any](store queue.Queue[T], capacity int, opts ...Option) (*Collection[T], error) {
	if store == nil {
		return nil, errors.Wrap(ErrInvalidArgument, "nil store")
	}
	if capacity < 0 {
		return nil, errors.Wrapf(ErrInvalidArgument, "negative capacity %d", capacity)
	}
	if sc := store.Capacity(); sc > 0 && (capacity == 0 || uint64(capacity) > sc) {
		return nil, errors.Wrapf(ErrInvalidArgument, "capacity %d does not fit store capacity %d", capacity, sc)
	}
	count := store.Len()
	if capacity > 0 && count > capacity {
		return nil, errors.Wrapf(ErrInvalidArgument, "store holds %d items, capacity is %d", count, capacity)
	}

	o := options{log: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}

	c := &Collection[T]{
		store:     store,
		capacity:  capacity,
		producers: permit.NewSignal(),
		consumers: permit.NewSignal(),
	}
	if capacity > 0 {
		c.admission = permit.NewPool(int64(capacity-count), int64(capacity), c.producers)
	}
	c.available = permit.NewPool(int64(count), 0, c.consumers)

	fields := []zap.Field{zap.Int("capacity", capacity)}
	if o.name != "" {
		fields = append(fields, zap.String("collection", o.name))
	}
	c.log = o.log.With(fields...)
	return c, nil
}

// NewFromConfig validates cfg and creates a collection with the configured
// store kind.
func NewFromConfig[T any](cfg settings.Collection, opts ...Option) (*Collection[T], error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(ErrInvalidArgument, err.Error())
	}

	var store queue.Queue[T]
	switch cfg.Store {
	case settings.StoreLIFO:
		store = queue.NewStack[T](cfg.StoreCapacity)
	case settings.StoreMPMC:
		n := cfg.StoreCapacity
		if n == 0 {
			n = cfg.Capacity
		}
		store = queue.NewMPMC[T](n)
	default:
		n := cfg.StoreCapacity
		if n == 0 {
			n = min(cfg.Capacity, maxPrealloc)
		}
		store = queue.NewFIFO[T](n)
	}

	if cfg.Name != "" {
		opts = append([]Option{WithName(cfg.Name)}, opts...)
	}
	return NewWithStore(store, cfg.Capacity, opts...)
}

// Count returns the number of items currently held. The value may be stale
// as soon as it is read; use it for diagnostics only.
func (c *Collection[T]) Count() int { return c.store.Len() }

// Capacity returns the bound set at construction, 0 if unbounded.
func (c *Collection[T]) Capacity() int { return c.capacity }

// IsAddingCompleted reports whether CompleteAdding has been called.
func (c *Collection[T]) IsAddingCompleted() bool {
	return c.state.Load()&completedBit != 0
}

// IsCompleted reports whether adding is complete and every item has been
// taken. Close alone never makes a collection completed.
func (c *Collection[T]) IsCompleted() bool { return c.drained.Load() }

// Err returns the first store fault (an ErrInconsistent) seen by any
// operation, or nil. A consuming sequence that ends early because of a fault
// leaves it here.
func (c *Collection[T]) Err() error {
	if p := c.fault.Load(); p != nil {
		return *p
	}
	return nil
}

// ToSlice copies the current items in the order Take would return them,
// without removing them.
func (c *Collection[T]) ToSlice() []T { return c.store.ToSlice() }

// All iterates over a snapshot of the current items without removing them.
func (c *Collection[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, item := range c.store.ToSlice() {
			if !yield(item) {
				return
			}
		}
	}
}

// Close wakes every blocked caller and makes later calls fail with ErrClosed.
// Items still held are left in the store. Close is idempotent and always
// returns nil.
func (c *Collection[T]) Close() error {
	c.closeOnce.Do(func() {
		c.closed.Store(true)
		c.producers.Trip()
		c.consumers.Trip()
		c.log.Debug("collection closed", zap.Int("count", c.store.Len()))
	})
	return nil
}
