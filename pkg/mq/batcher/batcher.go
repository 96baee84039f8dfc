// Package batcher drains a blocking source into fixed-size batches.
package batcher

import (
	"context"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const defaultStripeSize = 512

// Batcher drains a Source with a fixed number of workers.
//
// Behavior:
//   - Each worker ranges over the source and appends to its own stripe.
//   - When a stripe is full, it is flushed to the Consumer immediately.
//   - When the source ends, every worker flushes what it holds, so no taken
//     item is lost on a clean shutdown.
//   - A Consumer error or a Source fault cancels the other workers and is
//     returned by Run.
type Batcher[T any] struct {
	cons Consumer[T]
	cfg  Config
	log  *zap.Logger
}

// New creates a Batcher for type T. A nil log disables logging.
func New[T any](cons Consumer[T], cfg Config, log *zap.Logger) *Batcher[T] {
	if cfg.StripeSize <= 0 {
		cfg.StripeSize = defaultStripeSize
	}
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Batcher[T]{cons: cons, cfg: cfg, log: log}
}

// Run drains src until it ends or ctx is done. It returns the first Consumer
// error or Source fault, or nil.
//
// Items taken by a worker whose ctx is cancelled are still flushed, unless
// the cancellation came from a Consumer error.
func (b *Batcher[T]) Run(ctx context.Context, src Source[T]) error {
	g, gctx := errgroup.WithContext(ctx)
	for w := 0; w < b.cfg.Workers; w++ {
		g.Go(func() error {
			return b.work(ctx, gctx, w, src)
		})
	}
	return g.Wait()
}

func (b *Batcher[T]) work(parent, ctx context.Context, id int, src Source[T]) error {
	s := newStripe(b.cons, b.cfg.StripeSize)
	for item := range src.ConsumeContext(ctx) {
		if err := s.Push(item); err != nil {
			b.log.Error("batch consumer failed", zap.Int("worker", id), zap.Error(err))
			return errors.Wrapf(err, "batcher: worker %d", id)
		}
	}
	if err := src.Err(); err != nil {
		b.log.Error("source failed", zap.Int("worker", id), zap.Error(err))
		return errors.Wrapf(err, "batcher: worker %d", id)
	}
	if ctx.Err() != nil && parent.Err() == nil {
		// Another worker failed.
		return nil
	}
	if err := s.Flush(); err != nil {
		b.log.Error("final flush failed", zap.Int("worker", id), zap.Error(err))
		return errors.Wrapf(err, "batcher: worker %d", id)
	}
	return nil
}
