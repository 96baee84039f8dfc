// Package permit provides a counting permit pool whose waiters can be
// released in bulk by tripping a Signal.
package permit

import (
	"context"
	"math"

	"github.com/pkg/errors"
	"golang.org/x/sync/semaphore"
)

// ErrCancelled is returned by Acquire when the pool's signal has tripped.
var ErrCancelled = errors.New("permit: signal tripped")

// Pool is a counting permit pool built on a weighted semaphore.
//
// The semaphore is sized to the pool's upper bound and the permits that are
// not initially available are held by the pool itself. A Release that would
// push the available count past the bound panics.
type Pool struct {
	sem    *semaphore.Weighted
	signal *Signal
}

// NewPool creates a pool with initial permits available. bound caps the
// number of available permits; bound <= 0 means unbounded.
// initial is clamped to [0, bound].
func NewPool(initial, bound int64, signal *Signal) *Pool {
	size := bound
	if size <= 0 {
		size = math.MaxInt64
	}
	if initial < 0 {
		initial = 0
	}
	if initial > size {
		initial = size
	}

	sem := semaphore.NewWeighted(size)
	if held := size - initial; held > 0 {
		sem.TryAcquire(held)
	}
	return &Pool{sem: sem, signal: signal}
}

// Acquire takes one permit, blocking until one is available, the signal
// trips (ErrCancelled) or ctx is done (ctx.Err()). A nil ctx waits on the
// signal alone.
func (p *Pool) Acquire(ctx context.Context) error {
	if p.signal.Tripped() {
		return ErrCancelled
	}
	if ctx == nil || ctx.Done() == nil {
		if err := p.sem.Acquire(p.signal.ctx, 1); err != nil {
			return ErrCancelled
		}
		return nil
	}

	waitCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	stop := context.AfterFunc(p.signal.ctx, cancel)
	defer stop()

	if err := p.sem.Acquire(waitCtx, 1); err != nil {
		if p.signal.Tripped() {
			return ErrCancelled
		}
		return ctx.Err()
	}
	if p.signal.Tripped() {
		p.sem.Release(1)
		return ErrCancelled
	}
	return nil
}

// TryAcquire takes one permit without blocking. It never succeeds after the
// signal has tripped.
func (p *Pool) TryAcquire() bool {
	if p.signal.Tripped() {
		return false
	}
	return p.sem.TryAcquire(1)
}

// Release returns one permit and wakes one waiter, if any.
func (p *Pool) Release() { p.sem.Release(1) }
