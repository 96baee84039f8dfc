package permit

import "context"

// Signal is a one-shot cancellation latch. Once tripped it stays tripped and
// every Pool bound to it stops granting permits.
type Signal struct {
	ctx    context.Context
	cancel context.CancelFunc
}

// NewSignal returns an untripped signal.
func NewSignal() *Signal {
	ctx, cancel := context.WithCancel(context.Background())
	return &Signal{ctx: ctx, cancel: cancel}
}

// Trip trips the signal. Safe to call any number of times.
func (s *Signal) Trip() { s.cancel() }

// Tripped reports whether Trip has been called.
func (s *Signal) Tripped() bool { return s.ctx.Err() != nil }
