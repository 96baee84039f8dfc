package runtime

import (
	"runtime"
	_ "unsafe" // for go:linkname
)

// Spinning constants for the Adaptive Spinning strategy.
// Active spin: use PAUSE instruction (low power, keeps CPU warm).
// Passive spin: yield to scheduler.
const (
	activeSpinCycles = 4  // Number of PAUSE cycles per active spin iteration
	activeSpinTries  = 30 // Max active spin iterations before yielding
)

// Procyield spins for a given number of cycles without yielding to the scheduler.
// It uses the CPU PAUSE instruction on x86 to reduce power consumption during spinning.
// cycles: number of spin iterations (typically 4-30 for short waits).
//
//go:linkname Procyield runtime.procyield
func Procyield(cycles uint32)

// Spinner backs off a retry loop: it burns a few PAUSE cycles for the first
// iterations and yields to the scheduler after that.
// The zero value is ready to use. A Spinner must not be shared between goroutines.
type Spinner struct {
	count int
}

// SpinOnce performs one back-off step.
func (s *Spinner) SpinOnce() {
	if s.count < activeSpinTries {
		s.count++
		Procyield(activeSpinCycles)
		return
	}
	runtime.Gosched()
	s.count = 0
}
