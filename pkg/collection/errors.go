package collection

import "github.com/pkg/errors"

var (
	// ErrInvalidState is the root of errors for calls that were illegal when issued.
	ErrInvalidState = errors.New("invalid state")
	// ErrAddingCompleted is returned by Add after CompleteAdding.
	ErrAddingCompleted = errors.Wrap(ErrInvalidState, "collection: adding completed")
	// ErrDrained is returned by Take once adding is complete and every item has been taken.
	ErrDrained = errors.Wrap(ErrInvalidState, "collection: drained")

	// ErrCancelled is returned to a caller that was blocked in Add or Take when
	// completion made the wait pointless.
	ErrCancelled = errors.New("collection: wait cancelled by completion")

	// ErrInconsistent means the store refused an operation its permit said
	// would succeed. It indicates a misbehaving store.
	ErrInconsistent = errors.New("collection: store disagrees with permit accounting")

	// ErrClosed is returned by every call made after Close, and to callers
	// that were blocked when Close ran.
	ErrClosed = errors.New("collection: closed")
	// ErrInvalidArgument is returned by the constructors.
	ErrInvalidArgument = errors.New("collection: invalid argument")
)

// IsInvalidState reports whether err is ErrAddingCompleted or ErrDrained.
func IsInvalidState(err error) bool { return errors.Is(err, ErrInvalidState) }

// IsCancelled reports whether err is ErrCancelled.
func IsCancelled(err error) bool { return errors.Is(err, ErrCancelled) }

// IsInconsistent reports whether err is ErrInconsistent.
func IsInconsistent(err error) bool { return errors.Is(err, ErrInconsistent) }
