package cache

import (
	"errors"
	"fmt"
	"math"
)

// MaxCapacity is the largest accepted Capacity: every live entry plus the
// sentinel and the transient overflow slot must fit a 32-bit handle.
const MaxCapacity = math.MaxUint32 - 2

var (
	// ErrInvalidCapacity is returned by New and NewEngine for Capacity < 1.
	ErrInvalidCapacity = errors.New("cache: capacity must be greater than 0")

	// ErrCapacityTooLarge is returned for Capacity > MaxCapacity.
	ErrCapacityTooLarge = errors.New("cache: capacity exceeds MaxCapacity")
)

// InvariantError reports a broken link or a disagreement between the index
// and the recency sequence. It always indicates a bug in this package.
type InvariantError struct {
	Reason string
}

func (e *InvariantError) Error() string { return "cache: invariant violated: " + e.Reason }

func invariantf(format string, args ...any) error {
	return &InvariantError{Reason: fmt.Sprintf(format, args...)}
}

func checkCapacity(capacity int) error {
	if capacity < 1 {
		return fmt.Errorf("%w: got %d", ErrInvalidCapacity, capacity)
	}
	if uint64(capacity) > MaxCapacity {
		return fmt.Errorf("%w: got %d", ErrCapacityTooLarge, capacity)
	}
	return nil
}
