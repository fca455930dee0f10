// Package util contains internal helpers shared by the cache packages.
//revive:disable:var-naming  // allow 'util' as an internal helpers package name
package util

import (
	"sync/atomic"
	"unsafe"
)

// CacheLineSize is a reasonable default for most modern CPUs.
// std has runtime/internal/sys.CacheLineSize but it's unexported.
const CacheLineSize = 64

// CacheLinePad separates groups of hot fields into distinct cache lines.
type CacheLinePad struct{ _ [CacheLineSize]byte }

// Counter is a monotonically increasing atomic counter padded to exactly
// one cache line, so that counters bumped by the lock holder do not share
// a line with fields read by lock-free Stats callers.
type Counter struct {
	v atomic.Uint64
	_ [CacheLineSize - 8]byte
}

// Inc adds one.
func (c *Counter) Inc() { c.v.Add(1) }

// Load returns the current value.
func (c *Counter) Load() uint64 { return c.v.Load() }

// Compile-time size check (must be exactly one cache line).
var _ [CacheLineSize - int(unsafe.Sizeof(Counter{}))]byte
