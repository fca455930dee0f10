//go:build lrudebug

package cache

// Built with -tags lrudebug: every mutating Engine call validates the
// whole structure before returning.
const debugInvariants = true
