//go:build !lrudebug

package cache

const debugInvariants = false
