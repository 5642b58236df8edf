// Package idgen provides a small atomic monotonic counter for
// identifiers that must never repeat within a run. The process
// registry uses it for process ids (§3's "PIDs are never reused").
package idgen

import "sync/atomic"

// Counter hands out strictly increasing values starting at 1.
type Counter struct {
	n atomic.Int64
}

// Next returns the next value in the sequence, starting at 1.
func (c *Counter) Next() int64 {
	return c.n.Add(1)
}

// Peek returns the most recently issued value, or 0 if Next has
// never been called.
func (c *Counter) Peek() int64 {
	return c.n.Load()
}
