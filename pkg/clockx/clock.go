// Package clockx implements the CLOCK (second-chance) page-replacement
// algorithm over a fixed number of slot ids [0..capacity). It is used
// by the paging engine's CLOCK replacer to pick a victim frame without
// an auxiliary FIFO queue or per-frame timestamp.
package clockx

// Clock tracks, for each slot id, whether it currently holds a page
// (present), whether it is eligible for eviction (evictable), and its
// reference bit (ref). The hand sweeps the slots in order looking for
// an evictable slot with a clear reference bit, clearing reference
// bits it passes over along the way (the "second chance").
type Clock struct {
	ref       []bool
	evictable []bool
	present   []bool
	hand      int
	size      int // number of evictable slots
}

// New returns a Clock over capacity slot ids. A non-positive capacity
// is clamped to 1 so the hand always has somewhere to point.
func New(capacity int) *Clock {
	if capacity <= 0 {
		capacity = 1
	}
	return &Clock{
		ref:       make([]bool, capacity),
		evictable: make([]bool, capacity),
		present:   make([]bool, capacity),
	}
}

func (c *Clock) Capacity() int { return len(c.ref) }

// Touch marks a slot present and sets its reference bit. Call this
// both when a page is first loaded into the slot and on every later
// access to it — the paging engine's on_load and on_access both map
// to Touch.
func (c *Clock) Touch(id int) {
	if id < 0 || id >= len(c.ref) {
		return
	}
	c.present[id] = true
	c.ref[id] = true
}

// SetEvictable marks whether a present slot may be chosen as a
// victim. This simulator has no pin/unpin concept, so callers
// typically set this true immediately after Touch on load; the flag
// is kept (rather than collapsed away) because it is what lets
// PeekVictim and Remove share bookkeeping cleanly.
func (c *Clock) SetEvictable(id int, evictable bool) {
	if id < 0 || id >= len(c.ref) || !c.present[id] {
		return
	}
	if c.evictable[id] == evictable {
		return
	}
	c.evictable[id] = evictable
	if evictable {
		c.size++
	} else {
		c.size--
	}
}

// PeekVictim runs the second-chance sweep and returns a candidate
// victim slot id WITHOUT removing it from tracking — selection and
// mutation are kept separate so the caller can run its own on_evict
// notification as a distinct, atomic step (see the paging engine's
// unified replacer contract). The sweep still clears reference bits
// of slots it passes over; that part of CLOCK's state change is
// observable only through the effect on the next PeekVictim call.
//
// An empty (never-touched, or previously Removed) slot encountered
// during the sweep is returned immediately with forced=false — the
// caller is expected to treat this as "no eviction needed", which in
// practice cannot happen once the free-frame queue is the paging
// engine's gate on calling PeekVictim at all.
//
// If two full sweeps pass without finding an evictable, unreferenced
// slot, PeekVictim forces the slot currently under the hand and
// reports forced=true so the caller can log the anomaly. Because the
// first sweep clears the reference bit of every evictable slot it
// passes, this happens only when every slot is present and none is
// evictable.
func (c *Clock) PeekVictim() (id int, forced bool, ok bool) {
	n := len(c.ref)
	if n == 0 {
		return -1, false, false
	}

	for range 2 * n {
		idx := c.hand
		if !c.present[idx] {
			c.hand = (idx + 1) % n
			return idx, false, true
		}
		if c.evictable[idx] {
			if !c.ref[idx] {
				c.hand = (idx + 1) % n
				return idx, false, true
			}
			c.ref[idx] = false
		}
		c.hand = (idx + 1) % n
	}

	idx := c.hand
	c.hand = (idx + 1) % n
	return idx, true, true
}

// Remove drops a slot from tracking. The paging engine calls this as
// part of on_evict, after PeekVictim identified the slot and the
// eviction itself (swap-out, frame release) has completed.
func (c *Clock) Remove(id int) {
	if id < 0 || id >= len(c.ref) || !c.present[id] {
		return
	}
	if c.evictable[id] {
		c.size--
	}
	c.present[id] = false
	c.evictable[id] = false
	c.ref[id] = false
}

// Size reports the number of slots currently eligible for eviction.
func (c *Clock) Size() int { return c.size }
