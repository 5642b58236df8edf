package memsim

import (
	"container/list"

	"github.com/tuannm99/memsim/pkg/cache"
)

type tlbKey struct {
	pid  PID
	page int
}

type tlbEntry struct {
	key   tlbKey
	frame int
}

// TLB is a fixed-capacity (pid,page)->frame cache with LRU eviction
// (spec §4.4), built on the same container/list-backed recency list
// the teacher uses for its own LRU bookkeeping (pkg/cache).
type TLB struct {
	capacity int
	order    *cache.LRUManager
	index    map[tlbKey]*list.Element
}

// NewTLB returns a TLB with the given capacity. A non-positive
// capacity yields a TLB that never retains anything.
func NewTLB(capacity int) *TLB {
	return &TLB{
		capacity: capacity,
		order:    cache.NewLRUManager(),
		index:    make(map[tlbKey]*list.Element),
	}
}

// Lookup returns the frame for (pid,page) and promotes the entry to
// most-recently-used on a hit.
func (t *TLB) Lookup(pid PID, page int) (frame int, hit bool) {
	key := tlbKey{pid, page}
	e, ok := t.index[key]
	if !ok {
		return 0, false
	}
	t.order.MoveToBack(e)
	return e.Value.(tlbEntry).frame, true
}

// Insert promotes an existing (pid,page) entry or adds a new one,
// evicting the least-recently-used entry if capacity is exceeded
// (spec §4.4).
func (t *TLB) Insert(pid PID, page, frame int) {
	if t.capacity <= 0 {
		return
	}
	key := tlbKey{pid, page}
	if e, ok := t.index[key]; ok {
		e.Value = tlbEntry{key: key, frame: frame}
		t.order.MoveToBack(e)
		return
	}

	e := t.order.PushBack(tlbEntry{key: key, frame: frame})
	t.index[key] = e

	if t.order.Len() > t.capacity {
		if front := t.order.Front(); front != nil {
			t.remove(front)
		}
	}
}

// InvalidatePID removes every entry belonging to pid (spec §4.4,
// called by the engine on process termination).
func (t *TLB) InvalidatePID(pid PID) {
	for key, e := range t.index {
		if key.pid == pid {
			t.remove(e)
		}
	}
}

// InvalidateFrame removes any entry referring to frame, used by the
// engine when a frame is evicted out from under the TLB (invariant
// I7: the TLB may only contain entries matching current RAM
// contents).
func (t *TLB) InvalidateFrame(frame int) {
	for _, e := range t.index {
		if e.Value.(tlbEntry).frame == frame {
			t.remove(e)
		}
	}
}

func (t *TLB) remove(e *list.Element) {
	key := e.Value.(tlbEntry).key
	t.order.Remove(e)
	delete(t.index, key)
}

func (t *TLB) Len() int { return len(t.index) }
