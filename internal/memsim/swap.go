package memsim

// SwappedDescriptor is what a non-empty swap slot holds.
type SwappedDescriptor struct {
	PID      PID
	Page     int
	StoredAt int64
}

// SwapStore mirrors FrameStore exactly (spec §4.1: swap is the same
// shape as RAM, just addressed as slots rather than frames).
type SwapStore struct {
	slots []*SwappedDescriptor
	free  []int
}

func NewSwapStore(n int) *SwapStore {
	ss := &SwapStore{
		slots: make([]*SwappedDescriptor, n),
		free:  make([]int, n),
	}
	for i := range ss.free {
		ss.free[i] = i
	}
	return ss
}

func (ss *SwapStore) Len() int     { return len(ss.slots) }
func (ss *SwapStore) NumFree() int { return len(ss.free) }

func (ss *SwapStore) Acquire() (idx int, ok bool) {
	if len(ss.free) == 0 {
		return 0, false
	}
	idx = ss.free[0]
	ss.free = ss.free[1:]
	return idx, true
}

func (ss *SwapStore) Release(i int) {
	if ss.slots[i] == nil {
		panic("memsim: release of an already-free swap slot")
	}
	ss.slots[i] = nil
	ss.free = append(ss.free, i)
}

func (ss *SwapStore) Get(i int) *SwappedDescriptor { return ss.slots[i] }

func (ss *SwapStore) Place(i int, d *SwappedDescriptor) { ss.slots[i] = d }

func (ss *SwapStore) Occupied(i int) bool { return ss.slots[i] != nil }

func (ss *SwapStore) Used() int { return len(ss.slots) - len(ss.free) }
