package memsim

// FrameView is one RAM frame's observable state (spec §6 snapshot()).
type FrameView struct {
	Index      int
	Occupied   bool
	PID        PID
	Page       int
	LastAccess int64
}

// SlotView is one swap slot's observable state.
type SlotView struct {
	Index    int
	Occupied bool
	PID      PID
	Page     int
}

// PCBSummary is the read-only view of one process exposed by a
// snapshot, omitting the full page table (spec §6).
type PCBSummary struct {
	PID                   PID
	Name                  string
	State                 ProcState
	SizeKB                int
	NumPages              int
	RemainingInstructions int
	TotalInstructions     int
	TerminationReason     string
}

// TLBEntryView is one observable TLB mapping.
type TLBEntryView struct {
	PID   PID
	Page  int
	Frame int
}

// Snapshot is an immutable, point-in-time view of the whole engine
// (spec §6: "Result: immutable view of frames, slots, PCB summaries,
// TLB contents, and metrics").
type Snapshot struct {
	Ticks       int64
	AccessClock int64
	Replacement ReplacementKind
	TLBEnabled  bool

	Frames    []FrameView
	Slots     []SlotView
	Processes []PCBSummary
	TLB       []TLBEntryView
	Metrics   Metrics
}

// FramesUsed returns the number of occupied frames in the snapshot.
func (s Snapshot) FramesUsed() int {
	n := 0
	for _, f := range s.Frames {
		if f.Occupied {
			n++
		}
	}
	return n
}

// Utilization is FramesUsed/len(Frames), defined as 0 for a zero-frame
// RAM (spec §8 B1).
func (s Snapshot) Utilization() float64 {
	if len(s.Frames) == 0 {
		return 0
	}
	return float64(s.FramesUsed()) / float64(len(s.Frames))
}

// FaultRate delegates to Metrics.FaultRate.
func (s Snapshot) FaultRate() float64 { return s.Metrics.FaultRate() }

// Snapshot captures the engine's current state (spec §4.6, §6).
func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()

	frames := make([]FrameView, e.frameStore.Len())
	for i := range frames {
		d := e.frameStore.Get(i)
		if d == nil {
			frames[i] = FrameView{Index: i}
			continue
		}
		frames[i] = FrameView{Index: i, Occupied: true, PID: d.PID, Page: d.Page, LastAccess: d.LastAccess}
	}

	slots := make([]SlotView, e.swapStore.Len())
	for i := range slots {
		d := e.swapStore.Get(i)
		if d == nil {
			slots[i] = SlotView{Index: i}
			continue
		}
		slots[i] = SlotView{Index: i, Occupied: true, PID: d.PID, Page: d.Page}
	}

	procs := make([]PCBSummary, 0, len(e.registry.byPID))
	for _, p := range allPCBs(e.registry) {
		procs = append(procs, PCBSummary{
			PID:                   p.PID,
			Name:                  p.Name,
			State:                 p.State,
			SizeKB:                p.SizeKB,
			NumPages:              p.NumPages(),
			RemainingInstructions: p.RemainingInstructions,
			TotalInstructions:     p.TotalInstructions,
			TerminationReason:     p.TerminationReason,
		})
	}

	tlbEntries := make([]TLBEntryView, 0, e.tlb.Len())
	for key, elem := range e.tlb.index {
		entry := elem.Value.(tlbEntry)
		tlbEntries = append(tlbEntries, TLBEntryView{PID: key.pid, Page: key.page, Frame: entry.frame})
	}

	return Snapshot{
		Ticks:       e.ticks,
		AccessClock: e.accessClock,
		Replacement: e.cfg.Replacement,
		TLBEnabled:  e.tlbEnabled,
		Frames:      frames,
		Slots:       slots,
		Processes:   procs,
		TLB:         tlbEntries,
		Metrics:     e.metrics,
	}
}

// allPCBs returns every PCB the registry has ever seen, running first,
// then ready, waiting, terminated, in scheduling order.
func allPCBs(r *registry) []*PCB {
	out := make([]*PCB, 0, len(r.byPID))
	if r.running != nil {
		out = append(out, r.running)
	}
	out = append(out, r.ready...)
	out = append(out, r.waiting...)
	out = append(out, r.terminated...)
	return out
}
