package memsim

import (
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"sync"
)

// AccessResult is the total enumeration Access can report (spec §6).
type AccessResult int

const (
	Hit AccessResult = iota
	HitAfterFault
	Invalid
	FaultUnresolved
)

func (r AccessResult) String() string {
	switch r {
	case Hit:
		return "HIT"
	case HitAfterFault:
		return "HIT-AFTER-FAULT"
	case Invalid:
		return "INVALID"
	case FaultUnresolved:
		return "FAULT-UNRESOLVED"
	default:
		return "UNKNOWN"
	}
}

// Config is the recognized configuration surface (spec §6).
type Config struct {
	RAMKB       int
	SwapKB      int
	PageKB      int
	Replacement ReplacementKind

	TLBEnabled bool
	TLBSize    int

	ArrivalProb        float64
	MaxRandomProcMemKB int
	MaxRandomInstr     int

	// RandSeed seeds the engine's random-arrival and random-reference
	// generator. Zero defaults to a fixed seed so a driver gets
	// reproducible runs unless it asks for variation — the teacher's
	// stack has no equivalent of this knob since novasql never
	// simulates random workloads, but a deterministic default is the
	// safer choice for a teaching tool.
	RandSeed int64
}

// Default returns the distilled source's DEFAULT_CONFIG values
// (proyecto_memoria.py's ensure_config), used when no config file is
// present.
func Default() Config {
	return Config{
		RAMKB:               2048,
		SwapKB:              4096,
		PageKB:              256,
		Replacement:         FIFO,
		TLBEnabled:          false,
		TLBSize:             4,
		ArrivalProb:         0.25,
		MaxRandomProcMemKB:  1024,
		MaxRandomInstr:      30,
	}
}

const logPrefix = "memsim: "

// Engine is the paging orchestrator (spec §4.5): allocation on
// admission, page-fault service, swap-in/swap-out, TLB maintenance,
// termination cleanup, and metrics. Every public method is a single
// atomic step with respect to the invariants of spec §3 (spec §5),
// enforced here by one mutex — the simulated scheduling model is
// itself single-threaded, but the mutex lets a network driver expose
// one Engine safely across connections.
type Engine struct {
	mu sync.Mutex

	cfg    Config
	pageKB int

	frameStore *FrameStore
	swapStore  *SwapStore
	replacer   Replacer
	tlb        *TLB
	tlbEnabled bool
	registry   *registry

	ticks       int64
	accessClock int64
	metrics     Metrics
	events      []Event

	rng *rand.Rand
}

// NewEngine constructs an Engine from cfg. Frame count is
// floor(ram_kb/page_kb), slot count is floor(swap_kb/page_kb) (spec
// §6); either may be zero (spec §8 B1/B2).
func NewEngine(cfg Config) *Engine {
	pageKB := cfg.PageKB
	if pageKB <= 0 {
		pageKB = 1
	}
	numFrames := cfg.RAMKB / pageKB
	numSlots := cfg.SwapKB / pageKB

	frames := NewFrameStore(numFrames)
	swap := NewSwapStore(numSlots)

	seed := cfg.RandSeed
	if seed == 0 {
		seed = 1
	}

	return &Engine{
		cfg:        cfg,
		pageKB:     pageKB,
		frameStore: frames,
		swapStore:  swap,
		replacer:   NewReplacer(cfg.Replacement, numFrames, frames),
		tlb:        NewTLB(tlbCapacity(cfg)),
		tlbEnabled: cfg.TLBEnabled,
		registry:   newRegistry(),
		rng:        rand.New(rand.NewSource(seed)),
	}
}

func tlbCapacity(cfg Config) int {
	if !cfg.TLBEnabled {
		return 0
	}
	return cfg.TLBSize
}

func (e *Engine) logEvent(cat EventCategory, msg string) {
	e.events = append(e.events, Event{Tick: e.ticks, Category: cat, Message: msg})
	if cat == EventError {
		slog.Error(logPrefix+msg, "tick", e.ticks)
	} else {
		slog.Debug(logPrefix+msg, "tick", e.ticks, "category", string(cat))
	}
}

// Admit creates a new process and attempts to place every one of its
// logical pages (spec §4.5.1). It always returns a valid PID; partial
// placement failures are logged, never returned as an error.
func (e *Engine) Admit(name string, sizeKB, priority, instructions int) (PID, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.admitLocked(name, sizeKB, priority, instructions)
}

func (e *Engine) admitLocked(name string, sizeKB, priority, instructions int) (PID, error) {
	pid := e.registry.nextPID()
	numPages := 0
	if sizeKB > 0 {
		numPages = int(math.Ceil(float64(sizeKB) / float64(e.pageKB)))
	}

	pcb := &PCB{
		PID:                   pid,
		Name:                  name,
		SizeKB:                sizeKB,
		Priority:              priority,
		TotalInstructions:     instructions,
		RemainingInstructions: instructions,
		State:                 StateReady,
		PageTable:             make([]PTE, numPages),
	}

	e.logEvent(EventAdmit, fmt.Sprintf("admitted %q (pid=%d, pages=%d)", name, pid, numPages))

	if numPages == 0 {
		// Driver misuse per spec §7: a zero-page process terminates
		// immediately rather than sitting in READY forever.
		e.registry.byPID[pid] = pcb
		e.registry.forceTerminateRecord(pcb, "no pages")
		e.logEvent(EventTerminate, fmt.Sprintf("pid=%d terminated (no pages)", pid))
		return pid, nil
	}

	e.registry.add(pcb)
	for page := 0; page < numPages; page++ {
		e.admitPlacePage(pcb, page)
	}
	return pid, nil
}

// admitPlacePage never evicts: it places the page if a frame is
// already free, otherwise straight into swap. Admission only ever
// consumes capacity that nobody else is using yet — the first
// instruction the new process runs is what actually contends for a
// resident frame through the fault path in accessLocked, which does
// evict (spec §8.1/§8.3's worked examples: a process can be admitted
// partly in swap without disturbing any already-resident page; only
// an access to the swapped page later forces a real eviction).
func (e *Engine) admitPlacePage(pcb *PCB, page int) {
	if f, ok := e.frameStore.Acquire(); ok {
		e.placeResident(pcb, page, f)
		return
	}

	if slot, ok := e.swapStore.Acquire(); ok {
		e.swapStore.Place(slot, &SwappedDescriptor{PID: pcb.PID, Page: page, StoredAt: e.ticks})
		pcb.PageTable[page] = PTE{Residency: Swapped, Slot: slot, LastAccess: e.ticks}
		e.metrics.SwapOuts++
		e.logEvent(EventSwapOut, fmt.Sprintf("pid=%d page=%d placed directly in swap slot %d (RAM full)", pcb.PID, page, slot))
		return
	}

	e.logEvent(EventError, fmt.Sprintf("pid=%d page=%d could not be placed: RAM and swap both full", pcb.PID, page))
}

func (e *Engine) placeResident(pcb *PCB, page, frame int) {
	d := &ResidentDescriptor{PID: pcb.PID, Page: page, LoadedAt: e.ticks, LastAccess: e.accessClock, Referenced: true}
	e.frameStore.Place(frame, d)
	pcb.PageTable[page] = PTE{Residency: Resident, Frame: frame, LastAccess: e.accessClock}
	e.replacer.OnLoad(frame, e.accessClock)
	e.logEvent(EventLoad, fmt.Sprintf("pid=%d page=%d loaded into frame %d", pcb.PID, page, frame))
}

// evict moves the resident page in frame to swap (spec §4.5.2). It
// fails with errNoFreeSwapSlot if no swap slot is available, leaving
// frame untouched.
func (e *Engine) evict(frame int) error {
	d := e.frameStore.Get(frame)
	if d == nil {
		return nil
	}

	slot, ok := e.swapStore.Acquire()
	if !ok {
		e.logEvent(EventError, fmt.Sprintf("eviction of frame %d failed: no free swap slot", frame))
		return errNoFreeSwapSlot
	}

	e.swapStore.Place(slot, &SwappedDescriptor{PID: d.PID, Page: d.Page, StoredAt: e.ticks})

	if pcb := e.registry.lookup(d.PID); pcb != nil {
		pcb.PageTable[d.Page] = PTE{Residency: Swapped, Slot: slot, LastAccess: e.ticks}
	}

	e.frameStore.Release(frame)
	e.replacer.OnEvict(frame)
	e.tlb.InvalidateFrame(frame)
	e.metrics.SwapOuts++
	e.logEvent(EventEvict, fmt.Sprintf("pid=%d page=%d evicted from frame %d to swap slot %d", d.PID, d.Page, frame, slot))
	return nil
}

// acquireFrameForFault obtains a free frame, evicting a victim if
// necessary, as a single step that completes before the caller
// commits any PTE update (spec §5: "eviction-during-fault must
// acquire its output frame before committing the PTE update").
func (e *Engine) acquireFrameForFault() (int, error) {
	if f, ok := e.frameStore.Acquire(); ok {
		return f, nil
	}
	if e.frameStore.Len() == 0 {
		return 0, ErrFaultUnresolved
	}

	victim, forced, ok := e.replacer.SelectVictim()
	if !ok {
		return 0, ErrFaultUnresolved
	}
	if forced {
		e.logEvent(EventError, "replacement policy anomaly: forced CLOCK victim during fault service")
	}
	if err := e.evict(victim); err != nil {
		return 0, ErrFaultUnresolved
	}
	f, ok := e.frameStore.Acquire()
	if !ok {
		return 0, ErrFaultUnresolved
	}
	return f, nil
}

// Access simulates one memory reference to page of pid's address
// space (spec §4.5.3).
func (e *Engine) Access(pid PID, page int) (AccessResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.accessLocked(pid, page)
}

func (e *Engine) accessLocked(pid PID, page int) (AccessResult, error) {
	pcb := e.registry.lookup(pid)
	if pcb == nil {
		e.logEvent(EventError, fmt.Sprintf("access: unknown pid %d", pid))
		return Invalid, ErrUnknownPID
	}

	if page < 0 || page >= len(pcb.PageTable) {
		e.logEvent(EventError, fmt.Sprintf("access: pid=%d page=%d out of range", pid, page))
		return Invalid, ErrInvalidPage
	}

	// Only a valid (pid, page) reaches here, so the clocks and access
	// counter advance exactly once per genuine reference (spec §7:
	// an invalid operand is reported, never mutates state).
	e.accessClock++
	e.ticks++
	e.metrics.TotalAccesses++

	if e.tlbEnabled {
		if frame, hit := e.tlb.Lookup(pid, page); hit {
			d := e.frameStore.Get(frame)
			if d != nil {
				d.LastAccess = e.accessClock
				d.Referenced = true
			}
			e.replacer.OnAccess(frame, e.accessClock)
			return Hit, nil
		}
	}

	pte := &pcb.PageTable[page]
	switch pte.Residency {
	case Resident:
		f := pte.Frame
		d := e.frameStore.Get(f)
		d.LastAccess = e.accessClock
		d.Referenced = true
		e.replacer.OnAccess(f, e.accessClock)
		pte.LastAccess = e.accessClock
		if e.tlbEnabled {
			e.tlb.Insert(pid, page, f)
		}
		return Hit, nil

	case Swapped:
		e.metrics.TotalFaults++
		e.logEvent(EventFault, fmt.Sprintf("pid=%d page=%d not resident (swapped)", pid, page))

		frame, err := e.acquireFrameForFault()
		if err != nil {
			return FaultUnresolved, err
		}

		slot := pte.Slot
		d := &ResidentDescriptor{PID: pid, Page: page, LoadedAt: e.ticks, LastAccess: e.accessClock, Referenced: true}
		e.frameStore.Place(frame, d)
		*pte = PTE{Residency: Resident, Frame: frame, LastAccess: e.accessClock}
		e.swapStore.Release(slot)
		e.metrics.SwapIns++
		e.replacer.OnLoad(frame, e.accessClock)
		if e.tlbEnabled {
			e.tlb.Insert(pid, page, frame)
		}
		e.logEvent(EventSwapIn, fmt.Sprintf("pid=%d page=%d swapped in to frame %d from slot %d", pid, page, frame, slot))
		return HitAfterFault, nil

	default: // Unmapped
		e.metrics.TotalFaults++
		e.logEvent(EventFault, fmt.Sprintf("pid=%d page=%d not resident (unmapped)", pid, page))

		frame, err := e.acquireFrameForFault()
		if err != nil {
			return FaultUnresolved, err
		}

		d := &ResidentDescriptor{PID: pid, Page: page, LoadedAt: e.ticks, LastAccess: e.accessClock, Referenced: true}
		e.frameStore.Place(frame, d)
		*pte = PTE{Residency: Resident, Frame: frame, LastAccess: e.accessClock}
		e.replacer.OnLoad(frame, e.accessClock)
		if e.tlbEnabled {
			e.tlb.Insert(pid, page, frame)
		}
		e.logEvent(EventLoad, fmt.Sprintf("pid=%d page=%d loaded into frame %d (first touch)", pid, page, frame))
		return HitAfterFault, nil
	}
}

// Suspend moves pid to WAITING (spec §4.5.5). Unknown PIDs are
// logged, not raised (spec §6).
func (e *Engine) Suspend(pid PID) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.registry.suspend(pid) {
		e.logEvent(EventError, fmt.Sprintf("suspend: unknown pid %d", pid))
		return
	}
	e.logEvent(EventState, fmt.Sprintf("pid=%d suspended", pid))
}

// Resume moves pid from WAITING back to READY (spec §4.5.5).
func (e *Engine) Resume(pid PID) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.registry.resume(pid) {
		e.logEvent(EventError, fmt.Sprintf("resume: unknown pid %d", pid))
		return
	}
	e.logEvent(EventState, fmt.Sprintf("pid=%d resumed", pid))
}

// ForceTerminate terminates pid on caller request (spec §4.5.4).
func (e *Engine) ForceTerminate(pid PID) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.terminateLocked(pid, "forced by user")
}

func (e *Engine) terminateLocked(pid PID, reason string) {
	pcb := e.registry.terminate(pid, reason)
	if pcb == nil {
		e.logEvent(EventError, fmt.Sprintf("terminate: unknown pid %d", pid))
		return
	}
	e.releaseProcess(pcb)
	e.logEvent(EventTerminate, fmt.Sprintf("pid=%d terminated (%s)", pid, reason))
}

// releaseProcess frees every frame and slot owned by pcb and
// invalidates its TLB entries (spec §4.5.4).
func (e *Engine) releaseProcess(pcb *PCB) {
	for i := range pcb.PageTable {
		pte := &pcb.PageTable[i]
		switch pte.Residency {
		case Resident:
			e.frameStore.Release(pte.Frame)
			e.replacer.OnEvict(pte.Frame)
		case Swapped:
			e.swapStore.Release(pte.Slot)
		}
		pte.Residency = Unmapped
	}
	e.tlb.InvalidatePID(pcb.PID)
}

// TickResult summarizes what one scheduling tick did, for a driver to
// render (spec §4.5.6).
type TickResult struct {
	Tick         int64
	AdmittedPID  PID // 0 if no random arrival this tick
	RunningPID   PID // 0 if the CPU was idle
	AccessedPage int
	Access       AccessResult
}

// Tick advances the simulated clock by one step: it may admit a
// randomly generated process, ensures a RUNNING PCB, and simulates
// one reference by that process (spec §4.5.6).
func (e *Engine) Tick() TickResult {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.ticks++
	e.accessClock++
	e.metrics.Ticks++
	result := TickResult{Tick: e.ticks}

	if e.cfg.ArrivalProb > 0 && e.rng.Float64() < e.cfg.ArrivalProb {
		result.AdmittedPID = e.admitRandomLocked()
	}

	running := e.registry.promoteReady()
	if running == nil {
		return result
	}
	result.RunningPID = running.PID

	if running.NumPages() == 0 {
		e.terminateLocked(running.PID, "no pages")
		return result
	}

	page := e.rng.Intn(running.NumPages())
	result.AccessedPage = page
	access, _ := e.accessLocked(running.PID, page)
	result.Access = access

	running.RemainingInstructions--
	if running.RemainingInstructions <= 0 {
		e.terminateLocked(running.PID, "normal completion")
	}
	return result
}

// AdmitRandom admits one randomly-sized, randomly-instructioned
// process outside of Tick's arrival-probability roll, for a driver's
// manual "demo: random arrival" option (spec §7, distilled source's
// crear_proceso_aleatorio).
func (e *Engine) AdmitRandom() PID {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.admitRandomLocked()
}

func (e *Engine) admitRandomLocked() PID {
	maxMem := e.cfg.MaxRandomProcMemKB
	if maxMem < 1 {
		maxMem = 1
	}
	maxInstr := e.cfg.MaxRandomInstr
	if maxInstr < 1 {
		maxInstr = 1
	}

	sizeKB := 1 + e.rng.Intn(maxMem)
	instr := 1 + e.rng.Intn(maxInstr)
	priority := 1 + e.rng.Intn(10)
	pid, _ := e.admitLocked(fmt.Sprintf("rand-%d", e.ticks), sizeKB, priority, instr)
	return pid
}

// EventLog returns the full append-only event sequence (spec §6).
func (e *Engine) EventLog() []Event {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]Event, len(e.events))
	copy(out, e.events)
	return out
}

// EventLogTail returns at most the last n events, mirroring the
// distilled source's ver_historial 200-line window.
func (e *Engine) EventLogTail(n int) []Event {
	e.mu.Lock()
	defer e.mu.Unlock()
	if n <= 0 || n > len(e.events) {
		n = len(e.events)
	}
	start := len(e.events) - n
	out := make([]Event, n)
	copy(out, e.events[start:])
	return out
}
