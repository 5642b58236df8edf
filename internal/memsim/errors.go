package memsim

import "errors"

// Sentinel errors, mirroring the teacher's internal/storage/vars.go
// Err* block and bufferpool's ErrNoFreeFrame/ErrPagePinned — all
// non-fatal to the core (spec §7).
var (
	// ErrUnknownPID is returned by operations given a PID the
	// registry has never seen.
	ErrUnknownPID = errors.New("memsim: unknown pid")

	// ErrInvalidPage is returned by Access when page is out of range
	// for the process's page table.
	ErrInvalidPage = errors.New("memsim: page index out of range")

	// ErrFaultUnresolved is returned by Access when a fault cannot be
	// serviced: no free frame and eviction cannot proceed because no
	// swap slot is free either (spec §4.5.3, §9 open question).
	ErrFaultUnresolved = errors.New("memsim: page fault could not be resolved")

	// errNoFreeSwapSlot is the internal signal used by evict() to
	// tell its caller eviction failed for lack of swap space (spec
	// §4.5.2 step 1). It never crosses the public API boundary.
	errNoFreeSwapSlot = errors.New("memsim: no free swap slot")
)
