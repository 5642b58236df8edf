package memsim

import "strings"

// ReplacementKind selects one of the three frame-replacement
// strategies (spec §4.2). It is chosen once at construction and is
// immutable for the run.
type ReplacementKind int

const (
	FIFO ReplacementKind = iota
	LRU
	CLOCK
)

func (k ReplacementKind) String() string {
	switch k {
	case FIFO:
		return "FIFO"
	case LRU:
		return "LRU"
	case CLOCK:
		return "CLOCK"
	default:
		return "FIFO"
	}
}

// ParseReplacementKind recognizes FIFO/LRU/CLOCK case-insensitively;
// anything else degrades to FIFO (spec §6 config table).
func ParseReplacementKind(s string) ReplacementKind {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "LRU":
		return LRU
	case "CLOCK":
		return CLOCK
	default:
		return FIFO
	}
}

// Replacer is the four-operation contract shared by FIFO, LRU, and
// CLOCK (spec §4.2, design note "policy as variant"). clock is the
// engine's access clock at the time of the call; none of the three
// implementations uses it (LRU reads the LastAccess stamp the engine
// writes on each frame descriptor).
//
// SelectVictim never mutates store state: it returns a candidate
// frame without popping it from any queue. The caller performs the
// actual eviction (swap-out, frame release) and only then calls
// OnEvict, as one atomic step (spec §9's unified replacer contract,
// resolving the source's FIFO-pops-on-select ambiguity).
type Replacer interface {
	OnLoad(frame int, clock int64)
	OnAccess(frame int, clock int64)
	OnEvict(frame int)
	// SelectVictim returns a candidate frame to evict. forced is true
	// only for CLOCK's policy-anomaly fallback (spec §7, §9). ok is
	// false only when the policy genuinely has nothing occupied to
	// offer (RAM entirely empty — should not happen when the engine
	// calls this, since it only does so after free frames run out).
	SelectVictim() (frame int, forced bool, ok bool)
}

// NewReplacer constructs the replacer selected by kind over a RAM of
// numFrames frames.
func NewReplacer(kind ReplacementKind, numFrames int, frames *FrameStore) Replacer {
	switch kind {
	case LRU:
		return newLRUReplacer(frames)
	case CLOCK:
		return newClockReplacer(numFrames)
	default:
		return newFIFOReplacer()
	}
}
