package memsimwire

import "github.com/tuannm99/memsim/internal/memsim"

// Op names the eight operations the engine exposes over the wire
// (spec §6).
type Op string

const (
	OpAdmit     Op = "ADMIT"
	OpTick      Op = "TICK"
	OpAccess    Op = "ACCESS"
	OpSuspend   Op = "SUSPEND"
	OpResume    Op = "RESUME"
	OpTerminate Op = "TERMINATE"
	OpSnapshot  Op = "SNAPSHOT"
	OpEvents    Op = "EVENTS"
)

// Request is a single client->server command.
type Request struct {
	ID uint64 `json:"id"`
	Op Op     `json:"op"`

	// ADMIT
	Name         string `json:"name,omitempty"`
	SizeKB       int    `json:"size_kb,omitempty"`
	Priority     int    `json:"priority,omitempty"`
	Instructions int    `json:"instructions,omitempty"`

	// ACCESS / SUSPEND / RESUME / TERMINATE
	PID  int64 `json:"pid,omitempty"`
	Page int   `json:"page,omitempty"`

	// EVENTS
	Tail int `json:"tail,omitempty"`
}

// Response is the reply for a request ID. At most one of the
// op-specific fields is populated (SUSPEND, RESUME and TERMINATE
// populate none); Error is set on failure, and an ACCESS reply
// carries Access alongside it.
type Response struct {
	ID    uint64 `json:"id"`
	Error string `json:"error,omitempty"`

	PID      int64              `json:"pid,omitempty"`
	Access   string             `json:"access,omitempty"`
	Tick     *memsim.TickResult `json:"tick,omitempty"`
	Snapshot *memsim.Snapshot   `json:"snapshot,omitempty"`
	Events   []memsim.Event     `json:"events,omitempty"`
}
