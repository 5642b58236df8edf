package memsim

import "github.com/tuannm99/memsim/internal/idgen"

// registry holds every PCB ever admitted, partitioned by scheduling
// queue, plus the single running slot. Lookup by PID scans running,
// ready, waiting, then terminated, in that order (spec §4.3).
type registry struct {
	pids       idgen.Counter
	byPID      map[PID]*PCB
	running    *PCB
	ready      []*PCB
	waiting    []*PCB
	terminated []*PCB
}

func newRegistry() *registry {
	return &registry{byPID: make(map[PID]*PCB)}
}

func (r *registry) nextPID() PID {
	return PID(r.pids.Next())
}

func (r *registry) add(p *PCB) {
	r.byPID[p.PID] = p
	r.ready = append(r.ready, p)
}

// lookup finds a PCB by PID, scanning running, ready, waiting, then
// terminated (spec §4.3). Returns nil if unknown.
func (r *registry) lookup(pid PID) *PCB {
	if r.running != nil && r.running.PID == pid {
		return r.running
	}
	for _, p := range r.ready {
		if p.PID == pid {
			return p
		}
	}
	for _, p := range r.waiting {
		if p.PID == pid {
			return p
		}
	}
	for _, p := range r.terminated {
		if p.PID == pid {
			return p
		}
	}
	return nil
}

func removeFrom(queue []*PCB, pid PID) ([]*PCB, bool) {
	for i, p := range queue {
		if p.PID == pid {
			out := append(queue[:i:i], queue[i+1:]...)
			return out, true
		}
	}
	return queue, false
}

// promoteReady moves the head of the ready queue into the running
// slot if the CPU is idle. Returns the PCB now running, or nil if
// there was nothing ready.
func (r *registry) promoteReady() *PCB {
	if r.running != nil {
		return r.running
	}
	if len(r.ready) == 0 {
		return nil
	}
	p := r.ready[0]
	r.ready = r.ready[1:]
	p.State = StateRunning
	r.running = p
	return p
}

// suspend moves pid (running or ready) to the waiting queue.
func (r *registry) suspend(pid PID) bool {
	if r.running != nil && r.running.PID == pid {
		r.running.State = StateWaiting
		r.waiting = append(r.waiting, r.running)
		r.running = nil
		return true
	}
	if rest, ok := removeFrom(r.ready, pid); ok {
		r.ready = rest
		p := r.byPID[pid]
		p.State = StateWaiting
		r.waiting = append(r.waiting, p)
		return true
	}
	return false
}

// resume moves pid from waiting back to ready.
func (r *registry) resume(pid PID) bool {
	rest, ok := removeFrom(r.waiting, pid)
	if !ok {
		return false
	}
	r.waiting = rest
	p := r.byPID[pid]
	p.State = StateReady
	r.ready = append(r.ready, p)
	return true
}

// forceTerminateRecord marks p terminated and files it directly into
// the terminated set, bypassing every queue. Used for a process that
// never entered scheduling at all (spec §7's zero-page admission
// case).
func (r *registry) forceTerminateRecord(p *PCB, reason string) {
	p.State = StateTerminated
	p.TerminationReason = reason
	r.terminated = append(r.terminated, p)
}

// terminate moves pid out of whichever queue holds it (or the
// running slot) into the terminated set, recording reason.
func (r *registry) terminate(pid PID, reason string) *PCB {
	var p *PCB
	switch {
	case r.running != nil && r.running.PID == pid:
		p = r.running
		r.running = nil
	default:
		if rest, ok := removeFrom(r.ready, pid); ok {
			r.ready = rest
			p = r.byPID[pid]
		} else if rest, ok := removeFrom(r.waiting, pid); ok {
			r.waiting = rest
			p = r.byPID[pid]
		}
	}
	if p == nil {
		return nil
	}
	p.State = StateTerminated
	p.TerminationReason = reason
	r.terminated = append(r.terminated, p)
	return p
}
