package memsim

// Metrics holds the counters snapshot() reports (spec §6): total
// accesses, total page faults, swap-ins, swap-outs, and ticks.
type Metrics struct {
	TotalAccesses int64
	TotalFaults   int64
	SwapIns       int64
	SwapOuts      int64
	Ticks         int64
}

// FaultRate is faults/accesses, defined as 0 when accesses == 0
// (spec §6).
func (m Metrics) FaultRate() float64 {
	if m.TotalAccesses == 0 {
		return 0
	}
	return float64(m.TotalFaults) / float64(m.TotalAccesses)
}
