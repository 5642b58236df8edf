// Command memsim is a local, non-networked interactive driver over an
// in-process Engine, adapted from the distilled source's menu loop
// (proyecto_memoria.py's main()): the same nine options, against the
// Go engine instead of the Python SimuladorMemoria object.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/tuannm99/memsim/internal/config"
	"github.com/tuannm99/memsim/internal/memsim"
)

func main() {
	var cfgPath string
	flag.StringVar(&cfgPath, "config", "memsim.yaml", "path to memsim yaml config")
	flag.Parse()

	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("memsim: load config: %v", err)
	}

	engine := memsim.NewEngine(cfg.EngineConfig())
	in := bufio.NewReader(os.Stdin)

	fmt.Println("--- Paging Memory Simulator (RAM & Swap) ---")
	fmt.Printf("ram_kb=%d swap_kb=%d page_kb=%d replacement=%s tlb=%v\n",
		cfg.Memory.RAMKB, cfg.Memory.SwapKB, cfg.Memory.PageKB, cfg.Memory.Replacement, cfg.TLB.Enabled)

	for {
		fmt.Println()
		fmt.Println("1. Create process (manual)")
		fmt.Println("2. Advance one clock tick")
		fmt.Println("3. Suspend process (move to waiting)")
		fmt.Println("4. Resume process (move to ready)")
		fmt.Println("5. Force-terminate process")
		fmt.Println("6. Demo: random process arrival")
		fmt.Println("7. Show event history")
		fmt.Println("8. Show detailed metrics")
		fmt.Println("9. Quit")
		fmt.Print("Select an option: ")

		op := readLine(in)
		switch op {
		case "1":
			doAdmit(engine, in)
		case "2":
			doTick(engine)
		case "3":
			doSuspend(engine, in)
		case "4":
			doResume(engine, in)
		case "5":
			doTerminate(engine, in)
		case "6":
			pid := engine.AdmitRandom()
			fmt.Printf("arrived: pid=%d\n", pid)
		case "7":
			doShowEvents(engine)
		case "8":
			doShowSnapshot(engine)
		case "9":
			fmt.Println("shutting down simulator...")
			return
		default:
			fmt.Println("invalid option, try again.")
		}
	}
}

func readLine(in *bufio.Reader) string {
	line, _ := in.ReadString('\n')
	return strings.TrimSpace(line)
}

func readInt(in *bufio.Reader, prompt string) (int, error) {
	fmt.Print(prompt)
	return strconv.Atoi(readLine(in))
}

func readInt64(in *bufio.Reader, prompt string) (int64, error) {
	fmt.Print(prompt)
	return strconv.ParseInt(readLine(in), 10, 64)
}

func doAdmit(e *memsim.Engine, in *bufio.Reader) {
	fmt.Print("Process name: ")
	name := readLine(in)
	sizeKB, err1 := readInt(in, "Requested memory (KB): ")
	priority, err2 := readInt(in, "Priority (1-10): ")
	instr, err3 := readInt(in, "Instructions (CPU cycles): ")
	if err1 != nil || err2 != nil || err3 != nil {
		fmt.Println("error: please enter valid values.")
		return
	}
	pid, _ := e.Admit(name, sizeKB, priority, instr)
	fmt.Printf("admitted: pid=%d\n", pid)
}

func doTick(e *memsim.Engine) {
	r := e.Tick()
	fmt.Printf("tick=%d", r.Tick)
	if r.AdmittedPID != 0 {
		fmt.Printf(" admitted=%d", r.AdmittedPID)
	}
	if r.RunningPID != 0 {
		fmt.Printf(" running=%d page=%d result=%s", r.RunningPID, r.AccessedPage, r.Access)
	} else {
		fmt.Print(" (CPU idle)")
	}
	fmt.Println()
}

func doSuspend(e *memsim.Engine, in *bufio.Reader) {
	pid, err := readInt64(in, "PID to suspend: ")
	if err != nil {
		fmt.Println("invalid PID.")
		return
	}
	e.Suspend(memsim.PID(pid))
}

func doResume(e *memsim.Engine, in *bufio.Reader) {
	pid, err := readInt64(in, "PID to resume: ")
	if err != nil {
		fmt.Println("invalid PID.")
		return
	}
	e.Resume(memsim.PID(pid))
}

func doTerminate(e *memsim.Engine, in *bufio.Reader) {
	pid, err := readInt64(in, "PID to force-terminate: ")
	if err != nil {
		fmt.Println("invalid PID.")
		return
	}
	e.ForceTerminate(memsim.PID(pid))
}

func doShowEvents(e *memsim.Engine) {
	fmt.Println("\n--- EVENT HISTORY ---")
	for _, ev := range e.EventLogTail(200) {
		fmt.Printf("[%6d] %-10s %s\n", ev.Tick, ev.Category, ev.Message)
	}
}

func doShowSnapshot(e *memsim.Engine) {
	s := e.Snapshot()
	fmt.Println(strings.Repeat("=", 80))
	fmt.Printf("tick=%d access_clock=%d replacement=%s tlb_enabled=%v\n", s.Ticks, s.AccessClock, s.Replacement, s.TLBEnabled)
	fmt.Println(strings.Repeat("-", 80))

	fmt.Println("RAM MAP (frame_index : contents)")
	for _, f := range s.Frames {
		if f.Occupied {
			fmt.Printf("  %3d : pid=%d page=%d\n", f.Index, f.PID, f.Page)
		} else {
			fmt.Printf("  %3d : -\n", f.Index)
		}
	}

	fmt.Println(strings.Repeat("-", 80))
	fmt.Println("SWAP MAP (slot_index : contents)")
	for _, sl := range s.Slots {
		if sl.Occupied {
			fmt.Printf("  %3d : pid=%d page=%d\n", sl.Index, sl.PID, sl.Page)
		} else {
			fmt.Printf("  %3d : -\n", sl.Index)
		}
	}

	fmt.Println(strings.Repeat("-", 80))
	fmt.Println("PAGE TABLES (per process)")
	for _, p := range s.Processes {
		fmt.Printf("  pid=%-4d %-12s state=%-10s pages=%-3d remaining=%d/%d reason=%q\n",
			p.PID, p.Name, p.State, p.NumPages, p.RemainingInstructions, p.TotalInstructions, p.TerminationReason)
	}

	if s.TLBEnabled {
		fmt.Println(strings.Repeat("-", 80))
		fmt.Print("TLB (entries): ")
		fmt.Println(s.TLB)
	}
	fmt.Println(strings.Repeat("=", 80))

	fmt.Println("\n--- DETAILED METRICS ---")
	fmt.Printf("frames used: %d/%d (%.1f%% utilization)\n", s.FramesUsed(), len(s.Frames), s.Utilization()*100)
	fmt.Printf("total accesses: %d\n", s.Metrics.TotalAccesses)
	fmt.Printf("total faults:   %d (rate %.3f)\n", s.Metrics.TotalFaults, s.FaultRate())
	fmt.Printf("swap-ins:       %d\n", s.Metrics.SwapIns)
	fmt.Printf("swap-outs:      %d\n", s.Metrics.SwapOuts)
	fmt.Printf("ticks:          %d\n", s.Metrics.Ticks)
}
