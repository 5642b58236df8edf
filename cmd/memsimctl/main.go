// Command memsimctl is an interactive (or one-shot) client for
// memsimd, adapted from the teacher's cmd/client novasql REPL:
// readline-driven prompt, persisted history, meta-commands, same TCP
// dial/exec shape — swapped from SQL statements to paging-engine
// commands.
package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/chzyer/readline"

	"github.com/tuannm99/memsim/internal/memsim"
	"github.com/tuannm99/memsim/server/memsimwire"
)

// ---- TCP client ----

type Client struct {
	conn net.Conn
	mu   sync.Mutex
	id   atomic.Uint64
}

func Dial(addr string, timeout time.Duration) (*Client, error) {
	d := net.Dialer{Timeout: timeout}
	c, err := d.Dial("tcp", addr)
	if err != nil {
		return nil, err
	}
	return &Client{conn: c}, nil
}

func (c *Client) Close() error {
	if c == nil || c.conn == nil {
		return nil
	}
	return c.conn.Close()
}

func (c *Client) call(req memsimwire.Request) (memsimwire.Response, error) {
	req.ID = c.id.Add(1)

	c.mu.Lock()
	defer c.mu.Unlock()

	if err := memsimwire.WriteFrame(c.conn, req); err != nil {
		return memsimwire.Response{}, err
	}
	var resp memsimwire.Response
	if err := memsimwire.ReadFrame(c.conn, &resp); err != nil {
		return memsimwire.Response{}, err
	}
	if resp.ID != req.ID {
		return memsimwire.Response{}, fmt.Errorf("memsimctl: response id mismatch: got=%d want=%d", resp.ID, req.ID)
	}
	return resp, nil
}

// ---- History (own file) ----

type History struct {
	path  string
	lines []string
}

func NewHistory(path string) *History {
	return &History{path: path}
}

func (h *History) Load(max int) error {
	if h.path == "" {
		return nil
	}
	f, err := os.Open(h.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	defer func() { _ = f.Close() }()

	sc := bufio.NewScanner(f)
	for sc.Scan() {
		s := strings.TrimSpace(sc.Text())
		if s == "" {
			continue
		}
		h.lines = append(h.lines, s)
		if max > 0 && len(h.lines) > max {
			h.lines = h.lines[len(h.lines)-max:]
		}
	}
	return sc.Err()
}

func (h *History) Append(cmd string) error {
	cmd = strings.TrimSpace(cmd)
	if cmd == "" || h.path == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(h.path), 0o755); err != nil {
		return err
	}
	f, err := os.OpenFile(h.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	if _, err := fmt.Fprintln(f, cmd); err != nil {
		return err
	}
	h.lines = append(h.lines, cmd)
	return nil
}

func (h *History) Print(last int) {
	if last <= 0 || last > len(h.lines) {
		last = len(h.lines)
	}
	start := len(h.lines) - last
	if start < 0 {
		start = 0
	}
	for i := start; i < len(h.lines); i++ {
		fmt.Printf("%5d  %s\n", i+1, h.lines[i])
	}
}

// ---- command parsing ----

func isMetaCommand(line string) bool {
	line = strings.TrimSpace(line)
	return strings.HasPrefix(line, "\\") || line == "quit" || line == "exit"
}

// runCommand parses one command line and executes it against cli.
func runCommand(cli *Client, line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}
	op := strings.ToUpper(fields[0])
	args := fields[1:]

	var req memsimwire.Request
	switch op {
	case "ADMIT":
		if len(args) != 4 {
			return fmt.Errorf("usage: admit <name> <size_kb> <priority> <instructions>")
		}
		sizeKB, err1 := strconv.Atoi(args[1])
		priority, err2 := strconv.Atoi(args[2])
		instr, err3 := strconv.Atoi(args[3])
		if err1 != nil || err2 != nil || err3 != nil {
			return fmt.Errorf("admit: bad numeric argument")
		}
		req = memsimwire.Request{Op: memsimwire.OpAdmit, Name: args[0], SizeKB: sizeKB, Priority: priority, Instructions: instr}

	case "TICK":
		req = memsimwire.Request{Op: memsimwire.OpTick}

	case "ACCESS":
		if len(args) != 2 {
			return fmt.Errorf("usage: access <pid> <page>")
		}
		pid, err1 := strconv.ParseInt(args[0], 10, 64)
		page, err2 := strconv.Atoi(args[1])
		if err1 != nil || err2 != nil {
			return fmt.Errorf("access: bad numeric argument")
		}
		req = memsimwire.Request{Op: memsimwire.OpAccess, PID: pid, Page: page}

	case "SUSPEND", "RESUME", "TERMINATE":
		if len(args) != 1 {
			return fmt.Errorf("usage: %s <pid>", strings.ToLower(op))
		}
		pid, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("%s: bad pid", strings.ToLower(op))
		}
		opMap := map[string]memsimwire.Op{"SUSPEND": memsimwire.OpSuspend, "RESUME": memsimwire.OpResume, "TERMINATE": memsimwire.OpTerminate}
		req = memsimwire.Request{Op: opMap[op], PID: pid}

	case "SNAPSHOT":
		req = memsimwire.Request{Op: memsimwire.OpSnapshot}

	case "EVENTS":
		tail := 0
		if len(args) == 1 {
			n, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("events: bad count")
			}
			tail = n
		}
		req = memsimwire.Request{Op: memsimwire.OpEvents, Tail: tail}

	default:
		return fmt.Errorf("unknown command: %s", fields[0])
	}

	resp, err := cli.call(req)
	if err != nil {
		return err
	}
	printResponse(resp)
	return nil
}

func printResponse(resp memsimwire.Response) {
	if resp.Error != "" {
		fmt.Printf("error: %s\n", resp.Error)
		return
	}
	switch {
	case resp.PID != 0:
		fmt.Printf("pid=%d\n", resp.PID)
	case resp.Tick != nil:
		t := resp.Tick
		fmt.Printf("tick=%d admitted=%d running=%d page=%d access=%s\n", t.Tick, t.AdmittedPID, t.RunningPID, t.AccessedPage, t.Access)
	case resp.Access != "":
		fmt.Println(resp.Access)
	case resp.Snapshot != nil:
		printSnapshot(*resp.Snapshot)
	case resp.Events != nil:
		for _, ev := range resp.Events {
			fmt.Printf("[%6d] %-10s %s\n", ev.Tick, ev.Category, ev.Message)
		}
	default:
		fmt.Println("ok")
	}
}

func printSnapshot(s memsim.Snapshot) {
	fmt.Printf("tick=%d access_clock=%d replacement=%s tlb=%v\n", s.Ticks, s.AccessClock, s.Replacement, s.TLBEnabled)
	fmt.Printf("frames: %d/%d used (%.1f%% util)\n", s.FramesUsed(), len(s.Frames), s.Utilization()*100)
	fmt.Printf("faults=%d accesses=%d fault_rate=%.3f swap_ins=%d swap_outs=%d\n",
		s.Metrics.TotalFaults, s.Metrics.TotalAccesses, s.FaultRate(), s.Metrics.SwapIns, s.Metrics.SwapOuts)
	for _, p := range s.Processes {
		fmt.Printf("  pid=%-4d %-12s state=%-10s pages=%-3d remaining=%d/%d\n",
			p.PID, p.Name, p.State, p.NumPages, p.RemainingInstructions, p.TotalInstructions)
	}
}

func defaultHistoryPath() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return ".memsimctl_history"
	}
	return filepath.Join(home, ".memsimctl_history")
}

func main() {
	var (
		addr      = flag.String("addr", "127.0.0.1:7070", "memsimd server address")
		timeout   = flag.Duration("timeout", 3*time.Second, "dial timeout")
		histPath  = flag.String("history", defaultHistoryPath(), "history file path")
		histMax   = flag.Int("history-max", 2000, "max history lines loaded into memory")
		oneShot   = flag.String("c", "", "execute one command and exit")
	)
	flag.Parse()

	cli, err := Dial(*addr, *timeout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "dial: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = cli.Close() }()

	if strings.TrimSpace(*oneShot) != "" {
		if err := runCommand(cli, *oneShot); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	h := NewHistory(*histPath)
	_ = h.Load(*histMax)

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "memsim> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "readline: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = rl.Close() }()

	for _, line := range h.lines {
		_ = rl.SaveHistory(line)
	}

	fmt.Printf("connected to %s\n", *addr)
	fmt.Println("type \\help for help")

	for {
		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			fmt.Println("^C")
			continue
		}
		if err != nil {
			fmt.Println()
			return
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if isMetaCommand(line) {
			switch line {
			case "\\q", "quit", "exit":
				return
			case "\\help":
				fmt.Println(`commands:
  admit <name> <size_kb> <priority> <instructions>
  tick
  access <pid> <page>
  suspend <pid> | resume <pid> | terminate <pid>
  snapshot
  events [n]
meta:
  \q | quit | exit       quit
  \history               print history
  \help                  show help`)
			case "\\history":
				h.Print(50)
			default:
				fmt.Printf("unknown command: %s\n", line)
			}
			continue
		}

		_ = h.Append(line)
		_ = rl.SaveHistory(line)

		if err := runCommand(cli, line); err != nil {
			fmt.Printf("error: %v\n", err)
		}
	}
}
