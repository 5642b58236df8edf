package memsimwire

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"os/signal"
	"syscall"
	"time"

	"github.com/tuannm99/memsim/internal/memsim"
)

// ServerConfig is what Run needs to start listening (mirrors the
// teacher's novasqlwire.ServerConfig).
type ServerConfig struct {
	Addr   string
	Engine *memsim.Engine
}

// Run listens on sc.Addr and serves requests against sc.Engine until
// the process receives SIGINT/SIGTERM. A failure to listen is
// returned; accept errors are logged and the loop continues.
func Run(sc ServerConfig) error {
	ln, err := net.Listen("tcp", sc.Addr)
	if err != nil {
		return fmt.Errorf("memsim: listen: %w", err)
	}
	defer func() { _ = ln.Close() }()

	slog.Info("memsim: tcp server listening", "addr", sc.Addr)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		_ = ln.Close()
	}()

	for {
		conn, err := ln.Accept()
		if err != nil {
			select {
			case <-ctx.Done():
				return nil
			default:
			}
			slog.Error("memsim: accept", "err", err)
			continue
		}
		go handleConn(ctx, conn, sc.Engine)
	}
}

func handleConn(ctx context.Context, conn net.Conn, e *memsim.Engine) {
	defer func() { _ = conn.Close() }()
	_ = conn.SetDeadline(time.Time{})

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		var req Request
		if err := ReadFrame(conn, &req); err != nil {
			return
		}
		_ = WriteFrame(conn, dispatch(e, req))
	}
}

func dispatch(e *memsim.Engine, req Request) Response {
	resp := Response{ID: req.ID}

	switch req.Op {
	case OpAdmit:
		pid, err := e.Admit(req.Name, req.SizeKB, req.Priority, req.Instructions)
		if err != nil {
			resp.Error = err.Error()
			return resp
		}
		resp.PID = int64(pid)

	case OpTick:
		tr := e.Tick()
		resp.Tick = &tr

	case OpAccess:
		result, err := e.Access(memsim.PID(req.PID), req.Page)
		if err != nil {
			resp.Error = err.Error()
		}
		resp.Access = result.String()

	case OpSuspend:
		e.Suspend(memsim.PID(req.PID))

	case OpResume:
		e.Resume(memsim.PID(req.PID))

	case OpTerminate:
		e.ForceTerminate(memsim.PID(req.PID))

	case OpSnapshot:
		snap := e.Snapshot()
		resp.Snapshot = &snap

	case OpEvents:
		resp.Events = e.EventLogTail(req.Tail)

	default:
		resp.Error = fmt.Sprintf("memsim: unknown op %q", req.Op)
	}

	return resp
}
