// Command memsimd runs the paging engine behind a TCP listener so
// memsimctl (or any memsimwire client) can drive it remotely.
package main

import (
	"flag"
	"log"
	"log/slog"
	"os"

	"github.com/tuannm99/memsim/internal/config"
	"github.com/tuannm99/memsim/internal/memsim"
	"github.com/tuannm99/memsim/server/memsimwire"
)

func main() {
	var cfgPath string
	flag.StringVar(&cfgPath, "config", "memsim.yaml", "path to memsim yaml config")
	flag.Parse()

	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("memsim: load config: %v", err)
	}

	setupLogging(cfg.Log.Level)

	addr := os.Getenv("MEMSIM_ADDR")
	if addr == "" {
		addr = cfg.Server.Addr
	}

	engine := memsim.NewEngine(cfg.EngineConfig())

	if err := memsimwire.Run(memsimwire.ServerConfig{Addr: addr, Engine: engine}); err != nil {
		log.Fatalf("memsim: server error: %v", err)
	}
}

func setupLogging(level string) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})))
}
