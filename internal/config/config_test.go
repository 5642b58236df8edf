package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tuannm99/memsim/internal/memsim"
)

func TestLoad_MissingFileFallsBackToDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	require.NoError(t, err)

	require.Equal(t, memsim.Default().RAMKB, cfg.Memory.RAMKB)
	require.Equal(t, memsim.Default().SwapKB, cfg.Memory.SwapKB)
	require.Equal(t, "FIFO", cfg.Memory.Replacement)
	require.Equal(t, "127.0.0.1:7070", cfg.Server.Addr)
	require.Equal(t, "info", cfg.Log.Level)
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "memsim.yaml")
	yaml := `
memory:
  ram_kb: 4096
  swap_kb: 8192
  page_kb: 512
  replacement: LRU
tlb:
  enabled: true
  size: 8
workload:
  arrival_prob: 0.5
  max_random_proc_mem_kb: 2048
  max_random_instr: 50
  rand_seed: 42
server:
  addr: "0.0.0.0:9000"
log:
  level: debug
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	require.Equal(t, 4096, cfg.Memory.RAMKB)
	require.Equal(t, 8192, cfg.Memory.SwapKB)
	require.Equal(t, 512, cfg.Memory.PageKB)
	require.Equal(t, "LRU", cfg.Memory.Replacement)
	require.True(t, cfg.TLB.Enabled)
	require.Equal(t, 8, cfg.TLB.Size)
	require.InDelta(t, 0.5, cfg.Workload.ArrivalProb, 0.0001)
	require.Equal(t, 2048, cfg.Workload.MaxRandomProcMemKB)
	require.Equal(t, 50, cfg.Workload.MaxRandomInstr)
	require.EqualValues(t, 42, cfg.Workload.RandSeed)
	require.Equal(t, "0.0.0.0:9000", cfg.Server.Addr)
	require.Equal(t, "debug", cfg.Log.Level)
}

func TestFile_EngineConfigTranslation(t *testing.T) {
	f := defaults()
	f.Memory.Replacement = "clock"

	ec := f.EngineConfig()
	require.Equal(t, memsim.CLOCK, ec.Replacement)
	require.Equal(t, f.Memory.RAMKB, ec.RAMKB)
	require.Equal(t, f.Memory.SwapKB, ec.SwapKB)
	require.Equal(t, f.Memory.PageKB, ec.PageKB)
	require.Equal(t, f.TLB.Enabled, ec.TLBEnabled)
	require.Equal(t, f.TLB.Size, ec.TLBSize)
}
