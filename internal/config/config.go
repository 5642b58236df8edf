// Package config loads memsimd/memsim settings from a YAML
// file, generalizing the teacher's internal.LoadConfig (one viper
// instance, one mapstructure-tagged struct) to the simulator's wider
// settings surface.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/viper"

	"github.com/tuannm99/memsim/internal/memsim"
)

// File mirrors the recognized YAML shape (spec §6's config table, plus
// the ambient server/log fields this module adds).
type File struct {
	Memory struct {
		RAMKB       int    `mapstructure:"ram_kb"`
		SwapKB      int    `mapstructure:"swap_kb"`
		PageKB      int    `mapstructure:"page_kb"`
		Replacement string `mapstructure:"replacement"`
	} `mapstructure:"memory"`

	TLB struct {
		Enabled bool `mapstructure:"enabled"`
		Size    int  `mapstructure:"size"`
	} `mapstructure:"tlb"`

	Workload struct {
		ArrivalProb         float64 `mapstructure:"arrival_prob"`
		MaxRandomProcMemKB  int     `mapstructure:"max_random_proc_mem_kb"`
		MaxRandomInstr      int     `mapstructure:"max_random_instr"`
		RandSeed            int64   `mapstructure:"rand_seed"`
	} `mapstructure:"workload"`

	Server struct {
		Addr string `mapstructure:"addr"`
	} `mapstructure:"server"`

	Log struct {
		Level string `mapstructure:"level"`
	} `mapstructure:"log"`
}

// defaults matches the distilled source's DEFAULT_CONFIG (spec §6).
func defaults() File {
	var f File
	d := memsim.Default()
	f.Memory.RAMKB = d.RAMKB
	f.Memory.SwapKB = d.SwapKB
	f.Memory.PageKB = d.PageKB
	f.Memory.Replacement = d.Replacement.String()
	f.TLB.Enabled = d.TLBEnabled
	f.TLB.Size = d.TLBSize
	f.Workload.ArrivalProb = d.ArrivalProb
	f.Workload.MaxRandomProcMemKB = d.MaxRandomProcMemKB
	f.Workload.MaxRandomInstr = d.MaxRandomInstr
	f.Server.Addr = "127.0.0.1:7070"
	f.Log.Level = "info"
	return f
}

// Load reads path (YAML) over the defaults, returning a fully
// populated File. A missing file is not an error: the caller gets
// defaults, and no file is written. Any other read or unmarshal
// failure is returned as an error.
func Load(path string) (File, error) {
	cfg := defaults()

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	setViperDefaults(v, cfg)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) || os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("memsim: read config %s: %w", path, err)
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("memsim: unmarshal config %s: %w", path, err)
	}
	return cfg, nil
}

func setViperDefaults(v *viper.Viper, cfg File) {
	v.SetDefault("memory.ram_kb", cfg.Memory.RAMKB)
	v.SetDefault("memory.swap_kb", cfg.Memory.SwapKB)
	v.SetDefault("memory.page_kb", cfg.Memory.PageKB)
	v.SetDefault("memory.replacement", cfg.Memory.Replacement)
	v.SetDefault("tlb.enabled", cfg.TLB.Enabled)
	v.SetDefault("tlb.size", cfg.TLB.Size)
	v.SetDefault("workload.arrival_prob", cfg.Workload.ArrivalProb)
	v.SetDefault("workload.max_random_proc_mem_kb", cfg.Workload.MaxRandomProcMemKB)
	v.SetDefault("workload.max_random_instr", cfg.Workload.MaxRandomInstr)
	v.SetDefault("server.addr", cfg.Server.Addr)
	v.SetDefault("log.level", cfg.Log.Level)
}

// EngineConfig translates the loaded file into memsim.Config.
func (f File) EngineConfig() memsim.Config {
	return memsim.Config{
		RAMKB:               f.Memory.RAMKB,
		SwapKB:              f.Memory.SwapKB,
		PageKB:              f.Memory.PageKB,
		Replacement:         memsim.ParseReplacementKind(f.Memory.Replacement),
		TLBEnabled:          f.TLB.Enabled,
		TLBSize:             f.TLB.Size,
		ArrivalProb:         f.Workload.ArrivalProb,
		MaxRandomProcMemKB:  f.Workload.MaxRandomProcMemKB,
		MaxRandomInstr:      f.Workload.MaxRandomInstr,
		RandSeed:            f.Workload.RandSeed,
	}
}
