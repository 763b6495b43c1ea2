// Package config - defaults, file and environment loading, validation and
// conversion to the option types of search, race and checkpoint.
package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/armlift/checkpoint"
	"github.com/katalvlaran/armlift/race"
	"github.com/katalvlaran/armlift/search"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("config: invalid")

// Heuristic names accepted by RaceConfig.Heuristic.
const (
	HeuristicArmBias = "arm_bias"
	HeuristicUniform = "uniform"
)

// Config is the full armlift configuration.
type Config struct {
	Search     SearchConfig      `json:"search" yaml:"search"`
	Race       RaceConfig        `json:"race" yaml:"race"`
	Exceptions []ExceptionConfig `json:"exceptions" yaml:"exceptions"`
	Checkpoint CheckpointConfig  `json:"checkpoint" yaml:"checkpoint"`
	Log        LogConfig         `json:"log" yaml:"log"`
	Metrics    MetricsConfig     `json:"metrics" yaml:"metrics"`
}

// SearchConfig holds the per-engine tunables.
type SearchConfig struct {
	Precision2      int           `json:"precision2" yaml:"precision2"`
	Precision3      int           `json:"precision3" yaml:"precision3"`
	TunnelingProb   float64       `json:"tunneling_prob" yaml:"tunneling_prob"`
	MinBranchProb   float64       `json:"min_branch_prob" yaml:"min_branch_prob"`
	MaxBranchProb   float64       `json:"max_branch_prob" yaml:"max_branch_prob"`
	AnnealPeriod    time.Duration `json:"anneal_period" yaml:"anneal_period"`
	ExceptionPeriod time.Duration `json:"exception_period" yaml:"exception_period"`
}

// RaceConfig holds the race driver settings.
type RaceConfig struct {
	Instances    int           `json:"instances" yaml:"instances"`
	Seed         int64         `json:"seed" yaml:"seed"`
	PollInterval time.Duration `json:"poll_interval" yaml:"poll_interval"`
	Heuristic    string        `json:"heuristic" yaml:"heuristic"`
	Resume       bool          `json:"resume" yaml:"resume"`
}

// ExceptionConfig describes one exception range. Zero probabilities and a
// zero detour_max take the defaults of search.NewExceptionRange.
type ExceptionConfig struct {
	MaxCumLoss    float64 `json:"max_cum_loss" yaml:"max_cum_loss"`
	MinPos        int     `json:"min_pos" yaml:"min_pos"`
	PosMax        int     `json:"pos_max" yaml:"pos_max"`
	ProbJumpMin   float64 `json:"prob_jump_min" yaml:"prob_jump_min"`
	ProbJumpMax   float64 `json:"prob_jump_max" yaml:"prob_jump_max"`
	ProbDetourMin float64 `json:"prob_detour_min" yaml:"prob_detour_min"`
	ProbDetourMax float64 `json:"prob_detour_max" yaml:"prob_detour_max"`
	DetourMax     int     `json:"detour_max" yaml:"detour_max"`
}

// CheckpointConfig configures the badger checkpoint store.
type CheckpointConfig struct {
	Enabled    bool   `json:"enabled" yaml:"enabled"`
	Path       string `json:"path" yaml:"path"`
	InMemory   bool   `json:"in_memory" yaml:"in_memory"`
	SyncWrites bool   `json:"sync_writes" yaml:"sync_writes"`
}

// LogConfig configures the slog handler.
type LogConfig struct {
	Level  string `json:"level" yaml:"level"`
	Format string `json:"format" yaml:"format"`
}

// MetricsConfig configures the prometheus endpoint; empty Addr disables it.
type MetricsConfig struct {
	Addr string `json:"addr" yaml:"addr"`
}

// Default returns the built-in configuration.
func Default() Config {
	so := search.DefaultOptions()
	ro := race.DefaultOptions()
	return Config{
		Search: SearchConfig{
			Precision2:      so.Precision2,
			Precision3:      so.Precision3,
			TunnelingProb:   so.TunnelingProb,
			MinBranchProb:   so.MinBranchProb,
			MaxBranchProb:   so.MaxBranchProb,
			AnnealPeriod:    so.AnnealPeriod,
			ExceptionPeriod: so.ExceptionPeriod,
		},
		Race: RaceConfig{
			Instances:    ro.Instances,
			PollInterval: ro.PollInterval,
			Heuristic:    HeuristicArmBias,
		},
		Checkpoint: CheckpointConfig{Path: "armlift.db"},
		Log:        LogConfig{Level: "info", Format: "text"},
	}
}

// Load returns the configuration with priority env > file > defaults. A
// missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		if err := loadFile(path, &cfg); err != nil {
			return cfg, fmt.Errorf("config: load %s: %w", path, err)
		}
	}
	loadEnv(&cfg)
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	if err = yaml.Unmarshal(data, cfg); err != nil {
		if jsonErr := unmarshalJSON(data, cfg); jsonErr != nil {
			return fmt.Errorf("parse (tried YAML and JSON): YAML error: %v, JSON error: %w", err, jsonErr)
		}
	}
	return nil
}

// unmarshalJSON re-encodes a JSON document as YAML before decoding it, so
// both formats accept the same values ("30s" durations included).
func unmarshalJSON(data []byte, cfg *Config) error {
	var doc any
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&doc); err != nil {
		return err
	}
	y, err := yaml.Marshal(doc)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(y, cfg)
}

func loadEnv(cfg *Config) {
	envInt("ARMLIFT_INSTANCES", &cfg.Race.Instances)
	if v := os.Getenv("ARMLIFT_SEED"); v != "" {
		if i, err := strconv.ParseInt(v, 10, 64); err == nil {
			cfg.Race.Seed = i
		}
	}
	envDuration("ARMLIFT_POLL_INTERVAL", &cfg.Race.PollInterval)
	envString("ARMLIFT_HEURISTIC", &cfg.Race.Heuristic)
	envBool("ARMLIFT_RESUME", &cfg.Race.Resume)

	envInt("ARMLIFT_PRECISION2", &cfg.Search.Precision2)
	envInt("ARMLIFT_PRECISION3", &cfg.Search.Precision3)
	envFloat("ARMLIFT_TUNNELING_PROB", &cfg.Search.TunnelingProb)
	envFloat("ARMLIFT_MIN_BRANCH_PROB", &cfg.Search.MinBranchProb)
	envFloat("ARMLIFT_MAX_BRANCH_PROB", &cfg.Search.MaxBranchProb)
	envDuration("ARMLIFT_ANNEAL_PERIOD", &cfg.Search.AnnealPeriod)
	envDuration("ARMLIFT_EXCEPTION_PERIOD", &cfg.Search.ExceptionPeriod)

	if v := os.Getenv("ARMLIFT_CHECKPOINT_PATH"); v != "" {
		cfg.Checkpoint.Path = v
		cfg.Checkpoint.Enabled = true
	}
	envBool("ARMLIFT_CHECKPOINT_MEMORY", &cfg.Checkpoint.InMemory)

	envString("ARMLIFT_LOG_LEVEL", &cfg.Log.Level)
	envString("ARMLIFT_LOG_FORMAT", &cfg.Log.Format)
	envString("ARMLIFT_METRICS_ADDR", &cfg.Metrics.Addr)
}

func envString(key string, dst *string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func envInt(key string, dst *int) {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			*dst = i
		}
	}
}

func envFloat(key string, dst *float64) {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			*dst = f
		}
	}
}

func envBool(key string, dst *bool) {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			*dst = b
		}
	}
}

func envDuration(key string, dst *time.Duration) {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			*dst = d
		}
	}
}

// Validate checks every section.
func (c Config) Validate() error {
	if err := c.SearchOptions().Validate(); err != nil {
		return fmt.Errorf("%w: search: %w", ErrInvalid, err)
	}
	if c.Race.Instances < 1 {
		return fmt.Errorf("%w: race.instances must be >= 1", ErrInvalid)
	}
	if c.Race.PollInterval <= 0 {
		return fmt.Errorf("%w: race.poll_interval must be > 0", ErrInvalid)
	}
	switch c.Race.Heuristic {
	case HeuristicArmBias, HeuristicUniform:
	default:
		return fmt.Errorf("%w: unknown heuristic %q", ErrInvalid, c.Race.Heuristic)
	}
	if c.Race.Resume && !c.Checkpoint.Enabled {
		return fmt.Errorf("%w: race.resume needs checkpoint.enabled", ErrInvalid)
	}
	for i, r := range c.ExceptionRanges() {
		if err := r.Validate(); err != nil {
			return fmt.Errorf("%w: exceptions[%d]: %w", ErrInvalid, i, err)
		}
	}
	if c.Checkpoint.Enabled && !c.Checkpoint.InMemory && c.Checkpoint.Path == "" {
		return fmt.Errorf("%w: checkpoint.path is required", ErrInvalid)
	}
	if _, err := c.Log.level(); err != nil {
		return fmt.Errorf("%w: log.level: %w", ErrInvalid, err)
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("%w: log.format %q", ErrInvalid, c.Log.Format)
	}
	return nil
}

// SearchOptions converts the search section.
func (c Config) SearchOptions() search.Options {
	return search.Options{
		Precision2:      c.Search.Precision2,
		Precision3:      c.Search.Precision3,
		TunnelingProb:   c.Search.TunnelingProb,
		MinBranchProb:   c.Search.MinBranchProb,
		MaxBranchProb:   c.Search.MaxBranchProb,
		AnnealPeriod:    c.Search.AnnealPeriod,
		ExceptionPeriod: c.Search.ExceptionPeriod,
	}
}

// ExceptionRanges converts the exceptions section.
func (c Config) ExceptionRanges() []search.ExceptionRange {
	out := make([]search.ExceptionRange, 0, len(c.Exceptions))
	for _, e := range c.Exceptions {
		r := search.NewExceptionRange(e.MaxCumLoss, e.MinPos, e.PosMax)
		if e.ProbJumpMin != 0 {
			r.ProbJumpMin = e.ProbJumpMin
		}
		if e.ProbJumpMax != 0 {
			r.ProbJumpMax = e.ProbJumpMax
		}
		if e.ProbDetourMin != 0 {
			r.ProbDetourMin = e.ProbDetourMin
		}
		if e.ProbDetourMax != 0 {
			r.ProbDetourMax = e.ProbDetourMax
		}
		if e.DetourMax != 0 {
			r.DetourMax = e.DetourMax
		}
		out = append(out, r)
	}
	return out
}

// RaceOptions converts the race, search and exceptions sections. Store,
// Registerer, Logger and Label are left for the caller.
func (c Config) RaceOptions() race.Options {
	o := race.DefaultOptions()
	o.Instances = c.Race.Instances
	o.Seed = c.Race.Seed
	o.PollInterval = c.Race.PollInterval
	o.Resume = c.Race.Resume
	o.Search = c.SearchOptions()
	o.Exceptions = c.ExceptionRanges()
	if c.Race.Heuristic == HeuristicUniform {
		o.Heuristic = func(int) search.Heuristic { return search.Uniform }
	}
	return o
}

// StoreConfig converts the checkpoint section.
func (c Config) StoreConfig(log *slog.Logger) checkpoint.Config {
	return checkpoint.Config{
		Path:       c.Checkpoint.Path,
		InMemory:   c.Checkpoint.InMemory,
		SyncWrites: c.Checkpoint.SyncWrites,
		Logger:     log,
	}
}

func (l LogConfig) level() (slog.Level, error) {
	var lv slog.Level
	err := lv.UnmarshalText([]byte(l.Level))
	return lv, err
}

// Handler builds the slog handler writing to w.
func (l LogConfig) Handler(w io.Writer) slog.Handler {
	lv, err := l.level()
	if err != nil {
		lv = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: lv}
	if strings.EqualFold(l.Format, "json") {
		return slog.NewJSONHandler(w, opts)
	}
	return slog.NewTextHandler(w, opts)
}
