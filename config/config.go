// SPDX-License-Identifier: MIT

// Package config loads lvlagg settings. Values come from three layers, each
// overriding the previous one: envDefault tags, an optional TOML file, and
// LVLAGG_-prefixed environment variables.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"os"
	"runtime"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/katalvlaran/lvlagg/igd"
	"github.com/katalvlaran/lvlagg/round"
	"github.com/klauspost/cpuid/v2"
	"github.com/pelletier/go-toml"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "LVLAGG_"

// noDefaults names a tag no field carries, so the overlay pass leaves unset
// variables alone instead of re-applying envDefault.
const noDefaults = "envOverlayDefault"

// Task names accepted in Regress.Task.
const (
	TaskLeastSquares = "least_squares"
	TaskLogistic     = "logistic"
)

// ErrInvalidConfig indicates a field value Validate rejects.
var ErrInvalidConfig = errors.New("config: invalid value")

// Config is the process configuration.
type Config struct {
	LogLevel    string         `toml:"log_level"    env:"LOG_LEVEL"    envDefault:"info"`
	Partitions  int            `toml:"partitions"   env:"PARTITIONS"   envDefault:"0"`
	Topology    string         `toml:"topology"     env:"TOPOLOGY"     envDefault:"sequential"`
	MaxRounds   int            `toml:"max_rounds"   env:"MAX_ROUNDS"   envDefault:"100"`
	MetricsAddr string         `toml:"metrics_addr" env:"METRICS_ADDR" envDefault:""`
	PageRank    PageRankConfig `toml:"pagerank"     envPrefix:"PAGERANK_"`
	Regress     RegressConfig  `toml:"regress"      envPrefix:"REGRESS_"`
}

// PageRankConfig holds the pagerank command settings.
type PageRankConfig struct {
	Damping   float64 `toml:"damping"   env:"DAMPING"   envDefault:"0.85"`
	Tolerance float64 `toml:"tolerance" env:"TOLERANCE" envDefault:"0.000001"`
}

// RegressConfig holds the regress command settings.
type RegressConfig struct {
	Task      string  `toml:"task"       env:"TASK"       envDefault:"least_squares"`
	Stepsize  float64 `toml:"stepsize"   env:"STEPSIZE"   envDefault:"0.01"`
	BatchSize int     `toml:"batch_size" env:"BATCH_SIZE" envDefault:"32"`
	Epochs    int     `toml:"epochs"     env:"EPOCHS"     envDefault:"1"`
	Shuffle   bool    `toml:"shuffle"    env:"SHUFFLE"    envDefault:"false"`
	Seed      int64   `toml:"seed"       env:"SEED"       envDefault:"1"`
}

// Default returns the configuration made of envDefault values only.
func Default() (*Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{Environment: map[string]string{}}); err != nil {
		return nil, fmt.Errorf("error applying defaults: %w", err)
	}

	return &cfg, nil
}

// Load builds the configuration from defaults, the TOML file at path (skipped
// when path is empty) and the environment, then validates it.
func Load(path string) (*Config, error) {
	cfg, err := Default()
	if err != nil {
		return nil, err
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		tree, err := toml.Load(string(data))
		if err != nil {
			return nil, fmt.Errorf("error parsing config file: %w", err)
		}
		if err := tree.Unmarshal(cfg); err != nil {
			return nil, fmt.Errorf("error unmarshaling config: %w", err)
		}
	}

	if err := env.ParseWithOptions(cfg, env.Options{Prefix: EnvPrefix, DefaultValueTagName: noDefaults}); err != nil {
		return nil, fmt.Errorf("error parsing environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func invalid(field string, v any) error {
	return fmt.Errorf("%w: %s=%v", ErrInvalidConfig, field, v)
}

// Validate checks every field. The first violation is returned wrapped
// around ErrInvalidConfig.
func (c *Config) Validate() error {
	if _, err := c.Level(); err != nil {
		return invalid("log_level", c.LogLevel)
	}
	if c.Partitions < 0 {
		return invalid("partitions", c.Partitions)
	}
	if _, err := c.MergeTopology(); err != nil {
		return invalid("topology", c.Topology)
	}
	if c.MaxRounds <= 0 {
		return invalid("max_rounds", c.MaxRounds)
	}
	if d := c.PageRank.Damping; math.IsNaN(d) || d < 0 || d > 1 {
		return invalid("pagerank.damping", d)
	}
	if tol := c.PageRank.Tolerance; math.IsNaN(tol) || tol < 0 {
		return invalid("pagerank.tolerance", tol)
	}
	switch c.Regress.Task {
	case TaskLeastSquares, TaskLogistic:
	default:
		return invalid("regress.task", c.Regress.Task)
	}
	if s := c.Regress.Stepsize; math.IsNaN(s) || math.IsInf(s, 0) || s <= 0 {
		return invalid("regress.stepsize", s)
	}
	if c.Regress.BatchSize <= 0 {
		return invalid("regress.batch_size", c.Regress.BatchSize)
	}
	if c.Regress.Epochs <= 0 {
		return invalid("regress.epochs", c.Regress.Epochs)
	}

	return nil
}

// Level parses LogLevel as a slog level.
func (c *Config) Level() (slog.Level, error) {
	var level slog.Level
	err := level.UnmarshalText([]byte(strings.TrimSpace(c.LogLevel)))

	return level, err
}

// MergeTopology parses Topology.
func (c *Config) MergeTopology() (round.Topology, error) {
	return round.ParseTopology(c.Topology)
}

// PartitionCount resolves Partitions; zero means one partition per logical
// core.
func (c *Config) PartitionCount() int {
	if c.Partitions > 0 {
		return c.Partitions
	}
	if n := cpuid.CPU.LogicalCores; n > 0 {
		return n
	}

	return runtime.NumCPU()
}

// BatchOrder maps Regress.Shuffle to the mini-batch visitation order.
func (c *Config) BatchOrder() igd.BatchOrder {
	if c.Regress.Shuffle {
		return igd.Shuffled
	}

	return igd.Sequential
}

// Hyper returns the IGD hyperparameters of the regress command.
func (c *Config) Hyper() igd.Hyper {
	return igd.Hyper{
		Stepsize:  c.Regress.Stepsize,
		BatchSize: c.Regress.BatchSize,
		NEpochs:   c.Regress.Epochs,
	}
}
