// Package config holds the simulator's JSON configuration.
package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/sarchlab/rv32sim/timing/cache"
)

// ICacheConfig selects and sizes the instruction cache.
type ICacheConfig struct {
	// Enabled routes instruction fetch through the cache.
	Enabled bool `json:"enabled"`

	cache.Config
}

// SimConfig holds the settings for one simulation run.
type SimConfig struct {
	// MaxInstructions stops the run after this many retired instructions.
	// 0 means no limit. Default: 1,000,000.
	MaxInstructions uint64 `json:"max_instructions"`

	// RawBase is the load address used for flat binary images.
	// Default: 0x0.
	RawBase uint32 `json:"raw_base"`

	// ICache configures the instruction cache. Disabled by default.
	ICache ICacheConfig `json:"icache"`

	// LogLevel is a logrus level name. Default: "info".
	LogLevel string `json:"log_level"`
}

// Default returns a SimConfig with default values.
func Default() *SimConfig {
	return &SimConfig{
		MaxInstructions: 1_000_000,
		ICache: ICacheConfig{
			Config: cache.DefaultICacheConfig(),
		},
		LogLevel: logrus.InfoLevel.String(),
	}
}

// Load reads a SimConfig from a JSON file. Fields missing from the file
// keep their default values.
func Load(path string) (*SimConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := Default()
	if err := json.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return config, nil
}

// Save writes the SimConfig to a JSON file.
func (c *SimConfig) Save(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Level parses LogLevel.
func (c *SimConfig) Level() (logrus.Level, error) {
	level, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		return logrus.InfoLevel, fmt.Errorf("invalid log_level: %w", err)
	}
	return level, nil
}

// Validate checks that the configuration is usable.
func (c *SimConfig) Validate() error {
	if _, err := c.Level(); err != nil {
		return err
	}
	if c.RawBase%4 != 0 {
		return fmt.Errorf("raw_base must be 4-byte aligned")
	}
	if !c.ICache.Enabled {
		return nil
	}

	ic := c.ICache.Config
	if ic.Associativity <= 0 {
		return fmt.Errorf("icache associativity must be > 0")
	}
	if ic.BlockSize < 4 || ic.BlockSize&(ic.BlockSize-1) != 0 {
		return fmt.Errorf("icache block_size must be a power of two >= 4")
	}
	if ic.Size <= 0 || ic.Size%(ic.Associativity*ic.BlockSize) != 0 {
		return fmt.Errorf("icache size must be a positive multiple of associativity * block_size")
	}
	if ic.HitLatency == 0 {
		return fmt.Errorf("icache hit_latency must be > 0")
	}
	if ic.MissLatency < ic.HitLatency {
		return fmt.Errorf("icache miss_latency must be >= hit_latency")
	}
	return nil
}

// Clone returns a deep copy of the SimConfig.
func (c *SimConfig) Clone() *SimConfig {
	clone := *c
	return &clone
}
