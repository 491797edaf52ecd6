package utils

import (
	"encoding/json"
	"flag"
	"os"
	"time"

	"github.com/pkg/errors"
)

// DefaultPattern is loaded when neither the config nor the command line names one.
const DefaultPattern = "rle_patterns/glider.rle"

// Config holds the configuration for the simulation
type Config struct {
	Pattern             string        `json:"pattern"`
	FrameRate           time.Duration `json:"frame_rate"`
	MaxGenerations      int           `json:"max_generations"`
	UseParallel         bool          `json:"use_parallel"`
	UseBoundedGrid      bool          `json:"use_bounded_grid"`
	UseMemoryPool       bool          `json:"use_memory_pool"`
	StopWhenStagnant    bool          `json:"stop_when_stagnant"`
	StagnationThreshold int           `json:"stagnation_threshold"`
	FetchTimeout        time.Duration `json:"fetch_timeout"`
	MaxPatternBytes     int64         `json:"max_pattern_bytes"`
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Pattern:             DefaultPattern,
		FrameRate:           250 * time.Millisecond,
		MaxGenerations:      0, // run until interrupted
		UseParallel:         false,
		UseBoundedGrid:      false,
		UseMemoryPool:       true,
		StopWhenStagnant:    false,
		StagnationThreshold: 5,
		FetchTimeout:        10 * time.Second,
		MaxPatternBytes:     16 << 20,
	}
}

// LoadConfig loads configuration from JSON file on top of the defaults
func LoadConfig(filename string) (Config, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(filename)
	if err != nil {
		return config, errors.Wrapf(err, "[LoadConfig] failed to read file: %+v", filename)
	}

	if err = json.Unmarshal(data, &config); err != nil {
		return config, errors.Wrapf(err, "[LoadConfig] failed to unmarshal data from file: %+v", filename)
	}

	if err = config.Validate(); err != nil {
		return config, errors.WithMessagef(err, "[LoadConfig] invalid configuration in file: %+v", filename)
	}

	return config, nil
}

// Validate rejects settings the driving loop cannot honour
func (c Config) Validate() error {
	switch {
	case c.Pattern == "":
		return errors.New("pattern must not be empty")
	case c.FrameRate < 0:
		return errors.Errorf("frame_rate must not be negative: %v", c.FrameRate)
	case c.MaxGenerations < 0:
		return errors.Errorf("max_generations must not be negative: %d", c.MaxGenerations)
	case c.UseParallel && c.UseBoundedGrid:
		return errors.New("use_parallel and use_bounded_grid are mutually exclusive")
	case c.StagnationThreshold < 1:
		return errors.Errorf("stagnation_threshold must be positive: %d", c.StagnationThreshold)
	case c.MaxPatternBytes < 1:
		return errors.Errorf("max_pattern_bytes must be positive: %d", c.MaxPatternBytes)
	}
	return nil
}

// Bind attaches command-line overrides to the provided FlagSet
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.StringVar(&c.Pattern, "pattern", c.Pattern, "pattern file path or http(s) URL")
	fs.DurationVar(&c.FrameRate, "frame-rate", c.FrameRate, "delay between generations")
	fs.IntVar(&c.MaxGenerations, "max-generations", c.MaxGenerations, "stop after this many generations (0 runs forever)")
	fs.BoolVar(&c.UseParallel, "parallel", c.UseParallel, "compute each generation with one worker per CPU")
	fs.BoolVar(&c.UseBoundedGrid, "bounded", c.UseBoundedGrid, "only compute around living cells")
	fs.BoolVar(&c.StopWhenStagnant, "stop-when-stagnant", c.StopWhenStagnant, "stop once the pattern is extinct or repeating")
}
