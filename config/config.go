package config

import (
	"errors"
	"fmt"
	"io"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Config holds the bump sizes and fan-out limits for sensitivity runs.
type Config struct {
	// ParallelShift is the uniform bump applied to every node.
	// Rates are decimals, so 1bp is 0.0001.
	ParallelShift decimal.Decimal

	// BucketShift is the bump applied to one node at a time.
	BucketShift decimal.Decimal

	// IncludeParallel adds the parallel scenario in front of the bucket ladder.
	IncludeParallel bool

	// MaxConcurrency bounds the number of concurrent repricings.
	MaxConcurrency int
}

// DefaultConfig bumps by one basis point and reprices four scenarios at a time.
var DefaultConfig = Config{
	ParallelShift:   decimal.New(1, -4),
	BucketShift:     decimal.New(1, -4),
	IncludeParallel: true,
	MaxConcurrency:  4,
}

// ErrInvalidConfig is returned by Validate and Load for unusable settings.
var ErrInvalidConfig = errors.New("invalid config")

// Validate checks that the configuration can drive a run.
func (c Config) Validate() error {
	if c.MaxConcurrency <= 0 {
		return fmt.Errorf("%w: max_concurrency must be positive, got %d", ErrInvalidConfig, c.MaxConcurrency)
	}
	if c.BucketShift.IsZero() {
		return fmt.Errorf("%w: bucket_shift must be non-zero", ErrInvalidConfig)
	}
	if c.IncludeParallel && c.ParallelShift.IsZero() {
		return fmt.Errorf("%w: parallel_shift must be non-zero", ErrInvalidConfig)
	}
	return nil
}

// yamlConfig mirrors Config on disk. Shifts are strings so they stay exact.
type yamlConfig struct {
	ParallelShift   *string `yaml:"parallel_shift"`
	BucketShift     *string `yaml:"bucket_shift"`
	IncludeParallel *bool   `yaml:"include_parallel"`
	MaxConcurrency  *int    `yaml:"max_concurrency"`
}

// Load reads a YAML document over DefaultConfig. Keys that are absent keep their defaults.
func Load(r io.Reader) (Config, error) {
	var yc yamlConfig
	if err := yaml.NewDecoder(r).Decode(&yc); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("failed to parse YAML config: %w", err)
	}
	return yc.apply(DefaultConfig)
}

// Decode applies an already-decoded YAML node over DefaultConfig.
func Decode(node *yaml.Node) (Config, error) {
	var yc yamlConfig
	if node != nil {
		if err := node.Decode(&yc); err != nil {
			return Config{}, fmt.Errorf("failed to decode config: %w", err)
		}
	}
	return yc.apply(DefaultConfig)
}

func (yc yamlConfig) apply(cfg Config) (Config, error) {
	if yc.ParallelShift != nil {
		d, err := decimal.NewFromString(*yc.ParallelShift)
		if err != nil {
			return Config{}, fmt.Errorf("%w: parallel_shift: %v", ErrInvalidConfig, err)
		}
		cfg.ParallelShift = d
	}
	if yc.BucketShift != nil {
		d, err := decimal.NewFromString(*yc.BucketShift)
		if err != nil {
			return Config{}, fmt.Errorf("%w: bucket_shift: %v", ErrInvalidConfig, err)
		}
		cfg.BucketShift = d
	}
	if yc.IncludeParallel != nil {
		cfg.IncludeParallel = *yc.IncludeParallel
	}
	if yc.MaxConcurrency != nil {
		cfg.MaxConcurrency = *yc.MaxConcurrency
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
