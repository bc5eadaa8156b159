// Package config centralises runtime configuration helpers for pgnumeric tools.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Environment identifies the runtime environment where pgnumeric tooling operates.
type Environment string

const (
	// EnvDev marks the development environment.
	EnvDev Environment = "dev"
	// EnvStaging marks the staging environment.
	EnvStaging Environment = "staging"
	// EnvProd marks the production environment.
	EnvProd Environment = "prod"
)

// Limits mirrors the numeric engine capacity constants for display and validation.
// The engine itself compiles these in; tools use Limits to validate user input
// before handing it to the engine.
type Limits struct {
	MaxPrecision    int `yaml:"max_precision"`
	MaxDisplayScale int `yaml:"max_display_scale"`
	MinDisplayScale int `yaml:"min_display_scale"`
	MinSigDigits    int `yaml:"min_sig_digits"`
}

// TelemetryConfig configures the OTLP metrics exporter.
type TelemetryConfig struct {
	OTLPEndpoint string `yaml:"otlp_endpoint"`
	ServiceName  string `yaml:"service_name"`
}

// AggregateConfig selects the accumulator strategy aggregate tooling uses.
// The 128-bit fast path only fits inputs whose scale never exceeds
// Int128Scale; the general accumulator has no such limit.
type AggregateConfig struct {
	Int128FastPath bool `yaml:"int128_fast_path"`
	Int128Scale    int  `yaml:"int128_scale"`
}

// BenchConfig tunes the decbench workload driver.
type BenchConfig struct {
	Workers     int           `yaml:"workers"`
	Operations  int           `yaml:"operations"`
	RatePerSec  float64       `yaml:"rate_per_sec"`
	Burst       int           `yaml:"burst"`
	Seed        int64         `yaml:"seed"`
	ReportEvery time.Duration `yaml:"report_every"`
}

// UnmarshalYAML accepts report_every as a duration string ("2s", "500ms").
func (b *BenchConfig) UnmarshalYAML(node *yaml.Node) error {
	type raw struct {
		Workers     int     `yaml:"workers"`
		Operations  int     `yaml:"operations"`
		RatePerSec  float64 `yaml:"rate_per_sec"`
		Burst       int     `yaml:"burst"`
		Seed        int64   `yaml:"seed"`
		ReportEvery string  `yaml:"report_every"`
	}
	decoded := raw{
		Workers:    b.Workers,
		Operations: b.Operations,
		RatePerSec: b.RatePerSec,
		Burst:      b.Burst,
		Seed:       b.Seed,
	}
	if err := node.Decode(&decoded); err != nil {
		return err
	}
	b.Workers = decoded.Workers
	b.Operations = decoded.Operations
	b.RatePerSec = decoded.RatePerSec
	b.Burst = decoded.Burst
	b.Seed = decoded.Seed
	if decoded.ReportEvery != "" {
		d, err := time.ParseDuration(decoded.ReportEvery)
		if err != nil {
			return fmt.Errorf("bench: report_every %q: %w", decoded.ReportEvery, err)
		}
		b.ReportEvery = d
	}
	return nil
}

// Settings contains the pgnumeric configuration tree loaded from defaults and overrides.
type Settings struct {
	Environment Environment     `yaml:"environment"`
	Limits      Limits          `yaml:"limits"`
	Telemetry   TelemetryConfig `yaml:"telemetry"`
	Aggregate   AggregateConfig `yaml:"aggregate"`
	Bench       BenchConfig     `yaml:"bench"`
}

// Default returns the default pgnumeric configuration.
func Default() Settings {
	return Settings{
		Environment: EnvProd,
		Limits: Limits{
			MaxPrecision:    1000,
			MaxDisplayScale: 1000,
			MinDisplayScale: 0,
			MinSigDigits:    16,
		},
		Telemetry: TelemetryConfig{
			OTLPEndpoint: "",
			ServiceName:  "pgnumeric",
		},
		Aggregate: AggregateConfig{
			Int128FastPath: false,
			Int128Scale:    4,
		},
		Bench: BenchConfig{
			Workers:     4,
			Operations:  100000,
			RatePerSec:  0,
			Burst:       1,
			Seed:        0,
			ReportEvery: 5 * time.Second,
		},
	}
}

// FromEnv loads configuration values from environment variables, overriding defaults.
func FromEnv() Settings {
	cfg := Default()
	if env := strings.TrimSpace(os.Getenv("PGNUMERIC_ENV")); env != "" {
		cfg.Environment = Environment(strings.ToLower(env))
	}
	if v := strings.TrimSpace(os.Getenv("PGNUMERIC_OTLP_ENDPOINT")); v != "" {
		cfg.Telemetry.OTLPEndpoint = v
	}
	if v := strings.TrimSpace(os.Getenv("PGNUMERIC_SERVICE_NAME")); v != "" {
		cfg.Telemetry.ServiceName = v
	}
	if v := strings.TrimSpace(os.Getenv("PGNUMERIC_AGG_INT128")); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Aggregate.Int128FastPath = b
		}
	}
	if v := strings.TrimSpace(os.Getenv("PGNUMERIC_AGG_INT128_SCALE")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.Aggregate.Int128Scale = n
		}
	}
	if v := strings.TrimSpace(os.Getenv("PGNUMERIC_BENCH_WORKERS")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Bench.Workers = n
		}
	}
	if v := strings.TrimSpace(os.Getenv("PGNUMERIC_BENCH_OPERATIONS")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Bench.Operations = n
		}
	}
	if v := strings.TrimSpace(os.Getenv("PGNUMERIC_BENCH_RATE")); v != "" {
		if r, err := strconv.ParseFloat(v, 64); err == nil && r >= 0 {
			cfg.Bench.RatePerSec = r
		}
	}
	if v := strings.TrimSpace(os.Getenv("PGNUMERIC_BENCH_SEED")); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			cfg.Bench.Seed = n
		}
	}
	return cfg
}

// LoadFile reads settings from a YAML file layered over the defaults.
// A missing file is not an error; the defaults are returned unchanged.
func LoadFile(path string) (Settings, error) {
	cfg := Default()
	path = strings.TrimSpace(path)
	if path == "" {
		return cfg, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return Default(), fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Default(), fmt.Errorf("validate config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks internal consistency of the settings tree.
func (s Settings) Validate() error {
	l := s.Limits
	if l.MaxPrecision <= 0 {
		return fmt.Errorf("limits: max_precision must be positive, got %d", l.MaxPrecision)
	}
	if l.MaxDisplayScale < l.MinDisplayScale {
		return fmt.Errorf("limits: max_display_scale %d below min_display_scale %d",
			l.MaxDisplayScale, l.MinDisplayScale)
	}
	if l.MinSigDigits <= 0 {
		return fmt.Errorf("limits: min_sig_digits must be positive, got %d", l.MinSigDigits)
	}
	if s.Aggregate.Int128Scale < 0 || s.Aggregate.Int128Scale > l.MaxDisplayScale {
		return fmt.Errorf("aggregate: int128_scale %d outside [0, %d]",
			s.Aggregate.Int128Scale, l.MaxDisplayScale)
	}
	if s.Bench.Workers < 0 {
		return fmt.Errorf("bench: workers must not be negative, got %d", s.Bench.Workers)
	}
	if s.Bench.RatePerSec < 0 {
		return fmt.Errorf("bench: rate_per_sec must not be negative, got %g", s.Bench.RatePerSec)
	}
	return nil
}

// Option mutates Settings when applied via Apply.
type Option func(*Settings)

// Apply applies the provided Option set to a copy of the base Settings.
func Apply(base Settings, opts ...Option) Settings {
	cfg := base
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

// WithEnvironment configures the top-level environment.
func WithEnvironment(env Environment) Option {
	return func(s *Settings) {
		if env != "" {
			s.Environment = env
		}
	}
}

// WithTelemetryEndpoint overrides the OTLP endpoint and service name.
func WithTelemetryEndpoint(endpoint, service string) Option {
	endpoint = strings.TrimSpace(endpoint)
	service = strings.TrimSpace(service)
	return func(s *Settings) {
		if endpoint != "" {
			s.Telemetry.OTLPEndpoint = endpoint
		}
		if service != "" {
			s.Telemetry.ServiceName = service
		}
	}
}

// WithInt128FastPath switches aggregate tooling onto the 128-bit accumulator
// at the given input scale.
func WithInt128FastPath(enabled bool, scale int) Option {
	return func(s *Settings) {
		s.Aggregate.Int128FastPath = enabled
		if scale >= 0 {
			s.Aggregate.Int128Scale = scale
		}
	}
}

// WithBenchWorkers overrides the bench worker count.
func WithBenchWorkers(workers int) Option {
	return func(s *Settings) {
		if workers > 0 {
			s.Bench.Workers = workers
		}
	}
}

// WithBenchOperations overrides the total bench operation count.
func WithBenchOperations(ops int) Option {
	return func(s *Settings) {
		if ops > 0 {
			s.Bench.Operations = ops
		}
	}
}

// WithBenchRate overrides the bench rate limit (operations per second; 0 disables).
func WithBenchRate(rate float64, burst int) Option {
	return func(s *Settings) {
		if rate >= 0 {
			s.Bench.RatePerSec = rate
		}
		if burst > 0 {
			s.Bench.Burst = burst
		}
	}
}
