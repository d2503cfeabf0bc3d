package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"

	"loadavg-service/internal/domain"
	"loadavg-service/internal/util"
)

const envPrefix = "loadavg"

const (
	StrategyPlaceholder = "placeholder"
	StrategySyscall     = "syscall"
	StrategyGopsutil    = "gopsutil"
)

var ErrInvalidConfig = errors.New("invalid configuration")

type Config struct {
	Addr     string `yaml:"addr" envconfig:"addr"`
	Strategy string `yaml:"strategy" envconfig:"strategy"`
	// Fallback serves the placeholder values when the platform has no load average.
	Fallback    bool              `yaml:"fallback" envconfig:"fallback"`
	Placeholder PlaceholderConfig `yaml:"placeholder" envconfig:"placeholder"`

	LogDir      string `yaml:"log_dir" envconfig:"log_dir"`
	LogFile     string `yaml:"log_file" envconfig:"log_file"`
	LogLevel    string `yaml:"log_level" envconfig:"log_level"`
	LogToStderr bool   `yaml:"log_to_stderr" envconfig:"log_to_stderr"`

	ReadTimeout     time.Duration `yaml:"read_timeout" envconfig:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout" envconfig:"write_timeout"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" envconfig:"idle_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" envconfig:"shutdown_timeout"`
}

type PlaceholderConfig struct {
	Last   float64 `yaml:"last" envconfig:"last"`
	Last5  float64 `yaml:"last5" envconfig:"last5"`
	Last15 float64 `yaml:"last15" envconfig:"last15"`
}

func (p PlaceholderConfig) Sample() domain.LoadSample {
	return domain.NewLoadSample(p.Last, p.Last5, p.Last15)
}

func Default() Config {
	return Config{
		Addr:     ":8080",
		Strategy: StrategySyscall,
		Fallback: true,
		Placeholder: PlaceholderConfig{
			Last:   0.9,
			Last5:  1.5,
			Last15: 1.8,
		},
		LogDir:          ".." + string(os.PathSeparator) + "log",
		LogFile:         "webService.log",
		LogLevel:        "info",
		ReadTimeout:     5 * time.Second,
		WriteTimeout:    10 * time.Second,
		IdleTimeout:     120 * time.Second,
		ShutdownTimeout: 25 * time.Second,
	}
}

// Load layers defaults, the optional YAML file at path and LOADAVG_* environment
// variables, in that order, and validates the result.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("error reading config file: %w", err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return Config{}, fmt.Errorf("error parsing config file %s: %w", path, err)
		}
	}

	if err := envconfig.Process(envPrefix, &cfg); err != nil {
		return Config{}, fmt.Errorf("error reading environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	}

	switch c.Strategy {
	case StrategyPlaceholder, StrategySyscall, StrategyGopsutil:
	default:
		return fmt.Errorf("%w: unknown strategy %q", ErrInvalidConfig, c.Strategy)
	}

	if _, err := util.ParseLogLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	if err := c.Placeholder.Sample().Validate(); err != nil {
		return fmt.Errorf("%w: placeholder: %v", ErrInvalidConfig, err)
	}

	timeouts := map[string]time.Duration{
		"read_timeout":     c.ReadTimeout,
		"write_timeout":    c.WriteTimeout,
		"idle_timeout":     c.IdleTimeout,
		"shutdown_timeout": c.ShutdownTimeout,
	}
	for name, d := range timeouts {
		if d <= 0 {
			return fmt.Errorf("%w: %s must be positive", ErrInvalidConfig, name)
		}
	}
	return nil
}
