// Package system provides infrastructure for system-level configuration.
// This includes loading the system config file (~/.breachgate/config.yaml)
// that decides whether the breach extension is available and how the
// penalty lock behaves.
package system

import (
	"fmt"
	"os"
	"time"

	"github.com/goccy/go-yaml"
)

const (
	// DefaultPenaltyRadius is the lock radius used when none is configured.
	DefaultPenaltyRadius = 25.0

	// DefaultPenaltyDuration is the lock lifetime used when none is configured.
	DefaultPenaltyDuration = 60 * time.Second

	// DefaultReplacementName is the display name of constructed replacement breaches.
	DefaultReplacementName = "Remote Breach"
)

// Config represents the global configuration file (~/.breachgate/config.yaml).
type Config struct {
	Extension   ExtensionConfig   `yaml:"extension"`
	Penalty     PenaltyConfig     `yaml:"penalty"`
	Replacement ReplacementConfig `yaml:"replacement"`
}

// ExtensionConfig controls the capability gate.
type ExtensionConfig struct {
	// Version is the version of the installed extension, e.g. "2.1.0".
	Version string `yaml:"version"`

	// Require is a semver constraint the version must satisfy, e.g. ">= 2.0".
	Require string `yaml:"require"`

	Enabled bool `yaml:"enabled"`
}

// PenaltyConfig configures the penalty lock applied after a failed breach.
type PenaltyConfig struct {
	// Duration is a Go duration string ("90s", "2m").
	Duration string  `yaml:"duration"`
	Radius   float64 `yaml:"radius"`
	Enabled  bool    `yaml:"enabled"`
}

// ReplacementConfig configures the constructed alternate breach action.
type ReplacementConfig struct {
	Name string `yaml:"name"`
}

// LockDuration parses Duration, falling back to DefaultPenaltyDuration when
// it is empty.
func (p PenaltyConfig) LockDuration() (time.Duration, error) {
	if p.Duration == "" {
		return DefaultPenaltyDuration, nil
	}
	d, err := time.ParseDuration(p.Duration)
	if err != nil {
		return 0, fmt.Errorf("invalid penalty duration %q: %w", p.Duration, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("invalid penalty duration %q: must be positive", p.Duration)
	}
	return d, nil
}

// ConfigLoader loads system configuration from disk.
type ConfigLoader struct{}

// NewConfigLoader creates a new system config loader.
func NewConfigLoader() *ConfigLoader {
	return &ConfigLoader{}
}

// DefaultConfig returns a Config with safe defaults for all fields.
// The extension is disabled until a config file turns it on.
func DefaultConfig() *Config {
	return &Config{
		Extension: ExtensionConfig{Enabled: false},
		Penalty: PenaltyConfig{
			Enabled:  true,
			Radius:   DefaultPenaltyRadius,
			Duration: DefaultPenaltyDuration.String(),
		},
		Replacement: ReplacementConfig{Name: DefaultReplacementName},
	}
}

// Load loads the system configuration from the specified path.
// If the file does not exist, returns DefaultConfig().
// Fields missing from the file keep their default values.
func (l *ConfigLoader) Load(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	//nolint:gosec // G304: path is user-provided config file, validated to exist above
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read system config: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse system config: %w", err)
	}

	if config.Penalty.Radius < 0 {
		return nil, fmt.Errorf("invalid system config: penalty radius must not be negative")
	}
	if _, err := config.Penalty.LockDuration(); err != nil {
		return nil, fmt.Errorf("invalid system config: %w", err)
	}

	return config, nil
}
