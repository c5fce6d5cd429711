package config

import (
	"runtime"
	"time"

	"github.com/reglet-dev/breachgate/internal/infrastructure/system"
)

// RuntimeConfig aggregates all runtime configuration.
// This is a value object that flows through the system.
type RuntimeConfig struct {
	// Replacement action
	ReplacementName string

	// Penalty lock
	PenaltyRadius   float64
	PenaltyDuration time.Duration
	PenaltyEnabled  bool

	// Concurrency across scenario files
	MaxConcurrentScenarios int
}

// FromSystemConfig creates RuntimeConfig from system config. The config is
// expected to have passed system.ConfigLoader validation.
func FromSystemConfig(sys *system.Config) *RuntimeConfig {
	d, err := sys.Penalty.LockDuration()
	if err != nil {
		d = system.DefaultPenaltyDuration
	}
	return &RuntimeConfig{
		ReplacementName: sys.Replacement.Name,
		PenaltyRadius:   sys.Penalty.Radius,
		PenaltyDuration: d,
		PenaltyEnabled:  sys.Penalty.Enabled,
	}
}

// ApplyDefaults applies defaults for zero values.
func (r *RuntimeConfig) ApplyDefaults() {
	if r.ReplacementName == "" {
		r.ReplacementName = system.DefaultReplacementName
	}
	if r.PenaltyDuration == 0 {
		r.PenaltyDuration = system.DefaultPenaltyDuration
	}
	if r.MaxConcurrentScenarios <= 0 {
		r.MaxConcurrentScenarios = runtime.NumCPU()
	}
}
