// Package ports defines interfaces for infrastructure dependencies.
// These are the "ports" in hexagonal architecture - abstractions that
// the application layer depends on but doesn't implement.
package ports

import (
	"context"
	"io"

	"github.com/reglet-dev/breachgate/internal/domain/actions"
	"github.com/reglet-dev/breachgate/internal/domain/entities"
	"github.com/reglet-dev/breachgate/internal/domain/execution"
	"github.com/reglet-dev/breachgate/internal/infrastructure/system"
)

// BreachStateOracle reports whether a device is already unlocked.
type BreachStateOracle interface {
	IsBreached(ctx context.Context, device *actions.Device) (bool, error)
}

// LockPenaltyOracle reports whether a subject is currently barred from
// breaching at a position because of an earlier failure. Implementations
// return false when the penalty feature is disabled.
type LockPenaltyOracle interface {
	IsLocked(ctx context.Context, subject actions.Subject, position actions.Position) (bool, error)
}

// ActionConstructor builds the replacement breach action for a device.
type ActionConstructor interface {
	Construct(ctx context.Context, device *actions.Device) (*actions.Action, error)
}

// BreachCurator is the capability interface over the action-list
// transforms. Exactly one implementation is active per process.
type BreachCurator interface {
	// ReplaceDefaultBreach strips default breach entries and reports whether
	// a replacement slot was opened.
	ReplaceDefaultBreach(ctx context.Context, device *actions.Device, list *actions.List) bool

	// PurgeIfAlreadyUnlocked strips every breach-type entry when the device
	// is already breached.
	PurgeIfAlreadyUnlocked(ctx context.Context, device *actions.Device, list *actions.List)

	// PurgeAllBreachActions strips every breach-type entry.
	PurgeAllBreachActions(list *actions.List)

	// FlagAlternateBreachEntries marks alternate breaches for quickhack display.
	FlagAlternateBreachEntries(list actions.List)

	// Active reports whether this curator mutates lists at all.
	Active() bool
}

// CapabilityGate exposes the resolved extension availability.
type CapabilityGate interface {
	Enabled() bool
	Reason() string
}

// ScenarioLoader loads scenarios from storage.
type ScenarioLoader interface {
	LoadScenario(path string) (*entities.Scenario, error)
}

// ScenarioValidator validates scenario structure and schema.
type ScenarioValidator interface {
	Validate(scenario *entities.Scenario) error
}

// SystemConfigProvider loads system configuration.
type SystemConfigProvider interface {
	LoadConfig(ctx context.Context, path string) (*system.Config, error)
}

// WorldSeeder records the oracle answers an interaction expects.
type WorldSeeder interface {
	Seed(ctx context.Context, interaction *entities.Interaction) error
	Reset()
}

// OutputFormatter formats run results.
type OutputFormatter interface {
	Format(result *execution.RunResult) error
}

// BatchOutputFormatter writes the results of several scenario files as a
// single document.
type BatchOutputFormatter interface {
	OutputFormatter
	FormatAll(results []*execution.RunResult) error
}

// FormatterOptions carries formatter-specific settings.
type FormatterOptions struct {
	ScenarioPath string
	Indent       bool
}

// OutputFormatterFactory creates formatters by name.
type OutputFormatterFactory interface {
	Create(format string, writer io.Writer, options FormatterOptions) (OutputFormatter, error)
	SupportedFormats() []string
}
