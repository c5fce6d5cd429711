// Package adapters provides infrastructure adapters that implement application ports.
// These adapters wrap existing infrastructure components to satisfy port interfaces.
package adapters

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/reglet-dev/breachgate/internal/application/ports"
	"github.com/reglet-dev/breachgate/internal/application/services"
	"github.com/reglet-dev/breachgate/internal/domain/entities"
	infraconfig "github.com/reglet-dev/breachgate/internal/infrastructure/config"
	"github.com/reglet-dev/breachgate/internal/infrastructure/persistence/memory"
	"github.com/reglet-dev/breachgate/internal/infrastructure/system"
	"github.com/reglet-dev/breachgate/internal/infrastructure/validation"
)

// Ensure adapters implement ports at compile time
var (
	_ ports.ScenarioLoader       = (*ScenarioLoaderAdapter)(nil)
	_ ports.ScenarioValidator    = (*ScenarioValidatorAdapter)(nil)
	_ ports.SystemConfigProvider = (*SystemConfigAdapter)(nil)
)

// DefaultConfigPath returns ~/.breachgate/config.yaml.
func DefaultConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".breachgate", "config.yaml"), nil
}

// ScenarioLoaderAdapter adapts the infrastructure scenario loader to the port interface.
type ScenarioLoaderAdapter struct {
	loader *infraconfig.ScenarioLoader
}

// NewScenarioLoaderAdapter creates a new scenario loader adapter.
func NewScenarioLoaderAdapter() *ScenarioLoaderAdapter {
	return &ScenarioLoaderAdapter{loader: infraconfig.NewScenarioLoader()}
}

// LoadScenario loads a scenario file.
func (a *ScenarioLoaderAdapter) LoadScenario(path string) (*entities.Scenario, error) {
	return a.loader.LoadScenario(path)
}

// ScenarioValidatorAdapter adapts the schema validator to the port interface.
type ScenarioValidatorAdapter struct {
	validator *validation.ScenarioValidator
}

// NewScenarioValidatorAdapter creates a new scenario validator adapter.
func NewScenarioValidatorAdapter() (*ScenarioValidatorAdapter, error) {
	v, err := validation.NewScenarioValidator()
	if err != nil {
		return nil, err
	}
	return &ScenarioValidatorAdapter{validator: v}, nil
}

// Validate validates the scenario document against the schema.
func (a *ScenarioValidatorAdapter) Validate(scenario *entities.Scenario) error {
	return a.validator.Validate(scenario)
}

// SystemConfigAdapter adapts system config loader to port interface.
type SystemConfigAdapter struct {
	loader *system.ConfigLoader
}

// NewSystemConfigAdapter creates a new system config adapter.
func NewSystemConfigAdapter() *SystemConfigAdapter {
	return &SystemConfigAdapter{
		loader: system.NewConfigLoader(),
	}
}

// LoadConfig loads system configuration from path. An empty path means the
// default location.
func (a *SystemConfigAdapter) LoadConfig(_ context.Context, path string) (*system.Config, error) {
	if path == "" {
		var err error
		if path, err = DefaultConfigPath(); err != nil {
			return nil, err
		}
	}
	return a.loader.Load(path)
}

// SessionFactoryAdapter builds the per-run world and curation pipeline from
// the runtime configuration. Every session uses the curator implementation
// selected at startup.
type SessionFactoryAdapter struct {
	curators services.CuratorFactory
	cfg      *infraconfig.RuntimeConfig
	logger   *slog.Logger
}

// NewSessionFactoryAdapter creates a new session factory adapter.
func NewSessionFactoryAdapter(cfg *infraconfig.RuntimeConfig, curators services.CuratorFactory, logger *slog.Logger) *SessionFactoryAdapter {
	return &SessionFactoryAdapter{cfg: cfg, curators: curators, logger: logger}
}

// NewSession creates fresh registries and a curation use case bound to them.
func (a *SessionFactoryAdapter) NewSession() *services.Session {
	breaches := memory.NewBreachRegistry()
	locks := memory.NewPenaltyLockRegistry(a.cfg.PenaltyEnabled, a.cfg.PenaltyRadius)
	world := memory.NewWorld(breaches, locks, a.cfg.PenaltyDuration)

	curator := a.curators(breaches, locks)
	constructor := memory.NewTemplateConstructor(a.cfg.ReplacementName)

	return &services.Session{
		World:  world,
		Curate: services.NewCurateActionsUseCase(curator, constructor, a.logger),
	}
}
