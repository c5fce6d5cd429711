// Package container provides dependency injection for the application.
package container

import (
	"context"
	"log/slog"

	apperrors "github.com/reglet-dev/breachgate/internal/application/errors"
	"github.com/reglet-dev/breachgate/internal/application/ports"
	"github.com/reglet-dev/breachgate/internal/application/services"
	"github.com/reglet-dev/breachgate/internal/infrastructure/adapters"
	"github.com/reglet-dev/breachgate/internal/infrastructure/capability"
	infraconfig "github.com/reglet-dev/breachgate/internal/infrastructure/config"
	"github.com/reglet-dev/breachgate/internal/infrastructure/output"
	"github.com/reglet-dev/breachgate/internal/infrastructure/system"
)

// Container holds all application dependencies.
type Container struct {
	scenarioLoader     ports.ScenarioLoader
	scenarioValidator  ports.ScenarioValidator
	gate               capability.Gate
	formatters         *output.FormatterFactory
	runScenarioUseCase *services.RunScenarioUseCase
	systemCfg          *system.Config
	runtimeCfg         *infraconfig.RuntimeConfig
	logger             *slog.Logger
}

// Options configure the container.
type Options struct {
	Logger           *slog.Logger
	SystemConfigPath string
	Version          string
	// Concurrency bounds how many scenario files run at once. Zero means
	// one per CPU.
	Concurrency int
	// DisableExtension pins the gate closed regardless of config.
	DisableExtension bool
	NoColor          bool
}

// New creates a new dependency injection container. The capability gate is
// resolved here, once per process.
func New(opts Options) (*Container, error) {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	scenarioLoader := adapters.NewScenarioLoaderAdapter()
	scenarioValidator, err := adapters.NewScenarioValidatorAdapter()
	if err != nil {
		return nil, apperrors.NewConfigurationError("validation", "failed to compile scenario schema", err)
	}

	systemConfigAdapter := adapters.NewSystemConfigAdapter()
	systemCfg, err := systemConfigAdapter.LoadConfig(context.TODO(), opts.SystemConfigPath)
	if err != nil {
		opts.Logger.Warn("failed to load system config, using defaults", "error", err)
		systemCfg = system.DefaultConfig()
	}

	runtimeCfg := infraconfig.FromSystemConfig(systemCfg)
	runtimeCfg.MaxConcurrentScenarios = opts.Concurrency
	runtimeCfg.ApplyDefaults()

	var gate capability.Gate
	if opts.DisableExtension {
		gate = capability.Disabled("disabled by --no-extension")
	} else {
		gate = capability.Resolve(systemCfg, opts.Logger)
	}

	curators := services.SelectCurator(gate, opts.Logger)
	sessions := adapters.NewSessionFactoryAdapter(runtimeCfg, curators, opts.Logger)

	runScenarioUseCase := services.NewRunScenarioUseCase(
		scenarioLoader,
		scenarioValidator,
		gate,
		sessions.NewSession,
		opts.Version,
		opts.Logger,
	)

	return &Container{
		scenarioLoader:     scenarioLoader,
		scenarioValidator:  scenarioValidator,
		gate:               gate,
		formatters:         &output.FormatterFactory{NoColor: opts.NoColor},
		runScenarioUseCase: runScenarioUseCase,
		systemCfg:          systemCfg,
		runtimeCfg:         runtimeCfg,
		logger:             opts.Logger,
	}, nil
}

// RunScenarioUseCase returns the run scenario use case.
func (c *Container) RunScenarioUseCase() *services.RunScenarioUseCase {
	return c.runScenarioUseCase
}

// ScenarioLoader returns the scenario loader port.
func (c *Container) ScenarioLoader() ports.ScenarioLoader {
	return c.scenarioLoader
}

// ScenarioValidator returns the scenario validator port.
func (c *Container) ScenarioValidator() ports.ScenarioValidator {
	return c.scenarioValidator
}

// Gate returns the resolved capability gate.
func (c *Container) Gate() capability.Gate {
	return c.gate
}

// Formatters returns the output formatter factory.
func (c *Container) Formatters() ports.OutputFormatterFactory {
	return c.formatters
}

// SystemConfig returns the system configuration.
func (c *Container) SystemConfig() *system.Config {
	return c.systemCfg
}

// RuntimeConfig returns the runtime configuration.
func (c *Container) RuntimeConfig() *infraconfig.RuntimeConfig {
	return c.runtimeCfg
}

// Logger returns the configured logger.
func (c *Container) Logger() *slog.Logger {
	return c.logger
}
