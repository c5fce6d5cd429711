// Package config provides infrastructure for loading scenario documents and
// runtime configuration.
package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/goccy/go-yaml"
	"github.com/reglet-dev/breachgate/internal/domain/entities"
)

// ScenarioLoader handles loading scenarios from YAML files.
type ScenarioLoader struct{}

// NewScenarioLoader creates a new scenario loader.
func NewScenarioLoader() *ScenarioLoader {
	return &ScenarioLoader{}
}

// LoadScenario loads and parses a scenario from a YAML file.
// It applies interaction defaults and validates the scenario structure.
func (l *ScenarioLoader) LoadScenario(path string) (*entities.Scenario, error) {
	// os.OpenRoot keeps the read inside the scenario's directory.
	root, err := os.OpenRoot(filepath.Dir(path))
	if err != nil {
		return nil, fmt.Errorf("failed to open scenario directory: %w", err)
	}
	defer func() {
		_ = root.Close()
	}()

	file, err := root.Open(filepath.Base(path))
	if err != nil {
		return nil, fmt.Errorf("failed to open scenario: %w", err)
	}
	defer func() {
		_ = file.Close()
	}()

	return l.LoadScenarioFromReader(file)
}

// LoadScenarioFromReader loads a scenario from an io.Reader. Unknown fields
// are rejected so typos in expectations do not silently pass.
func (l *ScenarioLoader) LoadScenarioFromReader(r io.Reader) (*entities.Scenario, error) {
	var scenario entities.Scenario

	decoder := yaml.NewDecoder(r, yaml.DisallowUnknownField())
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to decode scenario YAML: %w", err)
	}

	scenario.ApplyDefaults()

	if err := scenario.Validate(); err != nil {
		return nil, fmt.Errorf("scenario validation failed: %w", err)
	}

	return &scenario, nil
}
