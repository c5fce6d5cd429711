// Package validation checks scenario documents against the embedded JSON
// Schema.
package validation

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/reglet-dev/breachgate/internal/application/ports"
	"github.com/reglet-dev/breachgate/internal/domain/entities"
	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schema/scenario.schema.json
var scenarioSchema []byte

const schemaURL = "scenario.schema.json"

var _ ports.ScenarioValidator = (*ScenarioValidator)(nil)

// ScenarioValidator validates scenarios against the scenario JSON Schema.
type ScenarioValidator struct {
	schema *jsonschema.Schema
}

// NewScenarioValidator compiles the embedded schema.
func NewScenarioValidator() (*ScenarioValidator, error) {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020

	if err := compiler.AddResource(schemaURL, bytes.NewReader(scenarioSchema)); err != nil {
		return nil, fmt.Errorf("failed to add scenario schema resource: %w", err)
	}
	schema, err := compiler.Compile(schemaURL)
	if err != nil {
		return nil, fmt.Errorf("failed to compile scenario schema: %w", err)
	}
	return &ScenarioValidator{schema: schema}, nil
}

// Validate checks the scenario's document shape. The scenario is
// re-encoded through its JSON tags so the schema sees the same field names
// as the YAML file.
func (v *ScenarioValidator) Validate(scenario *entities.Scenario) error {
	if scenario == nil {
		return fmt.Errorf("scenario is nil")
	}

	data, err := json.Marshal(scenario)
	if err != nil {
		return fmt.Errorf("failed to encode scenario: %w", err)
	}
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("failed to decode scenario document: %w", err)
	}

	if err := v.schema.Validate(doc); err != nil {
		if validationErr, ok := err.(*jsonschema.ValidationError); ok {
			return formatSchemaValidationError(validationErr)
		}
		return fmt.Errorf("scenario validation failed: %w", err)
	}
	return nil
}

// formatSchemaValidationError flattens a JSON Schema validation error tree
// into one readable message.
func formatSchemaValidationError(err *jsonschema.ValidationError) error {
	var messages []string

	var collect func(*jsonschema.ValidationError)
	collect = func(e *jsonschema.ValidationError) {
		if e.Message != "" && len(e.Causes) == 0 {
			location := e.InstanceLocation
			if location == "" {
				location = "(root)"
			}
			messages = append(messages, fmt.Sprintf("%s: %s", location, e.Message))
		}
		for _, cause := range e.Causes {
			collect(cause)
		}
	}
	collect(err)

	if len(messages) == 0 {
		return fmt.Errorf("scenario validation failed")
	}
	return fmt.Errorf("scenario validation failed:\n    - %s", strings.Join(messages, "\n    - "))
}
