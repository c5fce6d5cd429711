package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-yaml"
	"github.com/reglet-dev/breachgate/internal/application/ports"
	"github.com/reglet-dev/breachgate/internal/domain/actions"
	"github.com/reglet-dev/breachgate/internal/domain/execution"
	"github.com/reglet-dev/breachgate/internal/domain/values"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// createTestResult creates a sample run result with one interaction per status.
func createTestResult() *execution.RunResult {
	result := execution.NewRunResult("lobby", "1.0.0")
	result.BreachgateVersion = "0.1.0"
	result.ExtensionActive = true

	result.AddInteractionResult(execution.InteractionResult{
		ID:          "front-door",
		Description: "Fresh door opens a slot",
		DeviceID:    "door-1",
		Tags:        []string{"door"},
		Status:      values.StatusPass,
		SlotOpened:  true,
		InsertedID:  "door-1-alt",
		Before:      []actions.Kind{actions.KindDefaultBreach, actions.KindOther},
		Actions: []actions.Action{
			{ID: "b", Kind: actions.KindOther},
			{ID: "door-1-alt", Kind: actions.KindAlternateBreach, QuickhackDisplay: true},
		},
		Index:    0,
		Duration: 2 * time.Millisecond,
	})
	result.AddInteractionResult(execution.InteractionResult{
		ID:         "camera",
		DeviceID:   "cam-1",
		Status:     values.StatusFail,
		Message:    "1 expectation(s) not met",
		Mismatches: []string{"slot_opened: expected true, got false"},
		Before:     []actions.Kind{actions.KindAlternateBreach},
		Actions:    []actions.Action{},
		Index:      1,
	})
	result.AddInteractionResult(execution.InteractionResult{
		ID:      "turret",
		Status:  values.StatusError,
		Message: "curation failed for device turret-1: construct replacement breach",
		Index:   2,
	})
	result.AddInteractionResult(execution.InteractionResult{
		ID:         "vending",
		Status:     values.StatusSkipped,
		SkipReason: "excluded by --tags filter",
		Index:      3,
	})

	result.Finalize()
	return result
}

func TestTableFormatter_Format(t *testing.T) {
	var buf bytes.Buffer
	formatter := NewTableFormatter(&buf)
	formatter.EnableColor = false

	require.NoError(t, formatter.Format(createTestResult()))
	out := buf.String()

	assert.Contains(t, out, "Scenario: lobby (v1.0.0)")
	assert.Contains(t, out, "Extension: active")
	assert.Contains(t, out, "✓ front-door (device door-1)")
	assert.Contains(t, out, "Before: default_breach, other")
	assert.Contains(t, out, "After:  other, alternate_breach*")
	assert.Contains(t, out, "Slot: opened, inserted door-1-alt")
	assert.Contains(t, out, "✗ camera")
	assert.Contains(t, out, "slot_opened: expected true, got false")
	assert.Contains(t, out, "After:  (none)")
	assert.Contains(t, out, "Skip Reason: excluded by --tags filter")
	assert.Contains(t, out, "Interactions: 4 total")
	assert.Contains(t, out, "Replacements: 1")
	assert.NotContains(t, out, "\033[")
}

func TestTableFormatter_Colors(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewTableFormatter(&buf).Format(createTestResult()))
	assert.Contains(t, buf.String(), "\033[32m")
}

func TestTableFormatter_Empty(t *testing.T) {
	var buf bytes.Buffer
	formatter := NewTableFormatter(&buf)
	formatter.EnableColor = false

	result := execution.NewRunResult("empty", "")
	result.Finalize()
	require.NoError(t, formatter.Format(result))

	assert.Contains(t, buf.String(), "No interactions curated.")
	assert.Contains(t, buf.String(), "Extension: inert")
}

func TestJSONFormatter_Format_Indented(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewJSONFormatter(&buf, true).Format(createTestResult()))

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))

	assert.Equal(t, "lobby", decoded["scenario_name"])
	assert.Equal(t, true, decoded["extension_active"])
	assert.Contains(t, buf.String(), "\n  ")

	interactions := decoded["interactions"].([]interface{})
	require.Len(t, interactions, 4)
	first := interactions[0].(map[string]interface{})
	assert.Equal(t, "front-door", first["id"])
	assert.Equal(t, "pass", first["status"])
	assert.Equal(t, true, first["slot_opened"])
}

func TestJSONFormatter_Format_Compact(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewJSONFormatter(&buf, false).Format(createTestResult()))

	assert.Equal(t, 1, strings.Count(buf.String(), "\n"))
	assert.True(t, json.Valid(buf.Bytes()))
}

func TestYAMLFormatter_Format(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewYAMLFormatter(&buf).Format(createTestResult()))

	var decoded map[string]interface{}
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "lobby", decoded["scenario_name"])

	summary := decoded["summary"].(map[string]interface{})
	assert.EqualValues(t, 4, summary["total_interactions"])
	assert.EqualValues(t, 1, summary["slots_opened"])
}

func TestAllFormatters_EmptyResult(t *testing.T) {
	result := execution.NewRunResult("empty", "")
	result.Finalize()

	for _, format := range NewFormatterFactory().SupportedFormats() {
		t.Run(format, func(t *testing.T) {
			var buf bytes.Buffer
			formatter, err := NewFormatterFactory().Create(format, &buf, ports.FormatterOptions{})
			require.NoError(t, err)
			require.NoError(t, formatter.Format(result))
			assert.NotEmpty(t, buf.String())
		})
	}
}
