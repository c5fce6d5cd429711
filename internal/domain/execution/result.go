// Package execution provides domain models for scenario run results.
package execution

import (
	"sort"
	"sync"
	"time"

	"github.com/reglet-dev/breachgate/internal/domain/actions"
	"github.com/reglet-dev/breachgate/internal/domain/values"
)

// RunResult represents the complete result of running one scenario.
type RunResult struct {
	StartTime         time.Time           `json:"start_time" yaml:"start_time"`
	EndTime           time.Time           `json:"end_time" yaml:"end_time"`
	BreachgateVersion string              `json:"breachgate_version,omitempty" yaml:"breachgate_version,omitempty"`
	ScenarioName      string              `json:"scenario_name" yaml:"scenario_name"`
	ScenarioVersion   string              `json:"scenario_version,omitempty" yaml:"scenario_version,omitempty"`
	ScenarioPath      string              `json:"scenario_path,omitempty" yaml:"scenario_path,omitempty"`
	ExtensionActive   bool                `json:"extension_active" yaml:"extension_active"`
	Interactions      []InteractionResult `json:"interactions" yaml:"interactions"`
	Summary           ResultSummary       `json:"summary" yaml:"summary"`
	Duration          time.Duration       `json:"duration_ms" yaml:"duration_ms"`
	mu                sync.Mutex
	RunID             values.RunID `json:"run_id" yaml:"run_id"`
}

// InteractionResult is the outcome of curating one interaction's list.
type InteractionResult struct {
	ID          string           `json:"id" yaml:"id"`
	Description string           `json:"description,omitempty" yaml:"description,omitempty"`
	DeviceID    string           `json:"device_id,omitempty" yaml:"device_id,omitempty"`
	Subject     string           `json:"subject,omitempty" yaml:"subject,omitempty"`
	Status      values.Status    `json:"status" yaml:"status"`
	Message     string           `json:"message,omitempty" yaml:"message,omitempty"`
	SkipReason  string           `json:"skip_reason,omitempty" yaml:"skip_reason,omitempty"`
	Tags        []string         `json:"tags,omitempty" yaml:"tags,omitempty"`
	SlotOpened  bool             `json:"slot_opened" yaml:"slot_opened"`
	InsertedID  string           `json:"inserted_id,omitempty" yaml:"inserted_id,omitempty"`
	Before      []actions.Kind   `json:"before" yaml:"before"`
	Actions     []actions.Action `json:"actions" yaml:"actions"`
	Mismatches  []string         `json:"mismatches,omitempty" yaml:"mismatches,omitempty"`
	Index       int              `json:"index" yaml:"index"`
	Duration    time.Duration    `json:"duration_ms" yaml:"duration_ms"`
}

// ResultSummary provides aggregate statistics about the run.
type ResultSummary struct {
	TotalInteractions   int `json:"total_interactions" yaml:"total_interactions"`
	PassedInteractions  int `json:"passed_interactions" yaml:"passed_interactions"`
	FailedInteractions  int `json:"failed_interactions" yaml:"failed_interactions"`
	ErrorInteractions   int `json:"error_interactions" yaml:"error_interactions"`
	SkippedInteractions int `json:"skipped_interactions" yaml:"skipped_interactions"`
	SlotsOpened         int `json:"slots_opened" yaml:"slots_opened"`
	Replacements        int `json:"replacements" yaml:"replacements"`
}

// NewRunResult creates a new run result.
func NewRunResult(scenarioName, scenarioVersion string) *RunResult {
	return NewRunResultWithID(values.NewRunID(), scenarioName, scenarioVersion)
}

// NewRunResultWithID creates a new run result with a specific ID.
func NewRunResultWithID(id values.RunID, scenarioName, scenarioVersion string) *RunResult {
	return &RunResult{
		RunID:           id,
		ScenarioName:    scenarioName,
		ScenarioVersion: scenarioVersion,
		StartTime:       time.Now(),
		Interactions:    make([]InteractionResult, 0),
	}
}

// GetID returns the run ID.
func (r *RunResult) GetID() values.RunID {
	return r.RunID
}

// AddInteractionResult adds an interaction result.
// Safe for concurrent calls.
func (r *RunResult) AddInteractionResult(ir InteractionResult) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Interactions = append(r.Interactions, ir)
}

// GetInteractionResultByID returns a pointer to the interaction result with
// the given ID, or nil if not found.
func (r *RunResult) GetInteractionResultByID(id string) *InteractionResult {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.Interactions {
		if r.Interactions[i].ID == id {
			return &r.Interactions[i]
		}
	}
	return nil
}

// Status returns the aggregated status of the run: the highest-precedence
// status among non-skipped interactions, or pass when nothing ran.
func (r *RunResult) Status() values.Status {
	status := values.StatusPass
	for _, ir := range r.Interactions {
		if ir.Status.IsSkipped() {
			continue
		}
		status = status.Worst(ir.Status)
	}
	return status
}

// Finalize completes the run result and calculates the summary.
// Interactions are sorted by their definition order for deterministic output.
func (r *RunResult) Finalize() {
	r.EndTime = time.Now()
	r.Duration = r.EndTime.Sub(r.StartTime)

	sort.Slice(r.Interactions, func(i, j int) bool {
		return r.Interactions[i].Index < r.Interactions[j].Index
	})

	r.calculateSummary()
}

func (r *RunResult) calculateSummary() {
	r.Summary = ResultSummary{
		TotalInteractions: len(r.Interactions),
	}

	for _, ir := range r.Interactions {
		switch ir.Status {
		case values.StatusPass:
			r.Summary.PassedInteractions++
		case values.StatusFail:
			r.Summary.FailedInteractions++
		case values.StatusError:
			r.Summary.ErrorInteractions++
		case values.StatusSkipped:
			r.Summary.SkippedInteractions++
		}
		if ir.SlotOpened {
			r.Summary.SlotsOpened++
		}
		if ir.InsertedID != "" {
			r.Summary.Replacements++
		}
	}
}
