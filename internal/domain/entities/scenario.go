// Package entities contains domain entities for the breachgate domain model.
// These are pure domain types with NO infrastructure dependencies.
package entities

import (
	"fmt"
	"slices"

	"github.com/reglet-dev/breachgate/internal/domain/actions"
	"github.com/reglet-dev/breachgate/internal/domain/values"
)

// Scenario is a recorded set of interactions to curate.
// This is the aggregate root of a scenario document.
//
// Invariants Enforced:
// - Scenario name is required
// - Interaction IDs are unique and well-formed
// - Every action has a known kind and a unique ID within its interaction
type Scenario struct {
	Metadata     ScenarioMetadata     `yaml:"scenario" json:"scenario"`
	Defaults     *InteractionDefaults `yaml:"defaults,omitempty" json:"defaults,omitempty"`
	Interactions []Interaction        `yaml:"interactions" json:"interactions"`
}

// ScenarioMetadata contains metadata about the scenario.
type ScenarioMetadata struct {
	Name        string `yaml:"name" json:"name"`
	Version     string `yaml:"version,omitempty" json:"version,omitempty"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
}

// InteractionDefaults are applied to interactions that leave a field unset.
type InteractionDefaults struct {
	Subject string   `yaml:"subject,omitempty" json:"subject,omitempty"`
	Tags    []string `yaml:"tags,omitempty" json:"tags,omitempty"`
}

// Interaction is one user interaction with a device: the raw action list
// plus the world state the oracles report at that moment.
type Interaction struct {
	ID          string           `yaml:"id" json:"id"`
	Description string           `yaml:"description,omitempty" json:"description,omitempty"`
	Tags        []string         `yaml:"tags,omitempty" json:"tags,omitempty"`
	Subject     string           `yaml:"subject,omitempty" json:"subject,omitempty"`
	Device      *actions.Device  `yaml:"device,omitempty" json:"device,omitempty"`
	Breached    bool             `yaml:"breached,omitempty" json:"breached,omitempty"`
	Locked      bool             `yaml:"locked,omitempty" json:"locked,omitempty"`
	Actions     []actions.Action `yaml:"actions" json:"actions"`
	Expect      *Expectation     `yaml:"expect,omitempty" json:"expect,omitempty"`
}

// Expectation describes the curated list an interaction should produce.
// Unset fields are not checked.
type Expectation struct {
	SlotOpened *bool          `yaml:"slot_opened,omitempty" json:"slot_opened,omitempty"`
	Kinds      []actions.Kind `yaml:"kinds,omitempty" json:"kinds,omitempty"`
	Flagged    []string       `yaml:"flagged,omitempty" json:"flagged,omitempty"`
}

// ===== SCENARIO AGGREGATE ROOT METHODS =====

// Validate validates the entire scenario.
func (s *Scenario) Validate() error {
	if s.Metadata.Name == "" {
		return fmt.Errorf("scenario name cannot be empty")
	}

	ids := make(map[string]bool, len(s.Interactions))
	for i := range s.Interactions {
		in := &s.Interactions[i]
		if err := in.Validate(); err != nil {
			return fmt.Errorf("interaction %d (%s): %w", i, in.ID, err)
		}
		if ids[in.ID] {
			return fmt.Errorf("duplicate interaction ID: %s", in.ID)
		}
		ids[in.ID] = true
	}
	return nil
}

// ApplyDefaults fills unset interaction fields from Defaults and assigns
// positional IDs to actions that have none.
func (s *Scenario) ApplyDefaults() {
	for i := range s.Interactions {
		in := &s.Interactions[i]

		if s.Defaults != nil {
			if in.Subject == "" {
				in.Subject = s.Defaults.Subject
			}
			for _, tag := range s.Defaults.Tags {
				if !slices.Contains(in.Tags, tag) {
					in.Tags = append(in.Tags, tag)
				}
			}
		}

		for j := range in.Actions {
			if in.Actions[j].ID == "" {
				in.Actions[j].ID = fmt.Sprintf("%s-%d", in.ID, j)
			}
		}
	}
}

// GetInteraction retrieves an interaction by ID.
func (s *Scenario) GetInteraction(id string) *Interaction {
	for i := range s.Interactions {
		if s.Interactions[i].ID == id {
			return &s.Interactions[i]
		}
	}
	return nil
}

// HasInteraction returns true if an interaction with the given ID exists.
func (s *Scenario) HasInteraction(id string) bool {
	return s.GetInteraction(id) != nil
}

// ===== INTERACTION ENTITY METHODS =====

// Validate checks the interaction's own invariants.
func (in *Interaction) Validate() error {
	if _, err := values.NewInteractionID(in.ID); err != nil {
		return err
	}

	actionIDs := make(map[string]bool, len(in.Actions))
	for j, a := range in.Actions {
		if err := a.Kind.Validate(); err != nil {
			return fmt.Errorf("action %d: %w", j, err)
		}
		if a.ID == "" {
			continue
		}
		if actionIDs[a.ID] {
			return fmt.Errorf("duplicate action ID: %s", a.ID)
		}
		actionIDs[a.ID] = true
	}

	if in.Expect != nil {
		for _, k := range in.Expect.Kinds {
			if err := k.Validate(); err != nil {
				return fmt.Errorf("expect: %w", err)
			}
		}
	}
	return nil
}

// BuildList returns a fresh action list for one curation pass. Every call
// returns new entries, so curating one list never affects another.
func (in *Interaction) BuildList() actions.List {
	list := make(actions.List, 0, len(in.Actions))
	for _, a := range in.Actions {
		cp := a
		list = append(list, &cp)
	}
	return list
}

// SubjectHandle returns the acting subject of the interaction.
func (in *Interaction) SubjectHandle() actions.Subject {
	return actions.Subject{ID: in.Subject}
}

// HasAnyTag returns true if the interaction has any of the given tags.
func (in *Interaction) HasAnyTag(tags []string) bool {
	for _, t := range tags {
		if slices.Contains(in.Tags, t) {
			return true
		}
	}
	return false
}
