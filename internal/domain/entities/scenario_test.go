package entities

import (
	"testing"

	"github.com/reglet-dev/breachgate/internal/domain/actions"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validScenario() *Scenario {
	return &Scenario{
		Metadata: ScenarioMetadata{Name: "lobby"},
		Interactions: []Interaction{
			{
				ID:     "door-01",
				Device: &actions.Device{ID: "door-1"},
				Actions: []actions.Action{
					{ID: "b", Kind: actions.KindDefaultBreach},
					{ID: "o", Kind: actions.KindOther},
				},
			},
		},
	}
}

func TestScenario_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(s *Scenario)
		wantErr string
	}{
		{"valid", func(*Scenario) {}, ""},
		{"missing name", func(s *Scenario) { s.Metadata.Name = "" }, "scenario name cannot be empty"},
		{"bad interaction id", func(s *Scenario) { s.Interactions[0].ID = "a b" }, "must contain only"},
		{"duplicate interaction", func(s *Scenario) {
			s.Interactions = append(s.Interactions, s.Interactions[0])
		}, "duplicate interaction ID: door-01"},
		{"unknown kind", func(s *Scenario) { s.Interactions[0].Actions[0].Kind = "ping" }, "invalid action kind"},
		{"duplicate action", func(s *Scenario) { s.Interactions[0].Actions[1].ID = "b" }, "duplicate action ID: b"},
		{"unknown expected kind", func(s *Scenario) {
			s.Interactions[0].Expect = &Expectation{Kinds: []actions.Kind{"nope"}}
		}, "expect: invalid action kind"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := validScenario()
			tt.mutate(s)
			err := s.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestScenario_ApplyDefaults(t *testing.T) {
	s := validScenario()
	s.Defaults = &InteractionDefaults{Subject: "v", Tags: []string{"lobby"}}
	s.Interactions[0].Tags = []string{"door", "lobby"}
	s.Interactions[0].Actions = append(s.Interactions[0].Actions, actions.Action{Kind: actions.KindOther})

	s.ApplyDefaults()

	in := s.Interactions[0]
	assert.Equal(t, "v", in.Subject)
	assert.Equal(t, []string{"door", "lobby"}, in.Tags)
	assert.Equal(t, "door-01-2", in.Actions[2].ID)
}

func TestInteraction_BuildListReturnsFreshEntries(t *testing.T) {
	in := validScenario().Interactions[0]

	first := in.BuildList()
	first[0].QuickhackDisplay = true

	second := in.BuildList()
	require.Len(t, second, 2)
	assert.False(t, second[0].QuickhackDisplay)
	assert.False(t, in.Actions[0].QuickhackDisplay)
}

func TestScenario_GetInteraction(t *testing.T) {
	s := validScenario()
	assert.True(t, s.HasInteraction("door-01"))
	assert.False(t, s.HasInteraction("nope"))
	assert.Nil(t, s.GetInteraction("nope"))
}

func TestInteraction_HasAnyTag(t *testing.T) {
	in := Interaction{Tags: []string{"door", "lobby"}}
	assert.True(t, in.HasAnyTag([]string{"camera", "lobby"}))
	assert.False(t, in.HasAnyTag([]string{"camera"}))
	assert.False(t, in.HasAnyTag(nil))
}
