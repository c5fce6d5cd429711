package services

import (
	"context"
	"errors"
	"testing"

	"github.com/reglet-dev/breachgate/internal/application/dto"
	"github.com/reglet-dev/breachgate/internal/domain/actions"
	"github.com/reglet-dev/breachgate/internal/domain/entities"
	"github.com/reglet-dev/breachgate/internal/domain/values"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func boolPtr(b bool) *bool { return &b }

func lobbyScenario() *entities.Scenario {
	return &entities.Scenario{
		Metadata: entities.ScenarioMetadata{Name: "lobby", Version: "1"},
		Interactions: []entities.Interaction{
			{
				ID:      "fresh-door",
				Tags:    []string{"door"},
				Subject: "v",
				Device:  &actions.Device{ID: "door-1"},
				Actions: []actions.Action{{ID: "b", Kind: def}, {ID: "o", Kind: other}},
				Expect: &entities.Expectation{
					SlotOpened: boolPtr(true),
					Kinds:      []actions.Kind{other, alt},
					Flagged:    []string{"alt-door-1"},
				},
			},
			{
				ID:       "breached-door",
				Tags:     []string{"door"},
				Subject:  "v",
				Device:   &actions.Device{ID: "door-2"},
				Breached: true,
				Actions:  []actions.Action{{ID: "b", Kind: def}, {ID: "o", Kind: other}},
				Expect:   &entities.Expectation{SlotOpened: boolPtr(false), Kinds: []actions.Kind{other}},
			},
			{
				ID:      "locked-camera",
				Tags:    []string{"camera"},
				Subject: "v",
				Device:  &actions.Device{ID: "cam-1"},
				Locked:  true,
				Actions: []actions.Action{{ID: "a", Kind: alt}},
				Expect:  &entities.Expectation{Kinds: []actions.Kind{}},
			},
			{
				ID:      "wrong-expectation",
				Tags:    []string{"camera"},
				Subject: "v",
				Device:  &actions.Device{ID: "cam-2"},
				Actions: []actions.Action{{ID: "b", Kind: def}},
				Expect:  &entities.Expectation{SlotOpened: boolPtr(false)},
			},
		},
	}
}

func newTestUseCase(scenario *entities.Scenario, gate mockGate, world *mockWorld, ctor *mockConstructor) *RunScenarioUseCase {
	factory := func() *Session {
		curator := NewCurator(gate, world, world, nil)
		return &Session{World: world, Curate: NewCurateActionsUseCase(curator, ctor, nil)}
	}
	return NewRunScenarioUseCase(&mockLoader{scenario: scenario}, &mockValidator{}, gate, factory, "test", nil)
}

func TestRunScenario_Execute(t *testing.T) {
	world := &mockWorld{}
	uc := newTestUseCase(lobbyScenario(), mockGate{enabled: true, reason: "enabled"}, world, &mockConstructor{})

	resp, err := uc.Execute(context.Background(), dto.RunScenarioRequest{ScenarioPath: "lobby.yaml"})
	require.NoError(t, err)

	res := resp.RunResult
	require.Len(t, res.Interactions, 4)
	assert.True(t, res.ExtensionActive)
	assert.Equal(t, "test", res.BreachgateVersion)

	assert.Equal(t, values.StatusPass, res.Interactions[0].Status, res.Interactions[0].Mismatches)
	assert.Equal(t, "alt-door-1", res.Interactions[0].InsertedID)
	assert.Equal(t, []actions.Kind{def, other}, res.Interactions[0].Before)

	assert.Equal(t, values.StatusPass, res.Interactions[1].Status, res.Interactions[1].Mismatches)
	assert.Equal(t, values.StatusPass, res.Interactions[2].Status, res.Interactions[2].Mismatches)

	assert.Equal(t, values.StatusFail, res.Interactions[3].Status)
	require.Len(t, res.Interactions[3].Mismatches, 1)
	assert.Contains(t, res.Interactions[3].Mismatches[0], "slot_opened")

	assert.Equal(t, 3, res.Summary.PassedInteractions)
	assert.Equal(t, 1, res.Summary.FailedInteractions)
	assert.Equal(t, values.StatusFail, res.Status())
	assert.Equal(t, 4, world.resets)
	assert.Empty(t, resp.Diagnostics.Warnings)
}

func TestRunScenario_DisabledGateLeavesListsUntouched(t *testing.T) {
	scenario := lobbyScenario()
	ctor := &mockConstructor{}
	uc := newTestUseCase(scenario, mockGate{reason: "extension disabled"}, &mockWorld{}, ctor)

	resp, err := uc.Execute(context.Background(), dto.RunScenarioRequest{})
	require.NoError(t, err)

	for i, ir := range resp.RunResult.Interactions {
		assert.Equal(t, scenario.Interactions[i].Actions, ir.Actions, ir.ID)
		assert.False(t, ir.SlotOpened)
	}
	assert.False(t, resp.RunResult.ExtensionActive)
	assert.Zero(t, ctor.calls)
	require.Len(t, resp.Diagnostics.Warnings, 1)
	assert.Contains(t, resp.Diagnostics.Warnings[0], "extension disabled")
}

func TestRunScenario_Filters(t *testing.T) {
	uc := newTestUseCase(lobbyScenario(), mockGate{enabled: true}, &mockWorld{}, &mockConstructor{})

	resp, err := uc.Execute(context.Background(), dto.RunScenarioRequest{
		Filters: dto.FilterOptions{IncludeTags: []string{"door"}},
	})
	require.NoError(t, err)

	sum := resp.RunResult.Summary
	assert.Equal(t, 2, sum.PassedInteractions)
	assert.Equal(t, 2, sum.SkippedInteractions)
	assert.Equal(t, "excluded by --tags filter", resp.RunResult.Interactions[2].SkipReason)
	assert.Equal(t, values.StatusPass, resp.RunResult.Status())
}

func TestRunScenario_FilterExpression(t *testing.T) {
	uc := newTestUseCase(lobbyScenario(), mockGate{enabled: true}, &mockWorld{}, &mockConstructor{})

	resp, err := uc.Execute(context.Background(), dto.RunScenarioRequest{
		Filters: dto.FilterOptions{FilterExpression: `locked || breached`},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, resp.RunResult.Summary.PassedInteractions)
	assert.Equal(t, 2, resp.RunResult.Summary.SkippedInteractions)
}

func TestRunScenario_InvalidFilters(t *testing.T) {
	tests := []struct {
		name   string
		opts   dto.FilterOptions
		errMsg string
	}{
		{"unknown include", dto.FilterOptions{IncludeInteractionIDs: []string{"nope"}}, "--interaction references non-existent interaction: nope"},
		{"unknown exclude", dto.FilterOptions{ExcludeInteractionIDs: []string{"nope"}}, "--exclude-interaction references non-existent interaction: nope"},
		{"bad expression", dto.FilterOptions{FilterExpression: "invalid syntax (("}, "invalid --filter expression"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := newTestUseCase(lobbyScenario(), mockGate{enabled: true}, &mockWorld{}, &mockConstructor{})
			_, err := uc.Execute(context.Background(), dto.RunScenarioRequest{Filters: tt.opts})
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestRunScenario_ErrorsBecomeErrorStatus(t *testing.T) {
	t.Run("seed failure", func(t *testing.T) {
		uc := newTestUseCase(lobbyScenario(), mockGate{enabled: true}, &mockWorld{seedErr: errors.New("no world")}, &mockConstructor{})
		resp, err := uc.Execute(context.Background(), dto.RunScenarioRequest{})
		require.NoError(t, err)
		assert.Equal(t, 4, resp.RunResult.Summary.ErrorInteractions)
	})

	t.Run("constructor failure", func(t *testing.T) {
		uc := newTestUseCase(lobbyScenario(), mockGate{enabled: true}, &mockWorld{}, &mockConstructor{err: errOracle})
		resp, err := uc.Execute(context.Background(), dto.RunScenarioRequest{})
		require.NoError(t, err)

		first := resp.RunResult.Interactions[0]
		assert.Equal(t, values.StatusError, first.Status)
		assert.Contains(t, first.Message, "construct replacement breach")
	})
}

func TestRunScenario_LoadAndValidationFailures(t *testing.T) {
	factory := func() *Session { return &Session{World: &mockWorld{}, Curate: NewCurateActionsUseCase(nil, nil, nil)} }

	uc := NewRunScenarioUseCase(&mockLoader{err: errors.New("missing")}, nil, nil, factory, "", nil)
	_, err := uc.Execute(context.Background(), dto.RunScenarioRequest{})
	assert.ErrorContains(t, err, "failed to load scenario")

	uc = NewRunScenarioUseCase(&mockLoader{scenario: lobbyScenario()}, &mockValidator{err: errors.New("bad")}, nil, factory, "", nil)
	_, err = uc.Execute(context.Background(), dto.RunScenarioRequest{})
	assert.ErrorContains(t, err, "scenario validation failed")
}

func TestRunScenario_CanceledContext(t *testing.T) {
	uc := newTestUseCase(lobbyScenario(), mockGate{enabled: true}, &mockWorld{}, &mockConstructor{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := uc.Execute(ctx, dto.RunScenarioRequest{})
	assert.ErrorIs(t, err, context.Canceled)
}
