package services

import (
	"context"
	"errors"

	"github.com/reglet-dev/breachgate/internal/domain/actions"
	"github.com/reglet-dev/breachgate/internal/domain/entities"
)

var errOracle = errors.New("oracle unavailable")

type mockBreachOracle struct {
	breached bool
	err      error
	calls    int
}

func (m *mockBreachOracle) IsBreached(_ context.Context, _ *actions.Device) (bool, error) {
	m.calls++
	return m.breached, m.err
}

type mockLockOracle struct {
	locked      bool
	err         error
	calls       int
	lastSubject actions.Subject
	lastPos     actions.Position
}

func (m *mockLockOracle) IsLocked(_ context.Context, subject actions.Subject, pos actions.Position) (bool, error) {
	m.calls++
	m.lastSubject = subject
	m.lastPos = pos
	return m.locked, m.err
}

type mockConstructor struct {
	err   error
	calls int
	skip  bool
}

func (m *mockConstructor) Construct(_ context.Context, device *actions.Device) (*actions.Action, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	if m.skip {
		return nil, nil
	}
	return &actions.Action{ID: "alt-" + device.ID, Kind: actions.KindAlternateBreach}, nil
}

type mockGate struct {
	enabled bool
	reason  string
}

func (g mockGate) Enabled() bool  { return g.enabled }
func (g mockGate) Reason() string { return g.reason }

type mockLoader struct {
	scenario *entities.Scenario
	err      error
}

func (m *mockLoader) LoadScenario(string) (*entities.Scenario, error) {
	return m.scenario, m.err
}

type mockValidator struct {
	err error
}

func (m *mockValidator) Validate(*entities.Scenario) error { return m.err }

// mockWorld answers the oracles from the interaction flags it was seeded with.
type mockWorld struct {
	current *entities.Interaction
	seedErr error
	resets  int
}

func (w *mockWorld) Seed(_ context.Context, in *entities.Interaction) error {
	if w.seedErr != nil {
		return w.seedErr
	}
	w.current = in
	return nil
}

func (w *mockWorld) Reset() {
	w.resets++
	w.current = nil
}

func (w *mockWorld) IsBreached(_ context.Context, _ *actions.Device) (bool, error) {
	return w.current != nil && w.current.Breached, nil
}

func (w *mockWorld) IsLocked(_ context.Context, _ actions.Subject, _ actions.Position) (bool, error) {
	return w.current != nil && w.current.Locked, nil
}

func ctxWithSubject() context.Context {
	return actions.WithSubject(context.Background(), actions.Subject{ID: "v"})
}

func list(kinds ...actions.Kind) actions.List {
	l := make(actions.List, 0, len(kinds))
	for i, k := range kinds {
		l = append(l, &actions.Action{ID: string(rune('a' + i)), Kind: k})
	}
	return l
}

var door = &actions.Device{ID: "door-1", Position: actions.Position{X: 1, Y: 2, Z: 3}}
