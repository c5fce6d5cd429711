package services

import (
	"context"

	"github.com/reglet-dev/breachgate/internal/application/ports"
	"github.com/reglet-dev/breachgate/internal/domain/actions"
)

var _ ports.BreachCurator = InertCurator{}

// InertCurator is used when the extension is unavailable. Every method
// leaves its arguments untouched and reports that nothing happened, so the
// action pipeline behaves exactly like the unmodified baseline.
type InertCurator struct{}

// Active always reports false.
func (InertCurator) Active() bool { return false }

// ReplaceDefaultBreach never opens a slot.
func (InertCurator) ReplaceDefaultBreach(context.Context, *actions.Device, *actions.List) bool {
	return false
}

// PurgeIfAlreadyUnlocked does nothing.
func (InertCurator) PurgeIfAlreadyUnlocked(context.Context, *actions.Device, *actions.List) {}

// PurgeAllBreachActions does nothing.
func (InertCurator) PurgeAllBreachActions(*actions.List) {}

// FlagAlternateBreachEntries does nothing.
func (InertCurator) FlagAlternateBreachEntries(actions.List) {}
