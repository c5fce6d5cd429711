package services

import (
	"context"
	"log/slog"

	"github.com/reglet-dev/breachgate/internal/application/ports"
	"github.com/reglet-dev/breachgate/internal/domain/actions"
)

var _ ports.BreachCurator = (*ActionFilter)(nil)

// ActionFilter is the active curator: it decides which breach action a
// device may offer and strips the ones it may not.
//
// Oracles are queried on every call. A nil oracle, an oracle error or an
// invalid handle all resolve to the least privileged answer ("not
// breached", "not locked").
type ActionFilter struct {
	breach ports.BreachStateOracle
	locks  ports.LockPenaltyOracle
	logger *slog.Logger
}

// NewActionFilter creates the active curator.
func NewActionFilter(breach ports.BreachStateOracle, locks ports.LockPenaltyOracle, logger *slog.Logger) *ActionFilter {
	if logger == nil {
		logger = slog.Default()
	}
	return &ActionFilter{
		breach: breach,
		locks:  locks,
		logger: logger,
	}
}

// Active always reports true.
func (f *ActionFilter) Active() bool {
	return true
}

// ReplaceDefaultBreach strips the default breach from the list. The first
// matching rule wins:
//
//  1. device already breached: remove default breaches, no slot
//  2. subject locked by penalty at the device: remove every breach, no slot
//  3. otherwise: remove default breaches, slot opened iff one was removed
func (f *ActionFilter) ReplaceDefaultBreach(ctx context.Context, device *actions.Device, list *actions.List) bool {
	if !device.Valid() || list == nil {
		return false
	}

	if f.isBreached(ctx, device) {
		removed := actions.RemoveKind(list, actions.KindDefaultBreach)
		f.logger.Debug("device already breached", "device", device.ID, "removed", removed)
		return false
	}

	if f.isLocked(ctx, device) {
		removed := actions.PurgeBreachVariants(list)
		f.logger.Debug("breach suppressed by penalty lock", "device", device.ID, "removed", removed)
		return false
	}

	removed := actions.RemoveKind(list, actions.KindDefaultBreach)
	if removed > 0 {
		f.logger.Debug("replacement slot opened", "device", device.ID, "removed", removed)
	}
	return removed > 0
}

// PurgeIfAlreadyUnlocked strips every breach-type entry when the device
// is already breached, so an unlocked device never offers a breach.
func (f *ActionFilter) PurgeIfAlreadyUnlocked(ctx context.Context, device *actions.Device, list *actions.List) {
	if !device.Valid() || list == nil {
		return
	}
	if !f.isBreached(ctx, device) {
		return
	}
	removed := actions.PurgeBreachVariants(list)
	f.logger.Debug("purged breach actions of unlocked device", "device", device.ID, "removed", removed)
}

// PurgeAllBreachActions strips every breach-type entry.
func (f *ActionFilter) PurgeAllBreachActions(list *actions.List) {
	actions.PurgeBreachVariants(list)
}

// FlagAlternateBreachEntries marks alternate breaches for quickhack display.
func (f *ActionFilter) FlagAlternateBreachEntries(list actions.List) {
	actions.FlagAlternateBreachEntries(list)
}

func (f *ActionFilter) isBreached(ctx context.Context, device *actions.Device) bool {
	if f.breach == nil {
		return false
	}
	breached, err := f.breach.IsBreached(ctx, device)
	if err != nil {
		f.logger.Warn("breach state query failed, treating device as not breached", "device", device.ID, "error", err)
		return false
	}
	return breached
}

func (f *ActionFilter) isLocked(ctx context.Context, device *actions.Device) bool {
	if f.locks == nil {
		return false
	}
	subject, ok := actions.SubjectFromContext(ctx)
	if !ok {
		f.logger.Debug("no acting subject, skipping penalty lock query", "device", device.ID)
		return false
	}
	locked, err := f.locks.IsLocked(ctx, subject, device.Position)
	if err != nil {
		f.logger.Warn("penalty lock query failed, treating subject as unlocked",
			"device", device.ID, "subject", subject.ID, "error", err)
		return false
	}
	return locked
}
