package services

import (
	"context"
	"log/slog"

	apperrors "github.com/reglet-dev/breachgate/internal/application/errors"
	"github.com/reglet-dev/breachgate/internal/application/ports"
	"github.com/reglet-dev/breachgate/internal/domain/actions"
)

// Outcome reports what one curation pass did to a list.
type Outcome struct {
	// SlotOpened is true when the default breach was removed and a
	// replacement may be inserted.
	SlotOpened bool

	// Inserted is the replacement action appended to the list, if any.
	Inserted *actions.Action
}

// CurateActionsUseCase runs the full action-list pipeline for one device:
// filter, insert the replacement when a slot opened, purge breaches of an
// unlocked device and flag alternate breaches for the UI.
type CurateActionsUseCase struct {
	curator     ports.BreachCurator
	constructor ports.ActionConstructor
	logger      *slog.Logger
}

// NewCurateActionsUseCase creates a new curate use case. A nil constructor
// means replacement slots are reported but never filled.
func NewCurateActionsUseCase(curator ports.BreachCurator, constructor ports.ActionConstructor, logger *slog.Logger) *CurateActionsUseCase {
	if logger == nil {
		logger = slog.Default()
	}
	if curator == nil {
		curator = InertCurator{}
	}
	return &CurateActionsUseCase{
		curator:     curator,
		constructor: constructor,
		logger:      logger,
	}
}

// Curator returns the curator this use case drives.
func (uc *CurateActionsUseCase) Curator() ports.BreachCurator {
	return uc.curator
}

// Curate transforms list in place. On a constructor failure nothing is
// inserted, the purge and marking steps still run and a CurationError is
// returned.
func (uc *CurateActionsUseCase) Curate(ctx context.Context, device *actions.Device, list *actions.List) (Outcome, error) {
	var out Outcome
	var curateErr error

	out.SlotOpened = uc.curator.ReplaceDefaultBreach(ctx, device, list)

	if out.SlotOpened && uc.constructor != nil {
		replacement, err := uc.constructor.Construct(ctx, device)
		switch {
		case err != nil:
			curateErr = apperrors.NewCurationError(device.ID, "construct replacement breach", err)
		case replacement != nil:
			*list = append(*list, replacement)
			out.Inserted = replacement
			uc.logger.Debug("inserted replacement breach", "device", device.ID, "action", replacement.ID)
		}
	}

	uc.curator.PurgeIfAlreadyUnlocked(ctx, device, list)
	uc.curator.FlagAlternateBreachEntries(*list)

	return out, curateErr
}
