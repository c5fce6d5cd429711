package memory

import (
	"context"
	"time"

	"github.com/reglet-dev/breachgate/internal/application/ports"
	"github.com/reglet-dev/breachgate/internal/domain/entities"
)

var _ ports.WorldSeeder = (*World)(nil)

// World owns the registries for one scenario run and seeds them from each
// interaction's declared state.
type World struct {
	Breaches *BreachRegistry
	Locks    *PenaltyLockRegistry
	now      func() time.Time
	lockFor  time.Duration
}

// NewWorld creates a world around the given registries. Seeded locks last
// lockFor from the time of seeding.
func NewWorld(breaches *BreachRegistry, locks *PenaltyLockRegistry, lockFor time.Duration) *World {
	return &World{
		Breaches: breaches,
		Locks:    locks,
		now:      locks.now,
		lockFor:  lockFor,
	}
}

// Seed implements ports.WorldSeeder.
func (w *World) Seed(ctx context.Context, in *entities.Interaction) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if in.Breached {
		w.Breaches.MarkBreached(in.Device)
	}
	if in.Locked && in.Device != nil {
		w.Locks.Lock(in.SubjectHandle(), in.Device.Position, w.now().Add(w.lockFor))
	}
	return nil
}

// Reset implements ports.WorldSeeder.
func (w *World) Reset() {
	w.Breaches.Reset()
	w.Locks.Reset()
}
