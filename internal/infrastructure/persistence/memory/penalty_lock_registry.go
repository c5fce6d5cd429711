package memory

import (
	"context"
	"sync"
	"time"

	"github.com/reglet-dev/breachgate/internal/application/ports"
	"github.com/reglet-dev/breachgate/internal/domain/actions"
)

var _ ports.LockPenaltyOracle = (*PenaltyLockRegistry)(nil)

// PenaltyLockRegistry tracks penalty locks placed on subjects after a failed
// breach. A lock covers every position within radius of where it was placed
// until it expires.
type PenaltyLockRegistry struct {
	now     func() time.Time
	locks   map[string]penaltyLock
	radius  float64
	mu      sync.RWMutex
	enabled bool
}

type penaltyLock struct {
	until  time.Time
	origin actions.Position
}

// PenaltyOption configures a PenaltyLockRegistry.
type PenaltyOption func(*PenaltyLockRegistry)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) PenaltyOption {
	return func(r *PenaltyLockRegistry) {
		r.now = now
	}
}

// NewPenaltyLockRegistry creates a registry. When enabled is false every
// query reports not locked.
func NewPenaltyLockRegistry(enabled bool, radius float64, opts ...PenaltyOption) *PenaltyLockRegistry {
	r := &PenaltyLockRegistry{
		now:     time.Now,
		locks:   make(map[string]penaltyLock),
		radius:  radius,
		enabled: enabled,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Lock places a penalty lock on subject around origin until the given time.
// A newer lock replaces an older one.
func (r *PenaltyLockRegistry) Lock(subject actions.Subject, origin actions.Position, until time.Time) {
	if !subject.Valid() {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.locks[subject.ID] = penaltyLock{until: until, origin: origin}
}

// IsLocked implements ports.LockPenaltyOracle.
func (r *PenaltyLockRegistry) IsLocked(_ context.Context, subject actions.Subject, pos actions.Position) (bool, error) {
	if !r.enabled || !subject.Valid() {
		return false, nil
	}

	r.mu.RLock()
	lock, ok := r.locks[subject.ID]
	r.mu.RUnlock()
	if !ok {
		return false, nil
	}

	if !r.now().Before(lock.until) {
		return false, nil
	}
	return lock.origin.DistanceSquared(pos) <= r.radius*r.radius, nil
}

// Reset lifts every lock.
func (r *PenaltyLockRegistry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	clear(r.locks)
}
