// Package memory provides in-memory implementations of the world-state ports.
package memory

import (
	"context"
	"sync"

	"github.com/reglet-dev/breachgate/internal/application/ports"
	"github.com/reglet-dev/breachgate/internal/domain/actions"
)

var _ ports.BreachStateOracle = (*BreachRegistry)(nil)

// BreachRegistry records which devices have already been breached.
type BreachRegistry struct {
	breached map[string]struct{}
	mu       sync.RWMutex
}

// NewBreachRegistry creates an empty registry.
func NewBreachRegistry() *BreachRegistry {
	return &BreachRegistry{breached: make(map[string]struct{})}
}

// MarkBreached records a successful breach of the device. Invalid devices
// are ignored.
func (r *BreachRegistry) MarkBreached(device *actions.Device) {
	if !device.Valid() {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.breached[device.ID] = struct{}{}
}

// IsBreached implements ports.BreachStateOracle.
func (r *BreachRegistry) IsBreached(_ context.Context, device *actions.Device) (bool, error) {
	if !device.Valid() {
		return false, nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.breached[device.ID]
	return ok, nil
}

// Reset forgets every breach.
func (r *BreachRegistry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	clear(r.breached)
}
