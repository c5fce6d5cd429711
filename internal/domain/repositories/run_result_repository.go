// Package repositories defines interfaces for domain persistence.
package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/reglet-dev/breachgate/internal/domain/execution"
)

// RunResultRepository defines the interface for persisting scenario run results.
type RunResultRepository interface {
	// Save persists a run result.
	Save(ctx context.Context, result *execution.RunResult) error

	// FindByID retrieves a run result by its run ID.
	FindByID(ctx context.Context, id uuid.UUID) (*execution.RunResult, error)

	// List returns every stored result ordered by scenario path, then start time.
	List(ctx context.Context) []*execution.RunResult
}
