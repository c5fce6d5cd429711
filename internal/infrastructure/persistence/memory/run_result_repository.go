package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/reglet-dev/breachgate/internal/domain/execution"
	"github.com/reglet-dev/breachgate/internal/domain/repositories"
)

var _ repositories.RunResultRepository = (*RunResultRepository)(nil)

// RunResultRepository collects run results produced concurrently by several
// scenario runs.
type RunResultRepository struct {
	results map[uuid.UUID]*execution.RunResult
	mu      sync.RWMutex
}

// NewRunResultRepository creates a new in-memory repository.
func NewRunResultRepository() *RunResultRepository {
	return &RunResultRepository{
		results: make(map[uuid.UUID]*execution.RunResult),
	}
}

// Save stores a run result. Callers must not modify it afterwards.
func (r *RunResultRepository) Save(_ context.Context, result *execution.RunResult) error {
	if result == nil {
		return fmt.Errorf("cannot save nil run result")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.results[result.GetID().UUID()] = result
	return nil
}

// FindByID retrieves a run result by its unique ID.
func (r *RunResultRepository) FindByID(_ context.Context, id uuid.UUID) (*execution.RunResult, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result, ok := r.results[id]
	if !ok {
		return nil, fmt.Errorf("run result not found: %s", id)
	}
	return result, nil
}

// List returns every stored result ordered by scenario path, then start time.
func (r *RunResultRepository) List(_ context.Context) []*execution.RunResult {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*execution.RunResult, 0, len(r.results))
	for _, res := range r.results {
		out = append(out, res)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].ScenarioPath != out[j].ScenarioPath {
			return out[i].ScenarioPath < out[j].ScenarioPath
		}
		return out[i].StartTime.Before(out[j].StartTime)
	})
	return out
}
