package dto

import (
	"time"

	"github.com/reglet-dev/breachgate/internal/domain/execution"
)

// RunScenarioResponse contains the result of running a scenario.
type RunScenarioResponse struct {
	// RunResult contains the per-interaction results
	RunResult *execution.RunResult

	// Metadata contains response metadata
	Metadata ResponseMetadata

	// Diagnostics contains additional diagnostic information
	Diagnostics Diagnostics
}

// ResponseMetadata contains metadata about the response.
type ResponseMetadata struct {
	// RequestID from the original request
	RequestID string

	// ProcessedAt is when the request was processed
	ProcessedAt time.Time

	// Duration is how long the request took
	Duration time.Duration
}

// Diagnostics contains diagnostic information about the run.
type Diagnostics struct {
	// Warnings are non-fatal issues encountered
	Warnings []string

	// Gate describes the resolved extension gate
	Gate GateDiagnostics
}

// GateDiagnostics reports how the capability gate resolved.
type GateDiagnostics struct {
	Enabled bool
	Reason  string
}
