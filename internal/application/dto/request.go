// Package dto contains data transfer objects for application layer use cases.
package dto

// RunScenarioRequest encapsulates all inputs needed to run a scenario.
type RunScenarioRequest struct {
	ScenarioPath string
	Metadata     RequestMetadata
	Filters      FilterOptions
}

// FilterOptions selects which interactions are curated.
type FilterOptions struct {
	FilterExpression      string
	IncludeTags           []string
	IncludeInteractionIDs []string
	ExcludeTags           []string
	ExcludeInteractionIDs []string
}

// IsEmpty reports whether no filter is set.
func (f FilterOptions) IsEmpty() bool {
	return f.FilterExpression == "" &&
		len(f.IncludeTags) == 0 &&
		len(f.IncludeInteractionIDs) == 0 &&
		len(f.ExcludeTags) == 0 &&
		len(f.ExcludeInteractionIDs) == 0
}

// RequestMetadata contains metadata for request tracking.
type RequestMetadata struct {
	// RequestID uniquely identifies this request
	RequestID string
}
