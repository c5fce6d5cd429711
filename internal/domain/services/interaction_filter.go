package services

import (
	"github.com/expr-lang/expr/vm"
	"github.com/reglet-dev/breachgate/internal/domain/entities"
)

// InteractionEnv defines the variables available during filter expression evaluation.
type InteractionEnv struct {
	ID       string   `expr:"id"`
	Device   string   `expr:"device"`
	Subject  string   `expr:"subject"`
	Tags     []string `expr:"tags"`
	Kinds    []string `expr:"kinds"`
	Breached bool     `expr:"breached"`
	Locked   bool     `expr:"locked"`
}

// NewInteractionEnv builds the expression environment for an interaction.
func NewInteractionEnv(in *entities.Interaction) InteractionEnv {
	env := InteractionEnv{
		ID:       in.ID,
		Subject:  in.Subject,
		Tags:     in.Tags,
		Breached: in.Breached,
		Locked:   in.Locked,
	}
	if in.Device != nil {
		env.Device = in.Device.ID
	}
	env.Kinds = make([]string, 0, len(in.Actions))
	for _, a := range in.Actions {
		env.Kinds = append(env.Kinds, a.Kind.String())
	}
	return env
}

// InteractionFilter selects which interactions of a scenario are curated.
type InteractionFilter struct {
	// Exclusive mode: only include specified interactions
	exclusiveIDs map[string]bool

	excludeIDs  map[string]bool
	excludeTags map[string]bool
	includeTags map[string]bool

	filterProgram *vm.Program
}

// NewInteractionFilter initializes a new empty filter.
func NewInteractionFilter() *InteractionFilter {
	return &InteractionFilter{
		exclusiveIDs: make(map[string]bool),
		excludeIDs:   make(map[string]bool),
		excludeTags:  make(map[string]bool),
		includeTags:  make(map[string]bool),
	}
}

// WithExclusiveInteractions restricts the run to ONLY the given IDs.
// If set, all other filters are ignored.
func (f *InteractionFilter) WithExclusiveInteractions(ids []string) *InteractionFilter {
	f.exclusiveIDs = toSet(ids)
	return f
}

// WithExcludedInteractions excludes specific interaction IDs.
func (f *InteractionFilter) WithExcludedInteractions(ids []string) *InteractionFilter {
	f.excludeIDs = toSet(ids)
	return f
}

// WithExcludedTags excludes interactions with any of these tags.
func (f *InteractionFilter) WithExcludedTags(tags []string) *InteractionFilter {
	f.excludeTags = toSet(tags)
	return f
}

// WithIncludedTags includes only interactions with any of these tags.
func (f *InteractionFilter) WithIncludedTags(tags []string) *InteractionFilter {
	f.includeTags = toSet(tags)
	return f
}

// WithFilterExpression applies a compiled Expr program for advanced filtering.
func (f *InteractionFilter) WithFilterExpression(program *vm.Program) *InteractionFilter {
	f.filterProgram = program
	return f
}

// ShouldRun evaluates whether an interaction matches the filter criteria.
// It returns true if the interaction should be curated, along with a reason if skipped.
func (f *InteractionFilter) ShouldRun(in *entities.Interaction) (bool, string) {
	if len(f.exclusiveIDs) > 0 {
		return NewExclusiveInteractionsSpecification(f.exclusiveIDs).IsSatisfiedBy(in)
	}

	var specs []InteractionSpecification

	if len(f.excludeIDs) > 0 {
		specs = append(specs, NewExcludedInteractionsSpecification(f.excludeIDs))
	}
	if len(f.excludeTags) > 0 {
		specs = append(specs, NewExcludedTagsSpecification(f.excludeTags))
	}
	if len(f.includeTags) > 0 {
		specs = append(specs, NewIncludedTagsSpecification(f.includeTags))
	}
	if f.filterProgram != nil {
		specs = append(specs, NewExpressionSpecification(f.filterProgram))
	}

	return NewAndSpecification(specs...).IsSatisfiedBy(in)
}

// toSet converts a slice to a map (set)
func toSet(slice []string) map[string]bool {
	s := make(map[string]bool, len(slice))
	for _, item := range slice {
		s[item] = true
	}
	return s
}
