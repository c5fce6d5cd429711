package services

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/reglet-dev/breachgate/internal/domain/entities"
)

// InteractionSpecification defines a condition an interaction must meet.
type InteractionSpecification interface {
	// IsSatisfiedBy returns true if satisfied, along with a reason if not.
	IsSatisfiedBy(in *entities.Interaction) (bool, string)
}

// AndSpecification combines multiple specifications with logical AND.
type AndSpecification struct {
	specs []InteractionSpecification
}

// NewAndSpecification creates a new AndSpecification.
func NewAndSpecification(specs ...InteractionSpecification) *AndSpecification {
	return &AndSpecification{specs: specs}
}

// IsSatisfiedBy checks if all specifications are satisfied.
func (s *AndSpecification) IsSatisfiedBy(in *entities.Interaction) (bool, string) {
	for _, spec := range s.specs {
		if satisfied, reason := spec.IsSatisfiedBy(in); !satisfied {
			return false, reason
		}
	}
	return true, ""
}

// ExclusiveInteractionsSpecification includes only the listed interaction IDs.
type ExclusiveInteractionsSpecification struct {
	ids map[string]bool
}

// NewExclusiveInteractionsSpecification creates a new ExclusiveInteractionsSpecification.
func NewExclusiveInteractionsSpecification(ids map[string]bool) *ExclusiveInteractionsSpecification {
	return &ExclusiveInteractionsSpecification{ids: ids}
}

// IsSatisfiedBy checks if the interaction ID is in the exclusive list.
func (s *ExclusiveInteractionsSpecification) IsSatisfiedBy(in *entities.Interaction) (bool, string) {
	if len(s.ids) == 0 || s.ids[in.ID] {
		return true, ""
	}
	return false, "excluded by --interaction filter"
}

// ExcludedInteractionsSpecification excludes the listed interaction IDs.
type ExcludedInteractionsSpecification struct {
	ids map[string]bool
}

// NewExcludedInteractionsSpecification creates a new ExcludedInteractionsSpecification.
func NewExcludedInteractionsSpecification(ids map[string]bool) *ExcludedInteractionsSpecification {
	return &ExcludedInteractionsSpecification{ids: ids}
}

// IsSatisfiedBy checks if the interaction ID is NOT in the excluded list.
func (s *ExcludedInteractionsSpecification) IsSatisfiedBy(in *entities.Interaction) (bool, string) {
	if s.ids[in.ID] {
		return false, "excluded by --exclude-interaction"
	}
	return true, ""
}

// ExcludedTagsSpecification excludes interactions with any of the tags.
type ExcludedTagsSpecification struct {
	tags map[string]bool
}

// NewExcludedTagsSpecification creates a new ExcludedTagsSpecification.
func NewExcludedTagsSpecification(tags map[string]bool) *ExcludedTagsSpecification {
	return &ExcludedTagsSpecification{tags: tags}
}

// IsSatisfiedBy checks if the interaction has NONE of the excluded tags.
func (s *ExcludedTagsSpecification) IsSatisfiedBy(in *entities.Interaction) (bool, string) {
	for _, tag := range in.Tags {
		if s.tags[tag] {
			return false, fmt.Sprintf("excluded by --exclude-tags %s", tag)
		}
	}
	return true, ""
}

// IncludedTagsSpecification includes only interactions with any of the tags.
type IncludedTagsSpecification struct {
	tags map[string]bool
}

// NewIncludedTagsSpecification creates a new IncludedTagsSpecification.
func NewIncludedTagsSpecification(tags map[string]bool) *IncludedTagsSpecification {
	return &IncludedTagsSpecification{tags: tags}
}

// IsSatisfiedBy checks if the interaction has ANY of the included tags.
func (s *IncludedTagsSpecification) IsSatisfiedBy(in *entities.Interaction) (bool, string) {
	if len(s.tags) == 0 {
		return true, ""
	}
	for _, tag := range in.Tags {
		if s.tags[tag] {
			return true, ""
		}
	}
	return false, "excluded by --tags filter"
}

// ExpressionSpecification filters interactions using an expr program.
type ExpressionSpecification struct {
	program *vm.Program
}

// NewExpressionSpecification creates a new ExpressionSpecification.
func NewExpressionSpecification(program *vm.Program) *ExpressionSpecification {
	return &ExpressionSpecification{program: program}
}

// IsSatisfiedBy evaluates the expr program against the interaction.
func (s *ExpressionSpecification) IsSatisfiedBy(in *entities.Interaction) (bool, string) {
	if s.program == nil {
		return true, ""
	}

	output, err := expr.Run(s.program, NewInteractionEnv(in))
	if err != nil {
		return false, fmt.Sprintf("filter expression error: %v", err)
	}

	result, ok := output.(bool)
	if !ok {
		return false, fmt.Sprintf("filter expression did not return boolean: %v", output)
	}
	if !result {
		return false, "excluded by --filter expression"
	}
	return true, ""
}

// CompileFilterExpression compiles a filter expression against InteractionEnv.
func CompileFilterExpression(source string) (*vm.Program, error) {
	return expr.Compile(source, expr.Env(InteractionEnv{}), expr.AsBool())
}
