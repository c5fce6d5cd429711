package values

import (
	"fmt"
	"regexp"
	"strings"
)

var interactionIDPattern = regexp.MustCompile(`^[a-zA-Z0-9_.-]+$`)

// InteractionID identifies one interaction within a scenario.
type InteractionID struct {
	value string
}

// NewInteractionID creates a trimmed, validated InteractionID.
func NewInteractionID(id string) (InteractionID, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return InteractionID{}, fmt.Errorf("interaction ID cannot be empty")
	}
	if !interactionIDPattern.MatchString(id) {
		return InteractionID{}, fmt.Errorf("interaction ID %q must contain only letters, digits, '.', '_' or '-'", id)
	}
	return InteractionID{value: id}, nil
}

// String returns the string representation
func (i InteractionID) String() string {
	return i.value
}

// IsEmpty returns true if this is the zero value
func (i InteractionID) IsEmpty() bool {
	return i.value == ""
}
