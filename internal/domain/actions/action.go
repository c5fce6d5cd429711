// Package actions defines the interactive hack actions offered for a device
// and the canonical list transforms applied to them.
package actions

import "fmt"

// Kind discriminates action variants. Only the two breach kinds carry
// meaning here; everything else is opaque.
type Kind string

const (
	// KindDefaultBreach is the built-in breach action a device offers.
	KindDefaultBreach Kind = "default_breach"
	// KindAlternateBreach is the replacement breach provided by the extension.
	KindAlternateBreach Kind = "alternate_breach"
	// KindOther is any action unrelated to breaching.
	KindOther Kind = "other"
)

// IsBreach reports whether k is one of the breach variants.
// This is the single definition of "breach-type" used across the module.
func (k Kind) IsBreach() bool {
	return k == KindDefaultBreach || k == KindAlternateBreach
}

// Validate returns an error if the kind is unknown.
func (k Kind) Validate() error {
	switch k {
	case KindDefaultBreach, KindAlternateBreach, KindOther:
		return nil
	default:
		return fmt.Errorf("invalid action kind: %q", k)
	}
}

// String returns the kind's wire name.
func (k Kind) String() string {
	return string(k)
}

// Action is an entry of an action list. Actions are owned by the caller;
// this package only removes references to them and sets QuickhackDisplay.
type Action struct {
	ID               string `json:"id" yaml:"id"`
	Name             string `json:"name,omitempty" yaml:"name,omitempty"`
	Kind             Kind   `json:"kind" yaml:"kind"`
	QuickhackDisplay bool   `json:"quickhack_display" yaml:"quickhack_display"`
}

// Is reports whether the action is non-nil and of the given kind.
func (a *Action) Is(kind Kind) bool {
	return a != nil && a.Kind == kind
}

// IsBreach reports whether the action is non-nil and breach-type.
func (a *Action) IsBreach() bool {
	return a != nil && a.Kind.IsBreach()
}

// List is an ordered, caller-owned sequence of actions.
type List []*Action

// Kinds returns the kind of every entry in order. Nil entries report "".
func (l List) Kinds() []Kind {
	kinds := make([]Kind, 0, len(l))
	for _, a := range l {
		if a == nil {
			kinds = append(kinds, "")
			continue
		}
		kinds = append(kinds, a.Kind)
	}
	return kinds
}

// Count returns the number of entries of the given kind.
func (l List) Count(kind Kind) int {
	n := 0
	for _, a := range l {
		if a.Is(kind) {
			n++
		}
	}
	return n
}

// Clone returns a deep copy of the list.
func (l List) Clone() List {
	if l == nil {
		return nil
	}
	out := make(List, len(l))
	for i, a := range l {
		if a == nil {
			continue
		}
		cp := *a
		out[i] = &cp
	}
	return out
}
