package services

import (
	"fmt"
	"slices"

	"github.com/reglet-dev/breachgate/internal/domain/actions"
	"github.com/reglet-dev/breachgate/internal/domain/entities"
	"github.com/reglet-dev/breachgate/internal/domain/values"
)

// ExpectationChecker compares a curated list against an interaction's
// expectation. It is stateless.
type ExpectationChecker struct{}

// NewExpectationChecker creates a new expectation checker.
func NewExpectationChecker() *ExpectationChecker {
	return &ExpectationChecker{}
}

// Check returns the status of the interaction and a human-readable
// mismatch for every expectation that did not hold. A nil expectation
// always passes.
func (c *ExpectationChecker) Check(exp *entities.Expectation, slotOpened bool, list actions.List) (values.Status, []string) {
	if exp == nil {
		return values.StatusPass, nil
	}

	var mismatches []string

	if exp.SlotOpened != nil && *exp.SlotOpened != slotOpened {
		mismatches = append(mismatches, fmt.Sprintf("slot_opened: expected %t, got %t", *exp.SlotOpened, slotOpened))
	}

	// An explicit empty list is a valid expectation ("nothing survives").
	if exp.Kinds != nil {
		got := list.Kinds()
		if !slices.Equal(exp.Kinds, got) {
			mismatches = append(mismatches, fmt.Sprintf("kinds: expected %v, got %v", exp.Kinds, got))
		}
	}

	if exp.Flagged != nil {
		got := flaggedIDs(list)
		want := slices.Clone(exp.Flagged)
		slices.Sort(want)
		if !slices.Equal(want, got) {
			mismatches = append(mismatches, fmt.Sprintf("flagged: expected %v, got %v", want, got))
		}
	}

	if len(mismatches) > 0 {
		return values.StatusFail, mismatches
	}
	return values.StatusPass, nil
}

func flaggedIDs(list actions.List) []string {
	ids := make([]string, 0)
	for _, a := range list {
		if a != nil && a.QuickhackDisplay {
			ids = append(ids, a.ID)
		}
	}
	slices.Sort(ids)
	return ids
}
