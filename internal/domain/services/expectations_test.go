package services

import (
	"testing"

	"github.com/reglet-dev/breachgate/internal/domain/actions"
	"github.com/reglet-dev/breachgate/internal/domain/entities"
	"github.com/reglet-dev/breachgate/internal/domain/values"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func boolPtr(b bool) *bool { return &b }

func TestExpectationChecker_NilExpectationPasses(t *testing.T) {
	status, mismatches := NewExpectationChecker().Check(nil, true, nil)
	assert.Equal(t, values.StatusPass, status)
	assert.Empty(t, mismatches)
}

func TestExpectationChecker_Check(t *testing.T) {
	list := actions.List{
		{ID: "alt", Kind: actions.KindAlternateBreach, QuickhackDisplay: true},
		{ID: "o", Kind: actions.KindOther},
	}

	tests := []struct {
		name       string
		exp        entities.Expectation
		slotOpened bool
		want       values.Status
		mismatch   string
	}{
		{"all match", entities.Expectation{
			SlotOpened: boolPtr(true),
			Kinds:      []actions.Kind{actions.KindAlternateBreach, actions.KindOther},
			Flagged:    []string{"alt"},
		}, true, values.StatusPass, ""},
		{"slot mismatch", entities.Expectation{SlotOpened: boolPtr(false)}, true, values.StatusFail, "slot_opened"},
		{"kinds mismatch", entities.Expectation{Kinds: []actions.Kind{actions.KindOther}}, true, values.StatusFail, "kinds"},
		{"empty kinds expected", entities.Expectation{Kinds: []actions.Kind{}}, true, values.StatusFail, "kinds"},
		{"flagged mismatch", entities.Expectation{Flagged: []string{}}, true, values.StatusFail, "flagged"},
		{"unset fields ignored", entities.Expectation{}, false, values.StatusPass, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			exp := tt.exp
			status, mismatches := NewExpectationChecker().Check(&exp, tt.slotOpened, list)
			assert.Equal(t, tt.want, status)
			if tt.mismatch == "" {
				assert.Empty(t, mismatches)
				return
			}
			require.Len(t, mismatches, 1)
			assert.Contains(t, mismatches[0], tt.mismatch)
		})
	}
}

func TestExpectationChecker_EmptyListMatchesEmptyKinds(t *testing.T) {
	exp := &entities.Expectation{Kinds: []actions.Kind{}, Flagged: []string{}}
	status, mismatches := NewExpectationChecker().Check(exp, false, actions.List{})
	assert.Equal(t, values.StatusPass, status)
	assert.Empty(t, mismatches)
}
