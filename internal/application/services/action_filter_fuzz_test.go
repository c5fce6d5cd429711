package services

import (
	"testing"

	"github.com/reglet-dev/breachgate/internal/domain/actions"
)

var fuzzKinds = []actions.Kind{actions.KindDefaultBreach, actions.KindAlternateBreach, actions.KindOther}

// FuzzReplaceDefaultBreach checks the filter invariants for arbitrary lists
// and oracle answers.
func FuzzReplaceDefaultBreach(f *testing.F) {
	f.Add([]byte{0, 2}, true, false)
	f.Add([]byte{0, 1, 2}, false, false)
	f.Add([]byte{1}, false, true)
	f.Add([]byte{}, false, false)

	f.Fuzz(func(t *testing.T, raw []byte, breached, locked bool) {
		l := make(actions.List, 0, len(raw))
		for i, b := range raw {
			l = append(l, &actions.Action{ID: string(rune('a' + i%26)), Kind: fuzzKinds[int(b)%len(fuzzKinds)]})
		}
		defaults := l.Count(actions.KindDefaultBreach)
		alternates := l.Count(actions.KindAlternateBreach)
		others := l.Count(actions.KindOther)

		filter := NewActionFilter(&mockBreachOracle{breached: breached}, &mockLockOracle{locked: locked}, nil)
		slot := filter.ReplaceDefaultBreach(ctxWithSubject(), door, &l)

		if l.Count(actions.KindDefaultBreach) != 0 {
			t.Fatalf("default breach survived: %v", l.Kinds())
		}
		if l.Count(actions.KindOther) != others {
			t.Fatalf("other actions changed: had %d, now %d", others, l.Count(actions.KindOther))
		}

		switch {
		case breached:
			if slot {
				t.Fatal("slot opened for a breached device")
			}
			if l.Count(actions.KindAlternateBreach) != alternates {
				t.Fatal("alternate breaches removed for a breached device")
			}
		case locked:
			if slot {
				t.Fatal("slot opened while locked")
			}
			if l.Count(actions.KindAlternateBreach) != 0 {
				t.Fatal("alternate breach survived a penalty lock")
			}
		default:
			if slot != (defaults > 0) {
				t.Fatalf("slot=%t with %d defaults", slot, defaults)
			}
		}
	})
}
