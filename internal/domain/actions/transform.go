package actions

import "slices"

// RemoveKind deletes every entry of the given kind from the list, keeping
// the relative order of the survivors. It returns the number removed.
func RemoveKind(list *List, kind Kind) int {
	return removeWhere(list, func(a *Action) bool { return a.Is(kind) })
}

// PurgeBreachVariants deletes every breach-type entry from the list.
// All call sites that strip breach actions go through here.
func PurgeBreachVariants(list *List) int {
	return removeWhere(list, (*Action).IsBreach)
}

// FlagAlternateBreachEntries marks every alternate breach so the UI renders
// it on the quickhack path. It never removes or reorders entries.
func FlagAlternateBreachEntries(list List) int {
	n := 0
	for _, a := range list {
		if a.Is(KindAlternateBreach) {
			a.QuickhackDisplay = true
			n++
		}
	}
	return n
}

func removeWhere(list *List, match func(*Action) bool) int {
	if list == nil || len(*list) == 0 {
		return 0
	}
	before := len(*list)
	*list = slices.DeleteFunc(*list, match)
	return before - len(*list)
}
