// Package watchlist keeps the user's starred coin identifiers and persists
// them through a key-value capability.
package watchlist

import "slices"

// List is an ordered set of coin identifiers. Membership is order-free but
// the order follows insertion so the persisted array matches toggle history.
// A List is a value: Toggle returns a new List and never mutates the receiver.
type List struct {
	ids []string
}

// FromIDs builds a List, dropping empty and duplicate identifiers while
// keeping the first occurrence.
func FromIDs(ids []string) List {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" || slices.Contains(out, id) {
			continue
		}
		out = append(out, id)
	}
	return List{ids: out}
}

// Contains reports whether id is in the list.
func (l List) Contains(id string) bool {
	return slices.Contains(l.ids, id)
}

// Toggle adds id when absent (appending) or removes it when present.
func (l List) Toggle(id string) List {
	if i := slices.Index(l.ids, id); i >= 0 {
		return List{ids: slices.Delete(slices.Clone(l.ids), i, i+1)}
	}
	next := make([]string, len(l.ids), len(l.ids)+1)
	copy(next, l.ids)
	return List{ids: append(next, id)}
}

// IDs returns a copy of the identifiers in persisted order.
func (l List) IDs() []string {
	return slices.Clone(l.ids)
}

// Len returns the number of identifiers.
func (l List) Len() int { return len(l.ids) }

// Equal reports whether both lists hold the same identifiers, ignoring order.
func (l List) Equal(other List) bool {
	if len(l.ids) != len(other.ids) {
		return false
	}
	for _, id := range l.ids {
		if !other.Contains(id) {
			return false
		}
	}
	return true
}
