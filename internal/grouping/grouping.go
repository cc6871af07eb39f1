// =============================================================================
// Travel Booking Reports - Grouping Engine
// =============================================================================
//
// Generic "group records by key" primitive. Rows are grouped by the value a
// key function extracts, keeping the order in which keys are first seen and
// the input order inside each group:
//
//   Input:  A1, B1, A2, C1, B2
//   Output: A -> [A1, A2], B -> [B1, B2], C -> [C1]
//
// A record whose key is missing contributes to the group of the key type's
// zero value. Nothing is rejected.
//
// =============================================================================

package grouping

import "iter"

// Groups is an insertion-ordered mapping from key to the records sharing it.
type Groups[K comparable, R any] struct {
	order   []K
	members map[K][]R
}

// By groups records by key. The input slice is not modified; member slices
// hold copies of the records.
func By[K comparable, R any](records []R, key func(R) K) *Groups[K, R] {
	g := &Groups[K, R]{
		order:   make([]K, 0),
		members: make(map[K][]R),
	}
	for _, r := range records {
		k := key(r)
		if _, exists := g.members[k]; !exists {
			g.order = append(g.order, k)
		}
		g.members[k] = append(g.members[k], r)
	}
	return g
}

// Keys returns the group keys in first-seen order.
func (g *Groups[K, R]) Keys() []K {
	out := make([]K, len(g.order))
	copy(out, g.order)
	return out
}

// Get returns the members of a group and whether the group exists.
func (g *Groups[K, R]) Get(k K) ([]R, bool) {
	m, ok := g.members[k]
	return m, ok
}

// Len returns the number of groups.
func (g *Groups[K, R]) Len() int { return len(g.order) }

// All iterates over the groups in first-seen key order.
func (g *Groups[K, R]) All() iter.Seq2[K, []R] {
	return func(yield func(K, []R) bool) {
		for _, k := range g.order {
			if !yield(k, g.members[k]) {
				return
			}
		}
	}
}

// Map produces one output per group, in first-seen key order.
func Map[K comparable, R any, T any](g *Groups[K, R], fn func(K, []R) T) []T {
	out := make([]T, 0, g.Len())
	for k, members := range g.All() {
		out = append(out, fn(k, members))
	}
	return out
}

// Last builds a lookup table from records. When several records share a key
// the one appearing last in the input wins.
func Last[K comparable, R any, V any](records []R, key func(R) K, value func(R) V) map[K]V {
	table := make(map[K]V, len(records))
	for _, r := range records {
		table[key(r)] = value(r)
	}
	return table
}
