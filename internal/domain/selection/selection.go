// Package selection tracks ephemeral membership sets over record ids, such
// as the wishlist. Sets are value-immutable: every toggle produces a new set
// and leaves the old one untouched.
package selection

import (
	"sort"
)

// Set is a membership set of record identifiers scoped to one concern.
type Set map[int]struct{}

// NewSet returns an empty selection set.
func NewSet() Set {
	return Set{}
}

// Toggle returns a new set with the id added if absent or removed if
// present. Toggling twice restores a set equal in content to the original.
func (s Set) Toggle(id int) Set {
	next := make(Set, len(s)+1)
	for member := range s {
		next[member] = struct{}{}
	}
	if _, ok := next[id]; ok {
		delete(next, id)
	} else {
		next[id] = struct{}{}
	}
	return next
}

// Contains reports whether the id is a member.
func (s Set) Contains(id int) bool {
	_, ok := s[id]
	return ok
}

// Len returns the number of members.
func (s Set) Len() int {
	return len(s)
}

// IDs returns the members in ascending order.
func (s Set) IDs() []int {
	ids := make([]int, 0, len(s))
	for member := range s {
		ids = append(ids, member)
	}
	sort.Ints(ids)
	return ids
}

// Equal reports whether two sets hold the same members.
func (s Set) Equal(other Set) bool {
	if len(s) != len(other) {
		return false
	}
	for member := range s {
		if _, ok := other[member]; !ok {
			return false
		}
	}
	return true
}
