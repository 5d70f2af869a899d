// Package query implements the collection query engine: an immutable query
// specification evaluated against an in-memory record set to produce the
// filtered, sorted view a portal page displays.
package query

// AnyValue is the sentinel predicate value meaning "no filter"; a predicate
// carrying it is always satisfied.
const AnyValue = "all"

// Direction selects the sort order of an evaluated view.
type Direction int

const (
	Ascending Direction = iota
	Descending
)

// ParseDirection maps the wire value onto a Direction. Anything other than
// "desc" is ascending.
func ParseDirection(raw string) Direction {
	if raw == "desc" {
		return Descending
	}
	return Ascending
}

// Spec describes the current search/filter/sort intent for one page. A Spec
// is an immutable value: every With* method returns a fresh Spec and leaves
// the receiver untouched, so a new Spec replaces the old one atomically on
// each input event.
type Spec struct {
	SearchTerm    string
	Predicates    map[string][]string
	SortKey       string
	SortDirection Direction
}

// NewSpec creates a Spec with no search term and no active predicates,
// sorted ascending by the given key.
func NewSpec(sortKey string) Spec {
	return Spec{
		Predicates: map[string][]string{},
		SortKey:    sortKey,
	}
}

// WithSearch returns a copy of the Spec carrying the given search term.
func (s Spec) WithSearch(term string) Spec {
	next := s.clone()
	next.SearchTerm = term
	return next
}

// WithPredicate returns a copy of the Spec with the accepted values for one
// predicate key replaced.
func (s Spec) WithPredicate(key string, values ...string) Spec {
	next := s.clone()
	next.Predicates[key] = values
	return next
}

// WithSort returns a copy of the Spec with the sort key and direction replaced.
func (s Spec) WithSort(key string, direction Direction) Spec {
	next := s.clone()
	next.SortKey = key
	next.SortDirection = direction
	return next
}

func (s Spec) clone() Spec {
	predicates := make(map[string][]string, len(s.Predicates))
	for key, values := range s.Predicates {
		copied := make([]string, len(values))
		copy(copied, values)
		predicates[key] = copied
	}
	return Spec{
		SearchTerm:    s.SearchTerm,
		Predicates:    predicates,
		SortKey:       s.SortKey,
		SortDirection: s.SortDirection,
	}
}
