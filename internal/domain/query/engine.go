package query

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/BiblioNova/bookhaven-go/internal/domain/records"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// FieldKind classifies how a schema field is matched and compared.
type FieldKind int

const (
	KindText        FieldKind = iota // free text, collated alphabetically
	KindCategorical                  // fixed vocabulary, exact membership
	KindFlag                         // boolean
	KindNumeric                      // numbers and ids
	KindDate                         // chronological
)

// Field declares one queryable field of a collection: its key, kind, and the
// typed getter that extracts it from a record.
type Field struct {
	Key        string
	Kind       FieldKind
	Searchable bool // participates in free-text search (text fields only)

	Text    func(records.Record) string
	Flag    func(records.Record) bool
	Numeric func(records.Record) float64
	Date    func(records.Record) time.Time
}

// Schema describes the queryable shape of one collection. Schemas are built
// once per collection at startup; a malformed schema is a programming error
// and is reported at construction rather than swallowed at query time.
type Schema struct {
	fields     map[string]Field
	searchable []Field
}

// NewSchema validates the field declarations and builds a Schema.
func NewSchema(fields ...Field) (*Schema, error) {
	schema := &Schema{fields: make(map[string]Field, len(fields))}

	for _, field := range fields {
		if field.Key == "" {
			return nil, fmt.Errorf("schema field with empty key")
		}
		if _, dup := schema.fields[field.Key]; dup {
			return nil, fmt.Errorf("duplicate schema field %q", field.Key)
		}

		switch field.Kind {
		case KindText, KindCategorical:
			if field.Text == nil {
				return nil, fmt.Errorf("field %q requires a Text getter", field.Key)
			}
		case KindFlag:
			if field.Flag == nil {
				return nil, fmt.Errorf("field %q requires a Flag getter", field.Key)
			}
		case KindNumeric:
			if field.Numeric == nil {
				return nil, fmt.Errorf("field %q requires a Numeric getter", field.Key)
			}
		case KindDate:
			if field.Date == nil {
				return nil, fmt.Errorf("field %q requires a Date getter", field.Key)
			}
		default:
			return nil, fmt.Errorf("field %q has unknown kind %d", field.Key, field.Kind)
		}

		if field.Searchable && field.Kind != KindText {
			return nil, fmt.Errorf("field %q is searchable but not a text field", field.Key)
		}

		schema.fields[field.Key] = field
		if field.Searchable {
			schema.searchable = append(schema.searchable, field)
		}
	}

	if len(schema.searchable) == 0 {
		return nil, fmt.Errorf("schema has no searchable text field")
	}

	return schema, nil
}

// Engine evaluates query specs against record sets for one schema. Evaluation
// is pure: the input slice is never reordered or mutated, and identical
// inputs always yield identical output.
type Engine struct {
	schema   *Schema
	collator *collate.Collator
	mu       sync.Mutex // collator buffers are not safe for concurrent use
}

// NewEngine creates an engine for the given schema.
func NewEngine(schema *Schema) *Engine {
	return &Engine{
		schema:   schema,
		collator: collate.New(language.English, collate.IgnoreCase),
	}
}

// Evaluate returns the subset of records matching the spec's search term AND
// every active predicate, ordered by the spec's sort key. An empty result is
// a valid result; an unknown sort key is an error.
func (e *Engine) Evaluate(recs []records.Record, spec Spec) ([]records.Record, error) {
	sortField, ok := e.schema.fields[spec.SortKey]
	if !ok {
		return nil, fmt.Errorf("unknown sort key %q", spec.SortKey)
	}
	switch sortField.Kind {
	case KindFlag:
		return nil, fmt.Errorf("sort key %q is not orderable", spec.SortKey)
	}

	term := strings.ToLower(strings.TrimSpace(spec.SearchTerm))

	view := make([]records.Record, 0, len(recs))
	for _, rec := range recs {
		if !e.matchesSearch(rec, term) {
			continue
		}
		if !e.matchesPredicates(rec, spec.Predicates) {
			continue
		}
		view = append(view, rec)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	sort.SliceStable(view, func(i, j int) bool {
		cmp := e.compare(sortField, view[i], view[j])
		if spec.SortDirection == Descending {
			cmp = -cmp
		}
		if cmp != 0 {
			return cmp < 0
		}
		// Ties break by ascending id so re-evaluations are reproducible.
		return view[i].RecordID() < view[j].RecordID()
	})

	return view, nil
}

// matchesSearch reports whether the record passes the search stage: an empty
// term passes everything, otherwise the term must be a substring of at least
// one searchable field (OR across fields, case-insensitive).
func (e *Engine) matchesSearch(rec records.Record, term string) bool {
	if term == "" {
		return true
	}
	for _, field := range e.schema.searchable {
		if strings.Contains(strings.ToLower(field.Text(rec)), term) {
			return true
		}
	}
	return false
}

// matchesPredicates reports whether the record satisfies every active
// predicate (AND across keys). Keys not present in the schema are ignored so
// pages can carry extensible predicate sets.
func (e *Engine) matchesPredicates(rec records.Record, predicates map[string][]string) bool {
	for key, accepted := range predicates {
		field, ok := e.schema.fields[key]
		if !ok {
			continue
		}
		if !e.matchesPredicate(field, rec, accepted) {
			return false
		}
	}
	return true
}

func (e *Engine) matchesPredicate(field Field, rec records.Record, accepted []string) bool {
	active := activeValues(accepted)
	if len(active) == 0 {
		return true
	}

	switch field.Kind {
	case KindFlag:
		// An active flag predicate only passes records with the flag set.
		wantsTrue := false
		for _, value := range active {
			if parsed, err := strconv.ParseBool(value); err == nil && parsed {
				wantsTrue = true
			}
		}
		if !wantsTrue {
			return true
		}
		return field.Flag(rec)
	case KindText, KindCategorical:
		got := field.Text(rec)
		for _, value := range active {
			if strings.EqualFold(got, value) {
				return true
			}
		}
		return false
	case KindNumeric:
		got := field.Numeric(rec)
		for _, value := range active {
			if parsed, err := strconv.ParseFloat(value, 64); err == nil && parsed == got {
				return true
			}
		}
		return false
	case KindDate:
		got := field.Date(rec)
		for _, value := range active {
			if parsed, err := time.Parse("2006-01-02", value); err == nil && parsed.Equal(got) {
				return true
			}
		}
		return false
	}
	return true
}

// activeValues strips the sentinel and empty entries; what remains is the
// set the record must hit.
func activeValues(accepted []string) []string {
	var active []string
	for _, value := range accepted {
		if value == "" || strings.EqualFold(value, AnyValue) {
			continue
		}
		active = append(active, value)
	}
	return active
}

// compare orders two records on a single field: collated for text,
// numeric or chronological otherwise. Caller holds e.mu for the collator.
func (e *Engine) compare(field Field, a, b records.Record) int {
	switch field.Kind {
	case KindText, KindCategorical:
		return e.collator.CompareString(field.Text(a), field.Text(b))
	case KindNumeric:
		av, bv := field.Numeric(a), field.Numeric(b)
		switch {
		case av < bv:
			return -1
		case av > bv:
			return 1
		}
		return 0
	case KindDate:
		av, bv := field.Date(a), field.Date(b)
		switch {
		case av.Before(bv):
			return -1
		case av.After(bv):
			return 1
		}
		return 0
	}
	return 0
}
