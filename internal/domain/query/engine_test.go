package query

import (
	"testing"

	"github.com/BiblioNova/bookhaven-go/internal/domain/records"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testBook struct {
	id        int
	title     string
	author    string
	category  string
	available bool
}

func (b testBook) RecordID() int { return b.id }

func testSchema(t *testing.T) *Schema {
	t.Helper()
	schema, err := NewSchema(
		Field{Key: "id", Kind: KindNumeric, Numeric: func(r records.Record) float64 { return float64(r.(testBook).id) }},
		Field{Key: "title", Kind: KindText, Searchable: true, Text: func(r records.Record) string { return r.(testBook).title }},
		Field{Key: "author", Kind: KindText, Searchable: true, Text: func(r records.Record) string { return r.(testBook).author }},
		Field{Key: "category", Kind: KindCategorical, Text: func(r records.Record) string { return r.(testBook).category }},
		Field{Key: "available", Kind: KindFlag, Flag: func(r records.Record) bool { return r.(testBook).available }},
	)
	require.NoError(t, err)
	return schema
}

func testBooks() []records.Record {
	return []records.Record{
		testBook{id: 3, title: "Systems Performance", author: "Brendan Gregg", category: "programming", available: true},
		testBook{id: 1, title: "The Go Programming Language", author: "Alan Donovan", category: "programming", available: false},
		testBook{id: 4, title: "Dune", author: "Frank Herbert", category: "fiction", available: true},
		testBook{id: 2, title: "Gödel, Escher, Bach", author: "Douglas Hofstadter", category: "science", available: true},
	}
}

func titles(view []records.Record) []string {
	out := make([]string, len(view))
	for i, rec := range view {
		out[i] = rec.(testBook).title
	}
	return out
}

func ids(view []records.Record) []int {
	out := make([]int, len(view))
	for i, rec := range view {
		out[i] = rec.RecordID()
	}
	return out
}

func TestEvaluateEmptySpecReturnsAllSorted(t *testing.T) {
	engine := NewEngine(testSchema(t))

	view, err := engine.Evaluate(testBooks(), NewSpec("title"))
	require.NoError(t, err)

	assert.Equal(t, []string{
		"Dune",
		"Gödel, Escher, Bach",
		"Systems Performance",
		"The Go Programming Language",
	}, titles(view))
}

func TestEvaluateSearchMatchesAnyTextField(t *testing.T) {
	engine := NewEngine(testSchema(t))

	tests := []struct {
		name string
		term string
		want []int
	}{
		{name: "title substring case-insensitive", term: "DUNE", want: []int{4}},
		{name: "author substring", term: "hofstadter", want: []int{2}},
		{name: "whitespace trimmed", term: "  go ", want: []int{1}},
		{name: "no match yields empty result", term: "zzz", want: []int{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			view, err := engine.Evaluate(testBooks(), NewSpec("id").WithSearch(tt.term))
			require.NoError(t, err)
			assert.Equal(t, tt.want, ids(view))
		})
	}
}

func TestEvaluatePredicatesCombineWithAnd(t *testing.T) {
	engine := NewEngine(testSchema(t))

	spec := NewSpec("id").
		WithPredicate("category", "programming").
		WithPredicate("available", "true")

	view, err := engine.Evaluate(testBooks(), spec)
	require.NoError(t, err)
	assert.Equal(t, []int{3}, ids(view))
}

func TestEvaluateSentinelPredicateIsNoOp(t *testing.T) {
	engine := NewEngine(testSchema(t))

	spec := NewSpec("id").
		WithPredicate("category", AnyValue).
		WithPredicate("available", "")

	view, err := engine.Evaluate(testBooks(), spec)
	require.NoError(t, err)
	assert.Len(t, view, 4)
}

func TestEvaluateUnknownPredicateKeyIgnored(t *testing.T) {
	engine := NewEngine(testSchema(t))

	view, err := engine.Evaluate(testBooks(), NewSpec("id").WithPredicate("publisher", "acme"))
	require.NoError(t, err)
	assert.Len(t, view, 4)
}

func TestEvaluateUnknownSortKeyIsError(t *testing.T) {
	engine := NewEngine(testSchema(t))

	_, err := engine.Evaluate(testBooks(), NewSpec("publisher"))
	assert.Error(t, err)
}

func TestEvaluateFlagSortKeyIsError(t *testing.T) {
	engine := NewEngine(testSchema(t))

	_, err := engine.Evaluate(testBooks(), NewSpec("available"))
	assert.Error(t, err)
}

func TestEvaluateDescendingReversesStrictOrder(t *testing.T) {
	engine := NewEngine(testSchema(t))

	ascending, err := engine.Evaluate(testBooks(), NewSpec("title"))
	require.NoError(t, err)

	descending, err := engine.Evaluate(testBooks(), NewSpec("title").WithSort("title", Descending))
	require.NoError(t, err)

	require.Len(t, descending, len(ascending))
	for i := range ascending {
		assert.Equal(t, ascending[i], descending[len(descending)-1-i])
	}
}

func TestEvaluateTiesBreakByAscendingID(t *testing.T) {
	engine := NewEngine(testSchema(t))

	tied := []records.Record{
		testBook{id: 9, title: "Duplicate", category: "fiction"},
		testBook{id: 2, title: "Duplicate", category: "fiction"},
		testBook{id: 5, title: "Duplicate", category: "fiction"},
	}

	view, err := engine.Evaluate(tied, NewSpec("title"))
	require.NoError(t, err)
	assert.Equal(t, []int{2, 5, 9}, ids(view))
}

func TestEvaluateIsIdempotentAndPure(t *testing.T) {
	engine := NewEngine(testSchema(t))
	input := testBooks()
	original := make([]records.Record, len(input))
	copy(original, input)

	spec := NewSpec("title").WithPredicate("category", "programming")

	first, err := engine.Evaluate(input, spec)
	require.NoError(t, err)
	second, err := engine.Evaluate(input, spec)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, original, input, "input slice must not be reordered")
}
