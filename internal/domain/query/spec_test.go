package query

import (
	"testing"

	"github.com/BiblioNova/bookhaven-go/internal/domain/records"
	"github.com/stretchr/testify/assert"
)

func TestSpecBuildersDoNotMutateReceiver(t *testing.T) {
	base := NewSpec("title").WithPredicate("category", "fiction")

	derived := base.
		WithSearch("dune").
		WithPredicate("category", "science").
		WithSort("id", Descending)

	assert.Equal(t, "", base.SearchTerm)
	assert.Equal(t, []string{"fiction"}, base.Predicates["category"])
	assert.Equal(t, "title", base.SortKey)
	assert.Equal(t, Ascending, base.SortDirection)

	assert.Equal(t, "dune", derived.SearchTerm)
	assert.Equal(t, []string{"science"}, derived.Predicates["category"])
	assert.Equal(t, "id", derived.SortKey)
	assert.Equal(t, Descending, derived.SortDirection)
}

func TestParseDirection(t *testing.T) {
	assert.Equal(t, Descending, ParseDirection("desc"))
	assert.Equal(t, Ascending, ParseDirection("asc"))
	assert.Equal(t, Ascending, ParseDirection(""))
}

func TestNewSchemaRejectsBadFields(t *testing.T) {
	tests := []struct {
		name   string
		fields []Field
	}{
		{name: "empty key", fields: []Field{{Kind: KindText, Searchable: true, Text: func(r records.Record) string { return "" }}}},
		{
			name: "duplicate key",
			fields: []Field{
				{Key: "title", Kind: KindText, Searchable: true, Text: func(r records.Record) string { return "" }},
				{Key: "title", Kind: KindText, Text: func(r records.Record) string { return "" }},
			},
		},
		{name: "missing getter", fields: []Field{{Key: "title", Kind: KindText, Searchable: true}}},
		{name: "searchable non-text", fields: []Field{{Key: "available", Kind: KindFlag, Searchable: true, Flag: func(r records.Record) bool { return false }}}},
		{name: "no searchable field", fields: []Field{{Key: "id", Kind: KindNumeric, Numeric: func(r records.Record) float64 { return 0 }}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewSchema(tt.fields...)
			assert.Error(t, err)
		})
	}
}
