package services

import (
	"path/filepath"
	"testing"

	"github.com/BiblioNova/bookhaven-go/internal/domain/query"
	"github.com/BiblioNova/bookhaven-go/internal/infrastructure/observability/logging"
	"github.com/BiblioNova/bookhaven-go/internal/infrastructure/observability/performance"
	"github.com/BiblioNova/bookhaven-go/internal/infrastructure/persistence/catalog"
	"github.com/BiblioNova/bookhaven-go/internal/infrastructure/persistence/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCatalogService(t *testing.T) *CatalogService {
	t.Helper()
	logger, err := logging.NewChanneledLogger(nil)
	require.NoError(t, err)

	db, err := database.NewConnection(filepath.Join(t.TempDir(), "catalog.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	repo := catalog.NewRepository(db, logger)
	require.NoError(t, repo.CreateSchema())
	require.NoError(t, repo.SeedCollections())

	service, err := NewCatalogService(repo, logger, performance.NewTracker(nil))
	require.NoError(t, err)
	return service
}

func bookTitles(t *testing.T, service *CatalogService, spec query.Spec) []string {
	t.Helper()
	books, err := service.QueryBooks(spec)
	require.NoError(t, err)
	titles := make([]string, len(books))
	for i, book := range books {
		titles[i] = book.Title
	}
	return titles
}

func TestQueryBooksEmptySpecReturnsFullCatalogByTitle(t *testing.T) {
	service := newTestCatalogService(t)

	titles := bookTitles(t, service, query.NewSpec("title"))
	require.Len(t, titles, 12)
	assert.Equal(t, "A Brief History of Time", titles[0])
	assert.Equal(t, "Thinking, Fast and Slow", titles[len(titles)-1])
}

func TestQueryBooksCategoryAndAvailabilityCombine(t *testing.T) {
	service := newTestCatalogService(t)

	spec := query.NewSpec("title").
		WithPredicate("category", "programming").
		WithPredicate("available", "true")

	assert.Equal(t, []string{
		"Clean Code",
		"Data Structures and Algorithms",
		"Eloquent JavaScript",
		"JavaScript: The Good Parts",
		"The Pragmatic Programmer",
	}, bookTitles(t, service, spec))
}

func TestQueryBooksSearchNarrowsToSingleMatch(t *testing.T) {
	service := newTestCatalogService(t)

	books, err := service.QueryBooks(query.NewSpec("title").WithSearch("clean"))
	require.NoError(t, err)
	require.Len(t, books, 1)
	assert.Equal(t, 4, books[0].ID)
	assert.Equal(t, "Clean Code", books[0].Title)
}

func TestQueryBooksYearDescending(t *testing.T) {
	service := newTestCatalogService(t)

	books, err := service.QueryBooks(query.NewSpec("title").WithSort("year", query.Descending))
	require.NoError(t, err)
	require.NotEmpty(t, books)
	assert.Equal(t, "Eloquent JavaScript", books[0].Title)
	assert.Equal(t, "Dune", books[len(books)-1].Title)
}

func TestQueryBooksUnknownSortKeyIsError(t *testing.T) {
	service := newTestCatalogService(t)

	_, err := service.QueryBooks(query.NewSpec("publisher"))
	assert.Error(t, err)
}

func TestQueryLoansDefaultDueDateOrder(t *testing.T) {
	service := newTestCatalogService(t)

	loans, err := service.QueryLoans(query.NewSpec("dueDate"))
	require.NoError(t, err)
	require.Len(t, loans, 3)
	assert.Equal(t, "Thinking, Fast and Slow", loans[0].Title)
	assert.Equal(t, "Introduction to Algorithms", loans[2].Title)
}

func TestQueryLoansStatusPredicate(t *testing.T) {
	service := newTestCatalogService(t)

	loans, err := service.QueryLoans(query.NewSpec("dueDate").WithPredicate("status", "overdue"))
	require.NoError(t, err)
	require.Len(t, loans, 1)
	assert.Equal(t, "overdue", loans[0].Status)
}

func TestQueryReservationsByDate(t *testing.T) {
	service := newTestCatalogService(t)

	reservations, err := service.QueryReservations(query.NewSpec("reservationDate"))
	require.NoError(t, err)
	require.Len(t, reservations, 2)
	assert.Equal(t, "Clean Code", reservations[0].Title)
	assert.Equal(t, "Dune", reservations[1].Title)
}

func TestQueryHistoryRatingPredicate(t *testing.T) {
	service := newTestCatalogService(t)

	history, err := service.QueryHistory(query.NewSpec("returnedDate").WithPredicate("rating", "5"))
	require.NoError(t, err)
	require.Len(t, history, 2)
	for _, entry := range history {
		assert.Equal(t, 5, entry.Rating)
	}
}
