package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/BiblioNova/bookhaven-go/internal/application/services"
	"github.com/BiblioNova/bookhaven-go/internal/infrastructure/observability/logging"
	"github.com/BiblioNova/bookhaven-go/internal/infrastructure/observability/performance"
	"github.com/BiblioNova/bookhaven-go/internal/infrastructure/persistence/catalog"
	"github.com/BiblioNova/bookhaven-go/internal/infrastructure/persistence/database"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCollectionTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	logger, err := logging.NewChanneledLogger(nil)
	require.NoError(t, err)

	db, err := database.NewConnection(filepath.Join(t.TempDir(), "catalog.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	repo := catalog.NewRepository(db, logger)
	require.NoError(t, repo.CreateSchema())
	require.NoError(t, repo.SeedCollections())

	service, err := services.NewCatalogService(repo, logger, performance.NewTracker(nil))
	require.NoError(t, err)

	h := NewCollectionHandlers(service, logger, performance.NewTracker(nil))

	r := gin.New()
	r.GET("/api/v1/catalog/books", h.GetBooks)
	return r
}

func getBooks(t *testing.T, r *gin.Engine, rawQuery string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/catalog/books?"+rawQuery, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestGetBooksUnknownSortKeyIs400(t *testing.T) {
	r := newCollectionTestRouter(t)

	w := getBooks(t, r, "sortKey=publisher")

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Invalid query", body["error"])
}

func TestGetBooksBuildsSpecFromQueryParams(t *testing.T) {
	r := newCollectionTestRouter(t)

	w := getBooks(t, r, "category=programming&available=true")
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Count int `json:"count"`
		Items []struct {
			Title string `json:"title"`
		} `json:"items"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Equal(t, 5, body.Count)
	assert.Equal(t, "Clean Code", body.Items[0].Title)
	assert.Equal(t, "The Pragmatic Programmer", body.Items[len(body.Items)-1].Title)
}

func TestGetBooksSearchAndDirection(t *testing.T) {
	r := newCollectionTestRouter(t)

	w := getBooks(t, r, "search=clean")
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Count int `json:"count"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, 1, body.Count)

	w = getBooks(t, r, "sortKey=year&sortDir=desc")
	require.Equal(t, http.StatusOK, w.Code)

	var ordered struct {
		Items []struct {
			Year int `json:"year"`
		} `json:"items"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &ordered))
	require.NotEmpty(t, ordered.Items)
	assert.Equal(t, 2018, ordered.Items[0].Year)
	assert.Equal(t, 1965, ordered.Items[len(ordered.Items)-1].Year)
}
