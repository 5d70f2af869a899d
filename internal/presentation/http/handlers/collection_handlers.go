// Package handlers provides HTTP request handlers for the presentation layer.
package handlers

import (
	"net/http"
	"time"

	"github.com/BiblioNova/bookhaven-go/internal/application/services"
	"github.com/BiblioNova/bookhaven-go/internal/domain/query"
	"github.com/BiblioNova/bookhaven-go/internal/domain/records"
	"github.com/BiblioNova/bookhaven-go/internal/infrastructure/observability/logging"
	"github.com/BiblioNova/bookhaven-go/internal/infrastructure/observability/performance"
	"github.com/gin-gonic/gin"
)

// CollectionHandlers serves the filtered, sorted views of every collection.
type CollectionHandlers struct {
	catalog     *services.CatalogService
	logger      *logging.ChanneledLogger
	perfTracker *performance.Tracker
}

// NewCollectionHandlers creates collection handlers with injected dependencies
func NewCollectionHandlers(catalog *services.CatalogService, logger *logging.ChanneledLogger, perfTracker *performance.Tracker) *CollectionHandlers {
	return &CollectionHandlers{
		catalog:     catalog,
		logger:      logger,
		perfTracker: perfTracker,
	}
}

// buildSpec assembles an immutable query spec from the request's query
// parameters. Each request builds a fresh spec; nothing is carried over.
func buildSpec(c *gin.Context, defaultSortKey string, predicateKeys ...string) query.Spec {
	spec := query.NewSpec(defaultSortKey)

	if term := c.Query("search"); term != "" {
		spec = spec.WithSearch(term)
	}

	for _, key := range predicateKeys {
		if values, ok := c.GetQueryArray(key); ok {
			spec = spec.WithPredicate(key, values...)
		}
	}

	sortKey := c.DefaultQuery("sortKey", defaultSortKey)
	spec = spec.WithSort(sortKey, query.ParseDirection(c.Query("sortDir")))

	return spec
}

// GetBooks handles GET /api/v1/catalog/books
func (h *CollectionHandlers) GetBooks(c *gin.Context) {
	marker := h.perfTracker.StartOperation("http:get_books")
	defer marker.Complete()

	spec := buildSpec(c, "title", "category", "language", "available")

	books, err := h.catalog.QueryBooks(spec)
	if err != nil {
		marker.SetError(err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query"})
		return
	}

	if books == nil {
		books = []records.CatalogItem{}
	}
	marker.SetSuccess(true)
	c.JSON(http.StatusOK, gin.H{"items": books, "count": len(books)})
}

// loanView is a loan plus its derived days-remaining for the response body.
type loanView struct {
	records.LoanRecord
	DaysRemaining int `json:"daysRemaining"`
}

// GetLoans handles GET /api/v1/loans
func (h *CollectionHandlers) GetLoans(c *gin.Context) {
	marker := h.perfTracker.StartOperation("http:get_loans")
	defer marker.Complete()

	spec := buildSpec(c, "dueDate", "category", "status")

	loans, err := h.catalog.QueryLoans(spec)
	if err != nil {
		marker.SetError(err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query"})
		return
	}

	now := time.Now()
	views := make([]loanView, len(loans))
	for i, loan := range loans {
		views[i] = loanView{LoanRecord: loan, DaysRemaining: loan.DaysRemaining(now)}
	}

	marker.SetSuccess(true)
	c.JSON(http.StatusOK, gin.H{"items": views, "count": len(views)})
}

// GetReservations handles GET /api/v1/reservations
func (h *CollectionHandlers) GetReservations(c *gin.Context) {
	marker := h.perfTracker.StartOperation("http:get_reservations")
	defer marker.Complete()

	spec := buildSpec(c, "reservationDate", "status")

	reservations, err := h.catalog.QueryReservations(spec)
	if err != nil {
		marker.SetError(err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query"})
		return
	}

	if reservations == nil {
		reservations = []records.ReservationRecord{}
	}
	marker.SetSuccess(true)
	c.JSON(http.StatusOK, gin.H{"items": reservations, "count": len(reservations)})
}

// GetHistory handles GET /api/v1/history
func (h *CollectionHandlers) GetHistory(c *gin.Context) {
	marker := h.perfTracker.StartOperation("http:get_history")
	defer marker.Complete()

	spec := buildSpec(c, "returnedDate", "category", "rating")

	history, err := h.catalog.QueryHistory(spec)
	if err != nil {
		marker.SetError(err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query"})
		return
	}

	if history == nil {
		history = []records.HistoryRecord{}
	}
	marker.SetSuccess(true)
	c.JSON(http.StatusOK, gin.H{"items": history, "count": len(history)})
}
