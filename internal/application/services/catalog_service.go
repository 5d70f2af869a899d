// Package services provides application-level orchestration services
package services

import (
	"fmt"
	"time"

	"github.com/BiblioNova/bookhaven-go/internal/domain/query"
	"github.com/BiblioNova/bookhaven-go/internal/domain/records"
	"github.com/BiblioNova/bookhaven-go/internal/infrastructure/observability/logging"
	"github.com/BiblioNova/bookhaven-go/internal/infrastructure/observability/performance"
	"github.com/BiblioNova/bookhaven-go/internal/infrastructure/persistence/catalog"
)

// CatalogService serves every collection view in the portal. Collections are
// loaded once from the store; each query evaluates a fresh spec against the
// cached record set through the query engine.
type CatalogService struct {
	books        []records.Record
	loans        []records.Record
	reservations []records.Record
	history      []records.Record

	bookEngine        *query.Engine
	loanEngine        *query.Engine
	reservationEngine *query.Engine
	historyEngine     *query.Engine

	logger      *logging.ChanneledLogger
	perfTracker *performance.Tracker
}

// NewCatalogService loads all collections and builds their query engines.
// Schema errors are programming errors and fail construction.
func NewCatalogService(repo *catalog.Repository, logger *logging.ChanneledLogger, perfTracker *performance.Tracker) (*CatalogService, error) {
	service := &CatalogService{
		logger:      logger,
		perfTracker: perfTracker,
	}

	bookSchema, err := bookSchema()
	if err != nil {
		return nil, fmt.Errorf("book schema: %w", err)
	}
	loanSchema, err := loanSchema()
	if err != nil {
		return nil, fmt.Errorf("loan schema: %w", err)
	}
	reservationSchema, err := reservationSchema()
	if err != nil {
		return nil, fmt.Errorf("reservation schema: %w", err)
	}
	historySchema, err := historySchema()
	if err != nil {
		return nil, fmt.Errorf("history schema: %w", err)
	}

	service.bookEngine = query.NewEngine(bookSchema)
	service.loanEngine = query.NewEngine(loanSchema)
	service.reservationEngine = query.NewEngine(reservationSchema)
	service.historyEngine = query.NewEngine(historySchema)

	books, err := repo.LoadBooks()
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}
	for _, book := range books {
		service.books = append(service.books, book)
	}

	loans, err := repo.LoadLoans()
	if err != nil {
		return nil, fmt.Errorf("failed to load loans: %w", err)
	}
	for _, loan := range loans {
		service.loans = append(service.loans, loan)
	}

	reservations, err := repo.LoadReservations()
	if err != nil {
		return nil, fmt.Errorf("failed to load reservations: %w", err)
	}
	for _, res := range reservations {
		service.reservations = append(service.reservations, res)
	}

	history, err := repo.LoadHistory()
	if err != nil {
		return nil, fmt.Errorf("failed to load history: %w", err)
	}
	for _, entry := range history {
		service.history = append(service.history, entry)
	}

	logger.Catalog().Info("Collections loaded",
		"books", len(service.books),
		"loans", len(service.loans),
		"reservations", len(service.reservations),
		"history", len(service.history),
	)

	return service, nil
}

// QueryBooks evaluates a spec against the catalog.
func (s *CatalogService) QueryBooks(spec query.Spec) ([]records.CatalogItem, error) {
	view, err := s.evaluate("catalog:query_books", s.bookEngine, s.books, spec)
	if err != nil {
		return nil, err
	}
	books := make([]records.CatalogItem, len(view))
	for i, rec := range view {
		books[i] = rec.(records.CatalogItem)
	}
	return books, nil
}

// QueryLoans evaluates a spec against the active loans.
func (s *CatalogService) QueryLoans(spec query.Spec) ([]records.LoanRecord, error) {
	view, err := s.evaluate("catalog:query_loans", s.loanEngine, s.loans, spec)
	if err != nil {
		return nil, err
	}
	loans := make([]records.LoanRecord, len(view))
	for i, rec := range view {
		loans[i] = rec.(records.LoanRecord)
	}
	return loans, nil
}

// QueryReservations evaluates a spec against the outstanding reservations.
func (s *CatalogService) QueryReservations(spec query.Spec) ([]records.ReservationRecord, error) {
	view, err := s.evaluate("catalog:query_reservations", s.reservationEngine, s.reservations, spec)
	if err != nil {
		return nil, err
	}
	reservations := make([]records.ReservationRecord, len(view))
	for i, rec := range view {
		reservations[i] = rec.(records.ReservationRecord)
	}
	return reservations, nil
}

// QueryHistory evaluates a spec against the reading history.
func (s *CatalogService) QueryHistory(spec query.Spec) ([]records.HistoryRecord, error) {
	view, err := s.evaluate("catalog:query_history", s.historyEngine, s.history, spec)
	if err != nil {
		return nil, err
	}
	history := make([]records.HistoryRecord, len(view))
	for i, rec := range view {
		history[i] = rec.(records.HistoryRecord)
	}
	return history, nil
}

func (s *CatalogService) evaluate(operation string, engine *query.Engine, recs []records.Record, spec query.Spec) ([]records.Record, error) {
	start := time.Now()
	logger := s.logger.WithOperation(logging.ChannelCatalog, operation)
	marker := s.perfTracker.StartOperation(operation)
	defer marker.Complete()

	view, err := engine.Evaluate(recs, spec)
	if err != nil {
		logger.Error("Query evaluation failed", "sortKey", spec.SortKey, "error", err.Error())
		marker.SetError(err)
		return nil, err
	}

	marker.AddMetadata("matches", len(view))
	logger.Debug("Query evaluated", "matches", len(view), "duration", time.Since(start))
	return view, nil
}

func bookSchema() (*query.Schema, error) {
	return query.NewSchema(
		query.Field{Key: "id", Kind: query.KindNumeric, Numeric: func(r records.Record) float64 { return float64(r.(records.CatalogItem).ID) }},
		query.Field{Key: "title", Kind: query.KindText, Searchable: true, Text: func(r records.Record) string { return r.(records.CatalogItem).Title }},
		query.Field{Key: "author", Kind: query.KindText, Searchable: true, Text: func(r records.Record) string { return r.(records.CatalogItem).Author }},
		query.Field{Key: "category", Kind: query.KindCategorical, Text: func(r records.Record) string { return r.(records.CatalogItem).Category }},
		query.Field{Key: "language", Kind: query.KindCategorical, Text: func(r records.Record) string { return r.(records.CatalogItem).Language }},
		query.Field{Key: "year", Kind: query.KindNumeric, Numeric: func(r records.Record) float64 { return float64(r.(records.CatalogItem).Year) }},
		query.Field{Key: "available", Kind: query.KindFlag, Flag: func(r records.Record) bool { return r.(records.CatalogItem).Available }},
	)
}

func loanSchema() (*query.Schema, error) {
	return query.NewSchema(
		query.Field{Key: "id", Kind: query.KindNumeric, Numeric: func(r records.Record) float64 { return float64(r.(records.LoanRecord).ID) }},
		query.Field{Key: "title", Kind: query.KindText, Searchable: true, Text: func(r records.Record) string { return r.(records.LoanRecord).Title }},
		query.Field{Key: "author", Kind: query.KindText, Searchable: true, Text: func(r records.Record) string { return r.(records.LoanRecord).Author }},
		query.Field{Key: "category", Kind: query.KindCategorical, Text: func(r records.Record) string { return r.(records.LoanRecord).Category }},
		query.Field{Key: "dueDate", Kind: query.KindDate, Date: func(r records.Record) time.Time { return r.(records.LoanRecord).DueDate }},
		query.Field{Key: "status", Kind: query.KindCategorical, Text: func(r records.Record) string { return r.(records.LoanRecord).Status }},
	)
}

func reservationSchema() (*query.Schema, error) {
	return query.NewSchema(
		query.Field{Key: "id", Kind: query.KindNumeric, Numeric: func(r records.Record) float64 { return float64(r.(records.ReservationRecord).ID) }},
		query.Field{Key: "title", Kind: query.KindText, Searchable: true, Text: func(r records.Record) string { return r.(records.ReservationRecord).Title }},
		query.Field{Key: "author", Kind: query.KindText, Searchable: true, Text: func(r records.Record) string { return r.(records.ReservationRecord).Author }},
		query.Field{Key: "reservationDate", Kind: query.KindDate, Date: func(r records.Record) time.Time { return r.(records.ReservationRecord).ReservationDate }},
		query.Field{Key: "status", Kind: query.KindCategorical, Text: func(r records.Record) string { return r.(records.ReservationRecord).Status }},
	)
}

func historySchema() (*query.Schema, error) {
	return query.NewSchema(
		query.Field{Key: "id", Kind: query.KindNumeric, Numeric: func(r records.Record) float64 { return float64(r.(records.HistoryRecord).ID) }},
		query.Field{Key: "title", Kind: query.KindText, Searchable: true, Text: func(r records.Record) string { return r.(records.HistoryRecord).Title }},
		query.Field{Key: "author", Kind: query.KindText, Searchable: true, Text: func(r records.Record) string { return r.(records.HistoryRecord).Author }},
		query.Field{Key: "category", Kind: query.KindCategorical, Text: func(r records.Record) string { return r.(records.HistoryRecord).Category }},
		query.Field{Key: "returnedDate", Kind: query.KindDate, Date: func(r records.Record) time.Time { return r.(records.HistoryRecord).ReturnedDate }},
		query.Field{Key: "rating", Kind: query.KindNumeric, Numeric: func(r records.Record) float64 { return float64(r.(records.HistoryRecord).Rating) }},
	)
}
