// Package catalog provides the SQL-backed store for the portal's mock
// collections: catalog items, loans, reservations, and reading history.
// The store is created and seeded on first start so every page queries the
// same canonical record sets.
package catalog

import (
	"fmt"
	"time"

	"github.com/BiblioNova/bookhaven-go/internal/domain/records"
	"github.com/BiblioNova/bookhaven-go/internal/infrastructure/observability/logging"
	"github.com/BiblioNova/bookhaven-go/internal/infrastructure/persistence/database"
	"github.com/BiblioNova/bookhaven-go/pkg/config"
)

const dateLayout = "2006-01-02"

// Repository is the SQL-based store for all portal collections.
type Repository struct {
	db     *database.DB
	logger *logging.ChanneledLogger
}

// NewRepository creates a new instance of the repository.
func NewRepository(db *database.DB, logger *logging.ChanneledLogger) *Repository {
	return &Repository{
		db:     db,
		logger: logger,
	}
}

var tables = []string{
	`CREATE TABLE IF NOT EXISTS books (
		id INTEGER PRIMARY KEY,
		title TEXT NOT NULL,
		author TEXT NOT NULL,
		category TEXT NOT NULL,
		language TEXT NOT NULL,
		year INTEGER NOT NULL,
		available INTEGER NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS loans (
		id INTEGER PRIMARY KEY,
		title TEXT NOT NULL,
		author TEXT NOT NULL,
		category TEXT NOT NULL,
		due_date TEXT NOT NULL,
		status TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS reservations (
		id INTEGER PRIMARY KEY,
		title TEXT NOT NULL,
		author TEXT NOT NULL,
		reservation_date TEXT NOT NULL,
		status TEXT NOT NULL,
		queue_position INTEGER NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS history (
		id INTEGER PRIMARY KEY,
		title TEXT NOT NULL,
		author TEXT NOT NULL,
		category TEXT NOT NULL,
		returned_date TEXT NOT NULL,
		rating INTEGER NOT NULL
	)`,
}

var indexes = []string{
	`CREATE INDEX IF NOT EXISTS idx_books_category ON books(category)`,
	`CREATE INDEX IF NOT EXISTS idx_books_available ON books(available)`,
}

// CreateSchema executes all queries needed to build the collection tables.
func (r *Repository) CreateSchema() error {
	for _, tableSQL := range tables {
		if _, err := r.db.Exec(tableSQL); err != nil {
			return fmt.Errorf("failed to create table for query [%s]: %w", tableSQL, err)
		}
	}

	for _, indexSQL := range indexes {
		if _, err := r.db.Exec(indexSQL); err != nil {
			return fmt.Errorf("failed to create index for query [%s]: %w", indexSQL, err)
		}
	}
	return nil
}

// SeedCollections idempotently inserts the canonical mock record sets.
func (r *Repository) SeedCollections() error {
	var count int
	if err := r.db.QueryRow("SELECT COUNT(*) FROM books").Scan(&count); err != nil {
		return fmt.Errorf("failed to check books seed state: %w", err)
	}
	if count > 0 {
		r.logger.Database().Debug("Collections already seeded", "books", count)
		return nil
	}

	start := time.Now()

	for _, book := range SeedBooks() {
		available := 0
		if book.Available {
			available = 1
		}
		if _, err := r.db.Exec(
			`INSERT INTO books (id, title, author, category, language, year, available) VALUES (?, ?, ?, ?, ?, ?, ?)`,
			book.ID, book.Title, book.Author, book.Category, book.Language, book.Year, available,
		); err != nil {
			return fmt.Errorf("failed to seed book %d: %w", book.ID, err)
		}
	}

	for _, loan := range SeedLoans() {
		if _, err := r.db.Exec(
			`INSERT INTO loans (id, title, author, category, due_date, status) VALUES (?, ?, ?, ?, ?, ?)`,
			loan.ID, loan.Title, loan.Author, loan.Category, loan.DueDate.Format(dateLayout), loan.Status,
		); err != nil {
			return fmt.Errorf("failed to seed loan %d: %w", loan.ID, err)
		}
	}

	for _, res := range SeedReservations() {
		if _, err := r.db.Exec(
			`INSERT INTO reservations (id, title, author, reservation_date, status, queue_position) VALUES (?, ?, ?, ?, ?, ?)`,
			res.ID, res.Title, res.Author, res.ReservationDate.Format(dateLayout), res.Status, res.QueuePosition,
		); err != nil {
			return fmt.Errorf("failed to seed reservation %d: %w", res.ID, err)
		}
	}

	for _, entry := range SeedHistory() {
		if _, err := r.db.Exec(
			`INSERT INTO history (id, title, author, category, returned_date, rating) VALUES (?, ?, ?, ?, ?, ?)`,
			entry.ID, entry.Title, entry.Author, entry.Category, entry.ReturnedDate.Format(dateLayout), entry.Rating,
		); err != nil {
			return fmt.Errorf("failed to seed history entry %d: %w", entry.ID, err)
		}
	}

	r.logger.Database().Info("Collections seeded", "duration", time.Since(start))
	return nil
}

// LoadBooks retrieves the full catalog.
func (r *Repository) LoadBooks() ([]records.CatalogItem, error) {
	const query = `
		SELECT id, title, author, category, language, year, available
		FROM books
		ORDER BY id`

	start := time.Now()
	rows, err := r.db.Query(query)
	if err != nil {
		r.logger.Database().Error("Failed to load books", "error", err.Error())
		return nil, err
	}
	defer rows.Close()

	var books []records.CatalogItem
	for rows.Next() {
		var book records.CatalogItem
		var available int
		if err := rows.Scan(&book.ID, &book.Title, &book.Author, &book.Category, &book.Language, &book.Year, &available); err != nil {
			return nil, err
		}
		book.Available = available != 0
		books = append(books, book)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	r.logSlow(query, time.Since(start))
	return books, nil
}

// LoadLoans retrieves the active loans.
func (r *Repository) LoadLoans() ([]records.LoanRecord, error) {
	const query = `
		SELECT id, title, author, category, due_date, status
		FROM loans
		ORDER BY id`

	start := time.Now()
	rows, err := r.db.Query(query)
	if err != nil {
		r.logger.Database().Error("Failed to load loans", "error", err.Error())
		return nil, err
	}
	defer rows.Close()

	var loans []records.LoanRecord
	for rows.Next() {
		var loan records.LoanRecord
		var due string
		if err := rows.Scan(&loan.ID, &loan.Title, &loan.Author, &loan.Category, &due, &loan.Status); err != nil {
			return nil, err
		}
		loan.DueDate, err = time.Parse(dateLayout, due)
		if err != nil {
			return nil, fmt.Errorf("loan %d has malformed due date %q: %w", loan.ID, due, err)
		}
		loans = append(loans, loan)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	r.logSlow(query, time.Since(start))
	return loans, nil
}

// LoadReservations retrieves the outstanding reservations.
func (r *Repository) LoadReservations() ([]records.ReservationRecord, error) {
	const query = `
		SELECT id, title, author, reservation_date, status, queue_position
		FROM reservations
		ORDER BY id`

	start := time.Now()
	rows, err := r.db.Query(query)
	if err != nil {
		r.logger.Database().Error("Failed to load reservations", "error", err.Error())
		return nil, err
	}
	defer rows.Close()

	var reservations []records.ReservationRecord
	for rows.Next() {
		var res records.ReservationRecord
		var reserved string
		if err := rows.Scan(&res.ID, &res.Title, &res.Author, &reserved, &res.Status, &res.QueuePosition); err != nil {
			return nil, err
		}
		res.ReservationDate, err = time.Parse(dateLayout, reserved)
		if err != nil {
			return nil, fmt.Errorf("reservation %d has malformed date %q: %w", res.ID, reserved, err)
		}
		reservations = append(reservations, res)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	r.logSlow(query, time.Since(start))
	return reservations, nil
}

// LoadHistory retrieves the reading history.
func (r *Repository) LoadHistory() ([]records.HistoryRecord, error) {
	const query = `
		SELECT id, title, author, category, returned_date, rating
		FROM history
		ORDER BY id`

	start := time.Now()
	rows, err := r.db.Query(query)
	if err != nil {
		r.logger.Database().Error("Failed to load history", "error", err.Error())
		return nil, err
	}
	defer rows.Close()

	var history []records.HistoryRecord
	for rows.Next() {
		var entry records.HistoryRecord
		var returned string
		if err := rows.Scan(&entry.ID, &entry.Title, &entry.Author, &entry.Category, &returned, &entry.Rating); err != nil {
			return nil, err
		}
		entry.ReturnedDate, err = time.Parse(dateLayout, returned)
		if err != nil {
			return nil, fmt.Errorf("history entry %d has malformed date %q: %w", entry.ID, returned, err)
		}
		history = append(history, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	r.logSlow(query, time.Since(start))
	return history, nil
}

func (r *Repository) logSlow(query string, duration time.Duration) {
	if duration > config.SlowQueryThresh {
		r.logger.LogSlowQuery(query, duration)
	}
}
