// Package records defines the domain entities the portal's collection views
// are built from: catalog items, loans, reservations, and history entries.
package records

import (
	"time"
)

// Record is implemented by every entity a collection view can filter and
// sort. IDs are unique within their own collection only.
type Record interface {
	RecordID() int
}

// CatalogItem is one book in the browsable catalog.
type CatalogItem struct {
	ID        int    `json:"id"`
	Title     string `json:"title"`
	Author    string `json:"author"`
	Category  string `json:"category"`
	Language  string `json:"language"`
	Year      int    `json:"year"`
	Available bool   `json:"available"`
}

// RecordID returns the catalog-scoped identifier.
func (c CatalogItem) RecordID() int { return c.ID }

// LoanRecord is one active borrowing. DaysRemaining is always derived from
// DueDate and the caller's clock; it is never stored.
type LoanRecord struct {
	ID       int       `json:"id"`
	Title    string    `json:"title"`
	Author   string    `json:"author"`
	Category string    `json:"category"`
	DueDate  time.Time `json:"dueDate"`
	Status   string    `json:"status"`
}

// RecordID returns the loan-scoped identifier.
func (l LoanRecord) RecordID() int { return l.ID }

// DaysRemaining derives the whole days left until the due date. Past-due
// loans yield negative values.
func (l LoanRecord) DaysRemaining(now time.Time) int {
	due := l.DueDate.Truncate(24 * time.Hour)
	today := now.Truncate(24 * time.Hour)
	return int(due.Sub(today).Hours() / 24)
}

// ReservationRecord is one outstanding hold on a catalog item.
type ReservationRecord struct {
	ID              int       `json:"id"`
	Title           string    `json:"title"`
	Author          string    `json:"author"`
	ReservationDate time.Time `json:"reservationDate"`
	Status          string    `json:"status"`
	QueuePosition   int       `json:"queuePosition"`
}

// RecordID returns the reservation-scoped identifier.
func (r ReservationRecord) RecordID() int { return r.ID }

// HistoryRecord is one completed borrowing in the reading history.
type HistoryRecord struct {
	ID           int       `json:"id"`
	Title        string    `json:"title"`
	Author       string    `json:"author"`
	Category     string    `json:"category"`
	ReturnedDate time.Time `json:"returnedDate"`
	Rating       int       `json:"rating"`
}

// RecordID returns the history-scoped identifier.
func (h HistoryRecord) RecordID() int { return h.ID }
