package catalog

import (
	"time"

	"github.com/BiblioNova/bookhaven-go/internal/domain/records"
)

func date(value string) time.Time {
	parsed, err := time.Parse(dateLayout, value)
	if err != nil {
		panic("catalog: bad seed date " + value)
	}
	return parsed
}

// SeedBooks returns the canonical 12-item mock catalog.
func SeedBooks() []records.CatalogItem {
	return []records.CatalogItem{
		{ID: 1, Title: "Introduction to Algorithms", Author: "Thomas H. Cormen", Category: "programming", Language: "english", Year: 2009, Available: false},
		{ID: 2, Title: "Data Structures and Algorithms", Author: "Alfred V. Aho", Category: "programming", Language: "english", Year: 1983, Available: true},
		{ID: 3, Title: "A Brief History of Time", Author: "Stephen Hawking", Category: "science", Language: "english", Year: 1988, Available: true},
		{ID: 4, Title: "Clean Code", Author: "Robert C. Martin", Category: "programming", Language: "english", Year: 2008, Available: true},
		{ID: 5, Title: "The Design of Everyday Things", Author: "Don Norman", Category: "design", Language: "english", Year: 2013, Available: true},
		{ID: 6, Title: "The Pragmatic Programmer", Author: "Andrew Hunt", Category: "programming", Language: "english", Year: 1999, Available: true},
		{ID: 7, Title: "JavaScript: The Good Parts", Author: "Douglas Crockford", Category: "programming", Language: "english", Year: 2008, Available: true},
		{ID: 8, Title: "Eloquent JavaScript", Author: "Marijn Haverbeke", Category: "programming", Language: "english", Year: 2018, Available: true},
		{ID: 9, Title: "Sapiens", Author: "Yuval Noah Harari", Category: "history", Language: "english", Year: 2011, Available: true},
		{ID: 10, Title: "The Mythical Man-Month", Author: "Frederick P. Brooks", Category: "programming", Language: "english", Year: 1975, Available: false},
		{ID: 11, Title: "Dune", Author: "Frank Herbert", Category: "fiction", Language: "english", Year: 1965, Available: true},
		{ID: 12, Title: "Thinking, Fast and Slow", Author: "Daniel Kahneman", Category: "psychology", Language: "english", Year: 2011, Available: false},
	}
}

// SeedLoans returns the mock active loans.
func SeedLoans() []records.LoanRecord {
	return []records.LoanRecord{
		{ID: 1, Title: "Introduction to Algorithms", Author: "Thomas H. Cormen", Category: "programming", DueDate: date("2026-09-15"), Status: "active"},
		{ID: 2, Title: "The Mythical Man-Month", Author: "Frederick P. Brooks", Category: "programming", DueDate: date("2026-09-05"), Status: "active"},
		{ID: 3, Title: "Thinking, Fast and Slow", Author: "Daniel Kahneman", Category: "psychology", DueDate: date("2026-08-25"), Status: "overdue"},
	}
}

// SeedReservations returns the mock outstanding reservations.
func SeedReservations() []records.ReservationRecord {
	return []records.ReservationRecord{
		{ID: 1, Title: "Clean Code", Author: "Robert C. Martin", ReservationDate: date("2026-08-20"), Status: "pending", QueuePosition: 2},
		{ID: 2, Title: "Dune", Author: "Frank Herbert", ReservationDate: date("2026-08-28"), Status: "ready", QueuePosition: 1},
	}
}

// SeedHistory returns the mock reading history.
func SeedHistory() []records.HistoryRecord {
	return []records.HistoryRecord{
		{ID: 1, Title: "A Brief History of Time", Author: "Stephen Hawking", Category: "science", ReturnedDate: date("2026-06-12"), Rating: 5},
		{ID: 2, Title: "Eloquent JavaScript", Author: "Marijn Haverbeke", Category: "programming", ReturnedDate: date("2026-05-03"), Rating: 4},
		{ID: 3, Title: "Sapiens", Author: "Yuval Noah Harari", Category: "history", ReturnedDate: date("2026-04-18"), Rating: 5},
		{ID: 4, Title: "The Design of Everyday Things", Author: "Don Norman", Category: "design", ReturnedDate: date("2026-03-02"), Rating: 3},
	}
}
