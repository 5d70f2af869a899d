package records

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDaysRemainingIsDerivedFromClock(t *testing.T) {
	loan := LoanRecord{ID: 1, DueDate: time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)}

	tests := []struct {
		name string
		now  time.Time
		want int
	}{
		{name: "ten days out", now: time.Date(2026, 9, 5, 0, 0, 0, 0, time.UTC), want: 10},
		{name: "due today", now: time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC), want: 0},
		{name: "overdue goes negative", now: time.Date(2026, 9, 18, 0, 0, 0, 0, time.UTC), want: -3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, loan.DaysRemaining(tt.now))
		})
	}
}
