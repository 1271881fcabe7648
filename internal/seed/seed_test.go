package seed

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewIDGenerator(t *testing.T) {
	gen := NewIDGenerator()

	a := gen("borrow")
	b := gen("borrow")

	assert.True(t, strings.HasPrefix(a, "borrow-"))
	assert.NotEqual(t, a, b)
}

func TestLoad_AvailabilityMatchesActiveLoans(t *testing.T) {
	now := time.Date(2026, 6, 1, 8, 0, 0, 0, time.UTC)
	data := Load(now)

	active := make(map[string]int)
	for _, b := range data.Borrows {
		if !b.Returned {
			active[b.BookID]++
		}
	}

	for _, book := range data.Books {
		require.GreaterOrEqual(t, book.AvailableCopies, 0, book.ID)
		require.LessOrEqual(t, book.AvailableCopies, book.Copies, book.ID)
		assert.Equal(t, book.Copies-active[book.ID], book.AvailableCopies, book.ID)
	}
}

func TestLoad_BorrowInvariants(t *testing.T) {
	now := time.Date(2026, 6, 1, 8, 0, 0, 0, time.UTC)
	data := Load(now)

	var overdue int
	for _, b := range data.Borrows {
		if b.Returned {
			require.NotNil(t, b.ReturnedDate, b.ID)
		}
		if b.Extended {
			require.NotNil(t, b.OriginalDueDate, b.ID)
			assert.Equal(t, b.OriginalDueDate.AddDate(0, 0, 7), b.DueDate, b.ID)
		}
		if b.Overdue(now) {
			overdue++
		}
	}
	assert.Equal(t, 1, overdue)
}
