package borrow

import (
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmeshcher/libib/internal/catalog"
	"github.com/mmeshcher/libib/internal/clock"
	"github.com/mmeshcher/libib/internal/model"
)

var start = time.Date(2026, 3, 2, 9, 30, 0, 0, time.UTC)

func sequentialIDs() model.IDFunc {
	n := 0
	return func(kind string) string {
		n++
		return fmt.Sprintf("%s-%d", kind, n)
	}
}

func newTestLedger(t *testing.T, books ...model.Book) (*Ledger, *catalog.Store, *clock.Mock) {
	t.Helper()

	if len(books) == 0 {
		books = []model.Book{{ID: "B1", Title: "Dune", Copies: 2, AvailableCopies: 2}}
	}
	store := catalog.NewStore(books)
	clk := clock.NewMock(start)
	return NewLedger(nil, store, model.DefaultRules(), sequentialIDs(), clk), store, clk
}

func available(t *testing.T, store *catalog.Store, id string) int {
	t.Helper()

	b, ok := store.Get(id)
	require.True(t, ok)
	return b.AvailableCopies
}

func TestLedger_Borrow(t *testing.T) {
	l, store, _ := newTestLedger(t)

	rec, err := l.Borrow("U1", "B1")
	require.NoError(t, err)

	assert.Equal(t, 1, available(t, store, "B1"))
	assert.Equal(t, "B1", rec.BookID)
	assert.Equal(t, "U1", rec.UserID)
	assert.Equal(t, start, rec.BorrowDate)
	assert.Equal(t, start.Add(14*24*time.Hour), rec.DueDate)
	assert.False(t, rec.Returned)
	assert.False(t, rec.Extended)
	assert.Nil(t, rec.Fine)

	got, ok := l.Get(rec.ID)
	require.True(t, ok)
	assert.Equal(t, rec, got)
}

func TestLedger_BorrowErrors(t *testing.T) {
	l, store, _ := newTestLedger(t,
		model.Book{ID: "B1", Copies: 1, AvailableCopies: 0},
	)

	_, err := l.Borrow("", "B1")
	assert.ErrorIs(t, err, model.ErrUnauthenticated)

	_, err = l.Borrow("U1", "missing")
	assert.ErrorIs(t, err, model.ErrNotFound)

	_, err = l.Borrow("U1", "B1")
	assert.ErrorIs(t, err, model.ErrUnavailable)

	assert.Equal(t, 0, available(t, store, "B1"))
	assert.Empty(t, l.ListByUser("U1"))
}

func TestLedger_ReturnOnTime(t *testing.T) {
	l, store, clk := newTestLedger(t)

	rec, err := l.Borrow("U1", "B1")
	require.NoError(t, err)

	clk.Add(3 * 24 * time.Hour)

	returned, err := l.Return(rec.ID)
	require.NoError(t, err)

	assert.True(t, returned.Returned)
	require.NotNil(t, returned.ReturnedDate)
	assert.Equal(t, clk.Now(), *returned.ReturnedDate)
	assert.Nil(t, returned.Fine)
	assert.Equal(t, 2, available(t, store, "B1"))

	_, err = l.Return(rec.ID)
	assert.ErrorIs(t, err, model.ErrAlreadyReturned)
	assert.Equal(t, 2, available(t, store, "B1"))

	_, err = l.Return("missing")
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestLedger_ReturnOverdueFreezesFine(t *testing.T) {
	l, store, clk := newTestLedger(t)

	rec, err := l.Borrow("U1", "B1")
	require.NoError(t, err)

	clk.Add(16 * 24 * time.Hour)

	returned, err := l.Return(rec.ID)
	require.NoError(t, err)
	require.NotNil(t, returned.Fine)
	assert.True(t, decimal.RequireFromString("1.0").Equal(*returned.Fine))
	assert.Equal(t, 2, available(t, store, "B1"))

	clk.Add(10 * 24 * time.Hour)

	got, _ := l.Get(rec.ID)
	assert.True(t, decimal.RequireFromString("1.0").Equal(*got.Fine), "fine is frozen at return")
	assert.True(t, l.CalculateFine(rec.ID).IsZero(), "returned loans accrue nothing")
}

func TestLedger_CalculateFine(t *testing.T) {
	tests := []struct {
		name    string
		elapsed time.Duration
		want    string
	}{
		{name: "before due date", elapsed: 10 * 24 * time.Hour, want: "0"},
		{name: "exactly at due date", elapsed: 14 * 24 * time.Hour, want: "0"},
		{name: "one second late counts a full day", elapsed: 14*24*time.Hour + time.Second, want: "0.5"},
		{name: "exactly two days late", elapsed: 16 * 24 * time.Hour, want: "1"},
		{name: "two days and an hour late", elapsed: 16*24*time.Hour + time.Hour, want: "1.5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, _, clk := newTestLedger(t)

			rec, err := l.Borrow("U1", "B1")
			require.NoError(t, err)

			clk.Add(tt.elapsed)

			got := l.CalculateFine(rec.ID)
			assert.True(t, decimal.RequireFromString(tt.want).Equal(got), "fine = %s, want %s", got, tt.want)
		})
	}
}

func TestLedger_CalculateFineUnknown(t *testing.T) {
	l, _, _ := newTestLedger(t)

	assert.True(t, l.CalculateFine("missing").IsZero())
}

func TestLedger_ExtendOnce(t *testing.T) {
	l, store, _ := newTestLedger(t)

	rec, err := l.Borrow("U1", "B1")
	require.NoError(t, err)
	oldDue := rec.DueDate

	extended, err := l.Extend(rec.ID)
	require.NoError(t, err)

	assert.True(t, extended.Extended)
	require.NotNil(t, extended.OriginalDueDate)
	assert.Equal(t, oldDue, *extended.OriginalDueDate)
	assert.Equal(t, oldDue.Add(7*24*time.Hour), extended.DueDate)
	assert.Equal(t, 1, available(t, store, "B1"), "extension must not touch availability")

	_, err = l.Extend(rec.ID)
	assert.ErrorIs(t, err, model.ErrAlreadyExtended)

	got, _ := l.Get(rec.ID)
	assert.Equal(t, extended.DueDate, got.DueDate)
}

func TestLedger_ExtendErrors(t *testing.T) {
	l, _, _ := newTestLedger(t)

	_, err := l.Extend("missing")
	assert.ErrorIs(t, err, model.ErrNotFound)

	rec, err := l.Borrow("U1", "B1")
	require.NoError(t, err)
	_, err = l.Return(rec.ID)
	require.NoError(t, err)

	_, err = l.Extend(rec.ID)
	assert.ErrorIs(t, err, model.ErrCannotExtendReturned)
	assert.ErrorIs(t, err, model.ErrAlreadyReturned)
}

func TestLedger_ClearFine(t *testing.T) {
	l, _, clk := newTestLedger(t)

	rec, err := l.Borrow("U1", "B1")
	require.NoError(t, err)
	clk.Add(20 * 24 * time.Hour)
	returned, err := l.Return(rec.ID)
	require.NoError(t, err)
	require.NotNil(t, returned.Fine)

	l.ClearFine("U2", rec.ID)
	got, _ := l.Get(rec.ID)
	require.NotNil(t, got.Fine, "fine of another user's borrow stays")

	l.ClearFine("U1", rec.ID)
	l.ClearFine("U1", "missing")

	got, _ = l.Get(rec.ID)
	assert.Nil(t, got.Fine)
	assert.True(t, got.Returned)
	assert.Equal(t, returned.DueDate, got.DueDate)
}

func TestLedger_AvailabilityNeverNegative(t *testing.T) {
	l, store, _ := newTestLedger(t, model.Book{ID: "B1", Copies: 1, AvailableCopies: 1})

	_, err := l.Borrow("U1", "B1")
	require.NoError(t, err)
	_, err = l.Borrow("U2", "B1")
	require.ErrorIs(t, err, model.ErrUnavailable)

	assert.Equal(t, 0, available(t, store, "B1"))
}

func TestLedger_ListByUserAndActive(t *testing.T) {
	l, _, _ := newTestLedger(t, model.Book{ID: "B1", Copies: 5, AvailableCopies: 5})

	a, err := l.Borrow("U1", "B1")
	require.NoError(t, err)
	b, err := l.Borrow("U1", "B1")
	require.NoError(t, err)
	_, err = l.Borrow("U2", "B1")
	require.NoError(t, err)

	_, err = l.Return(a.ID)
	require.NoError(t, err)

	mine := l.ListByUser("U1")
	require.Len(t, mine, 2)
	assert.Equal(t, a.ID, mine[0].ID)
	assert.Equal(t, b.ID, mine[1].ID)

	assert.Len(t, l.ListActive(), 2)
}
