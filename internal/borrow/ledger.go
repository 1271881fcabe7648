// Package borrow реализует журнал выдач: выдачу, возврат, продление и расчёт штрафов.
package borrow

import (
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mmeshcher/libib/internal/clock"
	"github.com/mmeshcher/libib/internal/model"
)

const day = 24 * time.Hour

// Catalog описывает операции каталога, которые нужны журналу выдач.
type Catalog interface {
	Get(id string) (model.Book, bool)
	AdjustAvailability(bookID string, delta int) error
}

// Ledger - единственный владелец записей о выдачах и единственный источник расчёта штрафов.
type Ledger struct {
	mu      sync.RWMutex
	borrows []*model.Borrow
	index   map[string]*model.Borrow

	catalog Catalog
	rules   model.Rules
	newID   model.IDFunc
	clock   clock.Clock
}

// NewLedger создаёт журнал выдач с начальным набором записей.
func NewLedger(initial []model.Borrow, catalog Catalog, rules model.Rules, newID model.IDFunc, clk clock.Clock) *Ledger {
	l := &Ledger{
		borrows: make([]*model.Borrow, 0, len(initial)),
		index:   make(map[string]*model.Borrow, len(initial)),
		catalog: catalog,
		rules:   rules,
		newID:   newID,
		clock:   clk,
	}
	for _, b := range initial {
		rec := b
		l.borrows = append(l.borrows, &rec)
		l.index[rec.ID] = &rec
	}
	return l
}

// Borrow выдаёт пользователю экземпляр книги на срок выдачи.
func (l *Ledger) Borrow(userID, bookID string) (model.Borrow, error) {
	if userID == "" {
		return model.Borrow{}, model.ErrUnauthenticated
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	book, ok := l.catalog.Get(bookID)
	if !ok {
		return model.Borrow{}, fmt.Errorf("book %s: %w", bookID, model.ErrNotFound)
	}
	if book.AvailableCopies <= 0 {
		return model.Borrow{}, fmt.Errorf("book %s: %w", bookID, model.ErrUnavailable)
	}

	if err := l.catalog.AdjustAvailability(bookID, -1); err != nil {
		return model.Borrow{}, err
	}

	now := l.clock.Now()
	rec := &model.Borrow{
		ID:         l.newID("borrow"),
		BookID:     bookID,
		UserID:     userID,
		BorrowDate: now,
		DueDate:    now.AddDate(0, 0, l.rules.LoanDays),
	}
	l.borrows = append(l.borrows, rec)
	l.index[rec.ID] = rec

	return *rec, nil
}

// Return оформляет возврат книги. Штраф рассчитывается до отметки о возврате и фиксируется,
// если он больше нуля.
func (l *Ledger) Return(borrowID string) (model.Borrow, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	rec, ok := l.index[borrowID]
	if !ok {
		return model.Borrow{}, fmt.Errorf("borrow %s: %w", borrowID, model.ErrNotFound)
	}
	if rec.Returned {
		return model.Borrow{}, fmt.Errorf("borrow %s: %w", borrowID, model.ErrAlreadyReturned)
	}

	now := l.clock.Now()
	fine := l.fine(rec, now)

	if err := l.catalog.AdjustAvailability(rec.BookID, 1); err != nil {
		return model.Borrow{}, err
	}

	rec.Returned = true
	rec.ReturnedDate = &now
	rec.Fine = nil
	if fine.IsPositive() {
		rec.Fine = &fine
	}

	return *rec, nil
}

// Extend однократно продлевает активную выдачу, сохраняя исходный срок возврата.
func (l *Ledger) Extend(borrowID string) (model.Borrow, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	rec, ok := l.index[borrowID]
	if !ok {
		return model.Borrow{}, fmt.Errorf("borrow %s: %w", borrowID, model.ErrNotFound)
	}
	if rec.Returned {
		return model.Borrow{}, fmt.Errorf("borrow %s: %w", borrowID, model.ErrCannotExtendReturned)
	}
	if rec.Extended {
		return model.Borrow{}, fmt.Errorf("borrow %s: %w", borrowID, model.ErrAlreadyExtended)
	}

	original := rec.DueDate
	rec.OriginalDueDate = &original
	rec.DueDate = original.AddDate(0, 0, l.rules.ExtensionDays)
	rec.Extended = true

	return *rec, nil
}

// CalculateFine возвращает текущий штраф по активной выдаче.
// Для неизвестной или возвращённой выдачи штраф равен нулю.
func (l *Ledger) CalculateFine(borrowID string) decimal.Decimal {
	l.mu.RLock()
	defer l.mu.RUnlock()

	rec, ok := l.index[borrowID]
	if !ok {
		return decimal.Zero
	}
	return l.fine(rec, l.clock.Now())
}

// fine считает каждые начатые сутки просрочки как полный день.
func (l *Ledger) fine(rec *model.Borrow, now time.Time) decimal.Decimal {
	if rec.Returned {
		return decimal.Zero
	}

	late := now.Sub(rec.DueDate)
	if late <= 0 {
		return decimal.Zero
	}

	days := int64(late / day)
	if late%day != 0 {
		days++
	}
	return l.rules.FinePerDay.Mul(decimal.NewFromInt(days))
}

// ClearFine снимает зафиксированный штраф после оплаты. Штраф снимается только
// с выдачи пользователя userID; неизвестный или чужой id игнорируется.
func (l *Ledger) ClearFine(userID, borrowID string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if rec, ok := l.index[borrowID]; ok && rec.UserID == userID {
		rec.Fine = nil
	}
}

// Get возвращает выдачу по идентификатору.
func (l *Ledger) Get(borrowID string) (model.Borrow, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	rec, ok := l.index[borrowID]
	if !ok {
		return model.Borrow{}, false
	}
	return *rec, true
}

// ListByUser возвращает все выдачи пользователя в порядке создания.
func (l *Ledger) ListByUser(userID string) []model.Borrow {
	l.mu.RLock()
	defer l.mu.RUnlock()

	res := make([]model.Borrow, 0)
	for _, rec := range l.borrows {
		if rec.UserID == userID {
			res = append(res, *rec)
		}
	}
	return res
}

// ListActive возвращает все невозвращённые выдачи.
func (l *Ledger) ListActive() []model.Borrow {
	l.mu.RLock()
	defer l.mu.RUnlock()

	res := make([]model.Borrow, 0)
	for _, rec := range l.borrows {
		if rec.Active() {
			res = append(res, *rec)
		}
	}
	return res
}
