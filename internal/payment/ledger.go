// Package payment реализует платёжный журнал: оплату штрафов и учёт сборов за продление.
package payment

import (
	"sync"

	"github.com/shopspring/decimal"

	"github.com/mmeshcher/libib/internal/clock"
	"github.com/mmeshcher/libib/internal/model"
)

// FineClearer снимает штраф с выдачи пользователя после оплаты.
type FineClearer interface {
	ClearFine(userID, borrowID string)
}

// Ledger - журнал платежей, записи в который только добавляются.
type Ledger struct {
	mu       sync.RWMutex
	payments []model.Payment

	fines FineClearer
	newID model.IDFunc
	clock clock.Clock
}

// NewLedger создаёт платёжный журнал с начальным набором записей.
func NewLedger(initial []model.Payment, fines FineClearer, newID model.IDFunc, clk clock.Clock) *Ledger {
	payments := make([]model.Payment, len(initial))
	copy(payments, initial)

	return &Ledger{
		payments: payments,
		fines:    fines,
		newID:    newID,
		clock:    clk,
	}
}

// Pay записывает оплату штрафа и снимает штраф с выдачи, если она принадлежит userID.
// Сумма не сверяется с фактическим долгом: её передаёт вызывающая сторона.
func (l *Ledger) Pay(userID, borrowID string, amount decimal.Decimal) (model.Payment, error) {
	if userID == "" {
		return model.Payment{}, model.ErrUnauthenticated
	}

	p := l.record(userID, borrowID, amount, model.PaymentReasonLateFine)
	l.fines.ClearFine(userID, borrowID)

	return p, nil
}

// RecordExtensionFee записывает сбор за продление. Журнал выдач не затрагивается.
func (l *Ledger) RecordExtensionFee(userID, borrowID string, amount decimal.Decimal) model.Payment {
	return l.record(userID, borrowID, amount, model.PaymentReasonExtensionFee)
}

func (l *Ledger) record(userID, borrowID string, amount decimal.Decimal, reason string) model.Payment {
	p := model.Payment{
		ID:          l.newID("payment"),
		UserID:      userID,
		BorrowID:    borrowID,
		Amount:      amount,
		Status:      model.PaymentStatusCompleted,
		PaymentDate: l.clock.Now(),
		Reason:      reason,
	}

	l.mu.Lock()
	l.payments = append(l.payments, p)
	l.mu.Unlock()

	return p
}

// ListByUser возвращает платежи пользователя в порядке создания.
func (l *Ledger) ListByUser(userID string) []model.Payment {
	l.mu.RLock()
	defer l.mu.RUnlock()

	res := make([]model.Payment, 0)
	for _, p := range l.payments {
		if p.UserID == userID {
			res = append(res, p)
		}
	}
	return res
}
