// Package service реализует операции библиотеки, доступные внешнему слою.
package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/mmeshcher/libib/internal/clock"
	"github.com/mmeshcher/libib/internal/model"
)

const dateLayout = "Jan 2, 2006"

// Catalog описывает операции чтения каталога.
type Catalog interface {
	Get(id string) (model.Book, bool)
	Search(query string) []model.Book
}

// BorrowLedger описывает контракт журнала выдач.
type BorrowLedger interface {
	Borrow(userID, bookID string) (model.Borrow, error)
	Return(borrowID string) (model.Borrow, error)
	Extend(borrowID string) (model.Borrow, error)
	CalculateFine(borrowID string) decimal.Decimal
	Get(borrowID string) (model.Borrow, bool)
	ListByUser(userID string) []model.Borrow
	ListActive() []model.Borrow
}

// PaymentLedger описывает контракт платёжного журнала.
type PaymentLedger interface {
	Pay(userID, borrowID string, amount decimal.Decimal) (model.Payment, error)
	RecordExtensionFee(userID, borrowID string, amount decimal.Decimal) model.Payment
	ListByUser(userID string) []model.Payment
}

// Notifier описывает контракт хранилища уведомлений.
type Notifier interface {
	Append(userID, message string, typ model.NotificationType, relatedID string) model.Notification
	List(userID string) []model.Notification
	MarkRead(userID, id string)
	MarkAllRead(userID string)
	UnreadCount(userID string) int
}

// Deps содержит компоненты, из которых собирается сервис.
type Deps struct {
	Catalog       Catalog
	Borrows       BorrowLedger
	Payments      PaymentLedger
	Notifications Notifier
	Users         []model.User
	Rules         model.Rules
	Clock         clock.Clock
	Logger        *zap.Logger
}

// Service объединяет каталог, журналы и уведомления. Каждая изменяющая операция
// выполняется целиком до начала следующей и сопровождается уведомлением пользователя.
type Service struct {
	mu sync.Mutex

	catalog       Catalog
	borrows       BorrowLedger
	payments      PaymentLedger
	notifications Notifier
	users         []model.User
	usersByID     map[string]model.User
	rules         model.Rules
	clock         clock.Clock
	logger        *zap.Logger

	remindedSoon    map[string]time.Time
	remindedOverdue map[string]time.Time
}

// NewService создаёт сервис библиотеки.
func NewService(d Deps) *Service {
	users := make([]model.User, len(d.Users))
	copy(users, d.Users)

	usersByID := make(map[string]model.User, len(users))
	for _, u := range users {
		usersByID[u.ID] = u
	}

	logger := d.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	clk := d.Clock
	if clk == nil {
		clk = clock.New()
	}

	return &Service{
		catalog:         d.Catalog,
		borrows:         d.Borrows,
		payments:        d.Payments,
		notifications:   d.Notifications,
		users:           users,
		usersByID:       usersByID,
		rules:           d.Rules,
		clock:           clk,
		logger:          logger,
		remindedSoon:    make(map[string]time.Time),
		remindedOverdue: make(map[string]time.Time),
	}
}

// Login находит подтверждённого пользователя по email. Пароль не проверяется.
// При совпадении email без учёта регистра выбирается первый пользователь в исходном порядке.
func (s *Service) Login(ctx context.Context, email string) (model.User, error) {
	email = strings.TrimSpace(email)
	for _, u := range s.users {
		if !strings.EqualFold(u.Email, email) {
			continue
		}
		if !u.Verified {
			return model.User{}, fmt.Errorf("user %s: %w", u.ID, model.ErrUnverified)
		}
		return u, nil
	}
	return model.User{}, fmt.Errorf("user %q: %w", email, model.ErrNotFound)
}

// User возвращает пользователя по идентификатору.
func (s *Service) User(id string) (model.User, bool) {
	u, ok := s.usersByID[id]
	return u, ok
}

// SearchBooks ищет книги по подстроке; пустой запрос возвращает весь каталог.
func (s *Service) SearchBooks(query string) []model.Book {
	return s.catalog.Search(query)
}

// GetBookByID возвращает книгу по идентификатору.
func (s *Service) GetBookByID(id string) (model.Book, bool) {
	return s.catalog.Get(id)
}

// GetBorrowByID возвращает выдачу текущего пользователя.
func (s *Service) GetBorrowByID(userID, borrowID string) (model.Borrow, bool) {
	b, err := s.ownedBorrow(userID, borrowID)
	return b, err == nil
}

// CalculateFine возвращает текущий штраф по выдаче пользователя.
func (s *Service) CalculateFine(userID, borrowID string) decimal.Decimal {
	if _, err := s.ownedBorrow(userID, borrowID); err != nil {
		return decimal.Zero
	}
	return s.borrows.CalculateFine(borrowID)
}

// Borrows возвращает выдачи пользователя.
func (s *Service) Borrows(userID string) []model.Borrow {
	return s.borrows.ListByUser(userID)
}

// Payments возвращает платежи пользователя.
func (s *Service) Payments(userID string) []model.Payment {
	return s.payments.ListByUser(userID)
}

// Notifications возвращает уведомления пользователя, начиная с новых.
func (s *Service) Notifications(userID string) []model.Notification {
	return s.notifications.List(userID)
}

// UnreadCount возвращает число непрочитанных уведомлений пользователя.
func (s *Service) UnreadCount(userID string) int {
	return s.notifications.UnreadCount(userID)
}

// MarkAsRead отмечает уведомление прочитанным.
func (s *Service) MarkAsRead(userID, id string) {
	s.notifications.MarkRead(userID, id)
}

// MarkAllAsRead отмечает прочитанными все уведомления пользователя.
func (s *Service) MarkAllAsRead(userID string) {
	s.notifications.MarkAllRead(userID)
}

// BorrowBook выдаёт книгу пользователю.
func (s *Service) BorrowBook(ctx context.Context, userID, bookID string) (model.Borrow, error) {
	if userID == "" {
		return model.Borrow{}, model.ErrUnauthenticated
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	b, err := s.borrows.Borrow(userID, bookID)
	if err != nil {
		return model.Borrow{}, err
	}

	title := s.bookTitle(b.BookID)
	s.notifications.Append(userID,
		fmt.Sprintf("You have borrowed '%s'. Due date: %s.", title, b.DueDate.Format(dateLayout)),
		model.NotificationBorrow, b.BookID)

	s.logger.Info("book borrowed",
		zap.String("userID", userID), zap.String("bookID", b.BookID), zap.String("borrowID", b.ID))

	return b, nil
}

// ReturnBook оформляет возврат книги пользователем.
func (s *Service) ReturnBook(ctx context.Context, userID, borrowID string) (model.Borrow, error) {
	if userID == "" {
		return model.Borrow{}, model.ErrUnauthenticated
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.ownedBorrow(userID, borrowID); err != nil {
		return model.Borrow{}, err
	}

	b, err := s.borrows.Return(borrowID)
	if err != nil {
		return model.Borrow{}, err
	}

	msg := fmt.Sprintf("You have returned '%s'.", s.bookTitle(b.BookID))
	if b.Fine != nil {
		msg += fmt.Sprintf(" A fine of %s has been applied.", formatAmount(*b.Fine))
	}
	s.notifications.Append(userID, msg, model.NotificationReturn, b.ID)

	fields := []zap.Field{zap.String("userID", userID), zap.String("borrowID", b.ID)}
	if b.Fine != nil {
		fields = append(fields, zap.String("fine", b.Fine.StringFixed(2)))
	}
	s.logger.Info("book returned", fields...)

	return b, nil
}

// ExtendBorrow однократно продлевает выдачу и записывает сбор за продление.
func (s *Service) ExtendBorrow(ctx context.Context, userID, borrowID string) (model.Borrow, error) {
	if userID == "" {
		return model.Borrow{}, model.ErrUnauthenticated
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.ownedBorrow(userID, borrowID); err != nil {
		return model.Borrow{}, err
	}

	b, err := s.borrows.Extend(borrowID)
	if err != nil {
		return model.Borrow{}, err
	}

	s.payments.RecordExtensionFee(userID, b.ID, s.rules.ExtensionFee)

	s.notifications.Append(userID,
		fmt.Sprintf("Your loan for '%s' has been extended until %s. An extension fee of %s has been applied.",
			s.bookTitle(b.BookID), b.DueDate.Format(dateLayout), formatAmount(s.rules.ExtensionFee)),
		model.NotificationSystem, b.ID)

	s.logger.Info("loan extended",
		zap.String("userID", userID), zap.String("borrowID", b.ID), zap.Time("dueDate", b.DueDate))

	return b, nil
}

// MakePayment записывает оплату штрафа. Сумма не сверяется с задолженностью.
func (s *Service) MakePayment(ctx context.Context, userID, borrowID string, amount decimal.Decimal) (model.Payment, error) {
	if userID == "" {
		return model.Payment{}, model.ErrUnauthenticated
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.payments.Pay(userID, borrowID, amount)
	if err != nil {
		return model.Payment{}, err
	}

	s.notifications.Append(userID,
		fmt.Sprintf("You have paid a fine of %s.", formatAmount(amount)),
		model.NotificationPayment, borrowID)

	s.logger.Info("fine paid",
		zap.String("userID", userID), zap.String("borrowID", borrowID), zap.String("amount", amount.StringFixed(2)))

	return p, nil
}

// ownedBorrow возвращает выдачу, только если она принадлежит пользователю.
func (s *Service) ownedBorrow(userID, borrowID string) (model.Borrow, error) {
	b, ok := s.borrows.Get(borrowID)
	if !ok || b.UserID != userID {
		return model.Borrow{}, fmt.Errorf("borrow %s: %w", borrowID, model.ErrNotFound)
	}
	return b, nil
}

func (s *Service) bookTitle(bookID string) string {
	if book, ok := s.catalog.Get(bookID); ok {
		return book.Title
	}
	return bookID
}

func formatAmount(v decimal.Decimal) string {
	return "$" + v.StringFixed(2)
}
