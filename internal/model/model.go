// Package model содержит доменные сущности библиотеки.
package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// UserRole описывает роль пользователя библиотеки.
type UserRole string

const (
	UserRoleStudent UserRole = "student"
	UserRoleTeacher UserRole = "teacher"
	UserRoleAdmin   UserRole = "admin"
)

// User представляет читателя или администратора библиотеки.
type User struct {
	ID        string
	Email     string
	FirstName string
	LastName  string
	Role      UserRole
	Branch    string
	Verified  bool
	CreatedAt time.Time
}

// Book описывает книгу каталога и количество доступных экземпляров.
// Инвариант: 0 <= AvailableCopies <= Copies.
type Book struct {
	ID              string
	Title           string
	Author          string
	ISBN            string
	Genre           string
	PublishYear     int
	Description     string
	CoverImage      string
	Location        string
	Copies          int
	AvailableCopies int
}

// Borrow описывает выдачу одного экземпляра книги пользователю.
type Borrow struct {
	ID              string
	BookID          string
	UserID          string
	BorrowDate      time.Time
	DueDate         time.Time
	Returned        bool
	ReturnedDate    *time.Time
	Extended        bool
	OriginalDueDate *time.Time
	Fine            *decimal.Decimal
}

// Active сообщает, находится ли книга всё ещё на руках.
func (b Borrow) Active() bool {
	return !b.Returned
}

// Overdue сообщает, просрочена ли активная выдача на момент now.
func (b Borrow) Overdue(now time.Time) bool {
	return b.Active() && now.After(b.DueDate)
}

// PaymentStatus описывает статус платежа.
type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusFailed    PaymentStatus = "failed"
)

const (
	PaymentReasonLateFine     = "Late return fine"
	PaymentReasonExtensionFee = "Loan extension fee"
)

// Payment описывает запись платёжного журнала. После создания не изменяется.
type Payment struct {
	ID          string
	UserID      string
	BorrowID    string
	Amount      decimal.Decimal
	Status      PaymentStatus
	PaymentDate time.Time
	Reason      string
}

// NotificationType описывает категорию уведомления.
type NotificationType string

const (
	NotificationBorrow  NotificationType = "borrow"
	NotificationReturn  NotificationType = "return"
	NotificationDue     NotificationType = "due"
	NotificationPayment NotificationType = "payment"
	NotificationSystem  NotificationType = "system"
)

// Notification описывает уведомление пользователя.
type Notification struct {
	ID        string
	UserID    string
	Message   string
	Type      NotificationType
	Read      bool
	CreatedAt time.Time
	RelatedID string
}

// IDFunc генерирует уникальный идентификатор для сущности указанного вида.
type IDFunc func(kind string) string
