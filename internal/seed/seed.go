// Package seed предоставляет синтетические начальные данные библиотеки и генератор идентификаторов.
package seed

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mmeshcher/libib/internal/model"
)

// Data содержит начальное состояние всех хранилищ.
type Data struct {
	Users         []model.User
	Books         []model.Book
	Borrows       []model.Borrow
	Payments      []model.Payment
	Notifications []model.Notification
}

// NewIDGenerator возвращает генератор идентификаторов вида "<kind>-<uuid>".
func NewIDGenerator() model.IDFunc {
	return func(kind string) string {
		return kind + "-" + uuid.NewString()
	}
}

// Load строит набор данных относительно момента now: одна выдача активна,
// одна просрочена, одна возвращена со штрафом.
func Load(now time.Time) Data {
	daysAgo := func(n int) time.Time { return now.AddDate(0, 0, -n) }
	ptr := func(t time.Time) *time.Time { return &t }
	fine := decimal.RequireFromString("1.50")

	users := []model.User{
		{ID: "user-1", Email: "student@libib.edu", FirstName: "Alex", LastName: "Morgan", Role: model.UserRoleStudent, Branch: "Computer Science", Verified: true, CreatedAt: daysAgo(120)},
		{ID: "user-2", Email: "teacher@libib.edu", FirstName: "Sam", LastName: "Rivera", Role: model.UserRoleTeacher, Branch: "Mathematics", Verified: true, CreatedAt: daysAgo(300)},
		{ID: "user-3", Email: "admin@libib.edu", FirstName: "Jordan", LastName: "Lee", Role: model.UserRoleAdmin, Verified: true, CreatedAt: daysAgo(400)},
		{ID: "user-4", Email: "pending@libib.edu", FirstName: "Casey", LastName: "Kim", Role: model.UserRoleStudent, Branch: "Physics", Verified: false, CreatedAt: daysAgo(1)},
	}

	books := []model.Book{
		{
			ID: "book-1", Title: "The Pragmatic Programmer", Author: "Andrew Hunt", ISBN: "978-0-201-61622-4",
			Genre: "Programming", PublishYear: 1999, Location: "Shelf A1",
			Description: "Practical advice for working programmers.",
			Copies:      3, AvailableCopies: 2,
		},
		{
			ID: "book-2", Title: "Dune", Author: "Frank Herbert", ISBN: "978-0-441-17271-9",
			Genre: "Science Fiction", PublishYear: 1965, Location: "Shelf C4",
			Description: "A desert planet and the spice that rules the universe.",
			Copies:      2, AvailableCopies: 1,
		},
		{
			ID: "book-3", Title: "Introduction to Algorithms", Author: "Thomas H. Cormen", ISBN: "978-0-262-03384-8",
			Genre: "Computer Science", PublishYear: 2009, Location: "Shelf B2",
			Description: "Comprehensive reference on algorithms.",
			Copies:      4, AvailableCopies: 4,
		},
		{
			ID: "book-4", Title: "Pride and Prejudice", Author: "Jane Austen", ISBN: "978-0-14-143951-8",
			Genre: "Classic", PublishYear: 1813, Location: "Shelf D1",
			Description: "A novel of manners.",
			Copies:      1, AvailableCopies: 0,
		},
		{
			ID: "book-5", Title: "A Brief History of Time", Author: "Stephen Hawking", ISBN: "978-0-553-38016-3",
			Genre: "Science", PublishYear: 1988, Location: "Shelf E3",
			Description: "From the Big Bang to black holes.",
			Copies:      2, AvailableCopies: 2,
		},
	}

	borrows := []model.Borrow{
		{
			ID: "borrow-1", BookID: "book-1", UserID: "user-1",
			BorrowDate: daysAgo(5), DueDate: daysAgo(5).AddDate(0, 0, 14),
		},
		{
			ID: "borrow-2", BookID: "book-2", UserID: "user-1",
			BorrowDate: daysAgo(20), DueDate: daysAgo(20).AddDate(0, 0, 14),
		},
		{
			ID: "borrow-3", BookID: "book-5", UserID: "user-1",
			BorrowDate: daysAgo(40), DueDate: daysAgo(26),
			Returned: true, ReturnedDate: ptr(daysAgo(23)), Fine: &fine,
		},
		{
			ID: "borrow-4", BookID: "book-4", UserID: "user-2",
			BorrowDate: daysAgo(10), DueDate: daysAgo(10).AddDate(0, 0, 21),
			Extended: true, OriginalDueDate: ptr(daysAgo(10).AddDate(0, 0, 14)),
		},
	}

	payments := []model.Payment{
		{
			ID: "payment-1", UserID: "user-2", BorrowID: "borrow-4",
			Amount: decimal.RequireFromString("2.50"), Status: model.PaymentStatusCompleted,
			PaymentDate: daysAgo(2), Reason: model.PaymentReasonExtensionFee,
		},
	}

	notifications := []model.Notification{
		{
			ID: "notification-1", UserID: "user-1", Type: model.NotificationDue, RelatedID: "borrow-2",
			Message: "'Dune' is overdue. Please return it as soon as possible.", CreatedAt: daysAgo(1),
		},
		{
			ID: "notification-2", UserID: "user-1", Type: model.NotificationReturn, RelatedID: "borrow-3",
			Message: "You have returned 'A Brief History of Time'. A fine of $1.50 has been applied.", CreatedAt: daysAgo(23), Read: true,
		},
		{
			ID: "notification-3", UserID: "user-2", Type: model.NotificationSystem, RelatedID: "borrow-4",
			Message: "Welcome to the library.", CreatedAt: daysAgo(300), Read: true,
		},
	}

	return Data{
		Users:         users,
		Books:         books,
		Borrows:       borrows,
		Payments:      payments,
		Notifications: notifications,
	}
}
