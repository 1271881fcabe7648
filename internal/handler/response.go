package handler

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/mmeshcher/libib/internal/model"
)

type userResponse struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Role      string `json:"role"`
	Branch    string `json:"branch,omitempty"`
}

func newUserResponse(u model.User) userResponse {
	return userResponse{
		ID:        u.ID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Role:      string(u.Role),
		Branch:    u.Branch,
	}
}

type bookResponse struct {
	ID              string `json:"id"`
	Title           string `json:"title"`
	Author          string `json:"author"`
	ISBN            string `json:"isbn"`
	Genre           string `json:"genre"`
	PublishYear     int    `json:"publish_year"`
	Description     string `json:"description"`
	CoverImage      string `json:"cover_image"`
	Location        string `json:"location"`
	Copies          int    `json:"copies"`
	AvailableCopies int    `json:"available_copies"`
}

func newBookResponse(b model.Book) bookResponse {
	return bookResponse{
		ID:              b.ID,
		Title:           b.Title,
		Author:          b.Author,
		ISBN:            b.ISBN,
		Genre:           b.Genre,
		PublishYear:     b.PublishYear,
		Description:     b.Description,
		CoverImage:      b.CoverImage,
		Location:        b.Location,
		Copies:          b.Copies,
		AvailableCopies: b.AvailableCopies,
	}
}

type borrowResponse struct {
	ID              string   `json:"id"`
	BookID          string   `json:"book_id"`
	BorrowDate      string   `json:"borrow_date"`
	DueDate         string   `json:"due_date"`
	Returned        bool     `json:"returned"`
	ReturnedDate    string   `json:"returned_date,omitempty"`
	Extended        bool     `json:"extended"`
	OriginalDueDate string   `json:"original_due_date,omitempty"`
	Fine            *float64 `json:"fine,omitempty"`
	CurrentFine     *float64 `json:"current_fine,omitempty"`
}

func newBorrowResponse(b model.Borrow) borrowResponse {
	resp := borrowResponse{
		ID:         b.ID,
		BookID:     b.BookID,
		BorrowDate: b.BorrowDate.Format(time.RFC3339),
		DueDate:    b.DueDate.Format(time.RFC3339),
		Returned:   b.Returned,
		Extended:   b.Extended,
	}
	if b.ReturnedDate != nil {
		resp.ReturnedDate = b.ReturnedDate.Format(time.RFC3339)
	}
	if b.OriginalDueDate != nil {
		resp.OriginalDueDate = b.OriginalDueDate.Format(time.RFC3339)
	}
	if b.Fine != nil {
		v := amount(*b.Fine)
		resp.Fine = &v
	}
	return resp
}

type paymentResponse struct {
	ID          string  `json:"id"`
	BorrowID    string  `json:"borrow_id,omitempty"`
	Amount      float64 `json:"amount"`
	Status      string  `json:"status"`
	PaymentDate string  `json:"payment_date"`
	Reason      string  `json:"reason"`
}

func newPaymentResponse(p model.Payment) paymentResponse {
	return paymentResponse{
		ID:          p.ID,
		BorrowID:    p.BorrowID,
		Amount:      amount(p.Amount),
		Status:      string(p.Status),
		PaymentDate: p.PaymentDate.Format(time.RFC3339),
		Reason:      p.Reason,
	}
}

type notificationResponse struct {
	ID        string `json:"id"`
	Message   string `json:"message"`
	Type      string `json:"type"`
	Read      bool   `json:"read"`
	CreatedAt string `json:"created_at"`
	RelatedID string `json:"related_id,omitempty"`
}

type notificationsResponse struct {
	Unread int                    `json:"unread"`
	Items  []notificationResponse `json:"items"`
}

func newNotificationResponse(n model.Notification) notificationResponse {
	return notificationResponse{
		ID:        n.ID,
		Message:   n.Message,
		Type:      string(n.Type),
		Read:      n.Read,
		CreatedAt: n.CreatedAt.Format(time.RFC3339),
		RelatedID: n.RelatedID,
	}
}

type fineResponse struct {
	Fine float64 `json:"fine"`
}

// amount округляет сумму до копеек для передачи в JSON.
func amount(v decimal.Decimal) float64 {
	return v.Round(2).InexactFloat64()
}
