package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// GetBorrows возвращает выдачи текущего пользователя.
func (h *Handler) GetBorrows(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	borrows := h.service.Borrows(userID)
	if len(borrows) == 0 {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	resp := make([]borrowResponse, 0, len(borrows))
	for _, b := range borrows {
		resp = append(resp, newBorrowResponse(b))
	}

	h.writeJSON(w, http.StatusOK, resp)
}

type borrowRequest struct {
	BookID string `json:"book_id"`
}

// CreateBorrow выдаёт книгу текущему пользователю.
func (h *Handler) CreateBorrow(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req borrowRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.BookID == "" {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	b, err := h.service.BorrowBook(r.Context(), userID, req.BookID)
	if err != nil {
		h.writeServiceError(w, err, "borrow book error", zap.String("userID", userID), zap.String("bookID", req.BookID))
		return
	}

	h.writeJSON(w, http.StatusCreated, newBorrowResponse(b))
}

// GetBorrow возвращает выдачу текущего пользователя вместе с текущим штрафом.
func (h *Handler) GetBorrow(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	borrowID := chi.URLParam(r, "id")
	b, found := h.service.GetBorrowByID(userID, borrowID)
	if !found {
		http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
		return
	}

	resp := newBorrowResponse(b)
	if b.Active() {
		fine := amount(h.service.CalculateFine(userID, borrowID))
		resp.CurrentFine = &fine
	}

	h.writeJSON(w, http.StatusOK, resp)
}

// GetFine возвращает текущий штраф по выдаче.
func (h *Handler) GetFine(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	borrowID := chi.URLParam(r, "id")
	if _, found := h.service.GetBorrowByID(userID, borrowID); !found {
		http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
		return
	}

	h.writeJSON(w, http.StatusOK, fineResponse{Fine: amount(h.service.CalculateFine(userID, borrowID))})
}

// ReturnBorrow оформляет возврат книги.
func (h *Handler) ReturnBorrow(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	borrowID := chi.URLParam(r, "id")
	b, err := h.service.ReturnBook(r.Context(), userID, borrowID)
	if err != nil {
		h.writeServiceError(w, err, "return book error", zap.String("userID", userID), zap.String("borrowID", borrowID))
		return
	}

	h.writeJSON(w, http.StatusOK, newBorrowResponse(b))
}

// ExtendBorrow продлевает выдачу.
func (h *Handler) ExtendBorrow(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	borrowID := chi.URLParam(r, "id")
	b, err := h.service.ExtendBorrow(r.Context(), userID, borrowID)
	if err != nil {
		h.writeServiceError(w, err, "extend borrow error", zap.String("userID", userID), zap.String("borrowID", borrowID))
		return
	}

	h.writeJSON(w, http.StatusOK, newBorrowResponse(b))
}

type payRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

// PayFine записывает оплату штрафа по выдаче.
func (h *Handler) PayFine(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req payRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	if !req.Amount.IsPositive() {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	borrowID := chi.URLParam(r, "id")
	p, err := h.service.MakePayment(r.Context(), userID, borrowID, req.Amount)
	if err != nil {
		h.writeServiceError(w, err, "pay fine error", zap.String("userID", userID), zap.String("borrowID", borrowID))
		return
	}

	h.writeJSON(w, http.StatusOK, newPaymentResponse(p))
}

// GetPayments возвращает историю платежей текущего пользователя.
func (h *Handler) GetPayments(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	payments := h.service.Payments(userID)
	if len(payments) == 0 {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	resp := make([]paymentResponse, 0, len(payments))
	for _, p := range payments {
		resp = append(resp, newPaymentResponse(p))
	}

	h.writeJSON(w, http.StatusOK, resp)
}

// GetNotifications возвращает уведомления текущего пользователя и число непрочитанных.
func (h *Handler) GetNotifications(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	notes := h.service.Notifications(userID)
	resp := notificationsResponse{
		Unread: h.service.UnreadCount(userID),
		Items:  make([]notificationResponse, 0, len(notes)),
	}
	for _, n := range notes {
		resp.Items = append(resp.Items, newNotificationResponse(n))
	}

	h.writeJSON(w, http.StatusOK, resp)
}

// MarkNotificationRead отмечает уведомление прочитанным.
func (h *Handler) MarkNotificationRead(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	h.service.MarkAsRead(userID, chi.URLParam(r, "id"))
	w.WriteHeader(http.StatusOK)
}

// MarkAllNotificationsRead отмечает прочитанными все уведомления.
func (h *Handler) MarkAllNotificationsRead(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	h.service.MarkAllAsRead(userID)
	w.WriteHeader(http.StatusOK)
}
