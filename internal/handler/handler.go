// Package handler содержит HTTP-обработчики API библиотеки.
package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/mmeshcher/libib/internal/middleware"
	"github.com/mmeshcher/libib/internal/model"
)

// Service определяет контракт бизнес-логики, используемой HTTP-обработчиками.
type Service interface {
	Login(ctx context.Context, email string) (model.User, error)
	User(id string) (model.User, bool)
	SearchBooks(query string) []model.Book
	GetBookByID(id string) (model.Book, bool)
	Borrows(userID string) []model.Borrow
	GetBorrowByID(userID, borrowID string) (model.Borrow, bool)
	CalculateFine(userID, borrowID string) decimal.Decimal
	BorrowBook(ctx context.Context, userID, bookID string) (model.Borrow, error)
	ReturnBook(ctx context.Context, userID, borrowID string) (model.Borrow, error)
	ExtendBorrow(ctx context.Context, userID, borrowID string) (model.Borrow, error)
	MakePayment(ctx context.Context, userID, borrowID string, amount decimal.Decimal) (model.Payment, error)
	Payments(userID string) []model.Payment
	Notifications(userID string) []model.Notification
	UnreadCount(userID string) int
	MarkAsRead(userID, id string)
	MarkAllAsRead(userID string)
}

// Handler реализует HTTP-обработчики API библиотеки.
type Handler struct {
	service        Service
	logger         *zap.Logger
	authMiddleware *middleware.AuthMiddleware
}

// NewHandler создаёт новый экземпляр обработчика HTTP-запросов.
func NewHandler(s Service, logger *zap.Logger, auth *middleware.AuthMiddleware) *Handler {
	return &Handler{
		service:        s,
		logger:         logger,
		authMiddleware: auth,
	}
}

type loginRequest struct {
	Email string `json:"email"`
}

// Login выполняет вход по email без проверки пароля и устанавливает cookie.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	if req.Email == "" {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	user, err := h.service.Login(r.Context(), req.Email)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) || errors.Is(err, model.ErrUnverified) {
			http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
			return
		}
		h.logger.Error("login user error", zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	h.authMiddleware.SetAuthCookie(w, user.ID)
	h.writeJSON(w, http.StatusOK, newUserResponse(user))
}

// Logout удаляет cookie авторизации.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	h.authMiddleware.ClearAuthCookie(w)
	w.WriteHeader(http.StatusOK)
}

// Me возвращает профиль пользователя текущей сессии.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	user, found := h.service.User(userID)
	if !found {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	h.writeJSON(w, http.StatusOK, newUserResponse(user))
}

// SearchBooks возвращает книги, подходящие под параметр q.
func (h *Handler) SearchBooks(w http.ResponseWriter, r *http.Request) {
	books := h.service.SearchBooks(r.URL.Query().Get("q"))

	resp := make([]bookResponse, 0, len(books))
	for _, b := range books {
		resp = append(resp, newBookResponse(b))
	}

	h.writeJSON(w, http.StatusOK, resp)
}

// GetBook возвращает книгу по идентификатору.
func (h *Handler) GetBook(w http.ResponseWriter, r *http.Request) {
	book, ok := h.service.GetBookByID(chi.URLParam(r, "id"))
	if !ok {
		http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
		return
	}

	h.writeJSON(w, http.StatusOK, newBookResponse(book))
}

// writeServiceError переводит доменную ошибку в HTTP-статус.
func (h *Handler) writeServiceError(w http.ResponseWriter, err error, msg string, fields ...zap.Field) {
	switch {
	case errors.Is(err, model.ErrUnauthenticated):
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
	case errors.Is(err, model.ErrNotFound):
		http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
	case errors.Is(err, model.ErrUnavailable),
		errors.Is(err, model.ErrAlreadyReturned),
		errors.Is(err, model.ErrAlreadyExtended):
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		h.logger.Error(msg, append(fields, zap.Error(err))...)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("encode response error", zap.Error(err))
	}
}

// currentUser извлекает пользователя из контекста или отвечает 401.
func currentUser(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return "", false
	}
	return userID, true
}
