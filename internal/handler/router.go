package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	custommiddleware "github.com/mmeshcher/libib/internal/middleware"
)

// SetupRouter настраивает HTTP-маршруты и middleware библиотеки.
func (h *Handler) SetupRouter() *chi.Mux {
	r := chi.NewRouter()

	r.Use(custommiddleware.GzipMiddleware)
	r.Use(custommiddleware.Logger(h.logger))

	r.Route("/api", func(r chi.Router) {
		r.Get("/books", h.SearchBooks)
		r.Get("/books/{id}", h.GetBook)

		r.Route("/user", func(r chi.Router) {
			r.Post("/login", h.Login)
			r.Post("/logout", h.Logout)

			r.Group(func(r chi.Router) {
				r.Use(h.authMiddleware.Middleware)

				r.Get("/me", h.Me)

				r.Get("/borrows", h.GetBorrows)
				r.Post("/borrows", h.CreateBorrow)
				r.Get("/borrows/{id}", h.GetBorrow)
				r.Get("/borrows/{id}/fine", h.GetFine)
				r.Post("/borrows/{id}/return", h.ReturnBorrow)
				r.Post("/borrows/{id}/extend", h.ExtendBorrow)
				r.Post("/borrows/{id}/pay", h.PayFine)

				r.Get("/payments", h.GetPayments)

				r.Get("/notifications", h.GetNotifications)
				r.Post("/notifications/read-all", h.MarkAllNotificationsRead)
				r.Post("/notifications/{id}/read", h.MarkNotificationRead)
			})
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
	})

	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
	})

	return r
}
