package admin

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes returns admin auth routes. Moderation routes for reports and
// companies are mounted by their own domains behind AuthMiddleware.
func (h *Handler) Routes(authMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	r.Post("/login", h.Login)
	r.With(authMiddleware).Get("/me", h.Me)

	return r
}
