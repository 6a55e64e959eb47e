package safecompany

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes returns the public company routes
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.List)
	r.Post("/", h.Submit)

	return r
}

// AdminRoutes returns admin-only moderation routes for companies
func (h *Handler) AdminRoutes(authMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	r.Use(authMiddleware)

	r.Get("/", h.AdminList)
	r.Post("/{id}/approve", h.AdminApprove)
	r.Post("/{id}/reject", h.AdminReject)
	r.Patch("/{id}/score", h.AdminSetScore)
	r.Delete("/{id}", h.AdminDelete)

	return r
}
