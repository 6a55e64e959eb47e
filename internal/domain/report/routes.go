package report

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes returns the public report routes
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.List)
	r.Post("/", h.Submit)
	r.Get("/nearby", h.Nearby)
	r.Get("/search", h.SearchByCity)
	r.Get("/{id}", h.Get)
	r.Post("/{id}/vote", h.Vote)
	r.Post("/{id}/flag", h.Flag)

	return r
}

// AdminRoutes returns admin-only moderation routes for reports
func (h *Handler) AdminRoutes(authMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	r.Use(authMiddleware)

	r.Get("/", h.AdminList)
	r.Post("/{id}/approve", h.AdminApprove)
	r.Post("/{id}/reject", h.AdminReject)
	r.Delete("/{id}", h.AdminDelete)

	return r
}
