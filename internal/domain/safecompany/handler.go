package safecompany

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/scamsentry/scamsentry-api/internal/pkg/captcha"
	"github.com/scamsentry/scamsentry-api/internal/pkg/errorhandler"
	"github.com/scamsentry/scamsentry-api/internal/pkg/response"
)

// Handler handles safe company HTTP requests.
type Handler struct {
	store     *Store
	captcha   *captcha.Service
	validator *validator.Validate
}

// NewHandler creates a new safe company handler
func NewHandler(store *Store, captchaSvc *captcha.Service) *Handler {
	return &Handler{
		store:     store,
		captcha:   captchaSvc,
		validator: validator.New(),
	}
}

// List handles GET /companies
// @Summary List approved safe companies, highest verified score first
// @Tags SafeCompany
// @Produce json
// @Success 200 {object} response.Response{data=[]SafeCompany}
// @Router /companies [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	response.OK(w, h.store.Approved())
}

// Submit handles POST /companies
// New listings always enter the moderation queue as pending.
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	var req SubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	ok, err := h.captcha.Verify(r.Context(), req.CaptchaID, req.CaptchaAnswer)
	if err != nil {
		errorhandler.HandleError(r.Context(), w, http.StatusInternalServerError,
			"CAPTCHA_VERIFY_FAILED", "Failed to verify captcha", err)
		return
	}
	if !ok {
		details := map[string]string{}
		if ch, err := h.captcha.Issue(r.Context()); err == nil {
			details["captchaId"] = ch.ID
			details["captchaQuestion"] = ch.Question
		}
		response.ErrorWithDetails(w, http.StatusBadRequest, "CAPTCHA_FAILED",
			"Please solve the math problem correctly", details)
		return
	}

	draft := &Draft{
		Name:        req.Name,
		Industry:    req.Industry,
		Description: req.Description,
		Tags:        req.Tags,
	}
	if req.Website != "" {
		website := req.Website
		draft.Website = &website
	}

	company, err := h.store.Add(r.Context(), draft)
	if err != nil {
		errorhandler.HandleError(r.Context(), w, http.StatusInternalServerError,
			"COMPANY_CREATE_FAILED", "Failed to submit company", err)
		return
	}

	response.Created(w, company)
}

// Admin handlers

// AdminList handles GET /admin/companies?status=
func (h *Handler) AdminList(w http.ResponseWriter, r *http.Request) {
	if raw := r.URL.Query().Get("status"); raw != "" {
		status := Status(raw)
		switch status {
		case StatusPending, StatusApproved, StatusRejected:
		default:
			response.BadRequest(w, "invalid status")
			return
		}
		response.OK(w, h.store.ByStatus(status))
		return
	}
	response.OK(w, h.store.All())
}

// AdminApprove handles POST /admin/companies/{id}/approve
func (h *Handler) AdminApprove(w http.ResponseWriter, r *http.Request) {
	h.adminSetStatus(w, r, h.store.Approve)
}

// AdminReject handles POST /admin/companies/{id}/reject
func (h *Handler) AdminReject(w http.ResponseWriter, r *http.Request) {
	h.adminSetStatus(w, r, h.store.Reject)
}

func (h *Handler) adminSetStatus(w http.ResponseWriter, r *http.Request, apply func(context.Context, uuid.UUID) error) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid company ID")
		return
	}
	if h.store.Get(id) == nil {
		response.NotFound(w, "Company not found")
		return
	}

	if err := apply(r.Context(), id); err != nil {
		errorhandler.HandleError(r.Context(), w, http.StatusInternalServerError,
			"COMPANY_UPDATE_FAILED", "Failed to update company", err)
		return
	}
	response.OK(w, h.store.Get(id))
}

// AdminSetScore handles PATCH /admin/companies/{id}/score
func (h *Handler) AdminSetScore(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid company ID")
		return
	}
	if h.store.Get(id) == nil {
		response.NotFound(w, "Company not found")
		return
	}

	var req ScoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	if err := h.store.SetScore(r.Context(), id, req.Score); err != nil {
		errorhandler.HandleError(r.Context(), w, http.StatusInternalServerError,
			"COMPANY_SCORE_FAILED", "Failed to update company score", err)
		return
	}
	response.OK(w, h.store.Get(id))
}

// AdminDelete handles DELETE /admin/companies/{id}
func (h *Handler) AdminDelete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid company ID")
		return
	}

	if err := h.store.Delete(r.Context(), id); err != nil {
		if IsNotFound(err) {
			response.NotFound(w, "Company not found")
			return
		}
		errorhandler.HandleError(r.Context(), w, http.StatusInternalServerError,
			"COMPANY_DELETE_FAILED", "Failed to delete company", err)
		return
	}

	log.Info().Str("company_id", id.String()).Msg("Company deleted")
	response.NoContent(w)
}
