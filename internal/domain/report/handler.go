package report

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/scamsentry/scamsentry-api/internal/middleware"
	"github.com/scamsentry/scamsentry-api/internal/pkg/captcha"
	"github.com/scamsentry/scamsentry-api/internal/pkg/errorhandler"
	"github.com/scamsentry/scamsentry-api/internal/pkg/response"
	"github.com/scamsentry/scamsentry-api/internal/pkg/storage"
)

// Publisher receives reports as they become publicly visible.
type Publisher interface {
	PublishReport(r *ScamReport)
}

// Handler handles report HTTP requests.
type Handler struct {
	service   *Service
	store     *Store
	captcha   *captcha.Service
	guard     VoteGuard
	evidence  *storage.EvidenceStore
	repo      Repository
	publisher Publisher
	validator *validator.Validate
}

// NewHandler creates a new report handler. repo may be nil in demo
// mode; publisher may be nil when no live feed is wired.
func NewHandler(service *Service, store *Store, captchaSvc *captcha.Service, guard VoteGuard, evidence *storage.EvidenceStore, repo Repository, publisher Publisher) *Handler {
	return &Handler{
		service:   service,
		store:     store,
		captcha:   captchaSvc,
		guard:     guard,
		evidence:  evidence,
		repo:      repo,
		publisher: publisher,
		validator: validator.New(),
	}
}

// List handles GET /reports
// @Summary List approved reports, newest first
// @Tags Report
// @Produce json
// @Success 200 {object} response.Response{data=[]ScamReport}
// @Router /reports [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	response.OK(w, h.store.Approved())
}

// Get handles GET /reports/{id}
// Each hit counts as a page view; reloads count again.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid report ID")
		return
	}

	rep := h.store.Get(id)
	if rep == nil {
		response.NotFound(w, "Report not found")
		return
	}

	h.store.IncrementViews(r.Context(), id)
	response.OK(w, rep)
}

// Submit handles POST /reports
// @Summary Submit a scam report
// @Tags Report
// @Accept json
// @Produce json
// @Param request body SubmitRequest true "Report submission"
// @Success 201 {object} response.Response{data=ScamReport}
// @Failure 400,422,500 {object} response.Response
// @Router /reports [post]
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
	if !req.Anonymous && req.Email == "" {
		response.BadRequest(w, "Email is required for non-anonymous reports")
		return
	}

	rep, err := h.service.Submit(r.Context(), &req)
	if err == ErrCaptchaFailed {
		// Burn the old challenge and hand back a fresh one.
		details := map[string]string{}
		if ch, err := h.captcha.Issue(r.Context()); err == nil {
			details["captchaId"] = ch.ID
			details["captchaQuestion"] = ch.Question
		}
		response.ErrorWithDetails(w, http.StatusBadRequest, "CAPTCHA_FAILED",
			"Please solve the math problem correctly", details)
		return
	}
	if err != nil {
		errorhandler.HandleError(r.Context(), w, http.StatusInternalServerError,
			"REPORT_CREATE_FAILED", "Failed to submit report", err)
		return
	}

	if h.publisher != nil {
		h.publisher.PublishReport(rep)
	}

	response.Created(w, rep)
}

// Vote handles POST /reports/{id}/vote
// One helpful vote per report per browser session; a new session may
// vote again (documented limitation).
func (h *Handler) Vote(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid report ID")
		return
	}

	rep := h.store.Get(id)
	if rep == nil {
		response.NotFound(w, "Report not found")
		return
	}

	sessionID := middleware.GetSessionID(r.Context())
	fresh, err := h.guard.Remember(r.Context(), sessionID, "vote", id)
	if err != nil {
		errorhandler.HandleError(r.Context(), w, http.StatusInternalServerError,
			"VOTE_FAILED", "Failed to record vote", err)
		return
	}
	if !fresh {
		response.Conflict(w, "You have already voted on this report")
		return
	}

	h.store.VoteHelpful(r.Context(), id)
	response.OK(w, h.store.Get(id))
}

// Flag handles POST /reports/{id}/flag
func (h *Handler) Flag(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid report ID")
		return
	}

	rep := h.store.Get(id)
	if rep == nil {
		response.NotFound(w, "Report not found")
		return
	}

	sessionID := middleware.GetSessionID(r.Context())
	fresh, err := h.guard.Remember(r.Context(), sessionID, "flag", id)
	if err != nil {
		errorhandler.HandleError(r.Context(), w, http.StatusInternalServerError,
			"FLAG_FAILED", "Failed to record flag", err)
		return
	}
	if !fresh {
		response.Conflict(w, "You have already flagged this report")
		return
	}

	h.store.Flag(r.Context(), id)
	response.OK(w, h.store.Get(id))
}

// Nearby handles GET /reports/nearby?lat=&lng=&radius=
func (h *Handler) Nearby(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	lat, err := strconv.ParseFloat(q.Get("lat"), 64)
	if err != nil {
		response.BadRequest(w, "lat is required and must be a number")
		return
	}
	lng, err := strconv.ParseFloat(q.Get("lng"), 64)
	if err != nil {
		response.BadRequest(w, "lng is required and must be a number")
		return
	}

	radius := float64(DefaultRadiusKm)
	if raw := q.Get("radius"); raw != "" {
		radius, err = strconv.ParseFloat(raw, 64)
		if err != nil || radius <= 0 {
			response.BadRequest(w, "radius must be a positive number")
			return
		}
	}

	response.OK(w, h.store.ByLocation(lat, lng, radius))
}

// SearchByCity handles GET /reports/search?city=
func (h *Handler) SearchByCity(w http.ResponseWriter, r *http.Request) {
	city := r.URL.Query().Get("city")
	if city == "" {
		response.BadRequest(w, "city is required")
		return
	}
	response.OK(w, h.store.SearchByCity(city))
}

// Captcha handles GET /captcha
func (h *Handler) Captcha(w http.ResponseWriter, r *http.Request) {
	ch, err := h.captcha.Issue(r.Context())
	if err != nil {
		errorhandler.HandleError(r.Context(), w, http.StatusInternalServerError,
			"CAPTCHA_ISSUE_FAILED", "Failed to issue captcha challenge", err)
		return
	}
	response.OK(w, ch)
}

// Admin handlers

// AdminList handles GET /admin/reports?status=
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

// AdminApprove handles POST /admin/reports/{id}/approve
func (h *Handler) AdminApprove(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid report ID")
		return
	}
	if h.store.Get(id) == nil {
		response.NotFound(w, "Report not found")
		return
	}

	h.store.Approve(r.Context(), id)

	if rep := h.store.Get(id); rep != nil {
		if h.publisher != nil && rep.Status == StatusApproved {
			h.publisher.PublishReport(rep)
		}
		response.OK(w, rep)
		return
	}
	response.NotFound(w, "Report not found")
}

// AdminReject handles POST /admin/reports/{id}/reject
func (h *Handler) AdminReject(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid report ID")
		return
	}
	if h.store.Get(id) == nil {
		response.NotFound(w, "Report not found")
		return
	}

	h.store.Reject(r.Context(), id)
	response.OK(w, h.store.Get(id))
}

// AdminDelete handles DELETE /admin/reports/{id}
// Hard delete; the record must not come back on a later reload.
func (h *Handler) AdminDelete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid report ID")
		return
	}

	if err := h.store.Delete(r.Context(), id); err != nil {
		if IsNotFound(err) {
			response.NotFound(w, "Report not found")
			return
		}
		errorhandler.HandleError(r.Context(), w, http.StatusInternalServerError,
			"REPORT_DELETE_FAILED", "Failed to delete report", err)
		return
	}

	log.Info().Str("report_id", id.String()).Msg("Report deleted")
	response.NoContent(w)
}
