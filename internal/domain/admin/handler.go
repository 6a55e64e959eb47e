package admin

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/scamsentry/scamsentry-api/internal/pkg/response"
)

// Handler handles admin HTTP requests.
type Handler struct {
	service   *Service
	jwtSvc    *JWTService
	validator *validator.Validate
}

// NewHandler creates admin handler
func NewHandler(service *Service, jwtSvc *JWTService) *Handler {
	return &Handler{
		service:   service,
		jwtSvc:    jwtSvc,
		validator: validator.New(),
	}
}

// Login handles POST /admin/login
// @Summary Authenticate an admin and issue a JWT
// @Tags Admin
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Credentials"
// @Success 200 {object} response.Response{data=LoginResponse}
// @Failure 400,401,403 {object} response.Response
// @Router /admin/login [post]
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	adminUser, err := h.service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidCredentials):
			response.Unauthorized(w, "Invalid email or password")
		case errors.Is(err, ErrAdminInactive):
			response.Forbidden(w, "Account is inactive")
		default:
			response.InternalError(w)
		}
		return
	}

	token, err := h.jwtSvc.GenerateToken(adminUser)
	if err != nil {
		response.InternalError(w)
		return
	}

	response.OK(w, &LoginResponse{
		AccessToken: token,
		Admin:       adminUser,
	})
}

// Me handles GET /admin/me
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	adminUser, err := h.service.GetByID(r.Context(), GetAdminID(r.Context()))
	if err != nil {
		response.NotFound(w, "Admin not found")
		return
	}
	response.OK(w, adminUser)
}
