package admin

// LoginRequest for POST /admin/login
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// LoginResponse after successful login
type LoginResponse struct {
	AccessToken string     `json:"accessToken"`
	Admin       *AdminUser `json:"admin"`
}
