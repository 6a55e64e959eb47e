package safecompany

// SubmitRequest carries a safe company nomination.
type SubmitRequest struct {
	Name        string   `json:"name" validate:"required,max=200"`
	Industry    string   `json:"industry" validate:"required,max=100"`
	Description string   `json:"description" validate:"required,max=5000"`
	Website     string   `json:"website" validate:"omitempty,url"`
	Tags        []string `json:"tags" validate:"max=20,dive,max=50"`

	CaptchaID     string `json:"captchaId" validate:"required"`
	CaptchaAnswer int    `json:"captchaAnswer"`
}

// ScoreRequest sets a listing's verified score directly.
type ScoreRequest struct {
	Score int `json:"score" validate:"min=0,max=100"`
}
