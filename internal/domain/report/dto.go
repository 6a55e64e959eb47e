package report

// SubmitRequest carries a report submission. CAPTCHA fields reference a
// challenge previously issued by GET /captcha.
type SubmitRequest struct {
	Title       string   `json:"title" validate:"required,max=200"`
	Company     string   `json:"company" validate:"max=200"`
	ScamType    string   `json:"scamType" validate:"required,max=100"`
	Industry    string   `json:"industry" validate:"max=100"`
	Location    string   `json:"location" validate:"max=300"`
	Description string   `json:"description" validate:"required,max=5000"`
	Tags        []string `json:"tags" validate:"max=20,dive,max=50"`
	Anonymous   bool     `json:"anonymous"`
	Email       string   `json:"email" validate:"omitempty,email"`

	EvidenceURLs []string `json:"evidenceUrls" validate:"max=5,dive,url"`

	CaptchaID     string `json:"captchaId" validate:"required"`
	CaptchaAnswer int    `json:"captchaAnswer"`
}
