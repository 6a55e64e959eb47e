package safecompany

import "errors"

var (
	ErrCompanyNotFound = errors.New("company not found")
	ErrCaptchaFailed   = errors.New("captcha verification failed")
)

// IsNotFound reports whether err means the company does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrCompanyNotFound)
}
