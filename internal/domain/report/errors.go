package report

import "errors"

var (
	ErrReportNotFound = errors.New("report not found")
	ErrCaptchaFailed  = errors.New("captcha verification failed")
)
