package report

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/scamsentry/scamsentry-api/internal/pkg/captcha"
	"github.com/scamsentry/scamsentry-api/internal/pkg/geocode"
)

// Geocoder resolves free-text locations to coordinates.
type Geocoder interface {
	Geocode(ctx context.Context, place string) (*geocode.Result, error)
}

// Service runs the report submission flow: CAPTCHA, geocoding, risk
// classification, persistence.
type Service struct {
	store    *Store
	captcha  *captcha.Service
	geocoder Geocoder
}

// NewService creates the submission service
func NewService(store *Store, captchaSvc *captcha.Service, geocoder Geocoder) *Service {
	return &Service{
		store:    store,
		captcha:  captchaSvc,
		geocoder: geocoder,
	}
}

// Submit validates the CAPTCHA, geocodes the location, classifies risk
// and persists the report. Returns ErrCaptchaFailed before any other
// work when the challenge does not check out.
func (s *Service) Submit(ctx context.Context, req *SubmitRequest) (*ScamReport, error) {
	ok, err := s.captcha.Verify(ctx, req.CaptchaID, req.CaptchaAnswer)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrCaptchaFailed
	}

	draft := &Draft{
		Title:        req.Title,
		Company:      req.Company,
		ScamType:     req.ScamType,
		Industry:     req.Industry,
		Location:     req.Location,
		Description:  req.Description,
		Tags:         req.Tags,
		Anonymous:    req.Anonymous,
		EvidenceURLs: req.EvidenceURLs,
	}

	if draft.Company == "" {
		draft.Company = "Unknown Company"
	}
	if draft.Industry == "" {
		draft.Industry = "Other"
	}
	if draft.Location == "" {
		draft.Location = "Location not specified"
	}

	// Email is kept only for non-anonymous reports.
	if !req.Anonymous && req.Email != "" {
		email := req.Email
		draft.Email = &email
	}

	// Geocoding is best-effort: an unknown place or a geocoder outage
	// stores the report without coordinates, never fails the submission.
	if req.Location != "" && s.geocoder != nil {
		geo, err := s.geocoder.Geocode(ctx, req.Location)
		if err != nil {
			log.Warn().Err(err).Str("location", req.Location).Msg("Geocoding failed, storing without coordinates")
		} else if geo != nil {
			draft.City = geo.City
			draft.State = geo.State
			draft.Country = geo.Country
			lat, lng := geo.Lat, geo.Lng
			draft.Lat = &lat
			draft.Lng = &lng
		}
	}

	draft.RiskLevel = ClassifyRisk(req.ScamType, req.Tags)

	return s.store.Add(ctx, draft)
}
