package report

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/scamsentry/scamsentry-api/internal/pkg/captcha"
	"github.com/scamsentry/scamsentry-api/internal/pkg/geocode"
)

type fakeGeocoder struct {
	result *geocode.Result
	err    error
	calls  int
}

func (f *fakeGeocoder) Geocode(ctx context.Context, place string) (*geocode.Result, error) {
	f.calls++
	return f.result, f.err
}

// solvedCaptcha issues a challenge and returns its id with the right answer.
func solvedCaptcha(t *testing.T, svc *captcha.Service) (string, int) {
	t.Helper()
	ch, err := svc.Issue(context.Background())
	if err != nil {
		t.Fatalf("captcha issue failed: %v", err)
	}
	var a, b int
	if _, err := fmt.Sscanf(ch.Question, "%d + %d = ?", &a, &b); err != nil {
		t.Fatalf("unexpected challenge question %q: %v", ch.Question, err)
	}
	return ch.ID, a + b
}

func newTestService(t *testing.T, geocoder Geocoder) (*Service, *Store, *captcha.Service) {
	t.Helper()
	store := newTestStore(t, newFakeRepository())
	captchaSvc := captcha.NewService(captcha.NewMemoryStore(), time.Minute)
	return NewService(store, captchaSvc, geocoder), store, captchaSvc
}

func TestSubmitFakeJobOffer(t *testing.T) {
	svc, _, captchaSvc := newTestService(t, &fakeGeocoder{})
	id, answer := solvedCaptcha(t, captchaSvc)

	r, err := svc.Submit(context.Background(), &SubmitRequest{
		Title:         "Fake recruiter took my money",
		ScamType:      "Fake Job Offer",
		Description:   "asked for an upfront training fee",
		Anonymous:     true,
		CaptchaID:     id,
		CaptchaAnswer: answer,
	})
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	if r.RiskLevel != RiskHigh {
		t.Errorf("riskLevel = %q, want high", r.RiskLevel)
	}
	if r.TrustScore != 50 {
		t.Errorf("trustScore = %d, want 50", r.TrustScore)
	}
	if r.Status != StatusApproved {
		t.Errorf("status = %q, want approved", r.Status)
	}
	if r.HelpfulVotes != 0 || r.FlagCount != 0 || r.Views != 0 {
		t.Errorf("counters must start at zero: %d %d %d", r.HelpfulVotes, r.FlagCount, r.Views)
	}
	if r.Company != "Unknown Company" {
		t.Errorf("company should default, got %q", r.Company)
	}
	if r.Email != nil {
		t.Error("anonymous submission must not keep an email")
	}
}

func TestSubmitOtherTypeIsLowRisk(t *testing.T) {
	svc, _, captchaSvc := newTestService(t, &fakeGeocoder{})
	id, answer := solvedCaptcha(t, captchaSvc)

	r, err := svc.Submit(context.Background(), &SubmitRequest{
		Title:         "Something odd",
		ScamType:      "Other",
		Description:   "vague but suspicious",
		Anonymous:     true,
		Tags:          []string{"poor-communication"},
		CaptchaID:     id,
		CaptchaAnswer: answer,
	})
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if r.RiskLevel != RiskLow {
		t.Errorf("riskLevel = %q, want low", r.RiskLevel)
	}
}

func TestSubmitWrongCaptcha(t *testing.T) {
	svc, store, captchaSvc := newTestService(t, &fakeGeocoder{})
	id, answer := solvedCaptcha(t, captchaSvc)

	before := len(store.All())
	_, err := svc.Submit(context.Background(), &SubmitRequest{
		Title:         "t",
		ScamType:      "Other",
		Description:   "d",
		Anonymous:     true,
		CaptchaID:     id,
		CaptchaAnswer: answer + 1,
	})
	if !errors.Is(err, ErrCaptchaFailed) {
		t.Fatalf("expected ErrCaptchaFailed, got %v", err)
	}
	if len(store.All()) != before {
		t.Error("failed captcha must not create a report")
	}
}

func TestSubmitGeocodesLocation(t *testing.T) {
	geocoder := &fakeGeocoder{result: &geocode.Result{
		Lat: 40.7128, Lng: -74.0060,
		City: "New York", State: "New York", Country: "United States",
	}}
	svc, _, captchaSvc := newTestService(t, geocoder)
	id, answer := solvedCaptcha(t, captchaSvc)

	r, err := svc.Submit(context.Background(), &SubmitRequest{
		Title:         "t",
		ScamType:      "Other",
		Description:   "d",
		Location:      "New York, NY",
		Anonymous:     true,
		CaptchaID:     id,
		CaptchaAnswer: answer,
	})
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	if geocoder.calls != 1 {
		t.Errorf("geocoder called %d times, want 1", geocoder.calls)
	}
	if r.Lat == nil || *r.Lat != 40.7128 {
		t.Errorf("lat not stored: %v", r.Lat)
	}
	if r.City != "New York" {
		t.Errorf("city not stored: %q", r.City)
	}
}

func TestSubmitGeocoderFailureIsNotFatal(t *testing.T) {
	svc, _, captchaSvc := newTestService(t, &fakeGeocoder{err: errors.New("geocoder down")})
	id, answer := solvedCaptcha(t, captchaSvc)

	r, err := svc.Submit(context.Background(), &SubmitRequest{
		Title:         "t",
		ScamType:      "Other",
		Description:   "d",
		Location:      "Atlantis",
		Anonymous:     true,
		CaptchaID:     id,
		CaptchaAnswer: answer,
	})
	if err != nil {
		t.Fatalf("geocoder outage must not fail the submission: %v", err)
	}
	if r.Lat != nil || r.Lng != nil {
		t.Error("report should be stored without coordinates")
	}
	if r.Location != "Atlantis" {
		t.Errorf("free-text location must survive: %q", r.Location)
	}
}

func TestSubmitKeepsEmailWhenNotAnonymous(t *testing.T) {
	svc, _, captchaSvc := newTestService(t, &fakeGeocoder{})
	id, answer := solvedCaptcha(t, captchaSvc)

	r, err := svc.Submit(context.Background(), &SubmitRequest{
		Title:         "t",
		ScamType:      "Other",
		Description:   "d",
		Anonymous:     false,
		Email:         "reporter@example.com",
		CaptchaID:     id,
		CaptchaAnswer: answer,
	})
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if r.Email == nil || *r.Email != "reporter@example.com" {
		t.Errorf("email not kept: %v", r.Email)
	}
}
