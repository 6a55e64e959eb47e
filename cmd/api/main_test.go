package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/scamsentry/scamsentry-api/internal/domain/admin"
	"github.com/scamsentry/scamsentry-api/internal/domain/report"
	"github.com/scamsentry/scamsentry-api/internal/domain/safecompany"
	"github.com/scamsentry/scamsentry-api/internal/pkg/captcha"
)

// Builds the route tree the way main does, in demo mode, to catch
// mount conflicts and missing routes without a database.
func demoRouter(t *testing.T) chi.Router {
	t.Helper()

	captchaSvc := captcha.NewService(captcha.NewMemoryStore(), time.Minute)

	reportStore := report.NewStore(nil)
	reportStore.LoadAll(context.Background())
	companyStore := safecompany.NewStore(nil)
	companyStore.LoadAll(context.Background())

	reportService := report.NewService(reportStore, captchaSvc, nil)
	adminService := admin.NewService(nil, "admin@example.com", "demo-pass")
	adminJWT := admin.NewJWTService("test-secret", time.Hour)

	reportHandler := report.NewHandler(reportService, reportStore, captchaSvc, report.NewMemoryVoteGuard(), nil, nil, nil)
	companyHandler := safecompany.NewHandler(companyStore, captchaSvc)
	adminHandler := admin.NewHandler(adminService, adminJWT)
	adminAuth := admin.AuthMiddleware(adminJWT, adminService)

	r := chi.NewRouter()
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/captcha", reportHandler.Captcha)
		r.Mount("/reports", reportHandler.Routes())
		r.Mount("/companies", companyHandler.Routes())
	})
	r.Route("/api/admin", func(r chi.Router) {
		r.Mount("/", adminHandler.Routes(adminAuth))
		r.Mount("/reports", reportHandler.AdminRoutes(adminAuth))
		r.Mount("/companies", companyHandler.AdminRoutes(adminAuth))
	})
	return r
}

func TestRouterMountsDoNotConflict(t *testing.T) {
	defer func() {
		if rec := recover(); rec != nil {
			t.Fatalf("building the route tree panicked: %v", rec)
		}
	}()
	demoRouter(t)
}

func TestPublicRoutesServeSeedData(t *testing.T) {
	r := demoRouter(t)

	for _, path := range []string{"/api/v1/reports/", "/api/v1/companies/", "/api/v1/captcha"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, req)
		if rr.Code != http.StatusOK {
			t.Errorf("GET %s = %d, want 200", path, rr.Code)
		}
	}
}

func TestAdminRoutesRequireAuth(t *testing.T) {
	r := demoRouter(t)

	for _, path := range []string{"/api/admin/reports/", "/api/admin/companies/"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, req)
		if rr.Code != http.StatusUnauthorized {
			t.Errorf("GET %s without token = %d, want 401", path, rr.Code)
		}
	}
}
