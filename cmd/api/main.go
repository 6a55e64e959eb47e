package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/scamsentry/scamsentry-api/internal/config"
	"github.com/scamsentry/scamsentry-api/internal/domain/admin"
	"github.com/scamsentry/scamsentry-api/internal/domain/feed"
	"github.com/scamsentry/scamsentry-api/internal/domain/report"
	"github.com/scamsentry/scamsentry-api/internal/domain/safecompany"
	"github.com/scamsentry/scamsentry-api/internal/middleware"
	"github.com/scamsentry/scamsentry-api/internal/pkg/captcha"
	"github.com/scamsentry/scamsentry-api/internal/pkg/database"
	"github.com/scamsentry/scamsentry-api/internal/pkg/geocode"
	pkgresponse "github.com/scamsentry/scamsentry-api/internal/pkg/response"
	"github.com/scamsentry/scamsentry-api/internal/pkg/storage"
)

func main() {
	cfg := config.Load()
	setupLogger(cfg)

	log.Info().
		Str("env", cfg.Env).
		Str("port", cfg.Port).
		Bool("demo_mode", cfg.DemoMode()).
		Msg("Starting ScamSentry API")

	// Postgres is optional: without DATABASE_URL the stores serve the
	// built-in seed data and mutations stay in memory.
	var reportRepo report.Repository
	var companyRepo safecompany.Repository
	var adminRepo admin.Repository
	if !cfg.DemoMode() {
		db, err := database.NewPostgres(cfg.DatabaseURL)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
		}
		defer database.ClosePostgres(db)

		reportRepo = report.NewRepository(db)
		companyRepo = safecompany.NewRepository(db)
		adminRepo = admin.NewRepository(db)
	}

	redisClient, err := database.NewRedis(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	if redisClient != nil {
		defer database.CloseRedis(redisClient)
	}

	// CAPTCHA challenges and vote dedup fall back to process memory
	// when Redis is absent.
	var captchaStore captcha.Store
	var voteGuard report.VoteGuard
	if redisClient != nil {
		captchaStore = captcha.NewRedisStore(redisClient)
		voteGuard = report.NewRedisVoteGuard(redisClient)
	} else {
		captchaStore = captcha.NewMemoryStore()
		voteGuard = report.NewMemoryVoteGuard()
	}
	captchaSvc := captcha.NewService(captchaStore, captcha.DefaultTTL)

	geocoder := geocode.NewClient(geocode.Config{
		BaseURL: cfg.GeocoderBaseURL,
	})

	evidenceStore := storage.NewEvidenceStore(&storage.Config{
		AccountID:       cfg.R2AccountID,
		AccessKeyID:     cfg.R2AccessKeyID,
		AccessKeySecret: cfg.R2AccessKeySecret,
		BucketName:      cfg.R2BucketName,
		PublicURL:       cfg.R2PublicURL,
	})

	// ---------- Stores ----------
	reportStore := report.NewStore(reportRepo)
	reportStore.LoadAll(context.Background())

	companyStore := safecompany.NewStore(companyRepo)
	companyStore.LoadAll(context.Background())

	// ---------- Live feed ----------
	feedHub := feed.NewHub()
	go feedHub.Run()
	defer feedHub.Shutdown()

	// ---------- Services ----------
	reportService := report.NewService(reportStore, captchaSvc, geocoder)
	adminService := admin.NewService(adminRepo, cfg.AdminEmail, cfg.AdminPassword)
	adminJWTService := admin.NewJWTService(cfg.JWTSecret, cfg.AdminJWTTTL)

	// ---------- Handlers ----------
	reportHandler := report.NewHandler(reportService, reportStore, captchaSvc, voteGuard, evidenceStore, reportRepo, feedHub)
	companyHandler := safecompany.NewHandler(companyStore, captchaSvc)
	adminHandler := admin.NewHandler(adminService, adminJWTService)
	feedHandler := feed.NewHandler(feedHub, cfg.AllowedOrigins)

	adminAuthMiddleware := admin.AuthMiddleware(adminJWTService, adminService)

	// ---------- Router ----------
	r := chi.NewRouter()

	r.Use(chimw.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recover)
	r.Use(middleware.CORSHandler(cfg.AllowedOrigins))
	r.Use(middleware.Session)

	// WebSocket endpoint stays outside Compress
	r.Get("/ws/feed", feedHandler.WebSocket)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		pkgresponse.OK(w, map[string]string{
			"status":  "ok",
			"version": "1.0.0",
		})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(chimw.Compress(5))

		r.Get("/ping", func(w http.ResponseWriter, r *http.Request) {
			pkgresponse.OK(w, map[string]string{"message": "pong"})
		})

		r.Get("/captcha", reportHandler.Captcha)
		r.Post("/evidence", reportHandler.UploadEvidence)

		r.Mount("/reports", reportHandler.Routes())
		r.Mount("/companies", companyHandler.Routes())
	})

	r.Route("/api/admin", func(r chi.Router) {
		r.Mount("/", adminHandler.Routes(adminAuthMiddleware))
		r.Mount("/reports", reportHandler.AdminRoutes(adminAuthMiddleware))
		r.Mount("/companies", companyHandler.AdminRoutes(adminAuthMiddleware))
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", server.Addr).Msg("HTTP server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited properly")
}

func setupLogger(cfg *config.Config) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)

	if cfg.IsDevelopment() {
		log.Logger = log.Output(zerolog.ConsoleWriter{
			Out:        os.Stdout,
			TimeFormat: "15:04:05",
		})
	}
}
