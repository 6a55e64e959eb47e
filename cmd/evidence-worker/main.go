package main

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path"
	"strings"
	"syscall"
	"time"

	"github.com/disintegration/imaging"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/scamsentry/scamsentry-api/internal/config"
	"github.com/scamsentry/scamsentry-api/internal/pkg/database"
	"github.com/scamsentry/scamsentry-api/internal/pkg/storage"
)

const (
	pollInterval = 5 * time.Second
	maxAttempts  = 3
	thumbSide    = 1600
	jpegQuality  = 85
)

type evidenceJob struct {
	ID        string `db:"id"`
	ObjectKey string `db:"object_key"`
	MimeType  string `db:"mime_type"`
}

func main() {
	cfg := config.Load()
	setupLogger(cfg)

	log.Info().Msg("Starting evidence-worker")

	if cfg.DemoMode() {
		log.Fatal().Msg("DATABASE_URL is required; the worker has no demo mode")
	}

	db, err := database.NewPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer database.ClosePostgres(db)

	store := storage.NewEvidenceStore(&storage.Config{
		AccountID:       cfg.R2AccountID,
		AccessKeyID:     cfg.R2AccessKeyID,
		AccessKeySecret: cfg.R2AccessKeySecret,
		BucketName:      cfg.R2BucketName,
		PublicURL:       cfg.R2PublicURL,
	})
	if store == nil {
		log.Fatal().Msg("R2 configuration is required for the evidence worker")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)
	go func() {
		<-sigChan
		log.Info().Msg("Shutdown signal received")
		cancel()
	}()

	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()
	lastIdleLog := time.Time{}
	idleLogEvery := 1 * time.Minute

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("evidence-worker stopped")
			return
		case <-ticker.C:
		}

		job, ok, err := claimNextJob(ctx, db)
		if err != nil {
			log.Error().Err(err).Msg("DB error while claiming job")
			continue
		}
		if !ok {
			now := time.Now()
			if lastIdleLog.IsZero() || now.Sub(lastIdleLog) >= idleLogEvery {
				log.Info().Msg("Idle: no unprocessed evidence found")
				lastIdleLog = now
			}
			continue
		}

		start := time.Now()
		log.Info().
			Str("evidence_id", job.ID).
			Str("key", job.ObjectKey).
			Msg("Processing evidence image")

		thumbKey, err := processOne(ctx, store, job.ObjectKey)
		if err != nil {
			log.Error().Err(err).Str("evidence_id", job.ID).Msg("Processing failed")
			continue
		}

		if err := markDone(ctx, db, job.ID, thumbKey); err != nil {
			log.Error().Err(err).Str("evidence_id", job.ID).Msg("Failed to mark evidence processed")
			continue
		}

		log.Info().
			Str("evidence_id", job.ID).
			Str("thumbnail_key", thumbKey).
			Dur("took", time.Since(start)).
			Msg("Processing done")
	}
}

// processOne downloads the original, renders a bounded JPEG thumbnail
// and uploads it next to the original.
func processOne(ctx context.Context, store *storage.EvidenceStore, originalKey string) (string, error) {
	rc, err := store.Get(ctx, originalKey)
	if err != nil {
		return "", fmt.Errorf("download: %w", err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return "", fmt.Errorf("read: %w", err)
	}

	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("decode: %w", err)
	}

	thumb := img
	if img.Bounds().Dx() > thumbSide || img.Bounds().Dy() > thumbSide {
		thumb = imaging.Fit(img, thumbSide, thumbSide, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, thumb, imaging.JPEG, imaging.JPEGQuality(jpegQuality)); err != nil {
		return "", fmt.Errorf("encode thumb: %w", err)
	}

	thumbKey := strings.TrimSuffix(originalKey, path.Ext(originalKey)) + "_thumb.jpg"
	if err := store.Put(ctx, thumbKey, bytes.NewReader(buf.Bytes()), "image/jpeg"); err != nil {
		return "", fmt.Errorf("upload thumb: %w", err)
	}

	return thumbKey, nil
}

// claimNextJob picks the oldest unprocessed image evidence and claims
// it atomically, so a second worker instance cannot grab the same row.
// PDFs are served as-is and never claimed.
func claimNextJob(ctx context.Context, db *sqlx.DB) (*evidenceJob, bool, error) {
	var j evidenceJob
	err := db.GetContext(ctx, &j, `
		SELECT id, object_key, mime_type
		FROM evidence_files
		WHERE processed = FALSE
		  AND mime_type IN ('image/jpeg','image/png','image/webp','image/gif')
		  AND attempts < $1
		ORDER BY created_at ASC
		LIMIT 1
	`, maxAttempts)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, err
	}

	res, err := db.ExecContext(ctx, `
		UPDATE evidence_files
		SET attempts = attempts + 1
		WHERE id = $1
		  AND processed = FALSE
		  AND attempts < $2
	`, j.ID, maxAttempts)
	if err != nil {
		return nil, false, err
	}

	aff, _ := res.RowsAffected()
	if aff == 0 {
		return nil, false, nil
	}

	return &j, true, nil
}

func markDone(ctx context.Context, db *sqlx.DB, id, thumbKey string) error {
	_, err := db.ExecContext(ctx, `
		UPDATE evidence_files
		SET processed = TRUE,
		    thumbnail_key = $2,
		    processed_at = NOW()
		WHERE id = $1
	`, id, thumbKey)
	return err
}

func setupLogger(cfg *config.Config) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if cfg.IsDevelopment() {
		log.Logger = log.Output(zerolog.ConsoleWriter{
			Out:        os.Stdout,
			TimeFormat: "15:04:05",
		})
	}
}
