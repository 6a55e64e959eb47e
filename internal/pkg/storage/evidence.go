package storage

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Config for the R2 evidence store
type Config struct {
	AccountID       string
	AccessKeyID     string
	AccessKeySecret string
	BucketName      string
	PublicURL       string // CDN URL prefix
}

// EvidenceStore uploads report evidence files to Cloudflare R2.
type EvidenceStore struct {
	client    *s3.Client
	bucket    string
	publicURL string
}

// AllowedEvidenceTypes for validation
var AllowedEvidenceTypes = map[string]bool{
	"image/jpeg":      true,
	"image/png":       true,
	"image/webp":      true,
	"image/gif":       true,
	"application/pdf": true,
}

// MaxEvidenceSize in bytes (5MB per file)
const MaxEvidenceSize = 5 * 1024 * 1024

// MaxEvidenceFiles per submission
const MaxEvidenceFiles = 5

// NewEvidenceStore creates the evidence store.
// Returns nil if config is incomplete (evidence uploads disabled).
func NewEvidenceStore(cfg *Config) *EvidenceStore {
	if cfg.AccountID == "" || cfg.AccessKeyID == "" || cfg.AccessKeySecret == "" || cfg.BucketName == "" {
		log.Warn().Msg("R2 config incomplete, evidence uploads disabled")
		return nil
	}

	endpoint := fmt.Sprintf("https://%s.r2.cloudflarestorage.com", cfg.AccountID)

	r2Resolver := aws.EndpointResolverWithOptionsFunc(func(service, region string, options ...interface{}) (aws.Endpoint, error) {
		return aws.Endpoint{
			URL: endpoint,
		}, nil
	})

	r2Config, err := config.LoadDefaultConfig(context.Background(),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKeyID,
			cfg.AccessKeySecret,
			"",
		)),
		config.WithRegion("auto"),
		config.WithEndpointResolverWithOptions(r2Resolver),
	)
	if err != nil {
		log.Error().Err(err).Msg("Failed to create R2 client config")
		return nil
	}

	publicURL := cfg.PublicURL
	if publicURL == "" {
		// Default R2.dev URL (works if public access enabled)
		publicURL = fmt.Sprintf("https://pub-%s.r2.dev", cfg.AccountID)
	}

	log.Info().Str("bucket", cfg.BucketName).Str("public_url", publicURL).Msg("Evidence store initialized")

	return &EvidenceStore{
		client:    s3.NewFromConfig(r2Config),
		bucket:    cfg.BucketName,
		publicURL: strings.TrimSuffix(publicURL, "/"),
	}
}

// UploadResult describes a stored evidence object.
type UploadResult struct {
	Key       string `json:"key"`
	PublicURL string `json:"public_url"`
	MimeType  string `json:"mime_type"`
	Size      int64  `json:"size"`
}

// Upload validates and stores a single evidence file, returning its
// publicly resolvable URL.
func (s *EvidenceStore) Upload(ctx context.Context, reader io.Reader, filename, contentType string, size int64) (*UploadResult, error) {
	if s == nil {
		return nil, fmt.Errorf("evidence store not configured")
	}

	if !AllowedEvidenceTypes[contentType] {
		return nil, fmt.Errorf("invalid file type: %s (allowed: jpeg, png, webp, gif, pdf)", contentType)
	}

	if size > MaxEvidenceSize {
		return nil, fmt.Errorf("file too large: %d bytes (max %d MB)", size, MaxEvidenceSize/1024/1024)
	}

	// Key layout: evidence/2025/08/{random}.{ext}
	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" {
		if contentType == "application/pdf" {
			ext = ".pdf"
		} else {
			ext = ".jpg"
		}
	}
	key := fmt.Sprintf("evidence/%s/%s%s",
		time.Now().Format("2006/01"),
		uuid.New().String(),
		ext,
	)

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          reader,
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(size),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upload evidence: %w", err)
	}

	return &UploadResult{
		Key:       key,
		PublicURL: s.publicURL + "/" + key,
		MimeType:  contentType,
		Size:      size,
	}, nil
}

// Get fetches a stored object. Used by the evidence worker.
func (s *EvidenceStore) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	if s == nil {
		return nil, fmt.Errorf("evidence store not configured")
	}

	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get object %s: %w", key, err)
	}
	return out.Body, nil
}

// Put stores raw bytes under an explicit key. Used by the evidence
// worker for generated thumbnails.
func (s *EvidenceStore) Put(ctx context.Context, key string, reader io.Reader, contentType string) error {
	if s == nil {
		return fmt.Errorf("evidence store not configured")
	}

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        reader,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return fmt.Errorf("failed to put object %s: %w", key, err)
	}
	return nil
}

// PublicURL returns the public URL for a stored key.
func (s *EvidenceStore) URL(key string) string {
	return s.publicURL + "/" + key
}
