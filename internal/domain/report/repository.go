package report

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// Repository defines report persistence.
//
// Counter methods deliberately issue separate atomic UPDATE statements
// for the counter and the trust score rather than a transaction; the
// two can diverge if the process dies between them, which matches the
// system's consistency contract.
type Repository interface {
	ListAll(ctx context.Context) ([]*ScamReport, error)
	Insert(ctx context.Context, report *ScamReport) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status Status) error
	Delete(ctx context.Context, id uuid.UUID) error
	IncrementHelpful(ctx context.Context, id uuid.UUID) error
	IncrementFlag(ctx context.Context, id uuid.UUID) error
	IncrementViews(ctx context.Context, id uuid.UUID) error
	InsertEvidence(ctx context.Context, file *EvidenceFile) error
}

type repository struct {
	db *sqlx.DB
}

// NewRepository creates a Postgres-backed report repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) ListAll(ctx context.Context) ([]*ScamReport, error) {
	query := `SELECT * FROM scam_reports ORDER BY created_at DESC`

	var rows []*reportRow
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, err
	}

	reports := make([]*ScamReport, len(rows))
	for i, row := range rows {
		reports[i] = row.toReport()
	}
	return reports, nil
}

func (r *repository) Insert(ctx context.Context, report *ScamReport) error {
	row := toRow(report)

	query := `
		INSERT INTO scam_reports (
			id, title, company, scam_type, industry, location, city, state, country,
			lat, lng, description, tags, anonymous, email, status, created_at,
			helpful_votes, flag_count, views, risk_level, trust_score, evidence_urls
		) VALUES (
			:id, :title, :company, :scam_type, :industry, :location, :city, :state, :country,
			:lat, :lng, :description, :tags, :anonymous, :email, :status, :created_at,
			:helpful_votes, :flag_count, :views, :risk_level, :trust_score, :evidence_urls
		)
	`
	_, err := r.db.NamedExecContext(ctx, query, row)
	return err
}

func (r *repository) UpdateStatus(ctx context.Context, id uuid.UUID, status Status) error {
	query := `UPDATE scam_reports SET status = $1 WHERE id = $2`
	result, err := r.db.ExecContext(ctx, query, status, id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrReportNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM scam_reports WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrReportNotFound
	}
	return nil
}

// IncrementHelpful bumps the vote counter and the trust score as two
// separate atomic updates. The score is clamped at 100 in the UPDATE
// itself so concurrent voters cannot push it past the bound.
func (r *repository) IncrementHelpful(ctx context.Context, id uuid.UUID) error {
	if _, err := r.db.ExecContext(ctx,
		`UPDATE scam_reports SET helpful_votes = helpful_votes + 1 WHERE id = $1`, id); err != nil {
		return err
	}
	_, err := r.db.ExecContext(ctx,
		`UPDATE scam_reports SET trust_score = LEAST(100, trust_score + 2) WHERE id = $1`, id)
	return err
}

// IncrementFlag bumps the flag counter and drops the trust score,
// floored at 0, as two separate atomic updates.
func (r *repository) IncrementFlag(ctx context.Context, id uuid.UUID) error {
	if _, err := r.db.ExecContext(ctx,
		`UPDATE scam_reports SET flag_count = flag_count + 1 WHERE id = $1`, id); err != nil {
		return err
	}
	_, err := r.db.ExecContext(ctx,
		`UPDATE scam_reports SET trust_score = GREATEST(0, trust_score - 5) WHERE id = $1`, id)
	return err
}

func (r *repository) IncrementViews(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE scam_reports SET views = views + 1 WHERE id = $1`, id)
	return err
}

func (r *repository) InsertEvidence(ctx context.Context, file *EvidenceFile) error {
	query := `
		INSERT INTO evidence_files (id, object_key, thumbnail_key, mime_type, size_bytes, processed, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	var thumbnailKey sql.NullString
	if file.ThumbnailKey != nil {
		thumbnailKey = sql.NullString{String: *file.ThumbnailKey, Valid: true}
	}
	_, err := r.db.ExecContext(ctx, query,
		file.ID,
		file.ObjectKey,
		thumbnailKey,
		file.MimeType,
		file.SizeBytes,
		file.Processed,
		file.CreatedAt,
	)
	return err
}

// IsNotFound reports whether err marks a missing report row.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrReportNotFound) || errors.Is(err, sql.ErrNoRows)
}
