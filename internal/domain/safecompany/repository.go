package safecompany

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// Repository defines safe company persistence.
type Repository interface {
	ListAll(ctx context.Context) ([]*SafeCompany, error)
	Insert(ctx context.Context, company *SafeCompany) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status Status) error
	UpdateScore(ctx context.Context, id uuid.UUID, score int) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type companyRow struct {
	ID            uuid.UUID      `db:"id"`
	Name          string         `db:"name"`
	Industry      string         `db:"industry"`
	Description   string         `db:"description"`
	Website       sql.NullString `db:"website"`
	Tags          pq.StringArray `db:"tags"`
	VerifiedScore int            `db:"verified_score"`
	Status        string         `db:"status"`
	CreatedAt     sql.NullTime   `db:"created_at"`
}

func (row *companyRow) toCompany() *SafeCompany {
	c := &SafeCompany{
		ID:            row.ID,
		Name:          row.Name,
		Industry:      row.Industry,
		Description:   row.Description,
		Tags:          []string(row.Tags),
		VerifiedScore: row.VerifiedScore,
		Status:        Status(row.Status),
	}
	if row.Website.Valid && row.Website.String != "" {
		website := row.Website.String
		c.Website = &website
	}
	if row.CreatedAt.Valid {
		c.CreatedAt = row.CreatedAt.Time
	}
	if c.Tags == nil {
		c.Tags = []string{}
	}
	return c
}

func toRow(c *SafeCompany) *companyRow {
	row := &companyRow{
		ID:            c.ID,
		Name:          c.Name,
		Industry:      c.Industry,
		Description:   c.Description,
		Tags:          pq.StringArray(c.Tags),
		VerifiedScore: c.VerifiedScore,
		Status:        string(c.Status),
		CreatedAt:     sql.NullTime{Time: c.CreatedAt, Valid: !c.CreatedAt.IsZero()},
	}
	if c.Website != nil {
		row.Website = sql.NullString{String: *c.Website, Valid: true}
	}
	if row.Tags == nil {
		row.Tags = pq.StringArray{}
	}
	return row
}

type repository struct {
	db *sqlx.DB
}

// NewRepository creates a Postgres-backed safe company repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) ListAll(ctx context.Context) ([]*SafeCompany, error) {
	query := `SELECT * FROM safe_companies ORDER BY verified_score DESC, created_at DESC`

	var rows []*companyRow
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, err
	}

	companies := make([]*SafeCompany, len(rows))
	for i, row := range rows {
		companies[i] = row.toCompany()
	}
	return companies, nil
}

func (r *repository) Insert(ctx context.Context, company *SafeCompany) error {
	query := `
		INSERT INTO safe_companies (id, name, industry, description, website, tags, verified_score, status, created_at)
		VALUES (:id, :name, :industry, :description, :website, :tags, :verified_score, :status, :created_at)
	`
	_, err := r.db.NamedExecContext(ctx, query, toRow(company))
	return err
}

func (r *repository) UpdateStatus(ctx context.Context, id uuid.UUID, status Status) error {
	return r.exec(ctx, `UPDATE safe_companies SET status = $1 WHERE id = $2`, status, id)
}

func (r *repository) UpdateScore(ctx context.Context, id uuid.UUID, score int) error {
	return r.exec(ctx, `UPDATE safe_companies SET verified_score = $1 WHERE id = $2`, score, id)
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.exec(ctx, `DELETE FROM safe_companies WHERE id = $1`, id)
}

func (r *repository) exec(ctx context.Context, query string, args ...any) error {
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrCompanyNotFound
	}
	return nil
}
