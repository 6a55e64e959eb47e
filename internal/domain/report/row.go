package report

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// reportRow is the database shape of a report. The remote schema is
// snake_case while the API model is camelCase; toReport and toRow are
// the single place that conversion happens.
type reportRow struct {
	ID           uuid.UUID       `db:"id"`
	Title        string          `db:"title"`
	Company      sql.NullString  `db:"company"`
	ScamType     string          `db:"scam_type"`
	Industry     sql.NullString  `db:"industry"`
	Location     sql.NullString  `db:"location"`
	City         sql.NullString  `db:"city"`
	State        sql.NullString  `db:"state"`
	Country      sql.NullString  `db:"country"`
	Lat          sql.NullFloat64 `db:"lat"`
	Lng          sql.NullFloat64 `db:"lng"`
	Description  string          `db:"description"`
	Tags         pq.StringArray  `db:"tags"`
	Anonymous    bool            `db:"anonymous"`
	Email        sql.NullString  `db:"email"`
	Status       string          `db:"status"`
	CreatedAt    time.Time       `db:"created_at"`
	HelpfulVotes int             `db:"helpful_votes"`
	FlagCount    int             `db:"flag_count"`
	Views        int             `db:"views"`
	RiskLevel    string          `db:"risk_level"`
	TrustScore   int             `db:"trust_score"`
	EvidenceURLs pq.StringArray  `db:"evidence_urls"`
}

// toReport maps a database row to the API model, applying the same
// defaults the schema tolerates being absent.
func (row *reportRow) toReport() *ScamReport {
	r := &ScamReport{
		ID:           row.ID,
		Title:        row.Title,
		Company:      "Unknown Company",
		ScamType:     row.ScamType,
		Industry:     "Other",
		Description:  row.Description,
		Tags:         []string(row.Tags),
		Anonymous:    row.Anonymous,
		Status:       Status(row.Status),
		CreatedAt:    row.CreatedAt,
		HelpfulVotes: row.HelpfulVotes,
		FlagCount:    row.FlagCount,
		Views:        row.Views,
		RiskLevel:    RiskLevel(row.RiskLevel),
		TrustScore:   row.TrustScore,
		EvidenceURLs: []string(row.EvidenceURLs),
	}

	if row.Company.Valid && row.Company.String != "" {
		r.Company = row.Company.String
	}
	if row.Industry.Valid && row.Industry.String != "" {
		r.Industry = row.Industry.String
	}
	if row.Location.Valid {
		r.Location = row.Location.String
	}
	if row.City.Valid {
		r.City = row.City.String
	}
	if row.State.Valid {
		r.State = row.State.String
	}
	if row.Country.Valid {
		r.Country = row.Country.String
	}
	if row.Lat.Valid {
		lat := row.Lat.Float64
		r.Lat = &lat
	}
	if row.Lng.Valid {
		lng := row.Lng.Float64
		r.Lng = &lng
	}
	if row.Email.Valid {
		email := row.Email.String
		r.Email = &email
	}
	if r.Tags == nil {
		r.Tags = []string{}
	}

	return r
}

// toRow maps the API model to its database shape.
func toRow(r *ScamReport) *reportRow {
	row := &reportRow{
		ID:           r.ID,
		Title:        r.Title,
		Company:      sql.NullString{String: r.Company, Valid: r.Company != ""},
		ScamType:     r.ScamType,
		Industry:     sql.NullString{String: r.Industry, Valid: r.Industry != ""},
		Location:     sql.NullString{String: r.Location, Valid: r.Location != ""},
		City:         sql.NullString{String: r.City, Valid: r.City != ""},
		State:        sql.NullString{String: r.State, Valid: r.State != ""},
		Country:      sql.NullString{String: r.Country, Valid: r.Country != ""},
		Description:  r.Description,
		Tags:         pq.StringArray(r.Tags),
		Anonymous:    r.Anonymous,
		Status:       string(r.Status),
		CreatedAt:    r.CreatedAt,
		HelpfulVotes: r.HelpfulVotes,
		FlagCount:    r.FlagCount,
		Views:        r.Views,
		RiskLevel:    string(r.RiskLevel),
		TrustScore:   r.TrustScore,
		EvidenceURLs: pq.StringArray(r.EvidenceURLs),
	}

	if r.Lat != nil {
		row.Lat = sql.NullFloat64{Float64: *r.Lat, Valid: true}
	}
	if r.Lng != nil {
		row.Lng = sql.NullFloat64{Float64: *r.Lng, Valid: true}
	}
	if r.Email != nil {
		row.Email = sql.NullString{String: *r.Email, Valid: true}
	}
	if row.Tags == nil {
		row.Tags = pq.StringArray{}
	}
	if row.EvidenceURLs == nil {
		row.EvidenceURLs = pq.StringArray{}
	}

	return row
}
