package report

import (
	"time"

	"github.com/google/uuid"
)

// Status represents the moderation status of a report
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// RiskLevel is the coarse classification fixed at submission time
type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// InitialTrustScore seeds every new report's community trust score.
const InitialTrustScore = 50

// DefaultRadiusKm is the nearby-reports search radius when none is given.
const DefaultRadiusKm = 50

// ScamReport is a single user-submitted scam allegation.
// Email is present only when the report is not anonymous; Lat/Lng are
// present only when the submitted location could be geocoded.
type ScamReport struct {
	ID           uuid.UUID `json:"id"`
	Title        string    `json:"title"`
	Company      string    `json:"company"`
	ScamType     string    `json:"scamType"`
	Industry     string    `json:"industry"`
	Location     string    `json:"location"`
	City         string    `json:"city"`
	State        string    `json:"state"`
	Country      string    `json:"country"`
	Lat          *float64  `json:"lat,omitempty"`
	Lng          *float64  `json:"lng,omitempty"`
	Description  string    `json:"description"`
	Tags         []string  `json:"tags"`
	Anonymous    bool      `json:"anonymous"`
	Email        *string   `json:"email,omitempty"`
	Status       Status    `json:"status"`
	CreatedAt    time.Time `json:"createdAt"`
	HelpfulVotes int       `json:"helpfulVotes"`
	FlagCount    int       `json:"flagCount"`
	Views        int       `json:"views"`
	RiskLevel    RiskLevel `json:"riskLevel"`
	TrustScore   int       `json:"trustScore"`
	EvidenceURLs []string  `json:"evidenceUrls,omitempty"`
}

// Draft carries the user-supplied fields of a submission. Identifier,
// timestamps, counters, status and trust score are assigned by the store.
type Draft struct {
	Title        string
	Company      string
	ScamType     string
	Industry     string
	Location     string
	City         string
	State        string
	Country      string
	Lat          *float64
	Lng          *float64
	Description  string
	Tags         []string
	Anonymous    bool
	Email        *string
	RiskLevel    RiskLevel
	EvidenceURLs []string
}

// EvidenceFile tracks an uploaded evidence object awaiting thumbnail
// processing by the evidence worker.
type EvidenceFile struct {
	ID           uuid.UUID `db:"id"`
	ObjectKey    string    `db:"object_key"`
	ThumbnailKey *string   `db:"thumbnail_key"`
	MimeType     string    `db:"mime_type"`
	SizeBytes    int64     `db:"size_bytes"`
	Processed    bool      `db:"processed"`
	CreatedAt    time.Time `db:"created_at"`
}
