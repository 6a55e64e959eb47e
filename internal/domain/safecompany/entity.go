package safecompany

import (
	"time"

	"github.com/google/uuid"
)

// Status is the moderation state of a company listing.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// InitialVerifiedScore is assigned to every submission. Unlike report
// trust scores it never moves through community actions; only admins
// edit it.
const InitialVerifiedScore = 50

// SafeCompany is a community-nominated employer with a good track
// record. Listings go through the same pending/approved/rejected
// lifecycle as scam reports.
type SafeCompany struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	Industry      string    `json:"industry"`
	Description   string    `json:"description"`
	Website       *string   `json:"website,omitempty"`
	Tags          []string  `json:"tags"`
	VerifiedScore int       `json:"verifiedScore"`
	Status        Status    `json:"status"`
	CreatedAt     time.Time `json:"createdAt"`
}

// Draft carries the validated submission fields into the store.
type Draft struct {
	Name        string
	Industry    string
	Description string
	Website     *string
	Tags        []string
}
