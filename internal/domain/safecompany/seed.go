package safecompany

import (
	"time"

	"github.com/google/uuid"
)

// seedCompanies is the built-in dataset served when no database is
// configured or the initial load fails.
func seedCompanies() []*SafeCompany {
	website1 := "https://www.innovatedigital.com"
	website2 := "https://www.codecrafters.dev"

	return []*SafeCompany{
		{
			ID:            uuid.MustParse("7b1f4d2a-9c3e-4f5b-8a6d-1e2f3a4b5c6d"),
			Name:          "Innovate Digital Solutions",
			Industry:      "Digital Marketing",
			Description:   "Highly reputable agency known for clear communication and timely payments.",
			Website:       &website1,
			Tags:          []string{"marketing", "transparent", "reliable-payment"},
			VerifiedScore: 98,
			Status:        StatusApproved,
			CreatedAt:     time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC),
		},
		{
			ID:            uuid.MustParse("8c2e5f3b-0d4f-4a6c-9b7e-2f3a4b5c6d7e"),
			Name:          "CodeCrafters Studio",
			Industry:      "Web Development",
			Description:   "Praised by freelancers for organised projects and competitive rates.",
			Website:       &website2,
			Tags:          []string{"web-dev", "supportive", "long-term"},
			VerifiedScore: 95,
			Status:        StatusApproved,
			CreatedAt:     time.Date(2024, 2, 5, 14, 30, 0, 0, time.UTC),
		},
	}
}
