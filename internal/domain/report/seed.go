package report

import (
	"time"

	"github.com/google/uuid"
)

func floatPtr(f float64) *float64 { return &f }

// seedReports returns the built-in dataset served when no database is
// configured or the initial fetch fails. Keeps the app browsable in
// demo mode instead of failing hard.
func seedReports() []*ScamReport {
	now := time.Now()

	return []*ScamReport{
		{
			ID:       uuid.MustParse("7c0d3a9e-51f2-4b85-9c14-3f8a2d6e1b01"),
			Title:    "Fake Web Development Job - TechCorp Solutions",
			Company:  "TechCorp Solutions",
			ScamType: "Fake Job Offer",
			Industry: "Web Development",
			Location: "New York, NY, USA",
			City:     "New York",
			State:    "NY",
			Country:  "USA",
			Lat:      floatPtr(40.7128),
			Lng:      floatPtr(-74.006),
			Description: `Company asked for $500 upfront for "training materials" and then disappeared. ` +
				`They had a professional-looking website but no real contact information.`,
			Tags:         []string{"upfront-payment", "fake-training", "web-development"},
			Anonymous:    true,
			Status:       StatusApproved,
			CreatedAt:    now.Add(-2 * time.Hour),
			HelpfulVotes: 23,
			FlagCount:    0,
			Views:        156,
			RiskLevel:    RiskHigh,
			TrustScore:   92,
		},
		{
			ID:       uuid.MustParse("2b6f8c41-9a3d-4e07-8d52-6c1e4f9a7b02"),
			Title:    "Unpaid Graphic Design Work - Creative Agency Inc",
			Company:  "Creative Agency Inc",
			ScamType: "Unpaid Work",
			Industry: "Graphic Design",
			Location: "Los Angeles, CA, USA",
			City:     "Los Angeles",
			State:    "CA",
			Country:  "USA",
			Lat:      floatPtr(34.0522),
			Lng:      floatPtr(-118.2437),
			Description: `Completed a full logo design project as "test work" but never received ` +
				`payment despite multiple follow-ups.`,
			Tags:         []string{"unpaid-work", "test-project", "graphic-design"},
			Anonymous:    true,
			Status:       StatusApproved,
			CreatedAt:    now.Add(-5 * time.Hour),
			HelpfulVotes: 18,
			FlagCount:    0,
			Views:        89,
			RiskLevel:    RiskMedium,
			TrustScore:   87,
		},
	}
}
