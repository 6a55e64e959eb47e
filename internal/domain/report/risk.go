package report

// highRiskTypes and highRiskTags mark a submission as high risk on
// sight. The classification is computed once at submission time and
// never revisited, even by moderation.
var highRiskTypes = map[string]bool{
	"Fake Job Offer":       true,
	"Upfront Payment Scam": true,
	"Identity Theft":       true,
	"Phishing Attempt":     true,
}

var highRiskTags = map[string]bool{
	"upfront-payment": true,
	"fake-training":   true,
	"identity-theft":  true,
	"phishing":        true,
}

// ClassifyRisk derives the risk level from the scam type and selected
// tags: high when either matches a known high-risk marker, low for the
// catch-all "Other" type, medium otherwise.
func ClassifyRisk(scamType string, tags []string) RiskLevel {
	if highRiskTypes[scamType] {
		return RiskHigh
	}
	for _, tag := range tags {
		if highRiskTags[tag] {
			return RiskHigh
		}
	}
	if scamType == "Other" {
		return RiskLow
	}
	return RiskMedium
}
