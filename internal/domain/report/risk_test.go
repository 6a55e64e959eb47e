package report

import "testing"

func TestClassifyRiskHighTypes(t *testing.T) {
	types := []string{"Fake Job Offer", "Upfront Payment Scam", "Identity Theft", "Phishing Attempt"}
	for _, scamType := range types {
		if got := ClassifyRisk(scamType, nil); got != RiskHigh {
			t.Errorf("ClassifyRisk(%q, nil) = %q, want high", scamType, got)
		}
	}
}

func TestClassifyRiskHighTags(t *testing.T) {
	tags := []string{"upfront-payment", "fake-training", "identity-theft", "phishing"}
	for _, tag := range tags {
		if got := ClassifyRisk("Unpaid Work", []string{"web-development", tag}); got != RiskHigh {
			t.Errorf("ClassifyRisk with tag %q = %q, want high", tag, got)
		}
	}
}

func TestClassifyRiskOtherIsLow(t *testing.T) {
	if got := ClassifyRisk("Other", nil); got != RiskLow {
		t.Errorf("ClassifyRisk(Other) = %q, want low", got)
	}
	if got := ClassifyRisk("Other", []string{"no-contract"}); got != RiskLow {
		t.Errorf("ClassifyRisk(Other, benign tags) = %q, want low", got)
	}
}

func TestClassifyRiskOtherWithHighTagIsHigh(t *testing.T) {
	// A high-risk tag outranks the "Other" catch-all.
	if got := ClassifyRisk("Other", []string{"phishing"}); got != RiskHigh {
		t.Errorf("ClassifyRisk(Other, phishing) = %q, want high", got)
	}
}

func TestClassifyRiskDefaultIsMedium(t *testing.T) {
	if got := ClassifyRisk("Unpaid Work", []string{"test-project"}); got != RiskMedium {
		t.Errorf("ClassifyRisk(Unpaid Work) = %q, want medium", got)
	}
}

func TestClassifyRiskDeterministic(t *testing.T) {
	for i := 0; i < 10; i++ {
		if got := ClassifyRisk("Fake Job Offer", []string{"web-development"}); got != RiskHigh {
			t.Fatalf("classification not stable on iteration %d: %q", i, got)
		}
	}
}
