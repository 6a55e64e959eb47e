package geo

import (
	"math"
	"testing"
)

func TestDistanceZero(t *testing.T) {
	d := Distance(40.7128, -74.0060, 40.7128, -74.0060)
	if d != 0 {
		t.Fatalf("expected 0 distance for identical points, got %f", d)
	}
}

func TestDistanceNewYorkLosAngeles(t *testing.T) {
	// NYC to LA is roughly 3936 km great-circle.
	d := Distance(40.7128, -74.0060, 34.0522, -118.2437)
	if math.Abs(d-3936) > 40 {
		t.Fatalf("expected ~3936 km, got %f", d)
	}
}

func TestDistanceShortHop(t *testing.T) {
	// Lower Manhattan to Greenwich Village, well under 5 km.
	d := Distance(40.7128, -74.0060, 40.73, -73.99)
	if d <= 0 || d > 5 {
		t.Fatalf("expected short distance under 5 km, got %f", d)
	}
}

func TestDistanceSymmetric(t *testing.T) {
	a := Distance(51.5074, -0.1278, 48.8566, 2.3522)
	b := Distance(48.8566, 2.3522, 51.5074, -0.1278)
	if math.Abs(a-b) > 1e-9 {
		t.Fatalf("distance not symmetric: %f vs %f", a, b)
	}
}
