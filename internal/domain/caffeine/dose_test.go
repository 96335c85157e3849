package caffeine

import (
	"math"
	"testing"
	"time"
)

func f64(v float64) *float64 { return &v }

func TestEstimateDose(t *testing.T) {
	mgPerML := defaultMGPerML()
	shotML := defaultShotML()

	tests := []struct {
		name  string
		event BrewEvent
		want  float64
	}{
		{
			name:  "explicit mg wins over volume",
			event: BrewEvent{Type: "espresso", MG: f64(120), AmountML: f64(500)},
			want:  120,
		},
		{
			name:  "volume times concentration",
			event: BrewEvent{Type: "espresso", AmountML: f64(38)},
			want:  38 * 2.1,
		},
		{
			name:  "typical serving fallback when nothing recorded",
			event: BrewEvent{Type: "v60"},
			want:  240 * 0.6,
		},
		{
			name:  "unknown type degrades to other row",
			event: BrewEvent{Type: "turkish", AmountML: f64(100)},
			want:  100 * 0.6,
		},
		{
			name:  "negative volume clamps to zero",
			event: BrewEvent{Type: "espresso", AmountML: f64(-10)},
			want:  0,
		},
		{
			name:  "non-positive mg falls through to serving fallback",
			event: BrewEvent{Type: "espresso", MG: f64(-5)},
			want:  38 * 2.1,
		},
	}

	for _, tc := range tests {
		got := EstimateDose(tc.event, mgPerML, shotML, 1.0, 1.0)
		if math.Abs(got-tc.want) > 1e-9 {
			t.Fatalf("%s: expected %v got %v", tc.name, tc.want, got)
		}
		if got < 0 {
			t.Fatalf("%s: dose must be non-negative, got %v", tc.name, got)
		}
	}
}

func TestEstimateDoseScalesWithBioavailabilityAndSensitivity(t *testing.T) {
	event := BrewEvent{Type: "espresso", AmountML: f64(38)}
	got := EstimateDose(event, defaultMGPerML(), defaultShotML(), 0.99, 0.5)
	want := 38 * 2.1 * 0.99 * 0.5
	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("expected %v got %v", want, got)
	}
}

func TestEstimateDoseLinearInVolume(t *testing.T) {
	base := BrewEvent{Type: "chemex", AmountML: f64(150), Timestamp: time.Now()}
	double := BrewEvent{Type: "chemex", AmountML: f64(300), Timestamp: base.Timestamp}

	one := EstimateDose(base, defaultMGPerML(), defaultShotML(), 0.99, 1.0)
	two := EstimateDose(double, defaultMGPerML(), defaultShotML(), 0.99, 1.0)
	if math.Abs(two-2*one) > 1e-9 {
		t.Fatalf("doubling volume should double dose: %v vs %v", one, two)
	}
}

func TestEstimateDoseTableOverridesDoNotMutateDefaults(t *testing.T) {
	merged := defaultMGPerML().withOverrides(map[string]float64{"espresso": 3.0, "bogus": 1.2, "moka": -1})
	if merged.Espresso != 3.0 {
		t.Fatalf("override not applied: %v", merged.Espresso)
	}
	if merged.Other != 1.2 {
		t.Fatalf("unknown key should land on the other row: %v", merged.Other)
	}
	if merged.Moka != defaultMGPerML().Moka {
		t.Fatalf("non-positive override must be ignored: %v", merged.Moka)
	}
	if defaultMGPerML().Espresso != 2.1 {
		t.Fatal("defaults mutated by merge")
	}
}
