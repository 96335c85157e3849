package caffeine

import (
	"math"
	"testing"
)

func TestDistributionVolumeLiters(t *testing.T) {
	tests := []struct {
		name    string
		profile BodyProfile
		want    float64
	}{
		{
			name:    "empty profile uses population defaults",
			profile: BodyProfile{},
			want:    0.6 * 75,
		},
		{
			name:    "explicit weight and vd",
			profile: BodyProfile{WeightKG: f64(60), VdLPerKG: f64(0.5)},
			want:    0.5 * 60,
		},
		{
			name:    "near-zero weight hits the 30kg floor",
			profile: BodyProfile{WeightKG: f64(2)},
			want:    0.6 * 30,
		},
		{
			name:    "degenerate vd hits the one liter floor",
			profile: BodyProfile{WeightKG: f64(30), VdLPerKG: f64(0.01)},
			want:    1,
		},
		{
			name:    "explicit negative vd clamps to the one liter floor",
			profile: BodyProfile{WeightKG: f64(75), VdLPerKG: f64(-1)},
			want:    1,
		},
		{
			name:    "explicit zero vd clamps to the one liter floor",
			profile: BodyProfile{WeightKG: f64(75), VdLPerKG: f64(0)},
			want:    1,
		},
		{
			name: "lean mass adjustment with composition data",
			profile: BodyProfile{
				WeightKG:          f64(80),
				BodyFatPercentage: f64(25),
				MusclePercentage:  f64(40),
			},
			// lean 60kg plus fat 20kg at a tenth weight
			want: 0.6 * (60 + 0.1*20),
		},
		{
			name: "fat percentage alone keeps the plain formula",
			profile: BodyProfile{
				WeightKG:          f64(80),
				BodyFatPercentage: f64(25),
			},
			want: 0.6 * 80,
		},
	}

	for _, tc := range tests {
		got := DistributionVolumeLiters(tc.profile)
		if math.Abs(got-tc.want) > 1e-9 {
			t.Fatalf("%s: expected %v got %v", tc.name, tc.want, got)
		}
		if got < 1 {
			t.Fatalf("%s: volume below one liter: %v", tc.name, got)
		}
	}
}
