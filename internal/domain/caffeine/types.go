package caffeine

import "time"

// BrewEvent is a single logged coffee consumption, produced by the habits
// subsystem. Either the measured caffeine mass or the poured volume may be
// present; both may be absent for a quick "had an espresso" style log.
type BrewEvent struct {
	ID        string    `json:"id,omitempty"`
	Timestamp time.Time `json:"timestamp"`
	Type      string    `json:"type"`
	AmountML  *float64  `json:"amountMl,omitempty"`
	MG        *float64  `json:"mg,omitempty"`
}

// BodyProfile is a read-only snapshot of the drinker's physiology. All
// fields are optional; the simulator substitutes population defaults.
type BodyProfile struct {
	WeightKG            *float64 `json:"weightKg,omitempty"`
	HeightCM            *float64 `json:"heightCm,omitempty"`
	VdLPerKG            *float64 `json:"vdLPerKg,omitempty"`
	HalfLifeHours       *float64 `json:"halfLifeHours,omitempty"`
	CaffeineSensitivity *float64 `json:"caffeineSensitivity,omitempty"`
	Bioavailability     *float64 `json:"bioavailability,omitempty"`
	BodyFatPercentage   *float64 `json:"bodyFatPercentage,omitempty"`
	MusclePercentage    *float64 `json:"musclePercentage,omitempty"`
}

// SimulationOptions carries caller overrides. Zero values mean "use the
// built-in default"; the defaults themselves are never mutated.
type SimulationOptions struct {
	HalfLifeHours float64            `json:"halfLifeHours,omitempty"`
	GridMinutes   int                `json:"gridMinutes,omitempty"`
	MGPerML       map[string]float64 `json:"mgPerMl,omitempty"`
	DefaultShotML map[string]float64 `json:"defaultShotMl,omitempty"`
	StartMS       int64              `json:"startMs,omitempty"`
	EndMS         int64              `json:"endMs,omitempty"`
	AlignToHour   bool               `json:"alignToHour,omitempty"`
}

// Point is one sample of the simulated series. IntakeMG and BodyMG are
// rounded to whole milligrams; BloodMGPerL is left unrounded.
type Point struct {
	Timestamp   time.Time `json:"timestamp"`
	IntakeMG    float64   `json:"intake_mg"`
	BodyMG      float64   `json:"body_mg"`
	BloodMGPerL float64   `json:"blood_mg_per_l"`
}

// Grid is the fixed-step time axis a simulation is evaluated on. PointsMS
// holds epoch milliseconds, start-inclusive and end-exclusive.
type Grid struct {
	StartMS  int64
	EndMS    int64
	StepMS   int64
	PointsMS []int64
}
