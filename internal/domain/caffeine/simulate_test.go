package caffeine

import (
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var simTestNow = time.Date(2025, 3, 10, 20, 0, 0, 0, time.UTC)

func hourlyWindow(start time.Time, hours int) SimulationOptions {
	return SimulationOptions{
		StartMS:     start.UnixMilli(),
		EndMS:       start.Add(time.Duration(hours) * time.Hour).UnixMilli(),
		GridMinutes: 60,
	}
}

func espressoAt(ts time.Time) BrewEvent {
	return BrewEvent{Timestamp: ts, Type: "espresso", AmountML: f64(38)}
}

// espressoMG is the absorbed dose of a default 38 mL espresso under the
// default 0.99 bioavailability: 38 * 2.1 * 0.99.
const espressoMG = 79.002

func TestSimulateSingleEspresso(t *testing.T) {
	start := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)
	points := simulateAt(simTestNow, []BrewEvent{espressoAt(start)}, BodyProfile{}, hourlyWindow(start, 1))

	require.Len(t, points, 1)
	require.Equal(t, start, points[0].Timestamp)
	require.Equal(t, math.Round(espressoMG), points[0].IntakeMG)
	require.Equal(t, math.Round(espressoMG), points[0].BodyMG)
	require.InDelta(t, espressoMG/(0.6*75), points[0].BloodMGPerL, 1e-9)
}

func TestSimulateDecayOverSixHours(t *testing.T) {
	start := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)
	points := simulateAt(simTestNow, []BrewEvent{espressoAt(start)}, BodyProfile{}, hourlyWindow(start, 6))

	require.Len(t, points, 6)
	for i := 1; i < len(points); i++ {
		require.Less(t, points[i].BodyMG, points[i-1].BodyMG, "body mass must strictly decrease after a single dose")
		require.Zero(t, points[i].IntakeMG)
	}

	// Final point sits five hours after the dose against a five hour half-life.
	elapsedHours := float64(len(points) - 1)
	want := math.Round(espressoMG * math.Pow(2, -elapsedHours/5))
	require.Equal(t, want, points[len(points)-1].BodyMG)
}

func TestSimulateSuperposition(t *testing.T) {
	start := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)
	events := []BrewEvent{espressoAt(start), espressoAt(start.Add(2 * time.Hour))}
	points := simulateAt(simTestNow, events, BodyProfile{}, hourlyWindow(start, 4))

	require.Len(t, points, 4)
	// At 10:00 the second dose is fresh and the first has decayed two hours.
	want := math.Round(espressoMG + espressoMG*math.Pow(2, -2.0/5))
	require.Equal(t, want, points[2].BodyMG)
	require.Equal(t, math.Round(espressoMG), points[2].IntakeMG)
}

func TestSimulateNoEvents(t *testing.T) {
	start := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)
	points := simulateAt(simTestNow, nil, BodyProfile{}, hourlyWindow(start, 6))

	require.Len(t, points, 6)
	for _, p := range points {
		require.Zero(t, p.IntakeMG)
		require.Zero(t, p.BodyMG)
		require.Zero(t, p.BloodMGPerL)
	}
}

func TestSimulatePreWindowCarryOver(t *testing.T) {
	start := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)
	events := []BrewEvent{espressoAt(start.Add(-time.Hour))}
	points := simulateAt(simTestNow, events, BodyProfile{}, hourlyWindow(start, 3))

	require.Positive(t, points[0].BodyMG, "residual mass from a pre-window dose must appear at the first point")
	for _, p := range points {
		require.Zero(t, p.IntakeMG, "pre-window doses never count as intake")
	}
}

func TestSimulateExcludesDosesAtOrAfterWindowEnd(t *testing.T) {
	start := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)
	events := []BrewEvent{espressoAt(start.Add(time.Hour))}
	points := simulateAt(simTestNow, events, BodyProfile{}, hourlyWindow(start, 1))

	require.Len(t, points, 1)
	require.Zero(t, points[0].IntakeMG)
	require.Zero(t, points[0].BodyMG)
}

func TestSimulateSortInvariance(t *testing.T) {
	start := time.Date(2025, 3, 10, 6, 0, 0, 0, time.UTC)
	events := []BrewEvent{
		espressoAt(start),
		{Timestamp: start.Add(90 * time.Minute), Type: "v60", AmountML: f64(240)},
		{Timestamp: start.Add(3 * time.Hour), Type: "moka"},
		{Timestamp: start.Add(5 * time.Hour), Type: "cold_brew", MG: f64(110)},
	}
	opts := hourlyWindow(start, 8)
	want := simulateAt(simTestNow, events, BodyProfile{}, opts)

	rng := rand.New(rand.NewSource(42))
	for trial := 0; trial < 5; trial++ {
		shuffled := append([]BrewEvent(nil), events...)
		rng.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })
		require.Equal(t, want, simulateAt(simTestNow, shuffled, BodyProfile{}, opts))
	}
}

func TestSimulateDropsEventsWithoutTimestamps(t *testing.T) {
	start := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)
	events := []BrewEvent{
		{Type: "espresso", AmountML: f64(38)}, // zero timestamp
		espressoAt(start),
	}
	points := simulateAt(simTestNow, events, BodyProfile{}, hourlyWindow(start, 1))
	require.Equal(t, math.Round(espressoMG), points[0].IntakeMG, "only the timestamped event should contribute")
}

func TestSimulateBodyMassNonIncreasingBetweenDoses(t *testing.T) {
	start := time.Date(2025, 3, 10, 4, 0, 0, 0, time.UTC)
	events := []BrewEvent{
		espressoAt(start.Add(30 * time.Minute)),
		espressoAt(start.Add(6 * time.Hour)),
	}
	points := simulateAt(simTestNow, events, BodyProfile{}, SimulationOptions{
		StartMS:     start.UnixMilli(),
		EndMS:       start.Add(12 * time.Hour).UnixMilli(),
		GridMinutes: 15,
	})

	for i := 1; i < len(points); i++ {
		require.GreaterOrEqual(t, points[i].BodyMG, 0.0)
		if points[i].IntakeMG == 0 {
			require.LessOrEqual(t, points[i].BodyMG, points[i-1].BodyMG)
		}
	}
}

func TestSimulateHalfLifeOverridePriority(t *testing.T) {
	start := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)
	events := []BrewEvent{espressoAt(start)}
	profile := BodyProfile{HalfLifeHours: f64(8)}

	opts := hourlyWindow(start, 4)
	fromProfile := simulateAt(simTestNow, events, profile, opts)

	opts.HalfLifeHours = 2
	fromOptions := simulateAt(simTestNow, events, profile, opts)

	require.Less(t, fromOptions[3].BodyMG, fromProfile[3].BodyMG, "options half-life must win over the profile value")

	want := math.Round(espressoMG * math.Pow(2, -3.0/2))
	require.Equal(t, want, fromOptions[3].BodyMG)
}

func TestSimulateMGPerMLOverride(t *testing.T) {
	start := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)
	opts := hourlyWindow(start, 1)
	opts.MGPerML = map[string]float64{"espresso": 1.0}

	points := simulateAt(simTestNow, []BrewEvent{espressoAt(start)}, BodyProfile{}, opts)
	require.Equal(t, math.Round(38*1.0*0.99), points[0].IntakeMG)
}
