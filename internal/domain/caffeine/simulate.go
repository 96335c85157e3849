package caffeine

import (
	"math"
	"sort"
	"time"
)

// Simulate models the caffeine mass and blood concentration over time for a
// log of brew events and a physiology snapshot.
//
// Every dose decays independently as dose * exp(-k*dt) and the per-point
// body mass is the superposition of all doses at or before that point,
// including doses dated before the window start (residual carry-over).
// Intake is bucketed onto the grid index matching the event timestamp and
// only for events inside [start, end).
//
// The function is pure: it reads its arguments, touches no shared state and
// never fails. Malformed events degrade per field (missing timestamps are
// dropped, negative volumes clamp to zero) instead of poisoning the batch.
func Simulate(events []BrewEvent, profile BodyProfile, opts SimulationOptions) []Point {
	return simulateAt(time.Now().UTC(), events, profile, opts)
}

func simulateAt(now time.Time, events []BrewEvent, profile BodyProfile, opts SimulationOptions) []Point {
	valid := make([]BrewEvent, 0, len(events))
	for _, event := range events {
		if event.Timestamp.IsZero() {
			continue
		}
		valid = append(valid, event)
	}
	sort.SliceStable(valid, func(i, j int) bool {
		return valid[i].Timestamp.Before(valid[j].Timestamp)
	})

	mgPerML := defaultMGPerML().withOverrides(opts.MGPerML)
	shotML := defaultShotML().withOverrides(opts.DefaultShotML)
	bioavailability := resolvePositive(profile.Bioavailability, DefaultBioavailability)
	sensitivity := resolvePositive(profile.CaffeineSensitivity, DefaultSensitivity)

	halfLifeHours := opts.HalfLifeHours
	if halfLifeHours <= 0 {
		halfLifeHours = resolvePositive(profile.HalfLifeHours, DefaultHalfLifeHours)
	}
	k := math.Ln2 / (halfLifeHours * 60)

	grid := BuildGrid(opts, now)

	type dose struct {
		atMS int64
		mg   float64
	}
	doses := make([]dose, 0, len(valid))
	intake := make([]float64, len(grid.PointsMS))
	for _, event := range valid {
		atMS := event.Timestamp.UnixMilli()
		if atMS >= grid.EndMS {
			continue
		}
		mg := EstimateDose(event, mgPerML, shotML, bioavailability, sensitivity)
		doses = append(doses, dose{atMS: atMS, mg: mg})
		if atMS >= grid.StartMS && grid.StepMS > 0 {
			if idx := (atMS - grid.StartMS) / grid.StepMS; idx >= 0 && idx < int64(len(intake)) {
				intake[idx] += mg
			}
		}
	}

	volumeL := DistributionVolumeLiters(profile)
	points := make([]Point, len(grid.PointsMS))
	for i, tMS := range grid.PointsMS {
		var bodyMG float64
		for _, d := range doses {
			if d.atMS > tMS {
				// doses are sorted; nothing later contributes either
				break
			}
			elapsedMinutes := float64(tMS-d.atMS) / 60000.0
			bodyMG += d.mg * math.Exp(-k*elapsedMinutes)
		}
		points[i] = Point{
			Timestamp:   time.UnixMilli(tMS).UTC(),
			IntakeMG:    math.Round(intake[i]),
			BodyMG:      math.Round(bodyMG),
			BloodMGPerL: bodyMG / volumeL,
		}
	}
	return points
}

func resolvePositive(value *float64, fallback float64) float64 {
	if value != nil && *value > 0 {
		return *value
	}
	return fallback
}
