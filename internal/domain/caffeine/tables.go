package caffeine

import "strings"

// BrewType is the closed set of brew methods the dosing tables know about.
// Unrecognized strings degrade to BrewOther rather than failing.
type BrewType string

const (
	BrewEspresso BrewType = "espresso"
	BrewV60      BrewType = "v60"
	BrewChemex   BrewType = "chemex"
	BrewMoka     BrewType = "moka"
	BrewAero     BrewType = "aero"
	BrewColdBrew BrewType = "cold_brew"
	BrewOther    BrewType = "other"
)

// ParseBrewType maps a free-form type string onto the closed set.
func ParseBrewType(raw string) BrewType {
	switch BrewType(strings.ToLower(strings.TrimSpace(raw))) {
	case BrewEspresso:
		return BrewEspresso
	case BrewV60:
		return BrewV60
	case BrewChemex:
		return BrewChemex
	case BrewMoka:
		return BrewMoka
	case BrewAero:
		return BrewAero
	case BrewColdBrew:
		return BrewColdBrew
	default:
		return BrewOther
	}
}

// DoseTable holds one value per brew method. The Other field doubles as the
// fallback row, so every lookup is total.
type DoseTable struct {
	Espresso float64
	V60      float64
	Chemex   float64
	Moka     float64
	Aero     float64
	ColdBrew float64
	Other    float64
}

// For returns the row for a brew type, falling back to Other.
func (t DoseTable) For(bt BrewType) float64 {
	switch bt {
	case BrewEspresso:
		return t.Espresso
	case BrewV60:
		return t.V60
	case BrewChemex:
		return t.Chemex
	case BrewMoka:
		return t.Moka
	case BrewAero:
		return t.Aero
	case BrewColdBrew:
		return t.ColdBrew
	default:
		return t.Other
	}
}

// withOverrides layers caller-supplied rows onto a copy of the table. Only
// positive overrides are accepted; the receiver is never modified.
func (t DoseTable) withOverrides(overrides map[string]float64) DoseTable {
	merged := t
	for key, value := range overrides {
		if value <= 0 {
			continue
		}
		switch ParseBrewType(key) {
		case BrewEspresso:
			merged.Espresso = value
		case BrewV60:
			merged.V60 = value
		case BrewChemex:
			merged.Chemex = value
		case BrewMoka:
			merged.Moka = value
		case BrewAero:
			merged.Aero = value
		case BrewColdBrew:
			merged.ColdBrew = value
		default:
			merged.Other = value
		}
	}
	return merged
}

// Physiological and dosing defaults. Concentrations are mg of caffeine per
// mL of finished drink; shot volumes are a typical serving in mL.
const (
	DefaultHalfLifeHours   = 5.0
	DefaultWeightKG        = 75.0
	DefaultVdLPerKG        = 0.6
	DefaultBioavailability = 0.99
	DefaultSensitivity     = 1.0

	minWeightKG = 30.0
	minVolumeL  = 1.0
)

func defaultMGPerML() DoseTable {
	return DoseTable{
		Espresso: 2.1,
		V60:      0.6,
		Chemex:   0.55,
		Moka:     1.6,
		Aero:     0.75,
		ColdBrew: 0.8,
		Other:    0.6,
	}
}

func defaultShotML() DoseTable {
	return DoseTable{
		Espresso: 38,
		V60:      240,
		Chemex:   300,
		Moka:     60,
		Aero:     220,
		ColdBrew: 250,
		Other:    200,
	}
}
