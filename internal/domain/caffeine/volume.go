package caffeine

// DistributionVolumeLiters derives the effective volume of distribution from
// a body profile.
//
// The base formula is vdPerKg * weight with a 30 kg weight floor and a 1 L
// result floor so a sparse or junk profile can never blow up the later
// mass-to-concentration division.
//
// When both body composition fields are present the weight term is replaced
// by a lean-mass adjusted one: caffeine distributes through total body water,
// which fat tissue carries far less of, so fat mass contributes at a tenth
// of the rate of lean mass. Profiles without composition data get the plain
// weight formula.
func DistributionVolumeLiters(profile BodyProfile) float64 {
	weight := DefaultWeightKG
	if profile.WeightKG != nil {
		weight = *profile.WeightKG
	}
	if weight < minWeightKG {
		weight = minWeightKG
	}

	// the default substitutes only for an absent value; an explicitly
	// non-positive vd flows through and lands on the 1 L floor below
	vdPerKG := DefaultVdLPerKG
	if profile.VdLPerKG != nil {
		vdPerKG = *profile.VdLPerKG
	}

	effective := weight
	if fat := profile.BodyFatPercentage; fat != nil && profile.MusclePercentage != nil && *fat > 0 && *fat < 100 {
		leanMass := weight * (1 - *fat/100)
		fatMass := weight - leanMass
		effective = leanMass + 0.1*fatMass
	}

	volume := vdPerKG * effective
	if volume < minVolumeL {
		volume = minVolumeL
	}
	return volume
}
