package caffeine

// EstimateDose converts one brew event into an absorbed caffeine mass in mg.
//
// Resolution order: an explicit positive mg measurement wins; otherwise a
// recorded volume is multiplied by the method's concentration; otherwise the
// method's typical serving stands in. The result is clamped to zero before
// bioavailability and sensitivity scaling, so a negative recorded volume
// yields 0 mg rather than a negative dose.
func EstimateDose(event BrewEvent, mgPerML, shotML DoseTable, bioavailability, sensitivity float64) float64 {
	bt := ParseBrewType(event.Type)

	var base float64
	switch {
	case event.MG != nil && *event.MG > 0:
		base = *event.MG
	case event.AmountML != nil:
		base = *event.AmountML * mgPerML.For(bt)
	default:
		base = shotML.For(bt) * mgPerML.For(bt)
	}

	if base < 0 {
		base = 0
	}
	return base * bioavailability * sensitivity
}
