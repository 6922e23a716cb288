package scoring

const defaultRestingHR = 65

// BuildZones is the pure Threshold Calculator from spec §4.2. It resolves
// max_hr/resting_hr from the profile (falling back to EstimateMaxHR and the
// default resting HR respectively), derives the four ventilatory
// thresholds as fixed fractions of heart-rate reserve, and constructs the
// five fixed training zones.
func BuildZones(profile HealthProfile) (TrainingZones, error) {
	maxHR := profile.MaxHR
	resolvedMaxHR := 0
	if maxHR != nil {
		resolvedMaxHR = *maxHR
	} else {
		resolvedMaxHR = EstimateMaxHR(profile.Age, profile.Gender)
	}

	resolvedRestingHR := defaultRestingHR
	if profile.RestingHR != nil {
		resolvedRestingHR = *profile.RestingHR
	}

	hrr := resolvedMaxHR - resolvedRestingHR
	if hrr < 1 {
		return TrainingZones{}, &InvalidProfile{
			RestingHR: resolvedRestingHR,
			MaxHR:     resolvedMaxHR,
			Reason:    "max_hr must exceed resting_hr by at least 1 bpm",
		}
	}

	vtOff := resolvedRestingHR + roundHalfAwayFromZero(float64(hrr)*0.20)
	vt0 := resolvedRestingHR + roundHalfAwayFromZero(float64(hrr)*0.35)
	vt1 := resolvedRestingHR + roundHalfAwayFromZero(float64(hrr)*0.65)
	vt2 := resolvedRestingHR + roundHalfAwayFromZero(float64(hrr)*0.80)

	// Enforce strict ordering: pathologically small HRR can round adjacent
	// thresholds to the same bpm. Bump any tie up by 1 so no zone has an
	// empty or inverted range (spec §4.2 degenerate tie-break).
	if vtOff >= vt0 {
		vt0 = vtOff + 1
	}
	if vt0 >= vt1 {
		vt1 = vt0 + 1
	}
	if vt1 >= vt2 {
		vt2 = vt1 + 1
	}

	zones := TrainingZones{
		RestingHR: resolvedRestingHR,
		MaxHR:     resolvedMaxHR,
		HRR:       hrr,
		VTOff:     vtOff,
		VT0:       vt0,
		VT1:       vt1,
		VT2:       vt2,
	}
	zones.Zones = [5]Zone{
		{Name: Off, LowerBound: 0, UpperBound: vtOff, Intensity: Off.intensity()},
		{Name: Rest, LowerBound: vtOff, UpperBound: vt0, Intensity: Rest.intensity()},
		{Name: Easy, LowerBound: vt0, UpperBound: vt1, Intensity: Easy.intensity()},
		{Name: Moderate, LowerBound: vt1, UpperBound: vt2, Intensity: Moderate.intensity()},
		{Name: Hard, LowerBound: vt2, UpperBound: resolvedMaxHR + 1, Intensity: Hard.intensity()},
	}
	return zones, nil
}
