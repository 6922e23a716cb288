package scoring

import "sort"

// Score is the Workout Scorer from spec §4.4: it attributes every
// inter-sample interval to the zone of its leading sample (leading-sample
// attribution, spec §4.4/§9 - never trailing, never midpoint) and
// accumulates per-zone minutes and stamina points. The only failure mode
// of the scorer itself is an empty sample sequence; everything else
// (negative bpm, an invalid profile) is upstream validation's job.
//
// The loop is a streaming, delta-capped-at-zero accumulation - walk
// adjacent sample pairs once, classify the leading sample, add its
// interval's duration to that zone's bucket.
func Score(samples WorkoutSamples, zones TrainingZones) (ScoringResult, error) {
	if len(samples) == 0 {
		return ScoringResult{}, &EmptyWorkout{}
	}

	sorted := make(WorkoutSamples, len(samples))
	copy(sorted, samples)
	if !isSorted(sorted) {
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].Timestamp.Before(sorted[j].Timestamp)
		})
	}

	var minutes [len(ZoneTags)]float64
	var points [len(ZoneTags)]float64

	for i := 0; i < len(sorted)-1; i++ {
		current, next := sorted[i], sorted[i+1]

		dt := next.Timestamp.Sub(current.Timestamp).Seconds()
		if dt < 0 {
			dt = 0
		}
		dtMinutes := dt / 60

		zone := Classify(current.BPM, zones)
		minutes[zone] += dtMinutes
		points[zone] += dtMinutes * zone.intensity()
	}

	result := ScoringResult{StrengthGained: 0.0}
	for _, z := range ZoneTags {
		result.StaminaGained += points[z]
		if minutes[z] <= 0 {
			continue
		}
		result.ZoneBreakdown = append(result.ZoneBreakdown, zoneEntry(z, minutes[z], points[z], zones))
	}
	return result, nil
}

func zoneEntry(z ZoneTag, minutes, stamina float64, zones TrainingZones) ZoneEntry {
	zoneDef := zones.Zones[z]
	entry := ZoneEntry{
		Zone:           z,
		Minutes:        minutes,
		StaminaGained:  stamina,
		StrengthGained: 0.0,
		HRMax:          zoneDef.UpperBound,
	}
	if z == Off {
		entry.HRMin = nil
	} else {
		lo := zoneDef.LowerBound
		entry.HRMin = &lo
	}
	if z == Hard {
		entry.HRMax = zones.MaxHR
	}
	return entry
}

func isSorted(samples WorkoutSamples) bool {
	for i := 1; i < len(samples); i++ {
		if samples[i].Timestamp.Before(samples[i-1].Timestamp) {
			return false
		}
	}
	return true
}
