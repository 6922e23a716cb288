package scoring

import (
	"math"
	"testing"
	"time"
)

func mustZones(t *testing.T, p HealthProfile) TrainingZones {
	t.Helper()
	z, err := BuildZones(p)
	if err != nil {
		t.Fatalf("BuildZones failed: %v", err)
	}
	return z
}

func sampleAt(base time.Time, minute int, bpm int) HeartRateSample {
	return HeartRateSample{Timestamp: base.Add(time.Duration(minute) * time.Minute), BPM: bpm}
}

func approxEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

// TestScore_S2SingleZoneEasyRun: 45 one-minute samples at bpm=130 - 44
// one-minute intervals, all classified Easy (intensity 4.0/min).
func TestScore_S2SingleZoneEasyRun(t *testing.T) {
	zones := mustZones(t, HealthProfile{Age: 35, Gender: Male, RestingHR: intPtr(60)})
	base := time.Now().UTC()

	var samples WorkoutSamples
	for i := 0; i < 45; i++ {
		samples = append(samples, sampleAt(base, i, 130))
	}

	result, err := Score(samples, zones)
	if err != nil {
		t.Fatalf("Score failed: %v", err)
	}

	if !approxEqual(result.StaminaGained, 176.0) {
		t.Errorf("StaminaGained = %v, want 176.0", result.StaminaGained)
	}
	if result.StrengthGained != 0.0 {
		t.Errorf("StrengthGained = %v, want 0.0", result.StrengthGained)
	}
	if len(result.ZoneBreakdown) != 1 || result.ZoneBreakdown[0].Zone != Easy {
		t.Fatalf("zone_breakdown = %+v, want a single Easy entry", result.ZoneBreakdown)
	}
	if !approxEqual(result.ZoneBreakdown[0].Minutes, 44.0) {
		t.Errorf("Easy minutes = %v, want 44.0", result.ZoneBreakdown[0].Minutes)
	}
}

// TestScore_S3MixedWorkout: intervals summing to 5 REST + 25 EASY + 10
// MODERATE + 5 HARD minutes -> stamina = 5*1 + 25*4 + 10*6 + 5*8 = 205.
func TestScore_S3MixedWorkout(t *testing.T) {
	zones := mustZones(t, HealthProfile{Age: 35, Gender: Male, RestingHR: intPtr(60)})
	base := time.Now().UTC()

	restBPM := (zones.VTOff + zones.VT0) / 2
	easyBPM := (zones.VT0 + zones.VT1) / 2
	moderateBPM := (zones.VT1 + zones.VT2) / 2
	hardBPM := zones.VT2 + 5

	var samples WorkoutSamples
	minute := 0
	appendMinutes := func(bpm int, n int) {
		for i := 0; i < n; i++ {
			samples = append(samples, sampleAt(base, minute, bpm))
			minute++
		}
	}
	appendMinutes(restBPM, 5)
	appendMinutes(easyBPM, 25)
	appendMinutes(moderateBPM, 10)
	appendMinutes(hardBPM, 5)
	// Final sample closes the last HARD interval; contributes no further
	// trailing interval of its own (spec §4.4 step 4).
	samples = append(samples, sampleAt(base, minute, hardBPM))

	result, err := Score(samples, zones)
	if err != nil {
		t.Fatalf("Score failed: %v", err)
	}

	if !approxEqual(result.StaminaGained, 205.0) {
		t.Errorf("StaminaGained = %v, want 205.0", result.StaminaGained)
	}

	wantOrder := []ZoneTag{Rest, Easy, Moderate, Hard}
	if len(result.ZoneBreakdown) != len(wantOrder) {
		t.Fatalf("zone_breakdown has %d entries, want %d: %+v", len(result.ZoneBreakdown), len(wantOrder), result.ZoneBreakdown)
	}
	for i, z := range wantOrder {
		if result.ZoneBreakdown[i].Zone != z {
			t.Errorf("zone_breakdown[%d] = %v, want %v", i, result.ZoneBreakdown[i].Zone, z)
		}
	}

	sum := 0.0
	for _, e := range result.ZoneBreakdown {
		sum += e.StaminaGained
	}
	if !approxEqual(sum, result.StaminaGained) {
		t.Errorf("sum of per-entry stamina %v != top-level stamina %v", sum, result.StaminaGained)
	}
}

// TestScore_S4EmptyWorkout: no samples -> EmptyWorkout.
func TestScore_S4EmptyWorkout(t *testing.T) {
	zones := mustZones(t, HealthProfile{Age: 35, Gender: Male, RestingHR: intPtr(60)})

	_, err := Score(WorkoutSamples{}, zones)
	if _, ok := err.(*EmptyWorkout); !ok {
		t.Fatalf("expected *EmptyWorkout, got %T: %v", err, err)
	}
}

// TestScore_S5BoundaryClassification: two samples one minute apart, leading
// bpm exactly at vt1 - belongs to Moderate under the half-open rule.
func TestScore_S5BoundaryClassification(t *testing.T) {
	zones := mustZones(t, HealthProfile{Age: 35, Gender: Male, RestingHR: intPtr(60)})
	base := time.Now().UTC()

	samples := WorkoutSamples{
		{Timestamp: base, BPM: zones.VT1},
		{Timestamp: base.Add(60 * time.Second), BPM: zones.VT1},
	}

	result, err := Score(samples, zones)
	if err != nil {
		t.Fatalf("Score failed: %v", err)
	}
	if !approxEqual(result.StaminaGained, 6.0) {
		t.Errorf("StaminaGained = %v, want 6.0", result.StaminaGained)
	}
	if len(result.ZoneBreakdown) != 1 || result.ZoneBreakdown[0].Zone != Moderate {
		t.Fatalf("zone_breakdown = %+v, want single Moderate entry", result.ZoneBreakdown)
	}
	if !approxEqual(result.ZoneBreakdown[0].Minutes, 1.0) {
		t.Errorf("Moderate minutes = %v, want 1.0", result.ZoneBreakdown[0].Minutes)
	}
}

func TestScore_Determinism(t *testing.T) {
	zones := mustZones(t, HealthProfile{Age: 35, Gender: Male, RestingHR: intPtr(60)})
	base := time.Now().UTC()
	samples := WorkoutSamples{
		sampleAt(base, 0, 100), sampleAt(base, 1, 140), sampleAt(base, 2, 160), sampleAt(base, 3, 120),
	}

	a, errA := Score(samples, zones)
	b, errB := Score(samples, zones)
	if errA != nil || errB != nil {
		t.Fatalf("Score failed: %v / %v", errA, errB)
	}
	if a.StaminaGained != b.StaminaGained {
		t.Errorf("non-deterministic stamina: %v != %v", a.StaminaGained, b.StaminaGained)
	}
	if len(a.ZoneBreakdown) != len(b.ZoneBreakdown) {
		t.Fatalf("non-deterministic zone_breakdown length: %d != %d", len(a.ZoneBreakdown), len(b.ZoneBreakdown))
	}
	for i := range a.ZoneBreakdown {
		if a.ZoneBreakdown[i] != b.ZoneBreakdown[i] {
			t.Errorf("non-deterministic entry %d: %+v != %+v", i, a.ZoneBreakdown[i], b.ZoneBreakdown[i])
		}
	}
}

func TestScore_TimeConservation(t *testing.T) {
	zones := mustZones(t, HealthProfile{Age: 35, Gender: Male, RestingHR: intPtr(60)})
	base := time.Now().UTC()
	samples := WorkoutSamples{
		sampleAt(base, 0, 90), sampleAt(base, 3, 130), sampleAt(base, 10, 150), sampleAt(base, 17, 170),
	}

	result, err := Score(samples, zones)
	if err != nil {
		t.Fatalf("Score failed: %v", err)
	}

	total := 0.0
	for _, e := range result.ZoneBreakdown {
		total += e.Minutes
	}
	wantTotal := samples[len(samples)-1].Timestamp.Sub(samples[0].Timestamp).Minutes()
	if !approxEqual(total, wantTotal) {
		t.Errorf("total minutes = %v, want %v", total, wantTotal)
	}
}

func TestScore_PointsFormula(t *testing.T) {
	zones := mustZones(t, HealthProfile{Age: 35, Gender: Male, RestingHR: intPtr(60)})
	base := time.Now().UTC()
	samples := WorkoutSamples{
		sampleAt(base, 0, 90), sampleAt(base, 3, 130), sampleAt(base, 10, 150), sampleAt(base, 17, 170),
	}

	result, err := Score(samples, zones)
	if err != nil {
		t.Fatalf("Score failed: %v", err)
	}

	for _, e := range result.ZoneBreakdown {
		want := e.Minutes * e.Zone.intensity()
		if !approxEqual(e.StaminaGained, want) {
			t.Errorf("zone %v: stamina_gained = %v, want minutes*intensity = %v", e.Zone, e.StaminaGained, want)
		}
	}
}

func TestScore_ZeroDurationInvariance(t *testing.T) {
	zones := mustZones(t, HealthProfile{Age: 35, Gender: Male, RestingHR: intPtr(60)})
	base := time.Now().UTC()
	without := WorkoutSamples{sampleAt(base, 0, 100), sampleAt(base, 5, 150)}
	// The duplicate goes ahead of its twin: the zero-length interval it leads
	// contributes nothing, and the twin still leads the 5-minute interval.
	withDup := WorkoutSamples{{Timestamp: base, BPM: 999}, sampleAt(base, 0, 100), sampleAt(base, 5, 150)}

	a, err := Score(without, zones)
	if err != nil {
		t.Fatalf("Score(without) failed: %v", err)
	}
	b, err := Score(withDup, zones)
	if err != nil {
		t.Fatalf("Score(withDup) failed: %v", err)
	}

	if !approxEqual(a.StaminaGained, b.StaminaGained) {
		t.Errorf("duplicate timestamp changed stamina: %v != %v", a.StaminaGained, b.StaminaGained)
	}
}

func TestScore_UnsortedInputIsSortedDefensively(t *testing.T) {
	zones := mustZones(t, HealthProfile{Age: 35, Gender: Male, RestingHR: intPtr(60)})
	base := time.Now().UTC()
	sorted := WorkoutSamples{sampleAt(base, 0, 100), sampleAt(base, 1, 130), sampleAt(base, 2, 160)}
	shuffled := WorkoutSamples{sampleAt(base, 2, 160), sampleAt(base, 0, 100), sampleAt(base, 1, 130)}

	a, err := Score(sorted, zones)
	if err != nil {
		t.Fatalf("Score(sorted) failed: %v", err)
	}
	b, err := Score(shuffled, zones)
	if err != nil {
		t.Fatalf("Score(shuffled) failed: %v", err)
	}
	if !approxEqual(a.StaminaGained, b.StaminaGained) {
		t.Errorf("unsorted input produced a different result: %v != %v", b.StaminaGained, a.StaminaGained)
	}
}

func TestScore_MonotoneZonesInHR(t *testing.T) {
	zones := mustZones(t, HealthProfile{Age: 35, Gender: Male, RestingHR: intPtr(60)})
	base := time.Now().UTC()

	below := WorkoutSamples{{Timestamp: base, BPM: zones.VT1 - 1}, {Timestamp: base.Add(time.Minute), BPM: 0}}
	atThreshold := WorkoutSamples{{Timestamp: base, BPM: zones.VT1}, {Timestamp: base.Add(time.Minute), BPM: 0}}

	belowResult, err := Score(below, zones)
	if err != nil {
		t.Fatalf("Score(below) failed: %v", err)
	}
	atResult, err := Score(atThreshold, zones)
	if err != nil {
		t.Fatalf("Score(atThreshold) failed: %v", err)
	}

	if belowResult.ZoneBreakdown[0].Zone != Easy {
		t.Fatalf("below threshold classified as %v, want Easy", belowResult.ZoneBreakdown[0].Zone)
	}
	if atResult.ZoneBreakdown[0].Zone != Moderate {
		t.Fatalf("at threshold classified as %v, want Moderate", atResult.ZoneBreakdown[0].Zone)
	}
}
