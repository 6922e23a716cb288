package scoring

import "testing"

func intPtr(v int) *int { return &v }

func TestBuildZones_S1CanonicalProfile(t *testing.T) {
	profile := HealthProfile{Age: 35, Gender: Male, RestingHR: intPtr(60)}

	zones, err := BuildZones(profile)
	if err != nil {
		t.Fatalf("BuildZones failed: %v", err)
	}

	if zones.MaxHR != 184 {
		t.Errorf("MaxHR = %d, want 184", zones.MaxHR)
	}
	if zones.HRR != 124 {
		t.Errorf("HRR = %d, want 124", zones.HRR)
	}
	wantVTOff := 60 + roundHalfAwayFromZero(124*0.20) // 85
	wantVT0 := 60 + roundHalfAwayFromZero(124*0.35)   // 103
	wantVT1 := 60 + roundHalfAwayFromZero(124*0.65)   // 141
	wantVT2 := 60 + roundHalfAwayFromZero(124*0.80)   // 159

	if zones.VTOff != wantVTOff || zones.VT0 != wantVT0 || zones.VT1 != wantVT1 || zones.VT2 != wantVT2 {
		t.Errorf("thresholds = (%d,%d,%d,%d), want (%d,%d,%d,%d)",
			zones.VTOff, zones.VT0, zones.VT1, zones.VT2, wantVTOff, wantVT0, wantVT1, wantVT2)
	}
}

func TestBuildZones_MaxHRDefault(t *testing.T) {
	withDefault := HealthProfile{Age: 35, Gender: Male, RestingHR: intPtr(60)}
	explicit := HealthProfile{Age: 35, Gender: Male, RestingHR: intPtr(60), MaxHR: intPtr(EstimateMaxHR(35, Male))}

	a, err := BuildZones(withDefault)
	if err != nil {
		t.Fatalf("BuildZones(withDefault) failed: %v", err)
	}
	b, err := BuildZones(explicit)
	if err != nil {
		t.Fatalf("BuildZones(explicit) failed: %v", err)
	}
	if a != b {
		t.Errorf("omitting max_hr produced different zones: %+v != %+v", a, b)
	}
}

func TestBuildZones_S6InvalidProfile(t *testing.T) {
	profile := HealthProfile{Age: 30, Gender: Male, RestingHR: intPtr(200), MaxHR: intPtr(190)}

	_, err := BuildZones(profile)
	if err == nil {
		t.Fatal("expected InvalidProfile error, got nil")
	}
	if _, ok := err.(*InvalidProfile); !ok {
		t.Fatalf("expected *InvalidProfile, got %T: %v", err, err)
	}
}

func TestBuildZones_DefaultRestingHR(t *testing.T) {
	profile := HealthProfile{Age: 35, Gender: Male}
	zones, err := BuildZones(profile)
	if err != nil {
		t.Fatalf("BuildZones failed: %v", err)
	}
	if zones.RestingHR != 65 {
		t.Errorf("RestingHR = %d, want default 65", zones.RestingHR)
	}
}

func TestBuildZones_ZoneMonotonicity(t *testing.T) {
	profiles := []HealthProfile{
		{Age: 35, Gender: Male, RestingHR: intPtr(60)},
		{Age: 70, Gender: Female, RestingHR: intPtr(50), MaxHR: intPtr(160)},
		{Age: 25, Gender: Other, RestingHR: intPtr(55)},
		// Pathologically small HRR: forces the degenerate tie-break.
		{Age: 35, Gender: Male, RestingHR: intPtr(180), MaxHR: intPtr(182)},
	}

	for i, p := range profiles {
		zones, err := BuildZones(p)
		if err != nil {
			t.Fatalf("profile %d: BuildZones failed: %v", i, err)
		}
		if !(zones.RestingHR <= zones.VTOff && zones.VTOff < zones.VT0 && zones.VT0 < zones.VT1 && zones.VT1 < zones.VT2) {
			t.Errorf("profile %d: zone monotonicity violated: resting=%d vt_off=%d vt0=%d vt1=%d vt2=%d",
				i, zones.RestingHR, zones.VTOff, zones.VT0, zones.VT1, zones.VT2)
		}
	}
}
