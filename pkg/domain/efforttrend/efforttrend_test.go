package efforttrend

import "testing"

func TestCompute_InsufficientHistory(t *testing.T) {
	history := []Snapshot{{Date: "2026-07-20", StaminaGained: 100}, {Date: "2026-07-22", StaminaGained: 110}}

	trend := Compute(120, history)
	if !trend.Insufficient {
		t.Fatal("expected Insufficient with only 2 history entries")
	}
	if trend.HistorySize != 2 {
		t.Errorf("HistorySize = %d, want 2", trend.HistorySize)
	}
}

func TestCompute_TypicalEffort(t *testing.T) {
	history := []Snapshot{
		{Date: "2026-07-20", StaminaGained: 100},
		{Date: "2026-07-22", StaminaGained: 100},
		{Date: "2026-07-24", StaminaGained: 100},
	}

	trend := Compute(100, history)
	if trend.Insufficient {
		t.Fatal("did not expect Insufficient with 3 history entries")
	}
	if trend.Label != "Typical" {
		t.Errorf("Label = %q, want Typical", trend.Label)
	}
	if trend.Ratio != 1.0 {
		t.Errorf("Ratio = %v, want 1.0", trend.Ratio)
	}
}

func TestCompute_HarderEffort(t *testing.T) {
	history := []Snapshot{
		{Date: "2026-07-20", StaminaGained: 100},
		{Date: "2026-07-22", StaminaGained: 100},
		{Date: "2026-07-24", StaminaGained: 100},
	}

	trend := Compute(200, history)
	if trend.Label != "Harder" {
		t.Errorf("Label = %q, want Harder", trend.Label)
	}
	if trend.Ratio != 2.0 {
		t.Errorf("Ratio = %v, want 2.0", trend.Ratio)
	}
}

func TestCompute_EasierEffort(t *testing.T) {
	history := []Snapshot{
		{Date: "2026-07-20", StaminaGained: 100},
		{Date: "2026-07-22", StaminaGained: 100},
		{Date: "2026-07-24", StaminaGained: 100},
	}

	trend := Compute(50, history)
	if trend.Label != "Easier" {
		t.Errorf("Label = %q, want Easier", trend.Label)
	}
}

func TestAppend_TrimsToMaxHistory(t *testing.T) {
	var history []Snapshot
	for i := 0; i < MaxHistory+5; i++ {
		history = Append(history, Snapshot{Date: "2026-07-20", StaminaGained: float64(i)})
	}

	if len(history) != MaxHistory {
		t.Fatalf("len(history) = %d, want %d", len(history), MaxHistory)
	}
	// oldest entries should have been dropped, newest retained
	if history[len(history)-1].StaminaGained != float64(MaxHistory+4) {
		t.Errorf("last entry = %v, want %v", history[len(history)-1].StaminaGained, MaxHistory+4)
	}
}
