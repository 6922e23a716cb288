// Package efforttrend is an Athlete-tier supplement (spec §3.10) that
// compares a freshly scored workout's stamina_gained against the
// subscriber's own rolling history, the same "how does this compare to
// your recent average" shape as the TRIMP-ratio effort score in
// functions/enricher/providers/effort_score, adapted here to run purely off
// the Workout Scoring Core's own stamina_gained output rather than
// recomputing TRIMP from raw HR/pace/elevation signals.
//
// Nothing in this package ever mutates pkg/domain/scoring.ScoringResult -
// Trend is attached alongside a scored workout, never folded into it.
package efforttrend

import "math"

const (
	// MaxHistory bounds how many past snapshots are retained.
	MaxHistory = 14
	// MinHistory is the fewest past snapshots required before a trend is
	// computed; below this, Compute reports insufficient history instead.
	MinHistory = 3
)

// Snapshot is one past workout's stamina_gained, keyed by its scoring date.
type Snapshot struct {
	Date          string // YYYY-MM-DD
	StaminaGained float64
}

// Trend is the result of comparing a workout's stamina_gained against its
// subscriber's rolling history.
type Trend struct {
	Ratio          float64 // current / rolling average; 1.0 means "typical"
	Label          string  // "Easier", "Typical", or "Harder"
	HistorySize    int
	Insufficient   bool
}

// Compute compares current against the rolling average of history. If
// fewer than MinHistory snapshots are available, it reports Insufficient
// and a zero Ratio - spec §3.10 never blocks scoring on this, the supplement
// is attached opportunistically once enough history accumulates.
func Compute(current float64, history []Snapshot) Trend {
	if len(history) < MinHistory {
		return Trend{HistorySize: len(history), Insufficient: true}
	}

	var sum float64
	for _, h := range history {
		sum += h.StaminaGained
	}
	avg := sum / float64(len(history))

	var ratio float64
	if avg > 0 {
		ratio = current / avg
	}

	ratio = round2(ratio)
	return Trend{
		Ratio:       ratio,
		Label:       label(ratio),
		HistorySize: len(history),
	}
}

func label(ratio float64) string {
	switch {
	case ratio <= 0:
		return "Typical"
	case ratio < 0.85:
		return "Easier"
	case ratio > 1.15:
		return "Harder"
	default:
		return "Typical"
	}
}

// Append adds current to history and trims to MaxHistory, oldest first -
// the same append-then-trim shape persistHistory uses in effort_score, but
// as a pure function over the in-memory slice; the Firestore round-trip
// lives in pkg/infrastructure/firestore.
func Append(history []Snapshot, current Snapshot) []Snapshot {
	history = append(history, current)
	if len(history) > MaxHistory {
		history = history[len(history)-MaxHistory:]
	}
	return history
}

// round2 rounds to two decimal places - the granularity Trend.Ratio is
// displayed at.
func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
