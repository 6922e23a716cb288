// Package scoring implements the Workout Scoring Core: a pure, deterministic
// engine that turns a health profile and a heart-rate sample stream into
// personalized training-zone boundaries and a scored workout breakdown.
//
// Every type in this package is an immutable value. Nothing here performs
// I/O, logs, retries, or holds shared mutable state - see pkg/bootstrap and
// pkg/infrastructure for the ambient/domain stack that surrounds the core.
package scoring

import "time"

// Gender is a closed tagged variant. Construct it with ParseGender rather
// than comparing strings directly.
type Gender int

const (
	Male Gender = iota
	Female
	Other
)

func (g Gender) String() string {
	switch g {
	case Male:
		return "Male"
	case Female:
		return "Female"
	default:
		return "Other"
	}
}

// ZoneTag identifies one of the five fixed training zones, in the canonical
// order OFF < REST < EASY < MODERATE < HARD.
type ZoneTag int

const (
	Off ZoneTag = iota
	Rest
	Easy
	Moderate
	Hard
)

// ZoneTags lists the five zones in fixed order. Callers iterate this slice
// instead of hardcoding the zone count.
var ZoneTags = [...]ZoneTag{Off, Rest, Easy, Moderate, Hard}

func (z ZoneTag) String() string {
	switch z {
	case Off:
		return "Off"
	case Rest:
		return "Rest"
	case Easy:
		return "Easy"
	case Moderate:
		return "Moderate"
	case Hard:
		return "Hard"
	default:
		return "Unknown"
	}
}

// intensity returns the fixed points-per-minute multiplier for the zone.
// These five constants (0, 1, 4, 6, 8) are part of the wire contract and
// must never be made configurable - see spec §4.2.
func (z ZoneTag) intensity() float64 {
	switch z {
	case Off:
		return 0.0
	case Rest:
		return 1.0
	case Easy:
		return 4.0
	case Moderate:
		return 6.0
	case Hard:
		return 8.0
	default:
		return 0.0
	}
}

// HealthProfile is the input to BuildZones. MaxHR and RestingHR are
// pointers so the zero value can distinguish "not supplied" (nil, defaults
// apply) from "supplied as zero" - a workout-scorer caller may genuinely
// not know a max_hr yet.
type HealthProfile struct {
	Age       int
	Gender    Gender
	RestingHR *int
	MaxHR     *int
}

// ParseGender maps the spec §3 aliases to a Gender. Unrecognized input maps
// to Other, per spec - it never errors.
func ParseGender(s string) Gender {
	switch genderFold(s) {
	case "m", "male":
		return Male
	case "f", "female":
		return Female
	default:
		return Other
	}
}

// Zone is one of the five fixed half-open bpm intervals that make up a
// TrainingZones value.
type Zone struct {
	Name       ZoneTag
	LowerBound int // inclusive
	UpperBound int // exclusive
	Intensity  float64
}

// TrainingZones is the derived, immutable output of BuildZones.
type TrainingZones struct {
	RestingHR int
	MaxHR     int
	HRR       int
	VTOff     int
	VT0       int
	VT1       int
	VT2       int
	Zones     [5]Zone
}

// HeartRateSample is one (timestamp, bpm) reading from a workout.
type HeartRateSample struct {
	Timestamp time.Time
	BPM       int
}

// WorkoutSamples is the finite sequence of samples the Workout Scorer
// consumes. It need not be pre-sorted - Score sorts defensively.
type WorkoutSamples []HeartRateSample

// ZoneEntry is one row of a ScoringResult's zone breakdown.
type ZoneEntry struct {
	Zone            ZoneTag
	Minutes         float64
	StaminaGained   float64
	StrengthGained  float64 // always 0 in this scheme
	HRMin           *int    // nil for Off (open lower bound)
	HRMax           int
}

// ScoringResult is the output of Score.
type ScoringResult struct {
	StaminaGained  float64
	StrengthGained float64 // always 0 in this scheme
	ZoneBreakdown  []ZoneEntry
}
