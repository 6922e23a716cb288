package firestore

import (
	"time"

	"github.com/fitglue/zonecore/pkg/domain/efforttrend"
	"github.com/fitglue/zonecore/pkg/domain/scoring"
)

// profileDoc is the Firestore representation of a subscriber's health
// profile. Pointer fields distinguish "not supplied" from "supplied as
// zero", matching scoring.HealthProfile.
type profileDoc struct {
	Age       int    `firestore:"age"`
	Gender    string `firestore:"gender"`
	RestingHR *int   `firestore:"resting_hr,omitempty"`
	MaxHR     *int   `firestore:"max_hr,omitempty"`
}

func (d profileDoc) toHealthProfile() scoring.HealthProfile {
	return scoring.HealthProfile{
		Age:       d.Age,
		Gender:    scoring.ParseGender(d.Gender),
		RestingHR: d.RestingHR,
		MaxHR:     d.MaxHR,
	}
}

// effortHistoryDoc is the Firestore representation of a subscriber's
// rolling effort-trend history.
type effortHistoryDoc struct {
	Snapshots   []efforttrend.Snapshot `firestore:"snapshots"`
	LastUpdated time.Time              `firestore:"last_updated"`
}

// scoringResultDoc is the Firestore representation of one scored workout.
type scoringResultDoc struct {
	UserID         string         `firestore:"user_id"`
	StaminaGained  float64        `firestore:"stamina_gained"`
	StrengthGained float64        `firestore:"strength_gained"`
	ZoneBreakdown  []zoneEntryDoc `firestore:"zone_breakdown"`
	ScoredAt       time.Time      `firestore:"scored_at"`
}

type zoneEntryDoc struct {
	Zone           string  `firestore:"zone"`
	Minutes        float64 `firestore:"minutes"`
	StaminaGained  float64 `firestore:"stamina_gained"`
	StrengthGained float64 `firestore:"strength_gained"`
	HRMin          *int    `firestore:"hr_min,omitempty"`
	HRMax          int     `firestore:"hr_max"`
}
