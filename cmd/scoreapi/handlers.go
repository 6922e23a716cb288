package main

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/fitglue/zonecore/pkg/bootstrap"
	"github.com/fitglue/zonecore/pkg/domain/scoring"
)

type handler struct {
	svc    *bootstrap.Service
	logger *slog.Logger
}

// healthProfileRequest and heartRateSampleRequest mirror the wire contract
// spec §6 defines for HealthProfile/WorkoutSamples, decoupled from the
// scoring package's own value types the same way
// pkg/infrastructure/firestore keeps Doc structs separate from domain
// types - the wire shape and the pure-core shape are allowed to drift
// independently.
type healthProfileRequest struct {
	Age       int    `json:"age"`
	Gender    string `json:"gender"`
	RestingHR *int   `json:"resting_hr,omitempty"`
	MaxHR     *int   `json:"max_hr,omitempty"`
}

func (r healthProfileRequest) toHealthProfile() scoring.HealthProfile {
	return scoring.HealthProfile{
		Age:       r.Age,
		Gender:    scoring.ParseGender(r.Gender),
		RestingHR: r.RestingHR,
		MaxHR:     r.MaxHR,
	}
}

type heartRateSampleRequest struct {
	Timestamp time.Time `json:"timestamp"`
	BPM       int       `json:"bpm"`
}

type scoreWorkoutRequest struct {
	Profile healthProfileRequest     `json:"profile"`
	Samples []heartRateSampleRequest `json:"samples"`
}

func (req scoreWorkoutRequest) toWorkoutSamples() (scoring.WorkoutSamples, error) {
	samples := make(scoring.WorkoutSamples, len(req.Samples))
	for i, s := range req.Samples {
		if s.BPM < 0 {
			return nil, &scoring.NegativeSampleValue{Index: i, BPM: s.BPM}
		}
		samples[i] = scoring.HeartRateSample{Timestamp: s.Timestamp, BPM: s.BPM}
	}
	return samples, nil
}

// zoneEntryResponse and scoreWorkoutResponse serialize scoring.ScoringResult
// into the exact wire shape spec §6 names: title-cased zone names (already
// what ZoneTag.String() returns), a null hr_min for Off, zero-minute zones
// omitted.
type zoneEntryResponse struct {
	Zone           string  `json:"zone"`
	Minutes        float64 `json:"minutes"`
	StaminaGained  float64 `json:"stamina_gained"`
	StrengthGained float64 `json:"strength_gained"`
	HRMin          *int    `json:"hr_min"`
	HRMax          int     `json:"hr_max"`
}

type scoreWorkoutResponse struct {
	StaminaGained  float64             `json:"stamina_gained"`
	StrengthGained float64             `json:"strength_gained"`
	ZoneBreakdown  []zoneEntryResponse `json:"zone_breakdown"`
}

func toResponse(result scoring.ScoringResult) scoreWorkoutResponse {
	resp := scoreWorkoutResponse{
		StaminaGained:  result.StaminaGained,
		StrengthGained: result.StrengthGained,
		ZoneBreakdown:  make([]zoneEntryResponse, 0, len(result.ZoneBreakdown)),
	}
	for _, z := range result.ZoneBreakdown {
		resp.ZoneBreakdown = append(resp.ZoneBreakdown, zoneEntryResponse{
			Zone:           z.Zone.String(),
			Minutes:        z.Minutes,
			StaminaGained:  z.StaminaGained,
			StrengthGained: z.StrengthGained,
			HRMin:          z.HRMin,
			HRMax:          z.HRMax,
		})
	}
	return resp
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(errorResponse{Error: message})
}

// scoreWorkout is the synchronous counterpart to
// functions/scoreworkout.runScoring: it runs BuildZones + Score directly
// against a caller-supplied profile and sample stream instead of
// fetching them from Firestore/Cloud Storage, for callers that already
// have both in hand (e.g. a mobile client scoring a just-recorded run
// before it has even finished uploading the full FIT file).
func (h *handler) scoreWorkout(w http.ResponseWriter, r *http.Request) {
	var req scoreWorkoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	samples, err := req.toWorkoutSamples()
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	zones, err := scoring.BuildZones(req.Profile.toHealthProfile())
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	result, err := scoring.Score(samples, zones)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(toResponse(result))
}
