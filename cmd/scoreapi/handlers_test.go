package main

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newTestHandler() *handler {
	return &handler{svc: nil, logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
}

func TestScoreWorkout_HappyPath(t *testing.T) {
	h := newTestHandler()

	start := time.Date(2026, 1, 1, 8, 0, 0, 0, time.UTC)
	body := scoreWorkoutRequest{
		Profile: healthProfileRequest{Age: 30, Gender: "male"},
		Samples: []heartRateSampleRequest{
			{Timestamp: start, BPM: 100},
			{Timestamp: start.Add(10 * time.Minute), BPM: 160},
		},
	}
	payload, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/v1/workouts/score", bytes.NewReader(payload))
	rec := httptest.NewRecorder()

	h.scoreWorkout(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp scoreWorkoutResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if resp.StaminaGained <= 0 {
		t.Errorf("expected positive stamina_gained, got %f", resp.StaminaGained)
	}
	if len(resp.ZoneBreakdown) == 0 {
		t.Error("expected a non-empty zone breakdown")
	}
}

func TestScoreWorkout_InvalidBody(t *testing.T) {
	h := newTestHandler()

	req := httptest.NewRequest(http.MethodPost, "/v1/workouts/score", bytes.NewReader([]byte("not json")))
	rec := httptest.NewRecorder()

	h.scoreWorkout(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

func TestScoreWorkout_NegativeSample(t *testing.T) {
	h := newTestHandler()

	body := scoreWorkoutRequest{
		Profile: healthProfileRequest{Age: 30, Gender: "male"},
		Samples: []heartRateSampleRequest{{Timestamp: time.Now(), BPM: -5}},
	}
	payload, _ := json.Marshal(body)

	req := httptest.NewRequest(http.MethodPost, "/v1/workouts/score", bytes.NewReader(payload))
	rec := httptest.NewRecorder()

	h.scoreWorkout(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for negative bpm, got %d", rec.Code)
	}
}

func TestScoreWorkout_EmptyWorkout(t *testing.T) {
	h := newTestHandler()

	body := scoreWorkoutRequest{Profile: healthProfileRequest{Age: 30, Gender: "male"}}
	payload, _ := json.Marshal(body)

	req := httptest.NewRequest(http.MethodPost, "/v1/workouts/score", bytes.NewReader(payload))
	rec := httptest.NewRecorder()

	h.scoreWorkout(rec, req)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("expected 422 for empty workout, got %d", rec.Code)
	}
}

func TestHealthz(t *testing.T) {
	h := newTestHandler()

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()

	h.healthz(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
}
