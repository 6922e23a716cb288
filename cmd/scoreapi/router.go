package main

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/fitglue/zonecore/pkg/bootstrap"
)

// NewRouter builds the scoreapi chi.Router: a liveness probe plus the
// Firebase-Auth-protected synchronous scoring endpoint (spec §6).
func NewRouter(svc *bootstrap.Service, logger *slog.Logger) chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	h := &handler{svc: svc, logger: logger}

	r.Get("/healthz", h.healthz)

	r.Group(func(r chi.Router) {
		r.Use(firebaseAuth(svc, logger))
		r.Post("/v1/workouts/score", h.scoreWorkout)
	})

	return r
}

func (h *handler) healthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}
