// Command scoreapi runs the synchronous HTTP counterpart to
// functions/scoreworkout: a caller supplies a HealthProfile and
// WorkoutSamples directly in the request body and gets back the scored
// result immediately, no Pub/Sub round trip. Mirrors the teacher's
// split between its async Cloud Functions and its chi-routed
// services/api-admin.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"

	"github.com/fitglue/zonecore/pkg/bootstrap"
)

func main() {
	logger := bootstrap.NewLogger("scoreapi")

	ctx := context.Background()
	svc, err := bootstrap.NewService(ctx, logger)
	if err != nil {
		logger.Error("scoreapi: service init failed", "error", err)
		os.Exit(1)
	}

	router := NewRouter(svc, logger)

	addr := os.Getenv("PORT")
	if addr == "" {
		addr = "8080"
	}
	addr = ":" + addr

	logger.Info("scoreapi: listening", "addr", addr)
	if err := http.ListenAndServe(addr, router); err != nil {
		logger.Error("scoreapi: server stopped", "error", err)
		os.Exit(1)
	}
}
