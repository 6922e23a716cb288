// Package sentry wires getsentry/sentry-go into zonecore's slog chain so
// every Error-level log line is also reported upstream, without callers
// needing to remember to call Sentry directly.
package sentry

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/getsentry/sentry-go"
)

type Config struct {
	DSN                string
	Environment        string
	Release            string
	ServerName         string
	TracesSampleRate   float64
	ProfilesSampleRate float64
}

// Init configures the global Sentry client. A blank DSN disables reporting
// rather than erroring - Sentry is always optional.
func Init(cfg Config, logger *slog.Logger) error {
	if cfg.DSN == "" {
		if logger != nil {
			logger.Warn("sentry: DSN not configured, error tracking disabled")
		}
		return nil
	}

	err := sentry.Init(sentry.ClientOptions{
		Dsn:                cfg.DSN,
		Environment:        cfg.Environment,
		Release:            cfg.Release,
		ServerName:         cfg.ServerName,
		TracesSampleRate:   cfg.TracesSampleRate,
		ProfilesSampleRate: cfg.ProfilesSampleRate,
		BeforeSend: func(event *sentry.Event, hint *sentry.EventHint) *sentry.Event {
			if event.Request != nil && event.Request.Headers != nil {
				delete(event.Request.Headers, "Authorization")
				delete(event.Request.Headers, "Cookie")
			}
			return event
		},
	})
	if err != nil {
		if logger != nil {
			logger.Error("sentry: init failed", "error", err)
		}
		return fmt.Errorf("sentry init: %w", err)
	}

	if logger != nil {
		logger.Info("sentry: initialized", "environment", cfg.Environment, "release", cfg.Release)
	}
	return nil
}

// CaptureException reports err to Sentry with the given scope context.
func CaptureException(err error, scopeContext map[string]interface{}) {
	if err == nil {
		return
	}
	if scopeContext != nil {
		sentry.ConfigureScope(func(scope *sentry.Scope) {
			for key, value := range scopeContext {
				scope.SetContext(key, sentry.Context{"value": value})
			}
		})
	}
	sentry.CaptureException(err)
}

// Flush blocks until all buffered events are sent, or timeout elapses.
// Call before a Cloud Function instance terminates.
func Flush(timeout time.Duration) bool {
	return sentry.Flush(timeout)
}

// RecoverAndCapture recovers a panic, reports it to Sentry, flushes, and
// re-panics so the platform's own crash handling still runs.
func RecoverAndCapture() {
	if r := recover(); r != nil {
		err, ok := r.(error)
		if !ok {
			err = fmt.Errorf("panic: %v", r)
		}
		CaptureException(err, nil)
		Flush(2 * time.Second)
		panic(r)
	}
}

// Handler wraps an slog.Handler so every Error-level record is also
// forwarded to Sentry, mirroring the rest of zonecore's logging chain
// (JSON handler -> component handler -> Sentry handler).
type Handler struct {
	slog.Handler
}

func NewHandler(h slog.Handler) *Handler {
	return &Handler{Handler: h}
}

func (h *Handler) Handle(ctx context.Context, r slog.Record) error {
	if r.Level >= slog.LevelError {
		attrs := make(map[string]interface{})
		r.Attrs(func(a slog.Attr) bool {
			attrs[a.Key] = a.Value.Any()
			return true
		})

		if errVal, ok := attrs["error"]; ok {
			if err, isErr := errVal.(error); isErr {
				CaptureException(err, attrs)
			} else {
				sentry.CaptureMessage(fmt.Sprintf("%s: %v", r.Message, errVal))
			}
		} else {
			sentry.CaptureMessage(r.Message)
		}
	}
	return h.Handler.Handle(ctx, r)
}

func (h *Handler) WithGroup(name string) slog.Handler {
	return &Handler{Handler: h.Handler.WithGroup(name)}
}

func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &Handler{Handler: h.Handler.WithAttrs(attrs)}
}

func (h *Handler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.Handler.Enabled(ctx, level)
}
