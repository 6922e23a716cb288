// Package bootstrap wires zonecore's ambient stack - configuration,
// structured logging, and the concrete Google Cloud adapters - the same
// shape the Cloud Functions and HTTP entrypoints share rather than each
// reimplementing client setup.
package bootstrap

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"cloud.google.com/go/firestore"
	"cloud.google.com/go/pubsub"
	"cloud.google.com/go/storage"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"

	zonecore "github.com/fitglue/zonecore/pkg"
	"github.com/fitglue/zonecore/pkg/infrastructure/billing"
	infrafirestore "github.com/fitglue/zonecore/pkg/infrastructure/firestore"
	"github.com/fitglue/zonecore/pkg/infrastructure/narrator"
	"github.com/fitglue/zonecore/pkg/infrastructure/notifications"
	infrapubsub "github.com/fitglue/zonecore/pkg/infrastructure/pubsub"
	sentryPkg "github.com/fitglue/zonecore/pkg/infrastructure/sentry"
	infrastorage "github.com/fitglue/zonecore/pkg/infrastructure/storage"
)

// Config holds environment-driven configuration shared by every entrypoint.
type Config struct {
	ProjectID      string
	GCSFitBucket   string
	SentryDSN      string
	SentryRelease  string
	StripeSecret   string
	GenaiAPIKey    string
}

// Service bundles every initialized dependency an entrypoint needs.
type Service struct {
	Profiles      zonecore.ProfileStore
	Results       zonecore.ResultStore
	Pub           zonecore.Publisher
	Store         zonecore.BlobStore
	Notifications zonecore.NotificationService
	Auth          *auth.Client
	Billing       *billing.Client
	Narrator      narrator.Narrator
	Config        *Config
}

// LoadConfig reads configuration from environment variables. There is no
// file or CLI-flag configuration layer - every entrypoint runs as a Cloud
// Function or a container, both of which inject environment variables.
func LoadConfig() *Config {
	projectID := os.Getenv("GOOGLE_CLOUD_PROJECT")
	if projectID == "" {
		projectID = zonecore.ProjectID
	}

	return &Config{
		ProjectID:     projectID,
		GCSFitBucket:  os.Getenv("GCS_FIT_BUCKET"),
		SentryDSN:     os.Getenv("SENTRY_DSN"),
		SentryRelease: os.Getenv("SENTRY_RELEASE"),
		StripeSecret:  os.Getenv("STRIPE_SECRET_KEY"),
		GenaiAPIKey:   os.Getenv("GENAI_API_KEY"),
	}
}

// GetSlogHandlerOptions returns handler options that map slog's keys onto
// the ones Cloud Logging expects ("severity" instead of "level").
func GetSlogHandlerOptions(level slog.Level) *slog.HandlerOptions {
	return &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.MessageKey {
				return slog.Attr{Key: "message", Value: a.Value}
			}
			if a.Key == slog.LevelKey {
				return slog.Attr{Key: "severity", Value: a.Value}
			}
			return a
		},
	}
}

// ComponentHandler prefixes a log message with "[component]" when the
// record (or an ancestor With) carries a "component" attribute.
type ComponentHandler struct {
	slog.Handler
	component string
}

func (h *ComponentHandler) WithGroup(name string) slog.Handler {
	return &ComponentHandler{Handler: h.Handler.WithGroup(name), component: h.component}
}

func (h *ComponentHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	comp := h.component
	for _, a := range attrs {
		if a.Key == "component" {
			comp = a.Value.String()
		}
	}
	return &ComponentHandler{Handler: h.Handler.WithAttrs(attrs), component: comp}
}

func (h *ComponentHandler) Handle(ctx context.Context, r slog.Record) error {
	comp := h.component
	r.Attrs(func(a slog.Attr) bool {
		if a.Key == "component" {
			comp = a.Value.String()
			return false
		}
		return true
	})

	if comp == "" {
		return h.Handler.Handle(ctx, r)
	}

	newRecord := slog.NewRecord(r.Time, r.Level, fmt.Sprintf("[%s] %s", comp, r.Message), r.PC)
	r.Attrs(func(a slog.Attr) bool {
		newRecord.AddAttrs(a)
		return true
	})
	return h.Handler.Handle(ctx, newRecord)
}

// NewLogger builds the standard zonecore logger chain: a JSON handler with
// Cloud-Logging-compatible keys, wrapped by ComponentHandler, wrapped by
// the Sentry-reporting handler. scoring itself never logs - only the
// ambient stack around it does.
func NewLogger(serviceName string) *slog.Logger {
	var level slog.Level
	switch strings.ToLower(os.Getenv("LOG_LEVEL")) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	jsonHandler := slog.NewJSONHandler(os.Stdout, GetSlogHandlerOptions(level))
	compHandler := &ComponentHandler{Handler: jsonHandler}
	sentryHandler := sentryPkg.NewHandler(compHandler)
	return slog.New(sentryHandler).With("service", serviceName)
}

// NewService initializes every Google Cloud adapter zonecore's entrypoints
// share: Firestore for profiles/results/effort history, Pub/Sub for the
// workout-scored event, Cloud Storage for raw FIT retrieval, and Firebase
// for push notifications and Auth. Sentry is initialized as a side effect
// and is always optional.
func NewService(ctx context.Context, logger *slog.Logger) (*Service, error) {
	cfg := LoadConfig()
	logger.Info("bootstrap: initializing service", "project_id", cfg.ProjectID)

	fsClient, err := firestore.NewClient(ctx, cfg.ProjectID)
	if err != nil {
		return nil, fmt.Errorf("bootstrap: firestore init: %w", err)
	}

	psClient, err := pubsub.NewClient(ctx, cfg.ProjectID)
	if err != nil {
		return nil, fmt.Errorf("bootstrap: pubsub init: %w", err)
	}

	gcsClient, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("bootstrap: storage init: %w", err)
	}

	fbApp, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: cfg.ProjectID})
	if err != nil {
		return nil, fmt.Errorf("bootstrap: firebase app init: %w", err)
	}

	fcmAdapter, err := notifications.NewFCMAdapter(ctx, fbApp)
	if err != nil {
		logger.Warn("bootstrap: FCM init failed, notifications disabled", "error", err)
	}

	authClient, err := fbApp.Auth(ctx)
	if err != nil {
		logger.Warn("bootstrap: firebase auth init failed", "error", err)
	}

	environment := cfg.ProjectID
	release := cfg.SentryRelease
	if release == "" {
		release = os.Getenv("K_REVISION")
		if release == "" {
			release = "unknown"
		}
	}
	tracesSampleRate := 0.1
	if err := sentryPkg.Init(sentryPkg.Config{
		DSN:                cfg.SentryDSN,
		Environment:        environment,
		Release:            release,
		ServerName:         os.Getenv("K_SERVICE"),
		TracesSampleRate:   tracesSampleRate,
		ProfilesSampleRate: tracesSampleRate,
	}, logger); err != nil {
		logger.Warn("bootstrap: sentry init failed", "error", err)
	}

	store := infrafirestore.NewAdapter(fsClient)

	var billingClient *billing.Client
	if cfg.StripeSecret != "" {
		billingClient = billing.NewClient(cfg.StripeSecret)
	} else {
		logger.Warn("bootstrap: no stripe secret configured, every non-admin subscriber resolves to hobbyist tier")
	}

	return &Service{
		Profiles:      store,
		Results:       store,
		Pub:           &infrapubsub.ScorePublisher{Client: psClient},
		Store:         &infrastorage.Adapter{Client: gcsClient},
		Notifications: fcmAdapter,
		Auth:          authClient,
		Billing:       billingClient,
		Narrator:      narrator.Narrator{APIKey: cfg.GenaiAPIKey},
		Config:        cfg,
	}, nil
}
