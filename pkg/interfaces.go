// Package zonecore holds the narrow cross-cutting interfaces the domain
// packages depend on and the ambient constants (topics, collections) they
// share. Concrete implementations live under pkg/infrastructure.
package zonecore

import (
	"context"

	"github.com/cloudevents/sdk-go/v2/event"

	"github.com/fitglue/zonecore/pkg/domain/efforttrend"
	"github.com/fitglue/zonecore/pkg/domain/scoring"
)

// ProfileStore retrieves a subscriber's health profile and persists and
// retrieves their rolling effort-trend history.
type ProfileStore interface {
	GetProfile(ctx context.Context, userID string) (scoring.HealthProfile, error)
	GetEffortHistory(ctx context.Context, userID string) ([]efforttrend.Snapshot, error)
	SaveEffortHistory(ctx context.Context, userID string, history []efforttrend.Snapshot) error
}

// ResultStore persists a scored workout.
type ResultStore interface {
	SaveScoringResult(ctx context.Context, userID, workoutID string, result scoring.ScoringResult) error
}

// Publisher emits CloudEvents for downstream consumers of a scored workout.
type Publisher interface {
	PublishCloudEvent(ctx context.Context, topic string, e event.Event) (string, error)
}

// BlobStore fetches a subscriber's raw uploaded FIT file.
type BlobStore interface {
	Read(ctx context.Context, bucket, object string) ([]byte, error)
}

// NotificationService pushes a completion notification once a workout has
// been scored.
type NotificationService interface {
	SendPushNotification(ctx context.Context, userID, title, body string, tokens []string, data map[string]string) error
}
