// Package pubsub publishes the workout-scored CloudEvent once
// pkg/domain/scoring.Score completes, and provides a log-only stand-in for
// local development.
package pubsub

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"cloud.google.com/go/pubsub"
	cloudevents "github.com/cloudevents/sdk-go/v2"
	"github.com/cloudevents/sdk-go/v2/event"
	"github.com/google/uuid"
)

const (
	// EventTypeWorkoutScored is the CloudEvent type attached to every
	// workout-scored notification (spec §7).
	EventTypeWorkoutScored = "zonecore.workout.scored"
	// EventSource identifies zonecore as the CloudEvent producer.
	EventSource = "zonecore/scoreworkout"
)

// ScorePublisher publishes CloudEvents via Google Cloud Pub/Sub.
type ScorePublisher struct {
	Client *pubsub.Client
}

func (p *ScorePublisher) PublishCloudEvent(ctx context.Context, topicID string, e event.Event) (string, error) {
	data, err := json.Marshal(e)
	if err != nil {
		return "", fmt.Errorf("pubsub: marshal cloudevent: %w", err)
	}

	result := p.Client.Topic(topicID).Publish(ctx, &pubsub.Message{Data: data})
	id, err := result.Get(ctx)
	if err != nil {
		return "", fmt.Errorf("pubsub: publish to %s: %w", topicID, err)
	}
	return id, nil
}

// LogPublisher logs the event instead of publishing it - a stand-in for
// local development when no Pub/Sub emulator is configured. NewService
// always wires ScorePublisher; LogPublisher is only used when a caller
// constructs it directly.
type LogPublisher struct {
	Logger *slog.Logger
}

func (p *LogPublisher) PublishCloudEvent(ctx context.Context, topicID string, e event.Event) (string, error) {
	data, err := json.Marshal(e)
	if err != nil {
		return "", fmt.Errorf("pubsub: marshal cloudevent: %w", err)
	}
	id := uuid.NewString()
	p.Logger.Info("pubsub: mock publish", "topic", topicID, "event_id", id, "data", string(data))
	return id, nil
}

// NewWorkoutScoredEvent builds the CloudEvent v1.0 envelope for a scored
// workout, with data marshaled as JSON per spec §7's wire contract.
func NewWorkoutScoredEvent(data interface{}) (cloudevents.Event, error) {
	e := cloudevents.NewEvent()
	e.SetID(uuid.NewString())
	e.SetSpecVersion("1.0")
	e.SetType(EventTypeWorkoutScored)
	e.SetSource(EventSource)

	if err := e.SetData(cloudevents.ApplicationJSON, data); err != nil {
		return e, fmt.Errorf("pubsub: set cloudevent data: %w", err)
	}
	return e, nil
}
