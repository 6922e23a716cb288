// Package notifications sends the "your workout is scored" completion push
// via Firebase Cloud Messaging once functions/scoreworkout finishes.
package notifications

import (
	"context"
	"fmt"
	"log/slog"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
)

// FCMAdapter implements zonecore.NotificationService against Firebase
// Cloud Messaging.
type FCMAdapter struct {
	client *messaging.Client
}

func NewFCMAdapter(ctx context.Context, app *firebase.App) (*FCMAdapter, error) {
	client, err := app.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("notifications: get messaging client: %w", err)
	}
	return &FCMAdapter{client: client}, nil
}

func (a *FCMAdapter) SendPushNotification(ctx context.Context, userID, title, body string, tokens []string, data map[string]string) error {
	if a == nil || a.client == nil {
		slog.Debug("notifications: FCM not initialized, skipping", "user_id", userID)
		return nil
	}
	if len(tokens) == 0 {
		slog.Debug("notifications: no device tokens, skipping", "user_id", userID)
		return nil
	}

	message := &messaging.MulticastMessage{
		Tokens:       tokens,
		Notification: &messaging.Notification{Title: title, Body: body},
		Data:         data,
	}

	response, err := a.client.SendEachForMulticast(ctx, message)
	if err != nil {
		return fmt.Errorf("notifications: send multicast: %w", err)
	}

	if response.FailureCount > 0 {
		slog.Warn("notifications: some pushes failed",
			"user_id", userID,
			"failure_count", response.FailureCount,
			"success_count", response.SuccessCount,
		)
	}
	return nil
}
