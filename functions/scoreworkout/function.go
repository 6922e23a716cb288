// Package scoreworkout is the Cloud Function entrypoint that turns an
// uploaded FIT file into a scored workout: fetch the profile, pull the
// heart-rate samples out of Cloud Storage, run the Workout Scoring Core,
// persist the result, publish a CloudEvent, and push a completion
// notification. Grounded on the teacher's functions/router entrypoint -
// same functions.CloudEvent registration and sync.Once service init, one
// handler function instead of a framework.WrapCloudEvent wrapper since
// zonecore has no multi-provider routing to generalize over.
package scoreworkout

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/GoogleCloudPlatform/functions-framework-go/functions"
	"github.com/cloudevents/sdk-go/v2/event"

	zonecore "github.com/fitglue/zonecore/pkg"
	"github.com/fitglue/zonecore/pkg/bootstrap"
	"github.com/fitglue/zonecore/pkg/domain/efforttrend"
	"github.com/fitglue/zonecore/pkg/domain/fitsamples"
	"github.com/fitglue/zonecore/pkg/domain/scoring"
	"github.com/fitglue/zonecore/pkg/domain/tier"
	infrapubsub "github.com/fitglue/zonecore/pkg/infrastructure/pubsub"
	"github.com/fitglue/zonecore/pkg/infrastructure/wearable"
)

var (
	svc     *bootstrap.Service
	svcOnce sync.Once
	svcErr  error
)

func init() {
	functions.CloudEvent("ScoreWorkout", ScoreWorkout)
}

func initService(ctx context.Context, logger *slog.Logger) (*bootstrap.Service, error) {
	if svc != nil {
		return svc, nil
	}
	svcOnce.Do(func() {
		svc, svcErr = bootstrap.NewService(ctx, logger)
	})
	return svc, svcErr
}

// pubSubMessage is the envelope a Pub/Sub-triggered CloudEvent carries,
// matching the teacher's types.PubSubMessage shape.
type pubSubMessage struct {
	Message struct {
		Data []byte `json:"data"`
	} `json:"message"`
}

// WorkoutScoreRequest is the payload that triggers a scoring run, published
// to the upload-processing pipeline once a FIT file lands in Cloud Storage.
type WorkoutScoreRequest struct {
	UserID           string   `json:"user_id"`
	WorkoutID        string   `json:"workout_id"`
	FitBucket        string   `json:"fit_bucket"`
	FitObject        string   `json:"fit_object"`
	DeviceTokens     []string `json:"device_tokens,omitempty"`
	StripeCustomerID string   `json:"stripe_customer_id,omitempty"`
	IsAdmin          bool     `json:"is_admin,omitempty"`

	// Wearable carries a connected wearable's stored OAuth2 grant, present
	// only when the uploader already has one on file. Used to backfill
	// resting_hr ahead of BuildZones when the stored profile omits it.
	Wearable *WearableGrant `json:"wearable,omitempty"`
}

// WearableGrant is the stored OAuth2 grant for a subscriber's connected
// wearable, plus the endpoint to query for a resting heart rate reading.
type WearableGrant struct {
	AccessToken       string    `json:"access_token"`
	RefreshToken      string    `json:"refresh_token"`
	Expiry            time.Time `json:"expiry"`
	RestingHREndpoint string    `json:"resting_hr_endpoint"`
}

// ScoreWorkout is the CloudEvent entrypoint registered with the
// functions-framework runtime.
func ScoreWorkout(ctx context.Context, e event.Event) error {
	logger := bootstrap.NewLogger("scoreworkout")

	svc, err := initService(ctx, logger)
	if err != nil {
		return fmt.Errorf("scoreworkout: service init failed: %w", err)
	}

	var msg pubSubMessage
	if err := e.DataAs(&msg); err != nil {
		return fmt.Errorf("scoreworkout: decode pubsub envelope: %w", err)
	}

	var req WorkoutScoreRequest
	if err := json.Unmarshal(msg.Message.Data, &req); err != nil {
		return fmt.Errorf("scoreworkout: decode request: %w", err)
	}

	logger = logger.With("user_id", req.UserID, "workout_id", req.WorkoutID)
	return runScoring(ctx, svc, logger, req)
}

func runScoring(ctx context.Context, svc *bootstrap.Service, logger *slog.Logger, req WorkoutScoreRequest) error {
	profile, err := svc.Profiles.GetProfile(ctx, req.UserID)
	if err != nil {
		return fmt.Errorf("scoreworkout: get profile: %w", err)
	}

	data, err := svc.Store.Read(ctx, req.FitBucket, req.FitObject)
	if err != nil {
		return fmt.Errorf("scoreworkout: read fit object: %w", err)
	}

	samples, err := fitsamples.ExtractHeartRateSamples(data)
	if err != nil {
		return fmt.Errorf("scoreworkout: extract heart rate samples: %w", err)
	}

	enrichRestingHR(ctx, logger, &profile, req.Wearable)

	zones, err := scoring.BuildZones(profile)
	if err != nil {
		return fmt.Errorf("scoreworkout: build zones: %w", err)
	}

	result, err := scoring.Score(samples, zones)
	if err != nil {
		return fmt.Errorf("scoreworkout: score workout: %w", err)
	}

	if err := svc.Results.SaveScoringResult(ctx, req.UserID, req.WorkoutID, result); err != nil {
		return fmt.Errorf("scoreworkout: save scoring result: %w", err)
	}

	subscriber := lookupSubscriber(ctx, svc, logger, req)
	attachEffortTrend(ctx, svc, logger, req.UserID, subscriber, result)
	narration := narrate(ctx, svc, logger, subscriber, profile, result)

	if err := publishScored(ctx, svc, req, result, narration); err != nil {
		logger.Warn("scoreworkout: publish failed", "error", err)
	}

	if len(req.DeviceTokens) > 0 {
		body := fmt.Sprintf("You gained %.0f stamina points.", result.StaminaGained)
		if err := svc.Notifications.SendPushNotification(ctx, req.UserID, "Workout scored", body, req.DeviceTokens, nil); err != nil {
			logger.Warn("scoreworkout: push notification failed", "error", err)
		}
	}

	logger.Info("scoreworkout: scored", "stamina_gained", result.StaminaGained, "zones", len(result.ZoneBreakdown))
	return nil
}

// enrichRestingHR backfills profile.RestingHR from a connected wearable
// when the stored profile omits one - spec §3's default of 65 only applies
// once this has had its shot. Any failure (missing grant, expired refresh
// token, unreachable endpoint) leaves the profile untouched; BuildZones'
// own default takes over.
func enrichRestingHR(ctx context.Context, logger *slog.Logger, profile *scoring.HealthProfile, grant *WearableGrant) {
	if profile.RestingHR != nil || grant == nil {
		return
	}

	cfg, err := wearable.NewConfig()
	if err != nil {
		logger.Debug("scoreworkout: wearable not configured, skipping resting hr enrichment", "error", err)
		return
	}

	ts := wearable.TokenSource(ctx, cfg, wearable.StoredToken{
		AccessToken:  grant.AccessToken,
		RefreshToken: grant.RefreshToken,
		Expiry:       grant.Expiry,
	}, "", nil)

	restingHR, err := wearable.FetchRestingHR(ctx, ts, grant.RestingHREndpoint)
	if err != nil {
		logger.Warn("scoreworkout: wearable resting hr fetch failed", "error", err)
		return
	}

	profile.RestingHR = &restingHR
}

// lookupSubscriber resolves the Athlete/Hobbyist gating tier from Stripe.
// A missing billing client or lookup failure resolves to a subscriber with
// no Stripe state (Hobbyist, unless req.IsAdmin makes it Athlete) rather
// than failing the scoring run - tier gating is additive, never load-bearing.
func lookupSubscriber(ctx context.Context, svc *bootstrap.Service, logger *slog.Logger, req WorkoutScoreRequest) tier.Subscriber {
	if svc.Billing == nil {
		return tier.Subscriber{IsAdmin: req.IsAdmin}
	}

	subscriber, err := svc.Billing.LookupSubscriber(ctx, req.StripeCustomerID, req.IsAdmin)
	if err != nil {
		logger.Warn("scoreworkout: stripe lookup failed, defaulting to hobbyist", "error", err)
		return tier.Subscriber{IsAdmin: req.IsAdmin}
	}
	return subscriber
}

func attachEffortTrend(ctx context.Context, svc *bootstrap.Service, logger *slog.Logger, userID string, subscriber tier.Subscriber, result scoring.ScoringResult) {
	if !tier.CanUseEffortTrend(subscriber) {
		return
	}

	history, err := svc.Profiles.GetEffortHistory(ctx, userID)
	if err != nil {
		logger.Warn("scoreworkout: load effort history failed", "error", err)
		return
	}

	trend := efforttrend.Compute(result.StaminaGained, history)
	logger.Info("scoreworkout: effort trend", "ratio", trend.Ratio, "label", trend.Label, "insufficient", trend.Insufficient)

	snapshot := efforttrend.Snapshot{Date: time.Now().UTC().Format("2006-01-02"), StaminaGained: result.StaminaGained}
	updated := efforttrend.Append(history, snapshot)
	if err := svc.Profiles.SaveEffortHistory(ctx, userID, updated); err != nil {
		logger.Warn("scoreworkout: save effort history failed", "error", err)
	}
}

func narrate(ctx context.Context, svc *bootstrap.Service, logger *slog.Logger, subscriber tier.Subscriber, profile scoring.HealthProfile, result scoring.ScoringResult) string {
	if !svc.Narrator.ShouldNarrate(subscriber) {
		return ""
	}
	return svc.Narrator.NarrateBestEffort(ctx, logger, profile, result)
}

// workoutScoredPayload is the JSON shape published on TopicWorkoutScored.
type workoutScoredPayload struct {
	UserID         string              `json:"user_id"`
	WorkoutID      string              `json:"workout_id"`
	StaminaGained  float64             `json:"stamina_gained"`
	StrengthGained float64             `json:"strength_gained"`
	ZoneBreakdown  []scoring.ZoneEntry `json:"zone_breakdown"`
	Narration      string              `json:"narration,omitempty"`
	ScoredAt       time.Time           `json:"scored_at"`
}

func publishScored(ctx context.Context, svc *bootstrap.Service, req WorkoutScoreRequest, result scoring.ScoringResult, narration string) error {
	payload := workoutScoredPayload{
		UserID:         req.UserID,
		WorkoutID:      req.WorkoutID,
		StaminaGained:  result.StaminaGained,
		StrengthGained: result.StrengthGained,
		ZoneBreakdown:  result.ZoneBreakdown,
		Narration:      narration,
		ScoredAt:       time.Now().UTC(),
	}

	cloudEvent, err := infrapubsub.NewWorkoutScoredEvent(payload)
	if err != nil {
		return err
	}

	_, err = svc.Pub.PublishCloudEvent(ctx, zonecore.TopicWorkoutScored, cloudEvent)
	return err
}
