// Package wearable enriches a health profile with a resting heart rate
// pulled from a connected wearable provider, ahead of BuildZones - spec §3
// defaults resting_hr to 65 when absent, but a connected wearable's own
// measurement is a better estimate when available. Narrowed from the
// teacher's seven-provider token refresh switch (Strava, Fitbit,
// TrainingPeaks, Polar, Google, GitHub, Spotify) down to one generic OAuth2
// provider, since spec §3's scope is a single wearable integration, and
// built on golang.org/x/oauth2's TokenSource instead of a hand-rolled HTTP
// refresh exchange.
package wearable

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"golang.org/x/oauth2"
)

// StoredToken is the subset of a subscriber's OAuth grant that TokenSource
// starts from. functions/scoreworkout builds it from the request's
// WearableGrant; pkg/infrastructure/firestore does not store it.
type StoredToken struct {
	AccessToken  string
	RefreshToken string
	Expiry       time.Time
}

// TokenPersister saves a refreshed token back to the profile store so the
// next sync does not need to refresh again.
type TokenPersister interface {
	SaveWearableToken(ctx context.Context, userID string, token StoredToken) error
}

// NewConfig builds an oauth2.Config for the wearable provider from
// environment variables - WEARABLE_CLIENT_ID, WEARABLE_CLIENT_SECRET,
// WEARABLE_TOKEN_URL, matching the provider-prefixed env var convention the
// teacher's token source uses for its OAuth secrets.
func NewConfig() (oauth2.Config, error) {
	clientID := os.Getenv("WEARABLE_CLIENT_ID")
	clientSecret := os.Getenv("WEARABLE_CLIENT_SECRET")
	tokenURL := os.Getenv("WEARABLE_TOKEN_URL")
	if clientID == "" || clientSecret == "" || tokenURL == "" {
		return oauth2.Config{}, fmt.Errorf("wearable: missing WEARABLE_CLIENT_ID/WEARABLE_CLIENT_SECRET/WEARABLE_TOKEN_URL")
	}

	return oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		Endpoint:     oauth2.Endpoint{TokenURL: tokenURL},
	}, nil
}

// TokenSource returns an oauth2.TokenSource that proactively refreshes a
// subscriber's stored wearable grant. When persister is non-nil, every token
// it hands out is saved through it (refreshed or not); save errors are
// ignored.
func TokenSource(ctx context.Context, cfg oauth2.Config, stored StoredToken, userID string, persister TokenPersister) oauth2.TokenSource {
	base := cfg.TokenSource(ctx, &oauth2.Token{
		AccessToken:  stored.AccessToken,
		RefreshToken: stored.RefreshToken,
		Expiry:       stored.Expiry,
	})
	return &persistingTokenSource{base: base, userID: userID, persister: persister}
}

type persistingTokenSource struct {
	base      oauth2.TokenSource
	userID    string
	persister TokenPersister
}

func (s *persistingTokenSource) Token() (*oauth2.Token, error) {
	tok, err := s.base.Token()
	if err != nil {
		return nil, fmt.Errorf("wearable: refresh token: %w", err)
	}

	if s.persister != nil {
		_ = s.persister.SaveWearableToken(context.Background(), s.userID, StoredToken{
			AccessToken:  tok.AccessToken,
			RefreshToken: tok.RefreshToken,
			Expiry:       tok.Expiry,
		})
	}
	return tok, nil
}

// restingHRResponse is the minimal shape expected back from the wearable's
// resting-heart-rate endpoint.
type restingHRResponse struct {
	RestingHeartRate int `json:"resting_heart_rate"`
}

// FetchRestingHR calls the wearable's resting-heart-rate endpoint using an
// authenticated client built from ts, returning the measurement to feed
// into scoring.HealthProfile.RestingHR.
func FetchRestingHR(ctx context.Context, ts oauth2.TokenSource, endpoint string) (int, error) {
	client := oauth2.NewClient(ctx, ts)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return 0, fmt.Errorf("wearable: build request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("wearable: fetch resting hr: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("wearable: resting hr endpoint returned status %d", resp.StatusCode)
	}

	var parsed restingHRResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return 0, fmt.Errorf("wearable: decode resting hr response: %w", err)
	}
	if parsed.RestingHeartRate <= 0 {
		return 0, fmt.Errorf("wearable: resting hr endpoint returned non-positive value %d", parsed.RestingHeartRate)
	}
	return parsed.RestingHeartRate, nil
}
