// Package tier decides which optional, Athlete-only pieces of the scoring
// pipeline a given subscriber is entitled to: the genai workout narration
// (pkg/infrastructure/narrator) and the rolling effort-trend supplement
// (pkg/domain/efforttrend). The Workout Scoring Core itself is tier-blind -
// every subscriber gets identical stamina/zone arithmetic.
package tier

import "time"

// EffectiveTier is used for internal gating logic only; it is never part of
// the wire contract.
type EffectiveTier string

const (
	TierHobbyist EffectiveTier = "hobbyist"
	TierAthlete  EffectiveTier = "athlete"
)

// Subscriber is the minimal billing state tier decisions need. It is
// populated from Stripe subscription status (pkg/infrastructure/billing),
// not from the scoring profile itself.
type Subscriber struct {
	IsAdmin             bool
	StripeStatus        string // "active", "trialing", "past_due", "canceled", ...
	StripePriceIsAthlete bool
	TrialEndsAt         *time.Time
}

// GetEffectiveTier determines a subscriber's effective tier based on admin
// override, an active Stripe trial, and the subscribed price.
func GetEffectiveTier(s Subscriber) EffectiveTier {
	if s.IsAdmin {
		return TierAthlete
	}

	if s.TrialEndsAt != nil && s.TrialEndsAt.After(time.Now()) {
		return TierAthlete
	}

	switch s.StripeStatus {
	case "active", "trialing":
		if s.StripePriceIsAthlete {
			return TierAthlete
		}
	}

	return TierHobbyist
}

// CanNarrate reports whether the genai workout narrator should run for this
// subscriber. Narration is Athlete-only and always best-effort - see
// pkg/infrastructure/narrator.
func CanNarrate(s Subscriber) bool {
	return GetEffectiveTier(s) == TierAthlete
}

// CanUseEffortTrend reports whether the rolling effort-trend supplement
// (pkg/domain/efforttrend) should be computed and attached to a scored
// workout.
func CanUseEffortTrend(s Subscriber) bool {
	return GetEffectiveTier(s) == TierAthlete
}

// GetTrialDaysRemaining returns the number of days left in an active trial,
// 0 once the trial has ended, or -1 if the subscriber has no trial at all.
func GetTrialDaysRemaining(s Subscriber) int {
	if s.TrialEndsAt == nil {
		return -1
	}

	now := time.Now()
	trialEnd := *s.TrialEndsAt

	if trialEnd.Before(now) || trialEnd.Equal(now) {
		return 0
	}

	return int(trialEnd.Sub(now).Hours()/24) + 1
}
