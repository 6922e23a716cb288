// Package narrator generates a short, encouraging natural-language summary
// of a scored workout via Gemini - an Athlete-tier-only enrichment layered
// on top of pkg/domain/scoring.ScoringResult, never a dependency of it.
// Grounded on the teacher's functions/enricher/providers/ai_banner provider:
// same client/model setup and the same "never fail the caller" posture, a
// narration error only ever produces an empty string plus a logged warning.
package narrator

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/fitglue/zonecore/pkg/domain/scoring"
	"github.com/fitglue/zonecore/pkg/domain/tier"
)

const model = "gemini-2.0-flash"

// Narrator produces workout narrations using a Gemini API key. A Narrator
// with an empty APIKey is valid and always reports ShouldNarrate false, so
// callers don't need to special-case a missing key.
type Narrator struct {
	APIKey string
}

// ShouldNarrate reports whether narration should be attempted at all - the
// subscriber must be Athlete-tier and an API key must be configured.
// Narration is always skippable without affecting the core scoring result.
func (n Narrator) ShouldNarrate(s tier.Subscriber) bool {
	return n.APIKey != "" && tier.CanNarrate(s)
}

// Narrate asks Gemini for a two-to-three sentence summary of the workout.
// Any failure - missing key, client error, empty response - is reported
// through the error return so the caller can log and move on; it is never
// appropriate to fail a scoring request because narration failed.
func (n Narrator) Narrate(ctx context.Context, profile scoring.HealthProfile, result scoring.ScoringResult) (string, error) {
	if n.APIKey == "" {
		return "", fmt.Errorf("narrator: no API key configured")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(n.APIKey))
	if err != nil {
		return "", fmt.Errorf("narrator: create genai client: %w", err)
	}
	defer client.Close()

	gm := client.GenerativeModel(model)
	gm.SetTemperature(0.8)
	gm.SetTopP(0.9)
	gm.SetMaxOutputTokens(200)

	resp, err := gm.GenerateContent(ctx, genai.Text(buildPrompt(profile, result)))
	if err != nil {
		return "", fmt.Errorf("narrator: generate content: %w", err)
	}

	text := extractText(resp)
	if text == "" {
		return "", fmt.Errorf("narrator: empty response")
	}
	return text, nil
}

// NarrateBestEffort wraps Narrate for callers that want the deferred,
// failure-tolerant shape the scoring pipeline actually needs: a blank
// narration plus a logged warning instead of a propagated error.
func (n Narrator) NarrateBestEffort(ctx context.Context, logger *slog.Logger, profile scoring.HealthProfile, result scoring.ScoringResult) string {
	text, err := n.Narrate(ctx, profile, result)
	if err != nil {
		logger.Warn("narrator: skipping narration", "error", err)
		return ""
	}
	return text
}

func buildPrompt(profile scoring.HealthProfile, result scoring.ScoringResult) string {
	zones := ""
	for _, z := range result.ZoneBreakdown {
		zones += fmt.Sprintf("%s zone: %.1f minutes. ", z.Zone, z.Minutes)
	}
	return fmt.Sprintf(
		"Write a short, encouraging two to three sentence summary of this workout for an athlete. "+
			"Stamina points gained: %.1f. Strength points gained: %.1f. %s"+
			"Do not invent numbers not given here. Age: %d.",
		result.StaminaGained, result.StrengthGained, zones, profile.Age,
	)
}

func extractText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}

	out := ""
	for _, part := range resp.Candidates[0].Content.Parts {
		if t, ok := part.(genai.Text); ok {
			out += string(t)
		}
	}
	return out
}
