// Package firestore implements zonecore's ProfileStore and ResultStore
// against Cloud Firestore: one document per subscriber under the profiles
// collection, one document per scored workout under scoring_results, and a
// single rolling-history document per subscriber under effort_history, all
// top-level collections read and written with Doc(id).Get/Set.
package firestore

import (
	"context"
	"fmt"
	"strings"
	"time"

	"cloud.google.com/go/firestore"

	zonecore "github.com/fitglue/zonecore/pkg"
	"github.com/fitglue/zonecore/pkg/domain/efforttrend"
	"github.com/fitglue/zonecore/pkg/domain/scoring"
)

// Adapter implements zonecore.ProfileStore and zonecore.ResultStore.
type Adapter struct {
	Client *firestore.Client
}

func NewAdapter(client *firestore.Client) *Adapter {
	return &Adapter{Client: client}
}

func (a *Adapter) profiles() *firestore.CollectionRef {
	return a.Client.Collection(zonecore.CollectionProfiles)
}

func (a *Adapter) results() *firestore.CollectionRef {
	return a.Client.Collection(zonecore.CollectionResults)
}

func (a *Adapter) effortHistory() *firestore.CollectionRef {
	return a.Client.Collection(zonecore.CollectionEffortData)
}

// GetProfile retrieves a subscriber's health profile. A missing document is
// not an error - new subscribers are scored with the schema's field
// defaults (spec §3).
func (a *Adapter) GetProfile(ctx context.Context, userID string) (scoring.HealthProfile, error) {
	doc, err := a.profiles().Doc(userID).Get(ctx)
	if err != nil {
		if isNotFoundError(err) {
			return scoring.HealthProfile{}, nil
		}
		return scoring.HealthProfile{}, fmt.Errorf("firestore: get profile %s: %w", userID, err)
	}

	var stored profileDoc
	if err := doc.DataTo(&stored); err != nil {
		return scoring.HealthProfile{}, fmt.Errorf("firestore: decode profile %s: %w", userID, err)
	}
	return stored.toHealthProfile(), nil
}

// GetEffortHistory retrieves the rolling stamina_gained history used by
// pkg/domain/efforttrend. A missing document returns an empty history, not
// an error.
func (a *Adapter) GetEffortHistory(ctx context.Context, userID string) ([]efforttrend.Snapshot, error) {
	doc, err := a.effortHistory().Doc(userID).Get(ctx)
	if err != nil {
		if isNotFoundError(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("firestore: get effort history %s: %w", userID, err)
	}

	var stored effortHistoryDoc
	if err := doc.DataTo(&stored); err != nil {
		return nil, fmt.Errorf("firestore: decode effort history %s: %w", userID, err)
	}
	return stored.Snapshots, nil
}

// SaveEffortHistory persists the (already trimmed) rolling history.
func (a *Adapter) SaveEffortHistory(ctx context.Context, userID string, history []efforttrend.Snapshot) error {
	_, err := a.effortHistory().Doc(userID).Set(ctx, effortHistoryDoc{
		Snapshots:   history,
		LastUpdated: time.Now(),
	})
	if err != nil {
		return fmt.Errorf("firestore: save effort history %s: %w", userID, err)
	}
	return nil
}

// SaveScoringResult persists a scored workout, keyed by workoutID.
func (a *Adapter) SaveScoringResult(ctx context.Context, userID, workoutID string, result scoring.ScoringResult) error {
	doc := scoringResultDoc{
		UserID:         userID,
		StaminaGained:  result.StaminaGained,
		StrengthGained: result.StrengthGained,
		ZoneBreakdown:  make([]zoneEntryDoc, len(result.ZoneBreakdown)),
		ScoredAt:       time.Now(),
	}
	for i, e := range result.ZoneBreakdown {
		doc.ZoneBreakdown[i] = zoneEntryDoc{
			Zone:           e.Zone.String(),
			Minutes:        e.Minutes,
			StaminaGained:  e.StaminaGained,
			StrengthGained: e.StrengthGained,
			HRMin:          e.HRMin,
			HRMax:          e.HRMax,
		}
	}

	_, err := a.results().Doc(workoutID).Set(ctx, doc)
	if err != nil {
		return fmt.Errorf("firestore: save scoring result %s: %w", workoutID, err)
	}
	return nil
}

func isNotFoundError(err error) bool {
	if err == nil {
		return false
	}
	s := err.Error()
	return strings.Contains(s, "NotFound") || strings.Contains(s, "not found")
}
