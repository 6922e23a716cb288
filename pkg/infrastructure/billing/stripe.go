// Package billing looks up a subscriber's Stripe subscription status and
// translates it into pkg/domain/tier.Subscriber, the input to the
// Athlete/Hobbyist gating decisions around narration and effort-trend.
// Grounded on the stripe_customer_id field the teacher's Firestore user
// converter already carries (pkg/storage/firestore/converters.go) - that
// field was declared in the teacher's go.mod but never exercised by its own
// source; this is where it gets wired to an actual Stripe API call.
package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"

	"github.com/fitglue/zonecore/pkg/domain/tier"
)

// AthletePriceID is the Stripe Price identifying the Athlete-tier plan.
// Any other active price on the subscription resolves to Hobbyist.
var AthletePriceID string

// Client wraps the Stripe API client with the one lookup zonecore needs.
type Client struct {
	api *client.API
}

func NewClient(secretKey string) *Client {
	api := &client.API{}
	api.Init(secretKey, nil)
	return &Client{api: api}
}

// LookupSubscriber fetches a subscriber's active Stripe subscription (if
// any) and converts it into a tier.Subscriber. A customer with no
// subscription resolves to a Hobbyist tier.Subscriber, not an error.
func (c *Client) LookupSubscriber(ctx context.Context, stripeCustomerID string, isAdmin bool) (tier.Subscriber, error) {
	if stripeCustomerID == "" {
		return tier.Subscriber{IsAdmin: isAdmin}, nil
	}

	params := &stripe.SubscriptionListParams{
		Customer: stripe.String(stripeCustomerID),
	}
	params.Filters.AddFilter("limit", "", "1")

	iter := c.api.Subscriptions.List(params)
	if !iter.Next() {
		if err := iter.Err(); err != nil {
			return tier.Subscriber{}, fmt.Errorf("billing: list subscriptions for %s: %w", stripeCustomerID, err)
		}
		return tier.Subscriber{IsAdmin: isAdmin}, nil
	}

	sub := iter.Subscription()
	isAthletePrice := false
	for _, item := range sub.Items.Data {
		if item.Price != nil && item.Price.ID == AthletePriceID {
			isAthletePrice = true
			break
		}
	}

	var trialEndsAt *int64
	if sub.TrialEnd > 0 {
		trialEndsAt = &sub.TrialEnd
	}

	result := tier.Subscriber{
		IsAdmin:              isAdmin,
		StripeStatus:         string(sub.Status),
		StripePriceIsAthlete: isAthletePrice,
	}
	if trialEndsAt != nil {
		t := time.Unix(*trialEndsAt, 0)
		result.TrialEndsAt = &t
	}
	return result, nil
}
