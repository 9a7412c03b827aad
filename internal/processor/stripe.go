package processor

import (
	"context"
	"fmt"
	"strconv"

	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/client"
)

// One coin costs one major currency unit; Stripe prices in minor units.
const minorUnitsPerCoin = 100

const (
	metadataUserID = "userId"
	metadataCoins  = "coins"
)

// StripeProcessor implements Processor against the Stripe PaymentIntents API.
type StripeProcessor struct {
	api      *client.API
	currency string
}

// NewStripeProcessor builds a processor from a secret API key and an ISO
// currency code.
func NewStripeProcessor(secretKey, currency string) *StripeProcessor {
	api := &client.API{}
	api.Init(secretKey, nil)
	return &StripeProcessor{api: api, currency: currency}
}

func (p *StripeProcessor) CreateIntent(ctx context.Context, userID int64, coins int64) (*Intent, error) {
	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(coins * minorUnitsPerCoin),
		Currency: stripe.String(p.currency),
	}
	params.Context = ctx
	params.AddMetadata(metadataUserID, strconv.FormatInt(userID, 10))
	params.AddMetadata(metadataCoins, strconv.FormatInt(coins, 10))

	pi, err := p.api.PaymentIntents.New(params)
	if err != nil {
		return nil, fmt.Errorf("stripe create intent error: %w", err)
	}

	return &Intent{
		ID:           pi.ID,
		ClientSecret: pi.ClientSecret,
		Status:       string(pi.Status),
		UserID:       userID,
		Coins:        coins,
	}, nil
}

func (p *StripeProcessor) RetrieveIntent(ctx context.Context, id string) (*Intent, error) {
	params := &stripe.PaymentIntentParams{}
	params.Context = ctx

	pi, err := p.api.PaymentIntents.Get(id, params)
	if err != nil {
		return nil, fmt.Errorf("stripe retrieve intent error: %w", err)
	}

	userID, err := strconv.ParseInt(pi.Metadata[metadataUserID], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("intent %s has invalid user metadata: %w", id, err)
	}
	coins, err := strconv.ParseInt(pi.Metadata[metadataCoins], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("intent %s has invalid coins metadata: %w", id, err)
	}

	return &Intent{
		ID:           pi.ID,
		ClientSecret: pi.ClientSecret,
		Status:       string(pi.Status),
		UserID:       userID,
		Coins:        coins,
	}, nil
}
