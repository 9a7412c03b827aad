// Package processor abstracts the external card-payment provider. The core
// only needs two operations: create a trackable payment intent carrying
// correlation metadata, and retrieve its current status.
package processor

import "context"

// StatusSucceeded is the provider's terminal success state. Only intents in
// this state may be credited.
const StatusSucceeded = "succeeded"

// Intent is the provider's view of an in-progress card charge, reduced to
// the fields the core cares about. UserID and Coins round-trip through the
// provider as opaque correlation metadata.
type Intent struct {
	ID           string
	ClientSecret string
	Status       string
	UserID       int64
	Coins        int64
}

// Processor creates and retrieves payment intents. Communication failures
// are surfaced, not retried; retry policy belongs to the transport layer.
type Processor interface {
	CreateIntent(ctx context.Context, userID int64, coins int64) (*Intent, error)
	RetrieveIntent(ctx context.Context, id string) (*Intent, error)
}
