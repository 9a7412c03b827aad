// Package models contains the persistent entities of the Printee server.
package models

import "time"

// User is an account known to Printee. ExternalID references the identity
// provider's subject; Coins is the print balance and must never go negative.
// Users are never hard-deleted, only deactivated via IsActive.
type User struct {
	ID         int64     `json:"id"`
	ExternalID string    `json:"externalId"`
	FirstName  string    `json:"firstName"`
	LastName   string    `json:"lastName"`
	Email      string    `json:"email"`
	Coins      int64     `json:"coins"`
	IsActive   bool      `json:"isActive"`
	CreatedAt  time.Time `json:"createdAt"`
}

// Profile holds the identity-provider fields stored on first sight of a
// user. They are informational only; the core keys everything off
// ExternalID.
type Profile struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
}
