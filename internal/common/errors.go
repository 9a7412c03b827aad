// Package common defines shared sentinel errors used across Printee
// components. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors. ErrNotFound covers both a missing entity and
	// an ownership mismatch so existence of other users' documents never
	// leaks through error shapes.
	ErrNotFound = errors.New("not found")

	// Ledger errors.
	ErrInvalidAmount     = errors.New("amount must be positive")
	ErrInsufficientFunds = errors.New("insufficient coins")
	ErrUserNotFound      = errors.New("user not found")

	// Identity errors.
	ErrUserInactive = errors.New("user is inactive")
	ErrInvalidToken = errors.New("invalid token")
	ErrUnauthorized = errors.New("unauthorized")

	// Payment errors.
	ErrPaymentNotCompleted = errors.New("payment not completed")

	// Document errors.
	ErrAlreadyPrinted = errors.New("document already printed")
	ErrStorage        = errors.New("storage error")

	// Generic/internal flow control.
	ErrInternal = errors.New("internal error")
)
