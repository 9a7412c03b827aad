package api

import (
	"net/http"

	"github.com/goccy/go-json"

	"github.com/printee/printee/internal/models"
)

type createUserRequest struct {
	ExternalID string `json:"externalId"`
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	Email      string `json:"email"`
}

type createUserResponse struct {
	User  *models.User `json:"user"`
	Token string       `json:"token"`
}

// CreateUser resolves the external identity to an internal account,
// creating it on first sight, and issues a session token.
func (s *Server) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.ExternalID == "" {
		writeError(w, http.StatusBadRequest, "externalId is required")
		return
	}

	user, token, err := s.identity.ResolveOrCreate(r.Context(), req.ExternalID, models.Profile{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
	})
	if err != nil {
		s.logger.Error(r.Context(), "resolve user failed", "error", err)
		writeMappedError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, createUserResponse{User: user, Token: token})
}

// CurrentUser returns the authenticated user, balance included.
func (s *Server) CurrentUser(w http.ResponseWriter, r *http.Request) {
	claims := sessionClaims(r.Context())

	user, err := s.identity.Get(r.Context(), claims.UserID)
	if err != nil {
		writeMappedError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, user)
}

type createPaymentIntentRequest struct {
	Amount int64 `json:"amount"`
}

type createPaymentIntentResponse struct {
	ClientSecret string `json:"clientSecret"`
}

// CreatePaymentIntent starts a coin purchase and returns the client secret
// for finishing the card flow.
func (s *Server) CreatePaymentIntent(w http.ResponseWriter, r *http.Request) {
	claims := sessionClaims(r.Context())

	var req createPaymentIntentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	clientSecret, err := s.payments.Initiate(r.Context(), claims.UserID, req.Amount)
	if err != nil {
		s.logger.Error(r.Context(), "create payment intent failed", "error", err, "user_id", claims.UserID)
		writeMappedError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, createPaymentIntentResponse{ClientSecret: clientSecret})
}

type confirmPaymentRequest struct {
	PaymentIntentID string `json:"paymentIntentId"`
}

type confirmPaymentResponse struct {
	Coins int64 `json:"coins"`
}

// ConfirmPayment credits the purchased coins once the processor reports the
// payment succeeded. Safe to retry: a repeated confirm returns the balance
// without crediting again.
func (s *Server) ConfirmPayment(w http.ResponseWriter, r *http.Request) {
	var req confirmPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.PaymentIntentID == "" {
		writeError(w, http.StatusBadRequest, "paymentIntentId is required")
		return
	}

	coins, err := s.payments.Confirm(r.Context(), req.PaymentIntentID)
	if err != nil {
		s.logger.Error(r.Context(), "confirm payment failed", "error", err, "payment_intent_id", req.PaymentIntentID)
		writeMappedError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, confirmPaymentResponse{Coins: coins})
}
