// Package api exposes the Printee REST surface: identity bootstrap, coin
// purchases, and the document upload/print/delete lifecycle.
package api

import (
	"errors"
	"net/http"

	"github.com/goccy/go-json"

	"github.com/printee/printee/internal/common"
	"github.com/printee/printee/internal/models"
)

// documentResponse projects a Document for API responses. Status is a
// presentation-only marker ("printed" after a successful print); it is not
// part of the stored entity.
type documentResponse struct {
	*models.Document
	Status string `json:"status,omitempty"`
}

type errorResponse struct {
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Message: message})
}

// writeMappedError translates core failures into client-facing rejections
// with stable messages. Unrecognized errors become opaque 500s so internal
// detail never leaks.
func writeMappedError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, common.ErrNotFound):
		writeError(w, http.StatusBadRequest, "Document not found")
	case errors.Is(err, common.ErrInsufficientFunds):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, common.ErrInvalidAmount):
		writeError(w, http.StatusBadRequest, "Amount must be positive")
	case errors.Is(err, common.ErrUserNotFound):
		writeError(w, http.StatusBadRequest, "User not found")
	case errors.Is(err, common.ErrUserInactive):
		writeError(w, http.StatusBadRequest, "User is inactive")
	case errors.Is(err, common.ErrPaymentNotCompleted):
		writeError(w, http.StatusBadRequest, "Payment not completed")
	case errors.Is(err, common.ErrAlreadyPrinted):
		writeError(w, http.StatusConflict, "Document already printed")
	case errors.Is(err, common.ErrStorage):
		writeError(w, http.StatusBadRequest, "Error deleting file")
	case errors.Is(err, common.ErrUnauthorized), errors.Is(err, common.ErrInvalidToken):
		writeError(w, http.StatusUnauthorized, "Unauthorized")
	default:
		writeError(w, http.StatusInternalServerError, "Internal error")
	}
}
