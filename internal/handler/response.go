package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/sakif/account-service/internal/apperror"
)

// errorResponse is the standard error body: a fixed message per
// status/operation, plus a cause only for validation and duplicate-key
// failures.
type errorResponse struct {
	Message string `json:"message"`
	Cause   string `json:"cause,omitempty"`
}

// writeJSON sends a JSON response with the given status code. Headers and
// status must be written before the body — Encode sends the headers on
// its first write.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			slog.Error("failed to encode JSON response", slog.String("error", err.Error()))
		}
	}
}

// writeError maps a domain error to its HTTP status code and fixed
// message. failMessage is the operation-specific 400 message ("Account
// creation failed", "User updation failed", ...) used for validation and
// duplicate-key errors; every other kind has one fixed body.
//
// Unexpected errors never leak internals: they are logged server-side
// and the client sees only the generic 500 body.
func writeError(w http.ResponseWriter, logger *slog.Logger, err error, failMessage string) {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		switch {
		case errors.Is(err, apperror.ErrValidation), errors.Is(err, apperror.ErrDuplicateKey):
			writeJSON(w, http.StatusBadRequest, errorResponse{
				Message: failMessage,
				Cause:   appErr.Cause,
			})
			return
		case errors.Is(err, apperror.ErrAuthentication):
			writeJSON(w, http.StatusUnauthorized, errorResponse{Message: "Authentication failed"})
			return
		case errors.Is(err, apperror.ErrForbidden):
			writeJSON(w, http.StatusForbidden, errorResponse{Message: "No permission for update"})
			return
		case errors.Is(err, apperror.ErrNotFound):
			writeJSON(w, http.StatusNotFound, errorResponse{Message: "No user found"})
			return
		}
	}

	logger.Error("internal error", slog.String("error", err.Error()))
	writeJSON(w, http.StatusInternalServerError, errorResponse{Message: "Internal server error"})
}
