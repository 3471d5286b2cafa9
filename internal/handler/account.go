// Package handler contains the HTTP layer: request parsing, response
// formatting, and the mapping from domain errors to status codes. All
// business rules live in the service layer.
package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sakif/account-service/internal/apperror"
	"github.com/sakif/account-service/internal/auth"
	"github.com/sakif/account-service/internal/model"
	"github.com/sakif/account-service/internal/service"
)

// AccountHandler serves the account routes.
type AccountHandler struct {
	accounts *service.AccountService
	logger   *slog.Logger
}

// NewAccountHandler creates an AccountHandler.
func NewAccountHandler(accounts *service.AccountService, logger *slog.Logger) *AccountHandler {
	return &AccountHandler{accounts: accounts, logger: logger}
}

// userResponse is the success body shared by signup, get, and update.
type userResponse struct {
	Message string        `json:"message"`
	User    model.Profile `json:"user"`
}

// messageResponse is the success body for operations with no user payload.
type messageResponse struct {
	Message string `json:"message"`
}

// HandleHealth reports that the server is up.
//
// HTTP: GET /
func (h *AccountHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, struct {
		Status string `json:"status"`
	}{Status: "API server is running"})
}

// HandleSignup creates a new account.
//
// HTTP: POST /signup
// REQUEST BODY: {"user_id": "...", "password": "..."}
//
// A body that fails to decode is treated as an empty payload so the
// validators produce the canonical "Required user_id and password" cause
// rather than a JSON parser message.
func (h *AccountHandler) HandleSignup(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserID   string `json:"user_id"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("invalid signup JSON", slog.String("error", err.Error()))
	}

	account, err := h.accounts.Signup(r.Context(), req.UserID, req.Password)
	if err != nil {
		writeError(w, h.logger, err, "Account creation failed")
		return
	}

	writeJSON(w, http.StatusOK, userResponse{
		Message: "Account successfully created",
		User:    account.Profile(),
	})
}

// HandleGetUser returns the public profile for a user_id.
//
// HTTP: GET /users/{user_id}  (Basic auth)
//
// The comment key is omitted entirely when the stored comment is NULL —
// it is never emitted as null or as an empty string.
func (h *AccountHandler) HandleGetUser(w http.ResponseWriter, r *http.Request) {
	account, err := h.accounts.GetProfile(r.Context(), chi.URLParam(r, "user_id"))
	if err != nil {
		writeError(w, h.logger, err, "User details failed")
		return
	}

	writeJSON(w, http.StatusOK, userResponse{
		Message: "User details by user_id",
		User:    account.Profile(),
	})
}

// HandleUpdateUser applies a partial update to the caller's own profile.
//
// HTTP: PATCH /users/{user_id}  (Basic auth)
// REQUEST BODY: {"nickname"?: "...", "comment"?: "..."}
//
// Pointer fields keep "absent" distinct from "empty": an absent field is
// untouched, an empty nickname resets to user_id, an empty comment
// clears it.
func (h *AccountHandler) HandleUpdateUser(w http.ResponseWriter, r *http.Request) {
	authID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, h.logger, apperror.AuthenticationFailed(), "")
		return
	}

	var req struct {
		UserID   *string `json:"user_id"`
		Password *string `json:"password"`
		Nickname *string `json:"nickname"`
		Comment  *string `json:"comment"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("invalid update JSON", slog.String("error", err.Error()))
	}

	account, err := h.accounts.UpdateProfile(r.Context(), chi.URLParam(r, "user_id"), authID, service.ProfileUpdate{
		UserID:   req.UserID,
		Password: req.Password,
		Nickname: req.Nickname,
		Comment:  req.Comment,
	})
	if err != nil {
		writeError(w, h.logger, err, "User updation failed")
		return
	}

	writeJSON(w, http.StatusOK, userResponse{
		Message: "User successfully updated",
		User:    account.Profile(),
	})
}

// HandleClose deletes the caller's own account.
//
// HTTP: POST /close  (Basic auth)
//
// Always reports success — deleting an already-removed account is a
// no-op.
func (h *AccountHandler) HandleClose(w http.ResponseWriter, r *http.Request) {
	authID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, h.logger, apperror.AuthenticationFailed(), "")
		return
	}

	if err := h.accounts.CloseAccount(r.Context(), authID); err != nil {
		writeError(w, h.logger, err, "")
		return
	}

	writeJSON(w, http.StatusOK, messageResponse{
		Message: "Account and user successfully removed",
	})
}
