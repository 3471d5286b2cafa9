package auth

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/sakif/account-service/internal/apperror"
	"github.com/sakif/account-service/internal/repository"
)

// contextKey is an unexported type for context keys in this package, so
// no other package can read or shadow the authenticated identity.
type contextKey string

const userIDKey contextKey = "userID"

// Basic is a middleware enforcing HTTP Basic authentication on protected
// routes. It decodes the Authorization header, looks the identity up in
// the account store, verifies the password against the stored bcrypt
// hash, and places the verified user_id in the request context.
//
// Every rejection path — missing header, malformed credentials, unknown
// user, wrong password, even a store fault — produces the byte-identical
// 401 body. A caller must not be able to probe which user_ids exist.
func Basic(accounts repository.AccountRepository, passwords *PasswordService, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, password, ok := r.BasicAuth()
			if !ok || userID == "" || password == "" {
				unauthorized(w)
				return
			}

			account, err := accounts.FindByID(r.Context(), userID)
			if err != nil {
				// A store fault is worth logging; an unknown user is not.
				if !errors.Is(err, apperror.ErrNotFound) {
					logger.Error("auth lookup failed", slog.String("error", err.Error()))
				}
				unauthorized(w)
				return
			}

			if err := passwords.Verify(account.PasswordHash, password); err != nil {
				unauthorized(w)
				return
			}

			ctx := context.WithValue(r.Context(), userIDKey, account.UserID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserIDFromContext retrieves the authenticated user_id from the request
// context. Returns ("", false) if the request did not pass Basic.
func UserIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(userIDKey).(string)
	return id, ok && id != ""
}

// unauthorized writes the single generic authentication failure response.
func unauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	w.Write([]byte(`{"message":"Authentication failed"}` + "\n"))
}
