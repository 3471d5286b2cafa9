// Package service contains the business logic layer of the application.
//
// AccountService sits between the HTTP handlers and the repository:
//
//	AccountHandler (HTTP) → AccountService (rules) → AccountRepository (DB)
//
// The service accepts primitives and returns domain errors from the
// apperror package; it knows nothing about HTTP status codes or JSON.
package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/sakif/account-service/internal/apperror"
	"github.com/sakif/account-service/internal/auth"
	"github.com/sakif/account-service/internal/model"
	"github.com/sakif/account-service/internal/repository"
	"github.com/sakif/account-service/internal/validator"
)

// AccountService handles signup, profile read/update, and account close.
type AccountService struct {
	accounts  repository.AccountRepository
	passwords *auth.PasswordService
	logger    *slog.Logger
}

// NewAccountService creates an AccountService with all dependencies
// injected. The caller decides which repository implementation to use
// (SQLite in production, a mock in tests).
func NewAccountService(accounts repository.AccountRepository, passwords *auth.PasswordService, logger *slog.Logger) *AccountService {
	return &AccountService{
		accounts:  accounts,
		passwords: passwords,
		logger:    logger,
	}
}

// ProfileUpdate is the decoded PATCH payload. Pointer fields distinguish
// "absent" from "present but empty" — the two mean different things here:
// an absent nickname is left alone, an empty one resets to user_id.
// UserID and Password are carried only so the service can reject attempts
// to change immutable fields.
type ProfileUpdate struct {
	UserID   *string
	Password *string
	Nickname *string
	Comment  *string
}

// Signup validates the credentials, hashes the password, and creates the
// account with nickname seeded from user_id.
//
// The existence pre-check mirrors the lookup the original service did,
// but the primary key constraint remains the authority: two concurrent
// signups for the same user_id both surface as DuplicateKey.
func (s *AccountService) Signup(ctx context.Context, userID, password string) (*model.Account, error) {
	if err := validator.UserID(userID); err != nil {
		return nil, err
	}
	if err := validator.Password(password); err != nil {
		return nil, err
	}

	_, err := s.accounts.FindByID(ctx, userID)
	if err == nil {
		return nil, apperror.DuplicateKey()
	}
	if !errors.Is(err, apperror.ErrNotFound) {
		return nil, fmt.Errorf("checking existing account %s: %w", userID, err)
	}

	hash, err := s.passwords.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	account := &model.Account{
		UserID:       userID,
		PasswordHash: hash,
		Nickname:     userID,
	}
	if err := s.accounts.Insert(ctx, account); err != nil {
		if errors.Is(err, apperror.ErrDuplicateKey) {
			return nil, err
		}
		s.logger.Error("failed to insert account",
			slog.String("userID", userID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("inserting account: %w", err)
	}

	s.logger.Info("account created", slog.String("userID", userID))

	return account, nil
}

// GetProfile returns the account for the requested user_id.
// Returns a validation error for a malformed id and NotFound for a
// missing account.
func (s *AccountService) GetProfile(ctx context.Context, userID string) (*model.Account, error) {
	if err := validator.UserID(userID); err != nil {
		return nil, err
	}

	account, err := s.accounts.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("fetching account %s: %w", userID, err)
	}

	return account, nil
}

// UpdateProfile applies a partial update to the caller's own account.
//
// Check order matters and is part of the contract: path id shape, then
// ownership, then immutable-field rejection, then the
// at-least-one-field rule, then per-field validation, then existence.
// An update either passes every check or mutates nothing.
func (s *AccountService) UpdateProfile(ctx context.Context, pathID, authID string, upd ProfileUpdate) (*model.Account, error) {
	if err := validator.UserID(pathID); err != nil {
		return nil, err
	}
	if authID != pathID {
		return nil, apperror.Forbidden()
	}
	if upd.UserID != nil || upd.Password != nil {
		return nil, apperror.ValidationFailed(validator.CauseImmutable)
	}
	if upd.Nickname == nil && upd.Comment == nil {
		return nil, apperror.ValidationFailed(validator.CauseNoFields)
	}
	if err := validator.Nickname(upd.Nickname); err != nil {
		return nil, err
	}
	if err := validator.Comment(upd.Comment); err != nil {
		return nil, err
	}

	if _, err := s.accounts.FindByID(ctx, pathID); err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("fetching account %s: %w", pathID, err)
	}

	var update repository.AccountUpdate
	if upd.Nickname != nil {
		nickname := *upd.Nickname
		if nickname == "" {
			// Empty nickname resets to the user_id.
			nickname = pathID
		}
		update.Nickname = &nickname
	}
	if upd.Comment != nil {
		// Empty comment clears the column to NULL.
		comment := sql.NullString{String: *upd.Comment, Valid: *upd.Comment != ""}
		update.Comment = &comment
	}

	if err := s.accounts.UpdateFields(ctx, pathID, update); err != nil {
		s.logger.Error("failed to update account",
			slog.String("userID", pathID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("updating account: %w", err)
	}

	s.logger.Info("account updated", slog.String("userID", pathID))

	// Re-read so the response reflects exactly what was persisted.
	account, err := s.accounts.FindByID(ctx, pathID)
	if err != nil {
		return nil, fmt.Errorf("re-reading account %s: %w", pathID, err)
	}

	return account, nil
}

// CloseAccount deletes the authenticated caller's own record. Idempotent:
// closing an already-removed account still reports success.
func (s *AccountService) CloseAccount(ctx context.Context, authID string) error {
	if err := s.accounts.Delete(ctx, authID); err != nil {
		s.logger.Error("failed to delete account",
			slog.String("userID", authID),
			slog.String("error", err.Error()),
		)
		return fmt.Errorf("deleting account: %w", err)
	}

	s.logger.Info("account closed", slog.String("userID", authID))
	return nil
}
