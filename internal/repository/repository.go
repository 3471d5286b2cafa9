package repository

import (
	"context"
	"database/sql"

	"github.com/sakif/account-service/internal/model"
)

// AccountUpdate describes a partial update. A nil field is left unchanged.
//
// Comment is a *sql.NullString rather than a *string so all three states
// are explicit: nil leaves the column alone, Valid=false sets it to NULL,
// Valid=true sets the value. Nickname never goes to NULL (it falls back to
// user_id before reaching the repository), so a plain *string suffices.
type AccountUpdate struct {
	Nickname *string
	Comment  *sql.NullString
}

// AccountRepository is the persistence contract for accounts.
type AccountRepository interface {
	// FindByID returns the account with the given user_id, or an error
	// wrapping apperror.ErrNotFound.
	FindByID(ctx context.Context, id string) (*model.Account, error)

	// Insert stores a new account. Returns an error wrapping
	// apperror.ErrDuplicateKey if the user_id is already taken.
	Insert(ctx context.Context, account *model.Account) error

	// UpdateFields applies a partial update; only the supplied fields
	// change. A fully-nil update is a no-op.
	UpdateFields(ctx context.Context, id string, update AccountUpdate) error

	// Delete removes the account. Idempotent: deleting a missing
	// account is not an error.
	Delete(ctx context.Context, id string) error
}
