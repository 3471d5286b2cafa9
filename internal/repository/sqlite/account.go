package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/sakif/account-service/internal/apperror"
	"github.com/sakif/account-service/internal/model"
	"github.com/sakif/account-service/internal/repository"
)

// compile-time check that *DB implements repository.AccountRepository
var _ repository.AccountRepository = (*DB)(nil)

// FindByID retrieves an account by user_id.
// Returns apperror.NotFound if no account exists with that id.
func (db *DB) FindByID(ctx context.Context, id string) (*model.Account, error) {
	ctx, cancel := db.withTimeout(ctx)
	defer cancel()

	var a model.Account
	err := db.conn.QueryRowContext(ctx,
		`SELECT user_id, password, nickname, comment FROM accounts WHERE user_id = ?`,
		id,
	).Scan(&a.UserID, &a.PasswordHash, &a.Nickname, &a.Comment)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.NotFound()
		}
		return nil, fmt.Errorf("sqlite: finding account %s: %w", id, err)
	}

	return &a, nil
}

// Insert stores a new account. The primary key constraint on user_id maps
// to apperror.DuplicateKey, which makes the constraint — not any prior
// existence check — the authority on uniqueness under concurrent signups.
func (db *DB) Insert(ctx context.Context, account *model.Account) error {
	ctx, cancel := db.withTimeout(ctx)
	defer cancel()

	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO accounts (user_id, password, nickname, comment) VALUES (?, ?, ?, ?)`,
		account.UserID,
		account.PasswordHash,
		account.Nickname,
		account.Comment,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperror.DuplicateKey()
		}
		return fmt.Errorf("sqlite: inserting account %s: %w", account.UserID, err)
	}

	return nil
}

// UpdateFields applies a partial update; only non-nil fields change.
func (db *DB) UpdateFields(ctx context.Context, id string, update repository.AccountUpdate) error {
	var sets []string
	var args []any

	if update.Nickname != nil {
		sets = append(sets, "nickname = ?")
		args = append(args, *update.Nickname)
	}
	if update.Comment != nil {
		sets = append(sets, "comment = ?")
		args = append(args, *update.Comment)
	}
	if len(sets) == 0 {
		return nil
	}

	ctx, cancel := db.withTimeout(ctx)
	defer cancel()

	args = append(args, id)
	query := fmt.Sprintf(`UPDATE accounts SET %s WHERE user_id = ?`, strings.Join(sets, ", "))
	if _, err := db.conn.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("sqlite: updating account %s: %w", id, err)
	}

	return nil
}

// Delete removes an account. Deleting a missing account is a no-op.
func (db *DB) Delete(ctx context.Context, id string) error {
	ctx, cancel := db.withTimeout(ctx)
	defer cancel()

	if _, err := db.conn.ExecContext(ctx,
		`DELETE FROM accounts WHERE user_id = ?`, id,
	); err != nil {
		return fmt.Errorf("sqlite: deleting account %s: %w", id, err)
	}

	return nil
}

// isUniqueViolation reports whether err is a SQLite UNIQUE/PRIMARY KEY
// constraint failure. modernc.org/sqlite does not export a stable typed
// error for this, so we match the message the way the driver's own tests
// do.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
