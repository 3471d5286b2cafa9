package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/sakif/account-service/internal/apperror"
	"github.com/sakif/account-service/internal/model"
	"github.com/sakif/account-service/internal/repository"
)

// newTestDB returns a DB backed by an in-memory SQLite database that is
// torn down with the test.
func newTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := New(":memory:", time.Second)
	if err != nil {
		t.Fatalf("creating test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

// insertTestAccount inserts an account and fails the test on error.
func insertTestAccount(t *testing.T, db *DB, userID string) *model.Account {
	t.Helper()
	account := &model.Account{
		UserID:       userID,
		PasswordHash: "$2a$04$notarealhashbutlongenough",
		Nickname:     userID,
	}
	if err := db.Insert(context.Background(), account); err != nil {
		t.Fatalf("inserting test account: %v", err)
	}
	return account
}

func strPtr(s string) *string { return &s }

func TestInsertAndFindByID(t *testing.T) {
	db := newTestDB(t)

	insertTestAccount(t, db, "TaroYamada")

	got, err := db.FindByID(context.Background(), "TaroYamada")
	if err != nil {
		t.Fatalf("FindByID() error = %v", err)
	}
	if got.UserID != "TaroYamada" {
		t.Errorf("UserID = %q, want %q", got.UserID, "TaroYamada")
	}
	if got.Nickname != "TaroYamada" {
		t.Errorf("Nickname = %q, want %q", got.Nickname, "TaroYamada")
	}
	if got.Comment.Valid {
		t.Errorf("Comment should be NULL for a fresh account, got %q", got.Comment.String)
	}
}

func TestFindByID_Missing(t *testing.T) {
	db := newTestDB(t)

	_, err := db.FindByID(context.Background(), "NoSuchUser1")
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Fatalf("FindByID() error = %v, want ErrNotFound", err)
	}
}

func TestInsert_DuplicateUserID(t *testing.T) {
	db := newTestDB(t)

	insertTestAccount(t, db, "TaroYamada")

	duplicate := &model.Account{
		UserID:       "TaroYamada",
		PasswordHash: "$2a$04$differenthash",
		Nickname:     "TaroYamada",
	}
	err := db.Insert(context.Background(), duplicate)
	if !errors.Is(err, apperror.ErrDuplicateKey) {
		t.Fatalf("Insert() error = %v, want ErrDuplicateKey", err)
	}
}

func TestUpdateFields_NicknameOnly(t *testing.T) {
	db := newTestDB(t)

	insertTestAccount(t, db, "TaroYamada")

	err := db.UpdateFields(context.Background(), "TaroYamada", repository.AccountUpdate{
		Nickname: strPtr("たろー"),
	})
	if err != nil {
		t.Fatalf("UpdateFields() error = %v", err)
	}

	got, err := db.FindByID(context.Background(), "TaroYamada")
	if err != nil {
		t.Fatalf("FindByID() error = %v", err)
	}
	if got.Nickname != "たろー" {
		t.Errorf("Nickname = %q, want %q", got.Nickname, "たろー")
	}
	if got.Comment.Valid {
		t.Error("Comment should be untouched (NULL)")
	}
}

func TestUpdateFields_CommentSetAndClear(t *testing.T) {
	db := newTestDB(t)

	insertTestAccount(t, db, "TaroYamada")

	set := sql.NullString{String: "僕は元気です", Valid: true}
	if err := db.UpdateFields(context.Background(), "TaroYamada", repository.AccountUpdate{
		Comment: &set,
	}); err != nil {
		t.Fatalf("UpdateFields() error = %v", err)
	}

	got, _ := db.FindByID(context.Background(), "TaroYamada")
	if !got.Comment.Valid || got.Comment.String != "僕は元気です" {
		t.Fatalf("Comment = %+v, want set value", got.Comment)
	}
	if got.Nickname != "TaroYamada" {
		t.Errorf("Nickname should be untouched, got %q", got.Nickname)
	}

	cleared := sql.NullString{}
	if err := db.UpdateFields(context.Background(), "TaroYamada", repository.AccountUpdate{
		Comment: &cleared,
	}); err != nil {
		t.Fatalf("UpdateFields() error = %v", err)
	}

	got, _ = db.FindByID(context.Background(), "TaroYamada")
	if got.Comment.Valid {
		t.Errorf("Comment should be NULL after clearing, got %q", got.Comment.String)
	}
}

func TestUpdateFields_EmptyUpdateIsNoOp(t *testing.T) {
	db := newTestDB(t)

	insertTestAccount(t, db, "TaroYamada")

	if err := db.UpdateFields(context.Background(), "TaroYamada", repository.AccountUpdate{}); err != nil {
		t.Fatalf("UpdateFields() error = %v", err)
	}

	got, _ := db.FindByID(context.Background(), "TaroYamada")
	if got.Nickname != "TaroYamada" || got.Comment.Valid {
		t.Errorf("account changed by empty update: %+v", got)
	}
}

func TestDelete_Idempotent(t *testing.T) {
	db := newTestDB(t)

	insertTestAccount(t, db, "TaroYamada")

	if err := db.Delete(context.Background(), "TaroYamada"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	_, err := db.FindByID(context.Background(), "TaroYamada")
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Fatalf("FindByID() after delete error = %v, want ErrNotFound", err)
	}

	// Deleting again must still succeed.
	if err := db.Delete(context.Background(), "TaroYamada"); err != nil {
		t.Fatalf("second Delete() error = %v", err)
	}
}
