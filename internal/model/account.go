// Package model defines the data structures used throughout the application.
package model

import "database/sql"

// Account is the single persisted entity: one row in the accounts table.
//
// WHY Comment sql.NullString (not string)?
// An absent comment and an empty comment are different things for this API:
// NULL means "not shown" and is omitted from responses entirely, while a
// non-NULL value is always emitted. sql.NullString keeps that distinction
// visible in both directions of the database round trip.
//
// Nickname is never NULL — it falls back to UserID at signup and is reset
// to UserID when a client submits an empty nickname on update.
type Account struct {
	UserID       string         `db:"user_id"`  // primary key, immutable after signup
	PasswordHash string         `db:"password"` // bcrypt hash, never exposed
	Nickname     string         `db:"nickname"`
	Comment      sql.NullString `db:"comment"`
}

// Profile is the public-facing view of an account. The comment key is
// omitted from the JSON entirely when the stored value is NULL.
type Profile struct {
	UserID   string  `json:"user_id"`
	Nickname string  `json:"nickname"`
	Comment  *string `json:"comment,omitempty"`
}

// Profile converts the account to its public view.
func (a *Account) Profile() Profile {
	p := Profile{
		UserID:   a.UserID,
		Nickname: a.Nickname,
	}
	if a.Comment.Valid {
		c := a.Comment.String
		p.Comment = &c
	}
	return p
}
