// Package validator contains the pure field validators for user-supplied
// input. Every function is deterministic and side-effect free: it takes a
// candidate value and returns nil or an apperror.ValidationFailed carrying
// the client-facing cause.
//
// Required fields are checked in a fixed priority order — presence, then
// length, then character class — and the first failure wins. Optional
// fields accept absence (a nil pointer) unconditionally.
package validator

import (
	"unicode/utf8"

	"github.com/sakif/account-service/internal/apperror"
)

// Client-facing causes. The exact strings are part of the API contract.
const (
	CauseRequired   = "Required user_id and password"
	CauseLength     = "Input length is incorrect"
	CausePattern    = "Incorrect character pattern"
	CauseFieldLimit = "String length limit exceeded or containing"
	CauseNoFields   = "Required nickname or comment"
	CauseImmutable  = "Not updatable user_id and password"
)

// Field length limits, matching the column widths of the accounts table.
const (
	UserIDMinLength   = 6
	UserIDMaxLength   = 20
	PasswordMinLength = 8
	PasswordMaxLength = 20
	NicknameMaxLength = 30
	CommentMaxLength  = 100
)

// UserID validates a user_id: required, 6-20 characters, ASCII alphanumeric.
func UserID(v string) error {
	if v == "" {
		return apperror.ValidationFailed(CauseRequired)
	}
	if n := utf8.RuneCountInString(v); n < UserIDMinLength || n > UserIDMaxLength {
		return apperror.ValidationFailed(CauseLength)
	}
	for _, r := range v {
		if !isAlphanumeric(r) {
			return apperror.ValidationFailed(CausePattern)
		}
	}
	return nil
}

// Password validates a password: required, 8-20 characters, printable
// ASCII excluding space (0x21-0x7E).
func Password(v string) error {
	if v == "" {
		return apperror.ValidationFailed(CauseRequired)
	}
	if n := utf8.RuneCountInString(v); n < PasswordMinLength || n > PasswordMaxLength {
		return apperror.ValidationFailed(CauseLength)
	}
	for _, r := range v {
		if r < 0x21 || r > 0x7e {
			return apperror.ValidationFailed(CausePattern)
		}
	}
	return nil
}

// Nickname validates an optional nickname: at most 30 characters, no
// control characters. A nil value (field absent) is always valid, as is
// the empty string (which means "reset to user_id" on update).
func Nickname(v *string) error {
	return optionalText(v, NicknameMaxLength)
}

// Comment validates an optional comment: at most 100 characters, no
// control characters. A nil value is always valid, as is the empty
// string (which means "clear the comment" on update).
func Comment(v *string) error {
	return optionalText(v, CommentMaxLength)
}

// optionalText enforces the shared rules for nickname and comment. Both
// report the same cause whether the length or the character class failed.
func optionalText(v *string, max int) error {
	if v == nil {
		return nil
	}
	if utf8.RuneCountInString(*v) > max {
		return apperror.ValidationFailed(CauseFieldLimit)
	}
	for _, r := range *v {
		if isControl(r) {
			return apperror.ValidationFailed(CauseFieldLimit)
		}
	}
	return nil
}

func isAlphanumeric(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}

// isControl reports whether r is an ASCII control character (0x00-0x1F or
// 0x7F). Characters above 0x7F are allowed in nickname and comment.
func isControl(r rune) bool {
	return r < 0x20 || r == 0x7f
}
