package apperror

import "errors"

var (
	ErrValidation     = errors.New("validation failed")
	ErrAuthentication = errors.New("authentication failed")
	ErrForbidden      = errors.New("forbidden")
	ErrNotFound       = errors.New("not found")
	ErrDuplicateKey   = errors.New("duplicate key")
)

// AppError is a typed application error. Cause carries the client-facing
// explanation and is only ever surfaced for validation and duplicate-key
// failures — authentication failures stay deliberately generic so that
// "unknown user" and "wrong password" are indistinguishable to a caller.
type AppError struct {
	Err   error  // sentinel, checked with errors.Is
	Cause string // client-facing cause (validation/duplicate only)
}

func (e *AppError) Error() string {
	if e.Cause != "" {
		return e.Cause
	}
	return e.Err.Error()
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// ValidationFailed returns an AppError for a rejected input field.
// HTTP handlers map this to 400 with the cause attached.
func ValidationFailed(cause string) *AppError {
	return &AppError{Err: ErrValidation, Cause: cause}
}

// AuthenticationFailed returns the generic credential-rejection error.
// The internal reason is never attached; all auth failures look identical.
func AuthenticationFailed() *AppError {
	return &AppError{Err: ErrAuthentication}
}

// Forbidden returns an AppError indicating the caller lacks permission.
// HTTP handlers map this to 403 Forbidden.
func Forbidden() *AppError {
	return &AppError{Err: ErrForbidden}
}

// NotFound returns an AppError for a missing account.
func NotFound() *AppError {
	return &AppError{Err: ErrNotFound}
}

// DuplicateKey returns an AppError for a user_id that is already taken.
// HTTP handlers map this to 400 with the cause attached.
func DuplicateKey() *AppError {
	return &AppError{Err: ErrDuplicateKey, Cause: "Already same user_id is used"}
}
