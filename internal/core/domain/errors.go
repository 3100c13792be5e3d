package domain

import "errors"

var (
	ErrValidation         = errors.New("validation failed")
	ErrUnauthenticated    = errors.New("Access denied. No token provided.")
	ErrInvalidToken       = errors.New("Invalid or expired token.")
	ErrInvalidCredentials = errors.New("Invalid email or password")
	ErrAccountInactive    = errors.New("Account is inactive. Please contact an administrator.")
	ErrForbidden          = errors.New("access forbidden")
	ErrUserNotFound       = errors.New("User not found")
	ErrEmailExists        = errors.New("Email already exists")
	ErrTooManyAttempts    = errors.New("Too many failed login attempts. Please try again later.")
)

// Error attaches a caller-facing message to one of the sentinel kinds above.
// errors.Is matches against the kind.
type Error struct {
	Kind    error
	Message string
}

func NewError(kind error, msg string) error {
	return &Error{Kind: kind, Message: msg}
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Kind }
