// Package error defines domain-specific errors for the application.
package error

import "errors"

// Auth domain errors.
var (
	// ErrEmailAlreadyRegistered is returned when registering with an email that exists.
	ErrEmailAlreadyRegistered = errors.New("email already registered")

	// ErrInvalidCredentials is returned when login credentials do not match.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrUserNotFound is returned when a user is not found.
	ErrUserNotFound = errors.New("user not found")

	// ErrInvalidToken is returned when a token is malformed, expired or revoked.
	ErrInvalidToken = errors.New("invalid or expired token")

	// ErrMissingToken is returned when no token is supplied.
	ErrMissingToken = errors.New("missing authentication token")

	// ErrWeakPassword is returned when the password does not meet requirements.
	ErrWeakPassword = errors.New("password does not meet minimum requirements")

	// ErrInvalidEmail is returned when an email address is malformed.
	ErrInvalidEmail = errors.New("invalid email format")
)

// AuthErrorCode defines error codes for authentication errors.
type AuthErrorCode string

const (
	ErrCodeInvalidCredentials AuthErrorCode = "AUTH-010001"
	ErrCodeEmailTaken         AuthErrorCode = "AUTH-010002"
	ErrCodeInvalidToken       AuthErrorCode = "AUTH-010003"
	ErrCodeMissingToken       AuthErrorCode = "AUTH-010004"
	ErrCodeWeakPassword       AuthErrorCode = "AUTH-010005"
	ErrCodeInvalidEmail       AuthErrorCode = "AUTH-010006"
)

// AuthError represents an authentication error with code and message.
type AuthError struct {
	Code    AuthErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *AuthError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *AuthError) Unwrap() error {
	return e.Err
}

// NewAuthError creates a new AuthError with the given code and message.
func NewAuthError(code AuthErrorCode, message string, err error) *AuthError {
	return &AuthError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
