// Package adapter defines interfaces that are implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"
)

// TokenClaims holds the identity carried by an access token.
type TokenClaims struct {
	UserID uuid.UUID
	Email  string
}

// TokenService defines the interface for issuing and validating tokens.
type TokenService interface {
	// GenerateAccessToken issues a short-lived access token for a user.
	GenerateAccessToken(ctx context.Context, userID uuid.UUID, email string) (string, error)

	// GenerateRefreshToken issues and persists a refresh token for a user.
	GenerateRefreshToken(ctx context.Context, userID uuid.UUID) (string, error)

	// ValidateAccessToken validates an access token and returns its claims.
	ValidateAccessToken(ctx context.Context, token string) (*TokenClaims, error)

	// RefreshAccessToken validates a refresh token and issues a new access token.
	RefreshAccessToken(ctx context.Context, refreshToken string) (string, error)

	// InvalidateRefreshToken revokes a refresh token.
	InvalidateRefreshToken(ctx context.Context, refreshToken string) error
}

// PasswordService defines the interface for password hashing.
type PasswordService interface {
	// Hash hashes a plaintext password.
	Hash(password string) (string, error)

	// Compare checks a plaintext password against a hash.
	Compare(hash, password string) error
}
