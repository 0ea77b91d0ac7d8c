package ports

import (
	"context"

	"github.com/ferremas/storefront-api/internal/core/domain"
)

// TokenVerifier validates session tokens.
type TokenVerifier interface {
	Verify(token string) (*domain.Claims, error)
}

// Authorizer checks a caller's role against a set of required permissions.
type Authorizer interface {
	Authorize(claims domain.Claims, required ...string) error
}

// AuthService issues and verifies session tokens and evaluates permissions.
type AuthService interface {
	TokenVerifier
	Authorizer
	Login(ctx context.Context, username, password string) (string, *domain.User, error)
}
