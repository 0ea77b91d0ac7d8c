package ports

import (
	"context"

	"github.com/ferremas/storefront-api/internal/core/domain"
)

// UserRepository looks up storefront accounts.
type UserRepository interface {
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
}
