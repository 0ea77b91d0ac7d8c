package ports

import (
	"context"

	"github.com/ferremas/storefront-api/internal/core/domain"
)

// OrderRepository stores orders. Create fails with domain.ErrDuplicateOrder
// when the id is already taken.
type OrderRepository interface {
	Create(ctx context.Context, order *domain.Order) error
	FindByID(ctx context.Context, id string) (*domain.Order, error)
	// ListByClient returns the client's orders, newest first.
	ListByClient(ctx context.Context, clientID string) ([]*domain.Order, error)
}
