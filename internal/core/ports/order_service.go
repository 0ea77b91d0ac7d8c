package ports

import (
	"context"

	"github.com/ferremas/storefront-api/internal/core/domain"
)

// CreateOrderInput carries a purchase request from an authenticated client.
type CreateOrderInput struct {
	ClientID         string
	ArticuloID       string
	Cantidad         int
	DireccionEntrega string
}

// OrderService defines use-case operations for orders.
type OrderService interface {
	CreateOrder(ctx context.Context, input CreateOrderInput) (*domain.Order, error)
	ListOrders(ctx context.Context, clientID string) ([]*domain.Order, error)
	GetOrder(ctx context.Context, id string, caller domain.Claims) (*domain.Order, error)
}
