// Package memory keeps orders in process memory. Contents are lost on restart.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/ferremas/storefront-api/internal/core/domain"
)

// OrderRepository implements ports.OrderRepository with a guarded map.
type OrderRepository struct {
	mu     sync.RWMutex
	orders map[string]domain.Order
}

func NewOrderRepository() *OrderRepository {
	return &OrderRepository{orders: make(map[string]domain.Order)}
}

func (r *OrderRepository) Create(_ context.Context, o *domain.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.orders[o.ID]; exists {
		return domain.ErrDuplicateOrder
	}
	r.orders[o.ID] = *o
	return nil
}

func (r *OrderRepository) FindByID(_ context.Context, id string) (*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	o, ok := r.orders[id]
	if !ok {
		return nil, domain.ErrOrderNotFound
	}
	return &o, nil
}

// ListByClient returns copies of the client's orders, newest first. Ties on
// creation time fall back to descending id.
func (r *OrderRepository) ListByClient(_ context.Context, clientID string) ([]*domain.Order, error) {
	r.mu.RLock()
	out := []*domain.Order{}
	for _, o := range r.orders {
		if o.ClienteID == clientID {
			o := o
			out = append(out, &o)
		}
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if !out[i].FechaCreacion.Equal(out[j].FechaCreacion) {
			return out[i].FechaCreacion.After(out[j].FechaCreacion)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

// Reset drops every stored order.
func (r *OrderRepository) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.orders = make(map[string]domain.Order)
}
