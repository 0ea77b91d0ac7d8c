package service

import (
	"context"
	"sort"
	"sync"

	"github.com/rs/zerolog"

	"github.com/ferremas/storefront-api/internal/core/domain"
)

var nopLogger = zerolog.Nop()

type stubCatalog struct {
	articles []domain.Article
	branches []domain.Branch
	sellers  []domain.Seller
	err      error
	calls    int
}

func (c *stubCatalog) Articles(context.Context) ([]domain.Article, error) {
	c.calls++
	if c.err != nil {
		return nil, c.err
	}
	out := make([]domain.Article, len(c.articles))
	copy(out, c.articles)
	return out, nil
}

func (c *stubCatalog) Branches(context.Context) ([]domain.Branch, error) {
	if c.err != nil {
		return nil, c.err
	}
	return c.branches, nil
}

func (c *stubCatalog) Sellers(context.Context) ([]domain.Seller, error) {
	if c.err != nil {
		return nil, c.err
	}
	return c.sellers, nil
}

type stubRates struct {
	rate  domain.ExchangeRate
	err   error
	calls int
}

func (r *stubRates) CLPToUSD(context.Context) (domain.ExchangeRate, error) {
	r.calls++
	if r.err != nil {
		return domain.ExchangeRate{}, r.err
	}
	return r.rate, nil
}

type stubOrderRepo struct {
	mu        sync.Mutex
	orders    map[string]*domain.Order
	createErr error
}

func newStubOrderRepo() *stubOrderRepo {
	return &stubOrderRepo{orders: make(map[string]*domain.Order)}
}

func (r *stubOrderRepo) Create(_ context.Context, o *domain.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return r.createErr
	}
	if _, exists := r.orders[o.ID]; exists {
		return domain.ErrDuplicateOrder
	}
	clone := *o
	r.orders[o.ID] = &clone
	return nil
}

func (r *stubOrderRepo) FindByID(_ context.Context, id string) (*domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[id]
	if !ok {
		return nil, domain.ErrOrderNotFound
	}
	clone := *o
	return &clone, nil
}

func (r *stubOrderRepo) ListByClient(_ context.Context, clientID string) ([]*domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Order
	for _, o := range r.orders {
		if o.ClienteID == clientID {
			clone := *o
			out = append(out, &clone)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].FechaCreacion.After(out[j].FechaCreacion) })
	return out, nil
}

func sampleArticles() []domain.Article {
	return []domain.Article{
		{ID: "ART-1", Nombre: "Taladro", Descripcion: "Taladro percutor", Precio: 49990, Stock: 10},
		{ID: "ART-2", Nombre: "Martillo", Descripcion: "Martillo carpintero", Precio: 8999, Stock: 2},
		{ID: "ART-3", Nombre: "Sierra", Descripcion: "Sierra circular", Precio: 129990, Stock: 0},
	}
}
