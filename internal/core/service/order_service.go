package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/ferremas/storefront-api/internal/core/domain"
	"github.com/ferremas/storefront-api/internal/core/ports"
	"github.com/ferremas/storefront-api/internal/pkg/metrics"
)

type OrderService struct {
	repo    ports.OrderRepository
	catalog ports.CatalogGateway
	ids     *orderIDGenerator
	logger  zerolog.Logger
}

func NewOrderService(repo ports.OrderRepository, catalog ports.CatalogGateway, logger zerolog.Logger) *OrderService {
	return &OrderService{
		repo:    repo,
		catalog: catalog,
		ids:     newOrderIDGenerator(time.Now),
		logger:  logger,
	}
}

// CreateOrder checks the live catalog for the article and its stock, then
// stores a pending order with a snapshot of the article.
func (s *OrderService) CreateOrder(ctx context.Context, in ports.CreateOrderInput) (*domain.Order, error) {
	articles, err := s.catalog.Articles(ctx)
	if err != nil {
		return nil, err
	}

	article, err := domain.FindArticle(articles, in.ArticuloID)
	if err != nil {
		return nil, err
	}

	if err := article.CheckStock(in.Cantidad); err != nil {
		metrics.OrdersRejectedTotal.WithLabelValues("insufficient_stock").Inc()
		return nil, err
	}

	id, now := s.ids.next()
	order := domain.NewOrder(id, *article, in.Cantidad, in.DireccionEntrega, in.ClientID, now)

	if err := s.repo.Create(ctx, order); err != nil {
		s.logger.Error().Err(err).Str("order_id", id).Msg("failed to store order")
		return nil, fmt.Errorf("create order: %w", err)
	}

	metrics.OrdersCreatedTotal.Inc()
	s.logger.Info().
		Str("order_id", order.ID).
		Str("client_id", order.ClienteID).
		Str("article_id", order.ArticuloID).
		Int("cantidad", order.Cantidad).
		Msg("order created")

	return order, nil
}

// ListOrders returns the client's orders, newest first.
func (s *OrderService) ListOrders(ctx context.Context, clientID string) ([]*domain.Order, error) {
	orders, err := s.repo.ListByClient(ctx, clientID)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	if orders == nil {
		orders = []*domain.Order{}
	}
	return orders, nil
}

// GetOrder returns an order owned by the caller. Admins may read any order.
func (s *OrderService) GetOrder(ctx context.Context, id string, caller domain.Claims) (*domain.Order, error) {
	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrOrderNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	if !order.VisibleTo(caller) {
		return nil, domain.ErrOrderForbidden
	}
	return order, nil
}

// orderIDGenerator issues "PED-<unix millis>" ids. When two orders land in
// the same millisecond the second one takes the next free millisecond, so
// ids stay unique within the process.
type orderIDGenerator struct {
	mu   sync.Mutex
	last int64
	now  func() time.Time
}

func newOrderIDGenerator(now func() time.Time) *orderIDGenerator {
	return &orderIDGenerator{now: now}
}

func (g *orderIDGenerator) next() (string, time.Time) {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := g.now().UTC().Truncate(time.Millisecond)
	ms := now.UnixMilli()
	if ms <= g.last {
		ms = g.last + 1
	}
	g.last = ms
	return fmt.Sprintf("PED-%d", ms), now
}
