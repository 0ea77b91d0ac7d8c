package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ferremas/storefront-api/internal/core/domain"
	"github.com/ferremas/storefront-api/internal/core/ports"
)

func newOrderSvc(repo *stubOrderRepo, catalog *stubCatalog) *OrderService {
	return NewOrderService(repo, catalog, nopLogger)
}

func TestOrderService_Create_Success(t *testing.T) {
	repo := newStubOrderRepo()
	svc := newOrderSvc(repo, &stubCatalog{articles: sampleArticles()})

	order, err := svc.CreateOrder(context.Background(), ports.CreateOrderInput{
		ClientID: "cliente", ArticuloID: "ART-1", Cantidad: 3, DireccionEntrega: "Av. Siempre Viva 742",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if order.Estado != domain.OrderPending {
		t.Fatalf("expected pendiente, got %s", order.Estado)
	}
	if order.Total != 149970 {
		t.Fatalf("expected total 149970, got %v", order.Total)
	}
	if order.ClienteID != "cliente" || order.DireccionEntrega != "Av. Siempre Viva 742" {
		t.Fatalf("unexpected order: %+v", order)
	}
	want := domain.ArticleSnapshot{ID: "ART-1", Nombre: "Taladro", Precio: 49990, Descripcion: "Taladro percutor"}
	if order.Articulo != want {
		t.Fatalf("unexpected snapshot: %+v", order.Articulo)
	}
	if len(repo.orders) != 1 {
		t.Fatalf("expected exactly one stored order, got %d", len(repo.orders))
	}

	stored, err := repo.FindByID(context.Background(), order.ID)
	if err != nil || stored.ID != order.ID {
		t.Fatalf("order not retrievable by id: %v", err)
	}
}

func TestOrderService_Create_QuantityEqualToStock(t *testing.T) {
	repo := newStubOrderRepo()
	svc := newOrderSvc(repo, &stubCatalog{articles: sampleArticles()})

	if _, err := svc.CreateOrder(context.Background(), ports.CreateOrderInput{ClientID: "c", ArticuloID: "ART-2", Cantidad: 2}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestOrderService_Create_InsufficientStockStoresNothing(t *testing.T) {
	repo := newStubOrderRepo()
	svc := newOrderSvc(repo, &stubCatalog{articles: sampleArticles()})

	_, err := svc.CreateOrder(context.Background(), ports.CreateOrderInput{ClientID: "c", ArticuloID: "ART-2", Cantidad: 3})

	var stockErr *domain.InsufficientStockError
	if !errors.As(err, &stockErr) {
		t.Fatalf("expected InsufficientStockError, got %v", err)
	}
	if stockErr.Available != 2 {
		t.Fatalf("expected available 2, got %d", stockErr.Available)
	}
	if len(repo.orders) != 0 {
		t.Fatalf("no order must be stored, found %d", len(repo.orders))
	}
}

func TestOrderService_Create_ArticleNotFound(t *testing.T) {
	repo := newStubOrderRepo()
	svc := newOrderSvc(repo, &stubCatalog{articles: sampleArticles()})

	if _, err := svc.CreateOrder(context.Background(), ports.CreateOrderInput{ArticuloID: "nope", Cantidad: 1}); !errors.Is(err, domain.ErrArticleNotFound) {
		t.Fatalf("expected ErrArticleNotFound, got %v", err)
	}
	if len(repo.orders) != 0 {
		t.Fatalf("no order must be stored")
	}
}

func TestOrderService_Create_CatalogFailure(t *testing.T) {
	svc := newOrderSvc(newStubOrderRepo(), &stubCatalog{err: &domain.ExternalError{Status: 502, Message: "bad gateway"}})

	var ext *domain.ExternalError
	if _, err := svc.CreateOrder(context.Background(), ports.CreateOrderInput{ArticuloID: "ART-1", Cantidad: 1}); !errors.As(err, &ext) {
		t.Fatalf("expected ExternalError, got %v", err)
	}
}

func TestOrderService_Create_RepoError(t *testing.T) {
	repo := newStubOrderRepo()
	repo.createErr = errors.New("db down")
	svc := newOrderSvc(repo, &stubCatalog{articles: sampleArticles()})

	if _, err := svc.CreateOrder(context.Background(), ports.CreateOrderInput{ArticuloID: "ART-1", Cantidad: 1}); err == nil {
		t.Fatalf("expected error")
	}
}

func TestOrderService_Create_SameMillisecondGetsDistinctIDs(t *testing.T) {
	repo := newStubOrderRepo()
	svc := newOrderSvc(repo, &stubCatalog{articles: sampleArticles()})
	fixed := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	svc.ids = newOrderIDGenerator(func() time.Time { return fixed })

	first, err := svc.CreateOrder(context.Background(), ports.CreateOrderInput{ClientID: "c", ArticuloID: "ART-1", Cantidad: 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := svc.CreateOrder(context.Background(), ports.CreateOrderInput{ClientID: "c", ArticuloID: "ART-1", Cantidad: 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if first.ID != "PED-1704067200000" {
		t.Fatalf("unexpected id format: %s", first.ID)
	}
	if first.ID == second.ID {
		t.Fatalf("ids collided: %s", first.ID)
	}
	if len(repo.orders) != 2 {
		t.Fatalf("expected 2 stored orders, got %d", len(repo.orders))
	}
}

func seedOrder(repo *stubOrderRepo, id, clientID string, created time.Time) {
	repo.orders[id] = &domain.Order{ID: id, ClienteID: clientID, FechaCreacion: created, Estado: domain.OrderPending}
}

func TestOrderService_List_OwnOrdersNewestFirst(t *testing.T) {
	repo := newStubOrderRepo()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	seedOrder(repo, "PED-1", "alice", base)
	seedOrder(repo, "PED-2", "bob", base.Add(time.Minute))
	seedOrder(repo, "PED-3", "alice", base.Add(2*time.Minute))
	seedOrder(repo, "PED-4", "alice", base.Add(time.Second))
	svc := newOrderSvc(repo, &stubCatalog{})

	orders, err := svc.ListOrders(context.Background(), "alice")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"PED-3", "PED-4", "PED-1"}
	if len(orders) != len(want) {
		t.Fatalf("expected %d orders, got %d", len(want), len(orders))
	}
	for i, id := range want {
		if orders[i].ID != id {
			t.Fatalf("order[%d]: expected %s, got %s", i, id, orders[i].ID)
		}
		if orders[i].ClienteID != "alice" {
			t.Fatalf("foreign order leaked: %+v", orders[i])
		}
	}
}

func TestOrderService_List_EmptyIsNotNil(t *testing.T) {
	svc := newOrderSvc(newStubOrderRepo(), &stubCatalog{})

	orders, err := svc.ListOrders(context.Background(), "nobody")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if orders == nil || len(orders) != 0 {
		t.Fatalf("expected empty non-nil slice, got %v", orders)
	}
}

func TestOrderService_Get(t *testing.T) {
	repo := newStubOrderRepo()
	seedOrder(repo, "PED-1", "alice", time.Now())
	svc := newOrderSvc(repo, &stubCatalog{})
	ctx := context.Background()

	if _, err := svc.GetOrder(ctx, "PED-1", domain.Claims{Subject: "alice", Role: "client"}); err != nil {
		t.Fatalf("owner must read own order: %v", err)
	}
	if _, err := svc.GetOrder(ctx, "PED-1", domain.Claims{Subject: "root", Role: domain.RoleAdmin}); err != nil {
		t.Fatalf("admin must read any order: %v", err)
	}
	if _, err := svc.GetOrder(ctx, "PED-1", domain.Claims{Subject: "bob", Role: "client"}); !errors.Is(err, domain.ErrOrderForbidden) {
		t.Fatalf("expected ErrOrderForbidden, got %v", err)
	}
	if _, err := svc.GetOrder(ctx, "PED-404", domain.Claims{Subject: "alice", Role: "client"}); !errors.Is(err, domain.ErrOrderNotFound) {
		t.Fatalf("expected ErrOrderNotFound, got %v", err)
	}
}
