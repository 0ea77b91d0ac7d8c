package memory

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/ferremas/storefront-api/internal/core/domain"
)

func order(id, client string, at time.Time) *domain.Order {
	return &domain.Order{ID: id, ClienteID: client, FechaCreacion: at, Estado: domain.OrderPending}
}

func TestOrderRepository_CreateAndFind(t *testing.T) {
	repo := NewOrderRepository()
	ctx := context.Background()
	o := order("PED-1", "alice", time.Now())

	if err := repo.Create(ctx, o); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := repo.Create(ctx, o); !errors.Is(err, domain.ErrDuplicateOrder) {
		t.Fatalf("expected ErrDuplicateOrder, got %v", err)
	}

	got, err := repo.FindByID(ctx, "PED-1")
	if err != nil || got.ClienteID != "alice" {
		t.Fatalf("unexpected result %+v %v", got, err)
	}

	got.ClienteID = "mallory"
	again, _ := repo.FindByID(ctx, "PED-1")
	if again.ClienteID != "alice" {
		t.Fatalf("stored order must not be mutable through a returned pointer")
	}

	if _, err := repo.FindByID(ctx, "PED-2"); !errors.Is(err, domain.ErrOrderNotFound) {
		t.Fatalf("expected ErrOrderNotFound, got %v", err)
	}
}

func TestOrderRepository_ListByClient(t *testing.T) {
	repo := NewOrderRepository()
	ctx := context.Background()
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	_ = repo.Create(ctx, order("PED-1", "alice", base))
	_ = repo.Create(ctx, order("PED-2", "bob", base.Add(time.Hour)))
	_ = repo.Create(ctx, order("PED-3", "alice", base.Add(time.Minute)))
	_ = repo.Create(ctx, order("PED-4", "alice", base.Add(time.Minute)))

	got, err := repo.ListByClient(ctx, "alice")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"PED-4", "PED-3", "PED-1"}
	if len(got) != len(want) {
		t.Fatalf("expected %d orders, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i].ID != want[i] {
			t.Fatalf("position %d: got %s, want %s", i, got[i].ID, want[i])
		}
	}

	none, _ := repo.ListByClient(ctx, "carol")
	if none == nil || len(none) != 0 {
		t.Fatalf("expected empty non-nil slice")
	}
}

func TestOrderRepository_ConcurrentCreates(t *testing.T) {
	repo := NewOrderRepository()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_ = repo.Create(ctx, order(fmt.Sprintf("PED-%d", i), "alice", time.Now()))
		}(i)
	}
	wg.Wait()

	all, _ := repo.ListByClient(ctx, "alice")
	if len(all) != 100 {
		t.Fatalf("expected 100 orders, got %d", len(all))
	}

	repo.Reset()
	if all, _ := repo.ListByClient(ctx, "alice"); len(all) != 0 {
		t.Fatalf("expected empty store after reset")
	}
}
