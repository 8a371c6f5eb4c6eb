package service

import (
	"context"
	"errors"
	"testing"

	"github.com/kitshop/internal/repository"
)

func TestOrderServiceListAndGet(t *testing.T) {
	f := newShopFixture(t, "order_service")
	owner := f.seedUser(t, "owner")
	other := f.seedUser(t, "other")
	product := f.seedProduct(t, "Chassis", "30.00")
	ctx := context.Background()
	svc := NewOrderService(f.orderRepo)

	if _, _, err := svc.ListByUser(ctx, owner.ID, repository.OrderListFilter{}); !errors.Is(err, ErrOrderNotFound) {
		t.Fatalf("expected no orders, got %v", err)
	}
	if _, _, err := svc.ListAll(ctx, repository.OrderListFilter{}); !errors.Is(err, ErrOrderNotFound) {
		t.Fatalf("expected no orders overall, got %v", err)
	}

	if _, err := f.cart.AddItem(ctx, owner.ID, productRef(product.ID), 1); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	order, err := f.newCheckout(nil, nil, 3).Checkout(ctx, owner.ID, "Calle Falsa 123")
	if err != nil {
		t.Fatalf("checkout failed: %v", err)
	}

	orders, total, err := svc.ListByUser(ctx, owner.ID, repository.OrderListFilter{Page: 1, PageSize: 20})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if total != 1 || len(orders) != 1 || orders[0].ID != order.ID {
		t.Fatalf("unexpected orders: total=%d %+v", total, orders)
	}
	if _, _, err := svc.ListByUser(ctx, other.ID, repository.OrderListFilter{}); !errors.Is(err, ErrOrderNotFound) {
		t.Fatalf("expected other user to see no orders, got %v", err)
	}

	got, err := svc.GetForUser(ctx, owner.ID, order.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if len(got.Items) != 1 {
		t.Fatalf("expected items preloaded, got %+v", got.Items)
	}
	if _, err := svc.GetForUser(ctx, other.ID, order.ID); !errors.Is(err, ErrOrderNotFound) {
		t.Fatalf("expected not found for foreign order, got %v", err)
	}
	if _, err := svc.GetForUser(ctx, owner.ID, 0); !errors.Is(err, ErrOrderNotFound) {
		t.Fatalf("expected not found for zero id, got %v", err)
	}
	if _, err := svc.GetByID(ctx, order.ID); err != nil {
		t.Fatalf("admin get failed: %v", err)
	}
}
