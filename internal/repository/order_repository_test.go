package repository

import (
	"context"
	"testing"
	"time"

	"github.com/kitshop/internal/constants"
	"github.com/kitshop/internal/models"

	"github.com/shopspring/decimal"
)

func createTestOrder(t *testing.T, repo *GormOrderRepository, userID uint, createdAt time.Time) *models.Order {
	t.Helper()
	price := models.NewMoneyFromDecimal(decimal.NewFromInt(100))
	order := &models.Order{
		UserID:          userID,
		TotalAmount:     models.NewMoneyFromDecimal(decimal.NewFromInt(200)),
		ShippingAddress: "Calle Falsa 123",
		Status:          constants.OrderStatusPending,
		CreatedAt:       createdAt,
	}
	items := []models.OrderItem{
		{ItemID: 2, ItemKind: constants.ItemKindKit, Quantity: 1, PriceAtPurchase: price, TotalPrice: price, Position: 1},
		{ItemID: 1, ItemKind: constants.ItemKindProduct, Quantity: 1, PriceAtPurchase: price, TotalPrice: price, Position: 0},
	}
	if err := repo.Create(context.Background(), order, items); err != nil {
		t.Fatalf("create order failed: %v", err)
	}
	return order
}

func TestOrderRepositoryListByUserSortsNewestFirst(t *testing.T) {
	db := openRepositoryTestDB(t, "order_repo_list")
	repo := NewOrderRepository(db)
	ctx := context.Background()

	base := time.Now().Add(-time.Hour)
	older := createTestOrder(t, repo, 1, base)
	newer := createTestOrder(t, repo, 1, base.Add(10*time.Minute))
	createTestOrder(t, repo, 2, base.Add(20*time.Minute))

	orders, total, err := repo.ListByUser(ctx, OrderListFilter{UserID: 1})
	if err != nil {
		t.Fatalf("list by user failed: %v", err)
	}
	if total != 2 || len(orders) != 2 {
		t.Fatalf("expected 2 orders for user 1, got total=%d len=%d", total, len(orders))
	}
	if orders[0].ID != newer.ID || orders[1].ID != older.ID {
		t.Fatalf("expected newest first, got %d then %d", orders[0].ID, orders[1].ID)
	}
	if len(orders[0].Items) != 2 || orders[0].Items[0].Position != 0 {
		t.Fatalf("expected items preloaded in line order, got %+v", orders[0].Items)
	}

	all, total, err := repo.ListAll(ctx, OrderListFilter{})
	if err != nil || total != 3 || len(all) != 3 {
		t.Fatalf("expected 3 orders overall, got total=%d err=%v", total, err)
	}

	none, total, err := repo.ListByUser(ctx, OrderListFilter{})
	if err != nil || total != 0 || len(none) != 0 {
		t.Fatalf("expected empty result without user id, got total=%d err=%v", total, err)
	}
}

func TestOrderRepositoryGetByIDAndUser(t *testing.T) {
	db := openRepositoryTestDB(t, "order_repo_get")
	repo := NewOrderRepository(db)
	ctx := context.Background()

	order := createTestOrder(t, repo, 5, time.Now())
	got, err := repo.GetByIDAndUser(ctx, order.ID, 5)
	if err != nil || got == nil {
		t.Fatalf("expected owner to read order, got %v err=%v", got, err)
	}
	got, err = repo.GetByIDAndUser(ctx, order.ID, 6)
	if err != nil || got != nil {
		t.Fatalf("expected other user to get nothing, got %v err=%v", got, err)
	}
	got, err = repo.GetByID(ctx, order.ID+100)
	if err != nil || got != nil {
		t.Fatalf("expected missing order to be nil, got %v err=%v", got, err)
	}
}
