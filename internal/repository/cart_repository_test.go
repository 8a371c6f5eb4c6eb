package repository

import (
	"context"
	"testing"

	"github.com/kitshop/internal/constants"
)

func TestCartRepositoryLockOrCreateIsLazyAndVersioned(t *testing.T) {
	db := openRepositoryTestDB(t, "cart_repo_lock")
	repo := NewCartRepository(db)
	ctx := context.Background()

	existing, err := repo.GetByUser(ctx, 7)
	if err != nil {
		t.Fatalf("get cart failed: %v", err)
	}
	if existing != nil {
		t.Fatalf("expected no cart before first add")
	}

	first, err := repo.LockOrCreate(ctx, 7)
	if err != nil {
		t.Fatalf("lock or create failed: %v", err)
	}
	second, err := repo.LockOrCreate(ctx, 7)
	if err != nil {
		t.Fatalf("lock or create again failed: %v", err)
	}
	if first.ID != second.ID {
		t.Fatalf("expected exactly one cart per user, got ids %d and %d", first.ID, second.ID)
	}
	if second.Version != first.Version+1 {
		t.Fatalf("expected version to advance, got %d then %d", first.Version, second.Version)
	}

	var count int64
	if err := db.Table("carts").Where("user_id = ?", 7).Count(&count).Error; err != nil {
		t.Fatalf("count carts failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 cart row, got %d", count)
	}
}

func TestCartRepositoryUpsertItemIncrementMerges(t *testing.T) {
	db := openRepositoryTestDB(t, "cart_repo_upsert")
	repo := NewCartRepository(db)
	ctx := context.Background()

	cart, err := repo.LockOrCreate(ctx, 1)
	if err != nil {
		t.Fatalf("lock or create failed: %v", err)
	}
	if err := repo.UpsertItemIncrement(ctx, cart.ID, 10, constants.ItemKindProduct, 2); err != nil {
		t.Fatalf("first upsert failed: %v", err)
	}
	if err := repo.UpsertItemIncrement(ctx, cart.ID, 10, constants.ItemKindProduct, 3); err != nil {
		t.Fatalf("second upsert failed: %v", err)
	}
	if err := repo.UpsertItemIncrement(ctx, cart.ID, 10, constants.ItemKindKit, 1); err != nil {
		t.Fatalf("kit upsert failed: %v", err)
	}

	items, err := repo.ListItems(ctx, cart.ID)
	if err != nil {
		t.Fatalf("list items failed: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 lines (product + kit), got %d", len(items))
	}
	if items[0].ItemKind != constants.ItemKindProduct || items[0].Quantity != 5 {
		t.Fatalf("expected merged product quantity 5, got %+v", items[0])
	}
	if items[1].ItemKind != constants.ItemKindKit || items[1].Quantity != 1 {
		t.Fatalf("expected kit line quantity 1, got %+v", items[1])
	}
}

func TestCartRepositoryCompareAndBump(t *testing.T) {
	db := openRepositoryTestDB(t, "cart_repo_cas")
	repo := NewCartRepository(db)
	ctx := context.Background()

	cart, err := repo.LockOrCreate(ctx, 3)
	if err != nil {
		t.Fatalf("lock or create failed: %v", err)
	}
	ok, err := repo.CompareAndBump(ctx, cart.ID, cart.Version)
	if err != nil || !ok {
		t.Fatalf("expected cas success, ok=%v err=%v", ok, err)
	}
	ok, err = repo.CompareAndBump(ctx, cart.ID, cart.Version)
	if err != nil {
		t.Fatalf("cas failed: %v", err)
	}
	if ok {
		t.Fatalf("expected stale version to be rejected")
	}
}

func TestCartRepositoryDeleteItems(t *testing.T) {
	db := openRepositoryTestDB(t, "cart_repo_delete")
	repo := NewCartRepository(db)
	ctx := context.Background()

	cart, err := repo.LockOrCreate(ctx, 4)
	if err != nil {
		t.Fatalf("lock or create failed: %v", err)
	}
	_ = repo.UpsertItemIncrement(ctx, cart.ID, 1, constants.ItemKindProduct, 1)
	_ = repo.UpsertItemIncrement(ctx, cart.ID, 1, constants.ItemKindKit, 1)
	_ = repo.UpsertItemIncrement(ctx, cart.ID, 2, constants.ItemKindProduct, 1)

	matches, err := repo.ListItemsByItemID(ctx, cart.ID, 1)
	if err != nil || len(matches) != 2 {
		t.Fatalf("expected 2 matches for item 1, got %d err=%v", len(matches), err)
	}

	deleted, err := repo.DeleteItemsByRef(ctx, cart.ID, 1, constants.ItemKindKit)
	if err != nil || deleted != 1 {
		t.Fatalf("expected 1 kit line deleted, got %d err=%v", deleted, err)
	}
	deleted, err = repo.DeleteItemsByRef(ctx, cart.ID, 99, "")
	if err != nil || deleted != 0 {
		t.Fatalf("expected nothing deleted for missing item, got %d err=%v", deleted, err)
	}
	cleared, err := repo.ClearItems(ctx, cart.ID)
	if err != nil || cleared != 2 {
		t.Fatalf("expected 2 lines cleared, got %d err=%v", cleared, err)
	}
	cleared, err = repo.ClearItems(ctx, cart.ID)
	if err != nil || cleared != 0 {
		t.Fatalf("expected clearing an empty cart to be a no-op, got %d err=%v", cleared, err)
	}
}

func TestCartRepositoryListItemsKeepsInsertionOrder(t *testing.T) {
	db := openRepositoryTestDB(t, "cart_repo_order")
	repo := NewCartRepository(db)
	ctx := context.Background()

	cart, err := repo.LockOrCreate(ctx, 3)
	if err != nil {
		t.Fatalf("lock or create failed: %v", err)
	}
	for _, itemID := range []uint{30, 10, 20, 30} {
		if err := repo.UpsertItemIncrement(ctx, cart.ID, itemID, constants.ItemKindProduct, 1); err != nil {
			t.Fatalf("upsert %d failed: %v", itemID, err)
		}
	}

	items, err := repo.ListItems(ctx, cart.ID)
	if err != nil {
		t.Fatalf("list items failed: %v", err)
	}
	want := []uint{30, 10, 20}
	if len(items) != len(want) {
		t.Fatalf("expected %d lines, got %d", len(want), len(items))
	}
	for i, itemID := range want {
		if items[i].ItemID != itemID {
			t.Fatalf("line %d: expected item %d, got %+v", i, itemID, items[i])
		}
	}
	if items[0].Quantity != 2 {
		t.Fatalf("merged line should stay first with quantity 2, got %+v", items[0])
	}
}
