package repository

import (
	"context"
	"testing"

	"github.com/kitshop/internal/models"

	"github.com/shopspring/decimal"
)

func createTestProduct(t *testing.T, repo *GormProductRepository, name string, price int64, active bool) *models.Product {
	t.Helper()
	product := &models.Product{
		Name:        name,
		Description: name + " description",
		PriceAmount: models.NewMoneyFromDecimal(decimal.NewFromInt(price)),
		Stock:       5,
		Category:    "robotics",
		Features:    models.StringArray{"usb", "wifi"},
		IsActive:    true,
	}
	if err := repo.Create(context.Background(), product); err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	if !active {
		product.IsActive = false
		if err := repo.Update(context.Background(), product); err != nil {
			t.Fatalf("deactivate product failed: %v", err)
		}
	}
	return product
}

func TestProductRepositoryGetByIDRespectsActiveAndSoftDelete(t *testing.T) {
	db := openRepositoryTestDB(t, "product_repo_get")
	repo := NewProductRepository(db)
	ctx := context.Background()

	active := createTestProduct(t, repo, "Arduino Starter", 150, true)
	hidden := createTestProduct(t, repo, "Old Board", 20, false)

	got, err := repo.GetByID(ctx, active.ID, true)
	if err != nil || got == nil {
		t.Fatalf("expected active product, got %v err=%v", got, err)
	}
	if !got.PriceAmount.Equal(decimal.NewFromInt(150)) {
		t.Fatalf("expected price 150, got %s", got.PriceAmount.String())
	}
	if len(got.Features) != 2 {
		t.Fatalf("expected features to round trip, got %v", got.Features)
	}

	got, err = repo.GetByID(ctx, hidden.ID, true)
	if err != nil || got != nil {
		t.Fatalf("expected inactive product to be hidden, got %v err=%v", got, err)
	}
	got, err = repo.GetByID(ctx, hidden.ID, false)
	if err != nil || got == nil {
		t.Fatalf("expected inactive product visible without filter, got %v err=%v", got, err)
	}

	if err := repo.Delete(ctx, active.ID); err != nil {
		t.Fatalf("delete product failed: %v", err)
	}
	got, err = repo.GetByID(ctx, active.ID, false)
	if err != nil || got != nil {
		t.Fatalf("expected soft deleted product to be gone, got %v err=%v", got, err)
	}
}

func TestProductRepositoryListSearchAndPagination(t *testing.T) {
	db := openRepositoryTestDB(t, "product_repo_list")
	repo := NewProductRepository(db)
	ctx := context.Background()

	createTestProduct(t, repo, "Arduino Starter", 150, true)
	createTestProduct(t, repo, "Arduino Mega", 300, true)
	createTestProduct(t, repo, "Sensor Pack", 40, true)
	createTestProduct(t, repo, "Arduino Legacy", 10, false)

	items, total, err := repo.List(ctx, CatalogListFilter{Search: "arduino", OnlyActive: true, Page: 1, PageSize: 1})
	if err != nil {
		t.Fatalf("list products failed: %v", err)
	}
	if total != 2 {
		t.Fatalf("expected 2 active arduino products, got %d", total)
	}
	if len(items) != 1 {
		t.Fatalf("expected page size 1, got %d", len(items))
	}
	if items[0].Name != "Arduino Mega" {
		t.Fatalf("expected newest first, got %s", items[0].Name)
	}
}

func TestKitRepositoryCRUD(t *testing.T) {
	db := openRepositoryTestDB(t, "kit_repo_crud")
	repo := NewKitRepository(db)
	ctx := context.Background()

	kit := &models.Kit{
		Name:        "Robotics Kit",
		PriceAmount: models.NewMoneyFromDecimal(decimal.NewFromInt(500)),
		Level:       "beginner",
		IsDigital:   true,
		IsActive:    true,
	}
	if err := repo.Create(ctx, kit); err != nil {
		t.Fatalf("create kit failed: %v", err)
	}
	items, total, err := repo.List(ctx, CatalogListFilter{Category: "beginner", OnlyActive: true})
	if err != nil || total != 1 || len(items) != 1 {
		t.Fatalf("expected 1 beginner kit, got total=%d len=%d err=%v", total, len(items), err)
	}
	kit.PriceAmount = models.NewMoneyFromDecimal(decimal.NewFromInt(450))
	if err := repo.Update(ctx, kit); err != nil {
		t.Fatalf("update kit failed: %v", err)
	}
	got, err := repo.GetByID(ctx, kit.ID, true)
	if err != nil || got == nil || !got.PriceAmount.Equal(decimal.NewFromInt(450)) {
		t.Fatalf("expected updated price 450, got %v err=%v", got, err)
	}
}
