package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/kitshop/internal/models"
	"github.com/kitshop/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func openServiceTestDB(t *testing.T, name string) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:svc_%s_%d?mode=memory&cache=shared", name, time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("get sql db failed: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	if err := db.AutoMigrate(models.AllModels()...); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	return db
}

type shopFixture struct {
	db          *gorm.DB
	userRepo    repository.UserRepository
	cartRepo    repository.CartRepository
	orderRepo   repository.OrderRepository
	kitRequests repository.KitRequestRepository
	catalog     *CatalogService
	cart        *CartService
}

func newShopFixture(t *testing.T, name string) *shopFixture {
	t.Helper()
	db := openServiceTestDB(t, name)
	catalog := NewCatalogService(repository.NewProductRepository(db), repository.NewKitRepository(db))
	cartRepo := repository.NewCartRepository(db)
	return &shopFixture{
		db:          db,
		userRepo:    repository.NewUserRepository(db),
		cartRepo:    cartRepo,
		orderRepo:   repository.NewOrderRepository(db),
		kitRequests: repository.NewKitRequestRepository(db),
		catalog:     catalog,
		cart:        NewCartService(cartRepo, catalog, 0),
	}
}

func (f *shopFixture) seedUser(t *testing.T, username string) *models.User {
	t.Helper()
	user := &models.User{
		Username:     username,
		Name:         username,
		Email:        username + "@example.com",
		PasswordHash: "x",
		Role:         "user",
		Locale:       "en",
		Status:       "active",
	}
	if err := f.userRepo.Create(context.Background(), user); err != nil {
		t.Fatalf("create user failed: %v", err)
	}
	return user
}

func (f *shopFixture) seedProduct(t *testing.T, name, price string) *models.Product {
	t.Helper()
	product := &models.Product{
		Name:        name,
		PriceAmount: models.NewMoneyFromDecimal(decimal.RequireFromString(price)),
		Stock:       10,
		IsActive:    true,
	}
	if err := f.db.Create(product).Error; err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	return product
}

func (f *shopFixture) seedKit(t *testing.T, id uint, name, price string) *models.Kit {
	t.Helper()
	kit := &models.Kit{
		ID:          id,
		Name:        name,
		PriceAmount: models.NewMoneyFromDecimal(decimal.RequireFromString(price)),
		IsDigital:   true,
		IsActive:    true,
	}
	if err := f.db.Create(kit).Error; err != nil {
		t.Fatalf("create kit failed: %v", err)
	}
	return kit
}

func (f *shopFixture) setProductPrice(t *testing.T, id uint, price string) {
	t.Helper()
	amount := models.NewMoneyFromDecimal(decimal.RequireFromString(price))
	if err := f.db.Model(&models.Product{}).Where("id = ?", id).Update("price_amount", amount).Error; err != nil {
		t.Fatalf("update price failed: %v", err)
	}
}

// newNotifier 创建绑定夹具仓库的通知服务
func (f *shopFixture) newNotifier(q NotificationQueue, sender EmailSender) *NotificationService {
	return NewNotificationService(q, sender, f.userRepo, f.orderRepo, f.kitRequests)
}

func productRef(id uint) ItemRef {
	return ItemRef{ID: id, Kind: "product"}
}
