package provider

import (
	"fmt"

	"github.com/kitshop/internal/authz"
	"github.com/kitshop/internal/cache"
	"github.com/kitshop/internal/config"
	"github.com/kitshop/internal/logger"
	"github.com/kitshop/internal/models"
	"github.com/kitshop/internal/queue"
	"github.com/kitshop/internal/repository"
	"github.com/kitshop/internal/service"

	"gorm.io/gorm"
)

// Container 依赖注入容器
type Container struct {
	Config     *config.Config
	Cache      *cache.Store
	Queue      *queue.Client
	Authorizer *authz.Authorizer

	// Repositories
	UserRepo       repository.UserRepository
	ProductRepo    repository.ProductRepository
	KitRepo        repository.KitRepository
	CartRepo       repository.CartRepository
	OrderRepo      repository.OrderRepository
	KitRequestRepo repository.KitRequestRepository

	// Services
	UserAuthService     *service.UserAuthService
	EmailService        *service.EmailService
	CatalogService      *service.CatalogService
	CartService         *service.CartService
	CheckoutService     *service.CheckoutService
	OrderService        *service.OrderService
	NotificationService *service.NotificationService
	KitRequestService   *service.KitRequestService
}

// NewContainer 基于全局数据库初始化容器，Redis 与队列按配置连接
func NewContainer(cfg *config.Config) (*Container, error) {
	queueClient, err := queue.NewClient(&cfg.Queue)
	if err != nil {
		logger.Errorw("provider_init_queue_client_failed", "error", err)
		queueClient, _ = queue.NewClient(nil)
	}
	return build(cfg, models.DB, cache.New(&cfg.Redis), queueClient)
}

// NewContainerWithDB 基于给定数据库初始化容器（不连接 Redis 与队列）
func NewContainerWithDB(cfg *config.Config, db *gorm.DB) (*Container, error) {
	queueClient, _ := queue.NewClient(nil)
	return build(cfg, db, cache.New(nil), queueClient)
}

func build(cfg *config.Config, db *gorm.DB, store *cache.Store, queueClient *queue.Client) (*Container, error) {
	authorizer, err := authz.NewAuthorizer(db)
	if err != nil {
		return nil, err
	}
	if err := authorizer.SeedBuiltinRoles(); err != nil {
		return nil, fmt.Errorf("seed builtin roles: %w", err)
	}

	c := &Container{
		Config:     cfg,
		Cache:      store,
		Queue:      queueClient,
		Authorizer: authorizer,
	}
	c.initRepositories(db)
	c.initServices()
	return c, nil
}

func (c *Container) initRepositories(db *gorm.DB) {
	c.UserRepo = repository.NewUserRepository(db)
	c.ProductRepo = repository.NewProductRepository(db)
	c.KitRepo = repository.NewKitRepository(db)
	c.CartRepo = repository.NewCartRepository(db)
	c.OrderRepo = repository.NewOrderRepository(db)
	c.KitRequestRepo = repository.NewKitRequestRepository(db)
}

func (c *Container) initServices() {
	c.EmailService = service.NewEmailService(&c.Config.Email)
	c.UserAuthService = service.NewUserAuthService(c.Config, c.UserRepo, c.Cache)
	c.CatalogService = service.NewCatalogService(c.ProductRepo, c.KitRepo)
	c.CartService = service.NewCartService(c.CartRepo, c.CatalogService, c.Config.Cart.MaxItemQuantity)
	c.OrderService = service.NewOrderService(c.OrderRepo)
	c.NotificationService = service.NewNotificationService(c.Queue, c.EmailService, c.UserRepo, c.OrderRepo, c.KitRequestRepo)
	c.CheckoutService = service.NewCheckoutService(
		c.CartRepo,
		c.OrderRepo,
		c.CatalogService,
		c.NotificationService,
		c.Config.Cart.CheckoutMaxRetries,
		c.Config.Cart.MaxAddressLength,
	)
	c.KitRequestService = service.NewKitRequestService(c.KitRequestRepo, c.CatalogService, c.NotificationService)
}

// Close 释放队列与 Redis 连接
func (c *Container) Close() error {
	var firstErr error
	if err := c.Queue.Close(); err != nil {
		firstErr = err
	}
	if err := c.Cache.Close(); err != nil && firstErr == nil {
		firstErr = err
	}
	return firstErr
}
