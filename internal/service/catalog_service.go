package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/kitshop/internal/constants"
	"github.com/kitshop/internal/models"
	"github.com/kitshop/internal/repository"

	"github.com/shopspring/decimal"
)

// ItemRef 目录项引用（类型 + ID）
type ItemRef struct {
	ID   uint   `json:"item_id"`
	Kind string `json:"kind"`
}

// CatalogItem 目录项定价快照
type CatalogItem struct {
	Ref   ItemRef         `json:"ref"`
	Name  string          `json:"name"`
	Image string          `json:"image"`
	Price decimal.Decimal `json:"price"`
}

// CatalogResolver 按引用解析目录项的最新价格与存在性
type CatalogResolver interface {
	Resolve(ctx context.Context, ref ItemRef) (*CatalogItem, error)
}

// NormalizeItemKind 规范化目录类型，空值视为 product
func NormalizeItemKind(raw string) (string, error) {
	kind := strings.ToLower(strings.TrimSpace(raw))
	switch kind {
	case "":
		return constants.ItemKindProduct, nil
	case constants.ItemKindProduct, constants.ItemKindKit:
		return kind, nil
	default:
		return "", ErrInvalidItemKind
	}
}

// CatalogService 目录服务（商品 + 套件）
type CatalogService struct {
	productRepo repository.ProductRepository
	kitRepo     repository.KitRepository
}

// NewCatalogService 创建目录服务
func NewCatalogService(productRepo repository.ProductRepository, kitRepo repository.KitRepository) *CatalogService {
	return &CatalogService{
		productRepo: productRepo,
		kitRepo:     kitRepo,
	}
}

// Resolve 按类型分派到对应仓库，不做跨类型回退，不缓存
func (s *CatalogService) Resolve(ctx context.Context, ref ItemRef) (*CatalogItem, error) {
	if ref.ID == 0 {
		return nil, ErrCatalogItemNotFound
	}
	switch ref.Kind {
	case constants.ItemKindProduct:
		product, err := s.productRepo.GetByID(ctx, ref.ID, true)
		if err != nil {
			return nil, fmt.Errorf("resolve product %d: %w", ref.ID, err)
		}
		if product == nil {
			return nil, ErrCatalogItemNotFound
		}
		return &CatalogItem{Ref: ref, Name: product.Name, Image: product.Image, Price: product.PriceAmount.Decimal}, nil
	case constants.ItemKindKit:
		kit, err := s.kitRepo.GetByID(ctx, ref.ID, true)
		if err != nil {
			return nil, fmt.Errorf("resolve kit %d: %w", ref.ID, err)
		}
		if kit == nil {
			return nil, ErrCatalogItemNotFound
		}
		return &CatalogItem{Ref: ref, Name: kit.Name, Image: kit.Image, Price: kit.PriceAmount.Decimal}, nil
	default:
		return nil, ErrInvalidItemKind
	}
}

// ListProducts 商品列表
func (s *CatalogService) ListProducts(ctx context.Context, filter repository.CatalogListFilter) ([]models.Product, int64, error) {
	return s.productRepo.List(ctx, filter)
}

// GetProduct 获取商品
func (s *CatalogService) GetProduct(ctx context.Context, id uint, onlyActive bool) (*models.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id, onlyActive)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrCatalogItemNotFound
	}
	return product, nil
}

// ListKits 套件列表
func (s *CatalogService) ListKits(ctx context.Context, filter repository.CatalogListFilter) ([]models.Kit, int64, error) {
	return s.kitRepo.List(ctx, filter)
}

// GetKit 获取套件
func (s *CatalogService) GetKit(ctx context.Context, id uint, onlyActive bool) (*models.Kit, error) {
	kit, err := s.kitRepo.GetByID(ctx, id, onlyActive)
	if err != nil {
		return nil, err
	}
	if kit == nil {
		return nil, ErrCatalogItemNotFound
	}
	return kit, nil
}
