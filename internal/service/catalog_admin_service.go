package service

import (
	"context"
	"strings"

	"github.com/kitshop/internal/models"
)

// ProductInput 商品写入参数（nil 字段在更新时保持不变）
type ProductInput struct {
	Name        *string       `json:"name"`
	Description *string       `json:"description"`
	Price       *models.Money `json:"price"`
	Stock       *int          `json:"stock"`
	Category    *string       `json:"category"`
	Image       *string       `json:"image"`
	Features    []string      `json:"features"`
	Level       *string       `json:"level"`
	IsDigital   *bool         `json:"is_digital"`
	IsActive    *bool         `json:"is_active"`
}

// KitInput 套件写入参数（nil 字段在更新时保持不变）
type KitInput struct {
	Name        *string       `json:"name"`
	Description *string       `json:"description"`
	Price       *models.Money `json:"price"`
	Image       *string       `json:"image"`
	Features    []string      `json:"features"`
	Level       *string       `json:"level"`
	IsDigital   *bool         `json:"is_digital"`
	IsActive    *bool         `json:"is_active"`
}

// CreateProduct 创建商品
func (s *CatalogService) CreateProduct(ctx context.Context, input ProductInput) (*models.Product, error) {
	product := &models.Product{IsActive: true}
	if err := applyProductInput(product, input, true); err != nil {
		return nil, err
	}
	inactive := !product.IsActive
	product.IsActive = true
	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}
	if inactive {
		product.IsActive = false
		if err := s.productRepo.Update(ctx, product); err != nil {
			return nil, err
		}
	}
	return product, nil
}

// UpdateProduct 局部更新商品
func (s *CatalogService) UpdateProduct(ctx context.Context, id uint, input ProductInput) (*models.Product, error) {
	product, err := s.GetProduct(ctx, id, false)
	if err != nil {
		return nil, err
	}
	if err := applyProductInput(product, input, false); err != nil {
		return nil, err
	}
	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// DeleteProduct 删除商品；已加入购物车的引用会在读取时被剪除
func (s *CatalogService) DeleteProduct(ctx context.Context, id uint) error {
	if _, err := s.GetProduct(ctx, id, false); err != nil {
		return err
	}
	return s.productRepo.Delete(ctx, id)
}

// CreateKit 创建套件
func (s *CatalogService) CreateKit(ctx context.Context, input KitInput) (*models.Kit, error) {
	kit := &models.Kit{IsActive: true, IsDigital: true}
	if err := applyKitInput(kit, input, true); err != nil {
		return nil, err
	}
	inactive := !kit.IsActive
	physical := !kit.IsDigital
	kit.IsActive = true
	kit.IsDigital = true
	if err := s.kitRepo.Create(ctx, kit); err != nil {
		return nil, err
	}
	if inactive || physical {
		kit.IsActive = !inactive
		kit.IsDigital = !physical
		if err := s.kitRepo.Update(ctx, kit); err != nil {
			return nil, err
		}
	}
	return kit, nil
}

// UpdateKit 局部更新套件
func (s *CatalogService) UpdateKit(ctx context.Context, id uint, input KitInput) (*models.Kit, error) {
	kit, err := s.GetKit(ctx, id, false)
	if err != nil {
		return nil, err
	}
	if err := applyKitInput(kit, input, false); err != nil {
		return nil, err
	}
	if err := s.kitRepo.Update(ctx, kit); err != nil {
		return nil, err
	}
	return kit, nil
}

// DeleteKit 删除套件
func (s *CatalogService) DeleteKit(ctx context.Context, id uint) error {
	if _, err := s.GetKit(ctx, id, false); err != nil {
		return err
	}
	return s.kitRepo.Delete(ctx, id)
}

func applyProductInput(product *models.Product, input ProductInput, creating bool) error {
	if err := applyCommonCatalogInput(&product.Name, &product.Description, &product.PriceAmount, input.Name, input.Description, input.Price, creating); err != nil {
		return err
	}
	if input.Stock != nil {
		product.Stock = *input.Stock
	}
	if input.Category != nil {
		product.Category = strings.TrimSpace(*input.Category)
	}
	if input.Image != nil {
		product.Image = strings.TrimSpace(*input.Image)
	}
	if input.Features != nil {
		product.Features = models.StringArray(input.Features)
	}
	if input.Level != nil {
		product.Level = strings.TrimSpace(*input.Level)
	}
	if input.IsDigital != nil {
		product.IsDigital = *input.IsDigital
	}
	if input.IsActive != nil {
		product.IsActive = *input.IsActive
	}
	return nil
}

func applyKitInput(kit *models.Kit, input KitInput, creating bool) error {
	if err := applyCommonCatalogInput(&kit.Name, &kit.Description, &kit.PriceAmount, input.Name, input.Description, input.Price, creating); err != nil {
		return err
	}
	if input.Image != nil {
		kit.Image = strings.TrimSpace(*input.Image)
	}
	if input.Features != nil {
		kit.Features = models.StringArray(input.Features)
	}
	if input.Level != nil {
		kit.Level = strings.TrimSpace(*input.Level)
	}
	if input.IsDigital != nil {
		kit.IsDigital = *input.IsDigital
	}
	if input.IsActive != nil {
		kit.IsActive = *input.IsActive
	}
	return nil
}

func applyCommonCatalogInput(name, description *string, price *models.Money, inName, inDescription *string, inPrice *models.Money, creating bool) error {
	if inName != nil {
		*name = strings.TrimSpace(*inName)
	}
	if (creating || inName != nil) && *name == "" {
		return ErrCatalogNameRequired
	}
	if inDescription != nil {
		*description = strings.TrimSpace(*inDescription)
	}
	if inPrice != nil {
		if inPrice.IsNegative() {
			return ErrCatalogPriceInvalid
		}
		*price = models.NewMoneyFromDecimal(inPrice.Decimal)
	}
	return nil
}
