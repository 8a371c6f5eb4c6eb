package repository

import (
	"context"
	"errors"

	"github.com/kitshop/internal/models"

	"gorm.io/gorm"
)

// KitRepository 套件数据访问接口（Category 过滤对应等级 level）
type KitRepository interface {
	List(ctx context.Context, filter CatalogListFilter) ([]models.Kit, int64, error)
	GetByID(ctx context.Context, id uint, onlyActive bool) (*models.Kit, error)
	Create(ctx context.Context, kit *models.Kit) error
	Update(ctx context.Context, kit *models.Kit) error
	Delete(ctx context.Context, id uint) error
}

// GormKitRepository GORM 实现
type GormKitRepository struct {
	db *gorm.DB
}

// NewKitRepository 创建套件仓库
func NewKitRepository(db *gorm.DB) *GormKitRepository {
	return &GormKitRepository{db: db}
}

// List 套件列表
func (r *GormKitRepository) List(ctx context.Context, filter CatalogListFilter) ([]models.Kit, int64, error) {
	var kits []models.Kit
	query := r.db.WithContext(ctx).Model(&models.Kit{})
	if filter.OnlyActive {
		query = query.Where("is_active = ?", true)
	}
	if filter.Category != "" {
		query = query.Where("level = ?", filter.Category)
	}
	query = applyKeywordSearch(query, filter.Search, "name", "description")

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	query = applyPagination(query, filter.Page, filter.PageSize)
	if err := query.Order("id desc").Find(&kits).Error; err != nil {
		return nil, 0, err
	}
	return kits, total, nil
}

// GetByID 根据 ID 获取套件，未找到返回 nil
func (r *GormKitRepository) GetByID(ctx context.Context, id uint, onlyActive bool) (*models.Kit, error) {
	var kit models.Kit
	query := r.db.WithContext(ctx)
	if onlyActive {
		query = query.Where("is_active = ?", true)
	}
	if err := query.First(&kit, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &kit, nil
}

// Create 创建套件
func (r *GormKitRepository) Create(ctx context.Context, kit *models.Kit) error {
	return r.db.WithContext(ctx).Create(kit).Error
}

// Update 更新套件
func (r *GormKitRepository) Update(ctx context.Context, kit *models.Kit) error {
	return r.db.WithContext(ctx).Save(kit).Error
}

// Delete 软删除套件
func (r *GormKitRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Kit{}, id).Error
}
