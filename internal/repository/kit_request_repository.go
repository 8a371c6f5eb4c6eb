package repository

import (
	"context"
	"errors"

	"github.com/kitshop/internal/models"

	"gorm.io/gorm"
)

// KitRequestRepository 套件咨询数据访问接口
type KitRequestRepository interface {
	Create(ctx context.Context, req *models.KitRequest) error
	GetByID(ctx context.Context, id uint) (*models.KitRequest, error)
	List(ctx context.Context, filter KitRequestListFilter) ([]models.KitRequest, int64, error)
	UpdateStatus(ctx context.Context, id uint, status string) (bool, error)
}

// GormKitRequestRepository GORM 实现
type GormKitRequestRepository struct {
	db *gorm.DB
}

// NewKitRequestRepository 创建套件咨询仓库
func NewKitRequestRepository(db *gorm.DB) *GormKitRequestRepository {
	return &GormKitRequestRepository{db: db}
}

// Create 新增咨询
func (r *GormKitRequestRepository) Create(ctx context.Context, req *models.KitRequest) error {
	return r.db.WithContext(ctx).Create(req).Error
}

// GetByID 根据 ID 获取咨询
func (r *GormKitRequestRepository) GetByID(ctx context.Context, id uint) (*models.KitRequest, error) {
	var req models.KitRequest
	if err := r.db.WithContext(ctx).First(&req, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &req, nil
}

// List 咨询列表（按提交时间倒序）
func (r *GormKitRequestRepository) List(ctx context.Context, filter KitRequestListFilter) ([]models.KitRequest, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.KitRequest{})
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Email != "" {
		query = query.Where("email = ?", filter.Email)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var requests []models.KitRequest
	query = applyPagination(query, filter.Page, filter.PageSize)
	if err := query.Order("created_at desc, id desc").Find(&requests).Error; err != nil {
		return nil, 0, err
	}
	return requests, total, nil
}

// UpdateStatus 更新跟进状态，记录不存在时返回 false
func (r *GormKitRequestRepository) UpdateStatus(ctx context.Context, id uint, status string) (bool, error) {
	result := r.db.WithContext(ctx).Model(&models.KitRequest{}).Where("id = ?", id).Update("status", status)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
