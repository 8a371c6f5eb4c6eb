package repository

import (
	"context"
	"errors"
	"time"

	"github.com/kitshop/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CartRepository 购物车数据访问接口
type CartRepository interface {
	GetByUser(ctx context.Context, userID uint) (*models.Cart, error)
	LockOrCreate(ctx context.Context, userID uint) (*models.Cart, error)
	LockByUser(ctx context.Context, userID uint) (*models.Cart, error)
	CompareAndBump(ctx context.Context, cartID uint, version uint64) (bool, error)
	ListItems(ctx context.Context, cartID uint) ([]models.CartItem, error)
	ListItemsByItemID(ctx context.Context, cartID uint, itemID uint) ([]models.CartItem, error)
	UpsertItemIncrement(ctx context.Context, cartID uint, itemID uint, kind string, quantity int) error
	DeleteItemsByRef(ctx context.Context, cartID uint, itemID uint, kind string) (int64, error)
	DeleteItemsByIDs(ctx context.Context, cartID uint, ids []uint) (int64, error)
	ClearItems(ctx context.Context, cartID uint) (int64, error)
	Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error
	WithTx(tx *gorm.DB) CartRepository
}

// GormCartRepository GORM 实现
type GormCartRepository struct {
	db *gorm.DB
}

// NewCartRepository 创建购物车仓库
func NewCartRepository(db *gorm.DB) *GormCartRepository {
	return &GormCartRepository{db: db}
}

// WithTx 绑定事务
func (r *GormCartRepository) WithTx(tx *gorm.DB) CartRepository {
	if tx == nil {
		return r
	}
	return &GormCartRepository{db: tx}
}

// Transaction 执行事务
func (r *GormCartRepository) Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	if fn == nil {
		return nil
	}
	return r.db.WithContext(ctx).Transaction(fn)
}

// GetByUser 获取用户购物车（含购物车项，按加入顺序），不存在返回 nil
func (r *GormCartRepository) GetByUser(ctx context.Context, userID uint) (*models.Cart, error) {
	var cart models.Cart
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("id asc")
		}).
		Where("user_id = ?", userID).
		First(&cart).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &cart, nil
}

// LockOrCreate 懒创建购物车并递增版本号；在事务内调用时版本更新会持有行锁，串行化同一用户的变更
func (r *GormCartRepository) LockOrCreate(ctx context.Context, userID uint) (*models.Cart, error) {
	db := r.db.WithContext(ctx)
	seed := models.Cart{UserID: userID}
	if err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoNothing: true,
	}).Create(&seed).Error; err != nil {
		return nil, err
	}
	return r.LockByUser(ctx, userID)
}

// LockByUser 递增已有购物车的版本号并返回最新状态，不存在返回 nil
func (r *GormCartRepository) LockByUser(ctx context.Context, userID uint) (*models.Cart, error) {
	db := r.db.WithContext(ctx)
	result := db.Model(&models.Cart{}).
		Where("user_id = ?", userID).
		Updates(map[string]interface{}{
			"version":    gorm.Expr("version + 1"),
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, nil
	}
	var cart models.Cart
	if err := db.Where("user_id = ?", userID).First(&cart).Error; err != nil {
		return nil, err
	}
	return &cart, nil
}

// CompareAndBump 版本号匹配时递增，返回是否成功
func (r *GormCartRepository) CompareAndBump(ctx context.Context, cartID uint, version uint64) (bool, error) {
	result := r.db.WithContext(ctx).Model(&models.Cart{}).
		Where("id = ? AND version = ?", cartID, version).
		Updates(map[string]interface{}{
			"version":    gorm.Expr("version + 1"),
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

// ListItems 获取购物车项（按加入顺序）
func (r *GormCartRepository) ListItems(ctx context.Context, cartID uint) ([]models.CartItem, error) {
	var items []models.CartItem
	if err := r.db.WithContext(ctx).Where("cart_id = ?", cartID).Order("id asc").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// ListItemsByItemID 获取指定目录项 ID 的购物车项（不区分类型）
func (r *GormCartRepository) ListItemsByItemID(ctx context.Context, cartID uint, itemID uint) ([]models.CartItem, error) {
	var items []models.CartItem
	if err := r.db.WithContext(ctx).
		Where("cart_id = ? AND item_id = ?", cartID, itemID).
		Order("id asc").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// UpsertItemIncrement 单条语句完成“存在则累加，否则追加”
func (r *GormCartRepository) UpsertItemIncrement(ctx context.Context, cartID uint, itemID uint, kind string, quantity int) error {
	now := time.Now()
	item := models.CartItem{
		CartID:    cartID,
		ItemID:    itemID,
		ItemKind:  kind,
		Quantity:  quantity,
		CreatedAt: now,
		UpdatedAt: now,
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "cart_id"}, {Name: "item_id"}, {Name: "item_kind"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"quantity":   gorm.Expr("cart_items.quantity + excluded.quantity"),
			"updated_at": now,
		}),
	}).Create(&item).Error
}

// DeleteItemsByRef 按目录项删除；kind 为空时匹配所有类型
func (r *GormCartRepository) DeleteItemsByRef(ctx context.Context, cartID uint, itemID uint, kind string) (int64, error) {
	query := r.db.WithContext(ctx).Where("cart_id = ? AND item_id = ?", cartID, itemID)
	if kind != "" {
		query = query.Where("item_kind = ?", kind)
	}
	result := query.Delete(&models.CartItem{})
	return result.RowsAffected, result.Error
}

// DeleteItemsByIDs 按购物车项主键删除
func (r *GormCartRepository) DeleteItemsByIDs(ctx context.Context, cartID uint, ids []uint) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	result := r.db.WithContext(ctx).
		Where("cart_id = ? AND id IN ?", cartID, ids).
		Delete(&models.CartItem{})
	return result.RowsAffected, result.Error
}

// ClearItems 清空购物车
func (r *GormCartRepository) ClearItems(ctx context.Context, cartID uint) (int64, error) {
	result := r.db.WithContext(ctx).Where("cart_id = ?", cartID).Delete(&models.CartItem{})
	return result.RowsAffected, result.Error
}
