package repository

import "time"

// CatalogListFilter 查询商品/套件列表的过滤条件
type CatalogListFilter struct {
	Page       int
	PageSize   int
	Category   string
	Search     string
	OnlyActive bool
}

// OrderListFilter 查询订单列表的过滤条件
type OrderListFilter struct {
	Page        int
	PageSize    int
	UserID      uint
	Status      string
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}

// KitRequestListFilter 查询套件咨询列表的过滤条件
type KitRequestListFilter struct {
	Page     int
	PageSize int
	Status   string
	Email    string
}
