package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/kitshop/internal/logger"
	"github.com/kitshop/internal/metrics"
	"github.com/kitshop/internal/models"
	"github.com/kitshop/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CartItemDetail 购物车项详情（按最新目录价格）
type CartItemDetail struct {
	ItemID    uint         `json:"item_id"`
	Kind      string       `json:"kind"`
	Name      string       `json:"name"`
	Image     string       `json:"image"`
	UnitPrice models.Money `json:"unit_price"`
	Quantity  int          `json:"quantity"`
	Subtotal  models.Money `json:"subtotal"`
}

// CartView 购物车视图
type CartView struct {
	UserID      uint             `json:"user_id"`
	Version     uint64           `json:"version"`
	Items       []CartItemDetail `json:"items"`
	TotalAmount models.Money     `json:"total_amount"`
	ItemCount   int              `json:"item_count"`
}

// CartService 购物车服务
type CartService struct {
	cartRepo    repository.CartRepository
	catalog     CatalogResolver
	maxQuantity int
}

// NewCartService 创建购物车服务
func NewCartService(cartRepo repository.CartRepository, catalog CatalogResolver, maxQuantity int) *CartService {
	return &CartService{
		cartRepo:    cartRepo,
		catalog:     catalog,
		maxQuantity: maxQuantity,
	}
}

// resolvedLine 已解析的购物车项
type resolvedLine struct {
	entry models.CartItem
	item  *CatalogItem
}

// AddItem 加入购物车；已有同一目录项时累加数量
func (s *CartService) AddItem(ctx context.Context, userID uint, ref ItemRef, quantity int) (*CartView, error) {
	if quantity <= 0 || (s.maxQuantity > 0 && quantity > s.maxQuantity) {
		return nil, ErrInvalidCartQuantity
	}
	kind, err := NormalizeItemKind(ref.Kind)
	if err != nil {
		return nil, err
	}
	ref.Kind = kind
	if _, err := s.catalog.Resolve(ctx, ref); err != nil {
		return nil, err
	}

	err = s.cartRepo.Transaction(ctx, func(tx *gorm.DB) error {
		repo := s.cartRepo.WithTx(tx)
		cart, err := repo.LockOrCreate(ctx, userID)
		if err != nil {
			return err
		}
		return repo.UpsertItemIncrement(ctx, cart.ID, ref.ID, ref.Kind, quantity)
	})
	if err != nil {
		return nil, fmt.Errorf("add cart item: %w", err)
	}
	metrics.RecordCartMutation(metrics.CartOpAdd, 1)
	return s.GetCart(ctx, userID)
}

// RemoveItem 移除购物车项；kind 为空时按 ID 匹配，命中多个类型视为歧义
func (s *CartService) RemoveItem(ctx context.Context, userID uint, itemID uint, rawKind string) (*CartView, error) {
	if itemID == 0 {
		return nil, ErrCartItemNotFound
	}
	kind := ""
	if rawKind != "" {
		normalized, err := NormalizeItemKind(rawKind)
		if err != nil {
			return nil, err
		}
		kind = normalized
	}

	err := s.cartRepo.Transaction(ctx, func(tx *gorm.DB) error {
		repo := s.cartRepo.WithTx(tx)
		cart, err := repo.LockByUser(ctx, userID)
		if err != nil {
			return err
		}
		if cart == nil {
			return ErrCartItemNotFound
		}
		if kind == "" {
			matches, err := repo.ListItemsByItemID(ctx, cart.ID, itemID)
			if err != nil {
				return err
			}
			if len(matches) == 0 {
				return ErrCartItemNotFound
			}
			if len(matches) > 1 {
				return ErrCartItemAmbiguous
			}
		}
		affected, err := repo.DeleteItemsByRef(ctx, cart.ID, itemID, kind)
		if err != nil {
			return err
		}
		if affected == 0 {
			return ErrCartItemNotFound
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrCartItemNotFound) || errors.Is(err, ErrCartItemAmbiguous) {
			return nil, err
		}
		return nil, fmt.Errorf("remove cart item: %w", err)
	}
	metrics.RecordCartMutation(metrics.CartOpRemove, 1)
	return s.GetCart(ctx, userID)
}

// GetCart 读取购物车，已下架或删除的目录项会被剪除
func (s *CartService) GetCart(ctx context.Context, userID uint) (*CartView, error) {
	cart, err := s.cartRepo.GetByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load cart: %w", err)
	}
	if cart == nil {
		return emptyCartView(userID), nil
	}

	lines, missing, err := resolveCartLines(ctx, s.catalog, cart.Items)
	if err != nil {
		return nil, err
	}
	version := cart.Version
	if len(missing) > 0 {
		pruned, err := s.pruneMissing(ctx, userID, missing)
		if err != nil {
			return nil, err
		}
		if pruned != nil {
			version = pruned.Version
		}
	}

	view := buildCartView(userID, lines)
	view.Version = version
	return view, nil
}

// Clear 清空购物车，不存在时为空操作
func (s *CartService) Clear(ctx context.Context, userID uint) error {
	err := s.cartRepo.Transaction(ctx, func(tx *gorm.DB) error {
		repo := s.cartRepo.WithTx(tx)
		cart, err := repo.LockByUser(ctx, userID)
		if err != nil || cart == nil {
			return err
		}
		return clearCartItems(ctx, repo, cart.ID)
	})
	if err != nil {
		return fmt.Errorf("clear cart: %w", err)
	}
	return nil
}

// clearCartItems 在调用方事务内清空购物车项（repo 需已绑定事务）
func clearCartItems(ctx context.Context, repo repository.CartRepository, cartID uint) error {
	removed, err := repo.ClearItems(ctx, cartID)
	if err != nil {
		return err
	}
	metrics.RecordCartMutation(metrics.CartOpClear, int(removed))
	return nil
}

func (s *CartService) pruneMissing(ctx context.Context, userID uint, missing []models.CartItem) (*models.Cart, error) {
	var locked *models.Cart
	err := s.cartRepo.Transaction(ctx, func(tx *gorm.DB) error {
		repo := s.cartRepo.WithTx(tx)
		cart, err := repo.LockByUser(ctx, userID)
		if err != nil || cart == nil {
			return err
		}
		locked = cart
		_, err = repo.DeleteItemsByIDs(ctx, cart.ID, cartItemIDs(missing))
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("prune cart items: %w", err)
	}
	logPrunedItems(userID, missing)
	return locked, nil
}

// resolveCartLines 按购物车顺序解析目录项，返回可用项与缺失项
func resolveCartLines(ctx context.Context, catalog CatalogResolver, entries []models.CartItem) ([]resolvedLine, []models.CartItem, error) {
	lines := make([]resolvedLine, 0, len(entries))
	var missing []models.CartItem
	for _, entry := range entries {
		item, err := catalog.Resolve(ctx, ItemRef{ID: entry.ItemID, Kind: entry.ItemKind})
		if err != nil {
			if errors.Is(err, ErrCatalogItemNotFound) || errors.Is(err, ErrInvalidItemKind) {
				missing = append(missing, entry)
				continue
			}
			return nil, nil, err
		}
		lines = append(lines, resolvedLine{entry: entry, item: item})
	}
	return lines, missing, nil
}

func buildCartView(userID uint, lines []resolvedLine) *CartView {
	view := emptyCartView(userID)
	total := decimal.Zero
	for _, line := range lines {
		subtotal := line.item.Price.Mul(decimal.NewFromInt(int64(line.entry.Quantity)))
		total = total.Add(subtotal)
		view.ItemCount += line.entry.Quantity
		view.Items = append(view.Items, CartItemDetail{
			ItemID:    line.entry.ItemID,
			Kind:      line.entry.ItemKind,
			Name:      line.item.Name,
			Image:     line.item.Image,
			UnitPrice: models.NewMoneyFromDecimal(line.item.Price),
			Quantity:  line.entry.Quantity,
			Subtotal:  models.NewMoneyFromDecimal(subtotal),
		})
	}
	view.TotalAmount = models.NewMoneyFromDecimal(total)
	return view
}

func emptyCartView(userID uint) *CartView {
	return &CartView{
		UserID:      userID,
		Items:       make([]CartItemDetail, 0),
		TotalAmount: models.NewMoneyFromDecimal(decimal.Zero),
	}
}

func cartItemIDs(items []models.CartItem) []uint {
	ids := make([]uint, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ID)
	}
	return ids
}

func logPrunedItems(userID uint, items []models.CartItem) {
	for _, item := range items {
		logger.Warnw("cart_item_pruned",
			"user_id", userID,
			"item_id", item.ItemID,
			"kind", item.ItemKind,
			"quantity", item.Quantity,
		)
	}
	metrics.RecordCartMutation(metrics.CartOpPrune, len(items))
}
