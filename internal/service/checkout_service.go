package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/kitshop/internal/constants"
	"github.com/kitshop/internal/logger"
	"github.com/kitshop/internal/metrics"
	"github.com/kitshop/internal/models"
	"github.com/kitshop/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// defaultMaxAddressLength 与 orders.shipping_address 列宽一致
const defaultMaxAddressLength = 500

// OrderNotifier 订单确认通知
type OrderNotifier interface {
	OrderConfirmed(ctx context.Context, order *models.Order)
}

// CheckoutService 结账服务：购物车转订单
type CheckoutService struct {
	cartRepo   repository.CartRepository
	orderRepo  repository.OrderRepository
	catalog    CatalogResolver
	notifier   OrderNotifier
	maxRetries int
	maxAddress int
}

// NewCheckoutService 创建结账服务
func NewCheckoutService(
	cartRepo repository.CartRepository,
	orderRepo repository.OrderRepository,
	catalog CatalogResolver,
	notifier OrderNotifier,
	maxRetries int,
	maxAddressLength int,
) *CheckoutService {
	if maxRetries <= 0 {
		maxRetries = 1
	}
	if maxAddressLength <= 0 {
		maxAddressLength = defaultMaxAddressLength
	}
	return &CheckoutService{
		cartRepo:   cartRepo,
		orderRepo:  orderRepo,
		catalog:    catalog,
		notifier:   notifier,
		maxRetries: maxRetries,
		maxAddress: maxAddressLength,
	}
}

// Checkout 按当前价格生成订单并清空购物车；版本冲突时有限次重试
func (s *CheckoutService) Checkout(ctx context.Context, userID uint, shippingAddress string) (*models.Order, error) {
	address := strings.TrimSpace(shippingAddress)
	if address == "" {
		return nil, ErrShippingAddressRequired
	}
	if utf8.RuneCountInString(address) > s.maxAddress {
		return nil, ErrShippingAddressTooLong
	}

	for attempt := 1; attempt <= s.maxRetries; attempt++ {
		order, err := s.attempt(ctx, userID, address)
		if err == nil {
			metrics.RecordCheckout(metrics.CheckoutResultSuccess)
			logger.Infow("checkout_completed",
				"user_id", userID,
				"order_id", order.ID,
				"total_amount", order.TotalAmount.String(),
				"attempt", attempt,
			)
			if s.notifier != nil {
				s.notifier.OrderConfirmed(ctx, order)
			}
			return order, nil
		}
		if !errors.Is(err, ErrCartConflict) {
			if errors.Is(err, ErrEmptyCart) {
				metrics.RecordCheckout(metrics.CheckoutResultEmpty)
			} else {
				metrics.RecordCheckout(metrics.CheckoutResultError)
			}
			return nil, err
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			metrics.RecordCheckout(metrics.CheckoutResultError)
			return nil, ctxErr
		}
		logger.Warnw("checkout_conflict_retry",
			"user_id", userID,
			"attempt", attempt,
			"max_retries", s.maxRetries,
		)
		metrics.RecordCheckoutRetry()
	}
	metrics.RecordCheckout(metrics.CheckoutResultConflict)
	return nil, ErrCartConflict
}

// attempt 一次结账尝试：快照外读，事务内比较版本后提交
func (s *CheckoutService) attempt(ctx context.Context, userID uint, address string) (*models.Order, error) {
	cart, err := s.cartRepo.GetByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load cart: %w", err)
	}
	if cart == nil || len(cart.Items) == 0 {
		return nil, ErrEmptyCart
	}

	lines, missing, err := resolveCartLines(ctx, s.catalog, cart.Items)
	if err != nil {
		return nil, err
	}

	if len(lines) == 0 {
		err := s.cartRepo.Transaction(ctx, func(tx *gorm.DB) error {
			repo := s.cartRepo.WithTx(tx)
			ok, err := repo.CompareAndBump(ctx, cart.ID, cart.Version)
			if err != nil {
				return err
			}
			if !ok {
				return ErrCartConflict
			}
			_, err = repo.DeleteItemsByIDs(ctx, cart.ID, cartItemIDs(missing))
			return err
		})
		if err != nil {
			if errors.Is(err, ErrCartConflict) {
				return nil, err
			}
			return nil, fmt.Errorf("prune cart items: %w", err)
		}
		logPrunedItems(userID, missing)
		return nil, ErrEmptyCart
	}

	order, items := buildOrder(userID, address, lines)
	err = s.cartRepo.Transaction(ctx, func(tx *gorm.DB) error {
		repo := s.cartRepo.WithTx(tx)
		ok, err := repo.CompareAndBump(ctx, cart.ID, cart.Version)
		if err != nil {
			return err
		}
		if !ok {
			return ErrCartConflict
		}
		if err := clearCartItems(ctx, repo, cart.ID); err != nil {
			return err
		}
		return s.orderRepo.WithTx(tx).Create(ctx, order, items)
	})
	if err != nil {
		if errors.Is(err, ErrCartConflict) {
			return nil, err
		}
		return nil, fmt.Errorf("create order: %w", err)
	}
	if len(missing) > 0 {
		logPrunedItems(userID, missing)
	}
	return order, nil
}

// buildOrder 按购物车顺序生成订单与订单项，金额精确计算
func buildOrder(userID uint, address string, lines []resolvedLine) (*models.Order, []models.OrderItem) {
	now := time.Now()
	total := decimal.Zero
	items := make([]models.OrderItem, 0, len(lines))
	for idx, line := range lines {
		subtotal := line.item.Price.Mul(decimal.NewFromInt(int64(line.entry.Quantity)))
		total = total.Add(subtotal)
		items = append(items, models.OrderItem{
			ItemID:          line.entry.ItemID,
			ItemKind:        line.entry.ItemKind,
			ItemName:        line.item.Name,
			Quantity:        line.entry.Quantity,
			PriceAtPurchase: models.NewMoneyFromDecimal(line.item.Price),
			TotalPrice:      models.NewMoneyFromDecimal(subtotal),
			Position:        idx,
			CreatedAt:       now,
		})
	}
	order := &models.Order{
		UserID:          userID,
		TotalAmount:     models.NewMoneyFromDecimal(total),
		ShippingAddress: address,
		Status:          constants.OrderStatusPending,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	return order, items
}
