package service

import (
	"context"
	"fmt"

	"github.com/kitshop/internal/models"
	"github.com/kitshop/internal/repository"
)

// OrderService 订单查询服务
type OrderService struct {
	orderRepo repository.OrderRepository
}

// NewOrderService 创建订单服务
func NewOrderService(orderRepo repository.OrderRepository) *OrderService {
	return &OrderService{orderRepo: orderRepo}
}

// ListByUser 用户订单列表，结果为空时返回 ErrOrderNotFound
func (s *OrderService) ListByUser(ctx context.Context, userID uint, filter repository.OrderListFilter) ([]models.Order, int64, error) {
	filter.UserID = userID
	orders, total, err := s.orderRepo.ListByUser(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("list user orders: %w", err)
	}
	if total == 0 {
		return nil, 0, ErrOrderNotFound
	}
	return orders, total, nil
}

// ListAll 全部订单（管理端），结果为空时返回 ErrOrderNotFound
func (s *OrderService) ListAll(ctx context.Context, filter repository.OrderListFilter) ([]models.Order, int64, error) {
	orders, total, err := s.orderRepo.ListAll(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("list orders: %w", err)
	}
	if total == 0 {
		return nil, 0, ErrOrderNotFound
	}
	return orders, total, nil
}

// GetForUser 获取用户自己的订单
func (s *OrderService) GetForUser(ctx context.Context, userID uint, orderID uint) (*models.Order, error) {
	if orderID == 0 {
		return nil, ErrOrderNotFound
	}
	order, err := s.orderRepo.GetByIDAndUser(ctx, orderID, userID)
	if err != nil {
		return nil, fmt.Errorf("get order: %w", err)
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// GetByID 获取订单（不校验归属）
func (s *OrderService) GetByID(ctx context.Context, orderID uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("get order: %w", err)
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}
