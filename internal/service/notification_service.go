package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/kitshop/internal/logger"
	"github.com/kitshop/internal/models"
	"github.com/kitshop/internal/queue"
	"github.com/kitshop/internal/repository"

	"github.com/hibiken/asynq"
)

// NotificationQueue 通知任务队列
type NotificationQueue interface {
	Enabled() bool
	EnqueueOrderConfirmationEmail(ctx context.Context, payload queue.OrderConfirmationEmailPayload, opts ...asynq.Option) error
	EnqueueKitRequestEmail(ctx context.Context, payload queue.KitRequestEmailPayload, opts ...asynq.Option) error
}

// NotificationService 邮件通知分发：优先入队，队列不可用时后台直接发送
type NotificationService struct {
	queue          NotificationQueue
	sender         EmailSender
	userRepo       repository.UserRepository
	orderRepo      repository.OrderRepository
	kitRequestRepo repository.KitRequestRepository
	wg             sync.WaitGroup
}

// NewNotificationService 创建通知服务
func NewNotificationService(
	queue NotificationQueue,
	sender EmailSender,
	userRepo repository.UserRepository,
	orderRepo repository.OrderRepository,
	kitRequestRepo repository.KitRequestRepository,
) *NotificationService {
	return &NotificationService{
		queue:          queue,
		sender:         sender,
		userRepo:       userRepo,
		orderRepo:      orderRepo,
		kitRequestRepo: kitRequestRepo,
	}
}

// OrderConfirmed 订单创建后的确认通知，失败只记录日志
func (s *NotificationService) OrderConfirmed(ctx context.Context, order *models.Order) {
	if s == nil || order == nil {
		return
	}
	if s.queueEnabled() {
		err := s.queue.EnqueueOrderConfirmationEmail(ctx, queue.OrderConfirmationEmailPayload{
			OrderID: order.ID,
			UserID:  order.UserID,
		})
		if err == nil {
			return
		}
		logger.Warnw("order_confirmation_enqueue_failed", "order_id", order.ID, "error", err)
	}
	snapshot := *order
	s.background("order_confirmation_dispatch_failed", "order_id", snapshot.ID, func(ctx context.Context) error {
		return s.deliverOrderConfirmation(ctx, &snapshot)
	})
}

// KitRequestReceived 新咨询通知，失败只记录日志
func (s *NotificationService) KitRequestReceived(ctx context.Context, req *models.KitRequest) {
	if s == nil || req == nil {
		return
	}
	if s.queueEnabled() {
		err := s.queue.EnqueueKitRequestEmail(ctx, queue.KitRequestEmailPayload{RequestID: req.ID})
		if err == nil {
			return
		}
		logger.Warnw("kit_request_enqueue_failed", "request_id", req.ID, "error", err)
	}
	snapshot := *req
	s.background("kit_request_dispatch_failed", "request_id", snapshot.ID, func(ctx context.Context) error {
		return s.deliverKitRequest(ctx, &snapshot)
	})
}

// Wait 等待后台直接发送的通知完成
func (s *NotificationService) Wait() {
	if s == nil {
		return
	}
	s.wg.Wait()
}

// SendOrderConfirmation 按订单 ID 发送确认邮件（供队列任务使用）
func (s *NotificationService) SendOrderConfirmation(ctx context.Context, orderID uint) error {
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return fmt.Errorf("load order %d: %w", orderID, err)
	}
	if order == nil {
		return ErrOrderNotFound
	}
	return s.deliverOrderConfirmation(ctx, order)
}

// SendKitRequestEmails 按咨询 ID 发送管理员通知与访客回执（供队列任务使用）
func (s *NotificationService) SendKitRequestEmails(ctx context.Context, requestID uint) error {
	if s.kitRequestRepo == nil {
		return ErrKitRequestNotFound
	}
	req, err := s.kitRequestRepo.GetByID(ctx, requestID)
	if err != nil {
		return fmt.Errorf("load kit request %d: %w", requestID, err)
	}
	if req == nil {
		return ErrKitRequestNotFound
	}
	return s.deliverKitRequest(ctx, req)
}

func (s *NotificationService) queueEnabled() bool {
	return s.queue != nil && s.queue.Enabled()
}

func (s *NotificationService) background(failEvent, idKey string, id uint, fn func(ctx context.Context) error) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		if err := fn(context.Background()); err != nil && !errors.Is(err, ErrEmailServiceDisabled) {
			logger.Warnw(failEvent, idKey, id, "error", err)
		}
	}()
}

func (s *NotificationService) deliverOrderConfirmation(ctx context.Context, order *models.Order) error {
	if s.sender == nil {
		return ErrEmailServiceDisabled
	}
	user, err := s.userRepo.GetByID(ctx, order.UserID)
	if err != nil {
		return fmt.Errorf("load user %d: %w", order.UserID, err)
	}
	if user == nil || strings.TrimSpace(user.Email) == "" {
		logger.Infow("order_confirmation_skipped",
			"order_id", order.ID,
			"user_id", order.UserID,
			"reason", "no_receiver",
		)
		return nil
	}
	err = s.sender.SendOrderConfirmation(ctx, user.Email, user.DisplayName(), user.Locale, order)
	if err != nil {
		if errors.Is(err, ErrEmailServiceDisabled) {
			logger.Debugw("order_confirmation_skipped", "order_id", order.ID, "reason", "email_disabled")
		}
		return err
	}
	logger.Infow("order_confirmation_sent", "order_id", order.ID, "user_id", user.ID)
	return nil
}

// deliverKitRequest 管理员通知失败时不再发送访客回执，便于任务整体重试
func (s *NotificationService) deliverKitRequest(ctx context.Context, req *models.KitRequest) error {
	if s.sender == nil {
		return ErrEmailServiceDisabled
	}
	if err := s.sender.SendKitRequestLead(ctx, req); err != nil {
		if errors.Is(err, ErrEmailServiceDisabled) {
			logger.Debugw("kit_request_email_skipped", "request_id", req.ID, "reason", "email_disabled")
		}
		return err
	}
	if err := s.sender.SendKitRequestReceipt(ctx, req); err != nil {
		if errors.Is(err, ErrEmailRecipientRejected) {
			logger.Warnw("kit_request_receipt_rejected", "request_id", req.ID, "error", err)
			return nil
		}
		return err
	}
	logger.Infow("kit_request_emails_sent", "request_id", req.ID)
	return nil
}
