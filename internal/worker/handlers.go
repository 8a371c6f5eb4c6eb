package worker

import (
	"context"
	"errors"
	"fmt"

	"github.com/kitshop/internal/logger"
	"github.com/kitshop/internal/queue"
	"github.com/kitshop/internal/service"

	"github.com/hibiken/asynq"
)

// EmailJobs 任务处理依赖的通知能力
type EmailJobs interface {
	SendOrderConfirmation(ctx context.Context, orderID uint) error
	SendKitRequestEmails(ctx context.Context, requestID uint) error
}

// Handlers 邮件任务处理器
type Handlers struct {
	jobs EmailJobs
}

// NewHandlers 创建任务处理器
func NewHandlers(jobs EmailJobs) *Handlers {
	return &Handlers{jobs: jobs}
}

// Register 注册全部任务类型
func (h *Handlers) Register(mux *asynq.ServeMux) {
	mux.HandleFunc(queue.TaskOrderConfirmationEmail, h.orderConfirmation)
	mux.HandleFunc(queue.TaskKitRequestEmail, h.kitRequest)
}

func (h *Handlers) orderConfirmation(ctx context.Context, task *asynq.Task) error {
	payload, err := queue.ParseOrderConfirmationEmailPayload(task.Payload())
	if err != nil {
		return dropTask("worker_order_confirmation_payload_invalid", err)
	}
	err = h.jobs.SendOrderConfirmation(ctx, payload.OrderID)
	return settle("worker_order_confirmation", err, service.ErrOrderNotFound,
		"order_id", payload.OrderID,
		"user_id", payload.UserID,
	)
}

func (h *Handlers) kitRequest(ctx context.Context, task *asynq.Task) error {
	payload, err := queue.ParseKitRequestEmailPayload(task.Payload())
	if err != nil {
		return dropTask("worker_kit_request_payload_invalid", err)
	}
	err = h.jobs.SendKitRequestEmails(ctx, payload.RequestID)
	return settle("worker_kit_request", err, service.ErrKitRequestNotFound,
		"request_id", payload.RequestID,
	)
}

// settle 把投递结果映射为 asynq 的重试语义：
// 记录缺失或邮件关闭时完成任务，收件人被拒时不再重试，其余错误交给重试
func settle(event string, err, missing error, fields ...interface{}) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, missing):
		logger.Debugw(event+"_skip_missing", fields...)
		return nil
	case errors.Is(err, service.ErrEmailServiceDisabled):
		logger.Debugw(event+"_skip_email_disabled", fields...)
		return nil
	case errors.Is(err, service.ErrInvalidEmail), errors.Is(err, service.ErrEmailRecipientRejected):
		return dropTask(event+"_receiver_rejected", err, fields...)
	default:
		logger.Warnw(event+"_send_failed", append(fields, "error", err)...)
		return err
	}
}

func dropTask(event string, err error, fields ...interface{}) error {
	logger.Warnw(event, append(fields, "error", err)...)
	return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
}
