package queue

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/kitshop/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// TaskOrderConfirmationEmail 订单确认邮件任务
	TaskOrderConfirmationEmail = constants.TaskOrderConfirmationEmail
	// TaskKitRequestEmail 套件咨询通知邮件任务
	TaskKitRequestEmail = constants.TaskKitRequestEmail
)

// taskRoute 任务投递规则
type taskRoute struct {
	queue   string
	timeout time.Duration
}

// 订单确认走高优先级队列，咨询线索走默认队列
var taskRoutes = map[string]taskRoute{
	TaskOrderConfirmationEmail: {queue: constants.QueueCritical, timeout: 30 * time.Second},
	TaskKitRequestEmail:        {queue: constants.QueueDefault, timeout: time.Minute},
}

// routeFor 返回任务类型对应的投递规则，未登记的任务落到默认队列
func routeFor(taskType string) taskRoute {
	if route, ok := taskRoutes[taskType]; ok {
		return route
	}
	return taskRoute{queue: constants.QueueDefault}
}

// OrderConfirmationEmailPayload 订单确认邮件任务载荷
type OrderConfirmationEmailPayload struct {
	OrderID uint `json:"order_id"`
	UserID  uint `json:"user_id"`
}

// KitRequestEmailPayload 套件咨询邮件任务载荷
type KitRequestEmailPayload struct {
	RequestID uint `json:"request_id"`
}

// NewOrderConfirmationEmailTask 创建订单确认邮件任务
func NewOrderConfirmationEmailTask(payload OrderConfirmationEmailPayload) (*asynq.Task, error) {
	return newTask(TaskOrderConfirmationEmail, payload)
}

// NewKitRequestEmailTask 创建套件咨询邮件任务
func NewKitRequestEmailTask(payload KitRequestEmailPayload) (*asynq.Task, error) {
	return newTask(TaskKitRequestEmail, payload)
}

// ParseOrderConfirmationEmailPayload 解析订单确认邮件任务载荷
func ParseOrderConfirmationEmailPayload(body []byte) (OrderConfirmationEmailPayload, error) {
	var payload OrderConfirmationEmailPayload
	if err := decodePayload(TaskOrderConfirmationEmail, body, &payload); err != nil {
		return payload, err
	}
	if payload.OrderID == 0 {
		return payload, fmt.Errorf("%s payload missing order_id", TaskOrderConfirmationEmail)
	}
	return payload, nil
}

// ParseKitRequestEmailPayload 解析套件咨询邮件任务载荷
func ParseKitRequestEmailPayload(body []byte) (KitRequestEmailPayload, error) {
	var payload KitRequestEmailPayload
	if err := decodePayload(TaskKitRequestEmail, body, &payload); err != nil {
		return payload, err
	}
	if payload.RequestID == 0 {
		return payload, fmt.Errorf("%s payload missing request_id", TaskKitRequestEmail)
	}
	return payload, nil
}

func newTask(taskType string, payload interface{}) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode %s payload: %w", taskType, err)
	}
	return asynq.NewTask(taskType, body), nil
}

func decodePayload(taskType string, body []byte, dst interface{}) error {
	if err := json.Unmarshal(body, dst); err != nil {
		return fmt.Errorf("decode %s payload: %w", taskType, err)
	}
	return nil
}
