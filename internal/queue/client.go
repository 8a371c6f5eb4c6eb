package queue

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/kitshop/internal/config"
	"github.com/kitshop/internal/constants"

	"github.com/hibiken/asynq"
)

// ErrQueueDisabled 队列未启用
var ErrQueueDisabled = errors.New("queue disabled")

// Client 通知任务投递客户端
type Client struct {
	client   *asynq.Client
	maxRetry int
}

// NewClient 创建队列客户端，未启用时返回空壳客户端
func NewClient(cfg *config.QueueConfig) (*Client, error) {
	if cfg == nil || !cfg.Enabled {
		return &Client{}, nil
	}
	return &Client{
		client:   asynq.NewClient(redisOpt(cfg)),
		maxRetry: cfg.MaxRetry,
	}, nil
}

// Enabled 判断是否启用
func (c *Client) Enabled() bool {
	return c != nil && c.client != nil
}

// Close 关闭客户端
func (c *Client) Close() error {
	if !c.Enabled() {
		return nil
	}
	return c.client.Close()
}

// EnqueueOrderConfirmationEmail 推送订单确认邮件任务
func (c *Client) EnqueueOrderConfirmationEmail(ctx context.Context, payload OrderConfirmationEmailPayload, opts ...asynq.Option) error {
	if !c.Enabled() {
		return ErrQueueDisabled
	}
	task, err := NewOrderConfirmationEmailTask(payload)
	if err != nil {
		return err
	}
	return c.enqueue(ctx, task, opts)
}

// EnqueueKitRequestEmail 推送套件咨询邮件任务
func (c *Client) EnqueueKitRequestEmail(ctx context.Context, payload KitRequestEmailPayload, opts ...asynq.Option) error {
	if !c.Enabled() {
		return ErrQueueDisabled
	}
	task, err := NewKitRequestEmailTask(payload)
	if err != nil {
		return err
	}
	return c.enqueue(ctx, task, opts)
}

func (c *Client) enqueue(ctx context.Context, task *asynq.Task, extra []asynq.Option) error {
	_, err := c.client.EnqueueContext(ctx, task, c.optionsFor(task.Type(), extra)...)
	if err != nil {
		return fmt.Errorf("enqueue %s: %w", task.Type(), err)
	}
	return nil
}

// optionsFor 合并任务路由与调用方追加的选项，调用方选项优先生效
func (c *Client) optionsFor(taskType string, extra []asynq.Option) []asynq.Option {
	route := routeFor(taskType)
	options := []asynq.Option{asynq.Queue(route.queue)}
	if route.timeout > 0 {
		options = append(options, asynq.Timeout(route.timeout))
	}
	if c.maxRetry > 0 {
		options = append(options, asynq.MaxRetry(c.maxRetry))
	}
	return append(options, extra...)
}

// BuildServerConfig 生成 worker 端配置
func BuildServerConfig(cfg *config.QueueConfig) (asynq.RedisClientOpt, asynq.Config) {
	serverCfg := asynq.Config{
		Concurrency: 10,
		Queues: map[string]int{
			constants.QueueCritical: 6,
			constants.QueueDefault:  3,
		},
	}
	if cfg != nil {
		if cfg.Concurrency > 0 {
			serverCfg.Concurrency = cfg.Concurrency
		}
		if len(cfg.Queues) > 0 {
			serverCfg.Queues = cfg.Queues
		}
	}
	return redisOpt(cfg), serverCfg
}

func redisOpt(cfg *config.QueueConfig) asynq.RedisClientOpt {
	opt := asynq.RedisClientOpt{Addr: "127.0.0.1:6379"}
	if cfg == nil {
		return opt
	}
	host := strings.TrimSpace(cfg.Host)
	if host == "" {
		host = "127.0.0.1"
	}
	port := cfg.Port
	if port <= 0 {
		port = 6379
	}
	opt.Addr = fmt.Sprintf("%s:%d", host, port)
	opt.Password = cfg.Password
	opt.DB = cfg.DB
	return opt
}
