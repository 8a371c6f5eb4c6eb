package worker

import (
	"context"
	"errors"
	"fmt"

	"github.com/kitshop/internal/config"
	"github.com/kitshop/internal/logger"
	"github.com/kitshop/internal/queue"

	"github.com/hibiken/asynq"
)

// ErrQueueDisabled 队列未启用时不能启动 worker
var ErrQueueDisabled = errors.New("queue disabled")

// Server 异步任务消费进程
type Server struct {
	srv *asynq.Server
	mux *asynq.ServeMux
}

// NewServer 按队列配置创建消费进程
func NewServer(cfg *config.QueueConfig, handlers *Handlers) (*Server, error) {
	if cfg == nil || !cfg.Enabled {
		return nil, ErrQueueDisabled
	}
	if handlers == nil {
		return nil, errors.New("worker handlers are nil")
	}
	opt, serverCfg := queue.BuildServerConfig(cfg)
	serverCfg.ErrorHandler = asynq.ErrorHandlerFunc(logTaskFailure)

	mux := asynq.NewServeMux()
	handlers.Register(mux)
	return &Server{srv: asynq.NewServer(opt, serverCfg), mux: mux}, nil
}

// Run 启动消费并阻塞到 ctx 结束，随后等待进行中的任务完成
func (s *Server) Run(ctx context.Context) error {
	if err := s.srv.Start(s.mux); err != nil {
		return fmt.Errorf("start worker: %w", err)
	}
	logger.Infow("worker_started")
	<-ctx.Done()
	s.srv.Shutdown()
	logger.Infow("worker_stopped")
	return nil
}

func logTaskFailure(ctx context.Context, task *asynq.Task, err error) {
	retried, _ := asynq.GetRetryCount(ctx)
	maxRetry, _ := asynq.GetMaxRetry(ctx)
	logger.Warnw("worker_task_failed",
		"type", task.Type(),
		"retry", retried,
		"max_retry", maxRetry,
		"error", err,
	)
}
