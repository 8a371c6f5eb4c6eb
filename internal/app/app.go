package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/kitshop/internal/config"
	"github.com/kitshop/internal/logger"
	"github.com/kitshop/internal/provider"
	"github.com/kitshop/internal/router"
	"github.com/kitshop/internal/worker"

	"golang.org/x/sync/errgroup"
)

// component 随进程生命周期运行的组件，ctx 结束时应返回 nil
type component struct {
	name string
	run  func(ctx context.Context) error
}

// Run 按模式启动 API 与 worker，阻塞到 ctx 结束或任一组件失败
func Run(ctx context.Context, cfg *config.Config, mode Mode) error {
	if cfg == nil {
		return errors.New("config is nil")
	}
	container, err := provider.NewContainer(cfg)
	if err != nil {
		return fmt.Errorf("init container: %w", err)
	}
	defer func() {
		container.NotificationService.Wait()
		if err := container.Close(); err != nil {
			logger.Warnw("app_close_failed", "error", err)
		}
	}()

	components, err := assemble(cfg, container, mode)
	if err != nil {
		return err
	}
	logger.Infow("app_start", "mode", mode, "addr", listenAddr(cfg.Server), "queue_enabled", cfg.Queue.Enabled)
	return runComponents(ctx, components)
}

func assemble(cfg *config.Config, container *provider.Container, mode Mode) ([]component, error) {
	var components []component
	if mode.servesHTTP() {
		api := newAPIServer(listenAddr(cfg.Server), router.SetupRouter(cfg, container), shutdownTimeout)
		components = append(components, component{name: "api", run: api.serve})
	}
	if mode.consumesQueue(cfg.Queue.Enabled) {
		srv, err := worker.NewServer(&cfg.Queue, worker.NewHandlers(container.NotificationService))
		if err != nil {
			return nil, fmt.Errorf("init worker: %w", err)
		}
		components = append(components, component{name: "worker", run: srv.Run})
	} else if mode == ModeAll {
		logger.Infow("app_worker_skipped", "reason", "queue_disabled")
	}
	if len(components) == 0 {
		return nil, errors.New("no components to run (check mode and queue config)")
	}
	return components, nil
}

// runComponents 任一组件出错即取消其余组件
func runComponents(ctx context.Context, components []component) error {
	if len(components) == 0 {
		return errors.New("no components to run")
	}
	g, gctx := errgroup.WithContext(ctx)
	for _, c := range components {
		g.Go(func() error {
			logger.Infow("component_start", "component", c.name)
			err := c.run(gctx)
			logger.Infow("component_exit", "component", c.name, "error", err)
			if err != nil {
				return fmt.Errorf("%s: %w", c.name, err)
			}
			return nil
		})
	}
	return g.Wait()
}

func listenAddr(cfg config.ServerConfig) string {
	return cfg.Host + ":" + cfg.Port
}
