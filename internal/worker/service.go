package worker

import (
	"context"
	"errors"
	"time"

	"github.com/digistock/internal/config"
	"github.com/digistock/internal/logger"
	"github.com/digistock/internal/queue"

	"github.com/hibiken/asynq"
)

const defaultSubscriptionCheckInterval = time.Hour

// Service 异步队列服务
type Service struct {
	name          string
	server        *asynq.Server
	mux           *asynq.ServeMux
	consumer      *Consumer
	checkInterval time.Duration
}

// NewService 创建异步队列服务
func NewService(cfg *config.Config, consumer *Consumer) (*Service, error) {
	if cfg == nil || !cfg.Queue.Enabled {
		return nil, errors.New("queue disabled")
	}
	if consumer == nil {
		return nil, errors.New("consumer is nil")
	}
	opt, serverCfg := queue.BuildServerConfig(&cfg.Queue)
	server := asynq.NewServer(opt, serverCfg)
	mux := asynq.NewServeMux()
	consumer.Register(mux)

	checkInterval := defaultSubscriptionCheckInterval
	if cfg.Subscription.CheckIntervalMinutes > 0 {
		checkInterval = time.Duration(cfg.Subscription.CheckIntervalMinutes) * time.Minute
	}
	return &Service{
		name:          "worker",
		server:        server,
		mux:           mux,
		consumer:      consumer,
		checkInterval: checkInterval,
	}, nil
}

// Name 服务名称
func (s *Service) Name() string {
	if s == nil || s.name == "" {
		return "worker"
	}
	return s.name
}

// Start 启动服务
func (s *Service) Start(ctx context.Context) error {
	if s == nil || s.server == nil || s.mux == nil {
		return errors.New("worker not initialized")
	}
	if s.consumer != nil && s.consumer.SaleService != nil {
		go s.runSubscriptionExpireLoop(ctx)
	}
	return s.server.Run(s.mux)
}

// Stop 停止服务
func (s *Service) Stop(ctx context.Context) error {
	if s == nil || s.server == nil {
		return nil
	}
	_ = ctx
	s.server.Shutdown()
	return nil
}

// runSubscriptionExpireLoop 周期巡检订阅到期的销售单
func (s *Service) runSubscriptionExpireLoop(ctx context.Context) {
	if s == nil || s.consumer == nil || s.consumer.SaleService == nil {
		return
	}
	runOnce := func() {
		expired, err := s.consumer.SaleService.ExpireDueSubscriptions(time.Now())
		if err != nil {
			logger.Warnw("worker_subscription_expire_failed", "error", err)
			return
		}
		if expired > 0 {
			logger.Infow("worker_subscription_expired", "count", expired)
		}
	}
	runOnce()

	ticker := time.NewTicker(s.checkInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			runOnce()
		}
	}
}
