package worker

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/digistock/internal/logger"
	"github.com/digistock/internal/provider"
	"github.com/digistock/internal/queue"
	"github.com/digistock/internal/service"

	"github.com/hibiken/asynq"
)

// Consumer 异步任务消费者
type Consumer struct {
	*provider.Container
}

// NewConsumer 创建消费者
func NewConsumer(c *provider.Container) *Consumer {
	return &Consumer{
		Container: c,
	}
}

// Register 注册消费者
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskLowStockAlert, c.handleLowStockAlert)
	mux.HandleFunc(queue.TaskLowCreditAlert, c.handleLowCreditAlert)
}

func (c *Consumer) handleLowStockAlert(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_low_stock_alert_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.LowStockAlertPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_low_stock_alert_unmarshal_failed", "error", err)
		return err
	}
	if payload.ProductID == 0 {
		logger.Debugw("worker_low_stock_alert_skip_invalid_payload", "product_id", payload.ProductID)
		return nil
	}
	product, err := c.ProductService.GetProduct(payload.ProductID)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			logger.Debugw("worker_low_stock_alert_skip_product_not_found", "product_id", payload.ProductID)
			return nil
		}
		logger.Warnw("worker_low_stock_alert_fetch_failed", "product_id", payload.ProductID, "error", err)
		return err
	}
	// 入队后可能已补货，仍低于阈值才输出预警
	if product.MinStockAlert <= 0 || product.CurrentStock > product.MinStockAlert {
		logger.Debugw("worker_low_stock_alert_skip_recovered",
			"product_id", product.ID,
			"current_stock", product.CurrentStock,
			"min_stock_alert", product.MinStockAlert,
		)
		return nil
	}
	logger.Warnw("low_stock_alert",
		"product_id", product.ID,
		"product_name", product.Name,
		"current_stock", product.CurrentStock,
		"min_stock_alert", product.MinStockAlert,
	)
	return nil
}

func (c *Consumer) handleLowCreditAlert(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_low_credit_alert_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.LowCreditAlertPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_low_credit_alert_unmarshal_failed", "error", err)
		return err
	}
	if payload.PlatformID == 0 {
		logger.Debugw("worker_low_credit_alert_skip_invalid_payload", "platform_id", payload.PlatformID)
		return nil
	}
	platform, err := c.PlatformService.GetPlatform(payload.PlatformID)
	if err != nil {
		if errors.Is(err, service.ErrPlatformNotFound) {
			logger.Debugw("worker_low_credit_alert_skip_platform_not_found", "platform_id", payload.PlatformID)
			return nil
		}
		logger.Warnw("worker_low_credit_alert_fetch_failed", "platform_id", payload.PlatformID, "error", err)
		return err
	}
	if platform.LowBalanceThreshold.Decimal.IsZero() ||
		platform.CreditBalance.Decimal.GreaterThan(platform.LowBalanceThreshold.Decimal) {
		logger.Debugw("worker_low_credit_alert_skip_recovered",
			"platform_id", platform.ID,
			"credit_balance", platform.CreditBalance.String(),
			"low_balance_threshold", platform.LowBalanceThreshold.String(),
		)
		return nil
	}
	logger.Warnw("low_credit_alert",
		"platform_id", platform.ID,
		"platform_name", platform.Name,
		"credit_balance", platform.CreditBalance.String(),
		"low_balance_threshold", platform.LowBalanceThreshold.String(),
	)
	return nil
}
