package queue

import (
	"encoding/json"

	"github.com/digistock/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// TaskLowStockAlert 低库存预警任务
	TaskLowStockAlert = constants.TaskLowStockAlert
	// TaskLowCreditAlert 平台低额度预警任务
	TaskLowCreditAlert = constants.TaskLowCreditAlert
)

// LowStockAlertPayload 低库存预警任务载荷
type LowStockAlertPayload struct {
	ProductID uint `json:"product_id"`
}

// LowCreditAlertPayload 平台低额度预警任务载荷
type LowCreditAlertPayload struct {
	PlatformID uint `json:"platform_id"`
}

// NewLowStockAlertTask 创建低库存预警任务
func NewLowStockAlertTask(payload LowStockAlertPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskLowStockAlert, body), nil
}

// NewLowCreditAlertTask 创建平台低额度预警任务
func NewLowCreditAlertTask(payload LowCreditAlertPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskLowCreditAlert, body), nil
}
