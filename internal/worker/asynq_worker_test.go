package worker

import (
	"context"
	"testing"

	"github.com/hibiken/asynq"

	"github.com/digistock/internal/queue"
)

func TestConsumerNilSafety(t *testing.T) {
	var c *Consumer

	// nil 消费者与 nil mux 不应 panic
	c.Register(nil)
	c.Register(asynq.NewServeMux())

	if err := c.handleLowStockAlert(context.Background(), nil); err != nil {
		t.Fatalf("nil task should be skipped, got %v", err)
	}
	if err := c.handleLowCreditAlert(context.Background(), nil); err != nil {
		t.Fatalf("nil task should be skipped, got %v", err)
	}
}

func TestLowStockAlertTaskRoundTrip(t *testing.T) {
	task, err := queue.NewLowStockAlertTask(queue.LowStockAlertPayload{ProductID: 42})
	if err != nil {
		t.Fatalf("build task failed: %v", err)
	}
	if task.Type() != queue.TaskLowStockAlert {
		t.Fatalf("task type = %s, want %s", task.Type(), queue.TaskLowStockAlert)
	}
	if string(task.Payload()) != `{"product_id":42}` {
		t.Fatalf("payload = %s", task.Payload())
	}
}

func TestLowCreditAlertTask(t *testing.T) {
	task, err := queue.NewLowCreditAlertTask(queue.LowCreditAlertPayload{PlatformID: 7})
	if err != nil {
		t.Fatalf("build task failed: %v", err)
	}
	if task.Type() != queue.TaskLowCreditAlert {
		t.Fatalf("task type = %s, want %s", task.Type(), queue.TaskLowCreditAlert)
	}
	if string(task.Payload()) != `{"platform_id":7}` {
		t.Fatalf("payload = %s", task.Payload())
	}
}
