package queue

import (
	"encoding/json"
	"testing"

	"github.com/vitrina-next/internal/config"

	"github.com/hibiken/asynq"
)

func TestDisabledClientSkipsEnqueue(t *testing.T) {
	client, err := NewClient(&config.QueueConfig{Enabled: false})
	if err != nil {
		t.Fatalf("new client failed: %v", err)
	}
	if client.Enabled() {
		t.Fatalf("client should be disabled")
	}
	queued, err := client.EnqueueCommissionAccrue(CommissionAccruePayload{AffiliateID: "a1", Revenue: "10.00"})
	if err != nil || queued {
		t.Fatalf("disabled client should not enqueue: queued=%v err=%v", queued, err)
	}
	if err := client.EnqueueOrderStatusNotify(OrderStatusNotifyPayload{OrderID: "o1"}); err != nil {
		t.Fatalf("disabled notify enqueue should be noop: %v", err)
	}
	if err := client.Close(); err != nil {
		t.Fatalf("close disabled client failed: %v", err)
	}
}

func TestCommissionAccrueTaskPayload(t *testing.T) {
	task, err := NewCommissionAccrueTask(CommissionAccruePayload{AffiliateID: "a1", ReferredClientID: "c1", Revenue: "99.90"})
	if err != nil {
		t.Fatalf("build task failed: %v", err)
	}
	if task.Type() != TaskCommissionAccrue {
		t.Fatalf("unexpected task type: %s", task.Type())
	}
	var payload CommissionAccruePayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		t.Fatalf("decode payload failed: %v", err)
	}
	if payload.Revenue != "99.90" || payload.ReferredClientID != "c1" {
		t.Fatalf("unexpected payload: %+v", payload)
	}
}

func TestBuildServerConfigDefaults(t *testing.T) {
	opt, cfg := BuildServerConfig(&config.QueueConfig{Host: "redis", Port: 6380, DB: 2})
	if opt.Addr != "redis:6380" || opt.DB != 2 {
		t.Fatalf("unexpected redis opt: %+v", opt)
	}
	if cfg.Concurrency != 10 {
		t.Fatalf("default concurrency expected, got %d", cfg.Concurrency)
	}
	if cfg.Queues[CriticalQueue] != 2 {
		t.Fatalf("critical queue weight expected, got %v", cfg.Queues)
	}
}

func TestDecodePayload(t *testing.T) {
	task, err := NewStorefrontCacheBustTask(StorefrontCacheBustPayload{Reason: "product_updated", ProductID: "p1"})
	if err != nil {
		t.Fatalf("build task failed: %v", err)
	}
	payload, err := DecodePayload[StorefrontCacheBustPayload](task)
	if err != nil || payload.ProductID != "p1" || payload.Reason != "product_updated" {
		t.Fatalf("unexpected decode result: %+v err=%v", payload, err)
	}
	if _, err := DecodePayload[OrderStatusNotifyPayload](asynq.NewTask(TaskOrderStatusNotify, []byte("{"))); err == nil {
		t.Fatalf("broken payload should fail")
	}
}

func TestTaskDefaultsRouteMoneyToCriticalQueue(t *testing.T) {
	found := false
	for _, opt := range taskDefaults[TaskCommissionAccrue] {
		if opt.Type() == asynq.QueueOpt && opt.Value() == CriticalQueue {
			found = true
		}
	}
	if !found {
		t.Fatalf("commission accrual must be routed to %s", CriticalQueue)
	}
}
