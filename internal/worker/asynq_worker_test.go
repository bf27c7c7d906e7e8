package worker

import (
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/vitrina-next/internal/cart"
	"github.com/vitrina-next/internal/config"
	"github.com/vitrina-next/internal/models"
	"github.com/vitrina-next/internal/provider"
	"github.com/vitrina-next/internal/queue"
	"github.com/vitrina-next/internal/service"

	"github.com/glebarez/sqlite"
	"github.com/hibiken/asynq"
	"gorm.io/gorm"
)

func setupConsumerTest(t *testing.T) *Consumer {
	t.Helper()
	dsn := fmt.Sprintf("file:worker_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(models.AllModels()...); err != nil {
		t.Fatalf("migrate models failed: %v", err)
	}
	cfg := &config.Config{}
	cfg.JWT.SecretKey = "worker-secret"
	cfg.Metrics.Enabled = true
	cfg.Metrics.Prefix = "worker_test"
	return NewConsumer(provider.NewContainerWithDB(cfg, db))
}

func newTask(t *testing.T, typename string, payload interface{}) *asynq.Task {
	t.Helper()
	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal payload failed: %v", err)
	}
	return asynq.NewTask(typename, body)
}

func TestHandleCommissionAccrue(t *testing.T) {
	consumer := setupConsumerTest(t)
	affiliate, err := consumer.AffiliateService.Create(service.CreateAffiliateInput{Name: "Lucía"})
	if err != nil {
		t.Fatalf("create affiliate failed: %v", err)
	}

	task := newTask(t, queue.TaskCommissionAccrue, queue.CommissionAccruePayload{AffiliateID: affiliate.ID, Revenue: "100"})
	if err := consumer.handleCommissionAccrue(t.Context(), task); err != nil {
		t.Fatalf("handle accrue failed: %v", err)
	}
	stored, err := consumer.AffiliateService.Get(affiliate.ID)
	if err != nil {
		t.Fatalf("get affiliate failed: %v", err)
	}
	if stored.CommissionAccumulated.String() != "20.00" {
		t.Fatalf("expected 20.00 commission, got %s", stored.CommissionAccumulated.String())
	}
}

func TestHandleCommissionAccrueSkipsUnrecoverablePayloads(t *testing.T) {
	consumer := setupConsumerTest(t)
	cases := []queue.CommissionAccruePayload{
		{AffiliateID: "", Revenue: "10"},
		{AffiliateID: "missing", Revenue: "10"},
		{AffiliateID: "missing", Revenue: "abc"},
	}
	for _, payload := range cases {
		task := newTask(t, queue.TaskCommissionAccrue, payload)
		if err := consumer.handleCommissionAccrue(t.Context(), task); err != nil {
			t.Fatalf("expected skip for %+v, got %v", payload, err)
		}
	}
	broken := asynq.NewTask(queue.TaskCommissionAccrue, []byte("{"))
	if err := consumer.handleCommissionAccrue(t.Context(), broken); err == nil {
		t.Fatalf("expected unmarshal error")
	}
}

func TestHandleOrderStatusNotify(t *testing.T) {
	consumer := setupConsumerTest(t)
	missing := newTask(t, queue.TaskOrderStatusNotify, queue.OrderStatusNotifyPayload{OrderID: "missing", Status: "completed"})
	if err := consumer.handleOrderStatusNotify(t.Context(), missing); err != nil {
		t.Fatalf("missing order should be skipped, got %v", err)
	}

	result, err := consumer.OrderService.Create(service.CreateOrderInput{
		Items:       cart.Cart{{ProductID: "p1", Name: "Vela", Price: "12.00", Quantity: 1}},
		TotalAmount: "12.00",
	})
	if err != nil {
		t.Fatalf("create order failed: %v", err)
	}
	valid := newTask(t, queue.TaskOrderStatusNotify, queue.OrderStatusNotifyPayload{OrderID: result.Order.ID, Status: "completed"})
	if err := consumer.handleOrderStatusNotify(t.Context(), valid); err != nil {
		t.Fatalf("handle notify failed: %v", err)
	}
	invalid := newTask(t, queue.TaskOrderStatusNotify, queue.OrderStatusNotifyPayload{OrderID: result.Order.ID, Status: "bogus"})
	if err := consumer.handleOrderStatusNotify(t.Context(), invalid); err != nil {
		t.Fatalf("invalid status should be skipped, got %v", err)
	}
}

func TestHandleStorefrontCacheBustWithoutRedis(t *testing.T) {
	consumer := setupConsumerTest(t)
	task := newTask(t, queue.TaskStorefrontCacheBust, queue.StorefrontCacheBustPayload{Reason: "product_updated", ProductID: "p1"})
	if err := consumer.handleStorefrontCacheBust(t.Context(), task); err != nil {
		t.Fatalf("cache bust without redis should succeed, got %v", err)
	}
}

func TestNilConsumerIsSafe(t *testing.T) {
	var consumer *Consumer
	consumer.Register(asynq.NewServeMux())
	if err := consumer.handleOrderStatusNotify(t.Context(), nil); err != nil {
		t.Fatalf("nil consumer should be ignored, got %v", err)
	}
}
