package worker

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/vitrina-next/internal/cache"
	"github.com/vitrina-next/internal/logger"
	"github.com/vitrina-next/internal/provider"
	"github.com/vitrina-next/internal/queue"
	"github.com/vitrina-next/internal/service"

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
	mux.HandleFunc(queue.TaskCommissionAccrue, c.handleCommissionAccrue)
	mux.HandleFunc(queue.TaskOrderStatusNotify, c.handleOrderStatusNotify)
	mux.HandleFunc(queue.TaskStorefrontCacheBust, c.handleStorefrontCacheBust)
}

func (c *Consumer) handleCommissionAccrue(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_commission_accrue_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	payload, err := queue.DecodePayload[queue.CommissionAccruePayload](task)
	if err != nil {
		logger.Warnw("worker_commission_accrue_unmarshal_failed", "error", err)
		return fmt.Errorf("%w: %v", asynq.SkipRetry, err)
	}
	if strings.TrimSpace(payload.AffiliateID) == "" {
		logger.Debugw("worker_commission_accrue_skip_invalid_payload", "referred_client_id", payload.ReferredClientID)
		return nil
	}
	if c.AffiliateService == nil {
		logger.Warnw("worker_commission_accrue_skip_service_nil", "affiliate_id", payload.AffiliateID)
		return nil
	}
	amount, err := c.AffiliateService.ApplyCommissionAccrual(payload)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAffiliateNotFound):
			logger.Debugw("worker_commission_accrue_skip_affiliate_not_found", "affiliate_id", payload.AffiliateID)
			return nil
		case errors.Is(err, service.ErrRevenueAmountInvalid):
			// 载荷无法修复，重试没有意义
			logger.Warnw("worker_commission_accrue_skip_invalid_revenue", "affiliate_id", payload.AffiliateID, "revenue", payload.Revenue)
			return nil
		default:
			logger.Warnw("worker_commission_accrue_failed", "affiliate_id", payload.AffiliateID, "error", err)
			return err
		}
	}
	c.Metrics.RecordCommissionAccrued(amount.InexactFloat64())
	return nil
}

func (c *Consumer) handleOrderStatusNotify(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_order_status_notify_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	payload, err := queue.DecodePayload[queue.OrderStatusNotifyPayload](task)
	if err != nil {
		logger.Warnw("worker_order_status_notify_unmarshal_failed", "error", err)
		return fmt.Errorf("%w: %v", asynq.SkipRetry, err)
	}
	if strings.TrimSpace(payload.OrderID) == "" {
		logger.Debugw("worker_order_status_notify_skip_invalid_payload", "status", payload.Status)
		return nil
	}
	if c.OrderService == nil {
		logger.Warnw("worker_order_status_notify_skip_service_nil", "order_id", payload.OrderID)
		return nil
	}
	notice, err := c.OrderService.PrepareStatusNotice(payload)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrOrderNotFound):
			logger.Debugw("worker_order_status_notify_skip_order_not_found", "order_id", payload.OrderID)
			return nil
		case errors.Is(err, service.ErrOrderStatusInvalid):
			logger.Debugw("worker_order_status_notify_skip_invalid_status", "order_id", payload.OrderID, "status", payload.Status)
			return nil
		default:
			logger.Warnw("worker_order_status_notify_failed", "order_id", payload.OrderID, "error", err)
			return err
		}
	}
	c.Metrics.RecordOrderStatus(notice.Status)
	return nil
}

func (c *Consumer) handleStorefrontCacheBust(ctx context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_storefront_cache_bust_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	payload, err := queue.DecodePayload[queue.StorefrontCacheBustPayload](task)
	if err != nil {
		logger.Warnw("worker_storefront_cache_bust_unmarshal_failed", "error", err)
		return fmt.Errorf("%w: %v", asynq.SkipRetry, err)
	}
	if err := cache.InvalidateStorefront(ctx); err != nil {
		logger.Warnw("worker_storefront_cache_bust_failed", "reason", payload.Reason, "product_id", payload.ProductID, "error", err)
		return err
	}
	logger.Debugw("worker_storefront_cache_bust_done", "reason", payload.Reason, "product_id", payload.ProductID)
	return nil
}
