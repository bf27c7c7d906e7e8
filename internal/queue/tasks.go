package queue

import (
	"encoding/json"
	"fmt"

	"github.com/vitrina-next/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// TaskCommissionAccrue 推广佣金入账任务
	TaskCommissionAccrue = constants.TaskCommissionAccrue
	// TaskOrderStatusNotify 订单状态通知任务
	TaskOrderStatusNotify = constants.TaskOrderStatusNotify
	// TaskStorefrontCacheBust 前台商品缓存失效任务
	TaskStorefrontCacheBust = constants.TaskStorefrontCacheBust
)

// CommissionAccruePayload 佣金入账任务载荷
// Revenue 为被推荐客户新产生的营收（2 位小数字符串）
type CommissionAccruePayload struct {
	AffiliateID      string `json:"affiliate_id"`
	ReferredClientID string `json:"referred_client_id"`
	Revenue          string `json:"revenue"`
}

// OrderStatusNotifyPayload 订单状态通知任务载荷
type OrderStatusNotifyPayload struct {
	OrderID string `json:"order_id"`
	Status  string `json:"status"`
}

// StorefrontCacheBustPayload 缓存失效任务载荷
type StorefrontCacheBustPayload struct {
	Reason    string `json:"reason"`
	ProductID string `json:"product_id,omitempty"`
}

// taskDefaults 每种任务的默认投递选项，资金任务走 critical 队列并多重试
var taskDefaults = map[string][]asynq.Option{
	TaskCommissionAccrue:    {asynq.Queue(CriticalQueue), asynq.MaxRetry(10)},
	TaskOrderStatusNotify:   {asynq.Queue(DefaultQueue)},
	TaskStorefrontCacheBust: {asynq.Queue(DefaultQueue), asynq.MaxRetry(3)},
}

func newTask(taskType string, payload any) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode %s payload: %w", taskType, err)
	}
	return asynq.NewTask(taskType, body), nil
}

// NewCommissionAccrueTask 创建佣金入账任务
func NewCommissionAccrueTask(payload CommissionAccruePayload) (*asynq.Task, error) {
	return newTask(TaskCommissionAccrue, payload)
}

// NewOrderStatusNotifyTask 创建订单状态通知任务
func NewOrderStatusNotifyTask(payload OrderStatusNotifyPayload) (*asynq.Task, error) {
	return newTask(TaskOrderStatusNotify, payload)
}

// NewStorefrontCacheBustTask 创建缓存失效任务
func NewStorefrontCacheBustTask(payload StorefrontCacheBustPayload) (*asynq.Task, error) {
	return newTask(TaskStorefrontCacheBust, payload)
}

// DecodePayload 解析任务载荷
func DecodePayload[T any](task *asynq.Task) (T, error) {
	var payload T
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return payload, fmt.Errorf("decode %s payload: %w", task.Type(), err)
	}
	return payload, nil
}
