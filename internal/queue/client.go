package queue

import (
	"net"
	"strconv"
	"strings"

	"github.com/vitrina-next/internal/config"
	"github.com/vitrina-next/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// DefaultQueue 默认队列名称
	DefaultQueue = constants.QueueDefault
	// CriticalQueue 资金相关任务队列
	CriticalQueue = constants.QueueCritical

	defaultConcurrency = 10
)

// Client 任务投递客户端。队列未启用时所有投递都是空操作，由调用方决定是否同步执行
type Client struct {
	inner *asynq.Client
}

// NewClient 创建队列客户端
func NewClient(cfg *config.QueueConfig) (*Client, error) {
	if cfg == nil || !cfg.Enabled {
		return &Client{}, nil
	}
	return &Client{inner: asynq.NewClient(redisOpt(cfg))}, nil
}

// Enabled 判断是否启用
func (c *Client) Enabled() bool {
	return c != nil && c.inner != nil
}

// Close 关闭客户端
func (c *Client) Close() error {
	if !c.Enabled() {
		return nil
	}
	return c.inner.Close()
}

// enqueue 投递任务，返回是否真正入队
func (c *Client) enqueue(task *asynq.Task, opts []asynq.Option) (bool, error) {
	if !c.Enabled() {
		return false, nil
	}
	options := append(append([]asynq.Option(nil), taskDefaults[task.Type()]...), opts...)
	if _, err := c.inner.Enqueue(task, options...); err != nil {
		return false, err
	}
	return true, nil
}

// EnqueueCommissionAccrue 推送佣金入账任务
// 未启用队列时返回 false，由调用方同步入账
func (c *Client) EnqueueCommissionAccrue(payload CommissionAccruePayload, opts ...asynq.Option) (bool, error) {
	if !c.Enabled() {
		return false, nil
	}
	task, err := NewCommissionAccrueTask(payload)
	if err != nil {
		return false, err
	}
	return c.enqueue(task, opts)
}

// EnqueueOrderStatusNotify 推送订单状态通知任务
func (c *Client) EnqueueOrderStatusNotify(payload OrderStatusNotifyPayload, opts ...asynq.Option) error {
	if !c.Enabled() {
		return nil
	}
	task, err := NewOrderStatusNotifyTask(payload)
	if err != nil {
		return err
	}
	_, err = c.enqueue(task, opts)
	return err
}

// EnqueueStorefrontCacheBust 推送缓存失效任务
func (c *Client) EnqueueStorefrontCacheBust(payload StorefrontCacheBustPayload, opts ...asynq.Option) error {
	if !c.Enabled() {
		return nil
	}
	task, err := NewStorefrontCacheBustTask(payload)
	if err != nil {
		return err
	}
	_, err = c.enqueue(task, opts)
	return err
}

// BuildServerConfig 生成消费端配置，critical 队列权重默认是 default 的两倍
func BuildServerConfig(cfg *config.QueueConfig) (asynq.RedisClientOpt, asynq.Config) {
	serverCfg := asynq.Config{
		Concurrency: defaultConcurrency,
		Queues:      map[string]int{DefaultQueue: 1, CriticalQueue: 2},
	}
	if cfg != nil {
		if cfg.Concurrency > 0 {
			serverCfg.Concurrency = cfg.Concurrency
		}
		if len(cfg.Queues) > 0 {
			serverCfg.Queues = cfg.Queues
		}
	}
	return redisOpt(cfg), serverCfg
}

func redisOpt(cfg *config.QueueConfig) asynq.RedisClientOpt {
	opt := asynq.RedisClientOpt{Addr: "127.0.0.1:6379"}
	if cfg == nil {
		return opt
	}
	host, port := strings.TrimSpace(cfg.Host), cfg.Port
	if host == "" {
		host = "127.0.0.1"
	}
	if port <= 0 {
		port = 6379
	}
	opt.Addr = net.JoinHostPort(host, strconv.Itoa(port))
	opt.Password = cfg.Password
	opt.DB = cfg.DB
	return opt
}
