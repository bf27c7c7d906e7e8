package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/vitrina-next/internal/cart"
	"github.com/vitrina-next/internal/constants"
	"github.com/vitrina-next/internal/logger"
	"github.com/vitrina-next/internal/models"
	"github.com/vitrina-next/internal/queue"
	"github.com/vitrina-next/internal/repository"

	"github.com/google/uuid"
)

// OrderService 订单服务
type OrderService struct {
	repo           repository.OrderRepository
	cartService    *CartService
	settingService *SettingService
	queueClient    *queue.Client
}

// NewOrderService 创建订单服务
func NewOrderService(repo repository.OrderRepository, cartService *CartService, settingService *SettingService, queueClient *queue.Client) *OrderService {
	return &OrderService{
		repo:           repo,
		cartService:    cartService,
		settingService: settingService,
		queueClient:    queueClient,
	}
}

// CreateOrderInput 创建订单输入
// Items 为空且提供 CartKey 时使用该购物车的当前内容
type CreateOrderInput struct {
	Items       cart.Cart
	TotalAmount string
	Currency    string
	Notes       string
	CartKey     string
	ClearCart   bool
	ClientIP    string
}

// CreateOrderResult 创建订单结果
type CreateOrderResult struct {
	Order    *models.Order   `json:"order"`
	WhatsApp WhatsAppMessage `json:"whatsapp"`
}

// Create 创建订单，初始状态为 pending
// 订单总额由调用方提供，不做重算
func (s *OrderService) Create(input CreateOrderInput) (*CreateOrderResult, error) {
	items := input.Items
	if len(items) == 0 && strings.TrimSpace(input.CartKey) != "" && s.cartService != nil {
		stored, err := s.cartService.Get(input.CartKey)
		if err != nil {
			return nil, err
		}
		items = stored
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: items required", ErrInvalidOrderItem)
	}
	orderItems := make([]models.OrderItem, 0, len(items))
	for _, item := range items {
		orderItem, err := buildOrderItem(item)
		if err != nil {
			return nil, err
		}
		orderItems = append(orderItems, orderItem)
	}

	total, err := models.NewMoneyFromString(input.TotalAmount)
	if err != nil || strings.TrimSpace(input.TotalAmount) == "" || total.IsNegative() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidOrderAmount, input.TotalAmount)
	}
	if !total.Equal(items.Subtotal()) {
		logger.Warnw("order_total_mismatch",
			"total_amount", total.String(),
			"items_subtotal", items.Subtotal().StringFixed(2),
		)
	}

	currency := strings.ToUpper(strings.TrimSpace(input.Currency))
	if currency == "" {
		currency = constants.CurrencyDefault
	}
	order := &models.Order{
		ID:            uuid.NewString(),
		Status:        constants.OrderStatusPending,
		TotalAmount:   total,
		Currency:      currency,
		CustomerNotes: strings.TrimSpace(input.Notes),
		ClientIP:      strings.TrimSpace(input.ClientIP),
		CreatedAt:     time.Now(),
	}
	if err := s.repo.Create(order, orderItems); err != nil {
		return nil, err
	}

	if input.ClearCart && strings.TrimSpace(input.CartKey) != "" && s.cartService != nil {
		if err := s.cartService.Clear(input.CartKey); err != nil {
			logger.Warnw("order_clear_cart_failed", "order_id", order.ID, "error", err)
		}
	}
	s.notifyStatus(order.ID, order.Status)

	result := &CreateOrderResult{Order: order}
	if s.settingService != nil {
		setting, err := s.settingService.GetBusinessSetting()
		if err != nil {
			logger.Warnw("order_business_setting_load_failed", "order_id", order.ID, "error", err)
			setting = BusinessDefaultSetting()
		}
		result.WhatsApp = BuildOrderMessage(setting, items, order.TotalAmount.String(), order.CustomerNotes, currency)
	}
	return result, nil
}

// SetStatus 设置订单状态
func (s *OrderService) SetStatus(id, status string) (*models.Order, error) {
	normalized, ok := normalizeOrderStatus(status)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrOrderStatusInvalid, status)
	}
	affected, err := s.repo.UpdateStatus(strings.TrimSpace(id), normalized)
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, ErrOrderNotFound
	}
	s.notifyStatus(id, normalized)
	return s.Get(id)
}

// Get 获取订单详情
func (s *OrderService) Get(id string) (*models.Order, error) {
	order, err := s.repo.GetByID(strings.TrimSpace(id))
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// List 订单列表
func (s *OrderService) List(filter repository.OrderListFilter) ([]models.Order, int64, error) {
	if filter.Status != "" {
		normalized, ok := normalizeOrderStatus(filter.Status)
		if !ok {
			return nil, 0, fmt.Errorf("%w: %q", ErrOrderStatusInvalid, filter.Status)
		}
		filter.Status = normalized
	}
	return s.repo.List(filter)
}

// StatusSummary 各状态订单数
func (s *OrderService) StatusSummary() (map[string]int64, error) {
	counts, err := s.repo.CountByStatus()
	if err != nil {
		return nil, err
	}
	for _, status := range knownOrderStatuses {
		if _, ok := counts[status]; !ok {
			counts[status] = 0
		}
	}
	return counts, nil
}

// PrepareStatusNotice 处理订单状态通知任务：生成给顾客的 WhatsApp 提醒
// 订单已删除时返回 ErrOrderNotFound
func (s *OrderService) PrepareStatusNotice(payload queue.OrderStatusNotifyPayload) (*OrderStatusNotice, error) {
	order, err := s.Get(payload.OrderID)
	if err != nil {
		return nil, err
	}
	status := order.Status
	if normalized, ok := normalizeOrderStatus(payload.Status); ok {
		status = normalized
	}
	setting := BusinessDefaultSetting()
	if s.settingService != nil {
		loaded, err := s.settingService.GetBusinessSetting()
		if err != nil {
			return nil, err
		}
		setting = loaded
	}
	notice := BuildOrderStatusNotice(setting, order, status)
	logger.Infow("order_status_notice_ready",
		"order_id", order.ID,
		"status", status,
		"has_link", notice.WhatsApp.Link != "",
	)
	return &notice, nil
}

func (s *OrderService) notifyStatus(orderID, status string) {
	err := s.queueClient.EnqueueOrderStatusNotify(queue.OrderStatusNotifyPayload{OrderID: orderID, Status: status})
	if err != nil {
		logger.Warnw("order_status_notify_enqueue_failed", "order_id", orderID, "status", status, "error", err)
	}
}

func buildOrderItem(item cart.Item) (models.OrderItem, error) {
	productID := strings.TrimSpace(item.ProductID)
	name := strings.TrimSpace(item.Name)
	if productID == "" || name == "" {
		return models.OrderItem{}, fmt.Errorf("%w: product id and name required", ErrInvalidOrderItem)
	}
	if item.Quantity <= 0 {
		return models.OrderItem{}, fmt.Errorf("%w: quantity must be positive", ErrInvalidOrderItem)
	}
	price, err := models.NewMoneyFromString(item.Price)
	if err != nil || strings.TrimSpace(item.Price) == "" || price.IsNegative() {
		return models.OrderItem{}, fmt.Errorf("%w: price %q", ErrInvalidOrderItem, item.Price)
	}
	return models.OrderItem{
		ProductID: productID,
		Name:      name,
		Price:     price.String(),
		Quantity:  item.Quantity,
		ImageURL:  strings.TrimSpace(item.Image),
	}, nil
}
