package service

import (
	"strings"

	"github.com/vitrina-next/internal/constants"
	"github.com/vitrina-next/internal/models"
	"github.com/vitrina-next/internal/pricing"
)

var knownOrderStatuses = []string{
	constants.OrderStatusPending,
	constants.OrderStatusInProgress,
	constants.OrderStatusCompleted,
	constants.OrderStatusCancelled,
}

// KnownOrderStatuses 返回全部订单状态
func KnownOrderStatuses() []string {
	return cloneStringSlice(knownOrderStatuses)
}

// normalizeOrderStatus 校验订单状态，未知状态返回 false
// 状态之间不做流转限制，任意已知状态都可以直接设置
func normalizeOrderStatus(raw string) (string, bool) {
	status := strings.ToLower(strings.TrimSpace(raw))
	for _, known := range knownOrderStatuses {
		if status == known {
			return status, true
		}
	}
	return "", false
}

var orderStatusLabels = map[string]string{
	constants.OrderStatusPending:    "pendiente",
	constants.OrderStatusInProgress: "en proceso",
	constants.OrderStatusCompleted:  "completado",
	constants.OrderStatusCancelled:  "cancelado",
}

const orderStatusNoticeTemplate = "Hola, te escribe {businessName}. Tu pedido {orderRef} por {totalAmount} ahora está {statusLabel}."

// OrderStatusNotice 订单状态变更提醒（商家通过 WhatsApp 发给顾客）
type OrderStatusNotice struct {
	OrderID  string          `json:"order_id"`
	Status   string          `json:"status"`
	WhatsApp WhatsAppMessage `json:"whatsapp"`
}

// BuildOrderStatusNotice 渲染订单状态提醒文本
func BuildOrderStatusNotice(setting BusinessSetting, order *models.Order, status string) OrderStatusNotice {
	label, ok := orderStatusLabels[status]
	if !ok {
		label = status
	}
	ref := order.ID
	if len(ref) > 8 {
		ref = ref[:8]
	}
	text := RenderTemplate(orderStatusNoticeTemplate, map[string]string{
		"businessName": setting.BusinessName,
		"orderRef":     "#" + strings.ToUpper(ref),
		"totalAmount":  pricing.Format(order.TotalAmount.Decimal, order.Currency),
		"statusLabel":  label,
	})
	return OrderStatusNotice{
		OrderID:  order.ID,
		Status:   status,
		WhatsApp: WhatsAppMessage{Text: text, Link: WhatsAppLink(setting.WhatsAppNumber, text)},
	}
}
