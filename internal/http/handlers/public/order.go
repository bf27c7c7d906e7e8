package public

import (
	"strings"

	"github.com/vitrina-next/internal/cart"
	"github.com/vitrina-next/internal/constants"
	"github.com/vitrina-next/internal/http/response"
	"github.com/vitrina-next/internal/service"

	handlershared "github.com/vitrina-next/internal/http/handlers/shared"

	"github.com/gin-gonic/gin"
)

// CreateOrderRequest 下单请求；items 为空时使用 X-Cart-Key 对应的购物车
type CreateOrderRequest struct {
	Items       cart.Cart `json:"items"`
	TotalAmount string    `json:"total_amount" binding:"required"`
	Currency    string    `json:"currency"`
	Notes       string    `json:"notes"`
	ClearCart   bool      `json:"clear_cart"`
}

var orderErrorRules = handlershared.ConcatMappedErrors(handlershared.OrderErrorRules, handlershared.CartErrorRules)

// CreateOrder 创建订单并返回 WhatsApp 确认链接
func (h *Handler) CreateOrder(c *gin.Context) {
	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	currency := strings.ToUpper(strings.TrimSpace(req.Currency))
	if currency == "" {
		currency = constants.CurrencyDefault
	}
	result, err := h.OrderService.Create(service.CreateOrderInput{
		Items:       req.Items,
		TotalAmount: req.TotalAmount,
		Currency:    currency,
		Notes:       req.Notes,
		CartKey:     strings.TrimSpace(c.GetHeader(constants.HeaderCartKey)),
		ClearCart:   req.ClearCart,
		ClientIP:    c.ClientIP(),
	})
	if err != nil {
		respondMappedError(c, err, orderErrorRules, response.CodeInternal, "error.internal")
		return
	}
	h.Metrics.RecordOrderCreated(currency)
	requestLog(c).Infow("public_order_created",
		"order_id", result.Order.ID,
		"items", len(result.Order.Items),
		"total", result.Order.TotalAmount.String(),
	)
	response.Success(c, result)
}
