package admin

import (
	"strings"
	"time"

	"github.com/vitrina-next/internal/http/response"
	"github.com/vitrina-next/internal/repository"

	handlershared "github.com/vitrina-next/internal/http/handlers/shared"

	"github.com/gin-gonic/gin"
)

type updateOrderStatusPayload struct {
	Status string `json:"status" binding:"required"`
}

// AdminListOrders 订单列表，支持按状态与下单日期筛选
func (h *Handler) AdminListOrders(c *gin.Context) {
	page, pageSize := handlershared.ParsePagination(c)
	filter := repository.OrderListFilter{
		Page:     page,
		PageSize: pageSize,
		Status:   strings.TrimSpace(c.Query("status")),
	}
	var err error
	if filter.CreatedFrom, err = parseDateQuery(c.Query("created_from"), false); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	if filter.CreatedTo, err = parseDateQuery(c.Query("created_to"), true); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	orders, total, err := h.OrderService.List(filter)
	if err != nil {
		respondMappedError(c, err, handlershared.OrderErrorRules, response.CodeInternal, "error.internal")
		return
	}
	response.Page(c, orders, page, pageSize, total)
}

// AdminGetOrder 订单详情
func (h *Handler) AdminGetOrder(c *gin.Context) {
	id, ok := requireParam(c, "id")
	if !ok {
		return
	}
	order, err := h.OrderService.Get(id)
	if err != nil {
		respondMappedError(c, err, handlershared.OrderErrorRules, response.CodeInternal, "error.internal")
		return
	}
	response.Success(c, order)
}

// AdminUpdateOrderStatus 更新订单状态
func (h *Handler) AdminUpdateOrderStatus(c *gin.Context) {
	id, ok := requireParam(c, "id")
	if !ok {
		return
	}
	var req updateOrderStatusPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	order, err := h.OrderService.SetStatus(id, req.Status)
	if err != nil {
		respondMappedError(c, err, handlershared.OrderErrorRules, response.CodeInternal, "error.internal")
		return
	}
	h.Metrics.RecordOrderStatus(order.Status)
	response.Success(c, order)
}

// parseDateQuery 解析 YYYY-MM-DD 或 RFC3339；endOfDay 时日期取当天结束
func parseDateQuery(raw string, endOfDay bool) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return &t, nil
	}
	t, err := time.ParseInLocation("2006-01-02", raw, time.Local)
	if err != nil {
		return nil, err
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return &t, nil
}
