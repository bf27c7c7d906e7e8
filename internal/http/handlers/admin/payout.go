package admin

import (
	"strings"

	"github.com/vitrina-next/internal/http/response"
	"github.com/vitrina-next/internal/repository"
	"github.com/vitrina-next/internal/service"

	handlershared "github.com/vitrina-next/internal/http/handlers/shared"

	"github.com/gin-gonic/gin"
)

type recordPayoutPayload struct {
	AffiliateID string `json:"affiliate_id" binding:"required"`
	Amount      string `json:"amount" binding:"required"`
	Method      string `json:"method" binding:"required"`
	Notes       string `json:"notes"`
}

type updatePayoutStatusPayload struct {
	Status        string `json:"status" binding:"required"`
	TransactionID string `json:"transaction_id"`
}

// ListPayouts 结算记录列表
func (h *Handler) ListPayouts(c *gin.Context) {
	page, pageSize := handlershared.ParsePagination(c)
	payouts, total, err := h.AffiliateService.ListPayouts(repository.PayoutListFilter{
		Page:        page,
		PageSize:    pageSize,
		AffiliateID: strings.TrimSpace(c.Query("affiliate_id")),
		Status:      strings.TrimSpace(c.Query("status")),
	})
	if err != nil {
		respondMappedError(c, err, handlershared.AffiliateErrorRules, response.CodeInternal, "error.internal")
		return
	}
	response.Page(c, payouts, page, pageSize, total)
}

// RecordPayout 手动登记结算，余额不足与低于最低金额仅作提示
func (h *Handler) RecordPayout(c *gin.Context) {
	var req recordPayoutPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	result, err := h.AffiliateService.RecordPayout(service.RecordPayoutInput{
		AffiliateID: req.AffiliateID,
		Amount:      req.Amount,
		Method:      req.Method,
		Notes:       req.Notes,
	})
	if err != nil {
		respondMappedError(c, err, handlershared.AffiliateErrorRules, response.CodeInternal, "error.internal")
		return
	}
	h.Metrics.RecordPayout(result.Payout.Method, result.Check.ExceedsBalance)
	response.Success(c, result)
}

// UpdatePayoutStatus 更新结算状态
func (h *Handler) UpdatePayoutStatus(c *gin.Context) {
	id, ok := requireParam(c, "id")
	if !ok {
		return
	}
	var req updatePayoutStatusPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	payout, err := h.AffiliateService.UpdatePayoutStatus(id, req.Status, req.TransactionID)
	if err != nil {
		respondMappedError(c, err, handlershared.AffiliateErrorRules, response.CodeInternal, "error.internal")
		return
	}
	response.Success(c, payout)
}
