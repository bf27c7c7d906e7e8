package admin

import (
	"strings"

	"github.com/vitrina-next/internal/http/response"
	"github.com/vitrina-next/internal/repository"
	"github.com/vitrina-next/internal/service"

	handlershared "github.com/vitrina-next/internal/http/handlers/shared"

	"github.com/gin-gonic/gin"
)

type createReferredClientPayload struct {
	AffiliateID string `json:"affiliate_id" binding:"required"`
	ClientName  string `json:"client_name" binding:"required"`
	Status      string `json:"status"`
}

type recordRevenuePayload struct {
	Amount string `json:"amount" binding:"required"`
}

// ListReferredClients 被推荐客户列表，可按推广员筛选
func (h *Handler) ListReferredClients(c *gin.Context) {
	page, pageSize := handlershared.ParsePagination(c)
	clients, total, err := h.AffiliateService.ListReferredClients(repository.ReferredClientListFilter{
		Page:        page,
		PageSize:    pageSize,
		AffiliateID: strings.TrimSpace(c.Query("affiliate_id")),
		Status:      strings.TrimSpace(c.Query("status")),
		Search:      strings.TrimSpace(c.Query("search")),
	})
	if err != nil {
		respondMappedError(c, err, handlershared.AffiliateErrorRules, response.CodeInternal, "error.internal")
		return
	}
	response.Page(c, clients, page, pageSize, total)
}

// CreateReferredClient 登记被推荐客户
func (h *Handler) CreateReferredClient(c *gin.Context) {
	var req createReferredClientPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	client, err := h.AffiliateService.CreateReferredClient(service.CreateReferredClientInput{
		AffiliateID: req.AffiliateID,
		ClientName:  req.ClientName,
		Status:      req.Status,
	})
	if err != nil {
		respondMappedError(c, err, handlershared.AffiliateErrorRules, response.CodeInternal, "error.internal")
		return
	}
	response.Success(c, client)
}

// UpdateReferredClientStatus 更新被推荐客户状态，并刷新活跃客户数
func (h *Handler) UpdateReferredClientStatus(c *gin.Context) {
	id, ok := requireParam(c, "id")
	if !ok {
		return
	}
	var req statusPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	client, err := h.AffiliateService.UpdateReferredClientStatus(id, req.Status)
	if err != nil {
		respondMappedError(c, err, handlershared.AffiliateErrorRules, response.CodeInternal, "error.internal")
		return
	}
	response.Success(c, client)
}

// RecordReferredRevenue 登记被推荐客户营收并触发佣金入账
func (h *Handler) RecordReferredRevenue(c *gin.Context) {
	id, ok := requireParam(c, "id")
	if !ok {
		return
	}
	var req recordRevenuePayload
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	result, err := h.AffiliateService.RecordRevenue(id, req.Amount)
	if err != nil {
		respondMappedError(c, err, handlershared.AffiliateErrorRules, response.CodeInternal, "error.internal")
		return
	}
	response.Success(c, result)
}
