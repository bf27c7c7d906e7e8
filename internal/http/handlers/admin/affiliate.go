package admin

import (
	"strings"

	"github.com/vitrina-next/internal/http/response"
	"github.com/vitrina-next/internal/repository"
	"github.com/vitrina-next/internal/service"

	handlershared "github.com/vitrina-next/internal/http/handlers/shared"

	"github.com/gin-gonic/gin"
)

type createAffiliatePayload struct {
	Name           string                               `json:"name" binding:"required"`
	Email          string                               `json:"email"`
	Status         string                               `json:"status"`
	PaymentDetails service.AffiliatePaymentDetailsInput `json:"payment_details"`
}

type updateAffiliatePayload struct {
	Name           *string                               `json:"name"`
	Email          *string                               `json:"email"`
	Status         *string                               `json:"status"`
	PaymentDetails *service.AffiliatePaymentDetailsInput `json:"payment_details"`
}

type statusPayload struct {
	Status string `json:"status" binding:"required"`
}

// ListAffiliates 推广员列表
func (h *Handler) ListAffiliates(c *gin.Context) {
	page, pageSize := handlershared.ParsePagination(c)
	affiliates, total, err := h.AffiliateService.List(repository.AffiliateListFilter{
		Page:     page,
		PageSize: pageSize,
		Status:   strings.TrimSpace(c.Query("status")),
		Search:   strings.TrimSpace(c.Query("search")),
	})
	if err != nil {
		respondMappedError(c, err, handlershared.AffiliateErrorRules, response.CodeInternal, "error.internal")
		return
	}
	response.Page(c, affiliates, page, pageSize, total)
}

// GetAffiliate 推广员详情
func (h *Handler) GetAffiliate(c *gin.Context) {
	id, ok := requireParam(c, "id")
	if !ok {
		return
	}
	affiliate, err := h.AffiliateService.Get(id)
	if err != nil {
		respondMappedError(c, err, handlershared.AffiliateErrorRules, response.CodeInternal, "error.internal")
		return
	}
	response.Success(c, affiliate)
}

// CreateAffiliate 创建推广员，自动生成推广码与链接
func (h *Handler) CreateAffiliate(c *gin.Context) {
	var req createAffiliatePayload
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	affiliate, err := h.AffiliateService.Create(service.CreateAffiliateInput{
		Name:           req.Name,
		Email:          req.Email,
		Status:         req.Status,
		PaymentDetails: req.PaymentDetails,
	})
	if err != nil {
		respondMappedError(c, err, handlershared.AffiliateErrorRules, response.CodeInternal, "error.internal")
		return
	}
	response.Success(c, affiliate)
}

// UpdateAffiliate 更新推广员，收款信息按字段合并
func (h *Handler) UpdateAffiliate(c *gin.Context) {
	id, ok := requireParam(c, "id")
	if !ok {
		return
	}
	var req updateAffiliatePayload
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	affiliate, err := h.AffiliateService.Update(id, service.UpdateAffiliateInput{
		Name:           req.Name,
		Email:          req.Email,
		Status:         req.Status,
		PaymentDetails: req.PaymentDetails,
	})
	if err != nil {
		respondMappedError(c, err, handlershared.AffiliateErrorRules, response.CodeInternal, "error.internal")
		return
	}
	response.Success(c, affiliate)
}

// UpdateAffiliateStatus 启用/停用推广员
func (h *Handler) UpdateAffiliateStatus(c *gin.Context) {
	id, ok := requireParam(c, "id")
	if !ok {
		return
	}
	var req statusPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	affiliate, err := h.AffiliateService.UpdateStatus(id, req.Status)
	if err != nil {
		respondMappedError(c, err, handlershared.AffiliateErrorRules, response.CodeInternal, "error.internal")
		return
	}
	response.Success(c, affiliate)
}

// DeleteAffiliate 删除推广员
func (h *Handler) DeleteAffiliate(c *gin.Context) {
	id, ok := requireParam(c, "id")
	if !ok {
		return
	}
	if err := h.AffiliateService.Delete(id); err != nil {
		respondMappedError(c, err, handlershared.AffiliateErrorRules, response.CodeInternal, "error.internal")
		return
	}
	response.Success(c, gin.H{"deleted": true})
}
