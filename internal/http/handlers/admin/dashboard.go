package admin

import (
	"github.com/vitrina-next/internal/catalog"
	"github.com/vitrina-next/internal/http/response"
	"github.com/vitrina-next/internal/repository"

	"github.com/gin-gonic/gin"
)

// GetDashboardSummary 仪表盘汇总：商品数、各状态订单数、推广员数
func (h *Handler) GetDashboardSummary(c *gin.Context) {
	_, productTotal, err := h.ProductService.ListAdmin(catalog.Criteria{}, 1, 1)
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	orderCounts, err := h.OrderService.StatusSummary()
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	_, affiliateTotal, err := h.AffiliateService.List(repository.AffiliateListFilter{Page: 1, PageSize: 1})
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.Success(c, gin.H{
		"products":   productTotal,
		"orders":     orderCounts,
		"affiliates": affiliateTotal,
	})
}
