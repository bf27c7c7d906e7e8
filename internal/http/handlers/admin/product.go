package admin

import (
	"github.com/vitrina-next/internal/catalog"
	"github.com/vitrina-next/internal/http/response"
	"github.com/vitrina-next/internal/service"

	handlershared "github.com/vitrina-next/internal/http/handlers/shared"

	"github.com/gin-gonic/gin"
)

// ProductRequest 创建/更新商品请求
type ProductRequest struct {
	Name                 string   `json:"name" binding:"required"`
	Category             string   `json:"category"`
	BasePrice            string   `json:"base_price" binding:"required"`
	Currency             string   `json:"currency"`
	TaxRate              string   `json:"tax_rate"`
	DiscountRate         string   `json:"discount_rate"`
	Idea                 string   `json:"idea"`
	GeneratedDescription string   `json:"generated_description"`
	Images               []string `json:"images"`
	VideoURL             string   `json:"video_url"`
	Status               string   `json:"status"`
	Stock                *int     `json:"stock"`
}

func (r ProductRequest) toInput() service.ProductInput {
	return service.ProductInput{
		Name:                 r.Name,
		Category:             r.Category,
		BasePrice:            r.BasePrice,
		Currency:             r.Currency,
		TaxRate:              r.TaxRate,
		DiscountRate:         r.DiscountRate,
		Idea:                 r.Idea,
		GeneratedDescription: r.GeneratedDescription,
		Images:               r.Images,
		VideoURL:             r.VideoURL,
		Status:               r.Status,
		Stock:                r.Stock,
	}
}

// GetAdminProducts 获取商品列表 (Admin)
func (h *Handler) GetAdminProducts(c *gin.Context) {
	page, pageSize := handlershared.ParsePagination(c)
	var criteria catalog.Criteria
	if err := c.ShouldBindQuery(&criteria); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	products, total, err := h.ProductService.ListAdmin(criteria, page, pageSize)
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.Page(c, products, page, pageSize, total)
}

// GetAdminProduct 获取商品详情 (Admin)
func (h *Handler) GetAdminProduct(c *gin.Context) {
	id, ok := requireParam(c, "id")
	if !ok {
		return
	}
	product, err := h.ProductService.GetAdminByID(id)
	if err != nil {
		respondMappedError(c, err, handlershared.ProductErrorRules, response.CodeInternal, "error.internal")
		return
	}
	response.Success(c, service.NewProductView(*product))
}

// CreateProduct 创建商品
func (h *Handler) CreateProduct(c *gin.Context) {
	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	product, err := h.ProductService.Create(req.toInput())
	if err != nil {
		respondMappedError(c, err, handlershared.ProductErrorRules, response.CodeInternal, "error.internal")
		return
	}
	response.Success(c, service.NewProductView(*product))
}

// UpdateProduct 更新商品，同步刷新购物车快照
func (h *Handler) UpdateProduct(c *gin.Context) {
	id, ok := requireParam(c, "id")
	if !ok {
		return
	}
	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	product, err := h.ProductService.Update(id, req.toInput())
	if err != nil {
		respondMappedError(c, err, handlershared.ProductErrorRules, response.CodeInternal, "error.internal")
		return
	}
	response.Success(c, service.NewProductView(*product))
}

// DeleteProduct 删除商品
func (h *Handler) DeleteProduct(c *gin.Context) {
	id, ok := requireParam(c, "id")
	if !ok {
		return
	}
	if err := h.ProductService.Delete(id); err != nil {
		respondMappedError(c, err, handlershared.ProductErrorRules, response.CodeInternal, "error.internal")
		return
	}
	response.Success(c, gin.H{"deleted": true})
}

// ToggleProductStatus 切换上下架
func (h *Handler) ToggleProductStatus(c *gin.Context) {
	id, ok := requireParam(c, "id")
	if !ok {
		return
	}
	product, err := h.ProductService.ToggleStatus(id)
	if err != nil {
		respondMappedError(c, err, handlershared.ProductErrorRules, response.CodeInternal, "error.internal")
		return
	}
	response.Success(c, service.NewProductView(*product))
}

// DuplicateProduct 复制商品
func (h *Handler) DuplicateProduct(c *gin.Context) {
	id, ok := requireParam(c, "id")
	if !ok {
		return
	}
	product, err := h.ProductService.Duplicate(id)
	if err != nil {
		respondMappedError(c, err, handlershared.ProductErrorRules, response.CodeInternal, "error.internal")
		return
	}
	response.Success(c, service.NewProductView(*product))
}

// GetAdminCategories 获取全部分类 (Admin)
func (h *Handler) GetAdminCategories(c *gin.Context) {
	categories, err := h.ProductService.Categories(false)
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.Success(c, categories)
}
