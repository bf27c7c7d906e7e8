package public

import (
	"strings"

	"github.com/vitrina-next/internal/constants"
	"github.com/vitrina-next/internal/http/response"
	"github.com/vitrina-next/internal/service"

	handlershared "github.com/vitrina-next/internal/http/handlers/shared"

	"github.com/gin-gonic/gin"
)

// AddCartItemRequest 加入购物车请求
type AddCartItemRequest struct {
	ProductID string `json:"product_id" binding:"required"`
}

// UpdateCartItemRequest 修改数量请求，数量 <=0 时移除
type UpdateCartItemRequest struct {
	Quantity int `json:"quantity"`
}

var cartErrorRules = handlershared.ConcatMappedErrors(handlershared.CartErrorRules, handlershared.ProductErrorRules)

// GetCart 获取购物车
func (h *Handler) GetCart(c *gin.Context) {
	key, ok := getCartKey(c)
	if !ok {
		return
	}
	items, err := h.CartService.Get(key)
	if err != nil {
		respondMappedError(c, err, cartErrorRules, response.CodeInternal, "error.internal")
		return
	}
	response.Success(c, service.BuildCartView(items, displayCurrency(c)))
}

// AddCartItem 加入商品，已存在时数量 +1
func (h *Handler) AddCartItem(c *gin.Context) {
	key, ok := getCartKey(c)
	if !ok {
		return
	}
	var req AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	items, err := h.CartService.Add(key, req.ProductID)
	if err != nil {
		respondMappedError(c, err, cartErrorRules, response.CodeInternal, "error.internal")
		return
	}
	response.Success(c, service.BuildCartView(items, displayCurrency(c)))
}

// UpdateCartItem 修改购物车商品数量
func (h *Handler) UpdateCartItem(c *gin.Context) {
	key, ok := getCartKey(c)
	if !ok {
		return
	}
	var req UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	items, err := h.CartService.SetQuantity(key, c.Param("product_id"), req.Quantity)
	if err != nil {
		respondMappedError(c, err, cartErrorRules, response.CodeInternal, "error.internal")
		return
	}
	response.Success(c, service.BuildCartView(items, displayCurrency(c)))
}

// RemoveCartItem 移除购物车商品
func (h *Handler) RemoveCartItem(c *gin.Context) {
	key, ok := getCartKey(c)
	if !ok {
		return
	}
	items, err := h.CartService.Remove(key, c.Param("product_id"))
	if err != nil {
		respondMappedError(c, err, cartErrorRules, response.CodeInternal, "error.internal")
		return
	}
	response.Success(c, service.BuildCartView(items, displayCurrency(c)))
}

// ClearCart 清空购物车
func (h *Handler) ClearCart(c *gin.Context) {
	key, ok := getCartKey(c)
	if !ok {
		return
	}
	if err := h.CartService.Clear(key); err != nil {
		respondMappedError(c, err, cartErrorRules, response.CodeInternal, "error.internal")
		return
	}
	response.Success(c, service.BuildCartView(nil, displayCurrency(c)))
}

// ShareCart 生成购物车分享 token
func (h *Handler) ShareCart(c *gin.Context) {
	key, ok := getCartKey(c)
	if !ok {
		return
	}
	token, err := h.CartService.Share(key)
	if err != nil {
		h.Metrics.RecordSharedCart("share", false)
		respondMappedError(c, err, cartErrorRules, response.CodeInternal, "error.internal")
		return
	}
	h.Metrics.RecordSharedCart("share", true)
	response.Success(c, gin.H{
		"token": token,
		"query": constants.QuerySharedCart + "=" + token,
	})
}

// ImportCart 导入分享的购物车，无法解码时返回错误且不修改当前购物车
func (h *Handler) ImportCart(c *gin.Context) {
	key, ok := getCartKey(c)
	if !ok {
		return
	}
	token := strings.TrimSpace(c.Query(constants.QuerySharedCart))
	items, err := h.CartService.Import(key, token)
	if err != nil {
		h.Metrics.RecordSharedCart("import", false)
		respondMappedError(c, err, cartErrorRules, response.CodeInternal, "error.internal")
		return
	}
	h.Metrics.RecordSharedCart("import", true)
	response.Success(c, service.BuildCartView(items, displayCurrency(c)))
}
