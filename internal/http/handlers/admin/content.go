package admin

import (
	"github.com/vitrina-next/internal/ai"
	"github.com/vitrina-next/internal/http/response"
	"github.com/vitrina-next/internal/service"

	handlershared "github.com/vitrina-next/internal/http/handlers/shared"

	"github.com/gin-gonic/gin"
)

type generateDescriptionPayload struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	Category  string `json:"category"`
	Price     string `json:"price"`
	Idea      string `json:"idea"`
}

type suggestCategoriesPayload struct {
	Name string `json:"name" binding:"required"`
	Idea string `json:"idea"`
}

type marketingContentPayload struct {
	Prompt string `json:"prompt" binding:"required"`
}

var contentErrorRules = handlershared.ConcatMappedErrors(handlershared.ContentErrorRules, handlershared.ProductErrorRules)

// GenerateDescription 生成商品描述；传 product_id 时写回商品
func (h *Handler) GenerateDescription(c *gin.Context) {
	var req generateDescriptionPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	if req.ProductID != "" {
		product, err := h.ContentService.GenerateProductDescription(c.Request.Context(), req.ProductID)
		h.Metrics.RecordAIGeneration("description", err == nil)
		if err != nil {
			respondMappedError(c, err, contentErrorRules, response.CodeInternal, "error.ai_generate_failed")
			return
		}
		response.Success(c, service.NewProductView(*product))
		return
	}

	text, err := h.ContentService.GenerateDescription(c.Request.Context(), ai.ProductDetails{
		Name:     req.Name,
		Category: req.Category,
		Price:    req.Price,
		Idea:     req.Idea,
	})
	h.Metrics.RecordAIGeneration("description", err == nil)
	if err != nil {
		respondMappedError(c, err, contentErrorRules, response.CodeInternal, "error.ai_generate_failed")
		return
	}
	response.Success(c, gin.H{"description": text})
}

// SuggestCategories 建议商品分类
func (h *Handler) SuggestCategories(c *gin.Context) {
	var req suggestCategoriesPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	categories, err := h.ContentService.SuggestCategories(c.Request.Context(), req.Name, req.Idea)
	h.Metrics.RecordAIGeneration("categories", err == nil)
	if err != nil {
		respondMappedError(c, err, contentErrorRules, response.CodeInternal, "error.ai_generate_failed")
		return
	}
	response.Success(c, gin.H{"categories": categories})
}

// GenerateMarketingContent 生成营销文案
func (h *Handler) GenerateMarketingContent(c *gin.Context) {
	var req marketingContentPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	text, err := h.ContentService.GenerateMarketingContent(c.Request.Context(), req.Prompt)
	h.Metrics.RecordAIGeneration("marketing", err == nil)
	if err != nil {
		respondMappedError(c, err, contentErrorRules, response.CodeInternal, "error.ai_generate_failed")
		return
	}
	response.Success(c, gin.H{"content": text})
}
