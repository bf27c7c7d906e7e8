package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/vitrina-next/internal/ai"
	"github.com/vitrina-next/internal/logger"
	"github.com/vitrina-next/internal/models"
	"github.com/vitrina-next/internal/pricing"
)

// ContentService 商品文案生成服务
type ContentService struct {
	generator      *ai.Generator
	productService *ProductService
}

// NewContentService 创建文案生成服务
func NewContentService(generator *ai.Generator, productService *ProductService) *ContentService {
	return &ContentService{generator: generator, productService: productService}
}

// Available 文案生成是否可用
func (s *ContentService) Available() bool {
	return s != nil && s.generator.Available()
}

// GenerateDescription 按商品信息生成描述
func (s *ContentService) GenerateDescription(ctx context.Context, details ai.ProductDetails) (string, error) {
	if strings.TrimSpace(details.Name) == "" {
		return "", fmt.Errorf("%w: product name", ErrAIPromptRequired)
	}
	text, err := s.generator.GenerateDescription(ctx, details)
	return text, mapGeneratorError(err)
}

// GenerateProductDescription 为已有商品生成描述并保存
func (s *ContentService) GenerateProductDescription(ctx context.Context, productID string) (*models.Product, error) {
	product, err := s.productService.GetAdminByID(productID)
	if err != nil {
		return nil, err
	}
	details := ai.ProductDetails{
		Name:     product.Name,
		Category: product.Category,
		Idea:     product.Idea,
	}
	if quote := NewProductView(*product).Pricing; quote.Valid {
		details.Price = pricing.Format(quote.FinalPrice, quote.Currency)
	}
	text, err := s.GenerateDescription(ctx, details)
	if err != nil {
		return nil, err
	}
	return s.productService.SaveGeneratedDescription(product.ID, text)
}

// SuggestCategories 建议分类
func (s *ContentService) SuggestCategories(ctx context.Context, name, idea string) ([]string, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%w: product name", ErrAIPromptRequired)
	}
	categories, err := s.generator.SuggestCategories(ctx, name, idea)
	return categories, mapGeneratorError(err)
}

// GenerateMarketingContent 生成营销文案
func (s *ContentService) GenerateMarketingContent(ctx context.Context, prompt string) (string, error) {
	if strings.TrimSpace(prompt) == "" {
		return "", ErrAIPromptRequired
	}
	text, err := s.generator.GenerateMarketingContent(ctx, prompt)
	return text, mapGeneratorError(err)
}

func mapGeneratorError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ai.ErrUnavailable):
		return ErrAIUnavailable
	default:
		logger.Warnw("content_generate_failed", "error", err)
		return fmt.Errorf("%w: %v", ErrAIGenerateFailed, err)
	}
}
