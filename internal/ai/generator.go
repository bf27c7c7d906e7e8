// Package ai 基于 eino 聊天模型生成商品文案。
package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/vitrina-next/internal/config"
	"github.com/vitrina-next/internal/logger"

	"github.com/cloudwego/eino-ext/components/model/gemini"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"google.golang.org/genai"
)

var (
	// ErrUnavailable 未配置模型
	ErrUnavailable = errors.New("text generator unavailable")
	// ErrEmptyResponse 模型返回空内容
	ErrEmptyResponse = errors.New("text generator returned empty response")
	// ErrInvalidCategories 分类建议无法解析为字符串数组
	ErrInvalidCategories = errors.New("category suggestion is not a json string array")
)

const (
	defaultModel       = "gemini-2.5-flash"
	defaultTemperature = float32(0.7)
	defaultMaxTokens   = 1024
	defaultTimeout     = 30 * time.Second
)

var fencePattern = regexp.MustCompile("(?s)^```(\\w*)?\\s*\\n?(.*?)\\n?\\s*```$")

// ProductDetails 生成描述所需的商品信息
type ProductDetails struct {
	Name     string `json:"name"`
	Category string `json:"category"`
	Price    string `json:"price"`
	Idea     string `json:"idea"`
}

// Generator 商品文案生成器
type Generator struct {
	chat    model.BaseChatModel
	timeout time.Duration
}

// NewGenerator 使用给定聊天模型创建生成器，chat 为 nil 时所有调用返回 ErrUnavailable
func NewGenerator(chat model.BaseChatModel, timeout time.Duration) *Generator {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Generator{chat: chat, timeout: timeout}
}

// NewGeminiGenerator 按配置创建 Gemini 生成器；未启用或缺少 API Key 时返回不可用的生成器
func NewGeminiGenerator(ctx context.Context, cfg config.AIConfig) (*Generator, error) {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if !cfg.Enabled || strings.TrimSpace(cfg.APIKey) == "" {
		return NewGenerator(nil, timeout), nil
	}

	clientCfg := &genai.ClientConfig{
		APIKey:  strings.TrimSpace(cfg.APIKey),
		Backend: genai.BackendGeminiAPI,
	}
	if baseURL := strings.TrimSpace(cfg.BaseURL); baseURL != "" {
		clientCfg.HTTPOptions.BaseURL = baseURL
	}
	client, err := genai.NewClient(ctx, clientCfg)
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	modelName := strings.TrimSpace(cfg.Model)
	if modelName == "" {
		modelName = defaultModel
	}
	temperature := cfg.Temperature
	if temperature <= 0 {
		temperature = defaultTemperature
	}
	maxTokens := cfg.MaxTokens
	if maxTokens <= 0 {
		maxTokens = defaultMaxTokens
	}
	chat, err := gemini.NewChatModel(ctx, &gemini.Config{
		Client:      client,
		Model:       modelName,
		Temperature: &temperature,
		MaxTokens:   &maxTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini chat model: %w", err)
	}
	logger.Infow("ai_generator_ready", "model", modelName)
	return NewGenerator(chat, timeout), nil
}

// Available 是否已配置模型
func (g *Generator) Available() bool {
	return g != nil && g.chat != nil
}

// GenerateDescription 生成 3~4 句的商品描述
func (g *Generator) GenerateDescription(ctx context.Context, details ProductDetails) (string, error) {
	return g.generate(ctx, descriptionPrompt(details))
}

// SuggestCategories 建议 3 个商品分类
func (g *Generator) SuggestCategories(ctx context.Context, name, idea string) ([]string, error) {
	raw, err := g.generate(ctx, categoriesPrompt(name, idea))
	if err != nil {
		return nil, err
	}
	return parseCategories(raw)
}

// GenerateMarketingContent 按自由提示生成营销文案
func (g *Generator) GenerateMarketingContent(ctx context.Context, prompt string) (string, error) {
	return g.generate(ctx, marketingPrompt(prompt))
}

func (g *Generator) generate(ctx context.Context, prompt string) (string, error) {
	if !g.Available() {
		return "", ErrUnavailable
	}
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	msg, err := g.chat.Generate(ctx, []*schema.Message{
		schema.SystemMessage(systemPrompt),
		schema.UserMessage(prompt),
	})
	if err != nil {
		logger.Warnw("ai_generate_failed", "error", err)
		return "", err
	}
	if msg == nil {
		return "", ErrEmptyResponse
	}
	content := strings.TrimSpace(msg.Content)
	if content == "" {
		return "", ErrEmptyResponse
	}
	return content, nil
}

// parseCategories 解析 JSON 字符串数组，兼容 markdown 代码块包裹
func parseCategories(raw string) ([]string, error) {
	text := strings.TrimSpace(raw)
	if match := fencePattern.FindStringSubmatch(text); len(match) == 3 && strings.TrimSpace(match[2]) != "" {
		text = strings.TrimSpace(match[2])
	}
	var categories []string
	if err := json.Unmarshal([]byte(text), &categories); err != nil {
		logger.Warnw("ai_categories_parse_failed", "raw", raw, "error", err)
		return nil, ErrInvalidCategories
	}
	out := make([]string, 0, len(categories))
	for _, category := range categories {
		if trimmed := strings.TrimSpace(category); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out, nil
}
