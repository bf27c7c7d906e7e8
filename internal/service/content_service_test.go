package service

import (
	"context"
	"errors"
	"testing"

	"github.com/vitrina-next/internal/ai"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
)

type stubChatModel struct {
	reply string
	err   error
}

func (s *stubChatModel) Generate(_ context.Context, _ []*schema.Message, _ ...model.Option) (*schema.Message, error) {
	if s.err != nil {
		return nil, s.err
	}
	return schema.AssistantMessage(s.reply, nil), nil
}

func (s *stubChatModel) Stream(_ context.Context, _ []*schema.Message, _ ...model.Option) (*schema.StreamReader[*schema.Message], error) {
	return nil, errors.New("stream not supported")
}

func TestContentServiceUnavailable(t *testing.T) {
	env := newServiceTestEnv(t, "content_unavailable")
	svc := NewContentService(ai.NewGenerator(nil, 0), env.products)

	if svc.Available() {
		t.Fatalf("generator without model should be unavailable")
	}
	if _, err := svc.GenerateDescription(t.Context(), ai.ProductDetails{Name: "Taza"}); !errors.Is(err, ErrAIUnavailable) {
		t.Fatalf("expected ai unavailable, got %v", err)
	}
	if _, err := svc.GenerateMarketingContent(t.Context(), " "); !errors.Is(err, ErrAIPromptRequired) {
		t.Fatalf("expected prompt required, got %v", err)
	}
}

func TestGenerateProductDescriptionSaves(t *testing.T) {
	env := newServiceTestEnv(t, "content_product_description")
	product := mustCreateProduct(t, env, ProductInput{Name: "Taza artesanal", BasePrice: "20", Currency: "USD", Idea: "cerámica"})
	svc := NewContentService(ai.NewGenerator(&stubChatModel{reply: " Taza única hecha a mano. "}, 0), env.products)

	updated, err := svc.GenerateProductDescription(t.Context(), product.ID)
	if err != nil {
		t.Fatalf("generate product description failed: %v", err)
	}
	if updated.GeneratedDescription != "Taza única hecha a mano." {
		t.Fatalf("unexpected description: %q", updated.GeneratedDescription)
	}
	reloaded, err := env.products.GetAdminByID(product.ID)
	if err != nil {
		t.Fatalf("reload product failed: %v", err)
	}
	if reloaded.GeneratedDescription != updated.GeneratedDescription {
		t.Fatalf("description not persisted: %q", reloaded.GeneratedDescription)
	}
	if _, err := svc.GenerateProductDescription(t.Context(), "missing"); !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("expected product not found, got %v", err)
	}
}

func TestContentServiceWrapsGeneratorFailure(t *testing.T) {
	env := newServiceTestEnv(t, "content_failure")
	svc := NewContentService(ai.NewGenerator(&stubChatModel{err: errors.New("quota exceeded")}, 0), env.products)

	if _, err := svc.SuggestCategories(t.Context(), "Taza", ""); !errors.Is(err, ErrAIGenerateFailed) {
		t.Fatalf("expected generate failed, got %v", err)
	}
}
