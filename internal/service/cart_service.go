package service

import (
	"strings"

	"github.com/vitrina-next/internal/cart"
	"github.com/vitrina-next/internal/catalog"
	"github.com/vitrina-next/internal/constants"
	"github.com/vitrina-next/internal/logger"
	"github.com/vitrina-next/internal/models"
	"github.com/vitrina-next/internal/pricing"
	"github.com/vitrina-next/internal/repository"
)

// CartService 购物车服务，按购物车 key 持久化
type CartService struct {
	repo        repository.CartRepository
	productRepo repository.ProductRepository
}

// NewCartService 创建购物车服务
func NewCartService(repo repository.CartRepository, productRepo repository.ProductRepository) *CartService {
	return &CartService{repo: repo, productRepo: productRepo}
}

// CartView 购物车及汇总
type CartView struct {
	Items           cart.Cart `json:"items"`
	Count           int       `json:"count"`
	Subtotal        string    `json:"subtotal"`
	SubtotalDisplay string    `json:"subtotal_display"`
	Currency        string    `json:"currency"`
}

// BuildCartView 汇总购物车
func BuildCartView(items cart.Cart, currency string) CartView {
	if items == nil {
		items = cart.Cart{}
	}
	currency = strings.ToUpper(strings.TrimSpace(currency))
	if currency == "" {
		currency = constants.CurrencyDefault
	}
	subtotal := items.Subtotal()
	return CartView{
		Items:           items,
		Count:           items.Count(),
		Subtotal:        subtotal.StringFixed(2),
		SubtotalDisplay: pricing.Format(subtotal, currency),
		Currency:        currency,
	}
}

// Get 读取购物车
func (s *CartService) Get(ownerKey string) (cart.Cart, error) {
	ownerKey, err := normalizeCartKey(ownerKey)
	if err != nil {
		return nil, err
	}
	rows, err := s.repo.ListByOwner(ownerKey)
	if err != nil {
		return nil, err
	}
	out := make(cart.Cart, 0, len(rows))
	for _, row := range rows {
		out = append(out, cart.Item{
			ProductID: row.ProductID,
			Name:      row.Name,
			Price:     row.Price,
			Quantity:  row.Quantity,
			Image:     row.ImageURL,
		})
	}
	return out, nil
}

// Add 加入商品，价格取当前成交价快照
func (s *CartService) Add(ownerKey, productID string) (cart.Cart, error) {
	current, err := s.Get(ownerKey)
	if err != nil {
		return nil, err
	}
	product, err := s.productRepo.GetByID(strings.TrimSpace(productID))
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	if !catalog.IsPublic(*product) {
		return nil, ErrProductNotAvailable
	}
	quote := pricing.Calculate(pricing.Input{
		BasePrice:    product.BasePrice,
		TaxRate:      product.TaxRate,
		DiscountRate: product.DiscountRate,
		Currency:     product.Currency,
	})
	return s.save(ownerKey, current.Add(*product, quote.FinalPrice))
}

// SetQuantity 设置数量，n ≤ 0 时移除该行
func (s *CartService) SetQuantity(ownerKey, productID string, quantity int) (cart.Cart, error) {
	current, err := s.Get(ownerKey)
	if err != nil {
		return nil, err
	}
	return s.save(ownerKey, current.SetQuantity(strings.TrimSpace(productID), quantity))
}

// Remove 移除商品行
func (s *CartService) Remove(ownerKey, productID string) (cart.Cart, error) {
	current, err := s.Get(ownerKey)
	if err != nil {
		return nil, err
	}
	return s.save(ownerKey, current.Remove(strings.TrimSpace(productID)))
}

// Clear 清空购物车
func (s *CartService) Clear(ownerKey string) error {
	ownerKey, err := normalizeCartKey(ownerKey)
	if err != nil {
		return err
	}
	return s.repo.ClearByOwner(ownerKey)
}

// Share 生成分享 token
func (s *CartService) Share(ownerKey string) (string, error) {
	current, err := s.Get(ownerKey)
	if err != nil {
		return "", err
	}
	return cart.Encode(current), nil
}

// Import 用分享 token 替换购物车；token 无效时原购物车保持不变
func (s *CartService) Import(ownerKey, token string) (cart.Cart, error) {
	if _, err := normalizeCartKey(ownerKey); err != nil {
		return nil, err
	}
	shared, ok := cart.Decode(token)
	if !ok {
		logger.Warnw("cart_shared_token_invalid", "token_length", len(token))
		return nil, ErrSharedCartInvalid
	}
	return s.save(ownerKey, shared)
}

func (s *CartService) save(ownerKey string, items cart.Cart) (cart.Cart, error) {
	ownerKey, err := normalizeCartKey(ownerKey)
	if err != nil {
		return nil, err
	}
	rows := make([]models.CartItem, 0, len(items))
	for _, item := range items {
		rows = append(rows, models.CartItem{
			ProductID: item.ProductID,
			Name:      item.Name,
			Price:     item.Price,
			Quantity:  item.Quantity,
			ImageURL:  item.Image,
		})
	}
	if err := s.repo.Replace(ownerKey, rows); err != nil {
		return nil, err
	}
	if items == nil {
		items = cart.Cart{}
	}
	return items, nil
}

func normalizeCartKey(ownerKey string) (string, error) {
	ownerKey = strings.TrimSpace(ownerKey)
	if ownerKey == "" || len(ownerKey) > 64 {
		return "", ErrCartKeyRequired
	}
	return ownerKey, nil
}
