// Package cart 购物车内容的纯值操作与分享 token 编解码。
//
// 所有操作返回新的 Cart，不修改入参；持久化由调用方负责。
// Cart 始终满足：同一商品最多一行，数量至少为 1。
package cart

import (
	"github.com/vitrina-next/internal/models"

	"github.com/shopspring/decimal"
)

// Item 购物车行
// Price 为加入时的成交价快照
type Item struct {
	ProductID string `json:"productId"`
	Name      string `json:"name"`
	Price     string `json:"price"`
	Quantity  int    `json:"quantity"`
	Image     string `json:"imagePreviewUrl,omitempty"`
}

// Cart 购物车内容
type Cart []Item

func (c Cart) clone() Cart {
	out := make(Cart, len(c))
	copy(out, c)
	return out
}

// Index 返回商品所在行，不存在返回 -1
func (c Cart) Index(productID string) int {
	for i, item := range c {
		if item.ProductID == productID {
			return i
		}
	}
	return -1
}

// Add 加入商品：已存在则数量加 1（不重算价格），否则追加新行
func (c Cart) Add(product models.Product, finalPrice decimal.Decimal) Cart {
	out := c.clone()
	if idx := out.Index(product.ID); idx >= 0 {
		out[idx].Quantity++
		return out
	}
	return append(out, Item{
		ProductID: product.ID,
		Name:      product.Name,
		Price:     finalPrice.StringFixed(2),
		Quantity:  1,
		Image:     product.Images.First(),
	})
}

// Remove 移除商品行，不存在时不做任何事
func (c Cart) Remove(productID string) Cart {
	out := make(Cart, 0, len(c))
	for _, item := range c {
		if item.ProductID != productID {
			out = append(out, item)
		}
	}
	return out
}

// SetQuantity 设置数量，n ≤ 0 等同于移除
func (c Cart) SetQuantity(productID string, n int) Cart {
	if n <= 0 {
		return c.Remove(productID)
	}
	out := c.clone()
	if idx := out.Index(productID); idx >= 0 {
		out[idx].Quantity = n
	}
	return out
}

// Clear 清空购物车
func (c Cart) Clear() Cart {
	return Cart{}
}

// Prune 商品被删除后移除对应行
func (c Cart) Prune(productID string) Cart {
	return c.Remove(productID)
}

// SyncProduct 商品更新后同步名称与图片快照，价格快照保持不变
func (c Cart) SyncProduct(product models.Product) Cart {
	out := c.clone()
	if idx := out.Index(product.ID); idx >= 0 {
		out[idx].Name = product.Name
		out[idx].Image = product.Images.First()
	}
	return out
}

// Count 商品件数合计
func (c Cart) Count() int {
	total := 0
	for _, item := range c {
		total += item.Quantity
	}
	return total
}

// Subtotal 单价乘数量之和，无法解析的价格计为 0
func (c Cart) Subtotal() decimal.Decimal {
	total := decimal.Zero
	for _, item := range c {
		price, err := decimal.NewFromString(item.Price)
		if err != nil {
			continue
		}
		total = total.Add(price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return total.Round(2)
}
