// Package catalog 商品状态流转与目录筛选排序
package catalog

import (
	"sort"
	"strings"

	"github.com/vitrina-next/internal/constants"
	"github.com/vitrina-next/internal/models"
	"github.com/vitrina-next/internal/pricing"

	"github.com/shopspring/decimal"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Criteria 目录筛选条件，空字段表示该维度不过滤
type Criteria struct {
	SearchTerm string `form:"search" json:"search"`
	Category   string `form:"category" json:"category"`
	Status     string `form:"status" json:"status"`
	SortOrder  string `form:"sort" json:"sort"`
}

// Matches 判断商品是否满足筛选条件
func (c Criteria) Matches(p models.Product) bool {
	if term := strings.ToLower(strings.TrimSpace(c.SearchTerm)); term != "" {
		if !strings.Contains(strings.ToLower(p.Name), term) && !strings.Contains(strings.ToLower(p.Idea), term) {
			return false
		}
	}
	if c.Category != "" && p.Category != c.Category {
		return false
	}
	if c.Status != "" && p.Status != c.Status {
		return false
	}
	return true
}

// Filter 按条件筛选，保持原有相对顺序
func Filter(products []models.Product, criteria Criteria) []models.Product {
	result := make([]models.Product, 0, len(products))
	for _, p := range products {
		if criteria.Matches(p) {
			result = append(result, p)
		}
	}
	return result
}

// Query 管理端目录：筛选后稳定排序
func Query(products []models.Product, criteria Criteria) []models.Product {
	return Sort(Filter(products, criteria), criteria.SortOrder)
}

// Storefront 前台目录：先限定 active 商品，再筛选排序
func Storefront(products []models.Product, criteria Criteria) []models.Product {
	public := make([]models.Product, 0, len(products))
	for _, p := range products {
		if IsPublic(p) {
			public = append(public, p)
		}
	}
	return Query(public, criteria)
}

// NormalizeSortOrder 未知排序方式回落到 date-desc
func NormalizeSortOrder(order string) string {
	switch order {
	case constants.SortDateAsc, constants.SortNameAsc, constants.SortNameDesc,
		constants.SortPriceAsc, constants.SortPriceDesc, constants.SortDateDesc:
		return order
	default:
		return constants.SortDateDesc
	}
}

// Sort 返回排序后的新切片，相等元素保持原顺序
// 价格无法解析的商品在升序与降序中都排在最后
func Sort(products []models.Product, order string) []models.Product {
	sorted := append([]models.Product(nil), products...)

	switch NormalizeSortOrder(order) {
	case constants.SortDateAsc:
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].CreatedAt.Before(sorted[j].CreatedAt)
		})
	case constants.SortNameAsc, constants.SortNameDesc:
		col := collate.New(language.Spanish, collate.IgnoreCase)
		desc := order == constants.SortNameDesc
		sort.SliceStable(sorted, func(i, j int) bool {
			cmp := col.CompareString(sorted[i].Name, sorted[j].Name)
			if desc {
				return cmp > 0
			}
			return cmp < 0
		})
	case constants.SortPriceAsc:
		keys := priceKeys(sorted)
		sort.Stable(byPrice{items: sorted, keys: keys, desc: false})
	case constants.SortPriceDesc:
		keys := priceKeys(sorted)
		sort.Stable(byPrice{items: sorted, keys: keys, desc: true})
	default:
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].CreatedAt.After(sorted[j].CreatedAt)
		})
	}
	return sorted
}

// Categories 返回目录中出现过的分类（按首次出现顺序去重）
func Categories(products []models.Product) []string {
	seen := make(map[string]struct{}, len(products))
	result := make([]string, 0)
	for _, p := range products {
		name := strings.TrimSpace(p.Category)
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		result = append(result, name)
	}
	return result
}

type priceKey struct {
	value decimal.Decimal
	valid bool
}

func priceKeys(products []models.Product) []priceKey {
	keys := make([]priceKey, len(products))
	for i, p := range products {
		value, ok := pricing.ParseAmount(p.BasePrice)
		keys[i] = priceKey{value: value, valid: ok}
	}
	return keys
}

// byPrice 同时交换商品与排序键
// 无效价格在升序视为 +∞，在降序视为 −∞
type byPrice struct {
	items []models.Product
	keys  []priceKey
	desc  bool
}

func (b byPrice) Len() int { return len(b.items) }

func (b byPrice) Swap(i, j int) {
	b.items[i], b.items[j] = b.items[j], b.items[i]
	b.keys[i], b.keys[j] = b.keys[j], b.keys[i]
}

func (b byPrice) Less(i, j int) bool {
	ki, kj := b.keys[i], b.keys[j]
	switch {
	case !ki.valid && !kj.valid:
		return false
	case !ki.valid:
		return false
	case !kj.valid:
		return true
	}
	if b.desc {
		return ki.value.GreaterThan(kj.value)
	}
	return ki.value.LessThan(kj.value)
}
