package cart

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"math"
	"strings"
)

// Encode 将购物车编码为可放入 URL 的 token（UTF-8 JSON + URL 安全 base64，无填充）
func Encode(c Cart) string {
	if c == nil {
		c = Cart{}
	}
	raw, err := json.Marshal(c)
	if err != nil {
		return ""
	}
	return base64.RawURLEncoding.EncodeToString(raw)
}

// Decode 解析分享 token
// token 损坏、结构不符时返回 ok=false，调用方应保留原购物车
func Decode(token string) (Cart, bool) {
	raw, ok := decodeBase64(strings.TrimSpace(token))
	if !ok {
		return nil, false
	}

	var elements []json.RawMessage
	if err := json.Unmarshal(raw, &elements); err != nil {
		return nil, false
	}
	if elements == nil {
		return nil, false
	}

	out := make(Cart, 0, len(elements))
	for _, element := range elements {
		item, ok := validateItem(element)
		if !ok {
			return nil, false
		}
		// 重复商品合并为一行
		if idx := out.Index(item.ProductID); idx >= 0 {
			out[idx].Quantity += item.Quantity
			continue
		}
		out = append(out, item)
	}
	return out, true
}

// decodeBase64 兼容 URL 安全与标准字母表、有无填充
func decodeBase64(token string) ([]byte, bool) {
	if token == "" {
		return nil, false
	}
	encodings := []*base64.Encoding{
		base64.RawURLEncoding,
		base64.URLEncoding,
		base64.RawStdEncoding,
		base64.StdEncoding,
	}
	for _, enc := range encodings {
		if raw, err := enc.DecodeString(token); err == nil {
			return raw, true
		}
	}
	return nil, false
}

// validateItem 显式校验单行结构：
// productId/name/price 必须是字符串，quantity 必须是正整数，图片可选
func validateItem(element json.RawMessage) (Item, bool) {
	trimmed := bytes.TrimSpace(element)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return Item{}, false
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &fields); err != nil {
		return Item{}, false
	}

	var item Item
	if !stringField(fields, "productId", &item.ProductID) ||
		!stringField(fields, "name", &item.Name) ||
		!stringField(fields, "price", &item.Price) {
		return Item{}, false
	}

	rawQty, ok := fields["quantity"]
	if !ok {
		return Item{}, false
	}
	var qty float64
	if err := json.Unmarshal(rawQty, &qty); err != nil {
		return Item{}, false
	}
	if qty <= 0 || qty != math.Trunc(qty) || qty > math.MaxInt32 {
		return Item{}, false
	}
	item.Quantity = int(qty)

	if rawImage, ok := fields["imagePreviewUrl"]; ok {
		var image string
		if err := json.Unmarshal(rawImage, &image); err == nil {
			item.Image = image
		}
	}
	return item, true
}

func stringField(fields map[string]json.RawMessage, key string, dst *string) bool {
	raw, ok := fields[key]
	if !ok {
		return false
	}
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '"' {
		return false
	}
	return json.Unmarshal(trimmed, dst) == nil
}
