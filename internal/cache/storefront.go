package cache

import (
	"context"
	"time"

	"github.com/vitrina-next/internal/constants"
)

// StorefrontKey 前台商品列表缓存键，variant 为查询条件摘要
func StorefrontKey(variant string) string {
	if variant == "" {
		return constants.CacheKeyStorefront
	}
	return constants.CacheKeyStorefront + ":" + variant
}

// GetStorefront 读取前台商品列表缓存
func GetStorefront(ctx context.Context, variant string, dest interface{}) (bool, error) {
	return GetJSON(ctx, StorefrontKey(variant), dest)
}

// SetStorefront 写入前台商品列表缓存，ttl<=0 时不缓存
func SetStorefront(ctx context.Context, variant string, value interface{}, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	return SetJSON(ctx, StorefrontKey(variant), value, ttl)
}

// InvalidateStorefront 删除全部前台商品列表缓存
func InvalidateStorefront(ctx context.Context) error {
	if err := Del(ctx, constants.CacheKeyStorefront); err != nil {
		return err
	}
	_, err := DelByPattern(ctx, constants.CacheKeyStorefront+":*")
	return err
}
