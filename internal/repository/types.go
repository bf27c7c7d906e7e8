package repository

import "time"

// ProductListFilter 查询商品列表的过滤条件
// 目录检索与排序在内存中完成，这里只做粗过滤
type ProductListFilter struct {
	Status     string
	OnlyPublic bool
	Category   string
}

// OrderListFilter 查询订单列表的过滤条件
type OrderListFilter struct {
	Page        int
	PageSize    int
	Status      string
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}

// AffiliateListFilter 查询推广员列表的过滤条件
type AffiliateListFilter struct {
	Page     int
	PageSize int
	Status   string
	Search   string
}

// PayoutListFilter 查询结算记录的过滤条件
type PayoutListFilter struct {
	Page        int
	PageSize    int
	AffiliateID string
	Status      string
}

// ReferredClientListFilter 查询被推荐客户的过滤条件
type ReferredClientListFilter struct {
	Page        int
	PageSize    int
	AffiliateID string
	Status      string
	Search      string
}
