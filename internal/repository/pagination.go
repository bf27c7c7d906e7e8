package repository

import (
	"math"

	"gorm.io/gorm"
)

// maxPageSize 单页最大条数，防止后台列表一次拉取全表
const maxPageSize = 200

// applyPagination 应用分页参数；pageSize<=0 表示不分页，超过上限时按上限截断
func applyPagination(query *gorm.DB, page, pageSize int) *gorm.DB {
	if query == nil || pageSize <= 0 {
		return query
	}
	limit, offset, ok := pageWindow(page, pageSize)
	if !ok {
		// 偏移量无法表示，必然超出数据范围
		return query.Limit(0)
	}
	return query.Limit(limit).Offset(offset)
}

// pageWindow 计算 limit/offset，页码大到 offset 溢出时 ok=false
func pageWindow(page, pageSize int) (limit, offset int, ok bool) {
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	if page < 1 {
		page = 1
	}
	if page-1 > (math.MaxInt-1)/pageSize {
		return pageSize, 0, false
	}
	return pageSize, (page - 1) * pageSize, true
}
