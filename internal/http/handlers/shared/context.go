package shared

import (
	"github.com/vitrina-next/internal/http/response"

	"github.com/gin-gonic/gin"
)

// 后台鉴权中间件写入 gin.Context 的键
const (
	AdminIDKey   = "admin_id"
	AdminRoleKey = "admin_role"
)

// GetAdminID 读取 JWT 中间件写入的后台账号 ID，缺失时直接返回 401。
func GetAdminID(c *gin.Context) (uint, bool) {
	value, exists := c.Get(AdminIDKey)
	id, ok := value.(uint)
	if !exists || !ok || id == 0 {
		RespondError(c, response.CodeUnauthorized, "error.unauthorized", nil)
		return 0, false
	}
	return id, true
}

// GetAdminRole 读取 JWT 中间件写入的后台账号角色。
func GetAdminRole(c *gin.Context) string {
	return c.GetString(AdminRoleKey)
}
