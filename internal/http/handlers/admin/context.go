package admin

import (
	"strings"

	"github.com/vitrina-next/internal/http/response"

	handlershared "github.com/vitrina-next/internal/http/handlers/shared"

	"github.com/gin-gonic/gin"
)

func getAdminID(c *gin.Context) (uint, bool) {
	return handlershared.GetAdminID(c)
}

// requireParam 读取路径参数，为空时直接返回 400
func requireParam(c *gin.Context, name string) (string, bool) {
	value := strings.TrimSpace(c.Param(name))
	if value == "" {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return "", false
	}
	return value, true
}
