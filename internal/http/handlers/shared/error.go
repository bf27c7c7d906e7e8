package shared

import (
	"github.com/vitrina-next/internal/http/response"
	"github.com/vitrina-next/internal/i18n"
	"github.com/vitrina-next/internal/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RequestLog 提供携带 request_id 的日志实例。
func RequestLog(c *gin.Context) *zap.SugaredLogger {
	if id := response.RequestID(c); id != "" {
		return logger.SW(response.RequestIDKey, id)
	}
	return logger.S()
}

// RespondError 返回国际化错误响应。
func RespondError(c *gin.Context, code int, key string, err error) {
	RespondErrorWithMsg(c, code, i18n.T(i18n.ResolveLocale(c), key), err)
}

// RespondErrorWithMsg 返回自定义消息错误响应；有原始错误时，5xx 记 error，其余记 warn。
func RespondErrorWithMsg(c *gin.Context, code int, msg string, err error) {
	if err != nil {
		log := RequestLog(c)
		kv := []interface{}{"code", code, "message", msg, "error", err}
		if c != nil && c.Request != nil {
			kv = append(kv, "method", c.Request.Method, "path", c.FullPath())
		}
		if code >= response.CodeInternal {
			log.Errorw("handler_error", kv...)
		} else {
			log.Warnw("handler_error", kv...)
		}
	}
	response.Error(c, code, msg)
}
