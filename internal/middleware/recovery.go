package middleware

import (
	"runtime/debug"

	"github.com/prompthub/prompt-hub-service/global"
	"github.com/prompthub/prompt-hub-service/pkg/app"
	"github.com/prompthub/prompt-hub-service/pkg/code"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Recovery 捕获 handler panic，记录堆栈并返回统一错误响应
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				global.Log().Error("panic recovered",
					zap.Any("error", err),
					zap.String("url", c.Request.URL.Path),
					zap.String("stack", string(debug.Stack())),
				)
				app.NewResponse(c).ToResponse(code.ErrorServerInternal)
				c.Abort()
			}
		}()
		c.Next()
	}
}
