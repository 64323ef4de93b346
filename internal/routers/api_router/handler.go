// Package api_router HTTP API 处理器
package api_router

import (
	"github.com/prompthub/prompt-hub-service/internal/middleware"
	"github.com/prompthub/prompt-hub-service/internal/service"
	"github.com/prompthub/prompt-hub-service/pkg/app"
	"github.com/prompthub/prompt-hub-service/pkg/code"

	"github.com/gin-gonic/gin"
)

// Handler 处理器公共依赖
type Handler struct {
	hub *service.Hub
}

func NewHandler(hub *service.Hub) *Handler {
	return &Handler{hub: hub}
}

// svc 构造请求级服务实例
func (h *Handler) svc(c *gin.Context) *service.Service {
	return service.New(c.Request.Context(), h.hub)
}

// secret 取出请求携带的管理口令
func (h *Handler) secret(c *gin.Context) string {
	return middleware.GetAdminSecret(c)
}

// respondError 将服务层错误转换为统一响应
func respondError(c *gin.Context, err error) {
	response := app.NewResponse(c)
	if codeObj, ok := err.(*code.Code); ok {
		response.ToResponse(codeObj)
		return
	}
	response.ToResponse(code.ErrorServerInternal.WithDetails(err.Error()))
}
