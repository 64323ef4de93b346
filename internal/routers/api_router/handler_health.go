package api_router

import (
	"github.com/prompthub/prompt-hub-service/global"
	"github.com/prompthub/prompt-hub-service/pkg/app"
	"github.com/prompthub/prompt-hub-service/pkg/code"

	"github.com/gin-gonic/gin"
)

type HealthHandler struct {
	*Handler
}

func NewHealthHandler(h *Handler) *HealthHandler {
	return &HealthHandler{Handler: h}
}

// Health 健康检查，顺带报告存储可达性
func (h *HealthHandler) Health(c *gin.Context) {
	response := app.NewResponse(c)

	if _, err := h.svc(c).CategoryList(); err != nil {
		respondError(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(gin.H{
		"name":   global.Name,
		"status": "ok",
	}))
}
