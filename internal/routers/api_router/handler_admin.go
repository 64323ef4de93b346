package api_router

import (
	"github.com/prompthub/prompt-hub-service/pkg/app"
	"github.com/prompthub/prompt-hub-service/pkg/code"

	"github.com/gin-gonic/gin"
)

// AdminHandler 管理 API：统计、巡检、备份与销毁性操作
type AdminHandler struct {
	*Handler
}

func NewAdminHandler(h *Handler) *AdminHandler {
	return &AdminHandler{Handler: h}
}

// Stats 汇总统计
func (h *AdminHandler) Stats(c *gin.Context) {
	response := app.NewResponse(c)

	stats, err := h.svc(c).StatsGet()
	if err != nil {
		respondError(c, err)
		return
	}
	response.ToResponse(code.Success.WithData(stats))
}

// Verify 引用完整性巡检
func (h *AdminHandler) Verify(c *gin.Context) {
	response := app.NewResponse(c)

	report, err := h.svc(c).AdminVerify()
	if err != nil {
		respondError(c, err)
		return
	}
	response.ToResponse(code.Success.WithData(report))
}

// BackupCreate 手工触发一次备份
func (h *AdminHandler) BackupCreate(c *gin.Context) {
	response := app.NewResponse(c)

	svc := h.svc(c)
	if err := h.hub.Gate.Authorize(h.secret(c)); err != nil {
		respondError(c, err)
		return
	}
	backup, err := svc.BackupCreate()
	if err != nil {
		respondError(c, err)
		return
	}
	response.ToResponse(code.Success.WithData(backup))
}

// BackupList 备份清单
func (h *AdminHandler) BackupList(c *gin.Context) {
	response := app.NewResponse(c)

	list, err := h.svc(c).BackupList()
	if err != nil {
		respondError(c, err)
		return
	}
	response.ToResponse(code.Success.WithData(list))
}

// Clear 清空数据，自动先落备份
func (h *AdminHandler) Clear(c *gin.Context) {
	response := app.NewResponse(c)

	backup, err := h.svc(c).AdminClear(h.secret(c))
	if err != nil {
		respondError(c, err)
		return
	}
	response.ToResponse(code.Success.WithData(backup))
}

// LoadTestData 载入演示数据
func (h *AdminHandler) LoadTestData(c *gin.Context) {
	response := app.NewResponse(c)

	backup, err := h.svc(c).AdminLoadTestData(h.secret(c))
	if err != nil {
		respondError(c, err)
		return
	}
	response.ToResponse(code.Success.WithData(backup))
}
