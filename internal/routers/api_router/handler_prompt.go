package api_router

import (
	"github.com/prompthub/prompt-hub-service/global"
	"github.com/prompthub/prompt-hub-service/internal/service"
	"github.com/prompthub/prompt-hub-service/pkg/app"
	"github.com/prompthub/prompt-hub-service/pkg/code"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// PromptHandler 提示词 API
type PromptHandler struct {
	*Handler
}

func NewPromptHandler(h *Handler) *PromptHandler {
	return &PromptHandler{Handler: h}
}

// List 检索提示词，支持关键词、分类子树与标签过滤
func (h *PromptHandler) List(c *gin.Context) {
	response := app.NewResponse(c)
	params := &service.PromptSearchRequest{}

	valid, errs := app.BindAndValid(c, params)
	if !valid {
		global.Log().Error("PromptHandler.List.BindAndValid err", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()))
		return
	}

	page := app.GetPage(c)
	pageSize := app.GetPageSize(c)

	list, total, err := h.svc(c).PromptSearch(params, page, pageSize)
	if err != nil {
		respondError(c, err)
		return
	}
	response.ToResponseList(code.Success, list, total)
}

// Get 获取提示词详情
func (h *PromptHandler) Get(c *gin.Context) {
	response := app.NewResponse(c)

	prompt, err := h.svc(c).PromptGet(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	response.ToResponse(code.Success.WithData(prompt))
}

// Create 创建提示词
func (h *PromptHandler) Create(c *gin.Context) {
	response := app.NewResponse(c)
	params := &service.PromptCreateRequest{}

	valid, errs := app.BindAndValid(c, params)
	if !valid {
		global.Log().Error("PromptHandler.Create.BindAndValid err", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()))
		return
	}

	prompt, err := h.svc(c).PromptCreate(params, h.secret(c))
	if err != nil {
		respondError(c, err)
		return
	}
	response.ToResponse(code.Success.WithData(prompt))
}

// Update 更新提示词
func (h *PromptHandler) Update(c *gin.Context) {
	response := app.NewResponse(c)
	params := &service.PromptUpdateRequest{}

	valid, errs := app.BindAndValid(c, params)
	if !valid {
		global.Log().Error("PromptHandler.Update.BindAndValid err", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()))
		return
	}

	prompt, err := h.svc(c).PromptUpdate(c.Param("id"), params, h.secret(c))
	if err != nil {
		respondError(c, err)
		return
	}
	response.ToResponse(code.Success.WithData(prompt))
}

// Delete 删除提示词
func (h *PromptHandler) Delete(c *gin.Context) {
	response := app.NewResponse(c)

	if err := h.svc(c).PromptDelete(c.Param("id"), h.secret(c)); err != nil {
		respondError(c, err)
		return
	}
	response.ToResponse(code.Success)
}

// Use 登记一次使用
func (h *PromptHandler) Use(c *gin.Context) {
	response := app.NewResponse(c)

	prompt, err := h.svc(c).PromptUse(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	response.ToResponse(code.Success.WithData(prompt))
}

// Versions 版本历史
func (h *PromptHandler) Versions(c *gin.Context) {
	response := app.NewResponse(c)

	versions, err := h.svc(c).PromptVersionList(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	response.ToResponse(code.Success.WithData(versions))
}

// Rollback 回滚到历史版本
func (h *PromptHandler) Rollback(c *gin.Context) {
	response := app.NewResponse(c)
	params := &service.PromptRollbackRequest{}

	valid, errs := app.BindAndValid(c, params)
	if !valid {
		global.Log().Error("PromptHandler.Rollback.BindAndValid err", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()))
		return
	}

	prompt, err := h.svc(c).PromptRollback(c.Param("id"), params, h.secret(c))
	if err != nil {
		respondError(c, err)
		return
	}
	response.ToResponse(code.Success.WithData(prompt))
}

// Export 导出 CSV，支持与检索相同的过滤参数
func (h *PromptHandler) Export(c *gin.Context) {
	response := app.NewResponse(c)
	params := &service.PromptSearchRequest{}

	valid, errs := app.BindAndValid(c, params)
	if !valid {
		global.Log().Error("PromptHandler.Export.BindAndValid err", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()))
		return
	}

	data, err := h.svc(c).PromptExportCSV(params)
	if err != nil {
		respondError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="prompts.csv"`)
	c.Data(200, "text/csv; charset=utf-8", data)
}
