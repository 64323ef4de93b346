package api_router

import (
	"github.com/prompthub/prompt-hub-service/global"
	"github.com/prompthub/prompt-hub-service/internal/service"
	"github.com/prompthub/prompt-hub-service/pkg/app"
	"github.com/prompthub/prompt-hub-service/pkg/code"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// TagHandler 标签 API
type TagHandler struct {
	*Handler
}

func NewTagHandler(h *Handler) *TagHandler {
	return &TagHandler{Handler: h}
}

// List 标签列表
func (h *TagHandler) List(c *gin.Context) {
	response := app.NewResponse(c)

	list, err := h.svc(c).TagList()
	if err != nil {
		respondError(c, err)
		return
	}
	response.ToResponse(code.Success.WithData(list))
}

// Create 创建标签
func (h *TagHandler) Create(c *gin.Context) {
	response := app.NewResponse(c)
	params := &service.TagCreateRequest{}

	valid, errs := app.BindAndValid(c, params)
	if !valid {
		global.Log().Error("TagHandler.Create.BindAndValid err", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()))
		return
	}

	tag, err := h.svc(c).TagCreate(params, h.secret(c))
	if err != nil {
		respondError(c, err)
		return
	}
	response.ToResponse(code.Success.WithData(tag))
}

// Update 更新标签，重命名会级联改写提示词引用
func (h *TagHandler) Update(c *gin.Context) {
	response := app.NewResponse(c)
	params := &service.TagUpdateRequest{}

	valid, errs := app.BindAndValid(c, params)
	if !valid {
		global.Log().Error("TagHandler.Update.BindAndValid err", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()))
		return
	}

	tag, err := h.svc(c).TagUpdate(c.Param("id"), params, h.secret(c))
	if err != nil {
		respondError(c, err)
		return
	}
	response.ToResponse(code.Success.WithData(tag))
}

// Delete 删除标签并从全部提示词摘除
func (h *TagHandler) Delete(c *gin.Context) {
	response := app.NewResponse(c)

	if err := h.svc(c).TagDelete(c.Param("id"), h.secret(c)); err != nil {
		respondError(c, err)
		return
	}
	response.ToResponse(code.Success)
}
