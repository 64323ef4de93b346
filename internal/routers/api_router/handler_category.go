package api_router

import (
	"github.com/prompthub/prompt-hub-service/global"
	"github.com/prompthub/prompt-hub-service/internal/service"
	"github.com/prompthub/prompt-hub-service/pkg/app"
	"github.com/prompthub/prompt-hub-service/pkg/code"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// CategoryHandler 分类 API
type CategoryHandler struct {
	*Handler
}

func NewCategoryHandler(h *Handler) *CategoryHandler {
	return &CategoryHandler{Handler: h}
}

// List 平铺分类列表
func (h *CategoryHandler) List(c *gin.Context) {
	response := app.NewResponse(c)

	list, err := h.svc(c).CategoryList()
	if err != nil {
		respondError(c, err)
		return
	}
	response.ToResponse(code.Success.WithData(list))
}

// Tree 嵌套分类树
func (h *CategoryHandler) Tree(c *gin.Context) {
	response := app.NewResponse(c)

	tree, err := h.svc(c).CategoryTree()
	if err != nil {
		respondError(c, err)
		return
	}
	response.ToResponse(code.Success.WithData(tree))
}

// Create 创建分类
func (h *CategoryHandler) Create(c *gin.Context) {
	response := app.NewResponse(c)
	params := &service.CategoryCreateRequest{}

	valid, errs := app.BindAndValid(c, params)
	if !valid {
		global.Log().Error("CategoryHandler.Create.BindAndValid err", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()))
		return
	}

	category, err := h.svc(c).CategoryCreate(params, h.secret(c))
	if err != nil {
		respondError(c, err)
		return
	}
	response.ToResponse(code.Success.WithData(category))
}

// Update 更新分类
func (h *CategoryHandler) Update(c *gin.Context) {
	response := app.NewResponse(c)
	params := &service.CategoryUpdateRequest{}

	valid, errs := app.BindAndValid(c, params)
	if !valid {
		global.Log().Error("CategoryHandler.Update.BindAndValid err", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()))
		return
	}

	category, err := h.svc(c).CategoryUpdate(c.Param("id"), params, h.secret(c))
	if err != nil {
		respondError(c, err)
		return
	}
	response.ToResponse(code.Success.WithData(category))
}

// Delete 删除分类，其下提示词转入默认分类
func (h *CategoryHandler) Delete(c *gin.Context) {
	response := app.NewResponse(c)

	if err := h.svc(c).CategoryDelete(c.Param("id"), h.secret(c)); err != nil {
		respondError(c, err)
		return
	}
	response.ToResponse(code.Success)
}
