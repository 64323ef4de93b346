package service

import (
	"time"

	"github.com/prompthub/prompt-hub-service/internal/domain"
	"github.com/prompthub/prompt-hub-service/pkg/code"
	"github.com/prompthub/prompt-hub-service/pkg/logger"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

// Category 分类传输对象
type Category struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Color       string `json:"color"`
	Description string `json:"description"`
	ParentID    string `json:"parentId"`
	Level       int    `json:"level"`
	Path        string `json:"path"`
	PromptCount int64  `json:"promptCount"`
	CreatedAt   string `json:"createdAt"`
	UpdatedAt   string `json:"updatedAt"`
}

// CategoryNode 分类树节点
type CategoryNode struct {
	*Category
	Children []*CategoryNode `json:"children"`
}

type CategoryCreateRequest struct {
	Name        string `json:"name" form:"name" binding:"required"`
	Color       string `json:"color" form:"color"`
	Description string `json:"description" form:"description"`
	ParentID    string `json:"parentId" form:"parentId"`
}

type CategoryUpdateRequest struct {
	Name        *string `json:"name" form:"name"`
	Color       *string `json:"color" form:"color"`
	Description *string `json:"description" form:"description"`
	ParentID    *string `json:"parentId" form:"parentId"`
}

func toCategoryDTO(c *domain.Category, promptCount int64) *Category {
	dto := &Category{}
	_ = copier.Copy(dto, c)
	dto.PromptCount = promptCount
	dto.CreatedAt = c.CreatedAt.Format(time.RFC3339)
	dto.UpdatedAt = c.UpdatedAt.Format(time.RFC3339)
	return dto
}

// categoryChildren 按父 ID 建立子分类索引
func categoryChildren(categories []*domain.Category) map[string][]*domain.Category {
	children := make(map[string][]*domain.Category)
	for _, c := range categories {
		if c.ParentID != "" {
			children[c.ParentID] = append(children[c.ParentID], c)
		}
	}
	return children
}

func categoryByID(categories []*domain.Category, id string) *domain.Category {
	for _, c := range categories {
		if c.ID == id {
			return c
		}
	}
	return nil
}

// subtreeIDs 收集以 root 为根的子树内全部分类 ID，含 root 自身
func subtreeIDs(root string, children map[string][]*domain.Category) map[string]bool {
	ids := map[string]bool{root: true}
	queue := []string{root}
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		for _, child := range children[id] {
			if !ids[child.ID] {
				ids[child.ID] = true
				queue = append(queue, child.ID)
			}
		}
	}
	return ids
}

// subtreeHeight 子树高度，单节点为 1
func subtreeHeight(root string, children map[string][]*domain.Category) int {
	height := 1
	for _, child := range children[root] {
		if h := subtreeHeight(child.ID, children) + 1; h > height {
			height = h
		}
	}
	return height
}

// recomputeSubtree 自 root 起重算 Level 与 Path
// 结构性变更（重命名、换父）之后调用，保证树缓存一致
func recomputeSubtree(root *domain.Category, parent *domain.Category, children map[string][]*domain.Category, now time.Time) {
	if parent == nil {
		root.Level = 1
		root.Path = root.Name
	} else {
		root.Level = parent.Level + 1
		root.Path = parent.Path + "/" + root.Name
	}
	root.UpdatedAt = now
	for _, child := range children[root.ID] {
		recomputeSubtree(child, root, children, now)
	}
}

// refreshPromptCategoryCache 将分类缓存字段刷新到受影响的提示词上
func refreshPromptCategoryCache(prompts []*domain.Prompt, categories []*domain.Category, affected map[string]bool) bool {
	changed := false
	for _, p := range prompts {
		if !affected[p.CategoryID] {
			continue
		}
		c := categoryByID(categories, p.CategoryID)
		if c == nil {
			continue
		}
		if p.CategoryName != c.Name || p.CategoryPath != c.Path {
			p.CategoryName = c.Name
			p.CategoryPath = c.Path
			changed = true
		}
	}
	return changed
}

// CategoryList 返回全部分类，附带各分类的直接提示词数量
func (svc *Service) CategoryList() ([]*Category, error) {
	categories, err := svc.store().LoadCategories(svc.ctx)
	if err != nil {
		return nil, code.ErrorStorageFailure.WithDetails(err.Error())
	}
	prompts, err := svc.store().LoadPrompts(svc.ctx)
	if err != nil {
		return nil, code.ErrorStorageFailure.WithDetails(err.Error())
	}

	counts := make(map[string]int64, len(categories))
	for _, p := range prompts {
		counts[p.CategoryID]++
	}

	results := make([]*Category, 0, len(categories))
	for _, c := range categories {
		results = append(results, toCategoryDTO(c, counts[c.ID]))
	}
	return results, nil
}

// CategoryTree 返回嵌套的分类树
func (svc *Service) CategoryTree() ([]*CategoryNode, error) {
	list, err := svc.CategoryList()
	if err != nil {
		return nil, err
	}

	nodes := make(map[string]*CategoryNode, len(list))
	for _, c := range list {
		nodes[c.ID] = &CategoryNode{Category: c, Children: []*CategoryNode{}}
	}

	var roots []*CategoryNode
	for _, c := range list {
		node := nodes[c.ID]
		if parent, ok := nodes[c.ParentID]; ok && c.ParentID != c.ID {
			parent.Children = append(parent.Children, node)
		} else {
			roots = append(roots, node)
		}
	}
	return roots, nil
}

// CategoryCreate 创建分类
func (svc *Service) CategoryCreate(param *CategoryCreateRequest, secret string) (*Category, error) {
	if err := svc.authorize(secret); err != nil {
		return nil, err
	}
	defer svc.lock()()

	categories, err := svc.store().LoadCategories(svc.ctx)
	if err != nil {
		return nil, code.ErrorStorageFailure.WithDetails(err.Error())
	}

	var parent *domain.Category
	if param.ParentID != "" {
		parent = categoryByID(categories, param.ParentID)
		if parent == nil {
			return nil, code.ErrorCategoryNotFound.WithDetails("父分类不存在")
		}
		if parent.Level+1 > domain.MaxCategoryDepth {
			return nil, code.ErrorCategoryDepth
		}
	}

	for _, c := range categories {
		if c.ParentID == param.ParentID && c.Name == param.Name {
			return nil, code.ErrorConflict.WithDetails("同级分类名称重复")
		}
	}

	now := time.Now()
	category := &domain.Category{
		ID:          uuid.NewString(),
		Name:        param.Name,
		Color:       param.Color,
		Description: param.Description,
		ParentID:    param.ParentID,
		Level:       1,
		Path:        param.Name,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if parent != nil {
		category.Level = parent.Level + 1
		category.Path = parent.Path + "/" + param.Name
	}

	categories = append(categories, category)
	if err := svc.store().SaveCategories(svc.ctx, categories); err != nil {
		return nil, code.ErrorStorageFailure.WithDetails(err.Error())
	}

	svc.log().Info("category created", logger.FieldCategoryID(category.ID))
	return toCategoryDTO(category, 0), nil
}

// CategoryUpdate 更新分类
// 重命名或换父会级联重算子树路径并刷新提示词缓存
func (svc *Service) CategoryUpdate(id string, param *CategoryUpdateRequest, secret string) (*Category, error) {
	if err := svc.authorize(secret); err != nil {
		return nil, err
	}
	defer svc.lock()()

	categories, err := svc.store().LoadCategories(svc.ctx)
	if err != nil {
		return nil, code.ErrorStorageFailure.WithDetails(err.Error())
	}
	category := categoryByID(categories, id)
	if category == nil {
		return nil, code.ErrorCategoryNotFound
	}

	renamed := param.Name != nil && *param.Name != category.Name
	reparented := param.ParentID != nil && *param.ParentID != category.ParentID

	if category.IsFallback() && (renamed || reparented) {
		return nil, code.ErrorCategoryUndeletable.WithDetails("默认分类不可重命名或移动")
	}

	children := categoryChildren(categories)

	if reparented {
		newParentID := *param.ParentID
		if newParentID == id {
			return nil, code.ErrorCategoryCycle
		}
		if newParentID != "" {
			if subtreeIDs(id, children)[newParentID] {
				return nil, code.ErrorCategoryCycle
			}
			newParent := categoryByID(categories, newParentID)
			if newParent == nil {
				return nil, code.ErrorCategoryNotFound.WithDetails("父分类不存在")
			}
			if newParent.Level+subtreeHeight(id, children) > domain.MaxCategoryDepth {
				return nil, code.ErrorCategoryDepth
			}
		}
	}

	now := time.Now()
	if renamed || reparented {
		newName := category.Name
		if renamed {
			newName = *param.Name
		}
		newParentID := category.ParentID
		if reparented {
			newParentID = *param.ParentID
		}
		for _, c := range categories {
			if c.ID != id && c.ParentID == newParentID && c.Name == newName {
				return nil, code.ErrorConflict.WithDetails("同级分类名称重复")
			}
		}
	}
	if renamed {
		category.Name = *param.Name
	}
	if param.Color != nil {
		category.Color = *param.Color
	}
	if param.Description != nil {
		category.Description = *param.Description
	}
	if reparented {
		category.ParentID = *param.ParentID
	}
	category.UpdatedAt = now

	if renamed || reparented {
		recomputeSubtree(category, categoryByID(categories, category.ParentID), children, now)
	}

	// 先在内存里算出完整新状态再落盘，提示词在前、分类在后
	// 任何一步失败都不会留下指向旧路径的悬空引用
	if renamed || reparented {
		prompts, err := svc.store().LoadPrompts(svc.ctx)
		if err != nil {
			return nil, code.ErrorStorageFailure.WithDetails(err.Error())
		}
		affected := subtreeIDs(id, children)
		if refreshPromptCategoryCache(prompts, categories, affected) {
			if err := svc.store().SavePrompts(svc.ctx, prompts); err != nil {
				return nil, code.ErrorStorageFailure.WithDetails(err.Error())
			}
		}
	}

	if err := svc.store().SaveCategories(svc.ctx, categories); err != nil {
		return nil, code.ErrorStorageFailure.WithDetails(err.Error())
	}

	svc.log().Info("category updated", logger.FieldCategoryID(id))
	return toCategoryDTO(category, 0), nil
}

// CategoryDelete 删除分类
// 其下提示词转入默认分类，子分类挂到被删分类的父节点下
func (svc *Service) CategoryDelete(id string, secret string) error {
	if err := svc.authorize(secret); err != nil {
		return err
	}
	defer svc.lock()()

	categories, err := svc.store().LoadCategories(svc.ctx)
	if err != nil {
		return code.ErrorStorageFailure.WithDetails(err.Error())
	}
	category := categoryByID(categories, id)
	if category == nil {
		return code.ErrorCategoryNotFound
	}
	if category.IsFallback() {
		return code.ErrorCategoryUndeletable
	}

	children := categoryChildren(categories)
	orphans := children[id]

	// 摘除被删节点
	kept := make([]*domain.Category, 0, len(categories)-1)
	for _, c := range categories {
		if c.ID != id {
			kept = append(kept, c)
		}
	}
	categories = kept

	now := time.Now()
	newParent := categoryByID(categories, category.ParentID)
	children = categoryChildren(categories)
	for _, orphan := range orphans {
		if newParent != nil {
			orphan.ParentID = newParent.ID
		} else {
			orphan.ParentID = ""
		}
		recomputeSubtree(orphan, newParent, children, now)
	}

	// 级联的新状态全部先在内存里算好，再按提示词、分类的顺序落盘
	// 提示词落盘失败时分类尚未改动，不会出现指向已删分类的悬空引用
	prompts, err := svc.store().LoadPrompts(svc.ctx)
	if err != nil {
		return code.ErrorStorageFailure.WithDetails(err.Error())
	}
	fallback := resolveCategory(categories, domain.FallbackCategoryID)

	changed := false
	affected := make(map[string]bool)
	for _, orphan := range orphans {
		for aid := range subtreeIDs(orphan.ID, children) {
			affected[aid] = true
		}
	}
	for _, p := range prompts {
		if p.CategoryID == id {
			p.CategoryID = fallback.ID
			p.CategoryName = fallback.Name
			p.CategoryPath = fallback.Path
			p.UpdatedAt = now
			changed = true
		}
	}
	if refreshPromptCategoryCache(prompts, categories, affected) {
		changed = true
	}
	if changed {
		if err := svc.store().SavePrompts(svc.ctx, prompts); err != nil {
			return code.ErrorStorageFailure.WithDetails(err.Error())
		}
	}

	if err := svc.store().SaveCategories(svc.ctx, categories); err != nil {
		return code.ErrorStorageFailure.WithDetails(err.Error())
	}

	svc.log().Info("category deleted", logger.FieldCategoryID(id))
	return nil
}
