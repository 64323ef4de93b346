// Package domain 定义领域模型和接口
package domain

import "time"

// FallbackCategoryID 默认分类 ID，该分类始终存在且不允许删除
const FallbackCategoryID = "0"

// FallbackCategoryName 默认分类名称
const FallbackCategoryName = "未分类"

// MaxCategoryDepth 分类树最大层级
const MaxCategoryDepth = 5

// Category 分类领域模型，parent_id 构成分类树
type Category struct {
	ID          string
	Name        string
	Color       string
	Description string
	// ParentID 父分类 ID，空字符串表示根分类
	ParentID string
	// Level 层级深度，根分类为 1，由父链派生
	Level int
	// Path 从祖先到自身的名称链，如 "编程/Web"，由父链派生
	Path      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsFallback 判断是否为默认分类
func (c *Category) IsFallback() bool {
	return c.ID == FallbackCategoryID
}

// IsRoot 判断是否为根分类
func (c *Category) IsRoot() bool {
	return c.ParentID == ""
}

// CategoryNode 分类树节点，children 按创建顺序排列
type CategoryNode struct {
	*Category
	Children []*CategoryNode
}
