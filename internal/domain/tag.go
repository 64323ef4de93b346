package domain

import "time"

// Tag 标签领域模型
// 标签以稳定 ID 管理，但提示词侧的关联以名称为键，
// 因此重命名标签必须级联改写所有引用该名称的提示词
type Tag struct {
	ID        string
	Name      string
	Color     string
	CreatedAt time.Time
	UpdatedAt time.Time
}
