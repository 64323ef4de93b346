package model

import (
	"time"
)

// Category 分类表
type Category struct {
	ID          string    `gorm:"column:id;primaryKey"`
	Name        string    `gorm:"column:name;not null"`
	Color       string    `gorm:"column:color"`
	Description string    `gorm:"column:description"`
	ParentID    string    `gorm:"column:parent_id;index"`
	Level       int       `gorm:"column:level;default:1"`
	Path        string    `gorm:"column:path"`
	CreatedAt   time.Time `gorm:"column:created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

// TableName 表名
func (Category) TableName() string {
	return "category"
}
