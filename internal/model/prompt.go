package model

import (
	"time"
)

// Prompt 提示词表
// Tags 以 JSON 数组序列化存储，关联键为标签名称
type Prompt struct {
	ID             string    `gorm:"column:id;primaryKey"`
	Title          string    `gorm:"column:title;not null"`
	Content        string    `gorm:"column:content;not null"`
	Description    string    `gorm:"column:description"`
	CategoryID     string    `gorm:"column:category_id;index"`
	CategoryName   string    `gorm:"column:category_name"`
	CategoryPath   string    `gorm:"column:category_path"`
	Tags           []string  `gorm:"column:tags;serializer:json"`
	UsageCount     int64     `gorm:"column:usage_count;default:0"`
	CurrentVersion string    `gorm:"column:current_version"`
	CreatedAt      time.Time `gorm:"column:created_at"`
	UpdatedAt      time.Time `gorm:"column:updated_at"`
}

// TableName 表名
func (Prompt) TableName() string {
	return "prompt"
}

// PromptVersion 提示词版本表，只追加
type PromptVersion struct {
	AutoID      int64     `gorm:"column:auto_id;primaryKey;autoIncrement"`
	PromptID    string    `gorm:"column:prompt_id;index;uniqueIndex:idx_prompt_version"`
	Version     string    `gorm:"column:version;uniqueIndex:idx_prompt_version"`
	Title       string    `gorm:"column:title"`
	Content     string    `gorm:"column:content"`
	Description string    `gorm:"column:description"`
	ChangeNote  string    `gorm:"column:change_note"`
	CreatedAt   time.Time `gorm:"column:created_at"`
}

// TableName 表名
func (PromptVersion) TableName() string {
	return "prompt_version"
}
