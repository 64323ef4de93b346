// Package model 关系型存储的表结构定义
package model

import (
	"gorm.io/gorm"
)

// AutoMigrate 迁移全部表结构
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&Category{},
		&Tag{},
		&Prompt{},
		&PromptVersion{},
	)
}
