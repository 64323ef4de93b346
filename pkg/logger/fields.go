package logger

import (
	"time"

	"go.uber.org/zap"
)

// 统一的日志字段构造器
// 保证整个项目中日志字段命名一致，便于日志查询和分析

// FieldPromptID 提示词 ID 字段
func FieldPromptID(id string) zap.Field {
	return zap.String("promptId", id)
}

// FieldCategoryID 分类 ID 字段
func FieldCategoryID(id string) zap.Field {
	return zap.String("categoryId", id)
}

// FieldTagID 标签 ID 字段
func FieldTagID(id string) zap.Field {
	return zap.String("tagId", id)
}

// FieldVersion 版本号字段
func FieldVersion(version string) zap.Field {
	return zap.String("version", version)
}

// FieldMethod 方法名称字段
func FieldMethod(method string) zap.Field {
	return zap.String("method", method)
}

// FieldDuration 耗时字段
func FieldDuration(d time.Duration) zap.Field {
	return zap.Duration("duration", d)
}

// FieldBackup 备份文件名字段
func FieldBackup(file string) zap.Field {
	return zap.String("backup", file)
}

// FieldError 错误信息字段
func FieldError(err error) zap.Field {
	return zap.Error(err)
}
