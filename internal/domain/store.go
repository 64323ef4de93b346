package domain

import (
	"context"
	"time"
)

// Snapshot 三个集合加版本账本的完整快照，用于备份与批量恢复
type Snapshot struct {
	Prompts    []*Prompt        `json:"prompts"`
	Categories []*Category      `json:"categories"`
	Tags       []*Tag           `json:"tags"`
	Versions   []*PromptVersion `json:"versions"`
	CreatedAt  time.Time        `json:"createdAt"`
}

// VersionLedger 版本账本，只追加，不支持修改或删除
type VersionLedger interface {
	// AppendVersion 追加一条版本记录，(PromptID, Version) 重复时返回错误
	AppendVersion(ctx context.Context, v *PromptVersion) error
	// ListVersions 按创建顺序返回指定提示词的全部版本
	ListVersions(ctx context.Context, promptID string) ([]*PromptVersion, error)
	// GetVersion 获取指定版本，不存在时返回 (nil, nil)
	GetVersion(ctx context.Context, promptID, label string) (*PromptVersion, error)
}

// Store 实体存储，独占磁盘表示
// Load 对缺失的底层文件返回空序列；解析失败是致命错误，不得吞掉
// Save 以集合为单位原子生效：要么整个新序列落盘，要么保持旧状态
type Store interface {
	VersionLedger

	LoadCategories(ctx context.Context) ([]*Category, error)
	SaveCategories(ctx context.Context, categories []*Category) error

	LoadTags(ctx context.Context) ([]*Tag, error)
	SaveTags(ctx context.Context, tags []*Tag) error

	LoadPrompts(ctx context.Context) ([]*Prompt, error)
	SavePrompts(ctx context.Context, prompts []*Prompt) error

	// TakeSnapshot 读取全部集合的一致快照
	TakeSnapshot(ctx context.Context) (*Snapshot, error)
	// Restore 以快照整体替换存储内容，用于重置与测试数据加载
	Restore(ctx context.Context, snap *Snapshot) error
}

// DefaultCategories 初始部署时的默认分类集合，含不可删除的默认分类
func DefaultCategories(now time.Time) []*Category {
	seeds := []struct {
		id, name, color, description string
	}{
		{FallbackCategoryID, FallbackCategoryName, "#6B7280", "未归类提示词"},
		{"1", "编程", "#3B82F6", "编程相关提示词"},
		{"2", "写作", "#10B981", "写作相关提示词"},
		{"3", "分析", "#F59E0B", "分析相关提示词"},
		{"4", "创意", "#8B5CF6", "创意相关提示词"},
		{"5", "商业", "#EF4444", "商业相关提示词"},
		{"6", "教育", "#06B6D4", "教育相关提示词"},
	}

	var categories []*Category
	for _, s := range seeds {
		categories = append(categories, &Category{
			ID:          s.id,
			Name:        s.name,
			Color:       s.color,
			Description: s.description,
			Level:       1,
			Path:        s.name,
			CreatedAt:   now,
			UpdatedAt:   now,
		})
	}
	return categories
}
