package domain

import "time"

// Prompt 提示词领域模型
type Prompt struct {
	ID          string
	Title       string
	Content     string
	Description string
	// CategoryID 所属分类 ID，分类失效时回落到默认分类
	CategoryID string
	// CategoryName / CategoryPath 分类展示信息的冗余缓存，
	// 分类重命名或删除时必须在同一事务内同步刷新
	CategoryName string
	CategoryPath string
	// Tags 标签名称集合，展示保持顺序，过滤不关心顺序
	Tags []string
	// UsageCount 使用次数，仅由显式的 use 操作递增
	UsageCount int64
	// CurrentVersion 当前版本号，指向版本账本中的一条记录
	CurrentVersion string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// HasTag 判断提示词是否含有指定名称的标签
func (p *Prompt) HasTag(name string) bool {
	for _, t := range p.Tags {
		if t == name {
			return true
		}
	}
	return false
}
