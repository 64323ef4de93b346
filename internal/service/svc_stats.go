package service

import (
	"sort"

	"github.com/prompthub/prompt-hub-service/pkg/code"
)

// CategoryStat 单个分类的统计，计数包含其子树
type CategoryStat struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Path        string `json:"path"`
	PromptCount int64  `json:"promptCount"`
}

// Stats 全局统计
type Stats struct {
	PromptTotal   int64           `json:"promptTotal"`
	CategoryTotal int64           `json:"categoryTotal"`
	TagTotal      int64           `json:"tagTotal"`
	UsageTotal    int64           `json:"usageTotal"`
	Categories    []*CategoryStat `json:"categories"`
	// LevelCounts 各层级的分类数量，键为层级
	LevelCounts map[int]int64 `json:"levelCounts"`
	MostUsed    []*Prompt     `json:"mostUsed"`
}

const mostUsedLimit = 5

// StatsGet 汇总统计信息
// 并发请求经 singleflight 合并，同一时刻只做一次全量扫描
func (svc *Service) StatsGet() (*Stats, error) {
	result, err, _ := svc.hub.sf.Do("stats", func() (any, error) {
		return svc.buildStats()
	})
	if err != nil {
		return nil, err
	}
	return result.(*Stats), nil
}

func (svc *Service) buildStats() (*Stats, error) {
	prompts, err := svc.store().LoadPrompts(svc.ctx)
	if err != nil {
		return nil, code.ErrorStorageFailure.WithDetails(err.Error())
	}
	categories, err := svc.store().LoadCategories(svc.ctx)
	if err != nil {
		return nil, code.ErrorStorageFailure.WithDetails(err.Error())
	}
	tags, err := svc.store().LoadTags(svc.ctx)
	if err != nil {
		return nil, code.ErrorStorageFailure.WithDetails(err.Error())
	}

	stats := &Stats{
		PromptTotal:   int64(len(prompts)),
		CategoryTotal: int64(len(categories)),
		TagTotal:      int64(len(tags)),
		Categories:    []*CategoryStat{},
		LevelCounts:   map[int]int64{},
		MostUsed:      []*Prompt{},
	}

	direct := make(map[string]int64, len(categories))
	for _, p := range prompts {
		stats.UsageTotal += p.UsageCount
		direct[p.CategoryID]++
	}

	children := categoryChildren(categories)
	for _, c := range categories {
		stats.LevelCounts[c.Level]++
	}
	for _, c := range categories {
		var count int64
		for id := range subtreeIDs(c.ID, children) {
			count += direct[id]
		}
		stats.Categories = append(stats.Categories, &CategoryStat{
			ID:          c.ID,
			Name:        c.Name,
			Path:        c.Path,
			PromptCount: count,
		})
	}

	sorted := make([]*Prompt, 0, len(prompts))
	for _, p := range prompts {
		sorted = append(sorted, toPromptDTO(p))
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].UsageCount != sorted[j].UsageCount {
			return sorted[i].UsageCount > sorted[j].UsageCount
		}
		return sorted[i].ID < sorted[j].ID
	})
	if len(sorted) > mostUsedLimit {
		sorted = sorted[:mostUsedLimit]
	}
	stats.MostUsed = sorted

	return stats, nil
}
