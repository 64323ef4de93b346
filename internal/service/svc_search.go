package service

import (
	"sort"
	"strings"

	"github.com/prompthub/prompt-hub-service/internal/domain"
	"github.com/prompthub/prompt-hub-service/pkg/code"
)

// PromptSearchRequest 提示词检索条件，全部条件取交集
type PromptSearchRequest struct {
	// Q 关键词，对标题、内容、描述做大小写不敏感的子串匹配
	Q string `json:"q" form:"q"`
	// CategoryID 分类过滤，含其全部子分类
	CategoryID string `json:"categoryId" form:"categoryId"`
	// Tags 标签过滤，命中任意一个即可
	Tags []string `json:"tags" form:"tags"`
}

func matchKeyword(p *domain.Prompt, q string) bool {
	if q == "" {
		return true
	}
	q = strings.ToLower(q)
	return strings.Contains(strings.ToLower(p.Title), q) ||
		strings.Contains(strings.ToLower(p.Content), q) ||
		strings.Contains(strings.ToLower(p.Description), q)
}

func matchTags(p *domain.Prompt, tags []string) bool {
	if len(tags) == 0 {
		return true
	}
	for _, t := range tags {
		if p.HasTag(t) {
			return true
		}
	}
	return false
}

// PromptSearch 检索提示词
// 结果按更新时间倒序，同一时间按 ID 升序，保证分页稳定
func (svc *Service) PromptSearch(param *PromptSearchRequest, page, pageSize int) ([]*Prompt, int, error) {
	prompts, err := svc.store().LoadPrompts(svc.ctx)
	if err != nil {
		return nil, 0, code.ErrorStorageFailure.WithDetails(err.Error())
	}

	var allowed map[string]bool
	if param.CategoryID != "" {
		categories, err := svc.store().LoadCategories(svc.ctx)
		if err != nil {
			return nil, 0, code.ErrorStorageFailure.WithDetails(err.Error())
		}
		if categoryByID(categories, param.CategoryID) == nil {
			return nil, 0, code.ErrorCategoryNotFound
		}
		allowed = subtreeIDs(param.CategoryID, categoryChildren(categories))
	}

	tags := normalizeTags(param.Tags)

	var matched []*domain.Prompt
	for _, p := range prompts {
		if allowed != nil && !allowed[p.CategoryID] {
			continue
		}
		if !matchKeyword(p, param.Q) {
			continue
		}
		if !matchTags(p, tags) {
			continue
		}
		matched = append(matched, p)
	}

	sort.SliceStable(matched, func(i, j int) bool {
		if !matched[i].UpdatedAt.Equal(matched[j].UpdatedAt) {
			return matched[i].UpdatedAt.After(matched[j].UpdatedAt)
		}
		return matched[i].ID < matched[j].ID
	})

	total := len(matched)

	if pageSize > 0 {
		if page < 1 {
			page = 1
		}
		offset := (page - 1) * pageSize
		if offset >= total {
			matched = nil
		} else {
			end := offset + pageSize
			if end > total {
				end = total
			}
			matched = matched[offset:end]
		}
	}

	results := make([]*Prompt, 0, len(matched))
	for _, p := range matched {
		results = append(results, toPromptDTO(p))
	}
	return results, total, nil
}
