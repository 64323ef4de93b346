package service

import (
	"time"

	"github.com/prompthub/prompt-hub-service/internal/domain"
)

// testDataSnapshot 演示数据集，覆盖分类、标签、多版本提示词
func testDataSnapshot(now time.Time) *domain.Snapshot {
	categories := domain.DefaultCategories(now)

	tags := []*domain.Tag{
		{ID: "t1", Name: "代码审查", Color: "#3B82F6", CreatedAt: now, UpdatedAt: now},
		{ID: "t2", Name: "重构", Color: "#10B981", CreatedAt: now, UpdatedAt: now},
		{ID: "t3", Name: "文案", Color: "#F59E0B", CreatedAt: now, UpdatedAt: now},
		{ID: "t4", Name: "总结", Color: "#8B5CF6", CreatedAt: now, UpdatedAt: now},
	}

	seeds := []struct {
		id, title, content, description, categoryID string
		tags                                        []string
		usage                                       int64
	}{
		{
			id:          "p1",
			title:       "代码审查助手",
			content:     "请审查以下代码，指出潜在缺陷、可读性问题与改进建议：\n\n{code}",
			description: "用于日常代码审查的通用提示词",
			categoryID:  "1",
			tags:        []string{"代码审查", "重构"},
			usage:       12,
		},
		{
			id:          "p2",
			title:       "文章摘要生成",
			content:     "请用三句话总结以下文章的核心观点：\n\n{article}",
			description: "长文速读摘要",
			categoryID:  "2",
			tags:        []string{"文案", "总结"},
			usage:       8,
		},
		{
			id:          "p3",
			title:       "数据分析报告",
			content:     "基于以下数据给出趋势分析与结论：\n\n{data}",
			description: "",
			categoryID:  "3",
			tags:        []string{"总结"},
			usage:       3,
		},
	}

	var prompts []*domain.Prompt
	var versions []*domain.PromptVersion
	for i, s := range seeds {
		category := categories[0]
		for _, c := range categories {
			if c.ID == s.categoryID {
				category = c
				break
			}
		}
		created := now.Add(time.Duration(i-len(seeds)) * time.Minute)
		prompts = append(prompts, &domain.Prompt{
			ID:             s.id,
			Title:          s.title,
			Content:        s.content,
			Description:    s.description,
			CategoryID:     category.ID,
			CategoryName:   category.Name,
			CategoryPath:   category.Path,
			Tags:           s.tags,
			UsageCount:     s.usage,
			CurrentVersion: domain.InitialVersion,
			CreatedAt:      created,
			UpdatedAt:      created,
		})
		versions = append(versions, &domain.PromptVersion{
			PromptID:    s.id,
			Version:     domain.InitialVersion,
			Title:       s.title,
			Content:     s.content,
			Description: s.description,
			ChangeNote:  domain.InitialChangeNote,
			CreatedAt:   created,
		})
	}

	return &domain.Snapshot{
		Prompts:    prompts,
		Categories: categories,
		Tags:       tags,
		Versions:   versions,
		CreatedAt:  now,
	}
}
