package service

import (
	"strings"
	"time"

	"github.com/prompthub/prompt-hub-service/internal/domain"
	"github.com/prompthub/prompt-hub-service/pkg/code"
	"github.com/prompthub/prompt-hub-service/pkg/logger"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

// Prompt 提示词传输对象
type Prompt struct {
	ID             string   `json:"id"`
	Title          string   `json:"title"`
	Content        string   `json:"content"`
	Description    string   `json:"description"`
	CategoryID     string   `json:"categoryId"`
	CategoryName   string   `json:"categoryName"`
	CategoryPath   string   `json:"categoryPath"`
	Tags           []string `json:"tags"`
	UsageCount     int64    `json:"usageCount"`
	CurrentVersion string   `json:"currentVersion"`
	CreatedAt      string   `json:"createdAt"`
	UpdatedAt      string   `json:"updatedAt"`
}

// PromptVersion 版本传输对象
type PromptVersion struct {
	PromptID    string `json:"promptId"`
	Version     string `json:"version"`
	Title       string `json:"title"`
	Content     string `json:"content"`
	Description string `json:"description"`
	ChangeNote  string `json:"changeNote"`
	CreatedAt   string `json:"createdAt"`
}

type PromptCreateRequest struct {
	Title       string   `json:"title" form:"title" binding:"required"`
	Content     string   `json:"content" form:"content" binding:"required"`
	Description string   `json:"description" form:"description"`
	CategoryID  string   `json:"categoryId" form:"categoryId"`
	Tags        []string `json:"tags" form:"tags"`
}

type PromptUpdateRequest struct {
	Title       *string   `json:"title" form:"title"`
	Content     *string   `json:"content" form:"content"`
	Description *string   `json:"description" form:"description"`
	CategoryID  *string   `json:"categoryId" form:"categoryId"`
	Tags        *[]string `json:"tags" form:"tags"`
	// ChangeNote 版本变更说明，产生新版本时记录
	ChangeNote string `json:"changeNote" form:"changeNote"`
	// MajorBump 递增主版本号
	MajorBump bool `json:"majorBump" form:"majorBump"`
}

type PromptRollbackRequest struct {
	Version string `json:"version" form:"version" binding:"required"`
}

func toPromptDTO(p *domain.Prompt) *Prompt {
	dto := &Prompt{}
	_ = copier.Copy(dto, p)
	dto.CreatedAt = p.CreatedAt.Format(time.RFC3339)
	dto.UpdatedAt = p.UpdatedAt.Format(time.RFC3339)
	if dto.Tags == nil {
		dto.Tags = []string{}
	}
	return dto
}

func toVersionDTO(v *domain.PromptVersion) *PromptVersion {
	dto := &PromptVersion{}
	_ = copier.Copy(dto, v)
	dto.CreatedAt = v.CreatedAt.Format(time.RFC3339)
	return dto
}

// normalizeTags 去掉空白标签并保序去重
func normalizeTags(names []string) []string {
	seen := make(map[string]bool, len(names))
	out := make([]string, 0, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		out = append(out, name)
	}
	return out
}

// resolveCategory 解析分类 ID，无效或缺失时回落到默认分类
func resolveCategory(categories []*domain.Category, id string) *domain.Category {
	var fallback *domain.Category
	for _, c := range categories {
		if c.ID == id {
			return c
		}
		if c.IsFallback() {
			fallback = c
		}
	}
	if fallback != nil {
		return fallback
	}
	// 默认分类缺失属于部署破损，合成一个保证引用完整
	return &domain.Category{
		ID:    domain.FallbackCategoryID,
		Name:  domain.FallbackCategoryName,
		Level: 1,
		Path:  domain.FallbackCategoryName,
	}
}

// ensureTags 为未注册的标签名自动建档，返回是否有新增
func (svc *Service) ensureTags(names []string) (bool, error) {
	tags, err := svc.store().LoadTags(svc.ctx)
	if err != nil {
		return false, code.ErrorStorageFailure.WithDetails(err.Error())
	}
	known := make(map[string]bool, len(tags))
	for _, t := range tags {
		known[t.Name] = true
	}

	now := time.Now()
	added := false
	for _, name := range names {
		if known[name] {
			continue
		}
		tags = append(tags, &domain.Tag{
			ID:        uuid.NewString(),
			Name:      name,
			Color:     "#3B82F6",
			CreatedAt: now,
			UpdatedAt: now,
		})
		known[name] = true
		added = true
	}
	if !added {
		return false, nil
	}
	if err := svc.store().SaveTags(svc.ctx, tags); err != nil {
		return false, code.ErrorStorageFailure.WithDetails(err.Error())
	}
	return true, nil
}

func findPrompt(prompts []*domain.Prompt, id string) (int, *domain.Prompt) {
	for i, p := range prompts {
		if p.ID == id {
			return i, p
		}
	}
	return -1, nil
}

// PromptGet 获取提示词详情
func (svc *Service) PromptGet(id string) (*Prompt, error) {
	prompts, err := svc.store().LoadPrompts(svc.ctx)
	if err != nil {
		return nil, code.ErrorStorageFailure.WithDetails(err.Error())
	}
	_, p := findPrompt(prompts, id)
	if p == nil {
		return nil, code.ErrorPromptNotFound
	}
	return toPromptDTO(p), nil
}

// PromptCreate 创建提示词并登记初始版本
func (svc *Service) PromptCreate(param *PromptCreateRequest, secret string) (*Prompt, error) {
	if err := svc.authorize(secret); err != nil {
		return nil, err
	}
	defer svc.lock()()

	categories, err := svc.store().LoadCategories(svc.ctx)
	if err != nil {
		return nil, code.ErrorStorageFailure.WithDetails(err.Error())
	}
	category := resolveCategory(categories, param.CategoryID)

	tags := normalizeTags(param.Tags)
	if _, err := svc.ensureTags(tags); err != nil {
		return nil, err
	}

	prompts, err := svc.store().LoadPrompts(svc.ctx)
	if err != nil {
		return nil, code.ErrorStorageFailure.WithDetails(err.Error())
	}

	now := time.Now()
	p := &domain.Prompt{
		ID:             uuid.NewString(),
		Title:          param.Title,
		Content:        param.Content,
		Description:    param.Description,
		CategoryID:     category.ID,
		CategoryName:   category.Name,
		CategoryPath:   category.Path,
		Tags:           tags,
		CurrentVersion: domain.InitialVersion,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	prompts = append(prompts, p)
	if err := svc.store().SavePrompts(svc.ctx, prompts); err != nil {
		return nil, code.ErrorStorageFailure.WithDetails(err.Error())
	}

	err = svc.store().AppendVersion(svc.ctx, &domain.PromptVersion{
		PromptID:    p.ID,
		Version:     domain.InitialVersion,
		Title:       p.Title,
		Content:     p.Content,
		Description: p.Description,
		ChangeNote:  domain.InitialChangeNote,
		CreatedAt:   now,
	})
	if err != nil {
		return nil, code.ErrorConsistency.WithDetails(err.Error())
	}

	svc.log().Info("prompt created",
		logger.FieldPromptID(p.ID), logger.FieldVersion(p.CurrentVersion))
	return toPromptDTO(p), nil
}

// PromptUpdate 更新提示词
// 标题、内容或描述发生变化时登记一个新版本；仅分类或标签变化不产生版本
func (svc *Service) PromptUpdate(id string, param *PromptUpdateRequest, secret string) (*Prompt, error) {
	if err := svc.authorize(secret); err != nil {
		return nil, err
	}
	defer svc.lock()()

	prompts, err := svc.store().LoadPrompts(svc.ctx)
	if err != nil {
		return nil, code.ErrorStorageFailure.WithDetails(err.Error())
	}
	_, p := findPrompt(prompts, id)
	if p == nil {
		return nil, code.ErrorPromptNotFound
	}

	contentChanged := false
	if param.Title != nil && *param.Title != p.Title {
		p.Title = *param.Title
		contentChanged = true
	}
	if param.Content != nil && *param.Content != p.Content {
		p.Content = *param.Content
		contentChanged = true
	}
	if param.Description != nil && *param.Description != p.Description {
		p.Description = *param.Description
		contentChanged = true
	}

	if param.CategoryID != nil {
		categories, err := svc.store().LoadCategories(svc.ctx)
		if err != nil {
			return nil, code.ErrorStorageFailure.WithDetails(err.Error())
		}
		category := resolveCategory(categories, *param.CategoryID)
		p.CategoryID = category.ID
		p.CategoryName = category.Name
		p.CategoryPath = category.Path
	}

	if param.Tags != nil {
		tags := normalizeTags(*param.Tags)
		if _, err := svc.ensureTags(tags); err != nil {
			return nil, err
		}
		p.Tags = tags
	}

	now := time.Now()
	p.UpdatedAt = now

	var newVersion string
	if contentChanged {
		newVersion, err = domain.NextVersion(p.CurrentVersion, param.MajorBump)
		if err != nil {
			return nil, code.ErrorConsistency.WithDetails(err.Error())
		}
		p.CurrentVersion = newVersion
	}

	if err := svc.store().SavePrompts(svc.ctx, prompts); err != nil {
		return nil, code.ErrorStorageFailure.WithDetails(err.Error())
	}

	if contentChanged {
		note := param.ChangeNote
		if note == "" {
			note = "内容更新"
		}
		err = svc.store().AppendVersion(svc.ctx, &domain.PromptVersion{
			PromptID:    p.ID,
			Version:     newVersion,
			Title:       p.Title,
			Content:     p.Content,
			Description: p.Description,
			ChangeNote:  note,
			CreatedAt:   now,
		})
		if err != nil {
			return nil, code.ErrorConsistency.WithDetails(err.Error())
		}
		svc.log().Info("prompt version recorded",
			logger.FieldPromptID(p.ID), logger.FieldVersion(newVersion))
	}

	return toPromptDTO(p), nil
}

// PromptDelete 删除提示词，历史版本保留作审计
func (svc *Service) PromptDelete(id string, secret string) error {
	if err := svc.authorize(secret); err != nil {
		return err
	}
	defer svc.lock()()

	prompts, err := svc.store().LoadPrompts(svc.ctx)
	if err != nil {
		return code.ErrorStorageFailure.WithDetails(err.Error())
	}
	idx, p := findPrompt(prompts, id)
	if p == nil {
		return code.ErrorPromptNotFound
	}

	prompts = append(prompts[:idx], prompts[idx+1:]...)
	if err := svc.store().SavePrompts(svc.ctx, prompts); err != nil {
		return code.ErrorStorageFailure.WithDetails(err.Error())
	}
	svc.log().Info("prompt deleted", logger.FieldPromptID(id))
	return nil
}

// PromptUse 登记一次使用，递增使用计数
// 使用计数不属于内容变更，不产生版本也不刷新 UpdatedAt
func (svc *Service) PromptUse(id string) (*Prompt, error) {
	defer svc.lock()()

	prompts, err := svc.store().LoadPrompts(svc.ctx)
	if err != nil {
		return nil, code.ErrorStorageFailure.WithDetails(err.Error())
	}
	_, p := findPrompt(prompts, id)
	if p == nil {
		return nil, code.ErrorPromptNotFound
	}

	p.UsageCount++
	if err := svc.store().SavePrompts(svc.ctx, prompts); err != nil {
		return nil, code.ErrorStorageFailure.WithDetails(err.Error())
	}
	return toPromptDTO(p), nil
}

// PromptVersionList 按登记顺序返回提示词的全部版本
func (svc *Service) PromptVersionList(id string) ([]*PromptVersion, error) {
	prompts, err := svc.store().LoadPrompts(svc.ctx)
	if err != nil {
		return nil, code.ErrorStorageFailure.WithDetails(err.Error())
	}
	if _, p := findPrompt(prompts, id); p == nil {
		return nil, code.ErrorPromptNotFound
	}

	versions, err := svc.store().ListVersions(svc.ctx, id)
	if err != nil {
		return nil, code.ErrorStorageFailure.WithDetails(err.Error())
	}
	results := make([]*PromptVersion, 0, len(versions))
	for _, v := range versions {
		results = append(results, toVersionDTO(v))
	}
	return results, nil
}

// PromptRollback 回滚到历史版本
// 回滚本身作为一个新版本登记，账本保持只追加
func (svc *Service) PromptRollback(id string, param *PromptRollbackRequest, secret string) (*Prompt, error) {
	if err := svc.authorize(secret); err != nil {
		return nil, err
	}
	defer svc.lock()()

	prompts, err := svc.store().LoadPrompts(svc.ctx)
	if err != nil {
		return nil, code.ErrorStorageFailure.WithDetails(err.Error())
	}
	_, p := findPrompt(prompts, id)
	if p == nil {
		return nil, code.ErrorPromptNotFound
	}

	target, err := svc.store().GetVersion(svc.ctx, id, param.Version)
	if err != nil {
		return nil, code.ErrorStorageFailure.WithDetails(err.Error())
	}
	if target == nil {
		return nil, code.ErrorVersionNotFound
	}

	newVersion, err := domain.NextVersion(p.CurrentVersion, false)
	if err != nil {
		return nil, code.ErrorConsistency.WithDetails(err.Error())
	}

	now := time.Now()
	p.Title = target.Title
	p.Content = target.Content
	p.Description = target.Description
	p.CurrentVersion = newVersion
	p.UpdatedAt = now

	if err := svc.store().SavePrompts(svc.ctx, prompts); err != nil {
		return nil, code.ErrorStorageFailure.WithDetails(err.Error())
	}

	err = svc.store().AppendVersion(svc.ctx, &domain.PromptVersion{
		PromptID:    p.ID,
		Version:     newVersion,
		Title:       p.Title,
		Content:     p.Content,
		Description: p.Description,
		ChangeNote:  "回滚到版本 " + param.Version,
		CreatedAt:   now,
	})
	if err != nil {
		return nil, code.ErrorConsistency.WithDetails(err.Error())
	}

	svc.log().Info("prompt rolled back",
		logger.FieldPromptID(id), logger.FieldVersion(newVersion))
	return toPromptDTO(p), nil
}
