package service

import (
	"time"

	"github.com/prompthub/prompt-hub-service/internal/domain"
	"github.com/prompthub/prompt-hub-service/pkg/code"
	"github.com/prompthub/prompt-hub-service/pkg/logger"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

// Tag 标签传输对象
type Tag struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Color       string `json:"color"`
	PromptCount int64  `json:"promptCount"`
	CreatedAt   string `json:"createdAt"`
	UpdatedAt   string `json:"updatedAt"`
}

type TagCreateRequest struct {
	Name  string `json:"name" form:"name" binding:"required"`
	Color string `json:"color" form:"color"`
}

type TagUpdateRequest struct {
	Name  *string `json:"name" form:"name"`
	Color *string `json:"color" form:"color"`
}

func toTagDTO(t *domain.Tag, promptCount int64) *Tag {
	dto := &Tag{}
	_ = copier.Copy(dto, t)
	dto.PromptCount = promptCount
	dto.CreatedAt = t.CreatedAt.Format(time.RFC3339)
	dto.UpdatedAt = t.UpdatedAt.Format(time.RFC3339)
	return dto
}

func tagByID(tags []*domain.Tag, id string) (int, *domain.Tag) {
	for i, t := range tags {
		if t.ID == id {
			return i, t
		}
	}
	return -1, nil
}

func tagByName(tags []*domain.Tag, name string) *domain.Tag {
	for _, t := range tags {
		if t.Name == name {
			return t
		}
	}
	return nil
}

// TagList 返回全部标签，附带引用该标签的提示词数量
func (svc *Service) TagList() ([]*Tag, error) {
	tags, err := svc.store().LoadTags(svc.ctx)
	if err != nil {
		return nil, code.ErrorStorageFailure.WithDetails(err.Error())
	}
	prompts, err := svc.store().LoadPrompts(svc.ctx)
	if err != nil {
		return nil, code.ErrorStorageFailure.WithDetails(err.Error())
	}

	counts := make(map[string]int64, len(tags))
	for _, p := range prompts {
		for _, name := range p.Tags {
			counts[name]++
		}
	}

	results := make([]*Tag, 0, len(tags))
	for _, t := range tags {
		results = append(results, toTagDTO(t, counts[t.Name]))
	}
	return results, nil
}

// TagCreate 创建标签，名称全局唯一
func (svc *Service) TagCreate(param *TagCreateRequest, secret string) (*Tag, error) {
	if err := svc.authorize(secret); err != nil {
		return nil, err
	}
	defer svc.lock()()

	tags, err := svc.store().LoadTags(svc.ctx)
	if err != nil {
		return nil, code.ErrorStorageFailure.WithDetails(err.Error())
	}
	if tagByName(tags, param.Name) != nil {
		return nil, code.ErrorTagDuplicate
	}

	now := time.Now()
	tag := &domain.Tag{
		ID:        uuid.NewString(),
		Name:      param.Name,
		Color:     param.Color,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if tag.Color == "" {
		tag.Color = "#3B82F6"
	}

	tags = append(tags, tag)
	if err := svc.store().SaveTags(svc.ctx, tags); err != nil {
		return nil, code.ErrorStorageFailure.WithDetails(err.Error())
	}

	svc.log().Info("tag created", logger.FieldTagID(tag.ID))
	return toTagDTO(tag, 0), nil
}

// TagUpdate 更新标签
// 提示词以名称引用标签，重命名必须级联改写全部引用
func (svc *Service) TagUpdate(id string, param *TagUpdateRequest, secret string) (*Tag, error) {
	if err := svc.authorize(secret); err != nil {
		return nil, err
	}
	defer svc.lock()()

	tags, err := svc.store().LoadTags(svc.ctx)
	if err != nil {
		return nil, code.ErrorStorageFailure.WithDetails(err.Error())
	}
	_, tag := tagByID(tags, id)
	if tag == nil {
		return nil, code.ErrorTagNotFound
	}

	oldName := tag.Name
	renamed := param.Name != nil && *param.Name != oldName

	if renamed {
		if tagByName(tags, *param.Name) != nil {
			return nil, code.ErrorTagDuplicate
		}
		tag.Name = *param.Name
	}
	if param.Color != nil {
		tag.Color = *param.Color
	}
	tag.UpdatedAt = time.Now()

	// 改写先落提示词、后落标签，中途失败时标签集合保持原样
	var count int64
	if renamed {
		prompts, err := svc.store().LoadPrompts(svc.ctx)
		if err != nil {
			return nil, code.ErrorStorageFailure.WithDetails(err.Error())
		}
		changed := false
		for _, p := range prompts {
			for i, name := range p.Tags {
				if name == oldName {
					p.Tags[i] = tag.Name
					changed = true
				}
			}
			if p.HasTag(tag.Name) {
				count++
			}
		}
		if changed {
			if err := svc.store().SavePrompts(svc.ctx, prompts); err != nil {
				return nil, code.ErrorStorageFailure.WithDetails(err.Error())
			}
		}
	}

	if err := svc.store().SaveTags(svc.ctx, tags); err != nil {
		return nil, code.ErrorStorageFailure.WithDetails(err.Error())
	}
	if renamed {
		svc.log().Info("tag renamed", logger.FieldTagID(id))
	}

	return toTagDTO(tag, count), nil
}

// TagDelete 删除标签并从全部提示词中摘除该名称
func (svc *Service) TagDelete(id string, secret string) error {
	if err := svc.authorize(secret); err != nil {
		return err
	}
	defer svc.lock()()

	tags, err := svc.store().LoadTags(svc.ctx)
	if err != nil {
		return code.ErrorStorageFailure.WithDetails(err.Error())
	}
	idx, tag := tagByID(tags, id)
	if tag == nil {
		return code.ErrorTagNotFound
	}

	name := tag.Name
	tags = append(tags[:idx], tags[idx+1:]...)

	// 先把引用从提示词上摘干净再删标签记录，失败时标签原样保留
	prompts, err := svc.store().LoadPrompts(svc.ctx)
	if err != nil {
		return code.ErrorStorageFailure.WithDetails(err.Error())
	}
	changed := false
	for _, p := range prompts {
		if !p.HasTag(name) {
			continue
		}
		filtered := p.Tags[:0]
		for _, n := range p.Tags {
			if n != name {
				filtered = append(filtered, n)
			}
		}
		p.Tags = filtered
		changed = true
	}
	if changed {
		if err := svc.store().SavePrompts(svc.ctx, prompts); err != nil {
			return code.ErrorStorageFailure.WithDetails(err.Error())
		}
	}

	if err := svc.store().SaveTags(svc.ctx, tags); err != nil {
		return code.ErrorStorageFailure.WithDetails(err.Error())
	}

	svc.log().Info("tag deleted", logger.FieldTagID(id))
	return nil
}
