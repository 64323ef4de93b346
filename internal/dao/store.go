package dao

import (
	"context"
	"time"

	"github.com/prompthub/prompt-hub-service/internal/domain"
	"github.com/prompthub/prompt-hub-service/internal/model"

	"github.com/jinzhu/copier"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// DBStore 基于 GORM 的实体存储实现
// Save 在单事务内整表替换，保证集合级原子生效
type DBStore struct {
	db *gorm.DB
}

// NewDBStore 创建 DBStore 并迁移表结构
func NewDBStore(db *gorm.DB) (*DBStore, error) {
	if err := model.AutoMigrate(db); err != nil {
		return nil, errors.Wrap(err, "auto migrate failed")
	}
	return &DBStore{db: db}, nil
}

func (s *DBStore) LoadPrompts(ctx context.Context) ([]*domain.Prompt, error) {
	var rows []*model.Prompt
	if err := s.db.WithContext(ctx).Order("created_at, id").Find(&rows).Error; err != nil {
		return nil, errors.Wrap(err, "load prompts failed")
	}
	prompts := make([]*domain.Prompt, 0, len(rows))
	for _, row := range rows {
		p := &domain.Prompt{}
		if err := copier.Copy(p, row); err != nil {
			return nil, err
		}
		if p.Tags == nil {
			p.Tags = []string{}
		}
		prompts = append(prompts, p)
	}
	return prompts, nil
}

func (s *DBStore) SavePrompts(ctx context.Context, prompts []*domain.Prompt) error {
	rows := make([]*model.Prompt, 0, len(prompts))
	for _, p := range prompts {
		row := &model.Prompt{}
		if err := copier.Copy(row, p); err != nil {
			return err
		}
		rows = append(rows, row)
	}
	return s.replaceAll(ctx, &model.Prompt{}, func(tx *gorm.DB) error {
		if len(rows) == 0 {
			return nil
		}
		return tx.Create(rows).Error
	})
}

func (s *DBStore) LoadCategories(ctx context.Context) ([]*domain.Category, error) {
	var rows []*model.Category
	if err := s.db.WithContext(ctx).Order("created_at, id").Find(&rows).Error; err != nil {
		return nil, errors.Wrap(err, "load categories failed")
	}
	categories := make([]*domain.Category, 0, len(rows))
	for _, row := range rows {
		c := &domain.Category{}
		if err := copier.Copy(c, row); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, nil
}

func (s *DBStore) SaveCategories(ctx context.Context, categories []*domain.Category) error {
	rows := make([]*model.Category, 0, len(categories))
	for _, c := range categories {
		row := &model.Category{}
		if err := copier.Copy(row, c); err != nil {
			return err
		}
		rows = append(rows, row)
	}
	return s.replaceAll(ctx, &model.Category{}, func(tx *gorm.DB) error {
		if len(rows) == 0 {
			return nil
		}
		return tx.Create(rows).Error
	})
}

func (s *DBStore) LoadTags(ctx context.Context) ([]*domain.Tag, error) {
	var rows []*model.Tag
	if err := s.db.WithContext(ctx).Order("created_at, id").Find(&rows).Error; err != nil {
		return nil, errors.Wrap(err, "load tags failed")
	}
	tags := make([]*domain.Tag, 0, len(rows))
	for _, row := range rows {
		t := &domain.Tag{}
		if err := copier.Copy(t, row); err != nil {
			return nil, err
		}
		tags = append(tags, t)
	}
	return tags, nil
}

func (s *DBStore) SaveTags(ctx context.Context, tags []*domain.Tag) error {
	rows := make([]*model.Tag, 0, len(tags))
	for _, t := range tags {
		row := &model.Tag{}
		if err := copier.Copy(row, t); err != nil {
			return err
		}
		rows = append(rows, row)
	}
	return s.replaceAll(ctx, &model.Tag{}, func(tx *gorm.DB) error {
		if len(rows) == 0 {
			return nil
		}
		return tx.Create(rows).Error
	})
}

// replaceAll 在一个事务内清空表并写入新序列
func (s *DBStore) replaceAll(ctx context.Context, table interface{}, insert func(tx *gorm.DB) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(table).Error; err != nil {
			return errors.Wrap(err, "clear table failed")
		}
		if err := insert(tx); err != nil {
			return errors.Wrap(err, "insert rows failed")
		}
		return nil
	})
}

func (s *DBStore) AppendVersion(ctx context.Context, v *domain.PromptVersion) error {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.PromptVersion{}).
		Where("prompt_id = ? AND version = ?", v.PromptID, v.Version).
		Count(&count).Error
	if err != nil {
		return errors.Wrap(err, "check version failed")
	}
	if count > 0 {
		return errors.Errorf("version %s already exists for prompt %s", v.Version, v.PromptID)
	}

	row := &model.PromptVersion{}
	if err := copier.Copy(row, v); err != nil {
		return err
	}
	return errors.Wrap(s.db.WithContext(ctx).Create(row).Error, "append version failed")
}

func (s *DBStore) ListVersions(ctx context.Context, promptID string) ([]*domain.PromptVersion, error) {
	var rows []*model.PromptVersion
	err := s.db.WithContext(ctx).
		Where("prompt_id = ?", promptID).
		Order("auto_id").
		Find(&rows).Error
	if err != nil {
		return nil, errors.Wrap(err, "list versions failed")
	}
	var versions []*domain.PromptVersion
	for _, row := range rows {
		v := &domain.PromptVersion{}
		if err := copier.Copy(v, row); err != nil {
			return nil, err
		}
		versions = append(versions, v)
	}
	return versions, nil
}

func (s *DBStore) GetVersion(ctx context.Context, promptID, label string) (*domain.PromptVersion, error) {
	var row model.PromptVersion
	err := s.db.WithContext(ctx).
		Where("prompt_id = ? AND version = ?", promptID, label).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "get version failed")
	}
	v := &domain.PromptVersion{}
	if err := copier.Copy(v, &row); err != nil {
		return nil, err
	}
	return v, nil
}

func (s *DBStore) TakeSnapshot(ctx context.Context) (*domain.Snapshot, error) {
	snap := &domain.Snapshot{CreatedAt: time.Now()}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		inner := &DBStore{db: tx}
		var err error
		if snap.Prompts, err = inner.LoadPrompts(ctx); err != nil {
			return err
		}
		if snap.Categories, err = inner.LoadCategories(ctx); err != nil {
			return err
		}
		if snap.Tags, err = inner.LoadTags(ctx); err != nil {
			return err
		}

		var rows []*model.PromptVersion
		if err := tx.Order("auto_id").Find(&rows).Error; err != nil {
			return errors.Wrap(err, "load versions failed")
		}
		for _, row := range rows {
			v := &domain.PromptVersion{}
			if err := copier.Copy(v, row); err != nil {
				return err
			}
			snap.Versions = append(snap.Versions, v)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return snap, nil
}

func (s *DBStore) Restore(ctx context.Context, snap *domain.Snapshot) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		inner := &DBStore{db: tx}
		if err := inner.SaveCategories(ctx, snap.Categories); err != nil {
			return err
		}
		if err := inner.SaveTags(ctx, snap.Tags); err != nil {
			return err
		}
		if err := inner.SavePrompts(ctx, snap.Prompts); err != nil {
			return err
		}

		if err := tx.Where("1 = 1").Delete(&model.PromptVersion{}).Error; err != nil {
			return errors.Wrap(err, "clear versions failed")
		}
		for _, v := range snap.Versions {
			row := &model.PromptVersion{}
			if err := copier.Copy(row, v); err != nil {
				return err
			}
			row.AutoID = 0
			if err := tx.Create(row).Error; err != nil {
				return errors.Wrap(err, "restore version failed")
			}
		}
		return nil
	})
}

var _ domain.Store = (*DBStore)(nil)
