package service

import (
	"fmt"
	"time"

	"github.com/prompthub/prompt-hub-service/internal/domain"
	"github.com/prompthub/prompt-hub-service/pkg/code"

	"go.uber.org/zap"
)

// AdminClear 清空全部数据并恢复默认分类
// 销毁性操作，执行前强制落一份备份
func (svc *Service) AdminClear(secret string) (*BackupResult, error) {
	if err := svc.authorize(secret); err != nil {
		return nil, err
	}
	defer svc.lock()()

	backup, err := svc.BackupCreate()
	if err != nil {
		return nil, err
	}

	now := time.Now()
	snap := &domain.Snapshot{
		Prompts:    []*domain.Prompt{},
		Categories: domain.DefaultCategories(now),
		Tags:       []*domain.Tag{},
		Versions:   []*domain.PromptVersion{},
		CreatedAt:  now,
	}
	if err := svc.store().Restore(svc.ctx, snap); err != nil {
		return nil, code.ErrorStorageFailure.WithDetails(err.Error())
	}

	svc.log().Warn("store cleared", zap.String("backup", backup.File))
	return backup, nil
}

// AdminLoadTestData 载入演示数据集
// 会整体替换现有数据，同样先落备份
func (svc *Service) AdminLoadTestData(secret string) (*BackupResult, error) {
	if err := svc.authorize(secret); err != nil {
		return nil, err
	}
	defer svc.lock()()

	backup, err := svc.BackupCreate()
	if err != nil {
		return nil, err
	}

	if err := svc.store().Restore(svc.ctx, testDataSnapshot(time.Now())); err != nil {
		return nil, code.ErrorStorageFailure.WithDetails(err.Error())
	}

	svc.log().Warn("test data loaded", zap.String("backup", backup.File))
	return backup, nil
}

// AdminSeed 存储为空时写入默认分类，服务启动时调用
func (svc *Service) AdminSeed() error {
	defer svc.lock()()

	categories, err := svc.store().LoadCategories(svc.ctx)
	if err != nil {
		return err
	}
	if len(categories) > 0 {
		return nil
	}
	return svc.store().SaveCategories(svc.ctx, domain.DefaultCategories(time.Now()))
}

// ConsistencyReport 引用完整性巡检结果
type ConsistencyReport struct {
	Healthy  bool     `json:"healthy"`
	Problems []string `json:"problems"`
}

// AdminVerify 巡检实体间引用
// 只读不修复，发现的问题逐条列出
func (svc *Service) AdminVerify() (*ConsistencyReport, error) {
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

	report := &ConsistencyReport{Problems: []string{}}

	catIndex := make(map[string]*domain.Category, len(categories))
	for _, c := range categories {
		catIndex[c.ID] = c
	}
	if _, ok := catIndex[domain.FallbackCategoryID]; !ok {
		report.Problems = append(report.Problems, "默认分类缺失")
	}
	for _, c := range categories {
		if c.ParentID == "" {
			continue
		}
		if _, ok := catIndex[c.ParentID]; !ok {
			report.Problems = append(report.Problems,
				fmt.Sprintf("分类 %s 的父分类 %s 不存在", c.ID, c.ParentID))
		}
	}

	tagNames := make(map[string]bool, len(tags))
	for _, t := range tags {
		tagNames[t.Name] = true
	}

	for _, p := range prompts {
		c, ok := catIndex[p.CategoryID]
		if !ok {
			report.Problems = append(report.Problems,
				fmt.Sprintf("提示词 %s 引用的分类 %s 不存在", p.ID, p.CategoryID))
		} else if p.CategoryName != c.Name || p.CategoryPath != c.Path {
			report.Problems = append(report.Problems,
				fmt.Sprintf("提示词 %s 的分类缓存与分类 %s 不一致", p.ID, c.ID))
		}
		for _, name := range p.Tags {
			if !tagNames[name] {
				report.Problems = append(report.Problems,
					fmt.Sprintf("提示词 %s 引用的标签 %q 未登记", p.ID, name))
			}
		}
		if p.CurrentVersion != "" {
			v, err := svc.store().GetVersion(svc.ctx, p.ID, p.CurrentVersion)
			if err != nil {
				return nil, code.ErrorStorageFailure.WithDetails(err.Error())
			}
			if v == nil {
				report.Problems = append(report.Problems,
					fmt.Sprintf("提示词 %s 的当前版本 %s 不在账本中", p.ID, p.CurrentVersion))
			}
		}
	}

	report.Healthy = len(report.Problems) == 0
	return report, nil
}
