// Package task 后台定时任务
package task

import (
	"context"

	"github.com/prompthub/prompt-hub-service/global"
	"github.com/prompthub/prompt-hub-service/internal/service"
	"github.com/prompthub/prompt-hub-service/pkg/logger"

	"github.com/robfig/cron/v3"
)

// BackupScheduler 定时快照任务
type BackupScheduler struct {
	cron *cron.Cron
	hub  *service.Hub
	keep int
}

// NewBackupScheduler 按 cron 表达式注册定时备份
func NewBackupScheduler(hub *service.Hub, spec string, keep int) (*BackupScheduler, error) {
	s := &BackupScheduler{
		cron: cron.New(),
		hub:  hub,
		keep: keep,
	}
	if _, err := s.cron.AddFunc(spec, s.run); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *BackupScheduler) run() {
	svc := service.New(context.Background(), s.hub)
	if _, err := svc.BackupCreate(); err != nil {
		global.Log().Error("scheduled backup failed", logger.FieldError(err))
		return
	}
	if err := svc.BackupPrune(s.keep); err != nil {
		global.Log().Warn("backup prune failed", logger.FieldError(err))
	}
}

// Start 启动调度
func (s *BackupScheduler) Start() {
	s.cron.Start()
}

// Stop 停止调度，等待在跑的任务结束
func (s *BackupScheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}
