package service

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/prompthub/prompt-hub-service/pkg/code"
	"github.com/prompthub/prompt-hub-service/pkg/logger"

	"github.com/bytedance/sonic"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

const backupPrefix = "backup_"

// BackupResult 一次备份的落盘信息
type BackupResult struct {
	File      string `json:"file"`
	CreatedAt string `json:"createdAt"`
}

// BackupCreate 对存储做完整快照并写入备份目录
// 销毁性操作执行前必须调用，备份失败时操作整体中止
func (svc *Service) BackupCreate() (*BackupResult, error) {
	snap, err := svc.store().TakeSnapshot(svc.ctx)
	if err != nil {
		return nil, code.ErrorBackupFailed.WithDetails(err.Error())
	}

	if err := os.MkdirAll(svc.hub.BackupDir, 0754); err != nil {
		return nil, code.ErrorBackupFailed.WithDetails(err.Error())
	}

	now := time.Now()
	name := backupPrefix + now.Format("20060102_150405") + ".json"
	target := filepath.Join(svc.hub.BackupDir, name)

	data, err := sonic.MarshalIndent(snap, "", "  ")
	if err != nil {
		return nil, code.ErrorBackupFailed.WithDetails(err.Error())
	}
	if err := os.WriteFile(target, data, 0644); err != nil {
		return nil, code.ErrorBackupFailed.WithDetails(err.Error())
	}

	svc.log().Info("backup created", logger.FieldBackup(name))
	return &BackupResult{File: name, CreatedAt: now.Format(time.RFC3339)}, nil
}

// BackupList 列出备份目录下的全部备份文件，新的在前
func (svc *Service) BackupList() ([]string, error) {
	entries, err := os.ReadDir(svc.hub.BackupDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, errors.Wrap(err, "read backup dir failed")
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if strings.HasPrefix(e.Name(), backupPrefix) && strings.HasSuffix(e.Name(), ".json") {
			names = append(names, e.Name())
		}
	}
	sort.Sort(sort.Reverse(sort.StringSlice(names)))
	return names, nil
}

// BackupPrune 清理超出保留份数的旧备份
func (svc *Service) BackupPrune(keep int) error {
	if keep <= 0 {
		return nil
	}
	names, err := svc.BackupList()
	if err != nil {
		return err
	}
	for _, name := range names[min(keep, len(names)):] {
		if err := os.Remove(filepath.Join(svc.hub.BackupDir, name)); err != nil {
			svc.log().Warn("remove old backup failed", logger.FieldBackup(name), zap.Error(err))
		}
	}
	return nil
}
