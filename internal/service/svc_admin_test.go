package service

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/prompthub/prompt-hub-service/internal/domain"
)

func TestAdminClearBacksUpFirst(t *testing.T) {
	svc := newTestService(t)
	mustCreatePrompt(t, svc, &PromptCreateRequest{Title: "要没了", Content: "内容"})

	backup, err := svc.AdminClear(testSecret)
	if err != nil {
		t.Fatalf("AdminClear error: %v", err)
	}
	if !strings.HasPrefix(backup.File, "backup_") {
		t.Errorf("backup file = %s", backup.File)
	}

	// 备份文件真实落盘且包含被清掉的数据
	data, err := os.ReadFile(filepath.Join(svc.hub.BackupDir, backup.File))
	if err != nil {
		t.Fatalf("read backup: %v", err)
	}
	if !bytes.Contains(data, []byte("要没了")) {
		t.Error("backup does not contain pre-clear data")
	}

	_, total, err := svc.PromptSearch(&PromptSearchRequest{}, 1, 20)
	if err != nil {
		t.Fatalf("PromptSearch error: %v", err)
	}
	if total != 0 {
		t.Errorf("prompts after clear = %d, want 0", total)
	}

	// 默认分类恢复
	list, err := svc.CategoryList()
	if err != nil {
		t.Fatalf("CategoryList error: %v", err)
	}
	foundFallback := false
	for _, c := range list {
		if c.ID == domain.FallbackCategoryID {
			foundFallback = true
		}
	}
	if !foundFallback {
		t.Error("fallback category missing after clear")
	}
}

func TestAdminLoadTestData(t *testing.T) {
	svc := newTestService(t)

	if _, err := svc.AdminLoadTestData(testSecret); err != nil {
		t.Fatalf("AdminLoadTestData error: %v", err)
	}

	_, total, err := svc.PromptSearch(&PromptSearchRequest{}, 1, 20)
	if err != nil {
		t.Fatalf("PromptSearch error: %v", err)
	}
	if total == 0 {
		t.Fatal("no prompts after loading test data")
	}

	report, err := svc.AdminVerify()
	if err != nil {
		t.Fatalf("AdminVerify error: %v", err)
	}
	if !report.Healthy {
		t.Errorf("test data inconsistent: %v", report.Problems)
	}
}

func TestAdminVerifyDetectsDanglingCategory(t *testing.T) {
	svc := newTestService(t)
	p := mustCreatePrompt(t, svc, &PromptCreateRequest{Title: "标题", Content: "内容"})

	// 绕过服务层直接伪造悬空引用
	prompts, err := svc.store().LoadPrompts(svc.ctx)
	if err != nil {
		t.Fatalf("LoadPrompts error: %v", err)
	}
	for _, item := range prompts {
		if item.ID == p.ID {
			item.CategoryID = "ghost"
		}
	}
	if err := svc.store().SavePrompts(svc.ctx, prompts); err != nil {
		t.Fatalf("SavePrompts error: %v", err)
	}

	report, err := svc.AdminVerify()
	if err != nil {
		t.Fatalf("AdminVerify error: %v", err)
	}
	if report.Healthy {
		t.Error("dangling category reference not detected")
	}
}

func TestBackupPruneKeepsNewest(t *testing.T) {
	svc := newTestService(t)

	names := []string{
		"backup_20250101_000000.json",
		"backup_20250102_000000.json",
		"backup_20250103_000000.json",
	}
	if err := os.MkdirAll(svc.hub.BackupDir, 0754); err != nil {
		t.Fatal(err)
	}
	for _, name := range names {
		if err := os.WriteFile(filepath.Join(svc.hub.BackupDir, name), []byte("{}"), 0644); err != nil {
			t.Fatal(err)
		}
	}

	if err := svc.BackupPrune(2); err != nil {
		t.Fatalf("BackupPrune error: %v", err)
	}

	left, err := svc.BackupList()
	if err != nil {
		t.Fatalf("BackupList error: %v", err)
	}
	if len(left) != 2 {
		t.Fatalf("backups left = %d, want 2", len(left))
	}
	if left[0] != "backup_20250103_000000.json" || left[1] != "backup_20250102_000000.json" {
		t.Errorf("kept = %v, want two newest", left)
	}
}

func TestPromptExportCSV(t *testing.T) {
	svc := newTestService(t)
	mustCreatePrompt(t, svc, &PromptCreateRequest{
		Title: "导出", Content: "带,逗号", Description: "说明", Tags: []string{"甲", "乙"},
	})

	data, err := svc.PromptExportCSV(nil)
	if err != nil {
		t.Fatalf("PromptExportCSV error: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("\xEF\xBB\xBF")) {
		t.Error("missing UTF-8 BOM")
	}
	body := string(data)
	if !strings.Contains(body, "标题,描述,内容,分类,标签,创建时间,更新时间") {
		t.Error("missing header row")
	}
	if !strings.Contains(body, `"带,逗号"`) {
		t.Error("comma field not quoted")
	}
	if !strings.Contains(body, "甲, 乙") {
		t.Error("tags not joined")
	}

	// 过滤条件与检索一致
	filtered, err := svc.PromptExportCSV(&PromptSearchRequest{Q: "不存在的词"})
	if err != nil {
		t.Fatalf("filtered export error: %v", err)
	}
	if strings.Contains(string(filtered), "导出") {
		t.Error("filter not applied to export")
	}
}
