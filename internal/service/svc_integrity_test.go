package service

import (
	"context"
	"errors"
	"testing"

	"github.com/prompthub/prompt-hub-service/internal/domain"
	"github.com/prompthub/prompt-hub-service/internal/store"
)

// faultStore 包装底层存储，按开关让提示词集合落盘失败
// 用于验证级联写中途失败时不会留下悬空引用
type faultStore struct {
	domain.Store
	failPromptSave bool
}

func (s *faultStore) SavePrompts(ctx context.Context, prompts []*domain.Prompt) error {
	if s.failPromptSave {
		return errors.New("disk full")
	}
	return s.Store.SavePrompts(ctx, prompts)
}

func newFaultService(t *testing.T) (*Service, *faultStore) {
	t.Helper()

	js, err := store.NewJSONStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewJSONStore error: %v", err)
	}
	fs := &faultStore{Store: js}
	hub := NewHub(fs, NewGate(testSecret), t.TempDir())
	svc := New(context.Background(), hub)

	if err := svc.AdminSeed(); err != nil {
		t.Fatalf("AdminSeed error: %v", err)
	}
	return svc, fs
}

func TestCategoryDeleteAbortsWhenPromptSaveFails(t *testing.T) {
	svc, fs := newFaultService(t)

	doomed := mustCreateCategory(t, svc, &CategoryCreateRequest{Name: "临时"})
	p := mustCreatePrompt(t, svc, &PromptCreateRequest{
		Title: "直属", Content: "内容", CategoryID: doomed.ID,
	})

	fs.failPromptSave = true
	if err := svc.CategoryDelete(doomed.ID, testSecret); err == nil {
		t.Fatal("CategoryDelete succeeded despite prompt save failure")
	}
	fs.failPromptSave = false

	// 分类必须原样保留，提示词不能指向已不存在的分类
	list, err := svc.CategoryList()
	if err != nil {
		t.Fatalf("CategoryList error: %v", err)
	}
	found := false
	for _, c := range list {
		if c.ID == doomed.ID {
			found = true
		}
	}
	if !found {
		t.Error("category removed while prompts still reference it")
	}

	got, err := svc.PromptGet(p.ID)
	if err != nil {
		t.Fatalf("PromptGet error: %v", err)
	}
	if got.CategoryID != doomed.ID {
		t.Errorf("prompt CategoryID = %s, want unchanged %s", got.CategoryID, doomed.ID)
	}
}

func TestCategoryRenameAbortsWhenPromptSaveFails(t *testing.T) {
	svc, fs := newFaultService(t)

	c := mustCreateCategory(t, svc, &CategoryCreateRequest{Name: "后端"})
	p := mustCreatePrompt(t, svc, &PromptCreateRequest{
		Title: "建表", Content: "内容", CategoryID: c.ID,
	})

	fs.failPromptSave = true
	if _, err := svc.CategoryUpdate(c.ID, &CategoryUpdateRequest{Name: strPtr("服务端")}, testSecret); err == nil {
		t.Fatal("CategoryUpdate succeeded despite prompt save failure")
	}
	fs.failPromptSave = false

	list, err := svc.CategoryList()
	if err != nil {
		t.Fatalf("CategoryList error: %v", err)
	}
	for _, got := range list {
		if got.ID == c.ID && got.Name != "后端" {
			t.Errorf("category name = %s, want unchanged 后端", got.Name)
		}
	}

	got, err := svc.PromptGet(p.ID)
	if err != nil {
		t.Fatalf("PromptGet error: %v", err)
	}
	if got.CategoryName != "后端" || got.CategoryPath != "后端" {
		t.Errorf("prompt cache = %s/%s, want unchanged 后端", got.CategoryName, got.CategoryPath)
	}
}

func TestTagRenameAbortsWhenPromptSaveFails(t *testing.T) {
	svc, fs := newFaultService(t)

	p := mustCreatePrompt(t, svc, &PromptCreateRequest{
		Title: "标题", Content: "内容", Tags: []string{"旧名"},
	})
	tags, err := svc.TagList()
	if err != nil {
		t.Fatalf("TagList error: %v", err)
	}
	if len(tags) != 1 {
		t.Fatalf("tags = %d, want 1", len(tags))
	}

	fs.failPromptSave = true
	if _, err := svc.TagUpdate(tags[0].ID, &TagUpdateRequest{Name: strPtr("新名")}, testSecret); err == nil {
		t.Fatal("TagUpdate succeeded despite prompt save failure")
	}
	fs.failPromptSave = false

	// 标签集合原样保留，提示词仍引用旧名
	tags, err = svc.TagList()
	if err != nil {
		t.Fatalf("TagList error: %v", err)
	}
	if len(tags) != 1 || tags[0].Name != "旧名" {
		t.Errorf("tags = %+v, want unchanged 旧名", tags)
	}

	got, err := svc.PromptGet(p.ID)
	if err != nil {
		t.Fatalf("PromptGet error: %v", err)
	}
	if len(got.Tags) != 1 || got.Tags[0] != "旧名" {
		t.Errorf("prompt tags = %v, want unchanged [旧名]", got.Tags)
	}
}

func TestTagDeleteAbortsWhenPromptSaveFails(t *testing.T) {
	svc, fs := newFaultService(t)

	p := mustCreatePrompt(t, svc, &PromptCreateRequest{
		Title: "标题", Content: "内容", Tags: []string{"保留"},
	})
	tags, err := svc.TagList()
	if err != nil {
		t.Fatalf("TagList error: %v", err)
	}

	fs.failPromptSave = true
	if err := svc.TagDelete(tags[0].ID, testSecret); err == nil {
		t.Fatal("TagDelete succeeded despite prompt save failure")
	}
	fs.failPromptSave = false

	tags, err = svc.TagList()
	if err != nil {
		t.Fatalf("TagList error: %v", err)
	}
	if len(tags) != 1 || tags[0].Name != "保留" {
		t.Errorf("tags = %+v, want unchanged 保留", tags)
	}

	got, err := svc.PromptGet(p.ID)
	if err != nil {
		t.Fatalf("PromptGet error: %v", err)
	}
	if len(got.Tags) != 1 || got.Tags[0] != "保留" {
		t.Errorf("prompt tags = %v, want unchanged [保留]", got.Tags)
	}
}
