package service

import (
	"strings"
	"testing"

	"github.com/prompthub/prompt-hub-service/pkg/code"
)

func seedSearchData(t *testing.T, svc *Service) (backendID, dbID string) {
	t.Helper()

	backend := mustCreateCategory(t, svc, &CategoryCreateRequest{Name: "后端"})
	db := mustCreateCategory(t, svc, &CategoryCreateRequest{Name: "数据库", ParentID: backend.ID})

	mustCreatePrompt(t, svc, &PromptCreateRequest{
		Title: "SQL 优化", Content: "分析慢查询", CategoryID: db.ID, Tags: []string{"性能"},
	})
	mustCreatePrompt(t, svc, &PromptCreateRequest{
		Title: "接口设计", Content: "REST 风格约定", CategoryID: backend.ID, Tags: []string{"规范"},
	})
	mustCreatePrompt(t, svc, &PromptCreateRequest{
		Title: "周报总结", Content: "提炼本周工作", CategoryID: "2", Tags: []string{"总结"},
	})
	return backend.ID, db.ID
}

func TestPromptSearchKeywordCaseInsensitive(t *testing.T) {
	svc := newTestService(t)
	seedSearchData(t, svc)

	results, total, err := svc.PromptSearch(&PromptSearchRequest{Q: "rest"}, 1, 20)
	if err != nil {
		t.Fatalf("PromptSearch error: %v", err)
	}
	if total != 1 || len(results) != 1 {
		t.Fatalf("total = %d, results = %d, want 1", total, len(results))
	}
	if results[0].Title != "接口设计" {
		t.Errorf("Title = %s", results[0].Title)
	}
}

func TestPromptSearchCategoryIncludesSubtree(t *testing.T) {
	svc := newTestService(t)
	backendID, _ := seedSearchData(t, svc)

	results, total, err := svc.PromptSearch(&PromptSearchRequest{CategoryID: backendID}, 1, 20)
	if err != nil {
		t.Fatalf("PromptSearch error: %v", err)
	}
	if total != 2 {
		t.Fatalf("total = %d, want 2 (direct + subtree)", total)
	}
	for _, p := range results {
		if !strings.HasPrefix(p.CategoryPath, "后端") {
			t.Errorf("unexpected result %s in %s", p.Title, p.CategoryPath)
		}
	}

	_, _, err = svc.PromptSearch(&PromptSearchRequest{CategoryID: "missing"}, 1, 20)
	if err != code.ErrorCategoryNotFound {
		t.Errorf("missing category: err = %v, want ErrorCategoryNotFound", err)
	}
}

func TestPromptSearchTagsAnyMatch(t *testing.T) {
	svc := newTestService(t)
	seedSearchData(t, svc)

	_, total, err := svc.PromptSearch(&PromptSearchRequest{Tags: []string{"性能", "总结"}}, 1, 20)
	if err != nil {
		t.Fatalf("PromptSearch error: %v", err)
	}
	if total != 2 {
		t.Errorf("total = %d, want 2 (any tag matches)", total)
	}
}

func TestPromptSearchPaginationStable(t *testing.T) {
	svc := newTestService(t)
	seedSearchData(t, svc)

	var all []string
	for page := 1; ; page++ {
		results, total, err := svc.PromptSearch(&PromptSearchRequest{}, page, 2)
		if err != nil {
			t.Fatalf("PromptSearch error: %v", err)
		}
		if total != 3 {
			t.Fatalf("total = %d, want 3", total)
		}
		if len(results) == 0 {
			break
		}
		for _, p := range results {
			all = append(all, p.ID)
		}
	}

	if len(all) != 3 {
		t.Fatalf("paged ids = %d, want 3", len(all))
	}
	seen := map[string]bool{}
	for _, id := range all {
		if seen[id] {
			t.Errorf("id %s appeared on two pages", id)
		}
		seen[id] = true
	}
}
