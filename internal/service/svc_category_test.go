package service

import (
	"testing"

	"github.com/prompthub/prompt-hub-service/internal/domain"
	"github.com/prompthub/prompt-hub-service/pkg/code"
)

func mustCreateCategory(t *testing.T, svc *Service, param *CategoryCreateRequest) *Category {
	t.Helper()
	c, err := svc.CategoryCreate(param, testSecret)
	if err != nil {
		t.Fatalf("CategoryCreate error: %v", err)
	}
	return c
}

func TestCategoryCreateNested(t *testing.T) {
	svc := newTestService(t)

	parent := mustCreateCategory(t, svc, &CategoryCreateRequest{Name: "后端"})
	child := mustCreateCategory(t, svc, &CategoryCreateRequest{Name: "数据库", ParentID: parent.ID})

	if child.Level != 2 {
		t.Errorf("Level = %d, want 2", child.Level)
	}
	if child.Path != "后端/数据库" {
		t.Errorf("Path = %s, want 后端/数据库", child.Path)
	}

	// 同级重名拒绝
	if _, err := svc.CategoryCreate(&CategoryCreateRequest{Name: "数据库", ParentID: parent.ID}, testSecret); err == nil {
		t.Error("duplicate sibling name accepted")
	}
}

func TestCategoryDepthLimit(t *testing.T) {
	svc := newTestService(t)

	parentID := ""
	for i := 0; i < domain.MaxCategoryDepth; i++ {
		c := mustCreateCategory(t, svc, &CategoryCreateRequest{
			Name:     "层级" + string(rune('A'+i)),
			ParentID: parentID,
		})
		parentID = c.ID
	}

	_, err := svc.CategoryCreate(&CategoryCreateRequest{Name: "过深", ParentID: parentID}, testSecret)
	if err != code.ErrorCategoryDepth {
		t.Errorf("err = %v, want ErrorCategoryDepth", err)
	}
}

func TestCategoryRenameCascadesPaths(t *testing.T) {
	svc := newTestService(t)

	parent := mustCreateCategory(t, svc, &CategoryCreateRequest{Name: "后端"})
	child := mustCreateCategory(t, svc, &CategoryCreateRequest{Name: "数据库", ParentID: parent.ID})
	p := mustCreatePrompt(t, svc, &PromptCreateRequest{
		Title: "建表", Content: "内容", CategoryID: child.ID,
	})

	if _, err := svc.CategoryUpdate(parent.ID, &CategoryUpdateRequest{Name: strPtr("服务端")}, testSecret); err != nil {
		t.Fatalf("CategoryUpdate error: %v", err)
	}

	list, err := svc.CategoryList()
	if err != nil {
		t.Fatalf("CategoryList error: %v", err)
	}
	for _, c := range list {
		if c.ID == child.ID && c.Path != "服务端/数据库" {
			t.Errorf("child Path = %s, want 服务端/数据库", c.Path)
		}
	}

	got, err := svc.PromptGet(p.ID)
	if err != nil {
		t.Fatalf("PromptGet error: %v", err)
	}
	if got.CategoryPath != "服务端/数据库" {
		t.Errorf("prompt CategoryPath = %s, want 服务端/数据库", got.CategoryPath)
	}
}

func TestCategoryReparentRejectsCycle(t *testing.T) {
	svc := newTestService(t)

	a := mustCreateCategory(t, svc, &CategoryCreateRequest{Name: "甲"})
	b := mustCreateCategory(t, svc, &CategoryCreateRequest{Name: "乙", ParentID: a.ID})
	c := mustCreateCategory(t, svc, &CategoryCreateRequest{Name: "丙", ParentID: b.ID})

	// 挂到自己的后代下形成环
	if _, err := svc.CategoryUpdate(a.ID, &CategoryUpdateRequest{ParentID: strPtr(c.ID)}, testSecret); err != code.ErrorCategoryCycle {
		t.Errorf("err = %v, want ErrorCategoryCycle", err)
	}
	if _, err := svc.CategoryUpdate(a.ID, &CategoryUpdateRequest{ParentID: strPtr(a.ID)}, testSecret); err != code.ErrorCategoryCycle {
		t.Errorf("self parent: err = %v, want ErrorCategoryCycle", err)
	}
}

func TestCategoryReparentRejectsDuplicateSiblingName(t *testing.T) {
	svc := newTestService(t)

	parent := mustCreateCategory(t, svc, &CategoryCreateRequest{Name: "后端"})
	mustCreateCategory(t, svc, &CategoryCreateRequest{Name: "数据库", ParentID: parent.ID})
	loose := mustCreateCategory(t, svc, &CategoryCreateRequest{Name: "数据库"})

	// 不改名、只换父，目标层级已有同名分类
	_, err := svc.CategoryUpdate(loose.ID, &CategoryUpdateRequest{ParentID: strPtr(parent.ID)}, testSecret)
	cErr, ok := err.(*code.Code)
	if !ok || cErr.Code() != code.ErrorConflict.Code() {
		t.Errorf("err = %v, want ErrorConflict", err)
	}

	// 原位置保持不变
	list, err := svc.CategoryList()
	if err != nil {
		t.Fatalf("CategoryList error: %v", err)
	}
	for _, c := range list {
		if c.ID == loose.ID && c.ParentID != "" {
			t.Errorf("rejected reparent was persisted, ParentID = %s", c.ParentID)
		}
	}
}

func TestCategoryDeleteReassignsPromptsToFallback(t *testing.T) {
	svc := newTestService(t)

	doomed := mustCreateCategory(t, svc, &CategoryCreateRequest{Name: "临时"})
	child := mustCreateCategory(t, svc, &CategoryCreateRequest{Name: "子类", ParentID: doomed.ID})
	p := mustCreatePrompt(t, svc, &PromptCreateRequest{
		Title: "直属", Content: "内容", CategoryID: doomed.ID,
	})

	if err := svc.CategoryDelete(doomed.ID, testSecret); err != nil {
		t.Fatalf("CategoryDelete error: %v", err)
	}

	got, err := svc.PromptGet(p.ID)
	if err != nil {
		t.Fatalf("PromptGet error: %v", err)
	}
	if got.CategoryID != domain.FallbackCategoryID {
		t.Errorf("CategoryID = %s, want fallback", got.CategoryID)
	}
	if got.CategoryName != domain.FallbackCategoryName {
		t.Errorf("CategoryName = %s, want %s", got.CategoryName, domain.FallbackCategoryName)
	}

	// 子分类升级为根分类
	list, err := svc.CategoryList()
	if err != nil {
		t.Fatalf("CategoryList error: %v", err)
	}
	found := false
	for _, c := range list {
		if c.ID == child.ID {
			found = true
			if c.ParentID != "" || c.Level != 1 || c.Path != "子类" {
				t.Errorf("orphan child = %+v, want re-rooted", c)
			}
		}
	}
	if !found {
		t.Error("child category disappeared after parent delete")
	}
}

func TestFallbackCategoryProtected(t *testing.T) {
	svc := newTestService(t)

	if err := svc.CategoryDelete(domain.FallbackCategoryID, testSecret); err != code.ErrorCategoryUndeletable {
		t.Errorf("delete fallback: err = %v, want ErrorCategoryUndeletable", err)
	}
	if _, err := svc.CategoryUpdate(domain.FallbackCategoryID, &CategoryUpdateRequest{Name: strPtr("已分类")}, testSecret); err == nil {
		t.Error("rename fallback accepted")
	}
	// 颜色描述可以改
	if _, err := svc.CategoryUpdate(domain.FallbackCategoryID, &CategoryUpdateRequest{Color: strPtr("#000000")}, testSecret); err != nil {
		t.Errorf("recolor fallback: err = %v", err)
	}
}

func TestCategoryTree(t *testing.T) {
	svc := newTestService(t)

	parent := mustCreateCategory(t, svc, &CategoryCreateRequest{Name: "后端"})
	mustCreateCategory(t, svc, &CategoryCreateRequest{Name: "数据库", ParentID: parent.ID})

	tree, err := svc.CategoryTree()
	if err != nil {
		t.Fatalf("CategoryTree error: %v", err)
	}

	var node *CategoryNode
	for _, n := range tree {
		if n.ID == parent.ID {
			node = n
		}
		if n.ParentID != "" {
			t.Errorf("non-root %s at top level", n.ID)
		}
	}
	if node == nil {
		t.Fatal("created root missing from tree")
	}
	if len(node.Children) != 1 || node.Children[0].Name != "数据库" {
		t.Errorf("children = %+v", node.Children)
	}
}
