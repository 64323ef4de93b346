package service

import (
	"testing"
)

func TestStatsSubtreeCounts(t *testing.T) {
	svc := newTestService(t)

	parent := mustCreateCategory(t, svc, &CategoryCreateRequest{Name: "后端"})
	child := mustCreateCategory(t, svc, &CategoryCreateRequest{Name: "数据库", ParentID: parent.ID})

	mustCreatePrompt(t, svc, &PromptCreateRequest{Title: "一", Content: "c", CategoryID: parent.ID})
	mustCreatePrompt(t, svc, &PromptCreateRequest{Title: "二", Content: "c", CategoryID: child.ID})
	p := mustCreatePrompt(t, svc, &PromptCreateRequest{Title: "三", Content: "c"})

	for i := 0; i < 4; i++ {
		if _, err := svc.PromptUse(p.ID); err != nil {
			t.Fatalf("PromptUse error: %v", err)
		}
	}

	stats, err := svc.StatsGet()
	if err != nil {
		t.Fatalf("StatsGet error: %v", err)
	}

	if stats.PromptTotal != 3 {
		t.Errorf("PromptTotal = %d, want 3", stats.PromptTotal)
	}
	if stats.UsageTotal != 4 {
		t.Errorf("UsageTotal = %d, want 4", stats.UsageTotal)
	}

	// 父分类计数包含子树
	for _, cs := range stats.Categories {
		switch cs.ID {
		case parent.ID:
			if cs.PromptCount != 2 {
				t.Errorf("parent subtree count = %d, want 2", cs.PromptCount)
			}
		case child.ID:
			if cs.PromptCount != 1 {
				t.Errorf("child count = %d, want 1", cs.PromptCount)
			}
		}
	}

	// 默认部署 7 个一级分类，外加本测试的后端/数据库
	if stats.LevelCounts[1] != 8 {
		t.Errorf("level-1 categories = %d, want 8", stats.LevelCounts[1])
	}
	if stats.LevelCounts[2] != 1 {
		t.Errorf("level-2 categories = %d, want 1", stats.LevelCounts[2])
	}

	if len(stats.MostUsed) == 0 || stats.MostUsed[0].ID != p.ID {
		t.Error("most used prompt not ranked first")
	}
}
