package service

import (
	"testing"

	"github.com/prompthub/prompt-hub-service/pkg/code"
)

func TestTagRenameCascadesToPrompts(t *testing.T) {
	svc := newTestService(t)

	tag, err := svc.TagCreate(&TagCreateRequest{Name: "审查"}, testSecret)
	if err != nil {
		t.Fatalf("TagCreate error: %v", err)
	}
	p1 := mustCreatePrompt(t, svc, &PromptCreateRequest{Title: "一", Content: "c", Tags: []string{"审查", "重构"}})
	p2 := mustCreatePrompt(t, svc, &PromptCreateRequest{Title: "二", Content: "c", Tags: []string{"审查"}})
	p3 := mustCreatePrompt(t, svc, &PromptCreateRequest{Title: "三", Content: "c", Tags: []string{"重构"}})

	if _, err := svc.TagUpdate(tag.ID, &TagUpdateRequest{Name: strPtr("代码审查")}, testSecret); err != nil {
		t.Fatalf("TagUpdate error: %v", err)
	}

	for _, tc := range []struct {
		id   string
		want []string
	}{
		{p1.ID, []string{"代码审查", "重构"}},
		{p2.ID, []string{"代码审查"}},
		{p3.ID, []string{"重构"}},
	} {
		got, err := svc.PromptGet(tc.id)
		if err != nil {
			t.Fatalf("PromptGet error: %v", err)
		}
		if len(got.Tags) != len(tc.want) {
			t.Errorf("prompt %s tags = %v, want %v", tc.id, got.Tags, tc.want)
			continue
		}
		for i := range tc.want {
			if got.Tags[i] != tc.want[i] {
				t.Errorf("prompt %s tags = %v, want %v", tc.id, got.Tags, tc.want)
			}
		}
	}
}

func TestTagRenameRejectsDuplicate(t *testing.T) {
	svc := newTestService(t)

	a, err := svc.TagCreate(&TagCreateRequest{Name: "甲"}, testSecret)
	if err != nil {
		t.Fatalf("TagCreate error: %v", err)
	}
	if _, err := svc.TagCreate(&TagCreateRequest{Name: "乙"}, testSecret); err != nil {
		t.Fatalf("TagCreate error: %v", err)
	}

	if _, err := svc.TagUpdate(a.ID, &TagUpdateRequest{Name: strPtr("乙")}, testSecret); err != code.ErrorTagDuplicate {
		t.Errorf("err = %v, want ErrorTagDuplicate", err)
	}
	if _, err := svc.TagCreate(&TagCreateRequest{Name: "甲"}, testSecret); err != code.ErrorTagDuplicate {
		t.Errorf("create duplicate: err = %v, want ErrorTagDuplicate", err)
	}
}

func TestTagDeleteRemovesFromPrompts(t *testing.T) {
	svc := newTestService(t)

	tag, err := svc.TagCreate(&TagCreateRequest{Name: "废弃"}, testSecret)
	if err != nil {
		t.Fatalf("TagCreate error: %v", err)
	}
	p := mustCreatePrompt(t, svc, &PromptCreateRequest{Title: "一", Content: "c", Tags: []string{"废弃", "保留"}})

	if err := svc.TagDelete(tag.ID, testSecret); err != nil {
		t.Fatalf("TagDelete error: %v", err)
	}

	got, err := svc.PromptGet(p.ID)
	if err != nil {
		t.Fatalf("PromptGet error: %v", err)
	}
	if len(got.Tags) != 1 || got.Tags[0] != "保留" {
		t.Errorf("Tags = %v, want [保留]", got.Tags)
	}

	tags, err := svc.TagList()
	if err != nil {
		t.Fatalf("TagList error: %v", err)
	}
	for _, item := range tags {
		if item.Name == "废弃" {
			t.Error("deleted tag still listed")
		}
	}
}
