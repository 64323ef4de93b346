package dao

import (
	"context"
	"testing"
	"time"

	"github.com/prompthub/prompt-hub-service/internal/domain"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDBStore(t *testing.T) *DBStore {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	s, err := NewDBStore(db)
	require.NoError(t, err)
	return s
}

func TestDBStoreSaveIsFullReplace(t *testing.T) {
	s := newTestDBStore(t)
	ctx := context.Background()
	now := time.Now()

	first := []*domain.Tag{
		{ID: "t1", Name: "甲", CreatedAt: now, UpdatedAt: now},
		{ID: "t2", Name: "乙", CreatedAt: now, UpdatedAt: now},
	}
	require.NoError(t, s.SaveTags(ctx, first))

	second := []*domain.Tag{{ID: "t3", Name: "丙", CreatedAt: now, UpdatedAt: now}}
	require.NoError(t, s.SaveTags(ctx, second))

	out, err := s.LoadTags(ctx)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "丙", out[0].Name)
}

func TestDBStorePromptTagsSerialized(t *testing.T) {
	s := newTestDBStore(t)
	ctx := context.Background()
	now := time.Now()

	in := []*domain.Prompt{{
		ID:             "p1",
		Title:          "标题",
		Content:        "内容",
		CategoryID:     "0",
		Tags:           []string{"甲", "乙"},
		UsageCount:     3,
		CurrentVersion: "1.0",
		CreatedAt:      now,
		UpdatedAt:      now,
	}}
	require.NoError(t, s.SavePrompts(ctx, in))

	out, err := s.LoadPrompts(ctx)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, []string{"甲", "乙"}, out[0].Tags)
	assert.Equal(t, int64(3), out[0].UsageCount)
}

func TestDBStoreVersionLedger(t *testing.T) {
	s := newTestDBStore(t)
	ctx := context.Background()
	now := time.Now()

	require.NoError(t, s.AppendVersion(ctx, &domain.PromptVersion{PromptID: "p1", Version: "1.0", Content: "一", CreatedAt: now}))
	require.NoError(t, s.AppendVersion(ctx, &domain.PromptVersion{PromptID: "p1", Version: "1.1", Content: "二", CreatedAt: now}))

	err := s.AppendVersion(ctx, &domain.PromptVersion{PromptID: "p1", Version: "1.0"})
	require.Error(t, err, "duplicate (prompt, version) must be rejected")

	versions, err := s.ListVersions(ctx, "p1")
	require.NoError(t, err)
	require.Len(t, versions, 2)
	assert.Equal(t, "1.0", versions[0].Version)

	got, err := s.GetVersion(ctx, "p1", "1.1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "二", got.Content)

	missing, err := s.GetVersion(ctx, "p1", "2.0")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestDBStoreSnapshotRestore(t *testing.T) {
	s := newTestDBStore(t)
	ctx := context.Background()
	now := time.Now()

	require.NoError(t, s.SaveCategories(ctx, domain.DefaultCategories(now)))
	require.NoError(t, s.SavePrompts(ctx, []*domain.Prompt{{ID: "p1", Title: "标题", CategoryID: "0", CreatedAt: now, UpdatedAt: now}}))
	require.NoError(t, s.AppendVersion(ctx, &domain.PromptVersion{PromptID: "p1", Version: "1.0", CreatedAt: now}))

	snap, err := s.TakeSnapshot(ctx)
	require.NoError(t, err)
	assert.Len(t, snap.Prompts, 1)
	assert.Len(t, snap.Versions, 1)
	assert.NotEmpty(t, snap.Categories)

	require.NoError(t, s.Restore(ctx, &domain.Snapshot{}))
	prompts, err := s.LoadPrompts(ctx)
	require.NoError(t, err)
	assert.Empty(t, prompts)

	require.NoError(t, s.Restore(ctx, snap))
	prompts, err = s.LoadPrompts(ctx)
	require.NoError(t, err)
	require.Len(t, prompts, 1)
	versions, err := s.ListVersions(ctx, "p1")
	require.NoError(t, err)
	assert.Len(t, versions, 1)
}
