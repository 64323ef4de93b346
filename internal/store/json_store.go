// Package store 实现基于 JSON 文件的实体存储
package store

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/prompthub/prompt-hub-service/internal/domain"

	"github.com/bytedance/sonic"
	"github.com/pkg/errors"
)

const (
	promptsFile    = "prompts.json"
	categoriesFile = "categories.json"
	tagsFile       = "tags.json"
	versionsFile   = "versions.json"
)

// JSONStore 以平铺 JSON 数组保存三个集合与版本账本，每个集合一个文件
// 保存通过写临时文件再重命名实现原子生效
type JSONStore struct {
	dataDir string
	mu      sync.RWMutex
}

// NewJSONStore 创建 JSONStore，数据目录不存在时自动创建
func NewJSONStore(dataDir string) (*JSONStore, error) {
	if err := os.MkdirAll(dataDir, 0754); err != nil {
		return nil, errors.Wrap(err, "create data dir failed")
	}
	return &JSONStore{dataDir: dataDir}, nil
}

// DataDir 返回数据目录
func (s *JSONStore) DataDir() string {
	return s.dataDir
}

type promptRecord struct {
	ID             string   `json:"id"`
	Title          string   `json:"title"`
	Content        string   `json:"content"`
	Description    string   `json:"description"`
	CategoryID     string   `json:"category_id"`
	CategoryName   string   `json:"category"`
	CategoryPath   string   `json:"category_path"`
	Tags           []string `json:"tags"`
	UsageCount     int64    `json:"usage_count"`
	CurrentVersion string   `json:"current_version"`
	CreatedAt      string   `json:"created_at"`
	UpdatedAt      string   `json:"updated_at"`
}

type categoryRecord struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Color       string `json:"color"`
	Description string `json:"description"`
	ParentID    string `json:"parent_id"`
	Level       int    `json:"level"`
	Path        string `json:"path"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

type tagRecord struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Color     string `json:"color"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

type versionRecord struct {
	PromptID    string `json:"prompt_id"`
	Version     string `json:"version"`
	Title       string `json:"title"`
	Content     string `json:"content"`
	Description string `json:"description"`
	ChangeNote  string `json:"change_note"`
	CreatedAt   string `json:"created_at"`
}

type promptsDocument struct {
	Prompts []*promptRecord `json:"prompts"`
}

type categoriesDocument struct {
	Categories []*categoryRecord `json:"categories"`
}

type tagsDocument struct {
	Tags []*tagRecord `json:"tags"`
}

type versionsDocument struct {
	Versions []*versionRecord `json:"versions"`
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339Nano)
}

func parseTime(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

func promptToRecord(p *domain.Prompt) *promptRecord {
	tags := p.Tags
	if tags == nil {
		tags = []string{}
	}
	return &promptRecord{
		ID:             p.ID,
		Title:          p.Title,
		Content:        p.Content,
		Description:    p.Description,
		CategoryID:     p.CategoryID,
		CategoryName:   p.CategoryName,
		CategoryPath:   p.CategoryPath,
		Tags:           tags,
		UsageCount:     p.UsageCount,
		CurrentVersion: p.CurrentVersion,
		CreatedAt:      formatTime(p.CreatedAt),
		UpdatedAt:      formatTime(p.UpdatedAt),
	}
}

func (r *promptRecord) toDomain() *domain.Prompt {
	tags := r.Tags
	if tags == nil {
		tags = []string{}
	}
	return &domain.Prompt{
		ID:             r.ID,
		Title:          r.Title,
		Content:        r.Content,
		Description:    r.Description,
		CategoryID:     r.CategoryID,
		CategoryName:   r.CategoryName,
		CategoryPath:   r.CategoryPath,
		Tags:           tags,
		UsageCount:     r.UsageCount,
		CurrentVersion: r.CurrentVersion,
		CreatedAt:      parseTime(r.CreatedAt),
		UpdatedAt:      parseTime(r.UpdatedAt),
	}
}

func categoryToRecord(c *domain.Category) *categoryRecord {
	return &categoryRecord{
		ID:          c.ID,
		Name:        c.Name,
		Color:       c.Color,
		Description: c.Description,
		ParentID:    c.ParentID,
		Level:       c.Level,
		Path:        c.Path,
		CreatedAt:   formatTime(c.CreatedAt),
		UpdatedAt:   formatTime(c.UpdatedAt),
	}
}

func (r *categoryRecord) toDomain() *domain.Category {
	return &domain.Category{
		ID:          r.ID,
		Name:        r.Name,
		Color:       r.Color,
		Description: r.Description,
		ParentID:    r.ParentID,
		Level:       r.Level,
		Path:        r.Path,
		CreatedAt:   parseTime(r.CreatedAt),
		UpdatedAt:   parseTime(r.UpdatedAt),
	}
}

func tagToRecord(t *domain.Tag) *tagRecord {
	return &tagRecord{
		ID:        t.ID,
		Name:      t.Name,
		Color:     t.Color,
		CreatedAt: formatTime(t.CreatedAt),
		UpdatedAt: formatTime(t.UpdatedAt),
	}
}

func (r *tagRecord) toDomain() *domain.Tag {
	return &domain.Tag{
		ID:        r.ID,
		Name:      r.Name,
		Color:     r.Color,
		CreatedAt: parseTime(r.CreatedAt),
		UpdatedAt: parseTime(r.UpdatedAt),
	}
}

func versionToRecord(v *domain.PromptVersion) *versionRecord {
	return &versionRecord{
		PromptID:    v.PromptID,
		Version:     v.Version,
		Title:       v.Title,
		Content:     v.Content,
		Description: v.Description,
		ChangeNote:  v.ChangeNote,
		CreatedAt:   formatTime(v.CreatedAt),
	}
}

func (r *versionRecord) toDomain() *domain.PromptVersion {
	return &domain.PromptVersion{
		PromptID:    r.PromptID,
		Version:     r.Version,
		Title:       r.Title,
		Content:     r.Content,
		Description: r.Description,
		ChangeNote:  r.ChangeNote,
		CreatedAt:   parseTime(r.CreatedAt),
	}
}

// loadFile 读取并反序列化一个集合文件
// 文件缺失或为空返回 false，调用方按空集合处理；解析失败原样上抛
func (s *JSONStore) loadFile(name string, out interface{}) (bool, error) {
	data, err := os.ReadFile(filepath.Join(s.dataDir, name))
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, errors.Wrapf(err, "read %s failed", name)
	}
	if len(data) == 0 {
		return false, nil
	}
	if err := sonic.Unmarshal(data, out); err != nil {
		return false, errors.Wrapf(err, "parse %s failed, refusing to treat corrupt data as empty store", name)
	}
	return true, nil
}

// saveFile 序列化后写入临时文件再重命名，保证并发读取方看不到半成品
func (s *JSONStore) saveFile(name string, doc interface{}) error {
	data, err := sonic.MarshalIndent(doc, "", "  ")
	if err != nil {
		return errors.Wrapf(err, "marshal %s failed", name)
	}

	target := filepath.Join(s.dataDir, name)
	tmp, err := os.CreateTemp(s.dataDir, name+".tmp-*")
	if err != nil {
		return errors.Wrapf(err, "create temp file for %s failed", name)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return errors.Wrapf(err, "write temp file for %s failed", name)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return errors.Wrapf(err, "sync temp file for %s failed", name)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return errors.Wrapf(err, "close temp file for %s failed", name)
	}
	if err := os.Rename(tmpName, target); err != nil {
		os.Remove(tmpName)
		return errors.Wrapf(err, "rename temp file for %s failed", name)
	}
	return nil
}

func (s *JSONStore) LoadPrompts(ctx context.Context) ([]*domain.Prompt, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var doc promptsDocument
	if _, err := s.loadFile(promptsFile, &doc); err != nil {
		return nil, err
	}
	prompts := make([]*domain.Prompt, 0, len(doc.Prompts))
	for _, r := range doc.Prompts {
		prompts = append(prompts, r.toDomain())
	}
	return prompts, nil
}

func (s *JSONStore) SavePrompts(ctx context.Context, prompts []*domain.Prompt) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc := promptsDocument{Prompts: make([]*promptRecord, 0, len(prompts))}
	for _, p := range prompts {
		doc.Prompts = append(doc.Prompts, promptToRecord(p))
	}
	return s.saveFile(promptsFile, &doc)
}

func (s *JSONStore) LoadCategories(ctx context.Context) ([]*domain.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var doc categoriesDocument
	if _, err := s.loadFile(categoriesFile, &doc); err != nil {
		return nil, err
	}
	categories := make([]*domain.Category, 0, len(doc.Categories))
	for _, r := range doc.Categories {
		categories = append(categories, r.toDomain())
	}
	return categories, nil
}

func (s *JSONStore) SaveCategories(ctx context.Context, categories []*domain.Category) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc := categoriesDocument{Categories: make([]*categoryRecord, 0, len(categories))}
	for _, c := range categories {
		doc.Categories = append(doc.Categories, categoryToRecord(c))
	}
	return s.saveFile(categoriesFile, &doc)
}

func (s *JSONStore) LoadTags(ctx context.Context) ([]*domain.Tag, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var doc tagsDocument
	if _, err := s.loadFile(tagsFile, &doc); err != nil {
		return nil, err
	}
	tags := make([]*domain.Tag, 0, len(doc.Tags))
	for _, r := range doc.Tags {
		tags = append(tags, r.toDomain())
	}
	return tags, nil
}

func (s *JSONStore) SaveTags(ctx context.Context, tags []*domain.Tag) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc := tagsDocument{Tags: make([]*tagRecord, 0, len(tags))}
	for _, t := range tags {
		doc.Tags = append(doc.Tags, tagToRecord(t))
	}
	return s.saveFile(tagsFile, &doc)
}

func (s *JSONStore) loadVersions() ([]*versionRecord, error) {
	var doc versionsDocument
	if _, err := s.loadFile(versionsFile, &doc); err != nil {
		return nil, err
	}
	return doc.Versions, nil
}

func (s *JSONStore) AppendVersion(ctx context.Context, v *domain.PromptVersion) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.loadVersions()
	if err != nil {
		return err
	}
	for _, r := range records {
		if r.PromptID == v.PromptID && r.Version == v.Version {
			return errors.Errorf("version %s already exists for prompt %s", v.Version, v.PromptID)
		}
	}
	records = append(records, versionToRecord(v))
	return s.saveFile(versionsFile, &versionsDocument{Versions: records})
}

func (s *JSONStore) ListVersions(ctx context.Context, promptID string) ([]*domain.PromptVersion, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	records, err := s.loadVersions()
	if err != nil {
		return nil, err
	}
	var versions []*domain.PromptVersion
	for _, r := range records {
		if r.PromptID == promptID {
			versions = append(versions, r.toDomain())
		}
	}
	return versions, nil
}

func (s *JSONStore) GetVersion(ctx context.Context, promptID, label string) (*domain.PromptVersion, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	records, err := s.loadVersions()
	if err != nil {
		return nil, err
	}
	for _, r := range records {
		if r.PromptID == promptID && r.Version == label {
			return r.toDomain(), nil
		}
	}
	return nil, nil
}

func (s *JSONStore) TakeSnapshot(ctx context.Context) (*domain.Snapshot, error) {
	prompts, err := s.LoadPrompts(ctx)
	if err != nil {
		return nil, err
	}
	categories, err := s.LoadCategories(ctx)
	if err != nil {
		return nil, err
	}
	tags, err := s.LoadTags(ctx)
	if err != nil {
		return nil, err
	}

	s.mu.RLock()
	records, err := s.loadVersions()
	s.mu.RUnlock()
	if err != nil {
		return nil, err
	}
	var versions []*domain.PromptVersion
	for _, r := range records {
		versions = append(versions, r.toDomain())
	}

	return &domain.Snapshot{
		Prompts:    prompts,
		Categories: categories,
		Tags:       tags,
		Versions:   versions,
		CreatedAt:  time.Now(),
	}, nil
}

func (s *JSONStore) Restore(ctx context.Context, snap *domain.Snapshot) error {
	if err := s.SaveCategories(ctx, snap.Categories); err != nil {
		return err
	}
	if err := s.SaveTags(ctx, snap.Tags); err != nil {
		return err
	}
	if err := s.SavePrompts(ctx, snap.Prompts); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	doc := versionsDocument{Versions: make([]*versionRecord, 0, len(snap.Versions))}
	for _, v := range snap.Versions {
		doc.Versions = append(doc.Versions, versionToRecord(v))
	}
	return s.saveFile(versionsFile, &doc)
}

// 确保 JSONStore 实现了 domain.Store 接口
var _ domain.Store = (*JSONStore)(nil)
