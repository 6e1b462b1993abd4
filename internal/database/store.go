package database

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/xiaohu31/ai-resume-architect/internal/resume"
)

// ErrVersionNotFound 表示按 ID 找不到版本快照。
var ErrVersionNotFound = errors.New("version not found")

// ErrVersionCorrupt 表示存储的快照数据未通过形状校验，
// 恢复操作必须失败而不是把残缺结构替换进编辑器。
var ErrVersionCorrupt = errors.New("version data corrupt")

// Store 是持久化适配层：单槽位的在编辑文档 + 多行版本表。
// 落盘失败不影响内存状态，内存中的文档始终是会话内的权威数据。
type Store struct {
	db *gorm.DB
}

// NewStore 构造持久化适配层。
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// SaveLive 覆盖写入在编辑文档与当前选中模块。
func (s *Store) SaveLive(ctx context.Context, doc *resume.Document, activeBlockID string) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal document: %w", err)
	}

	record := DocumentRecord{
		Key:           liveSlotKey,
		Content:       data,
		ActiveBlockID: activeBlockID,
	}
	if err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"content", "active_block_id", "updated_at"}),
		}).
		Create(&record).Error; err != nil {
		return fmt.Errorf("save live document: %w", err)
	}
	return nil
}

// LoadLive 读取在编辑文档；没有存档或存档损坏时回落到默认文档。
func (s *Store) LoadLive(ctx context.Context) (*resume.Document, string, error) {
	var record DocumentRecord
	err := s.db.WithContext(ctx).First(&record, "key = ?", liveSlotKey).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return resume.DefaultDocument(), "", nil
	case err != nil:
		return nil, "", fmt.Errorf("load live document: %w", err)
	}

	var doc resume.Document
	if err := json.Unmarshal(record.Content, &doc); err != nil {
		return nil, "", fmt.Errorf("decode live document: %w", err)
	}
	if err := doc.Validate(); err != nil {
		// 存档损坏时不让进程崩溃，换一份干净的默认文档。
		return resume.DefaultDocument(), "", nil
	}
	return &doc, record.ActiveBlockID, nil
}

// SaveVersion 深拷贝当前文档存为命名版本并返回版本元数据。
func (s *Store) SaveVersion(ctx context.Context, name string, doc *resume.Document) (*resume.Version, error) {
	snapshot := doc.Clone()
	data, err := json.Marshal(snapshot)
	if err != nil {
		return nil, fmt.Errorf("marshal snapshot: %w", err)
	}

	record := VersionRecord{
		ID:        uuid.NewString(),
		ResumeID:  snapshot.ID,
		Name:      name,
		Data:      data,
		CreatedAt: time.Now(),
	}
	if err := s.db.WithContext(ctx).Create(&record).Error; err != nil {
		return nil, fmt.Errorf("save version: %w", err)
	}

	return &resume.Version{
		ID:        record.ID,
		ResumeID:  record.ResumeID,
		Name:      record.Name,
		Data:      *snapshot,
		CreatedAt: record.CreatedAt.UnixMilli(),
	}, nil
}

// ListVersions 按创建时间倒序列出某份简历的全部版本。
func (s *Store) ListVersions(ctx context.Context, resumeID string) ([]resume.Version, error) {
	var records []VersionRecord
	if err := s.db.WithContext(ctx).
		Where("resume_id = ?", resumeID).
		Order("created_at DESC").
		Find(&records).Error; err != nil {
		return nil, fmt.Errorf("list versions: %w", err)
	}

	versions := make([]resume.Version, 0, len(records))
	for _, r := range records {
		var doc resume.Document
		if err := json.Unmarshal(r.Data, &doc); err != nil {
			// 跳过坏行，列表操作不因单条损坏而失败。
			continue
		}
		versions = append(versions, resume.Version{
			ID:        r.ID,
			ResumeID:  r.ResumeID,
			Name:      r.Name,
			Data:      doc,
			CreatedAt: r.CreatedAt.UnixMilli(),
		})
	}
	return versions, nil
}

// DeleteVersion 按 ID 删除版本，不存在时是 no-op。
// 删除版本永远不影响在编辑的文档。
func (s *Store) DeleteVersion(ctx context.Context, id string) error {
	if err := s.db.WithContext(ctx).Delete(&VersionRecord{}, "id = ?", id).Error; err != nil {
		return fmt.Errorf("delete version: %w", err)
	}
	return nil
}

// RestoreVersion 取出存储的快照深拷贝。调用方随后用 ReplaceDocument
// 替换在编辑文档；返回的拷贝与存储行互不别名，
// 后续编辑不会写穿回版本表。
func (s *Store) RestoreVersion(ctx context.Context, id string) (*resume.Document, error) {
	var record VersionRecord
	err := s.db.WithContext(ctx).First(&record, "id = ?", id).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, ErrVersionNotFound
	case err != nil:
		return nil, fmt.Errorf("load version: %w", err)
	}

	var doc resume.Document
	if err := json.Unmarshal(record.Data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrVersionCorrupt, err)
	}
	if err := doc.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrVersionCorrupt, err)
	}
	return &doc, nil
}
