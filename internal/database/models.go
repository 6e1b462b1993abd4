package database

import (
	"time"

	"gorm.io/datatypes"
)

// liveSlotKey 是在编辑文档的固定存储键：单槽位，后写覆盖。
const liveSlotKey = "live"

// DocumentRecord 持久化在编辑的文档。整个进程只有一行（Key 固定），
// 每次变更都会覆盖写入。ActiveBlockID 随文档一起落盘，
// 但不属于撤销历史。
type DocumentRecord struct {
	Key           string         `gorm:"primaryKey;size:32"`
	Content       datatypes.JSON `gorm:"type:json"`
	ActiveBlockID string         `gorm:"size:64"`
	UpdatedAt     time.Time
}

// VersionRecord 持久化一个命名版本快照。索引组合与前端旧版
// IndexedDB 表 (id, resumeId, name, createdAt) 保持一致。
type VersionRecord struct {
	ID        string         `gorm:"primaryKey;size:36"`
	ResumeID  string         `gorm:"index;size:36"`
	Name      string         `gorm:"size:255"`
	Data      datatypes.JSON `gorm:"type:json"`
	CreatedAt time.Time      `gorm:"index"`
}
