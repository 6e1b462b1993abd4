package editor

import (
	"sync"
	"time"

	"github.com/xiaohu31/ai-resume-architect/internal/resume"
)

// Store 是文档状态容器：持有在编辑的 Document、撤销/重做历史
// 与当前选中模块。所有结构化变更都经过它串行执行，
// 互斥锁在这里扮演浏览器单线程事件循环的角色——
// 任意时刻只有一个变更在进行，历史操作与变更之间不存在竞态。
//
// 变更产生的每个 Document 都是不可变值，订阅方与历史栈可以
// 长期持有引用而无需担心被原地修改。
type Store struct {
	mu            sync.Mutex
	doc           *resume.Document
	hist          *history
	activeBlockID string

	subMu   sync.Mutex
	subs    map[int]chan *resume.Document
	nextSub int
}

// NewStore 用给定文档构造状态容器。historyDepth <= 0 时使用默认深度。
func NewStore(doc *resume.Document, historyDepth int) *Store {
	s := &Store{
		doc:  doc,
		hist: newHistory(historyDepth),
		subs: make(map[int]chan *resume.Document),
	}
	if idx := doc.PersonalBlock(); idx >= 0 {
		s.activeBlockID = doc.Blocks[idx].ID
	}
	return s
}

// Document 返回当前在编辑的文档快照。调用方只读，不得修改。
func (s *Store) Document() *resume.Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doc
}

// apply 完成一次状态迁移：真实变更才进历史、才刷新 updatedAt、
// 才通知订阅方。no-op（未知 ID、原值写入、自我重排）不留任何痕迹，
// 这样连点的 UI 事件不会稀释撤销粒度。
func (s *Store) apply(next *resume.Document, changed bool, stamp bool) *resume.Document {
	if !changed {
		return s.doc
	}
	if stamp {
		stamped := *next
		stamped.UpdatedAt = time.Now().UnixMilli()
		next = &stamped
	}
	s.hist.record(s.doc)
	s.doc = next
	s.publish(next)
	return next
}

// SetTitle 替换简历标题。
func (s *Store) SetTitle(title string) *resume.Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	next, changed := setTitle(s.doc, title)
	return s.apply(next, changed, true)
}

// UpdateSettings 把补丁浅合并进 Settings，nil 字段保持原值。
func (s *Store) UpdateSettings(patch resume.SettingsPatch) *resume.Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	next, changed := mergeSettings(s.doc, patch)
	return s.apply(next, changed, true)
}

// AddBlock 追加一个自定义模块，附带一条空条目。
func (s *Store) AddBlock(title string) *resume.Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	next, changed := addBlock(s.doc, title)
	return s.apply(next, changed, true)
}

// RemoveBlock 按 ID 删除模块。personal 模块与未知 ID 都是 no-op。
// 被删除的模块若是当前选中模块，选中状态同时清空。
func (s *Store) RemoveBlock(blockID string) *resume.Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	next, changed := removeBlock(s.doc, blockID)
	doc := s.apply(next, changed, true)
	if changed && s.activeBlockID == blockID {
		s.activeBlockID = ""
	}
	return doc
}

// RenameBlock 修改模块标题。
func (s *Store) RenameBlock(blockID, title string) *resume.Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	next, changed := renameBlock(s.doc, blockID, title)
	return s.apply(next, changed, true)
}

// ToggleBlockVisible 切换模块在预览/导出中的可见性。
func (s *Store) ToggleBlockVisible(blockID string) *resume.Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	next, changed := toggleBlockVisible(s.doc, blockID)
	return s.apply(next, changed, true)
}

// ReorderBlocks 把 activeID 模块移动到 overID 模块当前所在的位置，
// 其余模块顺移，Order 重编号为 0..n-1。
func (s *Store) ReorderBlocks(activeID, overID string) *resume.Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	next, changed := reorderBlocks(s.doc, activeID, overID)
	return s.apply(next, changed, true)
}

// AddItem 向模块追加一条展开的空条目。
func (s *Store) AddItem(blockID string) *resume.Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	next, changed := addItem(s.doc, blockID)
	return s.apply(next, changed, true)
}

// RemoveItem 删除模块内指定条目。
func (s *Store) RemoveItem(blockID, itemID string) *resume.Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	next, changed := removeItem(s.doc, blockID, itemID)
	return s.apply(next, changed, true)
}

// SetItemField 设置条目的单个字段，键不存在时创建。
// 兄弟字段与兄弟条目全部保持原引用。
func (s *Store) SetItemField(blockID, itemID, field, value string) *resume.Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	next, changed := setItemField(s.doc, blockID, itemID, field, value)
	return s.apply(next, changed, true)
}

// ToggleItemExpanded 翻转条目的展开状态。
func (s *Store) ToggleItemExpanded(blockID, itemID string) *resume.Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	next, changed := toggleItemExpanded(s.doc, blockID, itemID)
	return s.apply(next, changed, true)
}

// ReorderItems 在单个模块内部执行与 ReorderBlocks 相同的移动语义。
func (s *Store) ReorderItems(blockID, activeID, overID string) *resume.Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	next, changed := reorderItems(s.doc, blockID, activeID, overID)
	return s.apply(next, changed, true)
}

// ReplaceDocument 整体替换在编辑的文档，版本恢复走这里。
// 结构约束由调用方负责；传入文档会被深拷贝，避免外部别名。
// 替换不刷新 updatedAt，恢复出的版本应与保存时逐字节一致。
func (s *Store) ReplaceDocument(doc *resume.Document) *resume.Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.apply(doc.Clone(), true, false)
}

// Undo 回退到上一个状态，past 为空时是 no-op。
func (s *Store) Undo() *resume.Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	prev, ok := s.hist.undo(s.doc)
	if !ok {
		return s.doc
	}
	s.doc = prev
	s.publish(prev)
	return prev
}

// Redo 前进到下一个被撤销的状态，future 为空时是 no-op。
func (s *Store) Redo() *resume.Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	next, ok := s.hist.redo(s.doc)
	if !ok {
		return s.doc
	}
	s.doc = next
	s.publish(next)
	return next
}

// HistoryState 返回当前可撤销/可重做的深度，供工具栏置灰按钮。
func (s *Store) HistoryState() (past, future int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.hist.past), len(s.hist.future)
}

// ActiveBlockID 返回当前选中的模块 ID，空串表示未选中。
func (s *Store) ActiveBlockID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.activeBlockID
}

// SetActiveBlock 设置当前选中模块。选中状态不进入撤销历史。
func (s *Store) SetActiveBlock(blockID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.activeBlockID = blockID
}

// Subscribe 注册一个文档变更订阅。通道容量为 1 且只保留最新快照，
// 慢消费方不会阻塞变更路径。返回的函数用于退订。
func (s *Store) Subscribe() (<-chan *resume.Document, func()) {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	id := s.nextSub
	s.nextSub++
	ch := make(chan *resume.Document, 1)
	s.subs[id] = ch
	cancel := func() {
		s.subMu.Lock()
		defer s.subMu.Unlock()
		if _, ok := s.subs[id]; ok {
			delete(s.subs, id)
			close(ch)
		}
	}
	return ch, cancel
}

func (s *Store) publish(doc *resume.Document) {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	for _, ch := range s.subs {
		select {
		case ch <- doc:
		default:
			// 丢弃积压的旧快照，换入最新的。
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- doc:
			default:
			}
		}
	}
}
