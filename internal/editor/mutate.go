package editor

import (
	"github.com/google/uuid"

	"github.com/xiaohu31/ai-resume-architect/internal/resume"
)

// 本文件实现结构化变更的纯函数部分：每个函数接收当前文档，
// 返回新文档和"是否发生变化"。输入文档从不被原地修改，
// 只复制从根到被改节点的路径，兄弟节点保持引用共享，
// 这样历史栈里保留的旧快照始终安全。
// 引用了不存在 ID 的操作一律静默返回原文档（UI 竞态不是错误）。

// cloneBlocksPath 浅拷贝文档与 Blocks 切片，模块本身仍共享。
func cloneBlocksPath(d *resume.Document) *resume.Document {
	next := *d
	next.Blocks = append([]resume.Block(nil), d.Blocks...)
	return &next
}

// cloneItemsPath 在 cloneBlocksPath 的基础上再复制指定模块的 Items 切片。
func cloneItemsPath(d *resume.Document, blockIdx int) *resume.Document {
	next := cloneBlocksPath(d)
	b := next.Blocks[blockIdx]
	b.Items = append([]resume.Item(nil), b.Items...)
	next.Blocks[blockIdx] = b
	return next
}

func setTitle(d *resume.Document, title string) (*resume.Document, bool) {
	if d.Title == title {
		return d, false
	}
	next := *d
	next.Title = title
	return &next, true
}

func mergeSettings(d *resume.Document, patch resume.SettingsPatch) (*resume.Document, bool) {
	merged := d.Settings
	if patch.FontSize != nil {
		merged.FontSize = *patch.FontSize
	}
	if patch.LineHeight != nil {
		merged.LineHeight = *patch.LineHeight
	}
	if patch.PagePadding != nil {
		merged.PagePadding = *patch.PagePadding
	}
	if patch.TemplateID != nil {
		merged.TemplateID = *patch.TemplateID
	}
	if patch.Provider != nil {
		merged.Provider = *patch.Provider
	}
	if patch.ModelName != nil {
		merged.ModelName = *patch.ModelName
	}
	if patch.APIKey != nil {
		merged.APIKey = *patch.APIKey
	}
	if patch.APIEndpoint != nil {
		merged.APIEndpoint = *patch.APIEndpoint
	}
	if merged == d.Settings {
		return d, false
	}
	next := *d
	next.Settings = merged
	return &next, true
}

func addBlock(d *resume.Document, title string) (*resume.Document, bool) {
	next := cloneBlocksPath(d)
	next.Blocks = append(next.Blocks, resume.Block{
		ID:      uuid.NewString(),
		Type:    resume.BlockCustom,
		Title:   title,
		Order:   len(d.Blocks),
		Visible: true,
		Items: []resume.Item{
			{
				ID:         uuid.NewString(),
				Fields:     map[string]string{"content": ""},
				IsExpanded: true,
			},
		},
	})
	return next, true
}

func removeBlock(d *resume.Document, blockID string) (*resume.Document, bool) {
	idx := d.FindBlock(blockID)
	if idx < 0 || d.Blocks[idx].Type == resume.BlockPersonal {
		return d, false
	}
	next := *d
	next.Blocks = make([]resume.Block, 0, len(d.Blocks)-1)
	next.Blocks = append(next.Blocks, d.Blocks[:idx]...)
	next.Blocks = append(next.Blocks, d.Blocks[idx+1:]...)
	renumberBlocks(next.Blocks)
	return &next, true
}

func renameBlock(d *resume.Document, blockID, title string) (*resume.Document, bool) {
	idx := d.FindBlock(blockID)
	if idx < 0 || d.Blocks[idx].Title == title {
		return d, false
	}
	next := cloneBlocksPath(d)
	next.Blocks[idx].Title = title
	return next, true
}

func toggleBlockVisible(d *resume.Document, blockID string) (*resume.Document, bool) {
	idx := d.FindBlock(blockID)
	if idx < 0 {
		return d, false
	}
	next := cloneBlocksPath(d)
	next.Blocks[idx].Visible = !next.Blocks[idx].Visible
	return next, true
}

func reorderBlocks(d *resume.Document, activeID, overID string) (*resume.Document, bool) {
	if activeID == overID {
		return d, false
	}
	from := d.FindBlock(activeID)
	to := d.FindBlock(overID)
	if from < 0 || to < 0 {
		return d, false
	}
	next := cloneBlocksPath(d)
	moved := next.Blocks[from]
	next.Blocks = append(next.Blocks[:from], next.Blocks[from+1:]...)
	rest := append(next.Blocks[:to:to], append([]resume.Block{moved}, next.Blocks[to:]...)...)
	next.Blocks = rest
	renumberBlocks(next.Blocks)
	return next, true
}

func addItem(d *resume.Document, blockID string) (*resume.Document, bool) {
	idx := d.FindBlock(blockID)
	if idx < 0 {
		return d, false
	}
	next := cloneItemsPath(d, idx)
	next.Blocks[idx].Items = append(next.Blocks[idx].Items, resume.Item{
		ID:         uuid.NewString(),
		Fields:     map[string]string{},
		IsExpanded: true,
	})
	return next, true
}

func removeItem(d *resume.Document, blockID, itemID string) (*resume.Document, bool) {
	bi := d.FindBlock(blockID)
	if bi < 0 {
		return d, false
	}
	ii := d.Blocks[bi].FindItem(itemID)
	if ii < 0 {
		return d, false
	}
	next := cloneBlocksPath(d)
	b := next.Blocks[bi]
	items := make([]resume.Item, 0, len(b.Items)-1)
	items = append(items, b.Items[:ii]...)
	items = append(items, b.Items[ii+1:]...)
	b.Items = items
	next.Blocks[bi] = b
	return next, true
}

func setItemField(d *resume.Document, blockID, itemID, field, value string) (*resume.Document, bool) {
	bi := d.FindBlock(blockID)
	if bi < 0 {
		return d, false
	}
	ii := d.Blocks[bi].FindItem(itemID)
	if ii < 0 {
		return d, false
	}
	// 缺失键等价于空串，写入相同值不算变更。
	if d.Blocks[bi].Items[ii].Fields[field] == value {
		return d, false
	}
	next := cloneItemsPath(d, bi)
	item := next.Blocks[bi].Items[ii]
	fields := make(map[string]string, len(item.Fields)+1)
	for k, v := range item.Fields {
		fields[k] = v
	}
	fields[field] = value
	item.Fields = fields
	next.Blocks[bi].Items[ii] = item
	return next, true
}

func toggleItemExpanded(d *resume.Document, blockID, itemID string) (*resume.Document, bool) {
	bi := d.FindBlock(blockID)
	if bi < 0 {
		return d, false
	}
	ii := d.Blocks[bi].FindItem(itemID)
	if ii < 0 {
		return d, false
	}
	next := cloneItemsPath(d, bi)
	next.Blocks[bi].Items[ii].IsExpanded = !next.Blocks[bi].Items[ii].IsExpanded
	return next, true
}

func reorderItems(d *resume.Document, blockID, activeID, overID string) (*resume.Document, bool) {
	if activeID == overID {
		return d, false
	}
	bi := d.FindBlock(blockID)
	if bi < 0 {
		return d, false
	}
	from := d.Blocks[bi].FindItem(activeID)
	to := d.Blocks[bi].FindItem(overID)
	if from < 0 || to < 0 {
		return d, false
	}
	next := cloneItemsPath(d, bi)
	items := next.Blocks[bi].Items
	moved := items[from]
	items = append(items[:from], items[from+1:]...)
	items = append(items[:to:to], append([]resume.Item{moved}, items[to:]...)...)
	next.Blocks[bi].Items = items
	return next, true
}

// renumberBlocks 把 Order 重编号为数组下标，保证单调无空洞。
func renumberBlocks(blocks []resume.Block) {
	for i := range blocks {
		blocks[i].Order = i
	}
}
