package resume

import (
	"errors"
	"fmt"
)

// Clone 返回文档的完整深拷贝，任何嵌套切片与字段表都不共享。
// 版本保存与恢复都必须经过它，确保快照与在编辑的文档互不影响。
func (d *Document) Clone() *Document {
	if d == nil {
		return nil
	}
	out := *d
	out.Blocks = make([]Block, len(d.Blocks))
	for i := range d.Blocks {
		out.Blocks[i] = d.Blocks[i].Clone()
	}
	return &out
}

// Clone 返回模块的深拷贝。
func (b Block) Clone() Block {
	out := b
	out.Items = make([]Item, len(b.Items))
	for i := range b.Items {
		out.Items[i] = b.Items[i].Clone()
	}
	return out
}

// Clone 返回条目的深拷贝。
func (i Item) Clone() Item {
	out := i
	out.Fields = make(map[string]string, len(i.Fields))
	for k, v := range i.Fields {
		out.Fields[k] = v
	}
	return out
}

var validBlockTypes = map[BlockType]struct{}{
	BlockPersonal:    {},
	BlockWork:        {},
	BlockProject:     {},
	BlockEducation:   {},
	BlockSkills:      {},
	BlockCertificate: {},
	BlockCustom:      {},
}

// Validate 做基本形状校验：ID 非空、模块类型合法、模块/条目 ID
// 在其集合内唯一、恰好存在一个 personal 模块。
// 版本恢复前必须通过校验，避免把残缺数据替换进编辑器。
func (d *Document) Validate() error {
	if d == nil {
		return errors.New("document is nil")
	}
	if d.ID == "" {
		return errors.New("document id is empty")
	}

	personalCount := 0
	blockIDs := make(map[string]struct{}, len(d.Blocks))
	for i := range d.Blocks {
		b := &d.Blocks[i]
		if b.ID == "" {
			return fmt.Errorf("block %d: id is empty", i)
		}
		if _, dup := blockIDs[b.ID]; dup {
			return fmt.Errorf("block %d: duplicate id %q", i, b.ID)
		}
		blockIDs[b.ID] = struct{}{}

		if _, ok := validBlockTypes[b.Type]; !ok {
			return fmt.Errorf("block %q: unknown type %q", b.ID, b.Type)
		}
		if b.Type == BlockPersonal {
			personalCount++
		}

		itemIDs := make(map[string]struct{}, len(b.Items))
		for j := range b.Items {
			item := &b.Items[j]
			if item.ID == "" {
				return fmt.Errorf("block %q: item %d id is empty", b.ID, j)
			}
			if _, dup := itemIDs[item.ID]; dup {
				return fmt.Errorf("block %q: duplicate item id %q", b.ID, item.ID)
			}
			itemIDs[item.ID] = struct{}{}
		}
	}

	if personalCount != 1 {
		return fmt.Errorf("expected exactly one personal block, got %d", personalCount)
	}
	return nil
}
