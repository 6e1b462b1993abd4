package editor

import "github.com/xiaohu31/ai-resume-architect/internal/resume"

// DefaultHistoryDepth 是 past 栈的默认容量。
const DefaultHistoryDepth = 50

// history 维护撤销/重做两个有界快照栈。当前状态由 Store 持有，
// 不属于任何一个栈。栈内的快照都是写时复制产生的独立值，
// 永远不会被后续变更原地修改。
type history struct {
	past   []*resume.Document
	future []*resume.Document
	limit  int
}

func newHistory(limit int) *history {
	if limit <= 0 {
		limit = DefaultHistoryDepth
	}
	return &history{limit: limit}
}

// record 在一次真实变更后记录变更前的状态，并清空 future。
// 超出容量时淘汰最旧的快照。
func (h *history) record(prev *resume.Document) {
	h.past = append(h.past, prev)
	if len(h.past) > h.limit {
		h.past = h.past[len(h.past)-h.limit:]
	}
	h.future = h.future[:0]
}

// undo 弹出 past 栈顶，当前状态转入 future。past 为空时返回 false。
func (h *history) undo(current *resume.Document) (*resume.Document, bool) {
	if len(h.past) == 0 {
		return current, false
	}
	top := h.past[len(h.past)-1]
	h.past = h.past[:len(h.past)-1]
	h.future = append(h.future, current)
	return top, true
}

// redo 弹出 future 栈顶，当前状态转回 past。future 为空时返回 false。
func (h *history) redo(current *resume.Document) (*resume.Document, bool) {
	if len(h.future) == 0 {
		return current, false
	}
	top := h.future[len(h.future)-1]
	h.future = h.future[:len(h.future)-1]
	h.past = append(h.past, current)
	return top, true
}
