package ai

import "github.com/xiaohu31/ai-resume-architect/internal/resume"

// IssueTarget 是诊断问题在当前文档中解析出的落点。
type IssueTarget struct {
	BlockID string
	ItemID  string
	Field   string
}

// ResolveIssueTarget 把诊断问题的 (blockId, itemId, field) 三元组
// 映射到当前文档。诊断是异步的，返回时文档可能已被编辑过，
// 任何一级解析失败都返回 false，UI 据此降级为"无法自动定位，请手动修改"。
func ResolveIssueTarget(doc *resume.Document, issue resume.DiagnosisIssue) (IssueTarget, bool) {
	if issue.BlockID == "" || issue.ItemID == "" || issue.Field == "" {
		return IssueTarget{}, false
	}

	bi := doc.FindBlock(issue.BlockID)
	if bi < 0 {
		return IssueTarget{}, false
	}
	block := &doc.Blocks[bi]

	ii := block.FindItem(issue.ItemID)
	if ii < 0 {
		return IssueTarget{}, false
	}
	if _, ok := block.Items[ii].Fields[issue.Field]; !ok {
		return IssueTarget{}, false
	}

	return IssueTarget{
		BlockID: issue.BlockID,
		ItemID:  issue.ItemID,
		Field:   issue.Field,
	}, true
}
