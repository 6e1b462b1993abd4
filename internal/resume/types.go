package resume

// BlockType 标识简历模块的类别。personal 模块全局唯一且不可删除。
type BlockType string

const (
	BlockPersonal    BlockType = "personal"
	BlockWork        BlockType = "work"
	BlockProject     BlockType = "project"
	BlockEducation   BlockType = "education"
	BlockSkills      BlockType = "skills"
	BlockCertificate BlockType = "certificate"
	BlockCustom      BlockType = "custom"
)

// Document 表示一份完整的简历内容，是编辑器的内存主模型。
// Blocks 数组顺序即展示与导出顺序。
type Document struct {
	ID        string   `json:"id"`
	Title     string   `json:"title"`
	Blocks    []Block  `json:"blocks"`
	Settings  Settings `json:"settings"`
	CreatedAt int64    `json:"createdAt"`
	UpdatedAt int64    `json:"updatedAt"`
}

// Block 表示简历中的一个模块（如工作经历）。
// Order 在任何重排操作之后都会被重新编号为数组下标。
type Block struct {
	ID      string    `json:"id"`
	Type    BlockType `json:"type"`
	Title   string    `json:"title"`
	Order   int       `json:"order"`
	Visible bool      `json:"visible"`
	Items   []Item    `json:"items"`
}

// Item 表示模块内的一条可重复条目，字段键由 UI 层约定。
// 缺失的键等价于空字符串。
type Item struct {
	ID         string            `json:"id"`
	Fields     map[string]string `json:"fields"`
	IsExpanded bool              `json:"isExpanded"`
}

// Settings 是展示与 AI 相关的扁平配置，仅做浅合并，不参与结构约束。
type Settings struct {
	FontSize    int     `json:"fontSize"`
	LineHeight  float64 `json:"lineHeight"`
	PagePadding int     `json:"pagePadding"`
	TemplateID  string  `json:"templateId"`
	Provider    string  `json:"provider"`
	ModelName   string  `json:"modelName"`
	APIKey      string  `json:"apiKey,omitempty"`
	APIEndpoint string  `json:"apiEndpoint,omitempty"`
}

// SettingsPatch 表示 Settings 的部分更新，nil 字段保持原值。
type SettingsPatch struct {
	FontSize    *int     `json:"fontSize"`
	LineHeight  *float64 `json:"lineHeight"`
	PagePadding *int     `json:"pagePadding"`
	TemplateID  *string  `json:"templateId"`
	Provider    *string  `json:"provider"`
	ModelName   *string  `json:"modelName"`
	APIKey      *string  `json:"apiKey"`
	APIEndpoint *string  `json:"apiEndpoint"`
}

// Version 是某一时刻简历的命名快照。Data 永远是深拷贝，
// 与正在编辑的 Document 互不共享。
type Version struct {
	ID        string   `json:"id"`
	ResumeID  string   `json:"resumeId"`
	Name      string   `json:"name"`
	Data      Document `json:"data"`
	CreatedAt int64    `json:"createdAt"`
}

// DiagnosisReport 是 AI 诊断协作方返回的结构化评估结果。
type DiagnosisReport struct {
	Scores     DiagnosisScores  `json:"scores"`
	TotalScore int              `json:"totalScore"`
	Level      string           `json:"level"`
	Issues     []DiagnosisIssue `json:"issues"`
}

// DiagnosisScores 各维度 0-100 评分。
type DiagnosisScores struct {
	Completeness   int `json:"completeness"`
	StarCompliance int `json:"starCompliance"`
	Quantification int `json:"quantification"`
	Expression     int `json:"expression"`
}

// DiagnosisIssue 描述一个待改进点。BlockID/ItemID/Field 可选，
// 只有能在当前文档中解析成功时“应用建议”才可用。
type DiagnosisIssue struct {
	Module     string `json:"module"`
	BlockID    string `json:"blockId,omitempty"`
	ItemID     string `json:"itemId,omitempty"`
	Field      string `json:"field,omitempty"`
	Severity   string `json:"severity"`
	Issue      string `json:"issue"`
	Suggestion string `json:"suggestion"`
}

// FieldValue 返回条目字段值，缺失键视为空字符串。
func (i Item) FieldValue(key string) string {
	return i.Fields[key]
}

// FindBlock 按 ID 查找模块下标，未找到时返回 -1。
func (d *Document) FindBlock(blockID string) int {
	for i := range d.Blocks {
		if d.Blocks[i].ID == blockID {
			return i
		}
	}
	return -1
}

// FindItem 按 ID 查找模块内条目下标，未找到时返回 -1。
func (b *Block) FindItem(itemID string) int {
	for i := range b.Items {
		if b.Items[i].ID == itemID {
			return i
		}
	}
	return -1
}

// PersonalBlock 返回 personal 模块的下标，正常情况下必然存在。
func (d *Document) PersonalBlock() int {
	for i := range d.Blocks {
		if d.Blocks[i].Type == BlockPersonal {
			return i
		}
	}
	return -1
}
