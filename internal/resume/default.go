package resume

import (
	"time"

	"github.com/google/uuid"
)

// PersonalBlockID 是 personal 模块的固定 ID，前端依赖它做初始选中。
const PersonalBlockID = "personal-block"

const defaultTitle = "我的简历 2025"

// DefaultSettings 返回新文档的初始展示与 AI 配置。
func DefaultSettings() Settings {
	return Settings{
		FontSize:    14,
		LineHeight:  1.5,
		PagePadding: 40,
		TemplateID:  "classic",
		Provider:    "gemini",
		ModelName:   "gemini-2.0-flash",
	}
}

// DefaultDocument 构造一份空白简历：五个预置模块，其中 personal
// 模块带一条空条目。除生成的 ID 与时间戳外结果是确定的。
func DefaultDocument() *Document {
	now := time.Now().UnixMilli()
	return &Document{
		ID:    uuid.NewString(),
		Title: defaultTitle,
		Blocks: []Block{
			{
				ID:      PersonalBlockID,
				Type:    BlockPersonal,
				Title:   "个人信息",
				Order:   0,
				Visible: true,
				Items: []Item{
					{
						ID: uuid.NewString(),
						Fields: map[string]string{
							"name":   "",
							"phone":  "",
							"email":  "",
							"target": "",
							"city":   "",
						},
						IsExpanded: true,
					},
				},
			},
			{
				ID:      uuid.NewString(),
				Type:    BlockWork,
				Title:   "工作经历",
				Order:   1,
				Visible: true,
				Items:   []Item{},
			},
			{
				ID:      uuid.NewString(),
				Type:    BlockProject,
				Title:   "项目经历",
				Order:   2,
				Visible: true,
				Items:   []Item{},
			},
			{
				ID:      uuid.NewString(),
				Type:    BlockEducation,
				Title:   "教育经历",
				Order:   3,
				Visible: true,
				Items:   []Item{},
			},
			{
				ID:      uuid.NewString(),
				Type:    BlockSkills,
				Title:   "专业技能",
				Order:   4,
				Visible: true,
				Items: []Item{
					{
						ID:         uuid.NewString(),
						Fields:     map[string]string{"content": ""},
						IsExpanded: true,
					},
				},
			},
		},
		Settings:  DefaultSettings(),
		CreatedAt: now,
		UpdatedAt: now,
	}
}
