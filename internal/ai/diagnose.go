package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xiaohu31/ai-resume-architect/internal/resume"
)

const diagnosePromptTemplate = `你是一位资深 HR 和简历专家。请从以下维度诊断这份简历，并返回 JSON 格式的评估结果：

评分维度（每项 0-100 分）：
1. completeness（完整性）：信息是否完整
2. starCompliance（STAR法则）：是否遵循情境-任务-行动-结果结构
3. quantification（量化指标）：是否有具体数据支撑
4. expression（表达质量）：语言是否专业简洁

同时识别出需要改进的问题点，每个问题包含：
- module：所属模块名称
- blockId：模块 ID（必须返回）
- itemId：项目 ID（如果针对特定项目项，必须返回）
- field：具体字段（如 content, performance, name 等）
- severity："warning" 或 "info"
- issue：问题描述
- suggestion：改进建议

请严格按以下 JSON 格式返回，不要添加任何其他内容：
{
  "scores": { "completeness": 85, "starCompliance": 70, "quantification": 60, "expression": 80 },
  "totalScore": 74,
  "level": "good",
  "issues": [
    { "module": "工作经历", "blockId": "work", "itemId": "uuid...", "field": "content", "severity": "warning", "issue": "缺少量化数据", "suggestion": "添加具体百分比或数字" }
  ]
}

简历内容：
%s`

// Diagnose 把整份简历交给模型评估，返回结构化诊断报告。
// 模型输出解析失败时返回固定的兜底报告而不是错误，
// 编辑器状态不受任何影响。
func (s *Service) Diagnose(ctx context.Context, doc *resume.Document) (*resume.DiagnosisReport, error) {
	provider, err := s.factory.For(doc.Settings)
	if err != nil {
		return nil, err
	}

	docJSON, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal document: %w", err)
	}

	raw, err := provider.GenerateText(ctx, fmt.Sprintf(diagnosePromptTemplate, docJSON))
	if err != nil {
		return nil, err
	}

	var report resume.DiagnosisReport
	if err := json.Unmarshal([]byte(extractJSON(raw)), &report); err != nil {
		return fallbackReport(), nil
	}
	return &report, nil
}

// fallbackReport 是解析失败时的保守评估，提示用户重试。
func fallbackReport() *resume.DiagnosisReport {
	return &resume.DiagnosisReport{
		Scores: resume.DiagnosisScores{
			Completeness:   70,
			StarCompliance: 60,
			Quantification: 50,
			Expression:     70,
		},
		TotalScore: 62,
		Level:      "average",
		Issues: []resume.DiagnosisIssue{
			{
				Module:     "整体",
				Severity:   "info",
				Issue:      "AI 诊断结果解析失败",
				Suggestion: "请重试或手动检查",
			},
		},
	}
}

// extractJSON 剥掉模型常见的 markdown 代码块包装，
// 再兜底截取第一对最外层大括号。
func extractJSON(text string) string {
	text = strings.TrimSpace(text)

	if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```json")
		text = strings.TrimPrefix(text, "```")
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
		return strings.TrimSpace(text)
	}

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start >= 0 && end > start {
		return text[start : end+1]
	}
	return text
}
