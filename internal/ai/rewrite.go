package ai

import (
	"context"
	"fmt"

	"github.com/xiaohu31/ai-resume-architect/internal/resume"
)

// RewriteMode 是文本改写的四种模式。
type RewriteMode string

const (
	ModePolish    RewriteMode = "polish"
	ModeExpand    RewriteMode = "expand"
	ModeSimplify  RewriteMode = "simplify"
	ModeSummarize RewriteMode = "summarize"
)

// ValidMode 报告给定模式是否受支持。
func ValidMode(mode RewriteMode) bool {
	switch mode {
	case ModePolish, ModeExpand, ModeSimplify, ModeSummarize:
		return true
	}
	return false
}

var rewriteInstructions = map[RewriteMode]string{
	ModePolish:    "请对以下简历内容进行润色，使其更加专业、简洁、有力。保持原意，优化表达方式。\n直接返回优化后的内容，不要添加任何解释或前缀。",
	ModeExpand:    "请对以下简历内容进行扩展，添加更多具体细节、量化指标或技术关键词，使其更加丰富和有说服力。保持专业性。\n直接返回扩展后的内容，不要添加任何解释或前缀。",
	ModeSimplify:  "请对以下简历内容进行简化，去除冗余信息，保留核心要点，使其更加精炼。\n直接返回简化后的内容，不要添加任何解释或前缀。",
	ModeSummarize: "请用一句话总结以下内容的核心价值和亮点。\n直接返回总结，不要添加任何解释或前缀。",
}

// ProviderSource 按文档 Settings 解析出可用的模型后端。
type ProviderSource interface {
	For(settings resume.Settings) (Provider, error)
}

// Service 封装面向编辑器的两类 AI 能力：文本改写与整份诊断。
// 它从不直接改动文档——结果作为建议返回，
// 用户确认后由 UI 走 SetItemField 显式写入。
type Service struct {
	factory ProviderSource
}

// NewService 构造 AI 服务。
func NewService(factory ProviderSource) *Service {
	return &Service{factory: factory}
}

// Rewrite 按模式改写一段文本。contextLabel 标明所属模块
//（如"工作经历"），为空时省略。
func (s *Service) Rewrite(ctx context.Context, settings resume.Settings, text string, mode RewriteMode, contextLabel string) (string, error) {
	instruction, ok := rewriteInstructions[mode]
	if !ok {
		return "", fmt.Errorf("unsupported rewrite mode %q", mode)
	}

	provider, err := s.factory.For(settings)
	if err != nil {
		return "", err
	}

	contextInfo := ""
	if contextLabel != "" {
		contextInfo = fmt.Sprintf("你正在优化简历的【%s】部分。", contextLabel)
	}
	prompt := fmt.Sprintf("你是一位专业的简历优化专家。%s%s\n\n原文：\n%s", contextInfo, instruction, text)

	return provider.GenerateText(ctx, prompt)
}
