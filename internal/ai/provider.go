package ai

import (
	"context"
	"errors"

	"github.com/xiaohu31/ai-resume-architect/internal/config"
	"github.com/xiaohu31/ai-resume-architect/internal/resume"
)

// ErrNotConfigured 表示没有可用的 API Key。UI 拿到它后提示用户
// 去设置页配置，绝不静默吞掉。
var ErrNotConfigured = errors.New("ai provider is not configured")

// Provider 抽象一个大模型后端：输入提示词，输出纯文本。
type Provider interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

// ProviderFactory 根据文档 Settings 与服务端兜底配置挑选后端。
// 文档里的配置优先，这样用户在设置面板里改的 Key 立即生效。
type ProviderFactory struct {
	defaults config.AIConfig
}

// NewProviderFactory 构造工厂。
func NewProviderFactory(defaults config.AIConfig) *ProviderFactory {
	return &ProviderFactory{defaults: defaults}
}

// For 解析出生效的 provider/model/key/endpoint 并实例化后端。
// 没有 Key 时返回 ErrNotConfigured。
func (f *ProviderFactory) For(settings resume.Settings) (Provider, error) {
	apiKey := settings.APIKey
	if apiKey == "" {
		apiKey = f.defaults.APIKey
	}
	if apiKey == "" {
		return nil, ErrNotConfigured
	}

	providerName := settings.Provider
	if providerName == "" {
		providerName = f.defaults.Provider
	}
	model := settings.ModelName
	if model == "" {
		model = f.defaults.Model
	}
	endpoint := settings.APIEndpoint
	if endpoint == "" {
		endpoint = f.defaults.Endpoint
	}

	if providerName == "openai" {
		return newOpenAIProvider(apiKey, model, endpoint), nil
	}
	return newGeminiProvider(apiKey, model), nil
}
