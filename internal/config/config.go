package config

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"
)

// Config aggregates application settings that may be sourced from files or environment variables.
type Config struct {
	API      APIConfig      `mapstructure:"api"`
	Database DatabaseConfig `mapstructure:"database"`
	Editor   EditorConfig   `mapstructure:"editor"`
	AI       AIConfig       `mapstructure:"ai"`
	Export   ExportConfig   `mapstructure:"export"`
}

// APIConfig contains HTTP server settings.
type APIConfig struct {
	Port int `mapstructure:"port"`
}

// DatabaseConfig contains the local SQLite storage location.
type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

// EditorConfig 包含编辑器核心的运行参数。
type EditorConfig struct {
	HistoryDepth int `mapstructure:"history_depth"`
}

// AIConfig 是 AI 协作方的兜底配置，文档 Settings 里的同名项优先。
type AIConfig struct {
	Provider string `mapstructure:"provider"`
	Model    string `mapstructure:"model"`
	APIKey   string `mapstructure:"api_key"`
	Endpoint string `mapstructure:"endpoint"`
}

// ExportConfig contains PDF export settings.
type ExportConfig struct {
	TimeoutSeconds int `mapstructure:"timeout_seconds"`
}

// Load reads configuration solely from environment variables (with optional defaults).
func Load() (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	if err := bindEnv(v); err != nil {
		return nil, fmt.Errorf("bind env: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// MustLoad wraps Load and panics on failure.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	return cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("api.port", 8080)
	v.SetDefault("database.path", "resume.db")
	v.SetDefault("editor.history_depth", 50)
	v.SetDefault("ai.provider", "gemini")
	v.SetDefault("ai.model", "gemini-2.0-flash")
	v.SetDefault("export.timeout_seconds", 30)
}

func bindEnv(v *viper.Viper) error {
	mappings := map[string]string{
		"api.port":               "API_PORT",
		"database.path":          "DATABASE_PATH",
		"editor.history_depth":   "EDITOR_HISTORY_DEPTH",
		"ai.provider":            "AI_PROVIDER",
		"ai.model":               "AI_MODEL",
		"ai.api_key":             "AI_API_KEY",
		"ai.endpoint":            "AI_ENDPOINT",
		"export.timeout_seconds": "EXPORT_TIMEOUT_SECONDS",
	}

	for key, env := range mappings {
		if err := v.BindEnv(key, env); err != nil {
			return fmt.Errorf("bind %s to %s: %w", key, env, err)
		}
	}

	return nil
}

func validate(cfg Config) error {
	if cfg.API.Port <= 0 {
		return errors.New("api port must be positive")
	}
	if cfg.Database.Path == "" {
		return errors.New("database path is required")
	}
	if cfg.Editor.HistoryDepth <= 0 {
		return errors.New("editor history depth must be positive")
	}
	if cfg.AI.Provider != "gemini" && cfg.AI.Provider != "openai" {
		return fmt.Errorf("unsupported ai provider %q", cfg.AI.Provider)
	}
	if cfg.Export.TimeoutSeconds <= 0 {
		return errors.New("export timeout must be positive")
	}
	return nil
}
