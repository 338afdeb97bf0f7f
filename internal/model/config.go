package model

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// ServerConfig holds HTTP listener settings.
type ServerConfig struct {
	Addr string `mapstructure:"addr" yaml:"addr"`
}

// StorageConfig selects and configures the entity store backend.
type StorageConfig struct {
	// Driver is "sqlite" or "memory".
	Driver string `mapstructure:"driver" yaml:"driver"`

	// Path is the SQLite database file (ignored for the memory driver).
	Path string `mapstructure:"path" yaml:"path"`
}

// AIConfig holds settings for the AI assistant integration.
type AIConfig struct {
	Model     string `mapstructure:"model" yaml:"model"`
	MaxTokens int    `mapstructure:"max_tokens" yaml:"max_tokens"`
}

// EmailConfig holds outbound delivery settings. Delivery is optional;
// an empty host disables it.
type EmailConfig struct {
	SMTPHost  string `mapstructure:"smtp_host" yaml:"smtp_host"`
	SMTPPort  int    `mapstructure:"smtp_port" yaml:"smtp_port"`
	Username  string `mapstructure:"username" yaml:"username"`
	From      string `mapstructure:"from" yaml:"from"`
	Recipient string `mapstructure:"recipient" yaml:"recipient"`
}

// AppConfig is the top-level application configuration.
type AppConfig struct {
	Server  ServerConfig  `mapstructure:"server" yaml:"server"`
	Storage StorageConfig `mapstructure:"storage" yaml:"storage"`
	AI      AIConfig      `mapstructure:"ai" yaml:"ai"`
	Email   EmailConfig   `mapstructure:"email" yaml:"email"`
}

// DeliveryEnabled reports whether outbound email delivery is configured.
func (c *AppConfig) DeliveryEnabled() bool {
	return c.Email.SMTPHost != "" && c.Email.Recipient != ""
}

// DefaultConfigPath returns the default path for the configuration file,
// located at ~/.config/assistant/config.yaml.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "config.yaml")
	}
	return filepath.Join(home, ".config", "assistant", "config.yaml")
}

// defaultAppConfig returns a sensible default configuration.
func defaultAppConfig() *AppConfig {
	return &AppConfig{
		Server:  ServerConfig{Addr: ":8080"},
		Storage: StorageConfig{Driver: "sqlite", Path: "assistant.db"},
		AI: AIConfig{
			Model:     "claude-sonnet-4-20250514",
			MaxTokens: 4096,
		},
		Email: EmailConfig{SMTPPort: 587},
	}
}

// LoadConfig reads configuration from the given YAML file path using Viper.
// If the file does not exist, it returns a default configuration.
func LoadConfig(path string) (*AppConfig, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	// Set defaults so missing keys resolve to sensible values.
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("storage.driver", "sqlite")
	v.SetDefault("storage.path", "assistant.db")
	v.SetDefault("ai.model", "claude-sonnet-4-20250514")
	v.SetDefault("ai.max_tokens", 4096)
	v.SetDefault("email.smtp_port", 587)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(*os.PathError); ok {
			return defaultAppConfig(), nil
		}
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return defaultAppConfig(), nil
		}
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	cfg := defaultAppConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	return cfg, nil
}

// SaveConfig writes the given configuration to a YAML file at path,
// creating parent directories if needed.
func SaveConfig(path string, cfg *AppConfig) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.Set("server", cfg.Server)
	v.Set("storage", cfg.Storage)
	v.Set("ai", cfg.AI)
	v.Set("email", cfg.Email)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}

	return nil
}
