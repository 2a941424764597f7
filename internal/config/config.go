package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Lin-Jiong-HDU/unixai/internal/ai"
	"github.com/spf13/viper"
)

const (
	ConfigFileName = "config"
	ConfigFileType = "yaml"
	DirName        = ".unixai"

	// APIKeyEnv is the environment variable holding the API key.
	APIKeyEnv = "OPENAI_API_KEY"
	envPrefix = "UNIXAI"
)

// Config holds the application configuration
type Config struct {
	AI             AIConfig   `mapstructure:"ai"`
	Exec           ExecConfig `mapstructure:"exec"`
	RenderMarkdown bool       `mapstructure:"render_markdown"`
	LogLevel       string     `mapstructure:"log_level"`
}

// AIConfig holds AI-related configuration
type AIConfig struct {
	APIKey    string `mapstructure:"api_key"`
	Model     string `mapstructure:"model"`
	BaseURL   string `mapstructure:"base_url"`
	Timeout   int    `mapstructure:"timeout"`
	MaxTokens int    `mapstructure:"max_tokens"`
}

// ExecConfig holds command execution configuration
type ExecConfig struct {
	Shell   string `mapstructure:"shell"`
	Timeout int    `mapstructure:"timeout"`
}

// RequestTimeout returns the API timeout as a duration
func (c AIConfig) RequestTimeout() time.Duration {
	return time.Duration(c.Timeout) * time.Second
}

// CommandTimeout returns the execution timeout as a duration
func (c ExecConfig) CommandTimeout() time.Duration {
	return time.Duration(c.Timeout) * time.Second
}

// Validate checks the settings needed before any request is made
func (c *Config) Validate() error {
	if c.AI.APIKey == "" {
		return ai.ErrMissingAPIKey
	}
	if c.AI.Timeout <= 0 {
		return fmt.Errorf("ai.timeout must be positive, got %d", c.AI.Timeout)
	}
	if c.Exec.Timeout <= 0 {
		return fmt.Errorf("exec.timeout must be positive, got %d", c.Exec.Timeout)
	}
	return nil
}

// GetConfigDir returns the unixai config directory path
func GetConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, DirName), nil
}

// Load reads configuration from defaults, the config file and the environment.
// An empty path searches the config directory, where a missing file is fine;
// an explicit path must exist.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigType(ConfigFileType)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(ConfigFileName)
		if configDir, err := GetConfigDir(); err == nil {
			v.AddConfigPath(configDir)
		}
	}

	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("ai.api_key", APIKeyEnv); err != nil {
		return nil, fmt.Errorf("failed to bind %s: %w", APIKeyEnv, err)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ai.model", "gpt-3.5-turbo")
	v.SetDefault("ai.base_url", "https://api.openai.com/v1")
	v.SetDefault("ai.timeout", 30)
	v.SetDefault("ai.max_tokens", 500)

	v.SetDefault("exec.shell", "/bin/sh")
	v.SetDefault("exec.timeout", 30)

	v.SetDefault("render_markdown", true)
	v.SetDefault("log_level", "warn")
}
