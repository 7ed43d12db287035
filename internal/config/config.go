// Package config provides centralized configuration management using Viper.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/mark3labs/filmmaker/internal/genclient"
)

// DefaultLanguage is the language scripts are written in.
const DefaultLanguage = "English"

// Config holds all configuration values for filmmaker.
type Config struct {
	APIKey         string `mapstructure:"api_key" yaml:"api_key"`
	BaseURL        string `mapstructure:"base_url" yaml:"base_url"`
	ScriptModel    string `mapstructure:"script_model" yaml:"script_model"`
	ImageModel     string `mapstructure:"image_model" yaml:"image_model"`
	Language       string `mapstructure:"language" yaml:"language"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds" yaml:"timeout_seconds"`
	LogLevel       string `mapstructure:"log_level" yaml:"log_level"`
	LogFile        string `mapstructure:"log_file" yaml:"log_file"`
	CatalogFile    string `mapstructure:"catalog_file" yaml:"catalog_file"`
}

// Default returns the configuration used when no file or env overrides exist.
func Default() *Config {
	return &Config{
		BaseURL:        genclient.DefaultBaseURL,
		ScriptModel:    genclient.DefaultScriptModel,
		ImageModel:     genclient.DefaultImageModel,
		Language:       DefaultLanguage,
		TimeoutSeconds: int(genclient.DefaultTimeout / time.Second),
		LogLevel:       "info",
	}
}

// Timeout returns the per-request timeout for generation calls.
func (c *Config) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return genclient.DefaultTimeout
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// HasCredential reports whether an API key is configured.
func (c *Config) HasCredential() bool {
	return strings.TrimSpace(c.APIKey) != ""
}

// envBindings maps config keys to the environment variables consulted for them.
// The first variable that is set wins.
var envBindings = map[string][]string{
	"api_key":         {"FILMMAKER_API_KEY", "GEMINI_API_KEY", "API_KEY"},
	"base_url":        {"FILMMAKER_BASE_URL"},
	"script_model":    {"FILMMAKER_SCRIPT_MODEL"},
	"image_model":     {"FILMMAKER_IMAGE_MODEL"},
	"language":        {"FILMMAKER_LANGUAGE"},
	"timeout_seconds": {"FILMMAKER_TIMEOUT_SECONDS"},
	"log_level":       {"FILMMAKER_LOG_LEVEL"},
	"log_file":        {"FILMMAKER_LOG_FILE"},
	"catalog_file":    {"FILMMAKER_CATALOG_FILE"},
}

// Load loads configuration with full precedence:
// CLI flags > ENV vars (.env included) > project config > XDG global config > defaults
func Load() (*Config, error) {
	// A missing .env is the common case.
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigType("yaml")
	v.SetConfigName("filmmaker")

	def := Default()
	v.SetDefault("api_key", "")
	v.SetDefault("base_url", def.BaseURL)
	v.SetDefault("script_model", def.ScriptModel)
	v.SetDefault("image_model", def.ImageModel)
	v.SetDefault("language", def.Language)
	v.SetDefault("timeout_seconds", def.TimeoutSeconds)
	v.SetDefault("log_level", def.LogLevel)
	v.SetDefault("log_file", "")
	v.SetDefault("catalog_file", "")

	v.SetEnvPrefix("FILMMAKER")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	for key, envs := range envBindings {
		args := append([]string{key}, envs...)
		if err := v.BindEnv(args...); err != nil {
			return nil, fmt.Errorf("binding %s env: %w", key, err)
		}
	}

	globalPath := GlobalPath()
	if fileExists(globalPath) {
		v.SetConfigFile(globalPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading global config: %w", err)
		}
	}

	projectPath := ProjectPath()
	if fileExists(projectPath) {
		v.SetConfigFile(projectPath)
		if err := v.MergeInConfig(); err != nil {
			return nil, fmt.Errorf("merging project config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	return &cfg, nil
}

// GlobalPath returns the XDG global config path.
// Returns ~/.config/filmmaker/filmmaker.yml or $XDG_CONFIG_HOME/filmmaker/filmmaker.yml.
func GlobalPath() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "filmmaker", "filmmaker.yml")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "filmmaker", "filmmaker.yml")
}

// ProjectPath returns the project-local config path.
func ProjectPath() string {
	return "filmmaker.yml"
}

// WriteGlobal writes the config to the XDG global location.
func WriteGlobal(cfg *Config) error {
	path := GlobalPath()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	return write(path, cfg)
}

// WriteProject writes the config to the project-local location.
func WriteProject(cfg *Config) error {
	return write(ProjectPath(), cfg)
}

func write(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	// The file may hold an API key.
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
