package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/mark3labs/filmmaker/internal/genclient"
)

// isolate points XDG at a temp dir, chdirs into it and clears the env
// variables Load consults.
func isolate(t *testing.T) string {
	t.Helper()
	tmpDir := t.TempDir()

	origWd, _ := os.Getwd()
	t.Cleanup(func() { _ = os.Chdir(origWd) })
	if err := os.Chdir(tmpDir); err != nil {
		t.Fatalf("Failed to change to temp dir: %v", err)
	}

	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmpDir, "config"))
	for _, envs := range envBindings {
		for _, env := range envs {
			t.Setenv(env, "")
		}
	}
	return tmpDir
}

func TestGlobalPath(t *testing.T) {
	tests := []struct {
		name      string
		xdgConfig string
		want      string
	}{
		{
			name:      "with XDG_CONFIG_HOME set",
			xdgConfig: "/custom/config",
			want:      "/custom/config/filmmaker/filmmaker.yml",
		},
		{
			name:      "without XDG_CONFIG_HOME",
			xdgConfig: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("XDG_CONFIG_HOME", tt.xdgConfig)

			got := GlobalPath()
			if tt.want != "" {
				if got != tt.want {
					t.Errorf("GlobalPath() = %v, want %v", got, tt.want)
				}
				return
			}
			if !filepath.IsAbs(got) {
				t.Errorf("GlobalPath() should return absolute path, got %v", got)
			}
			if !strings.HasSuffix(got, filepath.Join(".config", "filmmaker", "filmmaker.yml")) {
				t.Errorf("GlobalPath() should end with .config/filmmaker/filmmaker.yml, got %v", got)
			}
		})
	}
}

func TestProjectPath(t *testing.T) {
	if got := ProjectPath(); got != "filmmaker.yml" {
		t.Errorf("ProjectPath() = %v, want filmmaker.yml", got)
	}
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.APIKey != "" {
		t.Errorf("Load() default APIKey = %q, want empty", cfg.APIKey)
	}
	if cfg.HasCredential() {
		t.Error("HasCredential() = true with no key configured")
	}
	if cfg.BaseURL != genclient.DefaultBaseURL {
		t.Errorf("Load() default BaseURL = %v, want %v", cfg.BaseURL, genclient.DefaultBaseURL)
	}
	if cfg.ScriptModel != genclient.DefaultScriptModel {
		t.Errorf("Load() default ScriptModel = %v, want %v", cfg.ScriptModel, genclient.DefaultScriptModel)
	}
	if cfg.ImageModel != genclient.DefaultImageModel {
		t.Errorf("Load() default ImageModel = %v, want %v", cfg.ImageModel, genclient.DefaultImageModel)
	}
	if cfg.Timeout() != genclient.DefaultTimeout {
		t.Errorf("Load() default Timeout() = %v, want %v", cfg.Timeout(), genclient.DefaultTimeout)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("Load() default LogLevel = %v, want info", cfg.LogLevel)
	}
}

func TestLoad_ProjectOverridesGlobal(t *testing.T) {
	isolate(t)

	global := Default()
	global.ScriptModel = "global-model"
	global.Language = "English"
	if err := WriteGlobal(global); err != nil {
		t.Fatalf("WriteGlobal() error = %v", err)
	}

	if err := os.WriteFile(ProjectPath(), []byte("script_model: project-model\n"), 0644); err != nil {
		t.Fatalf("Failed to write project config: %v", err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.ScriptModel != "project-model" {
		t.Errorf("Load() ScriptModel = %v, want project-model", cfg.ScriptModel)
	}
	if cfg.Language != "English" {
		t.Errorf("Load() Language = %v, want English from global config", cfg.Language)
	}
}

func TestLoad_EnvOverridesFiles(t *testing.T) {
	isolate(t)

	if err := os.WriteFile(ProjectPath(), []byte("image_model: file-model\ntimeout_seconds: 5\n"), 0644); err != nil {
		t.Fatalf("Failed to write project config: %v", err)
	}
	t.Setenv("FILMMAKER_IMAGE_MODEL", "env-model")
	t.Setenv("FILMMAKER_TIMEOUT_SECONDS", "12")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.ImageModel != "env-model" {
		t.Errorf("Load() ImageModel = %v, want env-model", cfg.ImageModel)
	}
	if cfg.Timeout() != 12*time.Second {
		t.Errorf("Timeout() = %v, want 12s", cfg.Timeout())
	}
}

func TestLoad_APIKeyEnvFallbacks(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want string
	}{
		{"gemini key", map[string]string{"GEMINI_API_KEY": "gem"}, "gem"},
		{"generic key", map[string]string{"API_KEY": "generic"}, "generic"},
		{"prefixed key wins", map[string]string{"FILMMAKER_API_KEY": "own", "GEMINI_API_KEY": "gem"}, "own"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			cfg, err := Load()
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			if cfg.APIKey != tt.want {
				t.Errorf("Load() APIKey = %q, want %q", cfg.APIKey, tt.want)
			}
		})
	}
}

func TestLoad_DotEnv(t *testing.T) {
	isolate(t)

	// godotenv never overrides a variable that already exists, even empty.
	_ = os.Unsetenv("FILMMAKER_API_KEY")
	t.Cleanup(func() { _ = os.Unsetenv("FILMMAKER_API_KEY") })

	if err := os.WriteFile(".env", []byte("FILMMAKER_API_KEY=from-dotenv\n"), 0644); err != nil {
		t.Fatalf("Failed to write .env: %v", err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.APIKey != "from-dotenv" {
		t.Errorf("Load() APIKey = %q, want from-dotenv", cfg.APIKey)
	}
	if !cfg.HasCredential() {
		t.Error("HasCredential() = false with key from .env")
	}
}

func TestWriteProject(t *testing.T) {
	isolate(t)

	cfg := Default()
	cfg.APIKey = "secret"
	cfg.CatalogFile = "catalog.yaml"
	if err := WriteProject(cfg); err != nil {
		t.Fatalf("WriteProject() error = %v", err)
	}

	info, err := os.Stat(ProjectPath())
	if err != nil {
		t.Fatalf("Config file not created: %v", err)
	}
	if info.Mode().Perm() != 0600 {
		t.Errorf("config file mode = %v, want 0600", info.Mode().Perm())
	}

	data, err := os.ReadFile(ProjectPath())
	if err != nil {
		t.Fatalf("Failed to read config file: %v", err)
	}
	content := string(data)
	for _, field := range []string{
		"api_key: secret",
		"script_model: " + genclient.DefaultScriptModel,
		"catalog_file: catalog.yaml",
		"timeout_seconds: 60",
	} {
		if !strings.Contains(content, field) {
			t.Errorf("Config file missing expected field: %s\nContent:\n%s", field, content)
		}
	}
}

func TestTimeout_NonPositiveFallsBack(t *testing.T) {
	cfg := &Config{TimeoutSeconds: 0}
	if cfg.Timeout() != genclient.DefaultTimeout {
		t.Errorf("Timeout() = %v, want %v", cfg.Timeout(), genclient.DefaultTimeout)
	}
}
