package config

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/roboco-io/ppr2docx/internal/markup"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Lexer.Separator != `\` {
		t.Errorf("expected separator '\\', got %q", cfg.Lexer.Separator)
	}
	if cfg.Export.UnderlineColor != "000000" {
		t.Errorf("expected underline color '000000', got %s", cfg.Export.UnderlineColor)
	}
	if len(cfg.Export.HeadingSizes) != 6 {
		t.Errorf("expected 6 heading sizes, got %d", len(cfg.Export.HeadingSizes))
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("expected default config to be valid, got %v", err)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr string
	}{
		{"empty separator", func(c *Config) { c.Lexer.Separator = "" }, "lexer.separator"},
		{"long separator", func(c *Config) { c.Lexer.Separator = "||" }, "lexer.separator"},
		{"negative workers", func(c *Config) { c.Lexer.Workers = -1 }, "lexer.workers"},
		{"bad color", func(c *Config) { c.Export.UnderlineColor = "black" }, "underline_color"},
		{"short sizes", func(c *Config) { c.Export.HeadingSizes = []int{36, 24} }, "heading_sizes"},
		{"zero size", func(c *Config) { c.Export.HeadingSizes = []int{36, 24, 20, 18, 16, 0} }, "heading_sizes"},
		{"bad level", func(c *Config) { c.Log.Level = "chatty" }, "log.level"},
		{"bad format", func(c *Config) { c.Log.Format = "xml" }, "log.format"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.modify(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tc.wantErr) {
				t.Errorf("expected error mentioning %q, got %v", tc.wantErr, err)
			}
		})
	}

	cfg := DefaultConfig()
	cfg.Lexer.Separator = "\n"
	cfg.Export.UnderlineColor = "auto"
	if err := cfg.Validate(); err != nil {
		t.Errorf("expected newline separator and auto color to be valid, got %v", err)
	}
}

func TestConfig_LexerOptions(t *testing.T) {
	cfg := DefaultConfig()
	opts := cfg.LexerOptions()
	if opts.Separator != markup.DefaultSeparator {
		t.Errorf("expected default separator, got %q", opts.Separator)
	}
	if opts.Workers != runtime.NumCPU() {
		t.Errorf("expected %d workers, got %d", runtime.NumCPU(), opts.Workers)
	}

	cfg.Lexer.Separator = "\n"
	cfg.Lexer.Workers = 2
	opts = cfg.LexerOptions()
	if opts.Separator != markup.LegacySeparator {
		t.Errorf("expected legacy separator, got %q", opts.Separator)
	}
	if opts.Workers != 2 {
		t.Errorf("expected 2 workers, got %d", opts.Workers)
	}
}

func TestConfig_ExportOptions(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Export.UnderlineColor = "FF0000"
	cfg.Export.HeadingSizes = []int{60, 50, 40, 30, 20, 10}

	opts := cfg.ExportOptions()
	if opts.UnderlineColor != "FF0000" {
		t.Errorf("expected underline color FF0000, got %s", opts.UnderlineColor)
	}
	if opts.HeadingSizes != [6]int{60, 50, 40, 30, 20, 10} {
		t.Errorf("unexpected heading sizes: %v", opts.HeadingSizes)
	}
}

func TestLoader_SaveAndLoad(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	loader := NewLoaderWithPath(configPath)

	cfg := DefaultConfig()
	cfg.Lexer.Workers = 3
	cfg.Log.Format = "json"

	if err := loader.Save(cfg); err != nil {
		t.Fatalf("failed to save config: %v", err)
	}

	if !loader.Exists() {
		t.Error("expected config file to exist after save")
	}

	loaded, err := loader.LoadRaw()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if loaded.Lexer.Workers != 3 {
		t.Errorf("expected 3 workers, got %d", loaded.Lexer.Workers)
	}
	if loaded.Log.Format != "json" {
		t.Errorf("expected json log format, got %s", loaded.Log.Format)
	}
}

func TestLoader_LoadNonExistent(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "nonexistent", "config.yaml")

	loader := NewLoaderWithPath(configPath)

	// Should return default config when file doesn't exist
	cfg, err := loader.Load()
	if err != nil {
		t.Fatalf("expected no error for non-existent file, got: %v", err)
	}

	if cfg.Export.UnderlineColor != "000000" {
		t.Errorf("expected default underline color, got %s", cfg.Export.UnderlineColor)
	}
}

func TestLoader_PartialFileKeepsDefaults(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	content := `log:
  level: debug
`
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := NewLoaderWithPath(configPath).Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("expected debug level, got %s", cfg.Log.Level)
	}
	if cfg.Lexer.Separator != `\` {
		t.Errorf("expected default separator to survive, got %q", cfg.Lexer.Separator)
	}
	if len(cfg.Export.HeadingSizes) != 6 {
		t.Errorf("expected default heading sizes to survive, got %v", cfg.Export.HeadingSizes)
	}
}

func TestLoader_ExpandEnvVars(t *testing.T) {
	t.Setenv("TEST_UNDERLINE", "00FF00")

	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	content := `export:
  underline_color: ${TEST_UNDERLINE}
`
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := NewLoaderWithPath(configPath).Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Export.UnderlineColor != "00FF00" {
		t.Errorf("expected underline color '00FF00', got %s", cfg.Export.UnderlineColor)
	}
}

func TestLoader_EnvOverrides(t *testing.T) {
	t.Setenv(EnvLogLevel, "error")
	t.Setenv(EnvWorkers, "5")

	cfg, err := NewLoaderWithPath(filepath.Join(t.TempDir(), "config.yaml")).Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if cfg.Log.Level != "error" {
		t.Errorf("expected log level 'error', got %s", cfg.Log.Level)
	}
	if cfg.Lexer.Workers != 5 {
		t.Errorf("expected 5 workers, got %d", cfg.Lexer.Workers)
	}

	t.Setenv(EnvWorkers, "many")
	if _, err := NewLoaderWithPath(filepath.Join(t.TempDir(), "config.yaml")).Load(); err == nil {
		t.Error("expected error for non-numeric workers override")
	}
}

func TestLoader_LoadInvalidConfig(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	content := `lexer:
  separator: "ab"
`
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	if _, err := NewLoaderWithPath(configPath).Load(); err == nil {
		t.Error("expected validation error for multi-character separator")
	}
}

func TestGetEnvOrDefault(t *testing.T) {
	t.Setenv("TEST_VAR", "test-value")

	if v := GetEnvOrDefault("TEST_VAR", "default"); v != "test-value" {
		t.Errorf("expected 'test-value', got %s", v)
	}

	if v := GetEnvOrDefault("NONEXISTENT_VAR", "default"); v != "default" {
		t.Errorf("expected 'default', got %s", v)
	}
}

func TestGetEnvBool(t *testing.T) {
	tests := []struct {
		value    string
		expected bool
	}{
		{"true", true},
		{"TRUE", true},
		{"1", true},
		{"yes", true},
		{"false", false},
		{"0", false},
		{"", false},
		{"invalid", false},
	}

	for _, tc := range tests {
		t.Setenv("TEST_BOOL", tc.value)
		if got := GetEnvBool("TEST_BOOL"); got != tc.expected {
			t.Errorf("GetEnvBool(%q): expected %v, got %v", tc.value, tc.expected, got)
		}
	}
}

func TestNewLoader(t *testing.T) {
	loader, err := NewLoader()
	if err != nil {
		t.Fatalf("failed to create loader: %v", err)
	}

	path := loader.ConfigPath()
	if filepath.Base(path) != ConfigFileName {
		t.Errorf("expected config file name %s, got %s", ConfigFileName, filepath.Base(path))
	}
	if filepath.Base(filepath.Dir(path)) != ConfigDirName {
		t.Errorf("expected config dir %s, got %s", ConfigDirName, filepath.Dir(path))
	}
}

func TestLoader_Init(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	loader := NewLoaderWithPath(configPath)

	if err := loader.Init(); err != nil {
		t.Fatalf("failed to init config: %v", err)
	}

	if !loader.Exists() {
		t.Error("expected config file to exist after init")
	}

	// Init again should fail
	if err := loader.Init(); err == nil {
		t.Error("expected error when initializing existing config")
	}
}

func TestLoader_LoadInvalidYAML(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	if err := os.WriteFile(configPath, []byte("{{{{invalid yaml"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	if _, err := NewLoaderWithPath(configPath).Load(); err == nil {
		t.Error("expected error for invalid YAML")
	}
}

func TestLoader_SaveKeepsSeparator(t *testing.T) {
	tests := []struct {
		name      string
		separator string
		written   string
	}{
		{"line break", "\n", `separator: "\n"`},
		{"backslash", `\`, `separator: "\\"`},
		{"pipe", "|", `separator: "|"`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			configPath := filepath.Join(t.TempDir(), "config.yaml")
			loader := NewLoaderWithPath(configPath)

			cfg := DefaultConfig()
			cfg.Lexer.Separator = tc.separator
			cfg.Lexer.Workers = 2
			if err := loader.Save(cfg); err != nil {
				t.Fatalf("failed to save config: %v", err)
			}

			data, err := os.ReadFile(configPath)
			if err != nil {
				t.Fatalf("failed to read saved config: %v", err)
			}
			if !strings.Contains(string(data), tc.written) {
				t.Errorf("expected saved config to contain %s, got:\n%s", tc.written, data)
			}

			loaded, err := loader.Load()
			if err != nil {
				t.Fatalf("failed to load saved config: %v", err)
			}
			if loaded.Lexer.Separator != tc.separator {
				t.Errorf("expected separator %q, got %q", tc.separator, loaded.Lexer.Separator)
			}
			if loaded.Lexer.Workers != 2 {
				t.Errorf("expected 2 workers, got %d", loaded.Lexer.Workers)
			}
		})
	}
}
