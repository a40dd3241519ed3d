package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestGetEnvWithDefault(t *testing.T) {
	const key = "TEST_APP_PORT"

	// 环境变量未设置时，应该返回默认值
	_ = os.Unsetenv(key)
	if got := getEnv(key, "9000"); got != "9000" {
		t.Fatalf("getEnv(%q) = %q, want %q", key, got, "9000")
	}

	// 环境变量设置后，应优先返回环境变量
	if err := os.Setenv(key, "8080"); err != nil {
		t.Fatalf("Setenv error: %v", err)
	}
	if got := getEnv(key, "9000"); got != "8080" {
		t.Fatalf("getEnv(%q) = %q, want %q", key, got, "8080")
	}
}

func TestLoadReadsFeedURLAndAuth(t *testing.T) {
	// 使用专用的 env key，避免影响其它测试
	_ = os.Setenv("APP_PORT", "1234")
	_ = os.Setenv("FEED_URL", "https://example.com/summaries.json")
	_ = os.Setenv("APP_BASIC_USER", "user")
	_ = os.Setenv("APP_BASIC_PASS", "pass")
	defer func() {
		_ = os.Unsetenv("APP_PORT")
		_ = os.Unsetenv("FEED_URL")
		_ = os.Unsetenv("APP_BASIC_USER")
		_ = os.Unsetenv("APP_BASIC_PASS")
	}()

	cfg := Load()
	if cfg.AppPort != "1234" {
		t.Fatalf("AppPort = %q, want %q", cfg.AppPort, "1234")
	}
	if cfg.FeedURL != "https://example.com/summaries.json" {
		t.Fatalf("FeedURL = %q", cfg.FeedURL)
	}
	if cfg.BasicAuthUser != "user" || cfg.BasicAuthPass != "pass" {
		t.Fatalf("BasicAuthUser/Pass not loaded correctly: %+v", cfg)
	}
}

func TestLoadSourcesFallsBackToDefaults(t *testing.T) {
	got := LoadSources("")
	if len(got) == 0 {
		t.Fatalf("empty path should return builtin defaults")
	}
	got = LoadSources(filepath.Join(t.TempDir(), "missing.yaml"))
	if len(got) != len(defaultSources) {
		t.Fatalf("missing file should return builtin defaults, got %d sources", len(got))
	}
}

func TestLoadSourcesParsesYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sources.yaml")
	body := `
- url: https://example.com/a.xml
  category: Science
- url: https://example.com/b.xml
- url: ""
  category: Dropped
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write sources file: %v", err)
	}

	got := LoadSources(path)
	if len(got) != 2 {
		t.Fatalf("expected 2 sources, got %d: %+v", len(got), got)
	}
	if got[0].URL != "https://example.com/a.xml" || got[0].Category != "Science" {
		t.Fatalf("first source wrong: %+v", got[0])
	}
	// 缺省分类补 General
	if got[1].Category != "General" {
		t.Fatalf("missing category should default to General: %+v", got[1])
	}
}
