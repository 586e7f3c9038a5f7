package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"APP_ENV", "PORT", "DB_PATH", "ACCESS_PASSWORD", "SESSION_SECRET",
		"MAX_LOGIN_ATTEMPTS", "ZAPIER_WEBHOOK_URL", "WEBHOOK_TIMEOUT", "PRICING_TABLE",
	} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	chdir(t, t.TempDir())

	cfg := Load()

	if cfg.Env != "development" || !cfg.IsDev() {
		t.Fatalf("expected development env, got %q", cfg.Env)
	}
	if cfg.Port != "8080" {
		t.Fatalf("expected default port, got %q", cfg.Port)
	}
	if cfg.DBPath != "./dev.db" {
		t.Fatalf("expected default db path, got %q", cfg.DBPath)
	}
	if cfg.MaxLoginAttempts != 3 {
		t.Fatalf("expected 3 login attempts, got %d", cfg.MaxLoginAttempts)
	}
	if cfg.WebhookTimeout != 15*time.Second {
		t.Fatalf("expected 15s webhook timeout, got %s", cfg.WebhookTimeout)
	}
	if cfg.PricingTable != "standard" {
		t.Fatalf("expected standard pricing table, got %q", cfg.PricingTable)
	}
}

func TestLoad_ReadsDotEnvWithoutOverridingEnvironment(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	content := "ACCESS_PASSWORD=från-fil\nPORT=9090\nZAPIER_WEBHOOK_URL=https://hooks.example.com/abc\n"
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte(content), 0o600); err != nil {
		t.Fatalf("write .env: %v", err)
	}
	chdir(t, dir)
	t.Setenv("PORT", "7070")

	cfg := Load()

	if cfg.AccessPassword != "från-fil" {
		t.Fatalf("expected password from .env, got %q", cfg.AccessPassword)
	}
	if cfg.Port != "7070" {
		t.Fatalf("expected environment to win over .env, got %q", cfg.Port)
	}
	if cfg.WebhookURL != "https://hooks.example.com/abc" {
		t.Fatalf("unexpected webhook url %q", cfg.WebhookURL)
	}
}

func TestLoad_ParsesNumericSettings(t *testing.T) {
	clearEnv(t)
	chdir(t, t.TempDir())
	t.Setenv("APP_ENV", "production")
	t.Setenv("MAX_LOGIN_ATTEMPTS", "5")
	t.Setenv("WEBHOOK_TIMEOUT", "3s")

	cfg := Load()

	if cfg.IsDev() {
		t.Fatalf("production must not be dev")
	}
	if cfg.MaxLoginAttempts != 5 {
		t.Fatalf("expected 5 attempts, got %d", cfg.MaxLoginAttempts)
	}
	if cfg.WebhookTimeout != 3*time.Second {
		t.Fatalf("expected 3s timeout, got %s", cfg.WebhookTimeout)
	}
}

func TestLoad_InvalidNumericSettingsFallBack(t *testing.T) {
	clearEnv(t)
	chdir(t, t.TempDir())
	t.Setenv("MAX_LOGIN_ATTEMPTS", "många")
	t.Setenv("WEBHOOK_TIMEOUT", "-1s")

	cfg := Load()

	if cfg.MaxLoginAttempts != 3 {
		t.Fatalf("expected fallback attempts, got %d", cfg.MaxLoginAttempts)
	}
	if cfg.WebhookTimeout != 15*time.Second {
		t.Fatalf("expected fallback timeout, got %s", cfg.WebhookTimeout)
	}
}
