package shared

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestConfig(t *testing.T) {
	t.Run("DefaultConfig", func(t *testing.T) {
		config := DefaultConfig()

		if config.Database.Path != "./qqm.db" {
			t.Errorf("expected database path ./qqm.db, got %s", config.Database.Path)
		}
		if config.Helper.Command != "node" {
			t.Errorf("expected helper command node, got %s", config.Helper.Command)
		}
		if len(config.Helper.Args) != 1 || config.Helper.Args[0] != "qqmusic-helper.js" {
			t.Errorf("expected helper args [qqmusic-helper.js], got %v", config.Helper.Args)
		}
		if config.Credentials.QQ.UIN != "" || config.Credentials.QQ.Cookie != "" {
			t.Error("expected empty credentials by default")
		}
		if config.HTTP.UserAgent == "" {
			t.Error("expected a pinned user agent")
		}
	})

	t.Run("CreateConfigFile", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "config.toml")

		if err := CreateConfigFile(configPath); err != nil {
			t.Fatalf("failed to create config file: %v", err)
		}

		info, err := os.Stat(configPath)
		if err != nil {
			t.Fatalf("config file should exist: %v", err)
		}
		if info.Mode().Perm() != 0600 {
			t.Errorf("expected mode 0600, got %v", info.Mode().Perm())
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load created config: %v", err)
		}
		if config.Database.Path != DefaultConfig().Database.Path {
			t.Errorf("created config database path doesn't match default")
		}

		if err := CreateConfigFile(configPath); err == nil {
			t.Error("creating config file again should fail")
		}
	})

	t.Run("LoadConfig", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "config.toml")

		testConfig := `[credentials.qq]
uin = "12345678"
cookie = "uin=o12345678; qm_keyst=abc"

[helper]
command = "/usr/local/bin/qqsign"
args = []
timeout = "3s"

[database]
path = "/custom/path.db"
`
		if err := os.WriteFile(configPath, []byte(testConfig), 0644); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load config: %v", err)
		}

		if config.Credentials.QQ.UIN != "12345678" {
			t.Errorf("expected uin 12345678, got %s", config.Credentials.QQ.UIN)
		}
		if config.Credentials.QQ.Cookie != "uin=o12345678; qm_keyst=abc" {
			t.Errorf("unexpected cookie %s", config.Credentials.QQ.Cookie)
		}
		if config.Helper.Command != "/usr/local/bin/qqsign" || len(config.Helper.Args) != 0 {
			t.Errorf("unexpected helper %+v", config.Helper)
		}
		if config.Helper.TimeoutDuration() != 3*time.Second {
			t.Errorf("expected 3s helper timeout, got %v", config.Helper.TimeoutDuration())
		}
		if config.Database.Path != "/custom/path.db" {
			t.Errorf("expected database path /custom/path.db, got %s", config.Database.Path)
		}
		if config.HTTP.UserAgent != DefaultConfig().HTTP.UserAgent {
			t.Error("expected user agent to keep its default when absent from file")
		}
	})

	t.Run("LoadConfig with invalid toml", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "config.toml")
		if err := os.WriteFile(configPath, []byte("[credentials\nuin="), 0644); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}
		if _, err := LoadConfig(configPath); err == nil {
			t.Error("expected parse error")
		}
	})

	t.Run("SaveConfig round trip", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "config.toml")

		config := DefaultConfig()
		config.Credentials.QQ.UIN = "42"
		config.Credentials.QQ.Cookie = "uin=o42"
		if err := SaveConfig(configPath, config); err != nil {
			t.Fatalf("failed to save config: %v", err)
		}

		loaded, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load saved config: %v", err)
		}
		if loaded.Credentials.QQ != config.Credentials.QQ {
			t.Errorf("expected %+v, got %+v", config.Credentials.QQ, loaded.Credentials.QQ)
		}
	})

	t.Run("timeouts", func(t *testing.T) {
		if d := (HelperConfig{Timeout: "bogus"}).TimeoutDuration(); d != defaultHelperTimeout {
			t.Errorf("expected default helper timeout, got %v", d)
		}

		if d, err := (HTTPConfig{}).TimeoutDuration(); err != nil || d != 0 {
			t.Errorf("expected no timeout, got %v, %v", d, err)
		}
		if d, err := (HTTPConfig{Timeout: "30s"}).TimeoutDuration(); err != nil || d != 30*time.Second {
			t.Errorf("expected 30s, got %v, %v", d, err)
		}
		if _, err := (HTTPConfig{Timeout: "soon"}).TimeoutDuration(); err == nil {
			t.Error("expected error for invalid duration")
		}
	})
}

func TestEnv(t *testing.T) {
	t.Run("ApplyEnv overrides config", func(t *testing.T) {
		t.Setenv(EnvUIN, "777")
		t.Setenv(EnvCookie, "uin=o777")
		t.Setenv(EnvHelper, "python3 sign.py --fast")
		t.Setenv(EnvDB, ":memory:")

		config := DefaultConfig()
		config.ApplyEnv()

		if config.Credentials.QQ.UIN != "777" || config.Credentials.QQ.Cookie != "uin=o777" {
			t.Errorf("unexpected credentials %+v", config.Credentials.QQ)
		}
		if config.Helper.Command != "python3" {
			t.Errorf("expected helper command python3, got %s", config.Helper.Command)
		}
		if len(config.Helper.Args) != 2 || config.Helper.Args[1] != "--fast" {
			t.Errorf("unexpected helper args %v", config.Helper.Args)
		}
		if config.Database.Path != ":memory:" {
			t.Errorf("expected :memory:, got %s", config.Database.Path)
		}
	})

	t.Run("ApplyEnv leaves config alone when unset", func(t *testing.T) {
		t.Setenv(EnvUIN, "")
		t.Setenv(EnvCookie, "")
		t.Setenv(EnvHelper, "")
		t.Setenv(EnvDB, "")

		config := DefaultConfig()
		config.Credentials.QQ.UIN = "1"
		config.ApplyEnv()

		if config.Credentials.QQ.UIN != "1" || config.Helper.Command != "node" {
			t.Errorf("config should be unchanged, got %+v", config)
		}
	})

	t.Run("LoadEnv reads .env file", func(t *testing.T) {
		t.Setenv(EnvUIN, "")
		os.Unsetenv(EnvUIN)

		envPath := filepath.Join(t.TempDir(), ".env")
		if err := os.WriteFile(envPath, []byte(EnvUIN+"=31337\n"), 0600); err != nil {
			t.Fatalf("failed to write env file: %v", err)
		}

		if err := LoadEnv(envPath); err != nil {
			t.Fatalf("failed to load env: %v", err)
		}
		if got := os.Getenv(EnvUIN); got != "31337" {
			t.Errorf("expected 31337, got %q", got)
		}
	})

	t.Run("LoadEnv ignores missing file", func(t *testing.T) {
		if err := LoadEnv(filepath.Join(t.TempDir(), "missing.env")); err != nil {
			t.Errorf("expected missing file to be ignored, got %v", err)
		}
	})
}
