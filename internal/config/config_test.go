package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func validConfig() *Config {
	return &Config{
		Upstream: UpstreamConfig{
			BaseURL:     "https://api.example.com",
			Timeout:     10 * time.Second,
			SitesPath:   "/sites",
			ClientsPath: "/clients",
			UserPath:    "/me",
			PageSize:    20,
		},
		Server: ServerConfig{
			Port:               8080,
			ReadTimeout:        10 * time.Second,
			WriteTimeout:       10 * time.Second,
			IdleTimeout:        120 * time.Second,
			ShutDownTimeout:    5 * time.Second,
			RequestTimeout:     1000 * time.Millisecond,
			CORSAllowedOrigins: "*",
		},
		Refresh: RefreshConfig{
			Enabled:  true,
			Interval: 60 * time.Second,
		},
		Misc: MiscConfig{
			LogLevel:  "info",
			LogFormat: "text",
			GinMode:   "release",
		},
	}
}

func TestConfig_Validate_Valid(t *testing.T) {
	if err := validConfig().validate(); err != nil {
		t.Errorf("expected valid config, got error: %v", err)
	}
}

func TestConfig_Validate_InvalidBaseURL(t *testing.T) {
	tests := []string{"", "api.example.com", "ftp://api.example.com", "http://", "://bad"}

	for _, base := range tests {
		t.Run(base, func(t *testing.T) {
			cfg := validConfig()
			cfg.Upstream.BaseURL = base
			if err := cfg.validate(); err == nil {
				t.Errorf("expected error for base url %q", base)
			}
		})
	}
}

func TestConfig_Validate_InvalidPort(t *testing.T) {
	tests := []struct {
		name string
		port int
	}{
		{"zero port", 0},
		{"negative port", -1},
		{"too high port", 65536},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			cfg.Server.Port = tt.port
			if err := cfg.validate(); err == nil {
				t.Errorf("expected error for port %d", tt.port)
			}
		})
	}
}

func TestConfig_Validate_InvalidTimeouts(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero read timeout", func(c *Config) { c.Server.ReadTimeout = 0 }},
		{"zero write timeout", func(c *Config) { c.Server.WriteTimeout = 0 }},
		{"zero idle timeout", func(c *Config) { c.Server.IdleTimeout = 0 }},
		{"zero shutdown timeout", func(c *Config) { c.Server.ShutDownTimeout = 0 }},
		{"zero request timeout", func(c *Config) { c.Server.RequestTimeout = 0 }},
		{"negative upstream timeout", func(c *Config) { c.Upstream.Timeout = -time.Second }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			if err := cfg.validate(); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestConfig_Validate_Upstream(t *testing.T) {
	cfg := validConfig()
	cfg.Upstream.PageSize = 0
	if err := cfg.validate(); err == nil {
		t.Error("expected error for zero page size")
	}

	cfg = validConfig()
	cfg.Upstream.SitesPath = ""
	if err := cfg.validate(); err == nil {
		t.Error("expected error for empty sites path")
	}
}

func TestConfig_Validate_RefreshInterval(t *testing.T) {
	cfg := validConfig()
	cfg.Refresh.Interval = 0
	if err := cfg.validate(); err == nil {
		t.Error("expected error for zero refresh interval")
	}

	// interval is ignored when refresh is off
	cfg.Refresh.Enabled = false
	if err := cfg.validate(); err != nil {
		t.Errorf("expected no error with refresh disabled, got %v", err)
	}
}

func TestConfig_Validate_Logging(t *testing.T) {
	cfg := validConfig()
	cfg.Misc.LogLevel = "loud"
	if err := cfg.validate(); err == nil {
		t.Error("expected error for invalid log level")
	}

	cfg = validConfig()
	cfg.Misc.LogLevel = "DEBUG"
	if err := cfg.validate(); err != nil {
		t.Errorf("expected upper-case level to be accepted, got %v", err)
	}

	cfg = validConfig()
	cfg.Misc.LogFormat = "xml"
	if err := cfg.validate(); err == nil {
		t.Error("expected error for invalid log format")
	}
}

func TestGetEnvOrDefault(t *testing.T) {
	_ = os.Setenv("TEST_ENV_VAR", "custom_value")
	defer func() { _ = os.Unsetenv("TEST_ENV_VAR") }()

	result := getEnvOrDefault("TEST_ENV_VAR", "default_value")
	if result != "custom_value" {
		t.Errorf("expected 'custom_value', got '%s'", result)
	}

	result = getEnvOrDefault("NONEXISTENT_VAR", "default_value")
	if result != "default_value" {
		t.Errorf("expected 'default_value', got '%s'", result)
	}
}

func TestGetEnvOrDefault_EmptyValue(t *testing.T) {
	_ = os.Setenv("TEST_EMPTY_VAR", "")
	defer func() { _ = os.Unsetenv("TEST_EMPTY_VAR") }()

	result := getEnvOrDefault("TEST_EMPTY_VAR", "default_value")
	if result != "default_value" {
		t.Errorf("expected 'default_value' for empty env, got '%s'", result)
	}
}

func TestGetEnvOrViperPort_FromEnv(t *testing.T) {
	_ = os.Setenv("TEST_PORT", "9090")
	defer func() { _ = os.Unsetenv("TEST_PORT") }()

	port, err := getEnvOrViperPort("TEST_PORT", "server.port")
	if err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if port != 9090 {
		t.Errorf("expected 9090, got %d", port)
	}
}

func TestGetEnvOrViperPort_InvalidEnv(t *testing.T) {
	_ = os.Setenv("TEST_PORT_INVALID", "not_a_number")
	defer func() { _ = os.Unsetenv("TEST_PORT_INVALID") }()

	_, err := getEnvOrViperPort("TEST_PORT_INVALID", "server.port")
	if err == nil {
		t.Error("expected error for invalid port")
	}
}

func TestLoadConfig_WithValidDefaults(t *testing.T) {
	t.Setenv("SITEDESK_CONFIG_PATH", t.TempDir())

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("expected no error loading config, got: %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("expected default port 8080, got %d", cfg.Server.Port)
	}
	if cfg.Upstream.PageSize != 20 {
		t.Errorf("expected default page size 20, got %d", cfg.Upstream.PageSize)
	}
	if cfg.Refresh.Interval != 60*time.Second {
		t.Errorf("expected default refresh interval 60s, got %v", cfg.Refresh.Interval)
	}
	if cfg.ConfigFile != "" {
		t.Errorf("expected no config file, got %q", cfg.ConfigFile)
	}
}

func TestLoadConfig_WithCustomPort(t *testing.T) {
	t.Setenv("SITEDESK_CONFIG_PATH", t.TempDir())
	t.Setenv("PORT", "9999")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("expected no error loading config, got: %v", err)
	}
	if cfg.Server.Port != 9999 {
		t.Errorf("expected port 9999, got %d", cfg.Server.Port)
	}
}

func TestLoadConfig_WithInvalidPort(t *testing.T) {
	t.Setenv("SITEDESK_CONFIG_PATH", t.TempDir())
	t.Setenv("PORT", "not_a_port")

	if _, err := LoadConfig(); err == nil {
		t.Error("expected error for invalid port, got nil")
	}
}

func TestLoadConfig_FromFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	content := `upstream:
  base_url: https://api.example.com
  page_size: 50
refresh:
  interval: 30s
misc:
  log_level: debug
`
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	t.Setenv("SITEDESK_CONFIG_PATH", dir)
	t.Setenv("SITEDESK_UPSTREAM_TOKEN", "secret")
	t.Setenv("SITEDESK_UPSTREAM_PAGE_SIZE", "5")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if cfg.Upstream.BaseURL != "https://api.example.com" {
		t.Errorf("expected base url from file, got %q", cfg.Upstream.BaseURL)
	}
	if cfg.Upstream.Token != "secret" {
		t.Errorf("expected token from env, got %q", cfg.Upstream.Token)
	}
	if cfg.Upstream.PageSize != 5 {
		t.Errorf("expected env to override page size, got %d", cfg.Upstream.PageSize)
	}
	if cfg.Refresh.Interval != 30*time.Second {
		t.Errorf("expected 30s interval, got %v", cfg.Refresh.Interval)
	}
	if cfg.Misc.LogLevel != "debug" {
		t.Errorf("expected debug level, got %q", cfg.Misc.LogLevel)
	}
	if filepath.Base(cfg.ConfigFile) != "config.yaml" {
		t.Errorf("expected config file to be recorded, got %q", cfg.ConfigFile)
	}
}

func TestLoadConfig_InvalidFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("upstream: [unclosed"), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	t.Setenv("SITEDESK_CONFIG_PATH", dir)

	if _, err := LoadConfig(); err == nil {
		t.Error("expected error for malformed config file")
	}
}

func TestLoadConfig_InvalidValues(t *testing.T) {
	t.Setenv("SITEDESK_CONFIG_PATH", t.TempDir())
	t.Setenv("SITEDESK_UPSTREAM_BASE_URL", "not a url")

	if _, err := LoadConfig(); err == nil {
		t.Error("expected validation error")
	}
}

func TestWatchFile_Validation(t *testing.T) {
	if err := WatchFile(context.Background(), "", func() {}); err == nil {
		t.Error("expected error for empty path")
	}
	if err := WatchFile(context.Background(), "/tmp/x.yaml", nil); err == nil {
		t.Error("expected error for nil callback")
	}
	if err := WatchFile(context.Background(), filepath.Join(t.TempDir(), "missing", "x.yaml"), func() {}); err == nil {
		t.Error("expected error for missing directory")
	}
}

func TestWatchFile_CallsOnChange(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("a: 1\n"), 0o644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changed := make(chan struct{}, 10)
	if err := WatchFile(ctx, path, func() { changed <- struct{}{} }); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// unrelated files in the same directory are ignored
	if err := os.WriteFile(filepath.Join(dir, "other.yaml"), []byte("b: 2\n"), 0o644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}
	select {
	case <-changed:
		t.Fatal("unexpected callback for unrelated file")
	case <-time.After(2 * watchDebounce):
	}

	if err := os.WriteFile(path, []byte("a: 2\n"), 0o644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}
	select {
	case <-changed:
	case <-time.After(3 * time.Second):
		t.Fatal("expected onChange after write")
	}
}
