package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/bassista/go_sitedesk/internal/logger"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// UpstreamConfig describes the REST API entities are fetched from.
type UpstreamConfig struct {
	BaseURL     string
	Token       string
	Timeout     time.Duration
	SitesPath   string
	ClientsPath string
	UserPath    string
	PageSize    int
}

type ServerConfig struct {
	Port               int
	ReadTimeout        time.Duration
	WriteTimeout       time.Duration
	IdleTimeout        time.Duration
	ShutDownTimeout    time.Duration
	RequestTimeout     time.Duration
	CORSAllowedOrigins string
}

// RefreshConfig controls the background pull from upstream.
type RefreshConfig struct {
	Enabled  bool
	Interval time.Duration
}

type MiscConfig struct {
	LogLevel  string
	LogFormat string
	GinMode   string
}

type Config struct {
	Upstream UpstreamConfig
	Server   ServerConfig
	Refresh  RefreshConfig
	Misc     MiscConfig

	// ConfigFile is the file viper read, empty when running on defaults and env only.
	ConfigFile string
}

// LoadConfig reads .env, then config.yaml from SITEDESK_CONFIG_PATH (default ./config),
// then SITEDESK_* environment variables, in increasing priority.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	viper.Reset()
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(getEnvOrDefault("SITEDESK_CONFIG_PATH", "./config"))

	viper.SetDefault("upstream.base_url", "http://localhost:3000")
	viper.SetDefault("upstream.timeout", 10*time.Second)
	viper.SetDefault("upstream.sites_path", "/sites")
	viper.SetDefault("upstream.clients_path", "/clients")
	viper.SetDefault("upstream.user_path", "/me")
	viper.SetDefault("upstream.page_size", 20)
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.read_timeout", 10*time.Second)
	viper.SetDefault("server.write_timeout", 10*time.Second)
	viper.SetDefault("server.idle_timeout", 120*time.Second)
	viper.SetDefault("server.shutdown_timeout", 5*time.Second)
	viper.SetDefault("server.request_timeout", 2*time.Second)
	viper.SetDefault("server.cors_allowed_origins", "*")
	viper.SetDefault("refresh.enabled", true)
	viper.SetDefault("refresh.interval", 60*time.Second)
	viper.SetDefault("misc.log_level", "info")
	viper.SetDefault("misc.log_format", "text")
	viper.SetDefault("misc.gin_mode", "release")

	// Environment variables like SITEDESK_UPSTREAM_BASE_URL override upstream.base_url
	viper.SetEnvPrefix("SITEDESK")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("config file error: %w", err)
		}
		logger.WithComponent("config").Info("no config file found, using defaults and env vars")
	}

	port, err := getEnvOrViperPort("PORT", "server.port")
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Upstream: UpstreamConfig{
			BaseURL:     viper.GetString("upstream.base_url"),
			Token:       viper.GetString("upstream.token"),
			Timeout:     viper.GetDuration("upstream.timeout"),
			SitesPath:   viper.GetString("upstream.sites_path"),
			ClientsPath: viper.GetString("upstream.clients_path"),
			UserPath:    viper.GetString("upstream.user_path"),
			PageSize:    viper.GetInt("upstream.page_size"),
		},
		Server: ServerConfig{
			Port:               port,
			ReadTimeout:        viper.GetDuration("server.read_timeout"),
			WriteTimeout:       viper.GetDuration("server.write_timeout"),
			IdleTimeout:        viper.GetDuration("server.idle_timeout"),
			ShutDownTimeout:    viper.GetDuration("server.shutdown_timeout"),
			RequestTimeout:     viper.GetDuration("server.request_timeout"),
			CORSAllowedOrigins: viper.GetString("server.cors_allowed_origins"),
		},
		Refresh: RefreshConfig{
			Enabled:  viper.GetBool("refresh.enabled"),
			Interval: viper.GetDuration("refresh.interval"),
		},
		Misc: MiscConfig{
			LogLevel:  viper.GetString("misc.log_level"),
			LogFormat: viper.GetString("misc.log_format"),
			GinMode:   viper.GetString("misc.gin_mode"),
		},
		ConfigFile: viper.ConfigFileUsed(),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	u, err := url.Parse(c.Upstream.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid upstream base url %q", c.Upstream.BaseURL)
	}
	if c.Upstream.Timeout <= 0 {
		return errors.New("upstream timeout must be positive")
	}
	if c.Upstream.SitesPath == "" || c.Upstream.ClientsPath == "" || c.Upstream.UserPath == "" {
		return errors.New("upstream resource paths are required")
	}
	if c.Upstream.PageSize <= 0 {
		return fmt.Errorf("invalid upstream page size %d", c.Upstream.PageSize)
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Server.Port)
	}
	if c.Server.ReadTimeout <= 0 || c.Server.WriteTimeout <= 0 || c.Server.IdleTimeout <= 0 || c.Server.ShutDownTimeout <= 0 {
		return errors.New("server timeouts must be positive")
	}
	if c.Server.RequestTimeout <= 0 {
		return errors.New("request timeout must be positive")
	}
	if c.Refresh.Enabled && c.Refresh.Interval <= 0 {
		return errors.New("refresh interval must be positive when refresh is enabled")
	}
	if _, err := logrus.ParseLevel(strings.ToLower(c.Misc.LogLevel)); err != nil {
		return fmt.Errorf("invalid log level %q", c.Misc.LogLevel)
	}
	if c.Misc.LogFormat != "" && c.Misc.LogFormat != "text" && c.Misc.LogFormat != "json" {
		return fmt.Errorf("invalid log format %q", c.Misc.LogFormat)
	}
	return nil
}

func getEnvOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvOrViperPort(envKey, viperKey string) (int, error) {
	if v := os.Getenv(envKey); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %w", envKey, err)
		}
		return port, nil
	}
	return viper.GetInt(viperKey), nil
}
