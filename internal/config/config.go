// Package config handles WeChat Official Account credential loading from
// environment variables and optional .env files. It provides the Config
// struct shared by the CLI and the web front end.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/subosito/gotenv"
)

// Sentinel errors for credential loading.
var (
	ErrMissingAppID     = errors.New("WECHAT_APPID not set; add it to .env or the environment")
	ErrMissingAppSecret = errors.New("WECHAT_APP_SECRET not set; add it to .env or the environment")
)

// envSearchDepth limits how many parent directories are searched for a
// .env file.
const envSearchDepth = 5

// Config holds WeChat API credentials and server settings.
type Config struct {
	AppID     string
	AppSecret string

	// Web server settings.
	Host string
	Port string
}

// Load reads configuration from the environment, after loading the
// nearest .env file (current directory upwards) when one exists.
// Variables already present in the environment win over .env values.
func Load() (*Config, error) {
	return LoadFrom("")
}

// LoadFrom behaves like Load but reads the .env file at envPath when it
// is non-empty.
func LoadFrom(envPath string) (*Config, error) {
	if envPath == "" {
		envPath = findEnvFile()
	}
	if envPath != "" {
		// gotenv.Load never overrides variables already set.
		if err := gotenv.Load(envPath); err != nil {
			return nil, fmt.Errorf("loading %s: %w", envPath, err)
		}
	}

	cfg := &Config{
		AppID:     os.Getenv("WECHAT_APPID"),
		AppSecret: os.Getenv("WECHAT_APP_SECRET"),
		Host:      envOrDefault("MD2WECHAT_HOST", "0.0.0.0"),
		Port:      envOrDefault("MD2WECHAT_PORT", "8000"),
	}

	if cfg.AppID == "" {
		return nil, ErrMissingAppID
	}
	if cfg.AppSecret == "" {
		return nil, ErrMissingAppSecret
	}
	return cfg, nil
}

// Addr returns the web server listen address (host:port).
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

// Validate logs warnings for credentials that look wrong: AppIDs start
// with wx or gh, and AppSecrets are 32 characters. Neither check is
// fatal; the API reports the authoritative answer.
func (c *Config) Validate() {
	if !strings.HasPrefix(c.AppID, "wx") && !strings.HasPrefix(c.AppID, "gh") {
		slog.Warn("WECHAT_APPID does not start with wx or gh; check mp.weixin.qq.com",
			"appid_prefix", prefix(c.AppID, 6))
	}
	if len(c.AppSecret) < 20 {
		slog.Warn("WECHAT_APP_SECRET looks too short; make sure it is the secret, not the AppID",
			"length", len(c.AppSecret))
	}
}

// findEnvFile walks from the working directory upwards looking for .env.
func findEnvFile() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}
	for i := 0; i < envSearchDepth; i++ {
		candidate := filepath.Join(dir, ".env")
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return ""
}

// envOrDefault reads an environment variable, returning a fallback if unset or empty.
func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func prefix(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
