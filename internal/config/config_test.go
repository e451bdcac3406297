package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadFrom(t *testing.T) {
	t.Run("reads credentials from env file", func(t *testing.T) {
		dir := t.TempDir()
		envPath := filepath.Join(dir, ".env")
		content := "WECHAT_APPID=wxabc123\nWECHAT_APP_SECRET=supersecretvalue123456\n"
		if err := os.WriteFile(envPath, []byte(content), 0o600); err != nil {
			t.Fatal(err)
		}
		// gotenv.Load never overrides; clear any ambient values first.
		t.Setenv("WECHAT_APPID", "")
		t.Setenv("WECHAT_APP_SECRET", "")
		os.Unsetenv("WECHAT_APPID")
		os.Unsetenv("WECHAT_APP_SECRET")

		cfg, err := LoadFrom(envPath)
		if err != nil {
			t.Fatalf("LoadFrom: %v", err)
		}
		if cfg.AppID != "wxabc123" {
			t.Errorf("AppID = %q", cfg.AppID)
		}
		if cfg.AppSecret != "supersecretvalue123456" {
			t.Errorf("AppSecret = %q", cfg.AppSecret)
		}
	})

	t.Run("environment wins over env file", func(t *testing.T) {
		dir := t.TempDir()
		envPath := filepath.Join(dir, ".env")
		if err := os.WriteFile(envPath, []byte("WECHAT_APPID=fromfile\nWECHAT_APP_SECRET=filesecret\n"), 0o600); err != nil {
			t.Fatal(err)
		}
		t.Setenv("WECHAT_APPID", "wxfromenv")
		t.Setenv("WECHAT_APP_SECRET", "envsecret1234567890abc")

		cfg, err := LoadFrom(envPath)
		if err != nil {
			t.Fatalf("LoadFrom: %v", err)
		}
		if cfg.AppID != "wxfromenv" {
			t.Errorf("AppID = %q, want env value", cfg.AppID)
		}
	})

	t.Run("missing appid", func(t *testing.T) {
		t.Setenv("WECHAT_APPID", "")
		t.Setenv("WECHAT_APP_SECRET", "x")
		os.Unsetenv("WECHAT_APPID")

		_, err := LoadFrom(filepath.Join(t.TempDir(), "absent.env.ignored"))
		if err == nil {
			// A named env path that does not exist is an error before
			// the credential check.
			t.Fatal("expected error")
		}
	})

	t.Run("missing secret", func(t *testing.T) {
		dir := t.TempDir()
		envPath := filepath.Join(dir, ".env")
		if err := os.WriteFile(envPath, []byte("WECHAT_APPID=wxonly\n"), 0o600); err != nil {
			t.Fatal(err)
		}
		t.Setenv("WECHAT_APPID", "")
		t.Setenv("WECHAT_APP_SECRET", "")
		os.Unsetenv("WECHAT_APPID")
		os.Unsetenv("WECHAT_APP_SECRET")

		_, err := LoadFrom(envPath)
		if !errors.Is(err, ErrMissingAppSecret) {
			t.Errorf("error = %v, want ErrMissingAppSecret", err)
		}
	})

	t.Run("host and port defaults", func(t *testing.T) {
		dir := t.TempDir()
		envPath := filepath.Join(dir, ".env")
		if err := os.WriteFile(envPath, []byte("WECHAT_APPID=wxa\nWECHAT_APP_SECRET=abcdefghijklmnopqrstuv\n"), 0o600); err != nil {
			t.Fatal(err)
		}
		t.Setenv("MD2WECHAT_HOST", "")
		t.Setenv("MD2WECHAT_PORT", "")
		os.Unsetenv("MD2WECHAT_HOST")
		os.Unsetenv("MD2WECHAT_PORT")

		cfg, err := LoadFrom(envPath)
		if err != nil {
			t.Fatalf("LoadFrom: %v", err)
		}
		if got := cfg.Addr(); got != "0.0.0.0:8000" {
			t.Errorf("Addr() = %q", got)
		}
	})

	t.Run("host and port overrides", func(t *testing.T) {
		dir := t.TempDir()
		envPath := filepath.Join(dir, ".env")
		if err := os.WriteFile(envPath, []byte("WECHAT_APPID=wxa\nWECHAT_APP_SECRET=abcdefghijklmnopqrstuv\n"), 0o600); err != nil {
			t.Fatal(err)
		}
		t.Setenv("MD2WECHAT_HOST", "127.0.0.1")
		t.Setenv("MD2WECHAT_PORT", "9000")

		cfg, err := LoadFrom(envPath)
		if err != nil {
			t.Fatalf("LoadFrom: %v", err)
		}
		if got := cfg.Addr(); got != "127.0.0.1:9000" {
			t.Errorf("Addr() = %q", got)
		}
	})
}

func TestEnvOrDefault(t *testing.T) {
	t.Setenv("MD2WECHAT_TEST_KEY", "set")
	if got := envOrDefault("MD2WECHAT_TEST_KEY", "fb"); got != "set" {
		t.Errorf("envOrDefault = %q", got)
	}
	if got := envOrDefault("MD2WECHAT_TEST_MISSING", "fb"); got != "fb" {
		t.Errorf("envOrDefault = %q", got)
	}
}

func TestPrefix(t *testing.T) {
	t.Parallel()

	if got := prefix("wx1234567890", 6); got != "wx1234..." {
		t.Errorf("prefix = %q", got)
	}
	if got := prefix("wx", 6); got != "wx" {
		t.Errorf("prefix = %q", got)
	}
}
