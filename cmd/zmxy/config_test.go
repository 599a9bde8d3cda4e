//go:build unit

package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/philiph/zmxy"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

// TestLoadConfig_Defaults verifies a minimal file gets defaults.
func TestLoadConfig_Defaults(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "zmxy.yaml", `
app_id: "1000980"
private_key_file: private.pem
public_key_file: zhima.pem
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() returned error: %v", err)
	}
	if cfg.AppID != "1000980" {
		t.Errorf("AppID = %q", cfg.AppID)
	}
	if cfg.Endpoint != zmxy.DefaultEndpoint {
		t.Errorf("Endpoint = %q, want default", cfg.Endpoint)
	}
	if cfg.SignType != zmxy.SignTypeRSA {
		t.Errorf("SignType = %q, want RSA", cfg.SignType)
	}
	if cfg.Timeout != zmxy.DefaultTimeout {
		t.Errorf("Timeout = %v, want %v", cfg.Timeout, zmxy.DefaultTimeout)
	}
	if cfg.Log.Level != "info" || cfg.Log.MaxSizeMB != 100 || cfg.Log.MaxBackups != 5 || cfg.Log.MaxAgeDays != 28 {
		t.Errorf("Log = %+v, want defaults", cfg.Log)
	}
}

// TestLoadConfig_AllFields verifies every field is read.
func TestLoadConfig_AllFields(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "zmxy.yaml", `
platform: bmqb
app_id: "1000980"
private_key_file: /keys/private.pem
public_key_file: /keys/zhima.pem
endpoint: https://sandbox.example.com/openapi.do
sign_type: RSA2
encrypt_request: true
timeout: 5s
log:
  level: debug
  file: /var/log/zmxy.log
  max_size_mb: 10
  max_backups: 2
  max_age_days: 7
  development: true
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() returned error: %v", err)
	}
	if cfg.Platform != "bmqb" || cfg.SignType != "RSA2" || !cfg.EncryptRequest {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.Timeout != 5*time.Second {
		t.Errorf("Timeout = %v, want 5s", cfg.Timeout)
	}
	if cfg.Endpoint != "https://sandbox.example.com/openapi.do" {
		t.Errorf("Endpoint = %q", cfg.Endpoint)
	}
	want := LogConfig{Level: "debug", File: "/var/log/zmxy.log", MaxSizeMB: 10, MaxBackups: 2, MaxAgeDays: 7, Development: true}
	if cfg.Log != want {
		t.Errorf("Log = %+v, want %+v", cfg.Log, want)
	}
}

// TestLoadConfig_EnvOverride verifies environment variables win over the file.
func TestLoadConfig_EnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "zmxy.yaml", `
app_id: "1000980"
endpoint: https://file.example.com/openapi.do
`)
	t.Setenv(envAppID, "2000001")
	t.Setenv(envEndpoint, "https://env.example.com/openapi.do")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() returned error: %v", err)
	}
	if cfg.AppID != "2000001" {
		t.Errorf("AppID = %q, want env value", cfg.AppID)
	}
	if cfg.Endpoint != "https://env.example.com/openapi.do" {
		t.Errorf("Endpoint = %q, want env value", cfg.Endpoint)
	}
}

// TestLoadConfig_MissingFile verifies a missing file falls back to env.
func TestLoadConfig_MissingFile(t *testing.T) {
	t.Setenv(envAppID, "1000980")

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("LoadConfig() returned error: %v", err)
	}
	if cfg.AppID != "1000980" {
		t.Errorf("AppID = %q", cfg.AppID)
	}
}

// TestLoadConfig_Errors verifies bad files are config errors.
func TestLoadConfig_Errors(t *testing.T) {
	dir := t.TempDir()

	testCases := []struct {
		name    string
		content string
	}{
		{"unknown field", "app_id: x\nsecret_sauce: true\n"},
		{"bad timeout", "timeout: soon\n"},
		{"not yaml", "app_id: [unterminated\n"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			path := writeFile(t, dir, "bad.yaml", tc.content)
			_, err := LoadConfig(path)
			if !zmxy.IsCode(err, zmxy.ErrCodeConfigMissing) {
				t.Errorf("LoadConfig() error = %v, want config_missing", err)
			}
		})
	}
}

// TestConfig_ClientOptions verifies validation and key loading.
func TestConfig_ClientOptions(t *testing.T) {
	dir := t.TempDir()
	priv := writeFile(t, dir, "private.pem", "private")
	pub := writeFile(t, dir, "zhima.pem", "public")

	t.Run("complete", func(t *testing.T) {
		cfg := &Config{AppID: "1000980", PrivateKeyFile: priv, PublicKeyFile: pub, SignType: "RSA2", Timeout: time.Second}
		opts, err := cfg.ClientOptions()
		if err != nil {
			t.Fatalf("ClientOptions() returned error: %v", err)
		}
		if string(opts.PrivateKey) != "private" || string(opts.PublicKey) != "public" {
			t.Errorf("keys = %q, %q", opts.PrivateKey, opts.PublicKey)
		}
		if opts.SignType != "RSA2" || opts.Timeout != time.Second || opts.UserAgent != "zmxy-cli" {
			t.Errorf("opts = %+v", opts)
		}
	})

	testCases := []struct {
		name string
		cfg  Config
	}{
		{"no app id", Config{PrivateKeyFile: priv, PublicKeyFile: pub}},
		{"no private key", Config{AppID: "1", PublicKeyFile: pub}},
		{"no public key", Config{AppID: "1", PrivateKeyFile: priv}},
		{"unreadable private key", Config{AppID: "1", PrivateKeyFile: filepath.Join(dir, "nope.pem"), PublicKeyFile: pub}},
		{"unreadable public key", Config{AppID: "1", PrivateKeyFile: priv, PublicKeyFile: filepath.Join(dir, "nope.pem")}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := tc.cfg.ClientOptions()
			if !zmxy.IsCode(err, zmxy.ErrCodeConfigMissing) {
				t.Errorf("ClientOptions() error = %v, want config_missing", err)
			}
		})
	}
}
