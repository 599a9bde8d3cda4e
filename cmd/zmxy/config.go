package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/philiph/zmxy"
)

// Environment variables that override the config file.
const (
	envAppID    = "ZMXY_APP_ID"
	envEndpoint = "ZMXY_ENDPOINT"
)

// Config is the YAML configuration of the command line tool.
type Config struct {
	// Platform is the integrator's platform name.
	Platform string `yaml:"platform"`

	// AppID is the app id assigned by the provider.
	AppID string `yaml:"app_id"`

	// PrivateKeyFile is the path to the integration's PEM private key.
	PrivateKeyFile string `yaml:"private_key_file"`

	// PublicKeyFile is the path to the provider's PEM public key.
	PublicKeyFile string `yaml:"public_key_file"`

	// Endpoint overrides the production gateway.
	Endpoint string `yaml:"endpoint"`

	// SignType is "RSA" or "RSA2".
	SignType string `yaml:"sign_type"`

	// EncryptRequest seals business content for the provider.
	EncryptRequest bool `yaml:"encrypt_request"`

	// Timeout bounds each round trip, e.g. "30s".
	Timeout time.Duration `yaml:"timeout"`

	Log LogConfig `yaml:"log"`
}

// LogConfig configures logging. Logs go to stderr unless File is set, in
// which case the file is rotated by size.
type LogConfig struct {
	Level       string `yaml:"level"`
	File        string `yaml:"file"`
	MaxSizeMB   int    `yaml:"max_size_mb"`
	MaxBackups  int    `yaml:"max_backups"`
	MaxAgeDays  int    `yaml:"max_age_days"`
	Development bool   `yaml:"development"`
}

// SetDefaults fills in unset optional fields.
func (c *Config) SetDefaults() {
	if c.Endpoint == "" {
		c.Endpoint = zmxy.DefaultEndpoint
	}
	if c.SignType == "" {
		c.SignType = zmxy.SignTypeRSA
	}
	if c.Timeout == 0 {
		c.Timeout = zmxy.DefaultTimeout
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.MaxSizeMB == 0 {
		c.Log.MaxSizeMB = 100
	}
	if c.Log.MaxBackups == 0 {
		c.Log.MaxBackups = 5
	}
	if c.Log.MaxAgeDays == 0 {
		c.Log.MaxAgeDays = 28
	}
}

// Validate checks the fields the client cannot default.
func (c *Config) Validate() error {
	if c.AppID == "" {
		return zmxy.ConfigError("app_id is required (config file or " + envAppID + ")")
	}
	if c.PrivateKeyFile == "" {
		return zmxy.ConfigError("private_key_file is required")
	}
	if c.PublicKeyFile == "" {
		return zmxy.ConfigError("public_key_file is required")
	}
	return nil
}

// LoadConfig reads path, applies environment overrides and defaults.
// A missing file is not an error when every required field comes from
// the environment.
func LoadConfig(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := decodeConfig(data, cfg); err != nil {
			return nil, err
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return nil, &zmxy.AppError{Code: zmxy.ErrCodeConfigMissing, Message: "read config " + path, Cause: err}
	}

	if v := os.Getenv(envAppID); v != "" {
		cfg.AppID = v
	}
	if v := os.Getenv(envEndpoint); v != "" {
		cfg.Endpoint = v
	}
	cfg.SetDefaults()
	return cfg, nil
}

func decodeConfig(data []byte, cfg *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return &zmxy.AppError{Code: zmxy.ErrCodeConfigMissing, Message: "parse config", Cause: err}
	}
	return nil
}

// ClientOptions reads the key files and builds the client options.
func (c *Config) ClientOptions() (zmxy.Options, error) {
	if err := c.Validate(); err != nil {
		return zmxy.Options{}, err
	}
	priv, err := os.ReadFile(c.PrivateKeyFile)
	if err != nil {
		return zmxy.Options{}, &zmxy.AppError{Code: zmxy.ErrCodeConfigMissing,
			Message: fmt.Sprintf("read private key %s", c.PrivateKeyFile), Cause: err}
	}
	pub, err := os.ReadFile(c.PublicKeyFile)
	if err != nil {
		return zmxy.Options{}, &zmxy.AppError{Code: zmxy.ErrCodeConfigMissing,
			Message: fmt.Sprintf("read public key %s", c.PublicKeyFile), Cause: err}
	}
	return zmxy.Options{
		Platform:       c.Platform,
		AppID:          c.AppID,
		PrivateKey:     priv,
		PublicKey:      pub,
		Endpoint:       c.Endpoint,
		SignType:       c.SignType,
		EncryptRequest: c.EncryptRequest,
		Timeout:        c.Timeout,
		UserAgent:      "zmxy-cli",
	}, nil
}
