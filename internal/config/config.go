package config

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds the application configuration loaded from files and environment variables.
type Config struct {
	AppName  string `mapstructure:"app_name"`
	Env      string `mapstructure:"app_env"`
	LogLevel string `mapstructure:"log_level"`

	BaseURL          string        `mapstructure:"base_url"`
	RequestTimeoutMs int64         `mapstructure:"request_timeout_ms"`
	RequestTimeout   time.Duration `mapstructure:"-"`
	AppID            string        `mapstructure:"app_id"`
	AppVersion       string        `mapstructure:"app_version"`

	ClientFile     string            `mapstructure:"client_file"`
	DefaultHeaders map[string]string `mapstructure:"default_headers"`
	Headers        map[string]string `mapstructure:"headers"`

	StorageType     string        `mapstructure:"storage_type"`
	BBoltPath       string        `mapstructure:"bbolt_path"`
	TokenTTLSeconds int64         `mapstructure:"token_ttl_seconds"`
	TokenTTL        time.Duration `mapstructure:"-"`

	EndpointsFile  string `mapstructure:"endpoints_file"`
	PublishersFile string `mapstructure:"publishers_file"`
}

// Load reads configuration from environment variables and config files.
func Load() (*Config, error) {
	_ = godotenv.Load("configs/.env")
	return load(viper.New())
}

func load(v *viper.Viper) (*Config, error) {
	v.SetDefault("app_name", "foodstack-client")
	v.SetDefault("app_env", "development")
	v.SetDefault("log_level", "info")
	v.SetDefault("base_url", "https://apistaging.foodstack.fr")
	v.SetDefault("request_timeout_ms", 0)
	v.SetDefault("app_id", "")
	v.SetDefault("app_version", "")
	v.SetDefault("client_file", "./configs/client.yaml")
	v.SetDefault("storage_type", "bbolt")
	v.SetDefault("bbolt_path", "./data/credentials.db")
	v.SetDefault("token_ttl_seconds", int64((30*24*time.Hour)/time.Second))
	v.SetDefault("endpoints_file", "./configs/endpoints.yaml")
	v.SetDefault("publishers_file", "")

	v.AutomaticEnv()

	if path := strings.TrimSpace(v.GetString("client_file")); path != "" {
		if err := mergeClientFile(v, path); err != nil {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	cfg.BaseURL = strings.TrimSpace(cfg.BaseURL)
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("invalid base_url (must not be empty)")
	}
	if cfg.RequestTimeoutMs < 0 {
		return nil, fmt.Errorf("invalid request_timeout_ms (must be zero or positive milliseconds)")
	}
	cfg.RequestTimeout = time.Duration(cfg.RequestTimeoutMs) * time.Millisecond

	if cfg.TokenTTLSeconds <= 0 {
		return nil, fmt.Errorf("invalid token_ttl_seconds (must be positive seconds)")
	}
	cfg.TokenTTL = time.Duration(cfg.TokenTTLSeconds) * time.Second

	return &cfg, nil
}

// mergeClientFile merges the optional YAML client file. A missing file is not an error.
func mergeClientFile(v *viper.Viper, path string) error {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("stat client file: %w", err)
	}
	v.SetConfigFile(path)
	if err := v.MergeInConfig(); err != nil {
		return fmt.Errorf("read client file: %w", err)
	}
	return nil
}

// HeaderValues converts a flat header map into http.Header, skipping blank names.
func HeaderValues(in map[string]string) http.Header {
	out := make(http.Header, len(in))
	for k, v := range in {
		k = strings.TrimSpace(k)
		if k == "" {
			continue
		}
		out.Add(k, strings.TrimSpace(v))
	}
	return out
}
