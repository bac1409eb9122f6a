package config

import (
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Server struct {
		Port string `yaml:"port"`
	} `yaml:"server"`
	Upstream struct {
		BaseURL string `yaml:"base_url" validate:"omitempty,url"`
		Timeout string `yaml:"timeout"`
	} `yaml:"upstream"`
	Redis struct {
		Addr     string `yaml:"addr"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
	} `yaml:"redis"`
	Postgres struct {
		URL string `yaml:"url"`
	} `yaml:"postgres"`
	Content struct {
		CacheTTL   string `yaml:"cache_ttl"`
		SectionTTL string `yaml:"section_ttl"`
	} `yaml:"content"`
	Search struct {
		SuggestLimit int    `yaml:"suggest_limit" validate:"omitempty,min=1"`
		Debounce     string `yaml:"debounce"`
	} `yaml:"search"`
	Quiz struct {
		SessionTTL string `yaml:"session_ttl"`
	} `yaml:"quiz"`
	Log struct {
		Level string `yaml:"level" validate:"omitempty,oneof=debug info warn error"`
	} `yaml:"log"`
}

// Load reads YAML config from path.
func Load(path string) (Config, error) {
	cfg := Config{}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	if err := validator.New().Struct(cfg); err != nil {
		return cfg, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}

// TTLDuration parses a duration string or returns the fallback if empty.
func TTLDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}
	if d, err := time.ParseDuration(raw); err == nil {
		return d
	}
	return fallback
}
