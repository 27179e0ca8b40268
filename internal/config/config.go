package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultPath is read when no -config flag is given.
const DefaultPath = "urlparts-server.yaml"

// Config is the server configuration file.
type Config struct {
	ListenAddr         string        `yaml:"listen_address"`
	Port               string        `yaml:"port"`
	RedisAddr          string        `yaml:"redis_address"`
	RedisDB            int           `yaml:"redis_db"`
	HistorySize        int64         `yaml:"history_size"`         // entries kept in Redis
	SummaryTTL         time.Duration `yaml:"summary_ttl"`          // e.g. "1s"
	MaxConcurrentBatch int           `yaml:"max_concurrent_batch"` // batch requests handled at once; more get 429
	TrustedProxies     []string      `yaml:"trusted_proxies"`
	CORSOrigins        []string      `yaml:"cors_origins"` // dev only
}

func (c *Config) setDefaults() {
	if c.ListenAddr == "" {
		c.ListenAddr = "127.0.0.1"
	}
	if c.Port == "" {
		c.Port = "8080"
	}
	if c.RedisAddr == "" {
		c.RedisAddr = "localhost:6379"
	}
	if c.HistorySize <= 0 {
		c.HistorySize = 100
	}
	if c.SummaryTTL <= 0 {
		c.SummaryTTL = time.Second
	}
	if c.MaxConcurrentBatch <= 0 {
		c.MaxConcurrentBatch = 8
	}
	if len(c.TrustedProxies) == 0 {
		c.TrustedProxies = []string{"127.0.0.1"}
	}
}

// Addr returns the host:port the HTTP server listens on.
func (c *Config) Addr() string { return c.ListenAddr + ":" + c.Port }

// Load reads the YAML file at path and fills in defaults for anything unset.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	return parse(data)
}

func parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	cfg.setDefaults()
	return &cfg, nil
}
