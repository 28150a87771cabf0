package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is the prefix of environment overrides: MOZGNAMAXA_SECTION__KEY.
const EnvPrefix = "MOZGNAMAXA_"

// Config represents the top-level application config.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Database  DatabaseConfig  `koanf:"database"`
	History   HistoryConfig   `koanf:"history"`
	Catalogue CatalogueConfig `koanf:"catalogue"`
	Audit     AuditConfig     `koanf:"audit"`
	Notify    NotifyConfig    `koanf:"notify"`
}

type ServerConfig struct {
	Port           int    `koanf:"port"`
	Host           string `koanf:"host"`
	MaxBodySizeMB  int    `koanf:"max_body_size_mb"`
	Mode           string `koanf:"mode"` // debug | release
	IdentityHeader string `koanf:"identity_header"`
}

type DatabaseConfig struct {
	Type         string `koanf:"type"` // postgres | sqlite | memory
	DSN          string `koanf:"dsn"`
	MaxOpenConns int    `koanf:"max_open_conns"`
	MaxIdleConns int    `koanf:"max_idle_conns"`
	AutoMigrate  bool   `koanf:"auto_migrate"`
}

// HistoryConfig tunes the completion history cache. Durations are Go duration strings.
type HistoryConfig struct {
	Debounce     string `koanf:"debounce"`
	SettleDelay  string `koanf:"settle_delay"`
	FetchTimeout string `koanf:"fetch_timeout"`
	Capacity     int    `koanf:"capacity"`
}

type CatalogueConfig struct {
	Path string `koanf:"path"` // empty or missing file = built-in defaults
}

type AuditConfig struct {
	Enabled     bool   `koanf:"enabled"`
	Interval    string `koanf:"interval"`
	BatchSize   int    `koanf:"batch_size"`
	WorkerCount int    `koanf:"worker_count"`
}

type NotifyConfig struct {
	Type      string `koanf:"type"` // local | redis
	RedisAddr string `koanf:"redis_addr"`
	Channel   string `koanf:"channel"`
}

// DebounceDuration, SettleDelayDuration and FetchTimeoutDuration return the parsed
// history durations. Call Validate first; invalid values parse as zero.
func (c HistoryConfig) DebounceDuration() time.Duration     { return mustDuration(c.Debounce) }
func (c HistoryConfig) SettleDelayDuration() time.Duration  { return mustDuration(c.SettleDelay) }
func (c HistoryConfig) FetchTimeoutDuration() time.Duration { return mustDuration(c.FetchTimeout) }

func (c AuditConfig) IntervalDuration() time.Duration { return mustDuration(c.Interval) }

func mustDuration(raw string) time.Duration {
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0
	}
	return d
}

func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server.port %d (must be 1-65535)", c.Server.Port)
	}
	if strings.TrimSpace(c.Server.Host) == "" {
		return fmt.Errorf("server.host is required")
	}
	if c.Server.MaxBodySizeMB <= 0 {
		return fmt.Errorf("server.max_body_size_mb must be > 0")
	}
	if c.Server.Mode != "debug" && c.Server.Mode != "release" {
		return fmt.Errorf("invalid server.mode %q (must be debug or release)", c.Server.Mode)
	}
	if strings.TrimSpace(c.Server.IdentityHeader) == "" {
		return fmt.Errorf("server.identity_header is required")
	}

	switch c.Database.Type {
	case "postgres", "sqlite":
		if strings.TrimSpace(c.Database.DSN) == "" {
			return fmt.Errorf("database.dsn is required for database.type %q", c.Database.Type)
		}
	case "memory":
	default:
		return fmt.Errorf("unsupported database.type %q (must be postgres, sqlite or memory)", c.Database.Type)
	}
	if c.Database.MaxOpenConns <= 0 {
		return fmt.Errorf("database.max_open_conns must be > 0")
	}
	if c.Database.MaxIdleConns <= 0 {
		return fmt.Errorf("database.max_idle_conns must be > 0")
	}

	for name, raw := range map[string]string{
		"history.debounce":      c.History.Debounce,
		"history.settle_delay":  c.History.SettleDelay,
		"history.fetch_timeout": c.History.FetchTimeout,
	} {
		if err := positiveDuration(name, raw); err != nil {
			return err
		}
	}
	if c.History.Capacity <= 0 {
		return fmt.Errorf("history.capacity must be > 0")
	}

	if c.Audit.Enabled {
		if err := positiveDuration("audit.interval", c.Audit.Interval); err != nil {
			return err
		}
		if c.Audit.BatchSize <= 0 {
			return fmt.Errorf("audit.batch_size must be > 0")
		}
		if c.Audit.WorkerCount <= 0 {
			return fmt.Errorf("audit.worker_count must be > 0")
		}
	}

	switch c.Notify.Type {
	case "local":
	case "redis":
		if strings.TrimSpace(c.Notify.RedisAddr) == "" {
			return fmt.Errorf("notify.redis_addr is required for notify.type \"redis\"")
		}
	default:
		return fmt.Errorf("unsupported notify.type %q (must be local or redis)", c.Notify.Type)
	}

	return nil
}

func positiveDuration(name, raw string) error {
	d, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("invalid %s %q: %w", name, raw, err)
	}
	if d <= 0 {
		return fmt.Errorf("%s must be > 0", name)
	}
	return nil
}

// Load parses config from defaults, then the YAML file, then env, and validates it.
func Load(configPath string) (*Config, error) {
	k := koanf.New(".")

	defaults := map[string]interface{}{
		"server.port":             8080,
		"server.host":             "0.0.0.0",
		"server.max_body_size_mb": 1,
		"server.mode":             "release",
		"server.identity_header":  "X-Learner-ID",
		"database.type":           "sqlite",
		"database.dsn":            "data/mozgnamaxa.db",
		"database.max_open_conns": 25,
		"database.max_idle_conns": 25,
		"database.auto_migrate":   true,
		"history.debounce":        "100ms",
		"history.settle_delay":    "750ms",
		"history.fetch_timeout":   "5s",
		"history.capacity":        10000,
		"catalogue.path":          "./config/catalogue.yaml",
		"audit.enabled":           true,
		"audit.interval":          "15m",
		"audit.batch_size":        5000,
		"audit.worker_count":      8,
		"notify.type":             "local",
		"notify.redis_addr":       "",
		"notify.channel":          "mozgnamaxa:invalidations",
	}
	for key, value := range defaults {
		k.Set(key, value)
	}

	if configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file: %w", err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.Replace(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "__", ".", -1)
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}
