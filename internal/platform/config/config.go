// Package config loads service configuration from defaults, an optional YAML
// file, and environment variables, in that order of precedence (env wins).
package config

import (
	"fmt"
	"os"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"

	RegistryLocal  = "local"
	RegistryRemote = "remote"
)

// Config is the full service configuration.
type Config struct {
	Server    Server      `yaml:"server"`
	Storage   Storage     `yaml:"storage"`
	Redis     RedisConfig `yaml:"redis"`
	Registry  Registry    `yaml:"registry"`
	Kafka     Kafka       `yaml:"kafka"`
	Relay     Relay       `yaml:"relay"`
	RateLimit RateLimit   `yaml:"rate_limit"`
	Log       Log         `yaml:"log"`
	Tracing   Tracing     `yaml:"tracing"`
}

// Server captures HTTP server level configuration.
type Server struct {
	Addr string `yaml:"addr" env:"TESTAMENT_ADDR"`
	// AdminToken authenticates the platform operator on /admin routes.
	AdminToken string        `yaml:"admin_token" env:"TESTAMENT_ADMIN_TOKEN"`
	TxTimeout  time.Duration `yaml:"tx_timeout" env:"TESTAMENT_TX_TIMEOUT"`
}

type Storage struct {
	Driver      string `yaml:"driver" env:"TESTAMENT_STORAGE_DRIVER"`
	PostgresDSN string `yaml:"postgres_dsn" env:"TESTAMENT_POSTGRES_DSN"`
}

// RedisConfig is optional; an empty URL disables the registry cache and the
// distributed will lock.
type RedisConfig struct {
	URL          string        `yaml:"url" env:"TESTAMENT_REDIS_URL"`
	PoolSize     int           `yaml:"pool_size" env:"TESTAMENT_REDIS_POOL_SIZE"`
	MinIdleConns int           `yaml:"min_idle_conns" env:"TESTAMENT_REDIS_MIN_IDLE_CONNS"`
	DialTimeout  time.Duration `yaml:"dial_timeout" env:"TESTAMENT_REDIS_DIAL_TIMEOUT"`
	ReadTimeout  time.Duration `yaml:"read_timeout" env:"TESTAMENT_REDIS_READ_TIMEOUT"`
	WriteTimeout time.Duration `yaml:"write_timeout" env:"TESTAMENT_REDIS_WRITE_TIMEOUT"`
	LockTTL      time.Duration `yaml:"lock_ttl" env:"TESTAMENT_REDIS_LOCK_TTL"`
}

// Registry configures the mock government registry and how the will service
// reaches it: in-process (local) or over HTTP (remote).
type Registry struct {
	Mode       string        `yaml:"mode" env:"TESTAMENT_REGISTRY_MODE"`
	SQLitePath string        `yaml:"sqlite_path" env:"TESTAMENT_REGISTRY_SQLITE_PATH"`
	DataDir    string        `yaml:"data_dir" env:"TESTAMENT_REGISTRY_DATA_DIR"`
	BaseURL    string        `yaml:"base_url" env:"TESTAMENT_REGISTRY_BASE_URL"`
	Timezone   string        `yaml:"timezone" env:"TESTAMENT_REGISTRY_TIMEZONE"`
	CacheTTL   time.Duration `yaml:"cache_ttl" env:"TESTAMENT_REGISTRY_CACHE_TTL"`
	Timeout    time.Duration `yaml:"timeout" env:"TESTAMENT_REGISTRY_TIMEOUT"`
}

// Kafka is optional; no brokers means registry events are not published and
// the relay only polls.
type Kafka struct {
	Brokers    []string `yaml:"brokers" env:"TESTAMENT_KAFKA_BROKERS" envSeparator:","`
	Topic      string   `yaml:"topic" env:"TESTAMENT_KAFKA_TOPIC"`
	AuditTopic string   `yaml:"audit_topic" env:"TESTAMENT_KAFKA_AUDIT_TOPIC"`
	Group      string   `yaml:"group" env:"TESTAMENT_KAFKA_GROUP"`
	Partitions int32    `yaml:"partitions" env:"TESTAMENT_KAFKA_PARTITIONS"`
}

type Relay struct {
	PollInterval   time.Duration `yaml:"poll_interval" env:"TESTAMENT_RELAY_POLL_INTERVAL"`
	OutboxInterval time.Duration `yaml:"outbox_interval" env:"TESTAMENT_RELAY_OUTBOX_INTERVAL"`
	AutoDistribute bool          `yaml:"auto_distribute" env:"TESTAMENT_RELAY_AUTO_DISTRIBUTE"`
}

// RateLimit budgets requests per caller, or per client IP for anonymous
// requests. The budget is shared across replicas when Redis is configured.
type RateLimit struct {
	Enabled bool          `yaml:"enabled" env:"TESTAMENT_RATE_LIMIT_ENABLED"`
	Window  time.Duration `yaml:"window" env:"TESTAMENT_RATE_LIMIT_WINDOW"`
	Read    int           `yaml:"read" env:"TESTAMENT_RATE_LIMIT_READ"`
	Write   int           `yaml:"write" env:"TESTAMENT_RATE_LIMIT_WRITE"`
}

// Tracing is off unless an OTLP/HTTP endpoint is set.
type Tracing struct {
	Endpoint    string  `yaml:"endpoint" env:"TESTAMENT_OTEL_ENDPOINT"`
	ServiceName string  `yaml:"service_name" env:"TESTAMENT_OTEL_SERVICE_NAME"`
	SampleRatio float64 `yaml:"sample_ratio" env:"TESTAMENT_OTEL_SAMPLE_RATIO"`
}

type Log struct {
	Level  string `yaml:"level" env:"TESTAMENT_LOG_LEVEL"`
	Format string `yaml:"format" env:"TESTAMENT_LOG_FORMAT"`
}

// Default returns the development configuration.
func Default() Config {
	return Config{
		Server: Server{
			Addr:      ":8080",
			TxTimeout: 5 * time.Second,
		},
		Storage: Storage{Driver: StorageMemory},
		Redis: RedisConfig{
			PoolSize:     10,
			MinIdleConns: 2,
			DialTimeout:  5 * time.Second,
			ReadTimeout:  3 * time.Second,
			WriteTimeout: 3 * time.Second,
			LockTTL:      10 * time.Second,
		},
		Registry: Registry{
			Mode:       RegistryLocal,
			SQLitePath: "registry.db",
			DataDir:    "data",
			Timezone:   "Asia/Singapore",
			CacheTTL:   5 * time.Minute,
			Timeout:    5 * time.Second,
		},
		Kafka: Kafka{
			Topic:      "registry-events",
			AuditTopic: "testament-audit",
			Group:      "testament-relay",
			Partitions: 3,
		},
		Relay: Relay{
			PollInterval:   time.Minute,
			OutboxInterval: time.Second,
		},
		RateLimit: RateLimit{
			Enabled: true,
			Window:  time.Minute,
			Read:    300,
			Write:   60,
		},
		Log: Log{Level: "info", Format: "json"},
		Tracing: Tracing{
			ServiceName: "testament",
			SampleRatio: 1,
		},
	}
}

// Load builds the configuration. path may be empty; TESTAMENT_CONFIG is used
// when it is.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		path = os.Getenv("TESTAMENT_CONFIG")
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config file: %w", err)
		}
	}
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ParseEnv overlays environment variables onto target.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

func (c Config) Validate() error {
	switch c.Storage.Driver {
	case StorageMemory:
	case StoragePostgres:
		if c.Storage.PostgresDSN == "" {
			return fmt.Errorf("postgres storage requires TESTAMENT_POSTGRES_DSN")
		}
	default:
		return fmt.Errorf("unknown storage driver %q", c.Storage.Driver)
	}
	switch c.Registry.Mode {
	case RegistryLocal:
	case RegistryRemote:
		if c.Registry.BaseURL == "" {
			return fmt.Errorf("remote registry requires TESTAMENT_REGISTRY_BASE_URL")
		}
	default:
		return fmt.Errorf("unknown registry mode %q", c.Registry.Mode)
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	if c.Relay.PollInterval <= 0 {
		return fmt.Errorf("relay poll interval must be positive")
	}
	if c.Relay.OutboxInterval <= 0 {
		return fmt.Errorf("relay outbox interval must be positive")
	}
	if c.RateLimit.Enabled && (c.RateLimit.Window <= 0 || c.RateLimit.Read <= 0 || c.RateLimit.Write <= 0) {
		return fmt.Errorf("rate limit window and budgets must be positive")
	}
	if c.Tracing.SampleRatio < 0 || c.Tracing.SampleRatio > 1 {
		return fmt.Errorf("tracing sample ratio must be within [0, 1]")
	}
	return nil
}

// Location is the timezone that defines "today" for registry matching.
func (c Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(strings.TrimSpace(c.Registry.Timezone))
	if err != nil {
		return nil, fmt.Errorf("load registry timezone %q: %w", c.Registry.Timezone, err)
	}
	return loc, nil
}

// KafkaEnabled reports whether registry events flow through Kafka.
func (c Config) KafkaEnabled() bool {
	return len(c.Kafka.Brokers) > 0 && c.Kafka.Topic != ""
}
