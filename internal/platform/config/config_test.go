package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("TESTAMENT_CONFIG", "")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, StorageMemory, cfg.Storage.Driver)
	assert.Equal(t, RegistryLocal, cfg.Registry.Mode)
	assert.False(t, cfg.KafkaEnabled())
	assert.Equal(t, "testament-audit", cfg.Kafka.AuditTopic)
	assert.Empty(t, cfg.Tracing.Endpoint)
	assert.True(t, cfg.RateLimit.Enabled)

	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, "Asia/Singapore", loc.String())
}

func TestLoad_FileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "testament.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  addr: ":9090"
  admin_token: from-file
registry:
  timezone: UTC
  cache_ttl: 30s
kafka:
  brokers: ["file:9092"]
relay:
  poll_interval: 10s
  auto_distribute: true
`), 0o600))

	t.Setenv("TESTAMENT_ADMIN_TOKEN", "from-env")
	t.Setenv("TESTAMENT_KAFKA_BROKERS", "a:9092,b:9092")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.Equal(t, "from-env", cfg.Server.AdminToken)
	assert.Equal(t, 30*time.Second, cfg.Registry.CacheTTL)
	assert.Equal(t, 10*time.Second, cfg.Relay.PollInterval)
	assert.True(t, cfg.Relay.AutoDistribute)
	assert.Equal(t, []string{"a:9092", "b:9092"}, cfg.Kafka.Brokers)
	assert.True(t, cfg.KafkaEnabled())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"postgres without dsn", func(c *Config) { c.Storage.Driver = StoragePostgres }},
		{"unknown driver", func(c *Config) { c.Storage.Driver = "mongo" }},
		{"remote registry without url", func(c *Config) { c.Registry.Mode = RegistryRemote }},
		{"bad timezone", func(c *Config) { c.Registry.Timezone = "Mars/Olympus" }},
		{"zero poll interval", func(c *Config) { c.Relay.PollInterval = 0 }},
		{"zero outbox interval", func(c *Config) { c.Relay.OutboxInterval = 0 }},
		{"sample ratio above one", func(c *Config) { c.Tracing.SampleRatio = 1.5 }},
		{"zero write budget", func(c *Config) { c.RateLimit.Write = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
