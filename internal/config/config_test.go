package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleConfig = `
[server]
http_port = 8091

[database]
host = "db"
user = "rooms"
password = "from-file"
dbname = "rooms"

[reservations]
min_duration_minutes = 30

[reports]
include_non_billable_hours = true
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_FileAndDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, sampleConfig))
	require.NoError(t, err)

	assert.Equal(t, 8091, cfg.Server.HTTPPort)
	assert.Equal(t, 15, cfg.Server.ShutdownTimeout)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, 30, cfg.Reservations.MinDurationMinutes)
	assert.Equal(t, 720, cfg.Reservations.MaxDurationMinutes)
	assert.Equal(t, 300, cfg.Reservations.LiveCheckDebounce)
	assert.True(t, cfg.Reports.IncludeNonBillableHours)
	assert.False(t, cfg.Kafka.Enabled)
	assert.Equal(t, "postgres://rooms:from-file@db:5432/rooms?sslmode=disable", cfg.Database.DSN())
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("DB_PASSWORD", "s3cr3t")
	t.Setenv("DB_PORT", "6543")
	t.Setenv("KAFKA_BROKERS", "kafka-1:9092, kafka-2:9092")

	cfg, err := Load(writeConfig(t, sampleConfig))
	require.NoError(t, err)

	assert.Equal(t, "s3cr3t", cfg.Database.Password)
	assert.Equal(t, 6543, cfg.Database.Port)
	assert.True(t, cfg.Kafka.Enabled)
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.Kafka.Brokers)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.ErrorIs(t, err, ErrInvalidConfig)

	t.Setenv("DB_PORT", "five")
	_, err = Load(writeConfig(t, sampleConfig))
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"bad port", func(c *Config) { c.Server.HTTPPort = 0 }},
		{"missing db user", func(c *Config) { c.Database.User = "" }},
		{"zero min duration", func(c *Config) { c.Reservations.MinDurationMinutes = 0 }},
		{"max below min", func(c *Config) { c.Reservations.MaxDurationMinutes = 10 }},
		{"kafka without brokers", func(c *Config) { c.Kafka.Enabled = true }},
		{"metrics path", func(c *Config) {
			c.Metrics.Enabled = true
			c.Metrics.Path = "metrics"
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaults()
			cfg.Database.User = "rooms"
			cfg.Database.DBName = "rooms"
			require.NoError(t, cfg.Validate())

			tt.mutate(cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
		})
	}
}
