package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleConfig = `
[server]
http_port = 9090

[database]
host = "db.local"
dbname = "rooms"
user = "crm"

[auth]
jwt_secret = "file-secret"

[scheduling]
timezone = "America/Sao_Paulo"
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_DefaultsAndFile(t *testing.T) {
	cfg, err := Load(writeConfig(t, sampleConfig))
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.HTTPPort)
	assert.Equal(t, 10, cfg.Server.ShutdownTimeout)
	assert.Equal(t, DriverPostgres, cfg.Database.Driver)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "db.local", cfg.Database.Host)
	assert.Equal(t, "file-secret", cfg.Auth.JWTSecret)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
	assert.Equal(t, "catalog.yaml", cfg.Catalog.Path)

	loc, err := cfg.Scheduling.Location()
	require.NoError(t, err)
	assert.Equal(t, "America/Sao_Paulo", loc.String())

	slots, err := cfg.Scheduling.Slots()
	require.NoError(t, err)
	assert.Equal(t, 8*time.Hour, slots.Hours.Open)
	assert.Equal(t, 20*time.Hour, slots.Hours.Close)
	assert.Equal(t, 30*time.Minute, slots.SlotDuration())
	assert.True(t, slots.HasHorizon())

	assert.Contains(t, cfg.Database.DSN(), "host=db.local port=5432 user=crm")
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("DB_HOST", "pg.internal")
	t.Setenv("DB_PORT", "6543")
	t.Setenv("JWT_SECRET", "env-secret")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load(writeConfig(t, sampleConfig))
	require.NoError(t, err)

	assert.Equal(t, "pg.internal", cfg.Database.Host)
	assert.Equal(t, 6543, cfg.Database.Port)
	assert.Equal(t, "env-secret", cfg.Auth.JWTSecret)
	assert.Equal(t, "debug", cfg.Logs.Level)
}

func TestLoad_InvalidPort(t *testing.T) {
	t.Setenv("DB_PORT", "abc")

	_, err := Load(writeConfig(t, sampleConfig))
	assert.Error(t, err)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		c := defaults()
		c.Database.Host = "db"
		c.Database.DBName = "rooms"
		c.Auth.JWTSecret = "secret"
		return c
	}

	require.NoError(t, valid().Validate())

	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"no host", func(c *Config) { c.Database.Host = "" }},
		{"no dbname", func(c *Config) { c.Database.DBName = "" }},
		{"bad port", func(c *Config) { c.Server.HTTPPort = 0 }},
		{"no secret", func(c *Config) { c.Auth.JWTSecret = "" }},
		{"bad timezone", func(c *Config) { c.Scheduling.TimeZone = "Mars/Olympus" }},
		{"bad driver", func(c *Config) { c.Database.Driver = "sqlite" }},
		{"close before open", func(c *Config) { c.Scheduling.CloseTime = "07:00" }},
		{"bad clock", func(c *Config) { c.Scheduling.OpenTime = "8am" }},
		{"zero slot", func(c *Config) { c.Scheduling.SlotMinutes = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(c)
			assert.Error(t, c.Validate())
		})
	}

	memory := valid()
	memory.Database.Driver = DriverMemory
	memory.Database.Host = ""
	assert.NoError(t, memory.Validate())
}
