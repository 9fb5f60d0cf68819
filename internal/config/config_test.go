package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	config, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, uint64(DefaultFeePercent), config.FeePercent)
	assert.Equal(t, BackendPebble, config.Storage.Backend)
	assert.Equal(t, DefaultCacheSize, config.Storage.CacheSize)
	assert.False(t, config.Events.Enabled())
	assert.Equal(t, "127.0.0.1:5005", config.Server.Address())
	assert.Equal(t, 10*time.Second, config.Server.Timeout)
	assert.Equal(t, LogFormatConsole, config.Log.Format)
	assert.Empty(t, config.ConfigPath())
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tokendexd.toml")
	content := `
fee_percent = 5

[storage]
backend = "bbolt"
path = "/var/lib/tokendex"
cache_size = 128

[events]
driver = "sqlite"
dsn = "/var/lib/tokendex/events.db"

[server]
bind = "0.0.0.0"
port = 8080
timeout = "3s"

[log]
level = "debug"
format = "json"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	config, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, uint64(5), config.FeePercent)
	assert.Equal(t, StorageConfig{Backend: BackendBbolt, Path: "/var/lib/tokendex", CacheSize: 128}, config.Storage)
	assert.True(t, config.Events.Enabled())
	assert.Equal(t, "sqlite", config.Events.Journal().Driver)
	assert.Equal(t, "0.0.0.0:8080", config.Server.Address())
	assert.Equal(t, 3*time.Second, config.Server.Timeout)
	assert.Equal(t, LogConfig{Level: "debug", Format: LogFormatJSON}, config.Log)
	assert.Equal(t, path, config.ConfigPath())
}

func TestLoadConfigEnvOverride(t *testing.T) {
	t.Setenv("TOKENDEX_FEE_PERCENT", "7")
	t.Setenv("TOKENDEX_STORAGE_BACKEND", "memory")
	t.Setenv("TOKENDEX_SERVER_PORT", "9000")

	config, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, uint64(7), config.FeePercent)
	assert.Equal(t, BackendMemory, config.Storage.Backend)
	assert.Equal(t, 9000, config.Server.Port)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.toml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not exist")
}

func TestValidateConfig(t *testing.T) {
	valid := func() *Config {
		return &Config{
			FeePercent: 3,
			Storage:    StorageConfig{Backend: BackendMemory},
			Events:     EventsConfig{Driver: EventsDriverNone},
			Server:     ServerConfig{Bind: "127.0.0.1", Port: 1, Timeout: time.Second},
			Log:        LogConfig{Level: "info", Format: LogFormatConsole},
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr error
	}{
		{"valid", func(c *Config) {}, nil},
		{"fee at cap", func(c *Config) { c.FeePercent = 100 }, nil},
		{"fee above cap", func(c *Config) { c.FeePercent = 101 }, ErrInvalidFeePercent},
		{"unknown backend", func(c *Config) { c.Storage.Backend = "rocksdb" }, ErrUnknownBackend},
		{"pebble without path", func(c *Config) { c.Storage.Backend = BackendPebble }, ErrMissingPath},
		{"negative cache", func(c *Config) { c.Storage.CacheSize = -1 }, ErrInvalidCacheSize},
		{"unknown driver", func(c *Config) { c.Events.Driver = "mysql" }, ErrUnknownDriver},
		{"driver without dsn", func(c *Config) { c.Events.Driver = EventsDriverPostgres }, ErrMissingDSN},
		{"port zero", func(c *Config) { c.Server.Port = 0 }, ErrInvalidPort},
		{"zero timeout", func(c *Config) { c.Server.Timeout = 0 }, ErrInvalidTimeout},
		{"bad level", func(c *Config) { c.Log.Level = "loud" }, ErrInvalidLogLevel},
		{"bad format", func(c *Config) { c.Log.Format = "xml" }, ErrInvalidLogFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(c)
			err := ValidateConfig(c)
			if tt.wantErr == nil {
				require.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
