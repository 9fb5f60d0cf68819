// Package config loads tokendexd settings.
package config

import (
	"net"
	"strconv"
	"time"

	"github.com/LeJamon/tokendex/internal/storage/relationaldb"
)

// Storage backends
const (
	BackendMemory  = "memory"
	BackendPebble  = "pebble"
	BackendBbolt   = "bbolt"
	BackendLevelDB = "leveldb"
)

// Event journal drivers. EventsDriverNone disables the journal.
const (
	EventsDriverNone     = "none"
	EventsDriverSQLite   = relationaldb.DriverSQLite
	EventsDriverPostgres = relationaldb.DriverPostgres
)

// Log formats
const (
	LogFormatConsole = "console"
	LogFormatJSON    = "json"
)

// Config represents the complete tokendexd configuration
type Config struct {
	// FeePercent is the swap fee kept by the pool, 0 to 100
	FeePercent uint64 `toml:"fee_percent" mapstructure:"fee_percent"`

	Storage StorageConfig `toml:"storage" mapstructure:"storage"`
	Events  EventsConfig  `toml:"events" mapstructure:"events"`
	Server  ServerConfig  `toml:"server" mapstructure:"server"`
	Log     LogConfig     `toml:"log" mapstructure:"log"`

	configPath string
}

// StorageConfig represents the [storage] section
type StorageConfig struct {
	Backend   string `toml:"backend" mapstructure:"backend"`
	Path      string `toml:"path" mapstructure:"path"`
	CacheSize int    `toml:"cache_size" mapstructure:"cache_size"`
}

// EventsConfig represents the [events] section
type EventsConfig struct {
	Driver string `toml:"driver" mapstructure:"driver"`
	DSN    string `toml:"dsn" mapstructure:"dsn"`
}

// Enabled reports whether committed events are journaled
func (e EventsConfig) Enabled() bool {
	return e.Driver != "" && e.Driver != EventsDriverNone
}

// Journal returns the journal connection settings
func (e EventsConfig) Journal() *relationaldb.Config {
	if e.Driver == EventsDriverSQLite {
		return relationaldb.SQLiteConfig(e.DSN)
	}
	return relationaldb.PostgresConfig(e.DSN)
}

// ServerConfig represents the [server] section
type ServerConfig struct {
	Bind    string        `toml:"bind" mapstructure:"bind"`
	Port    int           `toml:"port" mapstructure:"port"`
	// Timeout bounds read methods; submit always runs to its engine result
	Timeout time.Duration `toml:"timeout" mapstructure:"timeout"`
}

// Address returns the host:port the server listens on
func (s ServerConfig) Address() string {
	return net.JoinHostPort(s.Bind, strconv.Itoa(s.Port))
}

// LogConfig represents the [log] section
type LogConfig struct {
	Level  string `toml:"level" mapstructure:"level"`
	Format string `toml:"format" mapstructure:"format"`
}

// ConfigPath returns the file the configuration was read from, empty when
// only defaults and environment were used.
func (c *Config) ConfigPath() string {
	return c.configPath
}
