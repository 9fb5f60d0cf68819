package config

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"
)

var (
	ErrInvalidFeePercent = errors.New("fee_percent must be between 0 and 100")
	ErrUnknownBackend    = errors.New("unknown storage backend")
	ErrMissingPath       = errors.New("storage path is required for persistent backends")
	ErrInvalidCacheSize  = errors.New("cache_size must be >= 0")
	ErrUnknownDriver     = errors.New("unknown events driver")
	ErrMissingDSN        = errors.New("events dsn is required when a driver is set")
	ErrInvalidPort       = errors.New("port must be between 1 and 65535")
	ErrInvalidTimeout    = errors.New("timeout must be positive")
	ErrInvalidLogLevel   = errors.New("invalid log level")
	ErrInvalidLogFormat  = errors.New("log format must be console or json")
)

// ValidateConfig validates every section of config
func ValidateConfig(config *Config) error {
	if config.FeePercent > 100 {
		return fmt.Errorf("%w: %d", ErrInvalidFeePercent, config.FeePercent)
	}

	if err := config.Storage.Validate(); err != nil {
		return fmt.Errorf("storage config validation failed: %w", err)
	}
	if err := config.Events.Validate(); err != nil {
		return fmt.Errorf("events config validation failed: %w", err)
	}
	if err := config.Server.Validate(); err != nil {
		return fmt.Errorf("server config validation failed: %w", err)
	}
	if err := config.Log.Validate(); err != nil {
		return fmt.Errorf("log config validation failed: %w", err)
	}
	return nil
}

// Validate performs validation on the storage configuration
func (s *StorageConfig) Validate() error {
	switch s.Backend {
	case BackendMemory:
	case BackendPebble, BackendBbolt, BackendLevelDB:
		if s.Path == "" {
			return ErrMissingPath
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownBackend, s.Backend)
	}

	if s.CacheSize < 0 {
		return ErrInvalidCacheSize
	}
	return nil
}

// Validate performs validation on the events configuration
func (e *EventsConfig) Validate() error {
	switch e.Driver {
	case "", EventsDriverNone:
		return nil
	case EventsDriverSQLite, EventsDriverPostgres:
		if e.DSN == "" {
			return ErrMissingDSN
		}
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnknownDriver, e.Driver)
	}
}

// Validate performs validation on the server configuration
func (s *ServerConfig) Validate() error {
	if s.Port <= 0 || s.Port > 65535 {
		return fmt.Errorf("%w: %d", ErrInvalidPort, s.Port)
	}
	if s.Timeout <= 0 {
		return ErrInvalidTimeout
	}
	return nil
}

// Validate performs validation on the log configuration
func (l *LogConfig) Validate() error {
	if _, err := zerolog.ParseLevel(l.Level); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidLogLevel, l.Level)
	}
	switch l.Format {
	case LogFormatConsole, LogFormatJSON:
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrInvalidLogFormat, l.Format)
	}
}
