package config

import (
	"time"

	"github.com/spf13/viper"
)

// Default values
const (
	DefaultFeePercent = 3
	DefaultCacheSize  = 4096
	DefaultPort       = 5005
)

func setDefaults(v *viper.Viper) {
	v.SetDefault("fee_percent", DefaultFeePercent)

	v.SetDefault("storage.backend", BackendPebble)
	v.SetDefault("storage.path", "data")
	v.SetDefault("storage.cache_size", DefaultCacheSize)

	v.SetDefault("events.driver", EventsDriverNone)
	v.SetDefault("events.dsn", "")

	v.SetDefault("server.bind", "127.0.0.1")
	v.SetDefault("server.port", DefaultPort)
	v.SetDefault("server.timeout", 10*time.Second)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", LogFormatConsole)
}
