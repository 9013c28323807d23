// Package config builds the process configuration once at startup.
package config

import (
	"time"

	"github.com/spf13/viper"

	"github.com/valpere/urduproxy/internal/translator"
)

const (
	KeyAPIKey          = "api_key"
	KeyAPIRegion       = "api_region"
	KeyAddr            = "addr"
	KeyDB              = "db"
	KeyLogLevel        = "log_level"
	KeyTimeout         = "timeout"
	KeyShutdownTimeout = "shutdown_timeout"
)

type Config struct {
	APIKey          string
	APIRegion       string
	Addr            string
	DBPath          string
	LogLevel        string
	Timeout         time.Duration
	ShutdownTimeout time.Duration
}

// Service returns the credentials handed to the translation service.
func (c Config) Service() translator.ServiceConfig {
	return translator.ServiceConfig{
		APIKey:    c.APIKey,
		APIRegion: c.APIRegion,
	}
}

// Bind registers defaults and environment variable names on v.
func Bind(v *viper.Viper) {
	v.SetDefault(KeyAPIRegion, translator.DefaultRegion)
	v.SetDefault(KeyAddr, ":3000")
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyTimeout, 30*time.Second)
	v.SetDefault(KeyShutdownTimeout, 10*time.Second)

	v.BindEnv(KeyAPIKey, "TRANSLATOR_API_KEY")
	v.BindEnv(KeyAPIRegion, "TRANSLATOR_API_REGION")
	v.BindEnv(KeyAddr, "URDUPROXY_ADDR")
	v.BindEnv(KeyDB, "URDUPROXY_DB")
	v.BindEnv(KeyLogLevel, "URDUPROXY_LOG_LEVEL")
	v.BindEnv(KeyTimeout, "URDUPROXY_TIMEOUT")
	v.BindEnv(KeyShutdownTimeout, "URDUPROXY_SHUTDOWN_TIMEOUT")
}

// Load reads the configuration from v. An empty region from any source
// (for example TRANSLATOR_API_REGION="") falls back to the default.
func Load(v *viper.Viper) Config {
	cfg := Config{
		APIKey:          v.GetString(KeyAPIKey),
		APIRegion:       v.GetString(KeyAPIRegion),
		Addr:            v.GetString(KeyAddr),
		DBPath:          v.GetString(KeyDB),
		LogLevel:        v.GetString(KeyLogLevel),
		Timeout:         v.GetDuration(KeyTimeout),
		ShutdownTimeout: v.GetDuration(KeyShutdownTimeout),
	}

	if cfg.APIRegion == "" {
		cfg.APIRegion = translator.DefaultRegion
	}
	return cfg
}
