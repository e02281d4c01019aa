package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort  string `mapstructure:"APP_PORT"`
	Env      string `mapstructure:"ENV"`
	LogLevel string `mapstructure:"LOG_LEVEL"`

	// SunHotels upstream.
	SunHotelsURL      string `mapstructure:"SUNHOTELS_URL"`
	SunHotelsUser     string `mapstructure:"SUNHOTELS_USER"`
	SunHotelsPassword string `mapstructure:"SUNHOTELS_PASSWORD"`

	DefaultCurrency        string `mapstructure:"DEFAULT_CURRENCY"`
	UpstreamTimeoutSeconds int    `mapstructure:"UPSTREAM_TIMEOUT_SECONDS"`

	CacheTTLSeconds   int `mapstructure:"CACHE_TTL_SECONDS"`
	MaxRequestsPerMin int `mapstructure:"MAX_REQUESTS_PER_MIN"`
}

// Load reads config.yaml (current directory or ./config) merged with
// environment variables, applying defaults for anything unset.
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AutomaticEnv()

	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("SUNHOTELS_URL", "http://xml.sunhotels.net/15/PostGet/NonStaticXMLAPI.asmx")
	viper.SetDefault("SUNHOTELS_USER", "")
	viper.SetDefault("SUNHOTELS_PASSWORD", "")
	viper.SetDefault("DEFAULT_CURRENCY", "EUR")
	viper.SetDefault("UPSTREAM_TIMEOUT_SECONDS", 10)
	viper.SetDefault("CACHE_TTL_SECONDS", 60)
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 60)

	// Missing config file is fine; environment variables still apply.
	_ = viper.ReadInConfig()

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return &cfg, nil
}

// UpstreamTimeout returns the upstream timeout as a duration.
func (c *Config) UpstreamTimeout() time.Duration {
	return time.Duration(c.UpstreamTimeoutSeconds) * time.Second
}

// CacheTTL returns the search cache TTL as a duration.
func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.CacheTTLSeconds) * time.Second
}

// IsProduction reports whether the service runs in production mode.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}
