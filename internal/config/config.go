// Package config loads service configuration from an optional config.yaml
// and STOREFRONT_-prefixed environment variables.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Store    StoreConfig    `mapstructure:"store"`
	Catalog  CatalogConfig  `mapstructure:"catalog"`
	Checkout CheckoutConfig `mapstructure:"checkout"`
}

type ServerConfig struct {
	Addr string `mapstructure:"addr"`
}

type StoreConfig struct {
	// Backend selects the persistent store: "memory" or "redis".
	Backend  string `mapstructure:"backend"`
	RedisURL string `mapstructure:"redis_url"`
}

type CatalogConfig struct {
	// SourceURL is where the product list is fetched from. When empty or
	// unreachable the built-in default products are used.
	SourceURL    string        `mapstructure:"source_url"`
	FetchTimeout time.Duration `mapstructure:"fetch_timeout"`
}

type CheckoutConfig struct {
	// ProcessingDelay simulates gateway latency for the automatic
	// settlement methods.
	ProcessingDelay time.Duration `mapstructure:"processing_delay"`
}

// Load reads config.yaml (optional) and environment overrides.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./")
	v.AddConfigPath("/etc/storefront/")

	v.SetEnvPrefix("STOREFRONT")
	v.AutomaticEnv()

	v.SetDefault("server.addr", "8080")
	v.SetDefault("store.backend", "memory")
	v.SetDefault("store.redis_url", "redis://localhost:6379")
	v.SetDefault("catalog.source_url", "")
	v.SetDefault("catalog.fetch_timeout", 5*time.Second)
	v.SetDefault("checkout.processing_delay", 2*time.Second)

	if err := v.ReadInConfig(); err != nil {
		// a missing config file is fine; everything has a default
		var notFoundErr viper.ConfigFileNotFoundError
		if !errors.As(err, &notFoundErr) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &config, nil
}
