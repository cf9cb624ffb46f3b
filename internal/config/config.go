package config

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"
)

type Config struct {
	Service ServiceConfig `mapstructure:"service"`
	Server  ServerConfig  `mapstructure:"server"`
	Store   StoreConfig   `mapstructure:"store"`
	Session SessionConfig `mapstructure:"session"`
	Payment PaymentConfig `mapstructure:"payment"`
}

type ServiceConfig struct {
	Name string `mapstructure:"name"`
	Env  string `mapstructure:"env"`
}

type ServerConfig struct {
	Addr string `mapstructure:"addr"`
}

type StoreConfig struct {
	// Backend selects the document store implementation: "memory" or "mongo".
	Backend        string `mapstructure:"backend"`
	URI            string `mapstructure:"uri"`
	Database       string `mapstructure:"database"`
	CredentialPath string `mapstructure:"credential_path"`
}

type SessionConfig struct {
	// SecretKey signs the customer session cookie. Loaded once at startup.
	SecretKey string `mapstructure:"secret_key"`
}

type PaymentConfig struct {
	Mode string `mapstructure:"mode"`
}

// Load reads configuration from an optional config.yaml and environment
// variables prefixed with STOREFRONT.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./deploy/")
	v.AddConfigPath("./")
	v.AddConfigPath("/etc/storefront/")

	v.SetEnvPrefix("STOREFRONT")
	v.AutomaticEnv()

	v.SetDefault("service.name", "storefront")
	v.SetDefault("service.env", "dev")
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("store.backend", "memory")
	v.SetDefault("store.database", "storefront")
	v.SetDefault("payment.mode", "stub")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// No file is fine; defaults and env cover the dev setup.
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if cfg.Store.Backend == "mongo" && cfg.Store.URI == "" {
		return nil, fmt.Errorf("store.uri is required when store.backend is mongo")
	}

	return &cfg, nil
}
