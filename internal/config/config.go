package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds everything the server needs at startup. Values come from
// environment variables, with an optional config.yaml alongside the binary.
type Config struct {
	Port           string        `mapstructure:"port"`
	StoreBackend   string        `mapstructure:"store_backend"`
	MongoURI       string        `mapstructure:"mongo_uri"`
	MongoDatabase  string        `mapstructure:"mongo_database"`
	ActivationKey  string        `mapstructure:"activation_key"`
	SessionTTL     time.Duration `mapstructure:"session_ttl"`
	CartGroupMode  string        `mapstructure:"cart_group_mode"`
	AllowedOrigins []string      `mapstructure:"allowed_origins"`
}

// Load reads configuration from the environment (and config.yaml if present).
func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("port", "8081")
	v.SetDefault("store_backend", "auto")
	v.SetDefault("mongo_uri", "mongodb://localhost:27017")
	v.SetDefault("mongo_database", "beanhouse")
	v.SetDefault("activation_key", "dev-activation-key")
	v.SetDefault("session_ttl", 12*time.Hour)
	v.SetDefault("cart_group_mode", "submission")
	v.SetDefault("allowed_origins", []string{"*"})

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		// A missing file is fine; anything else (bad YAML) is not.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &cfg, nil
}
