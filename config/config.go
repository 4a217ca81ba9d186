package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Storage StorageConfig `mapstructure:"storage"`
	SSE     SSEConfig     `mapstructure:"sse"`
}

type ServerConfig struct {
	Port     int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

type StorageConfig struct {
	Type string `mapstructure:"type" validate:"required,oneof=sqlite memory"`
	// Path is the SQLite database file; ignored for the memory backend.
	Path string `mapstructure:"path" validate:"required_if=Type sqlite"`
}

type SSEConfig struct {
	KeepAliveSeconds int `mapstructure:"keep_alive_seconds" validate:"gt=0"`
}

// Load reads configuration from an optional myblog.yaml in the working
// directory and from MYBLOG_-prefixed environment variables. Environment
// variables win. Defaults make a bare `myblog serve` work out of the box.
func Load() (Config, error) {
	v := viper.New()

	v.SetDefault("server.port", 8080)
	v.SetDefault("server.log_level", "info")
	v.SetDefault("storage.type", "sqlite")
	v.SetDefault("storage.path", "myblog.db")
	v.SetDefault("sse.keep_alive_seconds", 15)

	v.SetConfigName("myblog")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	v.SetEnvPrefix("MYBLOG")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}
