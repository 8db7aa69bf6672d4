package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config holds the runtime configuration, read from environment variables.
type Config struct {
	HTTPAddr    string
	DatabaseURL string
	RedisAddr   string
	JWTSecret   string
}

// Load reads configuration from the environment.
func Load() (Config, error) {
	v := viper.New()
	v.SetDefault("HTTP_ADDR", ":8080")
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("DATABASE_URL", "")
	v.AutomaticEnv()

	cfg := Config{
		HTTPAddr:    v.GetString("HTTP_ADDR"),
		DatabaseURL: v.GetString("DATABASE_URL"),
		RedisAddr:   v.GetString("REDIS_ADDR"),
		JWTSecret:   v.GetString("JWT_SECRET"),
	}
	if cfg.DatabaseURL == "" {
		return Config{}, fmt.Errorf("environment variable DATABASE_URL not found")
	}
	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("environment variable JWT_SECRET not found")
	}
	return cfg, nil
}
