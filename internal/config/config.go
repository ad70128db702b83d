package config

import (
	"errors"
	"fmt"
	"log"

	"github.com/spf13/viper"
)

// Config holds the application configuration.
type Config struct {
	DatabaseDriver string `mapstructure:"DATABASE_DRIVER"`
	DatabaseURL    string `mapstructure:"DATABASE_URL"`
	JWTSecret      string `mapstructure:"JWT_SECRET"`
	AMQPURL        string `mapstructure:"AMQP_URL"`
	EventsExchange string `mapstructure:"EVENTS_EXCHANGE"`
	ServiceName    string `mapstructure:"SERVICE_NAME"`
	Environment    string `mapstructure:"ENVIRONMENT"`
	HTTPPort       string `mapstructure:"HTTP_PORT"`
	GRPCAddr       string `mapstructure:"GRPC_ADDR"`
}

var defaults = map[string]any{
	"DATABASE_DRIVER": "postgres",
	"DATABASE_URL":    "",
	"JWT_SECRET":      "",
	"AMQP_URL":        "",
	"EVENTS_EXCHANGE": "social.events",
	"SERVICE_NAME":    "social-service",
	"ENVIRONMENT":     "local",
	"HTTP_PORT":       "8080",
	"GRPC_ADDR":       ":8085",
}

// Load reads a .env file from dir (if present) and the process environment.
// Environment variables win over the file.
func Load(dir string) (*Config, error) {
	v := viper.New()
	v.AddConfigPath(dir)
	v.SetConfigName(".env")
	v.SetConfigType("env")

	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
		log.Println("warning: .env file not found, loading from environment variables")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	if cfg.DatabaseURL == "" || cfg.JWTSecret == "" {
		return nil, errors.New("DATABASE_URL and JWT_SECRET must be set")
	}
	return &cfg, nil
}
