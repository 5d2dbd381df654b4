// Package config loads the service configuration from the environment and an
// optional .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Config holds every setting the service reads at startup.
type Config struct {
	AppPort        string `validate:"required"`
	AppEnv         string `validate:"required"`
	DatabaseDriver string `validate:"required,oneof=postgres sqlite memory"`
	DatabaseDSN    string `validate:"required_unless=DatabaseDriver memory"`
	FrontendURL    string `validate:"required,url"`
	RabbitMQURL    string `validate:"omitempty,url"`
	LogLevel       string `validate:"required,oneof=trace debug info warn error fatal panic disabled"`
	LogFormat      string `validate:"required,oneof=console json"`
	RequestLog     bool
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_PORT", ":4000")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("DATABASE_DRIVER", "postgres")
	v.SetDefault("DATABASE_DSN", "host=127.0.0.1 user=postgres password=postgres dbname=productos port=5432 sslmode=disable")
	v.SetDefault("FRONTEND_URL", "http://localhost:5173")
	v.SetDefault("RABBITMQ_URL", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "console")
	v.SetDefault("REQUEST_LOG", true)
}

// Load reads configuration from the process environment, falling back to the
// given .env files (first one found wins) and then to defaults.
func Load(envFiles ...string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	// DB_SEQUELIZE_URL is the name older deployments export the DSN under.
	if err := v.BindEnv("DATABASE_DSN", "DATABASE_DSN", "DB_SEQUELIZE_URL"); err != nil {
		return nil, fmt.Errorf("failed to bind DATABASE_DSN: %w", err)
	}
	v.AutomaticEnv()

	for _, file := range envFiles {
		v.SetConfigFile(file)
		v.SetConfigType("env")
		err := v.ReadInConfig()
		if err == nil {
			break
		}
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist) {
			continue
		}
		return nil, fmt.Errorf("failed to read %s: %w", file, err)
	}

	cfg := &Config{
		AppPort:        v.GetString("APP_PORT"),
		AppEnv:         v.GetString("APP_ENV"),
		DatabaseDriver: v.GetString("DATABASE_DRIVER"),
		DatabaseDSN:    v.GetString("DATABASE_DSN"),
		FrontendURL:    v.GetString("FRONTEND_URL"),
		RabbitMQURL:    v.GetString("RABBITMQ_URL"),
		LogLevel:       v.GetString("LOG_LEVEL"),
		LogFormat:      v.GetString("LOG_FORMAT"),
		RequestLog:     v.GetBool("REQUEST_LOG"),
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}
