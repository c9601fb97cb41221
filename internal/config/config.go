package config

import (
	"errors"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
type Config struct {
	Server   Server   `mapstructure:"server"`
	Database Database `mapstructure:"database"`
	Logger   Logger   `mapstructure:"logger"`
	Upload   Upload   `mapstructure:"upload"`
}

// Server holds the configuration for the HTTP server.
type Server struct {
	Port           int     `mapstructure:"port"`
	RateLimit      float64 `mapstructure:"rate_limit"`
	RateLimitBurst int     `mapstructure:"rate_limit_burst"`
}

// Database holds the configuration for the database.
type Database struct {
	DSN string `mapstructure:"dsn"`
}

// Upload holds the configuration for the spreadsheet upload endpoint.
type Upload struct {
	MaxFileBytes int64 `mapstructure:"max_file_bytes"`
}

// Logger holds the configuration for the logger.
type Logger struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// LoadConfig reads configuration from file or environment variables.
func LoadConfig(path string) (config Config, err error) {
	viper.AddConfigPath(path)
	viper.SetConfigName("config") // name of config file (without extension)
	viper.SetConfigType("yml")    // or yaml, json

	// Allow environment variables to override config file
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Set default values
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.rate_limit", 50) // requests per second
	viper.SetDefault("server.rate_limit_burst", 20)
	viper.SetDefault("database.dsn", "journal.db")
	viper.SetDefault("logger.level", "info")
	viper.SetDefault("logger.format", "console")
	viper.SetDefault("upload.max_file_bytes", 10<<20)

	err = viper.ReadInConfig()
	if err != nil {
		// Run on defaults and env vars when no config file is present.
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return
		}
		err = nil
	}

	err = viper.Unmarshal(&config)
	return
}
