package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Gazetteer sources
const (
	SourceCSV      = "csv"
	SourcePostgres = "postgres"
	SourceSQLite   = "sqlite"
)

// Config stores all configuration of the application.
// The values are read by viper from app.yaml or from environment variables
// (gazetteer.path is GAZETTEER_PATH).
type Config struct {
	ServerAddress string              `mapstructure:"server_address"`
	DBSource      string              `mapstructure:"db_source"`
	LogLevel      string              `mapstructure:"log_level"`
	Gazetteer     GazetteerConfig     `mapstructure:"gazetteer"`
	RateLimit     RateLimitConfig     `mapstructure:"rate_limit"`
	Reading       ReadingConfig       `mapstructure:"reading"`
	Overrides     map[string][]string `mapstructure:"overrides"`
}

// GazetteerConfig selects where the gazetteer records come from.
type GazetteerConfig struct {
	Source        string `mapstructure:"source"`
	Path          string `mapstructure:"path"`
	Encoding      string `mapstructure:"encoding"`
	SkipMalformed bool   `mapstructure:"skip_malformed"`
}

// RateLimitConfig bounds requests per client IP. RPS <= 0 disables limiting.
type RateLimitConfig struct {
	RPS   float64 `mapstructure:"rps"`
	Burst int     `mapstructure:"burst"`
}

// ReadingConfig enables kana readings on parse responses.
type ReadingConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// LoadConfig reads configuration from app.yaml in path, if present, and from the environment.
func LoadConfig(path string) (config Config, err error) {
	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("app")
	v.SetConfigType("yaml")

	v.SetDefault("server_address", ":8080")
	v.SetDefault("db_source", "")
	v.SetDefault("log_level", "info")
	v.SetDefault("gazetteer.source", SourceCSV)
	v.SetDefault("gazetteer.path", "data/zenkoku.csv")
	v.SetDefault("gazetteer.encoding", "shift_jis")
	v.SetDefault("gazetteer.skip_malformed", true)
	v.SetDefault("rate_limit.rps", 50)
	v.SetDefault("rate_limit.burst", 100)
	v.SetDefault("reading.enabled", false)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err = v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return config, fmt.Errorf("config: failed to read config: %w", err)
		}
	}

	if err = v.Unmarshal(&config); err != nil {
		return config, fmt.Errorf("config: failed to decode config: %w", err)
	}

	switch config.Gazetteer.Source {
	case SourceCSV, SourcePostgres, SourceSQLite:
	default:
		return config, fmt.Errorf("config: unknown gazetteer source %q", config.Gazetteer.Source)
	}
	return config, nil
}
