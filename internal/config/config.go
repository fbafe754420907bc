// internal/config/config.go
package config

import (
	"errors"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
type Config struct {
	LogLevel        string        `mapstructure:"LOG_LEVEL"`
	DBURL           string        `mapstructure:"DB_URL"`
	GithubToken     string        `mapstructure:"GITHUB_TOKEN"`
	GithubAPIURL    string        `mapstructure:"GITHUB_API_URL"`
	ReposToSync     []string      `mapstructure:"REPOS_TO_SYNC"`
	ServiceOptions  []string      `mapstructure:"SERVICE_OPTIONS"`
	HTTPAddr        string        `mapstructure:"HTTP_ADDR"`
	SyncInterval    time.Duration `mapstructure:"SYNC_INTERVAL"`
	RequestTimeout  time.Duration `mapstructure:"REQUEST_TIMEOUT"`
	SyncTimeout     time.Duration `mapstructure:"SYNC_TIMEOUT"`
	ShutdownTimeout time.Duration `mapstructure:"SHUTDOWN_TIMEOUT"`
}

var keys = []string{
	"LOG_LEVEL",
	"DB_URL",
	"GITHUB_TOKEN",
	"GITHUB_API_URL",
	"REPOS_TO_SYNC",
	"SERVICE_OPTIONS",
	"HTTP_ADDR",
	"SYNC_INTERVAL",
	"REQUEST_TIMEOUT",
	"SYNC_TIMEOUT",
	"SHUTDOWN_TIMEOUT",
}

// LoadConfig reads configuration from the environment, falling back to a .env file.
// Variables already present in the environment take precedence over the file.
func LoadConfig(envFile string) (*Config, error) {
	if envFile != "" {
		if envMap, err := godotenv.Read(envFile); err == nil {
			for k, v := range envMap {
				if _, exists := os.LookupEnv(k); !exists {
					_ = os.Setenv(k, v)
				}
			}
		}
	}

	v := viper.New()
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("HTTP_ADDR", ":8080")
	v.SetDefault("SYNC_INTERVAL", "0s")
	v.SetDefault("REQUEST_TIMEOUT", "30s")
	v.SetDefault("SYNC_TIMEOUT", "5m")
	v.SetDefault("SHUTDOWN_TIMEOUT", "10s")

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for _, k := range keys {
		_ = v.BindEnv(k)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	cfg.ReposToSync = cleanList(cfg.ReposToSync)
	cfg.ServiceOptions = cleanList(cfg.ServiceOptions)

	if cfg.DBURL == "" {
		return nil, errors.New("DB_URL is a required configuration field")
	}
	if cfg.SyncInterval < 0 {
		return nil, errors.New("SYNC_INTERVAL must not be negative")
	}

	return &cfg, nil
}

// cleanList splits comma separated entries, trims them and drops empties.
func cleanList(in []string) []string {
	out := make([]string, 0, len(in))
	for _, item := range in {
		for _, part := range strings.Split(item, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
