package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every configuration key read from the environment,
// e.g. TASKS_DATABASE_URL for database.url.
const EnvPrefix = "TASKS"

// Default values applied before any file or environment override.
const (
	DefaultPort        = 3000
	DefaultLogLevel    = "info"
	DefaultDriver      = DriverSQLite
	DefaultSQLiteURL   = ":memory:"
	DefaultMaxOpenConn = 10
	DefaultShutdown    = 10
)

// LoadOptions tunes where Load looks for a config file.
type LoadOptions struct {
	// ConfigFile is an explicit path. When empty Load searches for
	// config.{yaml,json,toml} in the working directory and is happy to find none.
	ConfigFile string
}

// Load configuration from defaults, an optional config file and environment
// variables. Environment variables take precedence over values from config files.
// The listening port may also be given through the conventional PORT variable.
// Returns a populated Config struct or an error if loading/validation fails.
func Load(opts ...LoadOptions) (*Config, error) {
	var opt LoadOptions
	if len(opts) > 0 {
		opt = opts[0]
	}

	v := viper.New()

	v.SetDefault("server.port", DefaultPort)
	v.SetDefault("server.log_level", DefaultLogLevel)
	v.SetDefault("server.shutdown_timeout_seconds", DefaultShutdown)
	v.SetDefault("database.driver", DefaultDriver)
	v.SetDefault("database.max_open_conns", DefaultMaxOpenConn)

	if opt.ConfigFile != "" {
		v.SetConfigFile(opt.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", opt.ConfigFile, err)
		}
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Explicit bindings make Unmarshal see env-only keys; the first variable set wins.
	bindings := map[string][]string{
		"server.port":                     {EnvPrefix + "_SERVER_PORT", "PORT"},
		"server.log_level":                {EnvPrefix + "_SERVER_LOG_LEVEL"},
		"server.shutdown_timeout_seconds": {EnvPrefix + "_SERVER_SHUTDOWN_TIMEOUT_SECONDS"},
		"database.driver":                 {EnvPrefix + "_DATABASE_DRIVER"},
		"database.url":                    {EnvPrefix + "_DATABASE_URL", "DATABASE_URL"},
		"database.max_open_conns":         {EnvPrefix + "_DATABASE_MAX_OPEN_CONNS"},
	}
	for key, envs := range bindings {
		input := append([]string{key}, envs...)
		if err := v.BindEnv(input...); err != nil {
			return nil, fmt.Errorf("failed to bind environment for %s: %w", key, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.Database.Driver = strings.ToLower(cfg.Database.Driver)
	cfg.Server.LogLevel = strings.ToLower(cfg.Server.LogLevel)
	if cfg.Database.Driver == DriverSQLite && cfg.Database.URL == "" {
		cfg.Database.URL = DefaultSQLiteURL
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks cfg against its struct tags.
func Validate(cfg *Config) error {
	if err := validator.New().Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	return nil
}
