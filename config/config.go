/*
Package config loads runtime settings and builds the logger.

PURPOSE:
  The server and the CLI share one configuration: where the reference data
  lives, how the HTTP server listens and how logs are written.

SOURCES (later wins):
  1. Built-in defaults
  2. Optional config file (YAML, TOML or JSON by extension)
  3. Environment variables prefixed SETTLEMENT_, dots as underscores:
     SETTLEMENT_SERVER_ADDRESS, SETTLEMENT_DATA_DIR, SETTLEMENT_LOGGING_LEVEL

EXAMPLE FILE:
  server:
    address: ":8080"
    allowedOrigins: ["http://localhost:5173"]
  data:
    dir: ./data
    database: settlement.db
    reloadInterval: 24h
  logging:
    level: info
    format: json

SEE ALSO:
  - logger.go: zap logger construction
  - cmd/server/main.go, cmd/calc: Consumers
*/
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/warp/settlement-engine/dataset"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "SETTLEMENT"

// Config is the full runtime configuration.
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Data    DataConfig    `mapstructure:"data"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Address        string        `mapstructure:"address"`
	ReadTimeout    time.Duration `mapstructure:"readTimeout"`
	WriteTimeout   time.Duration `mapstructure:"writeTimeout"`
	IdleTimeout    time.Duration `mapstructure:"idleTimeout"`
	AllowedOrigins []string      `mapstructure:"allowedOrigins"`
}

// DataConfig locates the reference data.
type DataConfig struct {
	Dir      string        `mapstructure:"dir"`
	Database string        `mapstructure:"database"` // empty: serve straight from the CSV files
	Files    dataset.Files `mapstructure:"files"`

	// ReloadInterval re-reads the tables periodically while serving. Zero
	// loads them once at startup.
	ReloadInterval time.Duration `mapstructure:"reloadInterval"`
}

// LoggingConfig holds logging configuration options.
type LoggingConfig struct {
	Level      string `mapstructure:"level"`      // debug, info, warn, error
	Format     string `mapstructure:"format"`     // json, console
	OutputFile string `mapstructure:"outputFile"` // optional file output
}

func setDefaults(v *viper.Viper) {
	files := dataset.DefaultFiles()

	v.SetDefault("server.address", ":8080")
	v.SetDefault("server.readTimeout", 15*time.Second)
	v.SetDefault("server.writeTimeout", 15*time.Second)
	v.SetDefault("server.idleTimeout", 60*time.Second)
	v.SetDefault("server.allowedOrigins", []string{"http://localhost:3000", "http://localhost:5173"})

	v.SetDefault("data.dir", "data")
	v.SetDefault("data.database", "")
	v.SetDefault("data.reloadInterval", time.Duration(0))
	v.SetDefault("data.files.ripte", files.RIPTE)
	v.SetDefault("data.files.ipc", files.IPC)
	v.SetDefault("data.files.tasa", files.ActiveRate)
	v.SetDefault("data.files.jus", files.JUS)
	v.SetDefault("data.files.pisos", files.Floors)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
	v.SetDefault("logging.outputFile", "")
}

// Load reads the configuration. An empty path or a missing file yields the
// defaults plus environment overrides.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects settings the server cannot start with.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Server.Address) == "" {
		return errors.New("server.address is required")
	}
	if c.Server.ReadTimeout < 0 || c.Server.WriteTimeout < 0 || c.Server.IdleTimeout < 0 {
		return errors.New("server timeouts cannot be negative")
	}
	if c.Data.ReloadInterval < 0 {
		return errors.New("data.reloadInterval cannot be negative")
	}
	if _, err := parseLevel(c.Logging.Level); err != nil {
		return err
	}
	switch c.Logging.Format {
	case "", "json", "console":
	default:
		return fmt.Errorf("invalid log format: %s", c.Logging.Format)
	}
	return nil
}
