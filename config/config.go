package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Meo-4971/StockView/pkg/stocktraders"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Upstream UpstreamConfig `mapstructure:"upstream"`
	View     ViewConfig     `mapstructure:"view"`
	Log      LogConfig      `mapstructure:"log"`
	Postgres PostgresConfig `mapstructure:"postgres"`
}

type ServerConfig struct {
	Addr string `mapstructure:"addr"`
}

// UpstreamConfig points at the trading-data provider.
// A zero Timeout means the request is never cut short.
type UpstreamConfig struct {
	URL     string        `mapstructure:"url"`
	Account string        `mapstructure:"account"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// ViewConfig holds the date range preselected in the UI (YYYY-MM-DD).
type ViewConfig struct {
	DefaultStart string `mapstructure:"default_start"`
	DefaultEnd   string `mapstructure:"default_end"`
}

// Options defines the logger configuration options.
type LogConfig struct {
	Level       string `mapstructure:"level"`       // log level: "debug", "info", "warn", "error"
	Format      string `mapstructure:"format"`      // log format: "json" or "console"
	OutputFile  string `mapstructure:"output_file"` // file path to store logs (optional)
	Environment string `mapstructure:"environment"` // environment: "dev" or "prod"
	Stderr      bool   `mapstructure:"stderr"`      // write console output to stderr instead of stdout
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", "127.0.0.1:8501")

	v.SetDefault("upstream.url", stocktraders.DefaultURL)
	v.SetDefault("upstream.account", stocktraders.DefaultAccount)
	v.SetDefault("upstream.timeout", time.Duration(0))

	v.SetDefault("view.default_start", "2023-01-01")
	v.SetDefault("view.default_end", "2023-12-31")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("log.output_file", "")
	v.SetDefault("log.environment", "dev")
	v.SetDefault("log.stderr", false)

	v.SetDefault("postgres.enabled", false)
	v.SetDefault("postgres.environment", "dev")
	v.SetDefault("postgres.host", "localhost")
	v.SetDefault("postgres.port", 5432)
	v.SetDefault("postgres.user", "postgres")
	v.SetDefault("postgres.password", "")
	v.SetDefault("postgres.dbname", "stockview")
	v.SetDefault("postgres.sslmode", "disable")
	v.SetDefault("postgres.timezone", "UTC")
	v.SetDefault("postgres.max_open_conns", 10)
	v.SetDefault("postgres.max_idle_conns", 5)
	v.SetDefault("postgres.conn_max_lifetime", time.Hour)
}

// Load loads application configuration using Viper.
// It reads from the given file (or config.yaml in ./ and ./config when path
// is empty) and overrides with environment variables. A missing config file
// is not an error: every key has a default.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config") // config.yaml
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	// Support environment variables with dot notation (e.g., UPSTREAM_URL)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) || path != "" {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the fields the application cannot run without.
func (c *Config) Validate() error {
	if c.Server.Addr == "" {
		return fmt.Errorf("server.addr is required")
	}
	if c.Upstream.URL == "" {
		return fmt.Errorf("upstream.url is required")
	}
	if c.Upstream.Timeout < 0 {
		return fmt.Errorf("upstream.timeout must not be negative")
	}
	for key, val := range map[string]string{
		"view.default_start": c.View.DefaultStart,
		"view.default_end":   c.View.DefaultEnd,
	} {
		if _, err := time.Parse(time.DateOnly, val); err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
	}
	return nil
}
