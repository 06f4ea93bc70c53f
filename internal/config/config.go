package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/spf13/viper"
	"go.uber.org/multierr"

	"netflux/pkg/format"
	"netflux/pkg/view"
)

type Config struct {
	Sampler       SamplerConfig       `mapstructure:"sampler"`
	History       HistoryConfig       `mapstructure:"history"`
	View          ViewConfig          `mapstructure:"view"`
	API           APIConfig           `mapstructure:"api"`
	Metrics       MetricsConfig       `mapstructure:"metrics"`
	MetricsExport MetricsExportConfig `mapstructure:"metrics_export"`
	Observability ObservabilityConfig `mapstructure:"observability"`
	UI            UIConfig            `mapstructure:"ui"`
	Logging       LoggingConfig       `mapstructure:"logging"`
}

type SamplerConfig struct {
	IntervalMs     int      `mapstructure:"interval_ms"`
	QueryTimeoutMs int      `mapstructure:"query_timeout_ms"`
	Ignore         []string `mapstructure:"ignore"`
}

type HistoryConfig struct {
	PanelCapacity int `mapstructure:"panel_capacity"`
	IconCapacity  int `mapstructure:"icon_capacity"`
}

type ViewConfig struct {
	InitialMode string `mapstructure:"initial_mode"`
}

type APIConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Address string `mapstructure:"address"`
	Pprof   bool   `mapstructure:"pprof"`
}

type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Address string `mapstructure:"address"`
	Path    string `mapstructure:"path"`
}

type MetricsExportConfig struct {
	Enabled         bool   `mapstructure:"enabled"`
	RemoteWriteURL  string `mapstructure:"remote_write_url"`
	IntervalSeconds int    `mapstructure:"interval_seconds"`
	BearerToken     string `mapstructure:"bearer_token"`
}

type ObservabilityConfig struct {
	TracesLimit int    `mapstructure:"traces_limit"`
	AlertsLimit int    `mapstructure:"alerts_limit"`
	AlertTier   string `mapstructure:"alert_tier"`
}

type UIConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

type LoggingConfig struct {
	Level      string `mapstructure:"level"`
	File       string `mapstructure:"file"`
	LokiURL    string `mapstructure:"loki_url"`
	ElasticURL string `mapstructure:"elastic_url"`
	// ShipLevel is the lowest level forwarded to Loki or Elastic.
	ShipLevel string `mapstructure:"ship_level"`
}

// Default is the configuration used when no config file exists.
func Default() *Config {
	cfg := &Config{
		API:     APIConfig{Enabled: true},
		Metrics: MetricsConfig{Enabled: true},
		UI:      UIConfig{Enabled: true},
	}
	applyDefaults(cfg)
	return cfg
}

func Load(path string) (*Config, error) {
	v := newViper()
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return decode(v)
}

// LoadOrDefault is Load, except that a missing file yields Default().
func LoadOrDefault(path string) (*Config, error) {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	return Load(path)
}

func LoadFromBytes(data []byte) (*Config, error) {
	v := newViper()
	v.SetConfigType("yaml")
	if err := v.ReadConfig(bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return decode(v)
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix("NETFLUX")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	v.SetDefault("api.enabled", true)
	v.SetDefault("metrics.enabled", true)
	v.SetDefault("ui.enabled", true)
	return v
}

func decode(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	applyDefaults(&cfg)
	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Sampler.IntervalMs == 0 {
		cfg.Sampler.IntervalMs = 1000
	}
	if cfg.Sampler.QueryTimeoutMs == 0 {
		cfg.Sampler.QueryTimeoutMs = 500
	}
	if cfg.History.PanelCapacity == 0 {
		cfg.History.PanelCapacity = 240
	}
	if cfg.History.IconCapacity == 0 {
		cfg.History.IconCapacity = 32
	}
	if cfg.View.InitialMode == "" {
		cfg.View.InitialMode = "all"
	}
	if cfg.API.Address == "" {
		cfg.API.Address = "127.0.0.1:7070"
	}
	if cfg.Metrics.Address == "" {
		cfg.Metrics.Address = "127.0.0.1:9090"
	}
	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = "/metrics"
	}
	if cfg.MetricsExport.IntervalSeconds == 0 {
		cfg.MetricsExport.IntervalSeconds = 15
	}
	if cfg.Observability.TracesLimit == 0 {
		cfg.Observability.TracesLimit = 1000
	}
	if cfg.Observability.AlertsLimit == 0 {
		cfg.Observability.AlertsLimit = 100
	}
	if cfg.Observability.AlertTier == "" {
		cfg.Observability.AlertTier = "peak"
	}
	cfg.Logging.Level = strings.ToLower(strings.TrimSpace(cfg.Logging.Level))
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	cfg.Logging.ShipLevel = strings.ToLower(strings.TrimSpace(cfg.Logging.ShipLevel))
	if cfg.Logging.ShipLevel == "" {
		cfg.Logging.ShipLevel = "warn"
	}
}

func validate(cfg *Config) error {
	var errs error
	if cfg.Sampler.IntervalMs < 100 {
		errs = multierr.Append(errs, fmt.Errorf("sampler.interval_ms must be at least 100, got %d", cfg.Sampler.IntervalMs))
	}
	if cfg.Sampler.QueryTimeoutMs < 0 {
		errs = multierr.Append(errs, fmt.Errorf("sampler.query_timeout_ms must not be negative"))
	}
	if cfg.History.PanelCapacity < 1 {
		errs = multierr.Append(errs, fmt.Errorf("history.panel_capacity must be positive"))
	}
	if cfg.History.IconCapacity < 1 {
		errs = multierr.Append(errs, fmt.Errorf("history.icon_capacity must be positive"))
	}
	if _, err := view.ParseMode(cfg.View.InitialMode); err != nil {
		errs = multierr.Append(errs, fmt.Errorf("view.initial_mode: %w", err))
	}
	if _, err := format.ParseTier(cfg.Observability.AlertTier); err != nil {
		errs = multierr.Append(errs, fmt.Errorf("observability.alert_tier: %w", err))
	}
	if cfg.MetricsExport.Enabled && cfg.MetricsExport.RemoteWriteURL == "" {
		errs = multierr.Append(errs, fmt.Errorf("metrics_export.remote_write_url is required when export is enabled"))
	}
	if !validLevel(cfg.Logging.Level) {
		errs = multierr.Append(errs, fmt.Errorf("logging.level %q is not one of debug, info, warn, error", cfg.Logging.Level))
	}
	if !validLevel(cfg.Logging.ShipLevel) {
		errs = multierr.Append(errs, fmt.Errorf("logging.ship_level %q is not one of debug, info, warn, error", cfg.Logging.ShipLevel))
	}
	return errs
}

func validLevel(level string) bool {
	switch level {
	case "debug", "info", "warn", "error":
		return true
	default:
		return false
	}
}

// InitialMode is the validated view.initial_mode.
func (c *Config) InitialMode() view.Mode {
	m, _ := view.ParseMode(c.View.InitialMode)
	return m
}

func (c *Config) AlertTier() format.Tier {
	t, _ := format.ParseTier(c.Observability.AlertTier)
	return t
}
