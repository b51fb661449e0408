package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const envPrefix = "SOLAR"

type Config struct {
	Log     LogConfig     `mapstructure:"log"`
	Server  ServerConfig  `mapstructure:"server"`
	Report  ReportConfig  `mapstructure:"report"`
	Auth    AuthConfig    `mapstructure:"auth"`
	Archive ArchiveConfig `mapstructure:"archive"`
	Dataset DatasetConfig `mapstructure:"dataset"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

type ReportConfig struct {
	Title          string `mapstructure:"title"`
	Locale         string `mapstructure:"locale"`
	CurrencySymbol string `mapstructure:"currency_symbol"`
	ChartMode      string `mapstructure:"chart_mode"`
	Compress       bool   `mapstructure:"compress"`
	OutputDir      string `mapstructure:"output_dir"`
	RecentLimit    int    `mapstructure:"recent_limit"`
	Timezone       string `mapstructure:"timezone"`
}

// Location resolves Timezone, defaulting to the process local zone.
func (r ReportConfig) Location() (*time.Location, error) {
	if r.Timezone == "" || strings.EqualFold(r.Timezone, "local") {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(r.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid report timezone %q: %w", r.Timezone, err)
	}
	return loc, nil
}

type AuthConfig struct {
	CredentialsFile string `mapstructure:"credentials_file"`
}

type ArchiveConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Bucket  string `mapstructure:"bucket"`
	Region  string `mapstructure:"region"`
	Prefix  string `mapstructure:"prefix"`
}

type DatasetConfig struct {
	Path string `mapstructure:"path"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("server.host", "localhost")
	v.SetDefault("server.port", 8080)
	v.SetDefault("report.title", "Solar Project Report")
	v.SetDefault("report.locale", "en-US")
	v.SetDefault("report.currency_symbol", "$")
	v.SetDefault("report.chart_mode", "raster")
	v.SetDefault("report.compress", true)
	v.SetDefault("report.output_dir", ".")
	v.SetDefault("report.recent_limit", 5)
	v.SetDefault("report.timezone", "Local")
	v.SetDefault("auth.credentials_file", "")
	v.SetDefault("archive.enabled", false)
	v.SetDefault("archive.bucket", "")
	v.SetDefault("archive.region", "")
	v.SetDefault("archive.prefix", "reports/")
	v.SetDefault("dataset.path", "")
}

// Load reads the optional YAML file at path, then applies SOLAR_* environment
// overrides such as SOLAR_SERVER_PORT. An empty path means defaults and
// environment only.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.Report.ChartMode {
	case "raster", "placeholder":
	default:
		return fmt.Errorf("report.chart_mode must be raster or placeholder, got %q", c.Report.ChartMode)
	}
	if c.Report.RecentLimit < 0 {
		return errors.New("report.recent_limit must not be negative")
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port out of range: %d", c.Server.Port)
	}
	if c.Archive.Enabled && c.Archive.Bucket == "" {
		return errors.New("archive.bucket is required when archive.enabled is set")
	}
	return nil
}
