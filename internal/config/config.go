package config

import (
	"fmt"
	"os"
	"strings"
	"time"
	_ "time/tzdata" // display timezones must resolve on minimal images

	"github.com/newthinker/ichimoku-dashboard/internal/core"
	"github.com/spf13/viper"
)

// Snapshot source types
const (
	SourceLocalFS = "localfs"
	SourceS3      = "s3"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Snapshot SnapshotConfig `mapstructure:"snapshot"`
	Display  DisplayConfig  `mapstructure:"display"`
	Metrics  MetricsConfig  `mapstructure:"metrics"`
}

type ServerConfig struct {
	Host   string `mapstructure:"host"`
	Port   int    `mapstructure:"port"`
	APIKey string `mapstructure:"api_key"`
}

// SnapshotConfig locates the analysis results artifact.
type SnapshotConfig struct {
	Key    string       `mapstructure:"key"`
	Source SourceConfig `mapstructure:"source"`
}

type SourceConfig struct {
	Type string   `mapstructure:"type"` // "localfs" or "s3"
	Path string   `mapstructure:"path"` // For localfs
	S3   S3Config `mapstructure:"s3"`   // For S3
}

type S3Config struct {
	Bucket    string `mapstructure:"bucket"`
	Endpoint  string `mapstructure:"endpoint"`
	Region    string `mapstructure:"region"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
	Prefix    string `mapstructure:"prefix"`
}

// DisplayConfig controls how the dashboard presents the snapshot.
type DisplayConfig struct {
	Timezone string `mapstructure:"timezone"`
	// OnlyWithSignalDefault is the state of the "only with signal" toggle
	// before the user has submitted the filter form.
	OnlyWithSignalDefault bool `mapstructure:"only_with_signal_default"`
}

// Location resolves the display timezone, falling back to UTC.
func (d DisplayConfig) Location() *time.Location {
	if d.Timezone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(d.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// MetricsConfig holds metrics configuration.
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

// Load reads configuration from file, layered over Defaults.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	setDefaults(v)

	// Support environment variable overrides
	v.SetEnvPrefix("ICHIMOKU")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	// Expand environment variables in string values
	for _, key := range v.AllKeys() {
		val := v.GetString(key)
		if strings.HasPrefix(val, "${") && strings.HasSuffix(val, "}") {
			envKey := strings.TrimSuffix(strings.TrimPrefix(val, "${"), "}")
			v.Set(key, os.Getenv(envKey))
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	d := Defaults()
	v.SetDefault("server.host", d.Server.Host)
	v.SetDefault("server.port", d.Server.Port)
	v.SetDefault("snapshot.key", d.Snapshot.Key)
	v.SetDefault("snapshot.source.type", d.Snapshot.Source.Type)
	v.SetDefault("snapshot.source.path", d.Snapshot.Source.Path)
	v.SetDefault("display.timezone", d.Display.Timezone)
	v.SetDefault("display.only_with_signal_default", d.Display.OnlyWithSignalDefault)
	v.SetDefault("metrics.enabled", d.Metrics.Enabled)
	v.SetDefault("metrics.path", d.Metrics.Path)
}

// Defaults returns a config that reads data/analysis_results.json from the
// working directory.
func Defaults() *Config {
	return &Config{
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8501,
		},
		Snapshot: SnapshotConfig{
			Key: "analysis_results.json",
			Source: SourceConfig{
				Type: SourceLocalFS,
				Path: "data",
			},
		},
		Display: DisplayConfig{
			Timezone:              "Asia/Taipei",
			OnlyWithSignalDefault: true,
		},
		Metrics: MetricsConfig{
			Enabled: true,
			Path:    "/metrics",
		},
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("port must be between 1 and 65535, got %d", c.Server.Port))
	}

	if strings.TrimSpace(c.Snapshot.Key) == "" {
		return core.WrapError(core.ErrConfigMissing,
			fmt.Errorf("snapshot.key is required"))
	}

	switch c.Snapshot.Source.Type {
	case SourceLocalFS:
		if c.Snapshot.Source.Path == "" {
			return core.WrapError(core.ErrConfigMissing,
				fmt.Errorf("snapshot.source.path required when type is localfs"))
		}
	case SourceS3:
		if c.Snapshot.Source.S3.Bucket == "" {
			return core.WrapError(core.ErrConfigMissing,
				fmt.Errorf("snapshot.source.s3.bucket required when type is s3"))
		}
	default:
		return core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("unknown snapshot source type: %q", c.Snapshot.Source.Type))
	}

	if c.Display.Timezone != "" {
		if _, err := time.LoadLocation(c.Display.Timezone); err != nil {
			return core.WrapError(core.ErrConfigInvalid,
				fmt.Errorf("display.timezone: %w", err))
		}
	}

	if c.Metrics.Enabled && !strings.HasPrefix(c.Metrics.Path, "/") {
		return core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("metrics.path must start with /, got %q", c.Metrics.Path))
	}

	return nil
}
