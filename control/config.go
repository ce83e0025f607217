// control/config.go
// Author: momentics <momentics@gmail.com>
//
// Configuration loading with defaults, optional YAML file and PEUCK_* environment overrides.

package control

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds peuck runtime settings.
type Config struct {
	Log      LogConfig      `mapstructure:"log"`
	Platform PlatformConfig `mapstructure:"platform"`
	Trace    TraceConfig    `mapstructure:"trace"`
	Metrics  MetricsConfig  `mapstructure:"metrics"`
}

// LogConfig selects logger level and output format.
type LogConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Format string `mapstructure:"format"` // text or json
}

// PlatformConfig controls access to the native CPU layer.
type PlatformConfig struct {
	Enabled   bool   `mapstructure:"enabled"` // false closes the platform gate
	ProcMount string `mapstructure:"proc_mount"`
	SysMount  string `mapstructure:"sys_mount"`
}

// TraceConfig controls named section recording.
type TraceConfig struct {
	Enabled     bool    `mapstructure:"enabled"`
	Exporter    string  `mapstructure:"exporter"` // none or stdout
	ServiceName string  `mapstructure:"service_name"`
	SampleRate  float64 `mapstructure:"sample_rate"`
}

// MetricsConfig toggles prometheus collectors.
type MetricsConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// SetDefaults registers every key with its default on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("platform.enabled", true)
	v.SetDefault("platform.proc_mount", "/proc")
	v.SetDefault("platform.sys_mount", "/sys")
	v.SetDefault("trace.enabled", false)
	v.SetDefault("trace.exporter", "none")
	v.SetDefault("trace.service_name", "peuck")
	v.SetDefault("trace.sample_rate", 1.0)
	v.SetDefault("metrics.enabled", true)
}

// DefaultConfig returns the configuration used when nothing is overridden.
func DefaultConfig() *Config {
	v := viper.New()
	SetDefaults(v)
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		panic(fmt.Sprintf("control: default config: %v", err))
	}
	return cfg
}

// Load reads configuration into a Config. An empty cfgFile searches for
// peuck.yaml in /etc/peuck/ and the working directory; a missing file is not an error.
func Load(v *viper.Viper, cfgFile string) (*Config, error) {
	SetDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("peuck")
		v.SetConfigType("yaml")
		v.AddConfigPath("/etc/peuck/")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("PEUCK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks enumerated and ranged values.
func (c *Config) Validate() error {
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("invalid log format %q", c.Log.Format)
	}
	switch c.Trace.Exporter {
	case "none", "stdout":
	default:
		return fmt.Errorf("invalid trace exporter %q", c.Trace.Exporter)
	}
	if c.Trace.SampleRate < 0 || c.Trace.SampleRate > 1 {
		return fmt.Errorf("trace sample rate %v out of range [0,1]", c.Trace.SampleRate)
	}
	return nil
}

// Snapshot flattens the configuration for the control surface.
func (c *Config) Snapshot() map[string]any {
	return map[string]any{
		"log.level":           c.Log.Level,
		"log.format":          c.Log.Format,
		"platform.enabled":    c.Platform.Enabled,
		"platform.proc_mount": c.Platform.ProcMount,
		"platform.sys_mount":  c.Platform.SysMount,
		"trace.enabled":       c.Trace.Enabled,
		"trace.exporter":      c.Trace.Exporter,
		"trace.service_name":  c.Trace.ServiceName,
		"trace.sample_rate":   c.Trace.SampleRate,
		"metrics.enabled":     c.Metrics.Enabled,
	}
}
