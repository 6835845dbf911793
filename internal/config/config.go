// Package config loads go-orbit settings from the environment and an
// optional config file.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable, e.g. ORBIT_PORT.
const EnvPrefix = "ORBIT"

// Defaults.
const (
	DefaultPort          = "8080"
	DefaultLogLevel      = "info"
	DefaultStaticDir     = "./web"
	DefaultTickRate      = 16 * time.Millisecond
	DefaultDeadZone      = 1e-4
	DefaultViewportWidth = 1280
)

// Config holds the service settings.
type Config struct {
	Port          string        `mapstructure:"port"`
	LogLevel      string        `mapstructure:"log_level"`
	SegmentsFile  string        `mapstructure:"segments_file"` // empty = built-in table
	StaticDir     string        `mapstructure:"static_dir"`
	TickRate      time.Duration `mapstructure:"tick_rate"`
	DeadZone      float64       `mapstructure:"dead_zone"`
	ViewportWidth int           `mapstructure:"viewport_width"`
}

// Load reads configuration. path may be empty, in which case ORBIT_CONFIG is
// consulted; with neither set, only defaults and environment apply.
func Load(path string) (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if path == "" {
		path = v.GetString("config")
	}
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Default returns the configuration used when nothing is set.
func Default() Config {
	return Config{
		Port:          DefaultPort,
		LogLevel:      DefaultLogLevel,
		StaticDir:     DefaultStaticDir,
		TickRate:      DefaultTickRate,
		DeadZone:      DefaultDeadZone,
		ViewportWidth: DefaultViewportWidth,
	}
}

func setDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("port", d.Port)
	v.SetDefault("log_level", d.LogLevel)
	v.SetDefault("segments_file", d.SegmentsFile)
	v.SetDefault("static_dir", d.StaticDir)
	v.SetDefault("tick_rate", d.TickRate)
	v.SetDefault("dead_zone", d.DeadZone)
	v.SetDefault("viewport_width", d.ViewportWidth)
	v.SetDefault("config", "")
}

// Validate checks the configuration for errors.
func (c Config) Validate() error {
	var errs []error
	if c.Port == "" {
		errs = append(errs, errors.New("port is required"))
	}
	if c.TickRate <= 0 {
		errs = append(errs, fmt.Errorf("tick_rate must be positive, got %v", c.TickRate))
	}
	if c.DeadZone < 0 {
		errs = append(errs, fmt.Errorf("dead_zone must not be negative, got %v", c.DeadZone))
	}
	if c.ViewportWidth <= 0 {
		errs = append(errs, fmt.Errorf("viewport_width must be positive, got %d", c.ViewportWidth))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}

// Addr returns the listen address for Port.
func (c Config) Addr() string {
	if strings.Contains(c.Port, ":") {
		return c.Port
	}
	return ":" + c.Port
}
