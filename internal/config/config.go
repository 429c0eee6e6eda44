// Package config loads tweenctl settings from a YAML file and TWEENCTL_*
// environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix is prepended to environment overrides, e.g. TWEENCTL_LOGGING_LEVEL.
const EnvPrefix = "TWEENCTL"

// Config holds all tweenctl configuration
type Config struct {
	Logging LoggingConfig `mapstructure:"logging"`
	Sample  SampleConfig  `mapstructure:"sample"`
	Preview PreviewConfig `mapstructure:"preview"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	File  string `mapstructure:"file"`  // empty logs to stderr
	Level string `mapstructure:"level"` // DEBUG, INFO, WARN or ERROR
}

// SampleConfig holds defaults for the sample command
type SampleConfig struct {
	Step       float64 `mapstructure:"step"`        // 0 means one viewport width
	MaxSamples int     `mapstructure:"max_samples"` // refuse larger sweeps
}

// PreviewConfig holds defaults for the preview command
type PreviewConfig struct {
	Step     float64 `mapstructure:"step"`      // 0 means a tenth of a viewport width
	BarWidth int     `mapstructure:"bar_width"` // progress bar width in cells
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level: "WARN",
		},
		Sample: SampleConfig{
			MaxSamples: 10000,
		},
		Preview: PreviewConfig{
			BarWidth: 40,
		},
	}
}

// defaultConfigPath returns the default config directory for the current OS
func defaultConfigPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "tweenctl")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "tweenctl")
	}
}

// LoadConfig loads configuration from file and environment. An empty path
// searches the working directory and the user config directory for
// tweenctl.yaml; a missing file there is not an error. An explicit path must
// exist.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	v := viper.New()
	v.SetConfigType("yaml")
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("tweenctl")
		v.AddConfigPath(".")
		v.AddConfigPath(defaultConfigPath())
	}

	// Defaults register every key so AutomaticEnv can override it.
	setDefaults(v, cfg)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("logging.file", cfg.Logging.File)
	v.SetDefault("logging.level", cfg.Logging.Level)
	v.SetDefault("sample.step", cfg.Sample.Step)
	v.SetDefault("sample.max_samples", cfg.Sample.MaxSamples)
	v.SetDefault("preview.step", cfg.Preview.Step)
	v.SetDefault("preview.bar_width", cfg.Preview.BarWidth)
}
