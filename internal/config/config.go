// Package config loads fontlist settings. FONTLIST_* environment variables
// override config.yaml, which overrides the built-in defaults.
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/logandonley/fontlist/internal/logging"
	"github.com/spf13/viper"
)

// FileName is the config file looked up in the config directory.
const FileName = "config.yaml"

// GeometryFileName is the default name of the persisted window geometry.
const GeometryFileName = "settings.txt"

// Config is the resolved application configuration
type Config struct {
	GeometryFile      string    `mapstructure:"geometry_file"`
	FontDirs          []string  `mapstructure:"font_dirs"`
	IncludeSystemDirs bool      `mapstructure:"include_system_dirs"`
	Watch             bool      `mapstructure:"watch"`
	ScanConcurrency   int       `mapstructure:"scan_concurrency"`
	Log               LogConfig `mapstructure:"log"`
}

// LogConfig configures the logger
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Logging converts the log section to a logging.Config
func (c *Config) Logging() logging.Config {
	cfg := logging.DefaultConfig()
	cfg.Level = c.Log.Level
	cfg.Format = c.Log.Format
	return cfg
}

// Loader reads configuration for a given config directory
type Loader struct {
	v         *viper.Viper
	configDir string
}

// NewLoader creates a loader. When explicitPath is empty the loader looks
// for config.yaml in configDir; a missing file is not an error.
func NewLoader(configDir, explicitPath string) *Loader {
	v := viper.New()

	if explicitPath != "" {
		v.SetConfigFile(explicitPath)
	} else {
		v.SetConfigName(strings.TrimSuffix(FileName, filepath.Ext(FileName)))
		v.SetConfigType("yaml")
		v.AddConfigPath(configDir)
	}

	v.SetEnvPrefix("FONTLIST")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	l := &Loader{v: v, configDir: configDir}
	l.setDefaults()
	return l
}

func (l *Loader) setDefaults() {
	l.v.SetDefault("geometry_file", filepath.Join(l.configDir, GeometryFileName))
	l.v.SetDefault("font_dirs", []string{})
	l.v.SetDefault("include_system_dirs", true)
	l.v.SetDefault("watch", true)
	l.v.SetDefault("scan_concurrency", 0)
	l.v.SetDefault("log.level", "info")
	l.v.SetDefault("log.format", logging.FormatConsole)
}

// Load reads, unmarshals and validates the configuration
func (l *Loader) Load() (*Config, error) {
	if err := l.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := l.v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	normalize(cfg)

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	return cfg, nil
}

// Used returns the config file that was read, if any
func (l *Loader) Used() string {
	return l.v.ConfigFileUsed()
}

// Load is a shorthand for NewLoader(configDir, explicitPath).Load()
func Load(configDir, explicitPath string) (*Config, error) {
	return NewLoader(configDir, explicitPath).Load()
}

func normalize(cfg *Config) {
	cfg.Log.Level = strings.ToLower(strings.TrimSpace(cfg.Log.Level))
	cfg.Log.Format = strings.ToLower(strings.TrimSpace(cfg.Log.Format))

	dirs := cfg.FontDirs[:0]
	for _, dir := range cfg.FontDirs {
		if dir = strings.TrimSpace(dir); dir != "" {
			dirs = append(dirs, dir)
		}
	}
	cfg.FontDirs = dirs
}

// Validate checks values that cannot be corrected silently
func Validate(cfg *Config) error {
	if _, err := logging.ParseLevel(cfg.Log.Level); err != nil {
		return err
	}
	switch cfg.Log.Format {
	case logging.FormatConsole, logging.FormatJSON:
	default:
		return fmt.Errorf("unknown log format %q", cfg.Log.Format)
	}
	if cfg.ScanConcurrency < 0 {
		return fmt.Errorf("scan_concurrency must not be negative, got %d", cfg.ScanConcurrency)
	}
	if strings.TrimSpace(cfg.GeometryFile) == "" {
		return fmt.Errorf("geometry_file must not be empty")
	}
	return nil
}
