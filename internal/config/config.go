package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/afero"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Config captures user-level defaults for the poly CLI.
type Config struct {
	Theme       string        `mapstructure:"theme"`
	InitTimeout time.Duration `mapstructure:"init_timeout"`
	Interactive string        `mapstructure:"interactive"`
	DocsURL     string        `mapstructure:"docs_url"`
	Log         LogConfig     `mapstructure:"log"`
}

// LogConfig controls diagnostic logging.
type LogConfig struct {
	Level string `mapstructure:"level" yaml:"level"`
	File  bool   `mapstructure:"file" yaml:"file"`
}

const (
	InteractiveAuto   = "auto"
	InteractiveAlways = "always"
	InteractiveNever  = "never"

	// EnvPrefix prefixes every environment override, e.g. POLY_THEME.
	EnvPrefix = "POLY"
)

// Default returns the baseline configuration.
func Default() Config {
	return Config{
		Theme:       "tdd",
		InitTimeout: 30 * time.Second,
		Interactive: InteractiveAuto,
		DocsURL:     "https://davidvujic.github.io/python-polylith-docs/setup/",
		Log: LogConfig{
			Level: "warn",
		},
	}
}

// SetDefaults registers every key with v so env overrides and Unmarshal see
// the full key set.
func SetDefaults(v *viper.Viper) {
	defaults := Default()
	v.SetDefault("theme", defaults.Theme)
	v.SetDefault("init_timeout", defaults.InitTimeout)
	v.SetDefault("interactive", defaults.Interactive)
	v.SetDefault("docs_url", defaults.DocsURL)
	v.SetDefault("log.level", defaults.Log.Level)
	v.SetDefault("log.file", defaults.Log.File)
}

// Load merges defaults, the config file and POLY_* environment variables.
// An empty path searches Dir() and tolerates a missing file; an explicit
// path must exist.
func Load(fsys afero.Fs, path string) (Config, string, error) {
	v := viper.New()
	v.SetFs(fsys)
	SetDefaults(v)

	v.SetConfigType("yaml")
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(Dir())
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return Config{}, "", fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, "", fmt.Errorf("unmarshal config: %w", err)
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return Config{}, "", err
	}
	return cfg, v.ConfigFileUsed(), nil
}

// ApplyDefaults fills zero values left by a partial file.
func (c *Config) ApplyDefaults() {
	defaults := Default()
	if c.Theme == "" {
		c.Theme = defaults.Theme
	}
	if c.InitTimeout == 0 {
		c.InitTimeout = defaults.InitTimeout
	}
	if c.Interactive == "" {
		c.Interactive = defaults.Interactive
	}
	if c.DocsURL == "" {
		c.DocsURL = defaults.DocsURL
	}
	if c.Log.Level == "" {
		c.Log.Level = defaults.Log.Level
	}
}

// Dir returns the user's poly config directory.
func Dir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "poly")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".poly"
	}
	return filepath.Join(home, ".config", "poly")
}

// File returns the default config file path.
func File() string {
	return filepath.Join(Dir(), "config.yaml")
}

type yamlConfig struct {
	Theme       string    `yaml:"theme"`
	InitTimeout string    `yaml:"init_timeout"`
	Interactive string    `yaml:"interactive"`
	DocsURL     string    `yaml:"docs_url"`
	Log         LogConfig `yaml:"log"`
}

// Marshal returns the YAML encoding of the configuration.
func (c Config) Marshal() ([]byte, error) {
	out := yamlConfig{
		Theme:       c.Theme,
		InitTimeout: c.InitTimeout.String(),
		Interactive: c.Interactive,
		DocsURL:     c.DocsURL,
		Log:         c.Log,
	}
	buf, err := yaml.Marshal(&out)
	if err != nil {
		return nil, fmt.Errorf("marshal config: %w", err)
	}
	return buf, nil
}
