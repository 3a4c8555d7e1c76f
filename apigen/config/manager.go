// Package config wraps viper the way bitechdev-ResolveSpec's
// pkg/config.Manager does: a config file on a fixed search path, layered
// under environment variables, unmarshaled into a typed Config struct.
// cmd/apigen is the only caller; the wrapper lives in its own package
// so the CLI command tree stays free of viper's own API surface.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config is the full set of settings cmd/apigen reads from file,
// environment, or flag — flags take precedence, layered on top via
// Manager.Set by the caller after Load.
type Config struct {
	// Input is the path to the descriptor file (YAML or JSON) to decode.
	Input string `mapstructure:"input"`
	// Output is the path the rendered Go source is written to. Empty
	// means stdout.
	Output string `mapstructure:"output"`
	// Package is the package clause written at the top of generated
	// source.
	Package string `mapstructure:"package"`
	// LogLevel is the zap level name ("debug", "info", "warn", "error").
	LogLevel string `mapstructure:"log_level"`
}

// Manager handles configuration loading from a file, the environment,
// and (by the caller's own binding) command-line flags.
type Manager struct {
	v *viper.Viper
}

// NewManager creates a Manager with apigen's defaults: a file named
// "apigen" (yaml, json, or toml) searched on the current directory,
// "./config", "/etc/apigen", and "$HOME/.apigen", with APIGEN_-prefixed
// environment variables overriding file values.
func NewManager() *Manager {
	v := viper.New()

	v.SetConfigName("apigen")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/apigen")
	v.AddConfigPath("$HOME/.apigen")

	v.SetEnvPrefix("APIGEN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	return &Manager{v: v}
}

// Option is a functional option for NewManagerWithOptions.
type Option func(*Manager)

// NewManagerWithOptions creates a Manager with apigen's defaults, then
// applies opts in order.
func NewManagerWithOptions(opts ...Option) *Manager {
	m := NewManager()
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// WithConfigFile points the Manager at an explicit config file path,
// bypassing the default search path.
func WithConfigFile(path string) Option {
	return func(m *Manager) { m.v.SetConfigFile(path) }
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("package", "generated")
	v.SetDefault("log_level", "info")
}

// Load reads the config file if one is found on the search path. A
// missing file is not an error — defaults and environment variables
// still apply.
func (m *Manager) Load() error {
	if err := m.v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("config: read: %w", err)
		}
	}
	return nil
}

// Get returns a single string configuration value by key, for callers
// that want one setting without unmarshaling the whole Config.
func (m *Manager) Get(key string) string {
	return m.v.GetString(key)
}

// GetConfig unmarshals the full configuration into a Config.
func (m *Manager) GetConfig() (*Config, error) {
	var cfg Config
	if err := m.v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}
	return &cfg, nil
}

// Set overrides a single configuration key, used by cmd/apigen to layer
// flag values on top of the file/environment-derived configuration.
func (m *Manager) Set(key string, value any) {
	m.v.Set(key, value)
}
