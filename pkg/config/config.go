// Package config loads fieldmask settings from fieldmask.yaml and FIELDMASK_
// environment variables.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"

	"github.com/goliatone/go-fieldmask/pkg/mask"
	"github.com/goliatone/go-fieldmask/pkg/matcher"
)

// EnvPrefix prefixes environment overrides, e.g. FIELDMASK_LOG_LEVEL.
const EnvPrefix = "FIELDMASK"

// ErrInvalidRule is returned for rules naming an unknown kind or carrying no
// tokens.
var ErrInvalidRule = errors.New("config: invalid rule")

// Config holds CLI settings.
type Config struct {
	LogLevel string `mapstructure:"log_level"`
	Output   string `mapstructure:"output"`
	Sanitize bool   `mapstructure:"sanitize"`
	Rules    []Rule `mapstructure:"rules"`
}

// Rule adds a matcher rule: the field gets Kind when its name or id
// contains a token or its placeholder contains a placeholder fragment.
type Rule struct {
	Kind         string   `mapstructure:"kind"`
	Priority     int      `mapstructure:"priority"`
	Tokens       []string `mapstructure:"tokens"`
	Placeholders []string `mapstructure:"placeholders"`
}

// Load reads configuration. An empty path searches for fieldmask.yaml in the
// working directory and ./config, and a missing file leaves the defaults in
// place; an explicit path must exist.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetDefault("log_level", "info")
	v.SetDefault("output", "json")
	v.SetDefault("sanitize", false)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("fieldmask")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("config: read %s: %w", describe(path), err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: unmarshal: %w", err)
	}
	return cfg, nil
}

func describe(path string) string {
	if path == "" {
		return "fieldmask.yaml"
	}
	return path
}

// Level parses LogLevel; an empty level means info.
func (c Config) Level() (zapcore.Level, error) {
	if strings.TrimSpace(c.LogLevel) == "" {
		return zapcore.InfoLevel, nil
	}
	level, err := zapcore.ParseLevel(c.LogLevel)
	if err != nil {
		return zapcore.InfoLevel, fmt.Errorf("config: log level: %w", err)
	}
	return level, nil
}

// Apply registers the configured rules on registry.
func (c Config) Apply(registry *matcher.Registry) error {
	for idx, rule := range c.Rules {
		kind, err := mask.ParseKind(rule.Kind)
		if err != nil {
			return fmt.Errorf("%w #%d: %v", ErrInvalidRule, idx, err)
		}
		if len(rule.Tokens) == 0 && len(rule.Placeholders) == 0 {
			return fmt.Errorf("%w #%d: %s rule has no tokens or placeholders", ErrInvalidRule, idx, kind)
		}
		registry.Register(kind, rule.Priority, matcher.TokenRule(rule.Tokens, rule.Placeholders))
	}
	return nil
}

// Registry returns the built-in rules plus the configured ones.
func (c Config) Registry() (*matcher.Registry, error) {
	registry := matcher.NewRegistry()
	if err := c.Apply(registry); err != nil {
		return nil, err
	}
	return registry, nil
}
