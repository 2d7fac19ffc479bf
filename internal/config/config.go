// Package config provides Viper-based configuration loading for gametable.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	Level string `mapstructure:"level"`
	// Format is the log output format: "json" or "console".
	Format string `mapstructure:"format"`
}

// EngineConfig holds combat engine tunables.
type EngineConfig struct {
	// MonsterActionsPerPass caps how many monster decisions a single
	// decision pass produces.
	MonsterActionsPerPass int `mapstructure:"monster_actions_per_pass"`
	// MaxRounds is the simulator's safety cap on encounter length.
	MaxRounds int `mapstructure:"max_rounds"`
	// ScenarioPath is the encounter YAML file driven by the simulator.
	ScenarioPath string `mapstructure:"scenario_path"`
}

// Config is the top-level application configuration.
type Config struct {
	Logging LoggingConfig `mapstructure:"logging"`
	Engine  EngineConfig  `mapstructure:"engine"`
}

// Validate checks all configuration invariants.
//
// Postcondition: returns nil if configuration is valid, or an error
// describing all violations.
func (c Config) Validate() error {
	var errs []string

	if err := validateLogging(c.Logging); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateEngine(c.Engine); err != nil {
		errs = append(errs, err.Error())
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

func validateLogging(l LoggingConfig) error {
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[l.Level] {
		return fmt.Errorf("logging.level must be one of [debug, info, warn, error], got %q", l.Level)
	}
	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[l.Format] {
		return fmt.Errorf("logging.format must be one of [json, console], got %q", l.Format)
	}
	return nil
}

func validateEngine(e EngineConfig) error {
	var errs []string
	if e.MonsterActionsPerPass < 1 {
		errs = append(errs, fmt.Sprintf("engine.monster_actions_per_pass must be >= 1, got %d", e.MonsterActionsPerPass))
	}
	if e.MaxRounds < 1 {
		errs = append(errs, fmt.Sprintf("engine.max_rounds must be >= 1, got %d", e.MaxRounds))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

// Load reads configuration from the file at path, applying defaults and
// GAMETABLE_* environment variable overrides.
//
// Postcondition: returns a validated Config or a non-nil error.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetConfigFile(path)

	v.SetEnvPrefix("GAMETABLE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return Config{}, fmt.Errorf("reading config file: %w", err)
	}

	return LoadFromViper(v)
}

// LoadDefaults returns the default configuration without reading any file,
// still honoring environment overrides.
func LoadDefaults() (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("GAMETABLE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)
	return LoadFromViper(v)
}

// LoadFromViper unmarshals and validates configuration from an existing
// Viper instance.
func LoadFromViper(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshalling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")

	v.SetDefault("engine.monster_actions_per_pass", 1)
	v.SetDefault("engine.max_rounds", 50)
	v.SetDefault("engine.scenario_path", "scenarios/skirmish.yaml")
}
