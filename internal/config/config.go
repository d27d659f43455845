// Package config provides configuration loading and management for hearth.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config represents the complete hearth configuration
type Config struct {
	Store  StoreConfig  `yaml:"store"`
	Log    LogConfig    `yaml:"log"`
	Score  ScoreConfig  `yaml:"score"`
	Pantry PantryConfig `yaml:"pantry"`
}

// StoreConfig configures where data is kept
type StoreConfig struct {
	// Path is the SQLite file (empty = $HEARTH_DB, then ~/.hearth.db)
	Path string `yaml:"path"`
}

// LogConfig configures diagnostic logging on stderr
type LogConfig struct {
	// Level is one of debug, info, warn, error
	Level string `yaml:"level"`
	// Format is auto, text or json
	Format string `yaml:"format"`
}

// ScoreConfig configures the Everdell score tracker
type ScoreConfig struct {
	// DefaultPlayers seeds a new game when no players are given
	DefaultPlayers []string `yaml:"default_players"`
}

// PantryConfig configures the pantry tracker
type PantryConfig struct {
	// ExportDir is where export files are written
	ExportDir string `yaml:"export_dir"`
}

var (
	logLevels  = []string{"debug", "info", "warn", "error"}
	logFormats = []string{"auto", "text", "json"}
)

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Store: StoreConfig{Path: ""},
		Log: LogConfig{
			Level:  "warn",
			Format: "auto",
		},
		Score: ScoreConfig{
			DefaultPlayers: []string{"Tyler", "Hanna"},
		},
		Pantry: PantryConfig{
			ExportDir: ".",
		},
	}
}

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	if !oneOf(c.Log.Level, logLevels) {
		return fmt.Errorf("log.level must be one of %s", strings.Join(logLevels, ", "))
	}
	if !oneOf(c.Log.Format, logFormats) {
		return fmt.Errorf("log.format must be one of %s", strings.Join(logFormats, ", "))
	}
	for i, name := range c.Score.DefaultPlayers {
		if strings.TrimSpace(name) == "" {
			return fmt.Errorf("score.default_players[%d] is blank", i)
		}
	}
	if c.Pantry.ExportDir == "" {
		return fmt.Errorf("pantry.export_dir is required")
	}
	return nil
}

func oneOf(v string, allowed []string) bool {
	for _, a := range allowed {
		if v == a {
			return true
		}
	}
	return false
}

// LoadFromFile loads configuration from a YAML file
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := &Config{}
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// SaveToFile saves configuration to a YAML file
func (c *Config) SaveToFile(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Merge merges another config into this one (other takes precedence for non-zero values)
func (c *Config) Merge(other *Config) {
	if other == nil {
		return
	}

	if other.Store.Path != "" {
		c.Store.Path = other.Store.Path
	}

	if other.Log.Level != "" {
		c.Log.Level = other.Log.Level
	}
	if other.Log.Format != "" {
		c.Log.Format = other.Log.Format
	}

	if len(other.Score.DefaultPlayers) > 0 {
		c.Score.DefaultPlayers = other.Score.DefaultPlayers
	}

	if other.Pantry.ExportDir != "" {
		c.Pantry.ExportDir = other.Pantry.ExportDir
	}
}

// YAML renders the config the way it would be saved.
func (c *Config) YAML() (string, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("failed to marshal config: %w", err)
	}
	return string(data), nil
}
