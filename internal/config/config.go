package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	// Database is the sqlite file; ":memory:" is accepted for throwaway runs
	Database     string      `yaml:"database"`
	Addr         string      `yaml:"addr"`
	User         string      `yaml:"user"`
	Socket       string      `yaml:"socket"`
	LogLevel     string      `yaml:"log_level"`
	DefaultStage string      `yaml:"default_stage"`
	KeyMappings  KeyMappings `yaml:"key_mappings"`
	Theme        Theme       `yaml:"theme"`
}

// Default returns the configuration used when no file exists
func Default() *Config {
	c := &Config{}
	c.applyDefaults()
	return c
}

// Load reads config.yaml from the user's config directory, applies
// LEADBOARD_* environment overrides and fills in defaults.
// A missing file is not an error.
func Load() (*Config, error) {
	var config Config

	if configPath, err := getConfigPath(); err == nil {
		data, err := os.ReadFile(configPath)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, &config); err != nil {
				return nil, fmt.Errorf("parsing %s: %w", configPath, err)
			}
		case !os.IsNotExist(err):
			return nil, err
		}
	}

	config.applyEnv()
	config.applyDefaults()
	return &config, nil
}

// Save writes the config to the user's config directory
func (c *Config) Save() error {
	configPath, err := getConfigPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(configPath, data, 0o644)
}

// Level parses LogLevel, defaulting to info
func (c *Config) Level() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return level
}

func getConfigPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, "leadboard", "config.yaml"), nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".config", "leadboard", "config.yaml"), nil
}

func dataDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(homeDir, ".leadboard")
}

func (c *Config) applyEnv() {
	overrides := map[string]*string{
		"LEADBOARD_DB":            &c.Database,
		"LEADBOARD_ADDR":          &c.Addr,
		"LEADBOARD_USER":          &c.User,
		"LEADBOARD_SOCKET":        &c.Socket,
		"LEADBOARD_LOG_LEVEL":     &c.LogLevel,
		"LEADBOARD_DEFAULT_STAGE": &c.DefaultStage,
	}
	for name, field := range overrides {
		if v := strings.TrimSpace(os.Getenv(name)); v != "" {
			*field = v
		}
	}
}

// fallback pairs a field with the value it takes when left empty
type fallback struct {
	v   *string
	def string
}

func (c *Config) applyDefaults() {
	if c.Database == "" {
		c.Database = filepath.Join(dataDir(), "leadboard.db")
	}
	if c.Addr == "" {
		c.Addr = "127.0.0.1:8080"
	}
	if c.Socket == "" {
		c.Socket = filepath.Join(dataDir(), "leadboard.sock")
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.DefaultStage == "" {
		c.DefaultStage = "new"
	}
	c.KeyMappings.applyDefaults()
	c.Theme.ApplyDefaults()
}
