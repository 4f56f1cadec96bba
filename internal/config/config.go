package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Fetch   FetchConfig   `yaml:"fetch"`
	Output  OutputConfig  `yaml:"output"`
	Log     LogConfig     `yaml:"log"`
	History HistoryConfig `yaml:"history"`
}

type FetchConfig struct {
	Concurrency    int   `yaml:"concurrency"`
	TimeoutSeconds int   `yaml:"timeout_seconds"`
	MaxBodyBytes   int64 `yaml:"max_body_bytes"`
}

type OutputConfig struct {
	File string `yaml:"file"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

// HistoryConfig controls the resolution audit log. It is write-only from the
// resolver's point of view.
type HistoryConfig struct {
	Enabled bool `yaml:"enabled"`
}

func Default() *Config {
	return &Config{
		Fetch: FetchConfig{
			Concurrency:    4,
			TimeoutSeconds: 10,
			MaxBodyBytes:   5 * 1024 * 1024,
		},
		Output: OutputConfig{
			File: "rss-feeds.txt",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

func Dir() string {
	if dir := os.Getenv("RSSGEN_HOME"); dir != "" {
		return dir
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".rssgen")
}

func DBPath() string {
	return filepath.Join(Dir(), "history.db")
}

func configPath() string {
	return filepath.Join(Dir(), "config.yaml")
}

func Load() (*Config, error) {
	data, err := os.ReadFile(configPath())
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, err
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	cfg.normalize()
	return cfg, nil
}

func Save(cfg *Config) error {
	if err := os.MkdirAll(Dir(), 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	return os.WriteFile(configPath(), data, 0644)
}

// normalize replaces non-positive limits with defaults so a half-written
// config file never disables timeouts.
func (c *Config) normalize() {
	d := Default()
	if c.Fetch.Concurrency <= 0 {
		c.Fetch.Concurrency = d.Fetch.Concurrency
	}
	if c.Fetch.TimeoutSeconds <= 0 {
		c.Fetch.TimeoutSeconds = d.Fetch.TimeoutSeconds
	}
	if c.Fetch.MaxBodyBytes <= 0 {
		c.Fetch.MaxBodyBytes = d.Fetch.MaxBodyBytes
	}
	if c.Output.File == "" {
		c.Output.File = d.Output.File
	}
	if c.Log.Level == "" {
		c.Log.Level = d.Log.Level
	}
}
