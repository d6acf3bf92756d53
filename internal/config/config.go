package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the demo application's configuration. The resolver core has no
// configuration of its own; everything here belongs to the surrounding app.
type Config struct {
	LogFile       string      `yaml:"log_file"`
	Database      string      `yaml:"database"`
	MetricsAddr   string      `yaml:"metrics_addr,omitempty"`
	RefreshMillis int         `yaml:"refresh_millis"`
	MasterSession bool        `yaml:"master_session"`
	Seed          int64       `yaml:"seed"`
	Tokens        []TokenSpec `yaml:"tokens,omitempty"`
}

// TokenSpec names a token and the argument string to register it with.
type TokenSpec struct {
	Name  string `yaml:"name"`
	Query string `yaml:"query"`
}

func defaults() Config {
	return Config{
		LogFile:       "statline_debug.log",
		Database:      "statline.db",
		RefreshMillis: 1000,
		MasterSession: true,
		Seed:          1,
	}
}

// Load reads a YAML config file, falling back to defaults when the path is
// empty.
func Load(path string) (Config, error) {
	cfg := defaults()
	if strings.TrimSpace(path) == "" {
		return cfg, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, fmt.Errorf("statline config: %w", err)
	}
	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Normalize trims string fields in place.
func (c *Config) Normalize() {
	c.LogFile = strings.TrimSpace(c.LogFile)
	c.Database = strings.TrimSpace(c.Database)
	c.MetricsAddr = strings.TrimSpace(c.MetricsAddr)
	for i := range c.Tokens {
		c.Tokens[i].Name = strings.TrimSpace(c.Tokens[i].Name)
		c.Tokens[i].Query = strings.TrimSpace(c.Tokens[i].Query)
	}
}

// Validate rejects configurations the app cannot run with.
func (c *Config) Validate() error {
	if c.RefreshMillis <= 0 {
		return fmt.Errorf("refresh_millis must be positive, got %d", c.RefreshMillis)
	}
	if c.Database == "" {
		return fmt.Errorf("database path must not be empty")
	}
	for _, t := range c.Tokens {
		if t.Name == "" || t.Query == "" {
			return fmt.Errorf("token entries need both name and query")
		}
	}
	return nil
}

// Interval returns the refresh cadence as a duration.
func (c *Config) Interval() time.Duration {
	return time.Duration(c.RefreshMillis) * time.Millisecond
}
