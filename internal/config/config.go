// Package config provides configuration management for the geocatalog
// server.
//
// Configuration separates deployment identity (connection target, bound
// table, mask filter) from the queryable mapping table that binds
// abstract property names to storage columns and XPath locators. The
// mapping table ships with built-in defaults covering the core catalog
// model and can be extended or overridden per typename in the config
// file.
//
// Config file locations (priority order):
//  1. $GEOCATALOG_CONFIG
//  2. ./geocatalog.yaml
//  3. ~/.config/geocatalog/config.yaml
//  4. /etc/geocatalog/config.yaml
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Load finds and loads the config file, or returns defaults if none found
func Load() (*Config, string, error) {
	path := FindConfigPath()

	if path == "" {
		// No config found - return defaults
		return DefaultConfig(), "", nil
	}

	return LoadFromPath(path)
}

// LoadFromPath loads config from a specific path
func LoadFromPath(path string) (*Config, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, path, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, path, fmt.Errorf("parse config: %w", err)
	}

	cfg.applyDefaults()

	return &cfg, path, nil
}

// Save writes config to the specified path
func (c *Config) Save(path string) error {
	if err := EnsureConfigDir(path); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	return os.WriteFile(path, data, 0644)
}

// DefaultConfig returns sensible defaults for a new installation
func DefaultConfig() *Config {
	return &Config{
		Version: 1,
		Server:  ServerConfig{Addr: ":8000"},
		Repository: RepositoryConfig{
			Database: "sqlite:///geocatalog.db",
			Table:    "records",
		},
		Metadata: MetadataConfig{Namespaces: DefaultNamespaces()},
		Rank:     RankConfig{KT: 1.0, KQ: 1.0},
	}
}

// applyDefaults fills in missing values with defaults
func (c *Config) applyDefaults() {
	if c.Version == 0 {
		c.Version = 1
	}
	if c.Server.Addr == "" {
		c.Server.Addr = ":8000"
	}
	if c.Repository.Database == "" {
		c.Repository.Database = "sqlite:///geocatalog.db"
	}
	if c.Repository.Table == "" {
		c.Repository.Table = "records"
	}
	if len(c.Metadata.Namespaces) == 0 {
		c.Metadata.Namespaces = DefaultNamespaces()
	}
	if c.Rank.KT == 0 {
		c.Rank.KT = 1.0
	}
	if c.Rank.KQ == 0 {
		c.Rank.KQ = 1.0
	}
}
