package config

// Config is the root configuration structure.
type Config struct {
	Version    int               `yaml:"version"`
	Server     ServerConfig      `yaml:"server"`
	Repository RepositoryConfig  `yaml:"repository"`
	Metadata   MetadataConfig    `yaml:"metadata"`
	Rank       RankConfig        `yaml:"rank"`
	Mappings   MappingsConfig    `yaml:"mappings"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// RepositoryConfig binds the repository to one connection target and one
// table, with an optional repository-wide mask filter applied to every
// query this instance issues.
type RepositoryConfig struct {
	Database string `yaml:"database"` // dialect-prefixed connection URL
	Table    string `yaml:"table"`    // optionally schema-qualified
	Filter   string `yaml:"filter,omitempty"`
}

// MetadataConfig holds XML document settings.
type MetadataConfig struct {
	// Namespaces resolves XPath prefixes in queryable mappings.
	Namespaces map[string]string `yaml:"namespaces,omitempty"`
}

// RankConfig carries the overlay-rank exponent weights. The defaults of
// 1.0 match the published formula; the knobs exist so the weighting can
// be tuned without a code change.
type RankConfig struct {
	KT float64 `yaml:"kt"`
	KQ float64 `yaml:"kq"`
}

// Queryable is the YAML form of one queryable binding.
type Queryable struct {
	DBCol string `yaml:"dbcol"`
	XPath string `yaml:"xpath,omitempty"`
}

// MappingsConfig declares the queryable mapping table: per-typename
// queryable bindings, merged over the built-in core mappings.
type MappingsConfig struct {
	Typenames map[string]map[string]Queryable `yaml:"typenames,omitempty"`
}
