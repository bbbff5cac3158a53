package am

import (
	"path/filepath"

	"github.com/spf13/viper"
)

// Default values shared by SetDefaults and the getters below
const (
	DefaultMaxLineBytes     = 1 << 20
	DefaultUnknownMarker    = `\N`
	DefaultEntitiesFile     = "nomi.txt"
	DefaultGraphFile        = "grafo.txt"
	DefaultMinAvailableMiB  = 1024
	DefaultProgressInterval = 5
)

// DefaultRoles are the profession tokens that make a person qualify
var DefaultRoles = []string{"actor", "actress"}

// SetDefaults configures default values for all configuration options
func SetDefaults(v *viper.Viper) {
	v.SetDefault("input.max_line_bytes", DefaultMaxLineBytes)

	v.SetDefault("ingest.roles", DefaultRoles)
	v.SetDefault("ingest.unknown_marker", DefaultUnknownMarker)
	v.SetDefault("ingest.strict_person_identity", false)
	v.SetDefault("ingest.progress_interval_seconds", DefaultProgressInterval)

	v.SetDefault("build.workers", 1)

	v.SetDefault("output.dir", ".")
	v.SetDefault("output.entities_file", DefaultEntitiesFile)
	v.SetDefault("output.graph_file", DefaultGraphFile)

	v.SetDefault("log.json", false)
	v.SetDefault("log.file", "")

	v.SetDefault("metrics.textfile_path", "")

	v.SetDefault("resources.min_available_mib", DefaultMinAvailableMiB)
}

// BindEnvVars explicitly binds nested configuration to environment variables
func BindEnvVars(v *viper.Viper) {
	v.BindEnv("output.dir", "CASTGRAPH_OUTPUT_DIR")
	v.BindEnv("build.workers", "CASTGRAPH_WORKERS")
	v.BindEnv("log.file", "CASTGRAPH_LOG_FILE")
	v.BindEnv("metrics.textfile_path", "CASTGRAPH_METRICS_TEXTFILE")
}

// EntitiesPath returns the full path of the entity artifact
func (c *Config) EntitiesPath() string {
	name := c.Output.EntitiesFile
	if name == "" {
		name = DefaultEntitiesFile
	}
	return filepath.Join(c.outputDir(), name)
}

// GraphPath returns the full path of the graph artifact
func (c *Config) GraphPath() string {
	name := c.Output.GraphFile
	if name == "" {
		name = DefaultGraphFile
	}
	return filepath.Join(c.outputDir(), name)
}

func (c *Config) outputDir() string {
	if c.Output.Dir == "" {
		return "."
	}
	return c.Output.Dir
}

// GetRoles returns the qualifying profession tokens (falls back to DefaultRoles)
func (c *Config) GetRoles() []string {
	if len(c.Ingest.Roles) == 0 {
		return DefaultRoles
	}
	return c.Ingest.Roles
}

// GetUnknownMarker returns the unknown-value sentinel (falls back to \N)
func (c *Config) GetUnknownMarker() string {
	if c.Ingest.UnknownMarker == "" {
		return DefaultUnknownMarker
	}
	return c.Ingest.UnknownMarker
}

// GetMaxLineBytes returns the line length limit (falls back to 1 MiB)
func (c *Config) GetMaxLineBytes() int {
	if c.Input.MaxLineBytes <= 0 {
		return DefaultMaxLineBytes
	}
	return c.Input.MaxLineBytes
}

// GetWorkers returns the aggregation shard count (at least 1)
func (c *Config) GetWorkers() int {
	if c.Build.Workers < 1 {
		return 1
	}
	return c.Build.Workers
}
