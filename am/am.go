// Package am holds the castgraph configuration ("I am").
//
// Configuration is read with Viper from TOML files and CASTGRAPH_* environment
// variables. See load.go for the precedence order.
package am

// Config represents the castgraph configuration
type Config struct {
	Input     InputConfig     `mapstructure:"input"`
	Ingest    IngestConfig    `mapstructure:"ingest"`
	Build     BuildConfig     `mapstructure:"build"`
	Output    OutputConfig    `mapstructure:"output"`
	Log       LogConfig       `mapstructure:"log"`
	Metrics   MetricsConfig   `mapstructure:"metrics"`
	Resources ResourcesConfig `mapstructure:"resources"`
}

// InputConfig configures how the two TSV snapshots are read
type InputConfig struct {
	MaxLineBytes int `mapstructure:"max_line_bytes"` // Longest accepted line (default: 1 MiB)
}

// IngestConfig configures record qualification
type IngestConfig struct {
	Roles                   []string `mapstructure:"roles"`                     // Accepted profession tokens, matched case-insensitively (default: actor, actress)
	UnknownMarker           string   `mapstructure:"unknown_marker"`            // Literal sentinel for an unknown birth year (default: \N)
	StrictPersonIdentity    bool     `mapstructure:"strict_person_identity"`    // Abort on an invalid person code or birth year instead of skipping
	ProgressIntervalSeconds int      `mapstructure:"progress_interval_seconds"` // Minimum seconds between progress logs (0 = no progress logs)
}

// BuildConfig configures the neighbor aggregation phase
type BuildConfig struct {
	Workers int `mapstructure:"workers"` // Aggregation shards; 1 = sequential (default: 1)
}

// OutputConfig configures where the two artifacts are written
type OutputConfig struct {
	Dir          string `mapstructure:"dir"`           // Output directory (default: .)
	EntitiesFile string `mapstructure:"entities_file"` // Entity artifact name (default: nomi.txt)
	GraphFile    string `mapstructure:"graph_file"`    // Graph artifact name (default: grafo.txt)
}

// LogConfig configures diagnostics output
type LogConfig struct {
	JSON bool   `mapstructure:"json"` // JSON log lines on stderr
	File string `mapstructure:"file"` // Append JSON log lines to this file (empty = off)
}

// MetricsConfig configures the Prometheus textfile written after each run
type MetricsConfig struct {
	TextfilePath string `mapstructure:"textfile_path"` // empty = no metrics file
}

// ResourcesConfig configures the memory preflight check
type ResourcesConfig struct {
	MinAvailableMiB int `mapstructure:"min_available_mib"` // Warn below this much available memory (0 = no check)
}

// File system constants
const (
	DefaultDirPermissions  = 0755 // Standard directory permissions (rwxr-xr-x)
	DefaultFilePermissions = 0644 // Standard file permissions (rw-r--r--)
)
