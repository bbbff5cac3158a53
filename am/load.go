package am

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/teranos/castgraph/errors"
)

// ProjectConfigName is the file searched for from the working directory upwards
const ProjectConfigName = "am.toml"

var globalConfig *Config
var viperInstance *viper.Viper
var viperErr error

// Load reads the castgraph configuration using Viper
func Load() (*Config, error) {
	if globalConfig != nil {
		return globalConfig, nil
	}

	v, err := initViper()
	if err != nil {
		return nil, err
	}

	config, err := LoadWithViper(v)
	if err != nil {
		return nil, err
	}

	globalConfig = config
	return globalConfig, nil
}

// GetViper returns the Viper instance for advanced configuration access.
// Files that failed to load are missing from it; Load reports them.
func GetViper() *viper.Viper {
	v, _ := initViper()
	return v
}

// LoadWithViper loads configuration using a provided Viper instance
func LoadWithViper(v *viper.Viper) (*Config, error) {
	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal config")
	}
	return &config, nil
}

// LoadFromFile loads configuration from a specific file path
func LoadFromFile(configPath string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("toml")

	// Set defaults but don't bind environment variables for this specific load
	SetDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, errors.Wrapf(err, "failed to read config file %s", configPath)
	}

	config, err := LoadWithViper(v)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load config from %s", configPath)
	}
	return config, nil
}

// Reset clears the cached configuration (useful for testing)
func Reset() {
	globalConfig = nil
	viperInstance = nil
	viperErr = nil
}

// initViper initializes Viper with configuration sources and defaults.
// The returned instance is usable even when a config file failed to load.
func initViper() (*viper.Viper, error) {
	if viperInstance != nil {
		return viperInstance, viperErr
	}

	v := viper.New()

	// Set up environment variable binding
	v.SetEnvPrefix("CASTGRAPH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	BindEnvVars(v)

	// Set defaults first
	SetDefaults(v)

	// Manually merge configs in precedence order: system -> user -> project -> env vars
	viperErr = mergeConfigFiles(v, ConfigPaths())

	viperInstance = v
	return v, viperErr
}

// ConfigPaths lists the candidate config files, lowest precedence first
func ConfigPaths() []string {
	paths := []string{"/etc/castgraph/am.toml"}

	if homeDir, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(homeDir, ".castgraph", "am.toml"))
	}

	if project := findProjectConfig(); project != "" {
		paths = append(paths, project)
	}
	return paths
}

// findProjectConfig searches for am.toml by walking up the directory tree
// Returns the path to the first config file found, or empty string if none found
func findProjectConfig() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		candidate := filepath.Join(dir, ProjectConfigName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached filesystem root, stop searching
			return ""
		}
		dir = parent
	}
}

// mergeConfigFiles merges existing configuration files in the given order
// Later files override earlier ones; environment variables override all files.
// Missing files are skipped. A file that exists but cannot be read or parsed
// stops the merge with ErrInvalidConfig naming that file.
func mergeConfigFiles(v *viper.Viper, configPaths []string) error {
	for _, configPath := range configPaths {
		if _, err := os.Stat(configPath); err != nil {
			continue
		}

		tempViper := viper.New()
		tempViper.SetConfigFile(configPath)
		tempViper.SetConfigType("toml")
		if err := tempViper.ReadInConfig(); err != nil {
			return configFileError(err, configPath)
		}

		// MergeConfigMap keeps file values below env vars in Viper's precedence
		if err := v.MergeConfigMap(tempViper.AllSettings()); err != nil {
			return configFileError(err, configPath)
		}
	}
	return nil
}

func configFileError(err error, path string) error {
	return errors.WithHintf(
		errors.Mark(errors.Wrapf(err, "config file %s", path), errors.ErrInvalidConfig),
		"fix the syntax in %s or remove the file", path,
	)
}

// Get returns a configuration value using dot notation
func Get(key string) interface{} {
	return GetViper().Get(key)
}
