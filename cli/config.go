package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds the configuration for the CLI.
type Config struct {
	// Directory where the index of every searched root is kept.
	// Defaults to filesearch/ in the user cache directory.
	IndexDir string `yaml:"index_dir"`

	// Number of ranked results printed and selectable. Default is 5.
	MaxResults int `yaml:"max_results"`

	// Filenames suggested when a query matches nothing. 0 disables.
	Suggestions int `yaml:"suggestions"`

	// debug, info, warn or error.
	LogLevel string `yaml:"log_level"`

	// auto, always or never.
	Color string `yaml:"color"`

	// server port. default is 8080
	Port int `yaml:"port"`

	// The directory to search. Set from the command line.
	Root string `yaml:"-"`

	// Rebuild the index before searching. Set from the command line.
	Reindex bool `yaml:"-"`
}

var DefaultConfig = Config{
	MaxResults:  5,
	Suggestions: 3,
	LogLevel:    "warn",
	Color:       "auto",
	Port:        8080,
}

// Environment variables read by LoadConfig.
const (
	EnvConfigFile = "FILESEARCH_CONFIG"
	EnvIndexDir   = "FILESEARCH_INDEX_DIR"
	EnvLogLevel   = "FILESEARCH_LOG_LEVEL"
	EnvMaxResults = "FILESEARCH_MAX_RESULTS"
)

// DefaultIndexDir returns filesearch/ in the user cache directory, or in the
// temp directory if there is none.
func DefaultIndexDir() string {
	cache, err := os.UserCacheDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "filesearch")
	}
	return filepath.Join(cache, "filesearch")
}

// DefaultConfigPath returns filesearch/config.yaml in the user config directory.
func DefaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "filesearch", "config.yaml")
}

// LoadConfig overlays the YAML file at path and then the environment onto
// config. An empty path reads the default config file if there is one.
func LoadConfig(config *Config, path string) error {
	explicit := path != ""
	if !explicit {
		path = DefaultConfigPath()
	}

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, config); err != nil {
				return fmt.Errorf("unable to parse config file %s: %w", path, err)
			}
		case explicit || !errors.Is(err, fs.ErrNotExist):
			return fmt.Errorf("unable to read config file %s: %w", path, err)
		}
	}

	if err := applyEnv(config); err != nil {
		return err
	}

	if config.IndexDir == "" {
		config.IndexDir = DefaultIndexDir()
	}
	if config.MaxResults <= 0 {
		config.MaxResults = DefaultConfig.MaxResults
	}
	return nil
}

func applyEnv(config *Config) error {
	if v := os.Getenv(EnvIndexDir); v != "" {
		config.IndexDir = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		config.LogLevel = v
	}
	if v := os.Getenv(EnvMaxResults); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", EnvMaxResults, v, err)
		}
		config.MaxResults = n
	}
	return nil
}
