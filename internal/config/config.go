// ABOUTME: Configuration loading and parsing for fieldstore
// ABOUTME: Supports YAML files with environment variable expansion and env overrides

package config

import (
	"fmt"
	"os"
	"regexp"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/2389/fieldstore/internal/persist"
)

// Config represents the complete fieldstore configuration
type Config struct {
	Database DatabaseConfig `yaml:"database"`
	Logging  LoggingConfig  `yaml:"logging"`
	Persist  PersistConfig  `yaml:"persist"`
	Fields   []FieldConfig  `yaml:"fields"`
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Path string `yaml:"path" env:"FIELDSTORE_DB_PATH"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `yaml:"level" env:"FIELDSTORE_LOG_LEVEL"`
	Format string `yaml:"format" env:"FIELDSTORE_LOG_FORMAT"`
}

// PersistConfig holds the attachment options for the persisted object
type PersistConfig struct {
	Prefix  string   `yaml:"prefix" env:"FIELDSTORE_PREFIX"`
	Include []string `yaml:"include"`
	Exclude []string `yaml:"exclude"`
}

// FieldConfig declares one persistable field and its default value
type FieldConfig struct {
	Name    string `yaml:"name"`
	Default any    `yaml:"default"`
}

// Load reads a configuration file from the given path and returns a parsed
// Config. Environment variables in the format ${VAR_NAME} are expanded
// inside the file; FIELDSTORE_* environment variables override the parsed
// values afterwards.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	// Expand environment variables in the raw YAML content
	expandedData := expandEnvVars(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expandedData), &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("applying environment overrides: %w", err)
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return &cfg, nil
}

// expandEnvVars replaces ${VAR_NAME} patterns with the corresponding environment variable values.
// If the environment variable is not set, it is replaced with an empty string.
func expandEnvVars(s string) string {
	re := regexp.MustCompile(`\$\{([^}]+)\}`)

	return re.ReplaceAllStringFunc(s, func(match string) string {
		varName := re.FindStringSubmatch(match)[1]
		return os.Getenv(varName)
	})
}

func (c *Config) applyDefaults() {
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "text"
	}
}

// Validate checks that all required configuration fields are present and valid.
// Returns an error describing the first validation failure encountered.
func (c *Config) Validate() error {
	if c.Database.Path == "" {
		return fmt.Errorf("database.path is required")
	}

	if len(c.Fields) == 0 {
		return fmt.Errorf("at least one field must be declared")
	}

	seen := make(map[string]bool, len(c.Fields))
	for _, f := range c.Fields {
		if f.Name == "" {
			return fmt.Errorf("fields[].name is required")
		}
		if seen[f.Name] {
			return fmt.Errorf("field %q declared more than once", f.Name)
		}
		seen[f.Name] = true
	}

	return nil
}

// Descriptors maps the declared fields onto persistence descriptors.
func (c *Config) Descriptors() []persist.Descriptor {
	descs := make([]persist.Descriptor, 0, len(c.Fields))
	for _, f := range c.Fields {
		descs = append(descs, persist.Descriptor{Name: f.Name, Default: f.Default})
	}
	return descs
}

// Options maps the persist section onto attachment options.
func (c *Config) Options() persist.Options {
	return persist.Options{
		Prefix:  c.Persist.Prefix,
		Include: c.Persist.Include,
		Exclude: c.Persist.Exclude,
	}
}
