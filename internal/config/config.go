// Package config loads episearch settings from config/<env>.yaml.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/kailas-cloud/episearch/internal/domain"
)

// Config holds the episearch configuration.
type Config struct {
	Source      SourceConfig      `yaml:"source"`
	Build       BuildConfig       `yaml:"build"`
	Output      OutputConfig      `yaml:"output"`
	ObjectStore ObjectStoreConfig `yaml:"object_store"`
	Valkey      ValkeyConfig      `yaml:"valkey"`
	Tags        TagsConfig        `yaml:"tags"`
	Metrics     MetricsConfig     `yaml:"metrics"`
	HTTP        HTTPConfig        `yaml:"http"`
	Logging     LoggingConfig     `yaml:"logging"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: determined by env)
}

// SourceConfig locates the episode metadata export.
// When Object is set the export is read from the object store instead of Path.
type SourceConfig struct {
	Path   string `yaml:"path"`
	Object string `yaml:"object"`
}

// BuildConfig holds index build settings.
type BuildConfig struct {
	Workers int `yaml:"workers"` // default: number of CPUs
}

// OutputConfig controls where the artifact goes.
type OutputConfig struct {
	Path      string `yaml:"path"`
	Gzip      bool   `yaml:"gzip"`       // also write <path>.gz
	Object    string `yaml:"object"`     // publish to the object store under this key
	ValkeyKey string `yaml:"valkey_key"` // publish to Valkey under this key
}

// ObjectStoreConfig holds S3-compatible storage settings.
type ObjectStoreConfig struct {
	Endpoint  string `yaml:"endpoint"`
	AccessKey string `yaml:"access_key"`
	SecretKey string `yaml:"secret_key"`
	Bucket    string `yaml:"bucket"`
	UseSSL    bool   `yaml:"use_ssl"`
}

// ValkeyConfig holds Valkey connection settings.
type ValkeyConfig struct {
	Addrs            []string `yaml:"addrs"`
	Password         string   `yaml:"password"`
	ReadinessTimeout int      `yaml:"readiness_timeout_sec"`
}

// TagsConfig holds tag cleanup settings.
type TagsConfig struct {
	Input          string `yaml:"input"`
	MinOccurrences int    `yaml:"min_occurrences"`
	MaxLength      int    `yaml:"max_length"`
	Output         string `yaml:"output"`
}

// MetricsConfig holds Prometheus settings for batch runs.
type MetricsConfig struct {
	Textfile string `yaml:"textfile"` // node_exporter textfile collector path
}

// HTTPConfig holds preview server settings.
type HTTPConfig struct {
	Port            int `yaml:"port"`
	ReadTimeoutSec  int `yaml:"read_timeout_sec"`
	WriteTimeoutSec int `yaml:"write_timeout_sec"`
	ShutdownSec     int `yaml:"shutdown_timeout_sec"`

	// APIKeys guard the artifact route; empty disables auth.
	APIKeys []string `yaml:"api_keys"`
}

// Load reads configuration from a YAML file by environment name (local, dev, ci, prod).
func Load(env string) (Config, error) {
	configPath := findConfigPath(env)

	data, err := os.ReadFile(filepath.Clean(configPath))
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", configPath, err)
	}

	return Parse(data)
}

// Parse decodes YAML, expands ${VAR} references, applies defaults and validates.
func Parse(data []byte) (Config, error) {
	data = expandEnvVars(data)

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// GetEnv returns the current environment from the ENV variable, defaulting to "local".
func GetEnv() string {
	if env := os.Getenv("ENV"); env != "" {
		return env
	}
	return "local"
}

// Default returns the configuration used when no config file exists.
func Default() Config {
	var cfg Config
	cfg.ApplyDefaults()
	return cfg
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	if c.Source.Path == "" {
		c.Source.Path = "episodes_final.json"
	}
	if c.Build.Workers <= 0 {
		c.Build.Workers = runtime.NumCPU()
	}
	if c.Output.Path == "" {
		c.Output.Path = "search-index.json"
	}
	if c.Valkey.ReadinessTimeout <= 0 {
		c.Valkey.ReadinessTimeout = 10
	}
	if c.Tags.MinOccurrences <= 0 {
		c.Tags.MinOccurrences = 2
	}
	if c.Tags.MaxLength <= 0 {
		c.Tags.MaxLength = 35
	}
	if c.Tags.Input == "" {
		c.Tags.Input = "episodes_batch.json"
	}
	if c.Tags.Output == "" {
		c.Tags.Output = "episodes_batch_cleaned.json"
	}
	if c.HTTP.Port <= 0 {
		c.HTTP.Port = 8080
	}
	if c.HTTP.ReadTimeoutSec <= 0 {
		c.HTTP.ReadTimeoutSec = 10
	}
	if c.HTTP.WriteTimeoutSec <= 0 {
		c.HTTP.WriteTimeoutSec = 10
	}
	if c.HTTP.ShutdownSec <= 0 {
		c.HTTP.ShutdownSec = 10
	}
}

// UsesObjectStore reports whether any source or output goes through the object store.
func (c *Config) UsesObjectStore() bool {
	return c.Source.Object != "" || c.Output.Object != ""
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.Build.Workers < 1 {
		return fmt.Errorf("build.workers must be at least 1, got %d: %w", c.Build.Workers, domain.ErrInvalidConfig)
	}
	if strings.TrimSpace(c.Output.Path) == "" {
		return fmt.Errorf("output.path is required: %w", domain.ErrInvalidConfig)
	}
	if c.Tags.MinOccurrences < 1 {
		return fmt.Errorf("tags.min_occurrences must be at least 1, got %d: %w",
			c.Tags.MinOccurrences, domain.ErrInvalidConfig)
	}
	if c.UsesObjectStore() {
		if c.ObjectStore.Endpoint == "" {
			return fmt.Errorf("object_store.endpoint is required when an object key is set: %w", domain.ErrInvalidConfig)
		}
		if c.ObjectStore.Bucket == "" {
			return fmt.Errorf("object_store.bucket is required when an object key is set: %w", domain.ErrInvalidConfig)
		}
	}
	if c.Output.ValkeyKey != "" && len(c.Valkey.Addrs) == 0 {
		return fmt.Errorf("valkey.addrs is required when output.valkey_key is set: %w", domain.ErrInvalidConfig)
	}
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port must be between 1 and 65535, got %d: %w", c.HTTP.Port, domain.ErrInvalidConfig)
	}
	return nil
}

// findConfigPath locates the config file.
func findConfigPath(env string) string {
	filename := fmt.Sprintf("%s.yaml", env)

	// 1. Check ./config/
	if path := filepath.Join("config", filename); fileExists(path) {
		return path
	}

	// 2. Check relative to the source file
	_, b, _, _ := runtime.Caller(0)
	projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(b))) // internal/config -> project root
	if path := filepath.Join(projectRoot, "config", filename); fileExists(path) {
		return path
	}

	// 3. Fallback to ./config/
	return filepath.Join("config", filename)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment variable values.
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1]) // strip ${ and }
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(varName)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return []byte(val)
	})
}
